package api

import (
	"encoding/json"
	"net/http"

	"dropship/internal/model"
)

const maxRequestBody = 1 << 20

// FulfillHandler accepts a paid order and answers with its fulfillment
// outcome. Every outcome, including supplier failures, is a 200.
func (s *Server) FulfillHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return
	}
	secrets := s.Secrets()
	if !authorized(r, secrets.SharedSecret) {
		s.Log.Warn("fulfill request rejected", "remote", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req model.FulfillRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	out := s.Fulfiller.Fulfill(r.Context(), req, secrets.SupplierAPIKey)
	writeJSON(w, http.StatusOK, out)
}
