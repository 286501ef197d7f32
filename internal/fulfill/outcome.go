package fulfill

import (
	"encoding/json"

	"dropship/internal/model"
)

type Status string

const (
	StatusManual  Status = "manual"
	StatusAuto    Status = "auto"
	StatusPartial Status = "partial"
	StatusError   Status = "error"
)

const (
	ReasonNoCredentials = "supplier API key not configured"
	ReasonNoMatches     = "no matching supplier products"
)

// Outcome is the result of one fulfillment request. The concrete types are
// ManualOutcome, AutoOutcome, PartialOutcome and ErrorOutcome; each marshals
// with a "status" discriminator.
type Outcome interface {
	Status() Status
	isOutcome()
}

// ManualOutcome means no supplier order was placed and a human has to ship it.
type ManualOutcome struct {
	Reason    string             `json:"reason"`
	SessionID string             `json:"sessionId"`
	Items     []model.ItemEcho   `json:"items,omitempty"`
	Unmapped  []string           `json:"unmapped,omitempty"`
	Shipping  model.ShippingEcho `json:"shipping"`
}

// Placed is the payload shared by auto and partial outcomes.
type Placed struct {
	SessionID        string              `json:"sessionId"`
	SupplierCode     int                 `json:"supplierCode"`
	SupplierResponse json.RawMessage     `json:"supplierResponse"`
	ItemsOrdered     []model.OrderedItem `json:"itemsOrdered"`
	Unmapped         []string            `json:"unmapped,omitempty"`
}

// AutoOutcome means the supplier accepted the order.
type AutoOutcome struct{ Placed }

// PartialOutcome means an order call was made but the supplier reported a
// non-success code. Needs review.
type PartialOutcome struct{ Placed }

// ErrorOutcome carries the failure plus the same echo as the manual path.
type ErrorOutcome struct {
	Message   string             `json:"error"`
	SessionID string             `json:"sessionId"`
	Items     []model.ItemEcho   `json:"items"`
	Shipping  model.ShippingEcho `json:"shipping"`
}

func (ManualOutcome) Status() Status  { return StatusManual }
func (AutoOutcome) Status() Status    { return StatusAuto }
func (PartialOutcome) Status() Status { return StatusPartial }
func (ErrorOutcome) Status() Status   { return StatusError }

func (ManualOutcome) isOutcome()  {}
func (AutoOutcome) isOutcome()    {}
func (PartialOutcome) isOutcome() {}
func (ErrorOutcome) isOutcome()   {}

func (o ManualOutcome) MarshalJSON() ([]byte, error) {
	type alias ManualOutcome
	return json.Marshal(struct {
		Status Status `json:"status"`
		alias
	}{o.Status(), alias(o)})
}

func (o AutoOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status Status `json:"status"`
		Placed
	}{o.Status(), o.Placed})
}

func (o PartialOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status Status `json:"status"`
		Placed
	}{o.Status(), o.Placed})
}

func (o ErrorOutcome) MarshalJSON() ([]byte, error) {
	type alias ErrorOutcome
	return json.Marshal(struct {
		Status Status `json:"status"`
		alias
	}{o.Status(), alias(o)})
}

// NeedsAttention reports whether a human must act on the outcome.
func NeedsAttention(o Outcome) bool { return o.Status() != StatusAuto }
