// Package main posts a sample order to a running bridge and prints the outcome.
//
//	ORDERS_SECRET=... go run ./scripts vr_lite fidget_cube
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://localhost:%s", port)

	items := os.Args[1:]
	if len(items) == 0 {
		items = []string{"vr_lite", "unknown_sku"}
	}
	body, err := json.Marshal(map[string]any{
		"sessionId":       "cs_demo_" + uuid.NewString(),
		"items":           items,
		"shippingName":    "Demo Customer",
		"shippingAddress": "1 Main St",
		"shippingCity":    "Austin",
		"shippingState":   "TX",
		"shippingZip":     "73301",
		"shippingCountry": "US",
		"email":           "demo@example.com",
	})
	if err != nil {
		log.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodPost, base+"/api/fulfill", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Fulfill-Secret", os.Getenv("ORDERS_SECRET"))
	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") != nil {
		pretty.Write(raw)
	}
	log.Printf("HTTP %d", resp.StatusCode)
	fmt.Println(pretty.String())
}
