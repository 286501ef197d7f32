// Package fulfill turns a paid order into a supplier order, falling back to
// manual fulfillment whenever the supplier cannot take it.
package fulfill

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dropship/internal/catalog"
	"dropship/internal/events"
	"dropship/internal/integrations"
	"dropship/internal/metrics"
	"dropship/internal/model"
)

type Service struct {
	Catalog  *catalog.Catalog
	Supplier integrations.SupplierAdapter
	Events   events.Publisher
	Log      *slog.Logger
	// Concurrency bounds parallel supplier searches; 1 resolves strictly in order.
	Concurrency int
}

func NewService(cat *catalog.Catalog, supplier integrations.SupplierAdapter, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{Catalog: cat, Supplier: supplier, Events: events.Nop{}, Log: log, Concurrency: 4}
}

// Fulfill runs one request to completion. It never returns an error: every
// failure becomes an ErrorOutcome carrying enough data to ship by hand.
func (s *Service) Fulfill(ctx context.Context, req model.FulfillRequest, apiKey string) Outcome {
	id := uuid.NewString()
	log := s.Log.With("fulfillmentId", id, "sessionId", req.SessionID)

	out := s.run(ctx, log, req, apiKey)

	metrics.FulfillmentOutcomes.WithLabelValues(string(out.Status())).Inc()
	if s.Events != nil {
		evt := events.OutcomeEvent{
			ID:        id,
			Type:      "fulfillment." + string(out.Status()),
			SessionID: req.SessionID,
			TS:        time.Now().UTC(),
			Outcome:   out,
		}
		if err := s.Events.Publish(ctx, evt); err != nil {
			log.Warn("publish outcome failed", "err", err)
		}
	}
	return out
}

func (s *Service) run(ctx context.Context, log *slog.Logger, req model.FulfillRequest, apiKey string) (out Outcome) {
	if apiKey == "" {
		log.Info("no supplier API key; manual fulfillment needed", "items", len(req.Items))
		return ManualOutcome{
			Reason:    ReasonNoCredentials,
			SessionID: req.SessionID,
			Items:     s.echoItems(req.Items),
			Shipping:  req.Shipping(),
		}
	}

	defer func() {
		if r := recover(); r != nil {
			out = s.failed(log, req, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	token, err := s.Supplier.Authenticate(ctx, apiKey)
	if err != nil {
		return s.failed(log, req, err)
	}
	log.Info("supplier authenticated", "supplier", s.Supplier.Name(), "items", len(req.Items))

	lines, unmapped, err := s.resolve(ctx, log, token, req.Items)
	if err != nil {
		return s.failed(log, req, err)
	}
	if len(lines) == 0 {
		return ManualOutcome{
			Reason:    ReasonNoMatches,
			SessionID: req.SessionID,
			Unmapped:  unmapped,
			Shipping:  req.Shipping(),
		}
	}

	order := integrations.Order{
		SessionID: req.SessionID,
		Email:     req.Email,
		Shipping: integrations.Shipping{
			Name:     req.ShippingName,
			Address:  req.ShippingAddress,
			City:     req.ShippingCity,
			Province: req.ShippingState,
			Zip:      req.ShippingZip,
			Country:  req.ShippingCountry,
			Phone:    req.ShippingPhone,
		},
		Lines: make([]integrations.LineItem, 0, len(lines)),
	}
	summary := make([]model.OrderedItem, 0, len(lines))
	for _, l := range lines {
		order.Lines = append(order.Lines, integrations.LineItem{VariantID: l.product.VariantID, Quantity: 1})
		summary = append(summary, model.OrderedItem{
			SKU:       l.sku,
			Name:      l.product.Name,
			VariantID: l.product.VariantID,
			Cost:      json.Number(l.product.SellPrice.String()),
		})
	}

	res, err := s.Supplier.PlaceOrder(ctx, token, order)
	if err != nil {
		return s.failed(log, req, fmt.Errorf("place order: %w", err))
	}
	log.Info("supplier order result", "code", res.Code, "accepted", res.Accepted, "response", string(res.Raw))

	placed := Placed{
		SessionID:        req.SessionID,
		SupplierCode:     res.Code,
		SupplierResponse: res.Raw,
		ItemsOrdered:     summary,
		Unmapped:         unmapped,
	}
	if res.Accepted {
		return AutoOutcome{placed}
	}
	return PartialOutcome{placed}
}

type resolvedLine struct {
	sku     string
	product *integrations.Product
}

type resolution struct {
	mapped  bool
	query   string
	product *integrations.Product
}

// resolve maps each SKU to a supplier variant. The returned lines and
// unmapped SKUs partition the input and keep its order.
func (s *Service) resolve(ctx context.Context, log *slog.Logger, token string, skus []string) ([]resolvedLine, []string, error) {
	results := make([]resolution, len(skus))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, sku := range skus {
		entry, ok := s.Catalog.Lookup(sku)
		if !ok {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("resolve %s: unexpected failure: %v", sku, r)
				}
			}()
			p, err := s.Supplier.Search(gctx, token, entry.SearchQuery)
			if err != nil {
				return fmt.Errorf("search %s: %w", sku, err)
			}
			results[i] = resolution{mapped: true, query: entry.SearchQuery, product: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var lines []resolvedLine
	var unmapped []string
	for i, sku := range skus {
		r := results[i]
		switch {
		case !r.mapped:
			unmapped = append(unmapped, sku)
			metrics.CatalogResolutions.WithLabelValues("unmapped").Inc()
			log.Info("sku not in catalog", "sku", sku)
		case !r.product.Usable():
			unmapped = append(unmapped, sku)
			metrics.CatalogResolutions.WithLabelValues("unmatched").Inc()
			log.Info("no usable supplier product", "sku", sku, "query", r.query)
		default:
			lines = append(lines, resolvedLine{sku: sku, product: r.product})
			metrics.CatalogResolutions.WithLabelValues("hit").Inc()
			log.Info("supplier product found", "sku", sku, "name", r.product.Name, "price", r.product.SellPrice.String(), "variantId", r.product.VariantID)
		}
	}
	return lines, unmapped, nil
}

func (s *Service) failed(log *slog.Logger, req model.FulfillRequest, err error) ErrorOutcome {
	log.Error("fulfillment failed", "err", err)
	return ErrorOutcome{
		Message:   err.Error(),
		SessionID: req.SessionID,
		Items:     s.echoItems(req.Items),
		Shipping:  req.Shipping(),
	}
}

func (s *Service) echoItems(skus []string) []model.ItemEcho {
	out := make([]model.ItemEcho, 0, len(skus))
	for _, sku := range skus {
		out = append(out, model.ItemEcho{ID: sku, Name: s.Catalog.DisplayName(sku)})
	}
	return out
}

func (s *Service) concurrency() int {
	if s.Concurrency < 1 {
		return 1
	}
	return s.Concurrency
}
