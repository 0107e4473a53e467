package payments

import (
	"context"
	"fmt"
	"strings"

	"petshop/internal/domain/orders"
	"petshop/internal/platform/apperr"
	"petshop/internal/platform/logger"
)

var ErrMethodNotFound = fmt.Errorf("payment method %w", apperr.ErrNotFound)

// Eventos del webhook del proveedor.
const (
	EventSucceeded = "payment.succeeded"
	EventCanceled  = "payment.canceled"
)

// OrderUpdater es el subconjunto de orders.Service que necesitan los pagos.
type OrderUpdater interface {
	Get(ctx context.Context, userID, id string) (orders.Order, error)
	MarkPaid(ctx context.Context, id string) (orders.Order, error)
	MarkPaymentFailed(ctx context.Context, id string) (orders.Order, error)
}

type Service struct {
	gateways map[Method]Gateway
	orders   OrderUpdater
	log      logger.Logger
}

func NewService(orderSvc OrderUpdater, log logger.Logger, gateways ...Gateway) *Service {
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		gateways: make(map[Method]Gateway, len(gateways)),
		orders:   orderSvc,
		log:      log,
	}
	for _, g := range gateways {
		s.gateways[g.Method()] = g
	}
	return s
}

// Pay cobra con el gateway del método y, si el cobro sale bien, marca el pedido como pagado.
func (s *Service) Pay(ctx context.Context, userID string, method Method, c Charge) (Receipt, error) {
	g, ok := s.gateways[method]
	if !ok {
		return Receipt{}, ErrMethodNotFound
	}

	c.OrderID = strings.TrimSpace(c.OrderID)
	if _, err := s.orders.Get(ctx, userID, c.OrderID); err != nil {
		return Receipt{}, err
	}

	rec, err := g.Charge(ctx, c)
	if err != nil {
		return Receipt{}, fmt.Errorf("charge %s: %w", method, err)
	}

	if _, err := s.orders.MarkPaid(ctx, c.OrderID); err != nil {
		return Receipt{}, err
	}

	s.log.Info("payment completed", map[string]any{
		"order_id":   c.OrderID,
		"payment_id": rec.PaymentID,
		"method":     string(method),
	})
	return rec, nil
}

type WebhookEvent struct {
	Event   string
	OrderID string
}

// HandleWebhook aplica el evento del proveedor. Eventos desconocidos se ignoran.
func (s *Service) HandleWebhook(ctx context.Context, ev WebhookEvent) error {
	orderID := strings.TrimSpace(ev.OrderID)
	if orderID == "" {
		return apperr.Validation("object.metadata.orderId", "is required")
	}

	var err error
	switch ev.Event {
	case EventSucceeded:
		_, err = s.orders.MarkPaid(ctx, orderID)
	case EventCanceled:
		_, err = s.orders.MarkPaymentFailed(ctx, orderID)
	default:
		s.log.Warn("ignoring unknown payment event", map[string]any{"event": ev.Event, "order_id": orderID})
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info("payment webhook applied", map[string]any{"event": ev.Event, "order_id": orderID})
	return nil
}
