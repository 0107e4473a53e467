// Package mockpay simula los proveedores de pago: esperan una latencia fija y siempre aprueban.
package mockpay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/domain/orders"
	"petshop/internal/domain/payments"
)

const (
	DefaultCardDelay        = 1 * time.Second
	DefaultSBPDelay         = 2 * time.Second
	DefaultYandexSplitDelay = 1500 * time.Millisecond

	defaultMaskedCard = "****1234"
	sbpQRCode         = "https://placehold.co/300x300/FF9800/FFFFFF?text=SBP+QR+Code"
)

type Gateway struct {
	method payments.Method
	delay  time.Duration
	now    func() time.Time
}

func New(method payments.Method, delay time.Duration) *Gateway {
	if delay < 0 {
		delay = 0
	}
	return &Gateway{method: method, delay: delay, now: time.Now}
}

func NewCard(delay time.Duration) *Gateway        { return New(orders.PayCard, delay) }
func NewSBP(delay time.Duration) *Gateway         { return New(orders.PaySBP, delay) }
func NewYandexSplit(delay time.Duration) *Gateway { return New(orders.PayYandexSplit, delay) }

func (g *Gateway) Method() payments.Method { return g.method }

// Charge bloquea durante delay. No se puede cancelar: el proveedor simulado no lo permite.
func (g *Gateway) Charge(ctx context.Context, c payments.Charge) (payments.Receipt, error) {
	if g.delay > 0 {
		time.Sleep(g.delay)
	}

	now := g.now()
	rec := payments.Receipt{
		Success:   true,
		PaymentID: fmt.Sprintf("%s-%d", g.method, now.UnixMilli()),
		OrderID:   c.OrderID,
		Amount:    c.Amount,
		Method:    g.method,
		Status:    "completed",
		Timestamp: now,
	}
	switch g.method {
	case orders.PayCard:
		rec.MaskedCard = MaskCard(c.CardNumber)
	case orders.PaySBP:
		rec.QRCode = sbpQRCode
	}
	return rec, nil
}

// MaskCard deja visibles los últimos 4 dígitos. Sin número => ****1234.
func MaskCard(number string) string {
	number = strings.Join(strings.Fields(number), "")
	if number == "" {
		return defaultMaskedCard
	}
	if len(number) > 4 {
		number = number[len(number)-4:]
	}
	return "****" + number
}
