package mockpay

import (
	"context"
	"strings"
	"testing"
	"time"

	"petshop/internal/domain/orders"
	"petshop/internal/domain/payments"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "****1234", MaskCard(""))
	assert.Equal(t, "****4242", MaskCard("4242 4242 4242 4242"))
	assert.Equal(t, "****12", MaskCard("12"))
}

func TestCharge_CardReceipt(t *testing.T) {
	g := NewCard(0)
	g.now = func() time.Time { return time.UnixMilli(1700000000123) }

	rec, err := g.Charge(context.Background(), payments.Charge{
		OrderID:    "order-1",
		Amount:     decimal.NewFromInt(1500),
		CardNumber: "5555444433331111",
	})
	require.NoError(t, err)

	assert.True(t, rec.Success)
	assert.Equal(t, "card-1700000000123", rec.PaymentID)
	assert.Equal(t, "order-1", rec.OrderID)
	assert.Equal(t, "completed", rec.Status)
	assert.Equal(t, "****1111", rec.MaskedCard)
	assert.Empty(t, rec.QRCode)
}

func TestCharge_SBPHasQRCode(t *testing.T) {
	rec, err := NewSBP(0).Charge(context.Background(), payments.Charge{OrderID: "o", Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)

	assert.Equal(t, orders.PaySBP, rec.Method)
	assert.True(t, strings.HasPrefix(rec.PaymentID, "sbp-"))
	assert.NotEmpty(t, rec.QRCode)
	assert.Empty(t, rec.MaskedCard)
}

func TestCharge_WaitsDelayEvenIfContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := NewYandexSplit(30*time.Millisecond).Charge(ctx, payments.Charge{OrderID: "o"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
