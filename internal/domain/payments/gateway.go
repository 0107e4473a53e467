package payments

import (
	"context"
	"time"

	"petshop/internal/domain/orders"

	"github.com/shopspring/decimal"
)

type Method = orders.PaymentMethod

// Charge es lo que el cliente pide cobrar.
type Charge struct {
	OrderID    string
	Amount     decimal.Decimal
	CardNumber string // solo card; se usa para enmascarar
}

// Receipt es la respuesta del proveedor.
type Receipt struct {
	Success    bool            `json:"success"`
	PaymentID  string          `json:"paymentId"`
	OrderID    string          `json:"orderId"`
	Amount     decimal.Decimal `json:"amount"`
	Method     Method          `json:"method"`
	Status     string          `json:"status"`
	MaskedCard string          `json:"maskedCard,omitempty"`
	QRCode     string          `json:"qrCode,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Gateway es un proveedor de pago por método.
// Las implementaciones pueden bloquear (latencia del proveedor).
type Gateway interface {
	Method() Method
	Charge(ctx context.Context, c Charge) (Receipt, error)
}
