package orders

import (
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "courier"
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryPost    DeliveryMethod = "post"
)

func (d DeliveryMethod) Valid() bool {
	switch d {
	case DeliveryCourier, DeliveryPickup, DeliveryPost:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PayCard        PaymentMethod = "card"
	PaySBP         PaymentMethod = "sbp"
	PayYandexSplit PaymentMethod = "yandex-split"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PayCard, PaySBP, PayYandexSplit:
		return true
	}
	return false
}

// PaymentStatus: pending -> completed | failed
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Status: pending -> processing -> shipped -> delivered, o cancelled.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Apartment  string `json:"apartment,omitempty"`
}

// Item guarda el precio unitario al momento del checkout.
type Item struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	PetID     string          `json:"petId,omitempty"`
}

// Order nunca se borra. Solo cambia por eventos de pago y de sincronización con 1C.
type Order struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Items       []Item          `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`

	DeliveryMethod  DeliveryMethod `json:"deliveryMethod"`
	DeliveryAddress *Address       `json:"deliveryAddress,omitempty"`
	PaymentMethod   PaymentMethod  `json:"paymentMethod"`

	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OrderStatus   Status        `json:"orderStatus"`

	SyncedWith1C bool   `json:"syncedWith1C"`
	Sync1CNumber string `json:"sync1CNumber,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
