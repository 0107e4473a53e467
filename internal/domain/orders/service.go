package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/domain/catalog"
	"petshop/internal/platform/apperr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = fmt.Errorf("order %w", apperr.ErrNotFound)

// ProductLookup resuelve el precio vigente de cada ítem.
type ProductLookup interface {
	GetByID(ctx context.Context, id string) (catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
	now      func() time.Time
	newID    func() string
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{
		repo:     repo,
		products: products,
		now:      time.Now,
		newID:    func() string { return "order-" + uuid.NewString() },
	}
}

type ItemInput struct {
	ProductID string
	Quantity  int
	PetID     string
}

type CreateInput struct {
	Items           []ItemInput
	DeliveryMethod  DeliveryMethod
	DeliveryAddress *Address
	PaymentMethod   PaymentMethod
}

// Create es el checkout: valida ítems, toma el precio del catálogo y deja el pedido en pending/pending.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Order, error) {
	if strings.TrimSpace(userID) == "" {
		return Order{}, apperr.ErrUnauthorized
	}

	ve := &apperr.ValidationError{Fields: map[string]string{}}
	if len(in.Items) == 0 {
		ve.Fields["items"] = "must contain at least one item"
	}
	if in.DeliveryMethod == "" {
		in.DeliveryMethod = DeliveryCourier
	}
	if !in.DeliveryMethod.Valid() {
		ve.Fields["deliveryMethod"] = "must be one of: courier, pickup, post"
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = PayCard
	}
	if !in.PaymentMethod.Valid() {
		ve.Fields["paymentMethod"] = "must be one of: card, sbp, yandex-split"
	}

	items := make([]Item, 0, len(in.Items))
	total := decimal.Zero
	for i, it := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if it.Quantity < 1 {
			ve.Fields[field+".quantity"] = "must be at least 1"
			continue
		}
		p, err := s.products.GetByID(ctx, strings.TrimSpace(it.ProductID))
		if err != nil {
			if apperr.IsNotFound(err) {
				ve.Fields[field+".productId"] = "unknown product"
				continue
			}
			return Order{}, err
		}

		items = append(items, Item{
			ProductID: p.ID,
			Quantity:  it.Quantity,
			Price:     p.Price,
			PetID:     strings.TrimSpace(it.PetID),
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	if len(ve.Fields) > 0 {
		return Order{}, ve
	}

	now := s.now()
	o := Order{
		ID:              s.newID(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		DeliveryMethod:  in.DeliveryMethod,
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   PaymentPending,
		OrderStatus:     StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Get: un pedido ajeno responde igual que uno inexistente.
func (s *Service) Get(ctx context.Context, userID, id string) (Order, error) {
	o, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkPaid pasa el pago a completed y el pedido a processing en una sola actualización.
// Un pedido que ya avanzó más allá de pending no retrocede.
func (s *Service) MarkPaid(ctx context.Context, id string) (Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		o.PaymentStatus = PaymentCompleted
		if o.OrderStatus == StatusPending {
			o.OrderStatus = StatusProcessing
		}
		o.UpdatedAt = s.now()
		return nil
	})
}

// MarkPaymentFailed no pisa un pago ya completado.
func (s *Service) MarkPaymentFailed(ctx context.Context, id string) (Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		if o.PaymentStatus == PaymentCompleted {
			return nil
		}
		o.PaymentStatus = PaymentFailed
		o.UpdatedAt = s.now()
		return nil
	})
}

// MarkSynced registra la referencia de 1C. No toca estados de pago ni de pedido.
func (s *Service) MarkSynced(ctx context.Context, id, ref string) (Order, error) {
	return s.repo.Update(ctx, id, func(o *Order) error {
		o.SyncedWith1C = true
		o.Sync1CNumber = ref
		o.UpdatedAt = s.now()
		return nil
	})
}
