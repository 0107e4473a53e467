// Package erp integra pedidos y catálogo con 1C.
package erp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petshop/internal/domain/catalog"
	"petshop/internal/domain/orders"
	"petshop/internal/platform/logger"
)

// Syncer envía un pedido a 1C y devuelve el número asignado allá.
type Syncer interface {
	Sync(ctx context.Context, o orders.Order) (string, error)
}

type OrderStore interface {
	Get(ctx context.Context, userID, id string) (orders.Order, error)
	MarkSynced(ctx context.Context, id, ref string) (orders.Order, error)
}

type CatalogImporter interface {
	Import(ctx context.Context, raws []catalog.Record) (int, error)
}

type Service struct {
	syncer  Syncer
	orders  OrderStore
	catalog CatalogImporter
	log     logger.Logger
	now     func() time.Time
}

func NewService(syncer Syncer, orderStore OrderStore, importer CatalogImporter, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		syncer:  syncer,
		orders:  orderStore,
		catalog: importer,
		log:     log,
		now:     time.Now,
	}
}

type SyncResult struct {
	Success      bool      `json:"success"`
	OrderID      string    `json:"orderId"`
	Sync1CNumber string    `json:"sync1CNumber"`
	SyncedAt     time.Time `json:"syncedAt"`
	Message      string    `json:"message"`
}

type SyncStatus struct {
	OrderID      string        `json:"orderId"`
	SyncedWith1C bool          `json:"syncedWith1C"`
	Sync1CNumber *string       `json:"sync1CNumber"`
	OrderStatus  orders.Status `json:"orderStatus"`
}

type ImportResult struct {
	Success       bool   `json:"success"`
	ImportedCount int    `json:"importedCount"`
	Message       string `json:"message"`
}

// SyncOrder manda el pedido a 1C y guarda la referencia. No toca los estados del pedido.
func (s *Service) SyncOrder(ctx context.Context, userID, orderID string) (SyncResult, error) {
	orderID = strings.TrimSpace(orderID)
	o, err := s.orders.Get(ctx, userID, orderID)
	if err != nil {
		return SyncResult{}, err
	}

	ref, err := s.syncer.Sync(ctx, o)
	if err != nil {
		return SyncResult{}, fmt.Errorf("sync order %s: %w", orderID, err)
	}

	if _, err := s.orders.MarkSynced(ctx, orderID, ref); err != nil {
		return SyncResult{}, err
	}

	s.log.Info("order synced with 1C", map[string]any{"order_id": orderID, "sync_1c_number": ref})
	return SyncResult{
		Success:      true,
		OrderID:      orderID,
		Sync1CNumber: ref,
		SyncedAt:     s.now(),
		Message:      "Order successfully synchronized with 1C",
	}, nil
}

func (s *Service) Status(ctx context.Context, userID, orderID string) (SyncStatus, error) {
	o, err := s.orders.Get(ctx, userID, orderID)
	if err != nil {
		return SyncStatus{}, err
	}

	st := SyncStatus{
		OrderID:      o.ID,
		SyncedWith1C: o.SyncedWith1C,
		OrderStatus:  o.OrderStatus,
	}
	if o.Sync1CNumber != "" {
		ref := o.Sync1CNumber
		st.Sync1CNumber = &ref
	}
	return st, nil
}

// ImportCatalog reemplaza el catálogo completo con lo que manda 1C.
func (s *Service) ImportCatalog(ctx context.Context, records []catalog.Record) (ImportResult, error) {
	n, err := s.catalog.Import(ctx, records)
	if err != nil {
		return ImportResult{}, err
	}

	s.log.Info("catalog imported", map[string]any{"count": n})
	return ImportResult{
		Success:       true,
		ImportedCount: n,
		Message:       fmt.Sprintf("Successfully imported %d products from 1C", n),
	}, nil
}
