package catalog

import "context"

// Repository es el Catalog Store. No hay upsert: el catálogo solo se reemplaza completo.
type Repository interface {
	All(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	ReplaceAll(ctx context.Context, products []Product) error
}

// SnapshotWriter persiste (best-effort) una copia del catálogo importado.
type SnapshotWriter interface {
	Write(ctx context.Context, products []Product) error
}
