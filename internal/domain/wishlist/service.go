// Package wishlist guarda por usuario los productos marcados como favoritos.
package wishlist

import (
	"context"
	"strings"

	"petshop/internal/domain/catalog"
	"petshop/internal/platform/apperr"
)

// Repository guarda ids de producto por usuario, en orden de alta y sin duplicados.
type Repository interface {
	List(ctx context.Context, userID string) ([]string, error)
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
}

type ProductLookup interface {
	GetByID(ctx context.Context, id string) (catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductLookup
}

func NewService(repo Repository, products ProductLookup) *Service {
	return &Service{repo: repo, products: products}
}

// List resuelve los ids contra el catálogo actual; los que ya no existen (import posterior) se omiten.
func (s *Service) List(ctx context.Context, userID string) ([]catalog.Product, error) {
	ids, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) Add(ctx context.Context, userID, productID string) error {
	productID = strings.TrimSpace(productID)
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Add(ctx, userID, productID)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.repo.Remove(ctx, userID, strings.TrimSpace(productID))
}
