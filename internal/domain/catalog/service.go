package catalog

import (
	"context"
	"fmt"
	"strings"

	"petshop/internal/platform/apperr"
	"petshop/internal/platform/logger"
)

var ErrNotFound = fmt.Errorf("product %w", apperr.ErrNotFound)

type Service struct {
	repo     Repository
	snapshot SnapshotWriter
	log      logger.Logger
	newID    func() string
}

// NewService: snapshot puede ser nil (sin copia en disco).
func NewService(repo Repository, snapshot SnapshotWriter, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		snapshot: snapshot,
		log:      log,
		newID:    NewImportID,
	}
}

func (s *Service) List(ctx context.Context, q Query) (Page, error) {
	if err := q.Validate(); err != nil {
		return Page{}, err
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		return Page{}, err
	}
	return Apply(all, q)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) All(ctx context.Context) ([]Product, error) {
	return s.repo.All(ctx)
}

func (s *Service) FilterOptions(ctx context.Context) (FilterOptions, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return Options(all), nil
}

// Import reemplaza el catálogo completo (no es merge) y devuelve cuántos productos quedaron.
// La copia en disco es best-effort: si falla se loguea y se sigue.
func (s *Service) Import(ctx context.Context, raws []Record) (int, error) {
	products := FromRecords(raws, s.newID)

	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return 0, err
	}

	if s.snapshot != nil {
		if err := s.snapshot.Write(ctx, products); err != nil {
			s.log.Warn("catalog snapshot write failed", map[string]any{"error": err})
		} else {
			s.log.Info("catalog snapshot written", map[string]any{"count": len(products)})
		}
	}

	return len(products), nil
}
