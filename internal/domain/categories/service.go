package categories

import (
	"context"
	"fmt"
	"strings"

	"petshop/internal/platform/apperr"
)

var ErrNotFound = fmt.Errorf("category %w", apperr.ErrNotFound)

type Service struct {
	list   []Category
	byID   map[string]Category
	bySlug map[string]Category
}

func NewService(list []Category) *Service {
	s := &Service{
		list:   append([]Category(nil), list...),
		byID:   make(map[string]Category, len(list)),
		bySlug: make(map[string]Category, len(list)),
	}
	for _, c := range list {
		s.byID[c.ID] = c
		if c.Slug != "" {
			s.bySlug[c.Slug] = c
		}
	}
	return s
}

func (s *Service) List(ctx context.Context) []Category {
	return append([]Category{}, s.list...)
}

func (s *Service) GetByID(ctx context.Context, id string) (Category, error) {
	c, ok := s.byID[strings.TrimSpace(id)]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (Category, error) {
	c, ok := s.bySlug[strings.TrimSpace(slug)]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}
