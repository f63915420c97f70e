package service

import (
	"context"
	"fmt"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository"
)

// CatalogService serves the list of offered services.
type CatalogService struct {
	repo repository.ServiceItemRepository
}

func NewCatalogService(repo repository.ServiceItemRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListActive groups active items by type.
func (s *CatalogService) ListActive(ctx context.Context) (domain.Catalog, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("list catalog: %w", err)
	}
	return domain.NewCatalog(items), nil
}
