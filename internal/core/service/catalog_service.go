package service

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

// CatalogService implements category and product use cases.
type CatalogService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	now        func() time.Time
}

func NewCatalogService(categories ports.CategoryRepository, products ports.ProductRepository) *CatalogService {
	return &CatalogService{categories: categories, products: products, now: time.Now}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in ports.CategoryInput) (*domain.Category, error) {
	now := s.now().UTC()
	return s.categories.Create(ctx, &domain.Category{
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in ports.CategoryInput) (*domain.Category, error) {
	cat, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cat.Name = in.Name
	cat.Description = in.Description
	cat.UpdatedAt = s.now().UTC()
	return s.categories.Update(ctx, cat)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return s.products.List(ctx, categoryID)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// CreateProduct stores a product after checking that every referenced
// category exists.
func (s *CatalogService) CreateProduct(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if err := s.checkCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	p := &domain.Product{CreatedAt: now}
	applyProductInput(p, in, now)
	return s.products.Create(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategories(ctx, in.CategoryIDs); err != nil {
		return nil, err
	}
	applyProductInput(p, in, s.now().UTC())
	return s.products.Update(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) checkCategories(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		if _, err := s.categories.FindByID(ctx, id); err != nil {
			return fmt.Errorf("category %d: %w", id, err)
		}
	}
	return nil
}

func applyProductInput(p *domain.Product, in ports.ProductInput, now time.Time) {
	p.Name = in.Name
	p.Description = in.Description
	p.DescriptionLong = in.DescriptionLong
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.CategoryIDs = append([]int64{}, in.CategoryIDs...)
	p.ImageURLs = append([]string{}, in.ImageURLs...)
	p.UpdatedAt = now
}
