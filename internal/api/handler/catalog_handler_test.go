package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/storefront/catalog-api/internal/core/domain"
	"github.com/storefront/catalog-api/internal/core/ports"
)

type stubCatalogService struct {
	ports.CatalogService
	listCategory  int64
	createdInput  ports.ProductInput
	categoryInput ports.CategoryInput
	err           error
}

func (s *stubCatalogService) ListProducts(_ context.Context, categoryID int64) ([]*domain.Product, error) {
	s.listCategory = categoryID
	return []*domain.Product{}, s.err
}

func (s *stubCatalogService) CreateProduct(_ context.Context, in ports.ProductInput) (*domain.Product, error) {
	s.createdInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: 1, Name: in.Name, Price: in.Price}, nil
}

func (s *stubCatalogService) CreateCategory(_ context.Context, in ports.CategoryInput) (*domain.Category, error) {
	s.categoryInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Category{ID: 1, Name: in.Name}, nil
}

func TestCatalogHandler_ListProductsFilter(t *testing.T) {
	stub := &stubCatalogService{}
	c, rec := newJSONContext(http.MethodGet, "/api/products?category=4", "")

	if err := NewCatalogHandler(stub).ListProducts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.listCategory != 4 || rec.Code != http.StatusOK {
		t.Fatalf("category=%d status=%d", stub.listCategory, rec.Code)
	}

	c, _ = newJSONContext(http.MethodGet, "/api/products?category=x", "")
	var he *echo.HTTPError
	if err := NewCatalogHandler(stub).ListProducts(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad category, got %v", err)
	}
}

func TestCatalogHandler_CreateProduct(t *testing.T) {
	stub := &stubCatalogService{}
	body := `{"name":"Robot","description":"a toy","price":30,"quantity":2,"category_ids":[1],"image_urls":["https://img.example.com/robot.png"]}`
	c, rec := newJSONContext(http.MethodPost, "/api/products", body)

	if err := NewCatalogHandler(stub).CreateProduct(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if stub.createdInput.Name != "Robot" || stub.createdInput.Quantity != 2 || len(stub.createdInput.ImageURLs) != 1 {
		t.Fatalf("unexpected input: %+v", stub.createdInput)
	}
}

func TestCatalogHandler_CreateProductValidation(t *testing.T) {
	for _, body := range []string{
		`{"name":"Robot","description":"a toy","price":0}`,
		`{"name":"","description":"a toy","price":3}`,
		`{"name":"Robot","description":"a toy","price":3,"image_urls":["not a url"]}`,
	} {
		c, _ := newJSONContext(http.MethodPost, "/api/products", body)
		var ve *ValidationError
		if err := NewCatalogHandler(&stubCatalogService{}).CreateProduct(c); !errors.As(err, &ve) {
			t.Fatalf("body %s: expected ValidationError, got %v", body, err)
		}
	}
}

func TestCatalogHandler_CreateCategoryConflict(t *testing.T) {
	stub := &stubCatalogService{err: domain.ErrCategoryExists}
	c, _ := newJSONContext(http.MethodPost, "/api/categories", `{"name":"Books"}`)

	if err := NewCatalogHandler(stub).CreateCategory(c); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if stub.categoryInput.Name != "Books" {
		t.Fatalf("unexpected input: %+v", stub.categoryInput)
	}
}
