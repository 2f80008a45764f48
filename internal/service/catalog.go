package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/models"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/transport"
)

var skuPattern = regexp.MustCompile(`^SKU\d{8}$`)

type CatalogService struct {
	Repo *repo.CatalogRepo
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	category := &models.Category{Name: req.Name}
	if _, err := s.Repo.CreateCategory(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: category name already exists", ErrConflict)
		}
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, limit, offset int) (int64, []models.Product, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return 0, nil, fmt.Errorf("%w: min_price cannot exceed max_price", ErrValidation)
	}
	return s.Repo.ListProducts(ctx, f, limit, offset)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if !skuPattern.MatchString(req.SKU) {
		return nil, fmt.Errorf("%w: sku must match SKU+8 digits", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.InStock < 0 {
		return nil, fmt.Errorf("%w: in_stock cannot be negative", ErrValidation)
	}

	if _, err := s.Repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category not found", ErrNotFound)
		}
		return nil, err
	}

	product := &models.Product{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		InStock:    req.InStock,
	}
	if _, err := s.Repo.CreateProduct(ctx, product); err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("%w: product with same sku already exists", ErrConflict)
		}
		return nil, err
	}
	return product, nil
}
