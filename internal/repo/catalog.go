package repo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/models"
)

type CatalogRepo struct {
	DB *gorm.DB
}

func (r *CatalogRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CatalogRepo) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := models.Category{}
	if err := r.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepo) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (r *CatalogRepo) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetMany resolves products in one batched lookup; missing ids are simply
// absent from the returned map.
func (r *CatalogRepo) GetMany(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	return productsByID(r.DB.WithContext(ctx), ids)
}

func (r *CatalogRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

type ProductFilter struct {
	CategoryID *int64
	Query      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

func (r *CatalogRepo) ListProducts(ctx context.Context, f ProductFilter, limit, offset int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("lower(name) LIKE lower(?) OR lower(sku) LIKE lower(?)", pattern, pattern)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func productsByID(db *gorm.DB, ids []int64) (map[int64]models.Product, error) {
	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}
