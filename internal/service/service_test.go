package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/db"
	"github.com/orderdesk/order-api/internal/models"
	"github.com/orderdesk/order-api/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and
	// serializes concurrent transactions the way Postgres row locks would
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

type testServices struct {
	DB        *gorm.DB
	Accounts  *AccountService
	Catalog   *CatalogService
	Orders    *OrderService
	Analytics *AnalyticsService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	gormDB := newTestDB(t)
	accounts := &repo.AccountRepo{DB: gormDB}
	catalog := &repo.CatalogRepo{DB: gormDB}
	orders := &repo.OrderRepo{DB: gormDB}
	analytics := &repo.AnalyticsRepo{DB: gormDB}

	return &testServices{
		DB:        gormDB,
		Accounts:  &AccountService{Repo: accounts},
		Catalog:   &CatalogService{Repo: catalog},
		Orders:    &OrderService{Orders: orders, Accounts: accounts, Catalog: catalog},
		Analytics: &AnalyticsService{Repo: analytics},
	}
}

func seedUser(t *testing.T, gormDB *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{FullName: "Test User", Email: email}
	require.NoError(t, gormDB.Create(&user).Error)
	return user
}

func seedCategory(t *testing.T, gormDB *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, gormDB.Create(&category).Error)
	return category
}

func seedProduct(t *testing.T, gormDB *gorm.DB, categoryID int64, sku, price string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		CategoryID: categoryID,
		Name:       "product " + sku,
		SKU:        sku,
		Price:      decimal.RequireFromString(price),
		InStock:    stock,
	}
	require.NoError(t, gormDB.Create(&product).Error)
	return product
}

func productStock(t *testing.T, gormDB *gorm.DB, id int64) int {
	t.Helper()
	var product models.Product
	require.NoError(t, gormDB.First(&product, id).Error)
	return product.InStock
}
