package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orderdesk/order-api/internal/db"
	"github.com/orderdesk/order-api/internal/models"
	"github.com/orderdesk/order-api/internal/repo"
	"github.com/orderdesk/order-api/internal/service"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Users      *UserHandler
	Categories *CategoryHandler
	Products   *ProductHandler
	Orders     *OrderHandler
	Analytics  *AnalyticsHandler
	Search     *SearchHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gormDB))

	accounts := &repo.AccountRepo{DB: gormDB}
	catalog := &repo.CatalogRepo{DB: gormDB}
	orders := &repo.OrderRepo{DB: gormDB}
	analytics := &repo.AnalyticsRepo{DB: gormDB}

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: gormDB,

		Users:      &UserHandler{Svc: &service.AccountService{Repo: accounts}},
		Categories: &CategoryHandler{Svc: &service.CatalogService{Repo: catalog}},
		Products:   &ProductHandler{Svc: &service.CatalogService{Repo: catalog}},
		Orders: &OrderHandler{
			Svc: &service.OrderService{Orders: orders, Accounts: accounts, Catalog: catalog},
		},
		Analytics: &AnalyticsHandler{Svc: &service.AnalyticsService{Repo: analytics}},
		Search:    &SearchHandler{Index: "products"},
	}
}

func (env *testEnv) doJSONRequest(method, target string, body any) (*httptest.ResponseRecorder, echo.Context) {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedUser(email string) models.User {
	env.T.Helper()
	user := models.User{FullName: "Test User", Email: email}
	require.NoError(env.T, env.DB.Create(&user).Error)
	return user
}

func (env *testEnv) seedCategory(name string) models.Category {
	env.T.Helper()
	category := models.Category{Name: name}
	require.NoError(env.T, env.DB.Create(&category).Error)
	return category
}

func (env *testEnv) seedProduct(categoryID int64, sku, price string, stock int) models.Product {
	env.T.Helper()
	product := models.Product{
		CategoryID: categoryID,
		Name:       "product " + sku,
		SKU:        sku,
		Price:      decimal.RequireFromString(price),
		InStock:    stock,
	}
	require.NoError(env.T, env.DB.Create(&product).Error)
	return product
}
