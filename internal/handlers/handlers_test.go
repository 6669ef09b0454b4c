package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Skotchmaster/pos_system/internal/config"
	"github.com/Skotchmaster/pos_system/internal/middleware/auth"
	"github.com/Skotchmaster/pos_system/internal/models"
	"github.com/Skotchmaster/pos_system/internal/repo"
	"github.com/Skotchmaster/pos_system/internal/service"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Auth   *AuthHandler
	Shift  *ShiftHandler
	Order  *OrderHandler
	Tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	gormRepo := repo.New(db)
	shiftSvc := &service.ShiftService{Repo: gormRepo}
	orderSvc := &service.OrderService{DB: db, Repo: gormRepo, Shifts: shiftSvc}
	tokens := &auth.TokenService{
		DB:            db,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	return &testEnv{
		T:      t,
		E:      echo.New(),
		DB:     db,
		Auth:   &AuthHandler{DB: db, Tokens: tokens},
		Shift:  &ShiftHandler{Shifts: shiftSvc},
		Order:  &OrderHandler{Orders: orderSvc, Repo: gormRepo},
		Tokens: tokens,
	}
}

// doJSONRequest builds an echo context for a handler call; userID mimics what
// the auth middleware would have resolved.
func (env *testEnv) doJSONRequest(method, path string, body interface{}, userID uint) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	if userID != 0 {
		c.Set("userID", userID)
	}
	return rec, c
}

func (env *testEnv) createProduct(sku, price string, stock int) models.Product {
	env.T.Helper()
	p := models.Product{
		SKU:           sku,
		Name:          "Product " + sku,
		Price:         mustDec(price),
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func (env *testEnv) openShift(userID uint) {
	env.T.Helper()
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/shifts/open",
		map[string]string{"opening_cash": "100.00"}, userID)
	require.NoError(env.T, env.Shift.Open(c))
	require.Equal(env.T, http.StatusOK, rec.Code)
}

func mustDec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
