package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axellelanca/catalog/internal/models"
	"github.com/axellelanca/catalog/internal/services"
)

func TestRetrieveProduct_AnonymousIsTracked(t *testing.T) {
	s := newTestServer(t)
	product := s.product("SKU-1", "Casco", "100")

	w := s.do(http.MethodGet, "/api/v1/products/SKU-1", "", nil,
		"X-Forwarded-For", "203.0.113.1, 70.41.3.18",
		"User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
	)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sku": "SKU-1", "name": "Casco", "price": "100.00", "brand": 1}`, w.Body.String())

	subs := s.dispatcher.named(services.TaskTrackProductRetrieve)
	require.Len(t, subs, 1)
	assert.Equal(t, product.ID, subs[0].args[0])
	meta, ok := subs[0].args[1].(models.VisitMetadata)
	require.True(t, ok)
	assert.Equal(t, "203.0.113.1", meta.IP)
	assert.Equal(t, models.DeviceMobile, meta.DeviceType)
	assert.Nil(t, meta.Referer)
}

func TestRetrieveProduct_AuthenticatedIsNotTracked(t *testing.T) {
	s := newTestServer(t)
	s.product("SKU-1", "Casco", "100")
	token := s.token(s.user("admin@example.com", "pw", true))

	w := s.do(http.MethodGet, "/api/v1/products/SKU-1", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.dispatcher.named(services.TaskTrackProductRetrieve))
}

func TestRetrieveProduct_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/products/missing", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, s.dispatcher.named(services.TaskTrackProductRetrieve))
}

func TestCreateProduct(t *testing.T) {
	s := newTestServer(t)
	brand := &models.Brand{Name: "Acme"}
	require.NoError(t, s.brands.CreateBrand(context.Background(), brand))
	token := s.token(s.user("admin@example.com", "pw", true))
	body := map[string]any{"sku": "NEW-1", "name": "Guantes", "price": "25.5", "brand": brand.ID}

	w := s.do(http.MethodPost, "/api/v1/products", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/products", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "25.50", decode[map[string]any](t, w)["price"])

	w = s.do(http.MethodPost, "/api/v1/products", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"sku": ["product with this sku already exists."]}`, w.Body.String())
}

func TestPatchProduct_NotifiesOtherAdmins(t *testing.T) {
	s := newTestServer(t)
	s.product("SKU-1", "Casco", "100")
	actor := s.user("actor@example.com", "pw", true)
	s.user("other@example.com", "pw", true)

	w := s.do(http.MethodPatch, "/api/v1/products/SKU-1", s.token(actor), map[string]any{"price": 120})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "120.00", decode[map[string]any](t, w)["price"])

	subs := s.dispatcher.named(services.TaskSendProductUpdateEmail)
	require.Len(t, subs, 1)
	assert.Equal(t, "[Catálogo] Producto actualizado: Casco (SKU-1)", subs[0].args[0])
	assert.Contains(t, subs[0].args[1], "Precio actual: $120.00")
	assert.Contains(t, subs[0].args[1], "Modificado por: actor@example.com")
	assert.Equal(t, []string{"other@example.com"}, subs[0].args[2])
}

func TestPutProduct_RequiresAllFields(t *testing.T) {
	s := newTestServer(t)
	s.product("SKU-1", "Casco", "100")
	token := s.token(s.user("admin@example.com", "pw", true))

	w := s.do(http.MethodPut, "/api/v1/products/SKU-1", token, map[string]any{"name": "Nuevo"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[map[string][]string](t, w)
	assert.Equal(t, []string{"This field is required."}, body["sku"])
	assert.Empty(t, s.dispatcher.named(services.TaskSendProductUpdateEmail))
}

func TestDeleteProduct_CascadesVisits(t *testing.T) {
	s := newTestServer(t)
	product := s.product("SKU-1", "Casco", "100")
	ctx := context.Background()
	require.NoError(t, s.visits.CreateVisit(ctx, &models.VisitRecord{ProductID: product.ID}))
	token := s.token(s.user("admin@example.com", "pw", true))

	w := s.do(http.MethodDelete, "/api/v1/products/SKU-1", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	count, err := s.visits.CountVisitsByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductStats_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	product := s.product("SKU-1", "Casco", "100")
	ctx := context.Background()
	require.NoError(t, s.visits.CreateVisit(ctx, &models.VisitRecord{ProductID: product.ID}))

	customer := s.token(s.user("customer@example.com", "pw", false))
	admin := s.token(s.user("admin@example.com", "pw", true))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/products/SKU-1/stats", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/products/SKU-1/stats", customer, nil).Code)

	w := s.do(http.MethodGet, "/api/v1/products/SKU-1/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, float64(1), body["total_visits"])
	assert.Equal(t, "SKU-1", body["sku"])
}
