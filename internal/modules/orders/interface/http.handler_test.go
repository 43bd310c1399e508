package transport_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderhandler "veroxos/internal/modules/orders/application/handler"
	"veroxos/internal/modules/orders/application/usecase"
	"veroxos/internal/modules/orders/domain"
	orderinfra "veroxos/internal/modules/orders/infrastructure"
	transport "veroxos/internal/modules/orders/interface"
	restaurants "veroxos/internal/modules/restaurants/domain"
	restaurantinfra "veroxos/internal/modules/restaurants/infrastructure"
	"veroxos/internal/platform/events"
)

type testServer struct {
	echo   *echo.Echo
	orders *usecase.OrdersUseCase
	pizza  restaurants.Restaurant
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	restaurantRepo := restaurantinfra.NewMemoryRepository()
	orderRepo := orderinfra.NewMemoryRepository(restaurantRepo)
	pizza := restaurantRepo.Put(restaurants.Restaurant{Name: "Pizza Palace", Slug: "pizza-palace", IsActive: true})

	bus := events.NewBus()
	audit := orderhandler.NewAuditTrail()
	notifications := orderhandler.NewNotificationCenter()
	audit.Register(bus)
	notifications.Register(bus)

	orders := usecase.NewOrdersUseCase(orderRepo, restaurantRepo, bus)

	e := echo.New()
	transport.NewOrdersHandler(orders, audit, notifications).Register(e)

	return &testServer{echo: e, orders: orders, pizza: pizza}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) domain.Order {
	t.Helper()
	var order domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	return order
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

const validCreateBody = `{
	"restaurantSlug": "pizza-palace",
	"customerName": "John Doe",
	"items": [{"name": "Margherita Pizza", "quantity": 1, "price": 12.99}]
}`

func TestCreateOrderEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/orders", validCreateBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	order := decodeOrder(t, rec)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "John Doe", order.CustomerName)
	assert.Equal(t, s.pizza.ID, order.RestaurantID)
}

func TestCreateOrderValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing slug",
			body: `{"customerName": "John", "items": [{"name": "Soup", "quantity": 1, "price": 3}]}`,
			want: "restaurantSlug is required",
		},
		{
			name: "missing customer",
			body: `{"restaurantSlug": "pizza-palace", "items": [{"name": "Soup", "quantity": 1, "price": 3}]}`,
			want: "customerName is required",
		},
		{
			name: "no items",
			body: `{"restaurantSlug": "pizza-palace", "customerName": "John", "items": []}`,
			want: "at least one item is required",
		},
		{
			name: "zero quantity",
			body: `{"restaurantSlug": "pizza-palace", "customerName": "John", "items": [{"name": "Soup", "quantity": 0, "price": 3}]}`,
			want: "item quantity must be at least 1",
		},
		{
			name: "negative price",
			body: `{"restaurantSlug": "pizza-palace", "customerName": "John", "items": [{"name": "Soup", "quantity": 1, "price": -1}]}`,
			want: "item price must not be negative",
		},
		{
			name: "blank item name",
			body: `{"restaurantSlug": "pizza-palace", "customerName": "John", "items": [{"name": "  ", "quantity": 1, "price": 3}]}`,
			want: "item name is required",
		},
	}

	s := newTestServer(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/orders", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, errorField(t, rec))
		})
	}
}

func TestCreateOrderUnknownRestaurant(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/orders", `{
		"restaurantSlug": "no-such-place",
		"customerName": "John Doe",
		"items": [{"name": "Soup", "quantity": 1, "price": 3.99}]
	}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, errorField(t, rec), "not found")
}

func TestGetOrderEndpoint(t *testing.T) {
	s := newTestServer(t)
	created := decodeOrder(t, s.do(http.MethodPost, "/api/orders", validCreateBody))

	rec := s.do(http.MethodGet, "/api/orders/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	order := decodeOrder(t, rec)
	assert.Equal(t, created.ID, order.ID)
	require.NotNil(t, order.Restaurant)
	assert.Equal(t, "pizza-palace", order.Restaurant.Slug)

	rec = s.do(http.MethodGet, "/api/orders/missing-id", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	created := decodeOrder(t, s.do(http.MethodPost, "/api/orders", validCreateBody))

	rec := s.do(http.MethodPatch, "/api/orders/"+created.ID+"/status", `{"status": "confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, domain.StatusConfirmed, decodeOrder(t, rec).Status)
}

func TestUpdateStatusInvalidTransitionEndpoint(t *testing.T) {
	s := newTestServer(t)
	created := decodeOrder(t, s.do(http.MethodPost, "/api/orders", validCreateBody))

	rec := s.do(http.MethodPatch, "/api/orders/"+created.ID+"/status", `{"status": "READY"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t,
		"cannot transition order from PENDING to READY. Valid transitions: CONFIRMED, COMPLETED",
		errorField(t, rec))
}

func TestUpdateStatusUnknownStatusEndpoint(t *testing.T) {
	s := newTestServer(t)
	created := decodeOrder(t, s.do(http.MethodPost, "/api/orders", validCreateBody))

	rec := s.do(http.MethodPatch, "/api/orders/"+created.ID+"/status", `{"status": "SHIPPED"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown status SHIPPED", errorField(t, rec))
}

func TestUpdateStatusUnknownOrderEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPatch, "/api/orders/missing-id/status", `{"status": "CONFIRMED"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuditEndpoint(t *testing.T) {
	s := newTestServer(t)
	created := decodeOrder(t, s.do(http.MethodPost, "/api/orders", validCreateBody))
	s.do(http.MethodPatch, "/api/orders/"+created.ID+"/status", `{"status": "CONFIRMED"}`)

	rec := s.do(http.MethodGet, "/api/audit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []orderhandler.AuditEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "ORDER_CREATED", entries[0].Action)
	assert.Equal(t, "ORDER_STATUS_UPDATED", entries[1].Action)

	rec = s.do(http.MethodGet, "/api/audit?orderId="+created.ID, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)

	rec = s.do(http.MethodGet, "/api/audit?orderId=other", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	assert.Empty(t, entries)
}

func TestNotificationsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodPost, "/api/orders", validCreateBody)

	rec := s.do(http.MethodGet, "/api/notifications", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var notifications []orderhandler.Notification
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "NEW_ORDER", notifications[0].Type)
	assert.Equal(t, orderhandler.PriorityHigh, notifications[0].Priority)

	rec = s.do(http.MethodGet, "/api/notifications?restaurantId="+s.pizza.ID, "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	assert.Len(t, notifications, 1)
}

// A spot check that the write path is visible through a fresh read right
// after the request returns, since handlers run synchronously on publish.
func TestCreateThenListThroughUsecase(t *testing.T) {
	s := newTestServer(t)
	created := decodeOrder(t, s.do(http.MethodPost, "/api/orders", validCreateBody))

	list, err := s.orders.FindByRestaurantSlug(context.Background(), "pizza-palace", nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}
