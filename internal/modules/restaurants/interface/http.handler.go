package transport

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	ordersusecase "veroxos/internal/modules/orders/application/usecase"
	orders "veroxos/internal/modules/orders/domain"
	"veroxos/internal/modules/restaurants/application/usecase"
	"veroxos/internal/modules/restaurants/domain"
	"veroxos/internal/shared/httputil"
)

// RestaurantsHandler exposes restaurant discovery and per-restaurant order
// listings.
type RestaurantsHandler struct {
	restaurants *usecase.RestaurantsUseCase
	orders      *ordersusecase.OrdersUseCase
	mapper      *httputil.ErrorMapper
}

func NewRestaurantsHandler(
	restaurants *usecase.RestaurantsUseCase,
	orders *ordersusecase.OrdersUseCase,
) *RestaurantsHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(domain.ErrRestaurantNotFound, http.StatusNotFound, "")
	return &RestaurantsHandler{restaurants: restaurants, orders: orders, mapper: mapper}
}

// Register mounts the restaurant routes on the echo instance.
func (h *RestaurantsHandler) Register(e *echo.Echo) {
	e.GET("/api/restaurants", h.list)
	e.GET("/api/restaurants/:slug", h.findBySlug)
	e.GET("/api/restaurants/:slug/orders", h.listOrders)
}

func (h *RestaurantsHandler) list(c echo.Context) error {
	restaurants, err := h.restaurants.ListActive(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, restaurants)
}

func (h *RestaurantsHandler) findBySlug(c echo.Context) error {
	restaurant, err := h.restaurants.FindBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantsHandler) listOrders(c echo.Context) error {
	var statusFilter *orders.Status
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status, ok := orders.ParseStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status " + raw})
		}
		statusFilter = &status
	}

	list, err := h.orders.FindByRestaurantSlug(c.Request().Context(), c.Param("slug"), statusFilter)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RestaurantsHandler) respondError(c echo.Context, err error) error {
	info := h.mapper.Map(err)
	return c.JSON(info.Status, echo.Map{"error": info.Message})
}
