package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"veroxos/internal/modules/orders/application/handler"
	"veroxos/internal/modules/orders/application/usecase"
	"veroxos/internal/modules/orders/domain"
	restaurants "veroxos/internal/modules/restaurants/domain"
	"veroxos/internal/shared/httputil"
)

type createOrderRequest struct {
	RestaurantSlug string             `json:"restaurantSlug"`
	CustomerName   string             `json:"customerName"`
	Items          []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// OrdersHandler exposes the order write path plus the audit and
// notification feeds over HTTP.
type OrdersHandler struct {
	orders        *usecase.OrdersUseCase
	audit         *handler.AuditTrail
	notifications *handler.NotificationCenter
	mapper        *httputil.ErrorMapper
}

func NewOrdersHandler(
	orders *usecase.OrdersUseCase,
	audit *handler.AuditTrail,
	notifications *handler.NotificationCenter,
) *OrdersHandler {
	mapper := httputil.NewErrorMapper().
		WithMapping(restaurants.ErrRestaurantNotFound, http.StatusNotFound, "").
		WithMapping(domain.ErrOrderNotFound, http.StatusNotFound, "").
		WithMapping(domain.ErrInvalidTransition, http.StatusBadRequest, "")
	return &OrdersHandler{orders: orders, audit: audit, notifications: notifications, mapper: mapper}
}

// Register mounts the order routes on the echo instance.
func (h *OrdersHandler) Register(e *echo.Echo) {
	e.POST("/api/orders", h.create)
	e.GET("/api/orders/:id", h.findOne)
	e.PATCH("/api/orders/:id/status", h.updateStatus)
	e.GET("/api/audit", h.auditLog)
	e.GET("/api/notifications", h.notificationLog)
}

func (h *OrdersHandler) create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := validateCreateOrder(req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{Name: strings.TrimSpace(item.Name), Quantity: item.Quantity, Price: item.Price}
	}

	order, err := h.orders.Create(c.Request().Context(), usecase.CreateOrderInput{
		RestaurantSlug: req.RestaurantSlug,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		Items:          items,
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrdersHandler) findOne(c echo.Context) error {
	order, err := h.orders.FindOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrdersHandler) updateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	status, ok := domain.ParseStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status " + strings.TrimSpace(req.Status)})
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrdersHandler) auditLog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.audit.Entries(c.QueryParam("orderId")))
}

func (h *OrdersHandler) notificationLog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.notifications.Notifications(c.QueryParam("restaurantId")))
}

func (h *OrdersHandler) respondError(c echo.Context, err error) error {
	var transition *domain.InvalidTransitionError
	if errors.As(err, &transition) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": transition.Error()})
	}
	info := h.mapper.Map(err)
	return c.JSON(info.Status, echo.Map{"error": info.Message})
}

func validateCreateOrder(req createOrderRequest) string {
	if strings.TrimSpace(req.RestaurantSlug) == "" {
		return "restaurantSlug is required"
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return "customerName is required"
	}
	if len(req.Items) == 0 {
		return "at least one item is required"
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return "item name is required"
		}
		if item.Quantity < 1 {
			return "item quantity must be at least 1"
		}
		if item.Price < 0 {
			return "item price must not be negative"
		}
	}
	return ""
}
