package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-service/models"
	"catalog-service/store"
)

type OrderHandler struct {
	store     *store.OrderStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewOrderHandler(orderStore *store.OrderStore, publisher EventPublisher, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		store:     orderStore,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrder handles POST /order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	body, ok := bindDocument(c)
	if !ok {
		return
	}

	order, err := h.store.Create(c.Request.Context(), body)
	if err != nil {
		respondStoreError(c, h.logger, err, msgOrderNotFound)
		return
	}

	orderID, _ := order.ID()
	h.logger.Info("Created order", zap.Int64("order_id", orderID))
	publish(c, h.publisher, h.logger, models.NewEvent(models.EventOrderCreated, orderID, order))

	c.JSON(http.StatusCreated, order)
}

// ListOrders handles GET /status
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, err, msgOrderNotFound)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// DeleteOrder handles DELETE /order/{id}. An id that is not an integer
// cannot match any order.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: msgOrderNotFound})
		return
	}

	order, err := h.store.Delete(c.Request.Context(), orderID)
	if err != nil {
		respondStoreError(c, h.logger, err, msgOrderNotFound)
		return
	}

	h.logger.Info("Deleted order", zap.Int64("order_id", orderID))
	publish(c, h.publisher, h.logger, models.NewEvent(models.EventOrderDeleted, orderID, order))

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Order deleted successfully"})
}
