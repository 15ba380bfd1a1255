package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-service/models"
	"catalog-service/store"
)

const (
	msgInternalError   = "Internal Server Error"
	msgInvalidBody     = "Invalid request body"
	msgInvalidProduct  = "Invalid or missing product ID"
	msgProductNotFound = "Product not found"
	msgOrderNotFound   = "Order not found"
)

// EventPublisher receives a change event after every committed mutation.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

// bindDocument reads the request body as a JSON object.
func bindDocument(c *gin.Context) (models.Document, bool) {
	var body models.Document
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidBody})
		return nil, false
	}
	return body, true
}

// parsePositiveID parses a decimal id; zero, negative and non-numeric values
// are rejected.
func parsePositiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// respondStoreError maps a store error to 404 or a generic 500.
func respondStoreError(c *gin.Context, logger *zap.Logger, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrProductNotFound) || errors.Is(err, store.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: notFoundMsg})
		return
	}

	logger.Error("Store operation failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: msgInternalError})
}

func publish(c *gin.Context, publisher EventPublisher, logger *zap.Logger, event models.Event) {
	if err := publisher.Publish(c.Request.Context(), event); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("type", event.Type),
			zap.Int64("resource_id", event.ResourceID),
			zap.Error(err))
	}
}
