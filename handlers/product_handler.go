package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"catalog-service/models"
	"catalog-service/store"
)

const newPriceField = "newPrice"

type ProductHandler struct {
	store     *store.ProductStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewProductHandler(productStore *store.ProductStore, publisher EventPublisher, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		store:     productStore,
		publisher: publisher,
		logger:    logger,
	}
}

// Search handles GET /search. It returns the whole catalog.
func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.store.List(c.Request.Context())
	if err != nil {
		respondStoreError(c, h.logger, err, msgProductNotFound)
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	body, ok := bindDocument(c)
	if !ok {
		return
	}

	product, err := h.store.Create(c.Request.Context(), body)
	if err != nil {
		respondStoreError(c, h.logger, err, msgProductNotFound)
		return
	}

	productID, _ := product.ID()
	h.logger.Info("Created product", zap.Int64("product_id", productID))
	publish(c, h.publisher, h.logger, models.NewEvent(models.EventProductCreated, productID, product))

	c.JSON(http.StatusCreated, product)
}

// UpdatePrice handles PUT /products/update-price?id={productId}
func (h *ProductHandler) UpdatePrice(c *gin.Context) {
	productID, ok := parsePositiveID(c.Query("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidProduct})
		return
	}

	body, ok := bindDocument(c)
	if !ok {
		return
	}
	newPrice, hasPrice := body[newPriceField]

	product, err := h.store.UpdatePrice(c.Request.Context(), productID, newPrice, hasPrice)
	if err != nil {
		respondStoreError(c, h.logger, err, msgProductNotFound)
		return
	}

	h.logger.Info("Updated product price", zap.Int64("product_id", productID))
	publish(c, h.publisher, h.logger, models.NewEvent(models.EventProductPriceUpdated, productID, product))

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/delete?id={productId}
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, ok := parsePositiveID(c.Query("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msgInvalidProduct})
		return
	}

	product, err := h.store.Delete(c.Request.Context(), productID)
	if err != nil {
		respondStoreError(c, h.logger, err, msgProductNotFound)
		return
	}

	h.logger.Info("Deleted product", zap.Int64("product_id", productID))
	publish(c, h.publisher, h.logger, models.NewEvent(models.EventProductDeleted, productID, product))

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Product deleted successfully"})
}
