package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareCountsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.DELETE("/order/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/order/:id", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/order/"+id, nil)
		router.ServeHTTP(w, req)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMiddlewareLabelsUnmatchedRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/nowhere", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestObserveStoreOperation(t *testing.T) {
	counter := StoreOperationsTotal.WithLabelValues("orders", "delete", ResultNotFound)
	before := testutil.ToFloat64(counter)

	ObserveStoreOperation("orders", "delete", ResultNotFound)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveStoreOperation("products", "list", ResultOK)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "catalog_store_operations_total"))
}
