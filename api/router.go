package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"sales_ledger/internal/sales"
)

// InitRoutes registers the ledger endpoints on the given Gin engine.
// now supplies the reference date for preset windows; nil means time.Now.
func InitRoutes(e *gin.Engine, salesService *sales.Service, logger *zap.Logger, now func() time.Time) {
	if logger == nil {
		logger = zap.NewNop()
	}
	salesHandler := NewSalesHandler(salesService, logger, now)

	e.Use(RequestID(), AccessLog(logger))

	e.GET("/sales", salesHandler.handleGetSales)
	e.POST("/sales", salesHandler.handleCreateSale)
	e.GET("/sales/export.xlsx", salesHandler.handleExportSales)
	e.GET("/metrics", gin.WrapH(promhttp.Handler()))

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
}
