package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sales_ledger/internal/export"
	"sales_ledger/internal/sales"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// salesHandler holds the sales service and implements HTTP handlers for the ledger view.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
	now          func() time.Time
}

// NewSalesHandler creates a new sales handler. now supplies the reference
// date for presets.
func NewSalesHandler(salesService *sales.Service, logger *zap.Logger, now func() time.Time) *salesHandler {
	if now == nil {
		now = time.Now
	}
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
		now:          now,
	}
}

// parseQuery turns the view's query string into a QueryRequest.
//
//	start, end  explicit inclusive bounds (YYYY-MM-DD), either may be omitted
//	preset      today|week|month, overrides start/end
//	ref         reference date for the preset, defaults to today
//	sort, dir   current sort spec, defaults to date/desc
//	toggle      column header clicked; applied on top of sort/dir
func (h *salesHandler) parseQuery(ctx *gin.Context) (sales.QueryRequest, error) {
	var req sales.QueryRequest

	if preset := ctx.Query("preset"); preset != "" {
		ref := h.now()
		if raw := ctx.Query("ref"); raw != "" {
			t, err := time.ParseInLocation(sales.DateLayout, raw, ref.Location())
			if err != nil || !sales.Date(raw).Valid() {
				return req, fmt.Errorf("invalid ref date %q: want YYYY-MM-DD", raw)
			}
			ref = t
		}
		req.Window = sales.ResolvePreset(sales.Preset(preset), ref)
	} else {
		for _, bound := range []struct {
			name string
			dst  *sales.Date
		}{{"start", &req.Window.Start}, {"end", &req.Window.End}} {
			raw := ctx.Query(bound.name)
			if raw == "" {
				continue
			}
			d, err := sales.ParseDate(raw)
			if err != nil {
				return req, fmt.Errorf("invalid %s date %q: %w", bound.name, raw, err)
			}
			*bound.dst = d
		}
	}

	req.Sort = sales.DefaultSortSpec()
	if key := ctx.Query("sort"); key != "" {
		req.Sort = sales.SortSpec{Key: sales.SortKey(key), Direction: sales.ParseDirection(ctx.Query("dir"))}
	}
	if toggle := ctx.Query("toggle"); toggle != "" {
		req.Sort = sales.NextSortSpec(req.Sort, sales.SortKey(toggle))
	}
	if !req.Sort.Key.Valid() {
		h.logger.Warn("unknown sort key, keeping input order", zap.String("sort_key", string(req.Sort.Key)))
	}

	return req, nil
}

// handleGetSales handles the GET /sales endpoint.
func (h *salesHandler) handleGetSales(ctx *gin.Context) {
	req, err := h.parseQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.salesService.Query(req)
	if err != nil {
		h.logger.Error("error querying sales", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"results": view.Records,
		"summary": view.Summary,
		"showing": gin.H{"filtered": view.FilteredCount, "total": view.TotalCount},
		"window":  view.Window,
		"sort":    view.Sort,
	})
}

// handleExportSales handles the GET /sales/export.xlsx endpoint.
func (h *salesHandler) handleExportSales(ctx *gin.Context) {
	req, err := h.parseQuery(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.salesService.Query(req)
	if err != nil {
		h.logger.Error("error querying sales for export", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query sales"})
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, view); err != nil {
		h.logger.Error("failed to render workbook", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export sales"})
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="sales.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// handleCreateSale handles the POST /sales endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	var req struct {
		Date      string          `json:"date"`
		Product   string          `json:"product"`
		Quantity  int             `json:"quantity"`
		UnitPrice decimal.Decimal `json:"unitPrice"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind JSON request", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	sale, err := h.salesService.AddSale(req.Date, req.Product, req.Quantity, req.UnitPrice)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create sale"})
		return
	}

	ctx.JSON(http.StatusCreated, sale)
}
