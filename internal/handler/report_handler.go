package handler

import (
	"fmt"
	"net/http"
	"time"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exposes the admin reports
type ReportHandler struct {
	service service.ReportService
	now     func() time.Time
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s, now: time.Now}
}

func (h *ReportHandler) DailySales(c *gin.Context) {
	day, err := utils.DayOrToday(c.Query("date"), h.now())
	if err != nil {
		badRequest(c, err)
		return
	}
	sales, err := h.service.DailySales(c.Request.Context(), day)
	if err != nil {
		respondError(c, "DailySales", "Failed to compute daily sales", err)
		return
	}
	respond(c, http.StatusOK, sales)
}

func (h *ReportHandler) ExpensesByType(c *gin.Context) {
	filters, err := expenseFilters(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	groups, err := h.service.ExpensesByType(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "ExpensesByType", "Failed to compute expenses", err)
		return
	}
	if groups == nil {
		groups = []model.ExpenseGroup{}
	}
	respond(c, http.StatusOK, groups)
}

func (h *ReportHandler) ExpensesByCurrency(c *gin.Context) {
	filters, err := expenseFilters(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	totals, err := h.service.ExpensesByCurrency(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "ExpensesByCurrency", "Failed to compute expenses", err)
		return
	}
	if totals == nil {
		totals = []model.CurrencyTotal{}
	}
	respond(c, http.StatusOK, totals)
}

func (h *ReportHandler) InventoryValue(c *gin.Context) {
	groups, err := h.service.InventoryValue(c.Request.Context())
	if err != nil {
		respondError(c, "InventoryValue", "Failed to compute inventory value", err)
		return
	}
	if groups == nil {
		groups = []model.InventoryGroup{}
	}
	respond(c, http.StatusOK, groups)
}

// OutstandingLoans accepts customer_id, start_date and end_date
func (h *ReportHandler) OutstandingLoans(c *gin.Context) {
	var filters model.TransactionFilters
	var err error
	if filters.CustomerID, err = queryInt64(c, "customer_id"); err != nil {
		badRequest(c, err)
		return
	}
	if filters.StartDate, err = queryDay(c, "start_date"); err != nil {
		badRequest(c, err)
		return
	}
	if filters.EndDate, err = queryDay(c, "end_date"); err != nil {
		badRequest(c, err)
		return
	}
	if filters.EndDate != nil {
		end := utils.EndOfDay(*filters.EndDate)
		filters.EndDate = &end
	}

	loans, err := h.service.OutstandingLoans(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "OutstandingLoans", "Failed to compute outstanding loans", err)
		return
	}
	if loans == nil {
		loans = []model.LoanGroup{}
	}
	respond(c, http.StatusOK, loans)
}

func (h *ReportHandler) SupplierBalances(c *gin.Context) {
	balances, err := h.service.SupplierBalances(c.Request.Context())
	if err != nil {
		respondError(c, "SupplierBalances", "Failed to compute supplier balances", err)
		return
	}
	if balances == nil {
		balances = []model.SupplierBalance{}
	}
	respond(c, http.StatusOK, balances)
}

func (h *ReportHandler) ExportWorkbook(c *gin.Context) {
	from, to, err := queryRange(c, h.now())
	if err != nil {
		badRequest(c, err)
		return
	}
	buf, err := h.service.ExportWorkbook(c.Request.Context(), from, utils.EndOfDay(to))
	if err != nil {
		respondError(c, "ExportWorkbook", "Failed to export reports", err)
		return
	}

	fileName := fmt.Sprintf("reports_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ReportHandler) RegisterReportRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	reports := rg.Group("/reports", authMW, adminMW)
	{
		reports.GET("/daily-sales", h.DailySales)
		reports.GET("/expenses/by-type", h.ExpensesByType)
		reports.GET("/expenses/by-currency", h.ExpensesByCurrency)
		reports.GET("/inventory", h.InventoryValue)
		reports.GET("/loans", h.OutstandingLoans)
		reports.GET("/suppliers", h.SupplierBalances)
		reports.GET("/export/xlsx", h.ExportWorkbook)
	}
}
