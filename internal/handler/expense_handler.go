package handler

import (
	"net/http"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	service service.ExpenseService
}

func NewExpenseHandler(s service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: s}
}

// expenseFilters reads type, currency, start_date and end_date
func expenseFilters(c *gin.Context) (model.ExpenseFilters, error) {
	var filters model.ExpenseFilters
	var err error
	if t := c.Query("type"); t != "" {
		filters.Type = &t
	}
	if filters.Currency, err = queryCurrency(c, "currency"); err != nil {
		return filters, err
	}
	if filters.StartDate, err = queryDay(c, "start_date"); err != nil {
		return filters, err
	}
	if filters.EndDate, err = queryDay(c, "end_date"); err != nil {
		return filters, err
	}
	if filters.EndDate != nil {
		end := utils.EndOfDay(*filters.EndDate)
		filters.EndDate = &end
	}
	return filters, nil
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req model.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	expense, err := h.service.CreateExpense(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateExpense", "Failed to create expense", err)
		return
	}
	respond(c, http.StatusCreated, expense)
}

func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	filters, err := expenseFilters(c)
	if err != nil {
		badRequest(c, err)
		return
	}
	expenses, err := h.service.ListExpenses(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "ListExpenses", "Failed to retrieve expenses", err)
		return
	}
	if expenses == nil {
		expenses = []model.Expense{}
	}
	respond(c, http.StatusOK, expenses)
}

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	expense, err := h.service.GetExpense(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetExpense", "Failed to retrieve expense", err)
		return
	}
	respond(c, http.StatusOK, expense)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	expense, err := h.service.UpdateExpense(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "UpdateExpense", "Failed to update expense", err)
		return
	}
	respond(c, http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.DeleteExpense(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteExpense", "Failed to delete expense", err)
		return
	}
	respondMessage(c, http.StatusOK, "Expense deleted successfully")
}

func (h *ExpenseHandler) RegisterExpenseRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	expenses := rg.Group("/expenses", authMW, staffMW)
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.ListExpenses)
		expenses.GET("/:id", h.GetExpense)
		expenses.PUT("/:id", h.UpdateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}
