package handler

import (
	"net/http"

	"jewelry_store/internal/ledger"
	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler handles sales and their repayments
type TransactionHandler struct {
	service service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req model.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	transaction, err := h.service.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateTransaction", "Failed to create transaction", err)
		return
	}
	respond(c, http.StatusCreated, transaction)
}

// ListTransactions accepts customer_id, start_date, end_date and loans=true
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
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
	filters.OnlyLoans = c.Query("loans") == "true"

	transactions, err := h.service.ListTransactions(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "ListTransactions", "Failed to retrieve transactions", err)
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	respond(c, http.StatusOK, transactions)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	transaction, err := h.service.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetTransaction", "Failed to retrieve transaction", err)
		return
	}
	respond(c, http.StatusOK, transaction)
}

func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteTransaction", "Failed to delete transaction", err)
		return
	}
	respondMessage(c, http.StatusOK, "Transaction deleted successfully")
}

// ApplyPayment records a repayment against the open balance of a transaction
func (h *TransactionHandler) ApplyPayment(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	transaction, payment, err := h.service.ApplyPayment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "ApplyPayment", "Failed to apply payment", err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"transaction": transaction,
		"payment":     payment,
		"state":       ledger.State(transaction.Receipt),
	})
}

func (h *TransactionHandler) ListPayments(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	payments, err := h.service.ListPayments(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListPayments", "Failed to retrieve payments", err)
		return
	}
	respond(c, http.StatusOK, payments)
}

// RegisterTransactionRoutes registers transaction routes
func (h *TransactionHandler) RegisterTransactionRoutes(rg *gin.RouterGroup, authMW, staffMW, adminMW gin.HandlerFunc) {
	txRoutes := rg.Group("/transactions", authMW, staffMW)
	{
		txRoutes.POST("", h.CreateTransaction)
		txRoutes.GET("", h.ListTransactions)
		txRoutes.GET("/:id", h.GetTransaction)
		txRoutes.DELETE("/:id", adminMW, h.DeleteTransaction)
		txRoutes.POST("/:id/payments", h.ApplyPayment)
		txRoutes.GET("/:id/payments", h.ListPayments)
	}
}
