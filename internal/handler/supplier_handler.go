package handler

import (
	"net/http"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

// SupplierHandler manages suppliers and the gold bought from them
type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(s service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req model.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	supplier, err := h.service.CreateSupplier(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateSupplier", "Failed to create supplier", err)
		return
	}
	respond(c, http.StatusCreated, supplier)
}

func (h *SupplierHandler) ListSuppliers(c *gin.Context) {
	suppliers, err := h.service.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, "ListSuppliers", "Failed to retrieve suppliers", err)
		return
	}
	if suppliers == nil {
		suppliers = []model.Supplier{}
	}
	respond(c, http.StatusOK, suppliers)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	supplier, err := h.service.GetSupplier(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetSupplier", "Failed to retrieve supplier", err)
		return
	}
	respond(c, http.StatusOK, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.SupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	supplier, err := h.service.UpdateSupplier(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "UpdateSupplier", "Failed to update supplier", err)
		return
	}
	respond(c, http.StatusOK, supplier)
}

func (h *SupplierHandler) DeleteSupplier(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.DeleteSupplier(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteSupplier", "Failed to delete supplier", err)
		return
	}
	respondMessage(c, http.StatusOK, "Supplier deleted successfully")
}

func (h *SupplierHandler) AddPurchase(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.SupplierPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	purchase, err := h.service.AddPurchase(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "AddPurchase", "Failed to record purchase", err)
		return
	}
	respond(c, http.StatusCreated, purchase)
}

func (h *SupplierHandler) ListPurchases(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	purchases, err := h.service.ListPurchases(c.Request.Context(), id)
	if err != nil {
		respondError(c, "ListPurchases", "Failed to retrieve purchases", err)
		return
	}
	respond(c, http.StatusOK, purchases)
}

func (h *SupplierHandler) Balance(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	balances, err := h.service.Balance(c.Request.Context(), id)
	if err != nil {
		respondError(c, "Balance", "Failed to compute supplier balance", err)
		return
	}
	respond(c, http.StatusOK, balances)
}

func (h *SupplierHandler) RegisterSupplierRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	suppliers := rg.Group("/suppliers", authMW, staffMW)
	{
		suppliers.POST("", h.CreateSupplier)
		suppliers.GET("", h.ListSuppliers)
		suppliers.GET("/:id", h.GetSupplier)
		suppliers.PUT("/:id", h.UpdateSupplier)
		suppliers.DELETE("/:id", h.DeleteSupplier)
		suppliers.POST("/:id/purchases", h.AddPurchase)
		suppliers.GET("/:id/purchases", h.ListPurchases)
		suppliers.GET("/:id/balance", h.Balance)
	}
}
