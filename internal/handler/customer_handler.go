package handler

import (
	"net/http"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service service.CustomerService
}

func NewCustomerHandler(s service.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: s}
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req model.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.service.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateCustomer", "Failed to create customer", err)
		return
	}
	respond(c, http.StatusCreated, customer)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.service.ListCustomers(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, "ListCustomers", "Failed to retrieve customers", err)
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	respond(c, http.StatusOK, customers)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.service.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetCustomer", "Failed to retrieve customer", err)
		return
	}
	respond(c, http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	customer, err := h.service.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "UpdateCustomer", "Failed to update customer", err)
		return
	}
	respond(c, http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteCustomer", "Failed to delete customer", err)
		return
	}
	respondMessage(c, http.StatusOK, "Customer deleted successfully")
}

func (h *CustomerHandler) RegisterCustomerRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	customers := rg.Group("/customers", authMW, staffMW)
	{
		customers.POST("", h.CreateCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.DELETE("/:id", h.DeleteCustomer)
	}
}
