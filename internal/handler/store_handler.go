package handler

import (
	"net/http"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

// StoreHandler serves the public storefront. No authentication.
type StoreHandler struct {
	service service.StoreService
}

func NewStoreHandler(s service.StoreService) *StoreHandler {
	return &StoreHandler{service: s}
}

func (h *StoreHandler) ListProducts(c *gin.Context) {
	karat, err := queryInt(c, "karat")
	if err != nil {
		badRequest(c, err)
		return
	}
	products, err := h.service.ListProducts(c.Request.Context(), c.Query("name"), karat)
	if err != nil {
		respondError(c, "ListStoreProducts", "Failed to retrieve products", err)
		return
	}
	if products == nil {
		products = []model.StoreProduct{}
	}
	respond(c, http.StatusOK, products)
}

func (h *StoreHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetStoreProduct", "Failed to retrieve product", err)
		return
	}
	respond(c, http.StatusOK, product)
}

func (h *StoreHandler) GoldRate(c *gin.Context) {
	gold, err := h.service.GoldRate(c.Request.Context())
	if err != nil {
		respondError(c, "GoldRate", "Failed to retrieve gold rate", err)
		return
	}
	respond(c, http.StatusOK, gold)
}

// RegisterStoreRoutes registers the storefront behind limitMW
func (h *StoreHandler) RegisterStoreRoutes(rg *gin.RouterGroup, limitMW gin.HandlerFunc) {
	store := rg.Group("/store", limitMW)
	{
		store.GET("/products", h.ListProducts)
		store.GET("/products/:id", h.GetProduct)
		store.GET("/gold-rate", h.GoldRate)
	}
}
