package handler

import (
	"net/http"
	"strconv"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler manages the inventory for staff
type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateProduct", "Failed to create product", err)
		return
	}
	respond(c, http.StatusCreated, product)
}

// ListProducts accepts name, karat and is_sold
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var filters model.ProductFilters
	if name := c.Query("name"); name != "" {
		filters.Name = &name
	}
	karat, err := queryInt(c, "karat")
	if err != nil {
		badRequest(c, err)
		return
	}
	filters.Karat = karat
	if v := c.Query("is_sold"); v != "" {
		sold, err := strconv.ParseBool(v)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid is_sold")
			return
		}
		filters.IsSold = &sold
	}

	products, err := h.service.ListProducts(c.Request.Context(), filters)
	if err != nil {
		respondError(c, "ListProducts", "Failed to retrieve products", err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	respond(c, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetProduct", "Failed to retrieve product", err)
		return
	}
	respond(c, http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	product, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "UpdateProduct", "Failed to update product", err)
		return
	}
	respond(c, http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteProduct", "Failed to delete product", err)
		return
	}
	respondMessage(c, http.StatusOK, "Product deleted successfully")
}

// UploadImage takes the multipart field "image"
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	file, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "Image file is required: "+err.Error())
		return
	}

	product, err := h.service.UploadImage(c.Request.Context(), id, file)
	if err != nil {
		respondError(c, "UploadImage", "Failed to upload image", err)
		return
	}
	respond(c, http.StatusOK, product)
}

// RegisterProductRoutes registers product routes
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	products := rg.Group("/products", authMW, staffMW)
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.POST("/:id/image", h.UploadImage)
	}
}
