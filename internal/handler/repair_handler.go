package handler

import (
	"net/http"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

type RepairHandler struct {
	service service.RepairService
}

func NewRepairHandler(s service.RepairService) *RepairHandler {
	return &RepairHandler{service: s}
}

func (h *RepairHandler) CreateRepair(c *gin.Context) {
	var req model.RepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	repair, err := h.service.CreateRepair(c.Request.Context(), req)
	if err != nil {
		respondError(c, "CreateRepair", "Failed to create repair", err)
		return
	}
	respond(c, http.StatusCreated, repair)
}

func (h *RepairHandler) ListRepairs(c *gin.Context) {
	var status *model.RepairStatus
	if v := c.Query("status"); v != "" {
		s := model.RepairStatus(v)
		status = &s
	}
	repairs, err := h.service.ListRepairs(c.Request.Context(), status)
	if err != nil {
		respondError(c, "ListRepairs", "Failed to retrieve repairs", err)
		return
	}
	if repairs == nil {
		repairs = []model.Repair{}
	}
	respond(c, http.StatusOK, repairs)
}

func (h *RepairHandler) GetRepair(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	repair, err := h.service.GetRepair(c.Request.Context(), id)
	if err != nil {
		respondError(c, "GetRepair", "Failed to retrieve repair", err)
		return
	}
	respond(c, http.StatusOK, repair)
}

func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	var req model.RepairStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	repair, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, "UpdateStatus", "Failed to update repair status", err)
		return
	}
	respond(c, http.StatusOK, repair)
}

func (h *RepairHandler) DeleteRepair(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		badRequest(c, err)
		return
	}
	if err := h.service.DeleteRepair(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteRepair", "Failed to delete repair", err)
		return
	}
	respondMessage(c, http.StatusOK, "Repair deleted successfully")
}

func (h *RepairHandler) RegisterRepairRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	repairs := rg.Group("/repairs", authMW, staffMW)
	{
		repairs.POST("", h.CreateRepair)
		repairs.GET("", h.ListRepairs)
		repairs.GET("/:id", h.GetRepair)
		repairs.PATCH("/:id/status", h.UpdateStatus)
		repairs.DELETE("/:id", h.DeleteRepair)
	}
}
