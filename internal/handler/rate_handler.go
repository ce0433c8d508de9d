package handler

import (
	"net/http"
	"time"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// RateHandler serves exchange rates, gold rates and price suggestions
type RateHandler struct {
	service service.RateService
	now     func() time.Time
}

func NewRateHandler(s service.RateService) *RateHandler {
	return &RateHandler{service: s, now: time.Now}
}

func (h *RateHandler) day(c *gin.Context) (time.Time, bool) {
	day, err := utils.DayOrToday(c.Query("date"), h.now())
	if err != nil {
		badRequest(c, err)
		return time.Time{}, false
	}
	return day, true
}

func (h *RateHandler) SetRate(c *gin.Context) {
	var req model.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	rate, err := h.service.SetRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, "SetRate", "Failed to save currency rate", err)
		return
	}
	respond(c, http.StatusOK, rate)
}

// GetRate returns the rate of ?date= (default today); data is null when none is stored
func (h *RateHandler) GetRate(c *gin.Context) {
	day, ok := h.day(c)
	if !ok {
		return
	}
	rate, err := h.service.GetRate(c.Request.Context(), day)
	if err != nil {
		respondError(c, "GetRate", "Failed to get currency rate", err)
		return
	}
	respond(c, http.StatusOK, rate)
}

func (h *RateHandler) ListRates(c *gin.Context) {
	from, to, err := queryRange(c, h.now())
	if err != nil {
		badRequest(c, err)
		return
	}
	rates, err := h.service.ListRates(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "ListRates", "Failed to list currency rates", err)
		return
	}
	respond(c, http.StatusOK, rates)
}

func (h *RateHandler) SetGoldRate(c *gin.Context) {
	var req model.SetGoldRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	gold, err := h.service.SetGoldRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, "SetGoldRate", "Failed to save gold rate", err)
		return
	}
	respond(c, http.StatusOK, gold)
}

func (h *RateHandler) GetGoldRate(c *gin.Context) {
	var (
		gold *model.GoldRate
		err  error
	)
	if c.Query("date") == "" {
		gold, err = h.service.LatestGoldRate(c.Request.Context())
	} else {
		day, ok := h.day(c)
		if !ok {
			return
		}
		gold, err = h.service.GetGoldRate(c.Request.Context(), day)
	}
	if err != nil {
		respondError(c, "GetGoldRate", "Failed to get gold rate", err)
		return
	}
	respond(c, http.StatusOK, gold)
}

func (h *RateHandler) ListGoldRates(c *gin.Context) {
	from, to, err := queryRange(c, h.now())
	if err != nil {
		badRequest(c, err)
		return
	}
	rates, err := h.service.ListGoldRates(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, "ListGoldRates", "Failed to list gold rates", err)
		return
	}
	respond(c, http.StatusOK, rates)
}

// SuggestPrice prices ?gram=&karat=&wage= (wage per gram, AFN) from the latest gold rate
func (h *RateHandler) SuggestPrice(c *gin.Context) {
	var q struct {
		Gram  string `form:"gram" binding:"required"`
		Karat int    `form:"karat" binding:"required"`
		Wage  string `form:"wage"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	gram, err := decimal.NewFromString(q.Gram)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid gram")
		return
	}
	wage := decimal.Zero
	if q.Wage != "" {
		if wage, err = decimal.NewFromString(q.Wage); err != nil {
			fail(c, http.StatusBadRequest, "Invalid wage")
			return
		}
	}

	suggestion, err := h.service.SuggestPrice(c.Request.Context(), gram, q.Karat, wage)
	if err != nil {
		respondError(c, "SuggestPrice", "Failed to suggest price", err)
		return
	}
	respond(c, http.StatusOK, suggestion)
}

// RegisterRateRoutes registers rate routes. Reads are open to staff, writes need admin.
func (h *RateHandler) RegisterRateRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rates := rg.Group("/rates", authMW)
	{
		rates.GET("/currency", h.GetRate)
		rates.GET("/currency/history", h.ListRates)
		rates.POST("/currency", adminMW, h.SetRate)
		rates.GET("/gold", h.GetGoldRate)
		rates.GET("/gold/history", h.ListGoldRates)
		rates.POST("/gold", adminMW, h.SetGoldRate)
		rates.GET("/suggest-price", h.SuggestPrice)
	}
}
