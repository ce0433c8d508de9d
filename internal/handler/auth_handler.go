package handler

import (
	"net/http"

	"jewelry_store/internal/model"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type credentials struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func authPayload(user *model.User, token string) gin.H {
	return gin.H{
		"user_id": user.ID,
		"phone":   user.Phone,
		"role":    user.Role,
		"token":   token,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, "Register", "Failed to register user", err)
		return
	}
	respond(c, http.StatusCreated, authPayload(user, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(c, "Login", "Failed to login", err)
		return
	}
	respond(c, http.StatusOK, authPayload(user, token))
}

// CreateUser lets an admin open a staff or admin account
func (h *AuthHandler) CreateUser(c *gin.Context) {
	actorRole, err := getAuthRole(c)
	if err != nil {
		fail(c, http.StatusUnauthorized, err.Error())
		return
	}
	var req struct {
		credentials
		Role string `json:"role" binding:"required,oneof=admin staff"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), actorRole, req.Phone, req.Password, req.Role)
	if err != nil {
		respondError(c, "CreateUser", "Failed to create user", err)
		return
	}
	respond(c, http.StatusCreated, user)
}

// Me returns the signed-in account
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getAuthUser(c)
	if err != nil {
		fail(c, http.StatusUnauthorized, err.Error())
		return
	}
	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Me", "Failed to load account", err)
		return
	}
	respond(c, http.StatusOK, user)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMW, h.Me)
	}
	rg.POST("/admin/users", authMW, adminMW, h.CreateUser)
}
