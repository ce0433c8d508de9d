package handler

import (
	"errors"
	"net/http"

	"jewelry_store/internal/config"
	"jewelry_store/internal/ledger"
	"jewelry_store/internal/service"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

func badRequest(c *gin.Context, err error) {
	fail(c, http.StatusBadRequest, "Invalid request: "+err.Error())
}

// statusFor maps service and ledger errors to HTTP status codes. Zero means
// the error is unexpected and must not be shown to the client.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrValidation),
		errors.Is(err, service.ErrInvalidFileFormat),
		errors.Is(err, service.ErrFileSizeExceeded):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrMissingRate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrConflict), errors.Is(err, service.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	}
	return 0
}

// respondError writes the error envelope. Unexpected errors are logged with
// the handler name and replaced by fallback.
func respondError(c *gin.Context, funcName, fallback string, err error) {
	if status := statusFor(err); status != 0 {
		fail(c, status, err.Error())
		return
	}
	config.LogError(config.GetLogger(), "handler", funcName, fallback, c.Request.URL.Path, err)
	fail(c, http.StatusInternalServerError, fallback)
}
