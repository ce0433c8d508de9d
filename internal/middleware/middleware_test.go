package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jewelry_store/internal/config"
	"jewelry_store/internal/model"
	"jewelry_store/internal/ratelimit"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func protectedRouter(jwtUtil *utils.JWTUtil, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(jwtUtil)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetInt(AuthUserKey), "role": c.GetString(AuthRoleKey)})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	token, err := jwtUtil.GenerateToken(7, "+93701234567", model.RoleStaff)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := perform(protectedRouter(jwtUtil), http.MethodGet, "/protected", headers)
			assert.Equal(t, tt.status, w.Code)
			body := decode(t, w)
			if tt.status == http.StatusOK {
				assert.Equal(t, float64(7), body["user"])
				assert.Equal(t, model.RoleStaff, body["role"])
			} else {
				assert.Equal(t, false, body["success"])
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	r := protectedRouter(jwtUtil, AdminMiddleware())

	staff, _ := jwtUtil.GenerateToken(1, "+93701234567", model.RoleStaff)
	admin, _ := jwtUtil.GenerateToken(2, "+93701234568", model.RoleAdmin)

	w := perform(r, http.MethodGet, "/protected", map[string]string{"Authorization": "Bearer " + staff})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(r, http.MethodGet, "/protected", map[string]string{"Authorization": "Bearer " + admin})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware_WithoutJWT(t *testing.T) {
	r := gin.New()
	r.GET("/x", StaffMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 2, time.Minute)
	r := gin.New()
	r.GET("/store", RateLimit(limiter, "store"), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := perform(r, http.MethodGet, "/store", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w := perform(r, http.MethodGet, "/store", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	// a different client has its own budget
	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	req.RemoteAddr = "10.0.0.9:4242"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := gin.New()
	r.Use(RequestLogger(logger))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := perform(r, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	w = perform(r, http.MethodGet, "/ping", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetrics_UnmatchedRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/known/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodGet, "/known/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/nope", nil).Code)
}

func TestAuthRejectionsAreLogged(t *testing.T) {
	hook := logtest.NewLocal(config.GetLogger())
	defer hook.Reset()

	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	jwtUtil := utils.NewJWTUtil("test-secret", 1)
	r := gin.New()
	r.Use(RequestLogger(quiet))
	r.GET("/admin", JWTAuthMiddleware(jwtUtil), AdminMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/admin", map[string]string{
		"Authorization":  "Bearer expired-or-forged",
		RequestIDHeader: "req-1",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "Invalid or expired token", entry.Message)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Contains(t, entry.Data, logrus.ErrorKey)

	hook.Reset()
	staff, _ := jwtUtil.GenerateToken(5, "+93701234567", model.RoleStaff)
	w = perform(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + staff})
	require.Equal(t, http.StatusForbidden, w.Code)
	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, 5, entry.Data["user_id"])
	assert.Equal(t, "/admin", entry.Data["path"])
}
