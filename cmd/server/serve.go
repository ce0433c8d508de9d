package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jewelry_store/internal/config"
	"jewelry_store/internal/handler"
	"jewelry_store/internal/middleware"
	"jewelry_store/internal/ratelimit"
	"jewelry_store/internal/repository"
	"jewelry_store/internal/service"
	"jewelry_store/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const uploadsURL = "/uploads"

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

// limiterStore returns a Redis store when REDIS_ADDRESS is set so that several
// instances share counters, otherwise an in-process store that is swept until ctx ends.
func limiterStore(ctx context.Context, appCfg *config.AppConfig, sweepWindow time.Duration) (ratelimit.Store, func()) {
	logger := config.GetLogger()
	if appCfg.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{Addr: appCfg.RedisAddress})
		if err := client.Ping(ctx).Err(); err != nil {
			config.LogError(logger, "main", "limiterStore", "redis ping failed, falling back to memory", appCfg.RedisAddress, err)
			client.Close()
		} else {
			logger.WithField("address", appCfg.RedisAddress).Info("rate limiter uses redis")
			return ratelimit.NewRedisStore(client), func() { client.Close() }
		}
	}

	store := ratelimit.NewMemoryStore()
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				store.Sweep(now, sweepWindow)
			}
		}
	}()
	return store, func() {}
}

func corsConfig(appCfg *config.AppConfig) cors.Config {
	corsConfig := cors.DefaultConfig()
	// production requires an explicit allowlist; empty denies every origin
	if appCfg.IsProduction() {
		corsConfig.AllowOrigins = appCfg.CORSOrigins
		if len(corsConfig.AllowOrigins) == 0 {
			corsConfig.AllowOriginFunc = func(string) bool { return false }
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", middleware.RequestIDHeader)
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition", middleware.RequestIDHeader)
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	return corsConfig
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := config.GetLogger()
	decimal.MarshalJSONWithoutQuotes = true

	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(appCfg.UploadsDir, os.ModePerm); err != nil {
		config.LogError(logger, "main", "runServe", "create uploads directory", appCfg.UploadsDir, err)
		return err
	}
	logger.Infof("Uploads will be stored in: %s", appCfg.UploadsDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database Connection ---
	dbPool, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	// --- Rate Limiters ---
	store, closeStore := limiterStore(ctx, appCfg, max(appCfg.LoginWindow, appCfg.StoreWindow))
	defer closeStore()
	loginLimiter := ratelimit.New(store, appCfg.LoginMaxAttempts, appCfg.LoginWindow)
	storeLimiter := ratelimit.New(store, appCfg.StoreMaxRequests, appCfg.StoreWindow)

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(appCfg.JWTSecret, appCfg.JWTExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	rateRepo := repository.NewRateRepository(dbPool)
	transactionRepo := repository.NewTransactionRepository(dbPool)
	expenseRepo := repository.NewExpenseRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	customerRepo := repository.NewCustomerRepository(dbPool)
	supplierRepo := repository.NewSupplierRepository(dbPool)
	repairRepo := repository.NewRepairRepository(dbPool)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil, loginLimiter, service.AuthOptions{
		InitialAdminPhone: appCfg.InitialAdminPhone,
		PhoneRegion:       appCfg.PhoneRegion,
	})
	rateService := service.NewRateService(rateRepo)
	transactionService := service.NewTransactionService(transactionRepo, rateRepo, customerRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	productService := service.NewProductService(productRepo, appCfg.UploadsDir)
	customerService := service.NewCustomerService(customerRepo, appCfg.PhoneRegion)
	supplierService := service.NewSupplierService(supplierRepo, appCfg.PhoneRegion)
	repairService := service.NewRepairService(repairRepo, appCfg.PhoneRegion)
	reportService := service.NewReportService(transactionRepo, rateRepo, expenseRepo, productRepo, supplierRepo)
	storeService := service.NewStoreService(productRepo, rateRepo, uploadsURL)

	// --- Setup Gin Router ---
	if appCfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterValidators(); err != nil {
		return err
	}
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics(), cors.New(corsConfig(appCfg)))
	router.MaxMultipartMemory = service.MaxFileSize

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	staffMW := middleware.StaffMiddleware()
	adminMW := middleware.AdminMiddleware()
	storeLimitMW := middleware.RateLimit(storeLimiter, "store")

	// --- Register Routes ---
	api := router.Group("/api/v1")
	handler.NewAuthHandler(authService).RegisterAuthRoutes(api, jwtAuthMW, adminMW)
	handler.NewRateHandler(rateService).RegisterRateRoutes(api, jwtAuthMW, adminMW)
	handler.NewTransactionHandler(transactionService).RegisterTransactionRoutes(api, jwtAuthMW, staffMW, adminMW)
	handler.NewProductHandler(productService).RegisterProductRoutes(api, jwtAuthMW, staffMW)
	handler.NewCustomerHandler(customerService).RegisterCustomerRoutes(api, jwtAuthMW, staffMW)
	handler.NewSupplierHandler(supplierService).RegisterSupplierRoutes(api, jwtAuthMW, staffMW)
	handler.NewRepairHandler(repairService).RegisterRepairRoutes(api, jwtAuthMW, staffMW)
	handler.NewExpenseHandler(expenseService).RegisterExpenseRoutes(api, jwtAuthMW, staffMW)
	handler.NewReportHandler(reportService).RegisterReportRoutes(api, jwtAuthMW, adminMW)
	handler.NewStoreHandler(storeService).RegisterStoreRoutes(api, storeLimitMW)

	router.Static(uploadsURL, appCfg.UploadsDir)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + strings.TrimPrefix(appCfg.ServerPort, ":"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", appCfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- Graceful Shutdown ---
	select {
	case err := <-errCh:
		config.LogError(logger, "main", "runServe", "listen", srv.Addr, err)
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "main", "runServe", "Server forced to shutdown", nil, err)
		return err
	}

	logger.Info("Server exiting")
	return nil
}
