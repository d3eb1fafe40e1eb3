package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/orderdesk/backend/internal/application/catalog"
	partnerapp "github.com/orderdesk/backend/internal/application/partner"
	reportapp "github.com/orderdesk/backend/internal/application/report"
	tradeapp "github.com/orderdesk/backend/internal/application/trade"
	"github.com/orderdesk/backend/internal/infrastructure/config"
	"github.com/orderdesk/backend/internal/infrastructure/event"
	"github.com/orderdesk/backend/internal/infrastructure/logger"
	"github.com/orderdesk/backend/internal/infrastructure/persistence"
	"github.com/orderdesk/backend/internal/infrastructure/printing"
	"github.com/orderdesk/backend/internal/interfaces/http/handler"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"github.com/orderdesk/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting OrderDesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)

	// Event bus with the built-in subscribers
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewStockAlertHandler(log))
	eventBus.Subscribe(event.NewOrderAuditHandler(log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = eventBus.Stop(context.Background())
	}()

	// PDF export pipeline. When printing is disabled the report service
	// still serves summaries and CSV exports.
	var (
		templateEngine *printing.TemplateEngine
		pdfRenderer    printing.PDFRenderer
	)
	if cfg.Printing.Enabled {
		templateEngine, err = printing.NewTemplateEngine()
		if err != nil {
			log.Fatal("Failed to load report templates", zap.Error(err))
		}

		renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Printing.RenderTimeout,
			ExecPath:       cfg.Printing.ChromePath,
			Headless:       true,
			DisableGPU:     true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
		}
		defer func() {
			_ = renderer.Close()
		}()
		pdfRenderer = renderer
		log.Info("PDF rendering enabled")
	} else {
		log.Info("PDF rendering disabled")
	}

	// Application services
	orderService := tradeapp.NewOrderService(orderRepo, productRepo, customerRepo)
	orderService.SetEventPublisher(eventBus)
	if err := orderService.SetTaxRate(decimal.NewFromFloat(cfg.Pricing.TaxRate)); err != nil {
		log.Fatal("Invalid tax rate", zap.Error(err))
	}
	productService := catalogapp.NewProductService(productRepo)
	productService.SetEventPublisher(eventBus)
	customerService := partnerapp.NewCustomerService(customerRepo)
	customerService.SetEventPublisher(eventBus)
	reportService := reportapp.NewReportService(orderRepo, templateEngine, pdfRenderer, log)

	// HTTP handlers
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(cfg.App.Name)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint outside API versioning
	engine.GET("/health", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/brands", productHandler.ListBrands)
	catalogRoutes.GET("/products/stock/low", productHandler.ListLowStock)
	catalogRoutes.GET("/products/stock/out", productHandler.ListOutOfStock)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.PUT("/products/:id/stock", productHandler.UpdateStock)
	catalogRoutes.DELETE("/products/:id", productHandler.Delete)
	r.Register(catalogRoutes)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.POST("/customers/:id/deactivate", customerHandler.Deactivate)
	partnerRoutes.DELETE("/customers/:id", customerHandler.Delete)
	r.Register(partnerRoutes)

	tradeRoutes := router.NewDomainGroup("trade", "/trade")
	tradeRoutes.POST("/orders", orderHandler.Create)
	tradeRoutes.GET("/orders", orderHandler.List)
	tradeRoutes.GET("/orders/status-summary", orderHandler.StatusSummary)
	tradeRoutes.GET("/orders/number/:number", orderHandler.GetByNumber)
	tradeRoutes.GET("/orders/:id", orderHandler.GetByID)
	tradeRoutes.PUT("/orders/:id", orderHandler.Update)
	tradeRoutes.DELETE("/orders/:id", orderHandler.Delete)
	tradeRoutes.POST("/orders/:id/items", orderHandler.AddItem)
	tradeRoutes.PUT("/orders/:id/items/:item_id", orderHandler.UpdateItem)
	tradeRoutes.DELETE("/orders/:id/items/:item_id", orderHandler.RemoveItem)
	tradeRoutes.POST("/orders/:id/transition", orderHandler.Transition)
	tradeRoutes.POST("/orders/:id/approve", orderHandler.Approve)
	tradeRoutes.POST("/orders/:id/reject", orderHandler.Reject)
	tradeRoutes.POST("/orders/:id/ship", orderHandler.Ship)
	tradeRoutes.POST("/orders/:id/complete", orderHandler.Complete)
	r.Register(tradeRoutes)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/sales/summary", reportHandler.Summary)
	reportRoutes.GET("/sales", reportHandler.Report)
	reportRoutes.GET("/sales/export/pdf", reportHandler.ExportPDF)
	reportRoutes.GET("/sales/export/csv", reportHandler.ExportCSV)
	reportRoutes.GET("/orders/:id/pdf", reportHandler.ExportOrderPDF)
	r.Register(reportRoutes)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler answers readiness probes with a database ping
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
