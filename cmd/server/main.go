package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boxerp/backend/internal/application/quote"
	"github.com/boxerp/backend/internal/infrastructure/config"
	"github.com/boxerp/backend/internal/infrastructure/logger"
	"github.com/boxerp/backend/internal/interfaces/http/handler"
	"github.com/boxerp/backend/internal/interfaces/http/middleware"
	"github.com/boxerp/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting costing engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	defaults := quote.Defaults{
		FlutingFactor: cfg.Business.FlutingFactor,
		GSTRate:       decimal.NewFromFloat(cfg.Business.GSTRatePct),
		InvoicePrefix: cfg.Business.InvoicePrefix,
	}
	quoteService := quote.NewService(defaults, log)

	engine := newEngine(cfg, log)

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(cfg.App.Name, version)).
		Register(handler.NewCostingHandler(quoteService)).
		Register(handler.NewTaxHandler(decimal.NewFromFloat(cfg.Business.GSTRatePct))).
		Register(handler.NewBillingHandler(quoteService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()
	log.Info("HTTP server listening", zap.String("addr", srv.Addr))

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}

// newEngine builds the gin engine with the shared middleware chain
func newEngine(cfg *config.Config, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(
		middleware.RequestID(),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
			MaxAge:       12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	return engine
}
