package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/consentlab/internal/config"
	consentHTTP "github.com/davicafu/consentlab/internal/consent/infra/inbound/http"
	dashboardHTTP "github.com/davicafu/consentlab/internal/dashboard/infra/inbound/http"
	documentHTTP "github.com/davicafu/consentlab/internal/document/infra/inbound/http"
	referralHTTP "github.com/davicafu/consentlab/internal/referral/infra/inbound/http"
	sharedHTTP "github.com/davicafu/consentlab/internal/shared/infra/inbound/http"
	taskHTTP "github.com/davicafu/consentlab/internal/task/infra/inbound/http"
	"github.com/davicafu/consentlab/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log := logger.Init(cfg.LogLevel) // inicializa zap
	defer log.Sync()                 // flush buffers al salir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := wire(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to wire application", zap.Error(err))
	}
	defer app.Close()

	app.StartBackground(ctx)

	// ---------------- HTTP ----------------
	limits := sharedHTTP.PageLimits{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}
	router := gin.Default()
	consentHTTP.RegisterApplicationRoutes(router, consentHTTP.NewApplicationHandler(app.Applications, limits))
	referralHTTP.RegisterReferralRoutes(router, referralHTTP.NewReferralHandler(app.Referrals, limits))
	documentHTTP.RegisterDocumentRoutes(router, documentHTTP.NewDocumentHandler(app.Documents, limits))
	taskHTTP.RegisterTaskRoutes(router, taskHTTP.NewTaskHandler(app.Tasks, limits))
	dashboardHTTP.RegisterDashboardRoutes(router, dashboardHTTP.NewDashboardHandler(app.Dashboard))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "dataSource": cfg.DataSource})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
		zap.String("data_source", cfg.DataSource),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
