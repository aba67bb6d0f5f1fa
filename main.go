package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"laundrypos/configs"
	"laundrypos/middlewares"
	"laundrypos/notify"
	"laundrypos/routes"
	"laundrypos/services"
	"laundrypos/ws"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()

	logger, err := configs.InitLogger(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer logger.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zap.L().Warn("unknown TIMEZONE, using local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// DB
	if err := configs.ConnectionDB(cfg); err != nil {
		zap.L().Fatal("database", zap.Error(err))
	}
	db := configs.DB()

	// migrate
	if err := configs.SetupDatabase(); err != nil {
		zap.L().Fatal("migrate failed", zap.Error(err))
	}

	if err := configs.SeedRoles(db); err != nil {
		zap.L().Fatal("seed roles failed", zap.Error(err))
	}
	if err := configs.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		zap.L().Fatal("seed admin failed", zap.Error(err))
	}
	if err := configs.SeedPricing(db, cfg.PricingSeedFile); err != nil {
		zap.L().Fatal("seed pricing failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// events: websocket feed, plus RabbitMQ when configured
	feed := ws.NewOrderFeed(cfg.CORSOrigins...)
	go feed.Run(ctx)
	events := notify.Fanout{feed}
	if cfg.AMQPURL != "" {
		pub, err := notify.DialAMQP(cfg.AMQPURL, notify.DefaultExchange)
		if err != nil {
			zap.L().Warn("rabbitmq unavailable, events stay local", zap.Error(err))
		} else {
			defer pub.Close()
			events = append(events, pub)
		}
	}

	svc := routes.NewServices(db, cfg, loc, events)

	jobs := services.NewHousekeeping(svc.Audit, svc.Inventory, cfg.AuditRetentionDays, cfg.LowStockThreshold)
	if err := jobs.Start(loc); err != nil {
		zap.L().Fatal("start jobs failed", zap.Error(err))
	}
	defer jobs.Stop()

	// HTTP
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.ZapLogger(), middlewares.CORSMiddleware(cfg.CORSOrigins...))
	routes.RegisterRoutes(r, svc, feed, cfg.JWTSecret, loc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		zap.L().Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("shutdown", zap.Error(err))
	}
}
