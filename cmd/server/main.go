package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/courseway-io/Courseway/internal/bootstrap"
	"github.com/courseway-io/Courseway/internal/config"
	"github.com/courseway-io/Courseway/internal/infra/cache"
	"github.com/courseway-io/Courseway/internal/infra/db"
	"github.com/courseway-io/Courseway/internal/modules/handler"
	"github.com/courseway-io/Courseway/internal/router"
	"github.com/courseway-io/Courseway/internal/telemetry"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Fatal("setup tracing", zap.Error(err))
	}
	if _, err := telemetry.SetupMetrics(cfg); err != nil {
		log.Fatal("setup metrics", zap.Error(err))
	}
	if err := telemetry.InitCourseMetrics(); err != nil {
		log.Fatal("init course metrics", zap.Error(err))
	}

	gdb := do.MustInvoke[*gorm.DB](inj)
	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("register gorm otel plugin", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(do.MustInvoke[*redis.Client](inj)); err != nil {
			log.Warn("register redis otel plugin", zap.Error(err))
		}
	}

	r := router.NewRouter(router.RouterDeps{
		Config:            cfg,
		Log:               log,
		CatalogHandler:    do.MustInvoke[*handler.CatalogHandler](inj),
		CourseHandler:     do.MustInvoke[*handler.CourseHandler](inj),
		PreferenceHandler: do.MustInvoke[*handler.PreferenceHandler](inj),
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	if err := telemetry.Shutdown(ctx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
	if err := telemetry.ShutdownMetrics(ctx); err != nil {
		log.Error("metrics shutdown", zap.Error(err))
	}

	if err := inj.Shutdown(); err != nil {
		log.Error("container shutdown", zap.Error(err))
	}
}
