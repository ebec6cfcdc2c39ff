package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"synergysphere/config"
	"synergysphere/internal/database"
	"synergysphere/internal/logger"
	"synergysphere/internal/middleware"
	"synergysphere/internal/router"
	"synergysphere/internal/service"
	"synergysphere/internal/ws"
	"synergysphere/pkg/pubsub"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logg.Fatal("database", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		logg.Fatal("migrate", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := ws.NewHub()
	var signaler service.Signaler = hub
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logg.Fatal("redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		relay := pubsub.NewRelay(rdb, cfg.Redis.Channel, hub, logg)
		go func() {
			if err := relay.Run(ctx); err != nil {
				logg.Error("refresh relay stopped", zap.Error(err))
			}
		}()
		signaler = relay
		logg.Info("refresh relay enabled", zap.String("channel", cfg.Redis.Channel))
	}

	limiter := middleware.NewClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	go limiter.RunSweeper(ctx.Done())

	engine := router.Setup(router.Deps{
		Config:   cfg,
		DB:       db,
		Log:      logg,
		Hub:      hub,
		Signaler: signaler,
		Limiter:  limiter,
	})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logg.Info("server listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown", zap.Error(err))
		os.Exit(1)
	}
	logg.Info("server stopped")
}
