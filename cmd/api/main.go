package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-widget/internal/config"
	apihttp "chat-widget/internal/http"
	"chat-widget/internal/query"
	"chat-widget/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		panic(err)
	}

	zcfg := zap.NewProductionConfig()
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	logger, err := zcfg.Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := query.NewHTTPClient(cfg.QueryBaseURL, cfg.QueryTimeout(), logger)
	sessions := service.NewSessionService(client, cfg.SessionTTL(), logger)
	tokens := service.NewTokenService(cfg.JWTSecret)
	go sessions.RunPruner(ctx, time.Minute)

	sessionHandler := apihttp.NewSessionHandler(logger, sessions, tokens)
	router := apihttp.NewRouter(logger, sessionHandler, tokens, sessions)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
		if err := sessions.Drain(shutdownCtx); err != nil {
			logger.Warn("in-flight replies not drained", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("query_base_url", cfg.QueryBaseURL),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
	<-shutdownDone
}
