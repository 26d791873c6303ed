package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cinesense/cinesense/internal/config"
	httpserver "github.com/cinesense/cinesense/internal/http"
	"github.com/cinesense/cinesense/internal/repository"
	"github.com/cinesense/cinesense/internal/sentiment"
	"github.com/cinesense/cinesense/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:               int32(cfg.DBMaxConns),
		MinConns:               int32(cfg.DBMinConns),
		MaxConnIdleTime:        time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime:        time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:            time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		StatementCacheCapacity: cfg.DBStatementCache,
		Logger:                 logger,
	}

	st, err := store.New(dbCtx, cfg.DatabaseURL, storeOpts)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	defer st.Close()

	classifier, err := sentiment.NewHTTPClient(cfg.SentimentURL, time.Duration(cfg.SentimentTimeoutSecs)*time.Second, logger)
	if err != nil {
		logger.Fatal("init sentiment client", zap.Error(err))
	}
	analyzer, err := sentiment.NewAnalyzer(classifier, cfg.SentimentCacheSize, time.Duration(cfg.SentimentTimeoutSecs)*time.Second, logger)
	if err != nil {
		logger.Fatal("init sentiment analyzer", zap.Error(err))
	}

	repo := repository.New(st)
	server := httpserver.New(cfg, st, repo, analyzer, logger)

	logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			logger.Error("server error", zap.Error(err))
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("graceful shutdown error", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}
