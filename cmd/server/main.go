package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"yatube/internal/app"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.HTTP.GinMode)

	if cfg.HTTP.SessionSecret == "secret_key_change_me" {
		logrus.Warn("SESSION_SECRET is not set, using the development default")
	}

	conn, err := db.Open(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	if err := db.Migrate(conn); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	if err := os.MkdirAll(cfg.MediaRoot, 0o755); err != nil {
		logrus.WithError(err).Fatal("Failed to create media root")
	}

	a, err := app.New(cfg, conn)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build application")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.HTTP.Port).Info("Yatube server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
	logrus.Info("Server stopped")
}
