package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"supergp/config"
	"supergp/internal/database"
	"supergp/internal/router"
	"supergp/logging"
	"supergp/pkg/cloudinary"
)

func main() {
	cfg := config.Load()
	logging.BootstrapLogger(cfg.Server.Env)
	log := logging.Log

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}
	database.SeedDefaults(db)

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			log.WithError(err).Fatal("cloudinary init failed")
		}
	} else {
		log.Warn("cloudinary not configured, image uploads disabled")
	}

	engine := router.Setup(cfg, db, cloud)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("server stopped")
}
