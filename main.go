package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"limocontrol/internal/auth"
	"limocontrol/internal/config"
	api "limocontrol/internal/http"
	"limocontrol/internal/http/handlers"
	"limocontrol/internal/logger"
	"limocontrol/internal/store"
	"limocontrol/internal/store/memory"
	"limocontrol/internal/store/postgres"
)

func main() {
	env := config.LoadEnv()
	logger.Setup(env.LogFile)
	env.Warn()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	stores := openStores(env)

	h := handlers.New(stores, []byte(env.JWTSecret))
	r := api.NewRouter(env, h)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithField("addr", env.AppAddr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Fatal("shutdown failed")
	}

	logrus.Info("server stopped")
}

// openStores selects the backing: Postgres when DATABASE_URL is set,
// otherwise the in-memory collection.
func openStores(env config.Env) store.Stores {
	seedHash, err := auth.HashPassword(env.SeedAdminPassword)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash seed admin password")
	}

	if env.DatabaseURL == "" {
		db := memory.New()
		db.SeedAdmin(env.SeedAdminName, env.SeedAdminEmail, seedHash)
		return db.Stores()
	}

	db, err := postgres.Open(env.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := postgres.InitSchema(db); err != nil {
		logrus.WithError(err).Fatal("failed to initialize schema")
	}
	if err := postgres.SeedAdmin(db, env.SeedAdminName, env.SeedAdminEmail, seedHash); err != nil {
		logrus.WithError(err).Fatal("failed to seed admin user")
	}
	logrus.Info("using postgres backing")
	return postgres.NewStores(db)
}
