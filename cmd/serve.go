package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariebrainware/embryo-ai/config"
	"github.com/ariebrainware/embryo-ai/routes"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	logger := util.Logger()

	if cfg.JWTSecret == "" {
		logger.Warn().Msg("JWTSECRET is empty, logins will fail")
	}
	if _, err := config.ConnectRedis(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, sessions and rate limits disabled")
	}
	if cfg.GeoIPDBPath != "" {
		if err := util.InitGeoIP(cfg.GeoIPDBPath); err != nil {
			logger.Warn().Err(err).Str("path", cfg.GeoIPDBPath).Msg("geoip disabled")
		}
		defer util.CloseGeoIP()
	}
	util.SetSecurityLoggerDB(db)
	util.InitUsernameCache(cfg.UserCacheSize)

	store, err := util.NewUploadStore(cfg.UploadDir)
	if err != nil {
		return err
	}
	clf, err := newClassifier(cfg)
	if err != nil {
		logger.Warn().Err(err).Str("model", cfg.ModelPath).Msg("classifier disabled")
	}

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           routes.SetupRouter(cfg, db, store, clf),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
