package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"task_manager_api/internal/config"
	"task_manager_api/internal/db"
	httpServer "task_manager_api/internal/http"
	"task_manager_api/internal/logger"
	"task_manager_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.Init(cfg.LogLevel, cfg.Env == config.EnvLocal)
	log := logger.Get()

	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.StrictOwnership {
		log.Info().Msg("strict ownership enabled: path user id must match the token")
	} else {
		log.Warn().Msg("strict ownership disabled: any authenticated caller can address any user id")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := db.OpenStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	r := httpServer.NewEngine(httpServer.Deps{
		Store:              store,
		Verifier:           service.NewVerifier(cfg.JWTSecret),
		Logger:             log,
		Version:            version,
		StrictOwnership:    cfg.StrictOwnership,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.BindAddress,
		Handler: r,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.BindAddress).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server exited")
	return nil
}
