package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/wordle-core/internal/httpserver"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/metrics"
	"github.com/robalobadob/wordle/apps/wordle-core/internal/store"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	list, cleanup, err := loadWords(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	mem := store.NewMemoryStore()
	srv := httpserver.New(mem, list, metrics.New(mem.Len), httpserver.Options{
		ClientOrigin:     cfg.ClientOrigin,
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         cfg.TokenTTL,
		DailySalt:        cfg.DailySalt,
		AllowFixedAnswer: cfg.AllowFixedAnswer,
	})
	if cfg.AllowFixedAnswer {
		log.Warn().Msg("ALLOW_FIXED_ANSWER is set; clients can choose their own secret")
	}

	hs := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", hs.Addr).Msg("starting go-server")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return store.RunSweeper(gctx, mem, cfg.SweepInterval, cfg.SessionTTL)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
