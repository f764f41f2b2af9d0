package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"snapscout/config"
	"snapscout/internal/ebay"
	"snapscout/internal/rates"
	"snapscout/internal/scout"
	"snapscout/internal/server"
	"snapscout/internal/storage"
	"snapscout/internal/vision"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	config.LoadEnvFile()
	if missing := config.Missing(); len(missing) > 0 {
		log.Fatal().Msgf("missing required config: %s", strings.Join(missing, ", "))
	}
	cfg := config.Load()

	// Cancel on SIGINT or SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize keyword cache store")
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("keyword cache store initialized")

	gemini, err := vision.NewGeminiExtractor(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini extractor")
	}
	backends := []vision.Extractor{gemini}
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, vision.NewOpenAIExtractor())
		log.Info().Msg("openai fallback extraction backend enabled")
	}
	extractor := vision.NewCachedExtractor(vision.NewChain(backends...), store)

	ebayClient := ebay.NewClient(ebay.ClientOpts{
		ClientID:     cfg.EbayClientID,
		ClientSecret: cfg.EbayClientSecret,
	})
	rateSource := rates.NewSource(rates.NewHTTPProvider())
	scanService := scout.NewService(ebayClient, rateSource, cfg.HomeCurrency)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.New(extractor, scanService, rateSource).Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", cfg.ListenAddr).Str("home", cfg.HomeCurrency).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}
