package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"hotels_xml/internal/adapters/fetch"
	"hotels_xml/internal/adapters/observability"
	redisad "hotels_xml/internal/adapters/redis"
	"hotels_xml/internal/adapters/xsdschema"
	"hotels_xml/internal/app"
	"hotels_xml/internal/domain"
	"hotels_xml/internal/shared"
)

func main() {
	cfg := shared.Load()

	// global logger on stderr; stdout carries the three result lines
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}
}

// run wires the pipeline and releases what it opened before returning, so the
// caller may exit right after.
func run(ctx context.Context, cfg shared.Config, stdout io.Writer) error {
	reg := observability.InitRegistry()

	// fetch client, optionally behind the redis document cache
	var docs domain.Fetcher = fetch.New(fetch.Options{
		Timeout:  cfg.FetchTimeout,
		RPS:      cfg.FetchRPS,
		MaxBytes: cfg.FetchMaxBytes,
	})
	if cfg.RedisAddr != "" {
		cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer func() {
			if err := cache.Close(); err != nil {
				log.Warn().Err(err).Msg("redis close failed")
			}
		}()
		docs = fetch.NewCached(docs, cache, cfg.DocCacheTTL)
		log.Info().Str("redis", cfg.RedisAddr).Dur("ttl", cfg.DocCacheTTL).Msg("document cache enabled")
	}

	validator := app.NewValidationService(docs, xsdschema.NewLoader(docs))
	converter := app.NewConversionService(docs)

	err := app.Run(ctx, stdout, validator, converter, app.Locations{
		Document:      cfg.HotelsXMLURL,
		ErrorDocument: cfg.HotelsErrorsURL,
		Schema:        cfg.HotelsXSDURL,
	})

	if perr := observability.Push(ctx, reg, cfg.PushgatewayURL, cfg.MetricsJob); perr != nil {
		log.Warn().Err(perr).Msg("metrics push failed")
	}
	return err
}
