package main

import (
	"context"
	"flag"
	"time"

	"pokedex/internal/charts"
	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

// warm-cache builds every chart once against the live PokeAPI so the sqlite
// cache holds each listing and detail body. mirror-server can then serve
// them offline.
func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to $POKEDEX_CONFIG)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall deadline")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	log := utils.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	// Ensure schema exists
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	// always go to the network; TTL only matters for readers
	cache := pokeapi.NewSQLCache(db, cfg.PokeAPI.CacheTTL)
	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout, nil, log)
	client.Headers = cfg.PokeAPI.Headers

	agg := charts.NewAggregator(writeThrough{client: client, cache: cache}, cfg.PokeAPI.BaseURL, nil, log)

	failed := 0
	for kind, chart := range agg.All(ctx) {
		if chart == nil {
			failed++
			log.Error().Str("chart", string(kind)).Msg("chart failed")
			continue
		}
		log.Info().Str("chart", string(kind)).Int("labels", len(chart.Labels)).Msg("chart built")
	}

	n, err := cache.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("count cache failed")
	}
	if failed > 0 {
		log.Fatal().Int("failed", failed).Int("cached", n).Msg("cache only partially warmed")
	}
	log.Info().Int("cached", n).Str("db", dbCfg.Path).Msg("cache warmed")
}
