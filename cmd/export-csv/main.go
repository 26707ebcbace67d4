package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"pokedex/internal/charts"
	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (defaults to $POKEDEX_CONFIG)")
		outDir     = flag.String("out", "data/charts", "directory for <chart>.csv files")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall deadline")
	)
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	log := utils.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout, pokeapi.NewSQLCache(db, cfg.PokeAPI.CacheTTL), log)
	client.Headers = cfg.PokeAPI.Headers
	agg := charts.NewAggregator(client, cfg.PokeAPI.BaseURL, nil, log)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir failed")
	}

	all := agg.All(ctx)
	written := 0
	for _, kind := range charts.Kinds() {
		chart := all[kind]
		if chart == nil {
			log.Error().Str("chart", string(kind)).Msg("chart unavailable, skipped")
			continue
		}
		path := filepath.Join(*outDir, string(kind)+".csv")
		if err := writeFile(path, chart); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("write failed")
		}
		written++
	}

	log.Info().Int("charts", written).Str("dir", *outDir).Msg("✅ exported charts")
}
