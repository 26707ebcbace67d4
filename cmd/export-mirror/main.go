package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"time"

	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

// export-mirror dumps the response cache to a JSON snapshot that
// import-mirror can load on another machine.
func main() {
	outPath := flag.String("out", "data/mirror.json", "output JSON path")
	flag.Parse()

	log := utils.NewLogger(utils.LogConfig{Level: "info", Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	entries, err := pokeapi.NewSQLCache(db, 0).Export(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("export failed")
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir failed")
	}

	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("marshal failed")
	}

	if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatal().Err(err).Msg("write failed")
	}

	log.Info().Int("entries", len(entries)).Str("path", *outPath).Msg("✅ exported cache snapshot")
}
