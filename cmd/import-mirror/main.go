package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

func main() {
	inPath := flag.String("in", "data/mirror.json", "snapshot written by export-mirror")
	flag.Parse()

	log := utils.NewLogger(utils.LogConfig{Level: "info", Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	b, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read snapshot failed")
	}
	var entries []pokeapi.SnapshotEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		log.Fatal().Err(err).Str("path", *inPath).Msg("snapshot is not valid JSON")
	}

	imported, skipped, err := pokeapi.NewSQLCache(db, 0).Import(ctx, entries)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("entries without url or JSON body skipped")
	}
	log.Info().Int("imported", imported).Str("path", *inPath).Msg("✅ imported cache snapshot")
}
