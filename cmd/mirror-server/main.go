package main

import (
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"

	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to $POKEDEX_CONFIG)")
	addr := flag.String("addr", ":9000", "listen address")
	upstream := flag.String("upstream", "https://pokeapi.co/api/v2", "base URL the cache was warmed from")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	log := utils.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	dbCfg := database.DefaultConfig()
	db := database.MustOpen(dbCfg)
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	cache := pokeapi.NewSQLCache(db, 0)
	mirror, err := pokeapi.NewMirror(cache, *upstream, log)
	if err != nil {
		log.Fatal().Err(err).Msg("mirror setup failed")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), utils.GinLogger(log))
	mirror.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		n, err := cache.Count(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "db_error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path, "cached_bodies": n})
	})

	// point the dashboard at it with POKEDEX_API_BASE=http://localhost:9000/api/v2
	log.Info().Str("addr", *addr).Str("upstream", *upstream).Msg("mirror-server listening")
	if err := http.ListenAndServe(*addr, router); err != nil {
		log.Fatal().Err(err).Msg("mirror-server stopped")
	}
}
