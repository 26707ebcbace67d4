package main

import (
	"flag"
	"net"

	"pokedex/internal/auth"
	"pokedex/internal/charts"
	"pokedex/internal/grpcserver"
	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to $POKEDEX_CONFIG)")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	log := utils.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	listener, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.Server.GRPCAddr).Msg("grpc listen failed")
	}

	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout, pokeapi.NewSQLCache(db, cfg.PokeAPI.CacheTTL), log)
	client.Headers = cfg.PokeAPI.Headers
	// no toast channel here: failures are only logged
	agg := charts.NewAggregator(client, cfg.PokeAPI.BaseURL, nil, log)

	// tokens are issued by the api-server; both must share the database and secret
	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}
	grpcServer := grpcserver.NewGRPCServer(grpcserver.NewServer(agg, log), tokenSvc, auth.NewRepo(db))

	log.Info().Str("addr", cfg.Server.GRPCAddr).Msg("gRPC server listening")
	if err := grpcServer.Serve(listener); err != nil {
		log.Fatal().Err(err).Msg("grpc server stopped")
	}
}
