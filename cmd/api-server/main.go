package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"pokedex/internal/auth"
	"pokedex/internal/charts"
	"pokedex/internal/dashboard"
	"pokedex/internal/grpcserver"
	"pokedex/internal/notify"
	"pokedex/internal/pokeapi"
	"pokedex/pkg/database"
	"pokedex/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults to $POKEDEX_CONFIG)")
	withGRPC := flag.Bool("grpc", true, "also serve the gRPC chart service")
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

	tokenSvc := auth.TokenService{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Duration: cfg.Auth.JWTDuration,
	}
	authRepo := auth.NewRepo(db)
	demo, err := auth.EnsureDemoUser(context.Background(), authRepo, auth.DemoAccount{
		Username: cfg.Auth.DemoUsername,
		Email:    cfg.Auth.DemoEmail,
		Password: cfg.Auth.DemoPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed demo account failed")
	}
	log.Info().Str("email", demo.Email).Msg("demo account ready")

	hub := notify.NewHub(log.With().Str("component", "notify").Logger())

	cache := pokeapi.NewSQLCache(db, cfg.PokeAPI.CacheTTL)
	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout, cache, log.With().Str("component", "pokeapi").Logger())
	client.Headers = cfg.PokeAPI.Headers
	agg := charts.NewAggregator(client, cfg.PokeAPI.BaseURL, hub, log.With().Str("component", "charts").Logger())

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), utils.GinLogger(log))

	// Optional: avoid “trusted all proxies” warning
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/ws", notify.WSHandler(hub))
	router.GET("/notifications", notify.RecentHandler(hub))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": dbCfg.Path})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/debug", func(c *gin.Context) {
		stats := hub.Stats()
		cached, err := cache.Count(c.Request.Context())
		if err != nil {
			log.Warn().Err(err).Msg("count cache rows failed")
		}
		c.JSON(http.StatusOK, gin.H{
			"db":            dbCfg.Path,
			"pokeapi":       cfg.PokeAPI.BaseURL,
			"cached_bodies": cached,
			"tcp_clients":   stats.TCPClients,
			"ws_clients":    stats.WSClients,
			"recent_toasts": stats.Recent,
		})
	})

	// Auth
	authHandler := auth.NewHandler(authRepo, tokenSvc, log.With().Str("component", "auth").Logger())
	authHandler.Notify = func(detail string) { hub.ShowSuccess(detail) }
	authHandler.RegisterRoutes(router.Group("/auth"))

	// Dashboard (protected)
	protected := router.Group("/dashboard")
	protected.Use(auth.AuthMiddleware(tokenSvc, authRepo))
	dashboard.NewHandler(agg, log.With().Str("component", "dashboard").Logger()).RegisterRoutes(protected)

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	var grpcSrv *grpc.Server
	if *withGRPC {
		grpcSrv = grpcserver.NewGRPCServer(grpcserver.NewServer(agg, log.With().Str("component", "grpc").Logger()), tokenSvc, authRepo)
	}

	errCh := make(chan error, 3)
	var wg sync.WaitGroup

	// Start the TCP toast stream first (so binding errors show up early)
	var tcpSrv *notify.Server
	if cfg.Server.ToastAddr != "" {
		tcpSrv = notify.NewServer(cfg.Server.ToastAddr, hub)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := tcpSrv.Run(); err != nil {
				errCh <- err
			}
		}()
	}

	if grpcSrv != nil {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Server.GRPCAddr).Msg("grpc listen failed")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			log.Info().Str("addr", cfg.Server.GRPCAddr).Msg("gRPC chart service listening")
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", cfg.Server.Addr).Msg("HTTP API server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	log.Info().Msg("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	if tcpSrv != nil {
		if err := tcpSrv.Close(); err != nil {
			log.Error().Err(err).Msg("tcp shutdown error")
		}
	}

	wg.Wait()
	log.Info().Msg("servers stopped")
}
