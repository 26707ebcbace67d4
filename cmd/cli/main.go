package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pokedex/internal/charts"
	"pokedex/internal/grpcserver"
	"pokedex/internal/notify"
	"pokedex/pkg/models"
	"pokedex/pkg/utils"
)

const defaultBaseURL = "http://localhost:8080"

var log zerolog.Logger

func main() {
	global := flag.NewFlagSet("pokedex", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	grpcAddr := global.String("grpc", "", "fetch charts over gRPC from this address instead of HTTP")
	asJSON := global.Bool("json", false, "print raw JSON instead of tables")
	_ = global.Parse(os.Args[1:])

	log = utils.NewLogger(utils.LogConfig{Level: "info", Pretty: true})

	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 30 * time.Second}
	api := &apiClient{http: client, baseURL: *baseURL}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			log.Fatal().Msg("usage: pokedex login <email> <password>")
		}
		s, err := api.login(ctx, args[1], args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		if err := saveSession(*tokenPath, s); err != nil {
			log.Fatal().Err(err).Msg("save token")
		}
		fmt.Printf("✅ logged in as %s (until %s)\n", s.User.Username, s.ExpiresAt.Local().Format(time.Kitchen))
	case "logout":
		if s, err := readSession(*tokenPath); err == nil && !s.expired(time.Now()) {
			if err := api.logout(ctx, s.Token); err != nil {
				log.Warn().Err(err).Msg("server logout failed, clearing local token anyway")
			}
		}
		if err := clearSession(*tokenPath); err != nil {
			log.Fatal().Err(err).Msg("logout failed")
		}
		fmt.Println("✅ logged out")
	case "whoami":
		s := mustSession(*tokenPath)
		info, err := api.session(ctx, s.Token)
		if err != nil {
			log.Fatal().Err(err).Msg("session check failed")
		}
		printJSON(info)
	case "chart":
		if len(args) != 2 {
			log.Fatal().Msg("usage: pokedex chart <types|generations|genders-by-generation>")
		}
		kind, err := charts.ParseKind(args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("bad chart")
		}
		var chart *models.ChartSeries
		if *grpcAddr != "" {
			chart = chartOverGRPC(ctx, *grpcAddr, mustSession(*tokenPath).Token, kind)
		} else {
			chart, err = api.chart(ctx, mustSession(*tokenPath).Token, kind)
			if err != nil {
				log.Fatal().Err(err).Msg("fetch chart failed")
			}
		}
		show(string(kind), chart, *asJSON)
	case "charts":
		all, err := api.charts(ctx, mustSession(*tokenPath).Token)
		if err != nil {
			log.Fatal().Err(err).Msg("fetch charts failed")
		}
		for _, k := range charts.Kinds() {
			show(string(k), all[k], *asJSON)
		}
	case "toasts":
		if err := followToasts(*baseURL); err != nil {
			log.Fatal().Err(err).Msg("toast stream failed")
		}
	default:
		printUsage()
		os.Exit(1)
	}
}

func chartOverGRPC(ctx context.Context, addr, token string, kind charts.Kind) *models.ChartSeries {
	c, err := grpcserver.Dial(addr)
	if err != nil {
		log.Fatal().Err(err).Msg("grpc dial failed")
	}
	defer c.Close()
	c.Token = token

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	resp, err := c.GetChart(ctx, string(kind))
	if err != nil {
		log.Fatal().Err(err).Msg("grpc GetChart failed")
	}
	return resp.Chart
}

func show(name string, chart *models.ChartSeries, asJSON bool) {
	if asJSON {
		printJSON(map[string]any{"kind": name, "chart": chart})
		return
	}
	renderChart(os.Stdout, name, chart)
}

// followToasts prints every toast the server pushes until the connection
// drops.
func followToasts(baseURL string) error {
	wsURL, err := websocketURL(baseURL, "/ws")
	if err != nil {
		return err
	}
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Printf("connected to %s\n", wsURL)
	for {
		var t notify.Toast
		if err := conn.ReadJSON(&t); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if t.Type != "toast" {
			continue
		}
		fmt.Printf("[%s] %s: %s\n", t.At.Local().Format(time.TimeOnly), t.Summary, t.Detail)
	}
}

func printUsage() {
	fmt.Println("pokedex [-api URL] [-token PATH] [-grpc ADDR] [-json] <command>")
	fmt.Println("commands:")
	fmt.Println("  login <email> <password>")
	fmt.Println("  logout")
	fmt.Println("  whoami")
	fmt.Println("  chart <types|generations|genders-by-generation>")
	fmt.Println("  charts")
	fmt.Println("  toasts")
}
