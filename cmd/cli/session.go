package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pokedex/internal/charts"
	"pokedex/pkg/models"
)

// storedSession is what the token file holds.
type storedSession struct {
	LoggedIn  bool            `json:"logged_in"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      models.UserInfo `json:"user"`
}

func (s storedSession) expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

type apiClient struct {
	http    *http.Client
	baseURL string
}

func (a *apiClient) login(ctx context.Context, email, password string) (models.Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var s models.Session
	err := doJSON(ctx, a.http, http.MethodPost, a.baseURL+"/auth/login", "", payload, &s)
	return s, err
}

func (a *apiClient) logout(ctx context.Context, token string) error {
	return doJSON(ctx, a.http, http.MethodPost, a.baseURL+"/auth/logout", token, nil, nil)
}

func (a *apiClient) session(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := doJSON(ctx, a.http, http.MethodGet, a.baseURL+"/auth/session", token, nil, &out)
	return out, err
}

func (a *apiClient) chart(ctx context.Context, token string, kind charts.Kind) (*models.ChartSeries, error) {
	var out struct {
		Chart *models.ChartSeries `json:"chart"`
	}
	err := doJSON(ctx, a.http, http.MethodGet, a.baseURL+"/dashboard/charts/"+url.PathEscape(string(kind)), token, nil, &out)
	return out.Chart, err
}

func (a *apiClient) charts(ctx context.Context, token string) (map[charts.Kind]*models.ChartSeries, error) {
	var out struct {
		Types               *models.ChartSeries `json:"types"`
		Generations         *models.ChartSeries `json:"generations"`
		GendersByGeneration *models.ChartSeries `json:"genders_by_generation"`
	}
	if err := doJSON(ctx, a.http, http.MethodGet, a.baseURL+"/dashboard/charts", token, nil, &out); err != nil {
		return nil, err
	}
	return map[charts.Kind]*models.ChartSeries{
		charts.KindTypes:               out.Types,
		charts.KindGenerations:         out.Generations,
		charts.KindGendersByGeneration: out.GendersByGeneration,
	}, nil
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("json")
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.pokedex-token.json"
	}
	return filepath.Join(home, ".pokedex", "token.json")
}

func saveSession(path string, s models.Session) error {
	if s.Token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(storedSession{
		LoggedIn:  true,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      s.User,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readSession(path string) (storedSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return storedSession{}, err
	}
	var s storedSession
	if err := json.Unmarshal(data, &s); err != nil {
		return storedSession{}, err
	}
	s.Token = strings.TrimSpace(s.Token)
	return s, nil
}

func mustSession(path string) storedSession {
	s, err := readSession(path)
	if err != nil {
		log.Fatal().Err(err).Msg("token not found, please login")
	}
	if !s.LoggedIn || s.Token == "" {
		log.Fatal().Msg("token empty, please login")
	}
	if s.expired(time.Now()) {
		log.Fatal().Time("expired_at", s.ExpiresAt).Msg("session expired, please login again")
	}
	return s
}

func clearSession(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}
