package pokeapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BodyStore looks up a cached body by its full upstream URL.
type BodyStore interface {
	Lookup(ctx context.Context, key string) ([]byte, bool, error)
}

// Mirror serves cached PokeAPI bodies as if it were the upstream, so the
// dashboard keeps working offline. Absolute upstream links inside bodies
// are rewritten to point back at the mirror.
type Mirror struct {
	Store    BodyStore
	origin   string // scheme://host of the upstream
	basePath string // e.g. /api/v2
	Log      zerolog.Logger
}

func NewMirror(store BodyStore, upstream string, log zerolog.Logger) (*Mirror, error) {
	u, err := url.Parse(strings.TrimRight(upstream, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("mirror upstream %q: not an absolute url", upstream)
	}
	return &Mirror{
		Store:    store,
		origin:   u.Scheme + "://" + u.Host,
		basePath: u.Path,
		Log:      log,
	}, nil
}

func (m *Mirror) RegisterRoutes(r gin.IRoutes) {
	r.GET(m.basePath+"/*rest", m.serve)
}

func (m *Mirror) serve(c *gin.Context) {
	p := c.Request.URL.Path

	// PokeAPI links carry a trailing slash, hand-typed ones often don't
	candidates := []string{m.origin + p}
	if strings.HasSuffix(p, "/") {
		candidates = append(candidates, m.origin+strings.TrimRight(p, "/"))
	} else {
		candidates = append(candidates, m.origin+p+"/")
	}

	for _, key := range candidates {
		body, ok, err := m.Store.Lookup(c.Request.Context(), key)
		if err != nil {
			m.Log.Error().Err(err).Str("url", key).Msg("mirror lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if !ok {
			continue
		}
		body = bytes.ReplaceAll(body, []byte(m.origin), []byte(localOrigin(c.Request)))
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	m.Log.Debug().Str("path", p).Msg("mirror miss")
	c.JSON(http.StatusNotFound, gin.H{"error": "not mirrored"})
}

func localOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
