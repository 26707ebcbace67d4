package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pokedex/internal/auth"
	"pokedex/internal/charts"
	"pokedex/pkg/models"
)

// Charts is the part of charts.Aggregator the handler needs.
type Charts interface {
	Chart(ctx context.Context, kind charts.Kind) *models.ChartSeries
	All(ctx context.Context) map[charts.Kind]*models.ChartSeries
}

type Handler struct {
	Charts Charts
	Latest *charts.Latest
	Log    zerolog.Logger
}

func NewHandler(c Charts, log zerolog.Logger) *Handler {
	return &Handler{Charts: c, Latest: charts.NewLatest(), Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/charts", h.all)       // GET /dashboard/charts
	rg.GET("/charts/:kind", h.one) // GET /dashboard/charts/:kind
}

func (h *Handler) one(c *gin.Context) {
	kind, err := charts.ParseKind(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown chart"})
		return
	}

	ctx, done := h.Latest.Begin(c.Request.Context(), runKey(c, string(kind)))
	defer done()

	chart := h.Charts.Chart(ctx, kind)
	if chart == nil && h.superseded(c, ctx) {
		c.JSON(http.StatusConflict, gin.H{"error": "superseded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":  kind,
		"chart": chart,
	})
}

func (h *Handler) all(c *gin.Context) {
	ctx, done := h.Latest.Begin(c.Request.Context(), runKey(c, "all"))
	defer done()

	out := h.Charts.All(ctx)
	if !complete(out) && h.superseded(c, ctx) {
		c.JSON(http.StatusConflict, gin.H{"error": "superseded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"types":                 out[charts.KindTypes],
		"generations":           out[charts.KindGenerations],
		"genders_by_generation": out[charts.KindGendersByGeneration],
	})
}

// superseded reports whether a newer request for the same chart cancelled
// this run while the client itself is still waiting. Callers only ask when
// the result is incomplete; a run that finished before being cancelled is
// still served.
func (h *Handler) superseded(c *gin.Context, runCtx context.Context) bool {
	if c.Request.Context().Err() != nil {
		return false
	}
	if errors.Is(runCtx.Err(), context.Canceled) {
		h.Log.Debug().Str("path", c.FullPath()).Msg("chart request superseded")
		return true
	}
	return false
}

func complete(out map[charts.Kind]*models.ChartSeries) bool {
	for _, k := range charts.Kinds() {
		if out[k] == nil {
			return false
		}
	}
	return true
}

func runKey(c *gin.Context, name string) string {
	user := "anonymous"
	if claims := auth.MustGetClaims(c); claims != nil {
		user = claims.UserID
	}
	return user + "/" + name
}
