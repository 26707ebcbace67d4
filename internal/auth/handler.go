package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pokedex/pkg/models"
)

type Handler struct {
	Repo   *Repo
	Tokens TokenService
	Notify func(detail string) // optional success toast
	Log    zerolog.Logger
}

func NewHandler(repo *Repo, tokens TokenService, log zerolog.Logger) *Handler {
	return &Handler{Repo: repo, Tokens: tokens, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.login)
	rg.POST("/logout", AuthMiddleware(h.Tokens, h.Repo), h.logout)
	rg.GET("/session", AuthMiddleware(h.Tokens, h.Repo), h.session)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	if !strings.Contains(email, "@") || len(email) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email"})
		return
	}

	u, err := Authenticate(c.Request.Context(), h.Repo, email, req.Password)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.Log.Error().Err(err).Msg("login lookup failed")
		}
		// don't reveal which part failed
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, exp, err := h.Tokens.Sign(u)
	if err != nil {
		h.Log.Error().Err(err).Str("user_id", u.ID).Msg("sign token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
		return
	}

	h.Log.Info().Str("user_id", u.ID).Msg("user logged in")
	if h.Notify != nil {
		h.Notify("Logged in as " + u.Username)
	}

	c.JSON(http.StatusOK, models.Session{
		LoggedIn:  true,
		User:      userInfo(u),
		Token:     token,
		ExpiresAt: exp.UTC(),
	})
}

func (h *Handler) logout(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	if err := h.Repo.BumpTokenVersion(c.Request.Context(), claims.UserID); err != nil {
		h.Log.Error().Err(err).Str("user_id", claims.UserID).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	if h.Notify != nil {
		h.Notify("Logged out")
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out", "logged_in": false})
}

func (h *Handler) session(c *gin.Context) {
	claims := MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.UTC()
	}
	c.JSON(http.StatusOK, gin.H{
		"logged_in":     true,
		"token_expired": false,
		"user": models.UserInfo{
			ID:       claims.UserID,
			Username: claims.Username,
			Email:    claims.Email,
		},
		"expires_at": exp.Format(time.RFC3339),
	})
}

func userInfo(u *User) models.UserInfo {
	return models.UserInfo{ID: u.ID, Username: u.Username, Email: u.Email}
}
