package service

import (
	"log/slog"
	"net/http"

	"github.com/mmynk/hisaab/internal/auth"
	"github.com/mmynk/hisaab/internal/metrics"
	"github.com/mmynk/hisaab/internal/middleware"
	"github.com/mmynk/hisaab/internal/models"
)

// AuthService serves login and session endpoints.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	metrics       *metrics.Metrics
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		metrics:       m,
		logger:        logger,
	}
}

// Register mounts the auth routes. requireAuth guards /me.
func (s *AuthService) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/auth/login", s.Login)
	mux.Handle("GET /api/auth/me", requireAuth(http.HandlerFunc(s.Me)))
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Created bool         `json:"created"`
}

// Login registers the username on first use, otherwise checks the password.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.logger.Info("Login request", "username", req.Username)

	user, created, err := s.authenticator.RegisterOrLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		s.metrics.Logins.WithLabelValues("rejected").Inc()
		s.logger.Warn("Login failed", "username", req.Username, "error", err)
		writeError(w, err)
		return
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		writeError(w, err)
		return
	}

	result := "login"
	if created {
		result = "registered"
	}
	s.metrics.Logins.WithLabelValues(result).Inc()
	s.logger.Info("User logged in", "user_id", user.ID, "username", user.Username, "created", created)

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user, Created: created})
}

// Me returns the identity carried by the session token.
func (s *AuthService) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"id":       middleware.GetUserID(r.Context()),
		"username": middleware.GetUsername(r.Context()),
	})
}
