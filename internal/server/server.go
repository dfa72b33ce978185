package server

import (
	"context"
	"embed"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/careerpilot/linkedin-optimizer-go/internal/config"
	"github.com/careerpilot/linkedin-optimizer-go/internal/constants"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/cache"
	"github.com/careerpilot/linkedin-optimizer-go/internal/service/llm"
	"github.com/careerpilot/linkedin-optimizer-go/internal/session"
	"github.com/careerpilot/linkedin-optimizer-go/pkg/errors"
)

//go:embed static/index.html
var staticFS embed.FS

// Server exposes the optimizer over HTTP and WebSocket
type Server struct {
	cfg      *config.Config
	chat     *ChatService
	sessions *session.Store
	models   *llm.ModelManager
	cache    *cache.CacheService
	logger   *zap.Logger
	httpSrv  *http.Server
}

func NewServer(cfg *config.Config, chat *ChatService, sessions *session.Store, models *llm.ModelManager, cacheService *cache.CacheService, logger *zap.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		chat:     chat,
		sessions: sessions,
		models:   models,
		cache:    cacheService,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/profile", s.handleLoadProfile)
	mux.HandleFunc("POST /api/sessions/{id}/targeting", s.handleTargeting)
	mux.HandleFunc("POST /api/sessions/{id}/messages", s.handleMessage)
	mux.HandleFunc("DELETE /api/sessions/{id}/messages", s.handleClearMessages)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	handler := s.recoverMiddleware(s.corsMiddleware(s.bodyLimitMiddleware(mux)))

	s.httpSrv = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Run blocks serving requests until Shutdown is called
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.Server.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()
	if _, err := s.sessions.GetOrCreate(sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("Session created", zap.String("session", sessionID))
	s.writeJSON(w, http.StatusCreated, map[string]string{"session_id": sessionID})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.GetOrCreate(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleLoadProfile(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var (
		welcome string
		err     error
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		welcome, err = s.importUploadedResume(r, sessionID)
	} else {
		var req struct {
			LinkedInURL string `json:"linkedin_url"`
		}
		if derr := json.NewDecoder(r.Body).Decode(&req); derr != nil {
			s.writeError(w, r, errors.NewValidationError("invalid JSON body", "body", derr.Error()))
			return
		}
		if strings.TrimSpace(req.LinkedInURL) == "" {
			s.writeError(w, r, errors.NewValidationError("linkedin_url is required", "linkedin_url", ""))
			return
		}
		welcome, err = s.chat.LoadProfileFromURL(r.Context(), sessionID, req.LinkedInURL)
	}

	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": welcome})
}

func (s *Server) importUploadedResume(r *http.Request, sessionID string) (string, error) {
	if err := r.ParseMultipartForm(constants.InputLimits.MaxResumeBytes); err != nil {
		return "", errors.NewValidationError("could not parse upload", "resume", err.Error())
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return "", errors.NewValidationError("resume file is required", "resume", err.Error())
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.InputLimits.MaxResumeBytes+1))
	if err != nil {
		return "", errors.NewValidationError("could not read upload", "resume", err.Error())
	}

	return s.chat.ImportResume(sessionID, header.Filename, data)
}

func (s *Server) handleTargeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetRole  string `json:"target_role"`
		CareerGoals string `json:"career_goals"`
		CustomJD    string `json:"custom_jd"`
		Location    string `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.NewValidationError("invalid JSON body", "body", err.Error()))
		return
	}

	sess, err := s.chat.SetTargeting(r.PathValue("id"), session.Targeting{
		TargetRole:  req.TargetRole,
		CareerGoals: req.CareerGoals,
		CustomJD:    req.CustomJD,
		Location:    req.Location,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.NewValidationError("invalid JSON body", "body", err.Error()))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.writeError(w, r, errors.NewValidationError("message is required", "message", ""))
		return
	}

	reply, err := s.chat.HandleMessage(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleClearMessages(w http.ResponseWriter, r *http.Request) {
	confirmation, err := s.chat.ClearConversation(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": confirmation})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"providers": s.models.CircuitStatus(),
		"cache":     s.cache.IsConnected(ctx),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// Middleware

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil {
				s.logger.Error("Handler panicked",
					zap.Any("panic", rv),
					zap.String("path", r.URL.Path),
					zap.String("stack", string(debug.Stack())),
				)
				s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) bodyLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, constants.InputLimits.MaxResumeBytes+(1<<20))
		}
		next.ServeHTTP(w, r)
	})
}

// originAllowed reports whether the Origin may use the API. An empty
// allowlist keeps the server same-origin only.
func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.Server.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// Response helpers

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var httpErr interface{ HTTPStatus() int }
	if stderrors.As(err, &httpErr) {
		status = httpErr.HTTPStatus()
		message = err.Error()
	}

	s.logger.Warn("Request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	s.writeJSON(w, status, map[string]string{"error": message})
}
