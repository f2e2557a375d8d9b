// Package web serves the browser form application and the JSON progress API.
package web

import (
	"context"
	"crypto/rand"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SevgiNurKARA/Personal-learning-coach/internal/coach"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/config"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/metrics"
	"github.com/SevgiNurKARA/Personal-learning-coach/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// Options configure a Server.
type Options struct {
	Coach   *coach.Coach
	Users   *store.UserStore
	Metrics *metrics.Metrics
	Logger  *zap.Logger
	Server  config.ServerConfig
	Session config.SessionConfig
}

// Server is the web application.
type Server struct {
	engine   *gin.Engine
	coach    *coach.Coach
	users    *store.UserStore
	sessions *sessions
	log      *zap.Logger
	cfg      config.ServerConfig
}

// New builds the gin engine and registers the routes.
func New(opts Options) (*Server, error) {
	if opts.Coach == nil || opts.Users == nil {
		return nil, errors.New("web: coach and user store are required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	secret := opts.Session.Secret
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		secret = hex.EncodeToString(b)
		log.Warn("session secret not configured, sessions will not survive a restart")
	}

	if opts.Server.Mode != "" {
		gin.SetMode(opts.Server.Mode)
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		engine:   gin.New(),
		coach:    opts.Coach,
		users:    opts.Users,
		sessions: newSessions(secret, opts.Session.TTL),
		log:      log,
		cfg:      opts.Server,
	}
	s.engine.SetHTMLTemplate(tmpl)

	s.engine.Use(gin.CustomRecovery(func(c *gin.Context, rec any) {
		log.Error("panic serving request", zap.Any("panic", rec), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	s.engine.Use(requestLogger(log))
	if opts.Metrics != nil {
		s.engine.Use(opts.Metrics.Middleware())
	}
	if len(opts.Server.AllowedOrigins) > 0 {
		s.engine.Use(cors.New(cors.Config{
			AllowOrigins:     opts.Server.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if opts.Server.RatePerSecond > 0 {
		s.engine.Use(newLimiter(opts.Server.RatePerSecond, opts.Server.RateBurst).middleware())
	}

	s.routes(opts.Metrics)
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("web server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) routes(m *metrics.Metrics) {
	r := s.engine

	r.GET("/healthz", s.health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/", s.index)
	r.POST("/login", s.login)
	r.POST("/register", s.register)
	r.POST("/logout", s.logout)

	pages := r.Group("/", s.requireUser(false))
	pages.GET("/dashboard", s.dashboard)
	pages.POST("/curricula/:id/activate", s.activate)
	pages.POST("/curricula/:id/archive", s.archive)
	pages.GET("/goal", s.goalForm)
	pages.POST("/goal", s.submitGoal)
	pages.GET("/assessment", s.assessmentForm)
	pages.POST("/assessment", s.submitAssessment)
	pages.GET("/day/:day", s.day)
	pages.POST("/day/:day/quiz", s.submitQuiz)
	pages.POST("/day/:day/complete", s.completeDay)
	pages.GET("/explain", s.explain)

	api := r.Group("/api/v1", s.requireUser(true))
	api.GET("/progress", s.apiProgress)
}

// requireUser resolves the session. Pages redirect to the login form; API
// routes answer 401.
func (s *Server) requireUser(api bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := s.sessions.user(c)
		if !ok {
			if api {
				apiError(c, http.StatusUnauthorized, "unauthorized")
				return
			}
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Set(userKey, id)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userKey)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
