package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/netkar/internal/config"
	"github.com/Simplici0/netkar/internal/db"
	"github.com/Simplici0/netkar/internal/format"
	"github.com/Simplici0/netkar/internal/logger"
	"github.com/Simplici0/netkar/internal/migrations"
	"github.com/Simplici0/netkar/internal/preset"
	"github.com/Simplici0/netkar/internal/seed"
	"github.com/Simplici0/netkar/web"
)

const (
	requestTimeout  = 15 * time.Second
	shutdownTimeout = 10 * time.Second
)

// presetStore is the read side of the preset catalog.
type presetStore interface {
	Marketplaces(ctx context.Context) ([]preset.Marketplace, error)
	VATCategories(ctx context.Context) ([]preset.VATCategory, error)
	Marketplace(ctx context.Context, id int64) (preset.Marketplace, error)
	VATCategory(ctx context.Context, id int64) (preset.VATCategory, error)
	Ping(ctx context.Context) error
}

type server struct {
	presets presetStore
	log     *zap.Logger
	format  format.Formatter
}

func newServer(presets presetStore, log *zap.Logger, f format.Formatter) *server {
	return &server{presets: presets, log: log, format: f}
}

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.IsDev(), cfg.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatal("failed to open database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(ctx, database)
	if err != nil {
		log.Fatal("failed to seed preset catalog", zap.Error(err))
	}
	log.Info("preset catalog ready", zap.Int("inserts", stats.Inserts))

	srv := newServer(preset.NewRepository(database), log, format.New(cfg.CurrencyLabel))

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("addr", httpSrv.Addr), zap.String("env", cfg.AppEnv))
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server stopped")
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/", s.handleHome)
	r.Post("/", s.handleCalculateForm)
	r.Get("/calculate/text", s.handleCalculateText)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/calculate", s.handleAPICalculateQuery)
		r.Post("/calculate", s.handleAPICalculateJSON)
		r.Get("/presets", s.handlePresets)
	})

	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func (s *server) handlePresets(w http.ResponseWriter, r *http.Request) {
	marketplaces, err := s.presets.Marketplaces(r.Context())
	if err != nil {
		s.log.Error("list marketplaces", zap.Error(err))
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load marketplaces")
		return
	}
	categories, err := s.presets.VATCategories(r.Context())
	if err != nil {
		s.log.Error("list vat categories", zap.Error(err))
		s.writeJSONError(w, http.StatusInternalServerError, "failed to load vat categories")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"marketplaces":  marketplaces,
		"vatCategories": categories,
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.presets.Ping(r.Context()); err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := web.ParseTemplates(page)
	if err != nil {
		s.log.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.log.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.log.Error("encode json response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *server) writeJSONError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
