package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/meur/healthguide/internal/alerts"
	"github.com/meur/healthguide/internal/catalog"
	"github.com/meur/healthguide/internal/models"
	"github.com/meur/healthguide/internal/saved"
	"github.com/meur/healthguide/internal/search"
)

// Options are the dependencies of a Server
type Options struct {
	Catalog         *catalog.Catalog
	Saved           *saved.Registry
	Alerts          *alerts.Board
	Fields          []search.Field // Search coverage, DeepFields when empty
	DefaultLanguage string
	Origins         []string
	Logger          logrus.FieldLogger
}

// Server holds the HTTP server dependencies
type Server struct {
	catalog  *catalog.Catalog
	saved    *saved.Registry
	alerts   *alerts.Board
	fields   []search.Field
	language string
	origins  []string
	log      logrus.FieldLogger
	router   chi.Router
}

// New creates a new API server
func New(opts Options) *Server {
	if opts.Logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		opts.Logger = l
	}
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = models.FallbackLanguage
	}
	if len(opts.Origins) == 0 {
		opts.Origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}

	s := &Server{
		catalog:  opts.Catalog,
		saved:    opts.Saved,
		alerts:   opts.Alerts,
		fields:   opts.Fields,
		language: opts.DefaultLanguage,
		origins:  opts.Origins,
		log:      opts.Logger,
		router:   chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the chi router for mounting extra handlers
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.log, NoColor: true}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		// Websocket upgrades cannot go through the compressor
		r.Get("/saved/stream", s.handleSavedStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Compress(5))

			r.Get("/languages", s.handleGetLanguages)

			// Diseases
			r.Get("/diseases", s.handleGetDiseases)
			r.Get("/diseases/{id}", s.handleGetDisease)

			// Bookmarks
			r.Get("/saved", s.handleGetSaved)
			r.Post("/saved/{id}/toggle", s.handleToggleSaved)

			// Alerts
			r.Get("/alerts", s.handleGetAlerts)
			r.Post("/alerts/read-all", s.handleMarkAllAlertsRead)
			r.Post("/alerts/{id}/read", s.handleMarkAlertRead)
			r.Delete("/alerts/{id}", s.handleDeleteAlert)
		})
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
