package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/meur/healthguide/internal/alerts"
	"github.com/meur/healthguide/internal/api"
	"github.com/meur/healthguide/internal/catalog"
	"github.com/meur/healthguide/internal/config"
	"github.com/meur/healthguide/internal/saved"
	"github.com/meur/healthguide/internal/search"
	"github.com/meur/healthguide/internal/storage"
)

func main() {
	// Parse flags
	configPath := flag.String("config", getEnv("HEALTHGUIDE_CONFIG", "healthguide.yml"), "YAML config file")
	addr := flag.String("addr", "", "Listen address, overrides server.addr")
	staticDir := flag.String("static", getEnv("HEALTHGUIDE_STATIC", ""), "Front end build to serve on /")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid config: %v", err)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		logrus.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Content
	diseases, err := catalog.Default()
	if err != nil {
		logger.Fatalf("Failed to load disease catalog: %v", err)
	}
	fields, err := search.FieldsFor(search.Coverage(cfg.Search.Coverage))
	if err != nil {
		logger.Fatalf("Invalid search coverage: %v", err)
	}

	// Initialize storage
	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	defer kv.Close()

	registry := saved.NewRegistry(storage.NewSavedList(kv, logger), logger)
	registry.Hydrate(ctx)

	srv := api.New(api.Options{
		Catalog:         diseases,
		Saved:           registry,
		Alerts:          alerts.NewBoard(alerts.Seed()),
		Fields:          fields,
		DefaultLanguage: cfg.Language,
		Origins:         cfg.Server.Origins,
		Logger:          logger,
	})

	// Serve front end static files (for production deployment)
	if *staticDir != "" {
		FileServer(srv.Router(), "/", http.Dir(*staticDir))
	}

	logger.WithFields(logrus.Fields{
		"addr":     cfg.Server.Addr,
		"storage":  cfg.Storage.Driver,
		"diseases": diseases.Len(),
		"saved":    len(registry.IDs()),
	}).Info("HealthGuide API starting")

	if err := runServer(ctx, &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}); err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
