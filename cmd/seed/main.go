package main

import (
	"context"
	"flag"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/meur/healthguide/internal/catalog"
	"github.com/meur/healthguide/internal/config"
	"github.com/meur/healthguide/internal/saved"
	"github.com/meur/healthguide/internal/storage"
)

func main() {
	configPath := flag.String("config", "healthguide.yml", "YAML config file")
	ids := flag.String("ids", "malaria,hypertension", "Comma-separated disease ids to bookmark")
	reset := flag.Bool("reset", false, "Clear existing bookmarks first")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	diseases, err := catalog.Default()
	if err != nil {
		log.Fatalf("Failed to load disease catalog: %v", err)
	}

	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer kv.Close()

	ctx := context.Background()
	list := storage.NewSavedList(kv, log.StandardLogger())
	if *reset {
		if err := list.Save(ctx, nil); err != nil {
			log.Fatalf("Failed to clear bookmarks: %v", err)
		}
		log.Info("Cleared bookmarks")
	}

	registry := saved.NewRegistry(list, log.StandardLogger())
	registry.Hydrate(ctx)

	for _, id := range strings.Split(*ids, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !diseases.Has(id) {
			log.Warnf("Skipping unknown disease %q", id)
			continue
		}
		if registry.IsSaved(id) {
			continue
		}
		if _, err := registry.Toggle(ctx, id); err != nil {
			log.Fatalf("Failed to bookmark %s: %v", id, err)
		}
		log.Infof("✓ Bookmarked %s", id)
	}

	log.WithField("saved", registry.IDs()).Info("🌱 Seeding complete!")
}
