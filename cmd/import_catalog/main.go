package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/meur/healthguide/internal/catalog"
	"github.com/meur/healthguide/internal/models"
)

var slugRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func main() {
	inPath := flag.String("in", "data/diseases.json", "Source disease table")
	outPath := flag.String("out", "internal/catalog/diseases.json", "Where to write the checked table")
	dryRun := flag.Bool("dry-run", false, "Validate only")
	flag.Parse()

	data, err := os.ReadFile(*inPath)
	if err != nil {
		log.Fatalf("Failed to read diseases: %v", err)
	}

	var records []models.Disease
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Failed to parse diseases: %v", err)
	}

	// Records without an id get one from the English name
	for i := range records {
		if records[i].ID == "" {
			records[i].ID = slugify(records[i].Name)
		}
	}

	c, err := catalog.New(records)
	if err != nil {
		log.Fatalf("Disease table is invalid: %v", err)
	}

	counts := map[models.Category]int{}
	for _, s := range c.ListAll() {
		counts[s.Category]++
	}
	fmt.Printf("Checked %d diseases (%d communicable, %d non-communicable, %d emergency)\n",
		c.Len(), counts[models.CategoryCommunicable], counts[models.CategoryNonCommunicable], counts[models.CategoryEmergency])

	if *dryRun {
		return
	}

	out, err := json.MarshalIndent(c.Records(), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode diseases: %v", err)
	}
	if err := os.WriteFile(*outPath, append(out, '\n'), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}

	fmt.Printf("✓ Wrote %s\n", *outPath)
}
