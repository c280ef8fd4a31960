package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/meur/healthguide/internal/models"
)

//go:embed diseases.json
var embeddedTable []byte

// Catalog is the read-only content store of disease records
type Catalog struct {
	records []models.Disease
	byID    map[string]int
}

// Load parses and validates a JSON disease table
func Load(r io.Reader) (*Catalog, error) {
	var records []models.Disease
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse disease table: %w", err)
	}
	return New(records)
}

// New builds a catalog from records, keeping their order
func New(records []models.Disease) (*Catalog, error) {
	c := &Catalog{
		records: make([]models.Disease, 0, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	for i, d := range records {
		if err := validate(d); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("record %d: duplicate id %q", i, d.ID)
		}
		c.byID[d.ID] = len(c.records)
		c.records = append(c.records, d)
	}
	return c, nil
}

// Default returns the catalog built from the embedded table
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedTable))
}

// GetByID returns a disease by ID. The bool is false when no such record exists.
func (c *Catalog) GetByID(id string) (models.Disease, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Disease{}, false
	}
	return c.records[i], true
}

// Has reports whether id names a record
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// ListAll returns summaries of every record in table order
func (c *Catalog) ListAll() []models.Summary {
	out := make([]models.Summary, 0, len(c.records))
	for _, d := range c.records {
		out = append(out, d.Summary())
	}
	return out
}

// Records returns the full records in table order.
// The slice is a copy; content maps are shared and must be treated as read-only.
func (c *Catalog) Records() []models.Disease {
	return append([]models.Disease(nil), c.records...)
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.records)
}

func validate(d models.Disease) error {
	if d.ID == "" {
		return fmt.Errorf("missing id")
	}
	if d.Name == "" {
		return fmt.Errorf("%s: missing name", d.ID)
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%s: invalid category %q", d.ID, d.Category)
	}
	if !d.Severity.Valid() {
		return fmt.Errorf("%s: invalid severity %q", d.ID, d.Severity)
	}
	if _, ok := d.Content[models.FallbackLanguage]; !ok {
		return fmt.Errorf("%s: missing %q content", d.ID, models.FallbackLanguage)
	}
	for lang, content := range d.Content {
		if err := validateContent(content); err != nil {
			return fmt.Errorf("%s/%s: %w", d.ID, lang, err)
		}
	}
	return nil
}

func validateContent(c models.DiseaseContent) error {
	required := map[string][]string{
		"symptoms":   c.Symptoms,
		"causes":     c.Causes,
		"prevention": c.Prevention,
		"treatment":  c.Treatment,
	}
	for name, list := range required {
		if len(list) == 0 {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	// Optional sections are omitted rather than emitted empty
	optional := map[string]int{
		"complications": lenOrMissing(c.Complications),
		"risk_factors":  lenOrMissing(c.RiskFactors),
		"diagnosis":     lenOrMissing(c.Diagnosis),
		"living_with":   lenOrMissing(c.LivingWith),
		"faqs":          -1,
		"resources":     -1,
	}
	if c.FAQs != nil {
		optional["faqs"] = len(c.FAQs)
	}
	if c.Resources != nil {
		optional["resources"] = len(c.Resources)
	}
	for name, n := range optional {
		if n == 0 {
			return fmt.Errorf("%s is present but empty", name)
		}
	}
	return nil
}

// lenOrMissing returns -1 for an absent list
func lenOrMissing(list []string) int {
	if list == nil {
		return -1
	}
	return len(list)
}
