package catalog

import (
	"strings"
	"testing"

	"github.com/meur/healthguide/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Len() != 8 {
		t.Fatalf("expected 8 records, got %d", c.Len())
	}

	summaries := c.ListAll()
	if summaries[0].ID != "hiv-aids" || summaries[1].ID != "hypertension" {
		t.Errorf("unexpected order: %s, %s", summaries[0].ID, summaries[1].ID)
	}
	for _, s := range summaries {
		d, ok := c.GetByID(s.ID)
		if !ok {
			t.Fatalf("GetByID(%q) not found", s.ID)
		}
		if d.Summary() != s {
			t.Errorf("summary mismatch for %s", s.ID)
		}
	}
}

func TestGetByIDNotFound(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if _, ok := c.GetByID("missing"); ok {
		t.Fatal("expected missing record to be absent")
	}
	if c.Has("missing") {
		t.Fatal("Has reported a missing record")
	}
}

func TestLocalizedContentFallsBackToEnglish(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	d, _ := c.GetByID("malaria")

	content, lang := d.LocalizedContent("tw")
	if lang != models.FallbackLanguage {
		t.Errorf("lang = %q, want %q", lang, models.FallbackLanguage)
	}
	if !strings.HasPrefix(content.Overview, "Malaria is") {
		t.Errorf("unexpected overview: %q", content.Overview)
	}
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	cases := map[string]string{
		"malformed":    `{"id": "x"}`,
		"missing en":   `[{"id":"a","name":"A","category":"emergency","content":{"tw":{"symptoms":["s"],"causes":["c"],"prevention":["p"],"treatment":["t"]}}}]`,
		"bad category": `[{"id":"a","name":"A","category":"viral","content":{"en":{"symptoms":["s"],"causes":["c"],"prevention":["p"],"treatment":["t"]}}}]`,
		"empty list":   `[{"id":"a","name":"A","category":"emergency","content":{"en":{"symptoms":[],"causes":["c"],"prevention":["p"],"treatment":["t"]}}}]`,
		"empty faqs":   `[{"id":"a","name":"A","category":"emergency","content":{"en":{"symptoms":["s"],"causes":["c"],"prevention":["p"],"treatment":["t"],"faqs":[]}}}]`,
		"duplicate id": `[{"id":"a","name":"A","category":"emergency","content":{"en":{"symptoms":["s"],"causes":["c"],"prevention":["p"],"treatment":["t"]}}},
			{"id":"a","name":"B","category":"emergency","content":{"en":{"symptoms":["s"],"causes":["c"],"prevention":["p"],"treatment":["t"]}}}]`,
	}
	for name, table := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(table)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	if len(langs) != 5 || langs[0].Code != "en" {
		t.Fatalf("unexpected languages: %+v", langs)
	}
	if !SupportedLanguage("ha") || SupportedLanguage("fr") {
		t.Error("SupportedLanguage gave wrong answer")
	}
}
