package search

import (
	"fmt"
	"strings"

	"github.com/meur/healthguide/internal/models"
)

// Field extracts searchable text from a disease.
// Content fields always read the English block, whatever the reader's language.
type Field struct {
	Name    string
	Extract func(d models.Disease) []string
}

func contentField(name string, pick func(c models.DiseaseContent) []string) Field {
	return Field{
		Name: name,
		Extract: func(d models.Disease) []string {
			c, ok := d.Content[models.FallbackLanguage]
			if !ok {
				return nil
			}
			return pick(c)
		},
	}
}

var (
	FieldName = Field{Name: "name", Extract: func(d models.Disease) []string {
		return []string{d.Name}
	}}
	FieldDescription = Field{Name: "description", Extract: func(d models.Disease) []string {
		return []string{d.Description}
	}}
	FieldOverview = contentField("overview", func(c models.DiseaseContent) []string {
		return []string{c.Overview}
	})
	FieldSymptoms      = contentField("symptoms", func(c models.DiseaseContent) []string { return c.Symptoms })
	FieldCauses        = contentField("causes", func(c models.DiseaseContent) []string { return c.Causes })
	FieldPrevention    = contentField("prevention", func(c models.DiseaseContent) []string { return c.Prevention })
	FieldTreatment     = contentField("treatment", func(c models.DiseaseContent) []string { return c.Treatment })
	FieldComplications = contentField("complications", func(c models.DiseaseContent) []string { return c.Complications })
	FieldRiskFactors   = contentField("risk_factors", func(c models.DiseaseContent) []string { return c.RiskFactors })
	FieldDiagnosis     = contentField("diagnosis", func(c models.DiseaseContent) []string { return c.Diagnosis })
	FieldLivingWith    = contentField("living_with", func(c models.DiseaseContent) []string { return c.LivingWith })
	FieldFAQs          = contentField("faqs", func(c models.DiseaseContent) []string {
		out := make([]string, 0, 2*len(c.FAQs))
		for _, f := range c.FAQs {
			out = append(out, f.Question, f.Answer)
		}
		return out
	})
	FieldResources = contentField("resources", func(c models.DiseaseContent) []string {
		out := make([]string, 0, 2*len(c.Resources))
		for _, r := range c.Resources {
			out = append(out, r.Title, r.Description)
		}
		return out
	})
)

// BasicFields searches card text only
var BasicFields = []Field{FieldName, FieldDescription}

// DeepFields searches card text and the whole English content block
var DeepFields = []Field{
	FieldName,
	FieldDescription,
	FieldOverview,
	FieldSymptoms,
	FieldCauses,
	FieldPrevention,
	FieldTreatment,
	FieldComplications,
	FieldRiskFactors,
	FieldDiagnosis,
	FieldLivingWith,
	FieldFAQs,
	FieldResources,
}

// Coverage names a field set for configuration
type Coverage string

const (
	CoverageBasic Coverage = "basic"
	CoverageDeep  Coverage = "deep"
)

// FieldsFor returns the field set for a coverage name
func FieldsFor(c Coverage) ([]Field, error) {
	switch Coverage(strings.ToLower(string(c))) {
	case CoverageBasic:
		return BasicFields, nil
	case CoverageDeep, "":
		return DeepFields, nil
	}
	return nil, fmt.Errorf("unknown search coverage %q", c)
}
