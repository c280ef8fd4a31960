package models

// Category groups diseases for browsing
type Category string

const (
	CategoryCommunicable    Category = "communicable"
	CategoryNonCommunicable Category = "non-communicable"
	CategoryEmergency       Category = "emergency"
)

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryCommunicable, CategoryNonCommunicable, CategoryEmergency:
		return true
	}
	return false
}

// Severity is an optional risk indicator shown on cards
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether s is empty or one of the known severities
func (s Severity) Valid() bool {
	switch s {
	case "", SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// FallbackLanguage is the language every disease must provide content in
const FallbackLanguage = "en"

// Disease is a catalog entry with its localized educational content
type Disease struct {
	ID                 string                    `json:"id"`
	Name               string                    `json:"name"`
	Category           Category                  `json:"category"`
	Description        string                    `json:"description"`
	LastUpdated        string                    `json:"last_updated"` // Freshness label, e.g. "2 days ago"
	IsOfflineAvailable bool                      `json:"is_offline_available"`
	Severity           Severity                  `json:"severity,omitempty"`
	MedicalReviewDate  string                    `json:"medical_review_date,omitempty"`
	ReviewedBy         string                    `json:"reviewed_by,omitempty"`
	EstimatedReadTime  string                    `json:"estimated_read_time,omitempty"`
	Content            map[string]DiseaseContent `json:"content"` // Keyed by language code
}

// DiseaseContent is one language's content block
type DiseaseContent struct {
	Overview      string     `json:"overview"`
	Symptoms      []string   `json:"symptoms"`
	Causes        []string   `json:"causes"`
	Prevention    []string   `json:"prevention"`
	Treatment     []string   `json:"treatment"`
	Complications []string   `json:"complications,omitempty"`
	RiskFactors   []string   `json:"risk_factors,omitempty"`
	Diagnosis     []string   `json:"diagnosis,omitempty"`
	LivingWith    []string   `json:"living_with,omitempty"`
	FAQs          []FAQ      `json:"faqs,omitempty"`
	Resources     []Resource `json:"resources,omitempty"`
}

// FAQ is a question and answer pair
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Resource points to further help or reading
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description"`
}

// Summary is a lightweight version for listings
type Summary struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Category           Category `json:"category"`
	Description        string   `json:"description"`
	LastUpdated        string   `json:"last_updated"`
	IsOfflineAvailable bool     `json:"is_offline_available"`
	Severity           Severity `json:"severity,omitempty"`
}

// Summary projects the disease without its content
func (d Disease) Summary() Summary {
	return Summary{
		ID:                 d.ID,
		Name:               d.Name,
		Category:           d.Category,
		Description:        d.Description,
		LastUpdated:        d.LastUpdated,
		IsOfflineAvailable: d.IsOfflineAvailable,
		Severity:           d.Severity,
	}
}

// LocalizedContent returns the content block for lang, falling back to
// English. The second value is the language actually served.
func (d Disease) LocalizedContent(lang string) (DiseaseContent, string) {
	if c, ok := d.Content[lang]; ok {
		return c, lang
	}
	return d.Content[FallbackLanguage], FallbackLanguage
}
