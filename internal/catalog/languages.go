package catalog

import "github.com/meur/healthguide/internal/models"

var languages = []models.Language{
	{Code: "en", Name: "English", Native: "English"},
	{Code: "tw", Name: "Twi", Native: "Twi"},
	{Code: "ee", Name: "Ewe", Native: "Eʋegbe"},
	{Code: "ga", Name: "Ga", Native: "Gã"},
	{Code: "ha", Name: "Hausa", Native: "Hausa"},
}

// Languages returns the content languages offered to readers
func Languages() []models.Language {
	return append([]models.Language(nil), languages...)
}

// SupportedLanguage reports whether code is one of Languages
func SupportedLanguage(code string) bool {
	for _, l := range languages {
		if l.Code == code {
			return true
		}
	}
	return false
}
