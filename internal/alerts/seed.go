package alerts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meur/healthguide/internal/models"
)

// StableID derives an alert id that survives restarts
func StableID(alertType models.AlertType, title string) string {
	input := fmt.Sprintf("healthguide:alert:%s:%s", alertType, title)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(input)).String()
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed returns the sample alerts, newest first
func Seed() []models.Alert {
	alerts := []models.Alert{
		{
			Type:      models.AlertEmergency,
			Title:     "Cholera Outbreak Alert",
			Message:   "A cholera outbreak has been reported in Greater Accra. Ensure you drink only bottled or properly boiled water. Seek immediate medical attention if you experience severe diarrhea or vomiting.",
			Location:  "Greater Accra Region",
			Timestamp: at("2024-01-15T10:30:00Z"),
			Priority:  models.PriorityHigh,
		},
		{
			Type:      models.AlertWarning,
			Title:     "Malaria Prevention Reminder",
			Message:   "The rainy season has increased mosquito activity. Remember to sleep under treated nets and eliminate standing water around your home.",
			Location:  "Nationwide",
			Timestamp: at("2024-01-14T18:00:00Z"),
			Priority:  models.PriorityMedium,
		},
		{
			Type:      models.AlertInfo,
			Title:     "Free Health Screening",
			Message:   "Free blood pressure and diabetes screening available at Korle-Bu Teaching Hospital this weekend from 8 AM to 4 PM.",
			Location:  "Korle-Bu Teaching Hospital",
			Timestamp: at("2024-01-13T09:00:00Z"),
			IsRead:    true,
			Priority:  models.PriorityLow,
		},
		{
			Type:      models.AlertHealthTip,
			Title:     "Daily Health Tip",
			Message:   "Drink at least 8 glasses of water daily to maintain proper hydration and support kidney function.",
			Timestamp: at("2024-01-12T06:00:00Z"),
			IsRead:    true,
			Priority:  models.PriorityLow,
		},
		{
			Type:      models.AlertWarning,
			Title:     "Heat Wave Warning",
			Message:   "Extreme heat expected this week. Stay hydrated, avoid direct sunlight during peak hours (11 AM - 3 PM), and wear light-colored clothing.",
			Location:  "Northern Regions",
			Timestamp: at("2024-01-11T14:00:00Z"),
			Priority:  models.PriorityMedium,
		},
	}

	for i := range alerts {
		alerts[i].ID = StableID(alerts[i].Type, alerts[i].Title)
	}
	return alerts
}
