package models

import (
	"time"
)

// AlertType classifies an alert
type AlertType string

const (
	AlertEmergency AlertType = "emergency"
	AlertWarning   AlertType = "warning"
	AlertInfo      AlertType = "info"
	AlertHealthTip AlertType = "health-tip"
)

// Priority orders alerts by urgency
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Alert is a public health notice shown on the alerts page
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Location  string    `json:"location,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
	Priority  Priority  `json:"priority"`
}

// Language is a content language offered to readers
type Language struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native"` // Name in the language itself
}
