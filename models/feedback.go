package models

import (
	"time"
)

// Feedback is a single submitted feedback document. Immutable once stored.
type Feedback struct {
	ID           string    `bson:"_id"           json:"id"`
	UserID       string    `bson:"user_id"       json:"user_id"`
	RepoURL      string    `bson:"repo_url"      json:"repo_url"`
	Name         string    `bson:"name"          json:"name"`
	Email        string    `bson:"email"         json:"email"`
	Message      string    `bson:"message"       json:"message"`
	FeedbackType string    `bson:"feedback_type" json:"feedback_type"`
	Category     string    `bson:"category"      json:"category"`
	CreatedAt    time.Time `bson:"created_at"    json:"created_at"`
}

// FeedbackSubmission is an inbound feedback request before sanitization
// and classification
type FeedbackSubmission struct {
	UserID       string `json:"user_id"`
	RepoURL      string `json:"repo_url"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	FeedbackType string `json:"feedback_type"`
}

// FeedbackVerdict is the classifier's constrained JSON verdict
type FeedbackVerdict struct {
	Valid    bool   `json:"valid"`
	Category string `json:"category"`
}

// FeedbackCategories are the only categories the classifier may return;
// anything else is normalized to "other"
var FeedbackCategories = []string{"bug", "feature", "ux", "performance", "content", "other"}

// IsKnownFeedbackCategory reports whether category is one of FeedbackCategories
func IsKnownFeedbackCategory(category string) bool {
	for _, c := range FeedbackCategories {
		if c == category {
			return true
		}
	}
	return false
}
