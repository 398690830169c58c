package utils

import (
	"fmt"
	"regexp"
	"strings"
)

func AssertInvariant(condition bool, message string) {
	if !condition {
		panic("invariant violated - " + message)
	}
}

// MaxFeedbackLength is the upper bound on accepted feedback text
const MaxFeedbackLength = 2000

// Patterns rejected outright before feedback text reaches any downstream call
var feedbackBlacklist = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script.*?>`),
	regexp.MustCompile(`(?i)</script>`),
	regexp.MustCompile(`(?i)DROP TABLE`),
	regexp.MustCompile(`--`),
}

// SanitizeText trims and validates free-text input. It rejects oversized
// input and a small blacklist of script/SQL fragments.
func SanitizeText(text string) (string, error) {
	text = strings.TrimSpace(text)

	if len(text) > MaxFeedbackLength {
		return "", fmt.Errorf("input too long: %d characters exceeds limit of %d", len(text), MaxFeedbackLength)
	}

	for _, pattern := range feedbackBlacklist {
		if pattern.MatchString(text) {
			return "", fmt.Errorf("input contains disallowed content")
		}
	}

	return text, nil
}
