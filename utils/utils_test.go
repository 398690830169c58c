package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		out, err := SanitizeText("  the login button is broken  ")

		assert.NoError(t, err)
		assert.Equal(t, "the login button is broken", out)
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		_, err := SanitizeText(strings.Repeat("a", MaxFeedbackLength+1))
		assert.Error(t, err)
	})

	t.Run("accepts input at the limit", func(t *testing.T) {
		out, err := SanitizeText(strings.Repeat("a", MaxFeedbackLength))

		assert.NoError(t, err)
		assert.Len(t, out, MaxFeedbackLength)
	})

	t.Run("rejects script tags", func(t *testing.T) {
		_, err := SanitizeText(`hello <script src="evil.js">`)
		assert.Error(t, err)

		_, err = SanitizeText("hello </SCRIPT>")
		assert.Error(t, err)
	})

	t.Run("rejects SQL fragments", func(t *testing.T) {
		_, err := SanitizeText("nice app; DROP TABLE users")
		assert.Error(t, err)

		_, err = SanitizeText("feedback -- with a comment")
		assert.Error(t, err)
	})

	t.Run("allows ordinary punctuation", func(t *testing.T) {
		out, err := SanitizeText("The search page is slow. Can you fix it?")

		assert.NoError(t, err)
		assert.NotEmpty(t, out)
	})
}

func TestAssertInvariant(t *testing.T) {
	assert.NotPanics(t, func() { AssertInvariant(true, "fine") })
	assert.Panics(t, func() { AssertInvariant(false, "broken") })
}
