package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	t.Run("generates prefixed ids", func(t *testing.T) {
		id := NewID("u")

		assert.True(t, strings.HasPrefix(id, "u_"))
		assert.True(t, IsValidULID(id))
	})

	t.Run("lowercases the prefix", func(t *testing.T) {
		id := NewID("GHA")
		assert.True(t, strings.HasPrefix(id, "gha_"))
	})

	t.Run("generates unique ids", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID("fb")
			assert.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("panics on empty prefix", func(t *testing.T) {
		assert.Panics(t, func() { NewID("") })
	})
}

func TestIsValidULID(t *testing.T) {
	assert.True(t, IsValidULID(NewID("u")))
	assert.False(t, IsValidULID(""))
	assert.False(t, IsValidULID("no-underscore"))
	assert.False(t, IsValidULID("u_tooshort"))
	assert.False(t, IsValidULID("_01G0EZ1XTM37C5X11SQTDNCTM1"))
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(errors.New("account Not Found")))
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("connection refused")))
}
