package anthropic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripJSONFences(t *testing.T) {
	t.Run("passes bare JSON through", func(t *testing.T) {
		assert.Equal(t, `{"valid":true}`, stripJSONFences(`{"valid":true}`))
	})

	t.Run("strips a json code fence", func(t *testing.T) {
		fenced := "```json\n{\"valid\":true,\"category\":\"bug\"}\n```"
		assert.Equal(t, `{"valid":true,"category":"bug"}`, stripJSONFences(fenced))
	})

	t.Run("strips a bare code fence", func(t *testing.T) {
		fenced := "```\n{\"valid\":false}\n```"
		assert.Equal(t, `{"valid":false}`, stripJSONFences(fenced))
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, `{}`, stripJSONFences("  {}  \n"))
	})
}
