package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	t.Run("bare object passes through", func(t *testing.T) {
		assert.Equal(t, `{"a":1}`, ExtractJSONObject(`{"a":1}`))
	})

	t.Run("strips markdown fences", func(t *testing.T) {
		in := "```json\n{\"message\":\"hi\",\"action\":\"none\"}\n```"
		assert.Equal(t, `{"message":"hi","action":"none"}`, ExtractJSONObject(in))
	})

	t.Run("extracts object surrounded by prose", func(t *testing.T) {
		in := `Sure, here is the directive: {"message":"ok","action":"complete"} hope that helps`
		assert.Equal(t, `{"message":"ok","action":"complete"}`, ExtractJSONObject(in))
	})

	t.Run("nested braces are kept intact", func(t *testing.T) {
		in := `prefix {"outer":{"inner":true}} suffix`
		assert.Equal(t, `{"outer":{"inner":true}}`, ExtractJSONObject(in))
	})

	t.Run("plain text returned unchanged", func(t *testing.T) {
		assert.Equal(t, "just a sentence", ExtractJSONObject("just a sentence"))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", ExtractJSONObject("   "))
	})

	t.Run("array is extracted", func(t *testing.T) {
		assert.Equal(t, `[1,2,3]`, ExtractJSONObject("values: [1,2,3]"))
	})
}
