package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateByRunes(t *testing.T) {
	t.Run("shorter than limit", func(t *testing.T) {
		assert.Equal(t, "abc", TruncateByRunes("abc", 10))
	})

	t.Run("exact cut", func(t *testing.T) {
		assert.Equal(t, "abcde", TruncateByRunes("abcdefgh", 5))
	})

	t.Run("multibyte characters not split", func(t *testing.T) {
		assert.Equal(t, "日本", TruncateByRunes("日本語テキスト", 2))
	})

	t.Run("zero limit", func(t *testing.T) {
		assert.Equal(t, "", TruncateByRunes("abc", 0))
	})
}

func TestFlattenNewlines(t *testing.T) {
	assert.Equal(t, "a b c", FlattenNewlines("a\nb\n\n  c"))
	assert.Equal(t, "", FlattenNewlines("   \n  "))
}
