package node

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFencedEntityBlock(t *testing.T) {
	t.Run("removes trailing skills block", func(t *testing.T) {
		body := "## Overview\n\nSome project text.\n\n```json\n{\"skills\":[{\"name\":\"Go\"}],\"tags\":[]}\n```"
		clean, block := StripFencedEntityBlock(body)
		assert.Equal(t, "## Overview\n\nSome project text.", clean)
		assert.Contains(t, block, `"skills"`)
	})

	t.Run("ignores fenced code that is not an entity block", func(t *testing.T) {
		body := "Example:\n\n```json\n{\"foo\":\"bar\"}\n```\n\nMore text."
		clean, block := StripFencedEntityBlock(body)
		assert.Equal(t, body, clean)
		assert.Empty(t, block)
	})

	t.Run("no fences at all", func(t *testing.T) {
		clean, block := StripFencedEntityBlock("plain body")
		assert.Equal(t, "plain body", clean)
		assert.Empty(t, block)
	})

	t.Run("keeps earlier code fences, strips only the entity one", func(t *testing.T) {
		body := "```json\n{\"example\":true}\n```\n\nText.\n\n```json\n{\"tags\":[{\"name\":\"ai\"}]}\n```"
		clean, block := StripFencedEntityBlock(body)
		assert.Contains(t, clean, `"example"`)
		assert.Contains(t, block, `"tags"`)
	})
}

func TestStripPreamble(t *testing.T) {
	t.Run("drops conversational opener", func(t *testing.T) {
		body := "Here is the blog post you asked for:\n\n## Intro\n\nContent."
		assert.Equal(t, "## Intro\n\nContent.", StripPreamble(body))
	})

	t.Run("drops several opener lines", func(t *testing.T) {
		body := "Sure, happy to help!\nBelow is the write-up.\n\nActual content."
		assert.Equal(t, "Actual content.", StripPreamble(body))
	})

	t.Run("keeps body that starts with real content", func(t *testing.T) {
		body := "Building TaskFlow taught me a lot."
		assert.Equal(t, body, StripPreamble(body))
	})
}

func TestStripLeadingHeading(t *testing.T) {
	t.Run("removes loose h1", func(t *testing.T) {
		body := "# My Project\n\nThe body starts here."
		out := StripLeadingHeading(body)
		assert.Equal(t, "The body starts here.", out)
		assert.False(t, strings.HasPrefix(out, "# "))
	})

	t.Run("keeps h2 sections", func(t *testing.T) {
		body := "## Overview\n\nText."
		assert.Equal(t, body, StripLeadingHeading(body))
	})

	t.Run("h1 only body becomes empty", func(t *testing.T) {
		assert.Equal(t, "", StripLeadingHeading("# Just A Title"))
	})
}

func TestDeriveExcerpt(t *testing.T) {
	t.Run("structured excerpt wins", func(t *testing.T) {
		assert.Equal(t, "from metadata", DeriveExcerpt("from metadata", "body text"))
	})

	t.Run("short body used as-is", func(t *testing.T) {
		assert.Equal(t, "line one line two", DeriveExcerpt("", "line one\nline two"))
	})

	t.Run("long body truncated with ellipsis", func(t *testing.T) {
		long := strings.Repeat("word ", 100)
		out := DeriveExcerpt("", long)
		assert.True(t, strings.HasSuffix(out, "..."))
		assert.LessOrEqual(t, len([]rune(out)), 203)
	})

	t.Run("empty everything", func(t *testing.T) {
		assert.Equal(t, "", DeriveExcerpt("  ", ""))
	})
}
