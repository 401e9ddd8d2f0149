package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSubdomain(t *testing.T) {
	assert.Equal(t, "my-site", NormalizeSubdomain("  My-Site  "))
	assert.Equal(t, "abc", NormalizeSubdomain("ABC"))
}

func TestIsValidSubdomain(t *testing.T) {
	valid := []string{"a", "my-site", "site42", "a1-b2-c3"}
	for _, s := range valid {
		assert.True(t, IsValidSubdomain(s), s)
	}

	invalid := []string{
		"",
		"-leading",
		"trailing-",
		"has_underscore",
		"Has.Dot",
		"UPPER",
		strings.Repeat("a", 64),
	}
	for _, s := range invalid {
		assert.False(t, IsValidSubdomain(s), s)
	}
}

func TestNewProject(t *testing.T) {
	p := NewProject("owner-1", "My Portfolio", " Demo-Site ")

	assert.Equal(t, "demo-site", p.Subdomain)
	assert.False(t, p.Published)
	assert.NotNil(t, p.Settings)
	assert.True(t, p.Settings.ShowSkills)
}
