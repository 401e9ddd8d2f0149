package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGithubURL(t *testing.T) {
	t.Run("full url", func(t *testing.T) {
		got := ExtractGithubURL("the code lives at https://github.com/x/taskflow if you want to look")
		assert.Equal(t, "https://github.com/x/taskflow", got)
	})

	t.Run("bare host gets https scheme", func(t *testing.T) {
		got := ExtractGithubURL("see github.com/x/taskflow for details")
		assert.Equal(t, "https://github.com/x/taskflow", got)
	})

	t.Run("no url", func(t *testing.T) {
		assert.Equal(t, "", ExtractGithubURL("no links here"))
	})
}

func TestExtractDevpostURL(t *testing.T) {
	got := ExtractDevpostURL("we submitted to devpost.com/software/taskflow last week")
	assert.Equal(t, "https://devpost.com/software/taskflow", got)
}

func TestDetectOngoing(t *testing.T) {
	assert.True(t, DetectOngoing("I'm currently adding a mobile app"))
	assert.True(t, DetectOngoing("this is still a work in progress"))
	assert.False(t, DetectOngoing("we shipped it last year and moved on"))
}

func TestDetectLocationType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"fully remote position", "REMOTE"},
		{"hybrid schedule, 2 days in office", "HYBRID"},
		{"onsite role in Berlin", "ONSITE"},
		{"no location mentioned", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLocationType(tt.text), tt.text)
	}
}
