package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "project:123", KeyProject("123"))
	assert.Equal(t, "project:123:content", KeyProjectContent("123"))
	assert.Equal(t, "user:projects:u1", KeyUserProjects("u1"))
	assert.Equal(t, "content:c1", KeyContent("c1"))
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "project", keyPrefix("project:123:content"))
	assert.Equal(t, "content", keyPrefix("content:c1"))
	assert.Equal(t, "health", keyPrefix("health"))
}
