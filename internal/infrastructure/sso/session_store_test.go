package sso

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionStore(t *testing.T) {
	t.Run("get consumes the session", func(t *testing.T) {
		store := NewMemorySessionStore(time.Minute)
		store.Put("state-1", LoginSession{
			Provider:     "google",
			CodeVerifier: "verifier",
			Nonce:        "nonce",
		})

		session, ok := store.Get("state-1")
		require.True(t, ok)
		assert.Equal(t, "google", session.Provider)
		assert.Equal(t, "verifier", session.CodeVerifier)
		assert.False(t, session.CreatedAt.IsZero())

		// 单次有效：第二次取必须失败
		_, ok = store.Get("state-1")
		assert.False(t, ok)
	})

	t.Run("unknown state", func(t *testing.T) {
		store := NewMemorySessionStore(time.Minute)
		_, ok := store.Get("missing")
		assert.False(t, ok)
	})

	t.Run("expired session is not returned", func(t *testing.T) {
		store := NewMemorySessionStore(10 * time.Millisecond)
		store.Put("state-1", LoginSession{
			Provider:  "google",
			CreatedAt: time.Now().Add(-time.Second),
		})

		_, ok := store.Get("state-1")
		assert.False(t, ok)
	})

	t.Run("sweep removes only expired sessions", func(t *testing.T) {
		store := NewMemorySessionStore(time.Minute)
		store.Put("old", LoginSession{Provider: "google", CreatedAt: time.Now().Add(-2 * time.Minute)})
		store.Put("fresh", LoginSession{Provider: "google"})

		removed := store.Sweep()
		assert.Equal(t, 1, removed)

		_, ok := store.Get("fresh")
		assert.True(t, ok)
		_, ok = store.Get("old")
		assert.False(t, ok)
	})
}
