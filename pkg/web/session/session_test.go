package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yelpcamp/pkg/common/config"
)

func newManager(secret string) *Manager {
	cfg := config.Default().Session
	cfg.SecretKey = secret
	return NewManager(cfg)
}

func TestIssueParse(t *testing.T) {
	m := newManager("k1")

	token, expires, err := m.Issue(42)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expires, time.Minute)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestParseRejects(t *testing.T) {
	m := newManager("k1")
	token, _, err := m.Issue(42)
	require.NoError(t, err)

	t.Run("other key", func(t *testing.T) {
		_, err := newManager("k2").Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		if tampered == token {
			tampered = token[:len(token)-2] + "yy"
		}
		_, err := m.Parse(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := newManager("k1")
		later.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
		_, err := later.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other issuer", func(t *testing.T) {
		other := newManager("k1")
		other.issuer = "someone-else"
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIssueUniqueIDs(t *testing.T) {
	m := newManager("k1")
	a, _, err := m.Issue(1)
	require.NoError(t, err)
	b, _, err := m.Issue(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
