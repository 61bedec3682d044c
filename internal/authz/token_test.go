package authz

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", "hms", time.Hour)
	user := &models.User{ID: uuid.New(), Username: "nurse.joy"}

	raw, err := tokens.Issue(user)
	require.NoError(t, err)

	p, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)
	assert.Equal(t, "nurse.joy", p.Username)
}

func TestTokenRejected(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "x"}
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tokens := NewTokens("secret", "hms", time.Hour)
	tokens.now = func() time.Time { return issued }
	raw, err := tokens.Issue(user)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokens("other", "hms", time.Hour)
		other.now = tokens.now
		_, err := other.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokens("secret", "someone-else", time.Hour)
		other.now = tokens.now
		_, err := other.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokens("secret", "hms", time.Hour)
		later.now = func() time.Time { return issued.Add(2 * time.Hour) }
		_, err := later.Parse(raw)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.Parse("not-a-token")
		assert.Error(t, err)
	})
}
