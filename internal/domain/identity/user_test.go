package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user successfully", func(t *testing.T) {
		user, err := NewUser("alice", "alice@example.com", "password1")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "password1", user.PasswordHash)
	})

	t.Run("lowercases username and email", func(t *testing.T) {
		user, err := NewUser("Alice", "Alice@Example.COM", "password1")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("fails with short username", func(t *testing.T) {
		user, err := NewUser("ab", "a@example.com", "password1")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with invalid username characters", func(t *testing.T) {
		user, err := NewUser("alice smith", "a@example.com", "password1")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		user, err := NewUser("alice", "not-an-email", "password1")

		assert.Error(t, err)
		assert.Nil(t, user)
	})

	t.Run("fails with weak password", func(t *testing.T) {
		user, err := NewUser("alice", "a@example.com", "short1")
		assert.Error(t, err)
		assert.Nil(t, user)

		user, err = NewUser("alice", "a@example.com", "passwordonly")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserPassword(t *testing.T) {
	user, err := NewUser("alice", "alice@example.com", "password1")
	require.NoError(t, err)

	t.Run("verifies correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("password1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("changes password with correct old password", func(t *testing.T) {
		err := user.ChangePassword("password1", "newpassword2")

		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("newpassword2"))
		assert.False(t, user.VerifyPassword("password1"))
	})

	t.Run("rejects change with wrong old password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "another3pass")
		assert.Error(t, err)
	})
}

func TestUserLocking(t *testing.T) {
	t.Run("locks after max failed attempts", func(t *testing.T) {
		user, err := NewUser("bob", "bob@example.com", "password1")
		require.NoError(t, err)

		locked := user.RecordLoginFailure(3, time.Hour)
		assert.False(t, locked)
		locked = user.RecordLoginFailure(3, time.Hour)
		assert.False(t, locked)
		locked = user.RecordLoginFailure(3, time.Hour)
		assert.True(t, locked)

		assert.True(t, user.IsLocked())
		assert.False(t, user.CanLogin())
	})

	t.Run("lock expires", func(t *testing.T) {
		user, err := NewUser("bob", "bob@example.com", "password1")
		require.NoError(t, err)

		require.NoError(t, user.Lock(time.Hour))
		past := time.Now().Add(-time.Minute)
		user.LockedUntil = &past

		assert.False(t, user.IsLocked())
		assert.True(t, user.CanLogin())
	})

	t.Run("unlock resets failed attempts", func(t *testing.T) {
		user, err := NewUser("bob", "bob@example.com", "password1")
		require.NoError(t, err)

		user.RecordLoginFailure(1, time.Hour)
		require.True(t, user.IsLocked())

		require.NoError(t, user.Unlock())
		assert.Equal(t, 0, user.FailedAttempts)
		assert.True(t, user.IsActive())
	})

	t.Run("successful login resets failed attempts", func(t *testing.T) {
		user, err := NewUser("bob", "bob@example.com", "password1")
		require.NoError(t, err)

		user.RecordLoginFailure(5, time.Hour)
		user.RecordLoginSuccess("203.0.113.7")

		assert.Equal(t, 0, user.FailedAttempts)
		assert.Equal(t, "203.0.113.7", user.LastLoginIP)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestUserDeactivate(t *testing.T) {
	user, err := NewUser("carol", "carol@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())

	err = user.Deactivate()
	assert.Error(t, err)

	err = user.Lock(time.Hour)
	assert.Error(t, err)
}

func TestGetDisplayNameOrUsername(t *testing.T) {
	user, err := NewUser("dave", "dave@example.com", "password1")
	require.NoError(t, err)

	assert.Equal(t, "dave", user.GetDisplayNameOrUsername())

	require.NoError(t, user.SetDisplayName("Dave D."))
	assert.Equal(t, "Dave D.", user.GetDisplayNameOrUsername())
}
