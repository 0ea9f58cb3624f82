package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxylyfe/portal/internal/model"
)

func TestSessionRepo_TokenLookupAndDelete(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	exp := time.Now().Add(24 * time.Hour).UTC().Round(0)

	s, err := repos.Sessions.Create(ctx, &model.Session{UserID: "u1", Token: "tok", ExpiresAt: exp})
	require.NoError(t, err)

	got, err := repos.Sessions.FindUnique(ctx, SessionWhere{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, s, got)

	found, err := repos.Sessions.DeleteByToken(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repos.Sessions.DeleteByToken(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, found)

	assert.ErrorIs(t, repos.Sessions.Delete(ctx, s.ID), ErrNotFound)
}

func TestSessionRepo_UpdateExpiry(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	s, err := repos.Sessions.Create(ctx, &model.Session{UserID: "u1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute)
	updated, err := repos.Sessions.Update(ctx, SessionWhere{Token: "tok"}, SessionPatch{ExpiresAt: &past})
	require.NoError(t, err)
	assert.Equal(t, s.ID, updated.ID)
	assert.False(t, updated.Live(time.Now()))
}

func TestLoginAttemptRepo_MarkLatestSuccessful(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	first, err := repos.LoginAttempts.Create(ctx, &model.LoginAttempt{Email: "a@x.com", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := repos.LoginAttempts.Create(ctx, &model.LoginAttempt{Email: "A@x.com", IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	_, err = repos.LoginAttempts.Create(ctx, &model.LoginAttempt{Email: "a@x.com", IPAddress: "10.0.0.2"})
	require.NoError(t, err)

	require.NoError(t, repos.LoginAttempts.MarkLatestSuccessful(ctx, "a@x.com", "10.0.0.1"))

	got, err := repos.LoginAttempts.FindUnique(ctx, LoginAttemptWhere{ID: second.ID})
	require.NoError(t, err)
	assert.True(t, got.Success)
	got, err = repos.LoginAttempts.FindUnique(ctx, LoginAttemptWhere{ID: first.ID})
	require.NoError(t, err)
	assert.False(t, got.Success)

	ok := true
	n, err := repos.LoginAttempts.Count(ctx, LoginAttemptWhere{Success: &ok})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, repos.LoginAttempts.MarkLatestSuccessful(ctx, "nobody@x.com", "10.0.0.9"))
}
