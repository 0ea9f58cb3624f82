package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
)

func newRepos(t *testing.T) (*Repositories, *docstore.Memory) {
	t.Helper()
	store := docstore.NewMemory()
	return New(store), store
}

func TestUserRepo_CreateFindUniqueRoundTrip(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	created, err := repos.Users.Create(ctx, &model.User{
		Email:    "  Member@LuxyLyfe.com ",
		Password: "hash",
		Role:     model.RoleMember,
		Name:     "Member",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "member@luxylyfe.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	byEmail, err := repos.Users.FindUnique(ctx, UserWhere{Email: "member@luxylyfe.com"})
	require.NoError(t, err)
	assert.Equal(t, created, byEmail)

	byID, err := repos.Users.FindUnique(ctx, UserWhere{ID: created.ID})
	require.NoError(t, err)
	assert.Equal(t, created, byID)
}

func TestUserRepo_FindUniqueMissingIsNil(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)

	u, err := repos.Users.FindUnique(ctx, UserWhere{Email: "nobody@x.com"})
	assert.NoError(t, err)
	assert.Nil(t, u)

	u, err = repos.Users.FindUnique(ctx, UserWhere{ID: "missing"})
	assert.NoError(t, err)
	assert.Nil(t, u)

	_, err = repos.Users.FindUnique(ctx, UserWhere{})
	assert.Error(t, err)
}

func TestUserRepo_EmailAndRoleLookup(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	_, err := repos.Users.Create(ctx, &model.User{Email: "a@x.com", Role: model.RoleAdmin})
	require.NoError(t, err)

	u, err := repos.Users.FindUnique(ctx, UserWhere{Email: "a@x.com", Role: model.RoleMember})
	require.NoError(t, err)
	assert.Nil(t, u, "role is part of the lookup key")

	u, err = repos.Users.FindUnique(ctx, UserWhere{Email: "a@x.com", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestUserRepo_DuplicateEmailConflictsWithoutWrite(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	_, err := repos.Users.Create(ctx, &model.User{Email: "dup@x.com", Role: model.RoleMember})
	require.NoError(t, err)

	_, err = repos.Users.Create(ctx, &model.User{Email: "DUP@x.com", Role: model.RoleAdmin})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrEmailExists)

	n, err := repos.Users.Count(ctx, UserWhere{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserRepo_UpdateMergesAndStamps(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	u, err := repos.Users.Create(ctx, &model.User{Email: "u@x.com", Name: "Old", Phone: "1", Role: model.RoleMember})
	require.NoError(t, err)
	created := u.CreatedAt

	time.Sleep(2 * time.Millisecond)
	name := "New"
	updated, err := repos.Users.Update(ctx, UserWhere{ID: u.ID}, UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, "1", updated.Phone)
	assert.Equal(t, created, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created))

	_, err = repos.Users.Update(ctx, UserWhere{ID: "missing"}, UserPatch{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepo_UpdateEmailToTakenConflicts(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	_, err := repos.Users.Create(ctx, &model.User{Email: "a@x.com"})
	require.NoError(t, err)
	b, err := repos.Users.Create(ctx, &model.User{Email: "b@x.com"})
	require.NoError(t, err)

	taken := "a@x.com"
	_, err = repos.Users.Update(ctx, UserWhere{ID: b.ID}, UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserRepo_DeleteCascadesSessions(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	keep, err := repos.Users.Create(ctx, &model.User{Email: "keep@x.com"})
	require.NoError(t, err)
	gone, err := repos.Users.Create(ctx, &model.User{Email: "gone@x.com"})
	require.NoError(t, err)

	exp := time.Now().Add(time.Hour)
	for _, tok := range []string{"t1", "t2"} {
		_, err := repos.Sessions.Create(ctx, &model.Session{UserID: gone.ID, Token: tok, ExpiresAt: exp})
		require.NoError(t, err)
	}
	_, err = repos.Sessions.Create(ctx, &model.Session{UserID: keep.ID, Token: "t3", ExpiresAt: exp})
	require.NoError(t, err)

	require.NoError(t, repos.Users.Delete(ctx, gone.ID))

	n, err := repos.Sessions.Count(ctx, SessionWhere{UserID: gone.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = repos.Sessions.Count(ctx, SessionWhere{UserID: keep.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, repos.Users.Delete(ctx, gone.ID), ErrNotFound)
}

func TestUserRepo_FindManyNewestFirst(t *testing.T) {
	ctx := context.Background()
	repos, _ := newRepos(t)
	for _, e := range []string{"1@x.com", "2@x.com", "3@x.com"} {
		_, err := repos.Users.Create(ctx, &model.User{Email: e, Role: model.RoleMember})
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}
	_, err := repos.Users.Create(ctx, &model.User{Email: "admin@x.com", Role: model.RoleAdmin})
	require.NoError(t, err)

	members, err := repos.Users.FindMany(ctx, UserWhere{Role: model.RoleMember})
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "3@x.com", members[0].Email)
	assert.Equal(t, "1@x.com", members[2].Email)

	all, err := repos.Users.FindMany(ctx, UserWhere{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
