package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxylyfe/portal/internal/apperr"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/utils"
)

func newUsers(t *testing.T) (*UserService, *AuthService, *repository.Repositories) {
	t.Helper()
	auth, repos := newAuth(t)
	log, _ := test.NewNullLogger()
	return NewUserService(repos.Users, testCost, log), auth, repos
}

func TestUserService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUsers(t)

	_, err := svc.Create(ctx, CreateUserInput{Email: "a@luxylyfe.com", Password: "secret1", Role: "ADMIN", Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateUserInput{Email: "m@luxylyfe.com", Password: "secret1", Role: "MEMBER", Name: "M"})
	require.NoError(t, err)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	admins, err := svc.List(ctx, model.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "a@luxylyfe.com", admins[0].Email)
}

func TestUserService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newUsers(t)

	_, err := svc.Create(ctx, CreateUserInput{Email: "a@b.c", Password: "123", Role: "ADMIN", Name: "A"})
	assert.Equal(t, MsgPasswordTooShort, apperr.As(err).Message)

	_, err = svc.Create(ctx, CreateUserInput{Email: "a@b.c", Password: "secret1", Role: "OWNER", Name: "A"})
	assert.Equal(t, MsgInvalidRole, apperr.As(err).Message)

	_, err = svc.Create(ctx, CreateUserInput{Email: "a@b.c", Password: "secret1", Role: "ADMIN", Name: "A"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateUserInput{Email: "A@B.C", Password: "secret1", Role: "MEMBER", Name: "B"})
	assert.Equal(t, apperr.KindConflict, kindOf(t, err))
}

func TestUserService_DeleteSelfRefused(t *testing.T) {
	ctx := context.Background()
	svc, _, repos := newUsers(t)
	root := seedUser(t, repos, "root@luxylyfe.com", "root123", model.RoleSuperAdmin)

	err := svc.Delete(ctx, root.ID, root.ID)
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))
	assert.Equal(t, MsgSelfDelete, apperr.As(err).Message)

	got, err := repos.Users.FindUnique(ctx, repository.UserWhere{ID: root.ID})
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestUserService_DeleteCascadesSessions(t *testing.T) {
	ctx := context.Background()
	svc, auth, repos := newUsers(t)
	root := seedUser(t, repos, "root@luxylyfe.com", "root123", model.RoleSuperAdmin)
	member := seedUser(t, repos, "member@luxylyfe.com", "member123", model.RoleMember)

	res, err := auth.Login(ctx, "member@luxylyfe.com", "member123", "MEMBER", "ip")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, root.ID, member.ID))

	n, err := repos.Sessions.Count(ctx, repository.SessionWhere{UserID: member.ID})
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = auth.VerifySession(ctx, res.Token)
	assert.Equal(t, apperr.KindUnauthorized, kindOf(t, err))

	err = svc.Delete(ctx, root.ID, member.ID)
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}

func TestUserService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, _, repos := newUsers(t)
	u := seedUser(t, repos, "admin@luxylyfe.com", "admin123", model.RoleAdmin)

	err := svc.ResetPassword(ctx, u.ID, "short")
	assert.Equal(t, apperr.KindValidation, kindOf(t, err))

	require.NoError(t, svc.ResetPassword(ctx, u.ID, "newpass1"))
	stored, err := repos.Users.FindUnique(ctx, repository.UserWhere{ID: u.ID})
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(stored.Password, "newpass1"))
	assert.False(t, utils.VerifyPassword(stored.Password, "admin123"))

	err = svc.ResetPassword(ctx, "missing", "newpass1")
	assert.Equal(t, apperr.KindNotFound, kindOf(t, err))
}
