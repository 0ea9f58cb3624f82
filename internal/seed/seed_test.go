package seed

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxylyfe/portal/internal/docstore"
	"github.com/luxylyfe/portal/internal/model"
	"github.com/luxylyfe/portal/internal/repository"
	"github.com/luxylyfe/portal/internal/utils"
)

func testOptions() Options {
	return Options{
		SuperAdminEmail: "root@luxylyfe.com", SuperAdminPassword: "root123",
		AdminEmail: "admin@luxylyfe.com", AdminPassword: "admin123",
		MemberEmail: "member@luxylyfe.com", MemberPassword: "member123",
		Cost: 4,
	}
}

func TestRun_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := repository.New(docstore.NewMemory())
	log, _ := test.NewNullLogger()

	require.NoError(t, Run(ctx, repos, testOptions(), log))
	require.NoError(t, Run(ctx, repos, testOptions(), log))

	n, err := repos.Users.Count(ctx, repository.UserWhere{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = repos.Properties.Count(ctx, repository.PropertyWhere{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	member, err := repos.Users.FindUnique(ctx, repository.UserWhere{Email: "member@luxylyfe.com", Role: model.RoleMember})
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.True(t, utils.VerifyPassword(member.Password, "member123"))
	assert.Equal(t, "100 Ocean Drive", member.PropertyAddress)
}
