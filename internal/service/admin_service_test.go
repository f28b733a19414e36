package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/contentpilot/internal/models"
)

func newTestAdminService() (AdminService, *fakeUserRepository, *fakeCreditRepository) {
	users := newFakeUserRepository()
	credits := newFakeCreditRepository()
	return NewAdminService(users, NewCreditService(credits)), users, credits
}

func TestAdminListUsersStripsAdminPassword(t *testing.T) {
	s, users, _ := newTestAdminService()
	users.Create(context.Background(), nil, &models.User{Email: "admin@contentpilot.example"})
	users.Create(context.Background(), nil, &models.User{Email: "owner@sunrise.example"})
	users.users[1].IsAdmin = true
	users.users[1].AdminPassword = "hashed"

	listed, err := s.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	for _, user := range listed {
		assert.Empty(t, user.AdminPassword)
	}
}

func TestAdminGrantCredits(t *testing.T) {
	s, users, credits := newTestAdminService()
	users.Create(context.Background(), nil, &models.User{Email: "owner@sunrise.example"})
	credits.balances[1] = 10

	balance, err := s.GrantCredits(context.Background(), 1, 100, "")
	require.NoError(t, err)
	assert.Equal(t, 110, balance)

	history, err := credits.ListByUserID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 100, history[0].Amount)
	assert.Equal(t, models.CreditTypeBonus, history[0].Type)
	assert.Equal(t, DefaultGrantDescription, history[0].Description)
}

func TestAdminGrantCreditsUnknownUser(t *testing.T) {
	s, _, credits := newTestAdminService()

	_, err := s.GrantCredits(context.Background(), 9, 100, "")
	assert.Error(t, err)
	assert.Empty(t, credits.ledger)
}

func TestAdminRemoveUser(t *testing.T) {
	s, users, _ := newTestAdminService()
	users.Create(context.Background(), nil, &models.User{Email: "admin@contentpilot.example"})
	users.Create(context.Background(), nil, &models.User{Email: "owner@sunrise.example"})

	err := s.RemoveUser(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.NotContains(t, users.users, int64(2))
}

func TestAdminRemoveUserRejectsSelf(t *testing.T) {
	s, users, _ := newTestAdminService()
	users.Create(context.Background(), nil, &models.User{Email: "admin@contentpilot.example"})

	err := s.RemoveUser(context.Background(), 1, 1)
	assert.Error(t, err)
	assert.Contains(t, users.users, int64(1))
}
