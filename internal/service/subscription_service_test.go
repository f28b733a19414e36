package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type fakeUserRepository struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[int64]*models.User)}
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, false, nil
	}
	copied := *user
	return &copied, true, nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUserRepository) ListAll(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(f.users))
	for id := int64(1); id <= f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (f *fakeUserRepository) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	f.nextID++
	user.ID = f.nextID
	copied := *user
	f.users[user.ID] = &copied
	return user.ID, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return errors.New("user not found")
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepository) UpdateSubscription(ctx context.Context, userID int64, planID, subscriptionID, status string, endDate time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	user.PlanID = planID
	user.SubscriptionID = subscriptionID
	user.SubscriptionStatus = status
	user.SubscriptionEndDate = &endDate
	return nil
}

func (f *fakeUserRepository) SetAdmin(ctx context.Context, userID int64, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return errors.New("user not found")
	}
	user.IsAdmin = true
	user.AdminPassword = passwordHash
	return nil
}

func (f *fakeUserRepository) Remove(ctx context.Context, id int64) error {
	delete(f.users, id)
	return nil
}

type fakePlanRepository struct {
	plans map[string]*models.SubscriptionPlan
}

func (f *fakePlanRepository) List(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	var out []*models.SubscriptionPlan
	for _, plan := range f.plans {
		out = append(out, plan)
	}
	return out, nil
}

func (f *fakePlanRepository) GetByID(ctx context.Context, id string) (*models.SubscriptionPlan, bool, error) {
	plan, ok := f.plans[id]
	return plan, ok, nil
}

func starterPlans() *fakePlanRepository {
	return &fakePlanRepository{plans: map[string]*models.SubscriptionPlan{
		"starter": {
			ID:              "starter",
			Name:            "starter",
			DisplayName:     "Starter",
			MonthlyPrice:    "29",
			CreditsPerMonth: 500,
			MaxPlatforms:    3,
		},
	}}
}

func paidEvent(email, planID string) *transfer.SubscriptionEvent {
	event := &transfer.SubscriptionEvent{EventType: "subscription.paid"}
	event.Object.ID = "sub_123"
	event.Object.Customer.Email = email
	event.Object.Status = "active"
	event.Object.CurrentPeriodEndDate = time.Now().AddDate(0, 1, 0)
	event.Object.Metadata.PlanID = planID
	return event
}

func TestHandleSubscriptionPaid(t *testing.T) {
	users := newFakeUserRepository()
	users.Create(context.Background(), nil, &models.User{Email: "owner@sunrise.example", Credits: 20})

	credits := newFakeCreditRepository()
	credits.balances[1] = 20

	s := NewSubscriptionService(users, starterPlans(), NewCreditService(credits))

	err := s.HandleSubscription(context.Background(), paidEvent("owner@sunrise.example", "starter"))
	require.NoError(t, err)

	user := users.users[1]
	assert.Equal(t, "starter", user.PlanID)
	assert.Equal(t, "sub_123", user.SubscriptionID)
	assert.Equal(t, models.SubscriptionStatusActive, user.SubscriptionStatus)

	// The grant goes through the ledger and the latest row carries the
	// new balance.
	assert.Equal(t, 520, credits.balances[1])
	require.NotEmpty(t, credits.ledger)
	last := credits.ledger[len(credits.ledger)-1]
	assert.Equal(t, models.CreditTypeSubscription, last.Type)
	assert.Equal(t, 500, last.Amount)
	assert.Equal(t, 520, last.Balance)
}

func TestHandleSubscriptionPaidUnknownPlan(t *testing.T) {
	users := newFakeUserRepository()
	users.Create(context.Background(), nil, &models.User{Email: "owner@sunrise.example"})

	s := NewSubscriptionService(users, starterPlans(), NewCreditService(newFakeCreditRepository()))

	err := s.HandleSubscription(context.Background(), paidEvent("owner@sunrise.example", "platinum"))
	assert.Error(t, err)
}

func TestHandleSubscriptionCancelled(t *testing.T) {
	users := newFakeUserRepository()
	endDate := time.Now().AddDate(0, 1, 0)
	users.Create(context.Background(), nil, &models.User{
		Email:               "owner@sunrise.example",
		PlanID:              "starter",
		SubscriptionID:      "sub_123",
		SubscriptionStatus:  models.SubscriptionStatusActive,
		SubscriptionEndDate: &endDate,
	})

	s := NewSubscriptionService(users, starterPlans(), NewCreditService(newFakeCreditRepository()))

	event := paidEvent("owner@sunrise.example", "starter")
	event.EventType = "subscription.cancelled"

	err := s.HandleSubscription(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCancelled, users.users[1].SubscriptionStatus)
}

func TestHandleSubscriptionIgnoresUnknownEvent(t *testing.T) {
	s := NewSubscriptionService(newFakeUserRepository(), starterPlans(), NewCreditService(newFakeCreditRepository()))

	err := s.HandleSubscription(context.Background(), &transfer.SubscriptionEvent{EventType: "invoice.created"})
	assert.NoError(t, err)
}

func TestCancelWithoutSubscription(t *testing.T) {
	users := newFakeUserRepository()
	users.Create(context.Background(), nil, &models.User{Email: "owner@sunrise.example"})

	s := NewSubscriptionService(users, starterPlans(), NewCreditService(newFakeCreditRepository()))

	err := s.Cancel(context.Background(), 1)
	assert.Error(t, err)
}
