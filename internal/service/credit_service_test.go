package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
)

// fakeCreditRepository keeps balances and the ledger in memory with the
// same conditional-decrement semantics as the SQL implementation.
type fakeCreditRepository struct {
	balances map[int64]int
	ledger   []*models.CreditTransaction
}

func newFakeCreditRepository() *fakeCreditRepository {
	return &fakeCreditRepository{balances: make(map[int64]int)}
}

func (f *fakeCreditRepository) Debit(ctx context.Context, userID int64, amount int, txType, description, reference string) (int, error) {
	current := f.balances[userID]
	if current < amount {
		return current, repository.ErrInsufficientCredits
	}

	f.balances[userID] = current - amount
	f.append(userID, -amount, txType, description, reference)
	return f.balances[userID], nil
}

func (f *fakeCreditRepository) Credit(ctx context.Context, userID int64, amount int, txType, description, reference string) (int, error) {
	f.balances[userID] += amount
	f.append(userID, amount, txType, description, reference)
	return f.balances[userID], nil
}

func (f *fakeCreditRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.CreditTransaction, error) {
	var rows []*models.CreditTransaction
	for i := len(f.ledger) - 1; i >= 0; i-- {
		if f.ledger[i].UserID == userID {
			rows = append(rows, f.ledger[i])
		}
	}
	return rows, nil
}

func (f *fakeCreditRepository) append(userID int64, amount int, txType, description, reference string) {
	f.ledger = append(f.ledger, &models.CreditTransaction{
		ID:          int64(len(f.ledger) + 1),
		UserID:      userID,
		Amount:      amount,
		Balance:     f.balances[userID],
		Type:        txType,
		Description: description,
		Reference:   reference,
	})
}

func TestCreditServiceDebit(t *testing.T) {
	repo := newFakeCreditRepository()
	repo.balances[1] = 100
	s := NewCreditService(repo)

	balance, err := s.Debit(context.Background(), 1, CostAIText, models.CreditTypeUsage, "AI content generation")
	require.NoError(t, err)
	assert.Equal(t, 95, balance)

	// Latest ledger row mirrors the account balance.
	history, err := s.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, -CostAIText, history[0].Amount)
	assert.Equal(t, 95, history[0].Balance)
	assert.Equal(t, models.CreditTypeUsage, history[0].Type)
	assert.NotEmpty(t, history[0].Reference)
}

func TestCreditServiceDebitInsufficient(t *testing.T) {
	repo := newFakeCreditRepository()
	repo.balances[1] = 3
	s := NewCreditService(repo)

	_, err := s.Debit(context.Background(), 1, CostAIText, models.CreditTypeUsage, "AI content generation")
	require.Error(t, err)

	var insufficient *InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 5, insufficient.Required)
	assert.Equal(t, 3, insufficient.Available)

	// A failed debit never touches the account or the ledger.
	assert.Equal(t, 3, repo.balances[1])
	assert.Empty(t, repo.ledger)
}

func TestCreditServiceDebitValidation(t *testing.T) {
	s := NewCreditService(newFakeCreditRepository())

	_, err := s.Debit(context.Background(), 0, 5, models.CreditTypeUsage, "")
	assert.Error(t, err)

	_, err = s.Debit(context.Background(), 1, 0, models.CreditTypeUsage, "")
	assert.Error(t, err)

	_, err = s.Debit(context.Background(), 1, -5, models.CreditTypeUsage, "")
	assert.Error(t, err)
}

func TestCreditServiceCredit(t *testing.T) {
	repo := newFakeCreditRepository()
	s := NewCreditService(repo)

	balance, err := s.Credit(context.Background(), 1, SignupBonusCredits, models.CreditTypeBonus, "Welcome bonus")
	require.NoError(t, err)
	assert.Equal(t, 50, balance)

	balance, err = s.Credit(context.Background(), 1, 500, models.CreditTypeSubscription, "Monthly credits for Starter plan")
	require.NoError(t, err)
	assert.Equal(t, 550, balance)

	history, err := s.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 550, history[0].Balance)
}

func TestCampaignGenerationCost(t *testing.T) {
	// 14 posts, each one AI caption plus one AI image.
	assert.Equal(t, 770, CostCampaignGeneration)
}
