package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
)

// Credit tariffs. Policy constants, not derived from provider pricing.
const (
	CostTextPost = 1
	CostAIText   = 5
	CostAIImage  = 50
	CostAIVideo  = 500

	// A campaign generates 14 AI text posts plus 14 images, paid up front.
	CostCampaignGeneration = models.CampaignTotalPosts * (CostAIText + CostAIImage)

	SignupBonusCredits = 50
)

// InsufficientCreditsError is returned when a debit exceeds the available
// balance. The account is left untouched.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

type CreditService interface {
	Debit(ctx context.Context, userID int64, amount int, txType, description string) (int, error)
	Credit(ctx context.Context, userID int64, amount int, txType, description string) (int, error)
	History(ctx context.Context, userID int64) ([]*models.CreditTransaction, error)
}

type creditService struct {
	c repository.CreditRepository
}

func NewCreditService(c repository.CreditRepository) CreditService {
	return &creditService{c: c}
}

func (s *creditService) Debit(ctx context.Context, userID int64, amount int, txType, description string) (int, error) {
	if userID == 0 {
		err := errors.New("user is not valid")
		slog.Info(err.Error())
		return 0, err
	}
	if amount <= 0 {
		err := errors.New("debit amount must be positive")
		slog.Info(err.Error())
		return 0, err
	}

	balance, err := s.c.Debit(ctx, userID, amount, txType, description, uuid.NewString())
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientCredits) {
			return balance, &InsufficientCreditsError{Required: amount, Available: balance}
		}
		return 0, err
	}
	return balance, nil
}

func (s *creditService) Credit(ctx context.Context, userID int64, amount int, txType, description string) (int, error) {
	if userID == 0 {
		err := errors.New("user is not valid")
		slog.Info(err.Error())
		return 0, err
	}
	if amount <= 0 {
		err := errors.New("credit amount must be positive")
		slog.Info(err.Error())
		return 0, err
	}

	return s.c.Credit(ctx, userID, amount, txType, description, uuid.NewString())
}

func (s *creditService) History(ctx context.Context, userID int64) ([]*models.CreditTransaction, error) {
	transactions, err := s.c.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting credit history")
	}
	return transactions, nil
}
