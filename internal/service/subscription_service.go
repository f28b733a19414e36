package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/transfer"
)

type SubscriptionService interface {
	Plans(ctx context.Context) ([]*models.SubscriptionPlan, error)
	HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error
	Cancel(ctx context.Context, userID int64) error
}

type subscriptionService struct {
	u       repository.UserRepository
	p       repository.PlanRepository
	credits CreditService
}

func NewSubscriptionService(u repository.UserRepository, p repository.PlanRepository, credits CreditService) SubscriptionService {
	return &subscriptionService{
		u:       u,
		p:       p,
		credits: credits,
	}
}

func (s *subscriptionService) Plans(ctx context.Context) ([]*models.SubscriptionPlan, error) {
	plans, err := s.p.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Error getting plans list")
	}
	return plans, nil
}

// HandleSubscription applies the payment processor's webhook. A paid
// subscription updates the user's plan and grants the plan's monthly
// credits through the ledger.
func (s *subscriptionService) HandleSubscription(ctx context.Context, payload *transfer.SubscriptionEvent) error {
	switch payload.EventType {
	case "subscription.paid":
		return s.handlePaid(ctx, payload)
	case "subscription.cancelled", "subscription.expired":
		return s.handleCancelled(ctx, payload)
	default:
		slog.Info(fmt.Sprintf("ignoring webhook event %s", payload.EventType))
		return nil
	}
}

func (s *subscriptionService) handlePaid(ctx context.Context, payload *transfer.SubscriptionEvent) error {
	user, isExist, err := s.u.GetByEmail(ctx, payload.Object.Customer.Email)
	if err != nil {
		return fmt.Errorf("fetching user by email failed: %w", err)
	}
	if !isExist {
		return fmt.Errorf("no account for customer %s", payload.Object.Customer.Email)
	}

	planID := payload.Object.Metadata.PlanID
	plan, found, err := s.p.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("fetching plan failed: %w", err)
	}
	if !found {
		return fmt.Errorf("unknown plan %s", planID)
	}

	endDate := payload.Object.CurrentPeriodEndDate
	if endDate.IsZero() {
		endDate = time.Now().AddDate(0, 1, 0)
	}

	err = s.u.UpdateSubscription(ctx, user.ID, plan.ID, payload.Object.ID, models.SubscriptionStatusActive, endDate)
	if err != nil {
		return fmt.Errorf("updating subscription failed: %w", err)
	}

	_, err = s.credits.Credit(ctx, user.ID, plan.CreditsPerMonth, models.CreditTypeSubscription,
		fmt.Sprintf("Monthly credits for %s plan", plan.DisplayName))
	if err != nil {
		return fmt.Errorf("granting plan credits failed: %w", err)
	}
	return nil
}

func (s *subscriptionService) handleCancelled(ctx context.Context, payload *transfer.SubscriptionEvent) error {
	user, isExist, err := s.u.GetByEmail(ctx, payload.Object.Customer.Email)
	if err != nil {
		return fmt.Errorf("fetching user by email failed: %w", err)
	}
	if !isExist {
		slog.Info(fmt.Sprintf("cancellation for unknown customer %s", payload.Object.Customer.Email))
		return nil
	}

	// Remaining credits stay spendable until the paid period runs out.
	return s.u.UpdateSubscription(ctx, user.ID, user.PlanID, user.SubscriptionID,
		models.SubscriptionStatusCancelled, payload.Object.CurrentPeriodEndDate)
}

// Cancel marks the user's subscription cancelled at their request. The
// processor-side cancellation arrives later through the webhook.
func (s *subscriptionService) Cancel(ctx context.Context, userID int64) error {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if !isExist {
		err = errors.New("user doesn't exist")
		slog.Info(err.Error())
		return err
	}
	if user.SubscriptionID == "" {
		err = errors.New("no active subscription")
		slog.Info(err.Error())
		return err
	}

	endDate := time.Now()
	if user.SubscriptionEndDate != nil {
		endDate = *user.SubscriptionEndDate
	}

	return s.u.UpdateSubscription(ctx, userID, user.PlanID, user.SubscriptionID,
		models.SubscriptionStatusCancelled, endDate)
}
