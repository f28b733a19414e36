package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cfg "github.com/maheshrc27/contentpilot/configs"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
	"github.com/maheshrc27/contentpilot/internal/transfer"
	"github.com/maheshrc27/contentpilot/pkg/utils"
)

// Platform limit for accounts on the free tier.
const freePlanMaxPlatforms = 2

var supportedPlatforms = map[string]struct{}{
	"instagram": {}, "tiktok": {}, "twitter": {}, "linkedin": {}, "facebook": {},
}

type PlatformService interface {
	Connect(ctx context.Context, userID int64, ac *transfer.AccountConnection) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.SocialAccount, error)
	Remove(ctx context.Context, userID, accountID int64) error
}

type platformService struct {
	config cfg.Config
	sa     repository.SocialAccountRepository
	u      repository.UserRepository
	p      repository.PlanRepository
}

func NewPlatformService(cfg cfg.Config, sa repository.SocialAccountRepository, u repository.UserRepository, p repository.PlanRepository) PlatformService {
	return &platformService{
		config: cfg,
		sa:     sa,
		u:      u,
		p:      p,
	}
}

func (s *platformService) Connect(ctx context.Context, userID int64, ac *transfer.AccountConnection) (int64, error) {
	if ac == nil {
		err := errors.New("account connection data is nil")
		slog.Error(err.Error())
		return 0, err
	}
	if _, ok := supportedPlatforms[ac.Platform]; !ok {
		err := fmt.Errorf("platform %s is not supported", ac.Platform)
		slog.Info(err.Error())
		return 0, err
	}
	if ac.AccountID == "" || ac.AccessToken == "" {
		err := errors.New("account id and access token are required")
		slog.Info(err.Error())
		return 0, err
	}

	limit, err := s.platformLimit(ctx, userID)
	if err != nil {
		return 0, err
	}

	count, err := s.sa.CountByUserID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	if count >= limit {
		err = fmt.Errorf("plan allows at most %d connected accounts", limit)
		slog.Info(err.Error())
		return 0, err
	}

	encrypted, err := utils.Encrypt([]byte(ac.AccessToken), []byte(s.config.SecretKey))
	if err != nil {
		slog.Error(err.Error())
		return 0, fmt.Errorf("failed to encrypt token: %w", err)
	}

	account := models.SocialAccount{
		UserID:      userID,
		Platform:    ac.Platform,
		AccountID:   ac.AccountID,
		AccountName: ac.AccountName,
		AccessToken: encrypted,
		Status:      "connected",
	}

	id, err := s.sa.Create(ctx, &account)
	if err != nil {
		slog.Info(err.Error())
		return 0, fmt.Errorf("failed to connect account: %w", err)
	}
	return id, nil
}

func (s *platformService) List(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	accounts, err := s.sa.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("Error getting accounts list")
	}
	return accounts, nil
}

func (s *platformService) Remove(ctx context.Context, userID, accountID int64) error {
	if userID == 0 || accountID == 0 {
		err := errors.New("account id is not valid")
		slog.Info(err.Error())
		return err
	}

	exists, err := s.sa.CheckByUserID(ctx, accountID, userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	if !exists {
		err = errors.New("account doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return s.sa.Remove(ctx, accountID)
}

func (s *platformService) platformLimit(ctx context.Context, userID int64) (int, error) {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	if !isExist {
		err = errors.New("user doesn't exist")
		slog.Info(err.Error())
		return 0, err
	}

	if user.PlanID == "" {
		return freePlanMaxPlatforms, nil
	}

	plan, found, err := s.p.GetByID(ctx, user.PlanID)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	if !found {
		return freePlanMaxPlatforms, nil
	}
	return plan.MaxPlatforms, nil
}
