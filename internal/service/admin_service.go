package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
)

const DefaultGrantDescription = "Admin credit adjustment"

// AdminService covers the admin dashboard: listing accounts, granting
// credits through the ledger, and removing accounts.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GrantCredits(ctx context.Context, userID int64, amount int, description string) (int, error)
	RemoveUser(ctx context.Context, adminID, userID int64) error
}

type adminService struct {
	u       repository.UserRepository
	credits CreditService
}

func NewAdminService(u repository.UserRepository, credits CreditService) AdminService {
	return &adminService{
		u:       u,
		credits: credits,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.u.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.AdminPassword = ""
	}
	return users, nil
}

func (s *adminService) GrantCredits(ctx context.Context, userID int64, amount int, description string) (int, error) {
	_, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !isExist {
		err = errors.New("user doesn't exist")
		slog.Info(err.Error())
		return 0, err
	}

	if description == "" {
		description = DefaultGrantDescription
	}

	return s.credits.Credit(ctx, userID, amount, models.CreditTypeBonus, description)
}

func (s *adminService) RemoveUser(ctx context.Context, adminID, userID int64) error {
	var err error

	if userID == adminID {
		err = errors.New("admins cannot remove their own account")
		slog.Info(err.Error())
		return err
	}

	_, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		err = errors.New("user doesn't exist")
		slog.Info(err.Error())
		return err
	}

	return s.u.Remove(ctx, userID)
}
