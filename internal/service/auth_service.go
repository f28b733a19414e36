package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	cfg "github.com/maheshrc27/contentpilot/configs"
	"github.com/maheshrc27/contentpilot/internal/models"
	"github.com/maheshrc27/contentpilot/internal/repository"
)

type AuthService interface {
	LoginCallback(ctx context.Context, code string) (userID int64, err error)
	AdminLogin(ctx context.Context, email, password string) (userID int64, err error)
}

type authService struct {
	cfg     cfg.Config
	u       repository.UserRepository
	credits CreditService
}

func NewAuthService(cfg cfg.Config, u repository.UserRepository, credits CreditService) AuthService {
	return &authService{
		cfg:     cfg,
		u:       u,
		credits: credits,
	}
}

func (s *authService) LoginCallback(ctx context.Context, code string) (userID int64, err error) {
	if code == "" {
		err = errors.New("code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err = errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	oauthService, err := googleoauth.NewService(ctx, option.WithTokenSource(oauth2Config.TokenSource(ctx, token)))
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userInfo, err := oauthService.Userinfo.Get().Do()
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	user, isExist, err := s.u.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return 0, err
	}

	if !isExist {
		userID, err = s.u.Create(ctx, nil, &models.User{
			GoogleID:           userInfo.Id,
			Email:              userInfo.Email,
			Name:               userInfo.Name,
			ProfilePicture:     userInfo.Picture,
			SubscriptionStatus: models.SubscriptionStatusFree,
		})
		if err != nil {
			slog.Info(err.Error())
			return 0, err
		}

		// New accounts start with a welcome grant, recorded through the
		// ledger like every other balance change.
		if _, err = s.credits.Credit(ctx, userID, SignupBonusCredits, models.CreditTypeBonus, "Welcome bonus"); err != nil {
			slog.Error(err.Error())
			return 0, err
		}

		return userID, nil
	}

	if user.GoogleID == "" {
		user.GoogleID = userInfo.Id
		user.ProfilePicture = userInfo.Picture
		if err = s.u.Update(ctx, user); err != nil {
			slog.Info(err.Error())
			return 0, err
		}
	}

	return user.ID, nil
}

func (s *authService) AdminLogin(ctx context.Context, email, password string) (userID int64, err error) {
	if email == "" || password == "" {
		err = errors.New("email and password are required")
		slog.Info(err.Error())
		return 0, err
	}

	user, isExist, err := s.u.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if !isExist {
		err = errors.New("invalid credentials")
		slog.Info(err.Error())
		return 0, err
	}

	// Bootstrap: the env-configured admin account is promoted on first
	// successful login.
	if !user.IsAdmin && email == s.cfg.AdminEmail && s.cfg.AdminPasswordHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) != nil {
			err = errors.New("invalid credentials")
			slog.Info(err.Error())
			return 0, err
		}
		if err = s.u.SetAdmin(ctx, user.ID, s.cfg.AdminPasswordHash); err != nil {
			slog.Error(err.Error())
			return 0, err
		}
		return user.ID, nil
	}

	if !user.IsAdmin || user.AdminPassword == "" {
		err = errors.New("invalid credentials")
		slog.Info(err.Error())
		return 0, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.AdminPassword), []byte(password)); err != nil {
		err = errors.New("invalid credentials")
		slog.Info(err.Error())
		return 0, err
	}

	return user.ID, nil
}
