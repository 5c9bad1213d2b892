package db

import (
	"context"
	"errors"

	"github.com/geocoder89/enrollhub/internal/config"
	"github.com/geocoder89/enrollhub/internal/domain/account"
	"github.com/geocoder89/enrollhub/internal/domain/flex"
	"github.com/geocoder89/enrollhub/internal/security"
)

type AdminSeeder interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Create(ctx context.Context, a account.Account) (account.Account, error)
}

// EnsureAdminAccount inserts the configured admin account when it does not exist yet.
// It reports whether an account was created.
func EnsureAdminAccount(ctx context.Context, store AdminSeeder, cfg config.Config) (bool, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	_, err := store.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return false, nil
	}

	if !errors.Is(err, account.ErrNotFound) {
		return false, err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return false, err
	}

	admin := account.NewFromRegisterRequest(account.RegisterRequest{
		FirstName: flex.String(cfg.AdminFirstName),
		LastName:  flex.String(cfg.AdminLastName),
		Email:     flex.String(cfg.AdminEmail),
	}, hash)
	admin.Role = account.RoleAdmin

	if _, err := store.Create(ctx, admin); err != nil {
		return false, err
	}

	return true, nil
}
