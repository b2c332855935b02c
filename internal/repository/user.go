package repository

import (
	"context"

	"github.com/ErlanBelekov/authd/internal/domain"
)

// UserRepository is the credential store. Lookups that match nothing return
// domain.ErrUserNotFound; Create failures are *domain.StoreError.
type UserRepository interface {
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}
