package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/authd/internal/domain"
	"github.com/ErlanBelekov/authd/internal/email"
	"github.com/ErlanBelekov/authd/internal/metrics"
	"github.com/ErlanBelekov/authd/internal/repository"
	"github.com/ErlanBelekov/authd/internal/token"
)

const notifyTimeout = 5 * time.Second

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) (bool, error)
}

type TokenService interface {
	Issue(userID string) (domain.TokenPair, error)
	Verify(raw string) (*token.Claims, error)
}

type LoginInput struct {
	Email    string
	Password string
}

type RegisterInput struct {
	Email     string
	Phone     string
	FirstName string
	BirthDay  string
	Password  string
}

type AuthUsecase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	tokens   TokenService
	notifier email.Sender
	logger   *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher PasswordHasher, tokens TokenService, notifier email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger.With("component", "auth_usecase"),
	}
}

// Login looks the user up by email in both the email and phone columns and
// checks the password against the stored digest.
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (res *domain.AuthResult, err error) {
	defer func() { metrics.ObserveAuth("login", err) }()

	user, err := u.users.FindByEmailOrPhone(ctx, in.Email, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := u.hasher.Verify(in.Password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	return u.result(user)
}

// Register enforces email then phone uniqueness, stores the user with a
// hashed password and returns a fresh token pair.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (res *domain.AuthResult, err error) {
	defer func() { metrics.ObserveAuth("register", err) }()

	if err = u.ensureAbsent(ctx, u.users.FindByEmail, in.Email, domain.ErrDuplicateEmail); err != nil {
		return nil, err
	}
	if err = u.ensureAbsent(ctx, u.users.FindByPhone, in.Phone, domain.ErrDuplicatePhone); err != nil {
		return nil, err
	}

	start := time.Now()
	hashed, err := u.hasher.Hash(in.Password)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:     in.Email,
		Phone:     in.Phone,
		FirstName: in.FirstName,
		BirthDay:  in.BirthDay,
		Password:  hashed,
	}
	if err = u.users.Create(ctx, user); err != nil {
		return nil, translateCreateError(err)
	}

	res, err = u.result(user)
	if err != nil {
		return nil, err
	}

	u.sendWelcome(ctx, user)
	return res, nil
}

// Refresh exchanges a valid refresh token for a new pair. The old token stays
// valid until it expires.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (res *domain.AuthResult, err error) {
	defer func() { metrics.ObserveAuth("refresh", err) }()

	claims, err := u.tokens.Verify(refreshToken)
	if err != nil {
		u.logger.DebugContext(ctx, "refresh token rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}

	user, err := u.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return u.result(user)
}

// Profile returns the public view of the user with the given id.
func (u *AuthUsecase) Profile(ctx context.Context, id string) (*domain.PublicUser, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	pub := user.Public()
	return &pub, nil
}

func (u *AuthUsecase) ensureAbsent(ctx context.Context, find func(context.Context, string) (*domain.User, error), value string, dup error) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return dup
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return fmt.Errorf("uniqueness check: %w", err)
	}
}

func (u *AuthUsecase) result(user *domain.User) (*domain.AuthResult, error) {
	pair, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &domain.AuthResult{User: user.Public(), Tokens: pair}, nil
}

func (u *AuthUsecase) sendWelcome(ctx context.Context, user *domain.User) {
	subject, body, err := email.Welcome(user.FirstName)
	if err != nil {
		u.logger.ErrorContext(ctx, "render welcome email", "error", err)
		return
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := u.notifier.Send(sendCtx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}
}

// translateCreateError maps a unique violation that slipped past the
// pre-checks (concurrent registration) onto the matching duplicate error.
func translateCreateError(err error) error {
	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) && storeErr.Kind == domain.StoreConstraintViolation {
		switch storeErr.Field {
		case "email":
			return domain.ErrDuplicateEmail
		case "phone":
			return domain.ErrDuplicatePhone
		}
	}
	return fmt.Errorf("create user: %w", err)
}
