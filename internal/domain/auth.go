package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrTokenInvalid   = errors.New("token is invalid or expired")
	ErrDuplicateEmail = errors.New("email is already registered")
	ErrDuplicatePhone = errors.New("phone number is already registered")
)

// User is the persisted account. Password always holds an argon2id digest.
type User struct {
	ID        string
	Email     string
	Phone     string
	FirstName string
	BirthDay  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the part of User that may leave the service.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is returned by every successful login, register and refresh.
type AuthResult struct {
	User   PublicUser
	Tokens TokenPair
}

type StoreErrorKind int

const (
	StoreFailure StoreErrorKind = iota
	StoreConstraintViolation
)

// StoreError wraps a persistence failure. For constraint violations Field
// names the offending column ("email", "phone") when it could be determined.
type StoreError struct {
	Kind  StoreErrorKind
	Field string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	if e.Kind == StoreConstraintViolation {
		return fmt.Sprintf("%s: unique constraint on %q: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
