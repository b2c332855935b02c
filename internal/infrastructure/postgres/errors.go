package postgres

import (
	"errors"
	"strings"

	"github.com/ErlanBelekov/authd/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueConstraints maps the named constraints of the users table to the
// column they guard.
var uniqueConstraints = map[string]string{
	"users_email_key": "email",
	"users_phone_key": "phone",
}

// storeError converts a driver error into a *domain.StoreError, recognising
// unique violations so callers can tell which column clashed.
func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return &domain.StoreError{
			Kind:  domain.StoreConstraintViolation,
			Field: constraintField(pgErr),
			Op:    op,
			Err:   err,
		}
	}
	return &domain.StoreError{Kind: domain.StoreFailure, Op: op, Err: err}
}

func constraintField(pgErr *pgconn.PgError) string {
	if field, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
		return field
	}
	// Fall back to the detail text, e.g. "Key (email)=(a@x.com) already exists."
	for _, field := range uniqueConstraints {
		if strings.Contains(pgErr.Detail, "("+field+")") {
			return field
		}
	}
	return ""
}
