package store

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/models"
)

// CredentialGuard re-fetches the acting user's stored record and compares
// it field by field against the claim. Every owner-scoped store method runs
// this before touching its table, keeping each data-access call
// self-contained at the cost of one extra round-trip.
type CredentialGuard struct {
	db Getter
}

func NewCredentialGuard(db Getter) *CredentialGuard {
	return &CredentialGuard{db: db}
}

// Validate returns ErrUnauthorized when the claim diverges from the stored
// record or the record no longer exists. Database errors propagate.
func (g *CredentialGuard) Validate(ctx context.Context, claim models.User) error {
	var stored models.User
	err := g.db.GetContext(ctx, &stored, `
		SELECT id, username, password, email, first_name, last_name
		FROM users
		WHERE id = $1
	`, claim.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("load stored user: %w", err)
	}
	if stored.Username != claim.Username ||
		stored.Email != claim.Email ||
		stored.FirstName != claim.FirstName ||
		stored.LastName != claim.LastName {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare(stored.Password, claim.Password) != 1 {
		return ErrUnauthorized
	}
	return nil
}
