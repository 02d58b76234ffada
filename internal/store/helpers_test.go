package store

import (
	"context"
	"database/sql"

	"fintrack/internal/models"
)

type stubDB struct {
	getFn    func(ctx context.Context, dest any, query string, args ...any) error
	selectFn func(ctx context.Context, dest any, query string, args ...any) error
	execFn   func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s stubDB) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.getFn == nil {
		return nil
	}
	return s.getFn(ctx, dest, query, args...)
}

func (s stubDB) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.selectFn == nil {
		return nil
	}
	return s.selectFn(ctx, dest, query, args...)
}

func (s stubDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.execFn == nil {
		return stubResult{}, nil
	}
	return s.execFn(ctx, query, args...)
}

type stubExecer struct {
	execFn func(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s stubExecer) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if s.execFn == nil {
		return stubResult{}, nil
	}
	return s.execFn(ctx, query, args...)
}

type stubGetter struct {
	getFn func(ctx context.Context, dest any, query string, args ...any) error
}

func (s stubGetter) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	if s.getFn == nil {
		return nil
	}
	return s.getFn(ctx, dest, query, args...)
}

type stubResult struct {
	lastID int64
	rows   int64
}

func (s stubResult) LastInsertId() (int64, error) { return s.lastID, nil }
func (s stubResult) RowsAffected() (int64, error) { return s.rows, nil }

// allowGuard builds a guard whose stored record always equals the claim.
func allowGuard(user models.User) *CredentialGuard {
	return NewCredentialGuard(stubGetter{getFn: func(_ context.Context, dest any, _ string, _ ...any) error {
		*(dest.(*models.User)) = user
		return nil
	}})
}

// denyGuard builds a guard that never finds the stored record.
func denyGuard() *CredentialGuard {
	return NewCredentialGuard(stubGetter{getFn: func(_ context.Context, _ any, _ string, _ ...any) error {
		return sql.ErrNoRows
	}})
}

func testUser() models.User {
	return models.User{
		ID:        7,
		Username:  "alice",
		Password:  models.Opaque("sealed-password"),
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}
