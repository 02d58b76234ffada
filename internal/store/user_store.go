package store

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/models"
)

const userColumns = `id, username, password, email, first_name, last_name`

// UserStore handles account lookup, authentication by credential match and
// per-field account mutation. The scope predicate is the user's own id.
type UserStore struct {
	db    DB
	guard *CredentialGuard
	cache *IDCache
}

func NewUserStore(db DB, guard *CredentialGuard, cache *IDCache) *UserStore {
	return &UserStore{db: db, guard: guard, cache: cache}
}

// Authenticate resolves a username and opaque password to the stored user
// record. Password bytes are compared exactly (no hashing at this layer;
// the payload is already ciphertext). Unknown username and wrong password
// both come back as ErrUnauthorized.
func (s *UserStore) Authenticate(ctx context.Context, username string, password []byte) (models.User, error) {
	if id, ok := s.cache.Get(username); ok {
		user, err := s.getByID(ctx, id)
		if err == nil && user.Username == username {
			return s.checkPassword(user, password)
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return models.User{}, err
		}
		// stale entry: the account was deleted or renamed
		s.cache.Invalidate(username)
	}
	user, err := s.getByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return models.User{}, ErrUnauthorized
	}
	if err != nil {
		return models.User{}, err
	}
	s.cache.Put(username, user.ID)
	return s.checkPassword(user, password)
}

func (s *UserStore) checkPassword(user models.User, password []byte) (models.User, error) {
	if subtle.ConstantTimeCompare(user.Password, password) != 1 {
		return models.User{}, ErrUnauthorized
	}
	return user, nil
}

func (s *UserStore) getByID(ctx context.Context, id int64) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserStore) getByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Create inserts a new account inside the caller's transaction and returns
// the generated id, so registration and its audit row commit or roll back
// together. A taken username or email surfaces as ErrDuplicate.
func (s *UserStore) Create(ctx context.Context, tx Tx, user models.User) (int64, error) {
	var id int64
	err := tx.GetContext(ctx, &id, `
		INSERT INTO users (username, password, email, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Username, []byte(user.Password), user.Email, user.FirstName, user.LastName)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

// Get re-reads the principal's own record after validating the claim.
func (s *UserStore) Get(ctx context.Context, principal models.User) (models.User, error) {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return models.User{}, err
	}
	return s.getByID(ctx, principal.ID)
}

// Update overwrites every mutable account field at once.
func (s *UserStore) Update(ctx context.Context, principal, user models.User) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	err := s.updateOwn(ctx, principal, `
		UPDATE users
		SET username = $1, password = $2, email = $3, first_name = $4, last_name = $5
		WHERE id = $6
	`, user.Username, []byte(user.Password), user.Email, user.FirstName, user.LastName, principal.ID)
	if err != nil {
		return err
	}
	if user.Username != principal.Username {
		s.cache.Invalidate(principal.Username)
	}
	return nil
}

func (s *UserStore) UpdateUsername(ctx context.Context, principal models.User, username string) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	if err := s.updateOwn(ctx, principal, `UPDATE users SET username = $1 WHERE id = $2`, username, principal.ID); err != nil {
		return err
	}
	s.cache.Invalidate(principal.Username)
	return nil
}

func (s *UserStore) UpdatePassword(ctx context.Context, principal models.User, password models.Opaque) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	return s.updateOwn(ctx, principal, `UPDATE users SET password = $1 WHERE id = $2`, []byte(password), principal.ID)
}

func (s *UserStore) UpdateEmail(ctx context.Context, principal models.User, email string) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	return s.updateOwn(ctx, principal, `UPDATE users SET email = $1 WHERE id = $2`, email, principal.ID)
}

func (s *UserStore) UpdateFirstName(ctx context.Context, principal models.User, firstName string) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	return s.updateOwn(ctx, principal, `UPDATE users SET first_name = $1 WHERE id = $2`, firstName, principal.ID)
}

func (s *UserStore) UpdateLastName(ctx context.Context, principal models.User, lastName string) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	return s.updateOwn(ctx, principal, `UPDATE users SET last_name = $1 WHERE id = $2`, lastName, principal.ID)
}

func (s *UserStore) updateOwn(ctx context.Context, principal models.User, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the account and every row it owns. The caller supplies a
// transaction; this is the one operation that genuinely spans statements.
func (s *UserStore) Delete(ctx context.Context, tx Execer, principal models.User) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	owned := []string{"entry_labels", "entries", "labels", "subcategories", "categories"}
	for _, table := range owned {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, table), principal.ID); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, principal.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.cache.Invalidate(principal.Username)
	return nil
}
