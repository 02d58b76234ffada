package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"fintrack/internal/models"
)

// EntryLabelStore links entries to labels. Uniqueness of
// (entry, label, owner) is enforced by the unique index, not pre-checked in
// application code; a duplicate attempt surfaces as ErrDuplicate.
type EntryLabelStore struct {
	db    DB
	guard *CredentialGuard
}

func NewEntryLabelStore(db DB, guard *CredentialGuard) *EntryLabelStore {
	return &EntryLabelStore{db: db, guard: guard}
}

func (s *EntryLabelStore) LabelsForEntry(ctx context.Context, principal models.User, entryID int64) ([]models.Label, error) {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return nil, err
	}
	rows := []models.Label{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT l.id, l.name, l.description, l.colour_id, l.user_id
		FROM labels l
		JOIN entry_labels el ON el.label_id = l.id
		WHERE el.entry_id = $1 AND el.user_id = $2
		ORDER BY l.id
	`, entryID, principal.ID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EntryLabelStore) Link(ctx context.Context, principal models.User, entryID, labelID int64) (int64, error) {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return 0, err
	}
	if err := s.rowOwned(ctx, principal, "entries", entryID); err != nil {
		return 0, err
	}
	if err := s.rowOwned(ctx, principal, "labels", labelID); err != nil {
		return 0, err
	}
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO entry_labels (entry_id, label_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, entryID, labelID, principal.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (s *EntryLabelStore) Unlink(ctx context.Context, principal models.User, entryID, labelID int64) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM entry_labels
		WHERE entry_id = $1 AND label_id = $2 AND user_id = $3
	`, entryID, labelID, principal.ID)
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
	return nil
}

func (s *EntryLabelStore) rowOwned(ctx context.Context, principal models.User, table string, id int64) error {
	query, args, err := psql.Select("id").
		From(table).
		Where(sq.Eq{"id": id, "user_id": principal.ID}).
		ToSql()
	if err != nil {
		return err
	}
	var got int64
	err = s.db.GetContext(ctx, &got, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
