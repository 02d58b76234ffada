package store

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"fintrack/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tableSpec describes one owner-scoped table. parentTable/parentCol are set
// for entities that live under another owned entity (subcategories under
// categories, entries under subcategories); their predicates then carry the
// parent id alongside user_id.
type tableSpec struct {
	table       string
	columns     []string
	parentTable string
	parentCol   string
}

// ownedStore is the single CRUD engine behind the category, subcategory,
// label and entry stores. The typed wrappers only choose columns and expose
// per-field update methods, so a client can patch one attribute without
// resending the whole encrypted record.
type ownedStore[R any] struct {
	db    DB
	guard *CredentialGuard
	spec  tableSpec
}

func (s *ownedStore[R]) ownerPred(principal models.User, parentID int64) sq.Eq {
	pred := sq.Eq{"user_id": principal.ID}
	if s.spec.parentCol != "" {
		pred[s.spec.parentCol] = parentID
	}
	return pred
}

func (s *ownedStore[R]) list(ctx context.Context, principal models.User, parentID int64) ([]R, error) {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return nil, err
	}
	query, args, err := psql.Select(s.spec.columns...).
		From(s.spec.table).
		Where(s.ownerPred(principal, parentID)).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows := []R{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ownedStore[R]) get(ctx context.Context, principal models.User, id, parentID int64) (R, error) {
	var row R
	if err := s.guard.Validate(ctx, principal); err != nil {
		return row, err
	}
	pred := s.ownerPred(principal, parentID)
	pred["id"] = id
	query, args, err := psql.Select(s.spec.columns...).
		From(s.spec.table).
		Where(pred).
		ToSql()
	if err != nil {
		return row, err
	}
	err = s.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		var zero R
		return zero, ErrNotFound
	}
	if err != nil {
		var zero R
		return zero, err
	}
	return row, nil
}

// insert stores a new row for the principal and returns the generated id.
// Ids of deleted rows are never reused; gaps in the sequence are permanent
// and intentional.
func (s *ownedStore[R]) insert(ctx context.Context, principal models.User, parentID int64, cols map[string]any) (int64, error) {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return 0, err
	}
	if s.spec.parentCol != "" {
		if err := s.parentOwned(ctx, principal, parentID); err != nil {
			return 0, err
		}
		cols[s.spec.parentCol] = parentID
	}
	cols["user_id"] = principal.ID
	query, args, err := psql.Insert(s.spec.table).
		SetMap(cols).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := s.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return 0, ErrInvalidReference
		}
		return 0, err
	}
	return id, nil
}

// parentOwned rejects inserts and moves that would attach a row to a parent
// entity belonging to someone else.
func (s *ownedStore[R]) parentOwned(ctx context.Context, principal models.User, parentID int64) error {
	query, args, err := psql.Select("id").
		From(s.spec.parentTable).
		Where(sq.Eq{"id": parentID, "user_id": principal.ID}).
		ToSql()
	if err != nil {
		return err
	}
	var id int64
	err = s.db.GetContext(ctx, &id, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// updateFields patches the given columns on one owner-scoped row. Whole
// record replacement and single-field updates both go through here.
func (s *ownedStore[R]) updateFields(ctx context.Context, principal models.User, id, parentID int64, sets map[string]any) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	pred := s.ownerPred(principal, parentID)
	pred["id"] = id
	query, args, err := psql.Update(s.spec.table).
		SetMap(sets).
		Where(pred).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
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

// remove hard-deletes one owner-scoped row. No tombstones.
func (s *ownedStore[R]) remove(ctx context.Context, principal models.User, id, parentID int64) error {
	if err := s.guard.Validate(ctx, principal); err != nil {
		return err
	}
	pred := s.ownerPred(principal, parentID)
	pred["id"] = id
	query, args, err := psql.Delete(s.spec.table).
		Where(pred).
		ToSql()
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
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
