package store

import (
	"context"
	"database/sql"
	"errors"

	"fintrack/internal/models"
)

// ColourStore reads the shared palette. The table is seeded at install time
// and read-only at runtime, so there is no ownership scoping and no
// credential guard here.
type ColourStore struct {
	db DB
}

func NewColourStore(db DB) *ColourStore {
	return &ColourStore{db: db}
}

func (s *ColourStore) List(ctx context.Context) ([]models.Colour, error) {
	rows := []models.Colour{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, code
		FROM colours
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *ColourStore) Get(ctx context.Context, id int64) (models.Colour, error) {
	var row models.Colour
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, code
		FROM colours
		WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Colour{}, ErrNotFound
	}
	if err != nil {
		return models.Colour{}, err
	}
	return row, nil
}

// Seed upserts one palette entry by name. Used by the migrate CLI only.
func (s *ColourStore) Seed(ctx context.Context, tx Execer, name string, code []byte) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO colours (name, code)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET code = EXCLUDED.code
	`, name, code)
	return err
}
