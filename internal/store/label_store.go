package store

import (
	"context"

	"fintrack/internal/models"
)

type LabelStore struct {
	owned ownedStore[models.Label]
}

func NewLabelStore(db DB, guard *CredentialGuard) *LabelStore {
	return &LabelStore{owned: ownedStore[models.Label]{
		db:    db,
		guard: guard,
		spec: tableSpec{
			table:   "labels",
			columns: []string{"id", "name", "description", "colour_id", "user_id"},
		},
	}}
}

func (s *LabelStore) List(ctx context.Context, principal models.User) ([]models.Label, error) {
	return s.owned.list(ctx, principal, 0)
}

func (s *LabelStore) Get(ctx context.Context, principal models.User, id int64) (models.Label, error) {
	return s.owned.get(ctx, principal, id, 0)
}

func (s *LabelStore) Create(ctx context.Context, principal models.User, name, description models.Opaque, colourID int64) (int64, error) {
	return s.owned.insert(ctx, principal, 0, map[string]any{
		"name":        []byte(name),
		"description": []byte(description),
		"colour_id":   colourID,
	})
}

func (s *LabelStore) Update(ctx context.Context, principal models.User, label models.Label) error {
	return s.owned.updateFields(ctx, principal, label.ID, 0, map[string]any{
		"name":        []byte(label.Name),
		"description": []byte(label.Description),
		"colour_id":   label.ColourID,
	})
}

func (s *LabelStore) UpdateName(ctx context.Context, principal models.User, id int64, name models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, 0, map[string]any{"name": []byte(name)})
}

func (s *LabelStore) UpdateDescription(ctx context.Context, principal models.User, id int64, description models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, 0, map[string]any{"description": []byte(description)})
}

func (s *LabelStore) UpdateColour(ctx context.Context, principal models.User, id, colourID int64) error {
	return s.owned.updateFields(ctx, principal, id, 0, map[string]any{"colour_id": colourID})
}

func (s *LabelStore) Delete(ctx context.Context, principal models.User, id int64) error {
	return s.owned.remove(ctx, principal, id, 0)
}
