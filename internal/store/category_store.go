package store

import (
	"context"

	"fintrack/internal/models"
)

type CategoryStore struct {
	owned ownedStore[models.Category]
}

func NewCategoryStore(db DB, guard *CredentialGuard) *CategoryStore {
	return &CategoryStore{owned: ownedStore[models.Category]{
		db:    db,
		guard: guard,
		spec: tableSpec{
			table:   "categories",
			columns: []string{"id", "name", "description", "colour_id", "user_id"},
		},
	}}
}

func (s *CategoryStore) List(ctx context.Context, principal models.User) ([]models.Category, error) {
	return s.owned.list(ctx, principal, 0)
}

func (s *CategoryStore) Get(ctx context.Context, principal models.User, id int64) (models.Category, error) {
	return s.owned.get(ctx, principal, id, 0)
}

func (s *CategoryStore) Create(ctx context.Context, principal models.User, name, description models.Opaque, colourID int64) (int64, error) {
	return s.owned.insert(ctx, principal, 0, map[string]any{
		"name":        []byte(name),
		"description": []byte(description),
		"colour_id":   colourID,
	})
}

// Update overwrites every mutable field of the category.
func (s *CategoryStore) Update(ctx context.Context, principal models.User, category models.Category) error {
	return s.owned.updateFields(ctx, principal, category.ID, 0, map[string]any{
		"name":        []byte(category.Name),
		"description": []byte(category.Description),
		"colour_id":   category.ColourID,
	})
}

func (s *CategoryStore) UpdateName(ctx context.Context, principal models.User, id int64, name models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, 0, map[string]any{"name": []byte(name)})
}

func (s *CategoryStore) UpdateDescription(ctx context.Context, principal models.User, id int64, description models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, 0, map[string]any{"description": []byte(description)})
}

func (s *CategoryStore) UpdateColour(ctx context.Context, principal models.User, id, colourID int64) error {
	return s.owned.updateFields(ctx, principal, id, 0, map[string]any{"colour_id": colourID})
}

func (s *CategoryStore) Delete(ctx context.Context, principal models.User, id int64) error {
	return s.owned.remove(ctx, principal, id, 0)
}
