package store

import (
	"context"

	"fintrack/internal/models"
)

// SubcategoryStore scopes every operation by owner id and parent category
// id, so a subcategory is only reachable through its own category.
type SubcategoryStore struct {
	owned ownedStore[models.Subcategory]
}

func NewSubcategoryStore(db DB, guard *CredentialGuard) *SubcategoryStore {
	return &SubcategoryStore{owned: ownedStore[models.Subcategory]{
		db:    db,
		guard: guard,
		spec: tableSpec{
			table:       "subcategories",
			columns:     []string{"id", "category_id", "name", "description", "colour_id", "user_id"},
			parentTable: "categories",
			parentCol:   "category_id",
		},
	}}
}

func (s *SubcategoryStore) List(ctx context.Context, principal models.User, categoryID int64) ([]models.Subcategory, error) {
	return s.owned.list(ctx, principal, categoryID)
}

func (s *SubcategoryStore) Get(ctx context.Context, principal models.User, id, categoryID int64) (models.Subcategory, error) {
	return s.owned.get(ctx, principal, id, categoryID)
}

func (s *SubcategoryStore) Create(ctx context.Context, principal models.User, categoryID int64, name, description models.Opaque, colourID int64) (int64, error) {
	return s.owned.insert(ctx, principal, categoryID, map[string]any{
		"name":        []byte(name),
		"description": []byte(description),
		"colour_id":   colourID,
	})
}

func (s *SubcategoryStore) Update(ctx context.Context, principal models.User, subcategory models.Subcategory) error {
	return s.owned.updateFields(ctx, principal, subcategory.ID, subcategory.CategoryID, map[string]any{
		"name":        []byte(subcategory.Name),
		"description": []byte(subcategory.Description),
		"colour_id":   subcategory.ColourID,
	})
}

func (s *SubcategoryStore) UpdateName(ctx context.Context, principal models.User, id, categoryID int64, name models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, categoryID, map[string]any{"name": []byte(name)})
}

func (s *SubcategoryStore) UpdateDescription(ctx context.Context, principal models.User, id, categoryID int64, description models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, categoryID, map[string]any{"description": []byte(description)})
}

func (s *SubcategoryStore) UpdateColour(ctx context.Context, principal models.User, id, categoryID, colourID int64) error {
	return s.owned.updateFields(ctx, principal, id, categoryID, map[string]any{"colour_id": colourID})
}

// Move reparents a subcategory onto another category of the same owner.
func (s *SubcategoryStore) Move(ctx context.Context, principal models.User, id, fromCategoryID, toCategoryID int64) error {
	if err := s.owned.guard.Validate(ctx, principal); err != nil {
		return err
	}
	if err := s.owned.parentOwned(ctx, principal, toCategoryID); err != nil {
		return err
	}
	return s.owned.updateFields(ctx, principal, id, fromCategoryID, map[string]any{"category_id": toCategoryID})
}

func (s *SubcategoryStore) Delete(ctx context.Context, principal models.User, id, categoryID int64) error {
	return s.owned.remove(ctx, principal, id, categoryID)
}
