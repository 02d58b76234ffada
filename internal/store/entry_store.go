package store

import (
	"context"

	"fintrack/internal/models"
)

// EntryStore holds the expense records. Name, description, amount, both
// timestamps and the attachment are ciphertext; date and amount arithmetic
// happens on the client before encryption, never here.
type EntryStore struct {
	owned ownedStore[models.Entry]
}

func NewEntryStore(db DB, guard *CredentialGuard) *EntryStore {
	return &EntryStore{owned: ownedStore[models.Entry]{
		db:    db,
		guard: guard,
		spec: tableSpec{
			table: "entries",
			columns: []string{
				"id", "subcategory_id", "name", "description", "amount",
				"created_at", "time_of_expense", "attachment", "user_id",
			},
			parentTable: "subcategories",
			parentCol:   "subcategory_id",
		},
	}}
}

type EntryInput struct {
	Name          models.Opaque
	Description   models.Opaque
	Amount        models.Opaque
	CreatedAt     models.Opaque
	TimeOfExpense models.Opaque
	Attachment    models.Opaque
}

func (s *EntryStore) List(ctx context.Context, principal models.User, subcategoryID int64) ([]models.Entry, error) {
	return s.owned.list(ctx, principal, subcategoryID)
}

func (s *EntryStore) Get(ctx context.Context, principal models.User, id, subcategoryID int64) (models.Entry, error) {
	return s.owned.get(ctx, principal, id, subcategoryID)
}

func (s *EntryStore) Create(ctx context.Context, principal models.User, subcategoryID int64, input EntryInput) (int64, error) {
	return s.owned.insert(ctx, principal, subcategoryID, map[string]any{
		"name":            []byte(input.Name),
		"description":     []byte(input.Description),
		"amount":          []byte(input.Amount),
		"created_at":      []byte(input.CreatedAt),
		"time_of_expense": []byte(input.TimeOfExpense),
		"attachment":      []byte(input.Attachment),
	})
}

// Update overwrites every mutable field. The creation timestamp is written
// once at insert and stays put.
func (s *EntryStore) Update(ctx context.Context, principal models.User, entry models.Entry) error {
	return s.owned.updateFields(ctx, principal, entry.ID, entry.SubcategoryID, map[string]any{
		"name":            []byte(entry.Name),
		"description":     []byte(entry.Description),
		"amount":          []byte(entry.Amount),
		"time_of_expense": []byte(entry.TimeOfExpense),
		"attachment":      []byte(entry.Attachment),
	})
}

func (s *EntryStore) UpdateName(ctx context.Context, principal models.User, id, subcategoryID int64, name models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, subcategoryID, map[string]any{"name": []byte(name)})
}

func (s *EntryStore) UpdateDescription(ctx context.Context, principal models.User, id, subcategoryID int64, description models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, subcategoryID, map[string]any{"description": []byte(description)})
}

func (s *EntryStore) UpdateAmount(ctx context.Context, principal models.User, id, subcategoryID int64, amount models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, subcategoryID, map[string]any{"amount": []byte(amount)})
}

func (s *EntryStore) UpdateTimeOfExpense(ctx context.Context, principal models.User, id, subcategoryID int64, timeOfExpense models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, subcategoryID, map[string]any{"time_of_expense": []byte(timeOfExpense)})
}

func (s *EntryStore) UpdateAttachment(ctx context.Context, principal models.User, id, subcategoryID int64, attachment models.Opaque) error {
	return s.owned.updateFields(ctx, principal, id, subcategoryID, map[string]any{"attachment": []byte(attachment)})
}

// Move reattaches an entry to another subcategory of the same owner.
func (s *EntryStore) Move(ctx context.Context, principal models.User, id, fromSubcategoryID, toSubcategoryID int64) error {
	if err := s.owned.guard.Validate(ctx, principal); err != nil {
		return err
	}
	if err := s.owned.parentOwned(ctx, principal, toSubcategoryID); err != nil {
		return err
	}
	return s.owned.updateFields(ctx, principal, id, fromSubcategoryID, map[string]any{"subcategory_id": toSubcategoryID})
}

func (s *EntryStore) Delete(ctx context.Context, principal models.User, id, subcategoryID int64) error {
	return s.owned.remove(ctx, principal, id, subcategoryID)
}
