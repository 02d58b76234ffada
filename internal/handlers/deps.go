package handlers

import (
	"context"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

type UserStore interface {
	Authenticate(ctx context.Context, username string, password []byte) (models.User, error)
	Create(ctx context.Context, tx store.Tx, user models.User) (int64, error)
	Get(ctx context.Context, principal models.User) (models.User, error)
	Update(ctx context.Context, principal, user models.User) error
	UpdateUsername(ctx context.Context, principal models.User, username string) error
	UpdatePassword(ctx context.Context, principal models.User, password models.Opaque) error
	UpdateEmail(ctx context.Context, principal models.User, email string) error
	UpdateFirstName(ctx context.Context, principal models.User, firstName string) error
	UpdateLastName(ctx context.Context, principal models.User, lastName string) error
	Delete(ctx context.Context, tx store.Execer, principal models.User) error
}

type ColourStore interface {
	List(ctx context.Context) ([]models.Colour, error)
	Get(ctx context.Context, id int64) (models.Colour, error)
}

type CategoryStore interface {
	List(ctx context.Context, principal models.User) ([]models.Category, error)
	Get(ctx context.Context, principal models.User, id int64) (models.Category, error)
	Create(ctx context.Context, principal models.User, name, description models.Opaque, colourID int64) (int64, error)
	Update(ctx context.Context, principal models.User, category models.Category) error
	UpdateName(ctx context.Context, principal models.User, id int64, name models.Opaque) error
	UpdateDescription(ctx context.Context, principal models.User, id int64, description models.Opaque) error
	UpdateColour(ctx context.Context, principal models.User, id, colourID int64) error
	Delete(ctx context.Context, principal models.User, id int64) error
}

type SubcategoryStore interface {
	List(ctx context.Context, principal models.User, categoryID int64) ([]models.Subcategory, error)
	Get(ctx context.Context, principal models.User, id, categoryID int64) (models.Subcategory, error)
	Create(ctx context.Context, principal models.User, categoryID int64, name, description models.Opaque, colourID int64) (int64, error)
	Update(ctx context.Context, principal models.User, subcategory models.Subcategory) error
	UpdateName(ctx context.Context, principal models.User, id, categoryID int64, name models.Opaque) error
	UpdateDescription(ctx context.Context, principal models.User, id, categoryID int64, description models.Opaque) error
	UpdateColour(ctx context.Context, principal models.User, id, categoryID, colourID int64) error
	Move(ctx context.Context, principal models.User, id, fromCategoryID, toCategoryID int64) error
	Delete(ctx context.Context, principal models.User, id, categoryID int64) error
}

type LabelStore interface {
	List(ctx context.Context, principal models.User) ([]models.Label, error)
	Get(ctx context.Context, principal models.User, id int64) (models.Label, error)
	Create(ctx context.Context, principal models.User, name, description models.Opaque, colourID int64) (int64, error)
	Update(ctx context.Context, principal models.User, label models.Label) error
	UpdateName(ctx context.Context, principal models.User, id int64, name models.Opaque) error
	UpdateDescription(ctx context.Context, principal models.User, id int64, description models.Opaque) error
	UpdateColour(ctx context.Context, principal models.User, id, colourID int64) error
	Delete(ctx context.Context, principal models.User, id int64) error
}

type EntryStore interface {
	List(ctx context.Context, principal models.User, subcategoryID int64) ([]models.Entry, error)
	Get(ctx context.Context, principal models.User, id, subcategoryID int64) (models.Entry, error)
	Create(ctx context.Context, principal models.User, subcategoryID int64, input store.EntryInput) (int64, error)
	Update(ctx context.Context, principal models.User, entry models.Entry) error
	UpdateName(ctx context.Context, principal models.User, id, subcategoryID int64, name models.Opaque) error
	UpdateDescription(ctx context.Context, principal models.User, id, subcategoryID int64, description models.Opaque) error
	UpdateAmount(ctx context.Context, principal models.User, id, subcategoryID int64, amount models.Opaque) error
	UpdateTimeOfExpense(ctx context.Context, principal models.User, id, subcategoryID int64, timeOfExpense models.Opaque) error
	UpdateAttachment(ctx context.Context, principal models.User, id, subcategoryID int64, attachment models.Opaque) error
	Move(ctx context.Context, principal models.User, id, fromSubcategoryID, toSubcategoryID int64) error
	Delete(ctx context.Context, principal models.User, id, subcategoryID int64) error
}

type EntryLabelStore interface {
	LabelsForEntry(ctx context.Context, principal models.User, entryID int64) ([]models.Label, error)
	Link(ctx context.Context, principal models.User, entryID, labelID int64) (int64, error)
	Unlink(ctx context.Context, principal models.User, entryID, labelID int64) error
}

type AuditStore interface {
	Log(ctx context.Context, tx store.Execer, actorID int64, action, entityType string, entityID int64, data string) error
	ListByActor(ctx context.Context, actorID int64, limit, offset int) ([]models.AuditLog, error)
}
