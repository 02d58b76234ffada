package models

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrBadEncoding marks a payload that is not valid base64. Handlers map it
// to a 400 instead of letting a mangled blob reach the database.
var ErrBadEncoding = errors.New("malformed base64 payload")

// Opaque is an encrypted byte sequence the server stores but never
// interprets. It travels as base64 text on the wire and as bytea in SQL.
type Opaque []byte

func (o Opaque) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(o))
}

func (o *Opaque) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	raw, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	*o = raw
	return nil
}

// DecodeOpaque decodes a bare base64 string, for inputs that arrive outside
// a JSON body (basic-auth passwords, query parameters).
func DecodeOpaque(encoded string) (Opaque, error) {
	raw, err := base64.StdEncoding.Strict().DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEncoding, err)
	}
	return Opaque(raw), nil
}

type User struct {
	ID        int64  `db:"id" json:"id"`
	Username  string `db:"username" json:"username"`
	Password  Opaque `db:"password" json:"-"`
	Email     string `db:"email" json:"email"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
}

type Colour struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code Opaque `db:"code" json:"code"`
}

type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        Opaque `db:"name" json:"name"`
	Description Opaque `db:"description" json:"description"`
	ColourID    int64  `db:"colour_id" json:"colour_id"`
	UserID      int64  `db:"user_id" json:"user_id"`
}

type Subcategory struct {
	ID          int64  `db:"id" json:"id"`
	CategoryID  int64  `db:"category_id" json:"category_id"`
	Name        Opaque `db:"name" json:"name"`
	Description Opaque `db:"description" json:"description"`
	ColourID    int64  `db:"colour_id" json:"colour_id"`
	UserID      int64  `db:"user_id" json:"user_id"`
}

type Label struct {
	ID          int64  `db:"id" json:"id"`
	Name        Opaque `db:"name" json:"name"`
	Description Opaque `db:"description" json:"description"`
	ColourID    int64  `db:"colour_id" json:"colour_id"`
	UserID      int64  `db:"user_id" json:"user_id"`
}

// Entry is a single expense record. Every payload column, including the two
// timestamps and the amount, is ciphertext produced on the client; the
// server never parses or computes on them.
type Entry struct {
	ID            int64  `db:"id" json:"id"`
	SubcategoryID int64  `db:"subcategory_id" json:"subcategory_id"`
	Name          Opaque `db:"name" json:"name"`
	Description   Opaque `db:"description" json:"description"`
	Amount        Opaque `db:"amount" json:"amount"`
	CreatedAt     Opaque `db:"created_at" json:"created_at"`
	TimeOfExpense Opaque `db:"time_of_expense" json:"time_of_expense"`
	Attachment    Opaque `db:"attachment" json:"attachment"`
	UserID        int64  `db:"user_id" json:"user_id"`
}

type AuditLog struct {
	ID          string    `db:"id" json:"id"`
	ActorUserID int64     `db:"actor_user_id" json:"actor_user_id"`
	Action      string    `db:"action" json:"action"`
	EntityType  string    `db:"entity_type" json:"entity_type"`
	EntityID    int64     `db:"entity_id" json:"entity_id"`
	Data        string    `db:"data" json:"data"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
