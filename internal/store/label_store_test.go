package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fintrack/internal/models"
)

func TestLabelListScopesByOwner(t *testing.T) {
	user := testUser()
	var gotQuery string
	var gotArgs []any
	store := NewLabelStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			gotQuery = query
			gotArgs = args
			*(dest.(*[]models.Label)) = []models.Label{{ID: 8, UserID: user.ID}}
			return nil
		},
	}, allowGuard(user))
	labels, err := store.List(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "FROM labels") || !strings.Contains(gotQuery, "user_id = $1") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(gotArgs) != 1 || gotArgs[0] != user.ID {
		t.Fatalf("unexpected args: %#v", gotArgs)
	}
	if len(labels) != 1 {
		t.Fatalf("unexpected rows: %#v", labels)
	}
}

func TestLabelCreateReturnsGeneratedID(t *testing.T) {
	user := testUser()
	store := NewLabelStore(stubDB{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "INSERT INTO labels") || !strings.Contains(query, "RETURNING id") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 4 {
				t.Fatalf("unexpected args: %#v", args)
			}
			*(dest.(*int64)) = 8
			return nil
		},
	}, allowGuard(user))
	id, err := store.Create(context.Background(), user, models.Opaque("ct-name"), nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 8 {
		t.Fatalf("expected id 8, got %d", id)
	}
}

func TestLabelDeleteDenied(t *testing.T) {
	store := NewLabelStore(stubDB{}, denyGuard())
	err := store.Delete(context.Background(), testUser(), 8)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
