package handlers

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/websocket"
)

// fakeTxRunner runs the callback without a real transaction. Store stubs
// in this package never touch the tx handle.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

// trackingTxRunner records whether the callback is currently executing, so
// a test can assert that store calls happen inside the transaction scope.
type trackingTxRunner struct {
	inTx *bool
}

func (r trackingTxRunner) WithTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	*r.inTx = true
	defer func() { *r.inTx = false }()
	return fn(nil)
}

type stubUserStore struct {
	authenticateFn func(ctx context.Context, username string, password []byte) (models.User, error)
	createFn       func(ctx context.Context, tx store.Tx, user models.User) (int64, error)
	updateNameFn   func(ctx context.Context, principal models.User, username string) error
	deleteFn       func(ctx context.Context, tx store.Execer, principal models.User) error
}

func (s stubUserStore) Authenticate(ctx context.Context, username string, password []byte) (models.User, error) {
	if s.authenticateFn == nil {
		return models.User{}, store.ErrUnauthorized
	}
	return s.authenticateFn(ctx, username, password)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Tx, user models.User) (int64, error) {
	if s.createFn == nil {
		return 0, nil
	}
	return s.createFn(ctx, tx, user)
}

func (s stubUserStore) Get(_ context.Context, principal models.User) (models.User, error) {
	return principal, nil
}

func (s stubUserStore) Update(context.Context, models.User, models.User) error { return nil }

func (s stubUserStore) UpdateUsername(ctx context.Context, principal models.User, username string) error {
	if s.updateNameFn == nil {
		return nil
	}
	return s.updateNameFn(ctx, principal, username)
}

func (s stubUserStore) UpdatePassword(context.Context, models.User, models.Opaque) error { return nil }
func (s stubUserStore) UpdateEmail(context.Context, models.User, string) error           { return nil }
func (s stubUserStore) UpdateFirstName(context.Context, models.User, string) error       { return nil }
func (s stubUserStore) UpdateLastName(context.Context, models.User, string) error        { return nil }

func (s stubUserStore) Delete(ctx context.Context, tx store.Execer, principal models.User) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, tx, principal)
}

type stubCategoryStore struct {
	listFn       func(ctx context.Context, principal models.User) ([]models.Category, error)
	getFn        func(ctx context.Context, principal models.User, id int64) (models.Category, error)
	createFn     func(ctx context.Context, principal models.User, name, description models.Opaque, colourID int64) (int64, error)
	updateFn     func(ctx context.Context, principal models.User, category models.Category) error
	updateNameFn func(ctx context.Context, principal models.User, id int64, name models.Opaque) error
	deleteFn     func(ctx context.Context, principal models.User, id int64) error
}

func (s stubCategoryStore) List(ctx context.Context, principal models.User) ([]models.Category, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, principal)
}

func (s stubCategoryStore) Get(ctx context.Context, principal models.User, id int64) (models.Category, error) {
	if s.getFn == nil {
		return models.Category{}, store.ErrNotFound
	}
	return s.getFn(ctx, principal, id)
}

func (s stubCategoryStore) Create(ctx context.Context, principal models.User, name, description models.Opaque, colourID int64) (int64, error) {
	if s.createFn == nil {
		return 0, nil
	}
	return s.createFn(ctx, principal, name, description, colourID)
}

func (s stubCategoryStore) Update(ctx context.Context, principal models.User, category models.Category) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, principal, category)
}

func (s stubCategoryStore) UpdateName(ctx context.Context, principal models.User, id int64, name models.Opaque) error {
	if s.updateNameFn == nil {
		return nil
	}
	return s.updateNameFn(ctx, principal, id, name)
}

func (s stubCategoryStore) UpdateDescription(context.Context, models.User, int64, models.Opaque) error {
	return nil
}

func (s stubCategoryStore) UpdateColour(context.Context, models.User, int64, int64) error {
	return nil
}

func (s stubCategoryStore) Delete(ctx context.Context, principal models.User, id int64) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, principal, id)
}

type auditRecord struct {
	actorID    int64
	action     string
	entityType string
	entityID   int64
}

type stubAuditStore struct {
	records *[]auditRecord
	logErr  error
	listFn  func(ctx context.Context, actorID int64, limit, offset int) ([]models.AuditLog, error)
}

func (s stubAuditStore) Log(_ context.Context, _ store.Execer, actorID int64, action, entityType string, entityID int64, _ string) error {
	if s.logErr != nil {
		return s.logErr
	}
	if s.records != nil {
		*s.records = append(*s.records, auditRecord{actorID: actorID, action: action, entityType: entityType, entityID: entityID})
	}
	return nil
}

func (s stubAuditStore) ListByActor(ctx context.Context, actorID int64, limit, offset int) ([]models.AuditLog, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, actorID, limit, offset)
}

func testPrincipal() models.User {
	return models.User{
		ID:        7,
		Username:  "alice",
		Password:  models.Opaque("sealed-password"),
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

// principalAuth wires Authenticate to accept exactly the test principal's
// credentials, the way the live store would.
func principalAuth(user models.User) stubUserStore {
	return stubUserStore{authenticateFn: func(_ context.Context, username string, password []byte) (models.User, error) {
		if username != user.Username || string(password) != string(user.Password) {
			return models.User{}, store.ErrUnauthorized
		}
		return user, nil
	}}
}

func asPrincipal(req *http.Request, user models.User) {
	req.SetBasicAuth(user.Username, base64.StdEncoding.EncodeToString(user.Password))
}

func testConfig() config.Config {
	return config.Config{
		AppEnv:         "test",
		TicketSecret:   "test-ticket-secret",
		TicketTTL:      time.Minute,
		AllowedOrigins: "*",
	}
}

func newTestHandler(users UserStore, categories CategoryStore, audit AuditStore) *Handler {
	return newTestHandlerTx(fakeTxRunner{}, users, categories, audit)
}

func newTestHandlerTx(txRunner db.TxRunner, users UserStore, categories CategoryStore, audit AuditStore) *Handler {
	return New(testConfig(), txRunner, users, nil, categories, nil, nil, nil, nil, audit, websocket.NewHub())
}
