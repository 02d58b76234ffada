package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/store"
)

func TestListCategoriesKeepsPayloadsOpaque(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{listFn: func(_ context.Context, principal models.User) ([]models.Category, error) {
		if principal.ID != user.ID {
			t.Fatalf("unexpected principal: %#v", principal)
		}
		return []models.Category{{ID: 5, Name: models.Opaque("ct-name"), UserID: user.ID}}, nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("unexpected rows: %s", rec.Body)
	}
	if resp[0]["name"] != base64.StdEncoding.EncodeToString([]byte("ct-name")) {
		t.Fatalf("name must travel as base64: %s", rec.Body)
	}
}

func TestGetCategoryForeignRowIs404(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{getFn: func(context.Context, models.User, int64) (models.Category, error) {
		return models.Category{}, store.ErrNotFound
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodGet, "/categories/5", nil)
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestGetCategoryRejectsNonNumericID(t *testing.T) {
	user := testPrincipal()
	handler := newTestHandler(principalAuth(user), stubCategoryStore{}, stubAuditStore{})

	req := httptest.NewRequest(http.MethodGet, "/categories/abc", nil)
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreateCategoryRequiresName(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{createFn: func(context.Context, models.User, models.Opaque, models.Opaque, int64) (int64, error) {
		t.Fatalf("create must not run with an empty name")
		return 0, nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(`{"name":"","colour_id":1}`))
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreateCategoryReturnsGeneratedID(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{createFn: func(_ context.Context, _ models.User, name, _ models.Opaque, colourID int64) (int64, error) {
		if string(name) != "ct-name" || colourID != 3 {
			t.Fatalf("unexpected input: %q %d", name, colourID)
		}
		return 5, nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	body := `{"name":"` + base64.StdEncoding.EncodeToString([]byte("ct-name")) + `","colour_id":3}`
	req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `"id":5`) {
		t.Fatalf("unexpected body: %s", rec.Body)
	}
}

func TestUpdateCategoryNamePatchesSingleField(t *testing.T) {
	user := testPrincipal()
	var gotID int64
	var gotName models.Opaque
	categories := stubCategoryStore{updateNameFn: func(_ context.Context, _ models.User, id int64, name models.Opaque) error {
		gotID = id
		gotName = name
		return nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	body := `{"value":"` + base64.StdEncoding.EncodeToString([]byte("ct-renamed")) + `"}`
	req := httptest.NewRequest(http.MethodPut, "/categories/5/name", strings.NewReader(body))
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body)
	}
	if gotID != 5 || string(gotName) != "ct-renamed" {
		t.Fatalf("unexpected patch: %d %q", gotID, gotName)
	}
}

func TestUpdateCategoryNameRejectsEmptyPayload(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{updateNameFn: func(context.Context, models.User, int64, models.Opaque) error {
		t.Fatalf("update must not run with an empty name")
		return nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodPut, "/categories/5/name", strings.NewReader(`{"value":""}`))
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestUpdateCategoryRequiresName(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{updateFn: func(context.Context, models.User, models.Category) error {
		t.Fatalf("update must not run with an empty name")
		return nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodPut, "/categories/5", strings.NewReader(`{"name":"","colour_id":1}`))
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestUpdateCategoryDescriptionAllowsEmptyPayload(t *testing.T) {
	user := testPrincipal()
	handler := newTestHandler(principalAuth(user), stubCategoryStore{}, stubAuditStore{})

	req := httptest.NewRequest(http.MethodPut, "/categories/5/description", strings.NewReader(`{"value":""}`))
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d %s", rec.Code, rec.Body)
	}
}

func TestDeleteCategoryNoContent(t *testing.T) {
	user := testPrincipal()
	var deleted int64
	categories := stubCategoryStore{deleteFn: func(_ context.Context, _ models.User, id int64) error {
		deleted = id
		return nil
	}}
	handler := newTestHandler(principalAuth(user), categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodDelete, "/categories/5", nil)
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if deleted != 5 {
		t.Fatalf("unexpected id: %d", deleted)
	}
}

func TestCategoryRoutesRejectStaleCredentials(t *testing.T) {
	user := testPrincipal()
	categories := stubCategoryStore{listFn: func(context.Context, models.User) ([]models.Category, error) {
		t.Fatalf("store must not run for rejected credentials")
		return nil, nil
	}}
	handler := newTestHandler(stubUserStore{}, categories, stubAuditStore{})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	asPrincipal(req, user)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
