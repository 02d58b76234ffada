package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/store"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps the store error kinds onto status codes. Denied
// and not-found stay distinct on the wire.
func respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "credentials do not match stored account")
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicate):
		respondError(w, http.StatusConflict, "already exists")
	case errors.Is(err, store.ErrInvalidReference):
		respondError(w, http.StatusBadRequest, "referenced row does not exist")
	case errors.Is(err, models.ErrBadEncoding):
		respondError(w, http.StatusBadRequest, "malformed base64 payload")
	default:
		log.Printf("store error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		if errors.Is(err, models.ErrBadEncoding) {
			respondError(w, http.StatusBadRequest, "malformed base64 payload")
		} else {
			respondError(w, http.StatusBadRequest, "invalid payload")
		}
		return false
	}
	return true
}

func principal(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return models.User{}, false
	}
	return user, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// opaquePatch is the body of every single-field update carrying an
// encrypted value.
type opaquePatch struct {
	Value models.Opaque `json:"value"`
}

type colourPatch struct {
	ColourID int64 `json:"colour_id"`
}

type textPatch struct {
	Value string `json:"value"`
}
