package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"fintrack/internal/models"
	"fintrack/internal/validator"
)

type userUpdateRequest struct {
	Username  string        `json:"username"`
	Password  models.Opaque `json:"password"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req userUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidateUsername(req.Username); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePayload(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.users.Update(r.Context(), user, models.User{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

func (h *Handler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req textPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidateUsername(req.Value); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.users.UpdateUsername(r.Context(), user, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req opaquePatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Value); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.users.UpdatePassword(r.Context(), user, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

func (h *Handler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req textPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidateEmail(req.Value); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.users.UpdateEmail(r.Context(), user, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

func (h *Handler) UpdateFirstName(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req textPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.users.UpdateFirstName(r.Context(), user, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

func (h *Handler) UpdateLastName(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req textPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.users.UpdateLastName(r.Context(), user, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"id": user.ID})
}

// DeleteUser removes the account and everything it owns in one
// transaction, then logs the deletion under the former id.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		if err := h.users.Delete(r.Context(), tx, user); err != nil {
			return err
		}
		data, _ := json.Marshal(map[string]string{
			"username": user.Username,
			"ip":       r.RemoteAddr,
		})
		return h.audit.Log(r.Context(), tx, user.ID, "delete", "user", user.ID, string(data))
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	limit := queryInt(r, "limit", 50)
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	offset := queryInt(r, "offset", 0)
	logs, err := h.audit.ListByActor(r.Context(), user.ID, limit, offset)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, logs)
}

// maxAuditLimit caps one audit page so a client cannot request the whole
// table in a single query.
const maxAuditLimit = 500

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
