package handlers

import (
	"context"
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/validator"
	"fintrack/internal/websocket"
)

type categoryRequest struct {
	Name        models.Opaque `json:"name"`
	Description models.Opaque `json:"description"`
	ColourID    int64         `json:"colour_id"`
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categories, err := h.categories.List(r.Context(), user)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	category, err := h.categories.Get(r.Context(), user, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.categories.Create(r.Context(), user, req.Name, req.Description, req.ColourID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "category", Action: "created", ID: id})
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.categories.Update(r.Context(), user, models.Category{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ColourID:    req.ColourID,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "category", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) UpdateCategoryName(w http.ResponseWriter, r *http.Request) {
	h.patchCategory(w, r, true, h.categories.UpdateName)
}

func (h *Handler) UpdateCategoryDescription(w http.ResponseWriter, r *http.Request) {
	h.patchCategory(w, r, false, h.categories.UpdateDescription)
}

func (h *Handler) UpdateCategoryColour(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req colourPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.categories.UpdateColour(r.Context(), user, id, req.ColourID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "category", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	if err := h.categories.Delete(r.Context(), user, id); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "category", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

// required marks fields that may not be patched to an empty payload (a
// category must keep a name; its description may be cleared).
func (h *Handler) patchCategory(w http.ResponseWriter, r *http.Request, required bool, update func(ctx context.Context, principal models.User, id int64, value models.Opaque) error) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req opaquePatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if required {
		if err := validator.ValidatePayload(req.Value); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := update(r.Context(), user, id, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "category", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}
