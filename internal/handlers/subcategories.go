package handlers

import (
	"context"
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/validator"
	"fintrack/internal/websocket"
)

type subcategoryRequest struct {
	Name        models.Opaque `json:"name"`
	Description models.Opaque `json:"description"`
	ColourID    int64         `json:"colour_id"`
}

type movePatch struct {
	CategoryID    int64 `json:"category_id,omitempty"`
	SubcategoryID int64 `json:"subcategory_id,omitempty"`
}

func (h *Handler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	subcategories, err := h.subcategories.List(r.Context(), user, categoryID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, subcategories)
}

func (h *Handler) GetSubcategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	subcategory, err := h.subcategories.Get(r.Context(), user, id, categoryID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, subcategory)
}

func (h *Handler) CreateSubcategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	var req subcategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.subcategories.Create(r.Context(), user, categoryID, req.Name, req.Description, req.ColourID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "subcategory", Action: "created", ID: id})
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) UpdateSubcategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	var req subcategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.subcategories.Update(r.Context(), user, models.Subcategory{
		ID:          id,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		ColourID:    req.ColourID,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "subcategory", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) UpdateSubcategoryName(w http.ResponseWriter, r *http.Request) {
	h.patchSubcategory(w, r, true, h.subcategories.UpdateName)
}

func (h *Handler) UpdateSubcategoryDescription(w http.ResponseWriter, r *http.Request) {
	h.patchSubcategory(w, r, false, h.subcategories.UpdateDescription)
}

func (h *Handler) UpdateSubcategoryColour(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	var req colourPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.subcategories.UpdateColour(r.Context(), user, id, categoryID, req.ColourID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "subcategory", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) MoveSubcategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	fromCategoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	var req movePatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CategoryID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid category_id")
		return
	}
	if err := h.subcategories.Move(r.Context(), user, id, fromCategoryID, req.CategoryID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "subcategory", Action: "moved", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) DeleteSubcategory(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	if err := h.subcategories.Delete(r.Context(), user, id, categoryID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "subcategory", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) patchSubcategory(w http.ResponseWriter, r *http.Request, required bool, update func(ctx context.Context, principal models.User, id, categoryID int64, value models.Opaque) error) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	categoryID, ok := pathID(w, r, "categoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "subcategoryID")
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
	if err := update(r.Context(), user, id, categoryID, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "subcategory", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}
