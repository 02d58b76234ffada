package handlers

import (
	"context"
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/store"
	"fintrack/internal/validator"
	"fintrack/internal/websocket"
)

type entryCreateRequest struct {
	Name          models.Opaque `json:"name"`
	Description   models.Opaque `json:"description"`
	Amount        models.Opaque `json:"amount"`
	CreatedAt     models.Opaque `json:"created_at"`
	TimeOfExpense models.Opaque `json:"time_of_expense"`
	Attachment    models.Opaque `json:"attachment"`
}

type entryUpdateRequest struct {
	Name          models.Opaque `json:"name"`
	Description   models.Opaque `json:"description"`
	Amount        models.Opaque `json:"amount"`
	TimeOfExpense models.Opaque `json:"time_of_expense"`
	Attachment    models.Opaque `json:"attachment"`
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	subcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	entries, err := h.entries.List(r.Context(), user, subcategoryID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	subcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	entry, err := h.entries.Get(r.Context(), user, id, subcategoryID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	subcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	var req entryCreateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePayload(req.Amount); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.entries.Create(r.Context(), user, subcategoryID, store.EntryInput{
		Name:          req.Name,
		Description:   req.Description,
		Amount:        req.Amount,
		CreatedAt:     req.CreatedAt,
		TimeOfExpense: req.TimeOfExpense,
		Attachment:    req.Attachment,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry", Action: "created", ID: id})
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	subcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	var req entryUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidatePayload(req.Amount); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.entries.Update(r.Context(), user, models.Entry{
		ID:            id,
		SubcategoryID: subcategoryID,
		Name:          req.Name,
		Description:   req.Description,
		Amount:        req.Amount,
		TimeOfExpense: req.TimeOfExpense,
		Attachment:    req.Attachment,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) UpdateEntryName(w http.ResponseWriter, r *http.Request) {
	h.patchEntry(w, r, true, h.entries.UpdateName)
}

func (h *Handler) UpdateEntryDescription(w http.ResponseWriter, r *http.Request) {
	h.patchEntry(w, r, false, h.entries.UpdateDescription)
}

func (h *Handler) UpdateEntryAmount(w http.ResponseWriter, r *http.Request) {
	h.patchEntry(w, r, true, h.entries.UpdateAmount)
}

func (h *Handler) UpdateEntryTimeOfExpense(w http.ResponseWriter, r *http.Request) {
	h.patchEntry(w, r, false, h.entries.UpdateTimeOfExpense)
}

func (h *Handler) UpdateEntryAttachment(w http.ResponseWriter, r *http.Request) {
	h.patchEntry(w, r, false, h.entries.UpdateAttachment)
}

func (h *Handler) MoveEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	fromSubcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	var req movePatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.SubcategoryID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid subcategory_id")
		return
	}
	if err := h.entries.Move(r.Context(), user, id, fromSubcategoryID, req.SubcategoryID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry", Action: "moved", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	subcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	if err := h.entries.Delete(r.Context(), user, id, subcategoryID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) patchEntry(w http.ResponseWriter, r *http.Request, required bool, update func(ctx context.Context, principal models.User, id, subcategoryID int64, value models.Opaque) error) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	subcategoryID, ok := pathID(w, r, "subcategoryID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "entryID")
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
	if err := update(r.Context(), user, id, subcategoryID, req.Value); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) ListEntryLabels(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	entryID, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	labels, err := h.entryLabels.LabelsForEntry(r.Context(), user, entryID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, labels)
}

func (h *Handler) LinkEntryLabel(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	entryID, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	labelID, ok := pathID(w, r, "labelID")
	if !ok {
		return
	}
	id, err := h.entryLabels.Link(r.Context(), user, entryID, labelID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry_label", Action: "created", ID: id})
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) UnlinkEntryLabel(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	entryID, ok := pathID(w, r, "entryID")
	if !ok {
		return
	}
	labelID, ok := pathID(w, r, "labelID")
	if !ok {
		return
	}
	if err := h.entryLabels.Unlink(r.Context(), user, entryID, labelID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "entry_label", Action: "deleted", ID: entryID})
	w.WriteHeader(http.StatusNoContent)
}
