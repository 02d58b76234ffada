package handlers

import (
	"context"
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/validator"
	"fintrack/internal/websocket"
)

type labelRequest struct {
	Name        models.Opaque `json:"name"`
	Description models.Opaque `json:"description"`
	ColourID    int64         `json:"colour_id"`
}

func (h *Handler) ListLabels(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	labels, err := h.labels.List(r.Context(), user)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, labels)
}

func (h *Handler) GetLabel(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "labelID")
	if !ok {
		return
	}
	label, err := h.labels.Get(r.Context(), user, id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, label)
}

func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	var req labelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := h.labels.Create(r.Context(), user, req.Name, req.Description, req.ColourID)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "label", Action: "created", ID: id})
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) UpdateLabel(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "labelID")
	if !ok {
		return
	}
	var req labelRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.ValidatePayload(req.Name); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	err := h.labels.Update(r.Context(), user, models.Label{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		ColourID:    req.ColourID,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "label", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) UpdateLabelName(w http.ResponseWriter, r *http.Request) {
	h.patchLabel(w, r, true, h.labels.UpdateName)
}

func (h *Handler) UpdateLabelDescription(w http.ResponseWriter, r *http.Request) {
	h.patchLabel(w, r, false, h.labels.UpdateDescription)
}

func (h *Handler) UpdateLabelColour(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "labelID")
	if !ok {
		return
	}
	var req colourPatch
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.labels.UpdateColour(r.Context(), user, id, req.ColourID); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "label", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}

func (h *Handler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "labelID")
	if !ok {
		return
	}
	if err := h.labels.Delete(r.Context(), user, id); err != nil {
		respondStoreError(w, err)
		return
	}
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "label", Action: "deleted", ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) patchLabel(w http.ResponseWriter, r *http.Request, required bool, update func(ctx context.Context, principal models.User, id int64, value models.Opaque) error) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "labelID")
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
	h.hub.BroadcastChange(user.ID, websocket.ChangeEvent{Entity: "label", Action: "updated", ID: id})
	respondJSON(w, http.StatusOK, map[string]int64{"id": id})
}
