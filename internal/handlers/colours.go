package handlers

import "net/http"

func (h *Handler) ListColours(w http.ResponseWriter, r *http.Request) {
	colours, err := h.colours.List(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, colours)
}

func (h *Handler) GetColour(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "colourID")
	if !ok {
		return
	}
	colour, err := h.colours.Get(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, colour)
}
