package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"fintrack/internal/auth"
	"fintrack/internal/models"
	"fintrack/internal/validator"
	"fintrack/internal/websocket"
)

type registerRequest struct {
	Username  string        `json:"username"`
	Password  models.Opaque `json:"password"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
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
	var userID int64
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		id, err := h.users.Create(r.Context(), tx, models.User{
			Username:  req.Username,
			Password:  req.Password,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			return err
		}
		userID = id
		data, _ := json.Marshal(map[string]string{
			"ip":         r.RemoteAddr,
			"user_agent": r.UserAgent(),
		})
		return h.audit.Log(r.Context(), tx, id, "register", "user", id, string(data))
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int64{"id": userID})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// WSTicket mints a short-lived token so a browser client can open the
// change-notification websocket, where basic credentials cannot travel.
func (h *Handler) WSTicket(w http.ResponseWriter, r *http.Request) {
	user, ok := principal(w, r)
	if !ok {
		return
	}
	ticket, err := auth.GenerateTicket(h.cfg.TicketSecret, user.ID, h.cfg.TicketTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate ticket")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"ticket": ticket})
}

func (h *Handler) WSChanges(w http.ResponseWriter, r *http.Request) {
	ticket := r.URL.Query().Get("ticket")
	if ticket == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			ticket = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if ticket == "" {
		respondError(w, http.StatusUnauthorized, "missing ticket")
		return
	}
	userID, err := auth.ParseTicket(h.cfg.TicketSecret, ticket)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "invalid ticket")
		return
	}
	websocket.ServeWS(w, r, h.hub, userID)
}
