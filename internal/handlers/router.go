package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/middleware"
	"fintrack/internal/websocket"
)

type Handler struct {
	cfg           config.Config
	txRunner      db.TxRunner
	users         UserStore
	colours       ColourStore
	categories    CategoryStore
	subcategories SubcategoryStore
	labels        LabelStore
	entries       EntryStore
	entryLabels   EntryLabelStore
	audit         AuditStore
	hub           *websocket.Hub
}

func New(cfg config.Config, txRunner db.TxRunner, users UserStore, colours ColourStore, categories CategoryStore, subcategories SubcategoryStore, labels LabelStore, entries EntryStore, entryLabels EntryLabelStore, audit AuditStore, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:           cfg,
		txRunner:      txRunner,
		users:         users,
		colours:       colours,
		categories:    categories,
		subcategories: subcategories,
		labels:        labels,
		entries:       entries,
		entryLabels:   entryLabels,
		audit:         audit,
		hub:           hub,
	}
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Post("/auth/register", h.Register)
	router.Get("/ws/changes", h.WSChanges)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.BasicAuth(h.users))

		r.Get("/auth/me", h.Me)
		r.Post("/auth/ws-ticket", h.WSTicket)

		r.Get("/colours", h.ListColours)
		r.Get("/colours/{colourID}", h.GetColour)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Route("/{categoryID}", func(r chi.Router) {
				r.Get("/", h.GetCategory)
				r.Put("/", h.UpdateCategory)
				r.Delete("/", h.DeleteCategory)
				r.Put("/name", h.UpdateCategoryName)
				r.Put("/description", h.UpdateCategoryDescription)
				r.Put("/colour", h.UpdateCategoryColour)

				r.Route("/subcategories", func(r chi.Router) {
					r.Get("/", h.ListSubcategories)
					r.Post("/", h.CreateSubcategory)
					r.Route("/{subcategoryID}", func(r chi.Router) {
						r.Get("/", h.GetSubcategory)
						r.Put("/", h.UpdateSubcategory)
						r.Delete("/", h.DeleteSubcategory)
						r.Put("/name", h.UpdateSubcategoryName)
						r.Put("/description", h.UpdateSubcategoryDescription)
						r.Put("/colour", h.UpdateSubcategoryColour)
						r.Put("/category", h.MoveSubcategory)
					})
				})
			})
		})

		r.Route("/subcategories/{subcategoryID}/entries", func(r chi.Router) {
			r.Get("/", h.ListEntries)
			r.Post("/", h.CreateEntry)
			r.Route("/{entryID}", func(r chi.Router) {
				r.Get("/", h.GetEntry)
				r.Put("/", h.UpdateEntry)
				r.Delete("/", h.DeleteEntry)
				r.Put("/name", h.UpdateEntryName)
				r.Put("/description", h.UpdateEntryDescription)
				r.Put("/amount", h.UpdateEntryAmount)
				r.Put("/time-of-expense", h.UpdateEntryTimeOfExpense)
				r.Put("/attachment", h.UpdateEntryAttachment)
				r.Put("/subcategory", h.MoveEntry)
			})
		})

		r.Route("/labels", func(r chi.Router) {
			r.Get("/", h.ListLabels)
			r.Post("/", h.CreateLabel)
			r.Route("/{labelID}", func(r chi.Router) {
				r.Get("/", h.GetLabel)
				r.Put("/", h.UpdateLabel)
				r.Delete("/", h.DeleteLabel)
				r.Put("/name", h.UpdateLabelName)
				r.Put("/description", h.UpdateLabelDescription)
				r.Put("/colour", h.UpdateLabelColour)
			})
		})

		r.Get("/entries/{entryID}/labels", h.ListEntryLabels)
		r.Put("/entries/{entryID}/labels/{labelID}", h.LinkEntryLabel)
		r.Delete("/entries/{entryID}/labels/{labelID}", h.UnlinkEntryLabel)

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", h.Me)
			r.Put("/", h.UpdateUser)
			r.Delete("/", h.DeleteUser)
			r.Put("/username", h.UpdateUsername)
			r.Put("/password", h.UpdatePassword)
			r.Put("/email", h.UpdateEmail)
			r.Put("/first-name", h.UpdateFirstName)
			r.Put("/last-name", h.UpdateLastName)
			r.Get("/audit", h.ListAudit)
		})
	})

	return router
}
