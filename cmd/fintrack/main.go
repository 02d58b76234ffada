package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/db"
	"fintrack/internal/handlers"
	"fintrack/internal/store"
	"fintrack/internal/websocket"
)

func main() {
	cfg := config.Load()
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer database.Close()

	guard := store.NewCredentialGuard(database)
	idCache := store.NewIDCache()
	users := store.NewUserStore(database, guard, idCache)
	colours := store.NewColourStore(database)
	categories := store.NewCategoryStore(database, guard)
	subcategories := store.NewSubcategoryStore(database, guard)
	labels := store.NewLabelStore(database, guard)
	entries := store.NewEntryStore(database, guard)
	entryLabels := store.NewEntryLabelStore(database, guard)
	audit := store.NewAuditStore(database)
	txRunner := db.NewTxRunner(database)
	hub := websocket.NewHub()

	handler := handlers.New(cfg, txRunner, users, colours, categories, subcategories, labels, entries, entryLabels, audit, hub)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("fintrack API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
