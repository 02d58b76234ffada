package store

import (
	"context"

	"github.com/google/uuid"

	"fintrack/internal/models"
)

type AuditStore struct {
	db DB
}

func NewAuditStore(db DB) *AuditStore {
	return &AuditStore{db: db}
}

func (s *AuditStore) Log(ctx context.Context, tx Execer, actorID int64, action, entityType string, entityID int64, data string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO audit_logs (id, actor_user_id, action, entity_type, entity_id, data)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), actorID, action, entityType, entityID, data)
	return err
}

// ListByActor returns a user's own audit trail, newest first.
func (s *AuditStore) ListByActor(ctx context.Context, actorID int64, limit, offset int) ([]models.AuditLog, error) {
	rows := []models.AuditLog{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, actor_user_id, action, entity_type, entity_id, data, created_at
		FROM audit_logs
		WHERE actor_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
