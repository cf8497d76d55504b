package worker

// audit_worker.go
// Processes audit jobs from QueueAudit: persists one immutable audit row per
// event. Persistence failures are returned so the pool can DLQ the payload.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/model"
	"github.com/SonorousGuardian/military-asset-managment-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type AuditWorker struct {
	audits repository.AuditLogRepository
}

func NewAuditWorker(audits repository.AuditLogRepository) *AuditWorker {
	return &AuditWorker{audits: audits}
}

func (w *AuditWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload AuditJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		// Malformed payloads can never succeed; drop instead of DLQ-looping.
		log.Error().Err(err).Msg("audit_worker: invalid payload — dropped")
		return nil
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		log.Error().Str("user_id", payload.UserID).Msg("audit_worker: invalid user id — dropped")
		return nil
	}

	entry := &model.AuditLog{
		UserID:     userID,
		Action:     payload.Action,
		EntityType: payload.EntityType,
		OldValues:  payload.OldValues,
		NewValues:  payload.NewValues,
		IPAddress:  payload.IPAddress,
	}
	if entityID, err := uuid.Parse(payload.EntityID); err == nil {
		entry.EntityID = &entityID
	}

	if err := w.audits.Create(ctx, entry); err != nil {
		return fmt.Errorf("audit_worker: persist entry: %w", err)
	}
	log.Debug().
		Str("action", payload.Action).
		Str("entity_type", payload.EntityType).
		Str("entity_id", payload.EntityID).
		Msg("audit_worker: entry persisted")
	return nil
}
