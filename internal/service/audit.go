package service

import (
	"context"
	"encoding/json"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Audit actions.
const (
	ActionCreate            = "CREATE"
	ActionUpdate            = "UPDATE"
	ActionDelete            = "DELETE"
	ActionPurchase          = "PURCHASE"
	ActionTransferInit      = "TRANSFER_INIT"
	ActionTransferCompleted = "TRANSFER_COMPLETED"
	ActionTransferCancelled = "TRANSFER_CANCELLED"
	ActionAssetAssigned     = "ASSET_ASSIGNED"
	ActionAssetExpended     = "ASSET_EXPENDED"
)

// AuditEvent describes one successful mutation for the audit trail.
type AuditEvent struct {
	Actor      Actor
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValues  interface{}
	NewValues  interface{}
}

// AuditRecorder is the injected best-effort audit sink. Record never returns
// an error: audit failures are logged and swallowed so they cannot affect the
// ledger mutation they describe.
type AuditRecorder interface {
	Record(ctx context.Context, ev AuditEvent)
}

// queueAuditRecorder enqueues events to the Redis audit queue; the audit
// worker persists them.
type queueAuditRecorder struct {
	dispatcher *worker.Dispatcher
}

func NewQueueAuditRecorder(dispatcher *worker.Dispatcher) AuditRecorder {
	return &queueAuditRecorder{dispatcher: dispatcher}
}

func (r *queueAuditRecorder) Record(ctx context.Context, ev AuditEvent) {
	payload := worker.AuditJobPayload{
		UserID:     ev.Actor.ID.String(),
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID.String(),
		IPAddress:  ClientIP(ctx),
	}
	if ev.OldValues != nil {
		if data, err := json.Marshal(ev.OldValues); err == nil {
			payload.OldValues = data
		}
	}
	if ev.NewValues != nil {
		if data, err := json.Marshal(ev.NewValues); err == nil {
			payload.NewValues = data
		}
	}
	if err := r.dispatcher.EnqueueAudit(ctx, payload); err != nil {
		log.Warn().Err(err).
			Str("action", ev.Action).
			Str("entity_type", ev.EntityType).
			Str("entity_id", ev.EntityID.String()).
			Msg("audit enqueue failed — event dropped")
	}
}

// ── Client IP propagation ─────────────────────────────────────────────────────
// Handlers stash the request's client IP in the context so audit events keep
// it without threading an extra parameter through every service call.

type clientIPKey struct{}

func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}
