package worker

// alert_worker.go
// Processes low-stock alerts from QueueAlert: sends a notification email to
// the configured logistics address.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/infra"

	"github.com/rs/zerolog/log"
)

type AlertWorker struct {
	mailer  *infra.Mailer
	toEmail string
}

func NewAlertWorker(mailer *infra.Mailer, toEmail string) *AlertWorker {
	return &AlertWorker{mailer: mailer, toEmail: toEmail}
}

func (w *AlertWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload LowStockJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alert_worker: invalid payload — dropped")
		return nil
	}
	if w.toEmail == "" {
		log.Warn().Msg("alert_worker: no alert email configured — skipping")
		return nil
	}

	subject := fmt.Sprintf("Low stock: %s at %s", payload.EquipmentName, payload.BaseName)
	body := fmt.Sprintf(
		"Inventory of %s at %s has dropped to %d %s (threshold %d).\n\nReview pending transfers and purchases.",
		payload.EquipmentName, payload.BaseName, payload.Remaining, payload.Unit, payload.Threshold,
	)
	if err := w.mailer.Send(w.toEmail, subject, body); err != nil {
		return fmt.Errorf("alert_worker: send email: %w", err)
	}
	log.Info().
		Str("base", payload.BaseName).
		Str("equipment", payload.EquipmentName).
		Int("remaining", payload.Remaining).
		Msg("alert_worker: low-stock alert sent")
	return nil
}
