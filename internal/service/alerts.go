package service

import (
	"context"

	"github.com/SonorousGuardian/military-asset-managment-system/internal/worker"

	"github.com/rs/zerolog/log"
)

// LowStockAlert is emitted when a debit drops a balance to or below the
// equipment type's threshold.
type LowStockAlert struct {
	BaseName      string
	EquipmentName string
	Unit          string
	Remaining     int
	Threshold     int
}

// AlertNotifier delivers low-stock alerts. Best-effort, same contract as the
// audit sink: failures never affect the ledger mutation.
type AlertNotifier interface {
	LowStock(ctx context.Context, alert LowStockAlert)
}

type queueAlertNotifier struct {
	dispatcher *worker.Dispatcher
}

func NewQueueAlertNotifier(dispatcher *worker.Dispatcher) AlertNotifier {
	return &queueAlertNotifier{dispatcher: dispatcher}
}

func (n *queueAlertNotifier) LowStock(ctx context.Context, alert LowStockAlert) {
	payload := worker.LowStockJobPayload{
		BaseName:      alert.BaseName,
		EquipmentName: alert.EquipmentName,
		Unit:          alert.Unit,
		Remaining:     alert.Remaining,
		Threshold:     alert.Threshold,
	}
	if err := n.dispatcher.EnqueueLowStock(ctx, payload); err != nil {
		log.Warn().Err(err).
			Str("base", alert.BaseName).
			Str("equipment", alert.EquipmentName).
			Msg("low-stock alert enqueue failed — alert dropped")
	}
}
