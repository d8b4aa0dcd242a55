package repository

import (
	"context"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
)

// CheckinRelayRepository submits a batch of online check-in reminders to
// the relay service. Called only from the background dispatcher; failures
// are logged there and never surfaced to a request.
type CheckinRelayRepository interface {
	SendReminderBatch(ctx context.Context, reminders []entity.CheckinReminder) error
}
