package repository

import (
	"context"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
)

// StatusRepository looks up a flight's live status from the third-party
// provider. Implementations return (nil, nil) both when the provider has
// no data and when it fails; a non-nil error is reserved for cancellation
// of the caller's context. Callers never special-case provider failures.
type StatusRepository interface {
	LookupStatus(ctx context.Context, flightNumber string, date time.Time) (*entity.FlightInstance, error)
}
