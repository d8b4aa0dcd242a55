package repository

import (
	"context"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
)

// DepartureControlRepository reads the airport departure-control view,
// which keys flights by the 4-digit padded flight number.
type DepartureControlRepository interface {
	// GetCheckedInPassengers returns passengers checked in but not boarded.
	GetCheckedInPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error)
	// GetBoardedPassengers returns passengers flagged as boarded.
	GetBoardedPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error)
}
