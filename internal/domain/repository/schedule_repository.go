package repository

import (
	"context"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
)

// ScheduleRepository reads the reservation (CDD) view. Query failures here
// are fatal to the request that issued them.
type ScheduleRepository interface {
	// GetFlightSchedules returns distinct schedule rows for the airline's
	// own flights in the inclusive [from, to] date range.
	GetFlightSchedules(ctx context.Context, from, to time.Time) ([]entity.FlightSchedule, error)
	// GetBookedPassengers returns booked/confirmed passengers with a phone
	// number who have not checked in yet.
	GetBookedPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error)
}
