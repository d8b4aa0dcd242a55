package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Single registration per test binary; promauto registers globally.
var testMetrics = metrics.NewMetrics("test")

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetFlightSchedules(ctx context.Context, from, to time.Time) ([]entity.FlightSchedule, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.FlightSchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetBookedPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Passenger), args.Error(1)
}

type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) LookupStatus(ctx context.Context, flightNumber string, date time.Time) (*entity.FlightInstance, error) {
	args := m.Called(ctx, flightNumber, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FlightInstance), args.Error(1)
}

func delayedInstance(variation string) *entity.FlightInstance {
	return &entity.FlightInstance{
		Departure: entity.ScheduledLeg{
			Airport:  entity.CodePair{Iata: "BAH"},
			Terminal: "T1",
		},
		Arrival: entity.ScheduledLeg{
			Airport:  entity.CodePair{Iata: "LHR"},
			Terminal: "Terminal 4",
			Date:     entity.LocalUTC{Local: "2024-01-01"},
			Time:     entity.LocalUTC{Local: "2024-01-01T18:30:00"},
		},
		StatusDetails: []entity.StatusDetail{
			{
				State: "Scheduled",
				Departure: &entity.DepartureStatus{
					EstimatedTime: &entity.GateTimes{
						OutGateTimeliness: "Delayed",
						OutGateVariation:  variation,
						OutGate:           &entity.LocalUTC{Local: "2024-01-01T12:25:00"},
					},
					Gate: "B12",
				},
				Arrival: &entity.ArrivalStatus{
					EstimatedTime: &entity.GateTimes{
						InGate: &entity.LocalUTC{Local: "2024-01-01T18:55:00"},
					},
					ActualTerminal: "5",
					Baggage:        "7",
				},
			},
		},
	}
}

func TestEnrichFlights_DelayedAndDegraded(t *testing.T) {
	scheduleRepo := &MockScheduleRepository{}
	statusRepo := &MockStatusRepository{}
	enricher := NewFlightEnricher(scheduleRepo, statusRepo, testMetrics, logger.NewNopLogger())

	ctx := context.Background()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []entity.FlightSchedule{
		// Deliberately out of order: the result must be sorted.
		{AirlineCode: "GF", FlightNumber: "0002", DepartureCity: "BAHRAIN", ArrivalCity: "DUBAI", ScheduledDeparture: day, ScheduledDepartureTime: "15:30:00"},
		{AirlineCode: "GF", FlightNumber: "0001", DepartureCity: "BAHRAIN", ArrivalCity: "LONDON", ScheduledDeparture: day, ScheduledDepartureTime: "12:00:00"},
	}

	scheduleRepo.On("GetFlightSchedules", ctx, day, day).Return(rows, nil).Once()
	statusRepo.On("LookupStatus", mock.Anything, "0001", day).Return(delayedInstance("00:25"), nil).Once()
	// Provider failure already degraded to nil inside the repository.
	statusRepo.On("LookupStatus", mock.Anything, "0002", day).Return(nil, nil).Once()

	result, err := enricher.EnrichFlights(ctx, day, day)

	require.NoError(t, err)
	require.Len(t, result, 2)

	first, second := result[0], result[1]
	assert.Equal(t, "0001", first.FlightNumber)
	assert.Equal(t, "GF 0001", first.Flight)
	assert.True(t, first.Delayed)
	assert.Equal(t, "Delayed 00:25", first.StatusWithTime)
	assert.Equal(t, "12:00", first.Departure.ScheduledTime)
	assert.Equal(t, "01/01/2024", first.Departure.ScheduledDate)
	assert.Equal(t, "12:25", first.Departure.EstimatedTime)
	assert.Equal(t, "BAH", first.Departure.Airport)
	require.NotNil(t, first.Departure.Terminal)
	assert.Equal(t, 1, *first.Departure.Terminal)
	// Live arrival terminal wins over the scheduled one.
	require.NotNil(t, first.Arrival.Terminal)
	assert.Equal(t, 5, *first.Arrival.Terminal)
	assert.Equal(t, "18:55", first.Arrival.EstimatedTime)
	assert.Equal(t, "7", first.Arrival.Baggage)

	assert.Equal(t, "0002", second.FlightNumber)
	assert.Equal(t, "Scheduled", second.Status)
	assert.False(t, second.Delayed)
	assert.Equal(t, "Scheduled", second.StatusWithTime)
	assert.Equal(t, "15:30", second.Departure.ScheduledTime)
	assert.Empty(t, second.Departure.Airport)
	assert.Nil(t, second.Departure.Terminal)

	// One snapshot instant for the whole batch.
	assert.Equal(t, first.CurrentDateTime, second.CurrentDateTime)
	assert.NotEmpty(t, first.CurrentTime)
	assert.NotEmpty(t, first.CurrentDate)

	scheduleRepo.AssertExpectations(t)
	statusRepo.AssertExpectations(t)
}

func TestEnrichFlights_SortsByDateThenFlightNumber(t *testing.T) {
	scheduleRepo := &MockScheduleRepository{}
	statusRepo := &MockStatusRepository{}
	enricher := NewFlightEnricher(scheduleRepo, statusRepo, testMetrics, logger.NewNopLogger())

	ctx := context.Background()
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	rows := []entity.FlightSchedule{
		{AirlineCode: "GF", FlightNumber: "0500", ScheduledDeparture: day2},
		{AirlineCode: "GF", FlightNumber: "0002", ScheduledDeparture: day1},
		{AirlineCode: "GF", FlightNumber: "0010", ScheduledDeparture: day2},
		{AirlineCode: "GF", FlightNumber: "0100", ScheduledDeparture: day1},
	}

	scheduleRepo.On("GetFlightSchedules", ctx, day1, day2).Return(rows, nil).Once()
	statusRepo.On("LookupStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	result, err := enricher.EnrichFlights(ctx, day1, day2)

	require.NoError(t, err)
	require.Len(t, result, 4)
	assert.Equal(t, "0002", result[0].FlightNumber)
	assert.Equal(t, "0100", result[1].FlightNumber)
	assert.Equal(t, "0010", result[2].FlightNumber)
	assert.Equal(t, "0500", result[3].FlightNumber)
}

func TestEnrichFlights_ScheduleQueryFailureIsFatal(t *testing.T) {
	scheduleRepo := &MockScheduleRepository{}
	statusRepo := &MockStatusRepository{}
	enricher := NewFlightEnricher(scheduleRepo, statusRepo, testMetrics, logger.NewNopLogger())

	ctx := context.Background()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	scheduleRepo.On("GetFlightSchedules", ctx, day, day).Return(nil, errors.New("connection refused")).Once()

	_, err := enricher.EnrichFlights(ctx, day, day)

	assert.Error(t, err)
	statusRepo.AssertNotCalled(t, "LookupStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnrichFlights_CancellationAbortsBatch(t *testing.T) {
	scheduleRepo := &MockScheduleRepository{}
	statusRepo := &MockStatusRepository{}
	enricher := NewFlightEnricher(scheduleRepo, statusRepo, testMetrics, logger.NewNopLogger())

	ctx := context.Background()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := []entity.FlightSchedule{
		{AirlineCode: "GF", FlightNumber: "0001", ScheduledDeparture: day},
	}

	scheduleRepo.On("GetFlightSchedules", ctx, day, day).Return(rows, nil).Once()
	statusRepo.On("LookupStatus", mock.Anything, "0001", day).Return(nil, context.Canceled).Once()

	_, err := enricher.EnrichFlights(ctx, day, day)

	assert.ErrorIs(t, err, context.Canceled)
}
