package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/normalize"

	"gorm.io/gorm"
)

// GormScheduleRepository implements the ScheduleRepository interface over
// the reservation (CDD) passenger-details view.
type GormScheduleRepository struct {
	db          *gorm.DB
	carrierCode string
	logger      logger.Logger
}

// NewGormScheduleRepository creates a new GORM schedule repository
func NewGormScheduleRepository(db *gorm.DB, carrierCode string, logger logger.Logger) repository.ScheduleRepository {
	return &GormScheduleRepository{
		db:          db,
		carrierCode: carrierCode,
		logger:      logger,
	}
}

type scheduleRow struct {
	AirlineCode      string    `gorm:"column:airline_code"`
	FlightNumber     string    `gorm:"column:flight_number"`
	DepartureCity    string    `gorm:"column:service_start_city"`
	ArrivalCity      string    `gorm:"column:service_end_city"`
	ServiceStartDate time.Time `gorm:"column:service_start_date"`
	ServiceStartTime string    `gorm:"column:service_start_time"`
}

type bookedRow struct {
	Pnr              string    `gorm:"column:pnr_locator"`
	PassengerName    string    `gorm:"column:passenger_name"`
	PhoneNumber      string    `gorm:"column:phone_number"`
	FlightNumber     string    `gorm:"column:flight_number"`
	ServiceStartDate time.Time `gorm:"column:service_start_date"`
}

// GetFlightSchedules returns distinct schedule rows for the airline's own
// flights in the inclusive date range.
func (r *GormScheduleRepository) GetFlightSchedules(ctx context.Context, from, to time.Time) ([]entity.FlightSchedule, error) {
	var rows []scheduleRow
	err := r.db.WithContext(ctx).
		Table("vw_pax_details").
		Distinct(
			"TRIM(airline_code) AS airline_code",
			"TRIM(flight_number) AS flight_number",
			"TRIM(service_start_city) AS service_start_city",
			"TRIM(service_end_city) AS service_end_city",
			"service_start_date",
			"service_start_time",
		).
		Where("service_start_date::date BETWEEN ?::date AND ?::date", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Where("TRIM(airline_code) = ?", r.carrierCode).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query flight schedules: %w", err)
	}
	r.logger.Debug("Schedule rows fetched",
		"count", len(rows),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))

	schedules := make([]entity.FlightSchedule, 0, len(rows))
	for _, row := range rows {
		schedules = append(schedules, entity.FlightSchedule{
			AirlineCode:            row.AirlineCode,
			FlightNumber:           row.FlightNumber,
			DepartureCity:          row.DepartureCity,
			ArrivalCity:            row.ArrivalCity,
			ScheduledDeparture:     row.ServiceStartDate,
			ScheduledDepartureTime: row.ServiceStartTime,
		})
	}
	return schedules, nil
}

// GetBookedPassengers returns booked/confirmed passengers with a phone
// number who have not checked in yet, ordered by name.
func (r *GormScheduleRepository) GetBookedPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error) {
	var rows []bookedRow
	err := r.db.WithContext(ctx).
		Table("vw_pax_details").
		Select(
			"TRIM(pnr_locator) AS pnr_locator",
			"TRIM(passenger_name) AS passenger_name",
			"phone_number",
			"TRIM(flight_number) AS flight_number",
			"service_start_date",
		).
		Where("TRIM(flight_number) = ?", strings.TrimSpace(flightNumber)).
		Where("service_start_date::date = ?::date", date.Format("2006-01-02")).
		Where("passenger_status IS NULL OR UPPER(passenger_status) IN ('BOOKED','CONFIRMED')").
		Where("phone_number IS NOT NULL").
		Where("coupon_status NOT IN ('CKIN')").
		Order("passenger_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query booked passengers: %w", err)
	}
	r.logger.Debug("Booked passenger rows fetched", "flightNumber", flightNumber, "count", len(rows))

	passengers := make([]entity.Passenger, 0, len(rows))
	for _, row := range rows {
		// CDD stores "SURNAME GIVEN [MIDDLE]".
		given, surname := normalize.SplitNameSurnameFirst(row.PassengerName)
		passengers = append(passengers, entity.Passenger{
			Pnr:          row.Pnr,
			GivenName:    given,
			Surname:      surname,
			SeatOrPhone:  scrubPhone(row.PhoneNumber),
			FlightNumber: row.FlightNumber,
			FlightDate:   row.ServiceStartDate.Format("2006-01-02"),
		})
	}
	return passengers, nil
}

// scrubPhone drops the contact-type suffixes CDD appends to phone numbers.
func scrubPhone(phone string) string {
	phone = strings.ReplaceAll(phone, "-M", "")
	return strings.ReplaceAll(phone, "-H-1.1", "")
}
