package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/normalize"

	"gorm.io/gorm"
)

// GormDepartureControlRepository implements the DepartureControlRepository
// interface over the airport departure-control view.
type GormDepartureControlRepository struct {
	db          *gorm.DB
	carrierCode string
	logger      logger.Logger
}

// NewGormDepartureControlRepository creates a new GORM departure-control repository
func NewGormDepartureControlRepository(db *gorm.DB, carrierCode string, logger logger.Logger) repository.DepartureControlRepository {
	return &GormDepartureControlRepository{
		db:          db,
		carrierCode: carrierCode,
		logger:      logger,
	}
}

type departureControlRow struct {
	Pnr     string `gorm:"column:pnr"`
	PaxName string `gorm:"column:pax_name"`
	Seat    string `gorm:"column:seat_no"`
}

// GetCheckedInPassengers returns passengers checked in but not yet boarded.
func (r *GormDepartureControlRepository) GetCheckedInPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error) {
	rows, err := r.queryPassengers(ctx, flightNumber, date, func(tx *gorm.DB) *gorm.DB {
		return tx.
			Where("UPPER(TRIM(status)) IN ('CKIN')").
			Where("boarded = 'FALSE'")
	})
	if err != nil {
		return nil, fmt.Errorf("query checked-in passengers: %w", err)
	}
	return rows, nil
}

// GetBoardedPassengers returns passengers flagged as boarded.
func (r *GormDepartureControlRepository) GetBoardedPassengers(ctx context.Context, flightNumber string, date time.Time) ([]entity.Passenger, error) {
	rows, err := r.queryPassengers(ctx, flightNumber, date, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("UPPER(TRIM(boarded)) = 'TRUE'")
	})
	if err != nil {
		return nil, fmt.Errorf("query boarded passengers: %w", err)
	}
	return rows, nil
}

func (r *GormDepartureControlRepository) queryPassengers(ctx context.Context, flightNumber string, date time.Time, filter func(*gorm.DB) *gorm.DB) ([]entity.Passenger, error) {
	// The view keys flights by the 4-digit padded number ("277" -> "0277").
	padded := normalize.FlightNumber(flightNumber)

	tx := r.db.WithContext(ctx).
		Table("v_pax_all_details").
		Select(
			"TRIM(pnr) AS pnr",
			"TRIM(pax_name) AS pax_name",
			"TRIM(seat_no) AS seat_no",
		).
		Where("TRIM(aln_cd) = ?", r.carrierCode).
		Where("TRIM(flt_nr) = ?", padded).
		Where("COALESCE(pub_dep_dt, sch_dep_dt)::date = ?::date", date.Format("2006-01-02"))

	var rows []departureControlRow
	if err := filter(tx).Order("pax_name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	r.logger.Debug("Departure-control rows fetched", "flightNumber", padded, "count", len(rows))

	passengers := make([]entity.Passenger, 0, len(rows))
	for _, row := range rows {
		// The airport source stores "GIVEN [MIDDLE] SURNAME".
		given, surname := normalize.SplitNameSurnameLast(row.PaxName)
		passengers = append(passengers, entity.Passenger{
			Pnr:         row.Pnr,
			GivenName:   given,
			Surname:     surname,
			SeatOrPhone: row.Seat,
		})
	}
	return passengers, nil
}
