package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/metrics"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/normalize"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentLookups caps the status provider fan-out per batch. A wide
// date range can return a lot of rows; without a cap every row would hit
// the provider at once.
const maxConcurrentLookups = 16

// FlightEnricher combines schedule rows with asynchronously fetched
// third-party status into unified flight-status records.
type FlightEnricher struct {
	scheduleRepo repository.ScheduleRepository
	statusRepo   repository.StatusRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewFlightEnricher creates a new flight enricher
func NewFlightEnricher(
	scheduleRepo repository.ScheduleRepository,
	statusRepo repository.StatusRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *FlightEnricher {
	return &FlightEnricher{
		scheduleRepo: scheduleRepo,
		statusRepo:   statusRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// EnrichFlights fetches the schedule batch for [from, to], fans out one
// status lookup per row, and returns one unified record per row ordered by
// (scheduled departure date, flight number). A lookup failure degrades that
// row to unenriched "Scheduled"; only a schedule query failure or caller
// cancellation fails the whole call.
func (e *FlightEnricher) EnrichFlights(ctx context.Context, from, to time.Time) ([]entity.FlightStatus, error) {
	started := time.Now()

	rows, err := e.scheduleRepo.GetFlightSchedules(ctx, from, to)
	if err != nil {
		e.metrics.ErrorsCount.WithLabelValues("enrich_flights").Inc()
		return nil, fmt.Errorf("fetch schedules: %w", err)
	}

	e.logger.Info("Retrieved flight schedules",
		"count", len(rows),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))

	statuses := make([]*entity.FlightInstance, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, row := range rows {
		g.Go(func() error {
			instance, err := e.statusRepo.LookupStatus(gctx, row.FlightNumber, row.ScheduledDeparture)
			if err != nil {
				// Only cancellation reaches here; provider failures are
				// already degraded to nil inside the repository.
				return err
			}
			statuses[i] = instance
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("status fan-out: %w", err)
	}

	enriched := 0
	for _, s := range statuses {
		if s != nil {
			enriched++
		} else {
			e.metrics.StatusLookupMisses.Inc()
		}
	}
	e.logger.Info("Status enrichment completed", "enriched", enriched, "total", len(rows))

	// Deterministic order regardless of lookup completion order.
	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ra, rb := rows[order[a]], rows[order[b]]
		if !ra.ScheduledDeparture.Equal(rb.ScheduledDeparture) {
			return ra.ScheduledDeparture.Before(rb.ScheduledDeparture)
		}
		return ra.FlightNumber < rb.FlightNumber
	})

	// Single snapshot instant shared by every record in the batch.
	now := time.Now().UTC()
	list := make([]entity.FlightStatus, 0, len(rows))
	for _, i := range order {
		list = append(list, buildFlightStatus(rows[i], statuses[i], now))
	}

	e.metrics.FlightsEnriched.Add(float64(len(list)))
	e.metrics.EnrichmentTime.Observe(time.Since(started).Seconds())
	return list, nil
}

// buildFlightStatus merges one schedule row with its (possibly absent)
// provider status into the unified record.
func buildFlightStatus(row entity.FlightSchedule, instance *entity.FlightInstance, now time.Time) entity.FlightStatus {
	status := "Scheduled"
	statusWithTime := "Scheduled"
	delayed := false

	detail := instance.CurrentStatus()
	if detail != nil {
		status = detail.State

		actual, estimated := departureGateTimes(detail)
		if gateTimeliness(actual) == "Delayed" || gateTimeliness(estimated) == "Delayed" {
			delayed = true
			variation := gateVariation(actual)
			if variation == "" {
				variation = gateVariation(estimated)
			}
			statusWithTime = strings.TrimRight("Delayed "+variation, " ")
		} else if status == "InGate" || status == "Arrived" {
			statusWithTime = "Arrived"
		} else if status == "Airborne" || status == "InFlight" {
			statusWithTime = "In Flight"
		} else {
			statusWithTime = status
		}
	}

	return entity.FlightStatus{
		Flight:          strings.TrimSpace(row.AirlineCode + " " + row.FlightNumber),
		FlightNumber:    row.FlightNumber,
		AirlineCode:     row.AirlineCode,
		Departure:       buildDeparturePort(row, instance, detail),
		Arrival:         buildArrivalPort(row, instance, detail),
		Status:          status,
		Delayed:         delayed,
		StatusWithTime:  statusWithTime,
		CurrentTime:     now.Format("15:04"),
		CurrentDate:     now.Format("02/01/2006"),
		CurrentDateTime: now,
	}
}

func buildDeparturePort(row entity.FlightSchedule, instance *entity.FlightInstance, detail *entity.StatusDetail) entity.PortInfo {
	port := entity.PortInfo{
		City:          strings.TrimSpace(row.DepartureCity),
		ScheduledTime: normalize.Time(row.ScheduledDepartureTime),
		ScheduledDate: formatScheduleDate(row.ScheduledDeparture),
	}
	if instance != nil {
		port.Airport = instance.Departure.Airport.Iata
		// The scheduled terminal, not the live update.
		port.Terminal = terminalOf(instance.Departure.Terminal)
	}
	if detail != nil && detail.Departure != nil {
		port.EstimatedTime = normalize.ExtractTime(outGateLocal(detail.Departure.EstimatedTime))
		port.EstimatedDate = normalize.ExtractDate(outGateLocal(detail.Departure.EstimatedTime))
		port.ActualTime = normalize.ExtractTime(outGateLocal(detail.Departure.ActualTime))
		port.ActualDate = normalize.ExtractDate(outGateLocal(detail.Departure.ActualTime))
		port.Gate = detail.Departure.Gate
	}
	return port
}

func buildArrivalPort(row entity.FlightSchedule, instance *entity.FlightInstance, detail *entity.StatusDetail) entity.PortInfo {
	port := entity.PortInfo{
		City: strings.TrimSpace(row.ArrivalCity),
	}
	if instance != nil {
		port.Airport = instance.Arrival.Airport.Iata
		port.ScheduledTime = normalize.ExtractTime(instance.Arrival.Time.Local)
		port.ScheduledDate = normalize.ExtractDate(instance.Arrival.Date.Local)
		port.Terminal = terminalOf(instance.Arrival.Terminal)
	}
	if detail != nil && detail.Arrival != nil {
		// Live terminal wins over the scheduled one when present.
		if t := terminalOf(detail.Arrival.ActualTerminal); t != nil {
			port.Terminal = t
		}
		port.EstimatedTime = normalize.ExtractTime(inGateLocal(detail.Arrival.EstimatedTime))
		port.EstimatedDate = normalize.ExtractDate(inGateLocal(detail.Arrival.EstimatedTime))
		port.ActualTime = normalize.ExtractTime(inGateLocal(detail.Arrival.ActualTime))
		port.ActualDate = normalize.ExtractDate(inGateLocal(detail.Arrival.ActualTime))
		port.Gate = detail.Arrival.Gate
		port.Baggage = detail.Arrival.Baggage
	}
	return port
}

func departureGateTimes(detail *entity.StatusDetail) (actual, estimated *entity.GateTimes) {
	if detail.Departure == nil {
		return nil, nil
	}
	return detail.Departure.ActualTime, detail.Departure.EstimatedTime
}

func gateTimeliness(t *entity.GateTimes) string {
	if t == nil {
		return ""
	}
	return t.OutGateTimeliness
}

func gateVariation(t *entity.GateTimes) string {
	if t == nil {
		return ""
	}
	return t.OutGateVariation
}

func outGateLocal(t *entity.GateTimes) string {
	if t == nil || t.OutGate == nil {
		return ""
	}
	return t.OutGate.Local
}

func inGateLocal(t *entity.GateTimes) string {
	if t == nil || t.InGate == nil {
		return ""
	}
	return t.InGate.Local
}

func terminalOf(raw string) *int {
	if n, ok := normalize.TerminalNumber(raw); ok {
		return &n
	}
	return nil
}

func formatScheduleDate(d time.Time) string {
	if d.IsZero() {
		return ""
	}
	return d.Format("02/01/2006")
}
