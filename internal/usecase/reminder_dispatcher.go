package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/metrics"
)

// ReminderDispatcher batches online check-in reminders to the relay
// service without blocking the request that discovered the passengers.
// It runs a small worker pool on its own cancellation scope: cancelling
// the triggering request never cancels an in-flight batch.
type ReminderDispatcher struct {
	relayRepo   repository.CheckinRelayRepository
	carrierCode string
	timeout     time.Duration
	metrics     *metrics.Metrics
	logger      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan []entity.Passenger
	wg     sync.WaitGroup
}

// NewReminderDispatcher creates the dispatcher and starts its workers.
func NewReminderDispatcher(
	relayRepo repository.CheckinRelayRepository,
	carrierCode string,
	timeout time.Duration,
	workers, queueSize int,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *ReminderDispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	// Detached lifetime: derived from Background, not from any request.
	ctx, cancel := context.WithCancel(context.Background())
	d := &ReminderDispatcher{
		relayRepo:   relayRepo,
		carrierCode: carrierCode,
		timeout:     timeout,
		metrics:     metrics,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		jobs:        make(chan []entity.Passenger, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Enqueue hands a passenger list to the pool and returns immediately.
// A full queue drops the batch with a logged warning rather than blocking
// the caller.
func (d *ReminderDispatcher) Enqueue(passengers []entity.Passenger) bool {
	select {
	case d.jobs <- passengers:
		return true
	default:
		d.logger.Warn("Reminder queue full, dropping batch", "count", len(passengers))
		d.metrics.ErrorsCount.WithLabelValues("reminder_queue_full").Inc()
		return false
	}
}

// Close stops accepting work, waits for in-flight batches, then releases
// the dispatcher context.
func (d *ReminderDispatcher) Close() {
	close(d.jobs)
	d.wg.Wait()
	d.cancel()
}

func (d *ReminderDispatcher) worker() {
	defer d.wg.Done()
	for passengers := range d.jobs {
		d.sendBatch(passengers)
	}
}

// sendBatch builds the relay payload and submits it. The outcome is logged
// only; nothing propagates to any caller.
func (d *ReminderDispatcher) sendBatch(passengers []entity.Passenger) {
	reminders := make([]entity.CheckinReminder, 0, len(passengers))
	for _, p := range passengers {
		if strings.TrimSpace(p.SeatOrPhone) == "" {
			continue
		}
		reminders = append(reminders, entity.CheckinReminder{
			Pnr:          p.Pnr,
			GivenName:    p.GivenName,
			Surname:      p.Surname,
			SeatOrPhone:  p.SeatOrPhone,
			FlightNumber: relayFlightNumber(p.FlightNumber, d.carrierCode),
			FlightDate:   p.FlightDate,
		})
	}

	if len(reminders) == 0 {
		d.logger.Info("No passengers with phone numbers to remind")
		return
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.timeout)
	defer cancel()

	d.logger.Info("Sending check-in reminder batch", "count", len(reminders))
	if err := d.relayRepo.SendReminderBatch(ctx, reminders); err != nil {
		d.logger.Error("Failed to send check-in reminder batch", "count", len(reminders), "error", err)
		d.metrics.ErrorsCount.WithLabelValues("reminder_batch").Inc()
		return
	}

	d.metrics.ReminderBatches.Inc()
	d.logger.Info("Check-in reminder batch sent", "count", len(reminders))
}

// relayFlightNumber strips the carrier prefix and leading zeros, the form
// the relay expects ("GF0012" -> "12").
func relayFlightNumber(flightNumber, carrierCode string) string {
	n := strings.TrimSpace(flightNumber)
	n = strings.TrimPrefix(n, carrierCode)
	n = strings.TrimLeft(n, "0")
	if n == "" {
		return "0"
	}
	return n
}
