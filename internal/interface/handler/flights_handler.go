package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"

	"github.com/gin-gonic/gin"
)

// FlightEnricherUseCase is the slice of the enricher the handler needs.
type FlightEnricherUseCase interface {
	EnrichFlights(ctx context.Context, from, to time.Time) ([]entity.FlightStatus, error)
}

// ReminderEnqueuer hands a passenger list to the background reminder pool.
type ReminderEnqueuer interface {
	Enqueue(passengers []entity.Passenger) bool
}

// FlightsHandler exposes the enriched flight list and the per-flight
// passenger lists.
type FlightsHandler struct {
	enricher             FlightEnricherUseCase
	scheduleRepo         repository.ScheduleRepository
	departureControlRepo repository.DepartureControlRepository
	reminders            ReminderEnqueuer
	logger               logger.Logger
}

// NewFlightsHandler creates a new flights handler
func NewFlightsHandler(
	enricher FlightEnricherUseCase,
	scheduleRepo repository.ScheduleRepository,
	departureControlRepo repository.DepartureControlRepository,
	reminders ReminderEnqueuer,
	logger logger.Logger,
) *FlightsHandler {
	return &FlightsHandler{
		enricher:             enricher,
		scheduleRepo:         scheduleRepo,
		departureControlRepo: departureControlRepo,
		reminders:            reminders,
		logger:               logger,
	}
}

// Register mounts the flight routes on the given group.
func (h *FlightsHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:flightNumber/:date/booked", h.booked)
	router.GET("/:flightNumber/:date/checked-in", h.checkedIn)
	router.GET("/:flightNumber/:date/boarded", h.boarded)
}

func (h *FlightsHandler) list(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected yyyy-MM-dd"})
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected yyyy-MM-dd"})
		return
	}

	flights, err := h.enricher.EnrichFlights(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Error("Flight enrichment failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load flights"})
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightsHandler) booked(c *gin.Context) {
	flightNumber, date, ok := h.flightParams(c)
	if !ok {
		return
	}

	passengers, err := h.scheduleRepo.GetBookedPassengers(c.Request.Context(), flightNumber, date)
	if err != nil {
		h.logger.Error("Booked passenger query failed", "flightNumber", flightNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load passengers"})
		return
	}

	if len(passengers) > 0 {
		// Fire-and-forget: the response never waits for the reminder batch.
		h.logger.Info("Initiating online check-in reminders",
			"flightNumber", flightNumber,
			"count", len(passengers))
		h.reminders.Enqueue(passengers)
	}

	c.JSON(http.StatusOK, passengers)
}

func (h *FlightsHandler) checkedIn(c *gin.Context) {
	flightNumber, date, ok := h.flightParams(c)
	if !ok {
		return
	}

	passengers, err := h.departureControlRepo.GetCheckedInPassengers(c.Request.Context(), flightNumber, date)
	if err != nil {
		h.logger.Error("Checked-in passenger query failed", "flightNumber", flightNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load passengers"})
		return
	}
	c.JSON(http.StatusOK, passengers)
}

func (h *FlightsHandler) boarded(c *gin.Context) {
	flightNumber, date, ok := h.flightParams(c)
	if !ok {
		return
	}

	passengers, err := h.departureControlRepo.GetBoardedPassengers(c.Request.Context(), flightNumber, date)
	if err != nil {
		h.logger.Error("Boarded passenger query failed", "flightNumber", flightNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load passengers"})
		return
	}
	c.JSON(http.StatusOK, passengers)
}

func (h *FlightsHandler) flightParams(c *gin.Context) (string, time.Time, bool) {
	flightNumber := c.Param("flightNumber")
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected yyyy-MM-dd"})
		return "", time.Time{}, false
	}
	return flightNumber, date, true
}
