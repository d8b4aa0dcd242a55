package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/normalize"
)

// StatusProviderRepository looks up live flight status from the external
// provider. Every failure mode short of caller cancellation degrades to
// "no data" so enrichment never aborts on a single flight.
type StatusProviderRepository struct {
	client          *http.Client
	baseURL         string
	subscriptionKey string
	carrierCode     string
	logger          logger.Logger
}

// NewStatusProviderRepository creates a new status provider repository.
// The http.Client is constructed once at startup and shared.
func NewStatusProviderRepository(client *http.Client, baseURL, subscriptionKey, carrierCode string, logger logger.Logger) repository.StatusRepository {
	return &StatusProviderRepository{
		client:          client,
		baseURL:         baseURL,
		subscriptionKey: subscriptionKey,
		carrierCode:     carrierCode,
		logger:          logger,
	}
}

// LookupStatus fetches the flight instance for one flight/date pair. It
// returns (nil, nil) when the provider has no data or fails; a non-nil
// error only reports cancellation of ctx.
func (r *StatusProviderRepository) LookupStatus(ctx context.Context, flightNumber string, date time.Time) (*entity.FlightInstance, error) {
	// The provider expects unpadded numeric identifiers, the inverse of
	// the internal 4-digit convention.
	query := url.Values{}
	query.Set("DepartureDateTime", date.Format("2006-01-02"))
	query.Set("CarrierCode", r.carrierCode)
	query.Set("FlightNumber", normalize.UnpadFlightNumber(flightNumber))
	query.Set("Content", "status,map")
	query.Set("CodeType", "IATA")
	query.Set("version", "v2")
	lookupURL := fmt.Sprintf("%s/flight-instances/?%s", r.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		r.logger.Warn("Failed to build status lookup request", "flightNumber", flightNumber, "error", err)
		return nil, nil
	}
	req.Header.Set("Subscription-Key", r.subscriptionKey)

	resp, err := r.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		r.logger.Warn("Status provider call failed",
			"flightNumber", flightNumber,
			"date", date.Format("2006-01-02"),
			"error", err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("Status provider returned non-success status",
			"statusCode", resp.StatusCode,
			"flightNumber", flightNumber,
			"date", date.Format("2006-01-02"))
		return nil, nil
	}

	var envelope entity.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		r.logger.Warn("Failed to decode status provider response",
			"flightNumber", flightNumber,
			"error", err)
		return nil, nil
	}

	if len(envelope.Data) == 0 {
		r.logger.Debug("No status data for flight",
			"flightNumber", flightNumber,
			"date", date.Format("2006-01-02"))
		return nil, nil
	}

	return &envelope.Data[0], nil
}
