package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
)

// CheckinRelayRepository submits online check-in reminder batches to the
// relay service. One aggregate call covers many passengers, so the injected
// client carries a long timeout.
type CheckinRelayRepository struct {
	client  *http.Client
	baseURL string
	logger  logger.Logger
}

// NewCheckinRelayRepository creates a new check-in relay repository
func NewCheckinRelayRepository(client *http.Client, baseURL string, logger logger.Logger) repository.CheckinRelayRepository {
	return &CheckinRelayRepository{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

// SendReminderBatch posts the reminder batch as a JSON array.
func (r *CheckinRelayRepository) SendReminderBatch(ctx context.Context, reminders []entity.CheckinReminder) error {
	jsonData, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder batch: %w", err)
	}

	url := fmt.Sprintf("%s/api/checkin/online/batch", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send reminder batch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("check-in relay returned status %d: %s", resp.StatusCode, string(body))
	}

	r.logger.Debug("Reminder batch accepted", "count", len(reminders))
	return nil
}
