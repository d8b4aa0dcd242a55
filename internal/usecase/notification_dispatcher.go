package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/metrics"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/normalize"

	"github.com/google/uuid"
)

// NotificationDispatcher sends bound templates through the messaging
// provider, masking phone numbers in logs and tagging every request with a
// short correlation id echoed back to the caller.
type NotificationDispatcher struct {
	whatsappRepo    repository.WhatsappRepository
	binder          *TemplateBinder
	unifiedTemplate string
	unifiedLanguage string
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewNotificationDispatcher creates a new notification dispatcher.
// unifiedTemplate may be empty, which disables the unified send path.
func NewNotificationDispatcher(
	whatsappRepo repository.WhatsappRepository,
	binder *TemplateBinder,
	unifiedTemplate string,
	unifiedLanguage string,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		whatsappRepo:    whatsappRepo,
		binder:          binder,
		unifiedTemplate: unifiedTemplate,
		unifiedLanguage: unifiedLanguage,
		metrics:         metrics,
		logger:          logger,
	}
}

// SendTemplate binds the supplied variables and sends the named template.
// The returned request id is always set, including on failure.
func (d *NotificationDispatcher) SendTemplate(ctx context.Context, phone, templateName, language string, ordered []string, keyed map[string]string) (string, error) {
	requestID := newRequestID()

	variables, err := d.binder.Bind(ordered, keyed)
	if err != nil {
		d.logger.Warn("Template variable validation failed", "requestId", requestID, "error", err)
		return requestID, err
	}

	return requestID, d.send(ctx, requestID, phone, templateName, language, variables)
}

// SendUnified sends a single free-text body through the pre-configured
// unified template. Fails validation when that template is not configured.
func (d *NotificationDispatcher) SendUnified(ctx context.Context, phone, body string) (string, error) {
	requestID := newRequestID()

	if d.unifiedTemplate == "" {
		d.logger.Warn("Unified send requested but no template configured", "requestId", requestID)
		return requestID, fmt.Errorf("%w: unified template is not configured", entity.ErrValidation)
	}

	variables, err := d.binder.BindUnified(body)
	if err != nil {
		d.logger.Warn("Unified body validation failed", "requestId", requestID, "error", err)
		return requestID, err
	}

	return requestID, d.send(ctx, requestID, phone, d.unifiedTemplate, d.unifiedLanguage, variables)
}

func (d *NotificationDispatcher) send(ctx context.Context, requestID, phone, templateName, language string, variables entity.VariableSet) error {
	if language == "" {
		language = "en"
	}

	d.logger.Info("Sending template message",
		"requestId", requestID,
		"template", templateName,
		"language", language,
		"phone", normalize.MaskPhone(phone),
		"varKeys", strings.Join(variables.Keys(), ","))

	err := d.whatsappRepo.SendTemplate(ctx, phone, templateName, language, variables)
	if err != nil {
		var providerErr *entity.ProviderError
		if errors.As(err, &providerErr) {
			d.logger.Error("Provider rejected template message",
				"requestId", requestID,
				"status", providerErr.Status,
				"code", providerErr.Code,
				"message", providerErr.Message)
			d.metrics.ErrorsCount.WithLabelValues("send_template_provider").Inc()
			return err
		}
		d.logger.Error("Unexpected failure sending template message",
			"requestId", requestID,
			"error", err)
		d.metrics.ErrorsCount.WithLabelValues("send_template").Inc()
		return fmt.Errorf("send template: %w", err)
	}

	d.metrics.TemplatesSent.Inc()
	d.logger.Info("Template message sent",
		"requestId", requestID,
		"template", templateName,
		"phone", normalize.MaskPhone(phone))
	return nil
}

// newRequestID returns the short correlation id logged with and echoed back
// for every send.
func newRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
