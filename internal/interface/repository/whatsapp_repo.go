package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/repository"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
)

// WhatsappRepository handles sending template messages to the messaging
// provider's notification gateway.
type WhatsappRepository struct {
	client      *http.Client
	baseURL     string
	bearerToken string
	channelID   string
	logger      logger.Logger
}

// NewWhatsappRepository creates a new WhatsApp repository
func NewWhatsappRepository(client *http.Client, baseURL, bearerToken, channelID string, logger logger.Logger) repository.WhatsappRepository {
	return &WhatsappRepository{
		client:      client,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		channelID:   channelID,
		logger:      logger,
	}
}

type templateValue struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type bindingRef struct {
	RefValue string `json:"refValue"`
}

type templateBindings struct {
	Body []bindingRef `json:"body"`
}

type templatePayload struct {
	Name     string           `json:"name"`
	Language string           `json:"language"`
	Values   []templateValue  `json:"values"`
	Bindings templateBindings `json:"bindings"`
}

type sendTemplateMessage struct {
	ChannelRegistrationID string          `json:"channelRegistrationId"`
	To                    []string        `json:"to"`
	Template              templatePayload `json:"template"`
}

// SendTemplate sends an approved template with its bound variables. The
// values and body bindings are emitted in ascending numeric key order so
// the positional placeholders resolve correctly.
func (r *WhatsappRepository) SendTemplate(ctx context.Context, phone, templateName, language string, variables entity.VariableSet) error {
	msg := sendTemplateMessage{
		ChannelRegistrationID: r.channelID,
		To:                    []string{phone},
		Template: templatePayload{
			Name:     templateName,
			Language: language,
		},
	}

	for _, key := range variables.Keys() {
		value := variables[key]
		if value == "" {
			// The provider rejects empty placeholder values.
			value = " "
		}
		msg.Template.Values = append(msg.Template.Values, templateValue{Name: key, Text: value})
		msg.Template.Bindings.Body = append(msg.Template.Bindings.Body, bindingRef{RefValue: key})
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal template message: %w", err)
	}

	url := fmt.Sprintf("%s/messages/notifications:send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated &&
		resp.StatusCode != http.StatusAccepted {
		var errorBody struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return &entity.ProviderError{
			Status:  resp.StatusCode,
			Code:    errorBody.Error.Code,
			Message: errorBody.Error.Message,
		}
	}

	var response struct {
		Receipts []struct {
			MessageID string `json:"messageId"`
			To        string `json:"to"`
		} `json:"receipts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		// The provider accepted the message; a bad receipt body is not a
		// send failure.
		r.logger.Warn("Failed to decode provider receipt", "error", err)
		return nil
	}

	if len(response.Receipts) > 0 {
		r.logger.Debug("Provider receipt", "messageId", response.Receipts[0].MessageID)
	}
	return nil
}
