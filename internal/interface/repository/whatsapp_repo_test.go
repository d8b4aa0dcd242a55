package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedSend struct {
	auth        string
	contentType string
	path        string
	body        sendTemplateMessage
}

func TestSendTemplate_PayloadShape(t *testing.T) {
	var got capturedSend
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		got.path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"receipts": [{"messageId": "msg-1", "to": "+97312345678"}]}`))
	}))
	defer server.Close()

	repo := NewWhatsappRepository(server.Client(), server.URL, "token-abc", "channel-1", logger.NewNopLogger())

	variables := entity.VariableSet{
		"10": "J",
		"2":  "BAH",
		"1":  "GF0012",
	}
	err := repo.SendTemplate(context.Background(), "+97312345678", "flight_update", "en", variables)
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-abc", got.auth)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, "/messages/notifications:send", got.path)
	assert.Equal(t, "channel-1", got.body.ChannelRegistrationID)
	assert.Equal(t, []string{"+97312345678"}, got.body.To)
	assert.Equal(t, "flight_update", got.body.Template.Name)
	assert.Equal(t, "en", got.body.Template.Language)

	// Values and bindings must follow ascending numeric key order, not the
	// map's iteration order.
	require.Len(t, got.body.Template.Values, 3)
	assert.Equal(t, []templateValue{
		{Name: "1", Text: "GF0012"},
		{Name: "2", Text: "BAH"},
		{Name: "10", Text: "J"},
	}, got.body.Template.Values)
	assert.Equal(t, []bindingRef{{RefValue: "1"}, {RefValue: "2"}, {RefValue: "10"}}, got.body.Template.Bindings.Body)
}

func TestSendTemplate_EmptyValueBecomesSpace(t *testing.T) {
	var got sendTemplateMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"receipts": []}`))
	}))
	defer server.Close()

	repo := NewWhatsappRepository(server.Client(), server.URL, "token", "channel", logger.NewNopLogger())

	err := repo.SendTemplate(context.Background(), "+97312345678", "tpl", "en", entity.VariableSet{"1": ""})
	require.NoError(t, err)

	require.Len(t, got.Template.Values, 1)
	assert.Equal(t, " ", got.Template.Values[0].Text)
}

func TestSendTemplate_RejectionReturnsProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": {"code": "template-not-found", "message": "No approved template with that name"}}`))
	}))
	defer server.Close()

	repo := NewWhatsappRepository(server.Client(), server.URL, "token", "channel", logger.NewNopLogger())

	err := repo.SendTemplate(context.Background(), "+97312345678", "missing", "en", nil)
	require.Error(t, err)

	var provErr *entity.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnprocessableEntity, provErr.Status)
	assert.Equal(t, "template-not-found", provErr.Code)
	assert.Equal(t, "No approved template with that name", provErr.Message)
}

func TestSendTemplate_BadReceiptBodyStillSucceeds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	repo := NewWhatsappRepository(server.Client(), server.URL, "token", "channel", logger.NewNopLogger())

	err := repo.SendTemplate(context.Background(), "+97312345678", "tpl", "en", entity.VariableSet{"1": "x"})
	assert.NoError(t, err)
}
