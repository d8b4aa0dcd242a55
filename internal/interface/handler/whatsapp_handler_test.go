package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	gotPhone    string
	gotTemplate string
	gotLanguage string
	gotOrdered  []string
	gotKeyed    map[string]string
	gotBody     string
	requestID   string
	err         error
}

func (s *stubSender) SendTemplate(ctx context.Context, phone, templateName, language string, ordered []string, keyed map[string]string) (string, error) {
	s.gotPhone = phone
	s.gotTemplate = templateName
	s.gotLanguage = language
	s.gotOrdered = ordered
	s.gotKeyed = keyed
	return s.requestID, s.err
}

func (s *stubSender) SendUnified(ctx context.Context, phone, body string) (string, error) {
	s.gotPhone = phone
	s.gotBody = body
	return s.requestID, s.err
}

func whatsappRouter(sender NotificationSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewWhatsAppHandler(sender, logger.NewNopLogger())
	h.Register(router.Group("/api/whatsapp"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendTemplateEndpoint_Success(t *testing.T) {
	sender := &stubSender{requestID: "ab12cd34"}
	router := whatsappRouter(sender)

	w := postJSON(t, router, "/api/whatsapp/template", gin.H{
		"phone":        "+97312345678",
		"template":     "flight_update",
		"language":     "ar",
		"variables":    []string{"GF0012", "BAH"},
		"variablesMap": map[string]string{"3": "DXB"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+97312345678", sender.gotPhone)
	assert.Equal(t, "flight_update", sender.gotTemplate)
	assert.Equal(t, "ar", sender.gotLanguage)
	assert.Equal(t, []string{"GF0012", "BAH"}, sender.gotOrdered)
	assert.Equal(t, map[string]string{"3": "DXB"}, sender.gotKeyed)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ab12cd34", resp["requestId"])
}

func TestSendTemplateEndpoint_MissingFields(t *testing.T) {
	sender := &stubSender{}
	router := whatsappRouter(sender)

	w := postJSON(t, router, "/api/whatsapp/template", gin.H{"phone": "+97312345678"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, sender.gotPhone, "binding failure must not reach the dispatcher")
}

func TestSendTemplateEndpoint_ValidationError(t *testing.T) {
	sender := &stubSender{
		requestID: "ab12cd34",
		err:       fmt.Errorf("no variables bound: %w", entity.ErrValidation),
	}
	router := whatsappRouter(sender)

	w := postJSON(t, router, "/api/whatsapp/template", gin.H{
		"phone":    "+97312345678",
		"template": "flight_update",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ab12cd34", resp["requestId"])
	assert.Contains(t, resp["error"], "no variables bound")
}

func TestSendTemplateEndpoint_ProviderError(t *testing.T) {
	sender := &stubSender{
		requestID: "ab12cd34",
		err:       &entity.ProviderError{Status: 422, Code: "template-not-found", Message: "unknown template"},
	}
	router := whatsappRouter(sender)

	w := postJSON(t, router, "/api/whatsapp/template", gin.H{
		"phone":    "+97312345678",
		"template": "missing",
	})

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(422), resp["status"])
	assert.Equal(t, "template-not-found", resp["code"])
	assert.Equal(t, "ab12cd34", resp["requestId"])
}

func TestSendTemplateEndpoint_InternalError(t *testing.T) {
	sender := &stubSender{err: fmt.Errorf("connection refused")}
	router := whatsappRouter(sender)

	w := postJSON(t, router, "/api/whatsapp/template", gin.H{
		"phone":    "+97312345678",
		"template": "flight_update",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSendUnifiedEndpoint_Success(t *testing.T) {
	sender := &stubSender{requestID: "ab12cd34"}
	router := whatsappRouter(sender)

	w := postJSON(t, router, "/api/whatsapp/unified", gin.H{
		"phone": "+97312345678",
		"body":  "Your flight GF0012 departs at 08:30.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Your flight GF0012 departs at 08:30.", sender.gotBody)
}

func TestPingEndpoint(t *testing.T) {
	router := whatsappRouter(&stubSender{})

	req := httptest.NewRequest(http.MethodGet, "/api/whatsapp/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
