package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kucukaslan/bridge/domain"
	"kucukaslan/bridge/privacy"
	"kucukaslan/bridge/services"
)

type stubSink struct {
	mu      sync.Mutex
	cfg     *domain.SinkConfig
	sent    [][]domain.Event
	changes []domain.RuleChange
	sendErr error
}

func (s *stubSink) Configure(ctx context.Context, cfg domain.SinkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}

func (s *stubSink) SendEvents(ctx context.Context, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, events)
	return nil
}

func (s *stubSink) RecordRuleChange(ctx context.Context, change domain.RuleChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changes = append(s.changes, change)
	return nil
}

func newTestApp(t *testing.T, sink domain.CollectorSink) *fiber.App {
	t.Helper()
	bridge, err := services.NewBridgeService(sink, privacy.NewStore(), nil)
	require.NoError(t, err)
	handler := NewBridgeHandler(bridge)

	app := fiber.New()
	app.Post("/bridge", handler.Dispatch)
	app.Get("/privacy/rules", handler.GetPrivacyRules)
	return app
}

func postBridge(t *testing.T, app *fiber.App, body string) (int, domain.DispatchResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/bridge", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out domain.DispatchResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestDispatchInit(t *testing.T) {
	sink := &stubSink{}
	app := newTestApp(t, sink)

	status, out := postBridge(t, app, `{
		"method": "init",
		"parameters": {"site": 552987, "collectDomain": "logsx.xiti.com", "visitorIDType": "UUID"}
	}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.Success)

	require.NotNil(t, sink.cfg)
	assert.Equal(t, 552987, sink.cfg.Site)
	assert.Equal(t, "logsx.xiti.com", sink.cfg.CollectDomain)
}

func TestDispatchSend(t *testing.T) {
	sink := &stubSink{}
	app := newTestApp(t, sink)

	status, out := postBridge(t, app, `{
		"method": "send",
		"parameters": {"events": [{
			"name": "page.display",
			"data": {
				"bool": {"value": true},
				"int_force": {"value": "1", "forceType": "n"}
			}
		}]}
	}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.EventCount)

	require.Len(t, sink.sent, 1)
	event := sink.sent[0][0]
	assert.Equal(t, domain.BooleanValue(true), event.Properties["bool"])
	assert.Equal(t, domain.IntegerValue(1), event.Properties["int_force"])
}

func TestDispatchSendCoercionFailure(t *testing.T) {
	sink := &stubSink{}
	app := newTestApp(t, sink)

	status, out := postBridge(t, app, `{
		"method": "send",
		"parameters": {"events": [{
			"name": "page.display",
			"data": {"broken": {"value": "abc", "forceType": "n"}}
		}]}
	}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "broken")
	assert.Empty(t, sink.sent)
}

func TestDispatchValidationFailures(t *testing.T) {
	app := newTestApp(t, &stubSink{})

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"method": `},
		{"missing method", `{"parameters": {}}`},
		{"init missing site", `{"method": "init", "parameters": {"collectDomain": "d", "visitorIDType": "UUID"}}`},
		{"send missing events", `{"method": "send", "parameters": {}}`},
		{"privacy unknown mode", `{"method": "privacyIncludeEvents", "parameters": {"eventNames": ["e"], "modes": ["bogus"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := postBridge(t, app, tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.False(t, out.Success)
		})
	}
}

func TestDispatchUnknownMethod(t *testing.T) {
	app := newTestApp(t, &stubSink{})

	status, out := postBridge(t, app, `{"method": "setUser", "parameters": {}}`)
	assert.Equal(t, fiber.StatusNotImplemented, status)
	assert.False(t, out.Success)
	assert.Contains(t, out.Message, "setUser")
}

func TestDispatchSendBufferFull(t *testing.T) {
	sink := &stubSink{sendErr: services.ErrBufferFull}
	app := newTestApp(t, sink)

	status, out := postBridge(t, app, `{
		"method": "send",
		"parameters": {"events": [{"name": "page.display"}]}
	}`)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.False(t, out.Success)
}

func TestDispatchSendNotConfigured(t *testing.T) {
	sink := &stubSink{sendErr: services.ErrNotConfigured}
	app := newTestApp(t, sink)

	status, out := postBridge(t, app, `{
		"method": "send",
		"parameters": {"events": [{"name": "page.display"}]}
	}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.False(t, out.Success)
}

func TestDispatchPrivacyMethods(t *testing.T) {
	sink := &stubSink{}
	app := newTestApp(t, sink)

	status, out := postBridge(t, app, `{
		"method": "privacyIncludeProperties",
		"parameters": {
			"propertyNames": ["click_value"],
			"modes": ["exempt"],
			"eventNames": ["click.action"]
		}
	}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.Success)

	require.Len(t, sink.changes, 1)
	change := sink.changes[0]
	assert.Equal(t, domain.RuleProperties, change.Kind)
	assert.True(t, change.Include)
	assert.Equal(t, []string{"click.action"}, change.EventScope)
}

func TestGetPrivacyRules(t *testing.T) {
	app := newTestApp(t, &stubSink{})

	req := httptest.NewRequest("GET", "/privacy/rules?mode=opt-out", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out domain.RulesResponse
	require.NoError(t, json.Unmarshal(raw, &out))

	require.Contains(t, out.Rules, "opt-out")
	rules := out.Rules["opt-out"]
	assert.Contains(t, rules.AllowedStorageFeatures, "storage_privacy")
	assert.Contains(t, rules.ForbiddenStorageFeatures, "storage_visitor")
}

func TestGetPrivacyRulesUnknownMode(t *testing.T) {
	app := newTestApp(t, &stubSink{})

	req := httptest.NewRequest("GET", "/privacy/rules?mode=bogus", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
