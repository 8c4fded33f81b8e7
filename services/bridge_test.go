package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kucukaslan/bridge/domain"
	"kucukaslan/bridge/privacy"
)

type stubSink struct {
	mu      sync.Mutex
	cfg     *domain.SinkConfig
	sent    [][]domain.Event
	changes []domain.RuleChange

	configureErr error
	sendErr      error
	ruleErr      error
}

func (s *stubSink) Configure(ctx context.Context, cfg domain.SinkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.configureErr != nil {
		return s.configureErr
	}
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
	if s.ruleErr != nil {
		return s.ruleErr
	}
	s.changes = append(s.changes, change)
	return nil
}

type stubMirror struct {
	stored chan domain.RuleSnapshot
}

func (m *stubMirror) StoreSnapshot(ctx context.Context, snap domain.RuleSnapshot) error {
	m.stored <- snap
	return nil
}

func newTestBridge(t *testing.T, sink domain.CollectorSink, mirror RuleMirror) domain.BridgeService {
	t.Helper()
	bridge, err := NewBridgeService(sink, privacy.NewStore(), mirror)
	require.NoError(t, err)
	return bridge
}

func TestConfigurePassesSinkConfig(t *testing.T) {
	sink := &stubSink{}
	bridge := newTestBridge(t, sink, nil)

	resp, err := bridge.Configure(context.Background(), &domain.InitRequest{
		Site:          552987,
		CollectDomain: "logsx.xiti.com",
		VisitorIDType: domain.VisitorIDADID,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	require.NotNil(t, sink.cfg)
	assert.Equal(t, 552987, sink.cfg.Site)
	assert.Equal(t, domain.VisitorIDADID, sink.cfg.VisitorIDType)
}

func TestSendEventsCoercesProperties(t *testing.T) {
	sink := &stubSink{}
	bridge := newTestBridge(t, sink, nil)

	resp, err := bridge.SendEvents(context.Background(), &domain.SendRequest{
		Events: []domain.EventInput{{
			Name: "page.display",
			Data: map[string]domain.PropertyInput{
				"bool":      {Value: domain.BoolRaw(true)},
				"int_force": {Value: domain.StringRaw("1"), Force: domain.ForceInteger},
			},
		}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.EventCount)

	require.Len(t, sink.sent, 1)
	require.Len(t, sink.sent[0], 1)
	event := sink.sent[0][0]
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "page.display", event.Name)
	assert.Equal(t, domain.BooleanValue(true), event.Properties["bool"])
	assert.Equal(t, domain.IntegerValue(1), event.Properties["int_force"])
}

// A coercion failure on any property fails the whole send; nothing reaches
// the sink.
func TestSendEventsFailsWholeSendOnCoercionError(t *testing.T) {
	sink := &stubSink{}
	bridge := newTestBridge(t, sink, nil)

	_, err := bridge.SendEvents(context.Background(), &domain.SendRequest{
		Events: []domain.EventInput{
			{Name: "ok.event", Data: map[string]domain.PropertyInput{
				"fine": {Value: domain.Int32Raw(1)},
			}},
			{Name: "bad.event", Data: map[string]domain.PropertyInput{
				"broken": {Value: domain.StringRaw("abc"), Force: domain.ForceInteger},
			}},
		},
	})
	require.Error(t, err)

	var coercionErr *domain.CoercionError
	require.ErrorAs(t, err, &coercionErr)
	assert.Equal(t, "broken", coercionErr.Property)
	assert.Empty(t, sink.sent)
}

func TestSendEventsWrapsSinkErrors(t *testing.T) {
	sink := &stubSink{sendErr: ErrBufferFull}
	bridge := newTestBridge(t, sink, nil)

	_, err := bridge.SendEvents(context.Background(), &domain.SendRequest{
		Events: []domain.EventInput{{Name: "e"}},
	})
	require.Error(t, err)

	var sinkErr *domain.SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.True(t, errors.Is(err, ErrBufferFull))
}

func TestApplyPrivacyRuleRecordsChangeAndMirrorsSnapshot(t *testing.T) {
	sink := &stubSink{}
	mirror := &stubMirror{stored: make(chan domain.RuleSnapshot, 1)}
	bridge := newTestBridge(t, sink, mirror)

	resp, err := bridge.ApplyPrivacyRule(context.Background(), &domain.PrivacyRequest{
		Kind:    domain.RuleEvents,
		Include: true,
		Names:   []string{"page.display"},
		Modes:   []string{"exempt"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	require.Len(t, sink.changes, 1)
	assert.Equal(t, domain.RuleEvents, sink.changes[0].Kind)
	assert.Equal(t, []string{"page.display"}, sink.changes[0].Names)

	select {
	case snap := <-mirror.stored:
		assert.Contains(t, snap["exempt"].AllowedEvents, "page.display")
	case <-time.After(time.Second):
		t.Fatal("rule snapshot was not mirrored")
	}
}

func TestApplyPrivacyRuleUnknownModeSkipsSink(t *testing.T) {
	sink := &stubSink{}
	bridge := newTestBridge(t, sink, nil)

	_, err := bridge.ApplyPrivacyRule(context.Background(), &domain.PrivacyRequest{
		Kind:    domain.RuleEvents,
		Include: true,
		Names:   []string{"page.display"},
		Modes:   []string{"bogus"},
	})
	require.Error(t, err)

	var ruleErr *domain.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Empty(t, sink.changes)
}

func TestRuleSnapshot(t *testing.T) {
	bridge := newTestBridge(t, &stubSink{}, nil)

	resp, err := bridge.RuleSnapshot(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, resp.Rules, len(domain.AllModes))

	resp, err = bridge.RuleSnapshot(context.Background(), "exempt")
	require.NoError(t, err)
	require.Len(t, resp.Rules, 1)
	assert.Contains(t, resp.Rules, "exempt")

	_, err = bridge.RuleSnapshot(context.Background(), "bogus")
	require.Error(t, err)
}
