package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"kucukaslan/bridge/coercion"
	"kucukaslan/bridge/domain"
	"kucukaslan/bridge/privacy"
)

var _ domain.BridgeService = &bridgeService{}

// RuleMirror persists privacy rule snapshots after each applied mutation so
// the rule state survives restarts.
type RuleMirror interface {
	StoreSnapshot(ctx context.Context, snap domain.RuleSnapshot) error
}

type bridgeService struct {
	sink   domain.CollectorSink
	store  *privacy.Store
	engine *privacy.Engine
	mirror RuleMirror
}

// NewBridgeService returns a domain.BridgeService wired to the provided sink
// and privacy rule store. mirror may be nil; rule snapshots are then not
// persisted.
func NewBridgeService(sink domain.CollectorSink, store *privacy.Store, mirror RuleMirror) (domain.BridgeService, error) {
	if sink == nil {
		return nil, fmt.Errorf("collector sink cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("privacy rule store cannot be nil")
	}
	return &bridgeService{
		sink:   sink,
		store:  store,
		engine: privacy.NewEngine(store),
		mirror: mirror,
	}, nil
}

func (b *bridgeService) Configure(ctx context.Context, req *domain.InitRequest) (*domain.DispatchResponse, error) {
	cfg := domain.SinkConfig{
		Site:          req.Site,
		CollectDomain: req.CollectDomain,
		VisitorIDType: req.VisitorIDType,
	}
	if err := b.sink.Configure(ctx, cfg); err != nil {
		return nil, &domain.SinkError{Op: "configure", Err: err}
	}
	return &domain.DispatchResponse{
		Success: true,
		Message: "Configuration applied successfully",
	}, nil
}

// SendEvents coerces every property of every event before anything reaches
// the sink. A coercion failure on any property fails the whole send; no
// partial event is ever emitted.
func (b *bridgeService) SendEvents(ctx context.Context, req *domain.SendRequest) (*domain.DispatchResponse, error) {
	events := make([]domain.Event, 0, len(req.Events))
	for _, input := range req.Events {
		event := domain.Event{
			ID:   uuid.Must(uuid.NewV7()).String(),
			Name: input.Name,
		}
		for name, prop := range input.Data {
			p, err := coercion.Coerce(name, prop.Value, prop.Force)
			if err != nil {
				return nil, err
			}
			event.SetProperty(p)
		}
		events = append(events, event)
	}

	if err := b.sink.SendEvents(ctx, events); err != nil {
		return nil, &domain.SinkError{Op: "send", Err: err}
	}
	return &domain.DispatchResponse{
		Success:    true,
		Message:    "Events sent successfully",
		EventCount: len(events),
	}, nil
}

func (b *bridgeService) ApplyPrivacyRule(ctx context.Context, req *domain.PrivacyRequest) (*domain.DispatchResponse, error) {
	change, err := b.engine.Apply(req)
	if err != nil {
		return nil, err
	}

	if err := b.sink.RecordRuleChange(ctx, *change); err != nil {
		return nil, &domain.SinkError{Op: "privacy rule apply", Err: err}
	}

	if b.mirror != nil {
		snap := b.store.Snapshot()
		go func() {
			if err := b.mirror.StoreSnapshot(context.Background(), snap); err != nil {
				log.Printf("BridgeService: failed to mirror privacy rule snapshot: %v", err)
			}
		}()
	}

	return &domain.DispatchResponse{
		Success: true,
		Message: "Privacy rules updated successfully",
	}, nil
}

func (b *bridgeService) RuleSnapshot(ctx context.Context, mode string) (*domain.RulesResponse, error) {
	snap := make(domain.RuleSnapshot)
	if mode == "" {
		snap = b.store.Snapshot()
	} else {
		m, err := domain.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		snap[m.String()] = b.store.SnapshotMode(m)
	}
	return &domain.RulesResponse{
		Success: true,
		Message: "Rules retrieved successfully",
		Rules:   snap,
	}, nil
}

// ShutdownSink gracefully shuts down a collector sink if it supports shutdown
func ShutdownSink(sink domain.CollectorSink) error {
	if s, ok := sink.(interface{ Shutdown() error }); ok {
		return s.Shutdown()
	}
	return nil
}
