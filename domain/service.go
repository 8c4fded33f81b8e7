package domain

import "context"

// BridgeService exposes the four bridge operations to the transport layer.
type BridgeService interface {
	Configure(ctx context.Context, req *InitRequest) (*DispatchResponse, error)
	SendEvents(ctx context.Context, req *SendRequest) (*DispatchResponse, error)
	ApplyPrivacyRule(ctx context.Context, req *PrivacyRequest) (*DispatchResponse, error)
	RuleSnapshot(ctx context.Context, mode string) (*RulesResponse, error)
}

// SinkConfig is the collector configuration set by the initialize operation.
type SinkConfig struct {
	Site          int
	CollectDomain string
	VisitorIDType VisitorIDType
}

// CollectorSink is the external analytics collection core. It accepts
// finished typed events or finished privacy-rule mutations and performs the
// send/apply with its own delivery guarantees.
type CollectorSink interface {
	Configure(ctx context.Context, cfg SinkConfig) error
	SendEvents(ctx context.Context, events []Event) error
	RecordRuleChange(ctx context.Context, change RuleChange) error
}
