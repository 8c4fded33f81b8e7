package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"kucukaslan/bridge/config"
	"kucukaslan/bridge/database"
	"kucukaslan/bridge/domain"
)

var (
	// ErrNotConfigured is returned when events are sent before the
	// initialize operation has set the collector configuration.
	ErrNotConfigured = errors.New("collector is not configured")
)

var _ domain.CollectorSink = &Collector{}

// Collector is the ClickHouse-backed analytics sink. Typed events flow
// through the background batcher into the events table; privacy rule changes
// are appended to the audit table directly.
type Collector struct {
	db      database.ClickHouseDB
	batcher *EventBatcher

	mu  sync.RWMutex
	cfg *domain.SinkConfig
}

// NewCollector returns a started collector backed by the provided ClickHouse
// connection.
func NewCollector(db database.ClickHouseDB, cfg *config.ClickHouseConfig) (*Collector, error) {
	if db.DB == nil {
		return nil, fmt.Errorf("ClickHouse database connection cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("ClickHouse config cannot be nil")
	}

	c := &Collector{db: db}
	c.batcher = NewEventBatcher(
		cfg.BufferChannelCapacity,
		cfg.BatchSize,
		cfg.FlushIntervalSeconds,
		c,
	)
	c.batcher.Start()
	return c, nil
}

// Configure sets the collector configuration. It must run before any send.
func (c *Collector) Configure(ctx context.Context, cfg domain.SinkConfig) error {
	c.mu.Lock()
	c.cfg = &cfg
	c.mu.Unlock()
	return nil
}

func (c *Collector) config() (domain.SinkConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cfg == nil {
		return domain.SinkConfig{}, false
	}
	return *c.cfg, true
}

// SendEvents enqueues a finished set of typed events for batched insertion.
// Returns ErrBufferFull when the buffer channel cannot take more events.
func (c *Collector) SendEvents(ctx context.Context, events []domain.Event) error {
	if _, ok := c.config(); !ok {
		return ErrNotConfigured
	}
	for _, event := range events {
		if err := c.batcher.Enqueue(event); err != nil {
			return err
		}
	}
	return nil
}

// RecordRuleChange appends one applied privacy mutation to the audit table.
func (c *Collector) RecordRuleChange(ctx context.Context, change domain.RuleChange) error {
	return c.db.InsertRuleChange(ctx, change)
}

// InsertEvents is the batcher flush target. The collector configuration
// current at flush time is stamped onto the stored rows.
func (c *Collector) InsertEvents(ctx context.Context, events []domain.Event) error {
	cfg, ok := c.config()
	if !ok {
		return ErrNotConfigured
	}
	return c.db.InsertEvents(ctx, events, cfg)
}

// Shutdown gracefully shuts down the collector batcher (flushes remaining events)
func (c *Collector) Shutdown() error {
	if c.batcher != nil {
		return c.batcher.Shutdown()
	}
	return nil
}
