package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"kucukaslan/bridge/domain"
)

var (
	// ErrBufferFull is returned when the event buffer channel is full
	ErrBufferFull = errors.New("event buffer is full")
)

// EventInserter flushes a finished batch of typed events to storage.
type EventInserter interface {
	InsertEvents(ctx context.Context, events []domain.Event) error
}

// EventBatcher batches typed events and flushes them to the collector storage
type EventBatcher struct {
	eventChan     chan domain.Event
	batchSize     int
	flushInterval time.Duration
	inserter      EventInserter
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	mu            sync.Mutex
	isRunning     bool
	currentBatch  []domain.Event
}

// NewEventBatcher creates a new EventBatcher instance
func NewEventBatcher(capacity int, batchSize int, flushIntervalSeconds int, inserter EventInserter) *EventBatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventBatcher{
		eventChan:     make(chan domain.Event, capacity),
		batchSize:     batchSize,
		flushInterval: time.Duration(flushIntervalSeconds) * time.Second,
		inserter:      inserter,
		ctx:           ctx,
		cancel:        cancel,
		currentBatch:  make([]domain.Event, 0, batchSize),
	}
}

// Start launches the background worker goroutine that processes events
func (b *EventBatcher) Start() {
	b.mu.Lock()
	if b.isRunning {
		b.mu.Unlock()
		return
	}
	b.isRunning = true
	b.mu.Unlock()

	b.wg.Add(1)
	go b.worker()
	log.Println("EventBatcher started")
}

// Enqueue adds an event to the buffer channel (non-blocking)
// Returns ErrBufferFull if the channel is full
func (b *EventBatcher) Enqueue(event domain.Event) error {
	select {
	case b.eventChan <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// worker is the background goroutine that collects events and flushes them
func (b *EventBatcher) worker() {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			// Flush remaining events before shutting down
			b.flushRemaining()
			return

		case event := <-b.eventChan:
			b.mu.Lock()
			b.currentBatch = append(b.currentBatch, event)
			shouldFlush := len(b.currentBatch) >= b.batchSize
			b.mu.Unlock()

			if shouldFlush {
				b.flushBatch()
			}

		case <-ticker.C:
			// Time-based flush
			b.mu.Lock()
			hasEvents := len(b.currentBatch) > 0
			b.mu.Unlock()

			if hasEvents {
				b.flushBatch()
			}
		}
	}
}

// flushBatch flushes the current batch to storage
func (b *EventBatcher) flushBatch() {
	b.mu.Lock()
	if len(b.currentBatch) == 0 {
		b.mu.Unlock()
		return
	}

	// Copy batch and clear current batch
	batch := make([]domain.Event, len(b.currentBatch))
	copy(batch, b.currentBatch)
	b.currentBatch = b.currentBatch[:0]
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := b.inserter.InsertEvents(ctx, batch); err != nil {
		log.Printf("EventBatcher: Failed to flush batch of %d events: %v", len(batch), err)
		return
	}

	log.Printf("EventBatcher: Successfully flushed batch of %d events", len(batch))
}

// flushRemaining flushes any remaining events in the buffer during shutdown
func (b *EventBatcher) flushRemaining() {
	b.mu.Lock()
	remaining := len(b.currentBatch)
	b.mu.Unlock()

	if remaining > 0 {
		log.Printf("EventBatcher: Flushing %d remaining events during shutdown", remaining)
		b.flushBatch()
	}

	// Drain any remaining events from the channel
	drained := 0
	for {
		select {
		case event := <-b.eventChan:
			b.mu.Lock()
			b.currentBatch = append(b.currentBatch, event)
			b.mu.Unlock()
			drained++
		default:
			if drained > 0 {
				log.Printf("EventBatcher: Drained %d events from channel during shutdown", drained)
				b.flushBatch()
			}
			return
		}
	}
}

// Shutdown gracefully shuts down the batcher, flushing remaining events
func (b *EventBatcher) Shutdown() error {
	b.mu.Lock()
	if !b.isRunning {
		b.mu.Unlock()
		return nil
	}
	b.mu.Unlock()

	log.Println("EventBatcher: Initiating graceful shutdown...")
	b.cancel()
	b.wg.Wait()
	log.Println("EventBatcher: Shutdown complete")
	return nil
}

// GetBufferSize returns the current number of events in the buffer channel
func (b *EventBatcher) GetBufferSize() int {
	return len(b.eventChan)
}

// GetBatchSize returns the current number of events in the pending batch
func (b *EventBatcher) GetBatchSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.currentBatch)
}
