package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kucukaslan/bridge/domain"
)

type stubInserter struct {
	mu      sync.Mutex
	batches [][]domain.Event
}

func (s *stubInserter) InsertEvents(ctx context.Context, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, events)
	return nil
}

func (s *stubInserter) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func TestEnqueueReturnsErrBufferFull(t *testing.T) {
	batcher := NewEventBatcher(2, 10, 60, &stubInserter{})
	// Worker not started, so the channel fills up.
	require.NoError(t, batcher.Enqueue(domain.Event{Name: "a"}))
	require.NoError(t, batcher.Enqueue(domain.Event{Name: "b"}))
	assert.ErrorIs(t, batcher.Enqueue(domain.Event{Name: "c"}), ErrBufferFull)
	assert.Equal(t, 2, batcher.GetBufferSize())
}

func TestBatcherFlushesWhenBatchSizeReached(t *testing.T) {
	inserter := &stubInserter{}
	batcher := NewEventBatcher(10, 3, 60, inserter)
	batcher.Start()
	defer batcher.Shutdown()

	for i := 0; i < 3; i++ {
		require.NoError(t, batcher.Enqueue(domain.Event{Name: fmt.Sprintf("event-%d", i)}))
	}

	require.Eventually(t, func() bool {
		return inserter.total() == 3
	}, 2*time.Second, 10*time.Millisecond)

	inserter.mu.Lock()
	defer inserter.mu.Unlock()
	require.Len(t, inserter.batches, 1)
	assert.Equal(t, "event-0", inserter.batches[0][0].Name)
}

func TestShutdownFlushesRemainingEvents(t *testing.T) {
	inserter := &stubInserter{}
	batcher := NewEventBatcher(10, 100, 60, inserter)
	batcher.Start()

	require.NoError(t, batcher.Enqueue(domain.Event{Name: "pending-1"}))
	require.NoError(t, batcher.Enqueue(domain.Event{Name: "pending-2"}))
	require.NoError(t, batcher.Shutdown())

	assert.Equal(t, 2, inserter.total())
}
