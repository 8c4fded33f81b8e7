package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kucukaslan/bridge/domain"
)

func TestNewStoreSeedsEveryMode(t *testing.T) {
	store := NewStore()
	snap := store.Snapshot()
	require.Len(t, snap, len(domain.AllModes))

	assert.Len(t, snap["opt-in"].AllowedStorageFeatures, len(domain.AllStorageFeatures))
	assert.Equal(t, []string{domain.WildcardEvent}, snap["opt-in"].AllowedEvents)
	assert.Len(t, snap["no-consent"].ForbiddenStorageFeatures, len(domain.AllStorageFeatures))
	assert.Empty(t, snap["no-consent"].AllowedEvents)
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	store := NewStore()
	engine := NewEngine(store)

	_, err := engine.Apply(&domain.PrivacyRequest{
		Kind:       domain.RuleProperties,
		Include:    true,
		Names:      []string{"p1"},
		Modes:      []string{"custom"},
		EventScope: []string{"page.display"},
	})
	require.NoError(t, err)

	snap := store.Snapshot()

	fresh := NewStore()
	fresh.Restore(snap)
	assert.Equal(t, snap, fresh.Snapshot())
}

func TestRestoreSkipsUnknownModes(t *testing.T) {
	store := NewStore()
	before := store.Snapshot()

	store.Restore(domain.RuleSnapshot{
		"not-a-mode": domain.ModeRules{AllowedEvents: []string{"x"}},
	})

	assert.Equal(t, before, store.Snapshot())
}
