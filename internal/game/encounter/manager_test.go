package encounter_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/geoquest/internal/game/combat"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/encounter"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newManager(clock *fakeClock) *encounter.Manager {
	return encounter.NewManager(encounter.DefaultTables(),
		encounter.WithSource(alwaysHit()), encounter.WithClock(clock.Now))
}

func TestManager_StartAssignsUniqueIDs(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	a, err := m.Start(fighter(), goblin(30, 1))
	require.NoError(t, err)
	b, err := m.Start(fighter(), goblin(30, 1))
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
	assert.Equal(t, 2, m.Len())
	got, ok := m.Get(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestManager_StartRejectsInvalidSnapshot(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	bad := fighter()
	bad.Level = 0
	_, err := m.Start(bad, goblin(30, 1))
	assert.ErrorIs(t, err, combaterr.ErrInvalidSnapshot)
	assert.Equal(t, 0, m.Len())
}

func TestManager_DiscardsTerminalSessions(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	s, err := m.Start(fighter(), goblin(5, 1))
	require.NoError(t, err)

	res, err := m.Submit(s.ID(), encounter.Attack())
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeVictory, res.Outcome)
	assert.Equal(t, 0, m.Len())

	_, err = m.Submit(s.ID(), encounter.Attack())
	assert.ErrorIs(t, err, combaterr.ErrSessionTerminated)
}

func TestManager_RejectionKeepsSession(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	s, err := m.Start(fighter(), goblin(100, 1))
	require.NoError(t, err)

	_, err = m.Submit(s.ID(), encounter.UseAbility("missing"))
	assert.ErrorIs(t, err, combaterr.ErrUnknownAbilityOrSpell)
	assert.Equal(t, 1, m.Len())
}

func TestManager_Abandon(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	s, err := m.Start(fighter(), goblin(100, 1))
	require.NoError(t, err)

	assert.True(t, m.Abandon(s.ID()))
	assert.False(t, m.Abandon(s.ID()))
	_, ok := m.Get(s.ID())
	assert.False(t, ok)
}

func TestManager_ReapIdle(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	m := newManager(clock)
	stale, err := m.Start(fighter(), goblin(100, 1))
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)
	fresh, err := m.Start(fighter(), goblin(100, 1))
	require.NoError(t, err)

	clock.Advance(5 * time.Minute)
	assert.Equal(t, []string{stale.ID()}, m.Reap(15*time.Minute))
	_, ok := m.Get(fresh.ID())
	assert.True(t, ok)

	// Activity resets the idle timer.
	_, err = m.Submit(fresh.ID(), encounter.EndTurn())
	require.NoError(t, err)
	clock.Advance(14 * time.Minute)
	assert.Empty(t, m.Reap(15*time.Minute))
	assert.Equal(t, 1, m.Len())
}

func TestManager_AdoptSnapshots(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	s, err := m.Start(fighter(), goblin(100, 1))
	require.NoError(t, err)
	submit(t, s, encounter.Attack())
	snaps := m.Snapshots()
	require.Len(t, snaps, 1)

	other := newManager(&fakeClock{now: time.Unix(2000, 0)})
	adopted, err := other.Adopt(snaps[0])
	require.NoError(t, err)
	assert.Equal(t, s.ID(), adopted.ID())
	assert.Equal(t, snaps[0], adopted.Snapshot())

	snap := snaps[0]
	snap.ID = ""
	fresh, err := other.Adopt(snap)
	require.NoError(t, err)
	assert.NotEqual(t, s.ID(), fresh.ID())
	assert.Equal(t, 2, other.Len())
}

func TestManager_AdoptRejectsEndedEncounter(t *testing.T) {
	m := newManager(&fakeClock{now: time.Unix(1000, 0)})
	s, err := encounter.New(fighter(), goblin(5, 1), encounter.DefaultTables(), encounter.WithSource(alwaysHit()))
	require.NoError(t, err)
	submit(t, s, encounter.Attack())

	_, err = m.Adopt(s.Snapshot())
	assert.ErrorIs(t, err, combaterr.ErrSessionTerminated)
	assert.Equal(t, 0, m.Len())
}
