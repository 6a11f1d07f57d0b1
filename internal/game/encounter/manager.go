package encounter

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/geoquest/internal/game/character"
	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
	"github.com/cory-johannsen/geoquest/internal/game/monster"
)

// Manager holds every live encounter keyed by session ID.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	tables Tables
	opts   []Option
	clock  func() time.Time
	logger *zap.Logger
}

// NewManager creates an empty manager. opts are applied to every session it starts or
// adopts; the randomness source they name is shared and must be safe for concurrent use.
//
// Postcondition: Returns a non-nil Manager ready for use.
func NewManager(tables Tables, opts ...Option) *Manager {
	st := newSettings(opts)
	return &Manager{
		sessions: make(map[string]*Session),
		tables:   tables,
		opts:     opts,
		clock:    st.clock,
		logger:   st.logger,
	}
}

// Tables returns the game data sessions are created with.
func (m *Manager) Tables() Tables { return m.tables }

// Start creates a session under a fresh ID and registers it.
//
// Postcondition: Returns the live session, or the InvalidSnapshot error from New.
func (m *Manager) Start(char character.CombatantStats, mon monster.Stats) (*Session, error) {
	s, err := New(char, mon, m.tables, m.with(uuid.NewString())...)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s, nil
}

// Adopt restores a snapshot and registers it, replacing any session under the same ID.
// A snapshot without an ID is given a fresh one.
func (m *Manager) Adopt(snap Snapshot) (*Session, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	s, err := Restore(snap, m.tables, m.with(snap.ID)...)
	if err != nil {
		return nil, err
	}
	if s.Outcome().Terminal() {
		return nil, combaterr.New(combaterr.KindSessionTerminated, "encounter %q already ended", snap.ID)
	}
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) with(id string) []Option {
	opts := make([]Option, 0, len(m.opts)+1)
	opts = append(opts, m.opts...)
	return append(opts, WithID(id))
}

// Get returns the live session with id.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Submit forwards the intent to the session with id and discards the session once
// its outcome is terminal.
//
// Postcondition: an unknown or discarded id yields SessionTerminated.
func (m *Manager) Submit(id string, in Intent) (*Resolution, error) {
	s, ok := m.Get(id)
	if !ok {
		return nil, combaterr.New(combaterr.KindSessionTerminated, "no live encounter %q", id)
	}
	res, err := s.Submit(in)
	switch {
	case err != nil:
		if combaterr.KindOf(err) == combaterr.KindSessionTerminated {
			m.discard(id, s)
		}
		return nil, err
	case res.Outcome.Terminal():
		m.discard(id, s)
	}
	return res, nil
}

// Abandon discards the session with id without resolving it.
//
// Postcondition: Returns true iff a session was removed.
func (m *Manager) Abandon(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	m.logger.Info("encounter abandoned", zap.String("session_id", id))
	return true
}

// Reap discards every session idle for at least idle and returns their IDs in
// ascending order.
func (m *Manager) Reap(idle time.Duration) []string {
	now := m.clock()
	m.mu.Lock()
	defer m.mu.Unlock()

	var reaped []string
	for id, s := range m.sessions {
		if now.Sub(s.LastActive()) >= idle {
			delete(m.sessions, id)
			reaped = append(reaped, id)
		}
	}
	sort.Strings(reaped)
	if len(reaped) > 0 {
		m.logger.Info("reaped idle encounters", zap.Strings("session_ids", reaped), zap.Duration("idle", idle))
	}
	return reaped
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Snapshots captures every live session, ordered by ID.
func (m *Manager) Snapshots() []Snapshot {
	m.mu.RLock()
	live := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		live = append(live, s)
	}
	m.mu.RUnlock()

	sort.Slice(live, func(i, j int) bool { return live[i].ID() < live[j].ID() })
	out := make([]Snapshot, 0, len(live))
	for _, s := range live {
		out = append(out, s.Snapshot())
	}
	return out
}

// discard removes id only while it still maps to s.
func (m *Manager) discard(id string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.sessions[id]; ok && cur == s {
		delete(m.sessions, id)
	}
}
