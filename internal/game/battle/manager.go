package battle

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/dragonarena/internal/game/combat"
	"github.com/udisondev/dragonarena/internal/model"
)

// ErrAlreadyInBattle is returned when a creature already has an active session.
var ErrAlreadyInBattle = errors.New("creature already in battle")

// Manager manages all active battle sessions.
// Thread-safe for concurrent access.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session // sessionID → Session
	byCreature map[int64]string    // creatureID → sessionID (quick lookup)
	nextID     atomic.Int64
	opts       Options
}

// NewManager creates a session manager. opts apply to every session it creates.
func NewManager(opts Options) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session, 16),
		byCreature: make(map[int64]string, 32),
		opts:       opts,
	}
}

// Create builds battlers for both creatures and registers a new session in
// PhaseIntro. The caller drives it with Start, ExecuteTurn or Run and must
// call Remove when done.
//
// ID 0 marks an unsaved creature: it is neither checked nor tracked as busy.
func (m *Manager) Create(attacker, defender model.CreatureDefinition, seed int64) (*Session, error) {
	if attacker.ID != 0 && attacker.ID == defender.ID {
		return nil, fmt.Errorf("creature %d cannot battle itself", attacker.ID)
	}

	a, err := combat.NewBattler(attacker, model.SideAttacker)
	if err != nil {
		return nil, fmt.Errorf("attacker: %w", err)
	}
	d, err := combat.NewBattler(defender, model.SideDefender)
	if err != nil {
		return nil, fmt.Errorf("defender: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Проверяем что существа не в бою
	for _, id := range []int64{attacker.ID, defender.ID} {
		if id == 0 {
			continue
		}
		if sid, ok := m.byCreature[id]; ok {
			return nil, fmt.Errorf("creature %d (session %s): %w", id, sid, ErrAlreadyInBattle)
		}
	}

	id := fmt.Sprintf("battle-%d", m.nextID.Add(1))
	s, err := NewSession(id, a, d, seed, m.opts)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s
	for _, cid := range []int64{attacker.ID, defender.ID} {
		if cid != 0 {
			m.byCreature[cid] = id
		}
	}

	slog.Debug("battle session created",
		"session", id,
		"attacker", a.Name(),
		"defender", d.Name(),
		"seed", seed)

	return s, nil
}

// Get returns a session by ID.
func (m *Manager) Get(sessionID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[sessionID]
}

// SessionByCreature returns the active session of a creature.
func (m *Manager) SessionByCreature(creatureID int64) *Session {
	m.mu.RLock()
	sid, ok := m.byCreature[creatureID]
	if !ok {
		m.mu.RUnlock()
		return nil
	}
	s := m.sessions[sid]
	m.mu.RUnlock()
	return s
}

// InBattle returns true if the creature has an active session.
func (m *Manager) InBattle(creatureID int64) bool {
	m.mu.RLock()
	_, ok := m.byCreature[creatureID]
	m.mu.RUnlock()
	return ok
}

// Remove removes a session from the manager.
func (m *Manager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return
	}
	for _, cid := range []int64{s.Attacker().CreatureID(), s.Defender().CreatureID()} {
		if m.byCreature[cid] == sessionID {
			delete(m.byCreature, cid)
		}
	}
	delete(m.sessions, sessionID)

	slog.Debug("battle session removed",
		"session", sessionID,
		"phase", s.Phase())
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
