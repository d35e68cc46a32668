package battle

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dragonarena/internal/model"
)

func TestNewManager(t *testing.T) {
	m := NewManager(Options{})
	if m == nil {
		t.Fatal("NewManager() returned nil")
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d; want 0", m.Count())
	}
}

func TestManager_Create(t *testing.T) {
	m := NewManager(Options{})

	s, err := m.Create(dragon(1, model.ElementFire, model.PowerSingle, 5), dragon(2, model.ElementEarth, model.PowerSingle, 5), 77)
	require.NoError(t, err)

	assert.Equal(t, "battle-1", s.ID())
	assert.Equal(t, PhaseIntro, s.Phase())
	assert.Equal(t, 1, m.Count())
	assert.Same(t, s, m.Get(s.ID()))
	assert.Same(t, s, m.SessionByCreature(1))
	assert.Same(t, s, m.SessionByCreature(2))
	assert.True(t, m.InBattle(2))
	assert.False(t, m.InBattle(3))
	assert.Nil(t, m.SessionByCreature(3))
}

func TestManager_CreateRejects(t *testing.T) {
	m := NewManager(Options{})
	_, err := m.Create(dragon(1, model.ElementFire, model.PowerSingle, 5), dragon(2, model.ElementEarth, model.PowerSingle, 5), 1)
	require.NoError(t, err)

	tests := []struct {
		name     string
		attacker model.CreatureDefinition
		defender model.CreatureDefinition
		wantIs   error
	}{
		{
			name:     "attacker busy",
			attacker: dragon(1, model.ElementFire, model.PowerSingle, 5),
			defender: dragon(3, model.ElementAir, model.PowerSingle, 5),
			wantIs:   ErrAlreadyInBattle,
		},
		{
			name:     "defender busy",
			attacker: dragon(3, model.ElementAir, model.PowerSingle, 5),
			defender: dragon(2, model.ElementEarth, model.PowerSingle, 5),
			wantIs:   ErrAlreadyInBattle,
		},
		{
			name:     "self battle",
			attacker: dragon(4, model.ElementAir, model.PowerSingle, 5),
			defender: dragon(4, model.ElementAir, model.PowerSingle, 5),
		},
		{
			name:     "invalid element",
			attacker: dragon(5, model.Element(42), model.PowerSingle, 5),
			defender: dragon(6, model.ElementAir, model.PowerSingle, 5),
			wantIs:   model.ErrInvalidElement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(tt.attacker, tt.defender, 1)
			require.Error(t, err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
	assert.Equal(t, 1, m.Count())
	assert.False(t, m.InBattle(3), "rejected creature not registered")
}

func TestManager_Remove(t *testing.T) {
	m := NewManager(Options{})
	s, err := m.Create(dragon(1, model.ElementFire, model.PowerSingle, 5), dragon(2, model.ElementEarth, model.PowerSingle, 5), 1)
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	m.Remove(s.ID())
	m.Remove(s.ID()) // no-op

	assert.Equal(t, 0, m.Count())
	assert.Nil(t, m.Get(s.ID()))
	assert.False(t, m.InBattle(1))
	assert.False(t, m.InBattle(2))

	_, err = m.Create(dragon(1, model.ElementFire, model.PowerSingle, 5), dragon(2, model.ElementEarth, model.PowerSingle, 5), 1)
	assert.NoError(t, err, "creatures can battle again after removal")
}

func TestManager_ConcurrentSessions(t *testing.T) {
	m := NewManager(Options{})
	const pairs = 32

	var wg sync.WaitGroup
	errs := make(chan error, pairs)
	for i := range pairs {
		wg.Add(1)
		go func(i int64) {
			defer wg.Done()
			s, err := m.Create(
				dragon(2*i+1, model.Element(i%10), model.PowerSingle, 10),
				dragon(2*i+2, model.Element((i+5)%10), model.PowerDual, 10),
				i)
			if err != nil {
				errs <- err
				return
			}
			if err := s.Run(context.Background()); err != nil {
				errs <- err
				return
			}
			m.Remove(s.ID())
		}(int64(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	assert.Equal(t, 0, m.Count())
}

func TestManager_UnsavedCreatures(t *testing.T) {
	m := NewManager(Options{})

	first, err := m.Create(dragon(0, model.ElementFire, model.PowerSingle, 5), dragon(0, model.ElementEarth, model.PowerSingle, 5), 1)
	require.NoError(t, err, "two unsaved creatures are not a self-battle")
	second, err := m.Create(dragon(0, model.ElementWater, model.PowerSingle, 5), dragon(7, model.ElementAir, model.PowerSingle, 5), 2)
	require.NoError(t, err, "unsaved creatures are never busy")

	assert.Equal(t, 2, m.Count())
	assert.False(t, m.InBattle(0))
	assert.Same(t, second, m.SessionByCreature(7))

	m.Remove(first.ID())
	assert.True(t, m.InBattle(7), "removing one session keeps the other's creatures")
	m.Remove(second.ID())
	assert.False(t, m.InBattle(7))
	assert.Equal(t, 0, m.Count())
}
