package arena

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dragonarena/internal/config"
	"github.com/udisondev/dragonarena/internal/db"
	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
	"github.com/udisondev/dragonarena/internal/testutil"
)

type memCreatures struct {
	defs map[int64]model.CreatureDefinition
	err  error
}

func (m *memCreatures) LoadByID(_ context.Context, id int64) (*model.CreatureDefinition, error) {
	if m.err != nil {
		return nil, m.err
	}
	def, ok := m.defs[id]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

type memBattles struct {
	mu       sync.Mutex
	records  []db.BattleRecord
	progress []db.Progress
	err      error
}

func (m *memBattles) SaveBattle(_ context.Context, rec db.BattleRecord, winner db.Progress) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.records = append(m.records, rec)
	m.progress = append(m.progress, winner)
	return int64(len(m.records)), nil
}

func newMemService(cfg config.Arena) (*Service, *memCreatures, *memBattles) {
	creatures := &memCreatures{defs: map[int64]model.CreatureDefinition{
		1: testutil.WithID(testutil.Fixtures.Volt, 1),
		2: testutil.WithID(testutil.Fixtures.Ember, 2),
		3: testutil.WithID(testutil.Fixtures.Ripple, 3),
		4: testutil.WithID(testutil.Fixtures.Cinder, 4),
	}}
	battles := &memBattles{}
	return NewService(creatures, battles, cfg), creatures, battles
}

func TestService_Fight(t *testing.T) {
	svc, _, battles := newMemService(config.DefaultArena())

	got, err := svc.Fight(context.Background(), FightRequest{AttackerID: 1, DefenderID: 2, Seed: 5})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.BattleID)
	assert.Equal(t, model.SideAttacker, got.Result.Winner)
	assert.Equal(t, int64(1), got.Result.WinnerID)
	assert.Equal(t, int64(50), got.Outcome.ExpAwarded, "favourite earns the base award")
	assert.Equal(t, 0, svc.Manager().Count(), "session removed after the fight")

	require.Len(t, battles.records, 1)
	rec := battles.records[0]
	assert.Equal(t, int64(5), rec.Seed)
	assert.Equal(t, int64(1), rec.AttackerID)
	assert.Equal(t, int64(2), rec.DefenderID)
	assert.Equal(t, got.Result.Log, rec.Log)
	assert.Equal(t, db.Progress{CreatureID: 1, Level: 30, Experience: 50}, battles.progress[0])
}

func TestService_FightIsReplayable(t *testing.T) {
	svc, _, _ := newMemService(config.DefaultArena())

	first, err := svc.Fight(context.Background(), FightRequest{AttackerID: 3, DefenderID: 4, SeedKey: "round-1"})
	require.NoError(t, err)
	second, err := svc.Fight(context.Background(), FightRequest{AttackerID: 3, DefenderID: 4, SeedKey: "round-1"})
	require.NoError(t, err)

	assert.Equal(t, random.DeriveSeed("round-1"), first.Result.Seed)
	assert.Equal(t, first.Result.Log, second.Result.Log)
	assert.Equal(t, first.Result.Winner, second.Result.Winner)
}

func TestService_SeedSelection(t *testing.T) {
	cfg := config.DefaultArena()
	cfg.Battle.DefaultSeed = 1234
	svc, _, _ := newMemService(cfg)

	tests := []struct {
		name string
		req  FightRequest
		want int64
	}{
		{"explicit seed", FightRequest{Seed: 9, SeedKey: "ignored"}, 9},
		{"derived from key", FightRequest{SeedKey: "k"}, random.DeriveSeed("k")},
		{"configured default", FightRequest{}, 1234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.seedFor(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_FightErrors(t *testing.T) {
	t.Run("unknown attacker", func(t *testing.T) {
		svc, _, battles := newMemService(config.DefaultArena())
		_, err := svc.Fight(context.Background(), FightRequest{AttackerID: 99, DefenderID: 2, Seed: 1})
		assert.ErrorIs(t, err, ErrCreatureNotFound)
		assert.Empty(t, battles.records)
	})

	t.Run("unknown defender", func(t *testing.T) {
		svc, _, _ := newMemService(config.DefaultArena())
		_, err := svc.Fight(context.Background(), FightRequest{AttackerID: 1, DefenderID: 99, Seed: 1})
		assert.ErrorIs(t, err, ErrCreatureNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, creatures, _ := newMemService(config.DefaultArena())
		creatures.err = testutil.ErrSimulated
		_, err := svc.Fight(context.Background(), FightRequest{AttackerID: 1, DefenderID: 2, Seed: 1})
		assert.ErrorIs(t, err, testutil.ErrSimulated)
	})

	t.Run("persist failure", func(t *testing.T) {
		svc, _, battles := newMemService(config.DefaultArena())
		battles.err = testutil.ErrSimulated
		_, err := svc.Fight(context.Background(), FightRequest{AttackerID: 1, DefenderID: 2, Seed: 1})
		assert.ErrorIs(t, err, testutil.ErrSimulated)
		assert.Equal(t, 0, svc.Manager().Count())
	})

	t.Run("self battle", func(t *testing.T) {
		svc, _, _ := newMemService(config.DefaultArena())
		_, err := svc.Fight(context.Background(), FightRequest{AttackerID: 1, DefenderID: 1, Seed: 1})
		assert.Error(t, err)
	})
}

func TestService_FightWithPostgres(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	ctx := testutil.ContextWithTimeout(t, defaultTestTimeout)

	creatures := db.NewCreatureRepository(pool)
	battles := db.NewBattleRepository(pool)
	svc := NewService(creatures, db.NewBattlePersistenceService(pool, creatures, battles), config.DefaultArena())

	volt := testutil.Fixtures.Volt
	volt.Level, volt.Experience = 2, 250
	winnerID, err := creatures.Create(ctx, volt)
	require.NoError(t, err)
	loserID, err := creatures.Create(ctx, testutil.Fixtures.Ember)
	require.NoError(t, err)

	got, err := svc.Fight(ctx, FightRequest{AttackerID: winnerID, DefenderID: loserID, Seed: 77})
	require.NoError(t, err)
	require.Equal(t, winnerID, got.Result.WinnerID)

	rec, err := battles.LoadByID(ctx, got.BattleID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, got.Result.Log, rec.Log)
	assert.Equal(t, int64(77), rec.Seed)

	// 250 + 50 crosses the level-2 threshold of 282.
	winner, err := creatures.LoadByID(ctx, winnerID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), winner.Level)
	assert.Equal(t, int64(18), winner.Experience)
}
