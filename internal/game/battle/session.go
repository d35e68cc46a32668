// Package battle runs battle sessions between two dragons.
// Lifecycle: intro → in progress → result.
package battle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/udisondev/dragonarena/internal/ai"
	"github.com/udisondev/dragonarena/internal/data"
	"github.com/udisondev/dragonarena/internal/game/combat"
	"github.com/udisondev/dragonarena/internal/model"
	"github.com/udisondev/dragonarena/internal/random"
)

var (
	// ErrSessionFinished is returned by actions on a session in PhaseResult.
	ErrSessionFinished = errors.New("battle session finished")
	// ErrAlreadyStarted is returned by Start outside PhaseIntro.
	ErrAlreadyStarted = errors.New("battle session already started")
	// ErrNotFinished is returned by Result and Outcome before PhaseResult.
	ErrNotFinished = errors.New("battle session not finished")
)

// DefaultMaxTurns bounds a session so that it always terminates.
const DefaultMaxTurns int32 = 500

// Phase is the session state.
type Phase int32

const (
	PhaseIntro Phase = iota
	PhaseInProgress
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseInProgress:
		return "in_progress"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Options configures a session. Zero fields take defaults.
type Options struct {
	MaxTurns       int32          // resolved actions before the turn limit ends the battle
	ExpRate        float64        // experience award multiplier, 1.0 when zero
	Backend        combat.Backend // combat.Engine when nil
	AttackerPolicy ai.Policy      // used by Run; ai.HeuristicPolicy when nil
	DefenderPolicy ai.Policy      // ai.HeuristicPolicy when nil
}

func (o Options) withDefaults() Options {
	if o.MaxTurns <= 0 {
		o.MaxTurns = DefaultMaxTurns
	}
	if o.ExpRate <= 0 {
		o.ExpRate = 1.0
	}
	if o.Backend == nil {
		o.Backend = combat.Engine{}
	}
	if o.AttackerPolicy == nil {
		o.AttackerPolicy = ai.HeuristicPolicy{}
	}
	if o.DefenderPolicy == nil {
		o.DefenderPolicy = ai.HeuristicPolicy{}
	}
	return o
}

// Result is the terminal state of a session.
type Result struct {
	SessionID string
	Seed      int64
	Winner    model.Side
	WinnerID  int64
	LoserID   int64
	Turns     int32
	TimeLimit bool // ended by MaxTurns rather than by defeat
	Log       []model.TurnLogEntry
}

// Outcome is the reward for the winner of a finished session.
type Outcome struct {
	Winner     model.Side
	Loser      model.Side
	WinnerID   int64
	LoserID    int64
	ExpAwarded int64
	LevelUp    data.LevelUpResult // winner progression after the award
}

// Session is one battle between an attacker and a defender.
// The session owns both battlers and its random source. Its methods are safe
// for concurrent use, except that the battlers returned by Attacker and
// Defender are live and must not be read while ExecuteTurn or Run is in
// progress; use HP for a consistent view during a battle.
type Session struct {
	mu sync.Mutex

	id       string
	seed     int64
	attacker *combat.Battler
	defender *combat.Battler
	rng      random.Source
	opts     Options

	phase     Phase
	turn      int32
	winner    model.Side
	timeLimit bool
	log       []model.TurnLogEntry

	outcome *Outcome
}

// NewSession creates a session in PhaseIntro. Both battlers must be fresh,
// distinct and placed on their sides.
func NewSession(id string, attacker, defender *combat.Battler, seed int64, opts Options) (*Session, error) {
	if attacker == nil || defender == nil {
		return nil, fmt.Errorf("session %s: both battlers are required", id)
	}
	if attacker == defender {
		return nil, fmt.Errorf("session %s: attacker and defender must be distinct", id)
	}
	if attacker.Side() != model.SideAttacker || defender.Side() != model.SideDefender {
		return nil, fmt.Errorf("session %s: battlers on wrong sides (%s, %s)", id, attacker.Side(), defender.Side())
	}
	if attacker.IsDefeated() || defender.IsDefeated() {
		return nil, fmt.Errorf("session %s: defeated battler cannot enter a battle", id)
	}

	s := &Session{
		id:       id,
		seed:     seed,
		attacker: attacker,
		defender: defender,
		rng:      random.NewSource(seed),
		opts:     opts.withDefaults(),
		phase:    PhaseIntro,
		winner:   model.SideNone,
		log:      make([]model.TurnLogEntry, 0, 32),
	}
	s.appendEntry(model.TurnLogEntry{
		Actor:     model.SideNone,
		Narrative: fmt.Sprintf("%s challenges %s!", attacker.Name(), defender.Name()),
	})
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Seed returns the seed the session's random source was built from.
func (s *Session) Seed() int64 { return s.seed }

// Attacker returns the live attacking battler. Not synchronized.
func (s *Session) Attacker() *combat.Battler { return s.attacker }

// Defender returns the live defending battler. Not synchronized.
func (s *Session) Defender() *combat.Battler { return s.defender }

// HP returns the current HP of both battlers, taken between actions.
func (s *Session) HP() (attackerHP, defenderHP int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attacker.CurrentHP(), s.defender.CurrentHP()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Winner returns SideNone until the session reaches PhaseResult.
func (s *Session) Winner() model.Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.winner
}

// Turn returns the number of resolved actions.
func (s *Session) Turn() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Log returns a copy of the battle log.
func (s *Session) Log() []model.TurnLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.TurnLogEntry(nil), s.log...)
}

// Start moves the session from PhaseIntro to PhaseInProgress.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseIntro {
		return fmt.Errorf("session %s in phase %s: %w", s.id, s.phase, ErrAlreadyStarted)
	}
	s.start()
	return nil
}

func (s *Session) start() {
	s.phase = PhaseInProgress
	slog.Debug("battle started",
		"session", s.id,
		"seed", s.seed,
		"attacker", s.attacker.Name(),
		"defender", s.defender.Name())
}

// ExecuteTurn resolves the attacker's action with the skill in slot and, if
// the battle goes on, the defender's policy reply. A session in PhaseIntro is
// started first. An unknown slot returns combat.ErrUnknownSkill and leaves the
// session untouched.
func (s *Session) ExecuteTurn(slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseResult {
		return fmt.Errorf("session %s: %w", s.id, ErrSessionFinished)
	}
	if _, ok := s.attacker.Skill(slot); !ok {
		return fmt.Errorf("session %s: %w: slot %d", s.id, combat.ErrUnknownSkill, slot)
	}
	if s.phase == PhaseIntro {
		s.start()
	}
	return s.round(slot, true)
}

// Run drives both sides with their policies until the session ends.
// ctx is checked between rounds; a cancelled session stays in progress.
func (s *Session) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseResult {
		return fmt.Errorf("session %s: %w", s.id, ErrSessionFinished)
	}
	if s.phase == PhaseIntro {
		s.start()
	}
	for s.phase == PhaseInProgress {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session %s abandoned at turn %d: %w", s.id, s.turn, err)
		}
		slot, ok := s.opts.AttackerPolicy.ChooseAction(s.attacker, s.defender)
		if err := s.round(slot, ok); err != nil {
			return err
		}
	}
	return nil
}

// round runs the attacker's action, then the defender's policy action.
func (s *Session) round(attackerSlot int, attackerActs bool) error {
	if err := s.act(s.attacker, s.defender, attackerSlot, attackerActs); err != nil {
		return err
	}
	if s.phase != PhaseInProgress {
		return nil
	}
	slot, ok := s.opts.DefenderPolicy.ChooseAction(s.defender, s.attacker)
	return s.act(s.defender, s.attacker, slot, ok)
}

// act resolves one action. useSkill=false passes the turn.
func (s *Session) act(actor, target *combat.Battler, slot int, useSkill bool) error {
	turn := s.turn + 1

	var res combat.ActionResult
	if useSkill {
		r, err := s.opts.Backend.Resolve(actor, target, slot, turn, s.rng)
		if err != nil {
			return fmt.Errorf("session %s turn %d: %w", s.id, turn, err)
		}
		res = r
	} else {
		res = s.opts.Backend.Pass(actor, turn)
	}

	s.turn = turn
	s.appendEntry(res.Entry)

	switch {
	case res.Defeated || target.IsDefeated():
		s.finish(actor.Side(), false)
	case s.turn >= s.opts.MaxTurns:
		s.finishByTurnLimit()
	}
	return nil
}

// finishByTurnLimit ends the battle: higher HP fraction wins, then higher
// speed, then the attacker.
func (s *Session) finishByTurnLimit() {
	s.appendEntry(model.TurnLogEntry{
		Turn:      s.turn,
		Actor:     model.SideNone,
		Narrative: fmt.Sprintf("Turn limit reached after %d turns", s.turn),
		Effect:    model.EffectTimeLimit,
		Tags:      []string{model.EffectTimeLimit},
	})

	a, d := s.attacker, s.defender
	winner := model.SideAttacker
	switch ra, rd := a.HPRatio(), d.HPRatio(); {
	case rd > ra:
		winner = model.SideDefender
	case rd == ra && d.Stats().Speed > a.Stats().Speed:
		winner = model.SideDefender
	}
	s.finish(winner, true)
}

func (s *Session) finish(winner model.Side, timeLimit bool) {
	if s.phase == PhaseResult {
		return
	}
	s.phase = PhaseResult
	s.winner = winner
	s.timeLimit = timeLimit

	w := s.battler(winner)
	s.appendEntry(model.TurnLogEntry{
		Turn:      s.turn,
		Actor:     winner,
		Narrative: fmt.Sprintf("%s wins the battle!", w.Name()),
		Effect:    model.EffectVictory,
		Tags:      []string{model.EffectVictory},
	})

	slog.Debug("battle finished",
		"session", s.id,
		"winner", w.Name(),
		"side", winner,
		"turns", s.turn,
		"timeLimit", timeLimit)
}

// appendEntry stamps the HP snapshot of both battlers and appends.
func (s *Session) appendEntry(e model.TurnLogEntry) {
	e.AttackerHP = s.attacker.CurrentHP()
	e.AttackerMaxHP = s.attacker.MaxHP()
	e.DefenderHP = s.defender.CurrentHP()
	e.DefenderMaxHP = s.defender.MaxHP()
	s.log = append(s.log, e)
}

func (s *Session) battler(side model.Side) *combat.Battler {
	if side == model.SideDefender {
		return s.defender
	}
	return s.attacker
}

// Result returns the terminal state. ErrNotFinished before PhaseResult.
func (s *Session) Result() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseResult {
		return Result{}, fmt.Errorf("session %s in phase %s: %w", s.id, s.phase, ErrNotFinished)
	}
	return Result{
		SessionID: s.id,
		Seed:      s.seed,
		Winner:    s.winner,
		WinnerID:  s.battler(s.winner).CreatureID(),
		LoserID:   s.battler(s.winner.Opponent()).CreatureID(),
		Turns:     s.turn,
		TimeLimit: s.timeLimit,
		Log:       append([]model.TurnLogEntry(nil), s.log...),
	}, nil
}

// Outcome computes the experience reward for the winner and its progression.
// Computed once per session.
func (s *Session) Outcome() (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseResult {
		return Outcome{}, fmt.Errorf("session %s in phase %s: %w", s.id, s.phase, ErrNotFinished)
	}
	if s.outcome != nil {
		return *s.outcome, nil
	}

	w, l := s.battler(s.winner), s.battler(s.winner.Opponent())
	wStats, lStats := w.Stats(), l.Stats()
	exp := scaleExp(combat.AwardExperience(wStats.Level, lStats.Level), s.opts.ExpRate)

	s.outcome = &Outcome{
		Winner:     s.winner,
		Loser:      s.winner.Opponent(),
		WinnerID:   w.CreatureID(),
		LoserID:    l.CreatureID(),
		ExpAwarded: exp,
		LevelUp:    combat.RewardExperience(w.Name(), wStats, exp),
	}
	return *s.outcome, nil
}

func scaleExp(exp int64, rate float64) int64 {
	if rate == 1.0 {
		return exp
	}
	return int64(math.Floor(float64(exp) * rate))
}
