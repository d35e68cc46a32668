package model

import "fmt"

// CreatureDefinition is a creature as owned by the collection layer.
// Combat never mutates it; it derives DerivedStats instead.
type CreatureDefinition struct {
	ID         int64
	Name       string
	Element    Element
	PowerTier  PowerTier
	Level      int32
	Experience int64
}

// Validate checks enumerations and the level range lower bound.
func (c CreatureDefinition) Validate() error {
	if !c.Element.Valid() {
		return fmt.Errorf("creature %d: %w: %d", c.ID, ErrInvalidElement, c.Element)
	}
	if !c.PowerTier.Valid() {
		return fmt.Errorf("creature %d: %w: %d", c.ID, ErrInvalidPowerTier, c.PowerTier)
	}
	if c.Level < 1 {
		return fmt.Errorf("creature %d: level must be positive, got %d", c.ID, c.Level)
	}
	if c.Experience < 0 {
		return fmt.Errorf("creature %d: experience must be non-negative, got %d", c.ID, c.Experience)
	}
	return nil
}

// DerivedStats is the numeric snapshot computed from a creature and a level.
// HP never exceeds MaxHP. Exp stays below ExpToNextLevel outside a level-up step.
type DerivedStats struct {
	HP             int32
	MaxHP          int32
	Attack         int32
	Defense        int32
	Speed          int32
	Level          int32
	Exp            int64
	ExpToNextLevel int64
}
