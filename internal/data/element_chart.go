package data

import "github.com/udisondev/dragonarena/internal/model"

// Effectiveness multipliers.
const (
	MultiplierStrong  = 1.5
	MultiplierNeutral = 1.0
	MultiplierWeak    = 0.7
)

// elementRelation lists which defenders an element hits hard and which it
// barely scratches. Relationships are intentionally asymmetric.
type elementRelation struct {
	strong []model.Element
	weak   []model.Element
}

// elementChart is indexed by attacker element.
// Core cycle: Fire > Earth > Air > Water > Fire; Light and Dark hit each other hard.
var elementChart = [...]elementRelation{
	model.ElementFire:     {strong: el(model.ElementEarth, model.ElementNature), weak: el(model.ElementWater, model.ElementIce)},
	model.ElementWater:    {strong: el(model.ElementFire, model.ElementElectric), weak: el(model.ElementAir, model.ElementNature)},
	model.ElementEarth:    {strong: el(model.ElementAir, model.ElementElectric, model.ElementMetal), weak: el(model.ElementFire, model.ElementNature)},
	model.ElementAir:      {strong: el(model.ElementWater, model.ElementNature), weak: el(model.ElementEarth, model.ElementElectric, model.ElementIce)},
	model.ElementDark:     {strong: el(model.ElementLight, model.ElementAir), weak: el(model.ElementEarth)},
	model.ElementLight:    {strong: el(model.ElementDark, model.ElementAir), weak: el(model.ElementMetal)},
	model.ElementNature:   {strong: el(model.ElementWater, model.ElementEarth), weak: el(model.ElementFire, model.ElementIce)},
	model.ElementMetal:    {strong: el(model.ElementIce, model.ElementNature), weak: el(model.ElementFire, model.ElementElectric)},
	model.ElementIce:      {strong: el(model.ElementEarth, model.ElementNature), weak: el(model.ElementFire, model.ElementMetal)},
	model.ElementElectric: {strong: el(model.ElementWater, model.ElementAir), weak: el(model.ElementEarth)},
}

func el(e ...model.Element) []model.Element { return e }

// Effectiveness returns the damage multiplier for attacker hitting defender.
// Same element and pairs missing from the chart are neutral; the function is
// total, unknown elements are neutral too.
func Effectiveness(attacker, defender model.Element) float64 {
	if attacker == defender || !attacker.Valid() || !defender.Valid() {
		return MultiplierNeutral
	}
	rel := elementChart[attacker]
	for _, e := range rel.strong {
		if e == defender {
			return MultiplierStrong
		}
	}
	for _, e := range rel.weak {
		if e == defender {
			return MultiplierWeak
		}
	}
	return MultiplierNeutral
}

// EffectivenessTag maps a multiplier to its log tag ("" when neutral).
func EffectivenessTag(mult float64) string {
	switch {
	case mult > MultiplierNeutral:
		return model.EffectSuperEffective
	case mult < MultiplierNeutral:
		return model.EffectNotVeryEffective
	default:
		return ""
	}
}

// StrongAgainst returns the defenders the element is strong against.
func StrongAgainst(e model.Element) []model.Element {
	if !e.Valid() {
		return nil
	}
	return append([]model.Element(nil), elementChart[e].strong...)
}

// WeakAgainst returns the defenders the element is weak against.
func WeakAgainst(e model.Element) []model.Element {
	if !e.Valid() {
		return nil
	}
	return append([]model.Element(nil), elementChart[e].weak...)
}
