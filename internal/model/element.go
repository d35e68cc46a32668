package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidElement is returned when an element value is outside the enumeration.
var ErrInvalidElement = errors.New("invalid element")

// ErrInvalidPowerTier is returned when a power tier value is outside the enumeration.
var ErrInvalidPowerTier = errors.New("invalid power tier")

// Element is the elemental type of a creature and of its skills.
// Values match the on-chain encoding (0-9).
type Element int32

const (
	ElementFire Element = iota
	ElementWater
	ElementEarth
	ElementAir
	ElementDark
	ElementLight
	ElementNature
	ElementMetal
	ElementIce
	ElementElectric

	elementCount
)

var elementNames = [elementCount]string{
	"Fire", "Water", "Earth", "Air", "Dark", "Light", "Nature", "Metal", "Ice", "Electric",
}

// Elements returns every element in enumeration order.
func Elements() []Element {
	out := make([]Element, 0, elementCount)
	for e := Element(0); e < elementCount; e++ {
		out = append(out, e)
	}
	return out
}

// Valid reports whether e belongs to the enumeration.
func (e Element) Valid() bool {
	return e >= 0 && e < elementCount
}

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int32(e))
	}
	return elementNames[e]
}

// ParseElement parses an element name (case-insensitive).
func ParseElement(s string) (Element, error) {
	s = strings.TrimSpace(s)
	for e := Element(0); e < elementCount; e++ {
		if strings.EqualFold(elementNames[e], s) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidElement, s)
}

// PowerTier is the rarity class of a creature, independent of level.
type PowerTier int32

const (
	PowerSingle   PowerTier = 0
	PowerDual     PowerTier = 1
	PowerCombined PowerTier = 2
)

// Valid reports whether t belongs to the enumeration.
func (t PowerTier) Valid() bool {
	return t >= PowerSingle && t <= PowerCombined
}

func (t PowerTier) String() string {
	switch t {
	case PowerSingle:
		return "Single Power"
	case PowerDual:
		return "Dual Power"
	case PowerCombined:
		return "Combined Power"
	default:
		return fmt.Sprintf("PowerTier(%d)", int32(t))
	}
}

// ParsePowerTier accepts "single", "dual" or "combined" (case-insensitive).
func ParsePowerTier(s string) (PowerTier, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), " power") {
	case "single":
		return PowerSingle, nil
	case "dual":
		return PowerDual, nil
	case "combined":
		return PowerCombined, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPowerTier, s)
}
