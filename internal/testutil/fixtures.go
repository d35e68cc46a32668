package testutil

import "github.com/udisondev/dragonarena/internal/model"

// Fixtures содержит заранее заданных существ для тестов,
// чтобы не дублировать определения между пакетами.
// ID нулевые: репозиторий назначает их при вставке, in-memory хранилища задают свои.
var Fixtures = struct {
	// Volt заведомо сильнее Ember: Combined Power, уровень 30.
	Volt model.CreatureDefinition
	// Ember самый слабый вариант: Single Power, уровень 1.
	Ember model.CreatureDefinition

	// Ripple и Cinder равны по уровню и тиру, Water против Fire.
	Ripple model.CreatureDefinition
	Cinder model.CreatureDefinition
}{
	Volt:   model.CreatureDefinition{Name: "Volt", Element: model.ElementElectric, PowerTier: model.PowerCombined, Level: 30},
	Ember:  model.CreatureDefinition{Name: "Ember", Element: model.ElementFire, PowerTier: model.PowerSingle, Level: 1},
	Ripple: model.CreatureDefinition{Name: "Ripple", Element: model.ElementWater, PowerTier: model.PowerDual, Level: 10},
	Cinder: model.CreatureDefinition{Name: "Cinder", Element: model.ElementFire, PowerTier: model.PowerDual, Level: 10},
}

// WithID returns a copy of def carrying the given ID.
func WithID(def model.CreatureDefinition, id int64) model.CreatureDefinition {
	def.ID = id
	return def
}
