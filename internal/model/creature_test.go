package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatureDefinition_Validate(t *testing.T) {
	valid := CreatureDefinition{ID: 1, Element: ElementFire, PowerTier: PowerSingle, Level: 1}

	tests := []struct {
		name    string
		mutate  func(*CreatureDefinition)
		wantErr error
		ok      bool
	}{
		{"valid", func(*CreatureDefinition) {}, nil, true},
		{"bad element", func(c *CreatureDefinition) { c.Element = 11 }, ErrInvalidElement, false},
		{"bad tier", func(c *CreatureDefinition) { c.PowerTier = -1 }, ErrInvalidPowerTier, false},
		{"zero level", func(c *CreatureDefinition) { c.Level = 0 }, nil, false},
		{"negative exp", func(c *CreatureDefinition) { c.Experience = -5 }, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSide(t *testing.T) {
	assert.Equal(t, SideDefender, SideAttacker.Opponent())
	assert.Equal(t, SideAttacker, SideDefender.Opponent())
	assert.Equal(t, SideNone, SideNone.Opponent())
	assert.Equal(t, "attacker", SideAttacker.String())
	assert.Equal(t, "none", Side(7).String())
}

func TestSkill_IsHeal(t *testing.T) {
	assert.True(t, Skill{Kind: SkillHeal}.IsHeal())
	assert.False(t, Skill{Kind: SkillDamage}.IsHeal())
	assert.Equal(t, "ultimate", SkillUltimate.String())
	assert.Equal(t, "heal", SkillHeal.String())
}
