package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/dragonarena/internal/arena"
	"github.com/udisondev/dragonarena/internal/model"
)

func TestPrintMatrix(t *testing.T) {
	stats, err := arena.Simulate(context.Background(), arena.SimulationConfig{
		BattlesPerMatchup: 2, Workers: 2, Level: 3, Tier: model.PowerSingle, SeedKey: "t",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	printMatrix(&buf, stats)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(model.Elements())+1)
	assert.Contains(t, lines[0], "Electric")
	assert.Contains(t, lines[1], "Fire")
	assert.Contains(t, lines[1], "%")
}
