package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barrage/internal/game"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "barrage.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTunablesDefaults(t *testing.T) {
	path := writeConfig(t, "")
	tun, err := loadTunables(path)
	require.NoError(t, err)
	assert.Equal(t, game.DefaultTunables(), tun, "an empty file keeps every default")
}

func TestLoadTunablesOverrides(t *testing.T) {
	path := writeConfig(t, `
[physics]
gravity = 200.0
wind_max = 10.0

[match]
turn_time = 45.0
team_size = 4

[powerups]
shield_value = 75
drop_chance = 0.5

[weather]
lightning_damage = 50
`)
	tun, err := loadTunables(path)
	require.NoError(t, err)

	assert.Equal(t, 200.0, tun.Gravity)
	assert.Equal(t, 10.0, tun.WindMax)
	assert.Equal(t, 45.0, tun.TurnTime)
	assert.Equal(t, 4, tun.TeamSize)
	assert.Equal(t, 75, tun.ShieldValue)
	assert.Equal(t, 0.5, tun.PowerUpChance)
	assert.Equal(t, 50, tun.LightningDamage)

	// Untouched sections keep their defaults.
	def := game.DefaultTunables()
	assert.Equal(t, def.MaxPower, tun.MaxPower)
	assert.Equal(t, def.CriticalDamage, tun.CriticalDamage)
	assert.Equal(t, def.HealthPack, tun.HealthPack)
}

func TestLoadTunablesMissingExplicitFile(t *testing.T) {
	_, err := loadTunables(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err, "an explicitly named config must exist")
}

func TestLoadTunablesRejectsEmptyTeams(t *testing.T) {
	path := writeConfig(t, `
[match]
team_size = 0
`)
	_, err := loadTunables(path)
	assert.ErrorContains(t, err, "team_size")
}

func TestLoadTunablesBadSyntax(t *testing.T) {
	path := writeConfig(t, "physics = [broken")
	_, err := loadTunables(path)
	assert.Error(t, err)
}
