package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"barrage/internal/game"
)

func main() {
	var (
		seed    = flag.Uint64("seed", 0, "match seed (0 = derive from clock)")
		hotseat = flag.Bool("hotseat", false, "both teams human-controlled")
		debug   = flag.Bool("debug", false, "write the battle log to stderr")
		mute    = flag.Bool("mute", false, "disable audio")
		cfgPath = flag.String("config", "", "balance config file (default: barrage.toml in cwd, if present)")
	)
	flag.Parse()

	tun, err := loadTunables(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}

	game.RunDesktop(game.Options{
		Seed:    s,
		Tun:     tun,
		Hotseat: *hotseat,
		Debug:   *debug,
		Mute:    *mute,
	})
}

// loadTunables merges an optional TOML config over the compiled-in balance.
// A missing default config is fine; an explicit --config that can't be read
// is an error.
func loadTunables(path string) (game.Tunables, error) {
	tun := game.DefaultTunables()

	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("barrage")
		v.AddConfigPath(".")
	}

	v.SetDefault("physics.gravity", tun.Gravity)
	v.SetDefault("physics.wind_accel", tun.WindAccel)
	v.SetDefault("physics.max_power", tun.MaxPower)
	v.SetDefault("physics.wind_max", tun.WindMax)
	v.SetDefault("match.turn_time", tun.TurnTime)
	v.SetDefault("match.team_size", tun.TeamSize)
	v.SetDefault("combat.hit_radius", tun.HitRadius)
	v.SetDefault("combat.critical_damage", tun.CriticalDamage)
	v.SetDefault("powerups.shield_value", tun.ShieldValue)
	v.SetDefault("powerups.damage_boost_mul", tun.DamageBoostMul)
	v.SetDefault("powerups.damage_boost_uses", tun.DamageBoostUses)
	v.SetDefault("powerups.double_shot_uses", tun.DoubleShotUses)
	v.SetDefault("powerups.health_pack", tun.HealthPack)
	v.SetDefault("powerups.drop_chance", tun.PowerUpChance)
	v.SetDefault("weather.lightning_damage", tun.LightningDamage)
	v.SetDefault("weather.lightning_radius", tun.LightningRadius)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			return tun, nil
		}
		return tun, err
	}

	tun.Gravity = v.GetFloat64("physics.gravity")
	tun.WindAccel = v.GetFloat64("physics.wind_accel")
	tun.MaxPower = v.GetFloat64("physics.max_power")
	tun.WindMax = v.GetFloat64("physics.wind_max")
	tun.TurnTime = v.GetFloat64("match.turn_time")
	tun.TeamSize = v.GetInt("match.team_size")
	tun.HitRadius = v.GetFloat64("combat.hit_radius")
	tun.CriticalDamage = v.GetInt("combat.critical_damage")
	tun.ShieldValue = v.GetInt("powerups.shield_value")
	tun.DamageBoostMul = v.GetFloat64("powerups.damage_boost_mul")
	tun.DamageBoostUses = v.GetInt("powerups.damage_boost_uses")
	tun.DoubleShotUses = v.GetInt("powerups.double_shot_uses")
	tun.HealthPack = v.GetInt("powerups.health_pack")
	tun.PowerUpChance = v.GetFloat64("powerups.drop_chance")
	tun.LightningDamage = v.GetInt("weather.lightning_damage")
	tun.LightningRadius = v.GetFloat64("weather.lightning_radius")

	if tun.TeamSize < 1 {
		return tun, fmt.Errorf("match.team_size must be at least 1")
	}
	return tun, nil
}
