package game

type WeaponKind int

const (
	WeaponBazooka WeaponKind = iota
	WeaponMortar
	WeaponCluster
	WeaponRifle

	WeaponKindCount // must stay last
)

// WeaponConfig is the static balance table entry for one weapon.
type WeaponConfig struct {
	Name       string
	BaseDamage int
	Radius     float64
	CraterMul  float64 // crater depth multiplier
	SpeedMul   float64 // launch speed scale relative to charge power
	Instant    bool    // fired at fixed full power via the instant intent
	StartAmmo  int     // -1 = unlimited

	// Cluster split: >0 means the primary impact spawns this many
	// submunitions instead of exploding.
	ClusterCount  int
	ClusterDamage int
	ClusterRadius float64
	ClusterCrater float64
	ClusterSpeed  float64 // child launch speed, px/s, before jitter
}

var weaponTable = [WeaponKindCount]WeaponConfig{
	WeaponBazooka: {
		Name:       "Bazooka",
		BaseDamage: 40,
		Radius:     26,
		CraterMul:  0.8,
		SpeedMul:   1.0,
		StartAmmo:  -1,
	},
	WeaponMortar: {
		Name:       "Mortar",
		BaseDamage: 55,
		Radius:     34,
		CraterMul:  1.0,
		SpeedMul:   0.85,
		StartAmmo:  3,
	},
	WeaponCluster: {
		Name:          "Cluster Bomb",
		SpeedMul:      0.9,
		StartAmmo:     2,
		ClusterCount:  5,
		ClusterDamage: 18,
		ClusterRadius: 12,
		ClusterCrater: 0.5,
		ClusterSpeed:  95,
	},
	WeaponRifle: {
		Name:       "Rifle",
		BaseDamage: 30,
		Radius:     8,
		CraterMul:  0.3,
		SpeedMul:   1.6,
		Instant:    true,
		StartAmmo:  4,
	},
}

// WeaponFor returns the balance entry for a weapon kind.
func WeaponFor(kind WeaponKind) WeaponConfig {
	if kind < 0 || kind >= WeaponKindCount {
		return weaponTable[WeaponBazooka]
	}
	return weaponTable[kind]
}

func (k WeaponKind) String() string {
	return WeaponFor(k).Name
}

// startingAmmo builds a fresh ammo map from the weapon table.
func startingAmmo() map[WeaponKind]int {
	ammo := make(map[WeaponKind]int, WeaponKindCount)
	for k := WeaponKind(0); k < WeaponKindCount; k++ {
		ammo[k] = weaponTable[k].StartAmmo
	}
	return ammo
}
