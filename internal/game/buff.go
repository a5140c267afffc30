package game

type BuffKind int

const (
	BuffShield BuffKind = iota
	BuffDamageBoost
	BuffDoubleShot

	BuffKindCount // must stay last
)

func (k BuffKind) String() string {
	switch k {
	case BuffShield:
		return "shield"
	case BuffDamageBoost:
		return "damage boost"
	case BuffDoubleShot:
		return "double shot"
	}
	return "?"
}

// Buff is a timed or use-limited modifier on a combatant. Value is the
// buff's remaining numeric charge (shield HP). Uses counts remaining shots
// for use-limited kinds; -1 means not use-limited.
type Buff struct {
	Kind  BuffKind
	Value int
	Uses  int
}

// expired reports whether the buff should be removed.
func (b Buff) expired() bool {
	if b.Uses == 0 {
		return true
	}
	if b.Kind == BuffShield && b.Value <= 0 {
		return true
	}
	return false
}

// GrantBuff attaches a buff, enforcing at most one instance per kind:
// shields stack their value onto an existing shield, all other kinds
// replace the previous instance.
func (c *Combatant) GrantBuff(b Buff) {
	for i := range c.Buffs {
		if c.Buffs[i].Kind != b.Kind {
			continue
		}
		if b.Kind == BuffShield {
			c.Buffs[i].Value += b.Value
		} else {
			c.Buffs[i] = b
		}
		return
	}
	c.Buffs = append(c.Buffs, b)
}

// BuffValue returns the remaining value of the buff of the given kind,
// or 0 when absent.
func (c *Combatant) BuffValue(kind BuffKind) int {
	for i := range c.Buffs {
		if c.Buffs[i].Kind == kind {
			return c.Buffs[i].Value
		}
	}
	return 0
}

// HasBuff reports whether a buff of the given kind is active.
func (c *Combatant) HasBuff(kind BuffKind) bool {
	for i := range c.Buffs {
		if c.Buffs[i].Kind == kind {
			return true
		}
	}
	return false
}

// AbsorbWithShield routes damage through an active shield buff and returns
// the unabsorbed excess. The shield is removed once drained.
func (c *Combatant) AbsorbWithShield(damage int) int {
	if damage <= 0 {
		return 0
	}
	for i := range c.Buffs {
		if c.Buffs[i].Kind != BuffShield {
			continue
		}
		absorbed := damage
		if absorbed > c.Buffs[i].Value {
			absorbed = c.Buffs[i].Value
		}
		c.Buffs[i].Value -= absorbed
		c.pruneBuffs()
		return damage - absorbed
	}
	return damage
}

// ConsumeBuffUse decrements the remaining uses of a use-limited buff.
// Called at the moment the owner fires, not when damage lands.
func (c *Combatant) ConsumeBuffUse(kind BuffKind) {
	for i := range c.Buffs {
		if c.Buffs[i].Kind != kind {
			continue
		}
		if c.Buffs[i].Uses > 0 {
			c.Buffs[i].Uses--
		}
		break
	}
	c.pruneBuffs()
}

// DamageMultiplier returns the owner's active damage multiplier.
func (c *Combatant) DamageMultiplier(tun *Tunables) float64 {
	if c.HasBuff(BuffDamageBoost) {
		return tun.DamageBoostMul
	}
	return 1.0
}

func (c *Combatant) pruneBuffs() {
	kept := c.Buffs[:0]
	for _, b := range c.Buffs {
		if !b.expired() {
			kept = append(kept, b)
		}
	}
	c.Buffs = kept
}
