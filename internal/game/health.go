package game

// Health tracks integer HP for a combatant. Damage and healing clamp to
// [0, Max]; a unit at zero is dead and stays dead.
type Health struct {
	Current int
	Max     int
}

func NewHealth(max int) Health {
	return Health{Current: max, Max: max}
}

// Damage reduces HP and returns the actual amount of health lost.
func (h *Health) Damage(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return before - h.Current
}

func (h *Health) Heal(amount int) {
	if amount <= 0 || h.Current <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return clampF(float64(h.Current)/float64(h.Max), 0, 1)
}

func (h *Health) IsDead() bool {
	return h.Current <= 0
}

// HealthBarColor returns green/yellow/red based on fraction.
func HealthBarColor(frac float64) RGB {
	if frac > 0.6 {
		return RGB{R: 60, G: 220, B: 60}
	}
	if frac > 0.3 {
		return RGB{R: 220, G: 220, B: 60}
	}
	return RGB{R: 220, G: 60, B: 60}
}
