package model

// Locatable is anything with a world position.
type Locatable interface {
	Position() Vec3
}

// Damageable is a damage sink.
// TakeDamage must clamp health at 0 and be a no-op once dead,
// so that death effects fire exactly once.
type Damageable interface {
	TakeDamage(amount float64)
	Health() float64
	MaxHealth() float64
	IsDead() bool
}

// Target is what a hostile agent perceives, pursues and shoots at.
// Referenced by agents, never owned.
type Target interface {
	Locatable
	Damageable
}

// HealthFraction returns health/maxHealth in [0,1].
// Zero maxHealth yields 0.
func HealthFraction(health, maxHealth float64) float64 {
	if maxHealth <= 0 {
		return 0
	}
	f := health / maxHealth
	return max(0, min(1, f))
}
