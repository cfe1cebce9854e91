package game

import "strconv"

// ProjectileKind distinguishes lasers from missiles.
type ProjectileKind int

const (
	Laser ProjectileKind = iota
	Missile
)

func (k ProjectileKind) String() string {
	if k == Laser {
		return "Laser"
	}
	return "Missile"
}

// Projectile is a laser bolt or missile flying along a fixed bearing.
type Projectile struct {
	Kind     ProjectileKind
	Team     Team
	Seq      int // Per-world sequence number, stable across clones
	Owner    ShipID
	Position Point
	Bearing  float64
	Damage   int
	Dead     bool
}

// Name is the display name used by replays, e.g. laser3 or missile7.
func (p *Projectile) Name() string {
	if p.Kind == Laser {
		return "laser" + strconv.Itoa(p.Seq)
	}
	return "missile" + strconv.Itoa(p.Seq)
}

func (p *Projectile) kill() {
	p.Dead = true
}
