package game

// Rules holds the tuning constants of the physics and combat model.
type Rules struct {
	RotationSpeed  float64 // Degrees per tick
	ThrustSpeed    float64 // Pixels per tick
	MissileSpeed   float64
	LaserSpeed     float64
	ShipWidth      float64
	ShipHeight     float64
	BoundingFudge  float64 // Scales the nominal ship box for contact tests
	ShipHealth     int
	LaserDamage    int
	MissileDamage  int
	LaserCooldown  int // Ticks before a laser can be fired again
	MissileEmbargo int // No missiles while tick <= MissileEmbargo
}

// NewStandardRules returns the rules the simulator was tuned with.
func NewStandardRules() Rules {
	return Rules{
		RotationSpeed:  25,
		ThrustSpeed:    25,
		MissileSpeed:   35,
		LaserSpeed:     75,
		ShipWidth:      35,
		ShipHeight:     48,
		BoundingFudge:  1.5,
		ShipHealth:     90, // About 3 laser hits
		LaserDamage:    30,
		MissileDamage:  1000,
		LaserCooldown:  5,
		MissileEmbargo: 15,
	}
}

// Body-relative spawn offsets, rotated by the ship bearing when firing.
var (
	laserOffset        = Point{X: 0, Y: -20}
	leftMissileOffset  = Point{X: -10, Y: 5}
	rightMissileOffset = Point{X: 10, Y: 5}
)
