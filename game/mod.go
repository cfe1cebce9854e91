package game

import "errors"

// Team identifies one of the two rosters.
type Team int

const (
	Human Team = iota
	Alien
)

func (t Team) String() string {
	if t == Human {
		return "Human"
	}
	return "Alien"
}

// ShipID indexes a ship in the world roster. IDs are stable across clones.
type ShipID int

// CollisionSetting controls which ship pairs can collide with each other.
type CollisionSetting int

const (
	CollisionsOff CollisionSetting = iota
	EnemyOnly
	AllShips
)

// ParseCollisionSetting maps a config value to a CollisionSetting.
func ParseCollisionSetting(s string) (CollisionSetting, error) {
	switch s {
	case "off", "collisionsOff":
		return CollisionsOff, nil
	case "enemy", "enemyOnly", "onlyEnemyShips":
		return EnemyOnly, nil
	case "all", "allShips":
		return AllShips, nil
	}
	return CollisionsOff, errors.New("unknown collision setting: " + s)
}

// ErrTooManyShips is returned when a roster does not fit in one row of the grid.
var ErrTooManyShips = errors.New("too many ships for the grid width")

// ErrDuplicateShipName is returned when two ships share a name.
var ErrDuplicateShipName = errors.New("duplicate ship name")

// ShipSpec describes a ship to place at construction. The team is given by the
// roster it is passed in.
type ShipSpec struct {
	Name       string
	Discounted bool // Score rollouts with the time-discounted reward sum
}
