package game

// Ship is a combat agent. Its command queue and reward ledger are only ever
// appended to or resliced, never written in place, so clones can share them.
type Ship struct {
	ID            ShipID
	Team          Team
	Name          string
	Position      Point
	Bearing       float64
	LeftMissile   bool
	RightMissile  bool
	LastLaserTick int
	Health        int
	Dead          bool
	Discounted    bool

	commands []Command
	ledger   []RewardEvent
}

func newShip(id ShipID, team Team, spec ShipSpec, rules Rules) Ship {
	return Ship{
		ID:           id,
		Team:         team,
		Name:         spec.Name,
		LeftMissile:  true,
		RightMissile: true,
		Health:       rules.ShipHealth,
		Discounted:   spec.Discounted,
	}
}

// CanMove reports whether the ship is alive and has finished its last move.
func (s *Ship) CanMove() bool {
	return !s.Dead && len(s.commands) == 0
}

// Commands returns a copy of the pending command queue.
func (s *Ship) Commands() []Command {
	out := make([]Command, len(s.commands))
	copy(out, s.commands)
	return out
}

func (s *Ship) canFireLaser(tick int, rules Rules) bool {
	return s.LastLaserTick+rules.LaserCooldown < tick
}

func (s *Ship) canFireMissile(left bool, tick int, rules Rules) bool {
	if tick <= rules.MissileEmbargo {
		return false
	}
	if left {
		return s.LeftMissile
	}
	return s.RightMissile
}

func (s *Ship) addCommand(cmd Command) {
	s.commands = append(s.commands, cmd)
}

func (s *Ship) currentCommand() (Command, bool) {
	if len(s.commands) == 0 {
		return Command{}, false
	}
	return s.commands[0], true
}

func (s *Ship) commandFinished() {
	s.commands = s.commands[1:]
	if len(s.commands) == 0 {
		s.commands = nil
	}
}

func (s *Ship) kill() {
	s.commands = nil
	s.Dead = true
}

// isTouched tests point against the bearing-independent, fudged bounding box.
func (s *Ship) isTouched(p Point, rules Rules) bool {
	if s.Dead {
		return false
	}
	halfW := rules.ShipWidth * rules.BoundingFudge / 2
	halfH := rules.ShipHeight * rules.BoundingFudge / 2
	if p.X < s.Position.X-halfW || p.X > s.Position.X+halfW {
		return false
	}
	if p.Y < s.Position.Y-halfH || p.Y > s.Position.Y+halfH {
		return false
	}
	return true
}

// LeftMissilePosition is where the left missile sits, rotated with the ship.
func (s *Ship) LeftMissilePosition() Point {
	return s.relative(leftMissileOffset)
}

// RightMissilePosition is where the right missile sits, rotated with the ship.
func (s *Ship) RightMissilePosition() Point {
	return s.relative(rightMissileOffset)
}

func (s *Ship) relative(offset Point) Point {
	p := Point{X: s.Position.X + offset.X, Y: s.Position.Y + offset.Y}
	return rotate(p, s.Position, s.Bearing)
}

// share returns a copy of s whose queue and ledger alias s but have capacity
// equal to length, so the first append on either side reallocates.
func (s *Ship) share() Ship {
	c := *s
	c.commands = s.commands[:len(s.commands):len(s.commands)]
	c.ledger = s.ledger[:len(s.ledger):len(s.ledger)]
	return c
}
