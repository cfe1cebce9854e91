package game

import (
	"fmt"
	"math"
)

// WorldConfig is the construction input of a World.
type WorldConfig struct {
	Height     int
	Width      int
	CellSize   int
	Collisions CollisionSetting
	Rules      Rules
}

// World owns every ship and projectile and advances them one tick at a time.
// It never draws random numbers: all randomness comes from the callers choosing moves.
type World struct {
	height     int
	width      int
	cellSize   int
	collisions CollisionSetting
	rules      Rules

	ships    []Ship            // Humans first, then aliens
	byName   map[string]ShipID // Read-only after construction, shared by clones
	lasers   []Projectile
	missiles []Projectile
	live     [2]int // Live ship count per Team

	tick          int
	over          bool
	actions       []Action
	projectileSeq int
	effectSeq     int
}

// NewWorld places the rosters on the grid. Humans start on the bottom row facing
// up, aliens on the top row facing down.
func NewWorld(cfg WorldConfig, humans, aliens []ShipSpec) (*World, error) {
	if cfg.CellSize <= 0 || cfg.Height < cfg.CellSize || cfg.Width < cfg.CellSize {
		return nil, fmt.Errorf("invalid world dimensions %dx%d with cell size %d", cfg.Height, cfg.Width, cfg.CellSize)
	}
	w := &World{
		height:     cfg.Height,
		width:      cfg.Width,
		cellSize:   cfg.CellSize,
		collisions: cfg.Collisions,
		rules:      cfg.Rules,
		byName:     make(map[string]ShipID, len(humans)+len(aliens)),
	}
	if len(humans) > w.ColCount() {
		return nil, fmt.Errorf("%w: can only place %d human ships, got %d", ErrTooManyShips, w.ColCount(), len(humans))
	}
	if len(aliens) > w.ColCount() {
		return nil, fmt.Errorf("%w: can only place %d alien ships, got %d", ErrTooManyShips, w.ColCount(), len(aliens))
	}

	seen := make(map[string]bool, len(humans)+len(aliens))
	for _, specs := range [][]ShipSpec{humans, aliens} {
		for _, spec := range specs {
			if seen[spec.Name] {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateShipName, spec.Name)
			}
			seen[spec.Name] = true
		}
	}

	w.ships = make([]Ship, 0, len(humans)+len(aliens))
	w.place(Human, humans, w.RowCount(), 0)
	w.place(Alien, aliens, 1, 180)
	w.over = w.IsOver()
	return w, nil
}

// place fans a roster out from the middle column, alternating right then left.
func (w *World) place(team Team, specs []ShipSpec, row int, bearing float64) {
	middle := int(math.Ceil(float64(w.ColCount()) / 2))
	for i, spec := range specs {
		offset := int(math.Ceil(float64(i) / 2))
		col := middle - offset
		if i%2 == 1 {
			col = middle + offset
		}
		id := ShipID(len(w.ships))
		ship := newShip(id, team, spec, w.rules)
		ship.Position = w.CenterPoint(Cell{Row: row, Col: col})
		ship.Bearing = bearing
		w.ships = append(w.ships, ship)
		w.byName[spec.Name] = id
		w.live[team]++
	}
}

// RowCount returns the number of grid rows.
func (w *World) RowCount() int {
	return w.height / w.cellSize
}

// ColCount returns the number of grid columns.
func (w *World) ColCount() int {
	return w.width / w.cellSize
}

// CellInWorld reports whether the cell lies on the grid.
func (w *World) CellInWorld(c Cell) bool {
	return c.Row >= 1 && c.Row <= w.RowCount() && c.Col >= 1 && c.Col <= w.ColCount()
}

// CenterPoint returns the world coordinate of a cell's center.
func (w *World) CenterPoint(c Cell) Point {
	cs := float64(w.cellSize)
	return Point{
		X: float64(c.Col)*cs - cs/2,
		Y: float64(c.Row)*cs - cs/2,
	}
}

// CellFromPoint returns the cell containing p.
func (w *World) CellFromPoint(p Point) Cell {
	cs := float64(w.cellSize)
	return Cell{
		Row: int(math.Ceil(p.Y / cs)),
		Col: int(math.Ceil(p.X / cs)),
	}
}

func (w *World) Tick() int               { return w.tick }
func (w *World) NumShips() int           { return len(w.ships) }
func (w *World) LiveCount(team Team) int { return w.live[team] }

// Ship returns the ship with the given id.
func (w *World) Ship(id ShipID) *Ship {
	return &w.ships[id]
}

// ShipByName looks a ship up by name.
func (w *World) ShipByName(name string) (*Ship, bool) {
	id, ok := w.byName[name]
	if !ok {
		return nil, false
	}
	return &w.ships[id], true
}

// Roster returns the ids of a team's ships in placement order.
func (w *World) Roster(team Team) []ShipID {
	var ids []ShipID
	for i := range w.ships {
		if w.ships[i].Team == team {
			ids = append(ids, ShipID(i))
		}
	}
	return ids
}

// Lasers returns a snapshot of the lasers in flight.
func (w *World) Lasers() []Projectile {
	return liveProjectiles(w.lasers)
}

// Missiles returns a snapshot of the missiles in flight.
func (w *World) Missiles() []Projectile {
	return liveProjectiles(w.missiles)
}

// Actions returns the action log of the tick just computed.
func (w *World) Actions() []Action {
	return w.actions
}

// IsOver reports whether either roster has been wiped out. Once true it stays true.
func (w *World) IsOver() bool {
	return w.live[Human] == 0 || w.live[Alien] == 0
}

// WinningTeam returns the surviving team, or false while the game runs or when
// both sides were destroyed.
func (w *World) WinningTeam() (Team, bool) {
	if !w.IsOver() {
		return Human, false
	}
	if w.live[Human] > 0 {
		return Human, true
	}
	if w.live[Alien] > 0 {
		return Alien, true
	}
	return Human, false
}

// Step computes one tick of physics. The order of the phases is fixed.
func (w *World) Step(tick int) {
	w.tick = tick
	w.actions = nil

	w.stepProjectiles()
	for i := range w.ships {
		w.stepShip(&w.ships[i])
	}
	w.checkCollisions()
	w.checkGameOver()
}

// stepProjectiles moves every live projectile and drops those that left the map.
func (w *World) stepProjectiles() {
	w.lasers = w.advanceProjectiles(w.lasers, w.rules.LaserSpeed)
	w.missiles = w.advanceProjectiles(w.missiles, w.rules.MissileSpeed)
}

func (w *World) advanceProjectiles(ps []Projectile, speed float64) []Projectile {
	kept := ps[:0]
	for i := range ps {
		p := ps[i]
		if p.Dead {
			continue
		}
		p.Position = advance(p.Position, p.Bearing, speed)
		if !w.CellInWorld(w.CellFromPoint(p.Position)) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func (w *World) stepShip(s *Ship) {
	cmd, ok := s.currentCommand()
	if !ok {
		return
	}
	switch cmd.Kind {
	case ChangeBearing:
		w.stepRotation(s, cmd)
	case MoveForward:
		w.stepThrust(s, cmd)
	case FireLaser:
		w.fireLaser(s)
	case FireLeftMissile:
		w.fireMissile(s, true)
	case FireRightMissile:
		w.fireMissile(s, false)
	}
}

// stepRotation turns the ship one step in the direction fixed at command creation.
// Within one step of the target the bearing snaps and the command completes.
func (w *World) stepRotation(s *Ship, cmd Command) {
	step := w.rules.RotationSpeed
	if rotationDiff(s.Bearing, cmd.TargetBearing) < step {
		s.Bearing = cmd.TargetBearing
		s.commandFinished()
		return
	}
	if cmd.Clockwise {
		s.Bearing = normalizeBearing(s.Bearing + step)
	} else {
		s.Bearing = normalizeBearing(s.Bearing - step)
	}
	if rotationDiff(s.Bearing, cmd.TargetBearing) < step {
		s.Bearing = cmd.TargetBearing
		s.commandFinished()
	}
}

// stepThrust flies straight at the target cell center.
func (w *World) stepThrust(s *Ship, cmd Command) {
	target := w.CenterPoint(cmd.Target)
	dx, dy := target.X-s.Position.X, target.Y-s.Position.Y
	distance := math.Hypot(dx, dy)
	step := w.rules.ThrustSpeed
	if distance > step {
		s.Position.X += dx / distance * step
		s.Position.Y += dy / distance * step
		return
	}
	s.Position = target
	s.commandFinished()
}

func (w *World) fireLaser(s *Ship) {
	s.LastLaserTick = w.tick
	w.projectileSeq++
	w.lasers = append(w.lasers, Projectile{
		Kind:     Laser,
		Team:     s.Team,
		Seq:      w.projectileSeq,
		Owner:    s.ID,
		Position: s.relative(laserOffset),
		Bearing:  s.Bearing,
		Damage:   w.rules.LaserDamage,
	})
	s.commandFinished()
}

func (w *World) fireMissile(s *Ship, left bool) {
	defer s.commandFinished()
	if (left && !s.LeftMissile) || (!left && !s.RightMissile) {
		return
	}
	pos := s.RightMissilePosition()
	if left {
		pos = s.LeftMissilePosition()
		s.LeftMissile = false
	} else {
		s.RightMissile = false
	}
	w.projectileSeq++
	w.missiles = append(w.missiles, Projectile{
		Kind:     Missile,
		Team:     s.Team,
		Seq:      w.projectileSeq,
		Owner:    s.ID,
		Position: pos,
		Bearing:  s.Bearing,
		Damage:   w.rules.MissileDamage,
	})
	actionType := FireAlienMissileAction
	if s.Team == Human {
		actionType = FireHumanMissileAction
	}
	w.logAction(actionType, s.Name, s.Position, "")
}

// checkGameOver registers terminal rewards on the tick the game ends.
func (w *World) checkGameOver() {
	if w.over || !w.IsOver() {
		return
	}
	w.over = true

	message := "Both Sides Have Been Defeated!"
	if winner, ok := w.WinningTeam(); ok {
		message = "Aliens Win!"
		if winner == Human {
			message = "Humans Win!"
		}
	}
	w.actions = append(w.actions, Action{Type: MessageAction, Text: message})

	for i := range w.ships {
		s := &w.ships[i]
		if s.Dead {
			continue
		}
		s.RegisterReward(Survived, w.tick)
		if w.live[s.Team] == 0 {
			s.RegisterReward(TeamLost, w.tick)
		} else {
			s.RegisterReward(TeamWon, w.tick)
		}
	}
}

func (w *World) logAction(t ActionType, id string, at Point, text string) {
	w.actions = append(w.actions, Action{Type: t, ID: id, X: at.X, Y: at.Y, Text: text})
}

// applyMove expands a move into commands. Requests the legal move filter would
// have rejected are ignored.
func (w *World) applyMove(s *Ship, m Move) {
	if !s.CanMove() || !w.CellInWorld(m.Target) {
		return
	}
	switch m.Kind {
	case MoveToCell:
		s.addCommand(w.bearingCommand(s, m.Target))
		s.addCommand(Command{Kind: MoveForward, Target: m.Target})
	case MoveFireLeftMissile:
		if s.canFireMissile(true, w.tick, w.rules) {
			s.addCommand(w.bearingCommand(s, m.Target))
			s.addCommand(Command{Kind: FireLeftMissile})
		}
	case MoveFireRightMissile:
		if s.canFireMissile(false, w.tick, w.rules) {
			s.addCommand(w.bearingCommand(s, m.Target))
			s.addCommand(Command{Kind: FireRightMissile})
		}
	case MoveFireLaser:
		if s.canFireLaser(w.tick, w.rules) {
			s.addCommand(w.bearingCommand(s, m.Target))
			s.addCommand(Command{Kind: FireLaser})
		}
	}
}

// bearingCommand turns the ship towards the target cell along the shorter arc.
func (w *World) bearingCommand(s *Ship, target Cell) Command {
	bearing := bearingTo(s.Position, w.CenterPoint(target))
	return Command{
		Kind:          ChangeBearing,
		TargetBearing: bearing,
		Clockwise:     isClockwiseShorter(s.Bearing, bearing),
	}
}

// Clone returns a world sharing no mutable state with w. Ships are value copies
// whose queues and ledgers reallocate on first append; dead projectiles and the
// action log are not carried over.
func (w *World) Clone() *World {
	c := *w
	c.ships = make([]Ship, len(w.ships))
	for i := range w.ships {
		c.ships[i] = w.ships[i].share()
	}
	c.lasers = liveProjectiles(w.lasers)
	c.missiles = liveProjectiles(w.missiles)
	c.actions = nil
	return &c
}

func liveProjectiles(ps []Projectile) []Projectile {
	out := make([]Projectile, 0, len(ps))
	for _, p := range ps {
		if !p.Dead {
			out = append(out, p)
		}
	}
	return out
}
