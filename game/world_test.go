package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func testConfig(collisions CollisionSetting) WorldConfig {
	return WorldConfig{Height: 600, Width: 800, CellSize: 40, Collisions: collisions, Rules: NewStandardRules()}
}

func roster(prefix string, n int) []ShipSpec {
	specs := make([]ShipSpec, n)
	for i := range specs {
		specs[i] = ShipSpec{Name: fmt.Sprintf("%s%d", prefix, i+1)}
	}
	return specs
}

func newTestWorld(t *testing.T, collisions CollisionSetting, humans, aliens int) *World {
	t.Helper()
	w, err := NewWorld(testConfig(collisions), roster("human", humans), roster("alien", aliens))
	require.NoError(t, err)
	return w
}

// inject places a projectile so that it lands on target after one tick of flight.
func inject(w *World, kind ProjectileKind, owner ShipID, target Point) {
	speed, damage := w.rules.LaserSpeed, w.rules.LaserDamage
	if kind == Missile {
		speed, damage = w.rules.MissileSpeed, w.rules.MissileDamage
	}
	w.projectileSeq++
	p := Projectile{
		Kind:     kind,
		Team:     w.ships[owner].Team,
		Seq:      w.projectileSeq,
		Owner:    owner,
		Position: Point{X: target.X, Y: target.Y - speed},
		Bearing:  180,
		Damage:   damage,
	}
	if kind == Laser {
		w.lasers = append(w.lasers, p)
	} else {
		w.missiles = append(w.missiles, p)
	}
}

func TestNewWorld(t *testing.T) {
	t.Run("placing rosters fans out from the middle column", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 3, 1)

		require.Equal(t, 15, w.RowCount())
		require.Equal(t, 20, w.ColCount())
		require.Equal(t, Point{X: 380, Y: 580}, w.Ship(0).Position, "First human should start in the middle of the bottom row")
		require.Equal(t, Point{X: 420, Y: 580}, w.Ship(1).Position, "Second human should start right of the middle")
		require.Equal(t, Point{X: 340, Y: 580}, w.Ship(2).Position, "Third human should start left of the middle")
		require.Equal(t, 0.0, w.Ship(0).Bearing)

		alien, ok := w.ShipByName("alien1")
		require.True(t, ok)
		require.Equal(t, Alien, alien.Team)
		require.Equal(t, Point{X: 380, Y: 20}, alien.Position, "Aliens should start on the top row")
		require.Equal(t, 180.0, alien.Bearing)
		require.Equal(t, 3, w.LiveCount(Human))
		require.Equal(t, 1, w.LiveCount(Alien))
		require.Equal(t, 90, alien.Health)
		require.True(t, alien.LeftMissile && alien.RightMissile)
	})

	t.Run("rejecting a roster wider than the grid", func(t *testing.T) {
		_, err := NewWorld(testConfig(EnemyOnly), roster("human", 21), roster("alien", 1))

		require.ErrorIs(t, err, ErrTooManyShips)
	})

	t.Run("rejecting ships with the same name", func(t *testing.T) {
		_, err := NewWorld(testConfig(EnemyOnly), roster("ship", 2), roster("ship", 1))

		require.ErrorIs(t, err, ErrDuplicateShipName)
		require.Contains(t, err.Error(), `"ship1"`)
	})

	t.Run("rejecting a grid smaller than one cell", func(t *testing.T) {
		_, err := NewWorld(WorldConfig{Height: 10, Width: 800, CellSize: 40, Rules: NewStandardRules()}, nil, nil)

		require.Error(t, err)
	})
}

func TestGrid(t *testing.T) {
	w := newTestWorld(t, EnemyOnly, 1, 1)

	require.Equal(t, Cell{Row: 15, Col: 10}, w.CellFromPoint(Point{X: 380, Y: 580}))
	require.Equal(t, Cell{Row: 1, Col: 1}, w.CellFromPoint(Point{X: 40, Y: 40}), "Cell edges belong to the lower cell")
	require.Equal(t, Point{X: 20, Y: 20}, w.CenterPoint(Cell{Row: 1, Col: 1}))
	require.True(t, w.CellInWorld(Cell{Row: 15, Col: 20}))
	require.False(t, w.CellInWorld(Cell{Row: 0, Col: 1}))
	require.False(t, w.CellInWorld(Cell{Row: 1, Col: 21}))
}

func TestRotation(t *testing.T) {
	t.Run("turning snaps to the target once within one step", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		human := w.Ship(0)
		w.applyMove(human, Move{Kind: MoveToCell, Target: Cell{Row: 15, Col: 11}})
		require.Len(t, human.Commands(), 2)
		require.True(t, human.Commands()[0].Clockwise, "Turning right from 0 should be clockwise")

		w.Step(1)
		require.Equal(t, 25.0, human.Bearing)
		w.Step(2)
		require.Equal(t, 50.0, human.Bearing)
		w.Step(3)
		require.Equal(t, 90.0, human.Bearing, "Bearing should snap to the target")
		require.Equal(t, []Command{{Kind: MoveForward, Target: Cell{Row: 15, Col: 11}}}, human.Commands())

		w.Step(4)
		require.InDelta(t, 405, human.Position.X, 1e-9)
		w.Step(5)
		require.Equal(t, Point{X: 420, Y: 580}, human.Position, "Position should snap to the cell center")
		require.True(t, human.CanMove())
	})

	t.Run("already facing the target pops without turning", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		alien := w.Ship(1)
		w.applyMove(alien, Move{Kind: MoveToCell, Target: Cell{Row: 2, Col: 10}})

		w.Step(1)

		require.InDelta(t, 180, alien.Bearing, 1e-9)
		require.Len(t, alien.Commands(), 1)
		require.Equal(t, MoveForward, alien.Commands()[0].Kind)
	})
}

func TestFiring(t *testing.T) {
	t.Run("firing a laser records the tick and spawns a bolt", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		human := w.Ship(0)
		w.tick = 10
		w.applyMove(human, Move{Kind: MoveFireLaser, Target: Cell{Row: 1, Col: 10}})
		require.Len(t, human.Commands(), 2)

		w.Step(11) // Already facing up
		w.Step(12)

		require.Equal(t, 12, human.LastLaserTick)
		require.True(t, human.CanMove())
		lasers := w.Lasers()
		require.Len(t, lasers, 1)
		require.Equal(t, human.ID, lasers[0].Owner, "Laser should remember the ship that fired it")
		require.Equal(t, "laser1", lasers[0].Name())
		require.InDelta(t, 380, lasers[0].Position.X, 1e-9)
		require.InDelta(t, 560, lasers[0].Position.Y, 1e-9)
	})

	t.Run("missiles are held back during the embargo", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		human := w.Ship(0)
		w.tick = 15

		w.applyMove(human, Move{Kind: MoveFireLeftMissile, Target: Cell{Row: 1, Col: 10}})

		require.Empty(t, human.Commands(), "Missile moves should be ignored until tick 16")
	})

	t.Run("firing a missile spends it and logs an action", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		human := w.Ship(0)
		w.tick = 20
		w.applyMove(human, Move{Kind: MoveFireRightMissile, Target: Cell{Row: 1, Col: 10}})

		w.Step(21)
		w.Step(22)

		require.False(t, human.RightMissile)
		require.True(t, human.LeftMissile)
		require.Len(t, w.Missiles(), 1)
		require.Equal(t, []Action{{Type: FireHumanMissileAction, ID: "human1", X: 380, Y: 580}}, w.Actions())
	})
}

func TestCollisions(t *testing.T) {
	t.Run("three laser hits destroy a ship", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		alien := w.Ship(1)

		for tick := 1; tick <= 2; tick++ {
			inject(w, Laser, 0, alien.Position)
			w.Step(tick)
			require.Equal(t, 90-30*tick, alien.Health)
			require.False(t, alien.Dead)
			require.Equal(t, SmokeAction, w.Actions()[0].Type)
		}
		inject(w, Laser, 0, alien.Position)
		w.Step(3)

		require.True(t, alien.Dead)
		require.True(t, w.IsOver())
		winner, ok := w.WinningTeam()
		require.True(t, ok)
		require.Equal(t, Human, winner)
		require.Empty(t, w.Lasers(), "Lasers should be consumed by hits")
		require.InDelta(t, 2*3+1+4+4, w.Ship(0).RewardsSince(0), 1e-9)
		require.InDelta(t, -0.33*3-1, alien.RewardsSince(0), 1e-9)
		require.Equal(t, MessageAction, w.Actions()[len(w.Actions())-1].Type)
		require.Equal(t, "Humans Win!", w.Actions()[len(w.Actions())-1].Text)
	})

	t.Run("lasers pass through friendly ships", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 2, 1)

		inject(w, Laser, 0, w.Ship(1).Position)
		w.Step(1)

		require.Equal(t, 90, w.Ship(1).Health)
		require.Len(t, w.Lasers(), 1)
	})

	t.Run("missiles hit friends and punish the shooter", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 2, 1)

		inject(w, Missile, 0, w.Ship(1).Position)
		w.Step(1)

		require.True(t, w.Ship(1).Dead)
		require.False(t, w.Ship(0).Dead, "Missile should never hit its owner")
		require.Equal(t, 1, w.LiveCount(Human))
		require.False(t, w.IsOver())
		require.Equal(t, []RewardEvent{{Kind: FriendlyFire, Magnitude: -4, Tick: 1}}, w.Ship(0).Rewards())
		require.Equal(t, []RewardEvent{{Kind: Died, Magnitude: -1, Tick: 1}}, w.Ship(1).Rewards())
	})

	t.Run("friendly contact is ignored when only enemies collide", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 2, 1)
		w.ships[1].Position = Point{X: 390, Y: 580}

		w.Step(1)

		require.Equal(t, 2, w.LiveCount(Human))
	})

	t.Run("friendly contact destroys both ships when all ships collide", func(t *testing.T) {
		w := newTestWorld(t, AllShips, 2, 1)
		w.ships[1].Position = Point{X: 390, Y: 580}

		w.Step(1)

		require.True(t, w.Ship(0).Dead)
		require.True(t, w.Ship(1).Dead)
		require.InDelta(t, -7, w.Ship(0).RewardsSince(0), 1e-9)
		require.InDelta(t, -7, w.Ship(1).RewardsSince(0), 1e-9)
		winner, ok := w.WinningTeam()
		require.True(t, ok)
		require.Equal(t, Alien, winner)
		require.InDelta(t, 8, w.Ship(2).RewardsSince(0), 1e-9, "Survivor should collect Survived and TeamWon")
	})

	t.Run("enemy contact under all ships destroys both", func(t *testing.T) {
		w := newTestWorld(t, AllShips, 1, 1)
		w.ships[1].Position = Point{X: 380, Y: 570}

		w.Step(1)

		require.True(t, w.Ship(0).Dead)
		require.True(t, w.Ship(1).Dead)
		want := []RewardEvent{
			{Kind: Kamikaze, Magnitude: Kamikaze.Magnitude(), Tick: 1},
			{Kind: Died, Magnitude: Died.Magnitude(), Tick: 1},
		}
		require.Equal(t, want, w.Ship(0).Rewards())
		require.Equal(t, want, w.Ship(1).Rewards())
	})

	t.Run("mutual destruction leaves no winner", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		w.ships[1].Position = Point{X: 380, Y: 570}

		w.Step(1)

		require.True(t, w.IsOver())
		_, ok := w.WinningTeam()
		require.False(t, ok)
		require.Equal(t, "Both Sides Have Been Defeated!", w.Actions()[len(w.Actions())-1].Text)
	})

	t.Run("no contact when collisions are off", func(t *testing.T) {
		w := newTestWorld(t, CollisionsOff, 1, 1)
		w.ships[1].Position = Point{X: 380, Y: 570}

		w.Step(1)

		require.False(t, w.IsOver())
	})
}

func TestStep(t *testing.T) {
	t.Run("projectiles leaving the map are dropped", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		w.lasers = append(w.lasers, Projectile{Kind: Laser, Team: Human, Position: Point{X: 10, Y: 300}, Bearing: 270})

		w.Step(1)

		require.Empty(t, w.Lasers())
	})

	t.Run("game over is registered once", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		inject(w, Missile, 0, w.Ship(1).Position)
		w.Step(1)
		require.True(t, w.IsOver())
		ledger := w.Ship(0).Rewards()

		for tick := 2; tick < 10; tick++ {
			w.Step(tick)
			require.True(t, w.IsOver(), "Game over should never revert")
		}

		require.Equal(t, ledger, w.Ship(0).Rewards())
		require.Empty(t, w.Actions())
	})

	t.Run("dead ships keep an empty queue", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 2, 1)
		w.applyMove(w.Ship(1), Move{Kind: MoveToCell, Target: Cell{Row: 1, Col: 1}})
		inject(w, Missile, 0, w.Ship(1).Position)

		w.Step(1)
		w.applyMove(w.Ship(1), Move{Kind: MoveToCell, Target: Cell{Row: 1, Col: 1}})

		require.True(t, w.Ship(1).Dead)
		require.Empty(t, w.Ship(1).Commands())
		require.False(t, w.Ship(1).CanMove())
	})
}

func TestClone(t *testing.T) {
	t.Run("mutating a clone leaves the source untouched", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		human := w.Ship(0)
		w.applyMove(human, Move{Kind: MoveToCell, Target: Cell{Row: 14, Col: 10}})
		before := *human

		c := w.Clone()
		for tick := 1; tick <= 5; tick++ {
			c.Step(tick)
		}
		c.Ship(0).RegisterReward(KilledEnemy, 5)

		require.Equal(t, before.Position, human.Position)
		require.Equal(t, before.Commands(), human.Commands())
		require.Empty(t, human.Rewards())
		require.True(t, c.Ship(0).CanMove())
	})

	t.Run("appending on either side never leaks into the other", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		human := w.Ship(0)
		for tick := 1; tick <= 3; tick++ {
			human.RegisterReward(LaseredEnemy, tick)
		}

		c := w.Clone()
		human.RegisterReward(Survived, 4)
		c.Ship(0).RegisterReward(Died, 4)

		require.Len(t, human.Rewards(), 4)
		require.Equal(t, Survived, human.Rewards()[3].Kind)
		require.Len(t, c.Ship(0).Rewards(), 4)
		require.Equal(t, Died, c.Ship(0).Rewards()[3].Kind)
	})

	t.Run("clones keep projectile numbering", func(t *testing.T) {
		w := newTestWorld(t, EnemyOnly, 1, 1)
		inject(w, Laser, 0, Point{X: 100, Y: 300})

		c := w.Clone()
		inject(c, Laser, 0, Point{X: 200, Y: 300})

		require.Len(t, w.Lasers(), 1)
		require.Len(t, c.Lasers(), 2)
		require.Equal(t, "laser2", c.Lasers()[1].Name())
	})
}
