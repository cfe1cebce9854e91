package game

import "fmt"

// MoveKind is the category of a player-level move.
type MoveKind int

const (
	MoveToCell MoveKind = iota
	MoveFireLeftMissile
	MoveFireRightMissile
	MoveFireLaser
)

const numMoveKinds = 4

func (k MoveKind) String() string {
	switch k {
	case MoveToCell:
		return "MoveToCell"
	case MoveFireLeftMissile:
		return "FireLeftMissile"
	case MoveFireRightMissile:
		return "FireRightMissile"
	case MoveFireLaser:
		return "FireLaser"
	}
	return fmt.Sprintf("MoveKind(%d)", int(k))
}

// Move is a high-level intent targeting a cell. It expands into one or two commands.
type Move struct {
	Kind   MoveKind
	Target Cell
}

func (m Move) String() string {
	return fmt.Sprintf("%s(%d,%d)", m.Kind, m.Target.Row, m.Target.Col)
}

// CommandKind tags a queued unit of multi-tick execution.
type CommandKind int

const (
	ChangeBearing CommandKind = iota
	MoveForward
	FireLaser
	FireLeftMissile
	FireRightMissile
)

// Command is one entry of a ship's FIFO queue. TargetBearing and Clockwise are
// set for ChangeBearing, Target for MoveForward.
type Command struct {
	Kind          CommandKind
	TargetBearing float64
	Clockwise     bool
	Target        Cell
}
