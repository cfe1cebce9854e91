package game

import "math"

// Point is a world-space coordinate. Y grows downwards.
type Point struct {
	X float64
	Y float64
}

// Cell is a 1-based grid coordinate.
type Cell struct {
	Row int
	Col int
}

// Neighbors returns the 8 adjacent cells, some of which may lie outside the world.
func (c Cell) Neighbors() []Cell {
	return []Cell{
		{c.Row - 1, c.Col - 1},
		{c.Row - 1, c.Col},
		{c.Row - 1, c.Col + 1},
		{c.Row, c.Col - 1},
		{c.Row, c.Col + 1},
		{c.Row + 1, c.Col - 1},
		{c.Row + 1, c.Col},
		{c.Row + 1, c.Col + 1},
	}
}

// rotate turns p around origin by bearing degrees.
func rotate(p, origin Point, bearing float64) Point {
	angle := bearing * (math.Pi / 180)
	dx, dy := p.X-origin.X, p.Y-origin.Y
	return Point{
		X: math.Cos(angle)*dx - math.Sin(angle)*dy + origin.X,
		Y: math.Sin(angle)*dx + math.Cos(angle)*dy + origin.Y,
	}
}

// normalizeBearing maps any angle into [0, 360).
func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// rotationDiff returns the shortest angular distance between two bearings.
func rotationDiff(a, b float64) float64 {
	phi := math.Mod(math.Abs(b-a), 360)
	if phi > 180 {
		return 360 - phi
	}
	return phi
}

// isClockwiseShorter reports whether turning clockwise from current reaches target
// no later than turning counter-clockwise.
func isClockwiseShorter(current, target float64) bool {
	d1 := normalizeBearing(target - current)
	d2 := normalizeBearing(current - target)
	return d1 <= d2
}

// bearingTo converts the direction from one point to another into a bearing where
// 0 points up the screen.
func bearingTo(from, to Point) float64 {
	theta := math.Atan2(to.Y-from.Y, to.X-from.X)
	return normalizeBearing(theta*180/math.Pi + 90)
}

// advance moves p by distance along bearing.
func advance(p Point, bearing, distance float64) Point {
	rad := (bearing - 90) * math.Pi / 180
	return Point{
		X: p.X + distance*math.Cos(rad),
		Y: p.Y + distance*math.Sin(rad),
	}
}
