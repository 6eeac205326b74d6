// Package space provides block positions, directions and boxes used to
// locate neighbours of a node.
package space

import "log"

// Direction is one of the six block faces. None is used where a transfer is
// not associated with any face.
type Direction int

// The six faces plus None.
const (
	None Direction = iota
	Down
	Up
	North
	South
	West
	East
)

var directionNames = map[Direction]string{
	None:  "none",
	Down:  "down",
	Up:    "up",
	North: "north",
	South: "south",
	West:  "west",
	East:  "east",
}

func (d Direction) String() string {
	name, ok := directionNames[d]
	if !ok {
		return "invalid"
	}

	return name
}

// Opposite returns the face on the other side of the block.
func (d Direction) Opposite() Direction {
	switch d {
	case Down:
		return Up
	case Up:
		return Down
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return None
	}
}

// Vector returns the unit offset of the direction.
func (d Direction) Vector() Pos {
	switch d {
	case Down:
		return Pos{Y: -1}
	case Up:
		return Pos{Y: 1}
	case North:
		return Pos{Z: -1}
	case South:
		return Pos{Z: 1}
	case West:
		return Pos{X: -1}
	case East:
		return Pos{X: 1}
	default:
		return Pos{}
	}
}

// ParseDirection converts a lower-case direction name to a Direction.
func ParseDirection(name string) (Direction, bool) {
	for d, n := range directionNames {
		if n == name {
			return d, true
		}
	}

	return None, false
}

// MustParseDirection is ParseDirection that panics on unknown names.
func MustParseDirection(name string) Direction {
	d, ok := ParseDirection(name)
	if !ok {
		log.Panicf("unknown direction %q", name)
	}

	return d
}
