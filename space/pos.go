package space

import "fmt"

// Pos is the integer coordinate of a block.
type Pos struct {
	X, Y, Z int
}

// Offset returns the neighbouring position in the given direction.
func (p Pos) Offset(d Direction) Pos {
	v := d.Vector()
	return Pos{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Up returns the position right above p.
func (p Pos) Up() Pos {
	return p.Offset(Up)
}

// Box returns the unit box occupied by the block at p.
func (p Pos) Box() Box {
	return Box{
		Min: Vec{float64(p.X), float64(p.Y), float64(p.Z)},
		Max: Vec{float64(p.X + 1), float64(p.Y + 1), float64(p.Z + 1)},
	}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}
