package hopper

import (
	"log"

	"github.com/sarchlab/cropper/cooldown"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/space"
)

// Builder can build transfer nodes.
type Builder struct {
	world    Neighborhood
	pos      space.Pos
	facing   space.Direction
	numSlots int
	disabled bool
}

// MakeBuilder creates a builder with default parameters. Nodes face down and
// have no neighbours unless configured otherwise.
func MakeBuilder() Builder {
	return Builder{
		world:    noNeighbors{},
		facing:   space.Down,
		numSlots: DefaultNumSlots,
	}
}

// WithNeighborhood sets how the node finds its neighbours.
func (b Builder) WithNeighborhood(n Neighborhood) Builder {
	b.world = n
	return b
}

// WithPos sets the block position of the node.
func (b Builder) WithPos(pos space.Pos) Builder {
	b.pos = pos
	return b
}

// WithFacing sets the direction the node pushes to.
func (b Builder) WithFacing(d space.Direction) Builder {
	b.facing = d
	return b
}

// WithNumSlots sets the number of slots.
func (b Builder) WithNumSlots(n int) Builder {
	b.numSlots = n
	return b
}

// WithDisabled builds the node with its enabled flag cleared.
func (b Builder) WithDisabled() Builder {
	b.disabled = true
	return b
}

// Build creates a node.
func (b Builder) Build(name string) *Comp {
	if b.facing == space.Up || b.facing == space.None {
		log.Panicf("hopper %s cannot face %s", name, b.facing)
	}

	if b.world == nil {
		log.Panicf("hopper %s has no neighborhood", name)
	}

	return &Comp{
		Slots:    inventory.NewSlots(name, b.numSlots),
		pos:      b.pos,
		facing:   b.facing,
		enabled:  !b.disabled,
		cooldown: cooldown.New(),
		world:    b.world,
	}
}
