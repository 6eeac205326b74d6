package world

import (
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/space"
)

// DefaultTickLimit is the number of ticks a level runs for.
const DefaultTickLimit = 100

// Builder can build levels.
type Builder struct {
	engine    sim.Engine
	tickLimit sim.VTimeInCycle
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		tickLimit: DefaultTickLimit,
	}
}

// WithEngine sets the engine that drives the level.
func (b Builder) WithEngine(e sim.Engine) Builder {
	b.engine = e
	return b
}

// WithTickLimit sets the last tick the level runs.
func (b Builder) WithTickLimit(n sim.VTimeInCycle) Builder {
	b.tickLimit = n
	return b
}

// Build creates a level. A serial engine is created if none is given.
func (b Builder) Build(name string) *Level {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	return &Level{
		name:      name,
		engine:    engine,
		tickLimit: b.tickLimit,
		blocks:    make(map[space.Pos]inventory.Container),
		changed:   make(map[string]bool),
	}
}
