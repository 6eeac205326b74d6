// Package world provides an in-memory level that places containers, transfer
// nodes and loose items, and drives the nodes with the tick engine.
package world

import (
	"log"
	"sort"

	"github.com/sarchlab/cropper/hopper"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/space"
	"github.com/sarchlab/cropper/transfer"
)

// HookPosTickStart is invoked before the nodes tick.
var HookPosTickStart = &sim.HookPos{Name: "Level Tick Start"}

// HookPosTickDone is invoked once every node ticked and discarded items are
// swept. The hook item is the names of the nodes that changed during the
// tick.
var HookPosTickDone = &sim.HookPos{Name: "Level Tick Done"}

// Level holds everything placed in the world.
type Level struct {
	sim.HookableBase

	name      string
	engine    sim.Engine
	tickLimit sim.VTimeInCycle

	blocks   map[space.Pos]inventory.Container
	nodes    []*hopper.Comp
	tickers  []sim.Ticker
	entities []*ItemEntity
	changed  map[string]bool
}

// Name returns the name of the level.
func (l *Level) Name() string {
	return l.name
}

// Engine returns the engine that drives the level.
func (l *Level) Engine() sim.Engine {
	return l.engine
}

// PlaceContainer puts a container at the given block.
func (l *Level) PlaceContainer(pos space.Pos, c inventory.Container) {
	if _, occupied := l.blocks[pos]; occupied {
		log.Panicf("block %s is already occupied", pos)
	}

	l.blocks[pos] = c
}

// NewNode builds a transfer node that sees this level and places it.
func (l *Level) NewNode(
	name string,
	pos space.Pos,
	facing space.Direction,
) *hopper.Comp {
	n := hopper.MakeBuilder().
		WithNeighborhood(l).
		WithPos(pos).
		WithFacing(facing).
		Build(name)

	l.AddNode(n)

	return n
}

// AddNode places a node that has been built elsewhere. Nodes are ticked in
// the order they are added.
func (l *Level) AddNode(n *hopper.Comp) {
	if l.Node(n.Name()) != nil {
		log.Panicf("node %s already exists", n.Name())
	}

	l.PlaceContainer(n.Pos(), n)
	l.nodes = append(l.nodes, n)
	l.tickers = append(l.tickers, n)

	name := n.Name()
	n.OnChange(func() { l.changed[name] = true })
}

// RemoveBlock takes away whatever occupies the block.
func (l *Level) RemoveBlock(pos space.Pos) {
	c, found := l.blocks[pos]
	if !found {
		return
	}

	delete(l.blocks, pos)

	for i, n := range l.nodes {
		if inventory.Container(n) == c {
			n.OnChange(nil)
			l.nodes = append(l.nodes[:i], l.nodes[i+1:]...)
			l.tickers = append(l.tickers[:i], l.tickers[i+1:]...)

			return
		}
	}
}

// SetPowered powers or unpowers the node at the block. A powered node does
// not transfer.
func (l *Level) SetPowered(pos space.Pos, powered bool) {
	c, found := l.blocks[pos]
	if !found {
		log.Panicf("no block at %s", pos)
	}

	n, ok := c.(*hopper.Comp)
	if !ok {
		log.Panicf("block at %s is not a node", pos)
	}

	n.SetEnabled(!powered)
}

// ContainerAt returns the container at the block, if any.
func (l *Level) ContainerAt(pos space.Pos) (inventory.Container, bool) {
	c, found := l.blocks[pos]
	return c, found
}

// PickupsIn returns the live loose items touching any of the boxes, oldest
// first.
func (l *Level) PickupsIn(boxes []space.Box) []transfer.Pickup {
	var pickups []transfer.Pickup

	for _, e := range l.entities {
		if e.IsDiscarded() || e.Stack().IsEmpty() {
			continue
		}

		if e.Box().IntersectsAny(boxes) {
			pickups = append(pickups, e)
		}
	}

	return pickups
}

// SpawnItem drops a loose stack at the given position. Nodes it touches get
// a chance to collect it right away.
func (l *Level) SpawnItem(pos space.Vec, s item.Stack) *ItemEntity {
	e := newItemEntity(pos, s)
	l.entities = append(l.entities, e)

	l.collide(e)

	return e
}

// MoveItem moves a loose item and lets the nodes it touches collect it.
func (l *Level) MoveItem(e *ItemEntity, pos space.Vec) {
	e.pos = pos
	l.collide(e)
}

func (l *Level) collide(e *ItemEntity) {
	for _, n := range l.nodes {
		if e.IsDiscarded() {
			return
		}

		if e.Box().Intersects(n.Pos().Box()) {
			n.OnEntityCollided(e)
		}
	}
}

// Entities returns the loose items that are still in the level.
func (l *Level) Entities() []*ItemEntity {
	var live []*ItemEntity

	for _, e := range l.entities {
		if !e.IsDiscarded() {
			live = append(live, e)
		}
	}

	return live
}

// Nodes returns the nodes in tick order.
func (l *Level) Nodes() []*hopper.Comp {
	return append([]*hopper.Comp(nil), l.nodes...)
}

// Node returns the node with the given name, or nil.
func (l *Level) Node(name string) *hopper.Comp {
	for _, n := range l.nodes {
		if n.Name() == name {
			return n
		}
	}

	return nil
}

// Start schedules the first tick pass right after the current time.
func (l *Level) Start() {
	l.engine.Schedule(sim.MakeTickEvent(l, l.engine.CurrentTime()+1))
}

// Run ticks the level until the tick limit is reached.
func (l *Level) Run() error {
	l.Start()
	return l.engine.Run()
}

// Handle runs the pass of a tick event. A primary tick event ticks the
// nodes; the secondary one of the same tick sweeps up after them.
func (l *Level) Handle(e sim.Event) error {
	switch e := e.(type) {
	case sim.TickEvent:
		if e.IsSecondary() {
			l.sweep(e.Time())
		} else {
			l.tick(e.Time())
		}
	default:
		log.Panicf("cannot handle event of type %T", e)
	}

	return nil
}

func (l *Level) tick(now sim.VTimeInCycle) {
	if l.NumHooks() > 0 {
		l.InvokeHook(sim.HookCtx{
			Domain: l,
			Pos:    HookPosTickStart,
			Now:    now,
		})
	}

	for _, t := range l.tickers {
		t.Tick(now)
	}

	l.engine.Schedule(sim.MakeSecondaryTickEvent(l, now))
}

func (l *Level) sweep(now sim.VTimeInCycle) {
	l.removeDiscarded()

	changed := l.takeChanged()
	if l.NumHooks() > 0 {
		l.InvokeHook(sim.HookCtx{
			Domain: l,
			Pos:    HookPosTickDone,
			Now:    now,
			Item:   changed,
		})
	}

	if now < l.tickLimit {
		l.engine.Schedule(sim.MakeTickEvent(l, now+1))
	}
}

func (l *Level) removeDiscarded() {
	live := l.entities[:0]
	for _, e := range l.entities {
		if !e.IsDiscarded() {
			live = append(live, e)
		}
	}

	for i := len(live); i < len(l.entities); i++ {
		l.entities[i] = nil
	}

	l.entities = live
}

func (l *Level) takeChanged() []string {
	names := make([]string, 0, len(l.changed))
	for name := range l.changed {
		names = append(names, name)
	}

	sort.Strings(names)
	clear(l.changed)

	return names
}
