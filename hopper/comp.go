// Package hopper provides the tick-driven transfer node. Once per tick a node
// pushes one item into the container it faces and pulls one item from the
// container above it, or whole stacks from loose items in its intake.
package hopper

import (
	"github.com/sarchlab/cropper/cooldown"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/space"
	"github.com/sarchlab/cropper/transfer"
)

// DefaultNumSlots is the number of slots of a node.
const DefaultNumSlots = 5

// Hook positions invoked after successful transfers. The hook item is the
// moved stack. For pushes and pulls the detail is the position of the other
// container.
var (
	HookPosPush   = &sim.HookPos{Name: "Hopper Push"}
	HookPosPull   = &sim.HookPos{Name: "Hopper Pull"}
	HookPosPickup = &sim.HookPos{Name: "Hopper Pickup"}
)

// A Neighborhood resolves what surrounds a node. It is asked again on every
// tick, so nodes never hold on to their neighbours.
type Neighborhood interface {
	// ContainerAt returns the container occupying the block, if any.
	ContainerAt(pos space.Pos) (inventory.Container, bool)

	// PickupsIn returns the loose items overlapping any of the boxes, in
	// discovery order.
	PickupsIn(boxes []space.Box) []transfer.Pickup
}

// A Collider is a loose item that can touch a node.
type Collider interface {
	transfer.Pickup
	Box() space.Box
}

// Comp is a transfer node.
type Comp struct {
	*inventory.Slots

	pos        space.Pos
	facing     space.Direction
	enabled    bool
	customName string
	cooldown   cooldown.State
	world      Neighborhood
}

// Cooldown exposes the cooldown so that senders can apply the tie-break rule.
func (c *Comp) Cooldown() *cooldown.State {
	return &c.cooldown
}

// Pos returns the block position of the node.
func (c *Comp) Pos() space.Pos {
	return c.pos
}

// Facing returns the direction the node pushes items to.
func (c *Comp) Facing() space.Direction {
	return c.facing
}

// IsEnabled tells whether the node may transfer.
func (c *Comp) IsEnabled() bool {
	return c.enabled
}

// SetEnabled is driven by the block configuration around the node.
func (c *Comp) SetEnabled(enabled bool) {
	c.enabled = enabled
}

// SetCustomName sets the name shown instead of the default display name.
func (c *Comp) SetCustomName(name string) {
	c.customName = name
}

// DisplayName returns the custom name, if set, or "Cropper".
func (c *Comp) DisplayName() string {
	if c.customName != "" {
		return c.customName
	}

	return "Cropper"
}

// CreateMenu reports that nodes have no screen.
func (c *Comp) CreateMenu() (any, bool) {
	return nil, false
}

// Tick advances the node by one tick.
func (c *Comp) Tick(now sim.VTimeInCycle) bool {
	c.cooldown.Tick(now)

	if !c.cooldown.IsReady() {
		return false
	}

	c.cooldown.Reset()

	return c.insertAndExtract(c.extractFromAbove)
}

// OnEntityCollided is called when a loose item touches the node. Items
// within the intake are pulled in if the node is ready.
func (c *Comp) OnEntityCollided(e Collider) bool {
	if !e.Box().IntersectsAny(c.IntakeBoxes()) {
		return false
	}

	return c.insertAndExtract(func() bool {
		return c.extractPickup(e)
	})
}

func (c *Comp) insertAndExtract(extract func() bool) bool {
	if !c.cooldown.IsReady() || !c.enabled {
		return false
	}

	dirty := false
	if !c.IsEmpty() {
		dirty = c.push()
	}

	if !c.IsFull() {
		dirty = extract() || dirty
	}

	if dirty {
		c.cooldown.Arm(false)
		c.MarkDirty()
	}

	return dirty
}

func (c *Comp) push() bool {
	target := c.pos.Offset(c.facing)

	dst, found := c.world.ContainerAt(target)
	if !found {
		return false
	}

	moved, ok := transfer.Insert(c, dst, c.facing.Opposite())
	if ok {
		c.invokeTransferHook(HookPosPush, moved, target)
	}

	return ok
}

func (c *Comp) extractFromAbove() bool {
	above := c.pos.Up()

	if src, found := c.world.ContainerAt(above); found {
		moved, ok := transfer.Extract(c, src)
		if ok {
			c.invokeTransferHook(HookPosPull, moved, above)
		}

		return ok
	}

	for _, p := range c.world.PickupsIn(c.IntakeBoxes()) {
		if c.extractPickup(p) {
			return true
		}
	}

	return false
}

func (c *Comp) extractPickup(p transfer.Pickup) bool {
	moved, ok := transfer.ExtractPickup(c, p)
	if !moved.IsEmpty() {
		c.invokeTransferHook(HookPosPickup, moved, nil)
	}

	return ok
}

func (c *Comp) invokeTransferHook(
	pos *sim.HookPos,
	moved item.Stack,
	detail any,
) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    pos,
		Now:    c.cooldown.LastTick(),
		Item:   moved,
		Detail: detail,
	})
}

// IntakeBoxes returns the volume loose items are collected from: the inside
// of the bowl and the whole block above the node.
func (c *Comp) IntakeBoxes() []space.Box {
	origin := space.Vec{
		X: float64(c.pos.X),
		Y: float64(c.pos.Y),
		Z: float64(c.pos.Z),
	}

	return []space.Box{
		insideBowl.Offset(origin),
		aboveBlock.Offset(origin),
	}
}

var (
	insideBowl = space.Box{
		Min: space.Vec{X: 2.0 / 16, Y: 11.0 / 16, Z: 2.0 / 16},
		Max: space.Vec{X: 14.0 / 16, Y: 1, Z: 14.0 / 16},
	}
	aboveBlock = space.Box{
		Min: space.Vec{X: 0, Y: 1, Z: 0},
		Max: space.Vec{X: 1, Y: 2, Z: 1},
	}
)

type noNeighbors struct{}

func (noNeighbors) ContainerAt(space.Pos) (inventory.Container, bool) {
	return nil, false
}

func (noNeighbors) PickupsIn([]space.Box) []transfer.Pickup {
	return nil
}
