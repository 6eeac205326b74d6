package inventory

import (
	"log"

	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/sim"
)

// HookPosSlotSet marks when the content of a slot is replaced. The hook
// item is the new stack and the detail is the slot index.
var HookPosSlotSet = &sim.HookPos{Name: "Slot Set"}

// Slots is the default container. Every slot accepts every stack and every
// slot may be emptied.
type Slots struct {
	sim.HookableBase

	name     string
	stacks   []item.Stack
	dirty    bool
	onChange func()
}

// NewSlots creates a container with size empty slots.
func NewSlots(name string, size int) *Slots {
	if size <= 0 {
		log.Panicf("container %s must have at least one slot", name)
	}

	return &Slots{
		name:   name,
		stacks: make([]item.Stack, size),
	}
}

// Name returns the name of the container.
func (c *Slots) Name() string {
	return c.name
}

// Size returns the number of slots.
func (c *Slots) Size() int {
	return len(c.stacks)
}

// Stack returns the stack in the slot.
func (c *Slots) Stack(slot int) item.Stack {
	c.mustBeValidSlot(slot)

	return c.stacks[slot]
}

// SetStack places the stack into the slot, clamping it to its max count.
func (c *Slots) SetStack(slot int, s item.Stack) {
	c.mustBeValidSlot(slot)

	s = s.Clamp()
	c.stacks[slot] = s

	if c.NumHooks() > 0 {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosSlotSet,
			Item:   s,
			Detail: slot,
		})
	}
}

// RemoveStack takes up to amount items off the slot.
func (c *Slots) RemoveStack(slot, amount int) item.Stack {
	c.mustBeValidSlot(slot)

	taken, rest := c.stacks[slot].Split(amount)
	if !taken.IsEmpty() {
		c.SetStack(slot, rest)
	}

	return taken
}

// RemoveOne takes a single item off the slot.
func (c *Slots) RemoveOne(slot int) item.Stack {
	return c.RemoveStack(slot, 1)
}

// IsEmpty tells whether all slots are empty.
func (c *Slots) IsEmpty() bool {
	for _, s := range c.stacks {
		if !s.IsEmpty() {
			return false
		}
	}

	return true
}

// IsFull tells whether every slot is occupied at its max count. A single
// empty slot makes the container not full.
func (c *Slots) IsFull() bool {
	for _, s := range c.stacks {
		if !s.IsFull() {
			return false
		}
	}

	return true
}

// IsValid accepts any stack in any slot.
func (c *Slots) IsValid(slot int, _ item.Stack) bool {
	return slot >= 0 && slot < len(c.stacks)
}

// CanTransferTo allows every stack to leave.
func (c *Slots) CanTransferTo(_ Container, _ int, _ item.Stack) bool {
	return true
}

// Clear empties all slots.
func (c *Slots) Clear() {
	for i := range c.stacks {
		c.SetStack(i, item.Empty)
	}
}

// MarkDirty flags the content as changed and notifies the owner, if any.
func (c *Slots) MarkDirty() {
	c.dirty = true

	if c.onChange != nil {
		c.onChange()
	}
}

// OnChange registers a function called on every MarkDirty.
func (c *Slots) OnChange(f func()) {
	c.onChange = f
}

// IsDirty tells whether MarkDirty was called since the last ClearDirty.
func (c *Slots) IsDirty() bool {
	return c.dirty
}

// ClearDirty resets the dirty flag, typically after the content was saved.
func (c *Slots) ClearDirty() {
	c.dirty = false
}

// Stacks returns a copy of all slots.
func (c *Slots) Stacks() []item.Stack {
	out := make([]item.Stack, len(c.stacks))
	copy(out, c.stacks)

	return out
}

// FillLevel returns the number of items held and the number that would fit
// if every slot were full. Empty slots count as DefaultMaxCount.
func (c *Slots) FillLevel() (held, capacity int) {
	for _, s := range c.stacks {
		if s.IsEmpty() {
			capacity += item.DefaultMaxCount
			continue
		}

		held += s.Count
		capacity += s.Kind.MaxCount
	}

	return held, capacity
}

func (c *Slots) mustBeValidSlot(slot int) {
	if slot < 0 || slot >= len(c.stacks) {
		log.Panicf("slot %d out of range for container %s of size %d",
			slot, c.name, len(c.stacks))
	}
}
