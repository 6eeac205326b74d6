// Package inventory defines slot containers and the side-aware queries the
// transfer engine runs against them.
package inventory

import (
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/space"
)

// A Container is a fixed-size ordered sequence of slots, each holding at most
// one stack.
type Container interface {
	// Size returns the number of slots. It never changes.
	Size() int

	// Stack returns a copy of the stack in the slot.
	Stack(slot int) item.Stack

	// SetStack replaces the content of the slot. Counts above the item's max
	// count are clamped.
	SetStack(slot int, s item.Stack)

	// RemoveStack takes up to amount items off the slot and returns them.
	RemoveStack(slot, amount int) item.Stack

	// IsEmpty tells whether every slot is empty.
	IsEmpty() bool

	// IsValid tells whether the stack may be placed in the slot.
	IsValid(slot int, s item.Stack) bool

	// CanTransferTo tells whether the stack in the slot may be moved to dst.
	CanTransferTo(dst Container, slot int, s item.Stack) bool

	// MarkDirty signals that the content changed.
	MarkDirty()
}

// Sided is implemented by containers that restrict slot access per side.
type Sided interface {
	// AvailableSlots returns the slots reachable from the side, in the order
	// transfers should try them.
	AvailableSlots(side space.Direction) []int

	// CanInsert tells whether the stack may enter the slot from the side.
	CanInsert(slot int, s item.Stack, side space.Direction) bool

	// CanExtract tells whether the stack may leave the slot through the side.
	CanExtract(slot int, s item.Stack, side space.Direction) bool
}

// AvailableSlots returns the slots of c reachable from the side. Containers
// without side restrictions expose all slots in ascending order.
func AvailableSlots(c Container, side space.Direction) []int {
	if sided, ok := c.(Sided); ok {
		return sided.AvailableSlots(side)
	}

	slots := make([]int, c.Size())
	for i := range slots {
		slots[i] = i
	}

	return slots
}

// IsFullFrom tells whether no slot reachable from the side can take any more
// items.
func IsFullFrom(c Container, side space.Direction) bool {
	for _, slot := range AvailableSlots(c, side) {
		if !c.Stack(slot).IsFull() {
			return false
		}
	}

	return true
}

// IsEmptyFrom tells whether every slot reachable from the side is empty.
func IsEmptyFrom(c Container, side space.Direction) bool {
	for _, slot := range AvailableSlots(c, side) {
		if !c.Stack(slot).IsEmpty() {
			return false
		}
	}

	return true
}

// CanInsert tells whether the stack may be placed into the slot of c from
// the side.
func CanInsert(c Container, slot int, s item.Stack, side space.Direction) bool {
	if !c.IsValid(slot, s) {
		return false
	}

	if sided, ok := c.(Sided); ok {
		return sided.CanInsert(slot, s, side)
	}

	return true
}

// CanExtract tells whether the stack in the slot of src may be pulled into
// dst through the side.
func CanExtract(
	dst, src Container,
	slot int,
	s item.Stack,
	side space.Direction,
) bool {
	if !src.CanTransferTo(dst, slot, s) {
		return false
	}

	if sided, ok := src.(Sided); ok {
		return sided.CanExtract(slot, s, side)
	}

	return true
}
