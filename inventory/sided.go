package inventory

import (
	"slices"

	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/space"
)

// Face describes what a side of a SidedSlots container gives access to.
type Face struct {
	Slots   []int
	Insert  bool
	Extract bool
}

// SidedSlots is a container whose slots are reached through configured
// faces, like a furnace that takes fuel from the sides and hands out results
// at the bottom. Sides without a face expose no slots.
type SidedSlots struct {
	*Slots

	faces  map[space.Direction]Face
	filter func(slot int, s item.Stack) bool
}

// NewSidedSlots creates a side-restricted container without any face.
func NewSidedSlots(name string, size int) *SidedSlots {
	return &SidedSlots{
		Slots: NewSlots(name, size),
		faces: make(map[space.Direction]Face),
	}
}

// WithFace configures the face of a side.
func (c *SidedSlots) WithFace(side space.Direction, face Face) *SidedSlots {
	for _, slot := range face.Slots {
		c.mustBeValidSlot(slot)
	}

	c.faces[side] = face

	return c
}

// WithFilter restricts which stacks a slot accepts.
func (c *SidedSlots) WithFilter(
	filter func(slot int, s item.Stack) bool,
) *SidedSlots {
	c.filter = filter
	return c
}

// AvailableSlots returns the slots of the face on the side.
func (c *SidedSlots) AvailableSlots(side space.Direction) []int {
	face, ok := c.faces[side]
	if !ok {
		return nil
	}

	return slices.Clone(face.Slots)
}

// IsValid applies the slot filter.
func (c *SidedSlots) IsValid(slot int, s item.Stack) bool {
	if !c.Slots.IsValid(slot, s) {
		return false
	}

	if c.filter == nil {
		return true
	}

	return c.filter(slot, s)
}

// CanInsert tells whether the face on the side accepts the stack into the
// slot. Transfers not bound to a side may insert into any slot.
func (c *SidedSlots) CanInsert(
	slot int,
	_ item.Stack,
	side space.Direction,
) bool {
	if side == space.None {
		return true
	}

	face, ok := c.faces[side]

	return ok && face.Insert && slices.Contains(face.Slots, slot)
}

// CanExtract tells whether the face on the side lets the stack out of the
// slot.
func (c *SidedSlots) CanExtract(
	slot int,
	_ item.Stack,
	side space.Direction,
) bool {
	face, ok := c.faces[side]

	return ok && face.Extract && slices.Contains(face.Slots, slot)
}
