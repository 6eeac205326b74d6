// Package transfer moves items between containers and from loose pickup
// entities into containers.
//
// All functions are stateless. They read and write containers only through
// the inventory.Container interface and report success with a bool, never
// with an error: a missing neighbour, a full destination, an empty source or
// a mismatched stack simply means nothing moved.
package transfer

import (
	"github.com/sarchlab/cropper/cooldown"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/space"
)

// A CooldownHolder is a container that is itself a rate-limited node.
// Receiving items into an empty CooldownHolder arms its cooldown.
type CooldownHolder interface {
	Cooldown() *cooldown.State
}

// A Pickup is a loose item lying in the world.
type Pickup interface {
	// Stack returns the items the entity carries.
	Stack() item.Stack

	// SetStack replaces the items the entity carries.
	SetStack(s item.Stack)

	// Discard removes the entity from the world.
	Discard()
}

// Insert moves a single item from the first occupied slot of src that dst
// accepts. side is the face of dst the item enters through. It returns the
// moved item.
func Insert(
	src, dst inventory.Container,
	side space.Direction,
) (item.Stack, bool) {
	if dst == nil {
		return item.Empty, false
	}

	if inventory.IsFullFrom(dst, side) {
		return item.Empty, false
	}

	for slot := 0; slot < src.Size(); slot++ {
		original := src.Stack(slot)
		if original.IsEmpty() {
			continue
		}

		one := src.RemoveStack(slot, 1)
		rest := Transfer(src, dst, one, side)
		if rest.IsEmpty() {
			dst.MarkDirty()
			return one, true
		}

		src.SetStack(slot, original)
	}

	return item.Empty, false
}

// Extract pulls a single item out of src, which sits above dst, through the
// bottom face of src. It returns the moved item.
func Extract(dst, src inventory.Container) (item.Stack, bool) {
	if src == nil {
		return item.Empty, false
	}

	if inventory.IsEmptyFrom(src, space.Down) {
		return item.Empty, false
	}

	for _, slot := range inventory.AvailableSlots(src, space.Down) {
		if moved, ok := extractSlot(dst, src, slot); ok {
			return moved, true
		}
	}

	return item.Empty, false
}

func extractSlot(dst, src inventory.Container, slot int) (item.Stack, bool) {
	original := src.Stack(slot)
	if original.IsEmpty() {
		return item.Empty, false
	}

	if !inventory.CanExtract(dst, src, slot, original, space.Down) {
		return item.Empty, false
	}

	one := src.RemoveStack(slot, 1)
	rest := Transfer(src, dst, one, space.None)
	if rest.IsEmpty() {
		src.MarkDirty()
		return one, true
	}

	src.SetStack(slot, original)

	return item.Empty, false
}

// ExtractPickup offers the whole stack of the entity to dst. An entity whose
// stack is fully absorbed is discarded; otherwise it keeps the remainder. It
// returns the moved items and whether the entity was fully absorbed. A
// partial merge still returns the moved part but reports false.
func ExtractPickup(dst inventory.Container, p Pickup) (item.Stack, bool) {
	offered := p.Stack()
	if offered.IsEmpty() {
		return item.Empty, false
	}

	rest := Transfer(nil, dst, offered, space.None)
	if rest.IsEmpty() {
		p.Discard()
		return offered, true
	}

	if rest.Count == offered.Count {
		return item.Empty, false
	}

	p.SetStack(rest)

	return offered.WithCount(offered.Count - rest.Count), false
}

// Transfer places as much of s into to as possible and returns what is left.
// from is the container the items come from and may be nil. When to is side
// restricted and side is not space.None, only the slots reachable from side
// are tried; otherwise every slot is tried in ascending order.
func Transfer(
	from, to inventory.Container,
	s item.Stack,
	side space.Direction,
) item.Stack {
	if sided, ok := to.(inventory.Sided); ok && side != space.None {
		for _, slot := range sided.AvailableSlots(side) {
			if s.IsEmpty() {
				break
			}

			s = transferToSlot(from, to, s, slot, side)
		}

		return s
	}

	for slot := 0; slot < to.Size() && !s.IsEmpty(); slot++ {
		s = transferToSlot(from, to, s, slot, side)
	}

	return s
}

func transferToSlot(
	from, to inventory.Container,
	s item.Stack,
	slot int,
	side space.Direction,
) item.Stack {
	if !inventory.CanInsert(to, slot, s, side) {
		return s
	}

	wasEmpty := to.IsEmpty()
	current := to.Stack(slot)
	moved := false

	if current.IsEmpty() {
		placed, rest := s.Split(s.Kind.MaxCount)
		to.SetStack(slot, placed)
		s = rest
		moved = true
	} else {
		merged, rest, n := item.Merge(current, s)
		if n > 0 {
			to.SetStack(slot, merged)
			s = rest
			moved = true
		}
	}

	if moved {
		if wasEmpty {
			armReceiver(from, to)
		}

		to.MarkDirty()
	}

	return s
}

// armReceiver applies the tie-break rule. A node that already ticked in the
// current pass, which shows as a last tick no earlier than the sender's, waits
// one tick less so that a chain of nodes forwards an item every tick.
func armReceiver(from, to inventory.Container) {
	receiver, ok := to.(CooldownHolder)
	if !ok {
		return
	}

	dst := receiver.Cooldown()
	if dst.IsDisabled() {
		return
	}

	peerReady := false
	if sender, ok := from.(CooldownHolder); ok {
		peerReady = dst.LastTick() >= sender.Cooldown().LastTick()
	}

	dst.Arm(peerReady)
}
