package hopper

import "github.com/sarchlab/cropper/item"

// SlotRecord is the saved content of one occupied slot.
type SlotRecord struct {
	Slot     int
	Item     string
	MaxCount int
	Variant  int
	Tag      string
	Count    int
}

// State is everything that survives a save and load of a node.
type State struct {
	Slots            []SlotRecord
	TransferCooldown int
}

// Snapshot captures the occupied slots and the transfer cooldown.
func (c *Comp) Snapshot() State {
	s := State{TransferCooldown: c.cooldown.Value()}

	for i, stack := range c.Stacks() {
		if stack.IsEmpty() {
			continue
		}

		s.Slots = append(s.Slots, SlotRecord{
			Slot:     i,
			Item:     stack.Kind.ID,
			MaxCount: stack.Kind.MaxCount,
			Variant:  stack.Variant,
			Tag:      stack.Tag,
			Count:    stack.Count,
		})
	}

	return s
}

// Restore replaces the slots and the transfer cooldown with the saved ones.
// Records of slots the node does not have are skipped.
func (c *Comp) Restore(s State) {
	c.Clear()

	for _, r := range s.Slots {
		if r.Slot < 0 || r.Slot >= c.Size() || r.Item == "" {
			continue
		}

		c.SetStack(r.Slot, item.Stack{
			Kind:    item.NewKind(r.Item, r.MaxCount),
			Variant: r.Variant,
			Tag:     r.Tag,
			Count:   r.Count,
		})
	}

	c.cooldown.Set(s.TransferCooldown)
}
