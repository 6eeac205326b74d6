package config

import (
	"github.com/sarchlab/cropper/hopper"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/space"
	"github.com/sarchlab/cropper/world"
)

const numHopperSlots = hopper.DefaultNumSlots

// Build creates the level described by the scenario. Containers are placed
// first, then nodes in the listed order, then the loose items are dropped.
func (s *Scenario) Build(engine sim.Engine) (*world.Level, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := world.MakeBuilder().WithEngine(engine)
	if s.Ticks > 0 {
		b = b.WithTickLimit(sim.VTimeInCycle(s.Ticks))
	}

	level := b.Build(s.Name)

	for _, c := range s.Containers {
		pos, _ := blockPos(c.Pos)
		level.PlaceContainer(pos, c.build())
	}

	for _, h := range s.Hoppers {
		pos, _ := blockPos(h.Pos)
		n := level.NewNode(h.Name, pos, space.MustParseDirection(h.facingName()))
		n.SetCustomName(h.DisplayName)
		fill(n, h.Items)

		if h.Cooldown != nil {
			n.Cooldown().Set(*h.Cooldown)
		}

		if h.Powered {
			level.SetPowered(pos, true)
		}
	}

	for _, e := range s.Entities {
		level.SpawnItem(
			space.Vec{X: e.Pos[0], Y: e.Pos[1], Z: e.Pos[2]},
			item.NewStack(item.NewKind(e.Item, e.MaxCount), e.Count),
		)
	}

	return level, nil
}

func (c Container) build() inventory.Container {
	if len(c.Faces) == 0 {
		slots := inventory.NewSlots(c.Name, c.Slots)
		fill(slots, c.Items)

		return slots
	}

	sided := inventory.NewSidedSlots(c.Name, c.Slots)
	for side, f := range c.Faces {
		sided.WithFace(space.MustParseDirection(side), inventory.Face{
			Slots:   f.Slots,
			Insert:  f.Insert,
			Extract: f.Extract,
		})
	}

	fill(sided, c.Items)

	return sided
}

func fill(c inventory.Container, stacks []Stack) {
	for _, st := range stacks {
		c.SetStack(st.Slot, item.Stack{
			Kind:    item.NewKind(st.Item, st.MaxCount),
			Variant: st.Variant,
			Tag:     st.Tag,
			Count:   st.Count,
		})
	}
}
