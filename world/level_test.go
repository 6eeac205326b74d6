package world

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cropper/cooldown"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/space"
)

var (
	stone = item.NewKind("stone", 64)
	pearl = item.NewKind("ender_pearl", 16)
)

var _ = Describe("Level", func() {
	var (
		level *Level
		at    space.Pos
		chest *inventory.Slots
	)

	BeforeEach(func() {
		level = MakeBuilder().WithTickLimit(20).Build("Level")
		at = space.Pos{X: 0, Y: 64, Z: 0}
		chest = inventory.NewSlots("Chest", 27)
	})

	It("should not place two blocks at the same position", func() {
		level.PlaceContainer(at, chest)

		Expect(func() {
			level.NewNode("Hopper", at, space.Down)
		}).To(Panic())
	})

	It("should not accept two nodes with the same name", func() {
		level.NewNode("Hopper", at, space.Down)

		Expect(func() {
			level.NewNode("Hopper", at.Up(), space.Down)
		}).To(Panic())
	})

	It("should find placed containers", func() {
		level.PlaceContainer(at, chest)

		c, found := level.ContainerAt(at)
		Expect(found).To(BeTrue())
		Expect(c).To(BeIdenticalTo(chest))

		_, found = level.ContainerAt(at.Up())
		Expect(found).To(BeFalse())
	})

	It("should push one item every cooldown period", func() {
		n := level.NewNode("Hopper", at, space.Down)
		n.SetStack(0, item.NewStack(stone, 5))
		level.PlaceContainer(at.Offset(space.Down), chest)

		Expect(level.Run()).To(Succeed())

		Expect(level.Engine().CurrentTime()).To(Equal(sim.VTimeInCycle(20)))
		Expect(chest.Stack(0).Count).To(Equal(3))
		Expect(n.Stack(0).Count).To(Equal(2))
	})

	It("should not move items out of a powered node", func() {
		n := level.NewNode("Hopper", at, space.Down)
		n.SetStack(0, item.NewStack(stone, 5))
		level.PlaceContainer(at.Offset(space.Down), chest)
		level.SetPowered(at, true)

		Expect(level.Run()).To(Succeed())

		Expect(chest.IsEmpty()).To(BeTrue())
		Expect(n.Stack(0).Count).To(Equal(5))
	})

	It("should stop ticking removed nodes", func() {
		n := level.NewNode("Hopper", at, space.Down)
		n.SetStack(0, item.NewStack(stone, 5))
		level.PlaceContainer(at.Offset(space.Down), chest)

		level.RemoveBlock(at)

		Expect(level.Run()).To(Succeed())
		Expect(level.Nodes()).To(BeEmpty())
		Expect(chest.IsEmpty()).To(BeTrue())
	})

	It("should report changed nodes after each tick", func() {
		n := level.NewNode("Hopper", at, space.Down)
		n.SetStack(0, item.NewStack(stone, 1))
		level.PlaceContainer(at.Offset(space.Down), chest)
		level.NewNode("Idle", space.Pos{X: 5}, space.Down)

		var changed [][]string
		var passes []string
		level.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
			passes = append(passes, ctx.Pos.Name)
			if ctx.Pos == HookPosTickDone {
				changed = append(changed, ctx.Item.([]string))
			}
		}))

		level = level.withTickLimit(2)
		Expect(level.Run()).To(Succeed())

		Expect(changed).To(Equal([][]string{{"Hopper"}, {}}))
		Expect(passes).To(Equal([]string{
			HookPosTickStart.Name, HookPosTickDone.Name,
			HookPosTickStart.Name, HookPosTickDone.Name,
		}))
	})

	Context("with loose items", func() {
		It("should collect an item dropped into the bowl at once", func() {
			n := level.NewNode("Hopper", at, space.Down)

			e := level.SpawnItem(
				space.Vec{X: 0.5, Y: 64.75, Z: 0.5},
				item.NewStack(stone, 10),
			)

			Expect(e.IsDiscarded()).To(BeTrue())
			Expect(n.Stack(0).Count).To(Equal(10))
			Expect(n.Cooldown().Value()).To(Equal(cooldown.Period))
		})

		It("should collect an item lying above during a tick", func() {
			n := level.NewNode("Hopper", at, space.Down)
			e := level.SpawnItem(
				space.Vec{X: 0.5, Y: 65.2, Z: 0.5},
				item.NewStack(stone, 10),
			)
			Expect(e.IsDiscarded()).To(BeFalse())
			Expect(level.PickupsIn(n.IntakeBoxes())).To(HaveLen(1))

			level = level.withTickLimit(1)
			Expect(level.Run()).To(Succeed())

			Expect(n.Stack(0).Count).To(Equal(10))
			Expect(level.Entities()).To(BeEmpty())
		})

		It("should keep scanning after an item fits only partly", func() {
			n := level.NewNode("Hopper", at, space.Down)
			for i := 0; i < 4; i++ {
				n.SetStack(i, item.NewStack(stone, 63))
			}
			n.SetStack(4, item.NewStack(pearl, 14))
			partial := level.SpawnItem(
				space.Vec{X: 0.5, Y: 65.2, Z: 0.5},
				item.NewStack(pearl, 5),
			)
			whole := level.SpawnItem(
				space.Vec{X: 0.5, Y: 65.4, Z: 0.5},
				item.NewStack(stone, 1),
			)

			level = level.withTickLimit(1)
			Expect(level.Run()).To(Succeed())

			Expect(whole.IsDiscarded()).To(BeTrue())
			Expect(partial.Stack().Count).To(Equal(3))
			Expect(level.Entities()).To(ConsistOf(partial))
			Expect(n.Stack(0).Count).To(Equal(64))
			Expect(n.Stack(4).Count).To(Equal(16))
			Expect(n.Cooldown().Value()).To(Equal(cooldown.Period))
		})

		It("should leave items out of reach alone", func() {
			level.NewNode("Hopper", at, space.Down)
			e := level.SpawnItem(
				space.Vec{X: 3.5, Y: 65.2, Z: 0.5},
				item.NewStack(stone, 10),
			)

			Expect(level.Run()).To(Succeed())

			Expect(level.Entities()).To(ConsistOf(e))
		})

		It("should collect an item moved into the bowl", func() {
			n := level.NewNode("Hopper", at, space.Down)
			e := level.SpawnItem(
				space.Vec{X: 3.5, Y: 64.75, Z: 0.5},
				item.NewStack(stone, 10),
			)

			level.MoveItem(e, space.Vec{X: 0.5, Y: 64.75, Z: 0.5})

			Expect(e.IsDiscarded()).To(BeTrue())
			Expect(n.Stack(0).Count).To(Equal(10))
		})
	})

	Context("with chained nodes", func() {
		var sink *inventory.Slots

		build := func(receiverFirst bool, limit sim.VTimeInCycle) {
			level = MakeBuilder().WithTickLimit(limit).Build("Chain")
			upstreamPos := space.Pos{X: -1, Y: 64}
			receiverPos := space.Pos{Y: 64}

			if receiverFirst {
				level.NewNode("Receiver", receiverPos, space.Down)
				level.NewNode("Upstream", upstreamPos, space.East)
			} else {
				level.NewNode("Upstream", upstreamPos, space.East)
				level.NewNode("Receiver", receiverPos, space.Down)
			}

			level.Node("Upstream").SetStack(0, item.NewStack(stone, 3))
			sink = inventory.NewSlots("Sink", 1)
			level.PlaceContainer(receiverPos.Offset(space.Down), sink)
		}

		DescribeTable("should forward at the same tick in any order",
			func(receiverFirst bool) {
				build(receiverFirst, cooldown.Period-1)
				Expect(level.Run()).To(Succeed())
				Expect(sink.IsEmpty()).To(BeTrue())

				build(receiverFirst, cooldown.Period)
				Expect(level.Run()).To(Succeed())
				Expect(sink.Stack(0).Count).To(Equal(1))
			},
			Entry("upstream first", false),
			Entry("receiver first", true),
		)
	})
})

func (l *Level) withTickLimit(n sim.VTimeInCycle) *Level {
	l.tickLimit = n
	return l
}
