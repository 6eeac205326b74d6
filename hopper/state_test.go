package hopper

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cropper/cooldown"
	"github.com/sarchlab/cropper/item"
)

var _ = Describe("State", func() {
	var c *Comp

	BeforeEach(func() {
		c = MakeBuilder().Build("Hopper")
	})

	It("should snapshot occupied slots only", func() {
		c.SetStack(1, item.Stack{Kind: pearl, Tag: "named", Count: 4})
		c.Cooldown().Arm(true)

		s := c.Snapshot()

		Expect(s.TransferCooldown).To(Equal(cooldown.Period - 1))
		Expect(s.Slots).To(Equal([]SlotRecord{
			{Slot: 1, Item: "ender_pearl", MaxCount: 16, Tag: "named", Count: 4},
		}))
	})

	It("should restore a snapshot", func() {
		c.SetStack(0, item.NewStack(stone, 10))
		c.SetStack(4, item.Stack{Kind: pearl, Variant: 2, Count: 1})
		c.Cooldown().Set(3)
		saved := c.Snapshot()

		restored := MakeBuilder().Build("Restored")
		restored.SetStack(2, item.NewStack(stone, 1))
		restored.Restore(saved)

		Expect(restored.Stacks()).To(Equal(c.Stacks()))
		Expect(restored.Cooldown().Value()).To(Equal(3))
	})

	It("should skip records of missing slots", func() {
		c.Restore(State{
			Slots: []SlotRecord{
				{Slot: 7, Item: "stone", MaxCount: 64, Count: 1},
				{Slot: 0, Item: "", Count: 1},
			},
			TransferCooldown: cooldown.Initial,
		})

		Expect(c.IsEmpty()).To(BeTrue())
		Expect(c.Cooldown().IsReady()).To(BeTrue())
	})
})
