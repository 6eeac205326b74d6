package inventory

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/space"
)

var _ = Describe("SidedSlots", func() {
	var (
		furnace *SidedSlots
		coal    item.Kind
		fuel    item.Stack
		ore     item.Stack
	)

	BeforeEach(func() {
		coal = item.NewKind("coal", 64)
		fuel = item.NewStack(coal, 1)
		ore = item.NewStack(stone, 1)

		furnace = NewSidedSlots("Furnace", 3).
			WithFace(space.Up, Face{Slots: []int{0}, Insert: true}).
			WithFace(space.North, Face{Slots: []int{1}, Insert: true}).
			WithFace(space.Down, Face{Slots: []int{2, 1}, Extract: true}).
			WithFilter(func(slot int, s item.Stack) bool {
				if slot == 1 {
					return s.Kind.ID == "coal"
				}
				return true
			})
	})

	It("should panic on faces with unknown slots", func() {
		Expect(func() {
			furnace.WithFace(space.East, Face{Slots: []int{3}})
		}).To(Panic())
	})

	It("should expose the face slots in face order", func() {
		Expect(AvailableSlots(furnace, space.Down)).To(Equal([]int{2, 1}))
		Expect(AvailableSlots(furnace, space.Up)).To(Equal([]int{0}))
		Expect(AvailableSlots(furnace, space.West)).To(BeEmpty())
	})

	It("should combine the filter with the face", func() {
		Expect(CanInsert(furnace, 1, fuel, space.North)).To(BeTrue())
		Expect(CanInsert(furnace, 1, ore, space.North)).To(BeFalse())
		Expect(CanInsert(furnace, 0, ore, space.North)).To(BeFalse())
		Expect(CanInsert(furnace, 2, ore, space.Down)).To(BeFalse())
		Expect(CanInsert(furnace, 2, ore, space.None)).To(BeTrue())
	})

	It("should only extract through extract faces", func() {
		dst := NewSlots("Hopper", 5)

		Expect(CanExtract(dst, furnace, 2, ore, space.Down)).To(BeTrue())
		Expect(CanExtract(dst, furnace, 0, ore, space.Down)).To(BeFalse())
		Expect(CanExtract(dst, furnace, 0, ore, space.Up)).To(BeFalse())
	})

	It("should judge fullness only by reachable slots", func() {
		furnace.SetStack(0, item.NewStack(stone, 64))

		Expect(IsFullFrom(furnace, space.Up)).To(BeTrue())
		Expect(IsFullFrom(furnace, space.North)).To(BeFalse())
		Expect(IsEmptyFrom(furnace, space.Down)).To(BeTrue())
	})
})
