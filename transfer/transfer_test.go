package transfer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

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

type nodeSlots struct {
	*inventory.Slots
	cd cooldown.State
}

func newNodeSlots(name string, lastTick sim.VTimeInCycle) *nodeSlots {
	n := &nodeSlots{Slots: inventory.NewSlots(name, 5), cd: cooldown.New()}
	n.cd.Tick(lastTick)

	return n
}

func (n *nodeSlots) Cooldown() *cooldown.State {
	return &n.cd
}

func tagged(kind item.Kind, tag string, count int) item.Stack {
	s := item.NewStack(kind, count)
	s.Tag = tag

	return s
}

var _ = Describe("Insert", func() {
	var (
		src *inventory.Slots
		dst *inventory.Slots
	)

	BeforeEach(func() {
		src = inventory.NewSlots("Src", 5)
		dst = inventory.NewSlots("Dst", 5)
	})

	It("should do nothing without a destination", func() {
		src.SetStack(0, item.NewStack(stone, 3))

		_, ok := Insert(src, nil, space.Up)

		Expect(ok).To(BeFalse())
		Expect(src.Stack(0).Count).To(Equal(3))
	})

	It("should move exactly one item from the first occupied slot", func() {
		src.SetStack(1, tagged(stone, "x", 3))
		src.SetStack(3, item.NewStack(pearl, 2))

		moved, ok := Insert(src, dst, space.Up)

		Expect(ok).To(BeTrue())
		Expect(moved).To(Equal(tagged(stone, "x", 1)))
		Expect(src.Stack(1).Count).To(Equal(2))
		Expect(src.Stack(3).Count).To(Equal(2))
		Expect(dst.Stack(0)).To(Equal(tagged(stone, "x", 1)))
		Expect(dst.IsDirty()).To(BeTrue())
	})

	It("should merge into a matching stack before using empty slots", func() {
		dst.SetStack(2, item.NewStack(stone, 10))
		src.SetStack(0, item.NewStack(stone, 1))

		_, ok := Insert(src, dst, space.Up)

		Expect(ok).To(BeTrue())
		Expect(src.IsEmpty()).To(BeTrue())
		Expect(dst.Stack(0).IsEmpty()).To(BeTrue())
		Expect(dst.Stack(2).Count).To(Equal(11))
	})

	It("should not insert into a saturated destination", func() {
		for i := 0; i < dst.Size(); i++ {
			dst.SetStack(i, item.NewStack(pearl, 16))
		}
		src.SetStack(0, item.NewStack(pearl, 4))

		_, ok := Insert(src, dst, space.Up)

		Expect(ok).To(BeFalse())
		Expect(src.Stack(0).Count).To(Equal(4))
		Expect(dst.IsDirty()).To(BeFalse())
	})

	It("should never merge stacks with different tags", func() {
		small := inventory.NewSlots("Small", 1)
		small.SetStack(0, tagged(stone, "y", 1))
		src.SetStack(0, tagged(stone, "x", 3))

		_, ok := Insert(src, small, space.Up)

		Expect(ok).To(BeFalse())
		Expect(src.Stack(0)).To(Equal(tagged(stone, "x", 3)))
		Expect(small.Stack(0)).To(Equal(tagged(stone, "y", 1)))
	})

	It("should move on to the next destination slot on a tag mismatch", func() {
		dst.SetStack(0, tagged(stone, "y", 1))
		src.SetStack(0, tagged(stone, "x", 3))

		_, ok := Insert(src, dst, space.Up)

		Expect(ok).To(BeTrue())
		Expect(dst.Stack(0)).To(Equal(tagged(stone, "y", 1)))
		Expect(dst.Stack(1)).To(Equal(tagged(stone, "x", 1)))
	})

	It("should try later source slots when an item is refused", func() {
		pearlsOnly := inventory.NewSidedSlots("PearlChest", 1).
			WithFace(space.Up, inventory.Face{Slots: []int{0}, Insert: true}).
			WithFilter(func(_ int, s item.Stack) bool {
				return s.Kind == pearl
			})
		src.SetStack(0, item.NewStack(stone, 3))
		src.SetStack(1, item.NewStack(pearl, 3))

		moved, ok := Insert(src, pearlsOnly, space.Up)

		Expect(ok).To(BeTrue())
		Expect(moved.Kind).To(Equal(pearl))
		Expect(src.Stack(0).Count).To(Equal(3))
		Expect(src.Stack(1).Count).To(Equal(2))
	})

	It("should only use the slots of the face it enters", func() {
		furnace := inventory.NewSidedSlots("Furnace", 3).
			WithFace(space.Up, inventory.Face{Slots: []int{0}, Insert: true}).
			WithFace(space.North, inventory.Face{Slots: []int{1}, Insert: true})
		src.SetStack(0, item.NewStack(stone, 3))

		_, ok := Insert(src, furnace, space.North)

		Expect(ok).To(BeTrue())
		Expect(furnace.Stack(0).IsEmpty()).To(BeTrue())
		Expect(furnace.Stack(1).Count).To(Equal(1))

		_, ok = Insert(src, furnace, space.West)
		Expect(ok).To(BeFalse(), "a side without a face counts as full")
	})

	Context("when the destination is a node", func() {
		It("should arm an empty receiver for a full period", func() {
			receiver := newNodeSlots("Receiver", 5)
			src.SetStack(0, item.NewStack(stone, 3))

			_, ok := Insert(src, receiver, space.Up)

			Expect(ok).To(BeTrue())
			Expect(receiver.cd.Value()).To(Equal(cooldown.Period))
		})

		It("should discount a receiver that already ticked this pass", func() {
			sender := newNodeSlots("Sender", 5)
			receiver := newNodeSlots("Receiver", 5)
			sender.SetStack(0, item.NewStack(stone, 3))

			_, ok := Insert(sender, receiver, space.Up)

			Expect(ok).To(BeTrue())
			Expect(receiver.cd.Value()).To(Equal(cooldown.Period - 1))
		})

		It("should not discount a receiver that has not ticked yet", func() {
			sender := newNodeSlots("Sender", 5)
			receiver := newNodeSlots("Receiver", 4)
			sender.SetStack(0, item.NewStack(stone, 3))

			_, ok := Insert(sender, receiver, space.Up)

			Expect(ok).To(BeTrue())
			Expect(receiver.cd.Value()).To(Equal(cooldown.Period))
		})

		It("should leave a receiver that already held items alone", func() {
			sender := newNodeSlots("Sender", 5)
			receiver := newNodeSlots("Receiver", 5)
			receiver.SetStack(4, item.NewStack(pearl, 1))
			sender.SetStack(0, item.NewStack(stone, 3))

			_, ok := Insert(sender, receiver, space.Up)

			Expect(ok).To(BeTrue())
			Expect(receiver.cd.Value()).To(Equal(cooldown.Initial - 1))
		})

		It("should not re-arm a disabled receiver", func() {
			receiver := newNodeSlots("Receiver", 5)
			receiver.cd.Set(cooldown.Period + 3)
			src.SetStack(0, item.NewStack(stone, 3))

			_, ok := Insert(src, receiver, space.Up)

			Expect(ok).To(BeTrue())
			Expect(receiver.cd.Value()).To(Equal(cooldown.Period + 3))
		})
	})
})

var _ = Describe("Extract", func() {
	var (
		hopper *inventory.Slots
		chest  *inventory.Slots
	)

	BeforeEach(func() {
		hopper = inventory.NewSlots("Hopper", 5)
		chest = inventory.NewSlots("Chest", 3)
	})

	It("should do nothing without a source", func() {
		_, ok := Extract(hopper, nil)

		Expect(ok).To(BeFalse())
	})

	It("should do nothing when the source is empty", func() {
		_, ok := Extract(hopper, chest)

		Expect(ok).To(BeFalse())
		Expect(chest.IsDirty()).To(BeFalse())
	})

	It("should pull one item from the first occupied slot", func() {
		chest.SetStack(1, item.NewStack(stone, 2))
		chest.SetStack(2, item.NewStack(pearl, 2))

		moved, ok := Extract(hopper, chest)

		Expect(ok).To(BeTrue())
		Expect(moved).To(Equal(item.NewStack(stone, 1)))
		Expect(chest.Stack(1).Count).To(Equal(1))
		Expect(chest.Stack(2).Count).To(Equal(2))
		Expect(hopper.Stack(0)).To(Equal(item.NewStack(stone, 1)))
		Expect(chest.IsDirty()).To(BeTrue())
	})

	It("should restore the source when the item does not fit", func() {
		for i := 0; i < hopper.Size(); i++ {
			hopper.SetStack(i, item.NewStack(pearl, 16))
		}
		chest.SetStack(0, item.NewStack(stone, 2))
		chest.SetStack(1, item.NewStack(pearl, 2))

		_, ok := Extract(hopper, chest)

		Expect(ok).To(BeFalse())
		Expect(chest.Stack(0).Count).To(Equal(2))
		Expect(chest.Stack(1).Count).To(Equal(2))
	})

	It("should only pull through the bottom face of sided sources", func() {
		furnace := inventory.NewSidedSlots("Furnace", 3).
			WithFace(space.Down, inventory.Face{Slots: []int{2}, Extract: true})
		furnace.SetStack(0, item.NewStack(stone, 5))

		_, ok := Extract(hopper, furnace)
		Expect(ok).To(BeFalse())

		furnace.SetStack(2, item.NewStack(pearl, 1))

		moved, ok := Extract(hopper, furnace)
		Expect(ok).To(BeTrue())
		Expect(moved.Kind).To(Equal(pearl))
		Expect(furnace.Stack(0).Count).To(Equal(5))
		Expect(furnace.Stack(2).IsEmpty()).To(BeTrue())
	})

	It("should arm an empty node pulling from a plain container", func() {
		node := newNodeSlots("Hopper", 3)
		node.cd.Reset()
		chest.SetStack(0, item.NewStack(stone, 2))

		_, ok := Extract(node, chest)

		Expect(ok).To(BeTrue())
		Expect(node.cd.Value()).To(Equal(cooldown.Period))
	})
})

var _ = Describe("ExtractPickup", func() {
	var (
		mockCtrl *gomock.Controller
		pickup   *MockPickup
		hopper   *inventory.Slots
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pickup = NewMockPickup(mockCtrl)
		hopper = inventory.NewSlots("Hopper", 5)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should absorb a whole stack and discard the entity", func() {
		pickup.EXPECT().Stack().Return(item.NewStack(pearl, 5))
		pickup.EXPECT().Discard()

		moved, ok := ExtractPickup(hopper, pickup)

		Expect(ok).To(BeTrue())
		Expect(moved.Count).To(Equal(5))
		Expect(hopper.Stack(0)).To(Equal(item.NewStack(pearl, 5)))
	})

	It("should leave the remainder on the entity and report no full pickup", func() {
		small := inventory.NewSlots("Small", 1)
		small.SetStack(0, item.NewStack(pearl, 14))
		pickup.EXPECT().Stack().Return(item.NewStack(pearl, 5))
		pickup.EXPECT().SetStack(item.NewStack(pearl, 3))

		moved, ok := ExtractPickup(small, pickup)

		Expect(ok).To(BeFalse())
		Expect(moved.Count).To(Equal(2))
		Expect(small.Stack(0).Count).To(Equal(16))
	})

	It("should leave the entity untouched when nothing fits", func() {
		small := inventory.NewSlots("Small", 1)
		small.SetStack(0, item.NewStack(stone, 1))
		pickup.EXPECT().Stack().Return(item.NewStack(pearl, 5))

		_, ok := ExtractPickup(small, pickup)

		Expect(ok).To(BeFalse())
		Expect(small.Stack(0).Count).To(Equal(1))
	})

	It("should ignore an entity without items", func() {
		pickup.EXPECT().Stack().Return(item.Empty)

		_, ok := ExtractPickup(hopper, pickup)

		Expect(ok).To(BeFalse())
	})

	It("should spread stacks above the max count over several slots", func() {
		pickup.EXPECT().Stack().Return(item.Stack{Kind: pearl, Count: 20})
		pickup.EXPECT().Discard()

		_, ok := ExtractPickup(hopper, pickup)

		Expect(ok).To(BeTrue())
		Expect(hopper.Stack(0).Count).To(Equal(16))
		Expect(hopper.Stack(1).Count).To(Equal(4))
	})

	It("should reach every slot of a side-restricted destination", func() {
		sided := inventory.NewSidedSlots("Sided", 3).
			WithFace(space.Up, inventory.Face{Slots: []int{2}, Insert: true}).
			WithFilter(func(slot int, s item.Stack) bool {
				return slot != 0 || s.Kind.ID == "coal"
			})
		pickup.EXPECT().Stack().Return(item.NewStack(pearl, 5))
		pickup.EXPECT().Discard()

		moved, ok := ExtractPickup(sided, pickup)

		Expect(ok).To(BeTrue())
		Expect(moved.Count).To(Equal(5))
		Expect(sided.Stack(0).IsEmpty()).To(BeTrue())
		Expect(sided.Stack(1)).To(Equal(item.NewStack(pearl, 5)))
		Expect(sided.Stack(2).IsEmpty()).To(BeTrue())
	})
})

var _ = Describe("Transfer", func() {
	It("should conserve items", func() {
		for dstCount := 0; dstCount <= 16; dstCount++ {
			for inCount := 1; inCount <= 16; inCount++ {
				dst := inventory.NewSlots("Dst", 1)
				dst.SetStack(0, item.NewStack(pearl, dstCount))

				rest := Transfer(nil, dst, item.NewStack(pearl, inCount), space.None)

				Expect(dst.Stack(0).Count).To(BeNumerically("<=", 16))
				Expect(dst.Stack(0).Count + rest.Count).
					To(Equal(dstCount + inCount))
			}
		}
	})

	It("should not mark the destination dirty when nothing moved", func() {
		dst := inventory.NewSlots("Dst", 1)
		dst.SetStack(0, item.NewStack(pearl, 16))

		rest := Transfer(nil, dst, item.NewStack(pearl, 1), space.None)

		Expect(rest.Count).To(Equal(1))
		Expect(dst.IsDirty()).To(BeFalse())
	})
})
