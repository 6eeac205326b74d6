// Package item defines item kinds and stacks.
package item

import (
	"fmt"
	"log"
)

// DefaultMaxCount is the max count of most item kinds.
const DefaultMaxCount = 64

// Kind identifies an item. Kinds with the same ID always share MaxCount.
type Kind struct {
	ID       string
	MaxCount int
}

// NewKind creates a kind. A non-positive maxCount falls back to
// DefaultMaxCount.
func NewKind(id string, maxCount int) Kind {
	if id == "" {
		log.Panic("item kind must have an ID")
	}

	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	return Kind{ID: id, MaxCount: maxCount}
}

// A Stack is a quantity of one item variant. The zero Stack is empty.
//
// Stacks are values. Containers hand out copies and take new values through
// SetStack, so a stack read from one container can never be mutated behind
// that container's back.
type Stack struct {
	Kind    Kind
	Variant int
	Tag     string
	Count   int
}

// Empty is the empty stack.
var Empty = Stack{}

// NewStack creates a stack of count items of the kind.
func NewStack(kind Kind, count int) Stack {
	return Stack{Kind: kind}.WithCount(count)
}

// IsEmpty reports whether the stack holds nothing.
func (s Stack) IsEmpty() bool {
	return s.Count <= 0 || s.Kind.ID == ""
}

// MaxCount returns the max count of the stack's kind, or 0 when empty.
func (s Stack) MaxCount() int {
	if s.IsEmpty() {
		return 0
	}

	return s.Kind.MaxCount
}

// IsFull reports whether the stack is occupied at its max count.
func (s Stack) IsFull() bool {
	return !s.IsEmpty() && s.Count >= s.Kind.MaxCount
}

// Space returns how many more items of the same variant fit.
func (s Stack) Space() int {
	if s.IsEmpty() {
		return 0
	}

	free := s.Kind.MaxCount - s.Count
	if free < 0 {
		return 0
	}

	return free
}

// WithCount returns a copy with the given count. Counts that are not positive
// give the empty stack.
func (s Stack) WithCount(count int) Stack {
	if count <= 0 {
		return Empty
	}

	s.Count = count

	return s
}

// Grow returns a copy with n more items.
func (s Stack) Grow(n int) Stack {
	return s.WithCount(s.Count + n)
}

// Shrink returns a copy with n fewer items.
func (s Stack) Shrink(n int) Stack {
	return s.WithCount(s.Count - n)
}

// Split takes up to n items off the stack. It returns the taken part and the
// remainder.
func (s Stack) Split(n int) (taken, rest Stack) {
	if n < 0 {
		log.Panicf("cannot split %d items", n)
	}

	if s.IsEmpty() || n == 0 {
		return Empty, s
	}

	if n > s.Count {
		n = s.Count
	}

	return s.WithCount(n), s.Shrink(n)
}

// Clamp caps the count at the kind's max count.
func (s Stack) Clamp() Stack {
	if s.IsEmpty() {
		return Empty
	}

	if s.Count > s.Kind.MaxCount {
		s.Count = s.Kind.MaxCount
	}

	return s
}

// SameVariant reports whether both stacks hold the same item, damage and tag.
func (s Stack) SameVariant(o Stack) bool {
	return s.Kind.ID == o.Kind.ID &&
		s.Variant == o.Variant &&
		s.Tag == o.Tag
}

// CanMergeWith reports whether items from incoming may be added to s.
func (s Stack) CanMergeWith(incoming Stack) bool {
	if s.IsEmpty() || incoming.IsEmpty() {
		return false
	}

	return s.SameVariant(incoming) && s.Count <= s.Kind.MaxCount
}

// Merge moves as many items from incoming into s as the max count allows.
// It returns the grown s, what is left of incoming and how many items moved.
// Stacks that cannot merge are returned unchanged.
func Merge(s, incoming Stack) (merged, rest Stack, moved int) {
	if !s.CanMergeWith(incoming) {
		return s, incoming, 0
	}

	moved = incoming.Kind.MaxCount - s.Count
	if incoming.Count < moved {
		moved = incoming.Count
	}

	if moved <= 0 {
		return s, incoming, 0
	}

	return s.Grow(moved), incoming.Shrink(moved), moved
}

func (s Stack) String() string {
	if s.IsEmpty() {
		return "empty"
	}

	str := fmt.Sprintf("%s x%d", s.Kind.ID, s.Count)
	if s.Variant != 0 {
		str += fmt.Sprintf(" @%d", s.Variant)
	}

	if s.Tag != "" {
		str += " " + s.Tag
	}

	return str
}
