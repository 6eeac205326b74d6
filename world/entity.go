package world

import (
	"github.com/rs/xid"

	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/space"
)

// Size of the collision box of a loose item.
const (
	itemHalfWidth = 0.125
	itemHeight    = 0.25
)

// An ItemEntity is a stack lying loose in the level.
type ItemEntity struct {
	id        string
	pos       space.Vec
	stack     item.Stack
	discarded bool
}

func newItemEntity(pos space.Vec, s item.Stack) *ItemEntity {
	return &ItemEntity{
		id:    xid.New().String(),
		pos:   pos,
		stack: s,
	}
}

// ID returns the unique ID of the entity.
func (e *ItemEntity) ID() string {
	return e.id
}

// Pos returns the position of the bottom centre of the entity.
func (e *ItemEntity) Pos() space.Vec {
	return e.pos
}

// Box returns the collision box of the entity.
func (e *ItemEntity) Box() space.Box {
	return space.BoxAround(e.pos, itemHalfWidth, itemHeight)
}

// Stack returns the carried stack.
func (e *ItemEntity) Stack() item.Stack {
	return e.stack
}

// SetStack replaces the carried stack.
func (e *ItemEntity) SetStack(s item.Stack) {
	e.stack = s
}

// Discard removes the entity from the level at the end of the tick.
func (e *ItemEntity) Discard() {
	e.discarded = true
}

// IsDiscarded tells whether the entity has been discarded.
func (e *ItemEntity) IsDiscarded() bool {
	return e.discarded
}
