// Package tracing turns the transfer hooks of nodes into move records.
package tracing

import (
	"github.com/sarchlab/cropper/hopper"
	"github.com/sarchlab/cropper/item"
	"github.com/sarchlab/cropper/sim"
	"github.com/sarchlab/cropper/space"
)

// Kinds of moves.
const (
	KindPush   = "push"
	KindPull   = "pull"
	KindPickup = "pickup"
)

// A Move is one successful transfer of a node.
type Move struct {
	Tick    uint64
	Node    string
	Kind    string
	Item    string
	Variant int
	Tag     string
	Count   int
	Other   string
}

// A Tracer receives the moves of the nodes it is attached to.
type Tracer interface {
	RecordMove(m Move)
}

type named interface {
	Name() string
}

var kindOfPos = map[*sim.HookPos]string{
	hopper.HookPosPush:   KindPush,
	hopper.HookPosPull:   KindPull,
	hopper.HookPosPickup: KindPickup,
}

// MoveFromHookCtx converts the context of a transfer hook. It returns false
// for hooks that are not transfers.
func MoveFromHookCtx(ctx sim.HookCtx) (Move, bool) {
	kind, ok := kindOfPos[ctx.Pos]
	if !ok {
		return Move{}, false
	}

	stack, ok := ctx.Item.(item.Stack)
	if !ok {
		return Move{}, false
	}

	m := Move{
		Tick:    uint64(ctx.Now),
		Kind:    kind,
		Item:    stack.Kind.ID,
		Variant: stack.Variant,
		Tag:     stack.Tag,
		Count:   stack.Count,
	}

	if n, ok := ctx.Domain.(named); ok {
		m.Node = n.Name()
	}

	if pos, ok := ctx.Detail.(space.Pos); ok {
		m.Other = pos.String()
	}

	return m, true
}

type moveHook struct {
	tracer Tracer
}

func (h moveHook) Func(ctx sim.HookCtx) {
	if m, ok := MoveFromHookCtx(ctx); ok {
		h.tracer.RecordMove(m)
	}
}

// CollectMoves lets the tracer record the moves of the domain.
func CollectMoves(domain sim.Hookable, tracer Tracer) {
	domain.AcceptHook(moveHook{tracer: tracer})
}
