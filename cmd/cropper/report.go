package main

import (
	"fmt"
	"io"

	"github.com/sarchlab/cropper/config"
	"github.com/sarchlab/cropper/inventory"
	"github.com/sarchlab/cropper/space"
	"github.com/sarchlab/cropper/tracing"
	"github.com/sarchlab/cropper/world"
)

func writeReport(
	w io.Writer,
	s *config.Scenario,
	level *world.Level,
	counter *tracing.CountTracer,
) {
	fmt.Fprintf(w, "scenario %s: %d ticks\n",
		s.Name, level.Engine().CurrentTime())

	fmt.Fprintln(w, "\nnodes:")
	for _, n := range level.Nodes() {
		fmt.Fprintf(w, "  %s (%s) at %s facing %s, cooldown %d",
			n.Name(), n.DisplayName(), n.Pos(), n.Facing(),
			n.Cooldown().Value())
		if !n.IsEnabled() {
			fmt.Fprint(w, ", powered")
		}
		fmt.Fprintln(w)

		writeSlots(w, n)
		fmt.Fprintf(w, "    moved: push %d, pull %d, pickup %d\n",
			counter.Count(n.Name(), tracing.KindPush),
			counter.Count(n.Name(), tracing.KindPull),
			counter.Count(n.Name(), tracing.KindPickup))
	}

	if len(s.Containers) > 0 {
		fmt.Fprintln(w, "\ncontainers:")
	}
	for _, c := range s.Containers {
		pos := space.Pos{X: c.Pos[0], Y: c.Pos[1], Z: c.Pos[2]}
		placed, _ := level.ContainerAt(pos)

		fmt.Fprintf(w, "  %s at %s\n", c.Name, pos)
		writeSlots(w, placed)
	}

	entities := level.Entities()
	if len(entities) == 0 {
		fmt.Fprintln(w, "\nloose items: none")
	} else {
		fmt.Fprintln(w, "\nloose items:")
	}
	for _, e := range entities {
		p := e.Pos()
		fmt.Fprintf(w, "  %s at (%.2f, %.2f, %.2f)\n", e.Stack(), p.X, p.Y, p.Z)
	}

	fmt.Fprintf(w, "\ntotal moved: %d\n", counter.Total())
}

func writeSlots(w io.Writer, c inventory.Container) {
	if c.IsEmpty() {
		fmt.Fprintln(w, "    empty")
		return
	}

	for slot := 0; slot < c.Size(); slot++ {
		if s := c.Stack(slot); !s.IsEmpty() {
			fmt.Fprintf(w, "    slot %d: %s\n", slot, s)
		}
	}
}
