// Package cooldown implements the transfer cooldown that rate-limits a node.
package cooldown

import "github.com/sarchlab/cropper/sim"

const (
	// Period is the number of ticks a node waits after a transfer.
	Period = 8

	// Initial is the cooldown of a freshly placed node. It is ready at once.
	Initial = -1
)

// State is the cooldown counter of one node together with the tick at which
// the node was last ticked.
//
// A value greater than Period means the node is disabled. A value in
// (0, Period] means the node is counting down. A value of 0 or less means the
// node is ready.
type State struct {
	value    int
	lastTick sim.VTimeInCycle
}

// New returns a ready cooldown.
func New() State {
	return State{value: Initial}
}

// Tick counts one tick down and stamps now as the last tick.
func (s *State) Tick(now sim.VTimeInCycle) {
	s.value--
	s.lastTick = now
}

// IsReady tells whether the node may transfer this tick.
func (s *State) IsReady() bool {
	return s.value <= 0
}

// IsDisabled tells whether the cooldown is above the normal period.
func (s *State) IsDisabled() bool {
	return s.value > Period
}

// Arm starts a new cooldown after a transfer. A peer that already ticked in
// this pass gets one tick less so that chained nodes stay in step.
func (s *State) Arm(peerReady bool) {
	if peerReady {
		s.value = Period - 1
		return
	}

	s.value = Period
}

// Reset sets the value to 0.
func (s *State) Reset() {
	s.value = 0
}

// Set overrides the value, e.g. when loading a saved node.
func (s *State) Set(value int) {
	s.value = value
}

// Value returns the current counter.
func (s *State) Value() int {
	return s.value
}

// LastTick returns the tick stamped by the most recent Tick.
func (s *State) LastTick() sim.VTimeInCycle {
	return s.lastTick
}
