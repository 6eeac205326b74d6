package sim

// TickEvent asks a handler to advance its state by one tick.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a TickEvent.
func MakeTickEvent(handler Handler, time VTimeInCycle) TickEvent {
	return TickEvent{*NewEventBase(time, handler)}
}

// MakeSecondaryTickEvent creates a TickEvent handled after the primary
// events of the same tick.
func MakeSecondaryTickEvent(handler Handler, time VTimeInCycle) TickEvent {
	evt := MakeTickEvent(handler, time)
	evt.secondary = true

	return evt
}

// A Ticker is an object that updates states with ticks. Tick returns true if
// the object made progress.
type Ticker interface {
	Tick(now VTimeInCycle) bool
}
