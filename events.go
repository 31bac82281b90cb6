package impulse2d

import (
	"unsafe"

	"github.com/bramblekeep/impulse2d/body"
)

// EventType discriminates the events an EventBus can emit
// (SPEC_FULL.md §6).
type EventType uint8

const (
	CollisionEnter EventType = iota
	CollisionStay
	CollisionExit
	TriggerEnter
	TriggerStay
	TriggerExit
	BodySleep
	BodyWake
)

// Event is implemented by every concrete event type.
type Event interface {
	Type() EventType
}

// CollisionEvent covers Enter/Stay/Exit for a pair of non-trigger bodies.
type CollisionEvent struct {
	EventType EventType
	A, B      *body.Body
}

func (e CollisionEvent) Type() EventType { return e.EventType }

// TriggerEvent covers Enter/Stay/Exit for a pair where at least one body
// is a trigger volume.
type TriggerEvent struct {
	EventType EventType
	A, B      *body.Body
}

func (e TriggerEvent) Type() EventType { return e.EventType }

// SleepEvent fires once when a body transitions to asleep.
type SleepEvent struct{ Body *body.Body }

func (e SleepEvent) Type() EventType { return BodySleep }

// WakeEvent fires once when a body transitions to awake.
type WakeEvent struct{ Body *body.Body }

func (e WakeEvent) Type() EventType { return BodyWake }

// Listener receives events subscribed to on an EventBus.
type Listener func(Event)

type pairID struct{ a, b *body.Body }

func makePairID(a, b *body.Body) pairID {
	// Map keys only need to be internally consistent for one run, so
	// pointer identity is enough here (unlike contact.Key, this is
	// never used to drive solver iteration order).
	if uintptr(unsafe.Pointer(b)) < uintptr(unsafe.Pointer(a)) {
		a, b = b, a
	}
	return pairID{a: a, b: b}
}

// EventBus records collision/trigger pair transitions and sleep state
// changes across a Step and delivers them to subscribers, adapted from
// the teacher's pair-tracking approach.
type EventBus struct {
	listeners map[EventType][]Listener
	buffer    []Event

	previousPairs map[pairID]bool
	currentPairs  map[pairID]bool
	triggerPairs  map[pairID]bool

	sleepStates map[*body.Body]bool
}

func newEventBus() *EventBus {
	return &EventBus{
		listeners:     make(map[EventType][]Listener),
		previousPairs: make(map[pairID]bool),
		currentPairs:  make(map[pairID]bool),
		triggerPairs:  make(map[pairID]bool),
		sleepStates:   make(map[*body.Body]bool),
	}
}

// Subscribe registers a listener for an event type.
func (e *EventBus) Subscribe(t EventType, l Listener) {
	e.listeners[t] = append(e.listeners[t], l)
}

func (e *EventBus) recordPairs(pairs []pairResult) {
	for _, p := range pairs {
		id := makePairID(p.a, p.b)
		e.currentPairs[id] = true
		if p.trigger {
			e.triggerPairs[id] = true
		}
	}
}

func (e *EventBus) processSleepStates(bodies []*body.Body) {
	for _, b := range bodies {
		// An untracked body counts as awake, so a body that falls asleep
		// on its first step still reports the transition.
		was := e.sleepStates[b]
		now := b.Asleep()
		if !was && now {
			e.buffer = append(e.buffer, SleepEvent{Body: b})
			e.sleepStates[b] = true
		} else if was && !now {
			e.buffer = append(e.buffer, WakeEvent{Body: b})
			e.sleepStates[b] = false
		}
	}
}

func (e *EventBus) processPairEvents() {
	for id := range e.currentPairs {
		if id.a.Asleep() && id.b.Asleep() {
			continue
		}
		isTrigger := e.triggerPairs[id]
		if e.previousPairs[id] {
			e.buffer = append(e.buffer, e.pairEvent(id, isTrigger, true))
		} else {
			e.buffer = append(e.buffer, e.pairEvent(id, isTrigger, false))
		}
	}
	for id := range e.previousPairs {
		if !e.currentPairs[id] {
			isTrigger := e.triggerPairs[id]
			e.buffer = append(e.buffer, e.pairExitEvent(id, isTrigger))
			delete(e.triggerPairs, id)
		}
	}
	e.previousPairs, e.currentPairs = e.currentPairs, e.previousPairs
	clear(e.currentPairs)
}

func (e *EventBus) pairEvent(id pairID, isTrigger, stay bool) Event {
	if isTrigger {
		t := TriggerEnter
		if stay {
			t = TriggerStay
		}
		return TriggerEvent{EventType: t, A: id.a, B: id.b}
	}
	t := CollisionEnter
	if stay {
		t = CollisionStay
	}
	return CollisionEvent{EventType: t, A: id.a, B: id.b}
}

func (e *EventBus) pairExitEvent(id pairID, isTrigger bool) Event {
	if isTrigger {
		return TriggerEvent{EventType: TriggerExit, A: id.a, B: id.b}
	}
	return CollisionEvent{EventType: CollisionExit, A: id.a, B: id.b}
}

// flush dispatches every buffered event to its subscribers and clears
// the buffer. Called once at the end of each Step.
func (e *EventBus) flush() {
	e.processPairEvents()
	for _, ev := range e.buffer {
		for _, l := range e.listeners[ev.Type()] {
			l(ev)
		}
	}
	e.buffer = e.buffer[:0]
}
