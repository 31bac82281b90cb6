// Package impulse2d is a deterministic, single-threaded 2D rigid-body
// physics engine: convex polygon bodies, persistent contact manifolds
// with warm-started sequential impulses, and revolute joints.
package impulse2d

import (
	"sort"

	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/collide"
	"github.com/bramblekeep/impulse2d/contact"
	"github.com/bramblekeep/impulse2d/joint"
	"github.com/bramblekeep/impulse2d/vec"
)

// World owns every body and joint in a simulation and steps them forward
// in a fixed, deterministic order (spec.md §5).
type World struct {
	Bodies  []*body.Body
	Joints  []joint.Joint
	Gravity vec.Vec2

	// Iterations is the number of sequential-impulse passes per step.
	Iterations int

	// SleepVelocityThreshold and SleepDuration configure TrySleep; a
	// zero SleepDuration disables sleeping (every body stays awake).
	SleepVelocityThreshold float64
	SleepDuration          float64

	broadPhase BroadPhase
	events     *EventBus

	arbiters     map[contact.Key]*contact.Arbiter
	arbiterOrder []contact.Key
}

// NewWorld builds a World from a Config (see config.go for defaults).
func NewWorld(cfg Config) *World {
	return &World{
		Gravity:                cfg.Gravity(),
		Iterations:             cfg.Iterations,
		SleepVelocityThreshold: cfg.SleepVelocityThreshold,
		SleepDuration:          cfg.SleepDuration,
		broadPhase:             PairwiseBroadPhase{},
		events:                 newEventBus(),
		arbiters:               make(map[contact.Key]*contact.Arbiter),
	}
}

// Events returns the world's event bus, for subscribing to collision and
// sleep notifications (SPEC_FULL.md §6).
func (w *World) Events() *EventBus { return w.events }

// SetBroadPhase swaps in an alternative broad-phase pair finder, such as
// a Grid, without changing the narrow-phase contract (SPEC_FULL.md §6).
func (w *World) SetBroadPhase(bp BroadPhase) { w.broadPhase = bp }

// Add inserts a body into the world. A body's position in Bodies is its
// insertion index, which is what arbiter keys are built from
// (spec.md §5) — bodies are never reordered after insertion.
func (w *World) Add(b *body.Body) { w.Bodies = append(w.Bodies, b) }

// AddJoint inserts a joint, solved every step alongside contacts.
func (w *World) AddJoint(j joint.Joint) { w.Joints = append(w.Joints, j) }

// Clear destroys every body, joint and arbiter atomically. Outstanding
// references to them become invalid (spec.md §3/§5); the World itself
// stays usable for a fresh scene.
func (w *World) Clear() {
	w.Bodies = nil
	w.Joints = nil
	w.arbiters = make(map[contact.Key]*contact.Arbiter)
	w.arbiterOrder = nil
	w.events = newEventBus()
}

// NewBox is a convenience constructor that both builds and adds a box
// body to the world.
func (w *World) NewBox(mass, width, height float64, position vec.Vec2) *body.Body {
	b := body.NewBox(mass, width, height, position)
	w.Add(b)
	return b
}

// NewPolygon is a convenience constructor that both builds and adds a
// polygon body to the world.
func (w *World) NewPolygon(mass float64, vertices []vec.Vec2, position vec.Vec2) (*body.Body, error) {
	b, err := body.NewPolygonBody(mass, vertices, position)
	if err != nil {
		return nil, err
	}
	w.Add(b)
	return b, nil
}

// NewRevoluteJoint is a convenience constructor that both builds and adds
// a revolute joint pinning a and b at the given world anchor.
func (w *World) NewRevoluteJoint(a, b *body.Body, anchor vec.Vec2) *joint.Revolute {
	j := joint.NewRevolute(a, b, anchor)
	w.AddJoint(j)
	return j
}

// indexOf returns b's insertion index, or -1 if it is not in the world.
func (w *World) indexOf(b *body.Body) int {
	for i, other := range w.Bodies {
		if other == b {
			return i
		}
	}
	return -1
}

// Step advances the simulation by dt, running the fixed six-phase pass
// spec.md §4 lays out: integrate velocities, find contacts, warm-start,
// solve velocities, integrate positions, clear forces.
func (w *World) Step(dt float64) {
	for _, b := range w.Bodies {
		b.IntegrateVelocity(w.Gravity, dt)
	}

	newArbiters, pairs := w.findContacts(dt)
	for key, ar := range newArbiters {
		ar.AccumulateImpulse(w.arbiters[key])
	}
	w.arbiters = newArbiters
	w.arbiterOrder = sortedKeys(w.arbiters)

	for _, j := range w.Joints {
		j.PreStep(dt)
	}

	for i := 0; i < w.Iterations; i++ {
		for _, key := range w.arbiterOrder {
			w.arbiters[key].ApplyImpulse()
		}
		for _, j := range w.Joints {
			j.ApplyImpulse()
		}
	}

	for _, b := range w.Bodies {
		b.IntegratePosition(dt)
	}

	for _, b := range w.Bodies {
		b.ClearForces()
		if w.SleepDuration > 0 {
			b.TrySleep(dt, w.SleepVelocityThreshold, w.SleepDuration)
		}
	}

	w.events.recordPairs(pairs)
	w.events.processSleepStates(w.Bodies)
	w.events.flush()
}

// findContacts runs the broad phase to get candidate pairs, then the
// narrow phase (collide.Manifold) on each, in body-insertion order, and
// splits out the non-trigger arbiters the solver iterates over from the
// full pair list the event bus needs to see.
func (w *World) findContacts(dt float64) (map[contact.Key]*contact.Arbiter, []pairResult) {
	arbiters := make(map[contact.Key]*contact.Arbiter)
	var pairs []pairResult

	for _, p := range w.broadPhase.FindPairs(w.Bodies) {
		a, b := p.A, p.B
		if a.Asleep() && b.Asleep() {
			continue
		}
		if a.IsStatic() && b.IsStatic() {
			continue
		}
		ar, ok := collide.Manifold(a, b, dt)
		if !ok {
			continue
		}
		pairs = append(pairs, pairResult{a: a, b: b, trigger: a.IsTrigger() || b.IsTrigger()})
		if a.IsTrigger() || b.IsTrigger() {
			continue
		}
		key := contact.NewKey(w.indexOf(a), w.indexOf(b))
		arbiters[key] = ar
	}
	return arbiters, pairs
}

func sortedKeys(m map[contact.Key]*contact.Arbiter) []contact.Key {
	keys := make([]contact.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
