// Package joint implements velocity constraints between two bodies,
// solved by the same sequential-impulse loop that resolves contacts
// (spec.md §4.7).
package joint

// Joint is a two-body velocity constraint prepared once per step and then
// iterated over by the solver alongside contact arbiters.
type Joint interface {
	// PreStep precomputes the effective mass and bias for this step and
	// re-applies the impulse accumulated in the previous step
	// (warm-starting).
	PreStep(dt float64)
	// ApplyImpulse runs one sequential-impulse iteration.
	ApplyImpulse()
}
