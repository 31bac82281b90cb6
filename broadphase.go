package impulse2d

import "github.com/bramblekeep/impulse2d/body"

// BodyPair is a candidate pair of bodies whose AABBs overlap, to be
// tested exactly by the narrow phase.
type BodyPair struct {
	A, B *body.Body
}

// pairResult is an already-resolved pair, kept around so the event bus
// can see trigger overlaps the solver itself skips.
type pairResult struct {
	a, b    *body.Body
	trigger bool
}

// BroadPhase finds candidate colliding pairs from the full body list.
// The default is PairwiseBroadPhase; Grid is an opt-in alternative for
// larger scenes (SPEC_FULL.md §6). Neither changes which pairs are
// eventually reported as colliding, only how fast the search is.
type BroadPhase interface {
	FindPairs(bodies []*body.Body) []BodyPair
}

// PairwiseBroadPhase tests every body against every later body in
// insertion order, so the candidate pairs come out in a deterministic
// order (spec.md §5).
type PairwiseBroadPhase struct{}

// FindPairs performs the O(n^2) AABB reject scan.
func (PairwiseBroadPhase) FindPairs(bodies []*body.Body) []BodyPair {
	var pairs []BodyPair
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if a.IsStatic() && b.IsStatic() {
				continue
			}
			if !a.AABB().Overlaps(b.AABB()) {
				continue
			}
			pairs = append(pairs, BodyPair{A: a, B: b})
		}
	}
	return pairs
}
