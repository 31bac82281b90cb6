// Package collide implements the narrow-phase test between two convex
// polygon bodies: the separating-axis search, incident-edge selection and
// Sutherland-Hodgman-style clipping that together produce a contact
// manifold (spec.md §4.1, §4.2).
package collide

import (
	"math"

	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/contact"
	"github.com/bramblekeep/impulse2d/vec"
)

// clipPoint is an intermediate manifold point before separation filtering,
// carrying the feature tag it was clipped from.
type clipPoint struct {
	position vec.Vec2
	feature  contact.Feature
}

// findMinSeparatingAxis returns the largest (least negative, or positive
// if disjoint) separation of ref's edges against other's vertices, and
// the index of the edge that achieves it (spec.md §4.1).
func findMinSeparatingAxis(ref, other *body.Body) (float64, int) {
	bestSep := math.Inf(-1)
	bestIdx := 0
	for i := 0; i < ref.VertexCount(); i++ {
		va := ref.Vertex(i)
		normal := ref.Edge(i).Normal()
		minSep := math.Inf(1)
		for j := 0; j < other.VertexCount(); j++ {
			vb := other.Vertex(j)
			minSep = math.Min(minSep, vb.Sub(va).Dot(normal))
		}
		if minSep > bestSep {
			bestSep = minSep
			bestIdx = i
		}
	}
	return bestSep, bestIdx
}

// findIncidentEdge picks the edge of body whose outward normal is most
// anti-parallel to the reference normal.
func findIncidentEdge(normal vec.Vec2, b *body.Body) int {
	bestDot := math.Inf(1)
	bestIdx := 0
	for i := 0; i < b.VertexCount(); i++ {
		edgeNormal := b.Edge(i).Normal()
		dot := edgeNormal.Dot(normal)
		if dot < bestDot {
			bestDot = dot
			bestIdx = i
		}
	}
	return bestIdx
}

// clip clips the 2-point segment in against the half-space behind the
// plane through v0-v1 (outward normal (v1-v0).Normal()), Sutherland-
// Hodgman style. A point on the clipped-away side is replaced by the
// intersection with the plane, tagged with feature index idx.
func clip(in [2]clipPoint, idx int, v0, v1 vec.Vec2) ([2]clipPoint, int) {
	var out [2]clipPoint
	n := 0
	normal := v1.Sub(v0).Normalize()
	dist0 := in[0].position.Sub(v0).Cross(normal)
	dist1 := in[1].position.Sub(v0).Cross(normal)

	if dist0 <= 0 {
		out[n] = in[0]
		n++
	}
	if dist1 <= 0 {
		out[n] = in[1]
		n++
	}
	if dist0*dist1 < 0 {
		totalDist := dist0 - dist1
		v := in[0].position.Scale(-dist1).Add(in[1].position.Scale(dist0)).Div(totalDist)
		out[n] = clipPoint{position: v, feature: contact.Feature{Index: idx, FromA: true}}
		n++
	}
	return out, n
}

// Manifold resolves the collision between a and b, if any, returning the
// arbiter-shaped contact set and true, or false if the bodies are
// separated along some axis (spec.md §4.1-§4.2). dt is needed to
// precompute each contact's Baumgarte bias term.
func Manifold(a, b *body.Body, dt float64) (*contact.Arbiter, bool) {
	sepA, idxA := findMinSeparatingAxis(a, b)
	if sepA >= 0 {
		return nil, false
	}
	sepB, idxB := findMinSeparatingAxis(b, a)
	if sepB >= 0 {
		return nil, false
	}

	ref, inc := a, b
	refIdx := idxA
	if sepB > sepA {
		ref, inc = b, a
		refIdx = idxB
	}

	refV := ref.Vertex(refIdx)
	normal := ref.Edge(refIdx).Normal()
	tangent := normal.Normal()

	incIdx := findIncidentEdge(normal, inc)
	nextIdx := (incIdx + 1) % inc.VertexCount()
	points := [2]clipPoint{
		{position: inc.Vertex(incIdx), feature: contact.Feature{Index: incIdx, FromA: false}},
		{position: inc.Vertex(nextIdx), feature: contact.Feature{Index: nextIdx, FromA: false}},
	}

	for i := 0; i < ref.VertexCount(); i++ {
		if i == refIdx {
			continue
		}
		v0 := ref.Vertex(i)
		v1 := ref.Vertex((i + 1) % ref.VertexCount())
		clipped, n := clip(points, i, v0, v1)
		if n < 2 {
			return nil, false
		}
		points = clipped
	}

	arbiter := &contact.Arbiter{A: ref, B: inc, Normal: normal}
	for _, p := range points {
		sep := p.position.Sub(refV).Dot(normal)
		if sep > 0 {
			continue
		}
		c := contact.Contact{Position: p.position, Separation: sep, Feature: p.feature}
		c.Precompute(ref, inc, normal, tangent, dt)
		arbiter.Contacts = append(arbiter.Contacts, c)
	}

	if len(arbiter.Contacts) == 0 {
		return nil, false
	}
	return arbiter, true
}
