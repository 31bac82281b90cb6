// Package contact holds the per-pair contact manifold, the persistent
// arbiter that carries warm-start impulses across steps, and the
// sequential-impulse solver that resolves the manifold's contacts.
package contact

import (
	"math"

	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/vec"
)

const (
	allowedPenetration = 0.01
	biasFactor         = 0.2
)

// Feature identifies which vertex (and which body the clip kept it from)
// a contact point originated from. Two contacts from consecutive steps
// refer to the same physical contact iff their Feature values are equal;
// this is what lets warm-starting carry an accumulated impulse forward
// even as bodies move.
type Feature struct {
	Index int
	FromA bool
}

// Contact is one point of a two-body manifold, precomputed once per step
// and then iterated over by the solver.
type Contact struct {
	Position   vec.Vec2
	Ra, Rb     vec.Vec2 // lever arms from each body's world centroid
	Separation float64
	Feature    Feature

	Pn, Pt float64 // accumulated normal / tangent impulse

	massNormal, massTangent float64
	bias                    float64
}

// Precompute fills in the lever arms, effective masses and position-error
// bias for a contact already positioned and feature-tagged by the collide
// package (spec.md §4.3). normal and tangent are shared by every contact
// in the manifold.
func (c *Contact) Precompute(a, b *body.Body, normal, tangent vec.Vec2, dt float64) {
	c.Ra = c.Position.Sub(a.CentroidWorld())
	c.Rb = c.Position.Sub(b.CentroidWorld())

	rnA := vec.CrossScalar(c.Ra.Cross(normal), c.Ra)
	rnB := vec.CrossScalar(c.Rb.Cross(normal), c.Rb)
	c.massNormal = 1 / (a.InvMass + b.InvMass +
		a.InvInertia*rnA.Dot(normal) + b.InvInertia*rnB.Dot(normal))

	rtA := vec.CrossScalar(c.Ra.Cross(tangent), c.Ra)
	rtB := vec.CrossScalar(c.Rb.Cross(tangent), c.Rb)
	c.massTangent = 1 / (a.InvMass + b.InvMass +
		a.InvInertia*rtA.Dot(tangent) + b.InvInertia*rtB.Dot(tangent))

	c.bias = -biasFactor / dt * math.Min(0, c.Separation+allowedPenetration)
}

// Arbiter is the persistent record of the contact manifold between two
// specific bodies. It survives across steps so accumulated impulses can
// be warm-started (spec.md §4.4).
type Arbiter struct {
	A, B     *body.Body
	Normal   vec.Vec2
	Contacts []Contact
}

// Key identifies an unordered pair of bodies. It is built from each
// body's insertion index in the owning world rather than from pointer
// identity or UUID, so the solver's arbiter order, which sorts keys with
// Less, stays reproducible across runs (spec.md §5).
type Key struct {
	low, high int
}

// NewKey builds a Key from the pair's insertion indices, canonicalizing
// the order so (i, j) and (j, i) produce the same key.
func NewKey(i, j int) Key {
	if i > j {
		i, j = j, i
	}
	return Key{low: i, high: j}
}

// Less gives Key a total order, used to keep arbiter iteration stable.
func (k Key) Less(other Key) bool {
	if k.low != other.low {
		return k.low < other.low
	}
	return k.high < other.high
}

// MaxContacts bounds the number of points kept per manifold, mirroring
// the bound Arbiter::kMaxContacts carries in the original solver. A
// clipped face-face manifold in 2D never produces more than 2.
const MaxContacts = 2

// AccumulateImpulse carries warm-start impulses from the previous step's
// arbiter for this pair into the freshly-built manifold, matching
// contacts by Feature, and immediately re-applies the carried impulse to
// the bodies' velocities (spec.md §4.4).
func (ar *Arbiter) AccumulateImpulse(old *Arbiter) {
	if old == nil {
		return
	}
	tangent := ar.Normal.Normal()
	for i := range ar.Contacts {
		nc := &ar.Contacts[i]
		for _, oc := range old.Contacts {
			if oc.Feature != nc.Feature {
				continue
			}
			nc.Pn = oc.Pn
			nc.Pt = oc.Pt

			p := ar.Normal.Scale(nc.Pn).Add(tangent.Scale(nc.Pt))
			ar.A.Velocity = ar.A.Velocity.Sub(p.Scale(ar.A.InvMass))
			ar.A.AngularVelocity -= ar.A.InvInertia * nc.Ra.Cross(p)
			ar.B.Velocity = ar.B.Velocity.Add(p.Scale(ar.B.InvMass))
			ar.B.AngularVelocity += ar.B.InvInertia * nc.Rb.Cross(p)
			break
		}
	}
}

// ApplyImpulse runs one sequential-impulse iteration over every contact
// in the manifold: compute the relative velocity at the contact, clamp
// the accumulated normal impulse to non-negative, clamp the accumulated
// tangent impulse to the friction cone, and apply the delta (spec.md
// §4.5).
func (ar *Arbiter) ApplyImpulse() {
	tangent := ar.Normal.Normal()
	friction := math.Sqrt(ar.A.Friction * ar.B.Friction)

	for i := range ar.Contacts {
		c := &ar.Contacts[i]

		dv := ar.B.Velocity.Add(vec.CrossScalar(ar.B.AngularVelocity, c.Rb)).
			Sub(ar.A.Velocity.Add(vec.CrossScalar(ar.A.AngularVelocity, c.Ra)))

		vn := dv.Dot(ar.Normal)
		dpn := (-vn + c.bias) * c.massNormal
		dpn = math.Max(c.Pn+dpn, 0) - c.Pn

		vt := dv.Dot(tangent)
		dpt := -vt * c.massTangent
		maxPt := friction * (c.Pn + dpn)
		dpt = clamp(c.Pt+dpt, -maxPt, maxPt) - c.Pt

		p := ar.Normal.Scale(dpn).Add(tangent.Scale(dpt))

		ar.A.Velocity = ar.A.Velocity.Sub(p.Scale(ar.A.InvMass))
		ar.A.AngularVelocity -= ar.A.InvInertia * c.Ra.Cross(p)
		ar.B.Velocity = ar.B.Velocity.Add(p.Scale(ar.B.InvMass))
		ar.B.AngularVelocity += ar.B.InvInertia * c.Rb.Cross(p)

		c.Pn += dpn
		c.Pt += dpt
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
