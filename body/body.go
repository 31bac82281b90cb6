// Package body implements the convex polygon rigid body: mass/inertia,
// pose, velocities, force accumulators and the local vertex list the
// collision and solver packages operate on.
package body

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/bramblekeep/impulse2d/vec"
)

// AABB is an axis-aligned bounding box in world space, used only as a
// cheap broad-phase reject before the exact SAT test. It never changes
// which pairs are reported as colliding.
type AABB struct {
	Min, Max vec.Vec2
}

// Overlaps reports whether two AABBs intersect on both axes.
func (a AABB) Overlaps(o AABB) bool {
	return a.Max.X >= o.Min.X && a.Min.X <= o.Max.X &&
		a.Max.Y >= o.Min.Y && a.Min.Y <= o.Max.Y
}

// Body is a convex polygon rigid body. A body is static iff Mass is +Inf;
// InvMass/InvInertia are then 0, which makes static bodies fall out of the
// integration and impulse formulas for free.
type Body struct {
	ID uuid.UUID

	Mass, InvMass       float64
	Inertia, InvInertia float64

	Position vec.Vec2
	Rotation vec.Mat22

	Velocity        vec.Vec2
	AngularVelocity float64

	Friction    float64
	Restitution float64

	force  vec.Vec2
	torque float64

	vertices []vec.Vec2 // local, counter-clockwise, >= 3 points
	centroid vec.Vec2   // local centroid, signed-area formula

	aabb AABB

	isTrigger bool
	asleep    bool
	sleepTime float64
}

// NewPolygonBody builds a dynamic body from a CCW convex vertex list and
// a finite or infinite mass. Passing math.Inf(1) makes the body static.
// The caller guarantees convexity and CCW winding (spec.md §4.8); this
// constructor only validates the cheap, unconditional precondition that
// there are enough vertices to form a polygon.
func NewPolygonBody(mass float64, vertices []vec.Vec2, position vec.Vec2) (*Body, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("impulse2d: polygon body needs >= 3 vertices, got %d", len(vertices))
	}
	b := &Body{
		ID:          uuid.New(),
		Position:    position,
		Rotation:    vec.Identity22,
		Friction:    1,
		Restitution: 0,
		vertices:    append([]vec.Vec2(nil), vertices...),
	}
	b.centroid = polygonCentroid(b.vertices)
	b.setMassAndInertia(mass)
	b.ComputeAABB()
	return b, nil
}

// NewBox builds an axis-aligned-at-rest rectangle with CCW vertices
// {+-w/2, +-h/2}, centered at position.
func NewBox(mass, width, height float64, position vec.Vec2) *Body {
	hw, hh := width/2, height/2
	vertices := []vec.Vec2{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
	b, err := NewPolygonBody(mass, vertices, position)
	if err != nil {
		// unreachable: the 4-vertex box literal always satisfies the
		// precondition NewPolygonBody checks.
		panic(err)
	}
	return b
}

// setMassAndInertia computes Mass/InvMass and the polar moment of inertia
// (and its inverse) from the current vertex list for the given mass. Mass
// and inertia are always set together so InvMass/InvInertia stay
// consistent (spec.md §3).
func (b *Body) setMassAndInertia(mass float64) {
	b.Mass = mass
	b.InvMass = invOrZero(mass)
	b.Inertia = polygonInertia(mass, b.vertices)
	b.InvInertia = invOrZero(b.Inertia)
}

func invOrZero(x float64) float64 {
	if math.IsInf(x, 1) {
		return 0
	}
	return 1 / x
}

// polygonCentroid computes the geometric centroid via the signed-area
// formula (spec.md §3):
//
//	A = 1/2 * sum(v_i x v_i+1)
//	C = 1/(6A) * sum((v_i + v_i+1) * (v_i x v_i+1))
func polygonCentroid(vs []vec.Vec2) vec.Vec2 {
	var area float64
	var c vec.Vec2
	n := len(vs)
	for i := 0; i < n; i++ {
		a, b := vs[i], vs[(i+1)%n]
		cross := a.Cross(b)
		area += cross
		c = c.Add(a.Add(b).Scale(cross))
	}
	area /= 2
	return c.Scale(1 / (6 * area))
}

// polygonInertia computes the polar moment of inertia about the local-frame
// origin (which is the centroid only when the vertices are centred on it,
// as NewBox's are) for a polygon of uniform density and the given total
// mass (spec.md §3):
//
//	I = (m/6) * sum(|v_i x v_i+1| * (v_i.v_i + v_i+1.v_i+1 + v_i.v_i+1)) / sum(|v_i x v_i+1|)
func polygonInertia(mass float64, vs []vec.Vec2) float64 {
	var numer, denom float64
	n := len(vs)
	for i := 0; i < n; i++ {
		a, b := vs[i], vs[(i+1)%n]
		cross := math.Abs(a.Cross(b))
		numer += cross * (a.Dot(a) + b.Dot(b) + a.Dot(b))
		denom += cross
	}
	return mass * numer / 6 / denom
}

// IsStatic reports whether the body has infinite mass.
func (b *Body) IsStatic() bool { return math.IsInf(b.Mass, 1) }

// Asleep reports whether the body is currently sleeping (see TrySleep).
func (b *Body) Asleep() bool { return b.asleep }

// IsTrigger reports whether the body only reports overlap events instead
// of participating in the impulse solver (SPEC_FULL.md §6).
func (b *Body) IsTrigger() bool { return b.isTrigger }

// SetTrigger marks the body as a trigger volume.
func (b *Body) SetTrigger(trigger bool) { b.isTrigger = trigger }

// VertexCount returns the number of local vertices.
func (b *Body) VertexCount() int { return len(b.vertices) }

// LocalToWorld translates a body-local offset into world space.
func (b *Body) LocalToWorld(p vec.Vec2) vec.Vec2 { return b.Position.Add(p) }

// CentroidWorld is the body's centroid in world space.
func (b *Body) CentroidWorld() vec.Vec2 { return b.LocalToWorld(b.centroid) }

// Vertex returns the k-th vertex, rotated about the centroid and
// translated to world space (spec.md §3):
//
//	R . (v_k - centroid) + centroid, then position + (...)
func (b *Body) Vertex(k int) vec.Vec2 {
	local := b.Rotation.MulVec(b.vertices[k].Sub(b.centroid)).Add(b.centroid)
	return b.LocalToWorld(local)
}

// Edge returns the k-th edge vector in world space: vertex[k+1] - vertex[k].
func (b *Body) Edge(k int) vec.Vec2 {
	n := len(b.vertices)
	return b.Vertex((k+1)%n).Sub(b.Vertex(k))
}

// ApplyImpulse applies impulse P at world-space lever arm r (r = point -
// centroid_world) to the body's velocity and angular velocity.
func (b *Body) ApplyImpulse(p, r vec.Vec2) {
	b.Velocity = b.Velocity.Add(p.Scale(b.InvMass))
	b.AngularVelocity += b.InvInertia * r.Cross(p)
}

// AddForce accumulates a world-space force, to be cleared at the end of
// the step it is integrated in.
func (b *Body) AddForce(f vec.Vec2) {
	if b.IsStatic() {
		return
	}
	b.Wake()
	b.force = b.force.Add(f)
}

// AddTorque accumulates torque, cleared the same way as force.
func (b *Body) AddTorque(t float64) {
	if b.IsStatic() {
		return
	}
	b.Wake()
	b.torque += t
}

// ClearForces zeroes the force/torque accumulators (spec.md §4.6 step 6).
func (b *Body) ClearForces() {
	b.force = vec.Zero2
	b.torque = 0
}

// IntegrateVelocity applies semi-implicit Euler velocity integration from
// gravity and the accumulated force/torque (spec.md §4.6 step 1).
func (b *Body) IntegrateVelocity(gravity vec.Vec2, dt float64) {
	if b.IsStatic() || b.asleep {
		return
	}
	b.Velocity = b.Velocity.Add(gravity.Add(b.force.Scale(b.InvMass)).Scale(dt))
	b.AngularVelocity += b.torque * b.InvInertia * dt
}

// IntegratePosition applies semi-implicit Euler position integration from
// the (already impulse-corrected) velocity (spec.md §4.6 step 5).
func (b *Body) IntegratePosition(dt float64) {
	if b.IsStatic() || b.asleep {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Rotation = vec.Mat22FromAngle(b.AngularVelocity * dt).Mul(b.Rotation)
	b.ComputeAABB()
}

// ComputeAABB recomputes the world-space bounding box from the current
// pose. Called at construction and by IntegratePosition after each move,
// so the box is current when the next step's broad phase runs. The pose
// setters (SetAngle, SetRotation, direct Position writes) do not call it.
func (b *Body) ComputeAABB() {
	min := b.Vertex(0)
	max := min
	for i := 1; i < len(b.vertices); i++ {
		v := b.Vertex(i)
		min = vec.Vec2{X: math.Min(min.X, v.X), Y: math.Min(min.Y, v.Y)}
		max = vec.Vec2{X: math.Max(max.X, v.X), Y: math.Max(max.Y, v.Y)}
	}
	b.aabb = AABB{Min: min, Max: max}
}

// AABB returns the last computed world-space bounding box.
func (b *Body) AABB() AABB { return b.aabb }

// SetMass recomputes Mass/InvMass and, to keep the two consistent, rescales
// the polar moment of inertia for the current vertex list (spec.md §6: "mass
// (recomputes inv_mass)"; Inertia is kept consistent with it per spec.md §3's
// "set together and kept consistent" invariant).
func (b *Body) SetMass(mass float64) { b.setMassAndInertia(mass) }

// SetFriction sets the Coulomb friction coefficient.
func (b *Body) SetFriction(mu float64) { b.Friction = mu }

// SetRestitution sets the "bouncy" coefficient. Preserved in the data
// model but unused by the solver (spec.md §9).
func (b *Body) SetRestitution(r float64) { b.Restitution = r }

// SetVelocity sets the linear velocity directly.
func (b *Body) SetVelocity(v vec.Vec2) { b.Velocity = v }

// SetAngularVelocity sets the angular velocity directly.
func (b *Body) SetAngularVelocity(w float64) { b.AngularVelocity = w }

// SetRotation sets the rotation matrix directly.
func (b *Body) SetRotation(r vec.Mat22) { b.Rotation = r }

// SetAngle sets rotation from a scalar angle in radians.
func (b *Body) SetAngle(theta float64) { b.Rotation = vec.Mat22FromAngle(theta) }

// TrySleep puts the body to sleep once both velocities have stayed below
// threshold for at least duration seconds. Static bodies are never put
// to sleep.
func (b *Body) TrySleep(dt, threshold, duration float64) {
	if b.IsStatic() {
		return
	}
	if b.Velocity.Len() < threshold && math.Abs(b.AngularVelocity) < threshold {
		b.sleepTime += dt
		if b.sleepTime >= duration {
			b.Sleep()
		}
	} else {
		b.Wake()
	}
}

// Sleep forces the body to sleep immediately, zeroing its velocities.
func (b *Body) Sleep() {
	b.asleep = true
	b.sleepTime = 0
	b.Velocity = vec.Zero2
	b.AngularVelocity = 0
	b.ClearForces()
}

// Wake clears the sleep state and timer.
func (b *Body) Wake() {
	b.asleep = false
	b.sleepTime = 0
}
