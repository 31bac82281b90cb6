package joint

import (
	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/vec"
)

const revoluteBiasFactor = 0.2

// Revolute pins two bodies together at a shared world-space anchor point,
// like a hinge. The anchor is fixed relative to each body at
// construction time; each step the joint pulls the two bodies' anchor
// points back together (spec.md §4.7).
type Revolute struct {
	A, B *body.Body

	localAnchorA, localAnchorB vec.Vec2

	ra, rb vec.Vec2
	mass   vec.Mat22
	bias   vec.Vec2
	p      vec.Vec2
}

// NewRevolute builds a joint pinning a and b together at the given
// world-space anchor, recording the anchor's position relative to each
// body's own rotation so the constraint tracks the bodies as they turn.
func NewRevolute(a, b *body.Body, anchor vec.Vec2) *Revolute {
	return &Revolute{
		A:            a,
		B:            b,
		localAnchorA: a.Rotation.Transpose().MulVec(anchor.Sub(a.CentroidWorld())),
		localAnchorB: b.Rotation.Transpose().MulVec(anchor.Sub(b.CentroidWorld())),
	}
}

// AnchorA returns the joint's anchor point in world space as tracked by
// body A: A.rotation * localAnchorA + A.centroid, then translated into
// world space (spec.md §4.7).
func (j *Revolute) AnchorA() vec.Vec2 {
	return j.A.CentroidWorld().Add(j.A.Rotation.MulVec(j.localAnchorA))
}

// AnchorB returns the joint's anchor point in world space as tracked by
// body B, mirroring AnchorA.
func (j *Revolute) AnchorB() vec.Vec2 {
	return j.B.CentroidWorld().Add(j.B.Rotation.MulVec(j.localAnchorB))
}

// PreStep recomputes the effective mass matrix and position-error bias
// from the bodies' current pose, then re-applies the impulse accumulated
// across every step so far (warm starting).
func (j *Revolute) PreStep(dt float64) {
	a, b := j.A, j.B
	j.ra = a.Rotation.MulVec(j.localAnchorA)
	j.rb = b.Rotation.MulVec(j.localAnchorB)

	k := vec.Identity22.Scale(a.InvMass + b.InvMass).
		Add(vec.NewMat22(
			j.ra.Y*j.ra.Y, -j.ra.Y*j.ra.X,
			-j.ra.Y*j.ra.X, j.ra.X*j.ra.X,
		).Scale(a.InvInertia)).
		Add(vec.NewMat22(
			j.rb.Y*j.rb.Y, -j.rb.Y*j.rb.X,
			-j.rb.Y*j.rb.X, j.rb.X*j.rb.X,
		).Scale(b.InvInertia))
	j.mass = k.Inv()

	anchorA := a.CentroidWorld().Add(j.ra)
	anchorB := b.CentroidWorld().Add(j.rb)
	j.bias = anchorB.Sub(anchorA).Scale(-revoluteBiasFactor / dt)

	a.Velocity = a.Velocity.Sub(j.p.Scale(a.InvMass))
	a.AngularVelocity -= a.InvInertia * j.ra.Cross(j.p)
	b.Velocity = b.Velocity.Add(j.p.Scale(b.InvMass))
	b.AngularVelocity += b.InvInertia * j.rb.Cross(j.p)
}

// ApplyImpulse runs one sequential-impulse iteration, pulling the two
// anchor points' velocities together.
func (j *Revolute) ApplyImpulse() {
	a, b := j.A, j.B
	dv := b.Velocity.Add(vec.CrossScalar(b.AngularVelocity, j.rb)).
		Sub(a.Velocity.Add(vec.CrossScalar(a.AngularVelocity, j.ra)))

	p := j.mass.MulVec(dv.Neg().Add(j.bias))

	a.Velocity = a.Velocity.Sub(p.Scale(a.InvMass))
	a.AngularVelocity -= a.InvInertia * j.ra.Cross(p)
	b.Velocity = b.Velocity.Add(p.Scale(b.InvMass))
	b.AngularVelocity += b.InvInertia * j.rb.Cross(p)

	j.p = j.p.Add(p)
}
