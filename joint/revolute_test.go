package joint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/vec"
)

func TestRevolute_KeepsAnchorPointsCoincident(t *testing.T) {
	a := body.NewBox(1, 1, 1, vec.Vec2{X: -1, Y: 0})
	b := body.NewBox(1, 1, 1, vec.Vec2{X: 1, Y: 0})
	j := NewRevolute(a, b, vec.Vec2{X: 0, Y: 0})

	b.SetVelocity(vec.Vec2{X: 0, Y: 3})

	dt := 1.0 / 60
	for i := 0; i < 200; i++ {
		j.PreStep(dt)
		for k := 0; k < 10; k++ {
			j.ApplyImpulse()
		}
		a.IntegratePosition(dt)
		b.IntegratePosition(dt)
	}

	anchorA := j.AnchorA()
	anchorB := j.AnchorB()
	assert.InDelta(t, anchorA.X, anchorB.X, 0.05)
	assert.InDelta(t, anchorA.Y, anchorB.Y, 0.05)
}

func TestRevolute_AnchorsCoincideAtConstruction(t *testing.T) {
	a := body.NewBox(1, 1, 1, vec.Vec2{X: -1, Y: 0})
	b := body.NewBox(1, 1, 1, vec.Vec2{X: 1, Y: 0})
	j := NewRevolute(a, b, vec.Vec2{X: 0, Y: 0})

	assert.InDelta(t, 0.0, j.AnchorA().X, 1e-9)
	assert.InDelta(t, 0.0, j.AnchorA().Y, 1e-9)
	assert.InDelta(t, j.AnchorA().X, j.AnchorB().X, 1e-9)
	assert.InDelta(t, j.AnchorA().Y, j.AnchorB().Y, 1e-9)
}

func TestRevolute_PreStepReappliesAccumulatedImpulse(t *testing.T) {
	a := body.NewBox(1, 1, 1, vec.Vec2{X: -1, Y: 0})
	b := body.NewBox(1, 1, 1, vec.Vec2{X: 1, Y: 0})
	j := NewRevolute(a, b, vec.Vec2{X: 0, Y: 0})

	j.PreStep(1.0 / 60)
	j.ApplyImpulse()
	j.p = vec.Vec2{X: 5, Y: 0}

	velBefore := a.Velocity
	j.PreStep(1.0 / 60)
	assert.NotEqual(t, velBefore, a.Velocity)
}
