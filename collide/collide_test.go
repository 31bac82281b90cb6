package collide

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/vec"
)

func TestManifold_SeparatedBoxesReportNoCollision(t *testing.T) {
	a := body.NewBox(1, 1, 1, vec.Vec2{X: 0, Y: 0})
	b := body.NewBox(1, 1, 1, vec.Vec2{X: 10, Y: 0})
	_, ok := Manifold(a, b, 1.0/60)
	assert.False(t, ok)
}

func TestManifold_OverlappingBoxesProduceTwoContacts(t *testing.T) {
	a := body.NewBox(1, 2, 2, vec.Vec2{X: 0, Y: 0})
	b := body.NewBox(1, 2, 2, vec.Vec2{X: 1.9, Y: 0})
	ar, ok := Manifold(a, b, 1.0/60)
	assert.True(t, ok)
	assert.Len(t, ar.Contacts, 2)
	for _, c := range ar.Contacts {
		assert.LessOrEqual(t, c.Separation, 0.0)
	}
}

func TestManifold_NormalPointsFromReferenceTowardIncident(t *testing.T) {
	a := body.NewBox(1, 2, 2, vec.Vec2{X: 0, Y: 0})
	b := body.NewBox(1, 2, 2, vec.Vec2{X: 1.9, Y: 0})
	ar, ok := Manifold(a, b, 1.0/60)
	assert.True(t, ok)
	assert.Greater(t, ar.Normal.X, 0.0)
}

func TestManifold_CornerOverlapProducesAtLeastOneContact(t *testing.T) {
	a := body.NewBox(1, 2, 2, vec.Vec2{X: 0, Y: 0})
	b := body.NewBox(1, 2, 2, vec.Vec2{X: 1.8, Y: 1.8})
	ar, ok := Manifold(a, b, 1.0/60)
	if ok {
		assert.GreaterOrEqual(t, len(ar.Contacts), 1)
		assert.LessOrEqual(t, len(ar.Contacts), 2)
	}
}

func TestManifold_RestingBoxOnStaticGround(t *testing.T) {
	ground := body.NewBox(math.Inf(1), 20, 1, vec.Vec2{X: 0, Y: -0.5})
	box := body.NewBox(1, 1, 1, vec.Vec2{X: 0, Y: 0.45})
	ar, ok := Manifold(ground, box, 1.0/60)
	assert.True(t, ok)
	assert.Len(t, ar.Contacts, 2)
}
