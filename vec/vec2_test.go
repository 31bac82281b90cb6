package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2_Normal(t *testing.T) {
	v := Vec2{3, 4}
	n := v.Normal()
	assert.InDelta(t, 4.0/5.0, n.X, 1e-9)
	assert.InDelta(t, -3.0/5.0, n.Y, 1e-9)
	assert.InDelta(t, 1.0, n.Len(), 1e-9)
}

func TestVec2_NormalTwiceNegatesOriginal(t *testing.T) {
	v := Vec2{3, 4}.Normalize()
	twice := v.Normal().Normal()
	assert.InDelta(t, -v.X, twice.X, 1e-9)
	assert.InDelta(t, -v.Y, twice.Y, 1e-9)
}

func TestVec2_Cross(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	assert.Equal(t, 1.0, a.Cross(b))
	assert.Equal(t, -1.0, b.Cross(a))
}

func TestCrossScalar(t *testing.T) {
	v := Vec2{2, 3}
	got := CrossScalar(2, v)
	assert.Equal(t, Vec2{-6, 4}, got)
}

func TestVec2_Normalize_Zero(t *testing.T) {
	z := Vec2{0, 0}.Normalize()
	assert.Equal(t, Vec2{0, 0}, z)
}

func TestVec2_DotOrthogonal(t *testing.T) {
	a := Vec2{1, 0}
	b := Vec2{0, 1}
	assert.Equal(t, 0.0, a.Dot(b))
}

func TestVec2_LenSqr(t *testing.T) {
	v := Vec2{3, 4}
	assert.Equal(t, 25.0, v.LenSqr())
	assert.InDelta(t, math.Sqrt(25), v.Len(), 1e-12)
}
