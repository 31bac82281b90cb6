package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat22FromAngle_ComposedWithNegative_IsIdentity(t *testing.T) {
	theta := 0.37
	m := Mat22FromAngle(theta)
	mInv := Mat22FromAngle(-theta)
	got := m.Mul(mInv)
	assert.InDelta(t, Identity22.X1, got.X1, 1e-9)
	assert.InDelta(t, Identity22.Y1, got.Y1, 1e-9)
	assert.InDelta(t, Identity22.X2, got.X2, 1e-9)
	assert.InDelta(t, Identity22.Y2, got.Y2, 1e-9)
}

func TestMat22_InvIsInverse(t *testing.T) {
	m := Mat22{2, 1, 1, 1}
	inv := m.Inv()
	got := m.Mul(inv)
	assert.InDelta(t, 1.0, got.X1, 1e-9)
	assert.InDelta(t, 0.0, got.Y1, 1e-9)
	assert.InDelta(t, 0.0, got.X2, 1e-9)
	assert.InDelta(t, 1.0, got.Y2, 1e-9)
}

func TestMat22_Transpose(t *testing.T) {
	m := Mat22{1, 2, 3, 4}
	got := m.Transpose()
	assert.Equal(t, Mat22{1, 3, 2, 4}, got)
}

func TestMat22_MulVec_RotatesQuarterTurn(t *testing.T) {
	m := Mat22FromAngle(math.Pi / 2)
	v := Vec2{1, 0}
	got := m.MulVec(v)
	assert.InDelta(t, 0.0, got.X, 1e-9)
	assert.InDelta(t, 1.0, got.Y, 1e-9)
}
