package impulse2d

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bramblekeep/impulse2d/vec"
)

func TestGrid_FindsSamePairsAsPairwise(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.NewBox(1, 1, 1, vec.Vec2{X: 0, Y: 0})
	w.NewBox(1, 1, 1, vec.Vec2{X: 0.5, Y: 0})
	w.NewBox(1, 1, 1, vec.Vec2{X: 20, Y: 20})

	pairwise := PairwiseBroadPhase{}.FindPairs(w.Bodies)
	grid := NewGrid(2).FindPairs(w.Bodies)

	assert.Len(t, pairwise, 1)
	assert.Len(t, grid, 1)
	assert.Same(t, pairwise[0].A, grid[0].A)
	assert.Same(t, pairwise[0].B, grid[0].B)
}

func TestWorld_SetBroadPhaseSwapsImplementation(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.SetBroadPhase(NewGrid(5))
	w.NewBox(1, 1, 1, vec.Vec2{X: 0, Y: 0})
	w.NewBox(1, 1, 1, vec.Vec2{X: 0.5, Y: 0})

	w.Step(1.0 / 60)
	assert.NotEmpty(t, w.arbiters)
}
