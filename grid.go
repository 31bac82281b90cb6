package impulse2d

import (
	"sort"

	"github.com/bramblekeep/impulse2d/body"
	"github.com/bramblekeep/impulse2d/vec"
)

// cellKey is a 2D grid cell coordinate.
type cellKey struct {
	x, y int
}

// Grid is a uniform spatial hash broad phase: an opt-in alternative to
// PairwiseBroadPhase for scenes with many bodies spread over a large
// area (SPEC_FULL.md §6). It reports exactly the same pairs
// PairwiseBroadPhase would, just without the full O(n^2) scan.
type Grid struct {
	CellSize float64

	cells map[cellKey][]int
}

// NewGrid builds a Grid with the given cell size. Pick a cell size close
// to the typical body diameter in the scene.
func NewGrid(cellSize float64) *Grid {
	return &Grid{CellSize: cellSize}
}

func (g *Grid) worldToCell(p vec.Vec2) cellKey {
	return cellKey{
		x: int(floorDiv(p.X, g.CellSize)),
		y: int(floorDiv(p.Y, g.CellSize)),
	}
}

func floorDiv(v, size float64) float64 {
	q := v / size
	if q < 0 {
		return q - 1
	}
	return q
}

// FindPairs buckets every body's AABB into the cells it overlaps, then
// emits a candidate pair the first time two bodies share a cell.
// Insertion index ordering (bodyIdx < otherIdx) both dedups the pair and
// keeps pair-discovery order deterministic, same as PairwiseBroadPhase.
func (g *Grid) FindPairs(bodies []*body.Body) []BodyPair {
	g.cells = make(map[cellKey][]int)

	for i, b := range bodies {
		aabb := b.AABB()
		min := g.worldToCell(aabb.Min)
		max := g.worldToCell(aabb.Max)
		for x := min.x; x <= max.x; x++ {
			for y := min.y; y <= max.y; y++ {
				key := cellKey{x, y}
				g.cells[key] = append(g.cells[key], i)
			}
		}
	}

	seen := make(map[[2]int]bool)
	var pairs []BodyPair
	for _, indices := range g.cells {
		if len(indices) < 2 {
			continue
		}
		sorted := append([]int(nil), indices...)
		sort.Ints(sorted)
		for x := 0; x < len(sorted); x++ {
			for y := x + 1; y < len(sorted); y++ {
				i, j := sorted[x], sorted[y]
				pair := [2]int{i, j}
				if seen[pair] {
					continue
				}
				seen[pair] = true

				a, b := bodies[i], bodies[j]
				if a.IsStatic() && b.IsStatic() {
					continue
				}
				if !a.AABB().Overlaps(b.AABB()) {
					continue
				}
				pairs = append(pairs, BodyPair{A: a, B: b})
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return bodyOrderLess(bodies, pairs[i], pairs[j])
	})
	return pairs
}

func bodyOrderLess(bodies []*body.Body, a, b BodyPair) bool {
	ia, ja := indexIn(bodies, a.A), indexIn(bodies, a.B)
	ib, jb := indexIn(bodies, b.A), indexIn(bodies, b.B)
	if ia != ib {
		return ia < ib
	}
	return ja < jb
}

func indexIn(bodies []*body.Body, target *body.Body) int {
	for i, b := range bodies {
		if b == target {
			return i
		}
	}
	return -1
}
