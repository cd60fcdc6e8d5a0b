package makewhole_test

import (
	"testing"

	"github.com/kpotier/molwhole/pkg/box"
	"github.com/kpotier/molwhole/pkg/makewhole"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cube10() *box.Box {
	return box.NewOrthogonal([3]float64{10, 10, 10})
}

// A chain A-B-C where C sits at 0.3 but is physically bonded to B at
// 9.5: the raw displacement B->C is -9.2, its minimum image 0.8, so C
// must land at 10.3.
func TestMakeWhole_ChainAcrossBoundary(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2, 3},
		Pos:     [][3]float64{{9, 0, 0}, {9.5, 0, 0}, {0.3, 0, 0}},
	}
	bonds := [][2]int{{1, 2}, {2, 3}}

	require.NoError(t, g.MakeWhole(bonds, cube10()))

	assert.Equal(t, [3]float64{9, 0, 0}, g.Pos[0], "reference atom must not move")
	assert.InDelta(t, 9.5, g.Pos[1][0], 1e-12)
	assert.InDelta(t, 10.3, g.Pos[2][0], 1e-12)
}

// When the reference atom itself sits on the other side of the
// boundary, the whole chain is pulled toward it.
func TestMakeWhole_ChainPulledTowardReference(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2, 3},
		Pos:     [][3]float64{{1, 0, 0}, {9.5, 0, 0}, {0.3, 0, 0}},
	}
	bonds := [][2]int{{1, 2}, {2, 3}}

	require.NoError(t, g.MakeWhole(bonds, cube10()))

	assert.Equal(t, [3]float64{1, 0, 0}, g.Pos[0])
	assert.InDelta(t, -0.5, g.Pos[1][0], 1e-12, "1 + minimum image of 8.5")
	assert.InDelta(t, 0.3, g.Pos[2][0], 1e-12, "-0.5 + minimum image of -9.2")
}

func TestMakeWhole_WrapOnYAndZ(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2},
		Pos:     [][3]float64{{0, 0.1, 0.2}, {0, 9.9, 9.8}},
	}

	require.NoError(t, g.MakeWhole([][2]int{{1, 2}}, cube10()))

	assert.InDelta(t, -0.1, g.Pos[1][1], 1e-12)
	assert.InDelta(t, -0.2, g.Pos[1][2], 1e-12)
}

// A molecule that is already contiguous must come out unchanged.
func TestMakeWhole_Idempotent(t *testing.T) {
	pos := [][3]float64{{1, 1, 1}, {2, 1, 1}, {1.5, 2, 1}}
	g := &makewhole.Group{
		Indices: []int{10, 20, 30},
		Pos:     [][3]float64{{1, 1, 1}, {2, 1, 1}, {1.5, 2, 1}},
	}
	bonds := [][2]int{{10, 20}, {20, 30}, {10, 30}}

	require.NoError(t, g.MakeWhole(bonds, cube10()))

	for k := range pos {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, pos[k][c], g.Pos[k][c], 1e-12)
		}
	}
}

// A star molecule exercises the frontier expansion: every branch hangs
// off the same reference atom, some across a boundary.
func TestMakeWhole_Star(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2, 3, 4},
		Pos: [][3]float64{
			{9.8, 5, 5},
			{0.4, 5, 5}, // across +x
			{9, 5, 5},
			{9.8, 5.9, 5},
		},
	}
	bonds := [][2]int{{1, 2}, {1, 3}, {1, 4}}

	require.NoError(t, g.MakeWhole(bonds, cube10()))

	assert.InDelta(t, 10.4, g.Pos[1][0], 1e-12)
	assert.InDelta(t, 9, g.Pos[2][0], 1e-12)
	assert.InDelta(t, 5.9, g.Pos[3][1], 1e-12)
}

func TestMakeWholeRef_ExplicitReference(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2, 3},
		Pos:     [][3]float64{{1, 0, 0}, {9.5, 0, 0}, {0.3, 0, 0}},
	}
	bonds := [][2]int{{1, 2}, {2, 3}}

	require.NoError(t, g.MakeWholeRef(bonds, cube10(), 2))

	assert.Equal(t, [3]float64{9.5, 0, 0}, g.Pos[1], "reference atom must not move")
	assert.InDelta(t, 11, g.Pos[0][0], 1e-12)
	assert.InDelta(t, 10.3, g.Pos[2][0], 1e-12)
}

func TestMakeWhole_BondsOutsideGroupIgnored(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{5, 6},
		Pos:     [][3]float64{{1, 0, 0}, {1.5, 0, 0}},
	}
	// The bonds to atom 7 reference an atom outside the group.
	bonds := [][2]int{{5, 6}, {5, 7}, {7, 6}}

	require.NoError(t, g.MakeWhole(bonds, cube10()))
	assert.InDelta(t, 1.5, g.Pos[1][0], 1e-12)
}

func TestMakeWhole_SingleAtom(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1},
		Pos:     [][3]float64{{4, 4, 4}},
	}

	require.NoError(t, g.MakeWhole([][2]int{}, cube10()))
	assert.Equal(t, [3]float64{4, 4, 4}, g.Pos[0])
}

func TestMakeWhole_MissingBonds(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2},
		Pos:     [][3]float64{{1, 0, 0}, {2, 0, 0}},
	}

	err := g.MakeWhole(nil, cube10())
	assert.ErrorIs(t, err, makewhole.ErrMissingBonds)
	assert.Equal(t, [3]float64{2, 0, 0}, g.Pos[1], "positions must be untouched")
}

func TestMakeWhole_InvalidBox(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2},
		Pos:     [][3]float64{{1, 0, 0}, {2, 0, 0}},
	}
	b := box.NewOrthogonal([3]float64{10, 0, 10})

	err := g.MakeWhole([][2]int{{1, 2}}, b)
	assert.ErrorIs(t, err, box.ErrZeroAxis)
	assert.Equal(t, [3]float64{2, 0, 0}, g.Pos[1], "positions must be untouched")
}

func TestMakeWholeRef_ReferenceNotInGroup(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2},
		Pos:     [][3]float64{{1, 0, 0}, {2, 0, 0}},
	}

	err := g.MakeWholeRef([][2]int{{1, 2}}, cube10(), 99)
	assert.ErrorIs(t, err, makewhole.ErrRefNotInGroup)
}

// Two fragments without a bond between them: the traversal cannot reach
// the second one and the positions must stay byte-identical.
func TestMakeWhole_NotConnected(t *testing.T) {
	before := [][3]float64{{1, 0, 0}, {1.5, 0, 0}, {9.5, 0, 0}, {0.3, 0, 0}}
	g := &makewhole.Group{
		Indices: []int{1, 2, 3, 4},
		Pos:     [][3]float64{{1, 0, 0}, {1.5, 0, 0}, {9.5, 0, 0}, {0.3, 0, 0}},
	}
	bonds := [][2]int{{1, 2}, {3, 4}}

	err := g.MakeWhole(bonds, cube10())
	assert.ErrorIs(t, err, makewhole.ErrNotConnected)
	assert.Equal(t, before, g.Pos, "positions must be untouched")
}

func TestMakeWhole_ZeroBondsNotConnected(t *testing.T) {
	g := &makewhole.Group{
		Indices: []int{1, 2},
		Pos:     [][3]float64{{1, 0, 0}, {9, 0, 0}},
	}

	// An empty bond list is not missing bond data, but it cannot
	// connect two atoms.
	err := g.MakeWhole([][2]int{}, cube10())
	assert.ErrorIs(t, err, makewhole.ErrNotConnected)
}
