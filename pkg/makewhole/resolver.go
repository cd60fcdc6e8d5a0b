package makewhole

import (
	"errors"

	"github.com/kpotier/molwhole/pkg/box"
)

var (
	// ErrMissingBonds is returned when no bond data is attached to the
	// group. It is distinct from a group whose bond list exists but is
	// empty.
	ErrMissingBonds = errors.New("makewhole: group has no bond data")

	// ErrRefNotInGroup is returned when the supplied reference atom is
	// not a member of the group.
	ErrRefNotInGroup = errors.New("makewhole: reference atom not in group")

	// ErrNotConnected is returned when the bonds do not connect every
	// atom of the group to the reference atom. The positions are left
	// untouched.
	ErrNotConnected = errors.New("makewhole: bonds do not connect every atom to the reference")
)

// Group is an ordered set of atoms sharing a block of positions.
// Indices are global atom indices and must be distinct; Pos holds one
// position per atom, in the same order. Pos belongs to the caller and
// is only written on a fully successful reconstruction.
type Group struct {
	Indices []int
	Pos     [][3]float64
}

// MakeWhole moves the atoms of the group so that every bond vector is
// the minimum image one, chained from the first atom of the group. See
// MakeWholeRef.
func (g *Group) MakeWhole(bonds [][2]int, b *box.Box) error {
	if len(g.Indices) == 0 {
		if err := b.Validate(); err != nil {
			return err
		}
		if bonds == nil {
			return ErrMissingBonds
		}
		return nil
	}
	return g.MakeWholeRef(bonds, b, g.Indices[0])
}

// MakeWholeRef reconstructs a molecule that has been split across the
// periodic boundaries. The position of the reference atom ref is
// trusted as-is and never modified; the bond graph is walked outward
// from it, and each atom reached through a bond is placed at the
// minimum image of its already placed neighbour. On success every
// position of the group is rewritten; on error none is.
//
// A nil bond list fails with ErrMissingBonds, a box with a zero axis
// with box.ErrZeroAxis, a reference outside the group with
// ErrRefNotInGroup, and a group whose bonds do not reach every atom
// from ref with ErrNotConnected.
func (g *Group) MakeWholeRef(bonds [][2]int, b *box.Box, ref int) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if bonds == nil {
		return ErrMissingBonds
	}

	local := localIndex(g.Indices)
	refLocal, ok := local[ref]
	if !ok {
		return ErrRefNotInGroup
	}

	adj := buildAdjacency(local, len(g.Indices), bonds)

	pos, err := resolve(g.Pos, adj, refLocal, b)
	if err != nil {
		return err
	}

	copy(g.Pos, pos)
	return nil
}

// resolve computes the reconstructed positions into a fresh buffer so
// that a failure leaves the caller's positions untouched. It walks the
// adjacency lists breadth first: refpoints marks the atoms whose new
// position is trusted, done the ones whose neighbours have already been
// expanded, and each outer pass expands the whole frontier
// refpoints-done at once. The number of outer passes is capped at the
// group size, which bounds the cost and guarantees termination on a
// malformed graph.
func resolve(pos [][3]float64, adj [][]int32, ref int, b *box.Box) ([][3]float64, error) {
	n := len(pos)
	out := make([][3]float64, n)
	refpoints := make([]bool, n)
	done := make([]bool, n)

	out[ref] = pos[ref]
	refpoints[ref] = true
	found := 1

	todo := make([]int32, 0, n)
	for iter := 0; found < n && iter < n; iter++ {
		todo = todo[:0]
		for i := 0; i < n; i++ {
			if refpoints[i] && !done[i] {
				todo = append(todo, int32(i))
			}
		}

		for _, a := range todo {
			for _, nb := range adj[a] {
				if refpoints[nb] {
					continue
				}

				d := [3]float64{
					pos[nb][0] - pos[a][0],
					pos[nb][1] - pos[a][1],
					pos[nb][2] - pos[a][2],
				}
				d = b.MinimumImage(d)

				out[nb] = [3]float64{
					out[a][0] + d[0],
					out[a][1] + d[1],
					out[a][2] + d[2],
				}
				refpoints[nb] = true
				found++
			}
			done[a] = true
		}
	}

	if found < n {
		return nil, ErrNotConnected
	}
	return out, nil
}
