// Package box describes a periodic simulation cell and implements the
// minimum image convention. Two shapes are supported: orthogonal cells
// (all angles equal to 90 degrees) where each axis can be wrapped
// independently, and triclinic cells described by three lattice
// vectors.
package box

import (
	"errors"
	"math"
)

// ErrZeroAxis is returned by Validate when an axis length is zero. The
// minimum image convention is undefined for such a cell.
var ErrZeroAxis = errors.New("box: axis length is zero")

// Box is a periodic simulation cell. It can be instanced through the
// NewOrthogonal, NewTriclinic and New methods. The zero value is not a
// valid cell.
type Box struct {
	length [3]float64
	inv    [3]float64    // reciprocal lengths (orthogonal fast path)
	vec    [3][3]float64 // lattice vectors a, b, c as rows
	ortho  bool
}

// NewOrthogonal returns a cell whose three angles are 90 degrees. The
// lattice vectors are aligned with the cartesian axes.
func NewOrthogonal(length [3]float64) *Box {
	b := Box{length: length, ortho: true}
	for k := 0; k < 3; k++ {
		if length[k] != 0 {
			b.inv[k] = 1 / length[k]
		}
		b.vec[k][k] = length[k]
	}
	return &b
}

// NewTriclinic returns a cell built from the three axis lengths and the
// three tilt factors xy, xz, yz, like the ones found in the header of a
// LAMMPS trajectory. Zero tilts yield an orthogonal cell.
func NewTriclinic(length, tilt [3]float64) *Box {
	if tilt[0] == 0 && tilt[1] == 0 && tilt[2] == 0 {
		return NewOrthogonal(length)
	}

	b := Box{length: length}
	b.vec[0] = [3]float64{length[0], 0, 0}
	b.vec[1] = [3]float64{tilt[0], length[1], 0}
	b.vec[2] = [3]float64{tilt[1], tilt[2], length[2]}
	return &b
}

// New returns a cell built from three lengths and three angles in
// degrees (alpha between b and c, beta between a and c, gamma between a
// and b). Angles of 90, 90, 90 yield an orthogonal cell.
func New(length, angle [3]float64) *Box {
	if angle[0] == 90 && angle[1] == 90 && angle[2] == 90 {
		return NewOrthogonal(length)
	}

	cosA := math.Cos(angle[0] * math.Pi / 180)
	cosB := math.Cos(angle[1] * math.Pi / 180)
	cosG := math.Cos(angle[2] * math.Pi / 180)

	xy := length[1] * cosG
	xz := length[2] * cosB
	ly := math.Sqrt(length[1]*length[1] - xy*xy)
	yz := (length[1]*length[2]*cosA - xy*xz) / ly
	lz := math.Sqrt(length[2]*length[2] - xz*xz - yz*yz)

	b := Box{length: length}
	b.vec[0] = [3]float64{length[0], 0, 0}
	b.vec[1] = [3]float64{xy, ly, 0}
	b.vec[2] = [3]float64{xz, yz, lz}
	return &b
}

// Lengths returns the three axis lengths.
func (b *Box) Lengths() [3]float64 { return b.length }

// Orthogonal reports whether all three angles are 90 degrees.
func (b *Box) Orthogonal() bool { return b.ortho }

// Vectors returns the lattice vectors a, b, c as rows.
func (b *Box) Vectors() [3][3]float64 { return b.vec }

// Validate returns ErrZeroAxis if one of the axis lengths is zero. It
// must be called before MinimumImage: wrapping with a zero axis is
// undefined.
func (b *Box) Validate() error {
	for k := 0; k < 3; k++ {
		if b.length[k] == 0 {
			return ErrZeroAxis
		}
	}
	return nil
}

// MinimumImage returns the displacement congruent to d modulo the
// periodic lattice that has minimal length. For an orthogonal cell each
// component is wrapped independently into [-L/2, L/2). For a triclinic
// cell a bounded local search is performed: successive shifts of one
// lattice vector along c, then b, then a, each time keeping the
// shortest candidate, followed by a check of the diagonal neighbour.
// The search is not exhaustive over the 27 neighbouring cells, so an
// extremely skewed cell may yield a near-minimal image instead of the
// global minimum.
func (b *Box) MinimumImage(d [3]float64) [3]float64 {
	if b.ortho {
		for k := 0; k < 3; k++ {
			d[k] -= b.length[k] * math.Floor(d[k]*b.inv[k]+0.5)
		}
		return d
	}

	for ax := 2; ax >= 0; ax-- {
		d = shortest(d, b.vec[ax])
	}

	var diag [3]float64
	for k := 0; k < 3; k++ {
		diag[k] = b.vec[0][k] + b.vec[1][k] + b.vec[2][k]
	}
	return shortest(d, diag)
}

// shortest returns whichever of d, d+v and d-v has the smallest length.
func shortest(d, v [3]float64) [3]float64 {
	best := d
	min := norm2(d)

	for _, s := range [2]float64{1, -1} {
		c := [3]float64{d[0] + s*v[0], d[1] + s*v[1], d[2] + s*v[2]}
		if n := norm2(c); n < min {
			best = c
			min = n
		}
	}

	return best
}

func norm2(d [3]float64) float64 {
	return d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
}
