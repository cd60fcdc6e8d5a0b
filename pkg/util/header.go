package util

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Header corresponds to the lines specific to a Lammps trajectory file.
// It contains the size of the box and the number of atoms. This method
// returns the number of atoms, the size of the box and its tilt factors
// (xy, xz, yz; zero for an orthogonal box).
func Header(r *bufio.Reader, w io.Writer, readSlice func(r *bufio.Reader, w io.Writer) []byte) (atoms int, box, tilt [3]float64, err error) {
	for l := 0; l < 3; l++ {
		readSlice(r, w)
	}

	atomsStr := strings.TrimSpace(string(readSlice(r, w)))
	atoms, _ = strconv.Atoi(atomsStr)

	readSlice(r, w)

	box, tilt, err = HeaderBox(r, w, readSlice)
	return
}

// HeaderBox returns the box size and the tilt factors. Each bounds line
// holds two fields (lo, hi) for an orthogonal box or three (lo, hi,
// tilt) for a triclinic one. For a triclinic box the bounds include the
// tilt as written by Lammps, so they are corrected before the lengths
// are computed.
func HeaderBox(r *bufio.Reader, w io.Writer, readSlice func(r *bufio.Reader, w io.Writer) []byte) (box, tilt [3]float64, err error) {
	var triclinic bool
	for k := 0; k < 3; k++ {
		b := readSlice(r, w)

		fields := strings.Fields(string(b))
		if len(fields) != 2 && len(fields) != 3 {
			err = fmt.Errorf("unable to get the size of the box")
			return
		}

		lmin, _ := strconv.ParseFloat(fields[0], 64)
		lmax, _ := strconv.ParseFloat(fields[1], 64)

		if len(fields) == 3 {
			triclinic = true
			tilt[k], _ = strconv.ParseFloat(fields[2], 64)
		}

		box[k] = lmax - lmin
	}

	if triclinic {
		xy, xz, yz := tilt[0], tilt[1], tilt[2]
		box[0] -= math.Max(math.Max(0, xy), math.Max(xz, xy+xz)) -
			math.Min(math.Min(0, xy), math.Min(xz, xy+xz))
		box[1] -= math.Max(0, yz) - math.Min(0, yz)
	}

	return
}

// HeaderWOutAtoms returns the size of the box and the tilt factors. It
// is like Header but without the number of atoms, for the
// configurations that follow the first one.
func HeaderWOutAtoms(r *bufio.Reader, w io.Writer, readSlice func(r *bufio.Reader, w io.Writer) []byte) (box, tilt [3]float64, err error) {
	for l := 0; l < 5; l++ {
		readSlice(r, w)
	}

	return HeaderBox(r, w, readSlice)
}
