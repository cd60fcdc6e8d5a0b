// Package util contains some methods that can be used by every other
// package.
package util

import (
	"bufio"
	"strconv"
)

// ReadCfgNonCvg reads x non converged configurations. These
// configurations will be automatically "discarded" and won't be taken
// into account. It is a very fast method.
func ReadCfgNonCvg(r *bufio.Reader, x int) error {
	if x == 0 {
		return nil
	}

	for i := 0; i < 3; i++ {
		r.ReadSlice('\n')
	}

	b, _ := r.ReadSlice('\n')
	atoms, err := strconv.Atoi(string(b)[:len(b)-1])
	if err != nil {
		return err
	}

	for i := 0; i < (5 + atoms); i++ {
		r.ReadSlice('\n')
	}

	// Other cfg until x
	for i := 0; i < ((x - 1) * (3 + 6 + atoms)); i++ {
		r.ReadSlice('\n')
	}

	return nil
}
