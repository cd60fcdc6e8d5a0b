package makewhole

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kpotier/molwhole/pkg/box"
	"github.com/kpotier/molwhole/pkg/util"
)

// readCfgFirst reads the first configuration. It reads the number of
// atoms and locates the columns, then reconstructs the molecules and
// writes the configuration back with the coordinate columns renamed xu,
// yu, zu (unwrapped, see Lammps doc).
func (m *MakeWhole) readCfgFirst(r *bufio.Reader, w io.Writer) error {
	atoms, boxLen, tilt, err := util.Header(r, w, readSlice)
	if err != nil {
		return fmt.Errorf("Header: %w", err)
	}
	m.atoms = atoms

	b, _ := r.ReadSlice('\n')
	fields := strings.Fields(string(b))

	if len(fields) <= 2 {
		return fmt.Errorf("not enough columns (at least 3; got %d)", len(fields))
	}

	var buf bytes.Buffer
	for k := 0; k < 2; k++ {
		buf.WriteString(fields[k])
		buf.WriteByte(' ')
	}

	var found int
	fields = fields[2:] // Omission of ITEM: ATOMS
	m.colsLen = len(fields)

	for k, v := range fields {
		switch v {
		case "x":
			m.cols[0] = k
			buf.WriteString("xu")
		case "y":
			m.cols[1] = k
			buf.WriteString("yu")
		case "z":
			m.cols[2] = k
			buf.WriteString("zu")
		case "mol":
			m.cols[3] = k
			buf.WriteString(v)
		case "id":
			m.cols[4] = k
			buf.WriteString(v)
		default:
			buf.WriteString(v)
			buf.WriteByte(' ')
			continue
		}
		buf.WriteByte(' ')
		found++
	}

	buf.WriteByte('\n')
	w.Write(buf.Bytes())
	m.colsBuf = buf.Bytes()

	if found < len(m.cols) {
		return fmt.Errorf("cannot find the columns x, y, z, mol, and id")
	}

	err = m.readAtoms(r, w, box.NewTriclinic(boxLen, tilt))
	if err != nil {
		return fmt.Errorf("readAtoms: %w", err)
	}

	return nil
}

// readCfg reads the configurations that follow the first one until the
// end of the trajectory, or until CfgEnd configurations have been
// processed.
func (m *MakeWhole) readCfg(r *bufio.Reader, w io.Writer) error {
	for cfg := 1; m.CfgEnd == 0 || cfg < (m.CfgEnd-m.CfgStart); cfg++ {
		_, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		r.UnreadByte()

		boxLen, tilt, err := util.HeaderWOutAtoms(r, w, readSlice)
		if err != nil {
			return fmt.Errorf("HeaderWOutAtoms (cfg %d): %w", cfg, err)
		}

		r.ReadSlice('\n')
		w.Write(m.colsBuf)

		err = m.readAtoms(r, w, box.NewTriclinic(boxLen, tilt))
		if err != nil {
			return fmt.Errorf("readAtoms (cfg %d): %w", cfg, err)
		}
	}

	return nil
}

// readAtoms reads the atoms of one configuration, reconstructs every
// molecule and writes the lines back with the new coordinates. The
// whole configuration is read before anything is written so that a
// reconstruction failure does not leave a truncated configuration in
// the output file.
func (m *MakeWhole) readAtoms(r *bufio.Reader, w io.Writer, b *box.Box) error {
	lines := make([][]string, m.atoms)
	ids := make([]int, m.atoms)
	mols := make([]int, m.atoms)
	xyz := make([][3]float64, m.atoms)

	for i := 0; i < m.atoms; i++ {
		l, _ := r.ReadSlice('\n')

		fields := strings.Fields(string(l))
		if len(fields) != m.colsLen {
			return fmt.Errorf("number of columns don't match (id %d, got %d, expected %d)",
				i, len(fields), m.colsLen)
		}

		for k := 0; k < 3; k++ {
			xyz[i][k], _ = strconv.ParseFloat(fields[m.cols[k]], 64)
		}

		var err error
		mols[i], err = strconv.Atoi(fields[m.cols[3]])
		if err != nil {
			return fmt.Errorf("mol column (id %d): %w", i, err)
		}
		ids[i], err = strconv.Atoi(fields[m.cols[4]])
		if err != nil {
			return fmt.Errorf("id column (id %d): %w", i, err)
		}

		lines[i] = fields
	}

	err := m.reconstruct(ids, mols, xyz, b)
	if err != nil {
		return err
	}

	for i := 0; i < m.atoms; i++ {
		m.write(w, lines[i], xyz[i])
	}

	return nil
}

// reconstruct makes every molecule of the configuration whole. The
// molecule ids are deduplicated with util.UniqueInt; for each molecule
// a Group is built from the atoms carrying its id, the first of them
// being the reference atom.
func (m *MakeWhole) reconstruct(ids, mols []int, xyz [][3]float64, b *box.Box) error {
	for _, mol := range util.UniqueInt(mols) {
		var (
			g   Group
			off []int
		)
		for k, v := range mols {
			if v != mol {
				continue
			}
			off = append(off, k)
			g.Indices = append(g.Indices, ids[k])
			g.Pos = append(g.Pos, xyz[k])
		}

		err := g.MakeWhole(m.bonds, b)
		if err != nil {
			return fmt.Errorf("molecule %d: %w", mol, err)
		}

		for i, k := range off {
			xyz[k] = g.Pos[i]
		}
	}

	return nil
}

// readBonds reads a file of bond pairs, one `id1 id2` pair per line.
// Empty lines and lines starting with # are skipped.
func readBonds(path string) ([][2]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var bonds [][2]int
	s := bufio.NewScanner(f)
	for s.Scan() {
		fields := strings.Fields(s.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("bond line `%s`: expected 2 fields, got %d",
				s.Text(), len(fields))
		}

		var bd [2]int
		for k := 0; k < 2; k++ {
			bd[k], err = strconv.Atoi(fields[k])
			if err != nil {
				return nil, fmt.Errorf("bond line `%s`: %w", s.Text(), err)
			}
		}
		bonds = append(bonds, bd)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return bonds, nil
}
