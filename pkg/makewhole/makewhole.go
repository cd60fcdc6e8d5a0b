// Package makewhole reconstructs molecules that the periodic boundary
// conditions of a simulation cell have split across opposite faces.
// Starting from a reference atom whose position is trusted, the bond
// graph of the molecule is walked outward and every atom reached
// through a bond is placed at the minimum image of its already placed
// neighbour, so that each bond vector is the true, continuous one.
//
// The package is also a calculation that applies the reconstruction to
// every molecule of every configuration of a lammps trajectory file.
package makewhole

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/kpotier/molwhole/pkg/util"

	"github.com/pelletier/go-toml"
)

// Type is name of the calculation.
var Type = "make_whole"

// MakeWhole is a structure containing the parameters that can be parsed
// from a TOML configuration file. This structure can be instanced
// through the New method. It also contains other unexported
// informations like the number of atoms, the number of columns and the
// bond list.
//
// CfgEnd may be zero, in which case the whole trajectory is processed.
// The configurations before CfgStart are discarded and not written to
// FileOut.
type MakeWhole struct {
	FileIn    string `toml:"make_whole.file_in"`
	FileOut   string `toml:"make_whole.file_out"`
	BondsFile string `toml:"make_whole.bonds_file"`

	CfgStart int `toml:"make_whole.cfg_start"`
	CfgEnd   int `toml:"make_whole.cfg_end"`

	atoms   int
	cols    [5]int // x, y, z, mol, id
	colsBuf []byte
	colsLen int
	bonds   [][2]int
}

// New returns an instance of the MakeWhole structure. It reads and
// parses the configuration file given in argument. The file must be a
// TOML file.
func New(path string) (*MakeWhole, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var makeWhole MakeWhole
	dec := toml.NewDecoder(f)
	err = dec.Decode(&makeWhole)
	if err != nil {
		return nil, err
	}

	if makeWhole.BondsFile == "" {
		return nil, ErrMissingBonds
	}

	if makeWhole.CfgEnd != 0 && makeWhole.CfgStart >= makeWhole.CfgEnd {
		return nil, errors.New("CfgStart is greater or equal than CfgEnd")
	}

	return &makeWhole, nil
}

// Start performs the calculation. It is a thread blocking method. This
// calculation only use one thread. A molecule that cannot be
// reconstructed (missing or disconnected bonds) stops the calculation.
func (m *MakeWhole) Start() error {
	bonds, err := readBonds(m.BondsFile)
	if err != nil {
		return fmt.Errorf("readBonds: %w", err)
	}
	m.bonds = bonds

	f, err := os.Open(m.FileIn)
	if err != nil {
		return err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	out, err := os.Create(m.FileOut)
	if err != nil {
		return err
	}
	defer out.Close()

	err = util.ReadCfgNonCvg(r, m.CfgStart)
	if err != nil {
		return fmt.Errorf("ReadCfgNonCvg: %w", err)
	}

	err = m.readCfgFirst(r, out)
	if err != nil {
		return fmt.Errorf("readCfgFirst: %w", err)
	}

	err = m.readCfg(r, out)
	if err != nil {
		return fmt.Errorf("readCfg: %w", err)
	}

	return nil
}
