// Package dataset loads labeled symbol sequences from YAML or JSON files.
//
// Two layouts are accepted:
//
//	examples:
//	  - {sequence: [1, 2, 3, 4, 5], label: 0}
//
// or parallel lists:
//
//	sequences: [[1, 2, 3, 4, 5], [6, 7, 8, 9, 0]]
//	labels: [0, 1]
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDataset is returned for a file that does not describe a usable dataset.
var ErrInvalidDataset = errors.New("dataset: invalid dataset")

// Example is one labeled sequence.
type Example struct {
	Sequence []int `yaml:"sequence"`
	Label    int   `yaml:"label"`
}

// Dataset is an ordered collection of labeled sequences.
type Dataset struct {
	Name      string
	Sequences [][]int
	Labels    []int
}

type fileFormat struct {
	Name      string    `yaml:"name"`
	Examples  []Example `yaml:"examples"`
	Sequences [][]int   `yaml:"sequences"`
	Labels    []int     `yaml:"labels"`
}

// Demo is the built-in four-sequence, two-class dataset.
func Demo() Dataset {
	return Dataset{
		Name: "demo",
		Sequences: [][]int{
			{1, 2, 3, 4, 5},
			{6, 7, 8, 9, 0},
			{1, 3, 5, 7, 9},
			{2, 4, 6, 8, 0},
		},
		Labels: []int{0, 1, 0, 1},
	}
}

// Load reads a dataset from path.
func Load(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses a YAML or JSON document.
func Decode(r io.Reader) (Dataset, error) {
	var ff fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ff); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, fmt.Errorf("%w: empty document", ErrInvalidDataset)
		}
		return Dataset{}, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}

	ds := Dataset{Name: ff.Name}
	switch {
	case len(ff.Examples) > 0 && (len(ff.Sequences) > 0 || len(ff.Labels) > 0):
		return Dataset{}, fmt.Errorf("%w: both examples and sequences/labels given", ErrInvalidDataset)
	case len(ff.Examples) > 0:
		for _, e := range ff.Examples {
			ds.Sequences = append(ds.Sequences, e.Sequence)
			ds.Labels = append(ds.Labels, e.Label)
		}
	default:
		ds.Sequences, ds.Labels = ff.Sequences, ff.Labels
	}
	if err := ds.Validate(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

// Validate checks that the dataset is non-empty, that every sequence has a
// label, and that symbols and labels are non-negative.
func (d Dataset) Validate() error {
	if len(d.Sequences) == 0 {
		return fmt.Errorf("%w: no sequences", ErrInvalidDataset)
	}
	if len(d.Sequences) != len(d.Labels) {
		return fmt.Errorf("%w: %d sequences, %d labels", ErrInvalidDataset, len(d.Sequences), len(d.Labels))
	}
	for i, seq := range d.Sequences {
		if len(seq) == 0 {
			return fmt.Errorf("%w: sequence %d is empty", ErrInvalidDataset, i)
		}
		for j, s := range seq {
			if s < 0 {
				return fmt.Errorf("%w: sequence %d has negative symbol %d at %d", ErrInvalidDataset, i, s, j)
			}
		}
		if d.Labels[i] < 0 {
			return fmt.Errorf("%w: sequence %d has negative label %d", ErrInvalidDataset, i, d.Labels[i])
		}
	}
	return nil
}

// Len returns the number of sequences.
func (d Dataset) Len() int { return len(d.Sequences) }

// Symbols returns one more than the largest symbol value, the smallest value
// table that covers the dataset.
func (d Dataset) Symbols() int {
	m := -1
	for _, seq := range d.Sequences {
		for _, s := range seq {
			if s > m {
				m = s
			}
		}
	}
	return m + 1
}
