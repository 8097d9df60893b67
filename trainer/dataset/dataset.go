/*
 *     Copyright 2026 The Valvesense Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package dataset

import (
	"github.com/valvesense/valvesense/internal/vserrors"
)

const (
	// Pressure1Column is the column name of the first pressure sensor.
	Pressure1Column = "Pressure_1"

	// Pressure2Column is the column name of the second pressure sensor.
	Pressure2Column = "Pressure_2"

	// InputStateColumn is the column name of the commanded valve state.
	InputStateColumn = "input_state"

	// FeedbackStateColumn is the column name of the positional feedback state.
	FeedbackStateColumn = "feedback_state"

	// LabelColumn is the column name of the valve state label.
	LabelColumn = "labels"
)

// SampleColumns are the columns of a labeled sample in file order.
var SampleColumns = []string{Pressure1Column, Pressure2Column, InputStateColumn, FeedbackStateColumn, LabelColumn}

// Sample is one labeled sensor reading.
type Sample struct {
	Pressure1     float64 `csv:"Pressure_1"`
	Pressure2     float64 `csv:"Pressure_2"`
	InputState    int     `csv:"input_state"`
	FeedbackState int     `csv:"feedback_state"`
	Label         string  `csv:"labels"`
}

// Kind is the value type of a column.
type Kind int

const (
	Float Kind = iota
	Int
	String
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	}

	return "unknown"
}

// Column is a named, typed column. Exactly one of the value slices is used, chosen by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Ints    []int
	Strings []string
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.Kind {
	case Float:
		return len(c.Floats)
	case Int:
		return len(c.Ints)
	default:
		return len(c.Strings)
	}
}

// AsFloats returns the values of a numeric column as floats.
func (c Column) AsFloats() ([]float64, error) {
	switch c.Kind {
	case Float:
		return append([]float64(nil), c.Floats...), nil
	case Int:
		values := make([]float64, len(c.Ints))
		for i, v := range c.Ints {
			values[i] = float64(v)
		}

		return values, nil
	default:
		return nil, vserrors.Newf(vserrors.CodeSchemaError, "column %s is not numeric", c.Name)
	}
}

func (c Column) permute(index []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case Float:
		out.Floats = make([]float64, len(index))
		for i, j := range index {
			out.Floats[i] = c.Floats[j]
		}
	case Int:
		out.Ints = make([]int, len(index))
		for i, j := range index {
			out.Ints[i] = c.Ints[j]
		}
	default:
		out.Strings = make([]string, len(index))
		for i, j := range index {
			out.Strings[i] = c.Strings[j]
		}
	}

	return out
}

// Dataset is an immutable table of equally long columns.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New returns a dataset of the given columns.
func New(columns ...Column) (*Dataset, error) {
	d := &Dataset{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, c := range columns {
		if _, ok := d.index[c.Name]; ok {
			return nil, vserrors.Newf(vserrors.CodeSchemaError, "duplicate column %s", c.Name)
		}

		if i == 0 {
			d.rows = c.Len()
		} else if c.Len() != d.rows {
			return nil, vserrors.Newf(vserrors.CodeShapeError, "column %s has %d rows, want %d", c.Name, c.Len(), d.rows)
		}

		d.index[c.Name] = i
		d.columns = append(d.columns, c)
	}

	return d, nil
}

// FromSamples returns a dataset with one column per sample field.
func FromSamples(samples []Sample) *Dataset {
	var (
		p1       = make([]float64, len(samples))
		p2       = make([]float64, len(samples))
		input    = make([]int, len(samples))
		feedback = make([]int, len(samples))
		labels   = make([]string, len(samples))
	)

	for i, s := range samples {
		p1[i] = s.Pressure1
		p2[i] = s.Pressure2
		input[i] = s.InputState
		feedback[i] = s.FeedbackState
		labels[i] = s.Label
	}

	d, _ := New(
		Column{Name: Pressure1Column, Kind: Float, Floats: p1},
		Column{Name: Pressure2Column, Kind: Float, Floats: p2},
		Column{Name: InputStateColumn, Kind: Int, Ints: input},
		Column{Name: FeedbackStateColumn, Kind: Int, Ints: feedback},
		Column{Name: LabelColumn, Kind: String, Strings: labels},
	)

	return d
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.rows
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}

	return names
}

// Column returns the column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}

	return d.columns[i], true
}

// MustColumn returns the column by name or a schema error.
func (d *Dataset) MustColumn(name string) (Column, error) {
	c, ok := d.Column(name)
	if !ok {
		return Column{}, vserrors.Newf(vserrors.CodeSchemaError, "missing column %s", name)
	}

	return c, nil
}

// Permute returns a dataset whose row i is row index[i] of d.
func (d *Dataset) Permute(index []int) (*Dataset, error) {
	for _, j := range index {
		if j < 0 || j >= d.rows {
			return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "row %d out of range [0,%d)", j, d.rows)
		}
	}

	columns := make([]Column, len(d.columns))
	for i, c := range d.columns {
		columns[i] = c.permute(index)
	}

	return New(columns...)
}

// Replace returns a dataset with the column of the same name replaced, or appended if absent.
func (d *Dataset) Replace(column Column) (*Dataset, error) {
	columns := append([]Column(nil), d.columns...)
	if i, ok := d.index[column.Name]; ok {
		columns[i] = column
	} else {
		columns = append(columns, column)
	}

	return New(columns...)
}

// Drop returns a dataset without the named column.
func (d *Dataset) Drop(name string) (*Dataset, error) {
	if _, ok := d.index[name]; !ok {
		return nil, vserrors.Newf(vserrors.CodeSchemaError, "missing column %s", name)
	}

	columns := make([]Column, 0, len(d.columns)-1)
	for _, c := range d.columns {
		if c.Name != name {
			columns = append(columns, c)
		}
	}

	return New(columns...)
}
