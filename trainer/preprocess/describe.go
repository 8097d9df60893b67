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

package preprocess

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"

	"github.com/valvesense/valvesense/trainer/dataset"
)

// Summary is the statistics of a numeric column.
type Summary struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	P25   float64
	P50   float64
	P75   float64
	Max   float64
}

// Report is the description of a dataset.
type Report struct {
	Rows      int
	Cols      int
	Columns   []string
	Summaries []Summary
}

// Describe computes the shape of the dataset and the statistics of every numeric column.
func Describe(d *dataset.Dataset) (*Report, error) {
	r := &Report{
		Rows:    d.Len(),
		Columns: d.Columns(),
	}
	r.Cols = len(r.Columns)

	if r.Rows == 0 {
		return r, nil
	}

	for _, name := range r.Columns {
		c, _ := d.Column(name)
		if c.Kind == dataset.String {
			continue
		}

		values, err := c.AsFloats()
		if err != nil {
			return nil, err
		}

		s, err := summarize(name, values)
		if err != nil {
			return nil, fmt.Errorf("describe column %s: %w", name, err)
		}

		r.Summaries = append(r.Summaries, s)
	}

	return r, nil
}

func summarize(name string, values stats.Float64Data) (Summary, error) {
	var err error
	s := Summary{Name: name, Count: values.Len(), Std: math.NaN()}

	if s.Mean, err = stats.Mean(values); err != nil {
		return s, err
	}

	if s.Count > 1 {
		if s.Std, err = stats.StandardDeviationSample(values); err != nil {
			return s, err
		}
	}

	if s.Min, err = stats.Min(values); err != nil {
		return s, err
	}

	if s.P25, err = stats.Percentile(values, 25); err != nil {
		return s, err
	}

	if s.P50, err = stats.Median(values); err != nil {
		return s, err
	}

	if s.P75, err = stats.Percentile(values, 75); err != nil {
		return s, err
	}

	if s.Max, err = stats.Max(values); err != nil {
		return s, err
	}

	return s, nil
}

// Render writes the report as tables.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "rows: %d, columns: %d\n", r.Rows, r.Cols)

	shape := tablewriter.NewWriter(w)
	shape.SetHeader([]string{"#", "Column"})
	for i, name := range r.Columns {
		shape.Append([]string{strconv.Itoa(i), name})
	}
	shape.Render()

	if len(r.Summaries) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	for _, s := range r.Summaries {
		table.Append([]string{s.Name, strconv.Itoa(s.Count), format(s.Mean), format(s.Std),
			format(s.Min), format(s.P25), format(s.P50), format(s.P75), format(s.Max)})
	}
	table.Render()
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
