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

package render

import (
	"os"
	"path/filepath"

	"github.com/gammazero/deque"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hashicorp/go-multierror"

	"github.com/valvesense/valvesense/internal/vserrors"
	"github.com/valvesense/valvesense/simulator/stream"
)

const (
	// chartPageTitle is title of the chart page.
	chartPageTitle = "valvesense"
)

// Chart renders an html page with the pressure and state time series of the
// last window frames and the distribution of the latest frame.
type Chart struct {
	path    string
	labels  []string
	window  int
	refresh int
	frames  *deque.Deque[stream.Frame]
	written int
}

// NewChart returns a chart rendered to path every refresh frames and on Close.
func NewChart(path string, labels []string, window, refresh int) (*Chart, error) {
	if window <= 0 || refresh <= 0 {
		return nil, vserrors.Newf(vserrors.CodeInvalidArgument, "chart window %d and refresh %d must be positive", window, refresh)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return &Chart{
		path:    path,
		labels:  labels,
		window:  window,
		refresh: refresh,
		frames:  deque.New[stream.Frame](window),
	}, nil
}

func (c *Chart) Write(frame stream.Frame) error {
	c.frames.PushBack(frame)
	if c.frames.Len() > c.window {
		c.frames.PopFront()
	}

	c.written++
	if c.written%c.refresh != 0 {
		return nil
	}

	return c.render()
}

func (c *Chart) Close() error {
	return c.render()
}

// render replaces the page at path.
func (c *Chart) render() (err error) {
	page := components.NewPage()
	page.AddCharts(c.pressure(), c.states(), c.distribution())

	file, err := os.CreateTemp(filepath.Dir(c.path), ".chart-*.html")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(file.Name())
		}
	}()

	if err := page.Render(file); err != nil {
		return multierror.Append(err, file.Close())
	}

	if err := file.Close(); err != nil {
		return err
	}

	return os.Rename(file.Name(), c.path)
}

func (c *Chart) ticks() []uint64 {
	ticks := make([]uint64, c.frames.Len())
	for i := range ticks {
		ticks[i] = c.frames.At(i).Tick
	}

	return ticks
}

func (c *Chart) pressure() *charts.Line {
	p1 := make([]opts.LineData, c.frames.Len())
	p2 := make([]opts.LineData, c.frames.Len())
	for i := range p1 {
		frame := c.frames.At(i)
		p1[i] = opts.LineData{Value: frame.Pressure1}
		p2[i] = opts.LineData{Value: frame.Pressure2}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: chartPageTitle}),
		charts.WithTitleOpts(opts.Title{Title: "Pressure"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "psi"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)
	line.SetXAxis(c.ticks()).
		AddSeries("Pressure_1", p1).
		AddSeries("Pressure_2", p2)

	return line
}

func (c *Chart) states() *charts.Line {
	input := make([]opts.LineData, c.frames.Len())
	feedback := make([]opts.LineData, c.frames.Len())
	for i := range input {
		frame := c.frames.At(i)
		input[i] = opts.LineData{Value: frame.InputState}
		feedback[i] = opts.LineData{Value: frame.FeedbackState}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Positional indicators"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
	)
	line.SetXAxis(c.ticks()).
		AddSeries("input_state", input).
		AddSeries("feedback_state", feedback)

	return line
}

func (c *Chart) distribution() *charts.Bar {
	var last stream.Frame
	if c.frames.Len() > 0 {
		last = c.frames.Back()
	}

	data := make([]opts.BarData, len(c.labels))
	for i := range c.labels {
		var p float64
		if i < len(last.Distribution) {
			p = last.Distribution[i]
		}

		data[i] = opts.BarData{Value: p}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Valve state", Subtitle: last.State}),
		charts.WithYAxisOpts(opts.YAxis{Name: "probability", Min: 0, Max: 1}),
	)
	bar.SetXAxis(c.labels).AddSeries("probability", data)

	return bar
}
