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

	"github.com/gocarina/gocsv"

	"github.com/valvesense/valvesense/simulator/stream"
)

// CSV appends frames to a csv file, the header is written with the first frame.
type CSV struct {
	file   *os.File
	header bool
}

// NewCSV truncates or creates the file at path.
func NewCSV(path string) (*CSV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, err
	}

	return &CSV{file: file}, nil
}

// Write appends frame.
func (c *CSV) Write(frame stream.Frame) error {
	frames := []stream.Frame{frame}
	if !c.header {
		c.header = true
		return gocsv.Marshal(&frames, c.file)
	}

	return gocsv.MarshalWithoutHeaders(&frames, c.file)
}

// Close closes the file.
func (c *CSV) Close() error {
	return c.file.Close()
}
