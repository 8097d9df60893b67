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

package vspath

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
)

// Vspath is the interface used for init project path.
type Vspath interface {
	WorkHome() string
	WorkHomeMode() fs.FileMode
	LogDir() string
	DataDir() string
	DataDirMode() fs.FileMode
	ModelDir() string
	OutputDir() string
}

type vspath struct {
	workHome     string
	workHomeMode fs.FileMode
	logDir       string
	dataDir      string
	dataDirMode  fs.FileMode
	modelDir     string
	outputDir    string
}

// Option is a functional option for configuring the vspath.
type Option func(d *vspath)

// WithWorkHome set the workhome directory.
func WithWorkHome(dir string) Option {
	return func(d *vspath) {
		d.workHome = dir
	}
}

// WithWorkHomeMode sets the workHome directory mode.
func WithWorkHomeMode(mode fs.FileMode) Option {
	return func(d *vspath) {
		d.workHomeMode = mode
	}
}

// WithLogDir set the log directory.
func WithLogDir(dir string) Option {
	return func(d *vspath) {
		d.logDir = dir
	}
}

// WithDataDir set the data directory.
func WithDataDir(dir string) Option {
	return func(d *vspath) {
		d.dataDir = dir
	}
}

// WithDataDirMode sets the dataDir mode.
func WithDataDirMode(mode fs.FileMode) Option {
	return func(d *vspath) {
		d.dataDirMode = mode
	}
}

// WithModelDir set the model artifact directory.
func WithModelDir(dir string) Option {
	return func(d *vspath) {
		d.modelDir = dir
	}
}

// WithOutputDir set the render output directory.
func WithOutputDir(dir string) Option {
	return func(d *vspath) {
		d.outputDir = dir
	}
}

// New returns a new vspath interface, all directories are created.
func New(options ...Option) (Vspath, error) {
	d := &vspath{
		workHome:     DefaultWorkHome,
		workHomeMode: DefaultWorkHomeMode,
		dataDirMode:  DefaultDataDirMode,
	}

	for _, opt := range options {
		opt(d)
	}

	// Directories not set explicitly follow the workhome.
	if d.logDir == "" {
		d.logDir = filepath.Join(d.workHome, "logs")
	}

	if d.dataDir == "" {
		d.dataDir = filepath.Join(d.workHome, "data")
	}

	if d.modelDir == "" {
		d.modelDir = filepath.Join(d.dataDir, "models")
	}

	if d.outputDir == "" {
		d.outputDir = filepath.Join(d.workHome, "output")
	}

	var errs *multierror.Error

	// Create workhome directory.
	if err := os.MkdirAll(d.workHome, d.workHomeMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create log directory.
	if err := os.MkdirAll(d.logDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create data directory.
	if err := os.MkdirAll(d.dataDir, d.dataDirMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create model directory.
	if err := os.MkdirAll(d.modelDir, d.dataDirMode); err != nil {
		errs = multierror.Append(errs, err)
	}

	// Create output directory.
	if err := os.MkdirAll(d.outputDir, fs.FileMode(0700)); err != nil {
		errs = multierror.Append(errs, err)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *vspath) WorkHome() string {
	return d.workHome
}

func (d *vspath) WorkHomeMode() fs.FileMode {
	return d.workHomeMode
}

func (d *vspath) LogDir() string {
	return d.logDir
}

func (d *vspath) DataDir() string {
	return d.dataDir
}

func (d *vspath) DataDirMode() fs.FileMode {
	return d.dataDirMode
}

func (d *vspath) ModelDir() string {
	return d.modelDir
}

func (d *vspath) OutputDir() string {
	return d.outputDir
}
