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

package logger

import (
	"path"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	CoreLogFileName      = "core.log"
	TrainLogFileName     = "train.log"
	SimulatorLogFileName = "simulator.log"
	FrameLogFileName     = "stat/frame.log"
)

const (
	// DefaultRotateMaxSize is the default maximum size in megabytes of log files before rotation.
	DefaultRotateMaxSize = 1024

	// DefaultRotateMaxAge is the default maximum number of days to retain old log files.
	DefaultRotateMaxAge = 7

	// DefaultRotateMaxBackups is the default maximum number of old log files to keep.
	DefaultRotateMaxBackups = 20
)

const (
	encodeTimeFormat = "2006-01-02 15:04:05.000"
)

// LogRotateConfig is the rotation policy of file loggers.
type LogRotateConfig struct {
	MaxSize    int
	MaxAge     int
	MaxBackups int
}

type logInitMeta struct {
	fileName             string
	setSugaredLoggerFunc func(*zap.SugaredLogger)
	setLoggerFunc        func(log *zap.Logger)
}

func InitTrainer(verbose, console bool, dir string, rotateConfig LogRotateConfig) error {
	if console {
		return createConsoleLogger(verbose)
	}

	logDir := filepath.Join(dir, "trainer")

	var meta = []logInitMeta{
		{
			fileName:             CoreLogFileName,
			setSugaredLoggerFunc: SetCoreLogger,
		},
		{
			fileName:             TrainLogFileName,
			setSugaredLoggerFunc: SetTrainLogger,
		},
	}

	return createFileLogger(verbose, meta, logDir, rotateConfig)
}

func InitSimulator(verbose, console bool, dir string, rotateConfig LogRotateConfig) error {
	if console {
		return createConsoleLogger(verbose)
	}

	logDir := filepath.Join(dir, "simulator")

	var meta = []logInitMeta{
		{
			fileName:             CoreLogFileName,
			setSugaredLoggerFunc: SetCoreLogger,
		},
		{
			fileName:             SimulatorLogFileName,
			setSugaredLoggerFunc: SetSimulatorLogger,
		},
		{
			fileName:      FrameLogFileName,
			setLoggerFunc: SetFrameLogger,
		},
	}

	return createFileLogger(verbose, meta, logDir, rotateConfig)
}

// CreateLogger returns a json file logger rotated by lumberjack.
func CreateLogger(filePath string, compress bool, stats bool, verbose bool, rotateConfig LogRotateConfig) (*zap.Logger, zap.AtomicLevel, error) {
	if rotateConfig.MaxSize <= 0 {
		rotateConfig.MaxSize = DefaultRotateMaxSize
	}

	if rotateConfig.MaxAge <= 0 {
		rotateConfig.MaxAge = DefaultRotateMaxAge
	}

	if rotateConfig.MaxBackups <= 0 {
		rotateConfig.MaxBackups = DefaultRotateMaxBackups
	}

	syncer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    rotateConfig.MaxSize,
		MaxAge:     rotateConfig.MaxAge,
		MaxBackups: rotateConfig.MaxBackups,
		LocalTime:  true,
		Compress:   compress,
	})

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(encodeTimeFormat)

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		syncer,
		level,
	)

	var opts []zap.Option
	if !stats {
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1))
	}

	return zap.New(core, opts...), level, nil
}

func createConsoleLogger(verbose bool) error {
	levels = nil
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	log, err := config.Build(zap.AddCaller(), zap.AddStacktrace(zap.WarnLevel), zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	sugar := log.Sugar()
	SetCoreLogger(sugar)
	SetTrainLogger(sugar)
	SetSimulatorLogger(sugar)
	SetFrameLogger(log)
	levels = append(levels, config.Level)
	return nil
}

func createFileLogger(verbose bool, meta []logInitMeta, logDir string, rotateConfig LogRotateConfig) error {
	levels = nil
	for _, m := range meta {
		log, level, err := CreateLogger(path.Join(logDir, m.fileName), false, m.setLoggerFunc != nil, verbose, rotateConfig)
		if err != nil {
			return err
		}

		if m.setSugaredLoggerFunc != nil {
			m.setSugaredLoggerFunc(log.Sugar())
		} else {
			m.setLoggerFunc(log)
		}

		levels = append(levels, level)
	}

	return nil
}
