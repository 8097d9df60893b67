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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valvesense/valvesense/cmd/dependency"
	logger "github.com/valvesense/valvesense/internal/vslog"
	"github.com/valvesense/valvesense/pkg/types"
	"github.com/valvesense/valvesense/pkg/vspath"
	"github.com/valvesense/valvesense/simulator"
	"github.com/valvesense/valvesense/simulator/config"
	"github.com/valvesense/valvesense/version"
)

var (
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   types.SimulatorName,
	Short: "the simulator of valvesense",
	Long: `Simulator draws synthetic solenoid valve sensor readings, classifies every reading
with the trained model and renders the stream of state probabilities.`,
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Initialize vspath.
		d, err := initVspath(&cfg.Server)
		if err != nil {
			return err
		}

		// Convert config.
		if err := cfg.Convert(d.DataDir(), d.OutputDir()); err != nil {
			return err
		}

		// Validate config.
		if err := cfg.Validate(); err != nil {
			return err
		}

		rotateConfig := logger.LogRotateConfig{
			MaxSize:    cfg.Server.LogMaxSize,
			MaxAge:     cfg.Server.LogMaxAge,
			MaxBackups: cfg.Server.LogMaxBackups}

		// Initialize logger.
		if err := logger.InitSimulator(cfg.Verbose, cfg.Console, d.LogDir(), rotateConfig); err != nil {
			return fmt.Errorf("init simulator logger: %w", err)
		}

		return runSimulator(ctx, d)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func init() {
	// Initialize default simulator config.
	cfg = config.New()
	// Initialize command and config.
	dependency.InitCommandAndConfig(rootCmd, true, cfg)
}

func initVspath(cfg *config.ServerConfig) (vspath.Vspath, error) {
	var options []vspath.Option
	if cfg.WorkHome != "" {
		options = append(options, vspath.WithWorkHome(cfg.WorkHome))
	}

	if cfg.LogDir != "" {
		options = append(options, vspath.WithLogDir(cfg.LogDir))
	}

	if cfg.DataDir != "" {
		options = append(options, vspath.WithDataDir(cfg.DataDir))
	}

	return vspath.New(options...)
}

func runSimulator(ctx context.Context, d vspath.Vspath) error {
	logger.Infof("version:\n%s", version.Version())

	ff := dependency.InitMonitor(cfg.Verbose, cfg.PProfPort)
	defer ff()

	svr, err := simulator.New(ctx, cfg, d)
	if err != nil {
		return err
	}

	dependency.SetupQuitSignalHandler(func() { svr.Stop() })
	defer svr.Stop()

	return svr.Serve()
}
