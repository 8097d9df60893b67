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

package dependency

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/mitchellh/mapstructure"
	"github.com/phayes/freeport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	logger "github.com/valvesense/valvesense/internal/vslog"
	"github.com/valvesense/valvesense/pkg/types"
	"github.com/valvesense/valvesense/pkg/vspath"
)

// InitCommandAndConfig initializes flags binding and common sub cmds.
// config is a pointer to configuration struct.
func InitCommandAndConfig(cmd *cobra.Command, useConfigFile bool, config any) {
	rootName := cmd.Root().Name()
	cobra.OnInitialize(func() { initConfig(useConfigFile, rootName, config) })

	if !cmd.HasParent() {
		// Add common flags
		flags := cmd.PersistentFlags()
		flags.Bool("console", false, "whether logger output records to the stdout")
		flags.Bool("verbose", false, "whether logger use debug level")
		flags.Int("pprof-port", -1, "listen port for pprof, 0 represents random port")
		flags.String("config", "", fmt.Sprintf("the path of configuration file with yaml extension name, default is %s, it can also be set by env var: %s", filepath.Join(vspath.DefaultConfigDir, rootName+".yaml"), strings.ToUpper(types.EnvPrefix+"_CONFIG")))

		// Bind common flags
		if err := viper.BindPFlags(flags); err != nil {
			panic(fmt.Errorf("bind common flags to viper: %w", err))
		}

		// Add common cmds only on root cmd
		cmd.AddCommand(VersionCmd)
	}
}

// InitMonitor starts pprof and statsview on the given port when verbose is set.
// It returns the stop function.
func InitMonitor(verbose bool, pprofPort int) func() {
	if !verbose || pprofPort < 0 {
		return func() {}
	}

	logger.SetLevel(zapcore.DebugLevel)

	if pprofPort == 0 {
		pprofPort, _ = freeport.GetFreePort()
	}

	debugAddr := fmt.Sprintf("localhost:%d", pprofPort)
	viewer.SetConfiguration(viewer.WithAddr(debugAddr))
	vm := statsview.New()
	go func() {
		logger.With("pprof", fmt.Sprintf("http://%s/debug/pprof", debugAddr),
			"statsview", fmt.Sprintf("http://%s/debug/statsview", debugAddr)).
			Infof("enable pprof at %s", debugAddr)

		if err := vm.Start(); err != nil {
			logger.Warnf("serve pprof error: %v", err)
		}
	}()

	return vm.Stop
}

// SetupQuitSignalHandler runs handler once on SIGINT or SIGTERM.
func SetupQuitSignalHandler(handler func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var done bool
		for {
			select {
			case sig := <-signals:
				logger.Warnf("receive %s signal", sig)
				if !done {
					done = true
					handler()
					logger.Warnf("handle %s signal done", sig)
				}
			}
		}
	}()
}

// initConfig reads in config file and ENV variables if set.
func initConfig(useConfigFile bool, name string, config any) {
	// Use config file and read once.
	if useConfigFile {
		cfgFile := viper.GetString("config")
		if cfgFile != "" {
			// Use config file from the flag.
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath(vspath.DefaultConfigDir)
			viper.SetConfigName(name)
			viper.SetConfigType("yaml")
		}

		// If a config file is found, read it in.
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				panic(fmt.Errorf("viper read config: %w", err))
			}
		}
	}

	// Read in environment variables that match
	viper.SetEnvPrefix(types.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(config, initDecoderConfig); err != nil {
		panic(fmt.Errorf("unmarshal config to struct: %w", err))
	}
}

func initDecoderConfig(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(func(from, to reflect.Type, v any) (any, error) {
		switch to {
		case reflect.TypeOf(time.Duration(0)):
			if from.Kind() == reflect.String {
				return time.ParseDuration(v.(string))
			}

			return v, nil
		default:
			return v, nil
		}
	}, mapstructure.StringToSliceHookFunc(","))
}
