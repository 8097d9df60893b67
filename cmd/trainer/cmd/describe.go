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
	"github.com/spf13/cobra"

	"github.com/valvesense/valvesense/trainer/dataset"
	"github.com/valvesense/valvesense/trainer/preprocess"
	"github.com/valvesense/valvesense/trainer/storage"
)

// describeCmd prints summary statistics of the dataset.
var describeCmd = &cobra.Command{
	Use:               "describe",
	Short:             "print summary statistics of the dataset",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := storage.New(cfg.Dataset.Path, cfg.Model.Path).ListSample()
		if err != nil {
			return err
		}

		report, err := preprocess.Describe(dataset.FromSamples(samples))
		if err != nil {
			return err
		}

		report.Render(cmd.OutOrStdout())
		return nil
	},
}
