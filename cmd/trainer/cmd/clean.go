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
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/valvesense/valvesense/trainer/storage"
)

// cleanCmd removes the model artifact.
var cleanCmd = &cobra.Command{
	Use:               "clean",
	Short:             "remove the model artifact",
	Args:              cobra.NoArgs,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := storage.NewModel(cfg.Model.Path).ClearModel(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(cmd.OutOrStdout(), "model %s does not exist\n", cfg.Model.Path)
				return nil
			}

			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "removed model %s\n", cfg.Model.Path)
		return nil
	},
}
