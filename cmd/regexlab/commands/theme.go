// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/prefs"
)

func NewThemeCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the browser UI theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			current, err := prefs.LoadTheme(ctx, o.Store)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", current.Icon(), current)
				return nil
			}

			next := current.Toggle()
			if args[0] != "toggle" {
				if next, err = prefs.ParseTheme(args[0]); err != nil {
					return err
				}
			}

			if err := prefs.SaveTheme(ctx, o.Store, next); err != nil {
				return err
			}
			o.Console.Successf("theme set to %s %s", next, next.Icon())
			return nil
		},
	}

	return cmd
}
