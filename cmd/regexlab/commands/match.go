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
	"github.com/spf13/cobra"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/share"
)

func NewMatchCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags string
		in    input
	)

	cmd := &cobra.Command{
		Use:   "match PATTERN",
		Short: "Show the matches of a pattern",
		Long: `Match evaluates PATTERN against the sample text and prints the
highlighted text and a table of every match with its index and capture
groups. A pattern that does not compile prints the engine's diagnostic
and exits non-zero.`,
		Example: `  regexlab match '\d+' --text 'a1 b22 c333'
  regexlab match '(?<user>\w+)@(\w+)' --flags g --file 'logs/**/*.log'
  echo 'x y@z w' | regexlab match '(\w+)@(\w+)' --flags ''`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return in.evaluate(cmd, o, share.State{
				Pattern: args[0],
				Flags:   flags,
				Mode:    engine.ModeMatch,
			})
		},
	}

	cmd.Flags().StringVarP(&flags, "flags", "f", "g", "regex flags, any of "+engine.FlagOrder)
	in.register(cmd)

	return cmd
}
