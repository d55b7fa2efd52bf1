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

func NewReplaceCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags string
		in    input
	)

	cmd := &cobra.Command{
		Use:   "replace PATTERN REPLACEMENT",
		Short: "Preview a replacement",
		Long: `Replace substitutes every match (with the g flag) or the first one
with REPLACEMENT and prints the result. The replacement understands
$1..$99, $<name>, $&, $` + "`" + `, $' and $$.`,
		Example: `  regexlab replace '\s+' _ --text 'a b  c'
  regexlab replace '(?<y>\d{4})-(\d{2})' '$2/$<y>' --file notes.txt`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return in.evaluate(cmd, o, share.State{
				Pattern:     args[0],
				Flags:       flags,
				Mode:        engine.ModeReplace,
				Replacement: args[1],
			})
		},
	}

	cmd.Flags().StringVarP(&flags, "flags", "f", "g", "regex flags, any of "+engine.FlagOrder)
	in.register(cmd)

	return cmd
}
