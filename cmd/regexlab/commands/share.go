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
	"github.com/walteh/regexlab/pkg/controller"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/share"
)

func NewShareCmd(o *opts.RootOpts) *cobra.Command {
	var (
		flags       string
		text        string
		replacement string
		copyURL     bool
	)

	cmd := &cobra.Command{
		Use:   "share PATTERN",
		Short: "Print a link that reopens this pattern",
		Long: `Share prints a URL carrying the pattern, flags, sample text and,
with --replace, the replacement. Open it in the browser UI or pass it to
"regexlab open". With --copy the link also goes to the clipboard.`,
		Example: `  regexlab share '\d+' --text 'a1 b22' --copy
  regexlab share '\s+' --replace _ --text 'a b  c'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := share.State{
				Pattern: args[0],
				Flags:   flags,
				Text:    text,
				Mode:    engine.ModeMatch,
			}
			if cmd.Flags().Changed("replace") {
				st.Mode = engine.ModeReplace
				st.Replacement = replacement
			}

			var cb controller.Clipboard
			if copyURL {
				cb = o.Clipboard
			}

			url, toast, err := o.Controller.Share(cmd.Context(), o.Config.Server.BaseURL, st, cb)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), url)
			if toast != "" {
				o.Console.Toast(toast)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags, "flags", "f", "g", "regex flags, any of "+engine.FlagOrder)
	cmd.Flags().StringVarP(&text, "text", "t", "", "sample text")
	cmd.Flags().StringVarP(&replacement, "replace", "r", "", "share in replace mode with this replacement")
	cmd.Flags().BoolVar(&copyURL, "copy", false, "copy the link to the clipboard")

	return cmd
}
