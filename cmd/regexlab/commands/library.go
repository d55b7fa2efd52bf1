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
	"github.com/walteh/regexlab/pkg/library"
	"github.com/walteh/regexlab/pkg/render"
	"github.com/walteh/regexlab/pkg/share"
)

func NewLibraryCmd(o *opts.RootOpts) *cobra.Command {
	var in input

	cmd := &cobra.Command{
		Use:   "library [NAME]",
		Short: "List the example patterns or run one",
		Long: `Without NAME, library lists every example pattern. With NAME and a
sample text it loads that pattern and its flags and shows the matches.
Entries from the config file are listed after the built-ins.`,
		Example: `  regexlab library
  regexlab library 'IPv4 Address' --text 'hosts 10.0.0.1 and 10.0.0.2'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib := o.Controller.Library()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return render.Library(out, lib.All())
			}

			st, toast, err := o.Controller.LoadExample(share.State{Mode: engine.ModeMatch}, args[0])
			if err != nil {
				return err
			}

			if !in.given(cmd) {
				e, _ := lib.Lookup(args[0])
				return render.Library(out, []library.Entry{e})
			}

			o.Console.Toast(toast)
			return in.evaluate(cmd, o, st)
		},
	}

	in.register(cmd)

	return cmd
}
