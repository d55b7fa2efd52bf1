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
	"strings"

	"github.com/spf13/cobra"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/cheatsheet"
	"github.com/walteh/regexlab/pkg/render"
)

func NewCheatSheetCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cheatsheet [QUERY]",
		Aliases: []string{"cheat"},
		Short:   "Show the syntax cheat sheet, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			return render.CheatSheet(cmd.OutOrStdout(), cheatsheet.Filter(strings.Join(args, " ")))
		},
	}

	return cmd
}
