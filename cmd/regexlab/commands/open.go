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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/share"
)

func NewOpenCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open URL",
		Short: "Evaluate the state carried by a shared link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := share.ParseURL(args[0])
			if err != nil {
				return err
			}
			if patch.Empty() {
				return errors.Errorf("%s carries no regexlab state", args[0])
			}

			st := patch.Apply(share.State{Mode: engine.ModeMatch})
			o.Console.Header(fmtState(st))

			v := o.Controller.Run(cmd.Context(), st)
			if err := draw(cmd.OutOrStdout(), v); err != nil {
				return err
			}
			if v.Error != "" {
				return opts.ErrReported
			}
			return nil
		},
	}

	return cmd
}

func fmtState(st share.State) string {
	s := string(st.Mode) + " /" + st.Pattern + "/" + st.Flags
	if st.Mode == engine.ModeReplace {
		s += " → " + st.Replacement
	}
	return s
}
