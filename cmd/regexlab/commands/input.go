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
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/controller"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/log"
	"github.com/walteh/regexlab/pkg/render"
	"github.com/walteh/regexlab/pkg/scan"
	"github.com/walteh/regexlab/pkg/share"
)

// input is where a command reads its sample text from
type input struct {
	text  string
	files []string
	jobs  int
}

func (in *input) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.text, "text", "t", "", "sample text (stdin is read when neither --text nor --file is given)")
	cmd.Flags().StringArrayVar(&in.files, "file", nil, "file glob to test, ** supported (repeatable)")
	cmd.Flags().IntVar(&in.jobs, "jobs", scan.DefaultLimit, "files evaluated at once")
}

// given reports whether the user supplied any text
func (in *input) given(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("text") || len(in.files) > 0 || !stdinIsTerminal(cmd)
}

func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (in *input) sample(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("text") {
		return in.text, nil
	}
	if stdinIsTerminal(cmd) {
		return "", errors.New("no sample text: pass --text, --file or pipe text on stdin")
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// evaluate runs st against the command's input and prints the views
func (in *input) evaluate(cmd *cobra.Command, o *opts.RootOpts, st share.State) error {
	if len(in.files) > 0 {
		return in.evaluateFiles(cmd, o, st)
	}

	text, err := in.sample(cmd)
	if err != nil {
		return err
	}
	st.Text = text

	v := o.Controller.Run(cmd.Context(), st)
	if err := draw(cmd.OutOrStdout(), v); err != nil {
		return err
	}
	if v.Error != "" {
		return opts.ErrReported
	}
	return nil
}

func (in *input) evaluateFiles(cmd *cobra.Command, o *opts.RootOpts, st share.State) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fsys := os.DirFS(".")
	paths, err := scan.Expand(fsys, in.files)
	if err != nil {
		return err
	}

	fn := func(ctx context.Context, text string) controller.View {
		s := st
		s.Text = text
		return o.Controller.Run(ctx, s)
	}

	results, err := scan.Run(ctx, fsys, paths, fn, in.jobs)
	if err != nil {
		return err
	}

	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			continue
		}
		if r.View.Error != "" {
			// every file fails the same way when the pattern does not compile
			render.Error(out, r.View.Error)
			return opts.ErrReported
		}
		render.Heading(out, r.Path)
		if err := draw(out, r.View); err != nil {
			return err
		}
	}

	o.Console.LogNewline()
	for _, r := range results {
		o.Console.LogFileLine(ctx, log.FileLine{
			Path:    r.Path,
			Count:   len(r.View.Rows),
			Replace: r.View.Mode == engine.ModeReplace,
			Err:     r.Err,
		})
	}

	if failed {
		return opts.ErrReported
	}
	return nil
}

func draw(w io.Writer, v controller.View) error {
	if v.Mode == engine.ModeReplace {
		return render.Replace(w, v)
	}
	return render.Matches(w, v)
}
