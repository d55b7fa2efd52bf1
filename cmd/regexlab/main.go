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

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
)

func main() {
	ctx := context.Background()

	o := &opts.RootOpts{}
	rootCmd := newRootCmd(o)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, o, err)
		os.Exit(1)
	}
}

// reportError prints err unless the command already did. Errors raised
// before setup built the console go through a bare zerolog writer.
func reportError(stderr io.Writer, o *opts.RootOpts, err error) {
	if errors.Is(err, opts.ErrReported) {
		return
	}
	if o.Console != nil {
		o.Console.Error(err.Error())
		return
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true})
	logger.Error().Err(err).Msg("command failed")
}
