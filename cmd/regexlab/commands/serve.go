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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/server"
)

func NewServeCmd(o *opts.RootOpts) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser UI",
		Long: `Serve starts the browser UI on a local address. Shared links open
straight into the page. Stop it with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sopts := server.Options{
				Addr:    o.Config.Server.Addr,
				BaseURL: o.Config.Server.BaseURL,
				Store:   o.Store,
			}
			if cmd.Flags().Changed("addr") {
				sopts.Addr = addr
				sopts.BaseURL = "http://" + addr + "/"
			}

			srv, err := server.New(o.Controller, sopts)
			if err != nil {
				return err
			}

			o.Console.Infof("browser UI on %s", sopts.BaseURL)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, 127.0.0.1:7341)")

	return cmd
}
