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
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/cmd/regexlab/commands"
	"github.com/walteh/regexlab/cmd/regexlab/opts"
	"github.com/walteh/regexlab/pkg/config"
	"github.com/walteh/regexlab/pkg/controller"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/log"
	"github.com/walteh/regexlab/pkg/prefs"
)

var (
	// Flags
	configFile string
	verbose    bool
)

func newRootCmd(o *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "regexlab",
		Short: "An interactive regular-expression tester",
		Long: `regexlab tests a pattern, its flags and a sample text and shows the
matches, capture groups and replacement previews. Use the subcommands in
a terminal, or "regexlab serve" for the browser UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, o)
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(
		commands.NewMatchCmd(o),
		commands.NewReplaceCmd(o),
		commands.NewShareCmd(o),
		commands.NewOpenCmd(o),
		commands.NewLibraryCmd(o),
		commands.NewCheatSheetCmd(o),
		commands.NewThemeCmd(o),
		commands.NewServeCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultPath, "config file path")
	cmd.PersistentFlags().BoolVarP(&verbose, "debug", "d", false, "enable debug logging")
}

// setup builds the logger, loads the config and wires the controller
func setup(cmd *cobra.Command, o *opts.RootOpts) error {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	o.Console = log.New(cmd.ErrOrStderr(), logger)
	ctx = log.NewContext(ctx, o.Console)

	load := config.Load
	if cmd.Flags().Changed("config") {
		load = config.LoadFile
	}
	cfg, err := load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	logger.Debug().Stringer("config", cfg).Msg("configuration loaded")

	ev, err := engine.New(cfg.EngineOptions())
	if err != nil {
		return errors.Errorf("creating evaluator: %w", err)
	}

	store, err := prefs.NewFileStore(cfg.PrefsPath)
	if err != nil {
		return errors.Errorf("opening preferences: %w", err)
	}

	o.Config = cfg
	o.Controller = controller.New(ev, cfg.NewLibrary())
	o.Store = store
	o.Clipboard = controller.SystemClipboard{}

	cmd.SetContext(ctx)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), readBuildInfo())
			return err
		},
	}
}
