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

// Package scan feeds files to the controller so the terminal surface can
// test a pattern against many inputs at once.
package scan

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/regexlab/pkg/controller"
)

// DefaultLimit bounds how many files are evaluated at once
const DefaultLimit = 8

// 📄 FileResult is the outcome for one file
type FileResult struct {
	Path string
	Text string
	View controller.View
	Err  error // read failure; evaluation problems live in View.Error
}

// Func evaluates the text of one file
type Func func(ctx context.Context, text string) controller.View

// 🔍 Expand resolves doublestar patterns against fsys into a sorted list of
// unique file paths. A pattern that matches nothing is an error.
func Expand(fsys fs.FS, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	for _, p := range patterns {
		clean := path.Clean(filepath.ToSlash(p))
		if !doublestar.ValidatePattern(clean) {
			return nil, errors.Errorf("invalid glob %q", p)
		}

		matches, err := doublestar.Glob(fsys, clean, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("no files match %q", p)
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}

	sort.Strings(out)
	return out, nil
}

// ⚡ Run reads each path from fsys and passes its text to fn, at most limit
// files at a time. Results keep the order of paths. A file that cannot be
// read gets FileResult.Err; only cancellation fails the whole run.
func Run(ctx context.Context, fsys fs.FS, paths []string, fn Func, limit int) ([]FileResult, error) {
	logger := zerolog.Ctx(ctx)

	if limit <= 0 {
		limit = DefaultLimit
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res := FileResult{Path: p}
			data, err := fs.ReadFile(fsys, p)
			if err != nil {
				logger.Debug().Err(err).Str("path", p).Msg("skipping unreadable file")
				res.Err = errors.Errorf("reading %s: %w", p, err)
				results[i] = res
				return nil
			}

			res.Text = string(data)
			res.View = fn(gctx, res.Text)
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("scanning files: %w", err)
	}

	return results, nil
}
