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

// Package server serves the browser UI on a local address.
package server

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/regexlab/pkg/controller"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/prefs"
	"github.com/walteh/regexlab/pkg/share"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const shutdownTimeout = 5 * time.Second

// DefaultState is what the page shows before any link or input
var DefaultState = share.State{
	Pattern: `[\w.]+@[\w.]+\.\w+`,
	Flags:   "g",
	Text:    "Contact hello@example.com or support@regexlab.dev for help.",
	Mode:    engine.ModeMatch,
}

// ⚙️ Options configure a Server
type Options struct {
	Addr    string      // listen address
	BaseURL string      // prefix of shared links
	Store   prefs.Store // theme persistence
}

// 🌐 Server is the browser UI
type Server struct {
	ctrl *controller.Controller
	opts Options
	tmpl *template.Template
	mux  *http.ServeMux
}

// 🏭 New builds a server around ctrl
func New(ctrl *controller.Controller, opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server needs a preference store")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "http://" + opts.Addr + "/"
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"flag": func(r rune) string { return string(r) },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Errorf("parsing templates: %w", err)
	}

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, errors.Errorf("opening static files: %w", err)
	}

	s := &Server{ctrl: ctrl, opts: opts, tmpl: tmpl, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /api/evaluate", s.handleEvaluate)
	s.mux.HandleFunc("POST /api/example", s.handleExample)
	s.mux.HandleFunc("POST /api/theme", s.handleTheme)
	s.mux.HandleFunc("GET /api/library", s.handleLibrary)
	s.mux.HandleFunc("GET /api/cheatsheet", s.handleCheatSheet)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	return s, nil
}

// Handler returns the routes wrapped with request logging
func (s *Server) Handler(logger zerolog.Logger) http.Handler {
	h := http.Handler(s.mux)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	h = hlog.NewHandler(logger)(h)
	return h
}

// 🚀 ListenAndServe listens on the configured address and serves until ctx is done
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.Errorf("listening on %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := zerolog.Ctx(ctx)

	srv := &http.Server{
		Handler:           s.Handler(*logger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("serving browser UI")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Errorf("shutting down: %w", err)
		}
		logger.Info().Msg("browser UI stopped")
		return nil
	})

	return g.Wait()
}
