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

package server

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/walteh/regexlab/pkg/cheatsheet"
	"github.com/walteh/regexlab/pkg/controller"
	"github.com/walteh/regexlab/pkg/engine"
	"github.com/walteh/regexlab/pkg/highlight"
	"github.com/walteh/regexlab/pkg/library"
	"github.com/walteh/regexlab/pkg/prefs"
	"github.com/walteh/regexlab/pkg/share"
)

// maxBody caps request bodies; sample texts are pasted by hand
const maxBody = 1 << 20

type pageData struct {
	App      controller.AppState
	View     controller.View
	HTML     template.HTML
	Icon     string
	Share    string
	Library  []library.Entry
	Sections []cheatsheet.Section
}

type evaluateResponse struct {
	View  controller.View `json:"view"`
	HTML  template.HTML   `json:"html"`
	Share string          `json:"share"`
}

type exampleRequest struct {
	State share.State `json:"state"`
	Name  string      `json:"name"`
}

type exampleResponse struct {
	State share.State `json:"state"`
	Toast string      `json:"toast"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type themeResponse struct {
	Theme prefs.Theme `json:"theme"`
	Icon  string      `json:"icon"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := hlog.FromRequest(r)

	patch, err := share.Decode(r.URL.RawQuery)
	if err != nil {
		logger.Debug().Err(err).Msg("ignoring malformed share query")
		patch = share.Patch{}
	}
	st := patch.Apply(DefaultState)

	theme, err := prefs.LoadTheme(ctx, s.opts.Store)
	if err != nil {
		logger.Warn().Err(err).Msg("loading theme")
	}

	view := s.ctrl.Run(ctx, st)
	shareURL, _, err := s.ctrl.Share(ctx, s.opts.BaseURL, st, nil)
	if err != nil {
		logger.Debug().Err(err).Msg("building share url")
	}

	data := pageData{
		App:      controller.AppState{Theme: theme, State: st},
		View:     view,
		HTML:     highlight.HTML(view.Segments),
		Icon:     theme.Icon(),
		Share:    shareURL,
		Library:  s.ctrl.Library().All(),
		Sections: cheatsheet.Sections(),
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logger.Error().Err(err).Msg("rendering page")
		http.Error(w, "rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var st share.State
	if !decode(w, r, &st) {
		return
	}
	st.Mode = engine.ParseMode(string(st.Mode))

	ctx := r.Context()
	view := s.ctrl.Run(ctx, st)
	shareURL, _, err := s.ctrl.Share(ctx, s.opts.BaseURL, st, nil)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("building share url")
	}

	writeJSON(w, r, http.StatusOK, evaluateResponse{
		View:  view,
		HTML:  highlight.HTML(view.Segments),
		Share: shareURL,
	})
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	var req exampleRequest
	if !decode(w, r, &req) {
		return
	}

	st, toast, err := s.ctrl.LoadExample(req.State, req.Name)
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, r, http.StatusOK, exampleResponse{State: st, Toast: toast})
}

// handleTheme sets the theme named in the body, or toggles when none is given
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req themeRequest
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}

	current, err := prefs.LoadTheme(ctx, s.opts.Store)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("loading theme")
	}

	next := current.Toggle()
	if req.Theme != "" {
		t, err := prefs.ParseTheme(req.Theme)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		next = t
	}

	if err := prefs.SaveTheme(ctx, s.opts.Store, next); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("saving theme")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "saving theme"})
		return
	}

	writeJSON(w, r, http.StatusOK, themeResponse{Theme: next, Icon: next.Icon()})
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.ctrl.Library().All())
}

func (s *Server) handleCheatSheet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, cheatsheet.Filter(r.URL.Query().Get("q")))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("bad request body")
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("writing response")
	}
}
