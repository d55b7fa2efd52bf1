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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexlab/pkg/library"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".hcl")
}

// 📝 Parse parses the config from HCL. Library entries are labeled blocks:
//
//	library "Word" {
//	  pattern = "\\w+"
//	  flags   = "g"
//	}
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "regexlab.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	type hclConfig struct {
		Engine       string `hcl:"engine,optional"`
		MatchTimeout string `hcl:"match_timeout,optional"`
		PrefsPath    string `hcl:"prefs_path,optional"`
		Server       *struct {
			Addr    string `hcl:"addr,optional"`
			BaseURL string `hcl:"base_url,optional"`
		} `hcl:"server,block"`
		Library []struct {
			Name    string `hcl:"name,label"`
			Pattern string `hcl:"pattern"`
			Flags   string `hcl:"flags,optional"`
		} `hcl:"library,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Engine:       hclCfg.Engine,
		MatchTimeout: hclCfg.MatchTimeout,
		PrefsPath:    hclCfg.PrefsPath,
	}
	if hclCfg.Server != nil {
		cfg.Server = ServerConfig{Addr: hclCfg.Server.Addr, BaseURL: hclCfg.Server.BaseURL}
	}
	for _, e := range hclCfg.Library {
		cfg.Library = append(cfg.Library, library.Entry{Name: e.Name, Pattern: e.Pattern, Flags: e.Flags})
	}

	return cfg, nil
}
