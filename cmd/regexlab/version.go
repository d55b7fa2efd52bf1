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
	"runtime"
	"runtime/debug"
	"strings"
)

// version is stamped by the release build with -ldflags "-X main.version=..."
var version = ""

// buildInfo is what "regexlab version" reports
type buildInfo struct {
	Version  string
	Revision string
	Time     string
	Dirty    bool
	Go       string
	Platform string
}

func readBuildInfo() buildInfo {
	bi := buildInfo{
		Version:  "dev",
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	switch {
	case version != "":
		bi.Version = version
	case ok && info.Main.Version != "" && info.Main.Version != "(devel)":
		bi.Version = info.Main.Version
	}
	if !ok {
		return bi
	}

	vcs := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		vcs[s.Key] = s.Value
	}
	bi.Revision = vcs["vcs.revision"]
	bi.Time = vcs["vcs.time"]
	bi.Dirty = vcs["vcs.modified"] == "true"

	return bi
}

func (b buildInfo) String() string {
	rev := b.Revision
	if b.Dirty {
		rev += " (modified)"
	}

	var sb strings.Builder
	sb.WriteString("🔎 regexlab version info:\n")
	for _, kv := range [][2]string{
		{"Version", b.Version},
		{"Revision", rev},
		{"Built", b.Time},
		{"Go", b.Go},
		{"Platform", b.Platform},
	} {
		fmt.Fprintf(&sb, "%-10s %s\n", kv[0]+":", kv[1])
	}
	return sb.String()
}
