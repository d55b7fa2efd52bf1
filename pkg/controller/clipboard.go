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

package controller

import (
	"context"

	"github.com/atotto/clipboard"
	"gitlab.com/tozd/go/errors"
)

// SystemClipboard writes to the desktop clipboard
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

func (SystemClipboard) WriteText(ctx context.Context, text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility available")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return errors.Errorf("writing clipboard: %w", err)
	}
	return nil
}
