// Copyright 2017 The Cayley Authors. All rights reserved.
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

package dot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cayleygraph/owldoc/clog"
)

// ErrNoRenderer is returned by Render when the graphviz binary is missing.
var ErrNoRenderer = errors.New("graphviz renderer not available")

// Renderer runs the graphviz dot binary to turn DOT files into images. A
// missing binary is logged once; every later call fails fast with
// ErrNoRenderer.
type Renderer struct {
	// Binary is the dot executable, "dot" when empty.
	Binary string
	// Formats are graphviz output formats, e.g. "svg" and "png".
	Formats []string

	once sync.Once
	path string
	err  error
}

func (r *Renderer) lookup() {
	bin := r.Binary
	if bin == "" {
		bin = "dot"
	}
	r.path, r.err = exec.LookPath(bin)
	if r.err != nil {
		clog.Errorf("diagram rendering disabled: %v", r.err)
		r.err = fmt.Errorf("%w: %v", ErrNoRenderer, r.err)
	}
}

// Render writes one image per format next to the DOT file, replacing its
// extension, and returns the written paths.
func (r *Renderer) Render(ctx context.Context, dotFile string) ([]string, error) {
	r.once.Do(r.lookup)
	if r.err != nil {
		return nil, r.err
	}
	base := strings.TrimSuffix(dotFile, filepath.Ext(dotFile))
	var out []string
	for _, format := range r.Formats {
		target := base + "." + format
		cmd := exec.CommandContext(ctx, r.path, "-T"+format, "-o", target, dotFile)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return out, fmt.Errorf("render %s as %s: %v: %s", dotFile, format, err, strings.TrimSpace(stderr.String()))
		}
		if clog.V(2) {
			clog.Infof("rendered %s", target)
		}
		out = append(out, target)
	}
	return out, nil
}
