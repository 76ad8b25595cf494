// Copyright 2014 The Cayley Authors. All rights reserved.
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

package load

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"
)

const (
	gzipMagic  = "\x1f\x8b"
	b2zipMagic = "BZh"
)

// Decompress detects gzip or bzip2 input by its magic bytes and returns a
// reader over the plain document. Input shorter than a magic number is
// returned as is; empty input yields io.EOF.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	buf, err := br.Peek(3)
	if err == io.EOF && len(buf) > 0 {
		return br, nil
	} else if err != nil {
		return nil, err
	}
	switch {
	case bytes.Equal(buf[:2], []byte(gzipMagic)):
		return gzip.NewReader(br)
	case bytes.Equal(buf[:3], []byte(b2zipMagic)):
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}

// formatExt returns the lower-cased document extension of a path, ignoring
// a trailing compression extension.
func formatExt(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" || ext == ".bz2" {
		path = strings.TrimSuffix(path, filepath.Ext(path))
		ext = strings.ToLower(filepath.Ext(path))
	}
	return ext
}
