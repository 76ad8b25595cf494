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

// Package graph defines the read-only triple store view the ontology
// compiler works against.
package graph

import (
	"io"
	"sort"

	"github.com/cayleygraph/quad"
)

// QuadStore is a read-only, pattern-matchable set of triples.
//
// Quads returns all quads matching the pattern in insertion order. A nil
// value in any position is a wildcard. Labels are ignored; ontologies are
// loaded into the default graph.
type QuadStore interface {
	Quads(s, p, o quad.Value) []quad.Quad
	// Size returns the number of distinct quads in the store.
	Size() int
}

// Objects returns the distinct objects of (s, p, *) in insertion order.
func Objects(qs QuadStore, s, p quad.Value) []quad.Value {
	return distinct(qs.Quads(s, p, nil), quad.Object)
}

// Subjects returns the distinct subjects of (*, p, o) in insertion order.
func Subjects(qs QuadStore, p, o quad.Value) []quad.Value {
	return distinct(qs.Quads(nil, p, o), quad.Subject)
}

// Value returns the first object of (s, p, *), or nil.
func Value(qs QuadStore, s, p quad.Value) quad.Value {
	if res := qs.Quads(s, p, nil); len(res) != 0 {
		return res[0].Object
	}
	return nil
}

// Has reports whether the exact triple exists.
func Has(qs QuadStore, s, p, o quad.Value) bool {
	return len(qs.Quads(s, p, o)) != 0
}

func distinct(quads []quad.Quad, d quad.Direction) []quad.Value {
	if len(quads) == 0 {
		return nil
	}
	seen := make(map[quad.Value]struct{}, len(quads))
	out := make([]quad.Value, 0, len(quads))
	for _, q := range quads {
		v := q.Get(d)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SortValues sorts values by their N-Quads string form.
func SortValues(vals []quad.Value) {
	sort.Slice(vals, func(i, j int) bool {
		return quad.StringOf(vals[i]) < quad.StringOf(vals[j])
	})
}

// NewQuadStoreReader returns a reader over every quad of the store.
func NewQuadStoreReader(qs QuadStore) quad.ReadSkipCloser {
	return &quadReader{quads: qs.Quads(nil, nil, nil)}
}

type quadReader struct {
	quads []quad.Quad
	i     int
}

func (r *quadReader) ReadQuad() (quad.Quad, error) {
	if r.i >= len(r.quads) {
		return quad.Quad{}, io.EOF
	}
	q := r.quads[r.i]
	r.i++
	return q, nil
}

func (r *quadReader) SkipQuad() error {
	if r.i >= len(r.quads) {
		return io.EOF
	}
	r.i++
	return nil
}

func (r *quadReader) Close() error { return nil }
