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

// Package memstore is an indexed in-memory triple store.
package memstore

import (
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/graph"
)

var _ graph.QuadStore = (*QuadStore)(nil)

type primitive struct {
	s, p, o quad.Value
}

// QuadDirectionIndex maps a value to the positions of the quads holding it
// in a given direction.
type QuadDirectionIndex struct {
	index [3]map[quad.Value][]int
}

func NewQuadDirectionIndex() QuadDirectionIndex {
	return QuadDirectionIndex{[...]map[quad.Value][]int{
		quad.Subject - 1:   make(map[quad.Value][]int),
		quad.Predicate - 1: make(map[quad.Value][]int),
		quad.Object - 1:    make(map[quad.Value][]int),
	}}
}

func (qdi QuadDirectionIndex) Get(d quad.Direction, v quad.Value) []int {
	if d < quad.Subject || d > quad.Object {
		panic("illegal direction")
	}
	return qdi.index[d-1][v]
}

func (qdi QuadDirectionIndex) add(d quad.Direction, v quad.Value, id int) {
	qdi.index[d-1][v] = append(qdi.index[d-1][v], id)
}

// QuadStore keeps quads in insertion order. Duplicates are dropped, so the
// store behaves as a set of triples. It is not safe for concurrent writes.
type QuadStore struct {
	quads []quad.Quad
	seen  map[primitive]struct{}
	index QuadDirectionIndex
}

// New creates a store holding the given quads.
func New(quads ...quad.Quad) *QuadStore {
	qs := &QuadStore{
		seen:  make(map[primitive]struct{}, len(quads)),
		index: NewQuadDirectionIndex(),
	}
	for _, q := range quads {
		qs.AddQuad(q)
	}
	return qs
}

// AddQuad inserts q and reports whether it was new. Quads with a nil
// subject, predicate or object are rejected.
func (qs *QuadStore) AddQuad(q quad.Quad) bool {
	if q.Subject == nil || q.Predicate == nil || q.Object == nil {
		return false
	}
	k := primitive{q.Subject, q.Predicate, q.Object}
	if _, ok := qs.seen[k]; ok {
		return false
	}
	qs.seen[k] = struct{}{}
	id := len(qs.quads)
	q.Label = nil
	qs.quads = append(qs.quads, q)
	qs.index.add(quad.Subject, q.Subject, id)
	qs.index.add(quad.Predicate, q.Predicate, id)
	qs.index.add(quad.Object, q.Object, id)
	return true
}

// WriteQuad implements quad.Writer.
func (qs *QuadStore) WriteQuad(q quad.Quad) error {
	qs.AddQuad(q)
	return nil
}

// WriteQuads implements quad.BatchWriter.
func (qs *QuadStore) WriteQuads(buf []quad.Quad) (int, error) {
	for _, q := range buf {
		qs.AddQuad(q)
	}
	return len(buf), nil
}

func (qs *QuadStore) Size() int { return len(qs.quads) }

func (qs *QuadStore) Quads(s, p, o quad.Value) []quad.Quad {
	if s == nil && p == nil && o == nil {
		out := make([]quad.Quad, len(qs.quads))
		copy(out, qs.quads)
		return out
	}
	// Scan the shortest posting list among the bound directions.
	var (
		ids   []int
		found bool
	)
	for d, v := range [...]quad.Value{s, p, o} {
		if v == nil {
			continue
		}
		cur := qs.index.Get(quad.Direction(d+1), v)
		if !found || len(cur) < len(ids) {
			ids, found = cur, true
		}
		if len(ids) == 0 {
			return nil
		}
	}
	var out []quad.Quad
	for _, id := range ids {
		q := qs.quads[id]
		if (s == nil || q.Subject == s) &&
			(p == nil || q.Predicate == p) &&
			(o == nil || q.Object == o) {
			out = append(out, q)
		}
	}
	return out
}
