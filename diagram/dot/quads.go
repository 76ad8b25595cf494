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
	"fmt"
	"io"

	"github.com/cayleygraph/quad"
)

func init() {
	quad.RegisterFormat(quad.Format{
		Name:   "graphviz",
		Ext:    []string{".gv"},
		Writer: func(w io.Writer) quad.WriteCloser { return NewWriter(w) },
	})
}

// NewWriter returns a quad writer drawing the raw triple graph, used to dump
// a loaded ontology for inspection. IRIs of registered vocabularies are
// shortened and literals are drawn as boxes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{e: encoder{w: w}, literals: make(map[string]struct{})}
}

type Writer struct {
	e        encoder
	written  bool
	literals map[string]struct{}
}

func short(v quad.Value) string {
	if iri, ok := v.(quad.IRI); ok {
		if s := iri.Short(); s != iri {
			return string(s)
		}
		return iri.String()
	}
	if s, ok := v.(quad.String); ok {
		return string(s)
	}
	return quad.StringOf(v)
}

func (w *Writer) header() {
	if !w.written {
		w.e.writeString(header)
		w.written = true
	}
}

func (w *Writer) WriteQuad(q quad.Quad) error {
	if w.e.err != nil {
		return w.e.err
	}
	w.header()
	obj := escape(short(q.Object))
	switch q.Object.(type) {
	case quad.IRI, quad.BNode:
	default:
		if _, ok := w.literals[obj]; !ok {
			w.literals[obj] = struct{}{}
			w.e.printf("\t%s [shape=box];\n", obj)
		}
	}
	w.e.printf("\t%s -> %s [ label = %s ];\n", escape(short(q.Subject)), obj, escape(short(q.Predicate)))
	return w.e.err
}

func (w *Writer) WriteQuads(buf []quad.Quad) (int, error) {
	for i, q := range buf {
		if err := w.WriteQuad(q); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

func (w *Writer) Close() error {
	if w.e.err != nil {
		return w.e.err
	}
	w.header()
	w.e.writeString(footer)
	if w.e.err != nil {
		return w.e.err
	}
	w.e.err = fmt.Errorf("closed")
	return nil
}

const header = `digraph owldoc {
`
const footer = "}\n"
