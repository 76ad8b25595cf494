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

package owl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/graph"
	"github.com/cayleygraph/owldoc/voc/dc"
	"github.com/cayleygraph/owldoc/voc/dcterms"
	"github.com/cayleygraph/owldoc/voc/skos"
)

// Sink receives recoverable problems found while reading an ontology.
type Sink interface {
	Addf(format string, args ...interface{})
}

// Ontology is a read-only view over one loaded ontology document. It caches
// derived data and is not safe for concurrent use.
type Ontology struct {
	Store graph.QuadStore
	// IRI of the ontology, if the document declares one.
	IRI quad.IRI
	NS  *Namespaces
	// Sink, if set, receives malformed-shape diagnostics.
	Sink Sink

	restrictions map[quad.IRI][]*Restriction
	classes      []*Class
}

// New wraps a store. The default namespace of ns decides which classes are
// local to the ontology.
func New(qs graph.QuadStore, ns *Namespaces) *Ontology {
	if ns == nil {
		ns = NewNamespaces("", WellKnownPrefixes())
	}
	return &Ontology{
		Store:        qs,
		NS:           ns,
		restrictions: make(map[quad.IRI][]*Restriction),
	}
}

func (o *Ontology) reportf(format string, args ...interface{}) {
	clog.Warningf(format, args...)
	if o.Sink != nil {
		o.Sink.Addf(format, args...)
	}
}

// QName returns the display form of any store value: a qualified name for
// IRIs, "_:id" for blank nodes and the lexical form for literals.
func (o *Ontology) QName(v quad.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case quad.IRI:
		return o.NS.QName(string(v))
	case quad.BNode:
		return v.String()
	}
	if s, ok := LiteralText(v); ok {
		return s
	}
	return quad.StringOf(v)
}

// IsClass reports whether v is declared as an OWL or RDFS class.
func (o *Ontology) IsClass(v quad.Value) bool {
	return graph.Has(o.Store, v, rdfType, quad.IRI(ClassType)) ||
		graph.Has(o.Store, v, rdfType, rdfsClass)
}

// Classes returns every named class declared in the document, sorted by
// display name.
func (o *Ontology) Classes() []*Class {
	if o.classes != nil {
		return o.classes
	}
	seen := make(map[quad.IRI]struct{})
	var out []*Class
	for _, typ := range []quad.Value{quad.IRI(ClassType), rdfsClass} {
		for _, v := range graph.Subjects(o.Store, rdfType, typ) {
			iri, ok := v.(quad.IRI)
			if !ok || iri == quad.IRI(Thing) || iri == quad.IRI(Nothing) {
				continue
			}
			if _, ok := seen[iri]; ok {
				continue
			}
			seen[iri] = struct{}{}
			out = append(out, o.class(iri))
		}
	}
	sortClasses(out)
	o.classes = out
	return out
}

// LocalClasses returns the classes inside the default namespace. When the
// namespace matches nothing, every declared class is considered local.
func (o *Ontology) LocalClasses() []*Class {
	all := o.Classes()
	var out []*Class
	for _, c := range all {
		if o.NS.InDefault(string(c.Identifier)) {
			out = append(out, c)
		}
	}
	if len(out) == 0 && len(all) != 0 {
		clog.Infof("no class inside namespace %q, documenting all %d classes", o.NS.Default, len(all))
		return all
	}
	return out
}

func (o *Ontology) class(iri quad.IRI) *Class {
	return &Class{Identifier: iri, QName: o.QName(iri), o: o}
}

func sortClasses(cs []*Class) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].QName != cs[j].QName {
			return cs[i].QName < cs[j].QName
		}
		return cs[i].Identifier < cs[j].Identifier
	})
}

// PropertyKind classifies a property. Properties without a datatype
// declaration are object properties.
func (o *Ontology) PropertyKind(p quad.Value) PropertyKind {
	if graph.Has(o.Store, p, rdfType, quad.IRI(DatatypePropertyType)) {
		return KindDatatype
	}
	return KindObject
}

// Literal returns the text of the first literal found under the given
// predicates, tried in order.
func (o *Ontology) Literal(s quad.Value, preds ...quad.IRI) (string, bool) {
	for _, p := range preds {
		for _, v := range graph.Objects(o.Store, s, p) {
			if text, ok := LiteralText(v); ok {
				return text, true
			}
		}
	}
	return "", false
}

// Title returns the ontology title.
func (o *Ontology) Title() string {
	if o.IRI != "" {
		if t, ok := o.Literal(o.IRI, dcterms.Title, dc.Title, rdfsLabel); ok {
			return t
		}
	}
	return "Untitled Ontology"
}

// Description returns the ontology description, or an empty string.
func (o *Ontology) Description() string {
	if o.IRI == "" {
		return ""
	}
	d, _ := o.Literal(o.IRI, descriptionPredicates...)
	return d
}

var descriptionPredicates = []quad.IRI{
	dcterms.Description, dc.Description, skos.Definition, rdfsComment,
}

func (o *Ontology) abstractPredicates() []quad.IRI {
	preds := []quad.IRI{quad.IRI(ProtegeAbstract)}
	if d := o.NS.Default; d != "" {
		preds = append(preds, quad.IRI(join(d, "abstract")))
	}
	return preds
}

// LiteralText returns the lexical form of a literal value.
func LiteralText(v quad.Value) (string, bool) {
	switch v := v.(type) {
	case quad.String:
		return string(v), true
	case quad.LangString:
		return string(v.Value), true
	case quad.TypedString:
		return string(v.Value), true
	case quad.Int, quad.Float, quad.Bool:
		return fmt.Sprint(v.Native()), true
	}
	return "", false
}

func literalInt(v quad.Value) (int64, bool) {
	switch v := v.(type) {
	case quad.Int:
		return int64(v), true
	case quad.Float:
		if f := float64(v); f == float64(int64(f)) {
			return int64(f), true
		}
		return 0, false
	}
	s, ok := LiteralText(v)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func isTrue(v quad.Value) bool {
	if b, ok := v.(quad.Bool); ok {
		return bool(b)
	}
	s, ok := LiteralText(v)
	return ok && strings.EqualFold(strings.TrimSpace(s), "true")
}

// List returns the members of an RDF collection. Broken or cyclic lists are
// cut at the first repeated cell.
func (o *Ontology) List(head quad.Value) []quad.Value {
	var out []quad.Value
	seen := make(map[quad.Value]struct{})
	for head != nil && head != rdfNil {
		if _, ok := seen[head]; ok {
			o.reportf("cyclic RDF list at %s", o.QName(head))
			break
		}
		seen[head] = struct{}{}
		if first := graph.Value(o.Store, head, rdfFirst); first != nil {
			out = append(out, first)
		}
		head = graph.Value(o.Store, head, rdfRest)
	}
	return out
}
