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
	"errors"
	"fmt"
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/graph"
)

// ErrMalformed is wrapped by errors about restriction shapes that cannot be
// read at all.
var ErrMalformed = errors.New("malformed restriction")

// BoundKind is the kind of a cardinality constraint.
type BoundKind int

const (
	Exact BoundKind = iota
	Min
	Max
)

func (k BoundKind) String() string {
	switch k {
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return "exactly"
}

// Bound is one cardinality constraint of a restriction.
type Bound struct {
	Kind BoundKind
	N    int64
	// Qualified bounds count only values of OnClass or OnDataRange.
	Qualified bool
}

func (b Bound) String() string { return fmt.Sprintf("%s %d", b.Kind, b.N) }

var boundPredicates = []struct {
	pred      quad.IRI
	kind      BoundKind
	qualified bool
}{
	{QualifiedCardinality, Exact, true},
	{MinQualifiedCardinality, Min, true},
	{MaxQualifiedCardinality, Max, true},
	{Cardinality, Exact, false},
	{MinCardinality, Min, false},
	{MaxCardinality, Max, false},
}

// Restriction is an anonymous owl:Restriction a class is a subclass of.
type Restriction struct {
	Node     quad.Value
	Property quad.IRI
	// Inverse is set when the restriction is on the inverse of Property.
	Inverse bool
	Kind    PropertyKind
	Bounds  []Bound

	OnClass        quad.Value
	OnDataRange    quad.Value
	AllValuesFrom  quad.Value
	SomeValuesFrom quad.Value
	HasValue       quad.Value
	HasSelf        bool
}

// Fragments returns the label fragments of every constraint present, e.g.
// "exactly 2", "min 1", "only", "some".
func (r *Restriction) Fragments() []string {
	var out []string
	for _, b := range r.Bounds {
		out = append(out, b.String())
	}
	if r.AllValuesFrom != nil {
		out = append(out, "only")
	}
	if r.SomeValuesFrom != nil {
		out = append(out, "some")
	}
	if r.HasValue != nil {
		out = append(out, "value")
	}
	if r.HasSelf {
		out = append(out, "Self")
	}
	return out
}

// EffectiveCardinality returns the first qualified bound in exact, min, max
// order. It is the cardinality compared by refinement detection.
func (r *Restriction) EffectiveCardinality() (int64, bool) {
	for _, k := range []BoundKind{Exact, Min, Max} {
		for _, b := range r.Bounds {
			if b.Qualified && b.Kind == k {
				return b.N, true
			}
		}
	}
	return 0, false
}

// Restriction reads the restriction rooted at node. Shapes without a usable
// owl:onProperty fail with ErrMalformed; lesser problems drop the offending
// constraint and are sent to the ontology Sink.
func (o *Ontology) Restriction(node quad.Value) (*Restriction, error) {
	qs := o.Store
	r := &Restriction{Node: node}

	props := graph.Objects(qs, node, quad.IRI(OnProperty))
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: %s has no owl:onProperty", ErrMalformed, o.QName(node))
	}
	if len(props) > 1 {
		graph.SortValues(props)
		o.reportf("restriction %s has %d owl:onProperty values, using %s",
			o.QName(node), len(props), o.QName(props[0]))
	}
	switch p := props[0].(type) {
	case quad.IRI:
		r.Property = p
	case quad.BNode:
		inv, ok := graph.Value(qs, p, quad.IRI(InverseOf)).(quad.IRI)
		if !ok {
			return nil, fmt.Errorf("%w: %s restricts an anonymous property", ErrMalformed, o.QName(node))
		}
		r.Property, r.Inverse = inv, true
	default:
		return nil, fmt.Errorf("%w: %s restricts literal %s", ErrMalformed, o.QName(node), o.QName(p))
	}
	r.Kind = o.PropertyKind(r.Property)

	r.OnClass = graph.Value(qs, node, quad.IRI(OnClass))
	r.OnDataRange = graph.Value(qs, node, quad.IRI(OnDataRange))
	if r.OnClass != nil && r.OnDataRange != nil {
		if r.Kind == KindDatatype {
			o.reportf("restriction on %s has both owl:onClass and owl:onDataRange, dropping owl:onClass", o.QName(r.Property))
			r.OnClass = nil
		} else {
			o.reportf("restriction on %s has both owl:onClass and owl:onDataRange, dropping owl:onDataRange", o.QName(r.Property))
			r.OnDataRange = nil
		}
	}

	for _, bp := range boundPredicates {
		for _, v := range graph.Objects(qs, node, bp.pred) {
			n, ok := literalInt(v)
			if !ok || n < 0 {
				o.reportf("restriction on %s: ignoring %s value %s, not a non-negative integer",
					o.QName(r.Property), o.QName(bp.pred), o.QName(v))
				continue
			}
			b := Bound{Kind: bp.kind, N: n, Qualified: bp.qualified}
			if b.Qualified && r.OnClass == nil && r.OnDataRange == nil {
				o.reportf("restriction on %s: qualified cardinality without owl:onClass, read as unqualified",
					o.QName(r.Property))
				b.Qualified = false
			}
			r.Bounds = append(r.Bounds, b)
		}
	}

	r.AllValuesFrom = graph.Value(qs, node, quad.IRI(AllValuesFrom))
	r.SomeValuesFrom = graph.Value(qs, node, quad.IRI(SomeValuesFrom))
	r.HasValue = graph.Value(qs, node, quad.IRI(HasValue))
	if v := graph.Value(qs, node, quad.IRI(HasSelf)); v != nil {
		r.HasSelf = isTrue(v)
	}
	return r, nil
}

// Restrictions returns the restrictions the class is directly a subclass
// of, sorted by property. Unreadable ones are reported and skipped.
func (c *Class) Restrictions() []*Restriction {
	o := c.o
	if rs, ok := o.restrictions[c.Identifier]; ok {
		return rs
	}
	var out []*Restriction
	for _, v := range graph.Objects(o.Store, c.Identifier, rdfsSubClassOf) {
		if !graph.Has(o.Store, v, rdfType, quad.IRI(RestrictionType)) {
			continue
		}
		r, err := o.Restriction(v)
		if err != nil {
			o.reportf("class %s: %v", c.QName, err)
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Property != b.Property {
			return o.QName(a.Property) < o.QName(b.Property)
		}
		if a.Inverse != b.Inverse {
			return !a.Inverse
		}
		return quad.StringOf(a.Node) < quad.StringOf(b.Node)
	})
	o.restrictions[c.Identifier] = out
	return out
}
