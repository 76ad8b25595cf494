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
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/graph"
)

// Expression is a class expression used as a restriction target. It is one
// of *Named, *Union, *Intersection, *Complement or *Opaque.
type Expression interface {
	// Node is the store value the expression was read from.
	Node() quad.Value
	// String is the textual form used in tables and labels.
	String() string
	isExpression()
}

// Named is a reference to a named class or datatype.
type Named struct {
	IRI  quad.IRI
	Name string
}

// Union is an anonymous owl:unionOf.
type Union struct {
	ID      quad.Value
	Members []Expression
}

// Intersection is an anonymous owl:intersectionOf.
type Intersection struct {
	ID      quad.Value
	Members []Expression
}

// Complement is an anonymous owl:complementOf.
type Complement struct {
	ID quad.Value
	Of Expression
}

// Opaque is any shape the compiler does not model. Label is its raw textual
// form.
type Opaque struct {
	ID    quad.Value
	Label string
}

func (e *Named) Node() quad.Value        { return e.IRI }
func (e *Union) Node() quad.Value        { return e.ID }
func (e *Intersection) Node() quad.Value { return e.ID }
func (e *Complement) Node() quad.Value   { return e.ID }
func (e *Opaque) Node() quad.Value       { return e.ID }

func (e *Named) String() string        { return e.Name }
func (e *Union) String() string        { return "(" + joinExpr(e.Members, " or ") + ")" }
func (e *Intersection) String() string { return "(" + joinExpr(e.Members, " and ") + ")" }
func (e *Complement) String() string   { return "not " + e.Of.String() }
func (e *Opaque) String() string       { return e.Label }

func (*Named) isExpression()        {}
func (*Union) isExpression()        {}
func (*Intersection) isExpression() {}
func (*Complement) isExpression()   {}
func (*Opaque) isExpression()       {}

func joinExpr(es []Expression, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

// Expression reads the class expression rooted at v. Nested expressions
// that refer back to an enclosing one become Opaque.
func (o *Ontology) Expression(v quad.Value) Expression {
	return o.expression(v, make(map[quad.Value]struct{}))
}

func (o *Ontology) expression(v quad.Value, stack map[quad.Value]struct{}) Expression {
	switch v := v.(type) {
	case quad.IRI:
		return &Named{IRI: v, Name: o.QName(v)}
	case quad.BNode:
	default:
		return &Opaque{ID: v, Label: o.QName(v)}
	}
	if _, ok := stack[v]; ok {
		o.reportf("class expression %s refers to itself", o.QName(v))
		return &Opaque{ID: v, Label: o.QName(v)}
	}
	stack[v] = struct{}{}
	defer delete(stack, v)

	qs := o.Store
	if head := graph.Value(qs, v, quad.IRI(UnionOf)); head != nil {
		return &Union{ID: v, Members: o.members(head, stack)}
	}
	if head := graph.Value(qs, v, quad.IRI(IntersectionOf)); head != nil {
		return &Intersection{ID: v, Members: o.members(head, stack)}
	}
	if of := graph.Value(qs, v, quad.IRI(ComplementOf)); of != nil {
		return &Complement{ID: v, Of: o.expression(of, stack)}
	}
	if head := graph.Value(qs, v, quad.IRI(OneOf)); head != nil {
		var names []string
		for _, m := range o.List(head) {
			names = append(names, o.QName(m))
		}
		sort.Strings(names)
		return &Opaque{ID: v, Label: "{" + strings.Join(names, ", ") + "}"}
	}
	if graph.Has(qs, v, rdfType, quad.IRI(RestrictionType)) {
		if r, err := o.Restriction(v); err == nil {
			return &Opaque{ID: v, Label: o.describe(r, stack)}
		}
	}
	return &Opaque{ID: v, Label: o.QName(v)}
}

// members resolves an RDF list of class expressions, dropping duplicates
// and sorting by textual form.
func (o *Ontology) members(head quad.Value, stack map[quad.Value]struct{}) []Expression {
	seen := make(map[quad.Value]struct{})
	var out []Expression
	for _, m := range o.List(head) {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, o.expression(m, stack))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// describe renders a nested restriction in Manchester-like syntax.
func (o *Ontology) describe(r *Restriction, stack map[quad.Value]struct{}) string {
	prop := o.QName(r.Property)
	if r.Inverse {
		prop = "inverse " + prop
	}
	var parts []string
	for _, c := range o.constraints(r, stack) {
		parts = append(parts, prop+" "+c)
	}
	return strings.Join(parts, " and ")
}

// constraints renders each constraint of r with its filler, e.g.
// "exactly 2 Engine" or "only (Car or Truck)".
func (o *Ontology) constraints(r *Restriction, stack map[quad.Value]struct{}) []string {
	var out []string
	filler := r.OnClass
	if filler == nil {
		filler = r.OnDataRange
	}
	for _, b := range r.Bounds {
		s := b.String()
		if b.Qualified && filler != nil {
			s += " " + o.expression(filler, stack).String()
		}
		out = append(out, s)
	}
	if r.AllValuesFrom != nil {
		out = append(out, "only "+o.expression(r.AllValuesFrom, stack).String())
	}
	if r.SomeValuesFrom != nil {
		out = append(out, "some "+o.expression(r.SomeValuesFrom, stack).String())
	}
	if r.HasValue != nil {
		out = append(out, "value "+o.QName(r.HasValue))
	}
	if r.HasSelf {
		out = append(out, "Self")
	}
	return out
}
