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

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/voc/skos"
)

// Row is one line of a class formalization table.
type Row struct {
	Property   string
	Constraint string
	Refined    bool
}

// Formalization lists the class axioms as (property, constraint) rows:
// one per restriction constraint, plus subClassOf and disjointWith rows.
// Rows are sorted by property, then constraint.
func (c *Class) Formalization() []Row {
	var rows []Row
	for _, s := range c.Superclasses() {
		rows = append(rows, Row{Property: "subClassOf", Constraint: s.QName})
	}
	for _, d := range c.Disjoint() {
		rows = append(rows, Row{Property: "disjointWith", Constraint: c.o.QName(d)})
	}
	for _, r := range c.Restrictions() {
		prop := c.o.QName(r.Property)
		if r.Inverse {
			prop = "inverse " + prop
		}
		refined := c.IsRefinement(r)
		for _, text := range c.o.constraints(r, make(map[quad.Value]struct{})) {
			rows = append(rows, Row{Property: prop, Constraint: text, Refined: refined})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Property != rows[j].Property {
			return rows[i].Property < rows[j].Property
		}
		return rows[i].Constraint < rows[j].Constraint
	})
	return rows
}

// Usage records a restriction of another class that targets a class.
type Usage struct {
	Class      string
	Property   string
	Constraint string
}

// UsedBy lists the restrictions of declared classes that point at target,
// directly or through a union, intersection or complement.
func (o *Ontology) UsedBy(target quad.IRI) []Usage {
	var out []Usage
	for _, c := range o.Classes() {
		for _, r := range c.Restrictions() {
			var texts []string
			for _, v := range []quad.Value{r.OnClass, r.AllValuesFrom, r.SomeValuesFrom} {
				if v != nil && mentions(o.Expression(v), target) {
					texts = o.constraints(r, make(map[quad.Value]struct{}))
					break
				}
			}
			for _, t := range texts {
				out = append(out, Usage{Class: c.QName, Property: o.QName(r.Property), Constraint: t})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		if a.Property != b.Property {
			return a.Property < b.Property
		}
		return a.Constraint < b.Constraint
	})
	return out
}

func mentions(e Expression, target quad.IRI) bool {
	switch e := e.(type) {
	case *Named:
		return e.IRI == target
	case *Union:
		for _, m := range e.Members {
			if mentions(m, target) {
				return true
			}
		}
	case *Intersection:
		for _, m := range e.Members {
			if mentions(m, target) {
				return true
			}
		}
	case *Complement:
		return mentions(e.Of, target)
	}
	return false
}

// Description returns the first of dcterms:description, dc:description,
// skos:definition and rdfs:comment.
func (c *Class) Description() string {
	d, _ := c.o.Literal(c.Identifier, descriptionPredicates...)
	return d
}

// Note returns the skos:note of the class.
func (c *Class) Note() string {
	n, _ := c.o.Literal(c.Identifier, skos.Note)
	return n
}

// Example returns the skos:example of the class.
func (c *Class) Example() string {
	e, _ := c.o.Literal(c.Identifier, skos.Example)
	return e
}

// Annotation is a literal-valued statement about a class.
type Annotation struct {
	Property string
	Value    string
}

// Annotations returns the literal-valued statements not already shown
// elsewhere on a class page, sorted by property then value.
func (c *Class) Annotations() []Annotation {
	skip := map[quad.Value]struct{}{
		quad.IRI(skos.Note):    {},
		quad.IRI(skos.Example): {},
		quad.IRI(XSDPattern):   {},
	}
	for _, p := range descriptionPredicates {
		skip[p] = struct{}{}
	}
	for _, p := range c.o.abstractPredicates() {
		skip[p] = struct{}{}
	}
	var out []Annotation
	for _, q := range c.o.Store.Quads(c.Identifier, nil, nil) {
		if _, ok := skip[q.Predicate]; ok {
			continue
		}
		text, ok := LiteralText(q.Object)
		if !ok {
			continue
		}
		out = append(out, Annotation{Property: c.o.QName(q.Predicate), Value: text})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Property != out[j].Property {
			return out[i].Property < out[j].Property
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Label returns the rdfs:label or skos:prefLabel of the class.
func (c *Class) Label() (string, bool) {
	return c.o.Literal(c.Identifier, rdfsLabel, skos.PrefLabel)
}
