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
	"context"
	"errors"
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/graph"
)

// ErrNotClass is returned when an identifier is not a declared class.
var ErrNotClass = errors.New("not a declared class")

// Class is a named OWL class of an ontology.
type Class struct {
	Identifier quad.IRI
	// QName is the display name, as produced by Namespaces.QName.
	QName string
	o     *Ontology
}

// GetClass returns the class with the given identifier.
func GetClass(ctx context.Context, o *Ontology, id quad.IRI) (*Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !o.IsClass(id) {
		return nil, fmt.Errorf("%s: %w", o.QName(id), ErrNotClass)
	}
	return o.class(id), nil
}

// Ontology returns the ontology the class was read from.
func (c *Class) Ontology() *Ontology { return c.o }

func (c *Class) String() string { return c.QName }

// Abstract reports whether the class carries a "true" abstract annotation,
// either the ontology's own or Protégé's.
func (c *Class) Abstract() bool {
	for _, p := range c.o.abstractPredicates() {
		for _, v := range graph.Objects(c.o.Store, c.Identifier, p) {
			if isTrue(v) {
				return true
			}
		}
	}
	return false
}

// Superclasses returns the direct named superclasses that are declared
// classes. owl:Thing is never included.
func (c *Class) Superclasses() []*Class {
	var out []*Class
	for _, v := range graph.Objects(c.o.Store, c.Identifier, rdfsSubClassOf) {
		iri, ok := v.(quad.IRI)
		if !ok || iri == quad.IRI(Thing) || iri == c.Identifier || !c.o.IsClass(iri) {
			continue
		}
		out = append(out, c.o.class(iri))
	}
	sortClasses(out)
	return out
}

// Ancestors returns the transitive superclass closure, without the class
// itself. Cycles in the hierarchy are tolerated.
func (c *Class) Ancestors() []*Class {
	visited := map[quad.IRI]struct{}{c.Identifier: {}}
	var out []*Class
	queue := c.Superclasses()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur.Identifier]; ok {
			continue
		}
		visited[cur.Identifier] = struct{}{}
		out = append(out, cur)
		queue = append(queue, cur.Superclasses()...)
	}
	sortClasses(out)
	return out
}

// SubClasses returns the direct named subclasses.
func (c *Class) SubClasses() []*Class {
	var out []*Class
	for _, v := range graph.Subjects(c.o.Store, rdfsSubClassOf, c.Identifier) {
		iri, ok := v.(quad.IRI)
		if !ok || iri == c.Identifier || !c.o.IsClass(iri) {
			continue
		}
		out = append(out, c.o.class(iri))
	}
	sortClasses(out)
	return out
}

// Descendants returns the transitive subclass closure, without the class
// itself.
func (c *Class) Descendants() []*Class {
	visited := map[quad.IRI]struct{}{c.Identifier: {}}
	var out []*Class
	queue := c.SubClasses()
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur.Identifier]; ok {
			continue
		}
		visited[cur.Identifier] = struct{}{}
		out = append(out, cur)
		queue = append(queue, cur.SubClasses()...)
	}
	sortClasses(out)
	return out
}

// Disjoint returns the classes declared disjoint with this one, through
// owl:disjointWith in either direction or owl:AllDisjointClasses.
func (c *Class) Disjoint() []quad.Value {
	qs := c.o.Store
	seen := make(map[quad.Value]struct{})
	var out []quad.Value
	add := func(v quad.Value) {
		if v == c.Identifier {
			return
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range graph.Objects(qs, c.Identifier, quad.IRI(DisjointWith)) {
		add(v)
	}
	for _, v := range graph.Subjects(qs, quad.IRI(DisjointWith), c.Identifier) {
		add(v)
	}
	for _, axiom := range graph.Subjects(qs, rdfType, quad.IRI(AllDisjointClassesType)) {
		members := c.o.List(graph.Value(qs, axiom, quad.IRI(Members)))
		var in bool
		for _, m := range members {
			if m == c.Identifier {
				in = true
				break
			}
		}
		if in {
			for _, m := range members {
				add(m)
			}
		}
	}
	graph.SortValues(out)
	return out
}

// Properties returns the properties whose rdfs:domain is this class.
func (c *Class) Properties() []*Property {
	var out []*Property
	for _, v := range graph.Subjects(c.o.Store, rdfsDomain, c.Identifier) {
		if iri, ok := v.(quad.IRI); ok {
			out = append(out, c.o.property(iri))
		}
	}
	sortProperties(out)
	return out
}

// Pattern returns the design pattern the class is annotated with, if any.
func (c *Class) Pattern() (string, bool) {
	return c.o.Literal(c.Identifier, quad.IRI(XSDPattern))
}
