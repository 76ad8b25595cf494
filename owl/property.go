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
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/xsd"

	"github.com/cayleygraph/owldoc/graph"
)

// ErrNoRange is returned by Property.Range when no rdfs:range is declared.
var ErrNoRange = errors.New("no range declared")

// PropertyKind tells object-valued properties from literal-valued ones.
type PropertyKind int

const (
	KindObject PropertyKind = iota
	KindDatatype
)

func (k PropertyKind) String() string {
	if k == KindDatatype {
		return "datatype_property"
	}
	return "object_property"
}

// Property is a named OWL property.
type Property struct {
	Identifier quad.IRI
	QName      string
	Kind       PropertyKind
	o          *Ontology
}

// GetProperty returns the property with the given identifier. Undeclared
// properties are accepted and classified as object properties.
func GetProperty(ctx context.Context, o *Ontology, id quad.IRI) (*Property, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.property(id), nil
}

func (o *Ontology) property(id quad.IRI) *Property {
	return &Property{Identifier: id, QName: o.QName(id), Kind: o.PropertyKind(id), o: o}
}

// Range returns the first declared rdfs:range.
func (p *Property) Range() (quad.Value, error) {
	if v := graph.Value(p.o.Store, p.Identifier, rdfsRange); v != nil {
		return v, nil
	}
	return nil, ErrNoRange
}

// Domain returns the declared rdfs:domain values.
func (p *Property) Domain() []quad.Value {
	return graph.Objects(p.o.Store, p.Identifier, rdfsDomain)
}

// RangeName returns the local display name of the range datatype used in
// attribute lines, defaulting to xsd:string.
func (p *Property) RangeName() string {
	r, err := p.Range()
	if err != nil {
		r = quad.IRI(xsd.NS + "string")
	}
	return LocalPart(p.o.QName(r))
}

// LocalPart strips the prefix of a qualified name, or the namespace of a
// full IRI.
func LocalPart(name string) string {
	seps := ":"
	if strings.Contains(name, "://") {
		seps = "/#"
	}
	if i := strings.LastIndexAny(name, seps); i >= 0 && i+1 < len(name) {
		return name[i+1:]
	}
	return name
}

func sortProperties(ps []*Property) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].QName != ps[j].QName {
			return ps[i].QName < ps[j].QName
		}
		return ps[i].Identifier < ps[j].Identifier
	})
}
