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

// Package owl contains constants of the Web Ontology Language (OWL)
package owl

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/cayleygraph/owldoc/voc"
)

func init() {
	voc.Register(NSPrefix, NS)
}

const (
	NS       = `http://www.w3.org/2002/07/owl#`
	NSPrefix = `owl:`
)

// Classes
const (
	OntologyType           = NS + "Ontology"
	ClassType              = NS + "Class"
	RestrictionType        = NS + "Restriction"
	ObjectPropertyType     = NS + "ObjectProperty"
	DatatypePropertyType   = NS + "DatatypeProperty"
	AnnotationPropertyType = NS + "AnnotationProperty"
	NamedIndividualType    = NS + "NamedIndividual"
	AllDisjointClassesType = NS + "AllDisjointClasses"
	Thing                  = NS + "Thing"
	Nothing                = NS + "Nothing"
)

// Properties
const (
	Imports                 = NS + "imports"
	VersionIRI              = NS + "versionIRI"
	EquivalentClass         = NS + "equivalentClass"
	DisjointWith            = NS + "disjointWith"
	Members                 = NS + "members"
	UnionOf                 = NS + "unionOf"
	IntersectionOf          = NS + "intersectionOf"
	ComplementOf            = NS + "complementOf"
	OneOf                   = NS + "oneOf"
	InverseOf               = NS + "inverseOf"
	OnProperty              = NS + "onProperty"
	OnClass                 = NS + "onClass"
	OnDataRange             = NS + "onDataRange"
	AllValuesFrom           = NS + "allValuesFrom"
	SomeValuesFrom          = NS + "someValuesFrom"
	HasValue                = NS + "hasValue"
	HasSelf                 = NS + "hasSelf"
	Cardinality             = NS + "cardinality"
	MinCardinality          = NS + "minCardinality"
	MaxCardinality          = NS + "maxCardinality"
	QualifiedCardinality    = NS + "qualifiedCardinality"
	MinQualifiedCardinality = NS + "minQualifiedCardinality"
	MaxQualifiedCardinality = NS + "maxQualifiedCardinality"
)

// ProtegeAbstract is the annotation Protégé uses to flag abstract classes.
const ProtegeAbstract = `http://protege.stanford.edu/ontologies/metadata#abstract`

// XSDPattern is the annotation grouping classes into design patterns.
const XSDPattern = `http://www.w3.org/2001/XMLSchema#pattern`

var (
	rdfType        = quad.IRI(rdf.NS + "type")
	rdfFirst       = quad.IRI(rdf.NS + "first")
	rdfRest        = quad.IRI(rdf.NS + "rest")
	rdfNil         = quad.IRI(rdf.NS + "nil")
	rdfsClass      = quad.IRI(rdfs.NS + "Class")
	rdfsSubClassOf = quad.IRI(rdfs.NS + "subClassOf")
	rdfsRange      = quad.IRI(rdfs.NS + "range")
	rdfsDomain     = quad.IRI(rdfs.NS + "domain")
	rdfsLabel      = quad.IRI(rdfs.NS + "label")
	rdfsComment    = quad.IRI(rdfs.NS + "comment")
)
