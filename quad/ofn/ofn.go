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

// Package ofn reads OWL 2 Functional-Style Syntax documents and maps them to
// RDF triples following the OWL 2 RDF mapping.
package ofn

import (
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/cayleygraph/quad/voc/xsd"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/owl"
)

func init() {
	quad.RegisterFormat(quad.Format{
		Name:   "ofn",
		Ext:    []string{".ofn", ".owf"},
		Mime:   []string{"text/owl-functional"},
		Reader: func(r io.Reader) quad.ReadCloser { return NewReader(r) },
	})
}

// Reader decodes a whole document on the first call to ReadQuad.
type Reader struct {
	r      io.Reader
	parsed bool
	err    error

	quads    []quad.Quad
	n        int
	prefixes []owl.Prefix
	iri      quad.IRI
	skipped  int
}

// NewReader returns a functional-syntax decoder reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) parse() {
	if r.parsed {
		return
	}
	r.parsed = true
	data, err := io.ReadAll(r.r)
	if err != nil {
		r.err = err
		return
	}
	doc, err := Parse(string(data))
	if err != nil {
		r.err = err
		return
	}
	r.quads, r.prefixes, r.iri, r.skipped = doc.Quads, doc.Prefixes, doc.IRI, doc.Skipped
}

func (r *Reader) ReadQuad() (quad.Quad, error) {
	r.parse()
	if r.err != nil {
		return quad.Quad{}, r.err
	}
	if r.n >= len(r.quads) {
		return quad.Quad{}, io.EOF
	}
	q := r.quads[r.n]
	r.n++
	return q, nil
}

func (r *Reader) Close() error { return nil }

// Prefixes returns the Prefix declarations of the document, in order.
func (r *Reader) Prefixes() []owl.Prefix {
	r.parse()
	return r.prefixes
}

// OntologyIRI returns the IRI given in the Ontology header, if any.
func (r *Reader) OntologyIRI() quad.IRI {
	r.parse()
	return r.iri
}

// Document is a parsed functional-syntax ontology.
type Document struct {
	IRI        quad.IRI
	VersionIRI quad.IRI
	Prefixes   []owl.Prefix
	Quads      []quad.Quad
	// Skipped counts axioms with no RDF mapping here, such as SWRL rules.
	Skipped int
}

// Parse decodes a functional-syntax document.
func Parse(src string) (*Document, error) {
	p := &parser{lex: newLexer(src)}
	forms, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	c := &converter{
		doc: &Document{},
		prefixes: map[string]string{
			"owl":  owl.NS,
			"rdf":  rdf.NS,
			"rdfs": rdfs.NS,
			"xsd":  xsd.NS,
		},
	}
	for _, f := range forms {
		switch {
		case f.compound && f.head == "Prefix":
			if err := c.prefix(f); err != nil {
				return nil, err
			}
		case f.compound && f.head == "Ontology":
			if err := c.ontology(f); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("line %d: unexpected top-level %v", f.tok.line, f.tok)
		}
	}
	return c.doc, nil
}

type converter struct {
	doc      *Document
	prefixes map[string]string
	bnodes   int
}

func (c *converter) add(s, p, o quad.Value) {
	c.doc.Quads = append(c.doc.Quads, quad.Quad{Subject: s, Predicate: p, Object: o})
}

func (c *converter) bnode() quad.BNode {
	c.bnodes++
	return quad.BNode(fmt.Sprintf("ofn%d", c.bnodes))
}

func errorf(n *node, format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", n.tok.line, fmt.Sprintf(format, args...))
}

func (c *converter) prefix(f *node) error {
	if len(f.args) != 3 || f.args[1].tok.kind != tEquals || f.args[2].tok.kind != tIRI {
		return errorf(f, "malformed Prefix declaration")
	}
	name := strings.TrimSuffix(f.args[0].tok.text, ":")
	iri := f.args[2].tok.text
	c.prefixes[name] = iri
	c.doc.Prefixes = append(c.doc.Prefixes, owl.Prefix{Name: name, IRI: iri})
	return nil
}

// iri expands an IRI or prefixed-name atom.
func (c *converter) iri(n *node) (quad.IRI, error) {
	switch n.tok.kind {
	case tIRI:
		return quad.IRI(n.tok.text), nil
	case tName:
		i := strings.IndexByte(n.tok.text, ':')
		if i < 0 {
			return "", errorf(n, "expected IRI, got %v", n.tok)
		}
		base, ok := c.prefixes[n.tok.text[:i]]
		if !ok {
			return "", errorf(n, "undeclared prefix in %s", n.tok.text)
		}
		return quad.IRI(base + n.tok.text[i+1:]), nil
	}
	return "", errorf(n, "expected IRI, got %v", n.tok)
}

// individual reads a named or anonymous individual.
func (c *converter) individual(n *node) (quad.Value, error) {
	if n.tok.kind == tBNode {
		return quad.BNode(n.tok.text), nil
	}
	return c.iri(n)
}

func (c *converter) literal(n *node) (quad.Value, error) {
	if n.tok.kind != tLiteral {
		return nil, errorf(n, "expected literal, got %v", n.tok)
	}
	switch {
	case n.datatype != nil:
		dt, err := c.iri(n.datatype)
		if err != nil {
			return nil, err
		}
		return quad.TypedString{Value: quad.String(n.tok.text), Type: dt}, nil
	case n.lang != "":
		return quad.LangString{Value: quad.String(n.tok.text), Lang: n.lang}, nil
	}
	return quad.String(n.tok.text), nil
}

// value reads an annotation value: IRI, anonymous individual or literal.
func (c *converter) value(n *node) (quad.Value, error) {
	if n.tok.kind == tLiteral {
		return c.literal(n)
	}
	return c.individual(n)
}

func (c *converter) list(items []quad.Value) quad.Value {
	if len(items) == 0 {
		return quad.IRI(rdf.NS + "nil")
	}
	head := c.bnode()
	cur := head
	for i, it := range items {
		c.add(cur, quad.IRI(rdf.NS+"first"), it)
		if i+1 == len(items) {
			c.add(cur, quad.IRI(rdf.NS+"rest"), quad.IRI(rdf.NS+"nil"))
			break
		}
		next := c.bnode()
		c.add(cur, quad.IRI(rdf.NS+"rest"), next)
		cur = next
	}
	return head
}

// stripAnnotations drops leading axiom annotations.
func stripAnnotations(args []*node) []*node {
	for len(args) > 0 && args[0].compound && args[0].head == "Annotation" {
		args = args[1:]
	}
	return args
}

func (c *converter) ontology(f *node) error {
	args := f.args
	if len(args) > 0 && isIRI(args[0]) {
		iri, err := c.iri(args[0])
		if err != nil {
			return err
		}
		c.doc.IRI = iri
		c.add(iri, quad.IRI(rdf.NS+"type"), quad.IRI(owl.OntologyType))
		args = args[1:]
		if len(args) > 0 && isIRI(args[0]) {
			v, err := c.iri(args[0])
			if err != nil {
				return err
			}
			c.doc.VersionIRI = v
			c.add(iri, quad.IRI(owl.VersionIRI), v)
			args = args[1:]
		}
	}
	for _, a := range args {
		if !a.compound {
			return errorf(a, "unexpected %v in Ontology", a.tok)
		}
		var err error
		switch a.head {
		case "Import":
			var v quad.IRI
			if len(a.args) != 1 {
				return errorf(a, "malformed Import")
			}
			if v, err = c.iri(a.args[0]); err == nil && c.doc.IRI != "" {
				c.add(c.doc.IRI, quad.IRI(owl.Imports), v)
			}
		case "Annotation":
			if c.doc.IRI != "" {
				err = c.annotation(c.doc.IRI, a)
			}
		default:
			err = c.axiom(a)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func hasChain(args []*node) bool {
	for _, a := range args {
		if a.compound && a.head == "ObjectPropertyChain" {
			return true
		}
	}
	return false
}

func isIRI(n *node) bool {
	return !n.compound && (n.tok.kind == tIRI || (n.tok.kind == tName && strings.Contains(n.tok.text, ":")))
}

func (c *converter) annotation(subj quad.Value, a *node) error {
	args := stripAnnotations(a.args)
	if len(args) != 2 {
		return errorf(a, "malformed Annotation")
	}
	p, err := c.iri(args[0])
	if err != nil {
		return err
	}
	v, err := c.value(args[1])
	if err != nil {
		return err
	}
	c.add(subj, p, v)
	return nil
}

var declarationTypes = map[string]string{
	"Class":              owl.ClassType,
	"ObjectProperty":     owl.ObjectPropertyType,
	"DataProperty":       owl.DatatypePropertyType,
	"AnnotationProperty": owl.AnnotationPropertyType,
	"NamedIndividual":    owl.NamedIndividualType,
	"Datatype":           rdfs.NS + "Datatype",
}

var propertyCharacteristics = map[string]string{
	"FunctionalObjectProperty":        owl.NS + "FunctionalProperty",
	"FunctionalDataProperty":          owl.NS + "FunctionalProperty",
	"InverseFunctionalObjectProperty": owl.NS + "InverseFunctionalProperty",
	"TransitiveObjectProperty":        owl.NS + "TransitiveProperty",
	"SymmetricObjectProperty":         owl.NS + "SymmetricProperty",
	"AsymmetricObjectProperty":        owl.NS + "AsymmetricProperty",
	"ReflexiveObjectProperty":         owl.NS + "ReflexiveProperty",
	"IrreflexiveObjectProperty":       owl.NS + "IrreflexiveProperty",
}

// pairwise lists axioms mapped to one triple per argument pair.
var pairwise = map[string]string{
	"EquivalentClasses":          owl.EquivalentClass,
	"EquivalentObjectProperties": owl.NS + "equivalentProperty",
	"EquivalentDataProperties":   owl.NS + "equivalentProperty",
	"SameIndividual":             owl.NS + "sameAs",
	"DisjointObjectProperties":   owl.NS + "propertyDisjointWith",
	"DisjointDataProperties":     owl.NS + "propertyDisjointWith",
	"SubObjectPropertyOf":        rdfs.NS + "subPropertyOf",
	"SubDataPropertyOf":          rdfs.NS + "subPropertyOf",
	"SubAnnotationPropertyOf":    rdfs.NS + "subPropertyOf",
	"InverseObjectProperties":    owl.InverseOf,
	"DifferentIndividuals":       owl.NS + "differentFrom",
	"ObjectPropertyDomain":       rdfs.NS + "domain",
	"DataPropertyDomain":         rdfs.NS + "domain",
	"ObjectPropertyRange":        rdfs.NS + "range",
	"DataPropertyRange":          rdfs.NS + "range",
	"AnnotationPropertyDomain":   rdfs.NS + "domain",
	"AnnotationPropertyRange":    rdfs.NS + "range",
	"SubClassOf":                 rdfs.NS + "subClassOf",
	"DisjointClasses":            owl.DisjointWith,
	"DatatypeDefinition":         owl.EquivalentClass,
}

func (c *converter) axiom(a *node) error {
	args := stripAnnotations(a.args)
	typ := quad.IRI(rdf.NS + "type")
	switch a.head {
	case "Declaration":
		if len(args) != 1 || !args[0].compound || len(args[0].args) != 1 {
			return errorf(a, "malformed Declaration")
		}
		t, ok := declarationTypes[args[0].head]
		if !ok {
			return errorf(a, "unknown entity type %s", args[0].head)
		}
		e, err := c.iri(args[0].args[0])
		if err != nil {
			return err
		}
		c.add(e, typ, quad.IRI(t))
		return nil
	case "AnnotationAssertion":
		if len(args) != 3 {
			return errorf(a, "malformed AnnotationAssertion")
		}
		p, err := c.iri(args[0])
		if err != nil {
			return err
		}
		s, err := c.individual(args[1])
		if err != nil {
			return err
		}
		v, err := c.value(args[2])
		if err != nil {
			return err
		}
		c.add(s, p, v)
		return nil
	case "ClassAssertion":
		if len(args) != 2 {
			return errorf(a, "malformed ClassAssertion")
		}
		ce, err := c.classExpr(args[0])
		if err != nil {
			return err
		}
		ind, err := c.individual(args[1])
		if err != nil {
			return err
		}
		c.add(ind, typ, ce)
		return nil
	case "ObjectPropertyAssertion", "DataPropertyAssertion",
		"NegativeObjectPropertyAssertion", "NegativeDataPropertyAssertion":
		if len(args) != 3 {
			return errorf(a, "malformed %s", a.head)
		}
		if strings.HasPrefix(a.head, "Negative") {
			break
		}
		p, err := c.property(args[0])
		if err != nil {
			return err
		}
		s, err := c.individual(args[1])
		if err != nil {
			return err
		}
		v, err := c.value(args[2])
		if err != nil {
			return err
		}
		if inv, ok := p.(quad.BNode); ok {
			// ObjectInverseOf(P) a b asserts b P a.
			p = c.inverseTarget(inv)
			s, v = v, s
		}
		c.add(s, p, v)
		return nil
	case "DisjointClasses":
		if len(args) > 2 {
			members, err := c.classExprs(args)
			if err != nil {
				return err
			}
			x := c.bnode()
			c.add(x, typ, quad.IRI(owl.AllDisjointClassesType))
			c.add(x, quad.IRI(owl.Members), c.list(members))
			return nil
		}
	case "DisjointUnion":
		if len(args) < 2 {
			return errorf(a, "malformed DisjointUnion")
		}
		cls, err := c.iri(args[0])
		if err != nil {
			return err
		}
		members, err := c.classExprs(args[1:])
		if err != nil {
			return err
		}
		c.add(cls, quad.IRI(owl.NS+"disjointUnionOf"), c.list(members))
		return nil
	case "HasKey":
		c.doc.Skipped++
		return nil
	}
	if t, ok := propertyCharacteristics[a.head]; ok {
		if len(args) != 1 {
			return errorf(a, "malformed %s", a.head)
		}
		p, err := c.property(args[0])
		if err != nil {
			return err
		}
		c.add(p, typ, quad.IRI(t))
		return nil
	}
	if pred, ok := pairwise[a.head]; ok && !hasChain(args) {
		if len(args) < 2 {
			return errorf(a, "malformed %s", a.head)
		}
		vals := make([]quad.Value, len(args))
		for i, arg := range args {
			v, err := c.operand(a.head, i, arg)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		for i := 1; i < len(vals); i++ {
			c.add(vals[0], quad.IRI(pred), vals[i])
		}
		return nil
	}
	c.doc.Skipped++
	if clog.V(1) {
		clog.Infof("ofn: line %d: skipping unsupported axiom %s", a.tok.line, a.head)
	}
	return nil
}

// operand reads argument i of a pairwise axiom according to its position
// type: class expression, property, data range or individual.
func (c *converter) operand(axiom string, i int, n *node) (quad.Value, error) {
	switch axiom {
	case "SubClassOf", "EquivalentClasses", "DisjointClasses":
		return c.classExpr(n)
	case "SameIndividual", "DifferentIndividuals":
		return c.individual(n)
	case "ObjectPropertyDomain", "DataPropertyDomain", "ObjectPropertyRange":
		if i > 0 {
			return c.classExpr(n)
		}
	case "DataPropertyRange":
		if i > 0 {
			return c.dataRange(n)
		}
	case "DatatypeDefinition":
		if i > 0 {
			return c.dataRange(n)
		}
		return c.iri(n)
	}
	return c.property(n)
}

// property reads a property expression. ObjectInverseOf(P) becomes a blank
// node carrying owl:inverseOf.
func (c *converter) property(n *node) (quad.Value, error) {
	if n.compound && n.head == "ObjectInverseOf" {
		if len(n.args) != 1 {
			return nil, errorf(n, "malformed ObjectInverseOf")
		}
		p, err := c.iri(n.args[0])
		if err != nil {
			return nil, err
		}
		x := c.bnode()
		c.add(x, quad.IRI(owl.InverseOf), p)
		return x, nil
	}
	return c.iri(n)
}

func (c *converter) inverseTarget(b quad.BNode) quad.Value {
	for _, q := range c.doc.Quads {
		if q.Subject == b && q.Predicate == quad.IRI(owl.InverseOf) {
			return q.Object
		}
	}
	return b
}

func (c *converter) classExprs(ns []*node) ([]quad.Value, error) {
	out := make([]quad.Value, 0, len(ns))
	for _, n := range ns {
		v, err := c.classExpr(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

var cardinalities = map[string]struct{ plain, qualified, onWhat string }{
	"ObjectExactCardinality": {owl.Cardinality, owl.QualifiedCardinality, owl.OnClass},
	"ObjectMinCardinality":   {owl.MinCardinality, owl.MinQualifiedCardinality, owl.OnClass},
	"ObjectMaxCardinality":   {owl.MaxCardinality, owl.MaxQualifiedCardinality, owl.OnClass},
	"DataExactCardinality":   {owl.Cardinality, owl.QualifiedCardinality, owl.OnDataRange},
	"DataMinCardinality":     {owl.MinCardinality, owl.MinQualifiedCardinality, owl.OnDataRange},
	"DataMaxCardinality":     {owl.MaxCardinality, owl.MaxQualifiedCardinality, owl.OnDataRange},
}

// classExpr maps a class expression to its RDF node.
func (c *converter) classExpr(n *node) (quad.Value, error) {
	if !n.compound {
		return c.iri(n)
	}
	typ := quad.IRI(rdf.NS + "type")
	switch n.head {
	case "ObjectIntersectionOf", "ObjectUnionOf":
		members, err := c.classExprs(n.args)
		if err != nil {
			return nil, err
		}
		pred := owl.UnionOf
		if n.head == "ObjectIntersectionOf" {
			pred = owl.IntersectionOf
		}
		x := c.bnode()
		c.add(x, typ, quad.IRI(owl.ClassType))
		c.add(x, quad.IRI(pred), c.list(members))
		return x, nil
	case "ObjectComplementOf":
		if len(n.args) != 1 {
			return nil, errorf(n, "malformed ObjectComplementOf")
		}
		of, err := c.classExpr(n.args[0])
		if err != nil {
			return nil, err
		}
		x := c.bnode()
		c.add(x, typ, quad.IRI(owl.ClassType))
		c.add(x, quad.IRI(owl.ComplementOf), of)
		return x, nil
	case "ObjectOneOf":
		var inds []quad.Value
		for _, a := range n.args {
			v, err := c.individual(a)
			if err != nil {
				return nil, err
			}
			inds = append(inds, v)
		}
		x := c.bnode()
		c.add(x, typ, quad.IRI(owl.ClassType))
		c.add(x, quad.IRI(owl.OneOf), c.list(inds))
		return x, nil
	case "ObjectSomeValuesFrom", "ObjectAllValuesFrom", "DataSomeValuesFrom", "DataAllValuesFrom":
		if len(n.args) != 2 {
			return nil, errorf(n, "malformed %s", n.head)
		}
		pred := owl.SomeValuesFrom
		if strings.HasSuffix(n.head, "AllValuesFrom") {
			pred = owl.AllValuesFrom
		}
		var filler quad.Value
		var err error
		if strings.HasPrefix(n.head, "Data") {
			filler, err = c.dataRange(n.args[1])
		} else {
			filler, err = c.classExpr(n.args[1])
		}
		if err != nil {
			return nil, err
		}
		x, err := c.restriction(n.args[0])
		if err != nil {
			return nil, err
		}
		c.add(x, quad.IRI(pred), filler)
		return x, nil
	case "ObjectHasValue", "DataHasValue":
		if len(n.args) != 2 {
			return nil, errorf(n, "malformed %s", n.head)
		}
		x, err := c.restriction(n.args[0])
		if err != nil {
			return nil, err
		}
		v, err := c.value(n.args[1])
		if err != nil {
			return nil, err
		}
		c.add(x, quad.IRI(owl.HasValue), v)
		return x, nil
	case "ObjectHasSelf":
		if len(n.args) != 1 {
			return nil, errorf(n, "malformed ObjectHasSelf")
		}
		x, err := c.restriction(n.args[0])
		if err != nil {
			return nil, err
		}
		c.add(x, quad.IRI(owl.HasSelf), quad.TypedString{Value: "true", Type: quad.IRI(xsd.NS + "boolean")})
		return x, nil
	}
	if card, ok := cardinalities[n.head]; ok {
		if len(n.args) < 2 || len(n.args) > 3 || n.args[0].tok.kind != tNumber {
			return nil, errorf(n, "malformed %s", n.head)
		}
		x, err := c.restriction(n.args[1])
		if err != nil {
			return nil, err
		}
		num := quad.TypedString{Value: quad.String(n.args[0].tok.text), Type: quad.IRI(xsd.NS + "nonNegativeInteger")}
		if len(n.args) == 2 {
			c.add(x, quad.IRI(card.plain), num)
			return x, nil
		}
		var filler quad.Value
		if card.onWhat == owl.OnDataRange {
			filler, err = c.dataRange(n.args[2])
		} else {
			filler, err = c.classExpr(n.args[2])
		}
		if err != nil {
			return nil, err
		}
		c.add(x, quad.IRI(card.qualified), num)
		c.add(x, quad.IRI(card.onWhat), filler)
		return x, nil
	}
	return nil, errorf(n, "unknown class expression %s", n.head)
}

func (c *converter) restriction(prop *node) (quad.BNode, error) {
	p, err := c.property(prop)
	if err != nil {
		return "", err
	}
	x := c.bnode()
	c.add(x, quad.IRI(rdf.NS+"type"), quad.IRI(owl.RestrictionType))
	c.add(x, quad.IRI(owl.OnProperty), p)
	return x, nil
}

// dataRange maps a data range to its RDF node.
func (c *converter) dataRange(n *node) (quad.Value, error) {
	if !n.compound {
		return c.iri(n)
	}
	typ := quad.IRI(rdf.NS + "type")
	datatype := quad.IRI(rdfs.NS + "Datatype")
	x := c.bnode()
	switch n.head {
	case "DataUnionOf", "DataIntersectionOf":
		var members []quad.Value
		for _, a := range n.args {
			v, err := c.dataRange(a)
			if err != nil {
				return nil, err
			}
			members = append(members, v)
		}
		pred := owl.UnionOf
		if n.head == "DataIntersectionOf" {
			pred = owl.IntersectionOf
		}
		c.add(x, typ, datatype)
		c.add(x, quad.IRI(pred), c.list(members))
	case "DataComplementOf":
		if len(n.args) != 1 {
			return nil, errorf(n, "malformed DataComplementOf")
		}
		of, err := c.dataRange(n.args[0])
		if err != nil {
			return nil, err
		}
		c.add(x, typ, datatype)
		c.add(x, quad.IRI(owl.NS+"datatypeComplementOf"), of)
	case "DataOneOf":
		var lits []quad.Value
		for _, a := range n.args {
			v, err := c.literal(a)
			if err != nil {
				return nil, err
			}
			lits = append(lits, v)
		}
		c.add(x, typ, datatype)
		c.add(x, quad.IRI(owl.OneOf), c.list(lits))
	case "DatatypeRestriction":
		if len(n.args) < 3 || len(n.args)%2 != 1 {
			return nil, errorf(n, "malformed DatatypeRestriction")
		}
		base, err := c.iri(n.args[0])
		if err != nil {
			return nil, err
		}
		var facets []quad.Value
		for i := 1; i+1 < len(n.args); i += 2 {
			f, err := c.iri(n.args[i])
			if err != nil {
				return nil, err
			}
			v, err := c.literal(n.args[i+1])
			if err != nil {
				return nil, err
			}
			y := c.bnode()
			c.add(y, f, v)
			facets = append(facets, y)
		}
		c.add(x, typ, datatype)
		c.add(x, quad.IRI(owl.NS+"onDatatype"), base)
		c.add(x, quad.IRI(owl.NS+"withRestrictions"), c.list(facets))
	default:
		return nil, errorf(n, "unknown data range %s", n.head)
	}
	return x, nil
}
