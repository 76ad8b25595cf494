package ofn_test

import (
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/cayleygraph/quad/voc/xsd"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/owldoc/graph"
	"github.com/cayleygraph/owldoc/graph/memstore"
	"github.com/cayleygraph/owldoc/owl"
	"github.com/cayleygraph/owldoc/quad/ofn"
)

const fleetOFN = `Prefix(:=<http://example.com/fleet#>)
Prefix(dc:=<http://purl.org/dc/elements/1.1/>)
# comment ( with parens
Ontology(<http://example.com/fleet>
  Import(<http://example.com/base>)
  Annotation(dc:title "Fleet ontology")
  Declaration(Class(:Vehicle))
  Declaration(Class(:Truck))
  Declaration(Class(:Car))
  Declaration(Class(:Engine))
  Declaration(ObjectProperty(:hasEngine))
  Declaration(DataProperty(:hasWeight))
  SubClassOf(:Truck :Vehicle)
  SubClassOf(Annotation(rdfs:comment "axiom note") :Vehicle ObjectExactCardinality(1 :hasEngine :Engine))
  SubClassOf(:Vehicle DataMinCardinality(1 :hasWeight))
  SubClassOf(:Vehicle ObjectAllValuesFrom(:drivenBy ObjectUnionOf(:Truck :Car)))
  SubClassOf(:Vehicle ObjectSomeValuesFrom(ObjectInverseOf(:owns) :Car))
  DataPropertyRange(:hasWeight xsd:decimal)
  DisjointClasses(:Truck :Car :Engine)
  AnnotationAssertion(rdfs:comment :Truck "A \"heavy\" vehicle"@en)
  DLSafeRule(Body(ClassAtom(:Truck Variable(:x))) Head(ClassAtom(:Vehicle Variable(:x))))
)
`

func parse(t *testing.T, src string) (*ofn.Document, graph.QuadStore) {
	doc, err := ofn.Parse(src)
	require.NoError(t, err)
	return doc, memstore.New(doc.Quads...)
}

func ex(local string) quad.IRI { return quad.IRI("http://example.com/fleet#" + local) }

func TestParse(t *testing.T) {
	doc, qs := parse(t, fleetOFN)

	require.Equal(t, quad.IRI("http://example.com/fleet"), doc.IRI)
	require.Equal(t, []owl.Prefix{
		{Name: "", IRI: "http://example.com/fleet#"},
		{Name: "dc", IRI: "http://purl.org/dc/elements/1.1/"},
	}, doc.Prefixes)
	require.Equal(t, 1, doc.Skipped)

	typ := quad.IRI(rdf.NS + "type")
	sub := quad.IRI(rdfs.NS + "subClassOf")
	require.True(t, graph.Has(qs, ex("Vehicle"), typ, quad.IRI(owl.ClassType)))
	require.True(t, graph.Has(qs, ex("hasWeight"), typ, quad.IRI(owl.DatatypePropertyType)))
	require.True(t, graph.Has(qs, ex("Truck"), sub, ex("Vehicle")))
	require.True(t, graph.Has(qs, doc.IRI, quad.IRI(owl.Imports), quad.IRI("http://example.com/base")))
	require.True(t, graph.Has(qs, doc.IRI, quad.IRI("http://purl.org/dc/elements/1.1/title"), quad.String("Fleet ontology")))
	require.True(t, graph.Has(qs, ex("hasWeight"), quad.IRI(rdfs.NS+"range"), quad.IRI(xsd.NS+"decimal")))
	require.True(t, graph.Has(qs, ex("Truck"), quad.IRI(rdfs.NS+"comment"),
		quad.LangString{Value: `A "heavy" vehicle`, Lang: "en"}))

	var restrictions int
	for _, v := range graph.Objects(qs, ex("Vehicle"), sub) {
		if graph.Has(qs, v, typ, quad.IRI(owl.RestrictionType)) {
			restrictions++
		}
	}
	require.Equal(t, 4, restrictions)

	members := graph.Subjects(qs, typ, quad.IRI(owl.AllDisjointClassesType))
	require.Len(t, members, 1)
}

func TestRestrictionsReadBack(t *testing.T) {
	doc, qs := parse(t, fleetOFN)
	o := owl.New(qs, owl.NewNamespaces("http://example.com/fleet#", doc.Prefixes))

	rows := make(map[string][]string)
	for _, c := range o.Classes() {
		if c.QName != "Vehicle" {
			continue
		}
		for _, r := range c.Formalization() {
			rows[r.Property] = append(rows[r.Property], r.Constraint)
		}
	}
	require.Equal(t, []string{"exactly 1 Engine"}, rows["hasEngine"])
	require.Equal(t, []string{"min 1"}, rows["hasWeight"])
	require.Equal(t, []string{"only (Car or Truck)"}, rows["drivenBy"])
	require.Equal(t, []string{"some Car"}, rows["inverse owns"])
}

func TestReader(t *testing.T) {
	r := ofn.NewReader(strings.NewReader(fleetOFN))
	quads, err := quad.ReadAll(r)
	require.NoError(t, err)
	require.NotEmpty(t, quads)
	require.Equal(t, quad.IRI("http://example.com/fleet"), r.OntologyIRI())
	require.Len(t, r.Prefixes(), 2)

	f := quad.FormatByExt(".ofn")
	require.NotNil(t, f)
	require.Equal(t, "ofn", f.Name)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`Ontology(`,
		`Ontology(<x> SubClassOf(undeclared:A :B))`,
		`Prefix(a <x>)`,
		`Ontology(<x> Declaration(Class("lit")))`,
		`Ontology(<x> SubClassOf(<a> ObjectMinCardinality(x <p>)))`,
		`"dangling`,
	} {
		_, err := ofn.Parse(src)
		require.Error(t, err, src)
	}
}
