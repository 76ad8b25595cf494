package ttl_test

import (
	"context"
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/owldoc/graph"
	"github.com/cayleygraph/owldoc/graph/memstore"
	"github.com/cayleygraph/owldoc/owl"
	"github.com/cayleygraph/owldoc/quad/rdfxml"
	"github.com/cayleygraph/owldoc/quad/ttl"
)

const fleetTTL = `@prefix : <http://example.com/fleet#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

:Vehicle a owl:Class ;
    rdfs:comment "A vehicle"@en .

:Truck a owl:Class ;
    rdfs:subClassOf :Vehicle ;
    rdfs:subClassOf [
        a owl:Restriction ;
        owl:onProperty :hasEngine ;
        owl:qualifiedCardinality "2"^^xsd:nonNegativeInteger ;
        owl:onClass :Engine
    ] .
`

func ex(local string) quad.IRI { return quad.IRI("http://example.com/fleet#" + local) }

func TestTurtle(t *testing.T) {
	r := ttl.NewReader(strings.NewReader(fleetTTL))
	quads, err := quad.ReadAll(r)
	require.NoError(t, err)
	require.Len(t, r.Prefixes(), 4)
	require.Equal(t, owl.Prefix{Name: "", IRI: "http://example.com/fleet#"}, r.Prefixes()[0])

	qs := memstore.New(quads...)
	require.True(t, graph.Has(qs, ex("Truck"), quad.IRI(rdfs.NS+"subClassOf"), ex("Vehicle")))
	require.True(t, graph.Has(qs, ex("Vehicle"), quad.IRI(rdfs.NS+"comment"),
		quad.LangString{Value: "A vehicle", Lang: "en"}))

	o := owl.New(qs, owl.NewNamespaces("http://example.com/fleet#", r.Prefixes()))
	truck, err := owl.GetClass(context.TODO(), o, ex("Truck"))
	require.NoError(t, err)
	rs := truck.Restrictions()
	require.Len(t, rs, 1)
	require.Equal(t, []string{"exactly 2"}, rs[0].Fragments())
}

const fleetRDF = `<?xml version="1.0"?>
<rdf:RDF xmlns="http://example.com/fleet#"
     xmlns:owl="http://www.w3.org/2002/07/owl#"
     xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
     xmlns:rdfs="http://www.w3.org/2000/01/rdf-schema#">
    <owl:Class rdf:about="http://example.com/fleet#Vehicle"/>
    <owl:Class rdf:about="http://example.com/fleet#Truck">
        <rdfs:subClassOf rdf:resource="http://example.com/fleet#Vehicle"/>
    </owl:Class>
</rdf:RDF>
`

func TestRDFXML(t *testing.T) {
	r := rdfxml.NewReader(strings.NewReader(fleetRDF))
	quads, err := quad.ReadAll(r)
	require.NoError(t, err)

	names := make(map[string]string)
	for _, p := range r.Prefixes() {
		names[p.Name] = p.IRI
	}
	require.Equal(t, "http://example.com/fleet#", names[""])
	require.Equal(t, "http://www.w3.org/2002/07/owl#", names["owl"])

	qs := memstore.New(quads...)
	require.True(t, graph.Has(qs, ex("Truck"), quad.IRI(rdfs.NS+"subClassOf"), ex("Vehicle")))
}

func TestFormats(t *testing.T) {
	require.Equal(t, "turtle", quad.FormatByExt(".ttl").Name)
	require.Equal(t, "rdfxml", quad.FormatByExt(".owl").Name)
}
