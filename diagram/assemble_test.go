package diagram

import (
	"context"
	"fmt"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"github.com/cayleygraph/quad/voc/xsd"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/owldoc/graph/memstore"
	"github.com/cayleygraph/owldoc/owl"
)

const exNS = "http://example.com/fleet#"

func ex(local string) quad.IRI { return quad.IRI(exNS + local) }

func q(s, p, o quad.Value) quad.Quad { return quad.Quad{Subject: s, Predicate: p, Object: o} }

var (
	typ        = quad.IRI(rdf.NS + "type")
	subClassOf = quad.IRI(rdfs.NS + "subClassOf")
)

func class(id quad.IRI) quad.Quad { return q(id, typ, quad.IRI(owl.ClassType)) }

func restriction(node quad.BNode, prop quad.IRI, pairs ...quad.Value) []quad.Quad {
	out := []quad.Quad{
		q(node, typ, quad.IRI(owl.RestrictionType)),
		q(node, quad.IRI(owl.OnProperty), prop),
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, q(node, pairs[i], pairs[i+1]))
	}
	return out
}

func list(head string, items ...quad.Value) []quad.Quad {
	var out []quad.Quad
	for i, it := range items {
		cell := quad.BNode(fmt.Sprintf("%s%d", head, i))
		out = append(out, q(cell, quad.IRI(rdf.NS+"first"), it))
		next := quad.Value(quad.IRI(rdf.NS + "nil"))
		if i+1 < len(items) {
			next = quad.BNode(fmt.Sprintf("%s%d", head, i+1))
		}
		out = append(out, q(cell, quad.IRI(rdf.NS+"rest"), next))
	}
	return out
}

func fleet() []quad.Quad {
	quads := []quad.Quad{
		class(ex("Asset")), class(ex("Vehicle")), class(ex("Truck")), class(ex("Car")),
		class(ex("Engine")), class(ex("Garage")), class(ex("Driver")),
		q(ex("Asset"), ex("abstract"), quad.String("true")),
		q(ex("Vehicle"), subClassOf, ex("Asset")),
		q(ex("Vehicle"), subClassOf, quad.BNode("r1")),
		q(ex("Vehicle"), subClassOf, quad.BNode("r2")),
		q(ex("hasWeight"), typ, quad.IRI(owl.DatatypePropertyType)),
		q(ex("hasWeight"), quad.IRI(rdfs.NS+"range"), quad.IRI(xsd.NS+"decimal")),
		q(ex("hasEngine"), typ, quad.IRI(owl.ObjectPropertyType)),
		q(ex("Truck"), subClassOf, ex("Vehicle")),
		q(ex("Truck"), subClassOf, quad.BNode("r3")),
		q(ex("Car"), subClassOf, ex("Vehicle")),
		q(ex("Car"), subClassOf, quad.BNode("r4")),
		q(ex("Garage"), subClassOf, quad.BNode("r5")),
		q(ex("Garage"), subClassOf, quad.BNode("r6")),
		q(quad.BNode("u1"), quad.IRI(owl.UnionOf), quad.BNode("l0")),
		q(ex("Driver"), subClassOf, quad.BNode("r7")),
		q(ex("Driver"), subClassOf, quad.BNode("r8")),
		q(ex("Driver"), subClassOf, quad.BNode("r9")),
	}
	quads = append(quads, restriction("r1", ex("hasEngine"),
		quad.IRI(owl.QualifiedCardinality), quad.Int(1), quad.IRI(owl.OnClass), ex("Engine"))...)
	quads = append(quads, restriction("r2", ex("hasWeight"),
		quad.IRI(owl.MinCardinality), quad.Int(1))...)
	quads = append(quads, restriction("r3", ex("hasEngine"),
		quad.IRI(owl.QualifiedCardinality), quad.Int(2), quad.IRI(owl.OnClass), ex("Engine"))...)
	quads = append(quads, restriction("r4", ex("hasEngine"),
		quad.IRI(owl.QualifiedCardinality), quad.Int(1), quad.IRI(owl.OnClass), ex("Engine"))...)
	quads = append(quads, restriction("r5", ex("hasVehicle"),
		quad.IRI(owl.AllValuesFrom), quad.BNode("u1"))...)
	// A second reference to the same union within one diagram.
	quads = append(quads, restriction("r6", ex("parks"),
		quad.IRI(owl.SomeValuesFrom), quad.BNode("u1"))...)
	quads = append(quads, list("l", ex("Truck"), ex("Car"))...)
	// Two restrictions on drives targeting Truck merge into one edge.
	quads = append(quads, restriction("r7", ex("drives"),
		quad.IRI(owl.SomeValuesFrom), ex("Truck"))...)
	quads = append(quads, restriction("r8", ex("drives"),
		quad.IRI(owl.MinQualifiedCardinality), quad.Int(2), quad.IRI(owl.OnClass), ex("Truck"))...)
	quads = append(quads, restriction("r9", ex("knows"),
		quad.IRI(owl.AllValuesFrom), ex("Driver"))...)
	return quads
}

func newOntology(quads ...quad.Quad) *owl.Ontology {
	return owl.New(memstore.New(quads...), owl.NewNamespaces(exNS, owl.WellKnownPrefixes()))
}

func build(t testing.TB, o *owl.Ontology, local string, opts *Options) *Graph {
	c, err := owl.GetClass(context.TODO(), o, ex(local))
	require.NoError(t, err)
	g, err := Build(context.TODO(), c, opts)
	require.NoError(t, err)
	return g
}

func edgesOf(g *Graph, arrow Arrow) []*Edge {
	var out []*Edge
	for _, e := range g.Edges {
		if e.Arrow == arrow {
			out = append(out, e)
		}
	}
	return out
}

func nodeIDs(g *Graph, kinds ...NodeKind) []string {
	var out []string
	for _, n := range g.Nodes {
		for _, k := range kinds {
			if n.Kind == k {
				out = append(out, n.ID)
			}
		}
	}
	return out
}

func TestVehicle(t *testing.T) {
	g := build(t, newOntology(fleet()...), "Vehicle", nil)

	require.Equal(t, "Vehicle", g.Main)
	require.ElementsMatch(t, []string{"Asset", "Vehicle", "Engine"}, nodeIDs(g, ClassNode, MainNode))

	main, ok := g.Node("Vehicle")
	require.True(t, ok)
	require.Equal(t, []string{"hasWeight: decimal «min 1»"}, main.Attributes)

	asset, _ := g.Node("Asset")
	require.True(t, asset.Abstract)

	up := edgesOf(g, Generalization)
	require.Len(t, up, 1)
	require.Equal(t, Edge{From: "Vehicle", To: "Asset", Style: Solid, Arrow: Generalization}, *up[0])

	assoc := edgesOf(g, Association)
	require.Len(t, assoc, 1)
	require.Equal(t, "Engine", assoc[0].To)
	require.Equal(t, "«exactly 1» hasEngine", assoc[0].Label)
	require.Equal(t, Solid, assoc[0].Style)

	require.Equal(t, []string{"Engine"}, g.Cluster)
	require.Equal(t, AnchorID, g.Anchor)
}

func TestRefinedEdge(t *testing.T) {
	o := newOntology(fleet()...)

	truck := build(t, o, "Truck", nil)
	assoc := edgesOf(truck, Association)
	require.Len(t, assoc, 1)
	require.Equal(t, Dashed, assoc[0].Style)
	require.True(t, assoc[0].Refined)
	require.Equal(t, "«exactly 2, refined» hasEngine", assoc[0].Label)

	// Same shape as the inherited restriction.
	car := build(t, o, "Car", nil)
	assoc = edgesOf(car, Association)
	require.Len(t, assoc, 1)
	require.Equal(t, Solid, assoc[0].Style)
	require.False(t, assoc[0].Refined)
}

func TestUnionTarget(t *testing.T) {
	g := build(t, newOntology(fleet()...), "Garage", nil)

	unions := nodeIDs(g, UnionNode)
	require.Len(t, unions, 1, "union referenced twice must be emitted once")
	u, _ := g.Node(unions[0])
	require.Equal(t, "«unionOf»[Car or Truck]", u.Label)

	var members []string
	for _, e := range edgesOf(g, Membership) {
		require.Equal(t, unions[0], e.From)
		require.Equal(t, Dotted, e.Style)
		require.Equal(t, "member", e.Label)
		members = append(members, e.To)
	}
	require.Equal(t, []string{"Car", "Truck"}, members)

	labels := make(map[string]string)
	for _, e := range edgesOf(g, Association) {
		require.Equal(t, unions[0], e.To)
		require.Equal(t, Solid, e.Style)
		labels[e.Label] = e.To
	}
	require.Contains(t, labels, "«only» hasVehicle")
	require.Contains(t, labels, "«some» parks")
}

func TestResolverIdempotent(t *testing.T) {
	o := newOntology(fleet()...)
	g := NewGraph("Garage")
	r := NewResolver(context.TODO(), o, g, nil)
	e := o.Expression(quad.BNode("u1"))

	id1, label1 := r.Resolve(e)
	n, edges := len(g.Nodes), len(g.Edges)
	id2, label2 := r.Resolve(o.Expression(quad.BNode("u1")))

	require.Equal(t, id1, id2)
	require.Equal(t, label1, label2)
	require.Equal(t, n, len(g.Nodes))
	require.Equal(t, edges, len(g.Edges))
}

func TestMergedEdge(t *testing.T) {
	g := build(t, newOntology(fleet()...), "Driver", nil)

	var drives []*Edge
	for _, e := range edgesOf(g, Association) {
		if e.To == "Truck" {
			drives = append(drives, e)
		}
	}
	require.Len(t, drives, 1)
	require.Equal(t, "«min 2, some» drives", drives[0].Label)
}

func TestSelfLoop(t *testing.T) {
	g := build(t, newOntology(fleet()...), "Driver", nil)
	var self *Edge
	for _, e := range g.Edges {
		if e.Arrow == Association && e.To == g.Main {
			self = e
		}
	}
	require.NotNil(t, self)
	require.Equal(t, "«only» knows", self.Label)
	require.Len(t, nodeIDs(g, MainNode), 1)
}

func TestIgnore(t *testing.T) {
	g := build(t, newOntology(fleet()...), "Vehicle", &Options{Ignore: []string{"Asset"}})
	require.Empty(t, edgesOf(g, Generalization))
	_, ok := g.Node("Asset")
	require.False(t, ok)
}

func TestLinks(t *testing.T) {
	opts := &Options{Link: func(name string) string {
		if name == "Engine" {
			return "../classes/Engine.md"
		}
		return ""
	}}
	g := build(t, newOntology(fleet()...), "Vehicle", opts)
	engine, _ := g.Node("Engine")
	require.Equal(t, "../classes/Engine.md", engine.URL)
	asset, _ := g.Node("Asset")
	require.Empty(t, asset.URL)
}

func TestComplementAndOpaque(t *testing.T) {
	quads := []quad.Quad{
		class(ex("Pedestrian")), class(ex("Vehicle")),
		q(ex("Pedestrian"), subClassOf, quad.BNode("r")),
		q(quad.BNode("c"), quad.IRI(owl.ComplementOf), ex("Vehicle")),
		q(ex("Pedestrian"), subClassOf, quad.BNode("r2")),
		q(quad.BNode("e"), quad.IRI(owl.OneOf), quad.BNode("l0")),
	}
	quads = append(quads, restriction("r", ex("rides"), quad.IRI(owl.AllValuesFrom), quad.BNode("c"))...)
	quads = append(quads, restriction("r2", ex("likes"), quad.IRI(owl.SomeValuesFrom), quad.BNode("e"))...)
	quads = append(quads, list("l", ex("red"), ex("blue"))...)

	g := build(t, newOntology(quads...), "Pedestrian", nil)
	require.Len(t, nodeIDs(g, ComplementNode), 1)
	not, _ := g.Node(nodeIDs(g, ComplementNode)[0])
	require.Equal(t, "«complementOf»[Vehicle]", not.Label)
	of := edgesOf(g, Membership)
	require.Len(t, of, 1)
	require.Equal(t, "of", of[0].Label)
	require.Equal(t, "Vehicle", of[0].To)

	opaque := nodeIDs(g, ExpressionNode)
	require.Len(t, opaque, 1)
	n, _ := g.Node(opaque[0])
	require.Equal(t, "{blue, red}", n.Label)
}

func TestValidate(t *testing.T) {
	g := NewGraph("A")
	g.Main = "A"
	g.AddNode(&Node{ID: "A"})
	require.NoError(t, g.Validate())

	g.AddEdge(&Edge{From: "A", To: "B"})
	require.Error(t, g.Validate())

	require.False(t, g.AddNode(&Node{ID: "A"}))
}

func TestBuildCancelledMidway(t *testing.T) {
	o := newOntology(fleet()...)
	c, err := owl.GetClass(context.TODO(), o, ex("Vehicle"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The main node asks for the abstract flag before any restriction is drawn.
	_, err = Build(ctx, c, &Options{Abstract: func(quad.IRI) bool {
		cancel()
		return false
	}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuildDeterministic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	classes := []string{"Vehicle", "Truck", "Car", "Garage", "Driver"}
	properties.Property("two builds from fresh stores are identical", prop.ForAll(
		func(i int, seed int64) bool {
			quads := fleet()
			// Insertion order must not matter.
			shuffled := make([]quad.Quad, len(quads))
			for j, k := range permutation(len(quads), seed) {
				shuffled[j] = quads[k]
			}
			a := build(t, newOntology(quads...), classes[i], nil)
			b := build(t, newOntology(shuffled...), classes[i], nil)
			return fmt.Sprint(dump(a)) == fmt.Sprint(dump(b))
		},
		gen.IntRange(0, len(classes)-1),
		gen.Int64(),
	))
	properties.TestingRun(t)
}

func permutation(n int, seed int64) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	x := uint64(seed)
	for i := n - 1; i > 0; i-- {
		x = x*6364136223846793005 + 1442695040888963407
		j := int((x >> 33) % uint64(i+1))
		p[i], p[j] = p[j], p[i]
	}
	return p
}

func dump(g *Graph) []string {
	var out []string
	for _, n := range g.Nodes {
		out = append(out, fmt.Sprintf("%+v", *n))
	}
	for _, e := range g.Edges {
		out = append(out, fmt.Sprintf("%+v", *e))
	}
	return append(out, fmt.Sprint(g.Cluster))
}
