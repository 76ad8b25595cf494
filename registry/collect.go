package registry

import (
	"sort"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"

	"github.com/cayleygraph/owldoc/graph"
	"github.com/cayleygraph/owldoc/owl"
	"github.com/cayleygraph/owldoc/voc/dc"
)

// Collect lists the concepts of an ontology worth registering: the classes
// and properties declared in its namespace, plus the external classes and
// restriction properties it uses.
func Collect(o *owl.Ontology) []Entry {
	qs := o.Store
	typ := quad.IRI(rdf.NS + "type")
	sub := quad.IRI(rdfs.NS + "subClassOf")
	seen := make(map[quad.IRI]struct{})
	var out []Entry
	add := func(iri quad.IRI, k Kind, desc string) {
		if _, ok := seen[iri]; ok {
			return
		}
		seen[iri] = struct{}{}
		out = append(out, Entry{IRI: iri, Kind: k, Description: desc})
	}
	local := func(v quad.Value) (quad.IRI, bool) {
		iri, ok := v.(quad.IRI)
		return iri, ok && o.NS.InDefault(string(iri))
	}

	for _, decl := range []struct {
		typ  string
		kind Kind
	}{
		{owl.ClassType, Class},
		{owl.ObjectPropertyType, ObjectProperty},
		{owl.DatatypePropertyType, DatatypeProperty},
	} {
		subjects := graph.Subjects(qs, typ, quad.IRI(decl.typ))
		graph.SortValues(subjects)
		for _, v := range subjects {
			if iri, ok := local(v); ok {
				desc, _ := o.Literal(iri, quad.IRI(rdfs.NS+"comment"), quad.IRI(dc.Description))
				add(iri, decl.kind, desc)
			}
		}
	}

	quads := qs.Quads(nil, sub, nil)
	sort.SliceStable(quads, func(i, j int) bool {
		return quad.StringOf(quads[i].Object) < quad.StringOf(quads[j].Object)
	})
	for _, q := range quads {
		if iri, ok := q.Object.(quad.IRI); ok {
			if !o.NS.InDefault(string(iri)) && iri != quad.IRI(owl.Thing) {
				add(iri, Class, "")
			}
			continue
		}
		if !graph.Has(qs, q.Object, typ, quad.IRI(owl.RestrictionType)) {
			continue
		}
		r, err := o.Restriction(q.Object)
		if err != nil || o.NS.InDefault(string(r.Property)) {
			continue
		}
		add(r.Property, inferKind(qs, r), "")
	}
	return out
}

func inferKind(qs graph.QuadStore, r *owl.Restriction) Kind {
	typ := quad.IRI(rdf.NS + "type")
	if graph.Has(qs, r.Property, typ, quad.IRI(owl.DatatypePropertyType)) {
		return DatatypeProperty
	} else if graph.Has(qs, r.Property, typ, quad.IRI(owl.ObjectPropertyType)) {
		return ObjectProperty
	}
	if _, ok := r.AllValuesFrom.(quad.IRI); ok {
		return ObjectProperty
	}
	switch {
	case r.OnDataRange != nil:
		return DatatypeProperty
	case r.OnClass != nil:
		return ObjectProperty
	case len(r.Bounds) > 0:
		return DatatypeProperty
	}
	return ObjectProperty
}
