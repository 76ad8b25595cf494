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

package diagram

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/owl"
)

// AnchorID is the id of the invisible node the associated cluster hangs from.
const AnchorID = "cluster-anchor"

// Options tune a diagram build. The zero value is usable.
type Options struct {
	// Ignore lists classes, by IRI or display name, that never appear as
	// superclasses or targets. owl:Thing is always ignored.
	Ignore []string
	// Link returns the hyperlink target for a class display name, or "" when
	// the class has no page.
	Link func(name string) string
	// Abstract overrides the abstract flag read from the ontology, typically
	// with the run-wide map collected across files.
	Abstract func(iri quad.IRI) bool
}

func (o *Options) link(name string) string {
	if o.Link == nil {
		return ""
	}
	return o.Link(name)
}

func (o *Options) ignored(iri quad.IRI, name string) bool {
	if iri == owl.Thing || iri == owl.Nothing {
		return true
	}
	for _, s := range o.Ignore {
		if s == string(iri) || s == name {
			return true
		}
	}
	return false
}

// Build compiles the diagram of class c. Panics raised while reading a
// malformed ontology are returned as errors.
func Build(ctx context.Context, c *owl.Class, opts *Options) (g *Graph, err error) {
	defer func() {
		if r := recover(); r != nil {
			g, err = nil, fmt.Errorf("diagram %s: %v", c.QName, r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}
	b := &builder{
		ctx:   ctx,
		c:     c,
		ont:   c.Ontology(),
		opts:  opts,
		g:     NewGraph(c.QName),
		edges: make(map[string]*assoc),
		attrs: make(map[string]*attribute),
	}
	b.main()
	b.superclasses()
	for _, r := range c.Restrictions() {
		if r.Kind == owl.KindDatatype {
			err = b.attribute(r)
		} else {
			err = b.association(r)
		}
		if err != nil {
			return nil, err
		}
	}
	b.flush()
	b.cluster()
	if err := b.g.Validate(); err != nil {
		return nil, err
	}
	return b.g, nil
}

type builder struct {
	ctx  context.Context
	c    *owl.Class
	ont  *owl.Ontology
	opts *Options
	g    *Graph
	res  *Resolver

	supers map[string]struct{}

	attrs     map[string]*attribute
	attrOrder []string
	edges     map[string]*assoc
	edgeOrder []string
}

// attribute is one merged datatype line of the main node.
type attribute struct {
	prop    string
	ranges  []string
	frags   []string
	refined bool
}

// assoc is one merged association edge, keyed by property and target.
type assoc struct {
	key     string
	prop    string
	to      string
	frags   []string
	refined bool
	inverse bool
}

func (b *builder) main() {
	n := &Node{
		ID:       owl.Slug(b.c.QName),
		Label:    b.c.QName,
		Kind:     MainNode,
		Abstract: b.c.Abstract(),
	}
	if b.opts.Abstract != nil {
		n.Abstract = b.opts.Abstract(b.c.Identifier)
	}
	b.g.Main = n.ID
	b.g.AddNode(n)
	b.res = NewResolver(b.ctx, b.ont, b.g, b.opts)
	b.res.Bind(b.c.Identifier, n.ID)
}

func (b *builder) superclasses() {
	b.supers = make(map[string]struct{})
	for _, s := range b.c.Superclasses() {
		if b.opts.ignored(s.Identifier, s.QName) {
			continue
		}
		id, _ := b.res.Resolve(&owl.Named{IRI: s.Identifier, Name: s.QName})
		if _, ok := b.supers[id]; ok {
			continue
		}
		b.supers[id] = struct{}{}
		b.g.AddEdge(&Edge{From: b.g.Main, To: id, Style: Solid, Arrow: Generalization})
	}
}

func (b *builder) attribute(r *owl.Restriction) error {
	prop := b.ont.QName(r.Property)
	a, ok := b.attrs[prop]
	if !ok {
		a = &attribute{prop: prop}
		b.attrs[prop] = a
		b.attrOrder = append(b.attrOrder, prop)
	}
	var ranges []string
	for _, v := range []quad.Value{r.OnDataRange, r.AllValuesFrom, r.SomeValuesFrom} {
		if iri, ok := v.(quad.IRI); ok {
			ranges = append(ranges, owl.LocalPart(b.ont.QName(iri)))
		} else if v != nil {
			ranges = append(ranges, b.ont.Expression(v).String())
		}
	}
	if len(ranges) == 0 && r.Kind == owl.KindDatatype {
		p, err := owl.GetProperty(b.ctx, b.ont, r.Property)
		if err != nil {
			return err
		}
		ranges = append(ranges, p.RangeName())
	} else if len(ranges) == 0 {
		ranges = append(ranges, "Thing")
	}
	a.ranges = addAll(a.ranges, ranges...)
	a.frags = addAll(a.frags, r.Fragments()...)
	if b.c.IsRefinement(r) {
		a.refined = true
	}
	return nil
}

func (b *builder) association(r *owl.Restriction) error {
	prop := b.ont.QName(r.Property)
	if r.Inverse {
		prop = "inverse " + prop
	}
	refined := b.c.IsRefinement(r)

	type target struct {
		v     quad.Value
		frags []string
	}
	var targets []*target
	add := func(v quad.Value, frag string) {
		for _, t := range targets {
			if t.v == v {
				t.frags = addAll(t.frags, frag)
				return
			}
		}
		targets = append(targets, &target{v: v, frags: []string{frag}})
	}
	var loose []string
	for _, bd := range r.Bounds {
		if bd.Qualified && r.OnClass != nil {
			add(r.OnClass, bd.String())
		} else {
			loose = append(loose, bd.String())
		}
	}
	if r.AllValuesFrom != nil {
		add(r.AllValuesFrom, "only")
	}
	if r.SomeValuesFrom != nil {
		add(r.SomeValuesFrom, "some")
	}
	if r.HasValue != nil {
		loose = append(loose, "value "+b.ont.QName(r.HasValue))
	}
	if r.HasSelf {
		add(b.c.Identifier, "Self")
	}
	if len(loose) > 0 {
		if len(targets) == 0 {
			p, err := owl.GetProperty(b.ctx, b.ont, r.Property)
			if err != nil {
				return err
			}
			if rng, err := p.Range(); err == nil {
				targets = append(targets, &target{v: rng})
			} else {
				if clog.V(2) {
					clog.Infof("diagram %s: %s has no target, drawing as attribute", b.c.QName, prop)
				}
				return b.attribute(r)
			}
		}
		for _, t := range targets {
			t.frags = addAll(t.frags, loose...)
		}
	}

	for _, t := range targets {
		if iri, ok := t.v.(quad.IRI); ok && iri != b.c.Identifier && b.opts.ignored(iri, b.ont.QName(iri)) {
			continue
		}
		id, _ := b.res.Resolve(b.ont.Expression(t.v))
		key := prop + "\x00" + id
		e, ok := b.edges[key]
		if !ok {
			e = &assoc{key: key, prop: prop, to: id, inverse: r.Inverse}
			b.edges[key] = e
			b.edgeOrder = append(b.edgeOrder, key)
		}
		e.frags = addAll(e.frags, t.frags...)
		if refined {
			e.refined = true
		}
	}
	return nil
}

// flush emits the merged attribute lines and association edges in a stable
// order.
func (b *builder) flush() {
	main, _ := b.g.Node(b.g.Main)
	sort.Strings(b.attrOrder)
	for _, prop := range b.attrOrder {
		a := b.attrs[prop]
		line := a.prop + ": " + strings.Join(a.ranges, " | ")
		if st := stereotype(a.frags, a.refined); st != "" {
			line += " " + st
		}
		main.Attributes = append(main.Attributes, line)
	}

	sort.Strings(b.edgeOrder)
	for _, key := range b.edgeOrder {
		a := b.edges[key]
		label := a.prop
		if st := stereotype(a.frags, a.refined); st != "" {
			label = st + " " + label
		}
		e := &Edge{From: b.g.Main, To: a.to, Label: label, Style: Solid, Arrow: Association, Refined: a.refined}
		if a.refined {
			e.Style = Dashed
		}
		if a.inverse {
			e.Arrow = Inverse
		}
		b.g.AddEdge(e)
	}
}

// cluster groups every node other than the main class and its
// superclasses, chained below an invisible anchor in label order.
func (b *builder) cluster() {
	var members []*Node
	for _, n := range b.g.Nodes {
		if n.ID == b.g.Main {
			continue
		}
		if _, ok := b.supers[n.ID]; ok {
			continue
		}
		members = append(members, n)
	}
	if len(members) == 0 {
		return
	}
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Label != members[j].Label {
			return members[i].Label < members[j].Label
		}
		return members[i].ID < members[j].ID
	})
	b.g.AddNode(&Node{ID: AnchorID, Kind: AnchorNode})
	b.g.Anchor = AnchorID
	prev := b.g.Main
	b.g.AddEdge(&Edge{From: prev, To: AnchorID, Style: Invisible, Arrow: NoArrow})
	prev = AnchorID
	for _, n := range members {
		b.g.Cluster = append(b.g.Cluster, n.ID)
		b.g.AddEdge(&Edge{From: prev, To: n.ID, Style: Invisible, Arrow: NoArrow})
		prev = n.ID
	}
}

// stereotype renders fragments as «a, b[, refined]».
func stereotype(frags []string, refined bool) string {
	parts := append([]string(nil), frags...)
	sort.Strings(parts)
	if refined {
		parts = append(parts, "refined")
	}
	if len(parts) == 0 {
		return ""
	}
	return "«" + strings.Join(parts, ", ") + "»"
}

func addAll(set []string, vals ...string) []string {
next:
	for _, v := range vals {
		for _, s := range set {
			if s == v {
				continue next
			}
		}
		set = append(set, v)
	}
	return set
}
