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
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/owl"
)

// Resolver turns class expressions into diagram nodes. Each expression is
// materialized at most once per graph: the visited set maps store values to
// the node ids already emitted.
type Resolver struct {
	ctx     context.Context
	ont     *owl.Ontology
	g       *Graph
	opts    *Options
	visited map[quad.Value]string
}

// NewResolver returns a resolver adding nodes to g. The visited set lives as
// long as the resolver, so one resolver must serve exactly one diagram.
func NewResolver(ctx context.Context, ont *owl.Ontology, g *Graph, opts *Options) *Resolver {
	if opts == nil {
		opts = &Options{}
	}
	return &Resolver{ctx: ctx, ont: ont, g: g, opts: opts, visited: make(map[quad.Value]string)}
}

// Bind makes v resolve to an existing node id.
func (r *Resolver) Bind(v quad.Value, id string) { r.visited[v] = id }

// Resolve returns the node id and display label for e, emitting the node
// and any membership edges on first use.
func (r *Resolver) Resolve(e owl.Expression) (string, string) {
	if id, ok := r.visited[e.Node()]; ok {
		n, _ := r.g.Node(id)
		return id, n.Label
	}
	switch e := e.(type) {
	case *owl.Named:
		n := &Node{
			ID:       owl.Slug(e.Name),
			Label:    e.Name,
			Kind:     ClassNode,
			Abstract: r.abstract(e.IRI),
			URL:      r.opts.link(e.Name),
		}
		return r.emit(e.IRI, n), n.Label
	case *owl.Union:
		return r.compound(e.ID, UnionNode, "unionOf", e.Members, " or ")
	case *owl.Intersection:
		return r.compound(e.ID, IntersectionNode, "intersectionOf", e.Members, " and ")
	case *owl.Complement:
		n := &Node{
			ID:    syntheticID("not", e.ID),
			Label: "«complementOf»[" + e.Of.String() + "]",
			Kind:  ComplementNode,
		}
		id := r.emit(e.ID, n)
		of, _ := r.Resolve(e.Of)
		r.g.AddEdge(&Edge{From: id, To: of, Label: "of", Style: Dotted, Arrow: Membership})
		return id, n.Label
	}
	n := &Node{
		ID:    syntheticID("expr", e.Node()),
		Label: e.String(),
		Kind:  ExpressionNode,
	}
	return r.emit(e.Node(), n), n.Label
}

func (r *Resolver) compound(v quad.Value, kind NodeKind, op string, members []owl.Expression, sep string) (string, string) {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.String()
	}
	n := &Node{
		ID:    syntheticID(op, v),
		Label: "«" + op + "»[" + strings.Join(parts, sep) + "]",
		Kind:  kind,
	}
	id := r.emit(v, n)
	for _, m := range members {
		mid, _ := r.Resolve(m)
		r.g.AddEdge(&Edge{From: id, To: mid, Label: "member", Style: Dotted, Arrow: Membership})
	}
	return id, n.Label
}

// emit records v and adds n to the graph. Two values mapping to one id
// share the node.
func (r *Resolver) emit(v quad.Value, n *Node) string {
	r.visited[v] = n.ID
	r.g.AddNode(n)
	return n.ID
}

func (r *Resolver) abstract(iri quad.IRI) bool {
	if r.opts.Abstract != nil {
		return r.opts.Abstract(iri)
	}
	if !r.ont.IsClass(iri) {
		return false
	}
	c, err := owl.GetClass(r.ctx, r.ont, iri)
	return err == nil && c.Abstract()
}

// syntheticID derives a node id from a store value. Synthetic ids contain
// '-', which slugs of display names never do.
func syntheticID(op string, v quad.Value) string {
	var key string
	switch v := v.(type) {
	case quad.BNode:
		key = string(v)
	case quad.IRI:
		key = string(v)
	default:
		key = quad.StringOf(v)
	}
	return op + "-" + owl.Slug(key)
}
