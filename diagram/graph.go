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

// Package diagram compiles the logical axioms of an OWL class into a
// class-diagram graph: nodes, styled edges and an associated-classes
// cluster. Layout and rendering are left to emitters such as diagram/dot.
package diagram

import "fmt"

// NodeKind tells emitters how to draw a node.
type NodeKind int

const (
	// ClassNode is a named class other than the one being diagrammed.
	ClassNode NodeKind = iota
	// MainNode is the class being diagrammed.
	MainNode
	UnionNode
	IntersectionNode
	ComplementNode
	// ExpressionNode is any other anonymous expression, drawn as text.
	ExpressionNode
	// AnchorNode is the invisible layout anchor of the associated cluster.
	AnchorNode
)

// Synthetic reports whether nodes of this kind stand for anonymous
// expressions.
func (k NodeKind) Synthetic() bool {
	switch k {
	case UnionNode, IntersectionNode, ComplementNode, ExpressionNode:
		return true
	}
	return false
}

// Node is a diagram node. Attributes are only set on the main node.
type Node struct {
	ID         string
	Label      string
	Kind       NodeKind
	Abstract   bool
	URL        string
	Attributes []string
}

// Style is the line style of an edge.
type Style int

const (
	Solid Style = iota
	Dashed
	Dotted
	Invisible
)

func (s Style) String() string {
	switch s {
	case Dashed:
		return "dashed"
	case Dotted:
		return "dotted"
	case Invisible:
		return "invis"
	}
	return "solid"
}

// Arrow is the head style of an edge.
type Arrow int

const (
	// Association is a plain property edge.
	Association Arrow = iota
	// Generalization is the hollow-triangle subclass edge.
	Generalization
	// Membership connects a synthetic expression node to its operands.
	Membership
	// Inverse is a property edge read from target to source.
	Inverse
	NoArrow
)

// Edge is a directed diagram edge.
type Edge struct {
	From, To string
	Label    string
	Style    Style
	Arrow    Arrow
	Refined  bool
}

// Graph is the diagram of one class.
type Graph struct {
	// Name is the display name of the diagrammed class.
	Name string
	// Main is the id of the main node.
	Main  string
	Nodes []*Node
	Edges []*Edge
	// Cluster lists the associated class node ids in layout order.
	Cluster []string
	// Anchor is the id of the cluster anchor node, empty without a cluster.
	Anchor string

	index map[string]*Node
}

// NewGraph returns an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{Name: name, index: make(map[string]*Node)}
}

// AddNode inserts n unless a node with the same id exists. It reports
// whether n was inserted.
func (g *Graph) AddNode(n *Node) bool {
	if _, ok := g.index[n.ID]; ok {
		return false
	}
	g.index[n.ID] = n
	g.Nodes = append(g.Nodes, n)
	return true
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// AddEdge appends e.
func (g *Graph) AddEdge(e *Edge) { g.Edges = append(g.Edges, e) }

// Validate checks that node ids are unique and every edge endpoint exists.
func (g *Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("diagram %s: node %q has no id", g.Name, n.Label)
		}
		if _, ok := seen[n.ID]; ok {
			return fmt.Errorf("diagram %s: duplicate node id %q", g.Name, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	if _, ok := seen[g.Main]; !ok {
		return fmt.Errorf("diagram %s: missing main node %q", g.Name, g.Main)
	}
	for _, e := range g.Edges {
		if _, ok := seen[e.From]; !ok {
			return fmt.Errorf("diagram %s: edge from unknown node %q", g.Name, e.From)
		}
		if _, ok := seen[e.To]; !ok {
			return fmt.Errorf("diagram %s: edge to unknown node %q", g.Name, e.To)
		}
	}
	for _, id := range g.Cluster {
		if _, ok := seen[id]; !ok {
			return fmt.Errorf("diagram %s: cluster member %q is not a node", g.Name, id)
		}
	}
	return nil
}
