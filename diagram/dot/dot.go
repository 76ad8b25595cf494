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

// Package dot provides an encoder for class diagrams in DOT format
// (graphviz), and a renderer that turns DOT files into images.
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/owldoc/diagram"
)

// Options control the graph-level attributes of an encoded diagram.
type Options struct {
	// Rankdir is the graphviz rank direction, "TB" when empty.
	Rankdir  string
	FontName string
}

type encoder struct {
	w   io.Writer
	err error
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
)

func escape(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

var htmlEscaper = strings.NewReplacer(
	`&`, `&amp;`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	`"`, `&quot;`,
)

func (e *encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) printf(format string, args ...interface{}) {
	e.writeString(fmt.Sprintf(format, args...))
}

// Encode writes g as a DOT digraph. Nodes are drawn as HTML-like tables:
// a grey title cell, attribute rows for the main class and yellow boxes for
// synthetic expression nodes.
func Encode(w io.Writer, g *diagram.Graph, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	rankdir := opts.Rankdir
	if rankdir == "" {
		rankdir = "TB"
	}
	font := opts.FontName
	if font == "" {
		font = "Arial"
	}
	e := &encoder{w: w}
	e.printf("digraph %s {\n", escape(g.Name))
	e.printf("\tgraph [overlap=false, splines=true, rankdir=%s];\n", escape(rankdir))
	e.printf("\tnode [shape=none, fontsize=12, fontname=%s, margin=0];\n", escape(font))
	e.printf("\tedge [fontsize=11, fontname=%s];\n", escape(font))

	inCluster := make(map[string]struct{}, len(g.Cluster))
	for _, id := range g.Cluster {
		inCluster[id] = struct{}{}
	}
	for _, n := range g.Nodes {
		if _, ok := inCluster[n.ID]; ok || n.Kind == diagram.AnchorNode {
			continue
		}
		if n.Kind == diagram.MainNode {
			e.writeString("\t{\n\t\trank=max;\n\t")
			e.node(n)
			e.writeString("\t}\n")
			continue
		}
		e.node(n)
	}
	if g.Anchor != "" {
		e.writeString("\tsubgraph cluster_associated {\n\t\tstyle=invis;\n\t\tlabel=\"\";\n")
		e.printf("\t\t%s [label=\"\", style=invis, width=0, height=0];\n", escape(g.Anchor))
		for _, id := range g.Cluster {
			if n, ok := g.Node(id); ok {
				e.writeString("\t")
				e.node(n)
			}
		}
		e.writeString("\t}\n")
	}
	for _, ed := range g.Edges {
		e.edge(ed)
	}
	e.writeString("}\n")
	return e.err
}

func (e *encoder) node(n *diagram.Node) {
	e.printf("\t%s [label=<%s>", escape(n.ID), label(n))
	if n.URL != "" {
		e.printf(", URL=%s, tooltip=%s", escape(n.URL), escape(n.Label))
	}
	e.writeString("];\n")
}

const table = `<TABLE BORDER="1" CELLBORDER="0" CELLSPACING="0" CELLPADDING="1"`

func label(n *diagram.Node) string {
	text := htmlEscaper.Replace(n.Label)
	if n.Kind.Synthetic() {
		text = strings.Replace(text, "»[", "»<BR/>[", 1)
		return table + ` BGCOLOR="lightyellow"><TR><TD ALIGN="CENTER">` + text + `</TD></TR></TABLE>`
	}
	title := "<B>" + text + "</B>"
	if n.Abstract {
		title = "<I>" + title + "</I>"
	}
	var sb strings.Builder
	sb.WriteString(table)
	sb.WriteString(`><TR><TD BGCOLOR="lightgray" ALIGN="CENTER">`)
	sb.WriteString(title)
	sb.WriteString(`</TD></TR>`)
	for _, a := range n.Attributes {
		sb.WriteString(`<TR><TD ALIGN="LEFT">`)
		sb.WriteString(htmlEscaper.Replace(a))
		sb.WriteString(`</TD></TR>`)
	}
	sb.WriteString(`</TABLE>`)
	return sb.String()
}

func (e *encoder) edge(ed *diagram.Edge) {
	e.printf("\t%s -> %s [", escape(ed.From), escape(ed.To))
	attrs := []string{"style=" + ed.Style.String()}
	switch ed.Arrow {
	case diagram.Generalization:
		attrs = append(attrs, "arrowhead=onormal")
	case diagram.Association, diagram.Membership:
		attrs = append(attrs, "arrowhead=normal")
	case diagram.Inverse:
		attrs = append(attrs, "dir=back", "arrowtail=normal")
	case diagram.NoArrow:
		attrs = append(attrs, "arrowhead=none")
	}
	if ed.Label != "" {
		attrs = append(attrs, "label="+escape(ed.Label))
	}
	e.writeString(strings.Join(attrs, ", "))
	e.writeString("];\n")
}
