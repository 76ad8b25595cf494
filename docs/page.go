package docs

import (
	"fmt"
	"io"
	"strings"

	"github.com/cayleygraph/owldoc/owl"
)

// UsedBy is a restriction of another documented class that targets the
// page class.
type UsedBy struct {
	Link
	Property   string
	Constraint string
}

// ClassPage is the content of one class page.
type ClassPage struct {
	Name        string
	Description string
	Note        string
	Example     string
	// Diagram is the diagram base name; empty leaves the diagram out.
	Diagram string
	// ImageFormat is the extension of the embedded image, "svg" by default.
	ImageFormat string

	Specializations []Link
	Formalization   []owl.Row
	UsedBy          []UsedBy
	Annotations     []owl.Annotation
}

// NewClassPage collects the page content of c. Only classes the linker
// knows appear as specializations and users.
func NewClassPage(c *owl.Class, link Linker, diagram string) *ClassPage {
	p := &ClassPage{
		Name:          c.QName,
		Description:   c.Description(),
		Note:          c.Note(),
		Example:       c.Example(),
		Diagram:       diagram,
		Formalization: c.Formalization(),
		Annotations:   c.Annotations(),
	}
	for _, d := range c.Descendants() {
		if l, ok := link(d.QName); ok {
			l.Description = d.Description()
			p.Specializations = append(p.Specializations, l)
		}
	}
	sortLinks(p.Specializations)
	for _, u := range c.Ontology().UsedBy(c.Identifier) {
		if l, ok := link(u.Class); ok {
			p.UsedBy = append(p.UsedBy, UsedBy{Link: l, Property: u.Property, Constraint: u.Constraint})
		}
	}
	return p
}

// WriteClassPage writes the markdown page of a class.
func WriteClassPage(w io.Writer, p *ClassPage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	if p.Note != "" {
		fmt.Fprintf(&b, "NOTE: %s\n\n", p.Note)
	}
	if p.Example != "" {
		fmt.Fprintf(&b, "EXAMPLE: %s\n\n", p.Example)
	}
	if p.Diagram != "" {
		format := p.ImageFormat
		if format == "" {
			format = "svg"
		}
		image := p.Diagram + "." + format
		fmt.Fprintf(&b, "![%s Diagram](../diagrams/%s)\n\n", p.Name, image)
		fmt.Fprintf(&b, "<a href=\"../../diagrams/%s\">Open interactive %s diagram</a>\n\n", image, p.Name)
	}

	if len(p.Specializations) > 0 {
		fmt.Fprintf(&b, "## Specializations of %s\n\n", p.Name)
		b.WriteString("| Class | Description |\n|-------|-------------|\n")
		for _, l := range p.Specializations {
			fmt.Fprintf(&b, "| [%s](%s) | %s |\n", l.Display, l.Target, cell(l.Description))
		}
		b.WriteString("\n")
	}

	if len(p.Formalization) > 0 {
		fmt.Fprintf(&b, "## Formalization for %s\n\n", p.Name)
		b.WriteString("| Property | Constraint |\n|----------|------------|\n")
		for _, r := range p.Formalization {
			constraint := cell(r.Constraint)
			if r.Refined {
				constraint += " *(refined)*"
			}
			fmt.Fprintf(&b, "| %s | %s |\n", cell(r.Property), constraint)
		}
		b.WriteString("\n")
	}

	if len(p.UsedBy) > 0 {
		b.WriteString("## Used by classes\n\n")
		b.WriteString("| Class | Property | Constraint |\n|-------|----------|------------|\n")
		for _, u := range p.UsedBy {
			fmt.Fprintf(&b, "| [%s](%s) | %s | %s |\n", u.Display, u.Target, cell(u.Property), cell(u.Constraint))
		}
		b.WriteString("\n")
	}

	if len(p.Annotations) > 0 {
		b.WriteString("## Other annotations\n\n")
		b.WriteString("| Annotation | Value |\n|------------|-------|\n")
		for _, a := range p.Annotations {
			fmt.Fprintf(&b, "| %s | %s |\n", cell(a.Property), cell(a.Value))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// PatternPage groups the classes annotated with one design pattern.
type PatternPage struct {
	Name        string
	Description string
	Members     []Link
}

// WritePatternPage writes the markdown page of a pattern.
func WritePatternPage(w io.Writer, p *PatternPage) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", InsertSpaces(p.Name))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Description)
	}
	b.WriteString("It consists of the following classes:\n\n")
	members := append([]Link(nil), p.Members...)
	sortLinks(members)
	for _, l := range members {
		fmt.Fprintf(&b, "- [%s](%s)\n", l.Display, l.Target)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func sortLinks(ls []Link) {
	sortBy(ls, func(l Link) string { return l.Display })
}
