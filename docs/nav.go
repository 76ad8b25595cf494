package docs

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NavItem is one entry of the MkDocs nav: a page, or a section of items.
type NavItem struct {
	Title    string
	Path     string
	Children []NavItem
}

// Nav builds the navigation: Home, then per ontology its patterns (with
// their member classes) and the classes outside any pattern. A single
// ontology is not wrapped in a section.
func Nav(onts []Ontology, members map[string][]Link) []NavItem {
	nav := []NavItem{{Title: "Home", Path: "index.md"}}
	if len(onts) == 1 {
		return append(nav, ontologyNav(onts[0], members)...)
	}
	onts = append([]Ontology(nil), onts...)
	sortBy(onts, titleOf)
	for _, o := range onts {
		items := ontologyNav(o, members)
		if len(items) == 0 {
			continue
		}
		nav = append(nav, NavItem{Title: titleOf(o), Children: items})
	}
	return nav
}

func ontologyNav(o Ontology, members map[string][]Link) []NavItem {
	var items []NavItem
	patterns := append([]Link(nil), o.Patterns...)
	sortLinks(patterns)
	for _, p := range patterns {
		ms := append([]Link(nil), members[p.Target]...)
		if len(ms) == 0 {
			continue
		}
		sortLinks(ms)
		sec := NavItem{Title: p.Display}
		for _, m := range ms {
			sec.Children = append(sec.Children, NavItem{Title: m.Display, Path: "classes/" + m.Target})
		}
		items = append(items, sec)
	}
	classes := append([]Link(nil), o.Classes...)
	sortLinks(classes)
	for _, c := range classes {
		items = append(items, NavItem{Title: c.Display, Path: "classes/" + c.Target})
	}
	return items
}

func (it NavItem) node() *yaml.Node {
	val := &yaml.Node{Kind: yaml.ScalarNode, Value: it.Path}
	if it.Path == "" {
		val = navNode(it.Children)
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: it.Title},
		val,
	}}
}

func navNode(items []NavItem) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, it := range items {
		seq.Content = append(seq.Content, it.node())
	}
	return seq
}

// SetNav replaces the nav key of a mkdocs.yml document, keeping every other
// key, comment and custom tag (e.g. !!python/name) as written.
func SetNav(src []byte, nav []NavItem) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parse mkdocs config: %w", err)
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("mkdocs config is not a mapping")
	}
	root := doc.Content[0]
	value := navNode(nav)
	replaced := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "nav" {
			root.Content[i+1] = value
			replaced = true
			break
		}
	}
	if !replaced {
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "nav"}, value)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UpdateNav rewrites the nav of the mkdocs.yml at path.
func UpdateNav(path string, nav []NavItem) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read mkdocs config: %w", err)
	}
	out, err := SetNav(src, nav)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
