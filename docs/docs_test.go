package docs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cayleygraph/owldoc/graph/memstore"
	"github.com/cayleygraph/owldoc/owl"
	"github.com/cayleygraph/owldoc/quad/ofn"
)

func TestInsertSpaces(t *testing.T) {
	for in, out := range map[string]string{
		"Vehicle":         "Vehicle",
		"TruckTrailer":    "Truck Trailer",
		"HTTPRequestLine": "HTTP Request Line",
		"Road2Segment":    "Road2 Segment",
		"ext:ParkingLot":  "ext:Parking Lot",
	} {
		require.Equal(t, out, InsertSpaces(in))
	}
}

func TestBaseName(t *testing.T) {
	require.Equal(t, "Vehicle", BaseName("fleet", "Vehicle", false))
	require.Equal(t, "fleet__Vehicle", BaseName("fleet", "Vehicle", true))
	require.Equal(t, "ext_Asset", BaseName("fleet", "ext:Asset", false))
}

const fleetOFN = `Prefix(:=<http://example.com/fleet#>)
Prefix(skos:=<http://www.w3.org/2004/02/skos/core#>)
Prefix(dcterms:=<http://purl.org/dc/terms/>)
Ontology(<http://example.com/fleet>
  Declaration(Class(:Vehicle))
  Declaration(Class(:Truck))
  Declaration(Class(:Garage))
  Declaration(Class(:Engine))
  SubClassOf(:Truck :Vehicle)
  SubClassOf(:Vehicle ObjectExactCardinality(1 :hasEngine :Engine))
  SubClassOf(:Truck ObjectExactCardinality(2 :hasEngine :Engine))
  SubClassOf(:Garage ObjectAllValuesFrom(:parks :Vehicle))
  AnnotationAssertion(dcterms:description :Vehicle "Anything that moves")
  AnnotationAssertion(dcterms:description :Truck "A heavy | big vehicle")
  AnnotationAssertion(skos:note :Vehicle "Includes bikes")
  AnnotationAssertion(skos:example :Vehicle "A car")
  AnnotationAssertion(rdfs:seeAlso :Vehicle "ISO 1234")
)
`

func fleet(t *testing.T) *owl.Ontology {
	doc, err := ofn.Parse(fleetOFN)
	require.NoError(t, err)
	prefixes := append(doc.Prefixes, owl.WellKnownPrefixes()...)
	return owl.New(memstore.New(doc.Quads...), owl.NewNamespaces(string(doc.IRI), prefixes))
}

func linker(name string) (Link, bool) {
	switch name {
	case "Truck", "Garage", "Vehicle":
		return Link{Name: name, Display: InsertSpaces(name), Target: name + ".md"}, true
	}
	return Link{}, false
}

func TestClassPage(t *testing.T) {
	o := fleet(t)
	c, err := owl.GetClass(context.TODO(), o, "http://example.com/fleet#Vehicle")
	require.NoError(t, err)

	p := NewClassPage(c, linker, "Vehicle")
	var buf bytes.Buffer
	require.NoError(t, WriteClassPage(&buf, p))
	require.Equal(t, `# Vehicle

Anything that moves

NOTE: Includes bikes

EXAMPLE: A car

![Vehicle Diagram](../diagrams/Vehicle.svg)

<a href="../../diagrams/Vehicle.svg">Open interactive Vehicle diagram</a>

## Specializations of Vehicle

| Class | Description |
|-------|-------------|
| [Truck](Truck.md) | A heavy \| big vehicle |

## Formalization for Vehicle

| Property | Constraint |
|----------|------------|
| hasEngine | exactly 1 Engine |

## Used by classes

| Class | Property | Constraint |
|-------|----------|------------|
| [Garage](Garage.md) | parks | only Vehicle |

## Other annotations

| Annotation | Value |
|------------|-------|
| rdfs:seeAlso | ISO 1234 |

`, buf.String())
}

func TestClassPageRefined(t *testing.T) {
	o := fleet(t)
	c, err := owl.GetClass(context.TODO(), o, "http://example.com/fleet#Truck")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteClassPage(&buf, NewClassPage(c, linker, "")))
	out := buf.String()
	require.Contains(t, out, "| hasEngine | exactly 2 Engine *(refined)* |\n")
	require.Contains(t, out, "| subClassOf | Vehicle |\n")
	require.NotContains(t, out, "Diagram")
	require.NotContains(t, out, "## Specializations")
}

func TestPatternPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePatternPage(&buf, &PatternPage{
		Name:        "TrafficPattern",
		Description: "Things on roads.",
		Members: []Link{
			{Display: "Truck", Target: "Truck.md"},
			{Display: "car park", Target: "CarPark.md"},
		},
	}))
	require.Equal(t, `# Traffic Pattern

Things on roads.

It consists of the following classes:

- [car park](CarPark.md)
- [Truck](Truck.md)
`, buf.String())
}

func TestIndex(t *testing.T) {
	single := Ontology{
		Name:        "fleet",
		Title:       "Fleet",
		Description: "Vehicles and garages.",
		File:        "fleet.ofn",
		Patterns:    []Link{{Display: "Traffic Pattern", Target: "TrafficPattern.md"}},
		Classes:     []Link{{Display: "Garage", Target: "Garage.md"}},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteIndex(&buf, "ignored", []Ontology{single}))
	require.Equal(t, `# Fleet

Vehicles and garages.

This ontology consists of the following patterns:

- [Traffic Pattern](classes/TrafficPattern.md)

The ontology also contains the following classes that are not assigned to any pattern:

- [Garage](classes/Garage.md)

The formal definition of this ontology is available in [OFN Syntax](fleet.ofn).
`, buf.String())

	buf.Reset()
	other := Ontology{Name: "roads", File: "roads.ttl", Classes: []Link{{Display: "Road", Target: "roads__Road.md"}}}
	require.NoError(t, WriteIndex(&buf, "", []Ontology{single, other}))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "# "+noReadme+"\n\n## Fleet\n\n"))
	require.Contains(t, out, "## Untitled Ontology\n\nThis ontology consists of the following classes:\n\n- [Road](classes/roads__Road.md)\n")
	require.Contains(t, out, "[TTL Syntax](roads.ttl)")
}

func TestReadmeTitle(t *testing.T) {
	dir := t.TempDir()
	title, err := ReadmeTitle(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	require.Equal(t, "", title)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# ITS Ontologies\n\nMore.\n"), 0o644))
	title, err = ReadmeTitle(filepath.Join(dir, "README.md"))
	require.NoError(t, err)
	require.Equal(t, "ITS Ontologies", title)
}

const mkdocsYML = `site_name: Fleet
# keep me
theme:
  name: material
markdown_extensions:
  - pymdownx.emoji:
      emoji_index: !!python/name:material.extensions.emoji.twemoji
nav:
  - Old: old.md
extra:
  version: 1
`

func TestNav(t *testing.T) {
	onts := []Ontology{{
		Name:     "fleet",
		Title:    "Fleet",
		Patterns: []Link{{Display: "Traffic Pattern", Target: "TrafficPattern.md"}, {Display: "Empty", Target: "Empty.md"}},
		Classes:  []Link{{Display: "Garage", Target: "Garage.md"}},
	}}
	members := map[string][]Link{
		"TrafficPattern.md": {{Display: "Truck", Target: "Truck.md"}},
	}
	nav := Nav(onts, members)
	require.Equal(t, []NavItem{
		{Title: "Home", Path: "index.md"},
		{Title: "Traffic Pattern", Children: []NavItem{{Title: "Truck", Path: "classes/Truck.md"}}},
		{Title: "Garage", Path: "classes/Garage.md"},
	}, nav)

	onts = append(onts, Ontology{Name: "roads", Title: "Roads", Classes: []Link{{Display: "Road", Target: "roads__Road.md"}}})
	nav = Nav(onts, members)
	require.Len(t, nav, 3)
	require.Equal(t, "Fleet", nav[1].Title)
	require.Equal(t, []NavItem{{Title: "Road", Path: "classes/roads__Road.md"}}, nav[2].Children)
}

func TestSetNav(t *testing.T) {
	nav := []NavItem{
		{Title: "Home", Path: "index.md"},
		{Title: "Traffic Pattern", Children: []NavItem{{Title: "Truck", Path: "classes/Truck.md"}}},
	}
	out, err := SetNav([]byte(mkdocsYML), nav)
	require.NoError(t, err)
	text := string(out)
	require.Contains(t, text, "# keep me")
	require.Contains(t, text, "!!python/name:material.extensions.emoji.twemoji")
	require.NotContains(t, text, "old.md")
	require.Less(t, strings.Index(text, "nav:"), strings.Index(text, "extra:"))

	var cfg struct {
		SiteName string                   `yaml:"site_name"`
		Nav      []map[string]interface{} `yaml:"nav"`
		Extra    map[string]int           `yaml:"extra"`
	}
	require.NoError(t, yaml.Unmarshal(out, &cfg))
	require.Equal(t, "Fleet", cfg.SiteName)
	require.Equal(t, 1, cfg.Extra["version"])
	require.Equal(t, "index.md", cfg.Nav[0]["Home"])
	require.Equal(t, []interface{}{map[string]interface{}{"Truck": "classes/Truck.md"}}, cfg.Nav[1]["Traffic Pattern"])

	out, err = SetNav(nil, nav[:1])
	require.NoError(t, err)
	require.Equal(t, "nav:\n  - Home: index.md\n", string(out))

	_, err = SetNav([]byte("- a\n- b\n"), nav)
	require.Error(t, err)
}

func TestUpdateNav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mkdocs.yml")
	require.NoError(t, os.WriteFile(path, []byte(mkdocsYML), 0o644))
	require.NoError(t, UpdateNav(path, []NavItem{{Title: "Home", Path: "index.md"}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "- Home: index.md")
	require.Error(t, UpdateNav(filepath.Join(t.TempDir(), "missing.yml"), nil))
}
