package site

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/owldoc/internal/config"
)

const fleetOFN = `Prefix(:=<http://example.com/fleet#>)
Prefix(xsd:=<http://www.w3.org/2001/XMLSchema#>)
Prefix(dcterms:=<http://purl.org/dc/terms/>)
Ontology(<http://example.com/fleet>
  Annotation(dcterms:title "Fleet")
  Declaration(Class(:Vehicle))
  Declaration(Class(:Truck))
  Declaration(Class(:Garage))
  Declaration(ObjectProperty(:parks))
  SubClassOf(:Truck :Vehicle)
  SubClassOf(:Garage ObjectAllValuesFrom(:parks :Vehicle))
  AnnotationAssertion(dcterms:description :Vehicle "Anything that moves")
  AnnotationAssertion(xsd:pattern :Truck "Traffic")
  AnnotationAssertion(xsd:pattern :Vehicle "Traffic")
)
`

const roadsOFN = `Prefix(:=<http://example.com/roads#>)
Prefix(dcterms:=<http://purl.org/dc/terms/>)
Ontology(<http://example.com/roads>
  Annotation(dcterms:title "Roads")
  Declaration(Class(:Road))
  Declaration(Class(:Vehicle))
)
`

const mkdocs = `site_name: Fleet
nav:
  - Old: old.md
`

type testSite struct {
	root string
	cfg  *config.Config
}

func newSite(t *testing.T, files map[string]string) *testSite {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(docs, name), []byte(data), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, "mkdocs.yml"), []byte(mkdocs), 0o644))
	return &testSite{root: root, cfg: &config.Config{
		DocsDir:         docs,
		MkDocs:          filepath.Join(root, "mkdocs.yml"),
		Sources:         []string{"*.ofn"},
		Formats:         []string{"svg", "png"},
		Rankdir:         "TB",
		RegistryBackend: config.RegistryMarkdown,
		RegistryPath:    filepath.Join(root, "concept_registry.md"),
	}}
}

func (s *testSite) read(t *testing.T, elem ...string) string {
	data, err := os.ReadFile(filepath.Join(append([]string{s.root}, elem...)...))
	require.NoError(t, err)
	return string(data)
}

func TestSources(t *testing.T) {
	s := newSite(t, map[string]string{"a.ofn": "", "b.ttl": "", "notes.md": ""})
	require.NoError(t, os.MkdirAll(filepath.Join(s.cfg.DocsDir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(s.cfg.DocsDir, "sub", "c.ofn"), nil, 0o644))

	s.cfg.Sources = []string{"**/*.ofn", "*.ttl", "a.ofn"}
	files, err := Sources(s.cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"a.ofn", "b.ttl", "sub/c.ofn"}, files)

	s.cfg.Sources = []string{"*.owl"}
	_, err = Sources(s.cfg)
	require.ErrorIs(t, err, ErrNoSources)
}

func TestOntologyName(t *testing.T) {
	for in, out := range map[string]string{
		"fleet.ofn":        "fleet",
		"sub/roads.ttl.gz": "roads",
		"its.owl.bz2":      "its",
		"plain":            "plain",
	} {
		require.Equal(t, out, OntologyName(in))
	}
}

func TestGenerateSingle(t *testing.T) {
	s := newSite(t, map[string]string{"fleet.ofn": fleetOFN})
	rep, err := Generate(context.Background(), s.cfg)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Files)
	require.Equal(t, 3, rep.Classes)
	require.Equal(t, 0, rep.Failed)
	require.Empty(t, rep.Diagnostics)

	page := s.read(t, "docs", "classes", "Garage.md")
	require.True(t, strings.HasPrefix(page, "# Garage\n"))
	require.Contains(t, page, "![Garage Diagram](../diagrams/Garage.svg)")
	require.Contains(t, page, "| parks | only Vehicle |")

	require.Contains(t, s.read(t, "docs", "classes", "Vehicle.md"), "| [Garage](Garage.md) | parks | only Vehicle |")

	dotText := s.read(t, "docs", "diagrams", "Garage.dot")
	require.True(t, strings.HasPrefix(dotText, "digraph"))
	require.Contains(t, dotText, `URL="../classes/Vehicle/"`)

	pattern := s.read(t, "docs", "classes", "Traffic.md")
	require.Contains(t, pattern, "- [Truck](Truck.md)\n- [Vehicle](Vehicle.md)\n")

	index := s.read(t, "docs", "index.md")
	require.True(t, strings.HasPrefix(index, "# Fleet\n"))
	require.Contains(t, index, "- [Traffic](classes/Traffic.md)")
	require.Contains(t, index, "not assigned to any pattern:\n\n- [Garage](classes/Garage.md)\n")

	nav := s.read(t, "mkdocs.yml")
	require.NotContains(t, nav, "old.md")
	require.Contains(t, nav, "- Traffic:\n")
	require.Contains(t, nav, "- Garage: classes/Garage.md")

	reg := s.read(t, "concept_registry.md")
	require.Contains(t, reg, "| http://example.com/fleet# | Garage | class |  |\n")
	require.Contains(t, reg, "| http://example.com/fleet# | parks | object_property |  |\n")
}

func TestGenerateMulti(t *testing.T) {
	s := newSite(t, map[string]string{
		"fleet.ofn": fleetOFN,
		"roads.ofn": roadsOFN,
		"empty.ofn": "",
	})
	require.NoError(t, os.WriteFile(filepath.Join(s.root, "README.md"), []byte("# Transport\n"), 0o644))

	rep, err := Generate(context.Background(), s.cfg)
	require.NoError(t, err)
	require.Equal(t, 2, rep.Files)
	require.Equal(t, 5, rep.Classes)
	require.Len(t, rep.Diagnostics, 1)
	require.Contains(t, rep.Diagnostics[0], "empty.ofn")

	require.FileExists(t, filepath.Join(s.cfg.DocsDir, "classes", "fleet__Vehicle.md"))
	require.FileExists(t, filepath.Join(s.cfg.DocsDir, "classes", "roads__Vehicle.md"))
	require.FileExists(t, filepath.Join(s.cfg.DocsDir, "diagrams", "roads__Road.dot"))

	index := s.read(t, "docs", "index.md")
	require.True(t, strings.HasPrefix(index, "# Transport\n\n## Fleet\n"))
	require.Contains(t, index, "- [Vehicle (roads)](classes/roads__Vehicle.md)")
	require.Contains(t, index, "[OFN Syntax](roads.ofn)")
}

func TestGenerateNoSources(t *testing.T) {
	s := newSite(t, nil)
	_, err := Generate(context.Background(), s.cfg)
	require.ErrorIs(t, err, ErrNoSources)
}

func TestGenerateMissingRenderer(t *testing.T) {
	s := newSite(t, map[string]string{"fleet.ofn": fleetOFN})
	s.cfg.Render = true
	s.cfg.DotBinary = "owldoc-no-such-dot-binary"
	s.cfg.RegistryBackend = config.RegistryNone

	rep, err := Generate(context.Background(), s.cfg)
	require.NoError(t, err)
	require.Equal(t, 3, rep.Classes)
	require.Equal(t, 0, rep.Failed)
	require.Len(t, rep.Diagnostics, 1)
	require.Contains(t, rep.Diagnostics[0], "graphviz renderer not available")
	require.NoFileExists(t, filepath.Join(s.root, "concept_registry.md"))
}

func TestGenerateClassFailure(t *testing.T) {
	s := newSite(t, map[string]string{"fleet.ofn": fleetOFN})
	s.cfg.RegistryBackend = config.RegistryNone
	// Garage loses its diagram and Truck its page.
	require.NoError(t, os.MkdirAll(filepath.Join(s.cfg.DocsDir, DiagramsDir, "Garage.dot"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(s.cfg.DocsDir, ClassesDir, "Truck.md"), 0o755))

	rep, err := Generate(context.Background(), s.cfg)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Files)
	require.Equal(t, 2, rep.Classes)
	require.Equal(t, 2, rep.Failed)
	require.Len(t, rep.Diagnostics, 2)
	diags := strings.Join(rep.Diagnostics, "\n")
	require.Contains(t, diags, "fleet.ofn: diagram of Garage:")
	require.Contains(t, diags, "fleet.ofn: page of Truck:")

	garage := s.read(t, "docs", "classes", "Garage.md")
	require.True(t, strings.HasPrefix(garage, "# Garage\n"))
	require.NotContains(t, garage, "Garage Diagram")
	require.Contains(t, garage, "| parks | only Vehicle |")

	require.Contains(t, s.read(t, "docs", "classes", "Vehicle.md"), "![Vehicle Diagram](../diagrams/Vehicle.svg)")
	require.FileExists(t, filepath.Join(s.cfg.DocsDir, DiagramsDir, "Truck.dot"))
	require.FileExists(t, filepath.Join(s.cfg.DocsDir, "index.md"))
}

func TestGenerateCancelled(t *testing.T) {
	s := newSite(t, map[string]string{"fleet.ofn": fleetOFN})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, s.cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	sink := fileSink{d: &d, file: "fleet.ofn"}
	sink.Addf("restriction %s has no property", "_:b0")
	d.Addf("plain")
	require.Equal(t, 2, d.Len())
	lines := d.Lines()
	require.Equal(t, []string{"fleet.ofn: restriction _:b0 has no property", "plain"}, lines)
	lines[0] = "changed"
	require.Equal(t, "fleet.ofn: restriction _:b0 has no property", d.Lines()[0])
}
