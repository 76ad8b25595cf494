package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const fleetOFN = `Prefix(:=<http://example.com/fleet#>)
Ontology(<http://example.com/fleet>
  Declaration(Class(:Vehicle))
  Declaration(Class(:Truck))
  Declaration(Class(:Garage))
  SubClassOf(:Truck :Vehicle)
  SubClassOf(:Garage ObjectAllValuesFrom(:parks :Vehicle))
)
`

func run(t *testing.T, args ...string) (string, error) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return b.String(), err
}

func project(t *testing.T) (root, docs string) {
	root = t.TempDir()
	docs = filepath.Join(root, "docs")
	require.NoError(t, os.MkdirAll(docs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "fleet.ofn"), []byte(fleetOFN), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "mkdocs.yml"), []byte("site_name: Fleet\n"), 0o644))
	return root, docs
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "owldoc "))
}

func TestGenerate(t *testing.T) {
	root, docs := project(t)
	out, err := run(t, "generate",
		"--docs", docs,
		"--mkdocs", filepath.Join(root, "mkdocs.yml"),
		"--no-render",
		"--registry", "none",
	)
	require.NoError(t, err)
	require.Equal(t, "documented 3 classes from 1 files\n", out)
	require.FileExists(t, filepath.Join(docs, "classes", "Garage.md"))
	require.FileExists(t, filepath.Join(docs, "diagrams", "Garage.dot"))
	require.NoFileExists(t, filepath.Join(docs, "diagrams", "Garage.svg"))

	nav, err := os.ReadFile(filepath.Join(root, "mkdocs.yml"))
	require.NoError(t, err)
	require.Contains(t, string(nav), "- Home: index.md")
}

func TestGenerateConfigFile(t *testing.T) {
	root, docs := project(t)
	conf := filepath.Join(root, "owldoc.yml")
	require.NoError(t, os.WriteFile(conf, []byte(`docs:
  dir: `+docs+`
  mkdocs: `+filepath.Join(root, "mkdocs.yml")+`
diagram:
  render: false
registry:
  backend: leveldb
  path: `+filepath.Join(root, "registry")+`
`), 0o644))
	out, err := run(t, "generate", "--config", conf)
	require.NoError(t, err)
	require.Contains(t, out, "documented 3 classes")
	require.DirExists(t, filepath.Join(root, "registry"))
}

func TestGenerateInvalidConfig(t *testing.T) {
	_, docs := project(t)
	_, err := run(t, "generate", "--docs", docs, "--rankdir", "XY", "--no-render")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestGenerateNoSources(t *testing.T) {
	_, err := run(t, "generate", "--docs", t.TempDir(), "--no-render", "--registry", "none")
	require.Error(t, err)
}

func TestDiagram(t *testing.T) {
	_, docs := project(t)
	out, err := run(t, "diagram", filepath.Join(docs, "fleet.ofn"), "Garage", "--rankdir", "lr")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "digraph"))
	require.Contains(t, out, `rankdir="LR"`)
	require.Contains(t, out, "Vehicle")

	_, err = run(t, "diagram", filepath.Join(docs, "fleet.ofn"), "Boat")
	require.Error(t, err)
}

func TestDump(t *testing.T) {
	_, docs := project(t)
	out, err := run(t, "dump", filepath.Join(docs, "fleet.ofn"))
	require.NoError(t, err)
	require.Contains(t, out, "<http://example.com/fleet#Garage>")

	file := filepath.Join(t.TempDir(), "fleet.nq")
	out, err = run(t, "dump", filepath.Join(docs, "fleet.ofn"), "-o", file)
	require.NoError(t, err)
	require.Empty(t, out)
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "<http://example.com/fleet#Truck>")

	out, err = run(t, "dump", filepath.Join(docs, "fleet.ofn"), "--format", "graphviz")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "digraph owldoc {\n"))

	_, err = run(t, "dump", filepath.Join(docs, "fleet.ofn"), "--format", "nope")
	require.Error(t, err)
}
