package docs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Ontology is what the index and nav show of one source document.
type Ontology struct {
	// Name qualifies page names in runs over several documents.
	Name        string
	Title       string
	Description string
	// File is the source file name, relative to the docs directory.
	File     string
	Patterns []Link
	Classes  []Link
}

// DefaultTitle is shown for ontologies without a title annotation.
const DefaultTitle = "Untitled Ontology"

const noReadme = "No README.md file found for title"

// WriteIndex writes index.md. A single ontology gets its own title; several
// ontologies are listed under the title of the project README.
func WriteIndex(w io.Writer, title string, onts []Ontology) error {
	var b strings.Builder
	if len(onts) == 1 {
		o := onts[0]
		fmt.Fprintf(&b, "# %s\n\n", titleOf(o))
		writeIndexBody(&b, o)
	} else {
		if title == "" {
			title = noReadme
		}
		fmt.Fprintf(&b, "# %s\n\n", title)
		onts = append([]Ontology(nil), onts...)
		sortBy(onts, titleOf)
		for _, o := range onts {
			fmt.Fprintf(&b, "## %s\n\n", titleOf(o))
			writeIndexBody(&b, o)
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func titleOf(o Ontology) string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func writeIndexBody(b *strings.Builder, o Ontology) {
	if o.Description != "" {
		fmt.Fprintf(b, "%s\n\n", o.Description)
	}
	if len(o.Patterns) > 0 {
		b.WriteString("This ontology consists of the following patterns:\n\n")
		writeLinks(b, o.Patterns)
	}
	if len(o.Classes) > 0 {
		if len(o.Patterns) > 0 {
			b.WriteString("\nThe ontology also contains the following classes that are not assigned to any pattern:\n\n")
		} else {
			b.WriteString("This ontology consists of the following classes:\n\n")
		}
		writeLinks(b, o.Classes)
	}
	if o.File != "" {
		syntax := strings.ToUpper(strings.TrimPrefix(path.Ext(o.File), "."))
		fmt.Fprintf(b, "\nThe formal definition of this ontology is available in [%s Syntax](%s).\n", syntax, o.File)
	}
}

func writeLinks(b *strings.Builder, ls []Link) {
	ls = append([]Link(nil), ls...)
	sortLinks(ls)
	for _, l := range ls {
		fmt.Fprintf(b, "- [%s](classes/%s)\n", l.Display, l.Target)
	}
}

// ReadmeTitle returns the first line of a README, without heading marks.
// A missing file returns "".
func ReadmeTitle(path string) (string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "", nil
	} else if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return "", sc.Err()
	}
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(sc.Text()), "#")), nil
}

// WriteFile creates path and its directory and writes through fn.
func WriteFile(path string, fn func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
