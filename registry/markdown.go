package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/clog"
)

const tableHeader = "| base_uri | name | type | description |\n|----------|------|------|-------------|\n"

// File is a registry stored as a markdown table with the columns
// base_uri, name, type and description.
type File struct {
	Path string
}

// OpenFile opens the markdown registry at path, creating an empty table when
// the file does not exist.
func OpenFile(path string) (*File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte(tableHeader), 0o644); err != nil {
			return nil, fmt.Errorf("could not create registry %q: %v", path, err)
		}
		clog.Infof("created new concept registry %s", path)
	} else if err != nil {
		return nil, err
	}
	return &File{Path: path}, nil
}

func (f *File) Load() ([]Entry, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadTable(fh)
}

func (f *File) Save(entries []Entry) error {
	fh, err := os.Create(f.Path)
	if err != nil {
		return err
	}
	if err := WriteTable(fh, entries); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

func (f *File) Close() error { return nil }

// ReadTable parses the first markdown table of r. Columns are found by
// header name; rows with fewer than three cells are skipped.
func ReadTable(r io.Reader) ([]Entry, error) {
	var (
		out     []Entry
		headers map[string]int
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(text, "|") {
			continue
		}
		cells := splitRow(text)
		if headers == nil {
			headers = make(map[string]int, len(cells))
			for i, h := range cells {
				headers[strings.ToLower(h)] = i
			}
			for _, h := range []string{"base_uri", "name", "type"} {
				if _, ok := headers[h]; !ok {
					return nil, fmt.Errorf("registry table has no %q column", h)
				}
			}
			continue
		}
		if strings.HasPrefix(text, "|--") || strings.HasPrefix(text, "| --") {
			continue
		}
		if len(cells) < 3 {
			clog.Warningf("registry line %d: skipping row with %d cells", line, len(cells))
			continue
		}
		cell := func(name string) string {
			i, ok := headers[name]
			if !ok || i >= len(cells) {
				return ""
			}
			return cells[i]
		}
		e := Entry{
			IRI:         quad.IRI(cell("base_uri") + cell("name")),
			Kind:        Kind(cell("type")),
			Description: cell("description"),
		}
		if !e.Kind.Valid() {
			clog.Warningf("registry line %d: unknown type %q", line, e.Kind)
			continue
		}
		out = append(out, e)
	}
	return out, sc.Err()
}

// WriteTable writes entries as a markdown table. Entries without a local
// name are skipped.
func WriteTable(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(tableHeader)
	for _, e := range entries {
		base, name := Split(string(e.IRI))
		if name == "" || !strings.HasPrefix(base, "http") {
			continue
		}
		fmt.Fprintf(bw, "| %s | %s | %s | %s |\n", escapeCell(base), escapeCell(name), e.Kind, escapeCell(e.Description))
	}
	return bw.Flush()
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func escapeCell(s string) string { return cellEscaper.Replace(strings.TrimSpace(s)) }

// splitRow returns the trimmed cells of a table row. "\|" is a literal pipe.
func splitRow(row string) []string {
	row = strings.TrimPrefix(row, "|")
	row = strings.TrimSuffix(row, "|")
	var (
		cells []string
		cur   strings.Builder
	)
	for i := 0; i < len(row); i++ {
		switch {
		case row[i] == '\\' && i+1 < len(row) && row[i+1] == '|':
			cur.WriteByte('|')
			i++
		case row[i] == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(row[i])
		}
	}
	return append(cells, strings.TrimSpace(cur.String()))
}
