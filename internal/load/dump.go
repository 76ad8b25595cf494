package load

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/owldoc/clog"
	"github.com/cayleygraph/owldoc/graph"
)

// Dump writes the triples of a loaded ontology to outFile ("-" for stdout)
// in a registered quad format. A ".gz" output is compressed.
func Dump(qs graph.QuadStore, outFile, typ string) error {
	if typ == "" || typ == "quad" {
		typ = "nquads"
	}
	format := quad.FormatByName(typ)
	if format == nil {
		return fmt.Errorf("unsupported format: %q", typ)
	} else if format.Writer == nil {
		return fmt.Errorf("encoding in %s format is not supported", typ)
	}

	var f *os.File
	if outFile == "-" || outFile == "" {
		f = os.Stdout
	} else {
		var err error
		f, err = os.Create(outFile)
		if err != nil {
			return fmt.Errorf("could not open file %q: %v", outFile, err)
		}
		defer f.Close()
		clog.Infof("dumping ontology to file %q", outFile)
	}

	var w io.Writer = f
	if filepath.Ext(outFile) == ".gz" {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}
	n, err := Write(w, qs, format)
	if err != nil {
		return err
	}
	if f != os.Stdout {
		clog.Infof("%d triples were written", n)
	}
	return nil
}

// Write copies every triple of qs to w in the given format.
func Write(w io.Writer, qs graph.QuadStore, format *quad.Format) (int, error) {
	qw := format.Writer(w)
	defer qw.Close()

	qr := graph.NewQuadStoreReader(qs)
	defer qr.Close()

	n, err := quad.Copy(qw, qr)
	if err != nil {
		return n, err
	} else if err = qw.Close(); err != nil {
		return n, err
	}
	return n, nil
}
