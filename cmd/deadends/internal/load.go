package internal

import (
	"io"
	"os"

	"github.com/lesfleursdelanuitdev/deadends-go/gedcom"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/database"
	"github.com/lesfleursdelanuitdev/deadends-go/gedcom/parser"
)

// countingReader tracks bytes read through it and forwards the count to a
// progress bar, so the load bar advances with the lexer's own read
// progress instead of an indeterminate spinner.
type countingReader struct {
	r    io.Reader
	bar  interface{ Add64(int64) error }
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 && c.bar != nil {
		c.bar.Add64(int64(n))
	}
	return n, err
}

// LoadFileWithProgress runs the same load pipeline as
// gedcom/database.LoadFile, but drives a progress bar off the bytes read
// from disk (spec.md §6 "External interfaces" load path). The pipeline
// itself is reproduced from database.LoadFile's steps rather than calling
// it directly, since LoadFile opens the path itself and offers no seam for
// an instrumented reader.
func LoadFileWithProgress(path string) (*database.Database, *gedcom.ErrorLog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}
	bar := NewLoadBar(path, size)
	defer bar.Finish()

	reader := &countingReader{r: file, bar: bar}

	log := gedcom.NewErrorLog()
	var lexErrs []*parser.LexError
	lines := parser.ReadLines(parser.NewReaderSource(reader), &lexErrs)
	for _, lexErr := range lexErrs {
		log.Add(gedcom.ErrorSyntax, gedcom.SeverityFatal, path, lexErr.LineNo, lexErr.Message)
	}

	roots, rootLines := parser.BuildForest(lines, path, log)

	db := database.NewDatabase(path)
	for i, root := range roots {
		db.StoreRecord(root, rootLines[i], log)
	}
	db.IndexNames()
	db.IndexRefns(log)

	return db, log, nil
}
