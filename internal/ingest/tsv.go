package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/logger"
)

// DirSource reads tab-separated tables without header rows from a directory.
type DirSource struct {
	Dir string
}

func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

func (s *DirSource) Load(ctx context.Context) (model.Tables, error) {
	triples, err := s.LoadTriples(ctx)
	if err != nil {
		return model.Tables{}, err
	}
	numeric, textual, err := s.LoadLiterals(ctx)
	if err != nil {
		return model.Tables{}, err
	}
	return model.Tables{Triples: triples, Numeric: numeric, Textual: textual}, nil
}

func (s *DirSource) LoadTriples(ctx context.Context) (map[model.Split][]model.Triple, error) {
	out := make(map[model.Split][]model.Triple, len(model.Splits))
	for _, split := range model.Splits {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readTSV(filepath.Join(s.Dir, splitFiles[split]))
		if err != nil {
			return nil, err
		}
		triples := make([]model.Triple, len(rows))
		for i, r := range rows {
			triples[i] = model.Triple{Head: r[0], Relation: r[1], Tail: r[2]}
		}
		out[split] = triples
		logger.Debug("loaded triples", "split", split, "rows", len(triples))
	}
	return out, nil
}

func (s *DirSource) LoadLiterals(ctx context.Context) (numeric, textual []model.Literal, err error) {
	if numeric, err = s.loadLiteralFile(ctx, NumericFile); err != nil {
		return nil, nil, err
	}
	if textual, err = s.loadLiteralFile(ctx, TextualFile); err != nil {
		return nil, nil, err
	}
	return numeric, textual, nil
}

func (s *DirSource) loadLiteralFile(ctx context.Context, name string) ([]model.Literal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := readTSV(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, err
	}
	lits := make([]model.Literal, len(rows))
	for i, r := range rows {
		lits[i] = model.Literal{Entity: r[0], Attribute: r[1], Value: r[2]}
	}
	logger.Debug("loaded literals", "file", name, "rows", len(lits))
	return lits, nil
}

func readTSV(path string) ([][3]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	rows, err := ParseTSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// maxLineSize bounds a single table row; long text literals can exceed
// bufio's 64KiB default.
const maxLineSize = 16 << 20

// ParseTSV reads three-column tab-separated rows. Quotes carry no meaning:
// every value is taken verbatim up to the next tab or line end. Blank lines
// are skipped; any other line without exactly three fields is an error
// naming its 1-based line number.
func ParseTSV(r io.Reader) ([][3]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var rows [][3]string
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", line, len(fields))
		}
		rows = append(rows, [3]string{fields[0], fields[1], fields[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", line+1, err)
	}
	return rows, nil
}
