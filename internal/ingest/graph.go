package ingest

import (
	"context"
	"fmt"

	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/driver"
	"github.com/agenthands/literalkg/internal/logger"
)

const importBatchSize = 5000

// GraphSource reads the relational triples from a Memgraph database and the
// literal tables from a directory.
type GraphSource struct {
	Driver   driver.GraphDriver
	Literals *DirSource
}

func NewGraphSource(d driver.GraphDriver, literalDir string) *GraphSource {
	return &GraphSource{Driver: d, Literals: NewDirSource(literalDir)}
}

func (s *GraphSource) Load(ctx context.Context) (model.Tables, error) {
	triples := make(map[model.Split][]model.Triple, len(model.Splits))
	for _, split := range model.Splits {
		res, err := s.Driver.ExecuteQuery(ctx, driver.GetTriplesBySplitQuery, map[string]interface{}{
			"split": string(split),
		})
		if err != nil {
			return model.Tables{}, fmt.Errorf("failed to read %s triples: %w", split, err)
		}

		rows := make([]model.Triple, 0, len(res.Records))
		for i, rec := range res.Records {
			head, _ := rec.Get("head")
			rel, _ := rec.Get("relation")
			tail, _ := rec.Get("tail")
			h, ok1 := head.(string)
			r, ok2 := rel.(string)
			t, ok3 := tail.(string)
			if !ok1 || !ok2 || !ok3 {
				return model.Tables{}, fmt.Errorf("%s triples row %d: expected string head, relation and tail", split, i+1)
			}
			rows = append(rows, model.Triple{Head: h, Relation: r, Tail: t})
		}
		triples[split] = rows
		logger.Debug("read triples from memgraph", "split", split, "rows", len(rows))
	}

	numeric, textual, err := s.Literals.LoadLiterals(ctx)
	if err != nil {
		return model.Tables{}, err
	}
	return model.Tables{Triples: triples, Numeric: numeric, Textual: textual}, nil
}

// ImportTriples replaces the stored triples of every split with the given
// ones, in batches.
func ImportTriples(ctx context.Context, d driver.GraphDriver, triples map[model.Split][]model.Triple) error {
	if err := d.BuildIndices(ctx); err != nil {
		return err
	}

	for _, split := range model.Splits {
		params := map[string]interface{}{"split": string(split)}
		if _, err := d.ExecuteQuery(ctx, driver.DeleteSplitQuery, params); err != nil {
			return fmt.Errorf("failed to clear %s triples: %w", split, err)
		}

		rows := triples[split]
		for start := 0; start < len(rows); start += importBatchSize {
			end := min(start+importBatchSize, len(rows))
			batch := make([]map[string]interface{}, 0, end-start)
			for _, t := range rows[start:end] {
				batch = append(batch, map[string]interface{}{
					"head":     t.Head,
					"relation": t.Relation,
					"tail":     t.Tail,
				})
			}
			_, err := d.ExecuteQuery(ctx, driver.SaveTriplesQuery, map[string]interface{}{
				"split": string(split),
				"rows":  batch,
			})
			if err != nil {
				return fmt.Errorf("failed to import %s triples %d-%d: %w", split, start, end, err)
			}
		}
		logger.Info("imported triples", "split", split, "rows", len(rows))
	}
	return nil
}
