// Package literal turns sparse literal records into dense per-entity feature
// matrices and filters their attribute columns by frequency.
package literal

import (
	"github.com/agenthands/literalkg/internal/core/model"
)

// cell is a literal record resolved to vocabulary ids. row is the 1-based
// line in the raw table.
type cell struct {
	row    int
	entity int
	attr   int
	value  string
}

// groupByEntity resolves every record once and buckets it by entity id,
// keeping input order inside each bucket.
func groupByEntity(table string, records []model.Literal, entities, attrs *model.Vocabulary) ([][]cell, error) {
	groups := make([][]cell, entities.Len())
	for i, r := range records {
		e, ok := entities.ID(r.Entity)
		if !ok {
			return nil, &model.UnknownIdentifierError{Table: table, Row: i + 1, Kind: "entity", Value: r.Entity}
		}
		a, ok := attrs.ID(r.Attribute)
		if !ok {
			return nil, &model.UnknownIdentifierError{Table: table, Row: i + 1, Kind: "attribute relation", Value: r.Attribute}
		}
		groups[e] = append(groups[e], cell{row: i + 1, entity: e, attr: a, value: r.Value})
	}
	return groups, nil
}
