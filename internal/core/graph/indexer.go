package graph

import (
	"fmt"

	"github.com/agenthands/literalkg/internal/core/model"
)

// TableName is the name a split is reported under in errors.
func TableName(split model.Split) string {
	return fmt.Sprintf("%s triples", split)
}

// Index rewrites one triple split into parallel edge_index / edge_type arrays.
func Index(split model.Split, triples []model.Triple, entities, relations *model.Vocabulary) (model.Edges, error) {
	edges := model.Edges{
		Split: split,
		Index: [2][]int64{make([]int64, len(triples)), make([]int64, len(triples))},
		Types: make([]int64, len(triples)),
	}

	for i, t := range triples {
		head, ok := entities.ID(t.Head)
		if !ok {
			return model.Edges{}, &model.UnknownIdentifierError{Table: TableName(split), Row: i + 1, Kind: "entity", Value: t.Head}
		}
		tail, ok := entities.ID(t.Tail)
		if !ok {
			return model.Edges{}, &model.UnknownIdentifierError{Table: TableName(split), Row: i + 1, Kind: "entity", Value: t.Tail}
		}
		rel, ok := relations.ID(t.Relation)
		if !ok {
			return model.Edges{}, &model.UnknownIdentifierError{Table: TableName(split), Row: i + 1, Kind: "relation", Value: t.Relation}
		}

		edges.Index[0][i] = int64(head)
		edges.Index[1][i] = int64(tail)
		edges.Types[i] = int64(rel)
	}

	return edges, nil
}

// IndexAll indexes train, valid and test.
func IndexAll(triples map[model.Split][]model.Triple, entities, relations *model.Vocabulary) (map[model.Split]model.Edges, error) {
	out := make(map[model.Split]model.Edges, len(model.Splits))
	for _, split := range model.Splits {
		edges, err := Index(split, triples[split], entities, relations)
		if err != nil {
			return nil, err
		}
		out[split] = edges
	}
	return out, nil
}
