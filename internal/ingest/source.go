// Package ingest loads the raw relational and literal tables a build starts
// from.
package ingest

import (
	"context"

	"github.com/agenthands/literalkg/internal/core/model"
)

// File names inside an input directory.
const (
	TrainFile   = "train.txt"
	ValidFile   = "valid.txt"
	TestFile    = "test.txt"
	NumericFile = "numerical_literals.txt"
	TextualFile = "text_literals.txt"
)

var splitFiles = map[model.Split]string{
	model.SplitTrain: TrainFile,
	model.SplitValid: ValidFile,
	model.SplitTest:  TestFile,
}

// Source yields the five raw tables of a build.
type Source interface {
	Load(ctx context.Context) (model.Tables, error)
}
