package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agenthands/literalkg/internal/config"
	"github.com/agenthands/literalkg/internal/core/graph"
	"github.com/agenthands/literalkg/internal/core/literal"
	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/core/vocab"
	"github.com/agenthands/literalkg/internal/logger"
)

// Builder runs the one-shot transform from raw tables to a Dataset.
type Builder struct {
	Embedder      literal.Embedder
	EmbeddingDim  int
	ParsePolicy   model.FailurePolicy
	EmbedPolicy   model.FailurePolicy
	Concurrency   int
	ProgressEvery int
}

func NewBuilder(embedder literal.Embedder, cfg *config.Config) *Builder {
	parse, embed := cfg.Policies()
	return &Builder{
		Embedder:      embedder,
		EmbeddingDim:  cfg.Pipeline.EmbeddingDim,
		ParsePolicy:   parse,
		EmbedPolicy:   embed,
		Concurrency:   cfg.Concurrency.Embed,
		ProgressEvery: cfg.Pipeline.ProgressEvery,
	}
}

// Build turns the raw tables into a Dataset. Each stage only consumes what
// the previous stages returned; nothing is shared through the Builder.
func (b *Builder) Build(ctx context.Context, tables model.Tables) (*Dataset, error) {
	if b.Embedder == nil {
		return nil, fmt.Errorf("builder has no embedder")
	}

	start := time.Now()
	logger.Info("building vocabularies",
		"triples", tables.TripleCount(),
		"numeric_literals", len(tables.Numeric),
		"textual_literals", len(tables.Textual))

	vocabs, err := vocab.Build(tables)
	if err != nil {
		return nil, err
	}
	logger.Info("vocabularies built",
		"entities", vocabs.Entities.Len(),
		"relations", vocabs.Relations.Len(),
		"numeric_attrs", vocabs.NumericAttrs.Len(),
		"textual_attrs", vocabs.TextualAttrs.Len())

	edges, err := graph.IndexAll(tables.Triples, vocabs.Entities, vocabs.Relations)
	if err != nil {
		return nil, err
	}

	numeric, err := literal.AssembleNumeric(tables.Numeric, vocabs.Entities, vocabs.NumericAttrs, literal.NumericOptions{
		Policy:        b.ParsePolicy,
		ProgressEvery: b.ProgressEvery,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble numeric literals: %w", err)
	}

	textual, err := literal.AssembleTextual(ctx, tables.Textual, vocabs.Entities, vocabs.TextualAttrs, b.Embedder, literal.TextualOptions{
		Dim:           b.EmbeddingDim,
		Policy:        b.EmbedPolicy,
		Concurrency:   b.Concurrency,
		ProgressEvery: b.ProgressEvery,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assemble textual literals: %w", err)
	}

	ds := &Dataset{
		BuildID:       uuid.New().String(),
		CreatedAt:     time.Now().UTC(),
		EmbeddingDim:  b.EmbeddingDim,
		Vocab:         vocabs,
		Edges:         edges,
		Numeric:       numeric,
		Textual:       textual,
		NumericCounts: model.AttributeCounts(tables.Numeric),
		TextualCounts: model.AttributeCounts(tables.Textual),
	}

	logger.Info("dataset built", "build_id", ds.BuildID, "elapsed", time.Since(start).Round(time.Millisecond))
	return ds, nil
}
