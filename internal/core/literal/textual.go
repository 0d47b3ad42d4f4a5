package literal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/logger"
)

var ErrEmptyText = errors.New("empty text")

// Embedder turns one text value into a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// TextualOptions configures AssembleTextual.
type TextualOptions struct {
	Dim           int
	Policy        model.FailurePolicy
	Concurrency   int
	ProgressEvery int
}

type embedding struct {
	vec []float32
	err error
}

// AssembleTextual scatters textual records into an entities x attributes x
// Dim tensor of embeddings plus a presence matrix. Duplicate cells keep the
// last record in table order. Embeddings are not normalised.
//
// Every distinct text is embedded once. Up to opts.Concurrency calls run at a
// time, each writing only its own result slot; scattering happens afterwards
// on the calling goroutine. Failures are resolved in table order, so with
// PolicyAbort the reported error is always the first failing row.
func AssembleTextual(ctx context.Context, records []model.Literal, entities, attrs *model.Vocabulary, embedder Embedder, opts TextualOptions) (*model.TextualLiterals, error) {
	if opts.Dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", opts.Dim)
	}

	groups, err := groupByEntity(model.TableTextual, records, entities, attrs)
	if err != nil {
		return nil, err
	}

	slots := make(map[string]int)
	var texts []string
	for _, r := range records {
		if strings.TrimSpace(r.Value) == "" {
			continue
		}
		if _, ok := slots[r.Value]; !ok {
			slots[r.Value] = len(texts)
			texts = append(texts, r.Value)
		}
	}

	results, err := embedAll(ctx, embedder, texts, opts)
	if err != nil {
		return nil, err
	}

	skipped := make(map[int]bool)
	for i, r := range records {
		var cause error
		if strings.TrimSpace(r.Value) == "" {
			cause = ErrEmptyText
		} else {
			cause = results[slots[r.Value]].err
		}
		if cause == nil {
			continue
		}

		ferr := &model.EmbeddingFailureError{Table: model.TableTextual, Row: i + 1, Text: r.Value, Err: cause}
		if opts.Policy != model.PolicySkip {
			return nil, ferr
		}
		logger.Warn("skipping textual literal", "err", ferr)
		skipped[i+1] = true
	}

	tensor := model.NewTensor3(entities.Len(), attrs.Len(), opts.Dim)
	presence := model.NewMatrix(entities.Len(), attrs.Len())

	progress := logger.NewProgress("textual literals", entities.Len(), opts.ProgressEvery)
	for e, group := range groups {
		for _, c := range group {
			if skipped[c.row] {
				continue
			}
			copy(tensor.Slot(e, c.attr), results[slots[c.value]].vec)
			presence.Set(e, c.attr, 1)
		}
		progress.Step()
	}
	progress.Finish()

	return &model.TextualLiterals{
		Attrs:      attrs,
		Embeddings: tensor,
		Presence:   presence,
	}, nil
}

// embedAll embeds texts with bounded concurrency. Per-text failures are kept
// in the result; only a cancelled context aborts the whole call.
func embedAll(ctx context.Context, embedder Embedder, texts []string, opts TextualOptions) ([]embedding, error) {
	results := make([]embedding, len(texts))
	if len(texts) == 0 {
		return results, nil
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = 1
	}

	logger.Info("embedding distinct text literals", "count", len(texts), "concurrency", limit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			vec, err := embedder.Embed(gctx, text)
			if err == nil && len(vec) != opts.Dim {
				err = fmt.Errorf("got %d values, want %d", len(vec), opts.Dim)
			}
			results[i] = embedding{vec: vec, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
