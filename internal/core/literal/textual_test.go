package literal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/literalkg/internal/core/model"
)

func TestAssembleTextual(t *testing.T) {
	records := []model.Literal{
		{Entity: "e0", Attribute: "name", Value: "Berlin"},
		{Entity: "e1", Attribute: "desc", Value: "capital"},
		{Entity: "e3", Attribute: "name", Value: "Berlin"},
	}
	attrs := model.VocabularyFromNames([]string{"name", "desc"}, nil)
	embedder := &MockEmbedder{Dim: 3}

	lits, err := AssembleTextual(context.Background(), records, entityVocab(), attrs, embedder, TextualOptions{Dim: 3, Concurrency: 2})
	require.NoError(t, err)

	assert.Equal(t, 4, lits.Embeddings.D0)
	assert.Equal(t, 2, lits.Embeddings.D1)
	assert.Equal(t, 3, lits.Embeddings.D2)
	assert.Equal(t, []float32{6, 6, 6}, lits.Embeddings.Slot(0, 0))
	assert.Equal(t, []float32{7, 7, 7}, lits.Embeddings.Slot(1, 1))
	assert.Equal(t, []float32{0, 0, 0}, lits.Embeddings.Slot(2, 0))
	assert.Equal(t, float32(1), lits.Presence.At(3, 0))
	assert.Equal(t, float32(0), lits.Presence.At(3, 1))
	assert.False(t, lits.Quantized())

	// repeated text is embedded once
	assert.Equal(t, 1, embedder.Calls["Berlin"])
}

func TestAssembleTextual_LastRecordWins(t *testing.T) {
	records := []model.Literal{
		{Entity: "e0", Attribute: "name", Value: "first"},
		{Entity: "e0", Attribute: "name", Value: "second!"},
	}
	attrs := model.VocabularyFromNames([]string{"name"}, nil)

	lits, err := AssembleTextual(context.Background(), records, entityVocab(), attrs, &MockEmbedder{Dim: 2}, TextualOptions{Dim: 2})
	require.NoError(t, err)
	assert.Equal(t, []float32{7, 7}, lits.Embeddings.Slot(0, 0))
}

func TestAssembleTextual_EmptyTextAbort(t *testing.T) {
	records := []model.Literal{
		{Entity: "e0", Attribute: "name", Value: "ok"},
		{Entity: "e1", Attribute: "name", Value: "  "},
	}
	attrs := model.VocabularyFromNames([]string{"name"}, nil)

	_, err := AssembleTextual(context.Background(), records, entityVocab(), attrs, &MockEmbedder{Dim: 2}, TextualOptions{Dim: 2, Policy: model.PolicyAbort})
	var ferr *model.EmbeddingFailureError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, 2, ferr.Row)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestAssembleTextual_FailureReportedInTableOrder(t *testing.T) {
	records := []model.Literal{
		{Entity: "e0", Attribute: "name", Value: "fine"},
		{Entity: "e1", Attribute: "name", Value: "bad-1"},
		{Entity: "e2", Attribute: "name", Value: "bad-2"},
	}
	attrs := model.VocabularyFromNames([]string{"name"}, nil)
	embedder := &MockEmbedder{Dim: 2, Fail: map[string]bool{"bad-1": true, "bad-2": true}}

	for i := 0; i < 5; i++ {
		_, err := AssembleTextual(context.Background(), records, entityVocab(), attrs, embedder, TextualOptions{Dim: 2, Concurrency: 3})
		var ferr *model.EmbeddingFailureError
		require.True(t, errors.As(err, &ferr))
		assert.Equal(t, 2, ferr.Row)
		assert.Equal(t, "bad-1", ferr.Text)
	}
}

func TestAssembleTextual_Skip(t *testing.T) {
	records := []model.Literal{
		{Entity: "e0", Attribute: "name", Value: "fine"},
		{Entity: "e1", Attribute: "name", Value: "broken"},
		{Entity: "e2", Attribute: "name", Value: ""},
	}
	attrs := model.VocabularyFromNames([]string{"name"}, nil)
	embedder := &MockEmbedder{Dim: 2, Fail: map[string]bool{"broken": true}}

	lits, err := AssembleTextual(context.Background(), records, entityVocab(), attrs, embedder, TextualOptions{Dim: 2, Policy: model.PolicySkip})
	require.NoError(t, err)

	assert.Equal(t, float32(1), lits.Presence.At(0, 0))
	assert.Equal(t, float32(0), lits.Presence.At(1, 0))
	assert.Equal(t, float32(0), lits.Presence.At(2, 0))
	assert.Equal(t, []float32{0, 0}, lits.Embeddings.Slot(1, 0))
}

func TestAssembleTextual_WrongDimension(t *testing.T) {
	records := []model.Literal{{Entity: "e0", Attribute: "name", Value: "x"}}
	attrs := model.VocabularyFromNames([]string{"name"}, nil)

	_, err := AssembleTextual(context.Background(), records, entityVocab(), attrs, &MockEmbedder{Dim: 4}, TextualOptions{Dim: 3})
	var ferr *model.EmbeddingFailureError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Error(), "got 4 values, want 3")
}

func TestAssembleTextual_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []model.Literal{{Entity: "e0", Attribute: "name", Value: "x"}}
	attrs := model.VocabularyFromNames([]string{"name"}, nil)

	_, err := AssembleTextual(ctx, records, entityVocab(), attrs, &MockEmbedder{Dim: 1}, TextualOptions{Dim: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
