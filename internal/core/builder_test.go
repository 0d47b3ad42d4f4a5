package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/literalkg/internal/config"
	"github.com/agenthands/literalkg/internal/core/cluster"
	"github.com/agenthands/literalkg/internal/core/model"
)

func testTables() model.Tables {
	return model.Tables{
		Triples: map[model.Split][]model.Triple{
			model.SplitTrain: {
				{Head: "/m/berlin", Relation: "/location/capital_of", Tail: "/m/germany"},
				{Head: "/m/paris", Relation: "/location/capital_of", Tail: "/m/france"},
				{Head: "/m/germany", Relation: "/location/borders", Tail: "/m/france"},
			},
			model.SplitValid: {
				{Head: "/m/france", Relation: "/location/borders", Tail: "/m/germany"},
			},
			model.SplitTest: {
				{Head: "/m/rome", Relation: "/location/capital_of", Tail: "/m/italy"},
			},
		},
		Numeric: []model.Literal{
			{Entity: "/m/berlin", Attribute: "population", Value: "3600000"},
			{Entity: "/m/paris", Attribute: "population", Value: "2100000"},
			{Entity: "/m/rome", Attribute: "population", Value: "2800000"},
			{Entity: "/m/germany", Attribute: "area", Value: "357022"},
			{Entity: "/m/atlantis", Attribute: "depth", Value: "5.0"},
		},
		Textual: []model.Literal{
			{Entity: "/m/berlin", Attribute: "name", Value: "Berlin"},
			{Entity: "/m/paris", Attribute: "name", Value: "Paris"},
			{Entity: "/m/rome", Attribute: "name", Value: "Rome"},
			{Entity: "/m/italy", Attribute: "name", Value: "Italy"},
			{Entity: "/m/italy", Attribute: "description", Value: "a country in southern Europe"},
		},
	}
}

func testBuilder(dim int) *Builder {
	cfg := config.Default()
	cfg.Pipeline.EmbeddingDim = dim
	return NewBuilder(&MockEmbedder{Dim: dim}, cfg)
}

func TestBuild(t *testing.T) {
	ds, err := testBuilder(4).Build(context.Background(), testTables())
	require.NoError(t, err)

	assert.NotEmpty(t, ds.BuildID)
	assert.Equal(t, 7, ds.Vocab.Entities.Len())
	assert.Equal(t, 2, ds.Vocab.Relations.Len())

	for _, split := range model.Splits {
		e := ds.Edges[split]
		for i := 0; i < e.Len(); i++ {
			assert.Less(t, e.Index[0][i], int64(ds.Vocab.Entities.Len()))
			assert.Less(t, e.Index[1][i], int64(ds.Vocab.Entities.Len()))
			assert.Less(t, e.Types[i], int64(ds.Vocab.Relations.Len()))
		}
	}
	assert.Equal(t, 3, ds.Edges[model.SplitTrain].Len())

	assert.Equal(t, ds.Vocab.Entities.Len(), ds.Numeric.Values.Rows)
	assert.Equal(t, ds.Vocab.NumericAttrs.Len(), ds.Numeric.Values.Cols)
	assert.Equal(t, ds.Vocab.Entities.Len(), ds.Textual.Embeddings.D0)
	assert.Equal(t, ds.Vocab.TextualAttrs.Len(), ds.Textual.Embeddings.D1)
	assert.Equal(t, 4, ds.Textual.Embeddings.D2)

	// only entity with "depth": normalised to 1, every other entity 0
	atlantis, _ := ds.Vocab.Entities.ID("/m/atlantis")
	depth, _ := ds.Vocab.NumericAttrs.ID("depth")
	for e := 0; e < ds.Vocab.Entities.Len(); e++ {
		if e == atlantis {
			assert.InDelta(t, 1.0, ds.Numeric.Values.At(e, depth), 1e-6)
		} else {
			assert.Equal(t, float32(0), ds.Numeric.Values.At(e, depth))
		}
	}

	assert.Equal(t, 3, ds.NumericCounts["population"])
	assert.Equal(t, 4, ds.TextualCounts["name"])
}

func TestBuild_Errors(t *testing.T) {
	tables := testTables()
	tables.Numeric = append(tables.Numeric, model.Literal{Entity: "/m/rome", Attribute: "area", Value: "n/a"})

	_, err := testBuilder(2).Build(context.Background(), tables)
	var perr *model.LiteralParseError
	assert.True(t, errors.As(err, &perr))

	b := testBuilder(2)
	b.ParsePolicy = model.PolicySkip
	_, err = b.Build(context.Background(), tables)
	assert.NoError(t, err)

	b = testBuilder(2)
	b.Embedder = &MockEmbedder{Dim: 2, Err: errors.New("service unavailable")}
	_, err = b.Build(context.Background(), testTables())
	var ferr *model.EmbeddingFailureError
	assert.True(t, errors.As(err, &ferr))

	empty := testTables()
	empty.Numeric = nil
	_, err = testBuilder(2).Build(context.Background(), empty)
	var verr *model.EmptyVocabularyError
	assert.True(t, errors.As(err, &verr))

	b.Embedder = nil
	_, err = b.Build(context.Background(), testTables())
	assert.Error(t, err)
}

func TestDataset_FilterByFrequency(t *testing.T) {
	ds, err := testBuilder(2).Build(context.Background(), testTables())
	require.NoError(t, err)

	ds.FilterByFrequency(0)
	assert.Equal(t, 3, ds.Vocab.NumericAttrs.Len())
	assert.Equal(t, 2, ds.Vocab.TextualAttrs.Len())

	ds.FilterByFrequency(1)
	assert.Equal(t, []string{"population"}, ds.Vocab.NumericAttrs.Names)
	assert.Equal(t, []string{"name"}, ds.Vocab.TextualAttrs.Names)
	assert.Same(t, ds.Numeric.Attrs, ds.Vocab.NumericAttrs)
	assert.Equal(t, 1, ds.Numeric.Values.Cols)
	assert.Equal(t, 1, ds.Textual.Embeddings.D1)

	ds.FilterByFrequency(10)
	assert.Equal(t, 0, ds.Vocab.NumericAttrs.Len())
	assert.Equal(t, 0, ds.Vocab.TextualAttrs.Len())
	assert.Equal(t, ds.Vocab.Entities.Len(), ds.Numeric.Values.Rows)
}

func TestDataset_ClusterText(t *testing.T) {
	ds, err := testBuilder(3).Build(context.Background(), testTables())
	require.NoError(t, err)
	ds.FilterByFrequency(1)

	require.NoError(t, ds.ClusterText(context.Background(), cluster.NewKMeans(), 3, 0))

	assert.True(t, ds.Textual.Quantized())
	assert.Equal(t, ds.Vocab.Entities.Len(), ds.Textual.Clusters.Rows)
	assert.Equal(t, 3, ds.Textual.Clusters.Cols)
	for r := 0; r < ds.Textual.Clusters.Rows; r++ {
		var sum float32
		for _, v := range ds.Textual.Clusters.Row(r) {
			sum += v
		}
		assert.Equal(t, float32(1), sum)
	}

	stats := ds.Stats()
	assert.Equal(t, 3, stats.TextualClusters)
	assert.Equal(t, 3, stats.Edges["train"])
	assert.Equal(t, 3, stats.NumericPresent)
	assert.Equal(t, 4, stats.TextualPresent)
}

func TestDataset_Entity(t *testing.T) {
	ds, err := testBuilder(2).Build(context.Background(), testTables())
	require.NoError(t, err)

	f, err := ds.Entity("/m/italy")
	require.NoError(t, err)
	assert.Empty(t, f.Numeric)
	assert.ElementsMatch(t, []string{"name", "description"}, f.Textual)
	assert.Nil(t, f.Cluster)

	f, err = ds.Entity("/m/berlin")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f.Numeric["population"], 1e-6)

	_, err = ds.Entity("/m/nowhere")
	assert.Error(t, err)
}
