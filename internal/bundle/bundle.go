// Package bundle persists a built dataset and reads it back.
package bundle

import (
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/agenthands/literalkg/internal/core"
	"github.com/agenthands/literalkg/internal/core/model"
)

// FormatVersion is bumped whenever the encoded layout changes.
const FormatVersion = 1

type Vocab struct {
	Names  []string
	Origin []int
}

type Edges struct {
	Heads []int64
	Tails []int64
	Types []int64
}

// Bundle is the on-disk form of a core.Dataset.
type Bundle struct {
	Version      int
	BuildID      string
	CreatedAt    time.Time
	EmbeddingDim int

	Entities     Vocab
	Relations    Vocab
	NumericAttrs Vocab
	TextualAttrs Vocab

	Edges map[string]Edges

	NumericValues   *model.Matrix
	NumericPresence *model.Matrix
	TextEmbeddings  *model.Tensor3
	TextPresence    *model.Matrix
	TextClusters    *model.Matrix

	NumericCounts map[string]int
	TextualCounts map[string]int
}

func vocabOf(v *model.Vocabulary) Vocab {
	return Vocab{Names: v.Names, Origin: v.Origin}
}

func (v Vocab) restore() *model.Vocabulary {
	return model.VocabularyFromNames(v.Names, v.Origin)
}

// FromDataset captures ds without copying its matrices.
func FromDataset(ds *core.Dataset) *Bundle {
	b := &Bundle{
		Version:         FormatVersion,
		BuildID:         ds.BuildID,
		CreatedAt:       ds.CreatedAt,
		EmbeddingDim:    ds.EmbeddingDim,
		Entities:        vocabOf(ds.Vocab.Entities),
		Relations:       vocabOf(ds.Vocab.Relations),
		NumericAttrs:    vocabOf(ds.Numeric.Attrs),
		TextualAttrs:    vocabOf(ds.Textual.Attrs),
		Edges:           make(map[string]Edges, len(ds.Edges)),
		NumericValues:   ds.Numeric.Values,
		NumericPresence: ds.Numeric.Presence,
		TextEmbeddings:  ds.Textual.Embeddings,
		TextPresence:    ds.Textual.Presence,
		TextClusters:    ds.Textual.Clusters,
		NumericCounts:   ds.NumericCounts,
		TextualCounts:   ds.TextualCounts,
	}
	for split, e := range ds.Edges {
		b.Edges[string(split)] = Edges{Heads: e.Index[0], Tails: e.Index[1], Types: e.Types}
	}
	return b
}

// Dataset rebuilds the in-memory dataset.
func (b *Bundle) Dataset() (*core.Dataset, error) {
	if b.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported bundle version %d (want %d)", b.Version, FormatVersion)
	}
	if b.NumericValues == nil || b.NumericPresence == nil || b.TextPresence == nil {
		return nil, fmt.Errorf("bundle %s is missing literal matrices", b.BuildID)
	}
	if b.TextEmbeddings == nil && b.TextClusters == nil {
		return nil, fmt.Errorf("bundle %s has neither text embeddings nor clusters", b.BuildID)
	}

	numericAttrs := b.NumericAttrs.restore()
	textualAttrs := b.TextualAttrs.restore()
	ds := &core.Dataset{
		BuildID:      b.BuildID,
		CreatedAt:    b.CreatedAt,
		EmbeddingDim: b.EmbeddingDim,
		Vocab: &model.Vocabularies{
			Entities:     b.Entities.restore(),
			Relations:    b.Relations.restore(),
			NumericAttrs: numericAttrs,
			TextualAttrs: textualAttrs,
		},
		Edges: make(map[model.Split]model.Edges, len(b.Edges)),
		Numeric: &model.NumericLiterals{
			Attrs:    numericAttrs,
			Values:   b.NumericValues,
			Presence: b.NumericPresence,
		},
		Textual: &model.TextualLiterals{
			Attrs:      textualAttrs,
			Embeddings: b.TextEmbeddings,
			Presence:   b.TextPresence,
			Clusters:   b.TextClusters,
		},
		NumericCounts: b.NumericCounts,
		TextualCounts: b.TextualCounts,
	}
	for split, e := range b.Edges {
		s := model.Split(split)
		ds.Edges[s] = model.Edges{Split: s, Index: [2][]int64{e.Heads, e.Tails}, Types: e.Types}
	}
	return ds, nil
}

func Encode(w io.Writer, ds *core.Dataset) error {
	if err := gob.NewEncoder(w).Encode(FromDataset(ds)); err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}
	return nil
}

func Decode(r io.Reader) (*core.Dataset, error) {
	var b Bundle
	if err := gob.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return b.Dataset()
}
