package core

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/literalkg/internal/core/cluster"
	"github.com/agenthands/literalkg/internal/core/literal"
	"github.com/agenthands/literalkg/internal/core/model"
)

// Dataset is the built link-prediction dataset. Every matrix is indexed on
// its first axis by Vocab.Entities; Vocab.NumericAttrs and
// Vocab.TextualAttrs are always the same vocabularies as Numeric.Attrs and
// Textual.Attrs.
//
// FilterByFrequency and ClusterText change the dataset in place and cannot
// be undone.
type Dataset struct {
	BuildID      string
	CreatedAt    time.Time
	EmbeddingDim int

	Vocab   *model.Vocabularies
	Edges   map[model.Split]model.Edges
	Numeric *model.NumericLiterals
	Textual *model.TextualLiterals

	// Raw row counts per attribute relation, from the input literal tables.
	NumericCounts map[string]int
	TextualCounts map[string]int
}

// FilterByFrequency keeps only attribute relations with more than threshold
// raw rows, in both literal kinds.
func (d *Dataset) FilterByFrequency(threshold int) {
	d.Numeric, _ = literal.FilterNumeric(d.Numeric, d.NumericCounts, threshold)
	d.Textual, _ = literal.FilterTextual(d.Textual, d.TextualCounts, threshold)
	d.Vocab.NumericAttrs = d.Numeric.Attrs
	d.Vocab.TextualAttrs = d.Textual.Attrs
}

// ClusterText quantises the textual literals into k one-hot clusters.
func (d *Dataset) ClusterText(ctx context.Context, c cluster.Clusterer, k int, seed uint64) error {
	return cluster.Quantize(ctx, d.Textual, c, k, seed)
}

type Stats struct {
	BuildID         string         `json:"build_id"`
	CreatedAt       time.Time      `json:"created_at"`
	Entities        int            `json:"entities"`
	Relations       int            `json:"relations"`
	NumericAttrs    int            `json:"numeric_attrs"`
	TextualAttrs    int            `json:"textual_attrs"`
	EmbeddingDim    int            `json:"embedding_dim"`
	TextualClusters int            `json:"textual_clusters,omitempty"`
	Edges           map[string]int `json:"edges"`
	NumericPresent  int            `json:"numeric_present"`
	TextualPresent  int            `json:"textual_present"`
}

func (d *Dataset) Stats() Stats {
	s := Stats{
		BuildID:      d.BuildID,
		CreatedAt:    d.CreatedAt,
		Entities:     d.Vocab.Entities.Len(),
		Relations:    d.Vocab.Relations.Len(),
		NumericAttrs: d.Numeric.Attrs.Len(),
		TextualAttrs: d.Textual.Attrs.Len(),
		EmbeddingDim: d.EmbeddingDim,
		Edges:        make(map[string]int, len(d.Edges)),
	}
	if d.Textual.Quantized() {
		s.TextualClusters = d.Textual.Clusters.Cols
	}
	for split, e := range d.Edges {
		s.Edges[string(split)] = e.Len()
	}
	s.NumericPresent = countOnes(d.Numeric.Presence)
	s.TextualPresent = countOnes(d.Textual.Presence)
	return s
}

// EntityFeatures is the literal view of a single entity.
type EntityFeatures struct {
	ID      int                `json:"id"`
	Name    string             `json:"name"`
	Numeric map[string]float32 `json:"numeric"`
	Textual []string           `json:"textual"`
	Cluster *int               `json:"cluster,omitempty"`
}

// Entity returns the present literal features of one entity by name.
func (d *Dataset) Entity(name string) (*EntityFeatures, error) {
	id, ok := d.Vocab.Entities.ID(name)
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", name)
	}

	f := &EntityFeatures{ID: id, Name: name, Numeric: make(map[string]float32)}
	for a, attr := range d.Numeric.Attrs.Names {
		if d.Numeric.Presence.At(id, a) == 1 {
			f.Numeric[attr] = d.Numeric.Values.At(id, a)
		}
	}
	for a, attr := range d.Textual.Attrs.Names {
		if d.Textual.Presence.At(id, a) == 1 {
			f.Textual = append(f.Textual, attr)
		}
	}
	if d.Textual.Quantized() {
		for c, v := range d.Textual.Clusters.Row(id) {
			if v == 1 {
				f.Cluster = &c
				break
			}
		}
	}
	return f, nil
}

func countOnes(m *model.Matrix) int {
	n := 0
	for _, v := range m.Data {
		if v == 1 {
			n++
		}
	}
	return n
}
