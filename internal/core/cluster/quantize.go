package cluster

import (
	"context"
	"fmt"

	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/logger"
)

// Rows returns one clustering row per entity: the entity's attribute
// embeddings concatenated, or its one-hot row if already quantised. With a
// single textual attribute this is exactly the entity's embedding.
func Rows(lits *model.TextualLiterals) [][]float32 {
	if lits.Quantized() {
		rows := make([][]float32, lits.Clusters.Rows)
		for i := range rows {
			rows[i] = lits.Clusters.Row(i)
		}
		return rows
	}
	rows := make([][]float32, lits.Embeddings.D0)
	for i := range rows {
		rows[i] = lits.Embeddings.Flat(i)
	}
	return rows
}

// OneHot builds an len(assign) x k matrix with a single 1 per row.
func OneHot(assign []int, k int) (*model.Matrix, error) {
	m := model.NewMatrix(len(assign), k)
	for i, c := range assign {
		if c < 0 || c >= k {
			return nil, fmt.Errorf("row %d assigned to cluster %d outside [0,%d)", i, c, k)
		}
		m.Set(i, c, 1)
	}
	return m, nil
}

// Quantize replaces the textual embeddings with one-hot cluster membership.
// The embeddings are discarded; the presence matrix and attribute vocabulary
// are left as they are.
func Quantize(ctx context.Context, lits *model.TextualLiterals, c Clusterer, k int, seed uint64) error {
	rows := Rows(lits)
	logger.Info("clustering textual literals", "entities", len(rows), "clusters", k, "seed", seed)

	assign, err := c.Cluster(ctx, rows, k, seed)
	if err != nil {
		return fmt.Errorf("failed to cluster textual literals: %w", err)
	}
	if len(assign) != len(rows) {
		return fmt.Errorf("clusterer returned %d assignments for %d rows", len(assign), len(rows))
	}

	onehot, err := OneHot(assign, k)
	if err != nil {
		return err
	}

	lits.Embeddings = nil
	lits.Clusters = onehot
	return nil
}
