package literal

import (
	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/logger"
)

// Retained returns, in id order, the attribute ids whose raw occurrence count
// is strictly greater than threshold. counts come from the raw literal
// table, not from the dense matrices.
func Retained(attrs *model.Vocabulary, counts map[string]int, threshold int) []int {
	keep := make([]int, 0, attrs.Len())
	for id, name := range attrs.Names {
		if counts[name] > threshold {
			keep = append(keep, id)
		}
	}
	return keep
}

// FilterNumeric drops the value and presence columns of infrequent attribute
// relations together with their vocabulary entries. Surviving attributes are
// renumbered to [0, k) in their previous order; Attrs.Origin still names
// their construction-time ids.
func FilterNumeric(lits *model.NumericLiterals, counts map[string]int, threshold int) (*model.NumericLiterals, []int) {
	keep := Retained(lits.Attrs, counts, threshold)
	logger.Info("filtered numeric attribute relations", "threshold", threshold, "before", lits.Attrs.Len(), "after", len(keep))

	return &model.NumericLiterals{
		Attrs:    lits.Attrs.Subset(keep),
		Values:   lits.Values.SelectColumns(keep),
		Presence: lits.Presence.SelectColumns(keep),
	}, keep
}

// FilterTextual is FilterNumeric for textual literals. A quantised dataset
// no longer has an attribute axis on its values, so only the presence matrix
// and vocabulary are narrowed.
func FilterTextual(lits *model.TextualLiterals, counts map[string]int, threshold int) (*model.TextualLiterals, []int) {
	keep := Retained(lits.Attrs, counts, threshold)
	logger.Info("filtered textual attribute relations", "threshold", threshold, "before", lits.Attrs.Len(), "after", len(keep))

	out := &model.TextualLiterals{
		Attrs:    lits.Attrs.Subset(keep),
		Presence: lits.Presence.SelectColumns(keep),
		Clusters: lits.Clusters,
	}
	if lits.Quantized() {
		logger.Warn("textual literals are already quantised; only presence and vocabulary were filtered")
	} else {
		out.Embeddings = lits.Embeddings.SelectMiddle(keep)
	}
	return out, keep
}
