package model

// NumericLiterals holds the entity x numeric-attribute feature matrix after
// min-max normalisation, and the presence matrix marking which cells had a
// raw record.
type NumericLiterals struct {
	Attrs    *Vocabulary
	Values   *Matrix
	Presence *Matrix
}

// TextualLiterals holds the entity x textual-attribute x dim embedding tensor
// and its presence matrix. Once quantised, Embeddings is nil and Clusters
// holds the entity x k one-hot membership matrix.
type TextualLiterals struct {
	Attrs      *Vocabulary
	Embeddings *Tensor3
	Presence   *Matrix
	Clusters   *Matrix
}

func (t *TextualLiterals) Quantized() bool {
	return t.Clusters != nil
}
