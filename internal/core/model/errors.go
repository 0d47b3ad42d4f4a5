package model

import "fmt"

// Row fields in the errors below are 1-based line numbers of the raw table.

// EmptyVocabularyError reports a vocabulary with no members after scanning
// the input, which means a table is missing or malformed.
type EmptyVocabularyError struct {
	Vocabulary string
}

func (e *EmptyVocabularyError) Error() string {
	return fmt.Sprintf("vocabulary %q is empty", e.Vocabulary)
}

// UnknownIdentifierError reports a row referencing a name that is missing
// from the vocabulary it is indexed against.
type UnknownIdentifierError struct {
	Table string
	Row   int
	Kind  string
	Value string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("%s row %d: unknown %s %q", e.Table, e.Row, e.Kind, e.Value)
}

// LiteralParseError reports a numeric literal that is not a number.
type LiteralParseError struct {
	Table string
	Row   int
	Value string
	Err   error
}

func (e *LiteralParseError) Error() string {
	return fmt.Sprintf("%s row %d: cannot parse %q as number: %v", e.Table, e.Row, e.Value, e.Err)
}

func (e *LiteralParseError) Unwrap() error {
	return e.Err
}

// EmbeddingFailureError reports a text literal the embedding function could
// not turn into a vector of the configured dimension.
type EmbeddingFailureError struct {
	Table string
	Row   int
	Text  string
	Err   error
}

func (e *EmbeddingFailureError) Error() string {
	text := e.Text
	if len(text) > 64 {
		text = text[:64] + "..."
	}
	return fmt.Sprintf("%s row %d: embedding %q failed: %v", e.Table, e.Row, text, e.Err)
}

func (e *EmbeddingFailureError) Unwrap() error {
	return e.Err
}
