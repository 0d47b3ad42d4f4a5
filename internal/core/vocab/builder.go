// Package vocab enumerates the entities, relations and attribute relations
// found in the raw input tables.
package vocab

import (
	"github.com/agenthands/literalkg/internal/core/model"
)

// Build scans every table once and returns the four vocabularies. Ids are
// assigned in order of first appearance, scanning train, valid and test
// triples (head before tail), then the numeric and textual literal tables.
// An entity that only has literal data still receives an id.
func Build(tables model.Tables) (*model.Vocabularies, error) {
	v := &model.Vocabularies{
		Entities:     model.NewVocabulary(),
		Relations:    model.NewVocabulary(),
		NumericAttrs: model.NewVocabulary(),
		TextualAttrs: model.NewVocabulary(),
	}

	for _, split := range model.Splits {
		for _, t := range tables.Triples[split] {
			v.Entities.Add(t.Head)
			v.Entities.Add(t.Tail)
			v.Relations.Add(t.Relation)
		}
	}

	for _, l := range tables.Numeric {
		v.Entities.Add(l.Entity)
		v.NumericAttrs.Add(l.Attribute)
	}
	for _, l := range tables.Textual {
		v.Entities.Add(l.Entity)
		v.TextualAttrs.Add(l.Attribute)
	}

	checks := []struct {
		name  string
		vocab *model.Vocabulary
	}{
		{"entities", v.Entities},
		{"relations", v.Relations},
		{"numeric attribute relations", v.NumericAttrs},
		{"textual attribute relations", v.TextualAttrs},
	}
	for _, c := range checks {
		if c.vocab.Len() == 0 {
			return nil, &model.EmptyVocabularyError{Vocabulary: c.name}
		}
	}

	return v, nil
}
