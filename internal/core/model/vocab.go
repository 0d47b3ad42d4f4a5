package model

// Vocabulary is a dense enumeration of distinct identifiers. Id i names
// Names[i]; Origin[i] is the id the same name had when the vocabulary was
// first built, which differs from i once frequency filtering has compacted it.
type Vocabulary struct {
	Names  []string
	Origin []int
	index  map[string]int
}

func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// VocabularyFromNames rebuilds a vocabulary from an ordered name list, e.g.
// after decoding a bundle. origin may be nil for an identity mapping.
func VocabularyFromNames(names []string, origin []int) *Vocabulary {
	v := &Vocabulary{
		Names:  make([]string, len(names)),
		Origin: make([]int, len(names)),
		index:  make(map[string]int, len(names)),
	}
	copy(v.Names, names)
	for i, n := range names {
		v.index[n] = i
		if origin != nil {
			v.Origin[i] = origin[i]
		} else {
			v.Origin[i] = i
		}
	}
	return v
}

// Add registers name if it is new and returns its id.
func (v *Vocabulary) Add(name string) int {
	if v.index == nil {
		v.reindex()
	}
	if id, ok := v.index[name]; ok {
		return id
	}
	id := len(v.Names)
	v.Names = append(v.Names, name)
	v.Origin = append(v.Origin, id)
	v.index[name] = id
	return id
}

func (v *Vocabulary) ID(name string) (int, bool) {
	if v.index == nil {
		v.reindex()
	}
	id, ok := v.index[name]
	return id, ok
}

func (v *Vocabulary) Len() int {
	return len(v.Names)
}

// Subset keeps the entries at the given ids, in the given order, and
// renumbers them to [0, len(keep)).
func (v *Vocabulary) Subset(keep []int) *Vocabulary {
	names := make([]string, len(keep))
	origin := make([]int, len(keep))
	for i, id := range keep {
		names[i] = v.Names[id]
		origin[i] = v.Origin[id]
	}
	return VocabularyFromNames(names, origin)
}

func (v *Vocabulary) reindex() {
	v.index = make(map[string]int, len(v.Names))
	for i, n := range v.Names {
		v.index[n] = i
	}
}

// Vocabularies groups the four enumerations shared by every matrix of a
// dataset.
type Vocabularies struct {
	Entities     *Vocabulary
	Relations    *Vocabulary
	NumericAttrs *Vocabulary
	TextualAttrs *Vocabulary
}
