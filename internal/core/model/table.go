package model

// Split names a partition of the relational triples.
type Split string

const (
	SplitTrain Split = "train"
	SplitValid Split = "valid"
	SplitTest  Split = "test"
)

// Splits lists the triple partitions in the order they are scanned.
var Splits = []Split{SplitTrain, SplitValid, SplitTest}

// Triple is one raw row of a relational table.
type Triple struct {
	Head     string `json:"head"`
	Relation string `json:"relation"`
	Tail     string `json:"tail"`
}

// Literal is one raw row of a numeric or textual literal table. Value is kept
// as the raw string; the assemblers decide how to interpret it.
type Literal struct {
	Entity    string `json:"entity"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// Table names used in error context and logs.
const (
	TableNumeric = "numerical_literals"
	TableTextual = "text_literals"
)

// Tables holds every raw input table of a build. Tables are never mutated
// after loading.
type Tables struct {
	Triples map[Split][]Triple
	Numeric []Literal
	Textual []Literal
}

func (t Tables) TripleCount() int {
	n := 0
	for _, s := range Splits {
		n += len(t.Triples[s])
	}
	return n
}

// AttributeCounts returns how many raw rows each attribute relation has.
func AttributeCounts(rows []Literal) map[string]int {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.Attribute]++
	}
	return counts
}
