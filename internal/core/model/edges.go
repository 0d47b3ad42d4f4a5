package model

// Edges is the integer-indexed form of one triple split. Index[0] holds head
// entity ids, Index[1] tail entity ids and Types the parallel relation ids.
type Edges struct {
	Split Split
	Index [2][]int64
	Types []int64
}

func (e Edges) Len() int {
	return len(e.Types)
}
