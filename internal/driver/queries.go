package driver

const (
	// SaveTriplesQuery writes one batch of triples of a single split.
	SaveTriplesQuery = `
		UNWIND $rows AS row
		MERGE (h:Entity {name: row.head})
		MERGE (t:Entity {name: row.tail})
		CREATE (h)-[:RELATES_TO {name: row.relation, split: $split}]->(t)
	`

	GetTriplesBySplitQuery = `
		MATCH (h:Entity)-[r:RELATES_TO {split: $split}]->(t:Entity)
		RETURN h.name AS head, r.name AS relation, t.name AS tail
		ORDER BY id(r)
	`

	DeleteSplitQuery = `
		MATCH ()-[r:RELATES_TO {split: $split}]->()
		DELETE r
	`
)
