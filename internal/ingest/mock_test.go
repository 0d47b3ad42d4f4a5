package ingest

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type MockDriver struct {
	Queries       []string
	Params        []map[string]interface{}
	ResultBySplit map[string]neo4j.EagerResult
	Err           error
	IndicesBuilt  bool
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	if split, ok := params["split"].(string); ok {
		return m.ResultBySplit[split], nil
	}
	return neo4j.EagerResult{}, nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	m.IndicesBuilt = true
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func tripleRecords(rows ...[3]string) neo4j.EagerResult {
	res := neo4j.EagerResult{Keys: []string{"head", "relation", "tail"}}
	for _, r := range rows {
		res.Records = append(res.Records, &neo4j.Record{
			Keys:   []string{"head", "relation", "tail"},
			Values: []interface{}{r[0], r[1], r[2]},
		})
	}
	return res
}
