package cluster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blobs() [][]float32 {
	return [][]float32{
		{0, 0}, {0.1, 0}, {0, 0.2},
		{10, 10}, {10.2, 9.9}, {9.8, 10.1},
		{-10, 10}, {-9.9, 10.2},
	}
}

func TestKMeans_SeparatesBlobs(t *testing.T) {
	assign, err := NewKMeans().Cluster(context.Background(), blobs(), 3, 0)
	require.NoError(t, err)
	require.Len(t, assign, 8)

	assert.Equal(t, assign[0], assign[1])
	assert.Equal(t, assign[0], assign[2])
	assert.Equal(t, assign[3], assign[4])
	assert.Equal(t, assign[3], assign[5])
	assert.Equal(t, assign[6], assign[7])
	assert.NotEqual(t, assign[0], assign[3])
	assert.NotEqual(t, assign[0], assign[6])
	assert.NotEqual(t, assign[3], assign[6])

	for _, c := range assign {
		assert.GreaterOrEqual(t, c, 0)
		assert.Less(t, c, 3)
	}
}

func TestKMeans_SameSeedSameAssignment(t *testing.T) {
	rows := blobs()
	km := NewKMeans()
	a, err := km.Cluster(context.Background(), rows, 4, 42)
	require.NoError(t, err)
	b, err := km.Cluster(context.Background(), rows, 4, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKMeans_KEqualsRows(t *testing.T) {
	rows := [][]float32{{1}, {2}, {3}}
	assign, err := NewKMeans().Cluster(context.Background(), rows, 3, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2}, assign)
}

func TestKMeans_IdenticalRows(t *testing.T) {
	rows := [][]float32{{1, 1}, {1, 1}, {1, 1}}
	assign, err := NewKMeans().Cluster(context.Background(), rows, 2, 0)
	require.NoError(t, err)
	assert.Len(t, assign, 3)
}

func TestKMeans_InvalidK(t *testing.T) {
	_, err := NewKMeans().Cluster(context.Background(), blobs(), 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidK))

	_, err = NewKMeans().Cluster(context.Background(), blobs(), 9, 0)
	assert.True(t, errors.Is(err, ErrInvalidK))
}

func TestKMeans_RaggedRows(t *testing.T) {
	_, err := NewKMeans().Cluster(context.Background(), [][]float32{{1, 2}, {1}}, 1, 0)
	assert.Error(t, err)
}

func TestKMeans_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKMeans().Cluster(ctx, blobs(), 2, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
