package cluster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Clusterer assigns each row to one of k clusters. The same seed must give
// the same assignment.
type Clusterer interface {
	Cluster(ctx context.Context, rows [][]float32, k int, seed uint64) ([]int, error)
}

var ErrInvalidK = errors.New("invalid cluster count")

// KMeans is Lloyd's algorithm with k-means++ seeding. It runs Restarts
// independent seedings and keeps the one with the lowest inertia.
type KMeans struct {
	Restarts      int
	MaxIterations int
	Tolerance     float64
}

func NewKMeans() *KMeans {
	return &KMeans{
		Restarts:      10,
		MaxIterations: 300,
		Tolerance:     1e-4,
	}
}

func (km *KMeans) Cluster(ctx context.Context, rows [][]float32, k int, seed uint64) ([]int, error) {
	if k < 1 || k > len(rows) {
		return nil, fmt.Errorf("%w: k=%d for %d rows", ErrInvalidK, k, len(rows))
	}
	dim := len(rows[0])
	for i, r := range rows {
		if len(r) != dim {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(r), dim)
		}
	}

	restarts := max(km.Restarts, 1)
	var best []int
	bestInertia := math.Inf(1)
	for run := 0; run < restarts; run++ {
		rng := rand.New(rand.NewPCG(seed, uint64(run)))
		assign, inertia, err := km.run(ctx, rows, k, rng)
		if err != nil {
			return nil, err
		}
		if inertia < bestInertia {
			best, bestInertia = assign, inertia
		}
	}
	return best, nil
}

func (km *KMeans) run(ctx context.Context, rows [][]float32, k int, rng *rand.Rand) ([]int, float64, error) {
	centroids := seedPlusPlus(rows, k, rng)
	assign := make([]int, len(rows))
	for i := range assign {
		assign[i] = -1
	}

	maxIter := max(km.MaxIterations, 1)
	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		changed := false
		for i, r := range rows {
			c, _ := nearest(r, centroids)
			if assign[i] != c {
				assign[i] = c
				changed = true
			}
		}

		shift := km.update(rows, assign, centroids)
		if !changed || shift <= km.Tolerance {
			break
		}
	}

	// Final assignment against the settled centroids.
	var inertia float64
	for i, r := range rows {
		c, d := nearest(r, centroids)
		assign[i] = c
		inertia += d
	}
	return assign, inertia, nil
}

// update moves every centroid to the mean of its members and returns the
// largest squared move. An empty cluster is re-seeded with the row that is
// currently worst served.
func (km *KMeans) update(rows [][]float32, assign []int, centroids [][]float64) float64 {
	k, dim := len(centroids), len(centroids[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dim)
	}
	for i, r := range rows {
		c := assign[i]
		counts[c]++
		for j, v := range r {
			sums[c][j] += float64(v)
		}
	}

	var shift float64
	for c := 0; c < k; c++ {
		next := sums[c]
		if counts[c] == 0 {
			next = farthest(rows, assign, centroids)
		} else {
			for j := range next {
				next[j] /= float64(counts[c])
			}
		}
		shift = math.Max(shift, sqDist64(centroids[c], next))
		centroids[c] = next
	}
	return shift
}

// seedPlusPlus picks k initial centroids, each drawn with probability
// proportional to its squared distance from the closest centroid so far.
func seedPlusPlus(rows [][]float32, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, toFloat64(rows[rng.IntN(len(rows))]))

	dists := make([]float64, len(rows))
	for len(centroids) < k {
		var total float64
		for i, r := range rows {
			_, d := nearest(r, centroids)
			dists[i] = d
			total += d
		}

		pick := 0
		if total > 0 {
			target := rng.Float64() * total
			for i, d := range dists {
				if d == 0 {
					continue
				}
				// rounding can leave target slightly positive after the last row
				pick = i
				target -= d
				if target <= 0 {
					break
				}
			}
		} else {
			// all remaining rows coincide with a centroid
			pick = rng.IntN(len(rows))
		}
		centroids = append(centroids, toFloat64(rows[pick]))
	}
	return centroids
}

func farthest(rows [][]float32, assign []int, centroids [][]float64) []float64 {
	bestIdx, bestDist := 0, -1.0
	for i, r := range rows {
		d := sqDist(r, centroids[assign[i]])
		if d > bestDist {
			bestIdx, bestDist = i, d
		}
	}
	return toFloat64(rows[bestIdx])
}

func nearest(r []float32, centroids [][]float64) (int, float64) {
	best, bestDist := 0, math.Inf(1)
	for c, cen := range centroids {
		if d := sqDist(r, cen); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

func sqDist(a []float32, b []float64) float64 {
	var s float64
	for i, v := range a {
		d := float64(v) - b[i]
		s += d * d
	}
	return s
}

func sqDist64(a, b []float64) float64 {
	var s float64
	for i, v := range a {
		d := v - b[i]
		s += d * d
	}
	return s
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
