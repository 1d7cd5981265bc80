package word2vec

import (
	"context"
	"math"
	"math/rand"
	"sort"

	"github.com/fwojciec/papermill"
)

// minAlphaRatio bounds the decayed learning rate from below.
const minAlphaRatio = 1e-4

// sampler draws negative examples from the unigram distribution raised to
// the 3/4 power.
type sampler struct {
	cumulative []float64
}

func newSampler(counts []int64) *sampler {
	cum := make([]float64, len(counts))
	var total float64
	for i, c := range counts {
		total += math.Pow(float64(c), 0.75)
		cum[i] = total
	}
	return &sampler{cumulative: cum}
}

func (s *sampler) draw(rng *rand.Rand) int {
	x := rng.Float64() * s.cumulative[len(s.cumulative)-1]
	return sort.SearchFloat64s(s.cumulative, x)
}

// train runs Epochs passes of skip-gram with negative sampling over
// sentences. Tokens missing from the vocabulary are skipped.
func (m *Model) train(ctx context.Context, sentences []papermill.Sentence, rng *rand.Rand) error {
	hp := m.Hyperparameters
	if m.Len() == 0 {
		return nil
	}

	encoded := make([][]int, 0, len(sentences))
	total := 0
	for _, s := range sentences {
		ids := make([]int, 0, len(s))
		for _, tok := range s {
			if i, ok := m.Index[tok]; ok {
				ids = append(ids, i)
			}
		}
		if len(ids) > 0 {
			encoded = append(encoded, ids)
			total += len(ids)
		}
	}
	if total == 0 {
		return nil
	}

	neg := newSampler(m.Counts)
	grad := make([]float32, hp.Dimension)
	steps := float64(total * hp.Epochs)
	done := 0

	for epoch := 0; epoch < hp.Epochs; epoch++ {
		for _, ids := range encoded {
			if err := ctx.Err(); err != nil {
				return err
			}
			for pos, center := range ids {
				alpha := hp.Alpha * math.Max(minAlphaRatio, 1-float64(done)/steps)
				done++

				shrink := rng.Intn(hp.Window)
				lo := max(0, pos-hp.Window+shrink)
				hi := min(len(ids)-1, pos+hp.Window-shrink)
				for c := lo; c <= hi; c++ {
					if c == pos {
						continue
					}
					m.trainPair(center, ids[c], alpha, neg, rng, grad)
				}
			}
		}
	}
	return nil
}

// trainPair updates the center vector against one true context and
// Negative sampled noise words.
func (m *Model) trainPair(center, outside int, alpha float64, neg *sampler, rng *rand.Rand, grad []float32) {
	h := m.Vectors[center]
	clear(grad)

	for k := 0; k <= m.Hyperparameters.Negative; k++ {
		target, label := outside, 1.0
		if k > 0 {
			target = neg.draw(rng)
			if target == outside {
				continue
			}
			label = 0
		}
		out := m.Context[target]
		g := float32((label - sigmoid(dot(h, out))) * alpha)
		for d := range h {
			grad[d] += g * out[d]
			out[d] += g * h[d]
		}
	}
	for d := range h {
		h[d] += grad[d]
	}
}

func sigmoid(x float64) float64 {
	switch {
	case x > 6:
		return 1
	case x < -6:
		return 0
	}
	return 1 / (1 + math.Exp(-x))
}
