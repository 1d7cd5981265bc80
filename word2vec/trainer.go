package word2vec

import (
	"context"
	"math/rand"

	"github.com/fwojciec/papermill"
)

// Ensure Trainer implements papermill.Trainer at compile time.
var _ papermill.Trainer = (*Trainer)(nil)

// Trainer updates the model stored at a fixed path.
type Trainer struct {
	path string
	hp   papermill.Hyperparameters
}

// NewTrainer creates a Trainer for the model at path. Hyperparameters apply
// to models created by the Trainer; an existing model keeps its own.
func NewTrainer(path string, hp papermill.Hyperparameters) *Trainer {
	return &Trainer{path: path, hp: hp}
}

// Update implements papermill.Trainer.
func (t *Trainer) Update(ctx context.Context, sentences []papermill.Sentence) (*papermill.ModelStats, error) {
	m, err := Load(t.path)
	if err != nil {
		return nil, err
	}

	created := m == nil
	if created {
		if err := t.hp.Validate(); err != nil {
			return nil, err
		}
		if countTokens(sentences) == 0 {
			return nil, papermill.Errorf(papermill.ECORPUSEMPTY, "cannot build a model from an empty corpus")
		}
		m = NewModel(t.hp)
	}

	rng := rand.New(rand.NewSource(m.Hyperparameters.Seed + int64(m.Updates)))
	added := m.extend(sentences, rng)
	if created && m.Len() == 0 {
		return nil, papermill.Errorf(papermill.ECORPUSEMPTY, "no token reaches min_count %d", m.Hyperparameters.MinCount)
	}
	if err := m.train(ctx, sentences, rng); err != nil {
		return nil, err
	}
	m.Updates++

	if err := m.Save(t.path); err != nil {
		return nil, err
	}

	return &papermill.ModelStats{
		VocabularySize: m.Len(),
		NewTokens:      added,
		Sentences:      len(sentences),
		Created:        created,
	}, nil
}

// MostSimilar implements papermill.Trainer.
func (t *Trainer) MostSimilar(_ context.Context, token string, n int) ([]papermill.Neighbor, error) {
	if n < 1 {
		return nil, papermill.Errorf(papermill.EINVALID, "neighbor count must be positive")
	}
	m, err := Load(t.path)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, papermill.Errorf(papermill.ENOTFOUND, "no model at %s", t.path)
	}
	return m.MostSimilar(token, n)
}

func countTokens(sentences []papermill.Sentence) int {
	n := 0
	for _, s := range sentences {
		n += len(s)
	}
	return n
}
