package papermill

import "context"

// Hyperparameters configure the embedding model.
type Hyperparameters struct {
	Dimension int     `toml:"dimension"`
	Window    int     `toml:"window"`
	MinCount  int     `toml:"min_count"`
	Epochs    int     `toml:"epochs"`
	Negative  int     `toml:"negative"`
	Alpha     float64 `toml:"alpha"`
	Seed      int64   `toml:"seed"`
}

// DefaultHyperparameters returns the settings used for new models.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		Dimension: 100,
		Window:    5,
		MinCount:  1,
		Epochs:    5,
		Negative:  5,
		Alpha:     0.025,
		Seed:      1,
	}
}

// Validate returns an error if the hyperparameters cannot build a model.
func (h Hyperparameters) Validate() error {
	if h.Dimension < 1 {
		return Errorf(EINVALID, "embedding dimension must be positive")
	}
	if h.Window < 1 {
		return Errorf(EINVALID, "embedding window must be positive")
	}
	if h.MinCount < 1 {
		return Errorf(EINVALID, "embedding min_count must be positive")
	}
	if h.Epochs < 1 {
		return Errorf(EINVALID, "embedding epochs must be positive")
	}
	if h.Alpha <= 0 {
		return Errorf(EINVALID, "embedding alpha must be positive")
	}
	return nil
}

// ModelStats summarizes a model after an update.
type ModelStats struct {
	// VocabularySize is the number of tokens in the model.
	VocabularySize int

	// NewTokens is the number of tokens added by the update.
	NewTokens int

	// Sentences is the number of sentences trained on.
	Sentences int

	// Created reports whether the model was built from scratch.
	Created bool
}

// Neighbor is a token and its cosine similarity to a query token.
type Neighbor struct {
	Token      string
	Similarity float64
}

// Trainer incrementally trains the embedding model stored at a fixed path.
type Trainer interface {
	// Update loads the model if present, extends its vocabulary, trains on
	// sentences only, and persists it. Without a model, it builds one.
	Update(ctx context.Context, sentences []Sentence) (*ModelStats, error)

	// MostSimilar returns the n tokens closest to token.
	MostSimilar(ctx context.Context, token string, n int) ([]Neighbor, error)
}
