// Package word2vec implements an incrementally trainable skip-gram
// embedding model with negative sampling.
package word2vec

import (
	"encoding/gob"
	"errors"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"

	"github.com/fwojciec/papermill"
)

// Model holds the vocabulary and both embedding matrices. It is persisted
// with encoding/gob.
type Model struct {
	Hyperparameters papermill.Hyperparameters

	// Words and Counts are indexed by vocabulary id.
	Words  []string
	Counts []int64
	Index  map[string]int

	// Vectors are the input embeddings; Context are the output weights used
	// during training only.
	Vectors [][]float32
	Context [][]float32

	// Updates counts completed training runs and seeds each run's RNG.
	Updates int
}

// NewModel returns an empty model.
func NewModel(hp papermill.Hyperparameters) *Model {
	return &Model{
		Hyperparameters: hp,
		Index:           make(map[string]int),
	}
}

// Len returns the vocabulary size.
func (m *Model) Len() int {
	return len(m.Words)
}

// Vector returns the embedding of token.
func (m *Model) Vector(token string) ([]float32, bool) {
	i, ok := m.Index[token]
	if !ok {
		return nil, false
	}
	return m.Vectors[i], true
}

// extend counts tokens across sentences and adds those meeting MinCount to
// the vocabulary. Counts of known tokens grow too. It returns the number of
// tokens added.
func (m *Model) extend(sentences []papermill.Sentence, rng *rand.Rand) int {
	counts := make(map[string]int64)
	var order []string
	for _, s := range sentences {
		for _, tok := range s {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	added := 0
	dim := m.Hyperparameters.Dimension
	for _, tok := range order {
		if i, ok := m.Index[tok]; ok {
			m.Counts[i] += counts[tok]
			continue
		}
		if counts[tok] < int64(m.Hyperparameters.MinCount) {
			continue
		}
		vec := make([]float32, dim)
		for d := range vec {
			vec[d] = (rng.Float32() - 0.5) / float32(dim)
		}
		m.Index[tok] = len(m.Words)
		m.Words = append(m.Words, tok)
		m.Counts = append(m.Counts, counts[tok])
		m.Vectors = append(m.Vectors, vec)
		m.Context = append(m.Context, make([]float32, dim))
		added++
	}
	return added
}

// validate checks the internal consistency of a decoded model.
func (m *Model) validate() error {
	n := len(m.Words)
	if len(m.Counts) != n || len(m.Vectors) != n || len(m.Context) != n || len(m.Index) != n {
		return errors.New("vocabulary and matrices disagree in size")
	}
	for i, w := range m.Words {
		if m.Index[w] != i {
			return errors.New("vocabulary index out of sync")
		}
		if len(m.Vectors[i]) != m.Hyperparameters.Dimension || len(m.Context[i]) != m.Hyperparameters.Dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	return m.Hyperparameters.Validate()
}

// MostSimilar returns up to n vocabulary tokens ranked by cosine similarity
// to token, excluding token itself.
func (m *Model) MostSimilar(token string, n int) ([]papermill.Neighbor, error) {
	q, ok := m.Vector(token)
	if !ok {
		return nil, papermill.Errorf(papermill.ENOTFOUND, "token %q is not in the vocabulary", token)
	}
	qn := norm(q)
	neighbors := make([]papermill.Neighbor, 0, m.Len())
	for i, w := range m.Words {
		if w == token {
			continue
		}
		vn := norm(m.Vectors[i])
		if qn == 0 || vn == 0 {
			continue
		}
		neighbors = append(neighbors, papermill.Neighbor{
			Token:      w,
			Similarity: dot(q, m.Vectors[i]) / (qn * vn),
		})
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Similarity > neighbors[b].Similarity
	})
	if n < len(neighbors) {
		neighbors = neighbors[:n]
	}
	return neighbors, nil
}

// Load reads a model from path. A missing file returns (nil, nil); a file
// that cannot be decoded returns EMODELCORRUPT.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, papermill.IOError("opening model", err)
	}
	defer f.Close()

	var m Model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, papermill.Errorf(papermill.EMODELCORRUPT, "decoding model %s: %v", path, err)
	}
	if m.Index == nil {
		m.Index = make(map[string]int)
	}
	if err := m.validate(); err != nil {
		return nil, papermill.Errorf(papermill.EMODELCORRUPT, "model %s: %v", path, err)
	}
	return &m, nil
}

// Save writes the model to path through a temporary file and rename, so a
// failed write leaves any previous model intact.
func (m *Model) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return papermill.IOError("creating model directory", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return papermill.IOError("creating model file", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(m); err != nil {
		tmp.Close()
		return papermill.IOError("writing model", err)
	}
	if err := tmp.Close(); err != nil {
		return papermill.IOError("writing model", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return papermill.IOError("replacing model", err)
	}
	return nil
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
