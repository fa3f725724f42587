package represent

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Word2VecOptions are the hyper-parameters of a CBOW word2vec model trained with negative sampling.
type Word2VecOptions struct {
	Size     int     `toml:"size"`
	Window   int     `toml:"window"`
	MinCount int     `toml:"min_count"`
	Workers  int     `toml:"workers"`
	Epochs   int     `toml:"epochs"`
	Negative int     `toml:"negative"`
	Alpha    float64 `toml:"alpha"`
	MinAlpha float64 `toml:"min_alpha"`
	// Sample is the frequency threshold above which words are randomly down-sampled. Zero disables it.
	Sample float64 `toml:"sample"`
	Seed   int64   `toml:"seed"`
}

// DefaultWord2VecOptions are 300 dimensional vectors trained over 5 epochs with a window of 10 words.
func DefaultWord2VecOptions() Word2VecOptions {
	return Word2VecOptions{
		Size:     300,
		Window:   10,
		MinCount: 5,
		Workers:  4,
		Epochs:   5,
		Negative: 5,
		Alpha:    0.025,
		MinAlpha: 0.0001,
		Sample:   1e-3,
		Seed:     1,
	}
}

// WordVectors are the trained input vectors of a word2vec model.
type WordVectors struct {
	Size    int
	Words   []string
	Index   map[string]int
	Vectors [][]float64
}

// Vector returns the vector of a word, if the word is in the vocabulary.
func (wv *WordVectors) Vector(word string) ([]float64, bool) {
	i, ok := wv.Index[word]
	if !ok {
		return nil, false
	}
	return wv.Vectors[i], true
}

// Mean averages the vectors of the in-vocabulary words. It is the zero vector when no word is known.
func (wv *WordVectors) Mean(words []string) []float64 {
	mean := make([]float64, wv.Size)
	n := 0
	for _, word := range words {
		if v, ok := wv.Vector(word); ok {
			floats.Add(mean, v)
			n++
		}
	}
	if n > 0 {
		floats.Scale(1/float64(n), mean)
	}
	return mean
}

// Word2Vec represents a document as the min-max scaled mean of the vectors of its words, using a model trained on
// the documents themselves.
type Word2Vec struct {
	Options Word2VecOptions
}

// NewWord2Vec creates a word2vec representation.
func NewWord2Vec(options Word2VecOptions) *Word2Vec {
	return &Word2Vec{Options: options}
}

// Name of the representation.
func (w *Word2Vec) Name() string {
	return Word2VecKey
}

// Represent trains a model on the texts, which are split on whitespace, then embeds each text.
func (w *Word2Vec) Represent(ctx context.Context, texts []string) (Matrix, error) {
	sentences := make([][]string, len(texts))
	for i, text := range texts {
		sentences[i] = strings.Fields(text)
	}

	wv, err := TrainWord2Vec(ctx, sentences, w.Options)
	if err != nil {
		return Matrix{}, err
	}

	rows := make([][]float64, len(sentences))
	for i, sentence := range sentences {
		rows[i] = wv.Mean(sentence)
	}
	MinMax(rows)

	m := Matrix{Rows: make([]Vector, len(rows)), Cols: wv.Size}
	for i, row := range rows {
		m.Rows[i] = DenseVector(row)
	}
	return m, nil
}

type word2vec struct {
	Word2VecOptions
	syn0    [][]float64
	syn1neg [][]float64
	// cumulative unigram distribution raised to the 3/4 power, used to draw negative samples.
	noise []float64
	// probability of keeping each word when down-sampling.
	keep []float64
}

// TrainWord2Vec learns word vectors from tokenised sentences. Training is spread over the configured number of
// workers, which update the shared weights without locking.
func TrainWord2Vec(ctx context.Context, sentences [][]string, options Word2VecOptions) (*WordVectors, error) {
	if options.Size <= 0 || options.Window <= 0 || options.Epochs <= 0 || options.Negative <= 0 {
		return nil, errors.New("word2vec size, window, epochs and negative samples must be positive")
	}
	if options.Workers <= 0 {
		options.Workers = 1
	}

	counts := make(map[string]int)
	for _, sentence := range sentences {
		for _, word := range sentence {
			counts[word]++
		}
	}
	var words []string
	for word, c := range counts {
		if c >= options.MinCount {
			words = append(words, word)
		}
	}
	if len(words) == 0 {
		return nil, errors.Errorf("no word occurs at least %d times; cannot build a word2vec vocabulary", options.MinCount)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	index := make(map[string]int, len(words))
	for i, word := range words {
		index[word] = i
	}

	encoded := make([][]int, 0, len(sentences))
	total := 0
	for _, sentence := range sentences {
		var s []int
		for _, word := range sentence {
			if i, ok := index[word]; ok {
				s = append(s, i)
			}
		}
		if len(s) > 0 {
			encoded = append(encoded, s)
			total += len(s)
		}
	}

	m := &word2vec{Word2VecOptions: options}
	m.init(words, counts, total)

	var processed int64
	budget := float64(options.Epochs * total)
	for epoch := 0; epoch < options.Epochs; epoch++ {
		// Workers write syn0 and syn1neg without synchronisation (Hogwild), so these writes race under the Go memory
		// model and results with more than one worker are not reproducible. The race detector does not report them
		// because every sentence first passes through an atomic add. Set Workers to 1 for exact reruns.
		g, gctx := errgroup.WithContext(ctx)
		for worker := 0; worker < options.Workers; worker++ {
			worker := worker
			rng := rand.New(rand.NewSource(options.Seed + int64(epoch*options.Workers+worker)))
			g.Go(func() error {
				neu1 := make([]float64, options.Size)
				neu1e := make([]float64, options.Size)
				for i := worker; i < len(encoded); i += options.Workers {
					if err := gctx.Err(); err != nil {
						return err
					}
					done := atomic.AddInt64(&processed, int64(len(encoded[i])))
					alpha := options.Alpha - (options.Alpha-options.MinAlpha)*float64(done)/budget
					if alpha < options.MinAlpha {
						alpha = options.MinAlpha
					}
					m.train(encoded[i], alpha, rng, neu1, neu1e)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		log.Printf("word2vec epoch %d/%d complete (%d words, vocabulary of %d)\n", epoch+1, options.Epochs, total, len(words))
	}

	return &WordVectors{Size: options.Size, Words: words, Index: index, Vectors: m.syn0}, nil
}

func (m *word2vec) init(words []string, counts map[string]int, total int) {
	rng := rand.New(rand.NewSource(m.Seed))
	m.syn0 = make([][]float64, len(words))
	m.syn1neg = make([][]float64, len(words))
	for i := range words {
		m.syn0[i] = make([]float64, m.Size)
		for j := range m.syn0[i] {
			m.syn0[i][j] = (rng.Float64() - 0.5) / float64(m.Size)
		}
		m.syn1neg[i] = make([]float64, m.Size)
	}

	m.noise = make([]float64, len(words))
	var z float64
	for i, word := range words {
		z += math.Pow(float64(counts[word]), 0.75)
		m.noise[i] = z
	}
	for i := range m.noise {
		m.noise[i] /= z
	}

	m.keep = make([]float64, len(words))
	threshold := m.Sample * float64(total)
	for i, word := range words {
		c := float64(counts[word])
		if m.Sample <= 0 || c <= threshold {
			m.keep[i] = 1
			continue
		}
		m.keep[i] = (math.Sqrt(c/threshold) + 1) * threshold / c
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

// train runs one CBOW pass over a sentence. neu1 and neu1e are scratch buffers of the vector size.
func (m *word2vec) train(sentence []int, alpha float64, rng *rand.Rand, neu1, neu1e []float64) {
	words := make([]int, 0, len(sentence))
	neighbours := make([]int, 0, 2*m.Window)
	for _, w := range sentence {
		if m.keep[w] >= 1 || rng.Float64() < m.keep[w] {
			words = append(words, w)
		}
	}

	for pos, word := range words {
		b := rng.Intn(m.Window)
		from, to := pos-m.Window+b, pos+m.Window-b
		if from < 0 {
			from = 0
		}
		if to >= len(words) {
			to = len(words) - 1
		}

		neighbours = neighbours[:0]
		for c := from; c <= to; c++ {
			if c != pos {
				neighbours = append(neighbours, words[c])
			}
		}
		m.cbow(neighbours, word, alpha, rng, neu1, neu1e)
	}
}

// cbow updates the weights for predicting word from the mean of its neighbours. The error is applied in full to
// each neighbour.
func (m *word2vec) cbow(neighbours []int, word int, alpha float64, rng *rand.Rand, neu1, neu1e []float64) {
	if len(neighbours) == 0 {
		return
	}
	for i := range neu1 {
		neu1[i] = 0
		neu1e[i] = 0
	}
	for _, c := range neighbours {
		floats.Add(neu1, m.syn0[c])
	}
	floats.Scale(1/float64(len(neighbours)), neu1)

	for d := 0; d <= m.Negative; d++ {
		target, label := word, 1.0
		if d > 0 {
			target = sort.SearchFloat64s(m.noise, rng.Float64())
			if target >= len(m.noise) {
				target = len(m.noise) - 1
			}
			if target == word {
				continue
			}
			label = 0
		}
		g := (label - sigmoid(floats.Dot(neu1, m.syn1neg[target]))) * alpha
		floats.AddScaled(neu1e, g, m.syn1neg[target])
		floats.AddScaled(m.syn1neg[target], g, neu1)
	}

	for _, c := range neighbours {
		floats.Add(m.syn0[c], neu1e)
	}
}
