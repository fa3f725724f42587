package learning

import (
	"math"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// SplitOptions configure the stratified train/test split.
type SplitOptions struct {
	TestSize float64 `toml:"test_size"`
	Seed     int64   `toml:"seed"`
}

// DefaultSplitOptions hold out 20% of each class with seed 52.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{TestSize: 0.2, Seed: 52}
}

// StratifiedSplit partitions row indices into training and testing rows. ceil(testSize*n) of the n rows are held out
// and the training rows are shared between classes in proportion to their size, the rows left over by rounding
// down going to the classes with the largest remainders (the lowest class first on ties). Every class needs at least
// two rows. Both index lists are sorted.
func StratifiedSplit(y []int, testSize float64, seed int64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, errors.Errorf("test size must be between 0 and 1, got %v", testSize)
	}

	rows := make(map[int][]int)
	for i, l := range y {
		rows[l] = append(rows[l], i)
	}
	if len(rows) < 2 {
		return nil, nil, errors.New("the least populated class needs a second class to stratify")
	}
	cls := classes(y)
	for _, c := range cls {
		if len(rows[c]) < 2 {
			return nil, nil, errors.Errorf("class %d has only %d row; every class needs at least 2", c, len(rows[c]))
		}
	}

	n := len(y)
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < len(cls) || nTrain < len(cls) {
		return nil, nil, errors.Errorf("a test size of %v leaves %d training and %d testing rows for %d classes", testSize, nTrain, nTest, len(cls))
	}

	counts := make([]int, len(cls))
	for i, c := range cls {
		counts[i] = len(rows[c])
	}
	keep := apportion(counts, nTrain)

	rng := rand.New(rand.NewSource(seed))
	for i, c := range cls {
		r := rows[c]
		rng.Shuffle(len(r), func(i, j int) { r[i], r[j] = r[j], r[i] })
		train = append(train, r[:keep[i]]...)
		test = append(test, r[keep[i]:]...)
	}

	sort.Ints(train)
	sort.Ints(test)
	return train, test, nil
}

// apportion shares k items between groups in proportion to their counts using the largest remainder method.
func apportion(counts []int, k int) []int {
	total := 0
	for _, c := range counts {
		total += c
	}
	shares := make([]int, len(counts))
	remainders := make([]float64, len(counts))
	left := k
	for i, c := range counts {
		exact := float64(c) * float64(k) / float64(total)
		shares[i] = int(math.Floor(exact))
		remainders[i] = exact - float64(shares[i])
		left -= shares[i]
	}
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, i := range order {
		if left == 0 {
			break
		}
		if shares[i] < counts[i] {
			shares[i]++
			left--
		}
	}
	return shares
}
