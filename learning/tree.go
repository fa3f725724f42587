package learning

import (
	"math/rand"
	"sort"

	"github.com/hscells/boato/represent"
)

// TreeOptions are the parameters of a single classification tree.
type TreeOptions struct {
	// MaxFeatures is the number of candidate features drawn at each node. Zero draws sqrt(features).
	MaxFeatures int `toml:"max_features"`
	// MaxDepth limits the depth of the tree. Zero grows until every leaf is pure.
	MaxDepth        int `toml:"max_depth"`
	MinSamplesSplit int `toml:"min_samples_split"`
}

type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	// distribution of classes at a leaf.
	dist []float64
}

func (n treeNode) leaf() bool {
	return n.dist != nil
}

// DecisionTree is a CART classification tree split on gini impurity. Rows go left when their value of the split
// feature is at most the threshold.
type DecisionTree struct {
	Options TreeOptions
	nodes   []treeNode
	classes int
}

// entry is a stored value of a feature at a position in the rows of a node.
type entry struct {
	pos int
	v   float64
}

// candidate is one or more rows with the same value and class.
type candidate struct {
	v     float64
	class int
	n     float64
}

type treeBuilder struct {
	X       represent.Matrix
	y       []int
	tree    *DecisionTree
	rng     *rand.Rand
	mtry    int
	minRows int
}

// fit grows the tree on the given rows of X, which may contain repeats. y holds class indices in [0, classes).
func (t *DecisionTree) fit(X represent.Matrix, y []int, rows []int, classes int, rng *rand.Rand) {
	t.classes = classes
	t.nodes = t.nodes[:0]

	mtry := t.Options.MaxFeatures
	if mtry <= 0 {
		mtry = sqrtFeatures(X.Cols)
	}
	minRows := t.Options.MinSamplesSplit
	if minRows < 2 {
		minRows = 2
	}
	b := &treeBuilder{X: X, y: y, tree: t, rng: rng, mtry: mtry, minRows: minRows}
	b.grow(rows, 0)
}

func (b *treeBuilder) counts(rows []int) []float64 {
	c := make([]float64, b.tree.classes)
	for _, r := range rows {
		c[b.y[r]]++
	}
	return c
}

func gini(counts []float64, n float64) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := c / n
		g -= p * p
	}
	return g
}

func (b *treeBuilder) leaf(counts []float64, n float64) int {
	dist := make([]float64, len(counts))
	for i, c := range counts {
		dist[i] = c / n
	}
	b.tree.nodes = append(b.tree.nodes, treeNode{feature: -1, dist: dist})
	return len(b.tree.nodes) - 1
}

// grow adds the subtree for rows and returns the index of its root.
func (b *treeBuilder) grow(rows []int, depth int) int {
	counts := b.counts(rows)
	n := float64(len(rows))

	pure := false
	for _, c := range counts {
		if c == n {
			pure = true
		}
	}
	maxDepth := b.tree.Options.MaxDepth
	if pure || len(rows) < b.minRows || (maxDepth > 0 && depth >= maxDepth) {
		return b.leaf(counts, n)
	}

	// Gather the stored values of every feature over the rows of the node.
	values := make(map[int][]entry)
	for pos, r := range rows {
		row := b.X.Rows[r]
		for k, j := range row.Indices {
			values[j] = append(values[j], entry{pos: pos, v: row.Values[k]})
		}
	}
	var varying []int
	for j, entries := range values {
		if varies(entries, len(rows)) {
			varying = append(varying, j)
		}
	}
	if len(varying) == 0 {
		return b.leaf(counts, n)
	}
	sort.Ints(varying)
	b.rng.Shuffle(len(varying), func(i, j int) { varying[i], varying[j] = varying[j], varying[i] })

	bestFeature, bestThreshold, bestImpurity := -1, 0.0, 0.0
	for k, j := range varying {
		if k >= b.mtry && bestFeature >= 0 {
			break
		}
		threshold, impurity, ok := b.split(values[j], rows, counts)
		if ok && (bestFeature < 0 || impurity < bestImpurity) {
			bestFeature, bestThreshold, bestImpurity = j, threshold, impurity
		}
	}
	if bestFeature < 0 {
		return b.leaf(counts, n)
	}

	v := make([]float64, len(rows))
	for _, e := range values[bestFeature] {
		v[e.pos] = e.v
	}
	var left, right []int
	for pos, r := range rows {
		if v[pos] <= bestThreshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	values = nil

	id := len(b.tree.nodes)
	b.tree.nodes = append(b.tree.nodes, treeNode{feature: bestFeature, threshold: bestThreshold})
	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.tree.nodes[id].left = l
	b.tree.nodes[id].right = r
	return id
}

// varies reports whether a feature takes more than one value over n rows, given its stored entries. Rows without an
// entry hold zero.
func varies(entries []entry, n int) bool {
	first := entries[0].v
	if len(entries) < n && first != 0 {
		return true
	}
	for _, e := range entries[1:] {
		if e.v != first {
			return true
		}
	}
	return false
}

// split finds the threshold of a feature that minimises the weighted gini impurity of the children.
func (b *treeBuilder) split(entries []entry, rows []int, counts []float64) (threshold, impurity float64, ok bool) {
	k := b.tree.classes
	n := float64(len(rows))

	zeros := make([]float64, k)
	copy(zeros, counts)
	candidates := make([]candidate, 0, len(entries)+k)
	for _, e := range entries {
		c := b.y[rows[e.pos]]
		zeros[c]--
		candidates = append(candidates, candidate{v: e.v, class: c, n: 1})
	}
	for c, z := range zeros {
		if z > 0 {
			candidates = append(candidates, candidate{v: 0, class: c, n: z})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].v < candidates[j].v })

	left := make([]float64, k)
	right := make([]float64, k)
	leftN := 0.0
	for i := 0; i < len(candidates)-1; i++ {
		left[candidates[i].class] += candidates[i].n
		leftN += candidates[i].n
		if candidates[i+1].v <= candidates[i].v {
			continue
		}
		for c := range right {
			right[c] = counts[c] - left[c]
		}
		rightN := n - leftN
		imp := (leftN*gini(left, leftN) + rightN*gini(right, rightN)) / n
		if !ok || imp < impurity {
			threshold = candidates[i].v + (candidates[i+1].v-candidates[i].v)/2
			impurity = imp
			ok = true
		}
	}
	return threshold, impurity, ok
}

// distribution returns the class distribution of the leaf a row falls into.
func (t *DecisionTree) distribution(row represent.Vector) []float64 {
	i := 0
	for !t.nodes[i].leaf() {
		node := t.nodes[i]
		if row.At(node.feature) <= node.threshold {
			i = node.left
		} else {
			i = node.right
		}
	}
	return t.nodes[i].dist
}

// Depth of the tree, where a single leaf has depth zero.
func (t *DecisionTree) Depth() int {
	var depth func(i int) int
	depth = func(i int) int {
		if t.nodes[i].leaf() {
			return 0
		}
		l, r := depth(t.nodes[i].left), depth(t.nodes[i].right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	if len(t.nodes) == 0 {
		return 0
	}
	return depth(0)
}
