package dataset

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
)

// Split parameters used by the training pipeline.
const (
	DefaultTestSize = 0.2
	DefaultSeed     = 42
)

// StratifiedSplit partitions row indexes 0..len(y)-1 into train and test
// sets whose class proportions match y as closely as integer counts allow.
//
// The test set holds ceil(testSize*n) rows. Per-class test counts are
// allocated by largest remainder, ties going to the smaller label. Rows
// within each class are shuffled by a PCG source seeded with seed, so the
// same y and seed always give the same partitions. Both returned slices
// are sorted ascending.
func StratifiedSplit(y []int, testSize float64, seed uint64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 || math.IsNaN(testSize) {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTestSize, testSize)
	}
	n := len(y)
	if n == 0 {
		return nil, nil, ErrEmptyDataset
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	slices.Sort(classes)

	if len(classes) < 2 {
		return nil, nil, fmt.Errorf("%w: only label %d present", ErrSingleClass, classes[0])
	}
	for _, c := range classes {
		if len(byClass[c]) < 2 {
			return nil, nil, fmt.Errorf("%w: label %d has %d", ErrTooFewMembers, c, len(byClass[c]))
		}
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < len(classes) || nTrain < len(classes) {
		return nil, nil, fmt.Errorf("%w: train=%d test=%d classes=%d", ErrSplitTooSmall, nTrain, nTest, len(classes))
	}

	counts := make([]int, len(classes))
	for i, c := range classes {
		counts[i] = len(byClass[c])
	}
	alloc := allocate(counts, n, nTest)

	rng := rand.New(rand.NewPCG(seed, 0)) //nolint:gosec // Deterministic split, not security sensitive
	train = make([]int, 0, nTrain)
	test = make([]int, 0, nTest)
	for i, c := range classes {
		idx := slices.Clone(byClass[c])
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		test = append(test, idx[:alloc[i]]...)
		train = append(train, idx[alloc[i]:]...)
	}
	slices.Sort(train)
	slices.Sort(test)
	return train, test, nil
}

// allocate distributes total among classes proportionally to counts using
// the largest remainder method. No class receives more than its count.
func allocate(counts []int, n, total int) []int {
	out := make([]int, len(counts))
	type rem struct {
		class int
		frac  float64
	}
	rems := make([]rem, len(counts))
	assigned := 0
	for i, c := range counts {
		exact := float64(total) * float64(c) / float64(n)
		out[i] = int(math.Floor(exact))
		rems[i] = rem{class: i, frac: exact - float64(out[i])}
		assigned += out[i]
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for left := total - assigned; left > 0; {
		progressed := false
		for _, r := range rems {
			if left == 0 {
				break
			}
			if out[r.class] < counts[r.class] {
				out[r.class]++
				left--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return out
}
