// Package bloom remembers links collected earlier in a session using a
// Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Defaults for a session History.
const (
	DefaultCapacity          = 100_000
	DefaultFalsePositiveRate = 0.01
)

// History records every link collected in a session and answers whether a
// link was probably collected before. False positives are possible; false
// negatives are not. It is safe for concurrent use.
type History struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
}

// NewHistory creates a History sized for n distinct links with the given
// false positive rate.
func NewHistory(n uint, fpRate float64) *History {
	if n == 0 {
		n = 1
	}
	return &History{
		filter: bloom.NewWithEstimates(n, fpRate),
	}
}

// Observe returns how many of links were probably recorded by earlier calls,
// then records them. Repeats within links itself are not counted.
func (h *History) Observe(links []string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	repeated := 0
	for _, link := range links {
		if h.filter.TestString(link) {
			repeated++
		}
	}
	for _, link := range links {
		h.filter.AddString(link)
	}
	return repeated
}

// Seen reports whether link was probably recorded.
func (h *History) Seen(link string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter.TestString(link)
}

// EstimatedCount returns the approximate number of distinct links recorded.
func (h *History) EstimatedCount() uint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return uint(h.filter.ApproximatedSize())
}
