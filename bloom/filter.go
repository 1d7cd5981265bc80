// Package bloom provides payload URL deduplication using Bloom filters.
package bloom

import (
	"net/url"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/papermill"
)

// Ensure Filter implements papermill.Deduplicator at compile time.
var _ papermill.Deduplicator = (*Filter)(nil)

// Default sizing for one harvest run.
const (
	DefaultCapacity = 10000
	DefaultFPRate   = 0.001
)

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen implements papermill.Deduplicator. URLs differing only in scheme
// case, host case or fragment are the same key. A false positive rate of
// fpRate applies to keys never added.
func (f *Filter) Seen(key string) bool {
	return f.f.TestString(Canonical(key))
}

// Add implements papermill.Deduplicator.
func (f *Filter) Add(key string) {
	f.f.AddString(Canonical(key))
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Canonical lowercases the scheme and host of rawURL and drops its fragment.
// Unparseable input is returned trimmed.
func Canonical(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
