// Package axis implements the ordered, unique label index attached to each
// dimension of a labeled array.
//
// An Index pairs an ordered label sequence with an O(1) reverse
// label-to-position table. The table is derived state: it is rebuilt
// wholesale whenever a new Index is constructed and is never patched in
// place, so the sequence and the table cannot drift apart. Indexes are
// immutable after construction; every set operation returns a new Index.
package axis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/internal/lookup"
	"github.com/arloliu/larr/internal/options"
	"github.com/arloliu/larr/label"
)

// config carries index construction options.
type config struct {
	mapper lookup.Mapper
}

// Option configures index construction.
type Option = options.Option[*config]

// WithReferenceLookup builds the reverse table with the reference map
// implementation instead of the hashed fast path. The two are observably
// identical; this exists for verification and benchmarking.
func WithReferenceLookup() Option {
	return options.NoError(func(c *config) {
		c.mapper = lookup.NewRefMapper()
	})
}

// Index is an ordered sequence of unique labels for one dimension plus a
// reverse label-to-position map.
type Index struct {
	labels []label.Label
	table  lookup.Table
}

// New builds an Index from an ordered label sequence.
//
// The sequence is copied; the caller keeps ownership of its slice. Fails
// with errs.ErrDuplicateLabel when the sequence contains a repeated label.
// By default the reverse table uses the hashed fast path; see
// WithReferenceLookup.
func New(labels []label.Label, opts ...Option) (*Index, error) {
	cfg := &config{mapper: lookup.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	owned := make([]label.Label, len(labels))
	copy(owned, labels)

	table, err := cfg.mapper.Build(owned)
	if err != nil {
		return nil, err
	}

	return &Index{labels: owned, table: table}, nil
}

// Default returns the index used when a caller supplies no labels:
// Int(0) through Int(n-1).
func Default(n int) *Index {
	ix, err := New(label.Sequence(n))
	if err != nil {
		// Sequence labels are unique by construction.
		panic(fmt.Sprintf("axis: default index build failed: %v", err))
	}

	return ix
}

// fromUnique builds an Index from labels already known to be unique.
// The slice is owned by the new Index and must not be mutated afterwards.
func fromUnique(labels []label.Label) *Index {
	table, err := lookup.Default().Build(labels)
	if err != nil {
		panic(fmt.Sprintf("axis: unique label set rejected: %v", err))
	}

	return &Index{labels: labels, table: table}
}

// Len returns the number of labels on the axis.
func (ix *Index) Len() int {
	return len(ix.labels)
}

// Label returns the label at position i. Panics when i is out of range,
// matching slice indexing semantics.
func (ix *Index) Label(i int) label.Label {
	return ix.labels[i]
}

// Labels returns a copy of the ordered label sequence.
func (ix *Index) Labels() []label.Label {
	out := make([]label.Label, len(ix.labels))
	copy(out, ix.labels)

	return out
}

// Contains reports whether l is present on the axis.
func (ix *Index) Contains(l label.Label) bool {
	_, ok := ix.table.Position(l)

	return ok
}

// Position returns the position of l.
//
// Fails with errs.ErrKeyNotFound when l is absent.
func (ix *Index) Position(l label.Label) (int, error) {
	pos, ok := ix.table.Position(l)
	if !ok {
		return 0, fmt.Errorf("%w: label %s", errs.ErrKeyNotFound, l)
	}

	return pos, nil
}

// Positions resolves an ordered label sequence to positions.
//
// Fails with errs.ErrKeyNotFound at the first unresolved label, reporting
// the offending label.
func (ix *Index) Positions(labels []label.Label) ([]int, error) {
	out := make([]int, len(labels))
	for i, l := range labels {
		pos, ok := ix.table.Position(l)
		if !ok {
			return nil, fmt.Errorf("%w: label %s", errs.ErrKeyNotFound, l)
		}
		out[i] = pos
	}

	return out, nil
}

// Equal reports whether the two indexes hold the same labels in the same
// order.
func (ix *Index) Equal(other *Index) bool {
	if ix == other {
		return true
	}
	if len(ix.labels) != len(other.labels) {
		return false
	}
	for i, l := range ix.labels {
		if other.labels[i] != l {
			return false
		}
	}

	return true
}

// String renders a short diagnostic form, truncating long axes.
func (ix *Index) String() string {
	const maxShown = 8

	var b strings.Builder
	b.WriteString("axis[")
	for i, l := range ix.labels {
		if i == maxShown {
			fmt.Fprintf(&b, ", ... (%d total)", len(ix.labels))
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.String())
	}
	b.WriteString("]")

	return b.String()
}

// Union returns a new Index holding the stable concatenation of the two
// label sets: the receiver's labels in order, followed by the other side's
// labels not already present, in the other side's order.
//
// This order is deterministic given deterministic inputs. For a sorted
// union use UnionSorted.
func (ix *Index) Union(other *Index) *Index {
	merged := make([]label.Label, len(ix.labels), len(ix.labels)+other.Len())
	copy(merged, ix.labels)
	for _, l := range other.labels {
		if !ix.Contains(l) {
			merged = append(merged, l)
		}
	}

	return fromUnique(merged)
}

// UnionSorted returns the union of the two label sets in ascending label
// order.
//
// Fails with errs.ErrUnorderable when the combined labels do not share a
// total order (mixed kinds other than Int with Float).
func (ix *Index) UnionSorted(other *Index) (*Index, error) {
	merged := ix.Union(other)
	if err := sortLabels(merged.labels); err != nil {
		return nil, err
	}

	return fromUnique(merged.labels), nil
}

// Intersection returns a new Index holding the receiver's labels, in the
// receiver's order, filtered to membership in other. The order is stable;
// labels are never resorted.
func (ix *Index) Intersection(other *Index) *Index {
	kept := make([]label.Label, 0, min(len(ix.labels), other.Len()))
	for _, l := range ix.labels {
		if other.Contains(l) {
			kept = append(kept, l)
		}
	}

	return fromUnique(kept)
}

// Difference returns a new Index holding the receiver's labels, in the
// receiver's order, that are absent from other.
func (ix *Index) Difference(other *Index) *Index {
	kept := make([]label.Label, 0, len(ix.labels))
	for _, l := range ix.labels {
		if !other.Contains(l) {
			kept = append(kept, l)
		}
	}

	return fromUnique(kept)
}

// Range returns the positions whose labels fall inside the inclusive label
// range [lo, hi], in axis order.
//
// Every axis label must be orderable against the endpoints; otherwise the
// call fails with errs.ErrUnorderable. The endpoints themselves need not be
// present on the axis. An inverted range (lo > hi) yields no positions.
func (ix *Index) Range(lo, hi label.Label) ([]int, error) {
	positions := make([]int, 0, len(ix.labels))
	for i, l := range ix.labels {
		cmpLo, err := l.Compare(lo)
		if err != nil {
			return nil, fmt.Errorf("range selection: %w", err)
		}
		cmpHi, err := l.Compare(hi)
		if err != nil {
			return nil, fmt.Errorf("range selection: %w", err)
		}
		if cmpLo >= 0 && cmpHi <= 0 {
			positions = append(positions, i)
		}
	}

	return positions, nil
}

// sortLabels sorts labels ascending in place, failing with
// errs.ErrUnorderable when any pair of labels cannot be compared.
func sortLabels(labels []label.Label) error {
	if err := checkOrderable(labels); err != nil {
		return err
	}
	sort.SliceStable(labels, func(i, j int) bool {
		c, _ := labels[i].Compare(labels[j])

		return c < 0
	})

	return nil
}

// checkOrderable verifies the labels share a total order: all numeric
// (Int/Float), or all one of String/Time.
func checkOrderable(labels []label.Label) error {
	if len(labels) < 2 {
		return nil
	}
	for _, l := range labels[1:] {
		if _, err := labels[0].Compare(l); err != nil {
			return err
		}
	}

	return nil
}
