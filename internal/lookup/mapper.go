// Package lookup builds the reverse label-to-position tables behind axis
// indexes.
//
// Two interchangeable builders are provided. RefMapper is the reference
// implementation: a plain Go map keyed by the label value itself. HashedMapper
// is a drop-in optimization that keys by the 64-bit xxHash of each label and
// verifies every probe against the stored label sequence, falling back to the
// reference table when the hash space collides during construction. The two
// builders are observably identical; correctness never depends on the hashed
// path being in use.
package lookup

import (
	"fmt"

	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/internal/hash"
	"github.com/arloliu/larr/label"
)

// Table resolves a label to its position on one axis in O(1).
type Table interface {
	// Position returns the position of l, or false when l is absent.
	Position(l label.Label) (int, bool)
}

// Mapper builds a Table from an ordered label sequence.
type Mapper interface {
	// Build constructs the reverse map for labels. It fails with
	// errs.ErrDuplicateLabel when the sequence contains a repeated label.
	Build(labels []label.Label) (Table, error)
}

// RefMapper is the reference table builder.
type RefMapper struct{}

// NewRefMapper creates the reference (unoptimized) mapper.
func NewRefMapper() RefMapper {
	return RefMapper{}
}

type refTable map[label.Label]int

func (t refTable) Position(l label.Label) (int, bool) {
	pos, ok := t[l]

	return pos, ok
}

// Build constructs a map keyed directly by label values.
func (RefMapper) Build(labels []label.Label) (Table, error) {
	table := make(refTable, len(labels))
	for i, l := range labels {
		if prev, exists := table[l]; exists {
			return nil, fmt.Errorf("%w: %s at positions %d and %d",
				errs.ErrDuplicateLabel, l, prev, i)
		}
		table[l] = i
	}

	return table, nil
}

// HashedMapper keys the reverse map by xxHash64 label identities.
//
// Integer hash keys avoid hashing the full label value on every probe, which
// matters for long string labels. Probes are verified against the stored
// label sequence, so a hash collision with an absent label can never produce
// a false positive.
type HashedMapper struct{}

// NewHashedMapper creates the hashed mapper.
func NewHashedMapper() HashedMapper {
	return HashedMapper{}
}

type hashedTable struct {
	byID   map[uint64]int
	labels []label.Label
}

func (t *hashedTable) Position(l label.Label) (int, bool) {
	pos, ok := t.byID[hash.LabelID(l)]
	if !ok || t.labels[pos] != l {
		return 0, false
	}

	return pos, true
}

// Build constructs a hash-keyed table, falling back to the reference builder
// when two distinct labels collide on the same 64-bit identity.
func (m HashedMapper) Build(labels []label.Label) (Table, error) {
	byID := make(map[uint64]int, len(labels))
	for i, l := range labels {
		id := hash.LabelID(l)
		if prev, exists := byID[id]; exists {
			if labels[prev] == l {
				return nil, fmt.Errorf("%w: %s at positions %d and %d",
					errs.ErrDuplicateLabel, l, prev, i)
			}
			// Distinct labels, same hash. Rare, but the hashed table
			// cannot represent both; use the reference table instead.
			return NewRefMapper().Build(labels)
		}
		byID[id] = i
	}

	return &hashedTable{byID: byID, labels: labels}, nil
}

// Default returns the mapper used by axis indexes unless a caller overrides
// it: the hashed fast path.
func Default() Mapper {
	return NewHashedMapper()
}
