package array

import (
	"fmt"

	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/internal/pool"
)

// Mode selects how two arrays' axis labels are reconciled before an
// elementwise combination.
type Mode uint8

const (
	// ModeInner keeps the labels present on both sides, ordered by the
	// left operand. Non-matching rows and columns are dropped, never
	// filled. This is the default mode.
	ModeInner Mode = 0x1
	// ModeUnion keeps every label from either side: the left operand's
	// labels in order, then the right operand's unseen labels in order
	// (the stable concatenation of axis.Union). Positions absent from one
	// operand are filled with that operand's missing sentinel; Int
	// operands are promoted to Float to hold the fill.
	ModeUnion Mode = 0x2
	// ModeLeft keeps the labels present on both sides, ordered by the
	// left operand's axis. Like ModeInner, absent labels are dropped, not
	// filled.
	ModeLeft Mode = 0x3
	// ModeRight keeps the labels present on both sides, ordered by the
	// right operand's axis.
	ModeRight Mode = 0x4
)

func (m Mode) String() string {
	switch m {
	case ModeInner:
		return "Inner"
	case ModeUnion:
		return "Union"
	case ModeLeft:
		return "Left"
	case ModeRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Align reconciles the axis labels of two arrays of equal rank and returns
// both operands reindexed to the reconciled axes, ready for elementwise
// combination.
//
// Modes may be given as none (ModeInner on every axis), one (applied to
// every axis), or one per axis. Operands of different rank fail with
// errs.ErrShapeMismatch.
//
// Reconciliation is O(n+m) per axis: membership tests run against the
// reverse maps already kept by each axis index. Two operands sharing an
// identical axis skip the gather for that dimension entirely; the observable
// result is the same as running full reconciliation.
func Align(a, b *Array, modes ...Mode) (*Array, *Array, error) {
	if a.Rank() != b.Rank() {
		return nil, nil, fmt.Errorf("%w: cannot align rank %d with rank %d",
			errs.ErrShapeMismatch, a.Rank(), b.Rank())
	}
	axisModes, err := spreadModes(a.Rank(), modes)
	if err != nil {
		return nil, nil, err
	}

	// Union fill requires a missing sentinel; promote Int operands up
	// front when any axis uses union mode and the label sets differ.
	for d, mode := range axisModes {
		if mode != ModeUnion || a.axes[d].Equal(b.axes[d]) {
			continue
		}
		if a.dtype == format.DTypeInt {
			if a, err = a.AsFloat(); err != nil {
				return nil, nil, err
			}
		}
		if b.dtype == format.DTypeInt {
			if b, err = b.AsFloat(); err != nil {
				return nil, nil, err
			}
		}

		break
	}

	outA, outB := a, b
	for d, mode := range axisModes {
		if outA.axes[d].Equal(outB.axes[d]) {
			// Already reconciled; any mode reproduces this axis as-is.
			continue
		}

		joined, err := joinAxes(outA.axes[d], outB.axes[d], mode)
		if err != nil {
			return nil, nil, err
		}
		if outA, err = reindex(outA, d, joined); err != nil {
			return nil, nil, err
		}
		if outB, err = reindex(outB, d, joined); err != nil {
			return nil, nil, err
		}
	}

	// Operands must never alias the inputs: an aligned result is always
	// safe to mutate.
	if outA == a {
		outA = a.Copy()
	}
	if outB == b {
		outB = b.Copy()
	}

	return outA, outB, nil
}

func spreadModes(rank int, modes []Mode) ([]Mode, error) {
	out := make([]Mode, rank)
	switch len(modes) {
	case 0:
		for d := range out {
			out[d] = ModeInner
		}
	case 1:
		for d := range out {
			out[d] = modes[0]
		}
	case rank:
		copy(out, modes)
	default:
		return nil, fmt.Errorf("%w: %d alignment modes for rank %d",
			errs.ErrShapeMismatch, len(modes), rank)
	}
	for d, m := range out {
		if m < ModeInner || m > ModeRight {
			return nil, fmt.Errorf("%w: unknown alignment mode on axis %d",
				errs.ErrInvalidArgument, d)
		}
	}

	return out, nil
}

// joinAxes computes the reconciled axis for one dimension.
func joinAxes(left, right *axis.Index, mode Mode) (*axis.Index, error) {
	switch mode {
	case ModeInner, ModeLeft:
		return left.Intersection(right), nil
	case ModeRight:
		return right.Intersection(left), nil
	case ModeUnion:
		return left.Union(right), nil
	default:
		return nil, fmt.Errorf("%w: unknown alignment mode", errs.ErrInvalidArgument)
	}
}

// reindex gathers arr along dim so its axis becomes joined. Labels absent
// from arr map to missing fill.
func reindex(arr *Array, dim int, joined *axis.Index) (*Array, error) {
	if arr.axes[dim].Equal(joined) {
		return arr, nil
	}

	src := arr.axes[dim]
	positions, release := pool.GetIntSlice(joined.Len())
	defer release()
	for i, l := range joined.Labels() {
		if pos, err := src.Position(l); err == nil {
			positions[i] = pos
		} else {
			positions[i] = missingPos
		}
	}

	return arr.take(dim, positions, joined)
}
