package array

import (
	"fmt"

	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/label"
)

type specKind uint8

const (
	specAll specKind = iota + 1
	specAt
	specRange
	specKeys
	specMask
	specPos
)

// Spec describes the selection applied to one axis.
//
// Label addressing and positional addressing are distinct spec kinds and
// are never conflated: At, Range, Keys, and Mask resolve labels through the
// axis index, while Pos addresses buffer positions directly. A caller who
// wants "position 3" says Pos(3); At(label.Int(3)) always means the label 3.
type Spec struct {
	at        label.Label
	lo, hi    label.Label
	keys      []label.Label
	mask      []bool
	positions []int
	kind      specKind
}

// All selects every position on the axis, preserving order.
func All() Spec {
	return Spec{kind: specAll}
}

// At selects a single label and collapses the axis: the result array drops
// this dimension.
func At(l label.Label) Spec {
	return Spec{kind: specAt, at: l}
}

// Range selects the inclusive label range [lo, hi] in axis order. Every
// label on the axis must be orderable against the endpoints.
func Range(lo, hi label.Label) Spec {
	return Spec{kind: specRange, lo: lo, hi: hi}
}

// Keys selects an explicit list of labels; the list order determines the
// result order, which is how re-ordering or subsetting an axis is
// expressed.
func Keys(labels ...label.Label) Spec {
	return Spec{kind: specKeys, keys: labels}
}

// Mask selects the positions where the mask is true, preserving axis
// order. The mask length must equal the axis length.
func Mask(mask []bool) Spec {
	return Spec{kind: specMask, mask: mask}
}

// Pos selects explicit buffer positions in the given order, bypassing
// label resolution entirely.
func Pos(positions ...int) Spec {
	return Spec{kind: specPos, positions: positions}
}

// Select applies one Spec per axis and returns a new array.
//
// The result's rank equals the number of axes not collapsed by At; a
// selection that collapses every axis fails with errs.ErrShapeMismatch
// (use Get for scalar access). Result axes are newly built indexes
// reflecting the selection order, and the result buffer is a copy:
// mutating it never affects the receiver.
func (a *Array) Select(specs ...Spec) (*Array, error) {
	if len(specs) != len(a.axes) {
		return nil, fmt.Errorf("%w: %d selection specs for rank %d",
			errs.ErrShapeMismatch, len(specs), len(a.axes))
	}

	collapsed := make([]bool, len(specs))
	remaining := len(specs)
	for d, spec := range specs {
		if spec.kind == specAt {
			collapsed[d] = true
			remaining--
		}
	}
	if remaining == 0 {
		return nil, fmt.Errorf("%w: selection collapses every axis; use Get for scalar access",
			errs.ErrShapeMismatch)
	}

	out := a
	for d, spec := range specs {
		positions, newIx, err := resolveSpec(out.axes[d], spec)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", d, err)
		}
		if spec.kind == specAll && out == a {
			// Nothing to gather and nothing gathered yet.
			continue
		}
		out, err = out.take(d, positions, newIx)
		if err != nil {
			return nil, err
		}
	}
	if out == a {
		// Full identity selection: return a copy, never the receiver.
		out = a.Copy()
	}

	return out.dropCollapsed(collapsed)
}

// resolveSpec translates one axis spec into gather positions and the
// result axis for that dimension.
func resolveSpec(ix *axis.Index, spec Spec) ([]int, *axis.Index, error) {
	switch spec.kind {
	case specAll:
		positions := make([]int, ix.Len())
		for i := range positions {
			positions[i] = i
		}

		return positions, ix, nil

	case specAt:
		pos, err := ix.Position(spec.at)
		if err != nil {
			return nil, nil, err
		}
		newIx, err := axis.New([]label.Label{spec.at})
		if err != nil {
			return nil, nil, err
		}

		return []int{pos}, newIx, nil

	case specRange:
		positions, err := ix.Range(spec.lo, spec.hi)
		if err != nil {
			return nil, nil, err
		}
		newIx, err := axis.New(pickLabels(ix.Labels(), positions))
		if err != nil {
			return nil, nil, err
		}

		return positions, newIx, nil

	case specKeys:
		positions, err := ix.Positions(spec.keys)
		if err != nil {
			return nil, nil, err
		}
		newIx, err := axis.New(spec.keys)
		if err != nil {
			return nil, nil, err
		}

		return positions, newIx, nil

	case specMask:
		if len(spec.mask) != ix.Len() {
			return nil, nil, fmt.Errorf("%w: mask length %d for axis length %d",
				errs.ErrShapeMismatch, len(spec.mask), ix.Len())
		}
		positions := make([]int, 0, len(spec.mask))
		for i, keep := range spec.mask {
			if keep {
				positions = append(positions, i)
			}
		}
		newIx, err := axis.New(pickLabels(ix.Labels(), positions))
		if err != nil {
			return nil, nil, err
		}

		return positions, newIx, nil

	case specPos:
		for _, p := range spec.positions {
			if p < 0 || p >= ix.Len() {
				return nil, nil, fmt.Errorf("%w: position %d out of range (axis length %d)",
					errs.ErrInvalidArgument, p, ix.Len())
			}
		}
		newIx, err := axis.New(pickLabels(ix.Labels(), spec.positions))
		if err != nil {
			return nil, nil, err
		}

		return spec.positions, newIx, nil

	default:
		return nil, nil, fmt.Errorf("%w: empty selection spec", errs.ErrInvalidArgument)
	}
}

// dropCollapsed removes the length-1 dimensions marked collapsed. The data
// layout is unchanged: a length-1 dimension contributes nothing to
// row-major offsets.
func (a *Array) dropCollapsed(collapsed []bool) (*Array, error) {
	keep := 0
	for _, c := range collapsed {
		if !c {
			keep++
		}
	}
	if keep == len(collapsed) {
		return a, nil
	}

	newShape := make([]int, 0, keep)
	newAxes := make([]*axis.Index, 0, keep)
	for d, c := range collapsed {
		if !c {
			newShape = append(newShape, a.shape[d])
			newAxes = append(newAxes, a.axes[d])
		}
	}

	out := &Array{
		dtype:   a.dtype,
		shape:   newShape,
		strides: rowMajorStrides(newShape),
		axes:    newAxes,
		f:       a.f,
		i:       a.i,
		s:       a.s,
		o:       a.o,
	}

	return out, nil
}
