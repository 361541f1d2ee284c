package array

import (
	"fmt"

	"github.com/arloliu/larr/axis"
	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
	"github.com/arloliu/larr/label"
)

// missingPos marks a gather position that has no source element and must be
// filled with the dtype's missing sentinel. Only union-mode alignment
// produces it.
const missingPos = -1

// take gathers positions along one axis into a new array carrying newAxis
// on that dimension. A missingPos entry fills the output with the missing
// sentinel; callers must promote Int arrays to Float before gathering with
// fill.
//
// The gather walks the buffer block-wise: for every slice of the outer
// dimensions it copies one contiguous inner block per requested position,
// so the per-element cost is a straight memcopy regardless of rank.
func (a *Array) take(dim int, positions []int, newAxis *axis.Index) (*Array, error) {
	if dim < 0 || dim >= len(a.shape) {
		return nil, fmt.Errorf("%w: axis %d out of range for rank %d",
			errs.ErrShapeMismatch, dim, len(a.shape))
	}
	if a.dtype == format.DTypeInt {
		for _, p := range positions {
			if p == missingPos {
				return nil, fmt.Errorf("%w: Int array cannot hold missing fill",
					errs.ErrDtypeMismatch)
			}
		}
	}

	newShape := make([]int, len(a.shape))
	copy(newShape, a.shape)
	newShape[dim] = len(positions)
	newAxes := make([]*axis.Index, len(a.axes))
	copy(newAxes, a.axes)
	newAxes[dim] = newAxis

	out := a.emptyLike(a.dtype, newShape, newAxes)

	inner := a.strides[dim]         // elements per block along this axis
	srcLane := a.shape[dim] * inner // elements per outer slice in the source
	dstLane := len(positions) * inner
	outer := 1
	for _, n := range a.shape[:dim] {
		outer *= n
	}

	for o := 0; o < outer; o++ {
		srcBase := o * srcLane
		dstBase := o * dstLane
		for j, p := range positions {
			dstOff := dstBase + j*inner
			if p == missingPos {
				for k := 0; k < inner; k++ {
					out.setMissing(dstOff + k)
				}

				continue
			}
			out.copyBlock(dstOff, a, srcBase+p*inner, inner)
		}
	}

	return out, nil
}

// copyBlock copies n contiguous elements from src starting at srcOff into
// the receiver starting at dstOff. Both arrays must share a dtype.
func (a *Array) copyBlock(dstOff int, src *Array, srcOff, n int) {
	switch a.dtype {
	case format.DTypeFloat:
		copy(a.f[dstOff:dstOff+n], src.f[srcOff:srcOff+n])
	case format.DTypeInt:
		copy(a.i[dstOff:dstOff+n], src.i[srcOff:srcOff+n])
	case format.DTypeString:
		copy(a.s[dstOff:dstOff+n], src.s[srcOff:srcOff+n])
	default:
		copy(a.o[dstOff:dstOff+n], src.o[srcOff:srcOff+n])
	}
}

// pickLabels returns the labels found at the given positions, in order.
func pickLabels(labels []label.Label, positions []int) []label.Label {
	out := make([]label.Label, len(positions))
	for i, p := range positions {
		out[i] = labels[p]
	}

	return out
}

// Take gathers the given positions along one axis, in the given order.
//
// This is the positional counterpart of label selection: the result axis
// carries the labels found at those positions, so the positions must not
// repeat (a repeat fails with errs.ErrDuplicateLabel). Out-of-range
// positions fail with errs.ErrInvalidArgument.
func (a *Array) Take(dim int, positions []int) (*Array, error) {
	if dim < 0 || dim >= len(a.shape) {
		return nil, fmt.Errorf("%w: axis %d out of range for rank %d",
			errs.ErrShapeMismatch, dim, len(a.shape))
	}
	for _, p := range positions {
		if p < 0 || p >= a.shape[dim] {
			return nil, fmt.Errorf("%w: position %d out of range on axis %d (length %d)",
				errs.ErrInvalidArgument, p, dim, a.shape[dim])
		}
	}

	newIx, err := axis.New(pickLabels(a.axes[dim].Labels(), positions))
	if err != nil {
		return nil, err
	}

	return a.take(dim, positions, newIx)
}
