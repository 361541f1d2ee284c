package array

import (
	"fmt"
	"math"

	"github.com/arloliu/larr/errs"
	"github.com/arloliu/larr/format"
)

// Op identifies an elementwise binary operation.
type Op uint8

const (
	OpAdd Op = 0x1 // OpAdd adds numeric elements; concatenates strings.
	OpSub Op = 0x2 // OpSub subtracts numeric elements.
	OpMul Op = 0x3 // OpMul multiplies numeric elements.
	OpDiv Op = 0x4 // OpDiv divides numeric elements; the result dtype is always Float.
	OpEq  Op = 0x5 // OpEq compares for equality.
	OpNe  Op = 0x6 // OpNe compares for inequality.
	OpLt  Op = 0x7 // OpLt compares less-than.
	OpLe  Op = 0x8 // OpLe compares less-or-equal.
	OpGt  Op = 0x9 // OpGt compares greater-than.
	OpGe  Op = 0xA // OpGe compares greater-or-equal.
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	case OpEq:
		return "Eq"
	case OpNe:
		return "Ne"
	case OpLt:
		return "Lt"
	case OpLe:
		return "Le"
	case OpGt:
		return "Gt"
	case OpGe:
		return "Ge"
	default:
		return "Unknown"
	}
}

func (op Op) isComparison() bool {
	return op >= OpEq
}

// Apply aligns two arrays and combines them elementwise, returning a new
// array whose axes are the reconciled label sequences.
//
// The default alignment mode is ModeInner; this is the one default callers
// must know: labels present on only one side are dropped, not filled.
// Alignment cost and policy are explicit here rather than hidden behind
// operator overloading.
//
// Missing-value propagation is distinct from alignment: once the operands
// are reconciled, any position holding a missing sentinel on either side
// yields the missing sentinel in the result (NaN for numeric results, ""
// for string results).
//
// Dtype rules: Float and Int combine (Int promotes to Float when mixed, or
// for OpDiv); String supports OpAdd (concatenation) and all comparisons;
// Object supports no operations. Violations fail with
// errs.ErrDtypeMismatch. Comparisons always produce a Float array of 0s
// and 1s with NaN at missing positions.
func Apply(op Op, a, b *Array, modes ...Mode) (*Array, error) {
	if op < OpAdd || op > OpGe {
		return nil, fmt.Errorf("%w: unknown op", errs.ErrInvalidArgument)
	}
	if err := checkOperandDtypes(op, a, b); err != nil {
		return nil, err
	}

	a2, b2, err := Align(a, b, modes...)
	if err != nil {
		return nil, err
	}

	if a2.dtype == format.DTypeString {
		return applyString(op, a2, b2)
	}

	return applyNumeric(op, a2, b2)
}

func checkOperandDtypes(op Op, a, b *Array) error {
	if a.dtype == format.DTypeObject || b.dtype == format.DTypeObject {
		return fmt.Errorf("%w: no operations defined on Object arrays", errs.ErrDtypeMismatch)
	}

	aStr := a.dtype == format.DTypeString
	bStr := b.dtype == format.DTypeString
	if aStr != bStr {
		return fmt.Errorf("%w: cannot combine %s with %s", errs.ErrDtypeMismatch, a.dtype, b.dtype)
	}
	if aStr && !op.isComparison() && op != OpAdd {
		return fmt.Errorf("%w: %s not defined on String arrays", errs.ErrDtypeMismatch, op)
	}

	return nil
}

// applyNumeric combines aligned Float/Int operands.
func applyNumeric(op Op, a, b *Array) (*Array, error) {
	// Int stays Int only for closed integer arithmetic between two Int
	// operands; everything else runs in Float.
	if a.dtype == format.DTypeInt && b.dtype == format.DTypeInt &&
		!op.isComparison() && op != OpDiv {
		return applyInt(op, a, b)
	}

	af, err := a.AsFloat()
	if err != nil {
		return nil, err
	}
	bf, err := b.AsFloat()
	if err != nil {
		return nil, err
	}

	out := af.emptyLike(format.DTypeFloat, af.shape, af.axes)
	for i, x := range af.f {
		y := bf.f[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			out.f[i] = math.NaN()

			continue
		}
		out.f[i] = evalFloat(op, x, y)
	}

	return out, nil
}

func evalFloat(op Op, x, y float64) float64 {
	switch op {
	case OpAdd:
		return x + y
	case OpSub:
		return x - y
	case OpMul:
		return x * y
	case OpDiv:
		return x / y
	default:
		return boolToFloat(evalCompare(op, cmp(x, y)))
	}
}

func applyInt(op Op, a, b *Array) (*Array, error) {
	out := a.emptyLike(format.DTypeInt, a.shape, a.axes)
	for i, x := range a.i {
		y := b.i[i]
		switch op {
		case OpAdd:
			out.i[i] = x + y
		case OpSub:
			out.i[i] = x - y
		default:
			out.i[i] = x * y
		}
	}

	return out, nil
}

// applyString combines aligned String operands: concatenation for OpAdd,
// Float 0/1 arrays for comparisons. The empty string is missing and
// propagates.
func applyString(op Op, a, b *Array) (*Array, error) {
	if op == OpAdd {
		out := a.emptyLike(format.DTypeString, a.shape, a.axes)
		for i, x := range a.s {
			y := b.s[i]
			if x == "" || y == "" {
				out.s[i] = ""

				continue
			}
			out.s[i] = x + y
		}

		return out, nil
	}

	out := a.emptyLike(format.DTypeFloat, a.shape, a.axes)
	for i, x := range a.s {
		y := b.s[i]
		if x == "" || y == "" {
			out.f[i] = math.NaN()

			continue
		}
		out.f[i] = boolToFloat(evalCompare(op, cmpString(x, y)))
	}

	return out, nil
}

// evalCompare maps a three-way comparison result onto a comparison op.
func evalCompare(op Op, c int) bool {
	switch op {
	case OpEq:
		return c == 0
	case OpNe:
		return c != 0
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	default:
		return c >= 0
	}
}

func cmp(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func cmpString(x, y string) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
