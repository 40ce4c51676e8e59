package elemental

import (
	"math"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

func (e *Emitter) makeBinaryGenerator(op *hlo.Op, lhs, rhs Generator) Generator {
	lhsShape, rhsShape := op.Operand(0), op.Operand(1)
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		lhsValue, err := lhs(b, operandSourceIndex(b, index, op.Shape, lhsShape))
		if err != nil {
			return nil, err
		}
		rhsValue, err := rhs(b, operandSourceIndex(b, index, op.Shape, rhsShape))
		if err != nil {
			return nil, err
		}
		return emitBinary(b, op, lhsValue, rhsValue)
	}
}

func emitBinary(b *ir.Builder, op *hlo.Op, lhs, rhs *ir.Value) (*ir.Value, error) {
	if op.Type == hlo.OpTypeComplex {
		return b.Complex(lhs, rhs), nil
	}
	dtype := lhs.DType()
	switch {
	case dtype == dtypes.Bool:
		return emitBoolBinary(b, op, lhs, rhs)
	case dtype.IsInt():
		return emitIntBinary(b, op, lhs, rhs)
	case dtype == dtypes.BFloat16:
		v, err := emitFloatBinary(b, op, decodeBF16(b, lhs), decodeBF16(b, rhs))
		if err != nil {
			return nil, err
		}
		if op.Shape.DType == dtypes.BFloat16 && v.DType() == dtypes.Float32 {
			v = encodeBF16(b, v)
		}
		return v, nil
	case dtype.IsFloat():
		return emitFloatBinary(b, op, lhs, rhs)
	case dtype.IsComplex():
		return emitComplexBinary(b, op, lhs, rhs)
	}
	return nil, unimplementedf("binary operation %s on %s", op.Type, dtype)
}

func emitBoolBinary(b *ir.Builder, op *hlo.Op, lhs, rhs *ir.Value) (*ir.Value, error) {
	switch op.Type {
	case hlo.OpTypeAnd:
		return b.And(lhs, rhs), nil
	case hlo.OpTypeOr:
		return b.Or(lhs, rhs), nil
	case hlo.OpTypeXor:
		return b.Xor(lhs, rhs), nil
	case hlo.OpTypeEq:
		return b.ICmp(ir.IntEQ, lhs, rhs), nil
	case hlo.OpTypeNe:
		return b.ICmp(ir.IntNE, lhs, rhs), nil
	case hlo.OpTypeMaximum:
		return emitIntMax(b, lhs, rhs, false), nil
	case hlo.OpTypeMinimum:
		return emitIntMin(b, lhs, rhs, false), nil
	}
	return nil, unimplementedf("binary operation %s on %s", op.Type, dtypes.Bool)
}

func emitIntBinary(b *ir.Builder, op *hlo.Op, lhs, rhs *ir.Value) (*ir.Value, error) {
	dtype := lhs.DType()
	signed := !dtype.IsUnsigned()
	switch op.Type {
	case hlo.OpTypeAdd:
		return b.Add(lhs, rhs), nil
	case hlo.OpTypeSubtract:
		return b.Sub(lhs, rhs), nil
	case hlo.OpTypeMultiply:
		return b.Mul(lhs, rhs), nil
	case hlo.OpTypeDivide:
		return emitGuardedIntDiv(b, lhs, rhs, signed), nil
	case hlo.OpTypeRemainder:
		return emitGuardedIntRem(b, lhs, rhs, signed), nil
	case hlo.OpTypeMaximum:
		return emitIntMax(b, lhs, rhs, signed), nil
	case hlo.OpTypeMinimum:
		return emitIntMin(b, lhs, rhs, signed), nil
	case hlo.OpTypeAnd:
		return b.And(lhs, rhs), nil
	case hlo.OpTypeOr:
		return b.Or(lhs, rhs), nil
	case hlo.OpTypeXor:
		return b.Xor(lhs, rhs), nil
	case hlo.OpTypeShiftLeft, hlo.OpTypeShiftRightLogical, hlo.OpTypeShiftRightArithmetic:
		return emitSaturatingShift(b, op.Type, lhs, rhs), nil
	case hlo.OpTypeEq, hlo.OpTypeNe, hlo.OpTypeGe, hlo.OpTypeGt, hlo.OpTypeLe, hlo.OpTypeLt:
		return b.ICmp(intComparePredicate(op.Type, signed), lhs, rhs), nil
	}
	return nil, unimplementedf("binary operation %s on %s", op.Type, dtype)
}

func intComparePredicate(opType hlo.OpType, signed bool) ir.IntPredicate {
	switch opType {
	case hlo.OpTypeEq:
		return ir.IntEQ
	case hlo.OpTypeNe:
		return ir.IntNE
	case hlo.OpTypeGe:
		if signed {
			return ir.IntSGE
		}
		return ir.IntUGE
	case hlo.OpTypeGt:
		if signed {
			return ir.IntSGT
		}
		return ir.IntUGT
	case hlo.OpTypeLe:
		if signed {
			return ir.IntSLE
		}
		return ir.IntULE
	case hlo.OpTypeLt:
		if signed {
			return ir.IntSLT
		}
		return ir.IntULT
	}
	exceptions.Panicf("elemental: %s is not a comparison", opType)
	return ir.IntEQ
}

func constMinInt(b *ir.Builder, dtype dtypes.DType) *ir.Value {
	return b.ConstBits(dtype, uint64(1)<<(dtype.Size()*8-1))
}

// emitGuardedIntDiv divides without ever issuing a trapping divide: the
// divisor is swapped for 1 whenever the real one would trap, and the
// documented result is selected afterwards. Division by zero yields -1 and
// INT_MIN / -1 yields INT_MIN.
func emitGuardedIntDiv(b *ir.Builder, lhs, rhs *ir.Value, signed bool) *ir.Value {
	dtype := lhs.DType()
	zero := b.ConstInt(dtype, 0)
	one := b.ConstInt(dtype, 1)
	divisorIsZero := b.ICmp(ir.IntEQ, rhs, zero)
	if !signed {
		quotient := b.UDiv(lhs, b.Select(divisorIsZero, one, rhs))
		return b.Select(divisorIsZero, b.ConstInt(dtype, -1), quotient)
	}
	overflows := b.And(
		b.ICmp(ir.IntEQ, lhs, constMinInt(b, dtype)),
		b.ICmp(ir.IntEQ, rhs, b.ConstInt(dtype, -1)))
	unsafe := b.Or(divisorIsZero, overflows)
	quotient := b.SDiv(lhs, b.Select(unsafe, one, rhs))
	return b.Select(divisorIsZero, b.ConstInt(dtype, -1),
		b.Select(overflows, constMinInt(b, dtype), quotient))
}

// emitGuardedIntRem is the remainder companion of emitGuardedIntDiv:
// remainder by zero yields the dividend and INT_MIN % -1 yields 0.
func emitGuardedIntRem(b *ir.Builder, lhs, rhs *ir.Value, signed bool) *ir.Value {
	dtype := lhs.DType()
	zero := b.ConstInt(dtype, 0)
	one := b.ConstInt(dtype, 1)
	divisorIsZero := b.ICmp(ir.IntEQ, rhs, zero)
	if !signed {
		remainder := b.URem(lhs, b.Select(divisorIsZero, one, rhs))
		return b.Select(divisorIsZero, lhs, remainder)
	}
	overflows := b.And(
		b.ICmp(ir.IntEQ, lhs, constMinInt(b, dtype)),
		b.ICmp(ir.IntEQ, rhs, b.ConstInt(dtype, -1)))
	unsafe := b.Or(divisorIsZero, overflows)
	remainder := b.SRem(lhs, b.Select(unsafe, one, rhs))
	return b.Select(divisorIsZero, lhs, b.Select(overflows, zero, remainder))
}

func emitIntMax(b *ir.Builder, lhs, rhs *ir.Value, signed bool) *ir.Value {
	pred := ir.IntUGE
	if signed {
		pred = ir.IntSGE
	}
	return b.Select(b.ICmp(pred, lhs, rhs), lhs, rhs)
}

func emitIntMin(b *ir.Builder, lhs, rhs *ir.Value, signed bool) *ir.Value {
	pred := ir.IntULE
	if signed {
		pred = ir.IntSLE
	}
	return b.Select(b.ICmp(pred, lhs, rhs), lhs, rhs)
}

// emitSaturatingShift shifts with out-of-range amounts pinned to their
// defined results: shifting by the bit width or more gives 0, except the
// arithmetic right shift which gives 0 or -1 per the shifted value's sign.
// The amount comparison is unsigned, so negative amounts also saturate.
func emitSaturatingShift(b *ir.Builder, opType hlo.OpType, lhs, rhs *ir.Value) *ir.Value {
	dtype := lhs.DType()
	zero := b.ConstInt(dtype, 0)
	inRange := b.ICmp(ir.IntULT, rhs, b.ConstInt(dtype, int64(dtype.Size()*8)))
	switch opType {
	case hlo.OpTypeShiftLeft:
		return b.Select(inRange, b.Shl(lhs, rhs), zero)
	case hlo.OpTypeShiftRightLogical:
		return b.Select(inRange, b.LShr(lhs, rhs), zero)
	default:
		saturated := b.Select(b.ICmp(ir.IntSLT, lhs, zero), b.ConstInt(dtype, -1), zero)
		return b.Select(inRange, b.AShr(lhs, rhs), saturated)
	}
}

func emitFloatBinary(b *ir.Builder, op *hlo.Op, lhs, rhs *ir.Value) (*ir.Value, error) {
	switch op.Type {
	case hlo.OpTypeAdd:
		return b.FAdd(lhs, rhs), nil
	case hlo.OpTypeSubtract:
		return b.FSub(lhs, rhs), nil
	case hlo.OpTypeMultiply:
		return b.FMul(lhs, rhs), nil
	case hlo.OpTypeDivide:
		return b.FDiv(lhs, rhs), nil
	case hlo.OpTypeRemainder:
		return b.FRem(lhs, rhs), nil
	case hlo.OpTypeMaximum:
		return emitFloatMax(b, lhs, rhs), nil
	case hlo.OpTypeMinimum:
		return emitFloatMin(b, lhs, rhs), nil
	case hlo.OpTypePower:
		return b.Pow(lhs, rhs), nil
	case hlo.OpTypeAtan2:
		return b.Atan2(lhs, rhs), nil
	case hlo.OpTypeEq:
		return b.FCmp(ir.FloatOEQ, lhs, rhs), nil
	case hlo.OpTypeNe:
		// x != y is the exact complement of x == y, so NaN compares true.
		return b.FCmp(ir.FloatUNE, lhs, rhs), nil
	case hlo.OpTypeGe:
		return b.FCmp(ir.FloatOGE, lhs, rhs), nil
	case hlo.OpTypeGt:
		return b.FCmp(ir.FloatOGT, lhs, rhs), nil
	case hlo.OpTypeLe:
		return b.FCmp(ir.FloatOLE, lhs, rhs), nil
	case hlo.OpTypeLt:
		return b.FCmp(ir.FloatOLT, lhs, rhs), nil
	}
	return nil, unimplementedf("binary operation %s on %s", op.Type, lhs.DType())
}

// emitFloatMax propagates NaN: if either side is NaN the result is NaN,
// otherwise the larger value.
func emitFloatMax(b *ir.Builder, lhs, rhs *ir.Value) *ir.Value {
	ordered := b.Select(b.FCmp(ir.FloatOGE, lhs, rhs), lhs, rhs)
	return b.Select(b.FCmp(ir.FloatUNO, lhs, rhs), b.ConstFloat(lhs.DType(), math.NaN()), ordered)
}

func emitFloatMin(b *ir.Builder, lhs, rhs *ir.Value) *ir.Value {
	ordered := b.Select(b.FCmp(ir.FloatOLE, lhs, rhs), lhs, rhs)
	return b.Select(b.FCmp(ir.FloatUNO, lhs, rhs), b.ConstFloat(lhs.DType(), math.NaN()), ordered)
}

func emitComplexBinary(b *ir.Builder, op *hlo.Op, lhs, rhs *ir.Value) (*ir.Value, error) {
	switch op.Type {
	case hlo.OpTypeAdd:
		return b.Complex(
			b.FAdd(b.Real(lhs), b.Real(rhs)),
			b.FAdd(b.Imag(lhs), b.Imag(rhs))), nil
	case hlo.OpTypeSubtract:
		return b.Complex(
			b.FSub(b.Real(lhs), b.Real(rhs)),
			b.FSub(b.Imag(lhs), b.Imag(rhs))), nil
	case hlo.OpTypeMultiply:
		return emitComplexMul(b, lhs, rhs), nil
	case hlo.OpTypeDivide:
		return emitComplexDiv(b, lhs, rhs), nil
	case hlo.OpTypePower:
		return emitComplexPow(b, lhs, rhs), nil
	case hlo.OpTypeEq:
		return b.And(
			b.FCmp(ir.FloatOEQ, b.Real(lhs), b.Real(rhs)),
			b.FCmp(ir.FloatOEQ, b.Imag(lhs), b.Imag(rhs))), nil
	case hlo.OpTypeNe:
		return b.Or(
			b.FCmp(ir.FloatUNE, b.Real(lhs), b.Real(rhs)),
			b.FCmp(ir.FloatUNE, b.Imag(lhs), b.Imag(rhs))), nil
	}
	return nil, unimplementedf("binary operation %s on %s", op.Type, lhs.DType())
}

// (a+bi)(c+di) = (ac-bd) + (ad+bc)i
func emitComplexMul(b *ir.Builder, lhs, rhs *ir.Value) *ir.Value {
	lre, lim := b.Real(lhs), b.Imag(lhs)
	rre, rim := b.Real(rhs), b.Imag(rhs)
	return b.Complex(
		b.FSub(b.FMul(lre, rre), b.FMul(lim, rim)),
		b.FAdd(b.FMul(lre, rim), b.FMul(lim, rre)))
}

// (a+bi)/(c+di) = ((ac+bd) + (bc-ad)i) / (c²+d²). A zero-magnitude divisor
// divides by literal zero, giving Inf/NaN components per float semantics
// rather than failing.
func emitComplexDiv(b *ir.Builder, lhs, rhs *ir.Value) *ir.Value {
	lre, lim := b.Real(lhs), b.Imag(lhs)
	rre, rim := b.Real(rhs), b.Imag(rhs)
	denominator := b.FAdd(b.FMul(rre, rre), b.FMul(rim, rim))
	return b.Complex(
		b.FDiv(b.FAdd(b.FMul(lre, rre), b.FMul(lim, rim)), denominator),
		b.FDiv(b.FSub(b.FMul(lim, rre), b.FMul(lre, rim)), denominator))
}

// (a+bi)^(c+di) = r^(c/2) e^(-dθ) (cos q + i sin q), with r = a²+b²,
// θ = atan2(b, a) and q = cθ + (d/2) log r.
func emitComplexPow(b *ir.Builder, lhs, rhs *ir.Value) *ir.Value {
	lre, lim := b.Real(lhs), b.Imag(lhs)
	rre, rim := b.Real(rhs), b.Imag(rhs)
	dtype := lre.DType()
	half := b.ConstFloat(dtype, 0.5)
	rSquared := b.FAdd(b.FMul(lre, lre), b.FMul(lim, lim))
	theta := b.Atan2(lim, lre)
	coefficient := b.FMul(
		b.Pow(rSquared, b.FMul(half, rre)),
		b.Exp(b.FMul(b.FNeg(rim), theta)))
	q := b.FAdd(b.FMul(rre, theta), b.FMul(b.FMul(half, rim), b.Log(rSquared)))
	return b.Complex(b.FMul(coefficient, b.Cos(q)), b.FMul(coefficient, b.Sin(q)))
}
