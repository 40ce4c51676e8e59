package elemental

import (
	"math"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/gomlx/gopjrt/dtypes"
)

func (e *Emitter) makeUnaryGenerator(op *hlo.Op, operand Generator) (Generator, error) {
	operandShape := op.Operand(0)
	if op.Type == hlo.OpTypeBitcastConvert && operandShape.DType.Size() != op.Shape.DType.Size() {
		return nil, invalidArgf("BitcastConvert from %s to %s changes the bit width (%d versus %d bits)",
			operandShape.DType, op.Shape.DType, operandShape.DType.Size()*8, op.Shape.DType.Size()*8)
	}
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		x, err := operand(b, operandSourceIndex(b, index, op.Shape, operandShape))
		if err != nil {
			return nil, err
		}
		return emitUnary(b, op, x)
	}, nil
}

// emitUnary routes on the operand's dtype category. Convert is handled inside
// each category since its result dtype differs from the routing dtype.
func emitUnary(b *ir.Builder, op *hlo.Op, x *ir.Value) (*ir.Value, error) {
	if op.Type == hlo.OpTypeBitcastConvert {
		return emitBitcastConvert(b, op.Shape.DType, x)
	}
	dtype := x.DType()
	switch {
	case dtype.IsInt() || dtype == dtypes.Bool:
		return emitIntUnary(b, op, x)
	case dtype == dtypes.BFloat16:
		return emitBF16Unary(b, op, x)
	case dtype.IsFloat():
		return emitFloatUnary(b, op, x)
	case dtype.IsComplex():
		return emitComplexUnary(b, op, x)
	}
	return nil, unimplementedf("unary operation %s on %s", op.Type, dtype)
}

// emitBitcastConvert reinterprets x's bits as the target dtype. The bit
// widths were checked at generator construction.
func emitBitcastConvert(b *ir.Builder, to dtypes.DType, x *ir.Value) (*ir.Value, error) {
	from := x.DType()
	if from.IsComplex() || to.IsComplex() || from == dtypes.Bool || to == dtypes.Bool {
		return nil, unimplementedf("BitcastConvert between %s and %s", from, to)
	}
	return b.Bitcast(x, to), nil
}

func emitIntUnary(b *ir.Builder, op *hlo.Op, x *ir.Value) (*ir.Value, error) {
	dtype := x.DType()
	if dtype == dtypes.Bool {
		// Predicates support conversion and logical negation only.
		switch op.Type {
		case hlo.OpTypeConvert:
			return emitIntConvert(b, op.Shape.DType, x, false)
		case hlo.OpTypeCopy:
			return x, nil
		case hlo.OpTypeNot:
			return b.Xor(x, b.ConstBool(true)), nil
		}
		return nil, unimplementedf("unary operation %s on %s", op.Type, dtype)
	}

	signed := !dtype.IsUnsigned()
	switch op.Type {
	case hlo.OpTypeConvert:
		return emitIntConvert(b, op.Shape.DType, x, signed)
	case hlo.OpTypeCopy:
		return x, nil
	case hlo.OpTypeAbs:
		if !signed {
			return x, nil
		}
		zero := b.ConstInt(dtype, 0)
		return b.Select(b.ICmp(ir.IntSGE, x, zero), x, b.Sub(zero, x)), nil
	case hlo.OpTypeClz:
		return b.Clz(x), nil
	case hlo.OpTypeNegate:
		return b.Neg(x), nil
	case hlo.OpTypeNot:
		return b.Not(x), nil
	case hlo.OpTypeSign:
		zero := b.ConstInt(dtype, 0)
		one := b.ConstInt(dtype, 1)
		isZero := b.ICmp(ir.IntEQ, x, zero)
		if !signed {
			return b.Select(isZero, zero, one), nil
		}
		isNegative := b.ICmp(ir.IntSLT, x, zero)
		return b.Select(isZero, zero, b.Select(isNegative, b.ConstInt(dtype, -1), one)), nil
	}
	return nil, unimplementedf("unary operation %s on %s", op.Type, dtype)
}

// emitIntConvert converts an integer (or Bool) scalar to any target dtype.
// Width changes follow the source signedness; conversion to Bool compares
// against zero.
func emitIntConvert(b *ir.Builder, to dtypes.DType, x *ir.Value, signed bool) (*ir.Value, error) {
	from := x.DType()
	switch {
	case to == from:
		return x, nil
	case to == dtypes.Bool:
		return b.ICmp(ir.IntNE, x, b.ConstInt(from, 0)), nil
	case to.IsInt():
		return b.IntCast(x, to, signed), nil
	case to == dtypes.BFloat16:
		return encodeBF16(b, intToFloat(b, x, dtypes.Float32, signed)), nil
	case to.IsFloat():
		return intToFloat(b, x, to, signed), nil
	case to.IsComplex():
		re := intToFloat(b, x, complexComponentDType(to), signed)
		return b.Complex(re, b.ConstFloat(re.DType(), 0)), nil
	}
	return nil, unimplementedf("Convert from %s to %s", from, to)
}

func intToFloat(b *ir.Builder, x *ir.Value, to dtypes.DType, signed bool) *ir.Value {
	if signed {
		return b.SIToFP(x, to)
	}
	return b.UIToFP(x, to)
}

func complexComponentDType(dtype dtypes.DType) dtypes.DType {
	if dtype == dtypes.Complex128 {
		return dtypes.Float64
	}
	return dtypes.Float32
}

func emitFloatUnary(b *ir.Builder, op *hlo.Op, x *ir.Value) (*ir.Value, error) {
	dtype := x.DType()
	switch op.Type {
	case hlo.OpTypeConvert:
		return emitFloatConvert(b, op.Shape.DType, x)
	case hlo.OpTypeCopy:
		return x, nil
	case hlo.OpTypeAbs:
		return b.Fabs(x), nil
	case hlo.OpTypeCeil:
		return b.Ceil(x), nil
	case hlo.OpTypeFloor:
		return b.Floor(x), nil
	case hlo.OpTypeRound:
		return b.Round(x), nil
	case hlo.OpTypeExp:
		return b.Exp(x), nil
	case hlo.OpTypeExpm1:
		return emitExpm1(b, x), nil
	case hlo.OpTypeLog:
		return b.Log(x), nil
	case hlo.OpTypeLog1p:
		return emitLog1p(b, x), nil
	case hlo.OpTypeCos:
		return b.Cos(x), nil
	case hlo.OpTypeSin:
		return b.Sin(x), nil
	case hlo.OpTypeTanh:
		return b.Tanh(x), nil
	case hlo.OpTypeNegate:
		return b.FNeg(x), nil
	case hlo.OpTypeSign:
		return emitFloatSign(b, x), nil
	case hlo.OpTypeIsFinite:
		// |x| != +Inf, ordered: NaN and both infinities land on false.
		return b.FCmp(ir.FloatONE, b.Fabs(x), b.ConstFloat(dtype, math.Inf(1))), nil
	case hlo.OpTypeReal:
		return x, nil
	case hlo.OpTypeImag:
		return b.ConstFloat(dtype, 0), nil
	}
	return nil, unimplementedf("unary operation %s on %s", op.Type, dtype)
}

// emitFloatSign returns 0 for ±0, otherwise ±1 per the sign. NaN fails both
// ordered compares and falls through to 1.
func emitFloatSign(b *ir.Builder, x *ir.Value) *ir.Value {
	dtype := x.DType()
	zero := b.ConstFloat(dtype, 0)
	isZero := b.FCmp(ir.FloatOEQ, x, zero)
	isNegative := b.FCmp(ir.FloatOLT, x, zero)
	return b.Select(isZero, zero, b.Select(isNegative, b.ConstFloat(dtype, -1), b.ConstFloat(dtype, 1)))
}

func emitFloatConvert(b *ir.Builder, to dtypes.DType, x *ir.Value) (*ir.Value, error) {
	from := x.DType()
	switch {
	case to == from:
		return x, nil
	case to == dtypes.Bool:
		// "Not zero" must hold for NaN, so the compare is unordered.
		return b.FCmp(ir.FloatUNE, x, b.ConstFloat(from, 0)), nil
	case to.IsInt() && to.IsUnsigned():
		return b.FPToUI(x, to), nil
	case to.IsInt():
		return b.FPToSI(x, to), nil
	case to == dtypes.BFloat16:
		return encodeBF16(b, b.FPCast(x, dtypes.Float32)), nil
	case to.IsFloat():
		return b.FPCast(x, to), nil
	case to.IsComplex():
		component := complexComponentDType(to)
		return b.Complex(b.FPCast(x, component), b.ConstFloat(component, 0)), nil
	}
	return nil, unimplementedf("Convert from %s to %s", from, to)
}

// emitBF16Unary decodes the storage-only BFloat16 operand to Float32, emits
// the Float32 version and re-encodes when the operation preserves the dtype.
func emitBF16Unary(b *ir.Builder, op *hlo.Op, x *ir.Value) (*ir.Value, error) {
	v, err := emitFloatUnary(b, op, decodeBF16(b, x))
	if err != nil {
		return nil, err
	}
	if op.Shape.DType == dtypes.BFloat16 && v.DType() == dtypes.Float32 {
		v = encodeBF16(b, v)
	}
	return v, nil
}

// decodeBF16 widens BFloat16 to Float32 exactly: the BFloat16 bits are the
// upper half of the Float32 pattern.
func decodeBF16(b *ir.Builder, x *ir.Value) *ir.Value {
	bits := b.ZExt(b.Bitcast(x, dtypes.Uint16), dtypes.Uint32)
	return b.Bitcast(b.Shl(bits, b.ConstBits(dtypes.Uint32, 16)), dtypes.Float32)
}

// encodeBF16 rounds Float32 down to BFloat16 storage: reduce to the (8, 7)
// format with ties to even, then keep the upper 16 bits.
func encodeBF16(b *ir.Builder, x *ir.Value) *ir.Value {
	reduced := emitReducePrecisionF32(b, x, 8, 7)
	bits := b.LShr(b.Bitcast(reduced, dtypes.Uint32), b.ConstBits(dtypes.Uint32, 16))
	return b.Bitcast(b.Trunc(bits, dtypes.Uint16), dtypes.BFloat16)
}

func emitComplexUnary(b *ir.Builder, op *hlo.Op, x *ir.Value) (*ir.Value, error) {
	re, im := b.Real(x), b.Imag(x)
	dtype := re.DType()
	switch op.Type {
	case hlo.OpTypeConvert:
		return emitComplexConvert(b, op.Shape.DType, x)
	case hlo.OpTypeCopy:
		return x, nil
	case hlo.OpTypeReal:
		return re, nil
	case hlo.OpTypeImag:
		return im, nil
	case hlo.OpTypeNegate:
		return b.FNeg(x), nil
	case hlo.OpTypeAbs:
		return emitComplexAbs(b, x), nil
	case hlo.OpTypeSign:
		// c / |c|, with sign(0) = 0.
		abs := emitComplexAbs(b, x)
		zero := b.ConstFloat(dtype, 0)
		isZero := b.FCmp(ir.FloatOEQ, abs, zero)
		return b.Complex(
			b.Select(isZero, zero, b.FDiv(re, abs)),
			b.Select(isZero, zero, b.FDiv(im, abs))), nil
	case hlo.OpTypeExp:
		// e^(a+bi) = e^a (cos b + i sin b)
		expRe := b.Exp(re)
		return b.Complex(b.FMul(expRe, b.Cos(im)), b.FMul(expRe, b.Sin(im))), nil
	case hlo.OpTypeLog:
		// log(a+bi) = ½ log(a²+b²) + i atan2(b, a)
		sumSquares := b.FAdd(b.FMul(re, re), b.FMul(im, im))
		return b.Complex(
			b.FMul(b.ConstFloat(dtype, 0.5), b.Log(sumSquares)),
			b.Atan2(im, re)), nil
	case hlo.OpTypeCos:
		// cos(a+bi) = cos a · ½(e^-b + e^b) + i sin a · ½(e^-b - e^b)
		half := b.ConstFloat(dtype, 0.5)
		halfExp := b.FMul(half, b.Exp(im))
		halfExpNeg := b.FMul(half, b.Exp(b.FNeg(im)))
		return b.Complex(
			b.FMul(b.Cos(re), b.FAdd(halfExpNeg, halfExp)),
			b.FMul(b.Sin(re), b.FSub(halfExpNeg, halfExp))), nil
	case hlo.OpTypeSin:
		// sin(a+bi) = sin a · ½(e^b + e^-b) + i cos a · ½(e^b - e^-b)
		half := b.ConstFloat(dtype, 0.5)
		halfExp := b.FMul(half, b.Exp(im))
		halfExpNeg := b.FMul(half, b.Exp(b.FNeg(im)))
		return b.Complex(
			b.FMul(b.Sin(re), b.FAdd(halfExp, halfExpNeg)),
			b.FMul(b.Cos(re), b.FSub(halfExp, halfExpNeg))), nil
	case hlo.OpTypeTanh:
		// tanh(a+bi) = sinh(a+bi) / cosh(a+bi), both expanded through
		// ½(e^a ± e^-a).
		half := b.ConstFloat(dtype, 0.5)
		halfExp := b.FMul(half, b.Exp(re))
		halfExpNeg := b.FMul(half, b.Exp(b.FNeg(re)))
		sinhRe := b.FSub(halfExp, halfExpNeg)
		coshRe := b.FAdd(halfExp, halfExpNeg)
		sinIm, cosIm := b.Sin(im), b.Cos(im)
		return emitComplexDiv(b,
			b.Complex(b.FMul(sinhRe, cosIm), b.FMul(coshRe, sinIm)),
			b.Complex(b.FMul(coshRe, cosIm), b.FMul(sinhRe, sinIm))), nil
	}
	return nil, unimplementedf("unary operation %s on %s", op.Type, x.DType())
}

func emitComplexAbs(b *ir.Builder, x *ir.Value) *ir.Value {
	re, im := b.Real(x), b.Imag(x)
	return b.Sqrt(b.FAdd(b.FMul(re, re), b.FMul(im, im)))
}

func emitComplexConvert(b *ir.Builder, to dtypes.DType, x *ir.Value) (*ir.Value, error) {
	from := x.DType()
	switch {
	case to == from:
		return x, nil
	case to.IsComplex():
		component := complexComponentDType(to)
		return b.Complex(b.FPCast(b.Real(x), component), b.FPCast(b.Imag(x), component)), nil
	}
	return nil, unimplementedf("Convert from %s to %s", from, to)
}
