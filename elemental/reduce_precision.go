package elemental

import (
	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

func makeReducePrecisionGenerator(op *hlo.Op, operand Generator) Generator {
	operandShape := op.Operand(0)
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		x, err := operand(b, operandSourceIndex(b, index, op.Shape, operandShape))
		if err != nil {
			return nil, err
		}
		if x.DType() != dtypes.Float32 {
			return nil, unimplementedf("ReducePrecision on %s", x.DType())
		}
		return emitReducePrecisionF32(b, x, op.ExponentBits, op.MantissaBits), nil
	}
}

// emitReducePrecisionF32 rounds a Float32 to the nearest value representable
// with the given exponent and mantissa bit counts, keeping Float32 storage.
//
// Mantissa rounding is to nearest, ties to even, done in the integer domain:
// the bias below the last kept bit may carry into the exponent, which is the
// correct rounding of values at the top of a binade. Values outside the
// reduced exponent range become signed infinity or signed zero; denormals of
// the reduced format collapse to signed zero rather than rounding. NaN stays
// NaN, except with zero mantissa bits, where no NaN encoding exists and the
// result is signed infinity.
func emitReducePrecisionF32(b *ir.Builder, x *ir.Value, exponentBits, mantissaBits int) *ir.Value {
	if exponentBits < 1 || exponentBits > 8 || mantissaBits < 0 || mantissaBits > 23 {
		exceptions.Panicf("elemental: ReducePrecision to (%d, %d) bits is outside Float32's (8, 23)",
			exponentBits, mantissaBits)
	}
	u32 := func(pattern uint32) *ir.Value { return b.ConstBits(dtypes.Uint32, uint64(pattern)) }
	bits := b.Bitcast(x, dtypes.Uint32)

	if mantissaBits < 23 {
		lastMantissaBitMask := uint32(1) << (23 - mantissaBits)
		lastMantissaBit := b.LShr(b.And(bits, u32(lastMantissaBitMask)), u32(uint32(23-mantissaBits)))
		baseRoundingBias := lastMantissaBitMask>>1 - 1
		roundingBias := b.Add(lastMantissaBit, u32(baseRoundingBias))
		truncationMask := ^(lastMantissaBitMask - 1)
		bits = b.And(b.Add(bits, roundingBias), u32(truncationMask))
	}

	const signBitMask = uint32(1) << 31
	const exponentBitsMask = uint32(0xFF) << 23
	signedZero := b.And(bits, u32(signBitMask))
	signedInf := b.Or(signedZero, u32(exponentBitsMask))

	if exponentBits < 8 {
		// The reduced format's representable exponents mapped into Float32's
		// biased exponent space.
		const f32ExponentBias = uint32(1)<<7 - 1
		reducedExponentBias := uint32(1)<<(exponentBits-1) - 1
		reducedMaxExponent := f32ExponentBias + reducedExponentBias
		reducedMinExponent := f32ExponentBias - reducedExponentBias

		exponent := b.And(bits, u32(exponentBitsMask))
		overflows := b.ICmp(ir.IntUGT, exponent, u32(reducedMaxExponent<<23))
		underflows := b.ICmp(ir.IntULE, exponent, u32(reducedMinExponent<<23))
		bits = b.Select(overflows, signedInf, bits)
		bits = b.Select(underflows, signedZero, bits)
	}

	result := b.Bitcast(bits, dtypes.Float32)
	// The rounding add can carry a NaN's mantissa into the exponent and the
	// exponent forcing can turn NaN into Inf; restore NaN from the input.
	isNaN := b.FCmp(ir.FloatUNO, x, x)
	if mantissaBits > 0 {
		return b.Select(isNaN, x, result)
	}
	return b.Select(isNaN, b.Bitcast(signedInf, dtypes.Float32), result)
}
