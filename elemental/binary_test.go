package elemental

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/types"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestIntArithmetic(t *testing.T) {
	assert.Equal(t, int32(7), evalBinary[int32, int32](t, hlo.OpTypeAdd, 3, 4))
	assert.Equal(t, int32(-1), evalBinary[int32, int32](t, hlo.OpTypeSubtract, 3, 4))
	assert.Equal(t, int32(12), evalBinary[int32, int32](t, hlo.OpTypeMultiply, 3, 4))
	assert.Equal(t, int64(math.MinInt64), evalBinary[int64, int64](t, hlo.OpTypeMultiply, math.MinInt64, 1))
	assert.Equal(t, uint8(44), evalBinary[uint8, uint8](t, hlo.OpTypeAdd, 200, 100))
	assert.Equal(t, int32(8), evalBinary[int32, int32](t, hlo.OpTypeAnd, 0b1100, 0b1010))
	assert.Equal(t, int32(14), evalBinary[int32, int32](t, hlo.OpTypeOr, 0b1100, 0b1010))
	assert.Equal(t, int32(6), evalBinary[int32, int32](t, hlo.OpTypeXor, 0b1100, 0b1010))
}

func TestGuardedIntDivision(t *testing.T) {
	e := &Emitter{}

	// Signed division truncates; the two trapping cases of hardware division
	// get fixed results instead: x/0 is -1 and MinInt/-1 wraps to MinInt.
	op := binaryOp(hlo.OpTypeDivide, MS(I32, 5), MS(I32, 5), MS(I32, 5))
	out := evalOp(t, e, op,
		[]int32{7, -7, math.MinInt32, 5, 0},
		[]int32{2, 2, -1, 0, 0}).([]int32)
	assert.Equal(t, []int32{3, -3, math.MinInt32, -1, -1}, out)

	// Remainder keeps the dividend's sign; x%0 is x and MinInt%-1 is 0.
	op = binaryOp(hlo.OpTypeRemainder, MS(I32, 5), MS(I32, 5), MS(I32, 5))
	out = evalOp(t, e, op,
		[]int32{7, -7, math.MinInt32, 5, 0},
		[]int32{2, 2, -1, 0, 0}).([]int32)
	assert.Equal(t, []int32{1, -1, 0, 5, 0}, out)

	// Unsigned x/0 is all ones.
	op = binaryOp(hlo.OpTypeDivide, MS(U32, 3), MS(U32, 3), MS(U32, 3))
	outU := evalOp(t, e, op, []uint32{7, 5, 0}, []uint32{2, 0, 0}).([]uint32)
	assert.Equal(t, []uint32{3, math.MaxUint32, math.MaxUint32}, outU)

	op = binaryOp(hlo.OpTypeRemainder, MS(U32, 2), MS(U32, 2), MS(U32, 2))
	outU = evalOp(t, e, op, []uint32{7, 5}, []uint32{2, 0}).([]uint32)
	assert.Equal(t, []uint32{1, 5}, outU)
}

func TestShiftSaturation(t *testing.T) {
	e := &Emitter{}

	// Amounts at or past the operand width produce the limit value rather
	// than the hardware's undefined result. Negative amounts are huge as
	// unsigned, so they saturate too.
	op := binaryOp(hlo.OpTypeShiftLeft, MS(I32, 4), MS(I32, 4), MS(I32, 4))
	out := evalOp(t, e, op, []int32{1, 1, 3, 1}, []int32{0, 31, 32, -1}).([]int32)
	assert.Equal(t, []int32{1, math.MinInt32, 0, 0}, out)

	op = binaryOp(hlo.OpTypeShiftRightLogical, MS(I32, 3), MS(I32, 3), MS(I32, 3))
	out = evalOp(t, e, op, []int32{-8, 256, 7}, []int32{1, 4, 35}).([]int32)
	assert.Equal(t, []int32{2147483644, 16, 0}, out)

	op = binaryOp(hlo.OpTypeShiftRightArithmetic, MS(I32, 4), MS(I32, 4), MS(I32, 4))
	out = evalOp(t, e, op, []int32{-8, -8, 8, -1}, []int32{1, 40, 40, -5}).([]int32)
	assert.Equal(t, []int32{-4, -1, 0, -1}, out)

	op = binaryOp(hlo.OpTypeShiftLeft, MS(U8, 2), MS(U8, 2), MS(U8, 2))
	outU := evalOp(t, e, op, []uint8{200, 1}, []uint8{1, 8}).([]uint8)
	assert.Equal(t, []uint8{144, 0}, outU)

	// Sweep every amount from 0 to 63. Go's shift operators saturate the
	// same way, so plain Go expressions supply the expected values.
	amounts := types.Iota[int32](0, 64)
	lhs := make([]int32, len(amounts))
	for i := range lhs {
		lhs[i] = -8
	}
	shape := MS(I32, len(amounts))
	for _, tc := range []struct {
		opType hlo.OpType
		want   func(amount int32) int32
	}{
		{hlo.OpTypeShiftLeft, func(amount int32) int32 { return -8 << amount }},
		{hlo.OpTypeShiftRightLogical, func(amount int32) int32 { return int32(uint32(0xFFFFFFF8) >> amount) }},
		{hlo.OpTypeShiftRightArithmetic, func(amount int32) int32 { return -8 >> amount }},
	} {
		op := binaryOp(tc.opType, shape, shape, shape)
		out := evalOp(t, e, op, lhs, amounts).([]int32)
		for i, amount := range amounts {
			assert.Equalf(t, tc.want(amount), out[i], "%s by %d", tc.opType, amount)
		}
	}
}

func TestIntCompare(t *testing.T) {
	e := &Emitter{}

	op := binaryOp(hlo.OpTypeLt, MS(I32, 3), MS(I32, 3), MS(Bool, 3))
	out := evalOp(t, e, op, []int32{-1, 1, 2}, []int32{1, -1, 2}).([]bool)
	assert.Equal(t, []bool{true, false, false}, out)

	// The same bit patterns compare the other way around unsigned.
	op = binaryOp(hlo.OpTypeLt, MS(U32, 2), MS(U32, 2), MS(Bool, 2))
	out = evalOp(t, e, op, []uint32{4294967295, 1}, []uint32{1, 4294967295}).([]bool)
	assert.Equal(t, []bool{false, true}, out)

	assert.Equal(t, true, evalBinary[int32, bool](t, hlo.OpTypeGe, 2, 2))
	assert.Equal(t, false, evalBinary[int32, bool](t, hlo.OpTypeGt, 2, 2))
	assert.Equal(t, true, evalBinary[int32, bool](t, hlo.OpTypeLe, -5, -5))
	assert.Equal(t, true, evalBinary[int32, bool](t, hlo.OpTypeEq, 3, 3))
	assert.Equal(t, true, evalBinary[int32, bool](t, hlo.OpTypeNe, 3, 4))
}

func TestFloatArithmetic(t *testing.T) {
	assert.Equal(t, float64(3.75), evalBinary[float64, float64](t, hlo.OpTypeDivide, 7.5, 2))
	assert.Equal(t, math.Inf(1), evalBinary[float64, float64](t, hlo.OpTypeDivide, 1, 0))
	assert.Equal(t, math.Inf(-1), evalBinary[float64, float64](t, hlo.OpTypeDivide, -1, 0))
	assert.True(t, math.IsNaN(evalBinary[float64, float64](t, hlo.OpTypeDivide, 0, 0)))

	assert.Equal(t, float32(5.75), evalBinary[float32, float32](t, hlo.OpTypeAdd, 2.25, 3.5))
	assert.Equal(t, float32(-1.25), evalBinary[float32, float32](t, hlo.OpTypeSubtract, 2.25, 3.5))
	assert.Equal(t, float32(7.875), evalBinary[float32, float32](t, hlo.OpTypeMultiply, 2.25, 3.5))

	// Remainder truncates: the result carries the dividend's sign.
	assert.Equal(t, float32(1.5), evalBinary[float32, float32](t, hlo.OpTypeRemainder, 5.5, 2))
	assert.Equal(t, float32(-1.5), evalBinary[float32, float32](t, hlo.OpTypeRemainder, -5.5, 2))
	assert.Equal(t, float32(1.5), evalBinary[float32, float32](t, hlo.OpTypeRemainder, 5.5, -2))

	assert.Equal(t, float64(1024), evalBinary[float64, float64](t, hlo.OpTypePower, 2, 10))
	assert.Equal(t, float64(2), evalBinary[float64, float64](t, hlo.OpTypePower, 4, 0.5))
	assert.True(t, math.IsNaN(evalBinary[float64, float64](t, hlo.OpTypePower, -2, 0.5)))

	assert.InDelta(t, math.Pi/4, evalBinary[float64, float64](t, hlo.OpTypeAtan2, 1, 1), 1e-12)
	assert.InDelta(t, -3*math.Pi/4, evalBinary[float64, float64](t, hlo.OpTypeAtan2, -1, -1), 1e-12)
}

func TestFloatCompareNaN(t *testing.T) {
	nan := float32(math.NaN())

	// Eq is ordered and Ne is its exact complement.
	assert.Equal(t, false, evalBinary[float32, bool](t, hlo.OpTypeEq, nan, nan))
	assert.Equal(t, true, evalBinary[float32, bool](t, hlo.OpTypeNe, nan, nan))
	assert.Equal(t, true, evalBinary[float32, bool](t, hlo.OpTypeEq, 1, 1))
	assert.Equal(t, false, evalBinary[float32, bool](t, hlo.OpTypeNe, 1, 1))

	// Ordered compares are all false when either side is NaN.
	for _, opType := range []hlo.OpType{hlo.OpTypeLt, hlo.OpTypeLe, hlo.OpTypeGt, hlo.OpTypeGe} {
		assert.Equal(t, false, evalBinary[float32, bool](t, opType, nan, 1), "%s(NaN, 1)", opType)
		assert.Equal(t, false, evalBinary[float32, bool](t, opType, 1, nan), "%s(1, NaN)", opType)
	}
	assert.Equal(t, true, evalBinary[float32, bool](t, hlo.OpTypeLt, 1, 2))
	assert.Equal(t, true, evalBinary[float32, bool](t, hlo.OpTypeGe, 2, 2))
}

func TestMaximumMinimum(t *testing.T) {
	e := &Emitter{}

	assert.Equal(t, int32(2), evalBinary[int32, int32](t, hlo.OpTypeMaximum, -3, 2))
	assert.Equal(t, int32(-3), evalBinary[int32, int32](t, hlo.OpTypeMinimum, -3, 2))
	assert.Equal(t, uint32(4294967290), evalBinary[uint32, uint32](t, hlo.OpTypeMaximum, 4294967290, 3))

	assert.Equal(t, float32(2), evalBinary[float32, float32](t, hlo.OpTypeMaximum, 1, 2))
	assert.Equal(t, float32(1), evalBinary[float32, float32](t, hlo.OpTypeMinimum, 1, 2))

	// NaN wins from either side.
	nan := float32(math.NaN())
	for _, opType := range []hlo.OpType{hlo.OpTypeMaximum, hlo.OpTypeMinimum} {
		assert.True(t, math.IsNaN(float64(evalBinary[float32, float32](t, opType, nan, 1))), "%s(NaN, 1)", opType)
		assert.True(t, math.IsNaN(float64(evalBinary[float32, float32](t, opType, 1, nan))), "%s(1, NaN)", opType)
	}

	op := binaryOp(hlo.OpTypeMaximum, MS(Bool, 2), MS(Bool, 2), MS(Bool, 2))
	out := evalOp(t, e, op, []bool{true, false}, []bool{false, false}).([]bool)
	assert.Equal(t, []bool{true, false}, out)
	op = binaryOp(hlo.OpTypeMinimum, MS(Bool, 2), MS(Bool, 2), MS(Bool, 2))
	out = evalOp(t, e, op, []bool{true, true}, []bool{false, true}).([]bool)
	assert.Equal(t, []bool{false, true}, out)
}

func TestBoolBinary(t *testing.T) {
	e := &Emitter{}

	op := binaryOp(hlo.OpTypeAnd, MS(Bool, 4), MS(Bool, 4), MS(Bool, 4))
	out := evalOp(t, e, op, []bool{true, true, false, false}, []bool{true, false, true, false}).([]bool)
	assert.Equal(t, []bool{true, false, false, false}, out)

	op = binaryOp(hlo.OpTypeOr, MS(Bool, 4), MS(Bool, 4), MS(Bool, 4))
	out = evalOp(t, e, op, []bool{true, true, false, false}, []bool{true, false, true, false}).([]bool)
	assert.Equal(t, []bool{true, true, true, false}, out)

	op = binaryOp(hlo.OpTypeXor, MS(Bool, 4), MS(Bool, 4), MS(Bool, 4))
	out = evalOp(t, e, op, []bool{true, true, false, false}, []bool{true, false, true, false}).([]bool)
	assert.Equal(t, []bool{false, true, true, false}, out)

	assert.Equal(t, true, evalBinary[bool, bool](t, hlo.OpTypeEq, true, true))
	assert.Equal(t, false, evalBinary[bool, bool](t, hlo.OpTypeEq, true, false))
	assert.Equal(t, true, evalBinary[bool, bool](t, hlo.OpTypeNe, true, false))

	// Bool has no ordering.
	_, err := tryEvalOp(e, binaryOp(hlo.OpTypeGe, MS(Bool), MS(Bool), MS(Bool)), []bool{true}, []bool{false})
	require.ErrorIs(t, err, ErrUnimplemented)
}

func TestIntPowerUnimplemented(t *testing.T) {
	e := &Emitter{}
	_, err := tryEvalOp(e, binaryOp(hlo.OpTypePower, MS(I32), MS(I32), MS(I32)), []int32{2}, []int32{3})
	require.ErrorIs(t, err, ErrUnimplemented)
}

func TestHalfPrecisionBinary(t *testing.T) {
	e := &Emitter{}

	op := binaryOp(hlo.OpTypeAdd, MS(F16, 2), MS(F16, 2), MS(F16, 2))
	out := evalOp(t, e, op,
		[]float16.Float16{float16.Fromfloat32(1.5), float16.Fromfloat32(-1)},
		[]float16.Float16{float16.Fromfloat32(0.25), float16.Fromfloat32(4)}).([]float16.Float16)
	assert.Equal(t, []float16.Float16{float16.Fromfloat32(1.75), float16.Fromfloat32(3)}, out)

	op = binaryOp(hlo.OpTypeAdd, MS(BF16, 2), MS(BF16, 2), MS(BF16, 2))
	outBF := evalOp(t, e, op,
		[]bfloat16.BFloat16{bfloat16.FromFloat32(1.5), bfloat16.FromFloat32(2)},
		[]bfloat16.BFloat16{bfloat16.FromFloat32(2.25), bfloat16.FromFloat32(-4)}).([]bfloat16.BFloat16)
	assert.Equal(t, float32(3.75), outBF[0].Float32())
	assert.Equal(t, float32(-2), outBF[1].Float32())

	op = binaryOp(hlo.OpTypeMaximum, MS(BF16, 2), MS(BF16, 2), MS(BF16, 2))
	outBF = evalOp(t, e, op,
		[]bfloat16.BFloat16{bfloat16.FromFloat32(2.5), bfloat16.FromFloat32(-1)},
		[]bfloat16.BFloat16{bfloat16.FromFloat32(1.5), bfloat16.FromFloat32(3)}).([]bfloat16.BFloat16)
	assert.Equal(t, float32(2.5), outBF[0].Float32())
	assert.Equal(t, float32(3), outBF[1].Float32())

	op = binaryOp(hlo.OpTypeEq, MS(BF16, 2), MS(BF16, 2), MS(Bool, 2))
	outB := evalOp(t, e, op,
		[]bfloat16.BFloat16{bfloat16.FromFloat32(1.5), bfloat16.FromFloat32(2)},
		[]bfloat16.BFloat16{bfloat16.FromFloat32(1.5), bfloat16.FromFloat32(-2)}).([]bool)
	assert.Equal(t, []bool{true, false}, outB)
}

func TestComplexCompose(t *testing.T) {
	assert.Equal(t, complex64(3+4i), evalBinary[float32, complex64](t, hlo.OpTypeComplex, 3, 4))
	assert.Equal(t, complex128(complex(-1.5, 0.5)), evalBinary[float64, complex128](t, hlo.OpTypeComplex, -1.5, 0.5))
}

func TestComplexBinary(t *testing.T) {
	e := &Emitter{}

	assert.Equal(t, complex64(4+1i), evalBinary[complex64, complex64](t, hlo.OpTypeAdd, 1+2i, 3-1i))
	assert.Equal(t, complex64(-2+3i), evalBinary[complex64, complex64](t, hlo.OpTypeSubtract, 1+2i, 3-1i))
	assert.Equal(t, complex64(-5+10i), evalBinary[complex64, complex64](t, hlo.OpTypeMultiply, 1+2i, 3+4i))

	// (1+2i)/(3+4i) = (11+2i)/25.
	out := evalBinary[complex64, complex64](t, hlo.OpTypeDivide, 1+2i, 3+4i)
	assert.Equal(t, complex64(complex(0.44, 0.08)), out)

	// Division by zero runs the textbook formula against a zero denominator.
	out = evalBinary[complex64, complex64](t, hlo.OpTypeDivide, 1+2i, 0)
	assert.True(t, math.IsNaN(float64(real(out))))
	assert.True(t, math.IsNaN(float64(imag(out))))

	want := cmplx.Pow(1+1i, 2)
	got := evalBinary[complex128, complex128](t, hlo.OpTypePower, 1+1i, 2)
	assert.InDelta(t, real(want), real(got), 1e-9)
	assert.InDelta(t, imag(want), imag(got), 1e-9)
	want = cmplx.Pow(2-1i, 0.5+0.3i)
	got = evalBinary[complex128, complex128](t, hlo.OpTypePower, 2-1i, 0.5+0.3i)
	assert.InDelta(t, real(want), real(got), 1e-9)
	assert.InDelta(t, imag(want), imag(got), 1e-9)

	assert.Equal(t, true, evalBinary[complex64, bool](t, hlo.OpTypeEq, 1+2i, 1+2i))
	assert.Equal(t, false, evalBinary[complex64, bool](t, hlo.OpTypeEq, 1+2i, 1+3i))
	assert.Equal(t, true, evalBinary[complex64, bool](t, hlo.OpTypeNe, 1+2i, 1+3i))
	nan := complex(math.NaN(), 0)
	assert.Equal(t, false, evalBinary[complex128, bool](t, hlo.OpTypeEq, nan, nan))
	assert.Equal(t, true, evalBinary[complex128, bool](t, hlo.OpTypeNe, nan, nan))

	// Complex numbers have no ordering.
	_, err := tryEvalOp(e, binaryOp(hlo.OpTypeMaximum, MS(C64), MS(C64), MS(C64)), []complex64{1}, []complex64{2})
	require.ErrorIs(t, err, ErrUnimplemented)
}
