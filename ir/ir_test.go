package ir

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/elemental-ml/elemental/types/shapes"
)

// Aliases
var (
	Bool = dtypes.Bool
	I8   = dtypes.Int8
	I32  = dtypes.Int32
	I64  = dtypes.Int64
	U8   = dtypes.Uint8
	F16  = dtypes.Float16
	F32  = dtypes.Float32
	C64  = dtypes.Complex64

	MS = shapes.Make
)

// evalScalar builds a function with one scalar output array of dtype, emits
// the value returned by build, stores it and runs the function against out.
func evalScalar(t *testing.T, dtype dtypes.DType, out any, build func(b *Builder) *Value) error {
	t.Helper()
	fn := NewFunc("test", ArrayParam{Name: "out", Shape: MS(dtype)})
	b := NewBuilder(fn)
	b.ArrayWrite(0, b.ConstIndex(0), build(b))
	return fn.Run(out)
}

func TestIntegerArithmetic(t *testing.T) {
	out := []int32{0}
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		// (7*3 - 1) / 4 = 5
		v := b.Mul(b.ConstInt(I32, 7), b.ConstInt(I32, 3))
		v = b.Sub(v, b.ConstInt(I32, 1))
		return b.SDiv(v, b.ConstInt(I32, 4))
	}))
	require.Equal(t, int32(5), out[0])

	// Wrapping at the dtype width.
	out8 := []int8{0}
	require.NoError(t, evalScalar(t, I8, out8, func(b *Builder) *Value {
		return b.Add(b.ConstInt(I8, 127), b.ConstInt(I8, 1))
	}))
	require.Equal(t, int8(-128), out8[0])

	// SDiv of MinInt by -1 wraps instead of trapping.
	require.NoError(t, evalScalar(t, I8, out8, func(b *Builder) *Value {
		return b.SDiv(b.ConstInt(I8, -128), b.ConstInt(I8, -1))
	}))
	require.Equal(t, int8(-128), out8[0])

	// Division by zero is an execution error.
	err := evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.UDiv(b.ConstInt(I32, 1), b.ConstInt(I32, 0))
	})
	require.ErrorContains(t, err, "division by zero")
}

func TestSignedness(t *testing.T) {
	// -1 as Uint8 is 255: unsigned compare and divide see the raw pattern.
	out := []uint8{0}
	require.NoError(t, evalScalar(t, U8, out, func(b *Builder) *Value {
		return b.UDiv(b.ConstInt(U8, -1), b.ConstInt(U8, 2))
	}))
	require.Equal(t, uint8(127), out[0])

	outB := []bool{false}
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.ICmp(IntSLT, b.ConstInt(I32, -1), b.ConstInt(I32, 0))
	}))
	require.True(t, outB[0])
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.ICmp(IntULT, b.ConstInt(I32, -1), b.ConstInt(I32, 0))
	}))
	require.False(t, outB[0])

	// SRem keeps the dividend's sign.
	out32 := []int32{0}
	require.NoError(t, evalScalar(t, I32, out32, func(b *Builder) *Value {
		return b.SRem(b.ConstInt(I32, -7), b.ConstInt(I32, 3))
	}))
	require.Equal(t, int32(-1), out32[0])
}

func TestShifts(t *testing.T) {
	out := []int32{0}
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.Shl(b.ConstInt(I32, 3), b.ConstInt(I32, 4))
	}))
	require.Equal(t, int32(48), out[0])

	// Shifting by at least the bit width yields zero (sign fill for AShr)
	// instead of trapping.
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.Shl(b.ConstInt(I32, 3), b.ConstInt(I32, 32))
	}))
	require.Equal(t, int32(0), out[0])
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.AShr(b.ConstInt(I32, -16), b.ConstInt(I32, 99))
	}))
	require.Equal(t, int32(-1), out[0])
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.LShr(b.ConstInt(I32, -16), b.ConstInt(I32, 2))
	}))
	require.Equal(t, int32(0x3FFFFFFC), out[0])
}

func TestClz(t *testing.T) {
	out := []int32{0}
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.Clz(b.ConstInt(I32, 1))
	}))
	require.Equal(t, int32(31), out[0])
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		return b.Clz(b.ConstInt(I32, 0))
	}))
	require.Equal(t, int32(32), out[0])

	out8 := []uint8{0}
	require.NoError(t, evalScalar(t, U8, out8, func(b *Builder) *Value {
		return b.Clz(b.ConstInt(U8, 0x80))
	}))
	require.Equal(t, uint8(0), out8[0])
}

func TestFloatArithmetic(t *testing.T) {
	out := []float32{0}
	require.NoError(t, evalScalar(t, F32, out, func(b *Builder) *Value {
		v := b.FMul(b.ConstFloat(F32, 2.5), b.ConstFloat(F32, 4))
		return b.FSub(v, b.ConstFloat(F32, 0.5))
	}))
	require.Equal(t, float32(9.5), out[0])

	// FNeg is a sign flip, so it distinguishes -0.
	require.NoError(t, evalScalar(t, F32, out, func(b *Builder) *Value {
		return b.FNeg(b.ConstFloat(F32, 0))
	}))
	require.True(t, math32Signbit(out[0]))
	require.Equal(t, float32(0), out[0])
}

func math32Signbit(f float32) bool {
	return f < 0 || (f == 0 && 1/f < 0)
}

func TestFloat16RoundsEveryResult(t *testing.T) {
	// 2048 + 1 is not representable in half precision; ties go to even.
	out := []float16.Float16{0}
	require.NoError(t, evalScalar(t, F16, out, func(b *Builder) *Value {
		return b.FAdd(b.ConstFloat(F16, 2048), b.ConstFloat(F16, 1))
	}))
	require.Equal(t, float32(2048), out[0].Float32())

	require.NoError(t, evalScalar(t, F16, out, func(b *Builder) *Value {
		return b.FAdd(b.ConstFloat(F16, 2048), b.ConstFloat(F16, 3))
	}))
	require.Equal(t, float32(2052), out[0].Float32())
}

func TestFloatCompare(t *testing.T) {
	nan := func(b *Builder) *Value {
		return b.FDiv(b.ConstFloat(F32, 0), b.ConstFloat(F32, 0))
	}
	outB := []bool{false}
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.FCmp(FloatOEQ, nan(b), nan(b))
	}))
	require.False(t, outB[0])
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.FCmp(FloatUNE, nan(b), nan(b))
	}))
	require.True(t, outB[0])
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.FCmp(FloatUNO, nan(b), b.ConstFloat(F32, 1))
	}))
	require.True(t, outB[0])
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.FCmp(FloatOLE, b.ConstFloat(F32, 1), b.ConstFloat(F32, 1))
	}))
	require.True(t, outB[0])
}

func TestConversions(t *testing.T) {
	out := []int64{0}
	require.NoError(t, evalScalar(t, I64, out, func(b *Builder) *Value {
		return b.SExt(b.ConstInt(I8, -5), I64)
	}))
	require.Equal(t, int64(-5), out[0])
	require.NoError(t, evalScalar(t, I64, out, func(b *Builder) *Value {
		return b.ZExt(b.ConstInt(U8, 0xFF), I64)
	}))
	require.Equal(t, int64(255), out[0])

	out32 := []int32{0}
	require.NoError(t, evalScalar(t, I32, out32, func(b *Builder) *Value {
		return b.FPToSI(b.ConstFloat(F32, -2.9), I32)
	}))
	require.Equal(t, int32(-2), out32[0])
	// NaN converts to zero, out-of-range saturates.
	require.NoError(t, evalScalar(t, I32, out32, func(b *Builder) *Value {
		return b.FPToSI(b.FDiv(b.ConstFloat(F32, 0), b.ConstFloat(F32, 0)), I32)
	}))
	require.Equal(t, int32(0), out32[0])
	require.NoError(t, evalScalar(t, I32, out32, func(b *Builder) *Value {
		return b.FPToSI(b.ConstFloat(F32, 1e20), I32)
	}))
	require.Equal(t, int32(2147483647), out32[0])

	outF := []float32{0}
	require.NoError(t, evalScalar(t, F32, outF, func(b *Builder) *Value {
		return b.UIToFP(b.ConstInt(dtypes.Uint32, -1), F32)
	}))
	require.Equal(t, float32(4294967295), outF[0])

	// Bitcast preserves the pattern.
	require.NoError(t, evalScalar(t, F32, outF, func(b *Builder) *Value {
		return b.Bitcast(b.ConstInt(I32, 0x3F800000), F32)
	}))
	require.Equal(t, float32(1), outF[0])
}

func TestSelectAndBool(t *testing.T) {
	out := []int32{0}
	require.NoError(t, evalScalar(t, I32, out, func(b *Builder) *Value {
		cond := b.Not(b.ConstBool(false))
		return b.Select(cond, b.ConstInt(I32, 7), b.ConstInt(I32, 9))
	}))
	require.Equal(t, int32(7), out[0])

	outB := []bool{false}
	require.NoError(t, evalScalar(t, Bool, outB, func(b *Builder) *Value {
		return b.Xor(b.ConstBool(true), b.ConstBool(true))
	}))
	require.False(t, outB[0])
}

func TestComplexValues(t *testing.T) {
	out := []complex64{0}
	require.NoError(t, evalScalar(t, C64, out, func(b *Builder) *Value {
		return b.Complex(b.ConstFloat(F32, 3), b.ConstFloat(F32, -4))
	}))
	require.Equal(t, complex64(complex(3, -4)), out[0])

	outF := []float32{0}
	require.NoError(t, evalScalar(t, F32, outF, func(b *Builder) *Value {
		c := b.Complex(b.ConstFloat(F32, 3), b.ConstFloat(F32, -4))
		return b.Imag(b.FNeg(c))
	}))
	require.Equal(t, float32(4), outF[0])
}

func TestControlFlow(t *testing.T) {
	// Sum of 0..9 through a loop and a scratch slot.
	fn := NewFunc("sum", ArrayParam{Name: "out", Shape: MS(I64)})
	b := NewBuilder(fn)
	require.NoError(t, b.WithScratch(I64, func(acc *Slot) error {
		b.Store(acc, b.ConstIndex(0))
		err := b.For("i", b.ConstIndex(0), b.ConstIndex(10), b.ConstIndex(1), func(iv *Value) error {
			b.Store(acc, b.Add(b.Load(acc), iv))
			return nil
		})
		if err != nil {
			return err
		}
		b.ArrayWrite(0, b.ConstIndex(0), b.Load(acc))
		return nil
	}))
	out := []int64{0}
	require.NoError(t, fn.Run(out))
	require.Equal(t, int64(45), out[0])
}

func TestIfElse(t *testing.T) {
	build := func(threshold int64) *Func {
		fn := NewFunc("ifelse",
			ArrayParam{Name: "in", Shape: MS(I64)},
			ArrayParam{Name: "out", Shape: MS(I64)})
		b := NewBuilder(fn)
		err := b.WithScratch(I64, func(s *Slot) error {
			x := b.ArrayRead(0, b.ConstIndex(0))
			cond := b.ICmp(IntSGE, x, b.ConstIndex(threshold))
			err := b.If(cond,
				func() error { b.Store(s, b.ConstIndex(1)); return nil },
				func() error { b.Store(s, b.ConstIndex(-1)); return nil })
			if err != nil {
				return err
			}
			b.ArrayWrite(1, b.ConstIndex(0), b.Load(s))
			return nil
		})
		require.NoError(t, err)
		return fn
	}
	fn := build(5)
	out := []int64{0}
	require.NoError(t, fn.Run([]int64{7}, out))
	assert.Equal(t, int64(1), out[0])
	require.NoError(t, fn.Run([]int64{4}, out))
	assert.Equal(t, int64(-1), out[0])
}

func TestUnreachable(t *testing.T) {
	fn := NewFunc("boom", ArrayParam{Name: "out", Shape: MS(I64)})
	b := NewBuilder(fn)
	require.NoError(t, b.If(b.ConstBool(true),
		func() error { b.Unreachable(); return nil },
		nil))
	err := fn.Run([]int64{0})
	require.ErrorContains(t, err, "unreachable")
}

func TestScratchPooling(t *testing.T) {
	fn := NewFunc("pool", ArrayParam{Name: "out", Shape: MS(I64)})
	b := NewBuilder(fn)
	var first *Slot
	require.NoError(t, b.WithScratch(I64, func(s *Slot) error { first = s; return nil }))
	require.NoError(t, b.WithScratch(I64, func(s *Slot) error {
		require.Same(t, first, s)
		return nil
	}))
	// A different dtype, or a nested use, allocates a fresh slot.
	require.NoError(t, b.WithScratch(I64, func(outer *Slot) error {
		return b.WithScratch(I64, func(inner *Slot) error {
			require.NotSame(t, outer, inner)
			return nil
		})
	}))
	require.Len(t, fn.slots, 2)
}

func TestRunBindingErrors(t *testing.T) {
	fn := NewFunc("bind", ArrayParam{Name: "out", Shape: MS(F32, 2)})
	b := NewBuilder(fn)
	b.ArrayWrite(0, b.ConstIndex(0), b.ConstFloat(F32, 1))

	require.Error(t, fn.Run([]float32{0}))         // wrong length
	require.Error(t, fn.Run([]float64{0, 0}))      // wrong element type
	require.Error(t, fn.Run())                     // wrong arity
	require.NoError(t, fn.Run([]float32{0, 0}))
}

func TestBuilderPanics(t *testing.T) {
	fn := NewFunc("panics", ArrayParam{Name: "out", Shape: MS(F32)})
	b := NewBuilder(fn)
	require.Panics(t, func() { b.Add(b.ConstFloat(F32, 1), b.ConstFloat(F32, 1)) })
	require.Panics(t, func() { b.FAdd(b.ConstInt(I32, 1), b.ConstInt(I32, 1)) })
	require.Panics(t, func() { b.Add(b.ConstInt(I32, 1), b.ConstInt(I64, 1)) })
	require.Panics(t, func() { b.Select(b.ConstInt(I32, 1), b.ConstInt(I32, 1), b.ConstInt(I32, 2)) })
	require.Panics(t, func() { b.Bitcast(b.ConstInt(I32, 1), I64) })
	require.Panics(t, func() { b.ConstFloat(dtypes.BFloat16, 1) })
	require.Panics(t, func() { b.ArrayWrite(3, b.ConstIndex(0), b.ConstFloat(F32, 1)) })
	require.Panics(t, func() { NewBuilder(fn) })
}
