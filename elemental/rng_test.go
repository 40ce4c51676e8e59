package elemental

import (
	"math"
	"testing"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// fixedSource hands out a constant, making Rng lowering fully deterministic.
type fixedSource uint64

func (s fixedSource) RandomNew64() uint64 { return uint64(s) }

func TestPhiloxKnownAnswer(t *testing.T) {
	// Counter and key all zero, from the Random123 known-answer vectors.
	fn := ir.NewFunc("philox", ir.ArrayParam{Name: "out", Shape: MS(U32, 4)})
	b := ir.NewBuilder(fn)
	zero := b.ConstBits(U32, 0)
	words := emitPhilox4x32(b, [4]*ir.Value{zero, zero, zero, zero}, [2]*ir.Value{zero, zero})
	for i, w := range words {
		b.ArrayWrite(0, b.ConstIndex(int64(i)), w)
	}
	out := make([]uint32, 4)
	require.NoError(t, fn.Run(out))
	assert.Equal(t, []uint32{0x6627e8d5, 0xe169c58d, 0xbc57ac4c, 0x9b00dbd8}, out)
}

func rngOp(dtype dtypes.DType, size int, distribution hlo.RandomDistribution) *hlo.Op {
	return &hlo.Op{
		Type:         hlo.OpTypeRng,
		Operands:     []shapes.Shape{MS(dtype), MS(dtype)},
		Shape:        MS(dtype, size),
		Distribution: distribution,
	}
}

func TestRngUniformFloat(t *testing.T) {
	e := &Emitter{Seed: 7, Sequence: fixedSource(0x0123456789ABCDEF)}

	op := rngOp(F32, 1000, hlo.RngUniform)
	out := evalOp(t, e, op, []float32{-2}, []float32{3}).([]float32)
	var sum float64
	for _, v := range out {
		// Rounding the uniform draw to float32 can reach 1, so the upper
		// bound is attainable.
		assert.GreaterOrEqual(t, v, float32(-2))
		assert.LessOrEqual(t, v, float32(3))
		sum += float64(v)
	}
	assert.InDelta(t, 0.5, sum/float64(len(out)), 0.3)

	// 64-bit raw path.
	op = rngOp(F64, 500, hlo.RngUniform)
	out64 := evalOp(t, e, op, []float64{10}, []float64{20}).([]float64)
	sum = 0
	for _, v := range out64 {
		assert.GreaterOrEqual(t, v, 10.0)
		assert.LessOrEqual(t, v, 20.0)
		sum += v
	}
	assert.InDelta(t, 15, sum/float64(len(out64)), 1)

	op = rngOp(F16, 200, hlo.RngUniform)
	outH := evalOp(t, e, op, []float16.Float16{float16.Fromfloat32(0)}, []float16.Float16{float16.Fromfloat32(1)}).([]float16.Float16)
	for _, v := range outH {
		f := v.Float32()
		assert.GreaterOrEqual(t, f, float32(0))
		assert.LessOrEqual(t, f, float32(1))
	}

	op = rngOp(BF16, 200, hlo.RngUniform)
	outBF := evalOp(t, e, op, []bfloat16.BFloat16{bfloat16.FromFloat32(0)}, []bfloat16.BFloat16{bfloat16.FromFloat32(1)}).([]bfloat16.BFloat16)
	for _, v := range outBF {
		f := v.Float32()
		assert.GreaterOrEqual(t, f, float32(0))
		assert.LessOrEqual(t, f, float32(1))
	}
}

func TestRngUniformInt(t *testing.T) {
	e := &Emitter{Seed: 3, Sequence: fixedSource(42)}

	op := rngOp(I32, 1000, hlo.RngUniform)
	out := evalOp(t, e, op, []int32{0}, []int32{10}).([]int32)
	var buckets [10]int
	for _, v := range out {
		require.GreaterOrEqual(t, v, int32(0))
		require.Less(t, v, int32(10))
		buckets[v]++
	}
	for digit, n := range buckets {
		assert.Greater(t, n, 0, "no draws hit %d", digit)
	}

	op = rngOp(I64, 500, hlo.RngUniform)
	out64 := evalOp(t, e, op, []int64{-5}, []int64{5}).([]int64)
	for _, v := range out64 {
		assert.GreaterOrEqual(t, v, int64(-5))
		assert.Less(t, v, int64(5))
	}

	op = rngOp(U8, 300, hlo.RngUniform)
	outU := evalOp(t, e, op, []uint8{10}, []uint8{20}).([]uint8)
	for _, v := range outU {
		assert.GreaterOrEqual(t, v, uint8(10))
		assert.Less(t, v, uint8(20))
	}
}

func TestRngNormal(t *testing.T) {
	e := &Emitter{Seed: 11, Sequence: fixedSource(0xFEEDFACE)}

	op := rngOp(F32, 2000, hlo.RngNormal)
	out := evalOp(t, e, op, []float32{1}, []float32{2}).([]float32)

	var sum, sumSq float64
	within1 := 0
	for _, v := range out {
		f := float64(v)
		sum += f
		sumSq += f * f
		if math.Abs(f-1) < 2 {
			within1++
		}
	}
	n := float64(len(out))
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)
	assert.InDelta(t, 1, mean, 0.3)
	assert.Greater(t, std, 1.6)
	assert.Less(t, std, 2.4)
	// About 68% of a normal distribution sits within one standard deviation.
	fraction := float64(within1) / n
	assert.Greater(t, fraction, 0.6)
	assert.Less(t, fraction, 0.76)

	// Only float32 has the inverse-CDF lowering.
	op = rngOp(F64, 4, hlo.RngNormal)
	_, err := tryEvalOp(e, op, []float64{0}, []float64{1})
	require.ErrorIs(t, err, ErrUnimplemented)
}

func TestRngDeterminism(t *testing.T) {
	draw := func(seed, state uint64) []float32 {
		e := &Emitter{Seed: seed, State: state, Sequence: fixedSource(99)}
		op := rngOp(F32, 64, hlo.RngUniform)
		return evalOp(t, e, op, []float32{0}, []float32{1}).([]float32)
	}

	// Same seed, state and sequence reproduce the exact stream.
	assert.Equal(t, draw(7, 1), draw(7, 1))
	// Any change to seed or state shifts it.
	assert.NotEqual(t, draw(7, 1), draw(7, 2))
	assert.NotEqual(t, draw(8, 1), draw(7, 1))
}

func TestRngRejectsDTypes(t *testing.T) {
	e := &Emitter{}
	require.Panics(t, func() {
		_, _ = tryEvalOp(e, rngOp(Bool, 4, hlo.RngUniform), []bool{false}, []bool{true})
	})
	require.Panics(t, func() {
		_, _ = tryEvalOp(e, rngOp(C64, 4, hlo.RngUniform), []complex64{0}, []complex64{1})
	})
}

func TestRngUnknownDistribution(t *testing.T) {
	e := &Emitter{}
	_, err := tryEvalOp(e, rngOp(F32, 4, hlo.RngInvalid), []float32{0}, []float32{1})
	require.ErrorIs(t, err, ErrUnimplemented)
}
