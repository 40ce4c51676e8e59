package elemental

import (
	"math"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Philox 4x32 round and key-schedule constants, from "Parallel Random
// Numbers: As Easy as 1, 2, 3" (Salmon et al., SC 2011).
const (
	philoxW32A   = 0x9E3779B9
	philoxW32B   = 0xBB67AE85
	philoxM4x32A = 0xD2511F53
	philoxM4x32B = 0xCD9E8D57
)

// makeRngGenerator draws one element per target index from a counter-based
// Philox 4x32-10 stream. The counter is the element's linear offset combined
// with the emitter seed, so the same index always reproduces the same raw
// bits within one generated function, while the per-operation key decorrelates
// separate Rng operations.
func (e *Emitter) makeRngGenerator(op *hlo.Op, operands []Generator) Generator {
	dtype := op.Shape.DType
	if dtype.IsComplex() || dtype == dtypes.Bool {
		exceptions.Panicf("elemental: Rng does not support %s", dtype)
	}
	seed := e.Seed
	if seed == 0 {
		seed = fallbackSource.RandomNew64()
	}
	sequence := e.Sequence
	if sequence == nil {
		sequence = fallbackSource
	}
	key := sequence.RandomNew64()
	seedXorState := seed ^ e.State
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		param0, err := operands[0](b, operandSourceIndex(b, index, op.Shape, op.Operand(0)))
		if err != nil {
			return nil, err
		}
		param1, err := operands[1](b, operandSourceIndex(b, index, op.Shape, op.Operand(1)))
		if err != nil {
			return nil, err
		}
		bits := 32
		if dtype.Size() == 8 {
			bits = 64
		}
		linear := index.Linearize(b, op.Shape)
		raw := emitPhiloxRawBits(b, linear, bits, seedXorState, key)
		switch op.Distribution {
		case hlo.RngUniform:
			return emitRngUniform(b, dtype, param0, param1, raw, bits)
		case hlo.RngNormal:
			return emitRngNormal(b, dtype, param0, param1, raw)
		}
		return nil, unimplementedf("Rng distribution %s", op.Distribution)
	}
}

// emitPhiloxRawBits yields bits (32 or 64) of raw randomness for the element
// at linear. Each Philox invocation produces 128 bits, shared by four 32-bit
// or two 64-bit consecutive elements: the counter is the sample number, the
// offset selects the word.
func emitPhiloxRawBits(b *ir.Builder, linear *ir.Value, bits int, seedXorState, key uint64) *ir.Value {
	elemsPerSample := int64(128 / bits)
	sample := b.UDiv(linear, b.ConstIndex(elemsPerSample))
	offset := b.URem(linear, b.ConstIndex(elemsPerSample))

	u32 := func(word uint64) *ir.Value { return b.ConstBits(dtypes.Uint32, word&0xFFFFFFFF) }
	sampleBits := b.Bitcast(sample, dtypes.Uint64)
	counter := [4]*ir.Value{
		b.Trunc(sampleBits, dtypes.Uint32),
		b.Trunc(b.LShr(sampleBits, b.ConstBits(dtypes.Uint64, 32)), dtypes.Uint32),
		u32(seedXorState),
		u32(seedXorState >> 32),
	}
	words := emitPhilox4x32(b, counter, [2]*ir.Value{u32(key), u32(key >> 32)})

	if bits == 64 {
		combine := func(lo, hi *ir.Value) *ir.Value {
			return b.Or(b.ZExt(lo, dtypes.Uint64),
				b.Shl(b.ZExt(hi, dtypes.Uint64), b.ConstBits(dtypes.Uint64, 32)))
		}
		first := b.ICmp(ir.IntEQ, offset, b.ConstIndex(0))
		return b.Select(first, combine(words[0], words[1]), combine(words[2], words[3]))
	}
	result := words[3]
	for i := 2; i >= 0; i-- {
		result = b.Select(b.ICmp(ir.IntEQ, offset, b.ConstIndex(int64(i))), words[i], result)
	}
	return result
}

// emitPhilox4x32 runs the ten Philox rounds over a 4x32 counter block.
func emitPhilox4x32(b *ir.Builder, counter [4]*ir.Value, key [2]*ir.Value) [4]*ir.Value {
	for round := 0; round < 10; round++ {
		if round > 0 {
			key[0] = b.Add(key[0], b.ConstBits(dtypes.Uint32, philoxW32A))
			key[1] = b.Add(key[1], b.ConstBits(dtypes.Uint32, philoxW32B))
		}
		lo0, hi0 := emitMulLoHi32(b, philoxM4x32A, counter[0])
		lo1, hi1 := emitMulLoHi32(b, philoxM4x32B, counter[2])
		counter = [4]*ir.Value{
			b.Xor(b.Xor(hi1, counter[1]), key[0]),
			lo1,
			b.Xor(b.Xor(hi0, counter[3]), key[1]),
			lo0,
		}
	}
	return counter
}

// emitMulLoHi32 computes the 64-bit product of a constant and a 32-bit value
// and splits it into low and high words.
func emitMulLoHi32(b *ir.Builder, constant uint64, x *ir.Value) (lo, hi *ir.Value) {
	wide := b.Mul(b.ZExt(x, dtypes.Uint64), b.ConstBits(dtypes.Uint64, constant))
	lo = b.Trunc(wide, dtypes.Uint32)
	hi = b.Trunc(b.LShr(wide, b.ConstBits(dtypes.Uint64, 32)), dtypes.Uint32)
	return lo, hi
}

// emitRngUniform maps raw bits to [low, high). Integers take the raw value
// modulo the range, accepting the small modulo bias. Floats scale the raw
// bits to [0, 1) first; the scaling constant 2^-bits keeps the result strictly
// below one.
func emitRngUniform(b *ir.Builder, dtype dtypes.DType, low, high, raw *ir.Value, rawBits int) (*ir.Value, error) {
	if dtype.IsInt() {
		value := b.ZExtOrTrunc(raw, dtype)
		return b.Add(low, b.URem(value, b.Sub(high, low))), nil
	}
	u := b.FMul(b.UIToFP(raw, dtypes.Float64),
		b.ConstFloat(dtypes.Float64, math.Ldexp(1, -rawBits)))
	switch dtype {
	case dtypes.BFloat16:
		lowF, highF := decodeBF16(b, low), decodeBF16(b, high)
		uf := b.FPCast(u, dtypes.Float32)
		return encodeBF16(b, b.FAdd(b.FMul(uf, b.FSub(highF, lowF)), lowF)), nil
	case dtypes.Float16, dtypes.Float32, dtypes.Float64:
		uf := b.FPCast(u, dtype)
		return b.FAdd(b.FMul(uf, b.FSub(high, low)), low), nil
	}
	return nil, unimplementedf("Rng uniform distribution on %s", dtype)
}

// emitRngNormal converts a uniform draw to a normal one through the inverse
// CDF: mean + stddev * -sqrt(2) * erfcinv(2u).
func emitRngNormal(b *ir.Builder, dtype dtypes.DType, mean, stddev, raw *ir.Value) (*ir.Value, error) {
	if dtype != dtypes.Float32 {
		return nil, unimplementedf("Rng normal distribution on %s", dtype)
	}
	u := b.FMul(b.UIToFP(raw, dtypes.Float64),
		b.ConstFloat(dtypes.Float64, math.Ldexp(1, -32)))
	uf := b.FPCast(u, dtypes.Float32)
	erfcInv, err := emitErfcInv(b, b.FMul(b.ConstFloat(dtypes.Float32, 2), uf))
	if err != nil {
		return nil, err
	}
	value := b.FMul(b.ConstFloat(dtypes.Float32, -math.Sqrt2), erfcInv)
	return b.FAdd(mean, b.FMul(stddev, value)), nil
}
