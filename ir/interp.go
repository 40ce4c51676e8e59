package ir

import (
	"math"
	"math/bits"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/gomlx/gopjrt/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Run executes the function against the given flat arrays, one per ArrayParam
// in declaration order. Each array must be the Go slice matching its
// parameter's dtype ([]float32 for Float32, []bfloat16.BFloat16 for BFloat16,
// and so on) holding exactly Shape.Size() elements.
//
// Execution errors (division by zero, out-of-range array access, a reached
// Unreachable) abort the run; the output arrays' contents are then undefined.
func (fn *Func) Run(arrays ...any) error {
	if len(arrays) != len(fn.Arrays) {
		return errors.Errorf("function %q takes %d arrays, got %d", fn.Name, len(fn.Arrays), len(arrays))
	}
	m := &machine{
		fn:     fn,
		regs:   make([][2]uint64, fn.nextValue),
		slots:  make([][2]uint64, len(fn.slots)),
		arrays: make([]flatAccessor, len(arrays)),
	}
	for i, data := range arrays {
		acc, err := bindArray(fn.Arrays[i], data)
		if err != nil {
			return errors.WithMessagef(err, "function %q, array #%d", fn.Name, i)
		}
		m.arrays[i] = acc
	}
	return m.run(fn.entry)
}

// flatAccessor adapts one bound Go slice to the interpreter's canonical words:
// the element's bit pattern zero-extended into lo, with complex imaginary
// parts in hi.
type flatAccessor struct {
	load  func(i int) [2]uint64
	store func(i int, w [2]uint64)
	n     int
}

func bindArray(param ArrayParam, data any) (flatAccessor, error) {
	wrong := func(got string) (flatAccessor, error) {
		return flatAccessor{}, errors.Errorf("parameter %q is %s, bound slice is %s", param.Name, param.Shape.DType, got)
	}
	var acc flatAccessor
	switch d := data.(type) {
	case []bool:
		if param.Shape.DType != dtypes.Bool {
			return wrong("[]bool")
		}
		acc = flatAccessor{
			load: func(i int) [2]uint64 {
				if d[i] {
					return [2]uint64{1, 0}
				}
				return [2]uint64{}
			},
			store: func(i int, w [2]uint64) { d[i] = w[0]&1 != 0 },
			n:     len(d),
		}
	case []int8:
		if param.Shape.DType != dtypes.Int8 {
			return wrong("[]int8")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(uint8(d[i])), 0} },
			store: func(i int, w [2]uint64) { d[i] = int8(w[0]) },
			n:     len(d),
		}
	case []uint8:
		if param.Shape.DType != dtypes.Uint8 {
			return wrong("[]uint8")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(d[i]), 0} },
			store: func(i int, w [2]uint64) { d[i] = uint8(w[0]) },
			n:     len(d),
		}
	case []int16:
		if param.Shape.DType != dtypes.Int16 {
			return wrong("[]int16")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(uint16(d[i])), 0} },
			store: func(i int, w [2]uint64) { d[i] = int16(w[0]) },
			n:     len(d),
		}
	case []uint16:
		if param.Shape.DType != dtypes.Uint16 {
			return wrong("[]uint16")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(d[i]), 0} },
			store: func(i int, w [2]uint64) { d[i] = uint16(w[0]) },
			n:     len(d),
		}
	case []int32:
		if param.Shape.DType != dtypes.Int32 {
			return wrong("[]int32")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(uint32(d[i])), 0} },
			store: func(i int, w [2]uint64) { d[i] = int32(w[0]) },
			n:     len(d),
		}
	case []uint32:
		if param.Shape.DType != dtypes.Uint32 {
			return wrong("[]uint32")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(d[i]), 0} },
			store: func(i int, w [2]uint64) { d[i] = uint32(w[0]) },
			n:     len(d),
		}
	case []int64:
		if param.Shape.DType != dtypes.Int64 {
			return wrong("[]int64")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(d[i]), 0} },
			store: func(i int, w [2]uint64) { d[i] = int64(w[0]) },
			n:     len(d),
		}
	case []uint64:
		if param.Shape.DType != dtypes.Uint64 {
			return wrong("[]uint64")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{d[i], 0} },
			store: func(i int, w [2]uint64) { d[i] = w[0] },
			n:     len(d),
		}
	case []float16.Float16:
		if param.Shape.DType != dtypes.Float16 {
			return wrong("[]float16.Float16")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(d[i].Bits()), 0} },
			store: func(i int, w [2]uint64) { d[i] = float16.Frombits(uint16(w[0])) },
			n:     len(d),
		}
	case []bfloat16.BFloat16:
		if param.Shape.DType != dtypes.BFloat16 {
			return wrong("[]bfloat16.BFloat16")
		}
		// BFloat16 <-> Float32 conversions are exact in both directions here:
		// widening appends zero bits and FromFloat32 drops them again.
		acc = flatAccessor{
			load: func(i int) [2]uint64 {
				return [2]uint64{uint64(math.Float32bits(d[i].Float32()) >> 16), 0}
			},
			store: func(i int, w [2]uint64) {
				d[i] = bfloat16.FromFloat32(math.Float32frombits(uint32(w[0]) << 16))
			},
			n: len(d),
		}
	case []float32:
		if param.Shape.DType != dtypes.Float32 {
			return wrong("[]float32")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{uint64(math.Float32bits(d[i])), 0} },
			store: func(i int, w [2]uint64) { d[i] = math.Float32frombits(uint32(w[0])) },
			n:     len(d),
		}
	case []float64:
		if param.Shape.DType != dtypes.Float64 {
			return wrong("[]float64")
		}
		acc = flatAccessor{
			load:  func(i int) [2]uint64 { return [2]uint64{math.Float64bits(d[i]), 0} },
			store: func(i int, w [2]uint64) { d[i] = math.Float64frombits(w[0]) },
			n:     len(d),
		}
	case []complex64:
		if param.Shape.DType != dtypes.Complex64 {
			return wrong("[]complex64")
		}
		acc = flatAccessor{
			load: func(i int) [2]uint64 {
				return [2]uint64{
					uint64(math.Float32bits(real(d[i]))),
					uint64(math.Float32bits(imag(d[i]))),
				}
			},
			store: func(i int, w [2]uint64) {
				d[i] = complex(math.Float32frombits(uint32(w[0])), math.Float32frombits(uint32(w[1])))
			},
			n: len(d),
		}
	case []complex128:
		if param.Shape.DType != dtypes.Complex128 {
			return wrong("[]complex128")
		}
		acc = flatAccessor{
			load: func(i int) [2]uint64 {
				return [2]uint64{math.Float64bits(real(d[i])), math.Float64bits(imag(d[i]))}
			},
			store: func(i int, w [2]uint64) {
				d[i] = complex(math.Float64frombits(w[0]), math.Float64frombits(w[1]))
			},
			n: len(d),
		}
	default:
		return flatAccessor{}, errors.Errorf("parameter %q: unsupported slice type %T", param.Name, data)
	}
	if acc.n != param.Shape.Size() {
		return flatAccessor{}, errors.Errorf("parameter %q of shape %s needs %d elements, bound slice has %d",
			param.Name, param.Shape, param.Shape.Size(), acc.n)
	}
	return acc, nil
}

type machine struct {
	fn     *Func
	regs   [][2]uint64
	slots  [][2]uint64
	arrays []flatAccessor
}

func (m *machine) run(blk *Block) error {
	for _, v := range blk.ops {
		if err := m.exec(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *machine) lo(v *Value) uint64 { return m.regs[v.id][0] }

func signExtend(word uint64, width int) int64 {
	return int64(word<<(64-width)) >> (64 - width)
}

func minInt(width int) int64 {
	return -1 << (width - 1)
}

func maxInt(width int) int64 {
	return 1<<(width-1) - 1
}

func decodeFloat(dtype dtypes.DType, word uint64) float64 {
	switch dtype {
	case dtypes.Float16:
		return float64(float16.Frombits(uint16(word)).Float32())
	case dtypes.Float32:
		return float64(math.Float32frombits(uint32(word)))
	default:
		return math.Float64frombits(word)
	}
}

// encodeFloat rounds f to dtype. Going through float32 on the way to Float16
// is exact: float32 carries enough precision that the second rounding never
// changes the result.
func encodeFloat(dtype dtypes.DType, f float64) uint64 {
	switch dtype {
	case dtypes.Float16:
		return uint64(float16.Fromfloat32(float32(f)).Bits())
	case dtypes.Float32:
		return uint64(math.Float32bits(float32(f)))
	default:
		return math.Float64bits(f)
	}
}

func boolWord(b bool) [2]uint64 {
	if b {
		return [2]uint64{1, 0}
	}
	return [2]uint64{}
}

func (m *machine) exec(v *Value) error {
	w := bitWidth(v.dtype)
	switch v.op {
	case OpConst:
		m.regs[v.id] = v.bits

	case OpAdd:
		m.regs[v.id][0] = (m.lo(v.args[0]) + m.lo(v.args[1])) & maskOf(w)
	case OpSub:
		m.regs[v.id][0] = (m.lo(v.args[0]) - m.lo(v.args[1])) & maskOf(w)
	case OpMul:
		m.regs[v.id][0] = (m.lo(v.args[0]) * m.lo(v.args[1])) & maskOf(w)

	case OpSDiv, OpSRem:
		a, b := signExtend(m.lo(v.args[0]), w), signExtend(m.lo(v.args[1]), w)
		if b == 0 {
			return errors.Errorf("integer division by zero in %s", v.op)
		}
		var r int64
		switch {
		case a == minInt(w) && b == -1:
			// Wraps instead of trapping; guarded division never gets here.
			if v.op == OpSDiv {
				r = minInt(w)
			}
		case v.op == OpSDiv:
			r = a / b
		default:
			r = a % b
		}
		m.regs[v.id][0] = uint64(r) & maskOf(w)
	case OpUDiv:
		b := m.lo(v.args[1])
		if b == 0 {
			return errors.Errorf("integer division by zero in %s", v.op)
		}
		m.regs[v.id][0] = m.lo(v.args[0]) / b
	case OpURem:
		b := m.lo(v.args[1])
		if b == 0 {
			return errors.Errorf("integer division by zero in %s", v.op)
		}
		m.regs[v.id][0] = m.lo(v.args[0]) % b

	case OpShl:
		amount := m.lo(v.args[1])
		if amount >= uint64(w) {
			m.regs[v.id][0] = 0
		} else {
			m.regs[v.id][0] = (m.lo(v.args[0]) << amount) & maskOf(w)
		}
	case OpLShr:
		amount := m.lo(v.args[1])
		if amount >= uint64(w) {
			m.regs[v.id][0] = 0
		} else {
			m.regs[v.id][0] = m.lo(v.args[0]) >> amount
		}
	case OpAShr:
		a := signExtend(m.lo(v.args[0]), w)
		amount := m.lo(v.args[1])
		if amount >= uint64(w) {
			amount = uint64(w - 1)
		}
		m.regs[v.id][0] = uint64(a>>amount) & maskOf(w)

	case OpAnd:
		m.regs[v.id][0] = m.lo(v.args[0]) & m.lo(v.args[1])
	case OpOr:
		m.regs[v.id][0] = m.lo(v.args[0]) | m.lo(v.args[1])
	case OpXor:
		m.regs[v.id][0] = m.lo(v.args[0]) ^ m.lo(v.args[1])
	case OpNot:
		m.regs[v.id][0] = ^m.lo(v.args[0]) & maskOf(w)
	case OpClz:
		a := m.lo(v.args[0])
		if a == 0 {
			m.regs[v.id][0] = uint64(w)
		} else {
			m.regs[v.id][0] = uint64(bits.LeadingZeros64(a) - (64 - w))
		}

	case OpFAdd, OpFSub, OpFMul, OpFDiv, OpFRem:
		a := decodeFloat(v.dtype, m.lo(v.args[0]))
		b := decodeFloat(v.dtype, m.lo(v.args[1]))
		var r float64
		switch v.op {
		case OpFAdd:
			r = a + b
		case OpFSub:
			r = a - b
		case OpFMul:
			r = a * b
		case OpFDiv:
			r = a / b
		default:
			r = math.Mod(a, b)
		}
		m.regs[v.id][0] = encodeFloat(v.dtype, r)
	case OpFNeg:
		arg := m.regs[v.args[0].id]
		sign := uint64(1) << (w - 1)
		m.regs[v.id][0] = arg[0] ^ sign
		if v.dtype.IsComplex() {
			m.regs[v.id][1] = arg[1] ^ sign
		}

	case OpICmp:
		aw := v.args[0].dtype
		a, b := m.lo(v.args[0]), m.lo(v.args[1])
		var r bool
		switch v.ipred {
		case IntEQ:
			r = a == b
		case IntNE:
			r = a != b
		case IntULT:
			r = a < b
		case IntULE:
			r = a <= b
		case IntUGT:
			r = a > b
		case IntUGE:
			r = a >= b
		default:
			sa, sb := signExtend(a, bitWidth(aw)), signExtend(b, bitWidth(aw))
			switch v.ipred {
			case IntSLT:
				r = sa < sb
			case IntSLE:
				r = sa <= sb
			case IntSGT:
				r = sa > sb
			case IntSGE:
				r = sa >= sb
			}
		}
		m.regs[v.id] = boolWord(r)
	case OpFCmp:
		a := decodeFloat(v.args[0].dtype, m.lo(v.args[0]))
		b := decodeFloat(v.args[1].dtype, m.lo(v.args[1]))
		unordered := math.IsNaN(a) || math.IsNaN(b)
		var r bool
		switch v.fpred {
		case FloatOEQ:
			r = !unordered && a == b
		case FloatOGT:
			r = !unordered && a > b
		case FloatOGE:
			r = !unordered && a >= b
		case FloatOLT:
			r = !unordered && a < b
		case FloatOLE:
			r = !unordered && a <= b
		case FloatONE:
			r = !unordered && a != b
		case FloatUNE:
			r = unordered || a != b
		case FloatUNO:
			r = unordered
		}
		m.regs[v.id] = boolWord(r)
	case OpSelect:
		if m.lo(v.args[0])&1 != 0 {
			m.regs[v.id] = m.regs[v.args[1].id]
		} else {
			m.regs[v.id] = m.regs[v.args[2].id]
		}

	case OpTrunc, OpBitcast:
		m.regs[v.id][0] = m.lo(v.args[0]) & maskOf(w)
	case OpZExt:
		m.regs[v.id][0] = m.lo(v.args[0])
	case OpSExt:
		m.regs[v.id][0] = uint64(signExtend(m.lo(v.args[0]), bitWidth(v.args[0].dtype))) & maskOf(w)
	case OpFPTrunc, OpFPExt:
		m.regs[v.id][0] = encodeFloat(v.dtype, decodeFloat(v.args[0].dtype, m.lo(v.args[0])))
	case OpSIToFP:
		m.regs[v.id][0] = encodeFloat(v.dtype, float64(signExtend(m.lo(v.args[0]), bitWidth(v.args[0].dtype))))
	case OpUIToFP:
		m.regs[v.id][0] = encodeFloat(v.dtype, float64(m.lo(v.args[0])))
	case OpFPToSI:
		f := decodeFloat(v.args[0].dtype, m.lo(v.args[0]))
		var r int64
		limit := math.Ldexp(1, w-1)
		switch {
		case math.IsNaN(f):
			r = 0
		case f >= limit:
			r = maxInt(w)
		case f < -limit:
			r = minInt(w)
		default:
			r = int64(math.Trunc(f))
		}
		m.regs[v.id][0] = uint64(r) & maskOf(w)
	case OpFPToUI:
		f := decodeFloat(v.args[0].dtype, m.lo(v.args[0]))
		var r uint64
		limit := math.Ldexp(1, w)
		switch {
		case math.IsNaN(f) || f <= -1:
			r = 0
		case f >= limit:
			r = maskOf(w)
		default:
			r = uint64(math.Trunc(f))
		}
		m.regs[v.id][0] = r & maskOf(w)

	case OpMathUnary:
		a := decodeFloat(v.args[0].dtype, m.lo(v.args[0]))
		var r float64
		switch v.mathFn {
		case MathExp:
			r = math.Exp(a)
		case MathLog:
			r = math.Log(a)
		case MathSin:
			r = math.Sin(a)
		case MathCos:
			r = math.Cos(a)
		case MathTanh:
			r = math.Tanh(a)
		case MathSqrt:
			r = math.Sqrt(a)
		case MathFabs:
			r = math.Abs(a)
		case MathFloor:
			r = math.Floor(a)
		case MathCeil:
			r = math.Ceil(a)
		case MathRound:
			r = math.Round(a)
		default:
			return errors.Errorf("math function %s is not unary", v.mathFn)
		}
		m.regs[v.id][0] = encodeFloat(v.dtype, r)
	case OpMathBinary:
		a := decodeFloat(v.args[0].dtype, m.lo(v.args[0]))
		b := decodeFloat(v.args[1].dtype, m.lo(v.args[1]))
		var r float64
		switch v.mathFn {
		case MathPow:
			r = math.Pow(a, b)
		case MathAtan2:
			r = math.Atan2(a, b)
		default:
			return errors.Errorf("math function %s is not binary", v.mathFn)
		}
		m.regs[v.id][0] = encodeFloat(v.dtype, r)

	case OpComplex:
		m.regs[v.id][0] = m.lo(v.args[0])
		m.regs[v.id][1] = m.lo(v.args[1])
	case OpReal:
		m.regs[v.id][0] = m.regs[v.args[0].id][0]
	case OpImag:
		m.regs[v.id][0] = m.regs[v.args[0].id][1]

	case OpArrayRead:
		acc := m.arrays[v.array]
		offset := int64(m.lo(v.args[0]))
		if offset < 0 || offset >= int64(acc.n) {
			return errors.Errorf("read of array %q out of range: offset %d, %d elements",
				m.fn.Arrays[v.array].Name, offset, acc.n)
		}
		m.regs[v.id] = acc.load(int(offset))
	case OpArrayWrite:
		acc := m.arrays[v.array]
		offset := int64(m.lo(v.args[0]))
		if offset < 0 || offset >= int64(acc.n) {
			return errors.Errorf("write of array %q out of range: offset %d, %d elements",
				m.fn.Arrays[v.array].Name, offset, acc.n)
		}
		acc.store(int(offset), m.regs[v.args[1].id])
	case OpSlotLoad:
		m.regs[v.id] = m.slots[v.slot.id]
	case OpSlotStore:
		m.slots[v.slot.id] = m.regs[v.args[0].id]

	case OpIf:
		if m.lo(v.args[0])&1 != 0 {
			return m.run(v.then)
		}
		if v.orElse != nil {
			return m.run(v.orElse)
		}
	case OpFor:
		start := int64(m.lo(v.args[0]))
		end := int64(m.lo(v.args[1]))
		step := int64(m.lo(v.args[2]))
		if step <= 0 {
			return errors.Errorf("loop %q has non-positive step %d", v.name, step)
		}
		for iv := start; iv < end; iv += step {
			m.regs[v.id][0] = uint64(iv)
			if err := m.run(v.body); err != nil {
				return err
			}
		}
	case OpUnreachable:
		return errors.Errorf("unreachable code executed in function %q", m.fn.Name)

	default:
		return errors.Errorf("cannot execute op %s", v.op)
	}
	return nil
}
