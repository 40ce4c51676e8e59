package ir

import (
	"fmt"
	"math"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"
)

// Builder appends instructions to a Func. It keeps a single insertion cursor;
// the control-flow methods (If, For) temporarily move the cursor into the
// nested block while the given closure runs, so emitters must not assume the
// insertion point is unchanged after invoking a callback that may emit code.
//
// Type misuse (adding a float to an int, selecting on a non-Bool) is a
// programming-contract violation and panics. Errors returned by If, For and
// WithScratch come only from the closures themselves.
type Builder struct {
	fn  *Func
	cur *Block
}

// NewBuilder returns a builder appending to fn's root block.
func NewBuilder(fn *Func) *Builder {
	if fn.hasBuilder {
		exceptions.Panicf("ir.NewBuilder: function %q already has a builder; a Func is built by a single sequential cursor", fn.Name)
	}
	fn.hasBuilder = true
	return &Builder{fn: fn, cur: fn.entry}
}

// Func returns the function under construction.
func (b *Builder) Func() *Func { return b.fn }

func (b *Builder) emit(v *Value) *Value {
	b.cur.ops = append(b.cur.ops, v)
	return v
}

// bitWidth returns the number of significant bits of dtype's interpreter
// word. For complex types it is the width of one component; Bool is a single
// bit, kept canonical by every producing operation.
func bitWidth(dtype dtypes.DType) int {
	if dtype == dtypes.Bool {
		return 1
	}
	if dtype.IsComplex() {
		return dtype.Size() * 8 / 2
	}
	return dtype.Size() * 8
}

func maskOf(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func isComputeFloat(dtype dtypes.DType) bool {
	// BFloat16 is storage-only; arithmetic never computes in it.
	return dtype.IsFloat() && dtype != dtypes.BFloat16
}

func (b *Builder) checkSame(what string, x, y *Value) {
	if x.dtype != y.dtype {
		exceptions.Panicf("ir: %s requires matching dtypes, got %s and %s", what, x.dtype, y.dtype)
	}
}

func (b *Builder) checkInt(what string, vals ...*Value) {
	for _, v := range vals {
		if !v.dtype.IsInt() {
			exceptions.Panicf("ir: %s requires integer operands, got %s", what, v.dtype)
		}
	}
}

func (b *Builder) checkBits(what string, vals ...*Value) {
	for _, v := range vals {
		if !v.dtype.IsInt() && v.dtype != dtypes.Bool {
			exceptions.Panicf("ir: %s requires integer or Bool operands, got %s", what, v.dtype)
		}
	}
}

func (b *Builder) checkFloat(what string, vals ...*Value) {
	for _, v := range vals {
		if !isComputeFloat(v.dtype) {
			exceptions.Panicf("ir: %s requires float operands (BFloat16 is storage-only), got %s", what, v.dtype)
		}
	}
}

// Constants:

// ConstBits creates a constant of dtype from a raw bit pattern. The pattern
// is truncated to the dtype's width. Not usable for complex dtypes.
func (b *Builder) ConstBits(dtype dtypes.DType, pattern uint64) *Value {
	if dtype.IsComplex() {
		exceptions.Panicf("ir: ConstBits cannot build complex constants, compose with Complex instead")
	}
	v := b.fn.newValue(OpConst, dtype)
	v.bits[0] = pattern & maskOf(bitWidth(dtype))
	return b.emit(v)
}

// ConstInt creates an integer constant of dtype, truncated to its width.
func (b *Builder) ConstInt(dtype dtypes.DType, value int64) *Value {
	if !dtype.IsInt() {
		exceptions.Panicf("ir: ConstInt requires an integer dtype, got %s", dtype)
	}
	return b.ConstBits(dtype, uint64(value))
}

// ConstIndex creates an Int64 constant, the dtype of all index arithmetic.
func (b *Builder) ConstIndex(value int64) *Value {
	return b.ConstInt(dtypes.Int64, value)
}

// ConstFloat creates a float constant of dtype, rounding value to it.
func (b *Builder) ConstFloat(dtype dtypes.DType, value float64) *Value {
	var pattern uint64
	switch dtype {
	case dtypes.Float16:
		pattern = uint64(float16.Fromfloat32(float32(value)).Bits())
	case dtypes.Float32:
		pattern = uint64(math.Float32bits(float32(value)))
	case dtypes.Float64:
		pattern = math.Float64bits(value)
	default:
		exceptions.Panicf("ir: ConstFloat requires Float16, Float32 or Float64, got %s", dtype)
	}
	return b.ConstBits(dtype, pattern)
}

// ConstBool creates a Bool constant.
func (b *Builder) ConstBool(value bool) *Value {
	var pattern uint64
	if value {
		pattern = 1
	}
	return b.ConstBits(dtypes.Bool, pattern)
}

// Zero returns the zero value of dtype, including complex zero.
func (b *Builder) Zero(dtype dtypes.DType) *Value {
	if dtype.IsComplex() {
		return b.emit(b.fn.newValue(OpConst, dtype))
	}
	return b.ConstBits(dtype, 0)
}

// One returns the value one of dtype. For complex dtypes it is 1+0i.
func (b *Builder) One(dtype dtypes.DType) *Value {
	switch {
	case dtype == dtypes.Bool:
		return b.ConstBool(true)
	case dtype.IsInt():
		return b.ConstInt(dtype, 1)
	case dtype == dtypes.Complex64:
		v := b.fn.newValue(OpConst, dtype)
		v.bits[0] = uint64(math.Float32bits(1))
		return b.emit(v)
	case dtype == dtypes.Complex128:
		v := b.fn.newValue(OpConst, dtype)
		v.bits[0] = math.Float64bits(1)
		return b.emit(v)
	default:
		return b.ConstFloat(dtype, 1)
	}
}

// Integer arithmetic:

func (b *Builder) binaryInt(op OpCode, what string, x, y *Value) *Value {
	b.checkInt(what, x, y)
	b.checkSame(what, x, y)
	return b.emit(b.fn.newValue(op, x.dtype, x, y))
}

func (b *Builder) Add(x, y *Value) *Value  { return b.binaryInt(OpAdd, "Add", x, y) }
func (b *Builder) Sub(x, y *Value) *Value  { return b.binaryInt(OpSub, "Sub", x, y) }
func (b *Builder) Mul(x, y *Value) *Value  { return b.binaryInt(OpMul, "Mul", x, y) }
func (b *Builder) SDiv(x, y *Value) *Value { return b.binaryInt(OpSDiv, "SDiv", x, y) }
func (b *Builder) UDiv(x, y *Value) *Value { return b.binaryInt(OpUDiv, "UDiv", x, y) }
func (b *Builder) SRem(x, y *Value) *Value { return b.binaryInt(OpSRem, "SRem", x, y) }
func (b *Builder) URem(x, y *Value) *Value { return b.binaryInt(OpURem, "URem", x, y) }
func (b *Builder) Shl(x, y *Value) *Value  { return b.binaryInt(OpShl, "Shl", x, y) }
func (b *Builder) LShr(x, y *Value) *Value { return b.binaryInt(OpLShr, "LShr", x, y) }
func (b *Builder) AShr(x, y *Value) *Value { return b.binaryInt(OpAShr, "AShr", x, y) }

func (b *Builder) binaryBits(op OpCode, what string, x, y *Value) *Value {
	b.checkBits(what, x, y)
	b.checkSame(what, x, y)
	return b.emit(b.fn.newValue(op, x.dtype, x, y))
}

func (b *Builder) And(x, y *Value) *Value { return b.binaryBits(OpAnd, "And", x, y) }
func (b *Builder) Or(x, y *Value) *Value  { return b.binaryBits(OpOr, "Or", x, y) }
func (b *Builder) Xor(x, y *Value) *Value { return b.binaryBits(OpXor, "Xor", x, y) }

// Not computes the bitwise complement, truncated to the dtype width.
func (b *Builder) Not(x *Value) *Value {
	b.checkBits("Not", x)
	return b.emit(b.fn.newValue(OpNot, x.dtype, x))
}

// Clz counts leading zero bits; Clz(0) is the dtype's bit width.
func (b *Builder) Clz(x *Value) *Value {
	b.checkInt("Clz", x)
	return b.emit(b.fn.newValue(OpClz, x.dtype, x))
}

// Neg negates x: integers as 0-x (wrapping), floats and complex values by
// sign flip.
func (b *Builder) Neg(x *Value) *Value {
	if x.dtype.IsInt() {
		return b.Sub(b.ConstInt(x.dtype, 0), x)
	}
	return b.FNeg(x)
}

// Float arithmetic:

func (b *Builder) binaryFloat(op OpCode, what string, x, y *Value) *Value {
	b.checkFloat(what, x, y)
	b.checkSame(what, x, y)
	return b.emit(b.fn.newValue(op, x.dtype, x, y))
}

func (b *Builder) FAdd(x, y *Value) *Value { return b.binaryFloat(OpFAdd, "FAdd", x, y) }
func (b *Builder) FSub(x, y *Value) *Value { return b.binaryFloat(OpFSub, "FSub", x, y) }
func (b *Builder) FMul(x, y *Value) *Value { return b.binaryFloat(OpFMul, "FMul", x, y) }
func (b *Builder) FDiv(x, y *Value) *Value { return b.binaryFloat(OpFDiv, "FDiv", x, y) }
func (b *Builder) FRem(x, y *Value) *Value { return b.binaryFloat(OpFRem, "FRem", x, y) }

// FNeg flips the sign bit. On complex values it flips both components.
func (b *Builder) FNeg(x *Value) *Value {
	if !isComputeFloat(x.dtype) && !x.dtype.IsComplex() {
		exceptions.Panicf("ir: FNeg requires a float or complex operand, got %s", x.dtype)
	}
	return b.emit(b.fn.newValue(OpFNeg, x.dtype, x))
}

// Comparisons:

// ICmp compares two integer (or Bool) values and produces a Bool.
func (b *Builder) ICmp(pred IntPredicate, x, y *Value) *Value {
	b.checkBits("ICmp", x, y)
	b.checkSame("ICmp", x, y)
	v := b.fn.newValue(OpICmp, dtypes.Bool, x, y)
	v.ipred = pred
	return b.emit(v)
}

// FCmp compares two float values and produces a Bool.
func (b *Builder) FCmp(pred FloatPredicate, x, y *Value) *Value {
	b.checkFloat("FCmp", x, y)
	b.checkSame("FCmp", x, y)
	v := b.fn.newValue(OpFCmp, dtypes.Bool, x, y)
	v.fpred = pred
	return b.emit(v)
}

// Select returns onTrue where cond's low bit is set, onFalse elsewhere. Both
// branch values are always evaluated.
func (b *Builder) Select(cond, onTrue, onFalse *Value) *Value {
	if cond.dtype != dtypes.Bool {
		exceptions.Panicf("ir: Select condition must be Bool, got %s", cond.dtype)
	}
	b.checkSame("Select", onTrue, onFalse)
	return b.emit(b.fn.newValue(OpSelect, onTrue.dtype, cond, onTrue, onFalse))
}

// Conversions:

// Trunc drops the high bits of an integer, narrowing it to dtype.
func (b *Builder) Trunc(x *Value, dtype dtypes.DType) *Value {
	b.checkInt("Trunc", x)
	if !dtype.IsInt() || dtype.Size() >= x.dtype.Size() {
		exceptions.Panicf("ir: Trunc requires a narrower integer dtype, got %s -> %s", x.dtype, dtype)
	}
	return b.emit(b.fn.newValue(OpTrunc, dtype, x))
}

// ZExt widens an integer (or Bool) with zero bits.
func (b *Builder) ZExt(x *Value, dtype dtypes.DType) *Value {
	b.checkBits("ZExt", x)
	if !dtype.IsInt() || dtype.Size() <= x.dtype.Size() {
		exceptions.Panicf("ir: ZExt requires a wider integer dtype, got %s -> %s", x.dtype, dtype)
	}
	return b.emit(b.fn.newValue(OpZExt, dtype, x))
}

// SExt widens an integer with copies of its sign bit.
func (b *Builder) SExt(x *Value, dtype dtypes.DType) *Value {
	b.checkInt("SExt", x)
	if !dtype.IsInt() || dtype.Size() <= x.dtype.Size() {
		exceptions.Panicf("ir: SExt requires a wider integer dtype, got %s -> %s", x.dtype, dtype)
	}
	return b.emit(b.fn.newValue(OpSExt, dtype, x))
}

// SExtOrTrunc converts between integer widths, sign-extending when widening.
// Same-width conversions reinterpret the bits.
func (b *Builder) SExtOrTrunc(x *Value, dtype dtypes.DType) *Value {
	switch {
	case x.dtype == dtype:
		return x
	case dtype.Size() == x.dtype.Size():
		return b.Bitcast(x, dtype)
	case dtype.Size() > x.dtype.Size():
		return b.SExt(x, dtype)
	default:
		return b.Trunc(x, dtype)
	}
}

// ZExtOrTrunc converts between integer widths, zero-extending when widening.
// Same-width conversions reinterpret the bits.
func (b *Builder) ZExtOrTrunc(x *Value, dtype dtypes.DType) *Value {
	switch {
	case x.dtype == dtype:
		return x
	case dtype.Size() == x.dtype.Size():
		return b.Bitcast(x, dtype)
	case dtype.Size() > x.dtype.Size():
		return b.ZExt(x, dtype)
	default:
		return b.Trunc(x, dtype)
	}
}

// IntCast converts between integer widths, extending per signed when
// widening.
func (b *Builder) IntCast(x *Value, dtype dtypes.DType, signed bool) *Value {
	if signed {
		return b.SExtOrTrunc(x, dtype)
	}
	return b.ZExtOrTrunc(x, dtype)
}

// FPTrunc rounds a float down to a narrower float dtype.
func (b *Builder) FPTrunc(x *Value, dtype dtypes.DType) *Value {
	b.checkFloat("FPTrunc", x)
	if !isComputeFloat(dtype) || dtype.Size() >= x.dtype.Size() {
		exceptions.Panicf("ir: FPTrunc requires a narrower float dtype, got %s -> %s", x.dtype, dtype)
	}
	return b.emit(b.fn.newValue(OpFPTrunc, dtype, x))
}

// FPExt widens a float exactly.
func (b *Builder) FPExt(x *Value, dtype dtypes.DType) *Value {
	b.checkFloat("FPExt", x)
	if !isComputeFloat(dtype) || dtype.Size() <= x.dtype.Size() {
		exceptions.Panicf("ir: FPExt requires a wider float dtype, got %s -> %s", x.dtype, dtype)
	}
	return b.emit(b.fn.newValue(OpFPExt, dtype, x))
}

// FPCast converts between float dtypes, in either direction.
func (b *Builder) FPCast(x *Value, dtype dtypes.DType) *Value {
	switch {
	case x.dtype == dtype:
		return x
	case dtype.Size() > x.dtype.Size():
		return b.FPExt(x, dtype)
	default:
		return b.FPTrunc(x, dtype)
	}
}

// SIToFP converts a signed integer to a float.
func (b *Builder) SIToFP(x *Value, dtype dtypes.DType) *Value {
	b.checkInt("SIToFP", x)
	if !isComputeFloat(dtype) {
		exceptions.Panicf("ir: SIToFP requires a float result dtype, got %s", dtype)
	}
	return b.emit(b.fn.newValue(OpSIToFP, dtype, x))
}

// UIToFP converts an unsigned integer (or Bool) to a float.
func (b *Builder) UIToFP(x *Value, dtype dtypes.DType) *Value {
	b.checkBits("UIToFP", x)
	if !isComputeFloat(dtype) {
		exceptions.Panicf("ir: UIToFP requires a float result dtype, got %s", dtype)
	}
	return b.emit(b.fn.newValue(OpUIToFP, dtype, x))
}

// FPToSI converts a float to a signed integer, truncating toward zero.
// Out-of-range values saturate and NaN converts to zero.
func (b *Builder) FPToSI(x *Value, dtype dtypes.DType) *Value {
	b.checkFloat("FPToSI", x)
	if !dtype.IsInt() {
		exceptions.Panicf("ir: FPToSI requires an integer result dtype, got %s", dtype)
	}
	return b.emit(b.fn.newValue(OpFPToSI, dtype, x))
}

// FPToUI converts a float to an unsigned integer, truncating toward zero.
// Out-of-range values saturate and NaN converts to zero.
func (b *Builder) FPToUI(x *Value, dtype dtypes.DType) *Value {
	b.checkFloat("FPToUI", x)
	if !dtype.IsInt() {
		exceptions.Panicf("ir: FPToUI requires an integer result dtype, got %s", dtype)
	}
	return b.emit(b.fn.newValue(OpFPToUI, dtype, x))
}

// Bitcast reinterprets x's bits as dtype. Widths must match; complex dtypes
// are not supported.
func (b *Builder) Bitcast(x *Value, dtype dtypes.DType) *Value {
	if x.dtype.IsComplex() || dtype.IsComplex() {
		exceptions.Panicf("ir: Bitcast does not support complex dtypes, got %s -> %s", x.dtype, dtype)
	}
	if x.dtype.Size() != dtype.Size() {
		exceptions.Panicf("ir: Bitcast requires equal widths, got %s (%d bits) -> %s (%d bits)",
			x.dtype, bitWidth(x.dtype), dtype, bitWidth(dtype))
	}
	if x.dtype == dtype {
		return x
	}
	return b.emit(b.fn.newValue(OpBitcast, dtype, x))
}

// Math primitives:

func (b *Builder) math1(fn MathFn, x *Value) *Value {
	b.checkFloat(fn.String(), x)
	v := b.fn.newValue(OpMathUnary, x.dtype, x)
	v.mathFn = fn
	return b.emit(v)
}

func (b *Builder) math2(fn MathFn, x, y *Value) *Value {
	b.checkFloat(fn.String(), x, y)
	b.checkSame(fn.String(), x, y)
	v := b.fn.newValue(OpMathBinary, x.dtype, x, y)
	v.mathFn = fn
	return b.emit(v)
}

func (b *Builder) Exp(x *Value) *Value   { return b.math1(MathExp, x) }
func (b *Builder) Log(x *Value) *Value   { return b.math1(MathLog, x) }
func (b *Builder) Sin(x *Value) *Value   { return b.math1(MathSin, x) }
func (b *Builder) Cos(x *Value) *Value   { return b.math1(MathCos, x) }
func (b *Builder) Tanh(x *Value) *Value  { return b.math1(MathTanh, x) }
func (b *Builder) Sqrt(x *Value) *Value  { return b.math1(MathSqrt, x) }
func (b *Builder) Fabs(x *Value) *Value  { return b.math1(MathFabs, x) }
func (b *Builder) Floor(x *Value) *Value { return b.math1(MathFloor, x) }
func (b *Builder) Ceil(x *Value) *Value  { return b.math1(MathCeil, x) }

// Round rounds half away from zero.
func (b *Builder) Round(x *Value) *Value { return b.math1(MathRound, x) }

func (b *Builder) Pow(x, y *Value) *Value   { return b.math2(MathPow, x, y) }
func (b *Builder) Atan2(y, x *Value) *Value { return b.math2(MathAtan2, y, x) }

// Complex aggregates:

// Complex composes a complex value from float real and imaginary parts.
func (b *Builder) Complex(re, im *Value) *Value {
	b.checkSame("Complex", re, im)
	var dtype dtypes.DType
	switch re.dtype {
	case dtypes.Float32:
		dtype = dtypes.Complex64
	case dtypes.Float64:
		dtype = dtypes.Complex128
	default:
		exceptions.Panicf("ir: Complex requires Float32 or Float64 components, got %s", re.dtype)
	}
	return b.emit(b.fn.newValue(OpComplex, dtype, re, im))
}

func (b *Builder) complexComponent(op OpCode, what string, x *Value) *Value {
	var dtype dtypes.DType
	switch x.dtype {
	case dtypes.Complex64:
		dtype = dtypes.Float32
	case dtypes.Complex128:
		dtype = dtypes.Float64
	default:
		exceptions.Panicf("ir: %s requires a complex operand, got %s", what, x.dtype)
	}
	return b.emit(b.fn.newValue(op, dtype, x))
}

// Real extracts the real component of a complex value.
func (b *Builder) Real(x *Value) *Value { return b.complexComponent(OpReal, "Real", x) }

// Imag extracts the imaginary component of a complex value.
func (b *Builder) Imag(x *Value) *Value { return b.complexComponent(OpImag, "Imag", x) }

// Arrays and scratch slots:

func (b *Builder) checkArray(what string, array int) {
	if array < 0 || array >= len(b.fn.Arrays) {
		exceptions.Panicf("ir: %s of array #%d, function %q has %d arrays", what, array, b.fn.Name, len(b.fn.Arrays))
	}
}

func (b *Builder) checkOffset(what string, offset *Value) {
	if offset.dtype != dtypes.Int64 {
		exceptions.Panicf("ir: %s offset must be Int64, got %s", what, offset.dtype)
	}
}

// ArrayRead loads the element at the flat physical offset of array parameter
// #array. Offsets are Int64 and bounds-checked at execution time.
func (b *Builder) ArrayRead(array int, offset *Value) *Value {
	b.checkArray("ArrayRead", array)
	b.checkOffset("ArrayRead", offset)
	v := b.fn.newValue(OpArrayRead, b.fn.Arrays[array].Shape.DType, offset)
	v.array = array
	return b.emit(v)
}

// ArrayWrite stores value at the flat physical offset of array parameter
// #array.
func (b *Builder) ArrayWrite(array int, offset, value *Value) {
	b.checkArray("ArrayWrite", array)
	b.checkOffset("ArrayWrite", offset)
	if value.dtype != b.fn.Arrays[array].Shape.DType {
		exceptions.Panicf("ir: ArrayWrite of %s into array %q of %s",
			value.dtype, b.fn.Arrays[array].Name, b.fn.Arrays[array].Shape.DType)
	}
	v := b.fn.newValue(OpArrayWrite, dtypes.InvalidDType, offset, value)
	v.array = array
	b.emit(v)
}

// Alloca reserves a new scratch slot of dtype. Prefer WithScratch, which
// pools slots across emitters.
func (b *Builder) Alloca(dtype dtypes.DType) *Slot {
	return b.fn.newSlot(dtype, fmt.Sprintf("scratch%d", len(b.fn.slots)))
}

// Load reads the current value of a scratch slot.
func (b *Builder) Load(slot *Slot) *Value {
	v := b.fn.newValue(OpSlotLoad, slot.dtype)
	v.slot = slot
	return b.emit(v)
}

// Store writes value into a scratch slot.
func (b *Builder) Store(slot *Slot, value *Value) {
	if value.dtype != slot.dtype {
		exceptions.Panicf("ir: Store of %s into %s slot %q", value.dtype, slot.dtype, slot.name)
	}
	v := b.fn.newValue(OpSlotStore, dtypes.InvalidDType, value)
	v.slot = slot
	b.emit(v)
}

// WithScratch runs body with a scratch slot of dtype, reusing a released slot
// of the same dtype when one exists. The slot is released again when body
// returns, error or not.
func (b *Builder) WithScratch(dtype dtypes.DType, body func(slot *Slot) error) error {
	var slot *Slot
	for _, s := range b.fn.slots {
		if !s.inUse && s.dtype == dtype {
			slot = s
			break
		}
	}
	if slot == nil {
		slot = b.Alloca(dtype)
	}
	slot.inUse = true
	defer func() { slot.inUse = false }()
	return body(slot)
}

// Control flow:

// If runs then with the cursor inside a block executed when cond's low bit is
// set, and orElse (which may be nil) inside the complementary block.
func (b *Builder) If(cond *Value, then, orElse func() error) error {
	if cond.dtype != dtypes.Bool {
		exceptions.Panicf("ir: If condition must be Bool, got %s", cond.dtype)
	}
	v := b.fn.newValue(OpIf, dtypes.InvalidDType, cond)
	v.then = &Block{}
	b.emit(v)

	saved := b.cur
	b.cur = v.then
	err := then()
	b.cur = saved
	if err != nil {
		return err
	}

	if orElse == nil {
		return nil
	}
	v.orElse = &Block{}
	b.cur = v.orElse
	err = orElse()
	b.cur = saved
	return err
}

// For emits a loop running body for each Int64 induction value in
// [start, end) advancing by step. The induction value passed to body is only
// meaningful inside the loop body.
func (b *Builder) For(name string, start, end, step *Value, body func(iv *Value) error) error {
	for _, v := range []*Value{start, end, step} {
		if v.dtype != dtypes.Int64 {
			exceptions.Panicf("ir: For %q bounds must be Int64, got %s", name, v.dtype)
		}
	}
	v := b.fn.newValue(OpFor, dtypes.Int64, start, end, step)
	v.name = name
	v.body = &Block{}
	b.emit(v)

	saved := b.cur
	b.cur = v.body
	err := body(v)
	b.cur = saved
	return err
}

// Unreachable marks a point that must never execute. The interpreter fails
// with an error when it is reached.
func (b *Builder) Unreachable() {
	b.emit(b.fn.newValue(OpUnreachable, dtypes.InvalidDType))
}
