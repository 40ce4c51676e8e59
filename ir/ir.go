// Package ir defines a small scalar intermediate representation used as the
// target of element-wise code generation.
//
// A Func owns a list of flat array parameters, a pool of scratch slots and a
// tree of structured blocks. Values are instructions: each names the operation
// that produces it, its data type and its arguments. There are no phi nodes;
// values that must cross control flow go through scratch slots, and the only
// control-flow constructs are structured If/For regions built with closures.
//
// The package also ships a reference interpreter (see Func.Run) so generated
// code can be executed directly against Go slices. Integer values are W-bit
// patterns with wrapping arithmetic, where W is the data type's bit width.
// Float16 arithmetic rounds every intermediate result back to half precision.
// BFloat16 is a storage-only type: it can be loaded, stored, selected and
// bitcast, but arithmetic on it is a programming error.
package ir

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/elemental-ml/elemental/types/shapes"
)

//go:generate go tool enumer -type=OpCode -trimprefix=Op -output=gen_opcode_enumer.go ir.go

// OpCode identifies the operation computed by a Value.
type OpCode int

const (
	OpInvalid OpCode = iota

	// OpConst holds a literal bit pattern.
	OpConst

	// Integer arithmetic. All of it wraps modulo 2^W.
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor
	OpNot
	OpClz

	// Float arithmetic.
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem
	OpFNeg

	OpICmp
	OpFCmp
	OpSelect

	// Conversions.
	OpTrunc
	OpZExt
	OpSExt
	OpFPTrunc
	OpFPExt
	OpSIToFP
	OpUIToFP
	OpFPToSI
	OpFPToUI
	OpBitcast

	// Math primitives, see MathFn.
	OpMathUnary
	OpMathBinary

	// Complex aggregates.
	OpComplex
	OpReal
	OpImag

	// Array and scratch-slot accesses.
	OpArrayRead
	OpArrayWrite
	OpSlotLoad
	OpSlotStore

	// Structured control flow. An OpFor value doubles as its own induction
	// variable: inside the body it reads as the current Int64 iteration.
	OpIf
	OpFor
	OpUnreachable

	OpLast
)

// IntPredicate selects the comparison computed by Builder.ICmp.
type IntPredicate int

const (
	IntEQ IntPredicate = iota
	IntNE
	IntSLT
	IntSLE
	IntSGT
	IntSGE
	IntULT
	IntULE
	IntUGT
	IntUGE
)

var intPredicateNames = [...]string{"eq", "ne", "slt", "sle", "sgt", "sge", "ult", "ule", "ugt", "uge"}

func (p IntPredicate) String() string {
	if p < 0 || int(p) >= len(intPredicateNames) {
		return "invalid"
	}
	return intPredicateNames[p]
}

// FloatPredicate selects the comparison computed by Builder.FCmp. Ordered
// predicates (O-prefixed) are false when either operand is NaN; unordered
// ones (U-prefixed) are true.
type FloatPredicate int

const (
	FloatOEQ FloatPredicate = iota
	FloatOGT
	FloatOGE
	FloatOLT
	FloatOLE
	FloatONE
	FloatUNE
	FloatUNO
)

var floatPredicateNames = [...]string{"oeq", "ogt", "oge", "olt", "ole", "one", "une", "uno"}

func (p FloatPredicate) String() string {
	if p < 0 || int(p) >= len(floatPredicateNames) {
		return "invalid"
	}
	return floatPredicateNames[p]
}

// MathFn names a math primitive emitted by OpMathUnary or OpMathBinary.
// The backend (here, the interpreter) is assumed to provide them; they are
// not decomposed further.
type MathFn int

const (
	MathExp MathFn = iota
	MathLog
	MathSin
	MathCos
	MathTanh
	MathSqrt
	MathFabs
	MathFloor
	MathCeil
	MathRound // round half away from zero
	MathPow
	MathAtan2
)

var mathFnNames = [...]string{"exp", "log", "sin", "cos", "tanh", "sqrt", "fabs", "floor", "ceil", "round", "pow", "atan2"}

func (fn MathFn) String() string {
	if fn < 0 || int(fn) >= len(mathFnNames) {
		return "invalid"
	}
	return mathFnNames[fn]
}

// IsBinary reports whether fn takes two arguments.
func (fn MathFn) IsBinary() bool { return fn == MathPow || fn == MathAtan2 }

// Value is one instruction of a Func. Values are created exclusively through
// Builder methods and are immutable afterwards.
type Value struct {
	id    int
	op    OpCode
	dtype dtypes.DType
	args  []*Value

	// Operation payloads; which one is meaningful depends on op.
	bits   [2]uint64 // OpConst: lo (and hi for the complex imaginary part)
	ipred  IntPredicate
	fpred  FloatPredicate
	mathFn MathFn
	slot   *Slot
	array  int // parameter ordinal for OpArrayRead/OpArrayWrite
	name   string

	// Nested regions for OpIf (then, orElse) and OpFor (body).
	then   *Block
	orElse *Block
	body   *Block
}

// Op returns the opcode that computes this value.
func (v *Value) Op() OpCode { return v.op }

// DType returns the data type of the value this instruction produces.
// Statement-like instructions (stores, If, For, Unreachable) report
// InvalidDType, except For, which reads as its Int64 induction variable.
func (v *Value) DType() dtypes.DType { return v.dtype }

// Block is a sequence of instructions executed in order.
type Block struct {
	ops []*Value
}

// Slot is a scratch memory cell used to carry a value across control flow,
// in place of phi nodes. Slots are allocated from the Func and may be pooled
// through Builder.WithScratch.
type Slot struct {
	id    int
	dtype dtypes.DType
	name  string
	inUse bool
}

// DType returns the data type stored in the slot.
func (s *Slot) DType() dtypes.DType { return s.dtype }

// ArrayParam declares one flat array bound at execution time. The shape gives
// the element data type, the logical dimensions and the physical layout; the
// bound slice must hold exactly Shape.Size() elements.
type ArrayParam struct {
	Name  string
	Shape shapes.Shape
}

// Func is one generated function: array parameters, scratch slots and a root
// block. A Func is built through a single Builder and executed with Run.
type Func struct {
	Name   string
	Arrays []ArrayParam

	entry      *Block
	slots      []*Slot
	nextValue  int
	hasBuilder bool
}

// NewFunc creates an empty function with the given array parameters.
func NewFunc(name string, arrays ...ArrayParam) *Func {
	for i, arr := range arrays {
		if !arr.Shape.Ok() {
			exceptions.Panicf("ir.NewFunc(%q): array parameter #%d (%q) has an invalid shape", name, i, arr.Name)
		}
	}
	return &Func{
		Name:   name,
		Arrays: arrays,
		entry:  &Block{},
	}
}

// NumValues returns how many instructions the function holds, nested regions
// included.
func (fn *Func) NumValues() int { return fn.nextValue }

func (fn *Func) newValue(op OpCode, dtype dtypes.DType, args ...*Value) *Value {
	v := &Value{id: fn.nextValue, op: op, dtype: dtype, args: args}
	fn.nextValue++
	return v
}

func (fn *Func) newSlot(dtype dtypes.DType, name string) *Slot {
	s := &Slot{id: len(fn.slots), dtype: dtype, name: name}
	fn.slots = append(fn.slots, s)
	return s
}
