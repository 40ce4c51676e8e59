// Package elemental builds element generators for tensor operations: given an
// operation descriptor (hlo.Op) and one generator per operand,
// MakeElementGenerator returns a function that emits the scalar computation of
// any single result element into an ir.Func under construction.
//
// Working per element keeps producers and consumers fusable. The consumer of
// an Add never materializes the Add's full result; it invokes the Add's
// generator at exactly the indices it needs, which in turn invokes the operand
// generators, recursively, yielding one fused scalar expression per output
// element. The kernel package is the minimal driver: one loop over the result
// elements, each iteration evaluating the root generator at its index.
//
// MakeElementGenerator is cheap and emits no code itself; IR is emitted when
// the returned generator runs. Recoverable failures (unsupported opcode/dtype
// combinations, descriptors violating a cheap precondition) come back as
// errors wrapping ErrUnimplemented or ErrInvalidArgument. Malformed graphs
// that hlo.Validate would have rejected are programming-contract violations
// here and panic via exceptions.Panicf.
package elemental

import (
	"math/rand"
	"sync"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Generator emits the IR computing one element of an operation's result and
// returns the emitted scalar value.
//
// The builder is passed explicitly on every invocation: a generator may be
// called many times, from different control-flow blocks of the same function,
// and must not cache emitted values across calls. Generators that branch move
// the builder's cursor, so callers must not assume the insertion point is
// unchanged after invoking one.
type Generator func(b *ir.Builder, index ir.Index) (*ir.Value, error)

// SeedSource draws 64-bit values used as random key material by Rng
// operations. Implementations must be safe for concurrent use when shared
// across emitters.
type SeedSource interface {
	RandomNew64() uint64
}

// lockedSource is a SeedSource over math/rand guarded by a mutex, so
// concurrent compilation units can share it.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (s *lockedSource) RandomNew64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Uint64()
}

// fallbackSource serves every Emitter without an explicit Seed or Sequence.
// The fixed seed keeps unseeded compilations reproducible within a process.
var fallbackSource SeedSource = &lockedSource{rng: rand.New(rand.NewSource(42))}

// Emitter builds element generators. The zero value is ready to use.
//
// The fields configure Rng operations only. Seed is the run-configured global
// seed; zero means one fallback value is drawn per Rng operation instead.
// State is the compilation unit's random sequence counter, owned by the
// surrounding graph and only read here. Sequence supplies the per-operation
// key material; nil falls back to the process-wide locked source.
type Emitter struct {
	Seed     uint64
	State    uint64
	Sequence SeedSource
}

// MakeElementGenerator returns a Generator producing op's result elements,
// given one Generator per operand (in operand order).
//
// Opcodes outside the dispatch table fail here with ErrUnimplemented; gaps
// specific to an element type (erfinv beyond single precision, ReducePrecision
// beyond Float32, complex Maximum) surface when the generator is invoked, as
// the routing happens on operand values.
func (e *Emitter) MakeElementGenerator(op *hlo.Op, operands []Generator) (Generator, error) {
	if op == nil {
		return nil, invalidArgf("nil operation")
	}
	if len(operands) != op.NumOperands() {
		return nil, invalidArgf("operation %s requires %d operand generators, got %d",
			op, op.NumOperands(), len(operands))
	}
	if klog.V(2).Enabled() {
		klog.Infof("elemental: building generator for %s", op)
	}

	switch {
	case op.Type == hlo.OpTypeConvert || op.Type == hlo.OpTypeBitcastConvert ||
		hlo.StandardUnaryOperations.Has(op.Type):
		return e.makeUnaryGenerator(op, operands[0])
	case op.Type == hlo.OpTypeComplex || hlo.StandardBinaryOperations.Has(op.Type) ||
		hlo.ComparisonOperations.Has(op.Type):
		return e.makeBinaryGenerator(op, operands[0], operands[1]), nil
	}

	switch op.Type {
	case hlo.OpTypeSelect:
		return makeSelectGenerator(op, operands), nil
	case hlo.OpTypeClamp:
		return makeClampGenerator(op, operands), nil
	case hlo.OpTypeBroadcast, hlo.OpTypeReshape, hlo.OpTypeTranspose,
		hlo.OpTypeReverse, hlo.OpTypeSlice, hlo.OpTypeBitcast:
		return makeIndexTransformGenerator(op, operands[0]), nil
	case hlo.OpTypeConcatenate:
		return makeConcatenateGenerator(op, operands), nil
	case hlo.OpTypeDynamicSlice:
		return makeDynamicSliceGenerator(op, operands), nil
	case hlo.OpTypeDynamicUpdateSlice:
		return makeDynamicUpdateSliceGenerator(op, operands), nil
	case hlo.OpTypeGather:
		return makeGatherGenerator(op, operands), nil
	case hlo.OpTypePad:
		return makePadGenerator(op, operands), nil
	case hlo.OpTypeDot:
		return makeDotGenerator(op, operands), nil
	case hlo.OpTypeReducePrecision:
		return makeReducePrecisionGenerator(op, operands[0]), nil
	case hlo.OpTypeRng:
		return e.makeRngGenerator(op, operands), nil
	}
	return nil, unimplementedf("operation %s has no element generator", op.Type)
}

// operandSourceIndex derives which operand element a pointwise operation reads
// to produce the result element at index. Scalar operands take an empty
// index. Operands shaped and laid out exactly like the result reuse index as
// is, linear component included. Otherwise each size-1 operand axis pins to
// zero while the remaining axes carry the result component. Re-derived per
// invocation, never cached on the Op.
func operandSourceIndex(b *ir.Builder, index ir.Index, result, operand shapes.Shape) ir.Index {
	if operand.IsScalar() {
		return ir.Index{}
	}
	if operand.EqualDimensions(result) && operand.EqualLayout(result) {
		return index
	}
	if operand.Rank() != result.Rank() {
		exceptions.Panicf("elemental: operand %s is not broadcast-compatible with result %s", operand, result)
	}
	comps := make([]*ir.Value, operand.Rank())
	for axis, dim := range operand.Dimensions {
		switch {
		case dim == result.Dimensions[axis]:
			comps[axis] = index.Components[axis]
		case dim == 1:
			comps[axis] = b.ConstIndex(0)
		default:
			exceptions.Panicf("elemental: operand %s is not broadcast-compatible with result %s", operand, result)
		}
	}
	return ir.Index{Components: comps}
}
