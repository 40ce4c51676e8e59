package hlo

import (
	"fmt"
	"strings"

	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/exceptions"
)

// Op is an immutable descriptor of one computation step: the opcode, the
// shapes of the ordered operands, the shape of the result, and the static
// parameters the opcode requires. It carries no element data; element access
// happens through the generators given to the elemental package.
//
// Which static parameter fields an opcode reads:
//
//   - Dimensions: Broadcast (operand axis -> result axis map), Transpose
//     (permutation: result axis i reads operand axis Dimensions[i]), Reverse
//     (the reversed axes), Concatenate (Dimensions[0] is the concatenation axis).
//   - Starts, Strides: Slice (per-axis start offset and stride).
//   - Padding: Pad (per-axis low/high/interior counts).
//   - Gather: Gather dimension numbers.
//   - Dot: Dot contracting dimension numbers.
//   - ExponentBits, MantissaBits: ReducePrecision.
//   - Distribution: Rng.
//
// Ops are created once per node by the surrounding graph and never mutated
// during code generation.
type Op struct {
	Type     OpType
	Operands []shapes.Shape
	Shape    shapes.Shape

	Dimensions   []int
	Starts       []int
	Strides      []int
	Padding      []PadDimension
	Gather       *GatherDimensions
	Dot          *DotDimensions
	ExponentBits int
	MantissaBits int
	Distribution RandomDistribution
}

// PadDimension configures the padding of one axis: Low and High count padding
// elements added before and after the operand data, Interior counts padding
// elements inserted between every two adjacent operand elements. Negative
// Low/High are allowed (they trim), Interior must be >= 0.
type PadDimension struct {
	Low, High, Interior int
}

// GatherDimensions is the dimension-number metadata of a Gather operation.
//
// OffsetDims lists the result axes that index into the gathered window.
// CollapsedSliceDims lists operand axes whose window is a degenerate size-1
// slice, removed from the result (must be sorted ascending). StartIndexMap
// maps each component of the index vector to the operand axis it offsets.
// IndexVectorDim is the axis of the indices operand that holds the index
// vector; it may equal the indices operand's rank, in which case the index
// vector is implicit with a single component.
type GatherDimensions struct {
	OffsetDims         []int
	CollapsedSliceDims []int
	StartIndexMap      []int
	IndexVectorDim     int
}

// DotDimensions names the single contracting axis of each Dot operand.
type DotDimensions struct {
	LhsContracting int
	RhsContracting int
}

// RandomDistribution selects what distribution an Rng operation draws from.
type RandomDistribution int

//go:generate go tool enumer -type=RandomDistribution -trimprefix=Rng -output=gen_randomdistribution_enumer.go op.go

const (
	RngInvalid RandomDistribution = iota
	RngUniform
	RngNormal
)

// NumOperands returns the number of operands.
func (op *Op) NumOperands() int { return len(op.Operands) }

// Operand returns the shape of operand i. Out-of-range access is a
// programming-contract violation and panics.
func (op *Op) Operand(i int) shapes.Shape {
	if i < 0 || i >= len(op.Operands) {
		exceptions.Panicf("op %s has %d operands, operand #%d requested", op.Type, len(op.Operands), i)
	}
	return op.Operands[i]
}

// String implements fmt.Stringer.
func (op *Op) String() string {
	parts := make([]string, 0, len(op.Operands))
	for _, operand := range op.Operands {
		parts = append(parts, operand.String())
	}
	return fmt.Sprintf("%s(%s) -> %s", op.Type, strings.Join(parts, ", "), op.Shape)
}
