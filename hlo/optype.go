// Package hlo defines the operation descriptors consumed by the elemental code
// generator: the OpType enum, the per-opcode static parameters (padding, gather
// and dot dimension numbers, precision-reduction bit counts, random
// distribution) and cheap structural validation of an operation against its
// operand shapes.
//
// An Op describes a single node of a computation: its opcode, the shapes of its
// operands, and the shape of its result. How operand elements are produced is
// not part of the descriptor; the elemental package receives one element
// generator per operand alongside the Op.
package hlo

// OpType is an enum of all operations an Op can describe.
//
// The set covers the element-wise generators implemented by the elemental
// package: scalar arithmetic (unary, binary), comparisons, bit manipulation,
// shape-manipulating index transforms, the indexed/structural family
// (Select/Clamp/Gather/Pad/Concatenate/DynamicSlice/DynamicUpdateSlice/Dot),
// precision reduction and random-number generation.
type OpType int

//go:generate go tool enumer -type=OpType -trimprefix=OpType -output=gen_optype_enumer.go optype.go

const (
	OpTypeInvalid OpType = iota

	// Unary operations.

	OpTypeAbs
	OpTypeCeil
	OpTypeClz
	OpTypeConvert
	OpTypeCopy
	OpTypeCos
	OpTypeExp
	OpTypeExpm1
	OpTypeFloor
	OpTypeImag
	OpTypeIsFinite
	OpTypeLog
	OpTypeLog1p
	OpTypeNegate
	OpTypeNot
	OpTypeReal
	OpTypeRound
	OpTypeSign
	OpTypeSin
	OpTypeTanh

	// Binary operations.

	OpTypeAdd
	OpTypeAnd
	OpTypeAtan2
	OpTypeComplex
	OpTypeDivide
	OpTypeEq
	OpTypeGe
	OpTypeGt
	OpTypeLe
	OpTypeLt
	OpTypeMaximum
	OpTypeMinimum
	OpTypeMultiply
	OpTypeNe
	OpTypeOr
	OpTypePower
	OpTypeRemainder
	OpTypeShiftLeft
	OpTypeShiftRightArithmetic
	OpTypeShiftRightLogical
	OpTypeSubtract
	OpTypeXor

	// Everything else: type changes, index transforms, indexed/structural
	// operations, precision reduction and random generation.

	OpTypeBitcast
	OpTypeBitcastConvert
	OpTypeBroadcast
	OpTypeClamp
	OpTypeConcatenate
	OpTypeDot
	OpTypeDynamicSlice
	OpTypeDynamicUpdateSlice
	OpTypeGather
	OpTypePad
	OpTypeReducePrecision
	OpTypeReshape
	OpTypeReverse
	OpTypeRng
	OpTypeSelect
	OpTypeSlice
	OpTypeTranspose

	// OpTypeLast should always be kept the last, it is used as a counter/marker for OpType.
	OpTypeLast
)
