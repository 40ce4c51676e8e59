package hlo

import (
	"slices"

	"github.com/elemental-ml/elemental/types"
	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Operation categories, used to check operand dtypes cheaply before any code
// generation starts. The elemental emitters re-assert the same contracts as
// internal invariants; Validate exists so callers can get an error instead of
// a panic for graphs built from untrusted descriptions.
var (
	// BitwiseOperations operate on integers (or booleans, where noted) bit by bit.
	BitwiseOperations = types.SetWith(
		OpTypeAnd,
		OpTypeOr,
		OpTypeXor,
		OpTypeNot,
		OpTypeClz,
		OpTypeShiftLeft,
		OpTypeShiftRightArithmetic,
		OpTypeShiftRightLogical,
	)

	// BooleanAllowedOperations are the bitwise operations that also accept Bool
	// (predicate) operands.
	BooleanAllowedOperations = types.SetWith(
		OpTypeAnd,
		OpTypeOr,
		OpTypeXor,
		OpTypeNot,
	)

	// ShiftOperations never accept booleans and require matching integer operands.
	ShiftOperations = types.SetWith(
		OpTypeShiftLeft,
		OpTypeShiftRightArithmetic,
		OpTypeShiftRightLogical,
	)

	// NumberOperations accept any number dtype: integer, float or complex.
	NumberOperations = types.SetWith(
		OpTypeAdd,
		OpTypeSubtract,
		OpTypeMultiply,
		OpTypeDivide,
		OpTypePower,
		OpTypeRemainder,
		OpTypeAbs,
		OpTypeSign,
		OpTypeNegate,
	)

	// FloatOperations operate only on floats (not on complex numbers).
	FloatOperations = types.SetWith(
		OpTypeAtan2,
		OpTypeCeil,
		OpTypeFloor,
		OpTypeRound,
		OpTypeIsFinite,
	)

	// FloatOrComplexOperations accept floats or complex numbers.
	FloatOrComplexOperations = types.SetWith(
		OpTypeExp,
		OpTypeExpm1,
		OpTypeLog,
		OpTypeLog1p,
		OpTypeCos,
		OpTypeSin,
		OpTypeTanh,
		OpTypeReal,
		OpTypeImag,
	)

	// ComparisonOperations take two operands of matching dtype and return Bool.
	ComparisonOperations = types.SetWith(
		OpTypeEq,
		OpTypeNe,
		OpTypeGe,
		OpTypeGt,
		OpTypeLe,
		OpTypeLt,
	)

	// StandardUnaryOperations have a single operand and preserve its dimensions.
	StandardUnaryOperations = types.SetWith(
		OpTypeAbs,
		OpTypeCeil,
		OpTypeClz,
		OpTypeCopy,
		OpTypeCos,
		OpTypeExp,
		OpTypeExpm1,
		OpTypeFloor,
		OpTypeImag,
		OpTypeIsFinite,
		OpTypeLog,
		OpTypeLog1p,
		OpTypeNegate,
		OpTypeNot,
		OpTypeReal,
		OpTypeRound,
		OpTypeSign,
		OpTypeSin,
		OpTypeTanh,
	)

	// StandardBinaryOperations have two operands combined element-wise under the
	// implicit-broadcast rule.
	StandardBinaryOperations = types.SetWith(
		OpTypeAdd,
		OpTypeAnd,
		OpTypeAtan2,
		OpTypeDivide,
		OpTypeMaximum,
		OpTypeMinimum,
		OpTypeMultiply,
		OpTypeOr,
		OpTypePower,
		OpTypeRemainder,
		OpTypeShiftLeft,
		OpTypeShiftRightArithmetic,
		OpTypeShiftRightLogical,
		OpTypeSubtract,
		OpTypeXor,
	)
)

// Validate checks op's operand count, operand dtypes and static parameters
// against what its opcode requires. It returns a descriptive error for the
// first violation found, or nil if the descriptor is structurally sound.
//
// Validate does not re-derive result shapes: the result shape is part of the
// descriptor and only its consistency is checked.
func Validate(op *Op) error {
	if op == nil {
		return errors.New("nil operation")
	}
	if !op.Shape.Ok() {
		return errors.Errorf("operation %s has an invalid result shape", op.Type)
	}
	for i, operand := range op.Operands {
		if !operand.Ok() {
			return errors.Errorf("operation %s has an invalid shape for operand #%d", op.Type, i)
		}
	}

	switch {
	case StandardUnaryOperations.Has(op.Type):
		return validateUnary(op)
	case StandardBinaryOperations.Has(op.Type):
		return validateBinary(op)
	case ComparisonOperations.Has(op.Type):
		return validateComparison(op)
	}

	switch op.Type {
	case OpTypeConvert:
		return validateOperandCountAndDims(op, 1, true)
	case OpTypeBitcastConvert:
		if err := validateOperandCountAndDims(op, 1, true); err != nil {
			return err
		}
		if op.Operand(0).DType.Size() != op.Shape.DType.Size() {
			return errors.Errorf("BitcastConvert from %s to %s changes the bit width (%d versus %d bits)",
				op.Operand(0).DType, op.Shape.DType, op.Operand(0).DType.Size()*8, op.Shape.DType.Size()*8)
		}
		return nil
	case OpTypeComplex:
		return validateComplexCompose(op)
	case OpTypeSelect:
		return validateSelect(op)
	case OpTypeClamp:
		return validateClamp(op)
	case OpTypeConcatenate:
		return validateConcatenate(op)
	case OpTypeBroadcast:
		return validateBroadcast(op)
	case OpTypeReshape, OpTypeBitcast:
		if err := validateOperandCount(op, 1); err != nil {
			return err
		}
		if op.Operand(0).Size() != op.Shape.Size() {
			return errors.Errorf("%s must preserve the element count, got %s with %d elements reshaped to %s with %d",
				op.Type, op.Operand(0), op.Operand(0).Size(), op.Shape, op.Shape.Size())
		}
		return nil
	case OpTypeTranspose:
		return validateTranspose(op)
	case OpTypeReverse:
		return validateReverse(op)
	case OpTypeSlice:
		return validateSlice(op)
	case OpTypeDynamicSlice:
		return validateDynamicSlice(op)
	case OpTypeDynamicUpdateSlice:
		return validateDynamicUpdateSlice(op)
	case OpTypeGather:
		return validateGather(op)
	case OpTypePad:
		return validatePad(op)
	case OpTypeDot:
		return validateDot(op)
	case OpTypeReducePrecision:
		return validateReducePrecision(op)
	case OpTypeRng:
		return validateRng(op)
	}
	return errors.Errorf("operation %s is not known to Validate", op.Type)
}

func validateOperandCount(op *Op, want int) error {
	if len(op.Operands) != want {
		return errors.Errorf("operation %s requires %d operands, got %d", op.Type, want, len(op.Operands))
	}
	return nil
}

func validateOperandCountAndDims(op *Op, want int, sameDims bool) error {
	if err := validateOperandCount(op, want); err != nil {
		return err
	}
	if sameDims && !op.Operand(0).EqualDimensions(op.Shape) {
		return errors.Errorf("operation %s must preserve the operand dimensions, got %s -> %s", op.Type, op.Operand(0), op.Shape)
	}
	return nil
}

func checkDTypeCategory(opType OpType, dtype dtypes.DType) error {
	if BitwiseOperations.Has(opType) {
		allowed := dtype.IsInt() || (dtype == dtypes.Bool && BooleanAllowedOperations.Has(opType))
		if !allowed {
			return errors.Errorf("bitwise operation %s must have an integer (Int8, Uint8, Int32, ...) data type as input, got %s", opType, dtype)
		}
		if ShiftOperations.Has(opType) && !dtype.IsInt() {
			return errors.Errorf("shift operation %s must have an integer data type as input, got %s", opType, dtype)
		}
		return nil
	}
	if FloatOperations.Has(opType) && !dtype.IsFloat() {
		return errors.Errorf("float operation %s must have a float (Float32, Float64, ...) data type as input, got %s", opType, dtype)
	}
	if FloatOrComplexOperations.Has(opType) && !(dtype.IsFloat() || dtype.IsComplex()) {
		return errors.Errorf("float/complex operation %s must have a float or complex (Float32, Complex64, ...) data type as input, got %s", opType, dtype)
	}
	if NumberOperations.Has(opType) && !(dtype.IsInt() || dtype.IsFloat() || dtype.IsComplex()) {
		return errors.Errorf("numeric operation %s must have a number (Int32, Float32, Complex64, ...) data type as input, got %s", opType, dtype)
	}
	return nil
}

func validateUnary(op *Op) error {
	if err := validateOperandCount(op, 1); err != nil {
		return err
	}
	if !op.Operand(0).EqualDimensions(op.Shape) {
		return errors.Errorf("unary operation %s must preserve the operand dimensions, got %s -> %s", op.Type, op.Operand(0), op.Shape)
	}
	return checkDTypeCategory(op.Type, op.Operand(0).DType)
}

// broadcastCompatible implements the implicit-broadcast rule used for
// pointwise operand indexing: scalars broadcast to anything, otherwise ranks
// match and every axis dimension is either equal or 1 on the operand side.
func broadcastCompatible(operand, result shapes.Shape) bool {
	if operand.IsScalar() {
		return true
	}
	if operand.Rank() != result.Rank() {
		return false
	}
	for axis, dim := range operand.Dimensions {
		if dim != result.Dimensions[axis] && dim != 1 {
			return false
		}
	}
	return true
}

func validateBinary(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	lhs, rhs := op.Operand(0), op.Operand(1)
	if lhs.DType != rhs.DType {
		return errors.Errorf("data types (DType) for binary operation %s must match, got %s and %s", op.Type, lhs, rhs)
	}
	if err := checkDTypeCategory(op.Type, lhs.DType); err != nil {
		return err
	}
	for i, operand := range op.Operands {
		if !broadcastCompatible(operand, op.Shape) {
			return errors.Errorf("operand #%d of %s is not broadcast-compatible with the result, got %s versus %s",
				i, op.Type, operand, op.Shape)
		}
	}
	return nil
}

func validateComparison(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	lhs, rhs := op.Operand(0), op.Operand(1)
	if lhs.DType != rhs.DType {
		return errors.Errorf("data types (DType) for comparison %s must match, got %s and %s", op.Type, lhs, rhs)
	}
	if op.Shape.DType != dtypes.Bool {
		return errors.Errorf("comparison %s must produce Bool, got result %s", op.Type, op.Shape)
	}
	for i, operand := range op.Operands {
		if !broadcastCompatible(operand, op.Shape) {
			return errors.Errorf("operand #%d of %s is not broadcast-compatible with the result, got %s versus %s",
				i, op.Type, operand, op.Shape)
		}
	}
	return nil
}

func validateComplexCompose(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	re, im := op.Operand(0), op.Operand(1)
	if re.DType != im.DType || !re.DType.IsFloat() {
		return errors.Errorf("Complex requires two float operands of the same dtype, got %s and %s", re, im)
	}
	if !op.Shape.DType.IsComplex() {
		return errors.Errorf("Complex must produce a complex result, got %s", op.Shape)
	}
	return nil
}

func validateSelect(op *Op) error {
	if err := validateOperandCount(op, 3); err != nil {
		return err
	}
	if op.Operand(0).DType != dtypes.Bool {
		return errors.Errorf("Select predicate must be Bool, got %s", op.Operand(0))
	}
	for i := 1; i <= 2; i++ {
		if op.Operand(i).DType != op.Shape.DType {
			return errors.Errorf("Select branch operand #%d dtype must match the result, got %s versus %s",
				i, op.Operand(i), op.Shape)
		}
	}
	for i := range op.Operands {
		if !broadcastCompatible(op.Operand(i), op.Shape) {
			return errors.Errorf("operand #%d of Select is not broadcast-compatible with the result, got %s versus %s",
				i, op.Operand(i), op.Shape)
		}
	}
	return nil
}

func validateClamp(op *Op) error {
	if err := validateOperandCount(op, 3); err != nil {
		return err
	}
	for i := range op.Operands {
		if op.Operand(i).DType != op.Shape.DType {
			return errors.Errorf("Clamp operand #%d dtype must match the result, got %s versus %s", i, op.Operand(i), op.Shape)
		}
		if !broadcastCompatible(op.Operand(i), op.Shape) {
			return errors.Errorf("operand #%d of Clamp is not broadcast-compatible with the result, got %s versus %s",
				i, op.Operand(i), op.Shape)
		}
	}
	if op.Shape.DType.IsComplex() {
		return errors.Errorf("Clamp is not defined for complex dtypes, got %s", op.Shape)
	}
	return nil
}

func validateConcatenate(op *Op) error {
	if len(op.Operands) == 0 {
		return errors.Errorf("Concatenate requires at least one operand")
	}
	if len(op.Dimensions) != 1 {
		return errors.Errorf("Concatenate requires Dimensions to hold the concatenation axis, got %v", op.Dimensions)
	}
	axis := op.Dimensions[0]
	if axis < 0 || axis >= op.Shape.Rank() {
		return errors.Errorf("Concatenate axis %d out-of-range for result %s", axis, op.Shape)
	}
	total := 0
	for i, operand := range op.Operands {
		if operand.DType != op.Shape.DType {
			return errors.Errorf("Concatenate operand #%d dtype must match the result, got %s versus %s", i, operand, op.Shape)
		}
		if operand.Rank() != op.Shape.Rank() {
			return errors.Errorf("Concatenate operand #%d rank must match the result, got %s versus %s", i, operand, op.Shape)
		}
		for a, dim := range operand.Dimensions {
			if a != axis && dim != op.Shape.Dimensions[a] {
				return errors.Errorf("Concatenate operand #%d dimension of axis #%d must match the result, got %s versus %s",
					i, a, operand, op.Shape)
			}
		}
		total += operand.Dimensions[axis]
	}
	if total != op.Shape.Dimensions[axis] {
		return errors.Errorf("Concatenate operand extents along axis %d sum to %d, result %s wants %d",
			axis, total, op.Shape, op.Shape.Dimensions[axis])
	}
	return nil
}

func validateBroadcast(op *Op) error {
	if err := validateOperandCount(op, 1); err != nil {
		return err
	}
	operand := op.Operand(0)
	if len(op.Dimensions) != operand.Rank() {
		return errors.Errorf("Broadcast requires one entry in Dimensions per operand axis, got %v for operand %s",
			op.Dimensions, operand)
	}
	for operandAxis, resultAxis := range op.Dimensions {
		if resultAxis < 0 || resultAxis >= op.Shape.Rank() {
			return errors.Errorf("Broadcast maps operand axis %d to result axis %d, out-of-range for result %s",
				operandAxis, resultAxis, op.Shape)
		}
		if operand.Dimensions[operandAxis] != op.Shape.Dimensions[resultAxis] {
			return errors.Errorf("Broadcast operand axis %d (dimension %d) does not match result axis %d of %s",
				operandAxis, operand.Dimensions[operandAxis], resultAxis, op.Shape)
		}
	}
	return nil
}

func validateTranspose(op *Op) error {
	if err := validateOperandCount(op, 1); err != nil {
		return err
	}
	operand := op.Operand(0)
	if len(op.Dimensions) != operand.Rank() {
		return errors.Errorf("Transpose requires a full permutation in Dimensions, got %v for operand %s", op.Dimensions, operand)
	}
	seen := make([]bool, operand.Rank())
	for resultAxis, operandAxis := range op.Dimensions {
		if operandAxis < 0 || operandAxis >= operand.Rank() || seen[operandAxis] {
			return errors.Errorf("Transpose permutation %v is not a permutation of the operand axes of %s", op.Dimensions, operand)
		}
		seen[operandAxis] = true
		if op.Shape.Dimensions[resultAxis] != operand.Dimensions[operandAxis] {
			return errors.Errorf("Transpose result axis %d must have the dimension of operand axis %d, got %s -> %s",
				resultAxis, operandAxis, operand, op.Shape)
		}
	}
	return nil
}

func validateReverse(op *Op) error {
	if err := validateOperandCountAndDims(op, 1, true); err != nil {
		return err
	}
	for _, axis := range op.Dimensions {
		if axis < 0 || axis >= op.Shape.Rank() {
			return errors.Errorf("Reverse axis %d out-of-range for %s", axis, op.Shape)
		}
	}
	return nil
}

func validateSlice(op *Op) error {
	if err := validateOperandCount(op, 1); err != nil {
		return err
	}
	operand := op.Operand(0)
	rank := operand.Rank()
	if len(op.Starts) != rank || len(op.Strides) != rank {
		return errors.Errorf("Slice requires one start and one stride per axis, got starts=%v strides=%v for operand %s",
			op.Starts, op.Strides, operand)
	}
	if op.Shape.Rank() != rank {
		return errors.Errorf("Slice must preserve the rank, got %s -> %s", operand, op.Shape)
	}
	for axis := range rank {
		start, stride := op.Starts[axis], op.Strides[axis]
		if stride <= 0 {
			return errors.Errorf("Slice stride of axis #%d must be positive, got %d", axis, stride)
		}
		if start < 0 || start >= operand.Dimensions[axis] {
			return errors.Errorf("Slice start of axis #%d out-of-range, got %d for operand %s", axis, start, operand)
		}
		last := start + (op.Shape.Dimensions[axis]-1)*stride
		if last >= operand.Dimensions[axis] {
			return errors.Errorf("Slice of axis #%d reads up to index %d, out-of-range for operand %s", axis, last, operand)
		}
	}
	return nil
}

func validateDynamicSlice(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	operand, starts := op.Operand(0), op.Operand(1)
	if operand.DType != op.Shape.DType {
		return errors.Errorf("DynamicSlice operand dtype must match the result, got %s versus %s", operand, op.Shape)
	}
	if !starts.DType.IsInt() || starts.Rank() != 1 || starts.Dimensions[0] != operand.Rank() {
		return errors.Errorf("DynamicSlice starts operand must be a rank-1 integer tensor with one entry per operand axis, got %s", starts)
	}
	if operand.Rank() != op.Shape.Rank() {
		return errors.Errorf("DynamicSlice must preserve the rank, got %s -> %s", operand, op.Shape)
	}
	for axis := range operand.Rank() {
		if op.Shape.Dimensions[axis] > operand.Dimensions[axis] {
			return errors.Errorf("DynamicSlice window of axis #%d larger than the operand, got %s from %s", axis, op.Shape, operand)
		}
	}
	return nil
}

func validateDynamicUpdateSlice(op *Op) error {
	if err := validateOperandCount(op, 3); err != nil {
		return err
	}
	operand, update, starts := op.Operand(0), op.Operand(1), op.Operand(2)
	if !operand.Equal(op.Shape) {
		return errors.Errorf("DynamicUpdateSlice result must have the base operand's shape, got %s -> %s", operand, op.Shape)
	}
	if update.DType != operand.DType {
		return errors.Errorf("DynamicUpdateSlice update dtype must match the base operand, got %s versus %s", update, operand)
	}
	if update.Rank() != operand.Rank() {
		return errors.Errorf("DynamicUpdateSlice update rank must match the base operand, got %s versus %s", update, operand)
	}
	for axis := range operand.Rank() {
		if update.Dimensions[axis] > operand.Dimensions[axis] {
			return errors.Errorf("DynamicUpdateSlice update of axis #%d larger than the base operand, got %s into %s",
				axis, update, operand)
		}
	}
	if !starts.DType.IsInt() || starts.Rank() != 1 || starts.Dimensions[0] != operand.Rank() {
		return errors.Errorf("DynamicUpdateSlice starts operand must be a rank-1 integer tensor with one entry per operand axis, got %s", starts)
	}
	return nil
}

func validateGather(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	if op.Gather == nil {
		return errors.Errorf("Gather requires dimension numbers")
	}
	operand, indices := op.Operand(0), op.Operand(1)
	if operand.DType != op.Shape.DType {
		return errors.Errorf("Gather operand dtype must match the result, got %s versus %s", operand, op.Shape)
	}
	if !indices.DType.IsInt() {
		return errors.Errorf("Gather indices operand must be integer, got %s", indices)
	}
	g := op.Gather
	if !slices.IsSorted(g.CollapsedSliceDims) {
		return errors.Errorf("Gather collapsed slice dimensions must be sorted, got %v", g.CollapsedSliceDims)
	}
	if g.IndexVectorDim < 0 || g.IndexVectorDim > indices.Rank() {
		return errors.Errorf("Gather index vector dimension %d out-of-range for indices %s", g.IndexVectorDim, indices)
	}
	if len(g.StartIndexMap) == 0 {
		return errors.Errorf("Gather requires a non-empty start index map")
	}
	for _, operandAxis := range g.StartIndexMap {
		if operandAxis < 0 || operandAxis >= operand.Rank() {
			return errors.Errorf("Gather start index map entry %d out-of-range for operand %s", operandAxis, operand)
		}
	}
	if len(g.OffsetDims)+len(g.CollapsedSliceDims) != operand.Rank() {
		return errors.Errorf("Gather offset dimensions (%v) plus collapsed dimensions (%v) must cover the %d operand axes",
			g.OffsetDims, g.CollapsedSliceDims, operand.Rank())
	}
	for _, resultAxis := range g.OffsetDims {
		if resultAxis < 0 || resultAxis >= op.Shape.Rank() {
			return errors.Errorf("Gather offset dimension %d out-of-range for result %s", resultAxis, op.Shape)
		}
	}
	return nil
}

func validatePad(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	operand, padValue := op.Operand(0), op.Operand(1)
	if !padValue.IsScalar() || padValue.DType != operand.DType {
		return errors.Errorf("Pad value operand must be a scalar of the operand dtype, got %s for operand %s", padValue, operand)
	}
	if len(op.Padding) != operand.Rank() {
		return errors.Errorf("Pad requires one configuration per axis, got %d for operand %s", len(op.Padding), operand)
	}
	for axis, pad := range op.Padding {
		if pad.Interior < 0 {
			return errors.Errorf("Pad interior padding of axis #%d must be >= 0, got %d", axis, pad.Interior)
		}
		operandDim := operand.Dimensions[axis]
		want := pad.Low + pad.High + operandDim + (operandDim-1)*pad.Interior
		if op.Shape.Dimensions[axis] != want {
			return errors.Errorf("Pad result dimension of axis #%d must be %d, got %s", axis, want, op.Shape)
		}
	}
	return nil
}

func validateDot(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	if op.Dot == nil {
		return errors.Errorf("Dot requires contracting dimension numbers")
	}
	lhs, rhs := op.Operand(0), op.Operand(1)
	if lhs.DType != rhs.DType || lhs.DType != op.Shape.DType {
		return errors.Errorf("Dot operands and result must share a dtype, got %s, %s -> %s", lhs, rhs, op.Shape)
	}
	if op.Dot.LhsContracting < 0 || op.Dot.LhsContracting >= lhs.Rank() {
		return errors.Errorf("Dot lhs contracting axis %d out-of-range for %s", op.Dot.LhsContracting, lhs)
	}
	if op.Dot.RhsContracting < 0 || op.Dot.RhsContracting >= rhs.Rank() {
		return errors.Errorf("Dot rhs contracting axis %d out-of-range for %s", op.Dot.RhsContracting, rhs)
	}
	if lhs.Dimensions[op.Dot.LhsContracting] != rhs.Dimensions[op.Dot.RhsContracting] {
		return errors.Errorf("Dot contracting extents must match, got %s axis %d versus %s axis %d",
			lhs, op.Dot.LhsContracting, rhs, op.Dot.RhsContracting)
	}
	if op.Shape.Rank() != lhs.Rank()+rhs.Rank()-2 {
		return errors.Errorf("Dot result rank must be %d, got %s", lhs.Rank()+rhs.Rank()-2, op.Shape)
	}
	return nil
}

func validateReducePrecision(op *Op) error {
	if err := validateOperandCountAndDims(op, 1, true); err != nil {
		return err
	}
	if !op.Operand(0).DType.IsFloat() {
		return errors.Errorf("ReducePrecision requires a float operand, got %s", op.Operand(0))
	}
	if op.ExponentBits < 1 || op.ExponentBits > 8 {
		return errors.Errorf("ReducePrecision exponent bits must be in [1, 8], got %d", op.ExponentBits)
	}
	if op.MantissaBits < 0 || op.MantissaBits > 23 {
		return errors.Errorf("ReducePrecision mantissa bits must be in [0, 23], got %d", op.MantissaBits)
	}
	return nil
}

func validateRng(op *Op) error {
	if err := validateOperandCount(op, 2); err != nil {
		return err
	}
	if !op.Distribution.IsARandomDistribution() || op.Distribution == RngInvalid {
		return errors.Errorf("Rng requires a valid distribution, got %s", op.Distribution)
	}
	for i := range op.Operands {
		if op.Operand(i).DType != op.Shape.DType {
			return errors.Errorf("Rng parameter operand #%d dtype must match the result, got %s versus %s",
				i, op.Operand(i), op.Shape)
		}
	}
	return nil
}
