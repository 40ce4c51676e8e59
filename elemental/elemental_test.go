package elemental

import (
	"fmt"
	"reflect"
	"slices"
	"testing"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	Bool = dtypes.Bool
	I8   = dtypes.Int8
	I16  = dtypes.Int16
	I32  = dtypes.Int32
	I64  = dtypes.Int64
	U8   = dtypes.Uint8
	U16  = dtypes.Uint16
	U32  = dtypes.Uint32
	U64  = dtypes.Uint64
	F16  = dtypes.Float16
	BF16 = dtypes.BFloat16
	F32  = dtypes.Float32
	F64  = dtypes.Float64
	C64  = dtypes.Complex64
	C128 = dtypes.Complex128
)

func MS(dtype dtypes.DType, dimensions ...int) shapes.Shape {
	return shapes.Make(dtype, dimensions...)
}

func unaryOp(opType hlo.OpType, operand, result shapes.Shape) *hlo.Op {
	return &hlo.Op{Type: opType, Operands: []shapes.Shape{operand}, Shape: result}
}

func binaryOp(opType hlo.OpType, lhs, rhs, result shapes.Shape) *hlo.Op {
	return &hlo.Op{Type: opType, Operands: []shapes.Shape{lhs, rhs}, Shape: result}
}

// tryEvalOp lowers op the way the kernel package does -- leaf generators
// reading the operand arrays, one loop over the result elements -- and runs
// it. operandData holds one flat slice per operand; the returned value is the
// result's flat slice.
func tryEvalOp(e *Emitter, op *hlo.Op, operandData ...any) (any, error) {
	generators := make([]Generator, op.NumOperands())
	for i := range generators {
		array := i
		operandShape := op.Operand(i)
		generators[i] = func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
			return b.ArrayRead(array, index.Linearize(b, operandShape)), nil
		}
	}
	generator, err := e.MakeElementGenerator(op, generators)
	if err != nil {
		return nil, err
	}
	arrays := make([]ir.ArrayParam, 0, op.NumOperands()+1)
	for i, operand := range op.Operands {
		arrays = append(arrays, ir.ArrayParam{Name: fmt.Sprintf("operand%d", i), Shape: operand})
	}
	arrays = append(arrays, ir.ArrayParam{Name: "result", Shape: op.Shape})
	fn := ir.NewFunc("eval", arrays...)
	b := ir.NewBuilder(fn)
	resultArray := op.NumOperands()
	err = b.For("element", b.ConstIndex(0), b.ConstIndex(int64(op.Shape.Size())), b.ConstIndex(1),
		func(iv *ir.Value) error {
			index := ir.Delinearize(b, iv, op.Shape)
			value, err := generator(b, index)
			if err != nil {
				return err
			}
			b.ArrayWrite(resultArray, index.Linearize(b, op.Shape), value)
			return nil
		})
	if err != nil {
		return nil, err
	}
	size := op.Shape.Size()
	resultData := reflect.MakeSlice(reflect.SliceOf(op.Shape.DType.GoType()), size, size).Interface()
	if err := fn.Run(append(slices.Clone(operandData), resultData)...); err != nil {
		return nil, err
	}
	return resultData, nil
}

func evalOp(t *testing.T, e *Emitter, op *hlo.Op, operandData ...any) any {
	t.Helper()
	result, err := tryEvalOp(e, op, operandData...)
	require.NoError(t, err)
	return result
}

// evalUnary applies opType to one scalar.
func evalUnary[In, Out dtypes.Supported](t *testing.T, opType hlo.OpType, x In) Out {
	t.Helper()
	var out Out
	op := unaryOp(opType,
		MS(dtypes.FromGoType(reflect.TypeOf(x))),
		MS(dtypes.FromGoType(reflect.TypeOf(out))))
	return evalOp(t, &Emitter{}, op, []In{x}).([]Out)[0]
}

// evalBinary applies opType to one pair of scalars.
func evalBinary[In, Out dtypes.Supported](t *testing.T, opType hlo.OpType, lhs, rhs In) Out {
	t.Helper()
	var out Out
	op := binaryOp(opType,
		MS(dtypes.FromGoType(reflect.TypeOf(lhs))),
		MS(dtypes.FromGoType(reflect.TypeOf(lhs))),
		MS(dtypes.FromGoType(reflect.TypeOf(out))))
	return evalOp(t, &Emitter{}, op, []In{lhs}, []In{rhs}).([]Out)[0]
}

func TestMakeElementGeneratorErrors(t *testing.T) {
	e := &Emitter{}

	_, err := e.MakeElementGenerator(nil, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.MakeElementGenerator(unaryOp(hlo.OpTypeNegate, MS(F32), MS(F32)), nil)
	require.ErrorIs(t, err, ErrInvalidArgument, "operand generator count must match the operand count")

	noop := func(b *ir.Builder, index ir.Index) (*ir.Value, error) { return nil, nil }
	_, err = e.MakeElementGenerator(unaryOp(hlo.OpTypeInvalid, MS(F32), MS(F32)), []Generator{noop})
	require.ErrorIs(t, err, ErrUnimplemented)

	// BitcastConvert's width requirement is checkable without a builder, so it
	// fails before any generator runs.
	_, err = e.MakeElementGenerator(unaryOp(hlo.OpTypeBitcastConvert, MS(F32), MS(F64)), []Generator{noop})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestImplicitBroadcast(t *testing.T) {
	e := &Emitter{}

	// Scalar rhs reaches every result element.
	op := binaryOp(hlo.OpTypeAdd, MS(I32, 2, 3), MS(I32), MS(I32, 2, 3))
	out := evalOp(t, e, op, []int32{1, 2, 3, 4, 5, 6}, []int32{10}).([]int32)
	assert.Equal(t, []int32{11, 12, 13, 14, 15, 16}, out)

	// A size-1 axis pins to zero, the full axis carries the result component.
	op = binaryOp(hlo.OpTypeMultiply, MS(I32, 2, 3), MS(I32, 2, 1), MS(I32, 2, 3))
	out = evalOp(t, e, op, []int32{1, 2, 3, 4, 5, 6}, []int32{10, 100}).([]int32)
	assert.Equal(t, []int32{10, 20, 30, 400, 500, 600}, out)

	// Both operands may broadcast at once, on different axes.
	op = binaryOp(hlo.OpTypeAdd, MS(I32, 2, 1), MS(I32, 1, 3), MS(I32, 2, 3))
	out = evalOp(t, e, op, []int32{10, 20}, []int32{1, 2, 3}).([]int32)
	assert.Equal(t, []int32{11, 12, 13, 21, 22, 23}, out)
}

func TestBroadcastIncompatiblePanics(t *testing.T) {
	e := &Emitter{}
	// Rank mismatches and non-1 dimension mismatches are malformed graphs:
	// hlo.Validate rejects them, and the emitters treat them as contract
	// violations.
	op := binaryOp(hlo.OpTypeAdd, MS(I32, 2, 3), MS(I32, 3), MS(I32, 2, 3))
	require.Panics(t, func() {
		_, _ = tryEvalOp(e, op, []int32{1, 2, 3, 4, 5, 6}, []int32{1, 2, 3})
	})

	op = binaryOp(hlo.OpTypeAdd, MS(I32, 2, 3), MS(I32, 2, 2), MS(I32, 2, 3))
	require.Panics(t, func() {
		_, _ = tryEvalOp(e, op, []int32{1, 2, 3, 4, 5, 6}, []int32{1, 2, 3, 4})
	})
}

// Operations whose operand matches the result shape exactly reuse the target
// index, so a non-default operand layout must still read the right element.
func TestOperandLayoutsRespected(t *testing.T) {
	e := &Emitter{}
	operand := MS(I32, 2, 3).WithLayout(0, 1)
	op := unaryOp(hlo.OpTypeNegate, operand, MS(I32, 2, 3))
	// Column-major data for the logical matrix {{1,2,3},{4,5,6}}.
	out := evalOp(t, e, op, []int32{1, 4, 2, 5, 3, 6}).([]int32)
	assert.Equal(t, []int32{-1, -2, -3, -4, -5, -6}, out)
}
