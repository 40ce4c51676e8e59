// Package kernel turns single tensor operations into runnable loops.
//
// The elemental package produces the scalar code for one element; kernel
// wraps that code in a loop over every element of the result, reading
// operands from flat buffers and writing the result buffer at the physical
// offsets their layouts dictate. It is the simplest possible driver for the
// element generators, meant for execution of small graphs and for testing;
// it performs no fusion across operations and no parallelism.
package kernel

import (
	"fmt"
	"slices"
	"strings"

	"github.com/elemental-ml/elemental/elemental"
	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Kernel is one compiled operation. Compiling is pure construction, so a
// kernel may be run any number of times and concurrently.
type Kernel struct {
	fn       *ir.Func
	operands []shapes.Shape
	result   shapes.Shape
}

// Compile lowers op into a single loop visiting every result element in
// logical row-major order. Operand elements are read at the physical offsets
// of the operand shapes' layouts.
func Compile(emitter *elemental.Emitter, op *hlo.Op) (*Kernel, error) {
	if err := hlo.Validate(op); err != nil {
		return nil, err
	}
	generators := make([]elemental.Generator, op.NumOperands())
	for i := range generators {
		array := i
		operandShape := op.Operand(i)
		generators[i] = func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
			return b.ArrayRead(array, index.Linearize(b, operandShape)), nil
		}
	}
	generator, err := emitter.MakeElementGenerator(op, generators)
	if err != nil {
		return nil, err
	}

	arrays := make([]ir.ArrayParam, 0, op.NumOperands()+1)
	for i, operand := range op.Operands {
		arrays = append(arrays, ir.ArrayParam{Name: fmt.Sprintf("operand%d", i), Shape: operand})
	}
	arrays = append(arrays, ir.ArrayParam{Name: "result", Shape: op.Shape})
	fn := ir.NewFunc(strings.ToLower(op.Type.String()), arrays...)
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
	if klog.V(2).Enabled() {
		klog.Infof("kernel: compiled %s -> %s, %d IR values", op.Type, op.Shape, fn.NumValues())
	}
	return &Kernel{fn: fn, operands: slices.Clone(op.Operands), result: op.Shape}, nil
}

// Run executes the kernel with one buffer per operand, filling result. The
// buffers' dtypes and dimensions must match the shapes the kernel was
// compiled for; offsets always come from the compiled shapes, so the layout
// annotation of the buffers themselves is irrelevant.
func (k *Kernel) Run(result *Buffer, operands ...*Buffer) error {
	if len(operands) != len(k.operands) {
		return errors.Errorf("kernel %q takes %d operand buffers, got %d", k.fn.Name, len(k.operands), len(operands))
	}
	arrays := make([]any, 0, len(operands)+1)
	for i, buf := range operands {
		if !buf.shape.Equal(k.operands[i]) {
			return errors.Errorf("kernel %q operand #%d must have shape %s, got %s", k.fn.Name, i, k.operands[i], buf.shape)
		}
		arrays = append(arrays, buf.flat)
	}
	if !result.shape.Equal(k.result) {
		return errors.Errorf("kernel %q result must have shape %s, got %s", k.fn.Name, k.result, result.shape)
	}
	arrays = append(arrays, result.flat)
	return k.fn.Run(arrays...)
}

// Eval compiles op and runs it once against operands, returning a freshly
// allocated result buffer. Compile once and reuse the kernel when the same
// operation runs repeatedly.
func Eval(emitter *elemental.Emitter, op *hlo.Op, operands ...*Buffer) (*Buffer, error) {
	k, err := Compile(emitter, op)
	if err != nil {
		return nil, err
	}
	result := NewBuffer(op.Shape)
	if err := k.Run(result, operands...); err != nil {
		return nil, err
	}
	return result, nil
}
