package elemental

import (
	"slices"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// makeIndexTransformGenerator covers the operations that move data without
// computing on it: the result element at index is the operand element at a
// shape-derived source index.
func makeIndexTransformGenerator(op *hlo.Op, operand Generator) Generator {
	operandShape := op.Operand(0)
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		var source ir.Index
		switch op.Type {
		case hlo.OpTypeBroadcast:
			source = index.SourceOfBroadcast(op.Dimensions)
		case hlo.OpTypeReshape:
			source = index.SourceOfReshape(b, operandShape, op.Shape)
		case hlo.OpTypeTranspose:
			source = index.SourceOfTranspose(op.Dimensions)
		case hlo.OpTypeReverse:
			source = index.SourceOfReverse(b, operandShape, op.Dimensions)
		case hlo.OpTypeSlice:
			source = index.SourceOfSlice(b, op.Starts, op.Strides)
		case hlo.OpTypeBitcast:
			source = index.SourceOfBitcast(b, operandShape, op.Shape)
		default:
			exceptions.Panicf("elemental: %s is not an index transform", op.Type)
		}
		return operand(b, source)
	}
}

// storeInto returns an If-branch body running gen at index and storing the
// produced value into slot.
func storeInto(b *ir.Builder, slot *ir.Slot, gen Generator, index ir.Index) func() error {
	return func() error {
		v, err := gen(b, index)
		if err != nil {
			return err
		}
		b.Store(slot, v)
		return nil
	}
}

// makeSelectGenerator evaluates all three operands at their broadcast-derived
// indices and selects on the predicate's low bit.
func makeSelectGenerator(op *hlo.Op, operands []Generator) Generator {
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		pred, err := operands[0](b, operandSourceIndex(b, index, op.Shape, op.Operand(0)))
		if err != nil {
			return nil, err
		}
		onTrue, err := operands[1](b, operandSourceIndex(b, index, op.Shape, op.Operand(1)))
		if err != nil {
			return nil, err
		}
		onFalse, err := operands[2](b, operandSourceIndex(b, index, op.Shape, op.Operand(2)))
		if err != nil {
			return nil, err
		}
		return b.Select(pred, onTrue, onFalse), nil
	}
}

// makeClampGenerator computes min(max_value, max(min_value, x)) with the
// min/max of the result dtype's category.
func makeClampGenerator(op *hlo.Op, operands []Generator) Generator {
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		minValue, err := operands[0](b, operandSourceIndex(b, index, op.Shape, op.Operand(0)))
		if err != nil {
			return nil, err
		}
		x, err := operands[1](b, operandSourceIndex(b, index, op.Shape, op.Operand(1)))
		if err != nil {
			return nil, err
		}
		maxValue, err := operands[2](b, operandSourceIndex(b, index, op.Shape, op.Operand(2)))
		if err != nil {
			return nil, err
		}
		dtype := op.Shape.DType
		switch {
		case dtype == dtypes.Bool || dtype.IsInt():
			signed := dtype.IsInt() && !dtype.IsUnsigned()
			return emitIntMin(b, maxValue, emitIntMax(b, minValue, x, signed), signed), nil
		case dtype == dtypes.BFloat16:
			clamped := emitFloatMin(b, decodeBF16(b, maxValue),
				emitFloatMax(b, decodeBF16(b, minValue), decodeBF16(b, x)))
			return encodeBF16(b, clamped), nil
		case dtype.IsFloat():
			return emitFloatMin(b, maxValue, emitFloatMax(b, minValue, x)), nil
		}
		return nil, unimplementedf("Clamp on %s", dtype)
	}
}

// makeConcatenateGenerator walks the operands in order along the
// concatenation axis: the first operand whose extent exceeds the running axis
// component supplies the element, every miss subtracts its extent. The
// operands' extents sum to the result's, so the walk always hits; running off
// the end is a malformed graph.
func makeConcatenateGenerator(op *hlo.Op, operands []Generator) Generator {
	axis := op.Dimensions[0]
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		var result *ir.Value
		err := b.WithScratch(op.Shape.DType, func(slot *ir.Slot) error {
			var emitOperand func(i int, source ir.Index) error
			emitOperand = func(i int, source ir.Index) error {
				if i == len(operands) {
					b.Unreachable()
					return nil
				}
				bound := int64(op.Operand(i).Dimensions[axis])
				inOperand := b.ICmp(ir.IntSLT, source.Components[axis], b.ConstIndex(bound))
				return b.If(inOperand,
					storeInto(b, slot, operands[i], source),
					func() error {
						comps := slices.Clone(source.Components)
						comps[axis] = b.Sub(comps[axis], b.ConstIndex(bound))
						return emitOperand(i+1, ir.Index{Components: comps})
					})
			}
			if err := emitOperand(0, ir.Index{Components: slices.Clone(index.Components)}); err != nil {
				return err
			}
			result = b.Load(slot)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// readClampedStarts fetches one scalar per operand axis from the rank-1
// starts generator, widens it to Int64 with the starts dtype's signedness,
// and clamps it to [0, operand_dim - window_dim] so the window always stays
// inside the operand.
func readClampedStarts(b *ir.Builder, startsGen Generator, startsShape, operandShape, window shapes.Shape) ([]*ir.Value, error) {
	signed := !startsShape.DType.IsUnsigned()
	starts := make([]*ir.Value, operandShape.Rank())
	for axis := range starts {
		raw, err := startsGen(b, ir.Index{Components: []*ir.Value{b.ConstIndex(int64(axis))}})
		if err != nil {
			return nil, err
		}
		start := b.IntCast(raw, dtypes.Int64, signed)
		limit := b.ConstIndex(int64(operandShape.Dimensions[axis] - window.Dimensions[axis]))
		start = emitIntMax(b, b.ConstIndex(0), start, signed)
		starts[axis] = emitIntMin(b, limit, start, signed)
	}
	return starts, nil
}

// makeDynamicSliceGenerator reads a runtime start offset per axis from the
// starts operand and shifts the target index by the clamped offsets.
func makeDynamicSliceGenerator(op *hlo.Op, operands []Generator) Generator {
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		operandShape := op.Operand(0)
		starts, err := readClampedStarts(b, operands[1], op.Operand(1), operandShape, op.Shape)
		if err != nil {
			return nil, err
		}
		comps := make([]*ir.Value, operandShape.Rank())
		for axis := range comps {
			comps[axis] = b.Add(starts[axis], index.Components[axis])
		}
		return operands[0](b, ir.Index{Components: comps})
	}
}

// makeDynamicUpdateSliceGenerator returns the update element when the target
// index falls inside the update window placed at the clamped offsets, the
// base element otherwise.
func makeDynamicUpdateSliceGenerator(op *hlo.Op, operands []Generator) Generator {
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		operandShape, updateShape := op.Operand(0), op.Operand(1)
		starts, err := readClampedStarts(b, operands[2], op.Operand(2), operandShape, updateShape)
		if err != nil {
			return nil, err
		}
		inWindow := b.ConstBool(true)
		comps := make([]*ir.Value, updateShape.Rank())
		for axis := range comps {
			target := index.Components[axis]
			comps[axis] = b.Sub(target, starts[axis])
			windowEnd := b.Add(starts[axis], b.ConstIndex(int64(updateShape.Dimensions[axis])))
			inWindow = b.And(inWindow, b.And(
				b.ICmp(ir.IntSGE, target, starts[axis]),
				b.ICmp(ir.IntSLT, target, windowEnd)))
		}
		var result *ir.Value
		err = b.WithScratch(op.Shape.DType, func(slot *ir.Slot) error {
			if err := b.If(inWindow,
				storeInto(b, slot, operands[1], ir.Index{Components: comps}),
				storeInto(b, slot, operands[0], index)); err != nil {
				return err
			}
			result = b.Load(slot)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

// makeGatherGenerator stitches an operand index out of the target's window
// components and one clamped scalar read per index-vector component of the
// indices operand.
func makeGatherGenerator(op *hlo.Op, operands []Generator) Generator {
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		operandShape, indicesShape := op.Operand(0), op.Operand(1)
		g := op.Gather

		// Window part: collapsed operand axes pin to zero, the rest carry
		// the matching result offset-dim components. The window sizes bound
		// the clamp below.
		comps := make([]*ir.Value, operandShape.Rank())
		windowSizes := make([]int, operandShape.Rank())
		offsetDim := 0
		for axis := range comps {
			if slices.Contains(g.CollapsedSliceDims, axis) {
				comps[axis] = b.ConstIndex(0)
				windowSizes[axis] = 1
				continue
			}
			resultAxis := g.OffsetDims[offsetDim]
			offsetDim++
			comps[axis] = index.Components[resultAxis]
			windowSizes[axis] = op.Shape.Dimensions[resultAxis]
		}

		// The position of the index vector in the indices operand: the
		// result's batch components, with a slot inserted for the
		// index-vector axis unless that axis is degenerate.
		var indicesComps []*ir.Value
		for resultAxis := range op.Shape.Rank() {
			if !slices.Contains(g.OffsetDims, resultAxis) {
				indicesComps = append(indicesComps, index.Components[resultAxis])
			}
		}
		degenerate := g.IndexVectorDim == indicesShape.Rank()
		if !degenerate {
			indicesComps = slices.Insert(indicesComps, g.IndexVectorDim, (*ir.Value)(nil))
		}

		signed := !indicesShape.DType.IsUnsigned()
		addStart := func(component *ir.Value, operandAxis int) {
			start := b.IntCast(component, dtypes.Int64, signed)
			limit := b.ConstIndex(int64(operandShape.Dimensions[operandAxis] - windowSizes[operandAxis]))
			start = emitIntMax(b, b.ConstIndex(0), start, signed)
			start = emitIntMin(b, limit, start, signed)
			comps[operandAxis] = b.Add(comps[operandAxis], start)
		}
		if degenerate {
			component, err := operands[1](b, ir.Index{Components: indicesComps})
			if err != nil {
				return nil, err
			}
			addStart(component, g.StartIndexMap[0])
		} else {
			for i := range indicesShape.Dimensions[g.IndexVectorDim] {
				indicesComps[g.IndexVectorDim] = b.ConstIndex(int64(i))
				component, err := operands[1](b, ir.Index{Components: slices.Clone(indicesComps)})
				if err != nil {
					return nil, err
				}
				addStart(component, g.StartIndexMap[i])
			}
		}
		return operands[0](b, ir.Index{Components: comps})
	}
}

// makePadGenerator checks, axis by axis, whether the target position lands on
// an operand element rather than edge or interior padding, then reads either
// the transformed operand index or the scalar padding value.
func makePadGenerator(op *hlo.Op, operands []Generator) Generator {
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		operandShape := op.Operand(0)
		inBounds := b.ConstBool(true)
		comps := make([]*ir.Value, operandShape.Rank())
		for axis, pad := range op.Padding {
			stride := b.ConstIndex(int64(pad.Interior + 1))
			comp := b.Sub(index.Components[axis], b.ConstIndex(int64(pad.Low)))
			inBounds = b.And(inBounds, b.ICmp(ir.IntSGE, comp, b.ConstIndex(0)))
			inBounds = b.And(inBounds, b.ICmp(ir.IntEQ, b.ConstIndex(0), b.URem(comp, stride)))
			comp = b.SDiv(comp, stride)
			inBounds = b.And(inBounds, b.ICmp(ir.IntSLT, comp, b.ConstIndex(int64(operandShape.Dimensions[axis]))))
			comps[axis] = comp
		}
		var result *ir.Value
		err := b.WithScratch(op.Shape.DType, func(slot *ir.Slot) error {
			if err := b.If(inBounds,
				storeInto(b, slot, operands[0], ir.Index{Components: comps}),
				storeInto(b, slot, operands[1], ir.Index{})); err != nil {
				return err
			}
			result = b.Load(slot)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}
