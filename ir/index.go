package ir

import (
	"github.com/gomlx/exceptions"

	"github.com/elemental-ml/elemental/types"
	"github.com/elemental-ml/elemental/types/shapes"
)

// Index is a multi-dimensional element position under construction: one Int64
// Value per logical axis, most-major first, plus an optional Linear component
// holding the logical row-major linearization of the same position. Linear is
// layout-independent; physical buffer offsets come from Linearize.
//
// Index values are cheap and copied freely; the derivation methods return new
// indices and never mutate the receiver.
type Index struct {
	Components []*Value
	Linear     *Value
}

// Rank returns the number of axis components.
func (idx Index) Rank() int { return len(idx.Components) }

// Delinearize splits a logical row-major linear index into per-axis
// components for shape, dividing out dimensions from the most-minor axis up.
// The returned index keeps linear as its Linear component.
func Delinearize(b *Builder, linear *Value, shape shapes.Shape) Index {
	rank := shape.Rank()
	comps := make([]*Value, rank)
	remaining := linear
	for axis := rank - 1; axis >= 0; axis-- {
		if axis == 0 {
			comps[axis] = remaining
			break
		}
		dim := b.ConstIndex(int64(shape.Dimensions[axis]))
		comps[axis] = b.URem(remaining, dim)
		remaining = b.UDiv(remaining, dim)
	}
	return Index{Components: comps, Linear: linear}
}

// linearizeLogical emits the row-major linearization of comps for the given
// dimensions.
func linearizeLogical(b *Builder, comps []*Value, dimensions []int) *Value {
	if len(comps) != len(dimensions) {
		exceptions.Panicf("ir: linearizing a rank-%d index for %d dimensions", len(comps), len(dimensions))
	}
	var linear *Value
	for axis, comp := range comps {
		if linear == nil {
			linear = comp
		} else {
			linear = b.Add(b.Mul(linear, b.ConstIndex(int64(dimensions[axis]))), comp)
		}
	}
	if linear == nil {
		return b.ConstIndex(0)
	}
	return linear
}

// Linearize emits the physical flat offset of idx within a buffer of shape,
// honoring the shape's layout. When the layout is the default row-major one
// and the index carries a Linear component, that component is reused as-is.
func (idx Index) Linearize(b *Builder, shape shapes.Shape) *Value {
	if idx.Rank() != shape.Rank() {
		exceptions.Panicf("ir: linearizing a rank-%d index against shape %s", idx.Rank(), shape)
	}
	if shape.IsScalar() {
		return b.ConstIndex(0)
	}
	if shape.HasDefaultLayout() && idx.Linear != nil {
		return idx.Linear
	}
	strides := shape.Strides()
	var offset *Value
	for axis, comp := range idx.Components {
		term := comp
		if strides[axis] != 1 {
			term = b.Mul(comp, b.ConstIndex(int64(strides[axis])))
		}
		if offset == nil {
			offset = term
		} else {
			offset = b.Add(offset, term)
		}
	}
	return offset
}

// SourceOfBroadcast maps a result index back through a broadcast whose
// dimensions attribute maps operand axis i to result axis dimensions[i].
func (idx Index) SourceOfBroadcast(dimensions []int) Index {
	comps := make([]*Value, len(dimensions))
	for operandAxis, resultAxis := range dimensions {
		comps[operandAxis] = idx.Components[resultAxis]
	}
	return Index{Components: comps}
}

// SourceOfSlice maps a result index back through a strided slice:
// source = start + index*stride per axis.
func (idx Index) SourceOfSlice(b *Builder, starts, strides []int) Index {
	comps := make([]*Value, idx.Rank())
	for axis, comp := range idx.Components {
		source := comp
		if strides[axis] != 1 {
			source = b.Mul(source, b.ConstIndex(int64(strides[axis])))
		}
		if starts[axis] != 0 {
			source = b.Add(source, b.ConstIndex(int64(starts[axis])))
		}
		comps[axis] = source
	}
	return Index{Components: comps}
}

// SourceOfTranspose maps a result index back through a transpose whose
// permutation gives, for each result axis, the operand axis it draws from.
func (idx Index) SourceOfTranspose(permutation []int) Index {
	comps := make([]*Value, idx.Rank())
	for resultAxis, operandAxis := range permutation {
		comps[operandAxis] = idx.Components[resultAxis]
	}
	return Index{Components: comps}
}

// SourceOfReverse mirrors the components of the listed axes:
// source = dim-1-index.
func (idx Index) SourceOfReverse(b *Builder, shape shapes.Shape, axes []int) Index {
	reversed := types.SetWith(axes...)
	comps := make([]*Value, idx.Rank())
	for axis, comp := range idx.Components {
		if reversed.Has(axis) {
			comps[axis] = b.Sub(b.ConstIndex(int64(shape.Dimensions[axis]-1)), comp)
		} else {
			comps[axis] = comp
		}
	}
	return Index{Components: comps}
}

// SourceOfReshape maps a result index back through a reshape. Reshapes
// preserve the logical row-major order, so this linearizes against the result
// dimensions and splits against the operand's; layouts play no part.
func (idx Index) SourceOfReshape(b *Builder, operand, result shapes.Shape) Index {
	linear := idx.Linear
	if linear == nil {
		linear = linearizeLogical(b, idx.Components, result.Dimensions)
	}
	return Delinearize(b, linear, operand)
}

// SourceOfBitcast maps a result index back through a layout bitcast, which
// preserves the physical order instead of the logical one: the physical
// offset is computed against the result's layout and split per the operand's,
// most-minor physical axis first.
func (idx Index) SourceOfBitcast(b *Builder, operand, result shapes.Shape) Index {
	offset := idx.Linearize(b, result)
	layout := operand.LayoutOrDefault()
	comps := make([]*Value, operand.Rank())
	remaining := offset
	for pos, axis := range layout {
		if pos == len(layout)-1 {
			comps[axis] = remaining
			break
		}
		dim := b.ConstIndex(int64(operand.Dimensions[axis]))
		comps[axis] = b.URem(remaining, dim)
		remaining = b.UDiv(remaining, dim)
	}
	out := Index{Components: comps}
	if operand.HasDefaultLayout() {
		out.Linear = offset
	}
	return out
}
