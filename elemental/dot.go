package elemental

import (
	"slices"

	"github.com/elemental-ml/elemental/hlo"
	"github.com/elemental-ml/elemental/ir"
	"github.com/gomlx/gopjrt/dtypes"
)

// makeDotGenerator emits an inner-product loop: the target index splits into
// the lhs batch components followed by the rhs ones, the loop induction
// variable is spliced in at each side's contracting axis, and the products
// accumulate in a scratch slot.
func makeDotGenerator(op *hlo.Op, operands []Generator) Generator {
	lhsShape, _ := op.Operand(0), op.Operand(1)
	lhsContracting := op.Dot.LhsContracting
	rhsContracting := op.Dot.RhsContracting
	extent := int64(lhsShape.Dimensions[lhsContracting])
	dtype := op.Shape.DType
	return func(b *ir.Builder, index ir.Index) (*ir.Value, error) {
		var result *ir.Value
		err := b.WithScratch(dtype, func(accum *ir.Slot) error {
			b.Store(accum, b.Zero(dtype))
			err := b.For("dot", b.ConstIndex(0), b.ConstIndex(extent), b.ConstIndex(1), func(iv *ir.Value) error {
				lhsComps := slices.Clone(index.Components[:lhsShape.Rank()-1])
				lhsComps = slices.Insert(lhsComps, lhsContracting, iv)
				lhsValue, err := operands[0](b, ir.Index{Components: lhsComps})
				if err != nil {
					return err
				}
				rhsComps := slices.Clone(index.Components[lhsShape.Rank()-1:])
				rhsComps = slices.Insert(rhsComps, rhsContracting, iv)
				rhsValue, err := operands[1](b, ir.Index{Components: rhsComps})
				if err != nil {
					return err
				}
				updated, err := emitDotAccumulate(b, b.Load(accum), lhsValue, rhsValue)
				if err != nil {
					return err
				}
				b.Store(accum, updated)
				return nil
			})
			if err != nil {
				return err
			}
			result = b.Load(accum)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func emitDotAccumulate(b *ir.Builder, accum, lhs, rhs *ir.Value) (*ir.Value, error) {
	dtype := accum.DType()
	switch {
	case dtype.IsInt():
		return b.Add(accum, b.Mul(lhs, rhs)), nil
	case dtype == dtypes.BFloat16:
		sum := b.FAdd(decodeBF16(b, accum), b.FMul(decodeBF16(b, lhs), decodeBF16(b, rhs)))
		return encodeBF16(b, sum), nil
	case dtype.IsFloat():
		return b.FAdd(accum, b.FMul(lhs, rhs)), nil
	case dtype.IsComplex():
		prod := emitComplexMul(b, lhs, rhs)
		return b.Complex(
			b.FAdd(b.Real(accum), b.Real(prod)),
			b.FAdd(b.Imag(accum), b.Imag(prod))), nil
	}
	return nil, unimplementedf("Dot on %s", dtype)
}
