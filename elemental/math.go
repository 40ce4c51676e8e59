package elemental

import (
	"github.com/elemental-ml/elemental/ir"
	"github.com/gomlx/gopjrt/dtypes"
)

// emitExpm1 computes e^x - 1. The direct form cancels catastrophically near
// zero, so |x| < 1e-5 switches to the Taylor form x + x²/2.
func emitExpm1(b *ir.Builder, x *ir.Value) *ir.Value {
	dtype := x.DType()
	one := b.ConstFloat(dtype, 1)
	direct := b.FSub(b.Exp(x), one)
	forSmall := b.FAdd(x, b.FMul(b.FMul(x, x), b.ConstFloat(dtype, 0.5)))
	isSmall := b.FCmp(ir.FloatOLT, b.Fabs(x), b.ConstFloat(dtype, 1e-5))
	return b.Select(isSmall, forSmall, direct)
}

// emitLog1p computes log(1+x), switching to the expansion x(1 - x/2) for
// |x| < 1e-4.
func emitLog1p(b *ir.Builder, x *ir.Value) *ir.Value {
	dtype := x.DType()
	one := b.ConstFloat(dtype, 1)
	direct := b.Log(b.FAdd(x, one))
	forSmall := b.FMul(b.FAdd(b.FMul(b.ConstFloat(dtype, -0.5), x), one), x)
	isSmall := b.FCmp(ir.FloatOLT, b.Fabs(x), b.ConstFloat(dtype, 1e-4))
	return b.Select(isSmall, forSmall, direct)
}

// Giles' single-precision coefficients for the inverse error function,
// evaluated in w - 2.5 when w = -log((1-x)(1+x)) stays below 5.
var erfInvCoefficientsSmallW = []float32{
	2.81022636e-08,
	3.43273939e-07,
	-3.5233877e-06,
	-4.39150654e-06,
	0.00021858087,
	-0.00125372503,
	-0.00417768164,
	0.246640727,
	1.50140941,
}

// The companion coefficients for w >= 5, evaluated in sqrt(w) - 3.
var erfInvCoefficientsLargeW = []float32{
	-0.000200214257,
	0.000100950558,
	0.00134934322,
	-0.00367342844,
	0.00573950773,
	-0.0076224613,
	0.00943887047,
	1.00167406,
	2.83297682,
}

// emitErfInv approximates the inverse error function with Giles' pair of
// degree-8 polynomials, single precision only. The two polynomial branches
// converge through a scratch slot.
func emitErfInv(b *ir.Builder, x *ir.Value) (*ir.Value, error) {
	if x.DType() != dtypes.Float32 {
		return nil, unimplementedf("erfinv on %s", x.DType())
	}
	polynomial := func(coefficients []float32, w *ir.Value) *ir.Value {
		p := b.ConstFloat(dtypes.Float32, float64(coefficients[0]))
		for _, coefficient := range coefficients[1:] {
			p = b.FAdd(b.FMul(p, w), b.ConstFloat(dtypes.Float32, float64(coefficient)))
		}
		return p
	}
	one := b.ConstFloat(dtypes.Float32, 1)
	w := b.FNeg(b.Log(b.FMul(b.FSub(one, x), b.FAdd(one, x))))

	var result *ir.Value
	err := b.WithScratch(dtypes.Float32, func(p *ir.Slot) error {
		err := b.If(b.FCmp(ir.FloatOLT, w, b.ConstFloat(dtypes.Float32, 5)),
			func() error {
				wSmall := b.FSub(w, b.ConstFloat(dtypes.Float32, 2.5))
				b.Store(p, polynomial(erfInvCoefficientsSmallW, wSmall))
				return nil
			},
			func() error {
				wLarge := b.FSub(b.Sqrt(w), b.ConstFloat(dtypes.Float32, 3))
				b.Store(p, polynomial(erfInvCoefficientsLargeW, wLarge))
				return nil
			})
		if err != nil {
			return err
		}
		result = b.FMul(b.Load(p), x)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// erfcinv(x) = erfinv(1-x)
func emitErfcInv(b *ir.Builder, x *ir.Value) (*ir.Value, error) {
	if x.DType() != dtypes.Float32 {
		return nil, unimplementedf("erfcinv on %s", x.DType())
	}
	return emitErfInv(b, b.FSub(b.ConstFloat(dtypes.Float32, 1), x))
}
