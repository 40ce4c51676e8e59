package kernel

import (
	"reflect"

	"github.com/elemental-ml/elemental/types/shapes"
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Buffer pairs a shape with the flat Go slice holding its elements in
// physical (layout) order.
//
// The flat slice is always of the Go type matching the shape's dtype:
// []float32 for Float32, []bfloat16.BFloat16 for BFloat16, and so on.
type Buffer struct {
	shape shapes.Shape
	flat  any
}

// NewBuffer allocates a zeroed buffer for shape.
func NewBuffer(shape shapes.Shape) *Buffer {
	if !shape.Ok() {
		exceptions.Panicf("kernel: NewBuffer called with an invalid shape")
	}
	size := shape.Size()
	flat := reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), size, size).Interface()
	return &Buffer{shape: shape.Clone(), flat: flat}
}

// NewBufferFromFlat wraps flat, which must be the slice type matching the
// shape's dtype and hold exactly shape.Size() elements. The buffer aliases
// the slice, it does not copy: mutations are visible both ways.
func NewBufferFromFlat(flat any, shape shapes.Shape) (*Buffer, error) {
	v := reflect.ValueOf(flat)
	if v.Kind() != reflect.Slice {
		return nil, errors.Errorf("flat data must be a slice, got %T", flat)
	}
	if got := dtypes.FromGoType(v.Type().Elem()); got != shape.DType {
		return nil, errors.Errorf("flat data of type %s does not match shape %s", v.Type().Elem(), shape)
	}
	if v.Len() != shape.Size() {
		return nil, errors.Errorf("flat data holds %d elements, shape %s requires %d", v.Len(), shape, shape.Size())
	}
	return &Buffer{shape: shape.Clone(), flat: flat}, nil
}

// Shape returns the buffer's shape.
func (buf *Buffer) Shape() shapes.Shape { return buf.shape }

// Flat returns the underlying flat slice. Mutating it mutates the buffer.
func (buf *Buffer) Flat() any { return buf.flat }

// Flat returns buf's data as a []T, or an error if T is not the Go type of
// the buffer's dtype.
func Flat[T dtypes.Supported](buf *Buffer) ([]T, error) {
	flat, ok := buf.flat.([]T)
	if !ok {
		var t T
		return nil, errors.Errorf("buffer of %s does not hold %T elements", buf.shape, t)
	}
	return flat, nil
}

// Clone returns a buffer with the same shape and a copy of the data.
func (buf *Buffer) Clone() *Buffer {
	clone := NewBuffer(buf.shape)
	reflect.Copy(reflect.ValueOf(clone.flat), reflect.ValueOf(buf.flat))
	return clone
}
