/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package shapes defines Shape and associated tools.
//
// Shape represents the shape (rank, dimensions, DType and physical layout) of a tensor
// operand or result in a computation. DType indicates the type of the unit element of
// a tensor and is the enumeration defined in github.com/gomlx/gopjrt/dtypes.
//
// Go float16 support (commonly used by Nvidia GPUs) uses the github.com/x448/float16
// implementation, and bfloat16 uses github.com/gomlx/gopjrt/dtypes/bfloat16.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a tensor.
//   - Axis: the index of a dimension on a multidimensional tensor. Sometimes used
//     interchangeably with Dimension, but here we try to refer to a dimension index as
//     "axis" (plural axes), and its size as its dimension.
//   - Dimension: the size of a multi-dimensions tensor in one of its axes.
//   - DType: the data type of the unit element in a tensor.
//   - Scalar: a shape with no axes (or dimensions), only a single value
//     of the associated DType.
//   - Layout: the physical ordering of the axes in memory, given minor-to-major.
//     An empty layout means the default: the last axis is the fastest varying
//     (row-major).
//
// Example: the multi-dimensional array `[][]int32{{0, 1, 2}, {3, 4, 5}}` converted to
// a tensor would have shape `(Int32)[2 3]`. We say it has rank 2 (so 2 axes), axis 0
// has dimension 2, and axis 1 has dimension 3. This shape could be created with
// `shapes.Make(dtypes.Int32, 2, 3)`.
package shapes

import (
	"fmt"
	"slices"

	"github.com/gomlx/exceptions"
	. "github.com/gomlx/gopjrt/dtypes"
)

// Shape represents the shape of a tensor-valued operand or result.
//
// Use Make to create a new shape. See example in package shapes documentation.
//
// Layout lists the axes minor-to-major, that is, Layout[0] is the axis whose
// consecutive values are adjacent in memory. A nil (or empty) Layout means the
// default descending order {rank-1, ..., 1, 0}, i.e. row-major.
type Shape struct {
	DType      DType
	Dimensions []int
	Layout     []int
}

// Make returns a Shape structure filled with the values given, with the default layout.
func Make(dtype DType, dimensions ...int) Shape {
	s := Shape{Dimensions: slices.Clone(dimensions), DType: dtype}
	for _, dim := range dimensions {
		if dim <= 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with an axis with dimension <= 0", s)
		}
	}
	return s
}

// Scalar returns a scalar Shape for the given type.
func Scalar[T Number]() Shape {
	return Shape{DType: FromGenericsType[T]()}
}

// Invalid returns an invalid shape.
//
// Invalid().Ok() == false.
func Invalid() Shape {
	return Shape{DType: InvalidDType}
}

// Ok returns whether this is a valid Shape. A "zero" shape, that is just instantiating it with Shape{} will be invalid.
func (s Shape) Ok() bool { return s.DType != InvalidDType }

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape represents a scalar, that is there are no dimensions (rank==0).
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Shape returns a shallow copy of itself. It implements the HasShape interface.
func (s Shape) Shape() Shape { return s }

// String implements stringer, pretty-prints the shape.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)", s.DType)
	}
	if len(s.Layout) == 0 {
		return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
	}
	return fmt.Sprintf("(%s)%v layout=%v", s.DType, s.Dimensions, s.Layout)
}

// Size returns the number of elements of DType needed for this shape. It's the product of all dimensions.
func (s Shape) Size() (size int) {
	size = 1
	for _, d := range s.Dimensions {
		size *= d
	}
	return
}

// Memory returns the memory used to store an array of the given shape, the same as the size in bytes.
func (s Shape) Memory() uintptr {
	return s.DType.Memory() * uintptr(s.Size())
}

// Equal compares two shapes for equality: dtype and dimensions are compared, layout is not.
// See EqualLayout to also compare the physical layouts.
func (s Shape) Equal(s2 Shape) bool {
	if s.DType != s2.DType {
		return false
	}
	return s.EqualDimensions(s2)
}

// EqualDimensions compares two shapes for equality of dimensions. DTypes and layouts can be different.
func (s Shape) EqualDimensions(s2 Shape) bool {
	if s.Rank() != s2.Rank() {
		return false
	}
	if s.IsScalar() {
		return true
	}
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// EqualLayout returns whether s and s2 have the same physical layout, where a nil
// layout counts as the default descending order. Ranks must match for layouts to be
// comparable; different ranks return false.
func (s Shape) EqualLayout(s2 Shape) bool {
	if s.Rank() != s2.Rank() {
		return false
	}
	return slices.Equal(s.LayoutOrDefault(), s2.LayoutOrDefault())
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() (s2 Shape) {
	s2.DType = s.DType
	s2.Dimensions = slices.Clone(s.Dimensions)
	s2.Layout = slices.Clone(s.Layout)
	return
}

// WithLayout returns a copy of the shape with the physical layout set to the given
// minor-to-major axes order. It must be a permutation of the axes.
func (s Shape) WithLayout(minorToMajor ...int) Shape {
	if len(minorToMajor) != s.Rank() {
		exceptions.Panicf("Shape.WithLayout(%v): layout must list all %d axes of %s", minorToMajor, s.Rank(), s)
	}
	seen := make([]bool, s.Rank())
	for _, axis := range minorToMajor {
		if axis < 0 || axis >= s.Rank() || seen[axis] {
			exceptions.Panicf("Shape.WithLayout(%v): not a permutation of the axes of %s", minorToMajor, s)
		}
		seen[axis] = true
	}
	s2 := s.Clone()
	s2.Layout = slices.Clone(minorToMajor)
	return s2
}

// LayoutOrDefault returns the minor-to-major layout, materializing the default
// descending order {rank-1, ..., 1, 0} when Layout is unset.
func (s Shape) LayoutOrDefault() []int {
	if len(s.Layout) != 0 {
		return s.Layout
	}
	layout := make([]int, s.Rank())
	for i := range layout {
		layout[i] = s.Rank() - 1 - i
	}
	return layout
}

// HasDefaultLayout returns whether the layout is the default descending
// (row-major) order, which an unset Layout also denotes.
func (s Shape) HasDefaultLayout() bool {
	if len(s.Layout) == 0 {
		return true
	}
	for i, axis := range s.Layout {
		if axis != s.Rank()-1-i {
			return false
		}
	}
	return true
}

// Strides returns the physical stride, in elements, of each axis, derived from the layout:
// the most minor axis has stride 1.
func (s Shape) Strides() []int {
	strides := make([]int, s.Rank())
	stride := 1
	for _, axis := range s.LayoutOrDefault() {
		strides[axis] = stride
		stride *= s.Dimensions[axis]
	}
	return strides
}
