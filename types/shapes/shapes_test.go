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

package shapes

import (
	"testing"

	. "github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	invalidShape := Invalid()
	require.False(t, invalidShape.Ok())

	shape0 := Make(Float64)
	require.True(t, shape0.Ok())
	require.True(t, shape0.IsScalar())
	require.Equal(t, 0, shape0.Rank())
	require.Len(t, shape0.Dimensions, 0)
	require.Equal(t, 1, shape0.Size())
	require.Equal(t, 8, int(shape0.Memory()))

	shape1 := Make(Float32, 4, 3, 2)
	require.True(t, shape1.Ok())
	require.False(t, shape1.IsScalar())
	require.Equal(t, 3, shape1.Rank())
	require.Len(t, shape1.Dimensions, 3)
	require.Equal(t, 4*3*2, shape1.Size())
	require.Equal(t, 4*4*3*2, int(shape1.Memory()))
	require.Equal(t, 2, shape1.Dim(-1))
	require.Equal(t, 4, shape1.Dim(0))

	require.True(t, shape1.Equal(Make(Float32, 4, 3, 2)))
	require.False(t, shape1.Equal(Make(Float32, 4, 3)))
	require.False(t, shape1.Equal(Make(Int32, 4, 3, 2)))
	require.True(t, shape1.EqualDimensions(Make(Int32, 4, 3, 2)))

	require.Panics(t, func() { Make(Float32, 0, 2) })
	require.Panics(t, func() { shape1.Dim(3) })
}

func TestShapeLayout(t *testing.T) {
	shape := Make(Float32, 4, 3)
	require.True(t, shape.HasDefaultLayout())
	require.Equal(t, []int{1, 0}, shape.LayoutOrDefault())
	require.Equal(t, []int{3, 1}, shape.Strides())

	colMajor := shape.WithLayout(0, 1)
	require.False(t, colMajor.HasDefaultLayout())
	require.Equal(t, []int{1, 4}, colMajor.Strides())
	require.True(t, shape.Equal(colMajor))
	require.False(t, shape.EqualLayout(colMajor))
	require.True(t, colMajor.EqualLayout(colMajor.Clone()))

	// Explicitly set default layout compares equal to the implicit one.
	require.True(t, shape.EqualLayout(shape.WithLayout(1, 0)))

	require.Panics(t, func() { shape.WithLayout(0) })
	require.Panics(t, func() { shape.WithLayout(0, 0) })
}

func TestShapeIter(t *testing.T) {
	shape := Make(Int32, 2, 3)
	var got [][]int
	for indices := range shape.Iter() {
		got = append(got, append([]int{}, indices...))
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	require.Equal(t, want, got)

	// Scalar yields a single empty index.
	count := 0
	for indices := range Make(Float64).Iter() {
		require.Empty(t, indices)
		count++
	}
	require.Equal(t, 1, count)
}
