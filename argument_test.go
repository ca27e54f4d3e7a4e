// Copyright (c) 2024 The pfq-lang authors
// SPDX-License-Identifier: MIT

package pfq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgNull(t *testing.T) {
	a := ArgNull()
	assert.True(t, a.IsNull())
	assert.Equal(t, "", a.String())
	assert.Equal(t, uint(0), a.Size())
	assert.Equal(t, uint(0), a.Nelem())
}

func TestArgDataPOD(t *testing.T) {
	a, err := ArgData(uint16(53))
	require.NoError(t, err)
	assert.False(t, a.IsNull())
	assert.Equal(t, "[53]", a.String())
}

func TestArgDataRejectsNonPOD(t *testing.T) {
	_, err := ArgData(func() {})
	assert.Error(t, err)

	_, err = ArgData([]int{1, 2, 3})
	assert.Error(t, err, "slices are collections, not scalar Data")
}

func TestArgVector(t *testing.T) {
	a, err := ArgVector([]uint32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint(3), a.Nelem())
	assert.Equal(t, "[1 2 3]", a.String())
}

func TestArgVectorRejectsNonPODElems(t *testing.T) {
	type notPOD struct{ f func() }
	_, err := ArgVector([]notPOD{{}})
	assert.Error(t, err)
}

func TestArgString(t *testing.T) {
	a := ArgString("eth0")
	assert.Equal(t, "[eth0]", a.String())
	assert.False(t, a.IsNull())
}

func TestArgFun(t *testing.T) {
	a := ArgFun(7)
	idx, ok := a.IsFunRef()
	require.True(t, ok)
	assert.Equal(t, uint(7), idx)
	assert.Equal(t, "f[7]", a.String())
}

func TestArgumentShapeExclusivity(t *testing.T) {
	// Property 7: exactly one of {Null, Data, Vector, String, FunRef}
	// ever holds for a given Argument.
	shapes := []shape{shapeNull, shapeData, shapeVector, shapeString, shapeFunRef}
	cases := []Argument{
		ArgNull(),
		MustArgData(uint8(1)),
		MustArgVector([]int32{1}),
		ArgString("x"),
		ArgFun(0),
	}
	for _, a := range cases {
		matches := 0
		for _, s := range shapes {
			if a.shape == s {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "argument %#v must match exactly one shape", a)
	}
}
