package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceSize(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsEmpty([]int{1}))

	assert.True(t, IsSingle([]string{"a"}))
	assert.False(t, IsSingle([]string{"a", "b"}))

	assert.True(t, IsMultiple([]string{"a", "b"}))
	assert.False(t, IsMultiple([]string{"a"}))
}

func TestIsIndex(t *testing.T) {
	assert.True(t, IsIndex(0, 1))
	assert.True(t, IsIndex(2, 3))
	assert.False(t, IsIndex(3, 3))
	assert.False(t, IsIndex(-1, 3))
	assert.False(t, IsIndex(0, 0))
}

func TestLast(t *testing.T) {
	v, ok := Last([]int{1, 2, 3})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = Last([]int{})
	assert.False(t, ok)
	assert.Zero(t, v)
}
