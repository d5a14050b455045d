package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

func Test_broadcastShapes(t *testing.T) {
	shape, err := BroadcastShapes([]int{3, 1}, []int{1, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, shape)

	shape, err = BroadcastShapes([]int{5}, []int{2, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5}, shape)

	shape, err = BroadcastShapes([]int{4}, []int{4})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, shape)

	_, err = BroadcastShapes([]int{3, 2}, []int{3, 4})
	assert.Error(t, err)
}

func Test_broadcastStrides(t *testing.T) {
	//shape (3,1) stretched to (3,4): stretched dim reads one element
	strides := BroadcastStrides([]int{3, 1}, []int{8, 8}, []int{3, 4})
	assert.Equal(t, []int{8, 0}, strides)

	//leading dims added by alignment get stride zero
	strides = BroadcastStrides([]int{5}, []int{8}, []int{2, 3, 5})
	assert.Equal(t, []int{0, 0, 8}, strides)
}

func Test_broadcastIter(t *testing.T) {
	//lhs shape (2,1), rhs shape (1,3), target (2,3)
	lhs := BroadcastStrides([]int{2, 1}, []int{4, 4}, []int{2, 3})
	rhs := BroadcastStrides([]int{1, 3}, []int{12, 4}, []int{2, 3})
	iter := NewBroadcastIter([]int{2, 3}, lhs, rhs)

	var lOffs, rOffs []int
	for ; iter.IsValid(); iter.Next() {
		lOffs = append(lOffs, iter.LhsOffset())
		rOffs = append(rOffs, iter.RhsOffset())
	}
	assert.Equal(t, []int{0, 0, 0, 4, 4, 4}, lOffs)
	assert.Equal(t, []int{0, 4, 8, 0, 4, 8}, rOffs)
}

func Test_broadcastIterEmpty(t *testing.T) {
	iter := NewBroadcastIter([]int{0, 3}, []int{0, 4}, []int{0, 4})
	assert.False(t, iter.IsValid())
}

func Test_arrayElemAccess(t *testing.T) {
	desc := dtype.NewInt(4)
	arr := NewArray(desc, []int{2, 3})
	desc.Release()
	defer arr.Release()

	assert.Equal(t, []int{12, 4}, arr.Strides())
	assert.Equal(t, 6, arr.Size())

	util.StoreAs(int32(42), arr.Elem([]int{1, 2}))
	assert.Equal(t, int32(42), util.LoadAs[int32](arr.ElemAt(1*12+2*4)))
}

func Test_arrayHoldsDescRef(t *testing.T) {
	desc := dtype.NewInt(8)
	arr := NewArray(desc, []int{4})
	assert.Equal(t, int64(2), desc.RefCount())
	view := arr.ProvisionalView()
	assert.Equal(t, int64(3), desc.RefCount())
	view.Release()
	arr.Release()
	assert.Equal(t, int64(1), desc.RefCount())
	desc.Release()
}
