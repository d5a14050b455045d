package compare

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorkit/narray/pkg/array"
	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

func Test_argSortScalar(t *testing.T) {
	desc := dtype.NewInt(8)
	arr := array.NewArray(desc, []int{5})
	desc.Release()
	defer arr.Release()
	for i, v := range []int64{3, 1, 4, 1, 5} {
		util.StoreAs(v, arr.Elem([]int{i}))
	}

	perm, err := ArgSort(arr, nil)
	require.NoError(t, err)
	//ties keep input order
	assert.Equal(t, []int64{1, 3, 0, 2, 4}, perm)
}

func Test_argSortFloatsWithNaN(t *testing.T) {
	desc := dtype.NewFloat(8)
	arr := array.NewArray(desc, []int{4})
	desc.Release()
	defer arr.Release()
	for i, v := range []float64{math.Inf(1), 1.5, math.NaN(), -2} {
		util.StoreAs(v, arr.Elem([]int{i}))
	}

	perm, err := ArgSort(arr, nil)
	require.NoError(t, err)
	//NaN clusters at the high end, above +Inf
	assert.Equal(t, []int64{3, 1, 0, 2}, perm)
}

func Test_sortStructuredMultiField(t *testing.T) {
	arr := newRecordArray(t, 4)
	defer arr.Release()
	setRecord(arr, 0, 2, "bb")
	setRecord(arr, 1, 1, "zz")
	setRecord(arr, 2, 2, "aa")
	setRecord(arr, 3, 1, "aa")

	//key ascending, name descending
	err := Sort(arr, []OrderSpec{
		{Field: "key"},
		{Field: "name", Desc: true},
	})
	require.NoError(t, err)

	keys := make([]int64, 4)
	names := make([]string, 4)
	for i := 0; i < 4; i++ {
		elem := arr.Elem([]int{i})
		keys[i] = util.LoadAs[int64](elem)
		names[i] = string(elem[8:10])
	}
	assert.Equal(t, []int64{1, 1, 2, 2}, keys)
	assert.Equal(t, []string{"zz", "aa", "bb", "aa"}, names)
}

func Test_sortSkipField(t *testing.T) {
	arr := newRecordArray(t, 3)
	defer arr.Release()
	setRecord(arr, 0, 3, "aa")
	setRecord(arr, 1, 1, "bb")
	setRecord(arr, 2, 2, "cc")

	//the key field is present in the plan but ignored; name decides
	perm, err := ArgSort(arr, []OrderSpec{
		{Field: "key", Skip: true},
		{Field: "name"},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, perm)
}

func Test_argSortStability(t *testing.T) {
	arr := newRecordArray(t, 6)
	defer arr.Release()
	for i := 0; i < 6; i++ {
		setRecord(arr, i, int64(i%2), "xx")
	}

	perm, err := ArgSort(arr, []OrderSpec{{Field: "key"}})
	require.NoError(t, err)
	//equal keys stay in input order
	assert.Equal(t, []int64{0, 2, 4, 1, 3, 5}, perm)
}

func Test_argSortParallelClones(t *testing.T) {
	n := parallel_sort_threshold * 4
	arr := newRecordArray(t, n)
	defer arr.Release()
	for i := 0; i < n; i++ {
		setRecord(arr, i, int64((i*7919)%1024), "xx")
	}

	keyDesc := arr.Desc().Fields()[0].Desc
	before := keyDesc.RefCount()

	perm, err := ArgSort(arr, []OrderSpec{{Field: "key"}})
	require.NoError(t, err)
	require.Len(t, perm, n)

	//every worker clone was freed; counts drop back to the baseline
	assert.Equal(t, before, keyDesc.RefCount())

	stride := arr.Strides()[0]
	for i := 1; i < n; i++ {
		prev := util.LoadAs[int64](arr.ElemAt(int(perm[i-1]) * stride))
		cur := util.LoadAs[int64](arr.ElemAt(int(perm[i]) * stride))
		assert.LessOrEqual(t, prev, cur)
	}
}

func Test_argSortUnknownField(t *testing.T) {
	arr := newRecordArray(t, 2)
	defer arr.Release()
	_, err := ArgSort(arr, []OrderSpec{{Field: "nope"}})
	assert.Error(t, err)
}

func Test_sortWarnsProvisionalView(t *testing.T) {
	desc := dtype.NewInt(8)
	arr := array.NewArray(desc, []int{4})
	desc.Release()
	defer arr.Release()
	for i, v := range []int64{4, 3, 2, 1} {
		util.StoreAs(v, arr.Elem([]int{i}))
	}

	view := arr.ProvisionalView()
	defer view.Release()
	require.NoError(t, Sort(view, nil))

	//in-place sort through the view reordered the shared buffer
	assert.Equal(t, int64(1), util.LoadAs[int64](arr.Elem([]int{0})))
	assert.Equal(t, int64(4), util.LoadAs[int64](arr.Elem([]int{3})))
}
