package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecordDesc() (*Descriptor, *Descriptor, *Descriptor) {
	key := NewInt(8)
	name := NewString(4)
	rec := NewStruct("rec", []Field{
		{Name: "key", Offset: 0, Desc: key},
		{Name: "name", Offset: 8, Desc: name},
	})
	return rec, key, name
}

func Test_refcount(t *testing.T) {
	desc := NewFloat(8)
	assert.Equal(t, int64(1), desc.RefCount())
	desc.Retain()
	desc.Retain()
	assert.Equal(t, int64(3), desc.RefCount())
	desc.Release()
	desc.Release()
	assert.Equal(t, int64(1), desc.RefCount())
	desc.Release()
	assert.Equal(t, int64(0), desc.RefCount())
}

func Test_structRetainsFields(t *testing.T) {
	rec, key, name := makeRecordDesc()
	//struct + caller
	assert.Equal(t, int64(2), key.RefCount())
	assert.Equal(t, int64(2), name.RefCount())
	assert.Equal(t, 12, rec.ItemSize())

	key.Release()
	name.Release()
	assert.Equal(t, int64(1), key.RefCount())

	//dropping the struct releases the nested descriptors
	rec.Release()
	assert.Equal(t, int64(0), key.RefCount())
	assert.Equal(t, int64(0), name.RefCount())
}

func Test_fieldByName(t *testing.T) {
	rec, key, name := makeRecordDesc()
	defer rec.Release()
	key.Release()
	name.Release()

	f, ok := rec.FieldByName("name")
	require.True(t, ok)
	assert.Equal(t, 8, f.Offset)
	assert.Equal(t, KIND_STRING, f.Desc.Kind())

	_, ok = rec.FieldByName("missing")
	assert.False(t, ok)
}

func Test_sameLayout(t *testing.T) {
	lhs, lk, ln := makeRecordDesc()
	rhs, rk, rn := makeRecordDesc()
	defer lhs.Release()
	defer rhs.Release()
	for _, d := range []*Descriptor{lk, ln, rk, rn} {
		d.Release()
	}
	assert.True(t, lhs.SameLayout(rhs))
	assert.False(t, lhs.SameLayout(NewInt(8)))
	assert.False(t, NewInt(4).SameLayout(NewInt(8)))
	assert.True(t, NewInt(4).SameLayout(NewInt(4)))

	//distinct opaque descriptors never share a layout
	cmp := func(a, b []byte) (int, error) { return 0, nil }
	assert.False(t, NewOpaque("o1", 8, cmp).SameLayout(NewOpaque("o2", 8, cmp)))
}

func Test_registry(t *testing.T) {
	reg := NewRegistry()
	desc := NewInt(4)
	require.NoError(t, reg.Register("i32", desc))
	assert.Equal(t, int64(2), desc.RefCount())
	assert.Error(t, reg.Register("i32", desc))

	got, ok := reg.Lookup("i32")
	require.True(t, ok)
	assert.Same(t, desc, got)

	require.NoError(t, reg.Register("a", NewFloat(8)))
	assert.Equal(t, []string{"a", "i32"}, reg.Names())

	assert.True(t, reg.Unregister("i32"))
	assert.False(t, reg.Unregister("i32"))
	assert.Equal(t, int64(1), desc.RefCount())
	_, ok = reg.Lookup("i32")
	assert.False(t, ok)
}

func Test_builtinRegistry(t *testing.T) {
	for _, name := range []string{"int8", "int64", "uint32", "float32", "float64"} {
		desc, ok := GRegistry.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, name, desc.Name())
	}
}

func Test_decimalCompare(t *testing.T) {
	desc := NewDecimal(2)
	defer desc.Release()
	lhs := make([]byte, desc.ItemSize())
	rhs := make([]byte, desc.ItemSize())

	StoreDecimal(lhs, 12, 50)
	StoreDecimal(rhs, 12, 75)
	sign, err := desc.Compare()(lhs, rhs)
	require.NoError(t, err)
	assert.Negative(t, sign)

	StoreDecimal(rhs, 12, 50)
	sign, err = desc.Compare()(lhs, rhs)
	require.NoError(t, err)
	assert.Zero(t, sign)

	StoreDecimal(rhs, 11, 99)
	sign, err = desc.Compare()(lhs, rhs)
	require.NoError(t, err)
	assert.Positive(t, sign)
}

func Test_explain(t *testing.T) {
	inner := NewStruct("point", []Field{
		{Name: "x", Offset: 0, Desc: NewFloat(8)},
		{Name: "y", Offset: 8, Desc: NewFloat(8)},
	})
	rec := NewStruct("rec", []Field{
		{Name: "id", Offset: 0, Desc: NewInt(8)},
		{Name: "pos", Offset: 8, Desc: inner},
	})
	out := rec.Explain()
	assert.Contains(t, out, "rec [struct, 24 bytes]")
	assert.Contains(t, out, "pos @8")
	assert.Contains(t, out, "x @0")
}
