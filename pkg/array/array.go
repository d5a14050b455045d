// Copyright 2024-2025 The narray Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package array

import (
	"sync/atomic"

	"github.com/huandu/go-clone"

	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

const (
	// FlagWarnOnWrite marks provisional views: arrays we would like
	// to turn into real views later. First write triggers a one-time
	// advisory.
	FlagWarnOnWrite uint32 = 1 << 31
)

// Array is a dense nd-array over a flat byte buffer. Strides are in
// bytes. The array holds one reference on its descriptor for its
// whole life; Release drops it.
type Array struct {
	_data    []byte
	_shape   []int
	_strides []int
	_desc    *dtype.Descriptor
	_flags   uint32
	_warned  atomic.Bool
}

// NewArray allocates a C-contiguous array of the given shape. Retains
// desc once.
func NewArray(desc *dtype.Descriptor, shape []int) *Array {
	size := 1
	for _, dim := range shape {
		util.AssertFunc(dim >= 0)
		size *= dim
	}
	arr := &Array{
		_data:    make([]byte, size*desc.ItemSize()),
		_shape:   util.CopyTo(shape),
		_strides: ContiguousStrides(shape, desc.ItemSize()),
		_desc:    desc.Retain(),
	}
	return arr
}

// ContiguousStrides computes row-major byte strides.
func ContiguousStrides(shape []int, itemSize int) []int {
	strides := make([]int, len(shape))
	acc := itemSize
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// Release drops the array's descriptor reference. The array must not
// be used afterwards.
func (arr *Array) Release() {
	if arr._desc != nil {
		arr._desc.Release()
		arr._desc = nil
	}
	arr._data = nil
}

func (arr *Array) Desc() *dtype.Descriptor {
	return arr._desc
}

func (arr *Array) Shape() []int {
	return arr._shape
}

func (arr *Array) Strides() []int {
	return arr._strides
}

func (arr *Array) NDim() int {
	return len(arr._shape)
}

// Size is the number of elements.
func (arr *Array) Size() int {
	size := 1
	for _, dim := range arr._shape {
		size *= dim
	}
	return size
}

func (arr *Array) Flags() uint32 {
	return arr._flags
}

func (arr *Array) Data() []byte {
	return arr._data
}

func (arr *Array) offset(idx []int) int {
	util.AssertFunc(len(idx) == len(arr._shape))
	off := 0
	for i, x := range idx {
		util.AssertFunc(x >= 0 && x < arr._shape[i])
		off += x * arr._strides[i]
	}
	return off
}

// Elem returns the raw bytes of one element.
func (arr *Array) Elem(idx []int) []byte {
	return arr.ElemAt(arr.offset(idx))
}

// ElemAt returns the element bytes starting at a byte offset.
func (arr *Array) ElemAt(off int) []byte {
	return arr._data[off : off+arr._desc.ItemSize()]
}

// SetElem writes one element in place. Provisional views get their
// one-time advisory here before the write proceeds.
func (arr *Array) SetElem(idx []int, val []byte) {
	util.AssertFunc(len(val) == arr._desc.ItemSize())
	arr.MightBeWritten()
	copy(arr.Elem(idx), val)
}

// ProvisionalView returns an array sharing this array's buffer,
// flagged so that the first write through it warns once.
func (arr *Array) ProvisionalView() *Array {
	view := &Array{
		_data:    arr._data,
		_shape:   clone.Clone(arr._shape).([]int),
		_strides: clone.Clone(arr._strides).([]int),
		_desc:    arr._desc.Retain(),
		_flags:   arr._flags | FlagWarnOnWrite,
	}
	return view
}
