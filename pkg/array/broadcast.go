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
	"fmt"

	"github.com/tensorkit/narray/pkg/util"
)

// BroadcastShapes aligns two shapes from the trailing dimension.
// A dimension of size 1 stretches to match the other operand.
func BroadcastShapes(lhs, rhs []int) ([]int, error) {
	ndim := len(lhs)
	if len(rhs) > ndim {
		ndim = len(rhs)
	}
	out := make([]int, ndim)
	for i := 1; i <= ndim; i++ {
		l, r := 1, 1
		if i <= len(lhs) {
			l = lhs[len(lhs)-i]
		}
		if i <= len(rhs) {
			r = rhs[len(rhs)-i]
		}
		switch {
		case l == r:
			out[ndim-i] = l
		case l == 1:
			out[ndim-i] = r
		case r == 1:
			out[ndim-i] = l
		default:
			return nil, fmt.Errorf("operands could not be broadcast together with shapes %v %v", lhs, rhs)
		}
	}
	return out, nil
}

// BroadcastStrides maps an operand's strides onto a broadcast target
// shape. Stretched dimensions get stride zero so every position in
// the stretch reads the same element.
func BroadcastStrides(shape, strides, target []int) []int {
	out := make([]int, len(target))
	lead := len(target) - len(shape)
	for i := range shape {
		if shape[i] == target[lead+i] {
			out[lead+i] = strides[i]
		} else {
			util.AssertFunc(shape[i] == 1)
			out[lead+i] = 0
		}
	}
	return out
}

// BroadcastIter walks every position of a broadcast shape and yields
// the byte offsets into both operands.
type BroadcastIter struct {
	_shape  []int
	_index  []int
	_lhs    []int
	_rhs    []int
	_lhsOff int
	_rhsOff int
	_valid  bool
}

// NewBroadcastIter takes broadcast-adjusted strides (see
// BroadcastStrides) of both operands over the common shape.
func NewBroadcastIter(shape, lhsStrides, rhsStrides []int) *BroadcastIter {
	iter := &BroadcastIter{
		_shape: shape,
		_index: make([]int, len(shape)),
		_lhs:   lhsStrides,
		_rhs:   rhsStrides,
		_valid: true,
	}
	for _, dim := range shape {
		if dim == 0 {
			iter._valid = false
		}
	}
	return iter
}

func (iter *BroadcastIter) IsValid() bool {
	return iter._valid
}

func (iter *BroadcastIter) LhsOffset() int {
	return iter._lhsOff
}

func (iter *BroadcastIter) RhsOffset() int {
	return iter._rhsOff
}

func (iter *BroadcastIter) Next() {
	for i := len(iter._shape) - 1; i >= 0; i-- {
		iter._index[i]++
		iter._lhsOff += iter._lhs[i]
		iter._rhsOff += iter._rhs[i]
		if iter._index[i] < iter._shape[i] {
			return
		}
		iter._index[i] = 0
		iter._lhsOff -= iter._shape[i] * iter._lhs[i]
		iter._rhsOff -= iter._shape[i] * iter._rhs[i]
	}
	iter._valid = false
}
