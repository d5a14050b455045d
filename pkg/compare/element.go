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

package compare

import (
	"bytes"

	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

type CmpResult int

const (
	CmpLess    CmpResult = -1
	CmpEqual   CmpResult = 0
	CmpGreater CmpResult = 1
)

// CompareFields orders two structured elements field by field in plan
// order. The first non-equal, non-skipped field decides; a descending
// field flips its outcome. Never allocates. Malformed offsets are a
// caller contract violation, not a runtime error.
func CompareFields(sod *SortOrderData, lhs, rhs []byte) (CmpResult, error) {
	for i := 0; i < sod._nFields; i++ {
		flag := sod._flags[i]
		if flag&ORDER_SKIP != 0 {
			continue
		}
		desc := sod._descs[i]
		util.AssertFunc(desc != nil)
		off := sod._offsets[i]
		end := off + desc.ItemSize()
		res, err := CompareScalar(desc, lhs[off:end], rhs[off:end], false)
		if err != nil {
			return CmpEqual, err
		}
		if res == CmpEqual {
			continue
		}
		if flag&ORDER_DESC != 0 {
			res = -res
		}
		return res, nil
	}
	return CmpEqual, nil
}

// CompareScalar orders two raw elements of the same descriptor.
// rstrip only affects the string kind.
func CompareScalar(desc *dtype.Descriptor, lhs, rhs []byte, rstrip bool) (CmpResult, error) {
	switch desc.Kind() {
	case dtype.KIND_INT:
		switch desc.ItemSize() {
		case 1:
			return compareNum[int8](lhs, rhs), nil
		case 2:
			return compareNum[int16](lhs, rhs), nil
		case 4:
			return compareNum[int32](lhs, rhs), nil
		case 8:
			return compareNum[int64](lhs, rhs), nil
		}
	case dtype.KIND_UINT:
		switch desc.ItemSize() {
		case 1:
			return compareNum[uint8](lhs, rhs), nil
		case 2:
			return compareNum[uint16](lhs, rhs), nil
		case 4:
			return compareNum[uint32](lhs, rhs), nil
		case 8:
			return compareNum[uint64](lhs, rhs), nil
		}
	case dtype.KIND_FLOAT:
		switch desc.ItemSize() {
		case 4:
			return compareFloat[float32](lhs, rhs), nil
		case 8:
			return compareFloat[float64](lhs, rhs), nil
		}
	case dtype.KIND_STRING:
		return compareString(lhs, rhs, desc.ItemSize(), rstrip), nil
	case dtype.KIND_OPAQUE:
		sign, err := desc.Compare()(lhs, rhs)
		if err != nil {
			return CmpEqual, err
		}
		return signToCmp(sign), nil
	case dtype.KIND_STRUCT:
		return compareStruct(desc, lhs, rhs, rstrip)
	}
	panic("usp")
}

func compareStruct(desc *dtype.Descriptor, lhs, rhs []byte, rstrip bool) (CmpResult, error) {
	for _, f := range desc.Fields() {
		end := f.Offset + f.Desc.ItemSize()
		res, err := CompareScalar(f.Desc, lhs[f.Offset:end], rhs[f.Offset:end], rstrip)
		if err != nil {
			return CmpEqual, err
		}
		if res != CmpEqual {
			return res, nil
		}
	}
	return CmpEqual, nil
}

func compareNum[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64](lhs, rhs []byte) CmpResult {
	l := util.LoadAs[T](lhs)
	r := util.LoadAs[T](rhs)
	if l < r {
		return CmpLess
	}
	if l > r {
		return CmpGreater
	}
	return CmpEqual
}

// compareFloat orders NaN above every value, +Inf included, and NaN
// equal to NaN, so the order is total. The rule is uniform across
// float widths.
func compareFloat[T float32 | float64](lhs, rhs []byte) CmpResult {
	l := util.LoadAs[T](lhs)
	r := util.LoadAs[T](rhs)
	if util.GreaterFloat(l, r) {
		return CmpGreater
	}
	if util.GreaterFloat(r, l) {
		return CmpLess
	}
	return CmpEqual
}

func compareString(lhs, rhs []byte, width int, rstrip bool) CmpResult {
	l := lhs[:width]
	r := rhs[:width]
	if rstrip {
		// trim the window on both sides so padded fields compare
		// equal to their logically shorter counterparts
		l = trimTrailingPad(l)
		r = trimTrailingPad(r)
	}
	return signToCmp(bytes.Compare(l, r))
}

func trimTrailingPad(data []byte) []byte {
	end := len(data)
	for end > 0 {
		switch data[end-1] {
		case ' ', '\t', '\n', '\r', '\v', '\f', 0:
			end--
		default:
			return data[:end]
		}
	}
	return data[:0]
}

func signToCmp(sign int) CmpResult {
	if sign < 0 {
		return CmpLess
	}
	if sign > 0 {
		return CmpGreater
	}
	return CmpEqual
}
