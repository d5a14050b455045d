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
	"fmt"

	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

type OrderFlag uint8

const (
	ORDER_DESC OrderFlag = 1 << 0
	ORDER_SKIP OrderFlag = 1 << 1
)

// Fault names for simulating allocation exhaustion in tests.
const (
	FaultOrderDataAlloc      = "orderDataAlloc"
	FaultOrderDataCloneField = "orderDataCloneField"
)

// SortOrderData drives field-ordered comparison of structured
// elements. One instance is allocated per sort call; recursive or
// parallel sub-calls clone it. Each instance owns exactly one
// descriptor reference per populated field slot and is freed exactly
// once.
type SortOrderData struct {
	_nFields int
	_flags   []OrderFlag
	_offsets []int
	_descs   []*dtype.Descriptor
}

// AllocSortOrderData returns a plan with every field in the neutral
// skip state, zero offsets and no descriptors. The caller populates
// the slots via SetField.
func AllocSortOrderData(nFields int) (*SortOrderData, error) {
	if nFields < 0 {
		return nil, fmt.Errorf("%w: negative field count %d", ErrAllocation, nFields)
	}
	if err := util.TriggerFault(util.FAULTS_SCOPE_PLAN, FaultOrderDataAlloc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAllocation, err)
	}
	sod := &SortOrderData{
		_nFields: nFields,
		_flags:   make([]OrderFlag, nFields),
		_offsets: make([]int, nFields),
		_descs:   make([]*dtype.Descriptor, nFields),
	}
	util.Fill(sod._flags, nFields, ORDER_SKIP)
	return sod, nil
}

// SetField populates one slot. The plan takes over one reference on
// desc; the caller must have retained it beforehand and gives that
// reference up here.
func (sod *SortOrderData) SetField(i int, offset int, flag OrderFlag, desc *dtype.Descriptor) {
	util.AssertFunc(i >= 0 && i < sod._nFields)
	util.AssertFunc(offset >= 0)
	if sod._descs[i] != nil {
		sod._descs[i].Release()
	}
	sod._flags[i] = flag
	sod._offsets[i] = offset
	sod._descs[i] = desc
}

// Clone builds an independent copy sharing the same descriptors, one
// newly acquired reference per populated slot. On failure every
// reference taken so far is given back; nothing leaks.
func (sod *SortOrderData) Clone() (*SortOrderData, error) {
	ret, err := AllocSortOrderData(sod._nFields)
	if err != nil {
		return nil, err
	}
	ret._flags = util.CopyTo(sod._flags)
	ret._offsets = util.CopyTo(sod._offsets)
	for i, desc := range sod._descs {
		if desc == nil {
			continue
		}
		if err = util.TriggerFault(util.FAULTS_SCOPE_PLAN, FaultOrderDataCloneField); err != nil {
			for j := 0; j < i; j++ {
				if ret._descs[j] != nil {
					ret._descs[j].Release()
					ret._descs[j] = nil
				}
			}
			return nil, fmt.Errorf("%w: %s", ErrAllocation, err)
		}
		ret._descs[i] = desc.Retain()
	}
	return ret, nil
}

// Free gives back one reference per populated slot and drops the
// plan's storage. Must be called exactly once per Alloc/Clone result;
// safe on a nil plan.
func (sod *SortOrderData) Free() {
	if sod == nil {
		return
	}
	for i, desc := range sod._descs {
		if desc != nil {
			desc.Release()
			sod._descs[i] = nil
		}
	}
	sod._flags = nil
	sod._offsets = nil
	sod._nFields = 0
}

func (sod *SortOrderData) NFields() int {
	return sod._nFields
}

func (sod *SortOrderData) Flag(i int) OrderFlag {
	return sod._flags[i]
}

func (sod *SortOrderData) Offset(i int) int {
	return sod._offsets[i]
}

func (sod *SortOrderData) Desc(i int) *dtype.Descriptor {
	return sod._descs[i]
}

// PlanFromStruct builds a plan comparing every field of a structured
// descriptor in declaration order, ascending.
func PlanFromStruct(desc *dtype.Descriptor) (*SortOrderData, error) {
	util.AssertFunc(desc.Kind() == dtype.KIND_STRUCT)
	fields := desc.Fields()
	sod, err := AllocSortOrderData(len(fields))
	if err != nil {
		return nil, err
	}
	for i, f := range fields {
		sod.SetField(i, f.Offset, 0, f.Desc.Retain())
	}
	return sod, nil
}
