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

package dtype

import (
	"fmt"
	"sync/atomic"

	"github.com/tensorkit/narray/pkg/util"
)

// CompareFn is the three-way comparison capability an opaque kind
// supplies. Negative means a < b, zero equal, positive a > b.
type CompareFn func(a, b []byte) (int, error)

type Field struct {
	Name   string
	Offset int
	Desc   *Descriptor
}

// Descriptor describes one element type: its byte size, kind and,
// depending on the kind, nested fields or an opaque comparator.
// Kind and size never change once built. Descriptors are shared by
// reference count; clones across goroutines hit the same counter, so
// it is atomic.
type Descriptor struct {
	_kind     Kind
	_itemSize int
	_name     string
	_fields   []Field
	_compare  CompareFn
	_refs     atomic.Int64
}

func newDescriptor(kind Kind, itemSize int, name string) *Descriptor {
	util.AssertFunc(itemSize > 0)
	desc := &Descriptor{
		_kind:     kind,
		_itemSize: itemSize,
		_name:     name,
	}
	desc._refs.Store(1)
	return desc
}

func NewInt(size int) *Descriptor {
	assertNumericWidth(size)
	return newDescriptor(KIND_INT, size, fmt.Sprintf("int%d", size*8))
}

func NewUint(size int) *Descriptor {
	assertNumericWidth(size)
	return newDescriptor(KIND_UINT, size, fmt.Sprintf("uint%d", size*8))
}

func NewFloat(size int) *Descriptor {
	util.AssertFunc(size == 4 || size == 8)
	return newDescriptor(KIND_FLOAT, size, fmt.Sprintf("float%d", size*8))
}

// NewBool describes the one-byte element of boolean result arrays.
func NewBool() *Descriptor {
	return newDescriptor(KIND_UINT, 1, "bool")
}

// NewString describes a fixed-width byte string of the given width.
func NewString(width int) *Descriptor {
	return newDescriptor(KIND_STRING, width, fmt.Sprintf("string%d", width))
}

// NewOpaque describes an element whose ordering is delegated to fn.
func NewOpaque(name string, itemSize int, fn CompareFn) *Descriptor {
	util.AssertFunc(fn != nil)
	desc := newDescriptor(KIND_OPAQUE, itemSize, name)
	desc._compare = fn
	return desc
}

// NewStruct describes a fixed-layout record. It retains one reference
// on every field descriptor; the caller keeps its own references.
func NewStruct(name string, fields []Field) *Descriptor {
	util.AssertFunc(len(fields) > 0)
	itemSize := 0
	for _, f := range fields {
		util.AssertFunc(f.Desc != nil && f.Offset >= 0)
		end := f.Offset + f.Desc.ItemSize()
		if end > itemSize {
			itemSize = end
		}
	}
	desc := newDescriptor(KIND_STRUCT, itemSize, name)
	desc._fields = make([]Field, len(fields))
	copy(desc._fields, fields)
	for i := range desc._fields {
		desc._fields[i].Desc.Retain()
	}
	return desc
}

func (desc *Descriptor) Kind() Kind {
	return desc._kind
}

func (desc *Descriptor) ItemSize() int {
	return desc._itemSize
}

func (desc *Descriptor) Name() string {
	return desc._name
}

func (desc *Descriptor) Fields() []Field {
	return desc._fields
}

func (desc *Descriptor) FieldByName(name string) (Field, bool) {
	idx := util.FindIf(desc._fields, func(f Field) bool {
		return f.Name == name
	})
	if idx < 0 {
		return Field{}, false
	}
	return desc._fields[idx], true
}

func (desc *Descriptor) Compare() CompareFn {
	return desc._compare
}

// Retain acquires one shared reference and returns the receiver.
func (desc *Descriptor) Retain() *Descriptor {
	desc._refs.Add(1)
	return desc
}

// Release drops one reference. At zero the descriptor releases its
// nested field descriptors and must not be used again.
func (desc *Descriptor) Release() {
	refs := desc._refs.Add(-1)
	util.AssertFunc(refs >= 0)
	if refs == 0 {
		for i := range desc._fields {
			desc._fields[i].Desc.Release()
		}
		desc._fields = nil
		desc._compare = nil
	}
}

// RefCount exposes the live count for lifecycle checks.
func (desc *Descriptor) RefCount() int64 {
	return desc._refs.Load()
}

// SameLayout reports whether two descriptors compare elements of the
// same shape: same kind and size, and for structs the same field
// layout recursively.
func (desc *Descriptor) SameLayout(o *Descriptor) bool {
	if desc == o {
		return true
	}
	if desc._kind != o._kind || desc._itemSize != o._itemSize {
		return false
	}
	if desc._kind == KIND_OPAQUE {
		// distinct opaque descriptors may order bytes differently
		return false
	}
	if len(desc._fields) != len(o._fields) {
		return false
	}
	for i := range desc._fields {
		if desc._fields[i].Offset != o._fields[i].Offset {
			return false
		}
		if !desc._fields[i].Desc.SameLayout(o._fields[i].Desc) {
			return false
		}
	}
	return true
}

func assertNumericWidth(size int) {
	util.AssertFunc(size == 1 || size == 2 || size == 4 || size == 8)
}
