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

	"github.com/tensorkit/narray/pkg/array"
	"github.com/tensorkit/narray/pkg/dtype"
)

type CmpOp int

const (
	CMP_EQ CmpOp = iota
	CMP_NE
	CMP_LT
	CMP_LE
	CMP_GT
	CMP_GE
)

func (op CmpOp) String() string {
	switch op {
	case CMP_EQ:
		return "=="
	case CMP_NE:
		return "!="
	case CMP_LT:
		return "<"
	case CMP_LE:
		return "<="
	case CMP_GT:
		return ">"
	case CMP_GE:
		return ">="
	default:
		return "invalid"
	}
}

func (op CmpOp) isOrdering() bool {
	return op != CMP_EQ && op != CMP_NE
}

// ParseCmpOp maps an operator symbol to its CmpOp.
func ParseCmpOp(s string) (CmpOp, error) {
	switch s {
	case "==":
		return CMP_EQ, nil
	case "!=":
		return CMP_NE, nil
	case "<":
		return CMP_LT, nil
	case "<=":
		return CMP_LE, nil
	case ">":
		return CMP_GT, nil
	case ">=":
		return CMP_GE, nil
	default:
		return CMP_EQ, fmt.Errorf("unknown comparison operator %s", s)
	}
}

type compareOpts struct {
	rstrip bool
}

type CompareOption func(*compareOpts)

// WithRStrip excludes trailing whitespace on both string operands
// from the comparison window.
func WithRStrip() CompareOption {
	return func(o *compareOpts) {
		o.rstrip = true
	}
}

// CompareArrays evaluates op elementwise over two broadcast operands
// and returns a fresh boolean array of the broadcast shape. Neither
// input is mutated; the result aliases neither buffer.
func CompareArrays(lhs, rhs *array.Array, op CmpOp, opts ...CompareOption) (*array.Array, error) {
	var o compareOpts
	for _, opt := range opts {
		opt(&o)
	}

	shape, err := array.BroadcastShapes(lhs.Shape(), rhs.Shape())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShapeMismatch, err)
	}

	ldesc := lhs.Desc()
	rdesc := rhs.Desc()
	if ldesc.Kind() != rdesc.Kind() || !ldesc.SameLayout(rdesc) {
		return nil, fmt.Errorf("%w: %s vs %s", ErrIncomparableType, ldesc.Name(), rdesc.Name())
	}
	if ldesc.Kind() == dtype.KIND_STRUCT && op.isOrdering() {
		// ordering on structured elements is not total here
		return nil, fmt.Errorf("%w: %s on structured elements", ErrUnsupportedOp, op)
	}

	out := newBoolArray(shape)
	if err = fillCompareResult(out, lhs, rhs, shape, op, &o); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

func newBoolArray(shape []int) *array.Array {
	desc := dtype.NewBool()
	// the array keeps the only long-lived reference
	defer desc.Release()
	return array.NewArray(desc, shape)
}

func fillCompareResult(
	out, lhs, rhs *array.Array,
	shape []int,
	op CmpOp,
	o *compareOpts,
) error {
	ldesc := lhs.Desc()

	var plan *SortOrderData
	if ldesc.Kind() == dtype.KIND_STRUCT {
		// equality walks fields through the same plan machinery the
		// sort path uses
		var err error
		plan, err = PlanFromStruct(ldesc)
		if err != nil {
			return err
		}
		defer plan.Free()
	}

	lhsStrides := array.BroadcastStrides(lhs.Shape(), lhs.Strides(), shape)
	rhsStrides := array.BroadcastStrides(rhs.Shape(), rhs.Strides(), shape)
	iter := array.NewBroadcastIter(shape, lhsStrides, rhsStrides)

	outData := out.Data()
	pos := 0
	for ; iter.IsValid(); iter.Next() {
		a := lhs.ElemAt(iter.LhsOffset())
		b := rhs.ElemAt(iter.RhsOffset())
		var res CmpResult
		var err error
		if plan != nil {
			res, err = CompareFields(plan, a, b)
		} else {
			res, err = CompareScalar(ldesc, a, b, o.rstrip)
		}
		if err != nil {
			return err
		}
		if opHolds(op, res) {
			outData[pos] = 1
		} else {
			outData[pos] = 0
		}
		pos++
	}
	return nil
}

func opHolds(op CmpOp, res CmpResult) bool {
	switch op {
	case CMP_EQ:
		return res == CmpEqual
	case CMP_NE:
		return res != CmpEqual
	case CMP_LT:
		return res == CmpLess
	case CMP_LE:
		return res != CmpGreater
	case CMP_GT:
		return res == CmpGreater
	case CMP_GE:
		return res != CmpLess
	default:
		panic("usp")
	}
}
