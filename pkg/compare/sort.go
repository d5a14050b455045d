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

	"golang.org/x/sync/errgroup"

	"github.com/tensorkit/narray/pkg/array"
	"github.com/tensorkit/narray/pkg/dtype"
	"github.com/tensorkit/narray/pkg/util"
)

const (
	//size <= this, insert sort
	insertion_sort_threshold = 24

	//size > this, sort halves on two goroutines
	parallel_sort_threshold = 1 << 10
)

// OrderSpec names one sort key of a structured array.
type OrderSpec struct {
	Field string
	Desc  bool
	Skip  bool
}

// PlanFromOrders builds the per-sort-call plan. Scalar arrays take no
// specs and compare the whole element; structured arrays take one
// spec per key field.
func PlanFromOrders(desc *dtype.Descriptor, orders []OrderSpec) (*SortOrderData, error) {
	if desc.Kind() != dtype.KIND_STRUCT {
		if len(orders) != 0 {
			return nil, fmt.Errorf("order specs given for scalar dtype %s", desc.Name())
		}
		sod, err := AllocSortOrderData(1)
		if err != nil {
			return nil, err
		}
		sod.SetField(0, 0, 0, desc.Retain())
		return sod, nil
	}

	sod, err := AllocSortOrderData(len(orders))
	if err != nil {
		return nil, err
	}
	for i, spec := range orders {
		f, ok := desc.FieldByName(spec.Field)
		if !ok {
			sod.Free()
			return nil, fmt.Errorf("no such field %s in %s", spec.Field, desc.Name())
		}
		var flag OrderFlag
		if spec.Desc {
			flag |= ORDER_DESC
		}
		if spec.Skip {
			flag |= ORDER_SKIP
		}
		sod.SetField(i, f.Offset, flag, f.Desc.Retain())
	}
	return sod, nil
}

// ArgSort returns the stable ascending permutation of a 1-D array
// under the given order specs. The array is not modified.
func ArgSort(arr *array.Array, orders []OrderSpec) ([]int64, error) {
	util.AssertFunc(arr.NDim() == 1)
	sod, err := PlanFromOrders(arr.Desc(), orders)
	if err != nil {
		return nil, err
	}
	defer sod.Free()

	perm := make([]int64, arr.Size())
	for i := range perm {
		perm[i] = int64(i)
	}
	if err = argSortRange(arr, sod, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

// Sort reorders a 1-D array in place.
func Sort(arr *array.Array, orders []OrderSpec) error {
	perm, err := ArgSort(arr, orders)
	if err != nil {
		return err
	}
	arr.MightBeWritten()

	itemSize := arr.Desc().ItemSize()
	stride := arr.Strides()[0]
	tmp := make([]byte, arr.Size()*itemSize)
	for pos, idx := range perm {
		copy(tmp[pos*itemSize:(pos+1)*itemSize], arr.ElemAt(int(idx)*stride))
	}
	for pos := range perm {
		copy(arr.ElemAt(pos*stride), tmp[pos*itemSize:(pos+1)*itemSize])
	}
	return nil
}

func compareIdx(arr *array.Array, sod *SortOrderData, lhs, rhs int64) (CmpResult, error) {
	stride := arr.Strides()[0]
	return CompareFields(sod, arr.ElemAt(int(lhs)*stride), arr.ElemAt(int(rhs)*stride))
}

// argSortRange sorts perm by the elements it indexes. Large inputs
// sort their halves on two goroutines; each worker clones the plan,
// frees its clone on every exit path, and the caller's plan is freed
// last by the caller.
func argSortRange(arr *array.Array, sod *SortOrderData, perm []int64) error {
	n := len(perm)
	if n <= insertion_sort_threshold {
		return insertionArgSort(arr, sod, perm)
	}

	half := n / 2
	if n > parallel_sort_threshold {
		lClone, err := sod.Clone()
		if err != nil {
			return err
		}
		rClone, err := sod.Clone()
		if err != nil {
			lClone.Free()
			return err
		}
		g := errgroup.Group{}
		g.Go(func() error {
			defer lClone.Free()
			return argSortRange(arr, lClone, perm[:half])
		})
		g.Go(func() error {
			defer rClone.Free()
			return argSortRange(arr, rClone, perm[half:])
		})
		if err = g.Wait(); err != nil {
			return err
		}
	} else {
		if err := argSortRange(arr, sod, perm[:half]); err != nil {
			return err
		}
		if err := argSortRange(arr, sod, perm[half:]); err != nil {
			return err
		}
	}
	return mergeRuns(arr, sod, perm, half)
}

func insertionArgSort(arr *array.Array, sod *SortOrderData, perm []int64) error {
	for i := 1; i < len(perm); i++ {
		key := perm[i]
		j := i - 1
		for j >= 0 {
			res, err := compareIdx(arr, sod, key, perm[j])
			if err != nil {
				return err
			}
			if res != CmpLess {
				break
			}
			perm[j+1] = perm[j]
			j--
		}
		perm[j+1] = key
	}
	return nil
}

// mergeRuns merges two sorted runs perm[:mid] and perm[mid:], taking
// from the left run on ties to keep the sort stable.
func mergeRuns(arr *array.Array, sod *SortOrderData, perm []int64, mid int) error {
	left := util.CopyTo(perm[:mid])
	l, r, out := 0, mid, 0
	for l < len(left) && r < len(perm) {
		res, err := compareIdx(arr, sod, perm[r], left[l])
		if err != nil {
			return err
		}
		if res == CmpLess {
			perm[out] = perm[r]
			r++
		} else {
			perm[out] = left[l]
			l++
		}
		out++
	}
	for l < len(left) {
		perm[out] = left[l]
		l++
		out++
	}
	return nil
}
