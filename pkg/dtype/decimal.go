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

	"github.com/govalues/decimal"

	"github.com/tensorkit/narray/pkg/util"
)

// decimal element layout: whole part int64 followed by fractional
// part int64, native byte order.
const decimalItemSize = 16

// NewDecimal builds an opaque descriptor ordering fixed-point decimal
// elements. It doubles as the reference delegate for the opaque kind.
func NewDecimal(scale int) *Descriptor {
	util.AssertFunc(scale >= 0)
	name := fmt.Sprintf("decimal(%d)", scale)
	return NewOpaque(name, decimalItemSize, func(a, b []byte) (int, error) {
		lhs, err := loadDecimal(a, scale)
		if err != nil {
			return 0, err
		}
		rhs, err := loadDecimal(b, scale)
		if err != nil {
			return 0, err
		}
		return lhs.Cmp(rhs), nil
	})
}

func loadDecimal(data []byte, scale int) (decimal.Decimal, error) {
	whole := util.LoadAs[int64](data)
	frac := util.LoadAs[int64](data[8:])
	return decimal.NewFromInt64(whole, frac, scale)
}

// StoreDecimal writes a decimal element into data for tests and
// loaders.
func StoreDecimal(data []byte, whole, frac int64) {
	util.StoreAs[int64](whole, data)
	util.StoreAs[int64](frac, data[8:])
}
