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

import "errors"

var (
	// ErrAllocation: resource exhaustion during Alloc or Clone. A
	// failed Clone leaves no partial descriptor references behind.
	ErrAllocation = errors.New("allocation failed")

	// ErrShapeMismatch: operand shapes cannot broadcast together.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrIncomparableType: operands do not share a comparable element
	// kind. Kind promotion happens before this subsystem is called.
	ErrIncomparableType = errors.New("incomparable element types")

	// ErrUnsupportedOp: the operator is not defined for the element
	// kind, e.g. ordering comparisons on structured elements.
	ErrUnsupportedOp = errors.New("unsupported comparison operator")
)
