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
	"go.uber.org/zap"

	"github.com/tensorkit/narray/pkg/util"
)

// MightBeWritten is consulted before any in-place mutation. For a
// provisional view it emits one advisory notice, the first time only,
// and reports true. The write always proceeds; this is a diagnostic,
// not a correctness mechanism.
func (arr *Array) MightBeWritten() bool {
	if arr._flags&FlagWarnOnWrite == 0 {
		return false
	}
	if arr._warned.CompareAndSwap(false, true) {
		util.Warn("writing to an array that may become a view",
			zap.String("dtype", arr._desc.Name()),
			zap.Ints("shape", arr._shape))
	}
	return true
}
