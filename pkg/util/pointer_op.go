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

package util

import (
	"unsafe"
)

// LoadAs reinterprets the head of a byte slice as a T.
// The slice must hold at least unsafe.Sizeof(T) bytes.
func LoadAs[T any](data []byte) T {
	return *(*T)(BytesSliceToPointer(data))
}

func StoreAs[T any](val T, data []byte) {
	*(*T)(BytesSliceToPointer(data)) = val
}

func BytesSliceToPointer(data []byte) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(data))
}
