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

type Kind int

const (
	KIND_INVALID Kind = iota
	KIND_INT
	KIND_UINT
	KIND_FLOAT
	KIND_STRING
	KIND_OPAQUE
	KIND_STRUCT
)

func (k Kind) String() string {
	switch k {
	case KIND_INT:
		return "int"
	case KIND_UINT:
		return "uint"
	case KIND_FLOAT:
		return "float"
	case KIND_STRING:
		return "string"
	case KIND_OPAQUE:
		return "opaque"
	case KIND_STRUCT:
		return "struct"
	default:
		return "invalid"
	}
}

// IsNumeric reports whether elements of this kind order by value.
func (k Kind) IsNumeric() bool {
	return k == KIND_INT || k == KIND_UINT || k == KIND_FLOAT
}
