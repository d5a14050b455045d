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

	"github.com/xlab/treeprint"
)

// Explain renders the descriptor, nested fields included, as a tree.
func (desc *Descriptor) Explain() string {
	tree := treeprint.NewWithRoot(desc.describe())
	writeFieldsTree(tree, desc)
	return tree.String()
}

func (desc *Descriptor) describe() string {
	return fmt.Sprintf("%s [%s, %d bytes]", desc._name, desc._kind, desc._itemSize)
}

func writeFieldsTree(tree treeprint.Tree, desc *Descriptor) {
	for _, f := range desc._fields {
		label := fmt.Sprintf("%s @%d %s", f.Name, f.Offset, f.Desc.describe())
		if f.Desc.Kind() == KIND_STRUCT {
			writeFieldsTree(tree.AddBranch(label), f.Desc)
		} else {
			tree.AddNode(label)
		}
	}
}
