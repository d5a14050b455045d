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
	"strings"

	treemap "github.com/liyue201/gostl/ds/map"
	"github.com/tidwall/btree"

	"github.com/tensorkit/narray/pkg/util"
)

// Registry maps names to descriptors. It holds one reference per
// registered descriptor. The lock is reentrant because registering a
// struct type may look up its field types on the same goroutine.
type Registry struct {
	lock    *util.ReentryLock
	byName  *treemap.Map[string, *Descriptor]
	ordered *btree.BTreeG[string]
}

func NewRegistry() *Registry {
	cmp := func(a, b string) int {
		return strings.Compare(a, b)
	}
	less := func(a, b string) bool {
		return a < b
	}
	return &Registry{
		lock:    util.NewReentryLock(),
		byName:  treemap.New[string, *Descriptor](cmp),
		ordered: btree.NewBTreeG[string](less),
	}
}

// Register stores desc under name and retains it. The caller keeps
// its own reference.
func (reg *Registry) Register(name string, desc *Descriptor) error {
	reg.lock.Lock()
	defer reg.lock.Unlock()
	if _, err := reg.byName.Get(name); err == nil {
		return fmt.Errorf("duplicate descriptor name %s", name)
	}
	reg.byName.Insert(name, desc.Retain())
	reg.ordered.Set(name)
	return nil
}

// Lookup returns the registered descriptor without retaining it; a
// caller that stores the result must Retain it first.
func (reg *Registry) Lookup(name string) (*Descriptor, bool) {
	reg.lock.Lock()
	defer reg.lock.Unlock()
	desc, err := reg.byName.Get(name)
	if err != nil {
		return nil, false
	}
	return desc, true
}

// Unregister drops the registry's reference on the named descriptor.
func (reg *Registry) Unregister(name string) bool {
	reg.lock.Lock()
	defer reg.lock.Unlock()
	desc, err := reg.byName.Get(name)
	if err != nil {
		return false
	}
	reg.byName.Erase(name)
	reg.ordered.Delete(name)
	desc.Release()
	return true
}

func (reg *Registry) Names() []string {
	reg.lock.Lock()
	defer reg.lock.Unlock()
	names := make([]string, 0, reg.byName.Size())
	reg.ordered.Scan(func(name string) bool {
		names = append(names, name)
		return true
	})
	return names
}

func (reg *Registry) Size() int {
	reg.lock.Lock()
	defer reg.lock.Unlock()
	return reg.byName.Size()
}

var GRegistry *Registry

func init() {
	GRegistry = NewRegistry()
	for _, size := range []int{1, 2, 4, 8} {
		registerBuiltin(NewInt(size))
		registerBuiltin(NewUint(size))
	}
	registerBuiltin(NewFloat(4))
	registerBuiltin(NewFloat(8))
}

func registerBuiltin(desc *Descriptor) {
	if err := GRegistry.Register(desc.Name(), desc); err != nil {
		panic(err)
	}
	// the registry holds the only long-lived reference
	desc.Release()
}
