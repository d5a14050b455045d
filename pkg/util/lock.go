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
	"sync"

	"github.com/petermattis/goid"
)

// ReentryLock allows the goroutine that already holds it to lock again.
// The registry lookup path re-enters while resolving nested descriptors.
type ReentryLock struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner int64
	count uint64
}

func NewReentryLock() *ReentryLock {
	lock := &ReentryLock{}
	lock.cond = sync.NewCond(&lock.mu)
	return lock
}

func (lock *ReentryLock) Lock() {
	rid := goid.Get()
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.owner == rid {
		lock.count++
		return
	}
	for lock.owner != 0 {
		lock.cond.Wait()
	}
	lock.owner = rid
	lock.count = 1
}

func (lock *ReentryLock) Unlock() {
	rid := goid.Get()
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.owner != rid {
		panic("unlock by non-owner")
	}
	lock.count--
	if lock.count == 0 {
		lock.owner = 0
		lock.cond.Signal()
	}
}
