// Copyright 2026 The intmap Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package intmap

import "fmt"

// option provides an interface to do work on a Map while it is being
// created.
type option interface {
	apply(m *Map)
}

type loadFactorOption struct {
	loadFactor float64
}

func (op loadFactorOption) apply(m *Map) {
	if op.loadFactor <= 0 || op.loadFactor > 1 {
		panic(fmt.Sprintf("intmap: load factor %v out of range (0, 1]", op.loadFactor))
	}
	m.loadFactor = op.loadFactor
}

// WithLoadFactor is an option to specify the fraction of the capacity that
// may fill before the map doubles its capacity. The default is 0.75. Lower
// values trade memory for shorter probe sequences. New panics if loadFactor
// is outside (0, 1].
func WithLoadFactor(loadFactor float64) option {
	return loadFactorOption{loadFactor}
}
