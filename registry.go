// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package rapidextractor

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

var ErrUnknownModule = fmt.Errorf("unknown module")
var ErrDuplicateModule = fmt.Errorf("duplicate module")

// Registry is the catalogue of available extractor modules. It is populated
// once at startup and read only afterwards, module availability must not
// change mid session since plans are built against a fixed registry state.
// The registration order is the canonical plan order.
type Registry struct {
	mutex   sync.RWMutex
	order   []string
	modules map[string]Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: map[string]Extractor{}}
}

// Register adds a module to the registry. Module ids are unique.
func (r *Registry) Register(module Extractor) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.modules[module.ID()]; ok {
		return errors.Wrap(ErrDuplicateModule, module.ID())
	}
	r.order = append(r.order, module.ID())
	r.modules[module.ID()] = module
	return nil
}

// Get returns the module with the given id.
func (r *Registry) Get(id string) (Extractor, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	module, ok := r.modules[id]
	if !ok {
		return nil, errors.Wrap(ErrUnknownModule, id)
	}
	return module, nil
}

// List returns all modules in canonical (registration) order.
func (r *Registry) List() []Extractor {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	modules := make([]Extractor, 0, len(r.order))
	for _, id := range r.order {
		modules = append(modules, r.modules[id])
	}
	return modules
}
