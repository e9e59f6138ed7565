/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package rapidextractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeExtractor is a configurable module for engine and plan tests.
type fakeExtractor struct {
	id      string
	subpath string
	collect func(ctx context.Context, c CollectContext) (*Report, error)
}

func (f *fakeExtractor) ID() string            { return f.id }
func (f *fakeExtractor) Name() string          { return f.id }
func (f *fakeExtractor) Description() string   { return "fake module " + f.id }
func (f *fakeExtractor) OutputSubpath() string { return f.subpath }

func (f *fakeExtractor) Collect(ctx context.Context, c CollectContext) (*Report, error) {
	if f.collect == nil {
		return &Report{}, nil
	}
	return f.collect(ctx, c)
}

func testRegistry(t *testing.T, modules ...Extractor) *Registry {
	registry := NewRegistry()
	for _, module := range modules {
		if err := registry.Register(module); err != nil {
			t.Fatal(err)
		}
	}
	return registry
}

func TestRegistryList(t *testing.T) {
	registry := testRegistry(t,
		&fakeExtractor{id: "alpha", subpath: "Alpha_export"},
		&fakeExtractor{id: "beta", subpath: "Beta_export"},
		&fakeExtractor{id: "gamma", subpath: "Gamma_export"},
	)

	var ids []string
	for _, module := range registry.List() {
		ids = append(ids, module.ID())
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids)
}

func TestRegistryGet(t *testing.T) {
	registry := testRegistry(t, &fakeExtractor{id: "alpha", subpath: "Alpha_export"})

	module, err := registry.Get("alpha")
	assert.NoError(t, err)
	assert.Equal(t, "alpha", module.ID())

	_, err = registry.Get("does_not_exist")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModule))
}

func TestRegistryRegisterDuplicate(t *testing.T) {
	registry := testRegistry(t, &fakeExtractor{id: "alpha", subpath: "Alpha_export"})

	err := registry.Register(&fakeExtractor{id: "alpha", subpath: "Other_export"})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateModule))

	// the first registration stays untouched
	module, err := registry.Get("alpha")
	assert.NoError(t, err)
	assert.Equal(t, "Alpha_export", module.OutputSubpath())
	assert.Len(t, registry.List(), 1)
}
