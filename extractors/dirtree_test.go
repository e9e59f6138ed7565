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

package extractors

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestDirTreeCollect(t *testing.T) {
	source := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(source, "/data/a.txt", []byte("a"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/data/b/c.txt", []byte("c"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/data/b/d.txt", []byte("d"), 0644))
	c, dest := testContext(source, nil)

	module := &DirTree{Root: "/data"}
	report, err := module.Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Empty(t, report.Partial)
	assert.Equal(t, 1, report.ArtifactCount())

	tree, err := afero.ReadFile(dest, "out/dir_tree.txt")
	assert.NoError(t, err)
	expected := "/data\n" +
		"├── a.txt\n" +
		"└── b\n" +
		"    ├── c.txt\n" +
		"    └── d.txt\n"
	assert.Equal(t, expected, string(tree))
}

func TestDirTreeCollectUnreadableRoot(t *testing.T) {
	c, dest := testContext(afero.NewMemMapFs(), nil)

	module := &DirTree{Root: "/missing"}
	report, err := module.Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Equal(t, 1, report.ArtifactCount())

	// unreadable directories stay in the listing as placeholders
	tree, err := afero.ReadFile(dest, "out/dir_tree.txt")
	assert.NoError(t, err)
	assert.Contains(t, string(tree), "[Permission Denied]")
}
