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

func TestPrefetchCollect(t *testing.T) {
	source := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(source, "/Windows/Prefetch/NOTEPAD.EXE-AF43252301.pf", []byte("pf data"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/Windows/Prefetch/CMD.EXE-0BD30981.pf", []byte("more pf data"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/Windows/Prefetch/layout.ini", []byte("not a pf file"), 0644))
	c, dest := testContext(source, map[string]string{"WINDIR": "/Windows"})

	report, err := NewPrefetch().Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Empty(t, report.Partial)

	// two prefetch files plus the csv sidecar
	assert.Equal(t, 3, report.ArtifactCount())

	exists, err := afero.Exists(dest, "out/Windows/Prefetch/NOTEPAD.EXE-AF43252301.pf")
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = afero.Exists(dest, "out/Windows/Prefetch/layout.ini")
	assert.NoError(t, err)
	assert.False(t, exists)

	csvData, err := afero.ReadFile(dest, "out/prefetch_files.csv")
	assert.NoError(t, err)
	assert.Contains(t, string(csvData), "NOTEPAD.EXE-AF43252301.pf")
}

func TestPrefetchCollectMissingDirectory(t *testing.T) {
	c, _ := testContext(afero.NewMemMapFs(), map[string]string{"WINDIR": "/Windows"})

	report, err := NewPrefetch().Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Len(t, report.Partial, 1)
	assert.Contains(t, report.Partial[0], "prefetch directory not found")
}
