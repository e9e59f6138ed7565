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

	"github.com/forensicanalysis/rapidextractor"
)

func TestInstalledProgramsCollect(t *testing.T) {
	source := afero.NewMemMapFs()
	assert.NoError(t, source.MkdirAll("/Program Files/AppOne", 0755))
	assert.NoError(t, source.MkdirAll("/Program Files/AppTwo", 0755))
	assert.NoError(t, afero.WriteFile(source, "/Program Files/desktop.ini", []byte("x"), 0644))
	c, dest := testContext(source, nil)

	module := &InstalledPrograms{Roots: []ProgramRoot{
		{Path: "/Program Files", DestName: "ProgramFiles"},
		{Path: "/Program Files (x86)", DestName: "ProgramFiles_X86"},
	}}
	report, err := module.Collect(context.Background(), c)
	assert.NoError(t, err)

	// the missing x86 directory is enumerated, not silently dropped
	assert.Len(t, report.Partial, 1)
	assert.Contains(t, report.Partial[0], "/Program Files (x86)")

	// only directory names are replicated, files are ignored
	assert.Equal(t, 2, report.ArtifactCount())
	for _, element := range report.Elements {
		directory := element.(*rapidextractor.Directory)
		assert.Contains(t, []string{"/Program Files/AppOne", "/Program Files/AppTwo"}, directory.Path)
	}

	exists, err := afero.DirExists(dest, "out/ProgramFiles/AppOne")
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = afero.Exists(dest, "out/ProgramFiles/desktop.ini")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestInstalledProgramsCollectNoRoots(t *testing.T) {
	c, _ := testContext(afero.NewMemMapFs(), nil)

	module := &InstalledPrograms{Roots: []ProgramRoot{{Path: "/nope", DestName: "Nope"}}}
	report, err := module.Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Contains(t, report.Partial, "no program directories found")
}
