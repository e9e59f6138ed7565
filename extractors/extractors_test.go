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
	"io"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/forensicanalysis/rapidextractor"
)

// testContext builds a CollectContext the way the engine does: a read only
// view of the source and an in memory evidence filesystem.
func testContext(source afero.Fs, env map[string]string) (rapidextractor.CollectContext, afero.Fs) {
	dest := afero.NewMemMapFs()
	c := rapidextractor.CollectContext{
		Source: afero.NewReadOnlyFs(source),
		Dest:   dest,
		OutDir: "out",
		Getenv: func(key string) string { return env[key] },
		Log:    log.New(io.Discard, "", 0),
	}
	return c, dest
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry()
	assert.NoError(t, err)

	var ids []string
	for _, module := range registry.List() {
		ids = append(ids, module.ID())
	}
	assert.Equal(t, []string{
		"prefetch_extractor",
		"dir_tree_extractor",
		"process_extractor",
		"installed_programs_extractor",
		"teamviewer_extractor",
		"bet_extractor",
		"browser_history_extractor",
	}, ids)

	for _, module := range registry.List() {
		assert.NotEmpty(t, module.Name())
		assert.NotEmpty(t, module.Description())
		assert.NotEmpty(t, module.OutputSubpath())
	}
}

func TestGlobSource(t *testing.T) {
	source := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(source, "/logs/a.log", []byte("a"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/logs/sub/b.log", []byte("b"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/logs/c.txt", []byte("c"), 0644))

	// rooted patterns return rooted matches
	matches, err := globSource(source, "/logs/**/*.log")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"/logs/a.log", "/logs/sub/b.log"}, matches)

	// relative patterns against a relative filesystem
	matches, err = globSource(afero.NewBasePathFs(source, "/logs"), "**/*.log")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.log", "sub/b.log"}, matches)
}

func TestCollectionCopyFile(t *testing.T) {
	source := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(source, "src/data.bin", []byte("payload"), 0644))
	c, dest := testContext(source, nil)

	col := newCollection(c, "Test_export", "Test", "test_files.csv")
	assert.NoError(t, col.copyFile("src/data.bin", "sub/data.bin"))

	b, err := afero.ReadFile(dest, "out/sub/data.bin")
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(b))

	assert.Len(t, col.elements, 1)
	file := col.elements[0].(*rapidextractor.File)
	assert.Equal(t, "data.bin", file.Name)
	assert.Equal(t, float64(7), file.Size)
	assert.Equal(t, "Test_export/sub/data.bin", file.ExportPath)
	assert.Equal(t, "321c3cf486ed509164edec1e1981fec8", file.Hashes["MD5"])

	report, err := col.close()
	assert.NoError(t, err)
	// the copied file plus the csv sidecar
	assert.Equal(t, 2, report.ArtifactCount())

	csvData, err := afero.ReadFile(dest, "out/test_files.csv")
	assert.NoError(t, err)
	assert.Contains(t, string(csvData), "File Name,Source Path,Modified,Size,MD5 Checksum")
	assert.Contains(t, string(csvData), "data.bin,src/data.bin,")
	assert.Contains(t, string(csvData), "321c3cf486ed509164edec1e1981fec8")
}

func TestCollectionWithoutSidecar(t *testing.T) {
	c, dest := testContext(afero.NewMemMapFs(), nil)

	col := newCollection(c, "Test_export", "Test", "")
	_, err := col.writeFile("report.txt", []byte("generated"))
	assert.NoError(t, err)

	report, err := col.close()
	assert.NoError(t, err)
	assert.Equal(t, 1, report.ArtifactCount())

	exists, err := afero.Exists(dest, "out/report.txt")
	assert.NoError(t, err)
	assert.True(t, exists)
}
