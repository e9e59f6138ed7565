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
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

// Prefetch collects the Windows Prefetch files (%WINDIR%\Prefetch\*.pf).
// The Windows\Prefetch directory layout is preserved below the output
// directory.
type Prefetch struct{}

// NewPrefetch creates the prefetch module.
func NewPrefetch() *Prefetch { return &Prefetch{} }

func (*Prefetch) ID() string   { return "prefetch_extractor" }
func (*Prefetch) Name() string { return "Prefetch Files" }
func (*Prefetch) Description() string {
	return "Copies the Windows Prefetch files with per file metadata and MD5 checksums"
}
func (*Prefetch) OutputSubpath() string { return "Prefetch_export" }

func (m *Prefetch) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "Prefetch", "prefetch_files.csv")

	windir := c.Getenv("WINDIR")
	if windir == "" {
		windir = `C:\Windows`
	}
	prefetchDir := filepath.ToSlash(filepath.Join(windir, "Prefetch"))

	exists, err := afero.DirExists(c.Source, prefetchDir)
	if err != nil {
		return nil, err
	}
	if !exists {
		col.addPartial("prefetch directory not found: %s", prefetchDir)
		return col.close()
	}

	matches, err := globSource(c.Source, path.Join(prefetchDir, "**/*.pf"))
	if err != nil {
		return nil, err
	}

	for _, match := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := col.copyFile(match, path.Join("Windows", "Prefetch", path.Base(match))); err != nil {
			col.addPartial("could not copy %s: %s", match, err)
		}
	}
	return col.close()
}
