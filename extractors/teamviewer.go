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
	"strings"

	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

// TeamViewer collects the log and text files from the TeamViewer program
// directories, preserving their relative layout.
type TeamViewer struct {
	Roots []string
}

// NewTeamViewer creates the TeamViewer module for the default install
// locations.
func NewTeamViewer() *TeamViewer {
	return &TeamViewer{Roots: []string{
		`C:\Program Files (x86)\TeamViewer`,
		`C:\Program Files\TeamViewer`,
	}}
}

func (*TeamViewer) ID() string   { return "teamviewer_extractor" }
func (*TeamViewer) Name() string { return "TeamViewer Logs" }
func (*TeamViewer) Description() string {
	return "Copies the TeamViewer log and text files with per file metadata"
}
func (*TeamViewer) OutputSubpath() string { return "TeamViewer_export" }

func (m *TeamViewer) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "TeamViewer", "teamviewer_files.csv")

	filesCopied := 0
	for _, root := range m.Roots {
		exists, err := afero.DirExists(c.Source, root)
		if err != nil || !exists {
			c.Log.Printf("TeamViewer: path not found: %s", root)
			continue
		}

		for _, pattern := range []string{"**/*.log", "**/*.txt"} {
			matches, err := globSource(c.Source, path.Join(root, pattern))
			if err != nil {
				col.addPartial("could not search %s in %s: %s", pattern, root, err)
				continue
			}

			for _, match := range matches {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				rel := strings.TrimPrefix(strings.TrimPrefix(match, root), "/")
				if err := col.copyFile(match, rel); err != nil {
					col.addPartial("could not copy %s: %s", match, err)
					continue
				}
				filesCopied++
			}
		}
	}

	if filesCopied == 0 {
		col.addPartial("no TeamViewer text files or log files found")
	}
	return col.close()
}
