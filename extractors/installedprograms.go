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

	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

// ProgramRoot maps a program directory on the target to a folder name below
// the module output directory.
type ProgramRoot struct {
	Path     string
	DestName string
}

// InstalledPrograms replicates the top level directory skeleton of the
// program directories. Only directory names are taken over, no files are
// copied.
type InstalledPrograms struct {
	Roots []ProgramRoot
}

// NewInstalledPrograms creates the installed programs module for the default
// Windows program directories.
func NewInstalledPrograms() *InstalledPrograms {
	return &InstalledPrograms{Roots: []ProgramRoot{
		{Path: `C:\Program Files`, DestName: "ProgramFiles"},
		{Path: `C:\Program Files (x86)`, DestName: "ProgramFiles_X86"},
	}}
}

func (*InstalledPrograms) ID() string   { return "installed_programs_extractor" }
func (*InstalledPrograms) Name() string { return "Installed Programs" }
func (*InstalledPrograms) Description() string {
	return "Replicates the top level directory names of the program directories"
}
func (*InstalledPrograms) OutputSubpath() string { return "Programs_export" }

func (m *InstalledPrograms) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "InstalledPrograms", "")

	found := 0
	for _, root := range m.Roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		infos, err := afero.ReadDir(c.Source, root.Path)
		if err != nil {
			col.addPartial("could not list %s: %s", root.Path, err)
			continue
		}
		found++

		for _, info := range infos {
			if !info.IsDir() {
				continue
			}
			destPath := path.Join(c.OutDir, root.DestName, info.Name())
			if err := c.Dest.MkdirAll(destPath, 0750); err != nil {
				col.addPartial("could not create %s: %s", destPath, err)
				continue
			}

			element := rapidextractor.NewDirectory()
			element.Artifact = "InstalledPrograms"
			element.Path = path.Join(root.Path, info.Name())
			element.Mtime = info.ModTime().UTC().Format(timeFormat)
			col.elements = append(col.elements, element)
		}
	}

	if found == 0 {
		col.addPartial("no program directories found")
	}
	return col.close()
}
