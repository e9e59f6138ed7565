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
	"bytes"
	"context"
	"path"
	"sort"

	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

// DirTree renders the directory tree of the target volume into a text file.
// Unreadable directories are kept in the listing as placeholders instead of
// aborting the walk.
type DirTree struct {
	// Root is the directory the tree starts at.
	Root string
}

// NewDirTree creates the directory tree module for the system volume.
func NewDirTree() *DirTree { return &DirTree{Root: `C:\`} }

func (*DirTree) ID() string   { return "dir_tree_extractor" }
func (*DirTree) Name() string { return "Directory Tree" }
func (*DirTree) Description() string {
	return "Saves a listing of the whole directory tree of the system volume"
}
func (*DirTree) OutputSubpath() string { return "DirTree_export" }

func (m *DirTree) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "DirTree", "")

	var buf bytes.Buffer
	buf.WriteString(m.Root + "\n")
	if err := renderTree(ctx, c.Source, m.Root, "", &buf); err != nil {
		return nil, err
	}

	if _, err := col.writeFile("dir_tree.txt", buf.Bytes()); err != nil {
		return nil, err
	}
	return col.close()
}

func renderTree(ctx context.Context, fs afero.Fs, dir, prefix string, buf *bytes.Buffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		buf.WriteString(prefix + "    [Permission Denied]\n")
		return nil
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for i, info := range infos {
		last := i == len(infos)-1
		connector := "├── "
		extension := "│   "
		if last {
			connector = "└── "
			extension = "    "
		}
		buf.WriteString(prefix + connector + info.Name() + "\n")
		if info.IsDir() {
			err := renderTree(ctx, fs, path.Join(dir, info.Name()), prefix+extension, buf)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
