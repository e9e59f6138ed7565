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

// Package extractors contains the extractor modules of rapidextractor. Every
// module copies its artifacts from a read only view of the target filesystem
// into its own directory below the evidence root and records a STIX 2.1
// element per collected file. Most modules additionally write a CSV sidecar
// with per file metadata (source path, modification time, size, MD5).
package extractors

import (
	"bytes"
	"crypto/md5" // #nosec
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/forensicanalysis/fsdoublestar"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

const timeFormat = "2006-01-02T15:04:05.000Z"

var metadataHeader = []string{"File Name", "Source Path", "Modified", "Size", "MD5 Checksum"}

// NewRegistry returns the registry of all built in extractor modules in
// canonical order. The order is fixed, plans are built against it.
func NewRegistry() (*rapidextractor.Registry, error) {
	registry := rapidextractor.NewRegistry()
	for _, module := range []rapidextractor.Extractor{
		NewPrefetch(),
		NewDirTree(),
		NewProcesses(),
		NewInstalledPrograms(),
		NewTeamViewer(),
		NewBet(),
		NewBrowserHistory(),
	} {
		if err := registry.Register(module); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// globSource matches a doublestar pattern against the source filesystem.
// io/fs names are relative and slash separated, so a rooted pattern is
// trimmed for matching and the leading slash is restored on the matches.
func globSource(source afero.Fs, pattern string) ([]string, error) {
	rooted := strings.HasPrefix(pattern, "/")
	if rooted {
		pattern = strings.TrimPrefix(pattern, "/")
		source = afero.NewBasePathFs(source, "/")
	}

	matches, err := fsdoublestar.Glob(afero.NewIOFS(source), pattern)
	if err != nil {
		return nil, err
	}
	if rooted {
		for i := range matches {
			matches[i] = "/" + matches[i]
		}
	}
	return matches, nil
}

// collection accumulates copied files, artifact elements and partial
// failures during one module invocation.
type collection struct {
	c        rapidextractor.CollectContext
	subpath  string
	artifact string
	csvName  string
	csvRows  [][]string
	elements []interface{}
	partial  []string
}

func newCollection(c rapidextractor.CollectContext, subpath, artifact, csvName string) *collection {
	col := &collection{c: c, subpath: subpath, artifact: artifact, csvName: csvName}
	if csvName != "" {
		col.csvRows = [][]string{metadataHeader}
	}
	return col
}

func (col *collection) addPartial(format string, a ...interface{}) {
	detail := fmt.Sprintf(format, a...)
	col.c.Log.Printf("%s: %s", col.artifact, detail)
	col.partial = append(col.partial, detail)
}

// copyFile copies one file from the source filesystem into the module output
// directory. The MD5 checksum is computed from the copied bytes and recorded
// together with the file metadata. The source is never written.
func (col *collection) copyFile(srcPath, destRel string) error {
	src, err := col.c.Source.Open(srcPath)
	if err != nil {
		return errors.Wrap(err, "could not open source file")
	}
	defer src.Close()

	fi, err := src.Stat()
	if err != nil {
		return errors.Wrap(err, "could not stat source file")
	}

	destPath := path.Join(col.c.OutDir, destRel)
	if err := col.c.Dest.MkdirAll(path.Dir(destPath), 0750); err != nil {
		return errors.Wrap(err, "could not create destination directory")
	}
	dest, err := col.c.Dest.Create(destPath)
	if err != nil {
		return errors.Wrap(err, "could not create destination file")
	}
	defer dest.Close()

	h := md5.New() // #nosec
	size, err := io.Copy(io.MultiWriter(dest, h), src)
	if err != nil {
		return errors.Wrap(err, "could not copy file")
	}
	md5sum := fmt.Sprintf("%x", h.Sum(nil))
	mtime := fi.ModTime().UTC().Format(timeFormat)

	element := rapidextractor.NewFile()
	element.Artifact = col.artifact
	element.Name = path.Base(srcPath)
	element.Size = float64(size)
	element.Mtime = mtime
	element.Hashes = map[string]interface{}{"MD5": md5sum}
	element.Origin = map[string]interface{}{"path": srcPath}
	element.ExportPath = path.Join(col.subpath, destRel)
	col.elements = append(col.elements, element)

	if col.csvRows != nil {
		col.csvRows = append(col.csvRows,
			[]string{path.Base(srcPath), srcPath, mtime, strconv.FormatInt(size, 10), md5sum})
	}
	return nil
}

// writeFile stores generated content (reports, listings) in the module
// output directory and records it as a File element.
func (col *collection) writeFile(destRel string, data []byte) (*rapidextractor.File, error) {
	destPath := path.Join(col.c.OutDir, destRel)
	if err := col.c.Dest.MkdirAll(path.Dir(destPath), 0750); err != nil {
		return nil, errors.Wrap(err, "could not create destination directory")
	}
	if err := afero.WriteFile(col.c.Dest, destPath, data, 0644); err != nil {
		return nil, errors.Wrap(err, "could not write file")
	}

	h := md5.New() // #nosec
	h.Write(data)

	element := rapidextractor.NewFile()
	element.Artifact = col.artifact
	element.Name = path.Base(destRel)
	element.Size = float64(len(data))
	element.Hashes = map[string]interface{}{"MD5": fmt.Sprintf("%x", h.Sum(nil))}
	element.ExportPath = path.Join(col.subpath, destRel)
	col.elements = append(col.elements, element)
	return element, nil
}

// close writes the CSV sidecar and assembles the module report.
func (col *collection) close() (*rapidextractor.Report, error) {
	if col.csvRows != nil {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.WriteAll(col.csvRows); err != nil {
			return nil, errors.Wrap(err, "could not write csv sidecar")
		}
		if _, err := col.writeFile(col.csvName, buf.Bytes()); err != nil {
			return nil, err
		}
	}
	return &rapidextractor.Report{Elements: col.elements, Partial: col.partial}, nil
}
