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
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

// Bet collects the log files of the BET betting software, keeping the
// directory layout below Logs.
type Bet struct {
	// Root is the BET log directory on the target.
	Root string
}

// NewBet creates the BET module for the default log location.
func NewBet() *Bet { return &Bet{Root: `C:\BET\Logs`} }

func (*Bet) ID() string   { return "bet_extractor" }
func (*Bet) Name() string { return "BET Logs" }
func (*Bet) Description() string {
	return "Copies the BET betting software log files with per file metadata"
}
func (*Bet) OutputSubpath() string { return "BET_export" }

func (m *Bet) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "BET", "bet_files.csv")

	exists, err := afero.DirExists(c.Source, m.Root)
	if err != nil {
		return nil, err
	}
	if !exists {
		col.addPartial("BET log directory not found: %s", m.Root)
		return col.close()
	}

	err = afero.Walk(c.Source, m.Root, func(srcPath string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			col.addPartial("could not access %s: %s", srcPath, err)
			return nil
		}
		if info == nil || info.IsDir() {
			return nil
		}

		srcPath = filepath.ToSlash(srcPath)
		rel := strings.TrimPrefix(strings.TrimPrefix(srcPath, filepath.ToSlash(m.Root)), "/")
		if copyErr := col.copyFile(srcPath, path.Join("Logs", rel)); copyErr != nil {
			col.addPartial("could not copy %s: %s", srcPath, copyErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return col.close()
}
