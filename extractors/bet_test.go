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

func TestBetCollect(t *testing.T) {
	source := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(source, "/BET/Logs/2024/06/terminal.log", []byte("t"), 0644))
	assert.NoError(t, afero.WriteFile(source, "/BET/Logs/errors.log", []byte("e"), 0644))
	c, dest := testContext(source, nil)

	module := &Bet{Root: "/BET/Logs"}
	report, err := module.Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Empty(t, report.Partial)

	// two log files plus the csv sidecar
	assert.Equal(t, 3, report.ArtifactCount())

	// the layout below Logs is preserved
	exists, err := afero.Exists(dest, "out/Logs/2024/06/terminal.log")
	assert.NoError(t, err)
	assert.True(t, exists)
	exists, err = afero.Exists(dest, "out/Logs/errors.log")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestBetCollectNotInstalled(t *testing.T) {
	c, _ := testContext(afero.NewMemMapFs(), nil)

	report, err := NewBet().Collect(context.Background(), c)
	assert.NoError(t, err)
	assert.Len(t, report.Partial, 1)
	assert.Contains(t, report.Partial[0], "BET log directory not found")
}
