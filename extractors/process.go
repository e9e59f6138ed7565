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
	"os/exec"
	"path"
	"time"

	"github.com/pkg/errors"

	"github.com/forensicanalysis/rapidextractor"
)

// CommandRunner executes an external command and returns its standard
// output.
type CommandRunner func(ctx context.Context, name string, arg ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, arg ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, arg...).Output()
}

// Processes snapshots the running processes via tasklist. The snapshot is
// recorded as a STIX 2.1 process element whose stdout_path points at the
// captured output.
type Processes struct {
	// Runner executes the snapshot command, replaceable in tests.
	Runner CommandRunner
}

// NewProcesses creates the running processes module.
func NewProcesses() *Processes { return &Processes{Runner: execRunner} }

func (*Processes) ID() string   { return "process_extractor" }
func (*Processes) Name() string { return "Running Processes" }
func (*Processes) Description() string {
	return "Saves the list of currently running processes (tasklist)"
}
func (*Processes) OutputSubpath() string { return "Processes_export" }

func (m *Processes) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "RunningProcesses", "")

	startedAt := time.Now().UTC()
	out, err := m.Runner(ctx, "tasklist")
	if err != nil {
		return nil, errors.Wrap(err, "could not run tasklist")
	}

	const outName = "running_processes.txt"
	if _, err := col.writeFile(outName, out); err != nil {
		return nil, err
	}

	element := rapidextractor.NewProcess()
	element.Artifact = "RunningProcesses"
	element.Name = "tasklist"
	element.CommandLine = "tasklist"
	element.CreatedTime = startedAt.Format(timeFormat)
	element.StdoutPath = path.Join(m.OutputSubpath(), outName)
	col.elements = append(col.elements, element)

	return col.close()
}
