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

package rapidextractor

import (
	"context"
	"log"
	"time"

	"github.com/spf13/afero"
)

// Status is the outcome class of one module invocation.
type Status string

const (
	// Success means the module collected everything it targeted.
	Success Status = "success"
	// PartialSuccess means some sub targets could not be collected, the
	// failed ones are enumerated in the error detail.
	PartialSuccess Status = "partial_success"
	// Failure means the module produced no usable result.
	Failure Status = "failure"
)

// CollectContext is passed to every extractor module invocation. The source
// filesystem is the live target and must only be read, the destination
// filesystem is the evidence drive. OutDir is the module's output directory
// below the evidence root, created by the engine before the call.
type CollectContext struct {
	Case   *CaseContext
	Source afero.Fs
	Dest   afero.Fs
	OutDir string
	Getenv func(string) string
	Log    *log.Logger
}

// Report is returned by an extractor module. Partial lists sub targets that
// could not be collected, e.g. a locked browser profile. A module must
// enumerate every failed sub target instead of silently dropping it.
type Report struct {
	Elements []interface{}
	Partial  []string
}

// ArtifactCount returns the number of recorded artifact elements.
func (r *Report) ArtifactCount() int {
	if r == nil {
		return 0
	}
	return len(r.Elements)
}

// Extractor is the capability contract every module implements. Modules must
// not require interactive input, must not write outside their output
// directory and must not modify the source filesystem. Locked or missing
// files on the live target are per target recoverable conditions, not fatal.
type Extractor interface {
	// ID returns the stable short name, e.g. "prefetch_extractor".
	ID() string
	// Name returns a human readable display name.
	Name() string
	// Description returns a short description of the collected artifacts.
	Description() string
	// OutputSubpath returns the directory below the evidence root this
	// module writes to, e.g. "Prefetch_export".
	OutputSubpath() string
	// Collect acquires the module's artifacts. A non nil error marks the
	// whole invocation as failed, partial inaccessibility is reported via
	// Report.Partial instead.
	Collect(ctx context.Context, c CollectContext) (*Report, error)
}

// CollectionResult is the recorded outcome of one plan step. It is created
// by the execution engine and owned by the manifest once recorded, it is
// never mutated afterwards.
type CollectionResult struct {
	ModuleID      string        `json:"module_id"`
	OutputSubpath string        `json:"output_subpath"`
	Status        Status        `json:"status"`
	ArtifactCount int           `json:"artifact_count"`
	ErrorDetail   []string      `json:"error_detail,omitempty"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	Elements      []interface{} `json:"artifacts,omitempty"`
}
