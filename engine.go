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
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ErrStorageUnavailable is returned when the evidence root cannot be created
// or written. It is the single fatal precondition of a run, everything else
// degrades to a recorded step result.
var ErrStorageUnavailable = fmt.Errorf("evidence storage unavailable")

// LogFileName is the run log written at the evidence root.
const LogFileName = "extraction.log"

// Options configure an Engine. Zero fields are filled with defaults.
type Options struct {
	// BaseDir is the drive root the case layout is created under.
	BaseDir string
	// Source is the live target filesystem. The engine hands extractors a
	// read only view of it.
	Source afero.Fs
	// Evidence is the filesystem of the evidence drive.
	Evidence afero.Fs
	// StepTimeout limits a single module invocation. An expired timeout is
	// recorded as a step failure, it never aborts the run.
	StepTimeout time.Duration
	// Getenv resolves environment variables like WINDIR for extractors.
	Getenv func(string) string
	// LogWriter receives a copy of the run log in addition to the
	// extraction.log file.
	LogWriter io.Writer
}

// DefaultOptions returns the options used for zero fields.
func DefaultOptions() Options {
	return Options{
		BaseDir:     ".",
		Source:      afero.NewOsFs(),
		Evidence:    afero.NewOsFs(),
		StepTimeout: 30 * time.Minute,
	}
}

// Engine runs execution plans on the current machine. Plan steps run
// strictly sequential, modules may touch overlapping OS resources and the
// audit record keeps a single, reproducible order.
type Engine struct {
	registry *Registry
	options  Options
}

// NewEngine creates an Engine for a registry.
func NewEngine(registry *Registry, options Options) (*Engine, error) {
	if err := mergo.Merge(&options, DefaultOptions()); err != nil {
		return nil, errors.Wrap(err, "could not merge options")
	}
	if options.Getenv == nil {
		options.Getenv = os.Getenv
	}
	return &Engine{registry: registry, options: options}, nil
}

// Run executes a plan. Only an unwritable evidence root fails the run, any
// module error, panic or timeout is converted into a Failure result and the
// remaining steps still execute. The returned manifest contains one result
// per planned step, in plan order, and has already been flushed to disk
// after every step.
func (e *Engine) Run(ctx context.Context, plan *ExecutionPlan) (*Manifest, error) {
	evidenceRoot := path.Join(e.options.BaseDir, plan.Case.EvidenceRoot())
	if err := e.options.Evidence.MkdirAll(evidenceRoot, 0750); err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}

	logFile, err := e.options.Evidence.OpenFile(
		path.Join(evidenceRoot, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	defer logFile.Close()

	var logDst io.Writer = logFile
	if e.options.LogWriter != nil {
		logDst = io.MultiWriter(logFile, e.options.LogWriter)
	}
	logger := log.New(logDst, "", log.LstdFlags)

	manifest := &Manifest{
		Type:         manifestType,
		RunID:        uuid.New().String(),
		Case:         plan.Case,
		RunStartedAt: time.Now().UTC(),
		Results:      []*CollectionResult{},
	}
	writer, err := NewManifestWriter(e.options.Evidence, evidenceRoot, manifest)
	if err != nil {
		return nil, errors.Wrap(ErrStorageUnavailable, err.Error())
	}

	logger.Printf("starting data extraction for case %s, device %s (run %s)",
		plan.Case.CaseName, plan.Case.DeviceName, manifest.RunID)

	source := afero.NewReadOnlyFs(e.options.Source)
	for _, step := range plan.Steps {
		result := e.runStep(ctx, plan, step, evidenceRoot, source, logger)
		if err := writer.Append(result); err != nil {
			return manifest, errors.Wrap(ErrStorageUnavailable, err.Error())
		}
	}

	if err := writer.Finalize(time.Now().UTC()); err != nil {
		return manifest, errors.Wrap(ErrStorageUnavailable, err.Error())
	}
	logger.Printf("data extraction completed, manifest written to %s", writer.Path())
	return manifest, nil
}

func (e *Engine) runStep(ctx context.Context, plan *ExecutionPlan, step PlanStep,
	evidenceRoot string, source afero.Fs, logger *log.Logger) *CollectionResult {
	result := &CollectionResult{
		ModuleID:      step.ModuleID,
		OutputSubpath: step.OutputSubpath,
		StartedAt:     time.Now().UTC(),
	}

	logger.Printf("starting %s", step.ModuleID)

	module, err := e.registry.Get(step.ModuleID)
	if err != nil {
		// Unknown ids fail the plan build, an edited plan file must not
		// abort the live collection.
		return e.finishStep(result, nil, err, logger)
	}

	outDir := path.Join(evidenceRoot, step.OutputSubpath)
	if err := e.options.Evidence.MkdirAll(outDir, 0750); err != nil {
		return e.finishStep(result, nil, errors.Wrap(err, "could not create output directory"), logger)
	}

	report, err := e.invoke(ctx, module, CollectContext{
		Case:   &plan.Case,
		Source: source,
		Dest:   e.options.Evidence,
		OutDir: outDir,
		Getenv: e.options.Getenv,
		Log:    logger,
	})
	return e.finishStep(result, report, err, logger)
}

func (e *Engine) finishStep(result *CollectionResult, report *Report, err error, logger *log.Logger) *CollectionResult {
	result.FinishedAt = time.Now().UTC()

	switch {
	case err != nil:
		result.Status = Failure
		result.ErrorDetail = []string{err.Error()}
	case report != nil && len(report.Partial) > 0:
		result.Status = PartialSuccess
		result.ErrorDetail = report.Partial
	default:
		result.Status = Success
	}

	if report != nil {
		result.ArtifactCount = report.ArtifactCount()
		for _, element := range report.Elements {
			result.Elements = append(result.Elements, lowerElement(element))
		}
	}

	logger.Printf("%s completed in %.2f seconds with status %s",
		result.ModuleID, result.FinishedAt.Sub(result.StartedAt).Seconds(), result.Status)
	if len(result.ErrorDetail) > 0 {
		for _, detail := range result.ErrorDetail {
			logger.Printf("%s: %s", result.ModuleID, detail)
		}
	}
	return result
}

// invoke runs a single module inside the fault boundary. Panics and timeouts
// are converted into errors. On timeout the collector goroutine is
// abandoned, its late result is discarded.
func (e *Engine) invoke(ctx context.Context, module Extractor, c CollectContext) (*Report, error) {
	stepCtx, cancel := context.WithTimeout(ctx, e.options.StepTimeout)
	defer cancel()

	type outcome struct {
		report *Report
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{nil, errors.Errorf("%s panicked: %v", module.ID(), r)}
			}
		}()
		report, err := module.Collect(stepCtx, c)
		done <- outcome{report, err}
	}()

	select {
	case o := <-done:
		return o.report, o.err
	case <-stepCtx.Done():
		return nil, errors.Wrap(stepCtx.Err(), module.ID())
	}
}
