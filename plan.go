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
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const planVersion = 1
const planType = "rapidextractor_plan"

// PlanFileName is the serialized plan written next to the generated script.
const PlanFileName = "plan.json"

// ScriptFileName is the generated collection script for the target device.
const ScriptFileName = "collect.cmd"

var ErrPlanExists = fmt.Errorf("plan already exists")

// PlanStep is one module invocation in an ExecutionPlan.
type PlanStep struct {
	ModuleID      string `json:"module_id"`
	OutputSubpath string `json:"output_subpath"`
}

// ExecutionPlan is the ordered, immutable list of modules to run for one
// case. Steps follow the registry's canonical order, never the user's
// selection order, so two builds from the same selection are identical.
type ExecutionPlan struct {
	Type    string      `json:"type"`
	Version int         `json:"version"`
	Case    CaseContext `json:"case"`
	Steps   []PlanStep  `json:"steps"`
}

// BuildPlan resolves a module selection against the registry and the case
// context. Every selected id must resolve, a single unknown id fails the
// whole build so a bad plan is never handed to a live target run. The
// selection order is not significant.
func BuildPlan(registry *Registry, selection []string, caseContext *CaseContext) (*ExecutionPlan, error) {
	if len(selection) == 0 {
		return nil, errors.New("empty module selection")
	}

	selected := map[string]bool{}
	for _, id := range selection {
		if _, err := registry.Get(id); err != nil {
			return nil, err
		}
		selected[id] = true
	}

	plan := &ExecutionPlan{Type: planType, Version: planVersion, Case: *caseContext}
	for _, module := range registry.List() {
		if selected[module.ID()] {
			plan.Steps = append(plan.Steps, PlanStep{
				ModuleID:      module.ID(),
				OutputSubpath: module.OutputSubpath(),
			})
		}
	}
	return plan, nil
}

// Marshal serializes the plan. The serialization is lossless and
// deterministic, identical plans marshal byte for byte identical.
func (plan *ExecutionPlan) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal plan")
	}
	return append(b, '\n'), nil
}

// ParsePlan validates and deserializes a plan file.
func ParsePlan(b []byte) (*ExecutionPlan, error) {
	flaws, err := ValidatePlanBytes(b)
	if err != nil {
		return nil, err
	}
	if len(flaws) > 0 {
		return nil, errors.Errorf("invalid plan [%s]", strings.Join(flaws, ", "))
	}

	plan := &ExecutionPlan{}
	if err := json.Unmarshal(b, plan); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal plan")
	}
	return plan, nil
}

// WritePlan writes the serialized plan and the generated collection script
// into dir. The script is self contained and only references paths relative
// to the drive it ships on. An existing plan is never overwritten.
func WritePlan(fs afero.Fs, dir string, plan *ExecutionPlan) error {
	planPath := path.Join(dir, PlanFileName)
	exists, err := afero.Exists(fs, planPath)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrap(ErrPlanExists, planPath)
	}

	if err := fs.MkdirAll(dir, 0750); err != nil {
		return err
	}

	b, err := plan.Marshal()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, planPath, b, 0644); err != nil {
		return errors.Wrap(err, "could not write plan")
	}

	script := collectionScript(plan)
	err = afero.WriteFile(fs, path.Join(dir, ScriptFileName), []byte(script), 0755)
	return errors.Wrap(err, "could not write script")
}

// collectionScript renders the batch wrapper that replays the plan on the
// target device. It changes into its own directory first, so all paths stay
// relative to the external drive.
func collectionScript(plan *ExecutionPlan) string {
	var b strings.Builder
	b.WriteString("@echo off\r\n")
	fmt.Fprintf(&b, "rem collection script for case %s, device %s\r\n",
		plan.Case.CaseName, plan.Case.DeviceName)
	for _, step := range plan.Steps {
		fmt.Fprintf(&b, "rem   %s -> %s\r\n", step.ModuleID, step.OutputSubpath)
	}
	b.WriteString("cd /d \"%~dp0\"\r\n")
	fmt.Fprintf(&b, "rapidextractor.exe run --base . %s\r\n", PlanFileName)
	return b.String()
}
