// Copyright (c) 2019 Siemens AG
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

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/rapidextractor"
	"github.com/forensicanalysis/rapidextractor/extractors"
)

// Modules is the rapidextractor modules commandline subcommand.
func Modules() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the available extractor modules",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := extractors.NewRegistry()
			if err != nil {
				return err
			}
			for _, module := range registry.List() {
				fmt.Printf("%-30s %-20s %s\n", module.ID(), module.Name(), module.Description())
			}
			return nil
		},
	}
}

// Plan is the rapidextractor plan commandline subcommand. It builds the
// execution plan for a module selection and writes the plan and the
// generated collection script.
func Plan() *cobra.Command {
	var caseName, deviceName, output string
	planCommand := &cobra.Command{
		Use:   "plan --case <case> --device <device> <module>...",
		Short: "Build an execution plan and the collection script",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := extractors.NewRegistry()
			if err != nil {
				return err
			}

			caseContext, err := rapidextractor.NewCaseContext(caseName, deviceName)
			if err != nil {
				return err
			}

			plan, err := rapidextractor.BuildPlan(registry, args, caseContext)
			if err != nil {
				return err
			}

			if err := rapidextractor.WritePlan(afero.NewOsFs(), output, plan); err != nil {
				return err
			}
			fmt.Printf("plan for case %s, device %s written to %s (%d modules)\n",
				caseName, deviceName, output, len(plan.Steps))
			return nil
		},
	}
	planCommand.Flags().StringVar(&caseName, "case", "", "case name")
	planCommand.Flags().StringVar(&deviceName, "device", "", "device name")
	planCommand.Flags().StringVar(&output, "output", ".", "output directory for plan and script")
	_ = planCommand.MarkFlagRequired("case")
	_ = planCommand.MarkFlagRequired("device")
	return planCommand
}

// Run is the rapidextractor run commandline subcommand. It replays a plan on
// the current machine. Module failures are recorded in the manifest and do
// not fail the command, only an unwritable evidence drive does.
func Run() *cobra.Command {
	var base string
	runCommand := &cobra.Command{
		Use:   "run <plan.json>",
		Short: "Execute a plan on this machine",
		Args:  requireOnePlan,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := afero.ReadFile(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			plan, err := rapidextractor.ParsePlan(b)
			if err != nil {
				return err
			}

			registry, err := extractors.NewRegistry()
			if err != nil {
				return err
			}
			engine, err := rapidextractor.NewEngine(registry, rapidextractor.Options{BaseDir: base})
			if err != nil {
				return err
			}

			manifest, err := engine.Run(cmd.Context(), plan)
			if err != nil {
				return err
			}
			for _, result := range manifest.Results {
				fmt.Printf("%-30s %s\n", result.ModuleID, result.Status)
			}
			return nil
		},
	}
	runCommand.Flags().StringVar(&base, "base", ".", "drive root the case layout is created under")
	return runCommand
}

// Validate is the rapidextractor validate commandline subcommand.
func Validate() *cobra.Command {
	var noFail bool
	validateCommand := &cobra.Command{
		Use:   "validate <evidence_root>",
		Short: "Audit an evidence root against its manifests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flaws, err := rapidextractor.ValidateEvidence(afero.NewOsFs(), args[0])
			if err != nil {
				fmt.Println(err)
				return err
			}
			if len(flaws) > 0 {
				for i, flaw := range flaws {
					flaws[i] = strings.Replace(flaw, "\"", "\\\"", -1)
				}
				fmt.Printf("[\"%s\"]\n", strings.Join(flaws, "\", \""))
				if noFail {
					return nil
				}
				return errors.New("evidence validation failed")
			}
			return nil
		},
	}
	validateCommand.Flags().BoolVar(&noFail, "no-fail", false, "return exit code 0")
	return validateCommand
}

func requireOnePlan(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("requires exactly one plan")
	}
	for _, arg := range args {
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			return errors.Wrap(os.ErrNotExist, arg)
		}
	}
	return nil
}
