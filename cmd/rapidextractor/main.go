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

// Package main implements the rapidextractor command line tool with various
// subcommands to prepare and run evidence collections.
//     modules   List the available extractor modules
//     plan      Build an execution plan and the collection script
//     run       Execute a plan on this machine
//     validate  Audit an evidence root against its manifests
//
// Usage
//
// Build a plan on the analyst workstation
//     rapidextractor plan --case Alpha --device Laptop01 prefetch_extractor process_extractor
// Run the plan on the target device (as administrator)
//     rapidextractor run --base . plan.json
// Audit the collected evidence afterwards
//     rapidextractor validate cases/Alpha_2024-06-01/Alpha_Laptop01
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/rapidextractor/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rapidextractor",
		Short: "Collect forensic artifacts from live Windows devices",
	}
	rootCmd.AddCommand(cmd.Modules(), cmd.Plan(), cmd.Run(), cmd.Validate())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
