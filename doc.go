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

// Package rapidextractor orchestrates live-response evidence collection on
// Windows devices. A fixed registry of extractor modules (prefetch, browser
// history, running processes, installed programs, directory tree, TeamViewer
// logs, betting software logs) is resolved against a case to build a
// deterministic execution plan. The plan is replayed on the target device by
// the execution engine, which isolates every module behind a fault boundary
// and records each outcome in an audit manifest.
//
// The case layout
//
// All collected evidence for one case and device is written below a single
// evidence root on the investigator's drive:
//     cases/
//     └── Alpha_2024-06-01
//         └── Alpha_Laptop01
//             ├── Prefetch_export
//             │   ├── prefetch_files.csv
//             │   └── Windows
//             │       └── Prefetch
//             │           └── ...
//             ├── Processes_export
//             │   └── running_processes.txt
//             ├── ...
//             ├── extraction.log
//             └── manifest.json
//
// The manifest.json file is the authoritative record of the run: one entry
// per planned module with status, timestamps, artifact count and error
// details. A later run against the same evidence root never overwrites an
// earlier manifest, the file name is versioned instead (manifest_0.json).
//
// Collection is strictly read-only towards the target: modules receive a
// read-only view of the source filesystem and copy artifacts, they never
// modify or delete them.
package rapidextractor
