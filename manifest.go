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
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ManifestFileName is the preferred manifest name at the evidence root.
// Existing manifests from earlier runs are never overwritten, the name is
// versioned instead (manifest_0.json, manifest_1.json, ...).
const ManifestFileName = "manifest.json"

const manifestType = "rapidextractor_manifest"

// Manifest is the case wide audit record of one run: one CollectionResult
// per planned step, in plan order, plus the overall run timestamps. It is
// the authoritative record an auditor uses to confirm what was and was not
// collected.
type Manifest struct {
	Type          string              `json:"type"`
	RunID         string              `json:"run_id"`
	Case          CaseContext         `json:"case"`
	RunStartedAt  time.Time           `json:"run_started_at"`
	RunFinishedAt time.Time           `json:"run_finished_at,omitempty"`
	Results       []*CollectionResult `json:"results"`
}

// ManifestWriter persists a manifest below the evidence root. The full
// manifest is rewritten and flushed after every appended result, so a crash
// mid run still leaves a partial, honest manifest on disk.
type ManifestWriter struct {
	fs       afero.Fs
	filePath string
	manifest *Manifest
}

// NewManifestWriter creates the manifest file at the evidence root. If a
// manifest from an earlier run exists, a free versioned file name is chosen.
func NewManifestWriter(fs afero.Fs, evidenceRoot string, manifest *Manifest) (*ManifestWriter, error) {
	filePath := path.Join(evidenceRoot, ManifestFileName)

	i := 0
	ext := path.Ext(filePath)
	base := filePath[:len(filePath)-len(ext)]

	exists, err := afero.Exists(fs, filePath)
	if err != nil {
		return nil, err
	}
	for exists {
		filePath = fmt.Sprintf("%s_%d%s", base, i, ext)
		i++
		exists, err = afero.Exists(fs, filePath)
		if err != nil {
			return nil, err
		}
	}

	w := &ManifestWriter{fs: fs, filePath: filePath, manifest: manifest}
	return w, w.Flush()
}

// Path returns the resolved manifest file path.
func (w *ManifestWriter) Path() string {
	return w.filePath
}

// Append records a single step result and flushes the manifest.
func (w *ManifestWriter) Append(result *CollectionResult) error {
	w.manifest.Results = append(w.manifest.Results, result)
	return w.Flush()
}

// Finalize sets the run end time and writes the manifest a last time.
func (w *ManifestWriter) Finalize(finishedAt time.Time) error {
	w.manifest.RunFinishedAt = finishedAt
	return w.Flush()
}

// Flush writes the manifest. The write goes through a temporary file and a
// rename, an interrupted flush never corrupts the previous manifest state.
func (w *ManifestWriter) Flush() error {
	b, err := json.MarshalIndent(w.manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal manifest")
	}
	b = append(b, '\n')

	tmpPath := w.filePath + ".tmp"
	if err := afero.WriteFile(w.fs, tmpPath, b, 0644); err != nil {
		return errors.Wrap(err, "could not write manifest")
	}
	return errors.Wrap(w.fs.Rename(tmpPath, w.filePath), "could not replace manifest")
}

// ReadManifest loads a manifest file.
func ReadManifest(fs afero.Fs, filePath string) (*Manifest, error) {
	b, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read manifest")
	}
	manifest := &Manifest{}
	if err := json.Unmarshal(b, manifest); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal manifest")
	}
	if manifest.Type != manifestType {
		return nil, errors.Errorf("%s is not a manifest (type is '%s')", filePath, manifest.Type)
	}
	return manifest, nil
}

// FindManifests returns all manifest files at an evidence root, oldest
// version first.
func FindManifests(fs afero.Fs, evidenceRoot string) ([]string, error) {
	var manifests []string
	matches, err := afero.Glob(fs, path.Join(evidenceRoot, "manifest*.json"))
	if err != nil {
		return nil, err
	}
	manifests = append(manifests, matches...)
	return manifests, nil
}
