/*
 * Copyright (c) 2020 Siemens AG
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of
 * this software and associated documentation files (the "Software"), to deal in
 * the Software without restriction, including without limitation the rights to
 * use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
 * the Software, and to permit persons to whom the Software is furnished to do so,
 * subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
 * FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
 * COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
 * IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
 * CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 *
 * Author(s): Jonas Plum
 */

package rapidextractor

import (
	"bytes"
	"context"
	"crypto/md5"  // #nosec
	"crypto/sha1" // #nosec
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/stixgo"
)

const discriminator = "type"

var setupValidationOnce sync.Once

func setupSchemaValidation() {
	// unmarshal schemas
	registry := jsonschema.GetSchemaRegistry()
	for _, content := range stixgo.FS {
		// convert to draft/2019-09
		content = bytes.Replace(content, []byte(`"definitions"`), []byte(`"$defs"`), -1)
		content = bytes.Replace(content, []byte(`"#/definitions/`), []byte(`"#/$defs/`), -1)
		content = bytes.Replace(content,
			[]byte(`"$schema": "http://json-schema.org/draft-07/schema#",`),
			[]byte(`"$schema": "https://json-schema.org/draft/2019-09/schema#",`),
			-1,
		)

		schema := &jsonschema.Schema{}
		if err := json.Unmarshal(content, schema); err != nil {
			panic(err)
		}

		id := string(*schema.JSONProp("$id").(*jsonschema.ID))
		schema.Resolve(nil, id)
		registry.Register(schema)
	}
}

func validateElementSchema(element JSONElement) (flaws []string, err error) {
	setupValidationOnce.Do(setupSchemaValidation)

	elementType := gjson.GetBytes(element, discriminator)
	if !elementType.Exists() {
		flaws = append(flaws, "element needs to have a type")
	}

	schema := jsonschema.GetSchemaRegistry().GetKnown(fmt.Sprintf(
		"http://raw.githubusercontent.com/oasis-open/cti-stix2-json-schemas/stix2.1/schemas/observables/%s.json",
		elementType.String(),
	))

	if schema == nil {
		return flaws, nil
	}

	errs, err := schema.ValidateBytes(context.Background(), element)
	if err != nil {
		return nil, err
	}
	for _, verr := range errs {
		flaws = append(flaws, fmt.Sprintf("failed to validate element: %s", verr))
	}
	return flaws, nil
}

// ValidateEvidence audits an evidence root against its manifests. It reports
// artifact records whose files are missing, files nobody accounted for,
// size mismatches, hash mismatches and schema violations in the recorded
// elements. Collected evidence is only read, never modified.
func ValidateEvidence(fs afero.Fs, evidenceRoot string) (flaws []string, err error) {
	flaws = []string{}

	manifestPaths, err := FindManifests(fs, evidenceRoot)
	if err != nil {
		return nil, err
	}
	if len(manifestPaths) == 0 {
		return nil, errors.Errorf("no manifest found in %s", evidenceRoot)
	}

	expectedFiles := map[string]bool{}
	for _, manifestPath := range manifestPaths {
		expectedFiles[path.Base(manifestPath)] = true

		manifest, err := ReadManifest(fs, manifestPath)
		if err != nil {
			return nil, err
		}

		for _, result := range manifest.Results {
			for _, element := range result.Elements {
				elementFlaws, elementExpectedFiles, err := validateElement(fs, evidenceRoot, element)
				if err != nil {
					return nil, err
				}
				flaws = append(flaws, elementFlaws...)
				for _, expected := range elementExpectedFiles {
					expectedFiles[filepath.ToSlash(expected)] = true
				}
			}
		}
	}
	expectedFiles[LogFileName] = true

	foundFiles := map[string]bool{}
	var additionalFiles []string
	err = afero.Walk(fs, evidenceRoot, func(filePath string, info os.FileInfo, err error) error {
		if err != nil || info == nil || info.IsDir() {
			return nil
		}
		relPath, err := filepath.Rel(evidenceRoot, filePath)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		foundFiles[relPath] = true
		if _, ok := expectedFiles[relPath]; !ok {
			additionalFiles = append(additionalFiles, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(additionalFiles) > 0 {
		flaws = append(flaws, fmt.Sprintf("additional files: ('%s')", strings.Join(additionalFiles, "', '")))
	}

	var missingFiles []string
	for expectedFile := range expectedFiles {
		if _, ok := foundFiles[expectedFile]; !ok {
			missingFiles = append(missingFiles, expectedFile)
		}
	}

	if len(missingFiles) > 0 {
		flaws = append(flaws, fmt.Sprintf("missing files: ('%s')", strings.Join(missingFiles, "', '")))
	}
	return flaws, nil
}

func validateElement(fs afero.Fs, evidenceRoot string, element interface{}) (flaws []string, elementExpectedFiles []string, err error) { // nolint:gocyclo,funlen,gocognit
	flaws = []string{}
	elementExpectedFiles = []string{}

	fields, ok := element.(map[string]interface{})
	if !ok {
		return nil, nil, errors.Errorf("element has unexpected form %T", element)
	}

	b, err := json.Marshal(fields)
	if err != nil {
		return nil, nil, err
	}
	valErr, err := validateElementSchema(b)
	if err != nil {
		return nil, nil, err
	}
	flaws = append(flaws, valErr...)

	for field := range fields {
		if strings.HasSuffix(field, "_path") {
			exportPath, ok := fields[field].(string)
			if !ok {
				flaws = append(flaws, fmt.Sprintf("%s is not a string", field))
				continue
			}

			if strings.Contains(exportPath, "..") {
				flaws = append(flaws, fmt.Sprintf("'..' in %s", exportPath))
				continue
			}

			elementExpectedFiles = append(elementExpectedFiles, exportPath)

			fullPath := path.Join(evidenceRoot, exportPath)
			exists, err := afero.Exists(fs, fullPath)
			if err != nil {
				return nil, nil, err
			}
			if !exists {
				continue
			}

			if size, ok := fields["size"]; ok {
				fi, err := fs.Stat(fullPath)
				if err != nil {
					return nil, nil, err
				}
				if int64(size.(float64)) != fi.Size() {
					flaws = append(flaws, fmt.Sprintf("wrong size for %s (is %d, expected %d)", exportPath, fi.Size(), size))
				}
			}

			if hashes, ok := fields["hashes"]; ok {
				for algorithm, value := range hashes.(map[string]interface{}) {
					var h hash.Hash
					switch algorithm {
					case "MD5":
						h = md5.New() // #nosec
					case "SHA1", "SHA-1":
						h = sha1.New() // #nosec
					default:
						flaws = append(flaws, fmt.Sprintf("unsupported hash %s for %s", algorithm, exportPath))
						continue
					}

					f, err := fs.Open(fullPath)
					if err != nil {
						return nil, nil, err
					}

					_, err = io.Copy(h, f)
					f.Close() // nolint:errcheck
					if err != nil {
						return nil, nil, err
					}

					if fmt.Sprintf("%x", h.Sum(nil)) != value {
						flaws = append(flaws, fmt.Sprintf("hashvalue mismatch %s for %s", algorithm, exportPath))
					}
				}
			}
		}
	}

	return flaws, elementExpectedFiles, nil
}
