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
	"encoding/json"
	"fmt"

	"github.com/qri-io/jsonschema"
	"github.com/tidwall/gjson"
)

// planSchemaJSON is validated against every plan file before execution, so a
// truncated or hand edited plan is rejected before any directory is created
// on the evidence drive.
const planSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2019-09/schema#",
  "$id": "rapidextractor:plan",
  "title": "rapidextractor_plan",
  "type": "object",
  "required": ["type", "version", "case", "steps"],
  "properties": {
    "type": {"const": "rapidextractor_plan"},
    "version": {"type": "integer", "minimum": 1},
    "case": {
      "type": "object",
      "required": ["case_name", "device_name", "created_at"],
      "properties": {
        "case_name": {"type": "string", "minLength": 1},
        "device_name": {"type": "string", "minLength": 1},
        "created_at": {"type": "string"}
      }
    },
    "steps": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["module_id", "output_subpath"],
        "properties": {
          "module_id": {"type": "string", "minLength": 1},
          "output_subpath": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var planSchema *jsonschema.Schema

func init() {
	planSchema = &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(planSchemaJSON), planSchema); err != nil {
		panic(err)
	}
	planSchema.Resolve(nil, "rapidextractor:plan")
}

// ValidatePlanBytes checks a serialized plan against the plan schema.
func ValidatePlanBytes(b []byte) (flaws []string, err error) {
	planType := gjson.GetBytes(b, "type")
	if !planType.Exists() {
		flaws = append(flaws, "plan needs to have a type")
	}

	errs, err := planSchema.ValidateBytes(context.Background(), b)
	if err != nil {
		return nil, err
	}
	for _, verr := range errs {
		flaws = append(flaws, fmt.Sprintf("failed to validate plan: %s", verr))
	}
	return flaws, nil
}
