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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testTime(t *testing.T, value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

func TestNewCaseContextAt(t *testing.T) {
	type args struct {
		caseName   string
		deviceName string
	}
	tests := []struct {
		name    string
		args    args
		wantErr error
	}{
		{"valid", args{"Alpha", "Laptop01"}, nil},
		{"valid with underscore", args{"operation_alpha", "device_1"}, nil},
		{"empty case name", args{"", "Laptop01"}, ErrInvalidCaseName},
		{"empty device name", args{"Alpha", ""}, ErrInvalidDeviceName},
		{"path separator in case name", args{"Alpha/2024", "Laptop01"}, ErrInvalidCaseName},
		{"backslash in case name", args{`Alpha\2024`, "Laptop01"}, ErrInvalidCaseName},
		{"reserved character in device name", args{"Alpha", "Laptop:01"}, ErrInvalidDeviceName},
		{"wildcard in device name", args{"Alpha", "Laptop*"}, ErrInvalidDeviceName},
		{"trailing dot", args{"Alpha.", "Laptop01"}, ErrInvalidCaseName},
		{"reserved device name", args{"Alpha", "CON"}, ErrInvalidDeviceName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCaseContextAt(tt.args.caseName, tt.args.deviceName, testTime(t, "2024-06-01"))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCaseContextPaths(t *testing.T) {
	caseContext, err := NewCaseContextAt("Alpha", "Laptop01", testTime(t, "2024-06-01"))
	assert.NoError(t, err)

	assert.Equal(t, "cases/Alpha_2024-06-01", caseContext.CaseRoot())
	assert.Equal(t, "cases/Alpha_2024-06-01/Alpha_Laptop01", caseContext.EvidenceRoot())
}

func TestCaseContextNewDateNewFolder(t *testing.T) {
	first, err := NewCaseContextAt("Alpha", "Laptop01", testTime(t, "2024-06-01"))
	assert.NoError(t, err)
	second, err := NewCaseContextAt("Alpha", "Laptop01", testTime(t, "2024-06-02"))
	assert.NoError(t, err)

	// one case folder per collection date
	assert.NotEqual(t, first.CaseRoot(), second.CaseRoot())
	assert.Equal(t, "cases/Alpha_2024-06-02/Alpha_Laptop01", second.EvidenceRoot())
}
