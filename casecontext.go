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
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidCaseName = fmt.Errorf("invalid case name")
var ErrInvalidDeviceName = fmt.Errorf("invalid device name")

// reservedNameChars are rejected in case and device names. The names are
// embedded verbatim in NTFS and FAT paths on the evidence drive.
const reservedNameChars = `<>:"/\|?*`

var reservedDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// CaseContext identifies one forensic engagement on one device. The creation
// time is fixed when the context is created and embedded in the derived
// paths, so a context must never be renamed once a plan references it.
type CaseContext struct {
	CaseName   string    `json:"case_name"`
	DeviceName string    `json:"device_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCaseContext validates the case and device names and creates a
// CaseContext with the current time. Running the same case name again on a
// later date yields a distinct case folder, one case folder per collection
// date.
func NewCaseContext(caseName, deviceName string) (*CaseContext, error) {
	return NewCaseContextAt(caseName, deviceName, time.Now())
}

// NewCaseContextAt creates a CaseContext with an explicit creation time.
func NewCaseContextAt(caseName, deviceName string, createdAt time.Time) (*CaseContext, error) {
	if err := validateName(caseName); err != nil {
		return nil, errors.Wrap(ErrInvalidCaseName, err.Error())
	}
	if err := validateName(deviceName); err != nil {
		return nil, errors.Wrap(ErrInvalidDeviceName, err.Error())
	}
	return &CaseContext{CaseName: caseName, DeviceName: deviceName, CreatedAt: createdAt}, nil
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name must not be empty")
	}
	if strings.ContainsAny(name, reservedNameChars) {
		return errors.Errorf("name '%s' contains a reserved character (%s)", name, reservedNameChars)
	}
	for _, r := range name {
		if r < 0x20 {
			return errors.Errorf("name '%s' contains a control character", name)
		}
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") {
		return errors.Errorf("name '%s' must not end with a dot or space", name)
	}
	if reservedDeviceNames[strings.ToUpper(name)] {
		return errors.Errorf("name '%s' is a reserved Windows device name", name)
	}
	return nil
}

// CaseRoot returns the case folder relative to the drive root, e.g.
// "cases/Alpha_2024-06-01".
func (c *CaseContext) CaseRoot() string {
	return path.Join("cases", c.CaseName+"_"+c.CreatedAt.Format("2006-01-02"))
}

// EvidenceRoot returns the per device evidence folder relative to the drive
// root, e.g. "cases/Alpha_2024-06-01/Alpha_Laptop01". All module outputs and
// the manifest are written below this folder.
func (c *CaseContext) EvidenceRoot() string {
	return path.Join(c.CaseRoot(), c.CaseName+"_"+c.DeviceName)
}
