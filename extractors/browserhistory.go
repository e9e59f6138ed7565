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

package extractors

import (
	"bytes"
	"context"
	"encoding/csv"
	"path"
	"path/filepath"
	"strconv"

	"crawshaw.io/sqlite"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/forensicanalysis/rapidextractor"
)

// BrowserHistory collects the history databases of Edge, Chrome and Firefox
// (all profiles). A locked or missing browser is a per browser recoverable
// condition, the remaining browsers are still collected. URLs are exported
// by SQL query from the copied database, the live source database is never
// opened.
type BrowserHistory struct {
	// ExportURLs controls the SQL export from the copied databases. The
	// export needs an OS backed evidence filesystem (OsFs, possibly behind
	// BasePathFs wrappers), a skipped export is recorded as a partial
	// failure.
	ExportURLs bool
}

// NewBrowserHistory creates the browser history module.
func NewBrowserHistory() *BrowserHistory { return &BrowserHistory{ExportURLs: true} }

func (*BrowserHistory) ID() string   { return "browser_history_extractor" }
func (*BrowserHistory) Name() string { return "Browser History" }
func (*BrowserHistory) Description() string {
	return "Copies the Edge, Chrome and Firefox history databases and exports the visited URLs"
}
func (*BrowserHistory) OutputSubpath() string { return "BrowserHistory_export" }

func (m *BrowserHistory) Collect(ctx context.Context, c rapidextractor.CollectContext) (*rapidextractor.Report, error) {
	col := newCollection(c, m.OutputSubpath(), "BrowserHistory", "browser_history.csv")

	found := 0
	found += m.collectEdge(ctx, col)
	found += m.collectChrome(ctx, col)
	found += m.collectFirefox(ctx, col)

	if found == 0 {
		col.addPartial("no browser history databases found")
	}
	return col.close()
}

func (m *BrowserHistory) collectEdge(ctx context.Context, col *collection) int {
	localAppData := col.c.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return 0
	}
	historyPath := filepath.ToSlash(filepath.Join(localAppData, "Microsoft", "Edge", "User Data", "Default", "History"))
	return m.collectChromium(ctx, col, "Edge", historyPath)
}

func (m *BrowserHistory) collectChrome(ctx context.Context, col *collection) int {
	localAppData := col.c.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return 0
	}
	historyPath := filepath.ToSlash(filepath.Join(localAppData, "Google", "Chrome", "User Data", "Default", "History"))
	return m.collectChromium(ctx, col, "Chrome", historyPath)
}

// collectChromium copies a Chromium based history database and exports its
// urls table.
func (m *BrowserHistory) collectChromium(ctx context.Context, col *collection, browser, historyPath string) int {
	if err := ctx.Err(); err != nil {
		return 0
	}
	exists, err := afero.Exists(col.c.Source, historyPath)
	if err != nil || !exists {
		col.c.Log.Printf("BrowserHistory: %s history not found, maybe it is not installed", browser)
		return 0
	}

	destRel := path.Join(browser, "History")
	if err := col.copyFile(historyPath, destRel); err != nil {
		col.addPartial("could not copy %s history: %s", browser, err)
		return 0
	}

	if m.ExportURLs {
		query := "SELECT url, title, visit_count FROM urls ORDER BY last_visit_time DESC"
		if err := m.exportURLs(col, destRel, path.Join(browser, "urls.csv"), query); err != nil {
			col.addPartial("could not export %s urls: %s", browser, err)
		}
	}
	return 1
}

func (m *BrowserHistory) collectFirefox(ctx context.Context, col *collection) int {
	appData := col.c.Getenv("APPDATA")
	if appData == "" {
		return 0
	}
	profilesDir := filepath.ToSlash(filepath.Join(appData, "Mozilla", "Firefox", "Profiles"))
	profiles, err := afero.ReadDir(col.c.Source, profilesDir)
	if err != nil {
		col.c.Log.Printf("BrowserHistory: Firefox profiles directory not found, maybe it is not installed")
		return 0
	}

	found := 0
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return found
		}
		if !profile.IsDir() {
			continue
		}
		placesPath := path.Join(profilesDir, profile.Name(), "places.sqlite")
		exists, err := afero.Exists(col.c.Source, placesPath)
		if err != nil || !exists {
			continue
		}

		destRel := path.Join("Firefox", profile.Name(), "places.sqlite")
		if err := col.copyFile(placesPath, destRel); err != nil {
			col.addPartial("could not copy Firefox profile %s: %s", profile.Name(), err)
			continue
		}
		found++

		if m.ExportURLs {
			query := "SELECT url, title, visit_count FROM moz_places ORDER BY last_visit_date DESC"
			urlsRel := path.Join("Firefox", profile.Name(), "urls.csv")
			if err := m.exportURLs(col, destRel, urlsRel, query); err != nil {
				col.addPartial("could not export Firefox urls for profile %s: %s", profile.Name(), err)
			}
		}
	}
	return found
}

// hostPath resolves name to a path on the host filesystem. BasePathFs
// wrappers are unwrapped, purely in memory filesystems report false.
func hostPath(dest afero.Fs, name string) (string, bool) {
	switch dest := dest.(type) {
	case *afero.OsFs:
		return name, true
	case *afero.BasePathFs:
		return afero.FullBaseFsPath(dest, name), true
	}
	return "", false
}

// exportURLs queries the copied history database and writes the result as a
// CSV file next to it. The query runs against the copy on the evidence
// drive, sqlite needs a real file path for that.
func (m *BrowserHistory) exportURLs(col *collection, dbRel, destRel, query string) error {
	dbPath, ok := hostPath(col.c.Dest, path.Join(col.c.OutDir, dbRel))
	if !ok {
		col.addPartial("url export for %s skipped, evidence filesystem is not OS backed", dbRel)
		return nil
	}
	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_READONLY)
	if err != nil {
		return errors.Wrap(err, "could not open copied database")
	}
	defer conn.Close()

	stmt, err := conn.Prepare(query)
	if err != nil {
		return errors.Wrap(err, "could not prepare url query")
	}

	rows := [][]string{{"URL", "Title", "Visit Count"}}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return err
		}
		if !hasRow {
			break
		}
		rows = append(rows, []string{
			stmt.GetText("url"),
			stmt.GetText("title"),
			strconv.FormatInt(stmt.GetInt64("visit_count"), 10),
		})
	}
	if err := stmt.Finalize(); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	_, err = col.writeFile(destRel, buf.Bytes())
	return err
}
