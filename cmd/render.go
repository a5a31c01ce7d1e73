package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"

	"github.com/benedict-erwin/store-console/internal/services/store"
	"github.com/benedict-erwin/store-console/pkg/tabular"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// stdout is swapped by tests
var stdout io.Writer = os.Stdout

// jsonOutput reports whether --output json was requested
func jsonOutput() bool {
	return outputFlag == outputJSON
}

// renderJSON writes v as indented JSON
func renderJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

// renderTable writes a bordered table
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// renderPairs writes a two-column field/value table
func renderPairs(w io.Writer, pairs [][2]string) error {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0], p[1]})
	}
	return renderTable(w, []string{"Field", "Value"}, rows)
}

// renderPage writes one page of exportable rows with a "Showing a-b of n" footer
func renderPage[T tabular.Record](w io.Writer, header []string, page tabular.Page[T]) error {
	if jsonOutput() {
		return renderJSON(w, page)
	}
	if page.Total == 0 {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}

	rows := make([][]string, 0, len(page.Rows))
	for _, r := range page.Rows {
		rows = append(rows, r.CSVRecord())
	}
	if err := renderTable(w, header, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d-%d of %d (page %d/%d)\n", page.Start, page.End, page.Total, page.Page, page.TotalPages)
	return err
}

// renderRecords writes untyped API records using the union of their keys as columns
func renderRecords(w io.Writer, records []store.Record) error {
	if jsonOutput() {
		return renderJSON(w, records)
	}
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}

	header := recordKeys(records...)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = utils.ToString(rec[key])
		}
		rows = append(rows, row)
	}
	return renderTable(w, header, rows)
}

// renderRecord writes a single record as field/value pairs
func renderRecord(w io.Writer, record store.Record) error {
	if jsonOutput() {
		return renderJSON(w, record)
	}
	pairs := make([][2]string, 0, len(record))
	for _, key := range recordKeys(record) {
		pairs = append(pairs, [2]string{key, utils.ToString(record[key])})
	}
	return renderPairs(w, pairs)
}

// recordKeys returns the sorted union of keys, skipping nested values
func recordKeys(records ...store.Record) []string {
	seen := make(map[string]struct{})
	for _, rec := range records {
		for key, v := range rec {
			switch v.(type) {
			case map[string]any, []any:
				continue
			}
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// exportCSV writes rows as CSV to path, or to the dated "<prefix>-YYYY-MM-DD.csv"
func exportCSV[T tabular.Record](prefix string, header []string, rows []T, path string) error {
	var buf bytes.Buffer
	if err := tabular.WriteCSV(&buf, header, rows); err != nil {
		return err
	}
	if path == "" {
		path = tabular.ExportFileName(prefix, utils.Now())
	}
	return writeFile(path, buf.Bytes())
}

// writeFile saves content to path, or to stdout when path is "-"
func writeFile(path string, content []byte) error {
	if path == "-" {
		_, err := stdout.Write(content)
		return err
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "Saved %s (%d bytes)\n", path, len(content))
	return nil
}
