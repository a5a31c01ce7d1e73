package tabular

import (
	"io"
	"strings"
	"time"
)

// Record is a row that can be exported as one CSV line
type Record interface {
	CSVRecord() []string
}

// WriteCSV writes a plain comma-joined header followed by rows with every field
// quoted and embedded quotes doubled. Lines are separated by a bare "\n" without a
// trailing newline.
func WriteCSV[T Record](w io.Writer, header []string, rows []T) error {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))
	for _, row := range rows {
		lines = append(lines, quoteLine(row.CSVRecord()))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// ExportFileName returns "<prefix>-YYYY-MM-DD.csv" for the given day
func ExportFileName(prefix string, now time.Time) string {
	return prefix + "-" + now.Format("2006-01-02") + ".csv"
}

func quoteLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
