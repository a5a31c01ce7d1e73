package tabular

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type row struct {
	id, name string
}

func (r row) SearchFields() []string { return []string{r.id, r.name} }
func (r row) CSVRecord() []string    { return []string{r.id, r.name} }

func rows(n int) []row {
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: string(rune('a' + i%26)), name: "item"}
	}
	return out
}

func TestFilter(t *testing.T) {
	data := []row{{"R-1", "Bearing 6204"}, {"R-2", "V Belt"}, {"R-3", "bearing housing"}}

	require.Len(t, Filter(data, "  BEARING "), 2)
	require.Equal(t, data, Filter(data, "   "))
	require.Empty(t, Filter(data, "gear"))
	require.Equal(t, []row{{"R-2", "V Belt"}}, Filter(data, "r-2"))
}

func TestPaginate(t *testing.T) {
	p := Paginate(rows(120), 2, 50)
	require.Equal(t, 2, p.Page)
	require.Equal(t, 3, p.TotalPages)
	require.Equal(t, 51, p.Start)
	require.Equal(t, 100, p.End)
	require.Len(t, p.Rows, 50)
	require.Equal(t, []int{1, 2, 3}, p.Window)

	last := Paginate(rows(120), 3, 50)
	require.Len(t, last.Rows, 20)
	require.Equal(t, 101, last.Start)
	require.Equal(t, 120, last.End)
}

func TestPaginateClamps(t *testing.T) {
	p := Paginate(rows(10), 9, 5)
	require.Equal(t, 2, p.Page)

	p = Paginate(rows(10), -4, 5)
	require.Equal(t, 1, p.Page)

	p = Paginate(rows(10), 1, 0)
	require.Equal(t, DefaultPageSize, p.Size)
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]row{}, 3, 50)
	require.Equal(t, 1, p.Page)
	require.Equal(t, 1, p.TotalPages)
	require.Zero(t, p.Start)
	require.Zero(t, p.End)
	require.Empty(t, p.Rows)
	require.Equal(t, []int{1}, p.Window)
}

func TestWindow(t *testing.T) {
	require.Equal(t, []int{1, 2, 3}, Window(1, 10))
	require.Equal(t, []int{4, 5, 6}, Window(5, 10))
	require.Equal(t, []int{9, 10}, Window(10, 10))
	require.Equal(t, []int{1, 2}, Window(2, 2))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"ID", "Name"}, []row{{"R-1", `6" pipe`}, {"R-2", "a,b"}})
	require.NoError(t, err)
	require.Equal(t, "ID,Name\n\"R-1\",\"6\"\" pipe\"\n\"R-2\",\"a,b\"", buf.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []string{"ID"}, []row{}))
	require.Equal(t, "ID", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSVError(t *testing.T) {
	require.Error(t, WriteCSV(failingWriter{}, []string{"ID"}, []row{}))
}

func TestExportFileName(t *testing.T) {
	day := time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC)
	require.Equal(t, "all-indents-2025-03-07.csv", ExportFileName("all-indents", day))
}
