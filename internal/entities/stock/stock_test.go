package stock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapToRowPositional(t *testing.T) {
	row := MapToRow(map[string]any{
		"COL1": " 1201 ",
		"COL2": "Bearing 6204",
		"COL3": "NOS",
		"COL4": "12.5",
		"COL5": float64(3),
	})
	require.Equal(t, Row{ItemCode: "1201", ItemName: "Bearing 6204", UOM: "NOS", OpeningQty: 12.5, ClosingQty: 3}, row)
	require.False(t, row.OutOfStock())
}

func TestMapToRowNamedKeys(t *testing.T) {
	row := MapToRow(map[string]any{
		"itemCode":   float64(1201),
		"itemName":   "V Belt",
		"uom":        "PCS",
		"openingQty": "n/a",
		"closingQty": "0",
	})
	require.Equal(t, "1201", row.ItemCode)
	require.Equal(t, "V Belt", row.ItemName)
	require.Zero(t, row.OpeningQty)
	require.True(t, row.OutOfStock())
}

func TestMapToRowEmpty(t *testing.T) {
	require.Equal(t, Row{}, MapToRow(map[string]any{}))
}

func TestBackendDates(t *testing.T) {
	from, to, err := Query{From: "2025-01-01", To: "2025-01-31"}.BackendDates()
	require.NoError(t, err)
	require.Equal(t, "01-01-2025", from)
	require.Equal(t, "31-01-2025", to)

	_, _, err = Query{From: "2025-01-01"}.BackendDates()
	require.ErrorIs(t, err, ErrDateRange)
}

func TestCSVRecord(t *testing.T) {
	require.Equal(t, []string{"A", "B", "C", "1.5", "0"}, Row{"A", "B", "C", 1.5, 0}.CSVRecord())
}
