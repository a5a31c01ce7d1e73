package purchaseorders

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapToRowBalanceDefault(t *testing.T) {
	row := MapToRow(map[string]any{
		"VRNO":        "PO-1",
		"VENDOR_NAME": "Acme",
		"ITEM_NAME":   "Bearing",
		"QTYORDER":    float64(10),
		"QTYEXECUTE":  float64(4),
	})
	require.Equal(t, 6.0, row.BalanceQty)
	require.Equal(t, "PO-1", row.VRNo)
}

func TestMapToRowBalanceNeverNegative(t *testing.T) {
	row := MapToRow(map[string]any{"QTYORDER": float64(2), "QTYEXECUTE": float64(5)})
	require.Zero(t, row.BalanceQty)
}

func TestMapToRowExplicitBalance(t *testing.T) {
	row := MapToRow(map[string]any{"QTYORDER": float64(10), "QTYEXECUTE": float64(4), "BALANCE_QTY": float64(0)})
	require.Zero(t, row.BalanceQty)

	row = MapToRow(map[string]any{"QTYORDER": float64(10), "BALANCE_QTY": nil})
	require.Equal(t, 10.0, row.BalanceQty)
}

func TestMapToRowEmpty(t *testing.T) {
	require.Equal(t, Row{}, MapToRow(map[string]any{}))
}

func TestSearchFields(t *testing.T) {
	row := Row{VRNo: "PO-1", VendorName: "Acme", ItemName: "Belt", UM: "NOS"}
	require.Equal(t, []string{"PO-1", "Acme", "Belt"}, row.SearchFields())
}

func TestCSVRecord(t *testing.T) {
	row := Row{VRNo: "PO-1", VRDate: "not a date", QtyOrder: 10, QtyExecute: 4, BalanceQty: 6}
	rec := row.CSVRecord()
	require.Len(t, rec, len(CSVHeader))
	require.Equal(t, "not a date", rec[2])
	require.Equal(t, "6", rec[8])
}
