package purchaseorders

import (
	"math"

	"github.com/benedict-erwin/store-console/pkg/utils"
)

// Scopes of the purchase order lists
const (
	ScopePending = "pending"
	ScopeHistory = "history"
)

// DownloadNames are the file names the PO service exports are saved under
var DownloadNames = map[string]string{
	ScopePending: "pending-purchase-orders.xlsx",
	ScopeHistory: "received-purchase-orders.xlsx",
}

// ExportPrefix names client-side CSV exports
const ExportPrefix = "purchase-orders"

// CSVHeader is the header row of a purchase order export
var CSVHeader = []string{"Planned", "PO No", "PO Date", "Vendor", "Item", "UOM", "Ordered", "Executed", "Balance"}

// Row is one purchase order line
type Row struct {
	PlannedTimestamp string  `json:"PLANNED_TIMESTAMP"`
	VRNo             string  `json:"VRNO"`
	VRDate           string  `json:"VRDATE"`
	VendorName       string  `json:"VENDOR_NAME"`
	ItemName         string  `json:"ITEM_NAME"`
	UM               string  `json:"UM"`
	QtyOrder         float64 `json:"QTYORDER"`
	QtyExecute       float64 `json:"QTYEXECUTE"`
	BalanceQty       float64 `json:"BALANCE_QTY"`
}

// MapToRow fills missing fields; BALANCE_QTY defaults to the unexecuted quantity, never negative
func MapToRow(record map[string]any) Row {
	order := utils.ToFloat(record["QTYORDER"])
	exec := utils.ToFloat(record["QTYEXECUTE"])

	balance := math.Max(order-exec, 0)
	if v, ok := record["BALANCE_QTY"]; ok && v != nil {
		balance = utils.ToFloat(v)
	}

	return Row{
		PlannedTimestamp: utils.ToString(record["PLANNED_TIMESTAMP"]),
		VRNo:             utils.ToString(record["VRNO"]),
		VRDate:           utils.ToString(record["VRDATE"]),
		VendorName:       utils.ToString(record["VENDOR_NAME"]),
		ItemName:         utils.ToString(record["ITEM_NAME"]),
		UM:               utils.ToString(record["UM"]),
		QtyOrder:         order,
		QtyExecute:       exec,
		BalanceQty:       balance,
	}
}

// MapToRows converts a list of raw records
func MapToRows(records []map[string]any) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, MapToRow(r))
	}
	return rows
}

// SearchFields matches PO number, vendor and item
func (r Row) SearchFields() []string {
	return []string{r.VRNo, r.VendorName, r.ItemName}
}

// CSVRecord returns the export columns in CSVHeader order, dates formatted for display
func (r Row) CSVRecord() []string {
	return []string{
		utils.FormatDisplayDateTime(r.PlannedTimestamp),
		r.VRNo,
		utils.FormatDisplayDate(r.VRDate),
		r.VendorName,
		r.ItemName,
		r.UM,
		utils.FormatNumber(r.QtyOrder),
		utils.FormatNumber(r.QtyExecute),
		utils.FormatNumber(r.BalanceQty),
	}
}
