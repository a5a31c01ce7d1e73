package stock

import (
	"errors"
	"strings"

	"github.com/benedict-erwin/store-console/pkg/utils"
)

// ErrDateRange is returned when a stock query lacks either bound
var ErrDateRange = errors.New("both from and to dates are required")

// CSVHeader is the header row of a stock export
var CSVHeader = []string{"Item Code", "Item Name", "UOM", "Opening Qty", "Closing Qty"}

type (
	// Row is one line of the stock report
	Row struct {
		ItemCode   string  `json:"item_code"`
		ItemName   string  `json:"item_name"`
		UOM        string  `json:"uom"`
		OpeningQty float64 `json:"opening_qty"`
		ClosingQty float64 `json:"closing_qty"`
	}

	// Query is a stock report date range in YYYY-MM-DD
	Query struct {
		From string `query:"from" validate:"required"`
		To   string `query:"to" validate:"required"`
	}
)

// BackendDates converts the range into the DD-MM-YYYY form the stock endpoint expects
func (q Query) BackendDates() (from, to string, err error) {
	from, to = utils.ToBackendDate(q.From), utils.ToBackendDate(q.To)
	if from == "" || to == "" {
		return "", "", ErrDateRange
	}
	return from, to, nil
}

// MapToRow reads positional COL1..COL5 columns, falling back to named keys
func MapToRow(record map[string]any) Row {
	return Row{
		ItemCode:   text(record, "COL1", "itemCode"),
		ItemName:   text(record, "COL2", "itemName"),
		UOM:        text(record, "COL3", "uom"),
		OpeningQty: utils.ToFloat(utils.FirstPresent(record, "COL4", "openingQty")),
		ClosingQty: utils.ToFloat(utils.FirstPresent(record, "COL5", "closingQty")),
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

// OutOfStock reports a closing quantity at or below zero
func (r Row) OutOfStock() bool {
	return r.ClosingQty <= 0
}

// SearchFields matches item code, name and unit
func (r Row) SearchFields() []string {
	return []string{r.ItemCode, r.ItemName, r.UOM}
}

// CSVRecord returns the export columns in CSVHeader order
func (r Row) CSVRecord() []string {
	return []string{r.ItemCode, r.ItemName, r.UOM, utils.FormatNumber(r.OpeningQty), utils.FormatNumber(r.ClosingQty)}
}

func text(record map[string]any, keys ...string) string {
	return strings.TrimSpace(utils.ToString(utils.FirstPresent(record, keys...)))
}
