package indents

import (
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// Scopes accepted by the indent list endpoints
const (
	ScopeAll     = "all"
	ScopePending = "pending"
	ScopeHistory = "history"
)

// ExportPrefix names exported indent files, e.g. all-indents-2025-01-05.csv
const ExportPrefix = "all-indents"

// CSVHeader is the header row of an indent export
var CSVHeader = []string{"Request Number", "Timestamp", "Requester", "Department", "Division", "Item Code", "Product", "Qty", "UOM", "Form Type", "Status"}

type (
	// Row is one indent line as shown in the indent lists
	Row struct {
		ID            string  `json:"id,omitempty"`
		Timestamp     string  `json:"timestamp"`
		RequestNumber string  `json:"request_number"`
		RequesterName string  `json:"requester_name"`
		Department    string  `json:"department"`
		Division      string  `json:"division"`
		ItemCode      string  `json:"item_code"`
		ProductName   string  `json:"product_name"`
		RequestQty    float64 `json:"request_qty"`
		UOM           string  `json:"uom"`
		FormType      string  `json:"form_type"`
		Status        string  `json:"status"`
	}

	// CreateRequest is the payload for a new store indent
	CreateRequest struct {
		RequesterName string       `json:"requester_name" validate:"required"`
		Department    string       `json:"department" validate:"required"`
		Division      string       `json:"division"`
		FormType      string       `json:"form_type"`
		Items         []CreateItem `json:"items" validate:"required,min=1,dive"`
	}

	// CreateItem is one requested item of a CreateRequest
	CreateItem struct {
		ItemCode     string  `json:"item_code" validate:"required"`
		ProductName  string  `json:"product_name"`
		RequestQty   float64 `json:"request_qty" validate:"gt=0"`
		UOM          string  `json:"uom"`
		CostLocation string  `json:"cost_location,omitempty"`
	}

	// StatusUpdate changes the status of one indent request
	StatusUpdate struct {
		Status  string `json:"status" validate:"required"`
		Remarks string `json:"remarks,omitempty"`
	}

	// Approval approves or rejects a pending store indent
	Approval struct {
		RequestNumber string  `json:"request_number" validate:"required"`
		Status        string  `json:"status" validate:"required,oneof=APPROVED REJECTED"`
		ApprovedQty   float64 `json:"approved_qty,omitempty"`
		Remarks       string  `json:"remarks,omitempty"`
	}
)

// MapToRow converts a raw API record, accepting snake_case or camelCase keys
func MapToRow(record map[string]any) Row {
	row := Row{
		Timestamp:     str(record, "timestamp", "created_at", "createdAt"),
		RequestNumber: str(record, "request_number", "requestNumber"),
		RequesterName: str(record, "requester_name", "requesterName"),
		Department:    str(record, "department"),
		Division:      str(record, "division"),
		ItemCode:      str(record, "item_code", "itemCode"),
		ProductName:   str(record, "product_name", "productName"),
		RequestQty:    utils.ToNumber(utils.FirstPresent(record, "request_qty", "requestQty")),
		UOM:           str(record, "uom"),
		FormType:      str(record, "form_type", "formType"),
		Status:        str(record, "status"),
	}
	// a zero or empty id is treated as absent
	if id := record["id"]; id != nil && id != "" && id != float64(0) && id != false {
		row.ID = utils.ToString(id)
	}
	return row
}

// MapToRows converts a list of raw records
func MapToRows(records []map[string]any) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		rows = append(rows, MapToRow(r))
	}
	return rows
}

// DisplayStatus returns the status, "Pending" when the API left it empty
func (r Row) DisplayStatus() string {
	if r.Status == "" {
		return "Pending"
	}
	return r.Status
}

// SearchFields matches request number, product, requester and department
func (r Row) SearchFields() []string {
	return []string{r.RequestNumber, r.ProductName, r.RequesterName, r.Department}
}

// CSVRecord returns the export columns in CSVHeader order
func (r Row) CSVRecord() []string {
	return []string{
		r.RequestNumber,
		r.Timestamp,
		r.RequesterName,
		r.Department,
		r.Division,
		r.ItemCode,
		r.ProductName,
		utils.FormatNumber(r.RequestQty),
		r.UOM,
		r.FormType,
		r.Status,
	}
}

func str(record map[string]any, keys ...string) string {
	return utils.ToString(utils.FirstPresent(record, keys...))
}
