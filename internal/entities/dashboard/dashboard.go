package dashboard

import (
	"math"

	"github.com/benedict-erwin/store-console/internal/entities/gatepass"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// TopLimit caps the top items and top vendors lists
const TopLimit = 10

type (
	// Summary is the store indent dashboard returned by /store-indent/dashboard
	Summary struct {
		TotalIndents     int `json:"totalIndents"`
		CompletedIndents int `json:"completedIndents"`
		PendingIndents   int `json:"pendingIndents"`
		UpcomingIndents  int `json:"upcomingIndents"`
		OverdueIndents   int `json:"overdueIndents"`

		OverallProgress  float64 `json:"overallProgress"`
		CompletedPercent float64 `json:"completedPercent"`
		PendingPercent   float64 `json:"pendingPercent"`
		UpcomingPercent  float64 `json:"upcomingPercent"`
		OverduePercent   float64 `json:"overduePercent"`

		TotalIndentedQuantity  float64 `json:"totalIndentedQuantity"`
		TotalPurchaseOrders    int     `json:"totalPurchaseOrders"`
		TotalPurchasedQuantity float64 `json:"totalPurchasedQuantity"`
		TotalIssuedQuantity    float64 `json:"totalIssuedQuantity"`
		OutOfStockCount        int     `json:"outOfStockCount"`

		TopPurchasedItems []TopItem   `json:"topPurchasedItems"`
		TopVendors        []TopVendor `json:"topVendors"`
	}

	// TopItem is one entry of the most purchased items
	TopItem struct {
		ItemName      string  `json:"itemName"`
		OrderCount    int     `json:"orderCount"`
		TotalOrderQty float64 `json:"totalOrderQty"`
	}

	// TopVendor is one entry of the busiest vendors
	TopVendor struct {
		VendorName    string `json:"vendorName"`
		UniquePoCount int    `json:"uniquePoCount"`
		TotalItems    int    `json:"totalItems"`
	}

	// View is the dashboard as served to clients: the summary, derived rates and gate pass counts
	View struct {
		Summary
		PurchaseRate int             `json:"purchaseRate"`
		IssueRate    int             `json:"issueRate"`
		GatePassRate int             `json:"gatePassRate"`
		GatePass     gatepass.Counts `json:"gatePass"`
	}
)

// MapToSummary reads the dashboard payload leniently: counts and quantities
// may arrive as numbers or numeric strings, anything else counts as 0.
func MapToSummary(record map[string]any) Summary {
	s := Summary{
		TotalIndents:     count(record["totalIndents"]),
		CompletedIndents: count(record["completedIndents"]),
		PendingIndents:   count(record["pendingIndents"]),
		UpcomingIndents:  count(record["upcomingIndents"]),
		OverdueIndents:   count(record["overdueIndents"]),

		OverallProgress:  utils.ToNumber(record["overallProgress"]),
		CompletedPercent: utils.ToNumber(record["completedPercent"]),
		PendingPercent:   utils.ToNumber(record["pendingPercent"]),
		UpcomingPercent:  utils.ToNumber(record["upcomingPercent"]),
		OverduePercent:   utils.ToNumber(record["overduePercent"]),

		TotalIndentedQuantity:  utils.ToNumber(record["totalIndentedQuantity"]),
		TotalPurchaseOrders:    count(record["totalPurchaseOrders"]),
		TotalPurchasedQuantity: utils.ToNumber(record["totalPurchasedQuantity"]),
		TotalIssuedQuantity:    utils.ToNumber(record["totalIssuedQuantity"]),
		OutOfStockCount:        count(record["outOfStockCount"]),
	}

	for _, it := range objects(record["topPurchasedItems"]) {
		s.TopPurchasedItems = append(s.TopPurchasedItems, TopItem{
			ItemName:      utils.ToString(it["itemName"]),
			OrderCount:    count(it["orderCount"]),
			TotalOrderQty: utils.ToNumber(it["totalOrderQty"]),
		})
	}
	for _, v := range objects(record["topVendors"]) {
		s.TopVendors = append(s.TopVendors, TopVendor{
			VendorName:    utils.ToString(v["vendorName"]),
			UniquePoCount: count(v["uniquePoCount"]),
			TotalItems:    count(v["totalItems"]),
		})
	}
	return s
}

// PurchaseRate is purchase orders per indent as a rounded percentage, 0 without indents
func (s Summary) PurchaseRate() int {
	return rate(float64(s.TotalPurchaseOrders), float64(s.TotalIndents))
}

// IssueRate is issued over purchased quantity as a rounded percentage
func (s Summary) IssueRate() int {
	return rate(s.TotalIssuedQuantity, s.TotalPurchasedQuantity)
}

// Top trims the ranking lists to TopLimit entries
func (s Summary) Top() ([]TopItem, []TopVendor) {
	items, vendors := s.TopPurchasedItems, s.TopVendors
	if len(items) > TopLimit {
		items = items[:TopLimit]
	}
	if len(vendors) > TopLimit {
		vendors = vendors[:TopLimit]
	}
	return items, vendors
}

// NewView combines a summary with gate pass counts
func NewView(s Summary, counts gatepass.Counts) View {
	s.TopPurchasedItems, s.TopVendors = s.Top()
	return View{
		Summary:      s,
		PurchaseRate: s.PurchaseRate(),
		IssueRate:    s.IssueRate(),
		GatePassRate: counts.Rate(),
		GatePass:     counts,
	}
}

func rate(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

func count(v any) int {
	return int(math.Round(utils.ToNumber(v)))
}

// objects keeps the JSON objects of a list, skipping other elements
func objects(v any) []map[string]any {
	list, _ := v.([]any)
	out := make([]map[string]any, 0, len(list))
	for _, e := range list {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
