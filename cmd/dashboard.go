package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/internal/entities/dashboard"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the store dashboard summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			view, err := s.svc.DashboardView(ctx)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return renderJSON(stdout, view)
			}
			return renderDashboard(stdout, view)
		})
	},
}

// renderDashboard prints the summary cards followed by the two top lists
func renderDashboard(w io.Writer, v dashboard.View) error {
	n := utils.FormatNumber
	pct := func(f float64) string { return n(f) + "%" }

	err := renderPairs(w, [][2]string{
		{"Total Indents", strconv.Itoa(v.TotalIndents)},
		{"Completed", fmt.Sprintf("%d (%s)", v.CompletedIndents, pct(v.CompletedPercent))},
		{"Pending", fmt.Sprintf("%d (%s)", v.PendingIndents, pct(v.PendingPercent))},
		{"Upcoming", fmt.Sprintf("%d (%s)", v.UpcomingIndents, pct(v.UpcomingPercent))},
		{"Overdue", fmt.Sprintf("%d (%s)", v.OverdueIndents, pct(v.OverduePercent))},
		{"Overall Progress", pct(v.OverallProgress)},
		{"Indented Qty", n(v.TotalIndentedQuantity)},
		{"Purchase Orders", strconv.Itoa(v.TotalPurchaseOrders)},
		{"Purchased Qty", n(v.TotalPurchasedQuantity)},
		{"Issued Qty", n(v.TotalIssuedQuantity)},
		{"Purchase Rate", strconv.Itoa(v.PurchaseRate) + "%"},
		{"Issue Rate", strconv.Itoa(v.IssueRate) + "%"},
		{"Out Of Stock", strconv.Itoa(v.OutOfStockCount)},
		{"Gate Pass Pending", strconv.Itoa(v.GatePass.Pending)},
		{"Gate Pass History", strconv.Itoa(v.GatePass.History)},
		{"Gate Pass Rate", strconv.Itoa(v.GatePassRate) + "%"},
	})
	if err != nil {
		return err
	}

	if len(v.TopPurchasedItems) > 0 {
		rows := make([][]string, 0, len(v.TopPurchasedItems))
		for i, it := range v.TopPurchasedItems {
			rows = append(rows, []string{strconv.Itoa(i + 1), it.ItemName, strconv.Itoa(it.OrderCount), n(it.TotalOrderQty)})
		}
		fmt.Fprintln(w, "\nTop Purchased Items")
		if err := renderTable(w, []string{"#", "Item", "Orders", "Qty"}, rows); err != nil {
			return err
		}
	}

	if len(v.TopVendors) > 0 {
		rows := make([][]string, 0, len(v.TopVendors))
		for i, vd := range v.TopVendors {
			rows = append(rows, []string{strconv.Itoa(i + 1), vd.VendorName, strconv.Itoa(vd.UniquePoCount), strconv.Itoa(vd.TotalItems)})
		}
		fmt.Fprintln(w, "\nTop Vendors")
		if err := renderTable(w, []string{"#", "Vendor", "POs", "Items"}, rows); err != nil {
			return err
		}
	}
	return nil
}
