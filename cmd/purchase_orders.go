package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/internal/entities/purchaseorders"
	"github.com/benedict-erwin/store-console/pkg/tabular"
)

var (
	poList   listFlags
	poCSV    bool
	poCSVOut string
	poDLOut  string
)

var poCmd = &cobra.Command{
	Use:       "po [pending|history]",
	Short:     "List purchase orders",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{purchaseorders.ScopePending, purchaseorders.ScopeHistory},
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := purchaseorders.ScopePending
		if len(args) == 1 {
			scope = args[0]
		}
		return withSession(func(ctx context.Context, s *session) error {
			rows, err := s.svc.PurchaseOrders(ctx, scope)
			if err != nil {
				return err
			}
			rows = tabular.Filter(rows, poList.search)
			if poCSV {
				return exportCSV(purchaseorders.ExportPrefix, purchaseorders.CSVHeader, rows, poCSVOut)
			}
			return renderPage(stdout, purchaseorders.CSVHeader, tabular.Paginate(rows, poList.page, poList.size))
		})
	},
}

var poDownloadCmd = &cobra.Command{
	Use:       "download <pending|history>",
	Short:     "Download the purchase order spreadsheet",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{purchaseorders.ScopePending, purchaseorders.ScopeHistory},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			file, err := s.svc.DownloadPurchaseOrders(ctx, args[0])
			if err != nil {
				return err
			}
			out := poDLOut
			if out == "" {
				out = file.Name
			}
			return writeFile(out, file.Content)
		})
	},
}

func init() {
	poList.bind(poCmd)
	poCmd.Flags().BoolVar(&poCSV, "csv", false, "Export the filtered list as CSV instead of printing a page")
	poCmd.Flags().StringVar(&poCSVOut, "out", "", "CSV file path, - for stdout (default purchase-orders-<date>.csv)")
	poDownloadCmd.Flags().StringVar(&poDLOut, "out", "", "File path, - for stdout (default name from the server)")
	poCmd.AddCommand(poDownloadCmd)
}
