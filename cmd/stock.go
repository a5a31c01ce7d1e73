package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/internal/entities/stock"
	"github.com/benedict-erwin/store-console/pkg/tabular"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

var (
	stockList       listFlags
	stockQuery      stock.Query
	stockOutOfStock bool
)

var stockCmd = &cobra.Command{
	Use:     "stock",
	Short:   "Show the stock report for a date range",
	Example: `  store-console stock --from 2025-04-01 --to 2025-04-30 --search bearing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		q := stockRange(cmd, stockQuery)
		if err := validate.Struct(q); err != nil {
			return stock.ErrDateRange
		}
		return withSession(func(ctx context.Context, s *session) error {
			rows, err := s.svc.Stock(ctx, q)
			if err != nil {
				return err
			}
			rows = tabular.Filter(rows, stockList.search)
			if stockOutOfStock {
				rows = outOfStock(rows)
			}
			return renderPage(stdout, stock.CSVHeader, tabular.Paginate(rows, stockList.page, stockList.size))
		})
	},
}

// stockRange defaults --to to today in the configured timezone
func stockRange(cmd *cobra.Command, q stock.Query) stock.Query {
	if !cmd.Flags().Changed("to") && q.To == "" {
		q.To = utils.Now().Format(utils.InputDateLayout)
	}
	return q
}

func outOfStock(rows []stock.Row) []stock.Row {
	out := make([]stock.Row, 0, len(rows))
	for _, r := range rows {
		if r.OutOfStock() {
			out = append(out, r)
		}
	}
	return out
}

func init() {
	stockList.bind(stockCmd)
	stockCmd.Flags().StringVar(&stockQuery.From, "from", "", "Start date, YYYY-MM-DD")
	stockCmd.Flags().StringVar(&stockQuery.To, "to", "", "End date, YYYY-MM-DD (default today)")
	stockCmd.Flags().BoolVar(&stockOutOfStock, "out-of-stock", false, "Only rows with closing quantity <= 0")
}
