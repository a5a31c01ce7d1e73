package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/internal/entities/indents"
	"github.com/benedict-erwin/store-console/pkg/tabular"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// listFlags are the search and paging flags shared by list commands
type listFlags struct {
	search string
	page   int
	size   int
}

func (f *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Case-insensitive search across the list's searchable columns")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.size, "size", tabular.DefaultPageSize, "Rows per page")
}

var (
	indentList   listFlags
	indentCSV    bool
	indentCSVOut string
	indentDLOut  string
	indentRemark string
	indentQty    float64
	indentFilter []string
	indentCreate indents.CreateRequest
	indentItems  []string
)

var indentsCmd = &cobra.Command{
	Use:       "indents [all|pending|history]",
	Short:     "List indents",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{indents.ScopeAll, indents.ScopePending, indents.ScopeHistory},
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := indents.ScopeAll
		if len(args) == 1 {
			scope = args[0]
		}
		return withSession(func(ctx context.Context, s *session) error {
			rows, err := s.svc.IndentsByScope(ctx, scope)
			if err != nil {
				return err
			}
			rows = tabular.Filter(rows, indentList.search)
			if indentCSV {
				return exportCSV(indents.ExportPrefix, indents.CSVHeader, rows, indentCSVOut)
			}
			return renderPage(stdout, indents.CSVHeader, tabular.Paginate(rows, indentList.page, indentList.size))
		})
	},
}

var indentGetCmd = &cobra.Command{
	Use:   "get <request-number>",
	Short: "Show one indent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			row, err := s.svc.Indent(ctx, args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return renderJSON(stdout, row)
			}
			return renderPairs(stdout, indentPairs(row))
		})
	},
}

var indentStatusCmd = &cobra.Command{
	Use:   "status <request-number> <status>",
	Short: "Update the status of an indent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		update := indents.StatusUpdate{Status: args[1], Remarks: indentRemark}
		return withSession(func(ctx context.Context, s *session) error {
			rec, err := s.svc.UpdateIndentStatus(ctx, args[0], update)
			if err != nil {
				return err
			}
			return renderRecord(stdout, rec)
		})
	},
}

var indentApproveCmd = &cobra.Command{
	Use:   "approve <request-number> <APPROVED|REJECTED>",
	Short: "Approve or reject a pending store indent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		approval := indents.Approval{
			RequestNumber: args[0],
			Status:        strings.ToUpper(args[1]),
			ApprovedQty:   indentQty,
			Remarks:       indentRemark,
		}
		if err := validate.Struct(approval); err != nil {
			return fmt.Errorf("invalid approval: %w", err)
		}
		return withSession(func(ctx context.Context, s *session) error {
			rec, err := s.svc.ApproveStoreIndent(ctx, approval)
			if err != nil {
				return err
			}
			return renderRecord(stdout, rec)
		})
	},
}

var indentDownloadCmd = &cobra.Command{
	Use:       "download <pending|history>",
	Short:     "Download the store indent spreadsheet",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{indents.ScopePending, indents.ScopeHistory},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			file, err := s.svc.DownloadStoreIndents(ctx, args[0])
			if err != nil {
				return err
			}
			out := indentDLOut
			if out == "" {
				out = file.Name
			}
			return writeFile(out, file.Content)
		})
	},
}

var indentFilterCmd = &cobra.Command{
	Use:     "filter",
	Short:   "List indents matching server-side filters",
	Example: `  store-console indents filter --where department=Maintenance --where status=PENDING`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseFilters(indentFilter)
		if err != nil {
			return err
		}
		return withSession(func(ctx context.Context, s *session) error {
			rows, err := s.svc.FilterIndents(ctx, params)
			if err != nil {
				return err
			}
			return renderPage(stdout, indents.CSVHeader, tabular.Paginate(rows, indentList.page, indentList.size))
		})
	},
}

var indentByStatusCmd = &cobra.Command{
	Use:   "by-status <status-type>",
	Short: "List indents of one status type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			rows, err := s.svc.IndentsByStatus(ctx, args[0])
			if err != nil {
				return err
			}
			return renderPage(stdout, indents.CSVHeader, tabular.Paginate(rows, indentList.page, indentList.size))
		})
	},
}

var indentCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Raise a store indent",
	Example: `  store-console indents create --requester Asha --department Maintenance --item ITM-9=4:NOS`,
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseItems(indentItems)
		if err != nil {
			return err
		}
		req := indentCreate
		req.Items = items
		if err := validate.Struct(req); err != nil {
			return fmt.Errorf("invalid indent: %w", err)
		}
		return withSession(func(ctx context.Context, s *session) error {
			rec, err := s.svc.CreateStoreIndent(ctx, req)
			if err != nil {
				return err
			}
			return renderRecord(stdout, rec)
		})
	},
}

var indentSubmitCmd = &cobra.Command{
	Use:   "submit <payload.json|->",
	Short: "Submit an indent form from a JSON file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := readPayload(args[0])
		if err != nil {
			return err
		}
		return withSession(func(ctx context.Context, s *session) error {
			rec, err := s.svc.SubmitIndent(ctx, payload)
			if err != nil {
				return err
			}
			return renderRecord(stdout, rec)
		})
	},
}

// parseFilters turns key=value pairs into query parameters
func parseFilters(pairs []string) (url.Values, error) {
	params := url.Values{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid filter %q, expected key=value", pair)
		}
		params.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return params, nil
}

func indentPairs(r indents.Row) [][2]string {
	return [][2]string{
		{"Request Number", r.RequestNumber},
		{"Timestamp", utils.FormatDisplayDateTime(r.Timestamp)},
		{"Requester", r.RequesterName},
		{"Department", r.Department},
		{"Division", r.Division},
		{"Item Code", r.ItemCode},
		{"Product", r.ProductName},
		{"Qty", utils.FormatNumber(r.RequestQty)},
		{"UOM", r.UOM},
		{"Form Type", r.FormType},
		{"Status", r.DisplayStatus()},
	}
}

func init() {
	indentList.bind(indentsCmd)
	indentsCmd.Flags().BoolVar(&indentCSV, "csv", false, "Export the filtered list as CSV instead of printing a page")
	indentsCmd.Flags().StringVar(&indentCSVOut, "out", "", "CSV file path, - for stdout (default all-indents-<date>.csv)")

	indentStatusCmd.Flags().StringVar(&indentRemark, "remarks", "", "Remarks sent with the update")
	indentApproveCmd.Flags().StringVar(&indentRemark, "remarks", "", "Remarks sent with the approval")
	indentApproveCmd.Flags().Float64Var(&indentQty, "qty", 0, "Approved quantity")
	indentDownloadCmd.Flags().StringVar(&indentDLOut, "out", "", "File path, - for stdout (default <scope>-indents.xlsx)")

	indentFilterCmd.Flags().StringArrayVar(&indentFilter, "where", nil, "Filter as key=value, repeatable")
	for _, c := range []*cobra.Command{indentFilterCmd, indentByStatusCmd} {
		c.Flags().IntVar(&indentList.page, "page", 1, "Page number")
		c.Flags().IntVar(&indentList.size, "size", tabular.DefaultPageSize, "Rows per page")
	}

	cf := indentCreateCmd.Flags()
	cf.StringVar(&indentCreate.RequesterName, "requester", "", "Requester name")
	cf.StringVar(&indentCreate.Department, "department", "", "Department")
	cf.StringVar(&indentCreate.Division, "division", "", "Division")
	cf.StringVar(&indentCreate.FormType, "form-type", "", "Form type")
	cf.StringArrayVar(&indentItems, "item", nil, "Item as CODE=QTY[:UOM], repeatable")

	indentsCmd.AddCommand(indentGetCmd, indentStatusCmd, indentApproveCmd, indentDownloadCmd, indentFilterCmd, indentByStatusCmd,
		indentCreateCmd, indentSubmitCmd)
}
