package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/internal/services/store"
)

var costLocationDiv string

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Master data and approval lists",
}

// recordsCommand builds a lookup subcommand that prints untyped records
func recordsCommand(use, short string, args cobra.PositionalArgs, fetch func(ctx context.Context, svc *store.Service, args []string) ([]store.Record, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, a []string) error {
			return withSession(func(ctx context.Context, s *session) error {
				recs, err := fetch(ctx, s.svc, a)
				if err != nil {
					return err
				}
				return renderRecords(stdout, recs)
			})
		},
	}
}

var (
	lookupItemsCmd = recordsCommand("items", "List the item master", cobra.NoArgs,
		func(ctx context.Context, svc *store.Service, _ []string) ([]store.Record, error) {
			return svc.Items(ctx)
		})

	lookupUOMCmd = recordsCommand("uom", "List units of measure", cobra.NoArgs,
		func(ctx context.Context, svc *store.Service, _ []string) ([]store.Record, error) {
			return svc.UOM(ctx)
		})

	lookupCostLocationCmd = recordsCommand("cost-location", "List cost locations", cobra.NoArgs,
		func(ctx context.Context, svc *store.Service, _ []string) ([]store.Record, error) {
			return svc.CostLocations(ctx, costLocationDiv)
		})

	lookupCostGroupCmd = recordsCommand("cost-group <rp|pm|co>", "List the cost locations of one group",
		cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		func(ctx context.Context, svc *store.Service, args []string) ([]store.Record, error) {
			return svc.CostLocationGroup(ctx, args[0])
		})

	lookupVendorRatesCmd = recordsCommand("vendor-rates <pending|history>", "List vendor rate updates",
		cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		func(ctx context.Context, svc *store.Service, args []string) ([]store.Record, error) {
			return svc.VendorRates(ctx, args[0])
		})

	lookupThreePartyCmd = recordsCommand("three-party <pending|history>", "List three party approvals",
		cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		func(ctx context.Context, svc *store.Service, args []string) ([]store.Record, error) {
			return svc.ThreePartyApprovals(ctx, args[0])
		})
)

// payloadCommand builds a subcommand that posts a JSON payload from a file or stdin
func payloadCommand(use, short string, send func(ctx context.Context, svc *store.Service, payload any) (store.Record, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <payload.json|->",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(args[0])
			if err != nil {
				return err
			}
			return withSession(func(ctx context.Context, s *session) error {
				rec, err := send(ctx, s.svc, payload)
				if err != nil {
					return err
				}
				return renderRecord(stdout, rec)
			})
		},
	}
}

var (
	vendorRateUpdateCmd = payloadCommand("update", "Submit a vendor rate update",
		func(ctx context.Context, svc *store.Service, payload any) (store.Record, error) {
			return svc.UpdateVendorRate(ctx, payload)
		})

	threePartyApproveCmd = payloadCommand("approve", "Submit a three party approval",
		func(ctx context.Context, svc *store.Service, payload any) (store.Record, error) {
			return svc.ApproveThreeParty(ctx, payload)
		})
)

func init() {
	lookupCostLocationCmd.Flags().StringVar(&costLocationDiv, "div", "", "Division code")
	lookupCostGroupCmd.ValidArgs = []string{store.CostGroupRP, store.CostGroupPM, store.CostGroupCO}
	lookupVendorRatesCmd.ValidArgs = []string{"pending", "history"}
	lookupThreePartyCmd.ValidArgs = []string{"pending", "history"}

	lookupVendorRatesCmd.AddCommand(vendorRateUpdateCmd)
	lookupThreePartyCmd.AddCommand(threePartyApproveCmd)

	lookupCmd.AddCommand(lookupItemsCmd, lookupUOMCmd, lookupCostLocationCmd, lookupCostGroupCmd, lookupVendorRatesCmd, lookupThreePartyCmd)
}
