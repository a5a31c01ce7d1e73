package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/internal/entities/gatepass"
)

var gatePassCmd = &cobra.Command{
	Use:       "gatepass [pending|received|history]",
	Short:     "List repair gate passes",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{gatepass.ScopePending, gatepass.ScopeReceived, gatepass.ScopeHistory},
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := gatepass.ScopePending
		if len(args) == 1 {
			scope = args[0]
		}
		return withSession(func(ctx context.Context, s *session) error {
			recs, err := s.svc.GatePasses(ctx, scope)
			if err != nil {
				return err
			}
			return renderRecords(stdout, recs)
		})
	},
}

var gatePassCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Show pending and history gate pass totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(ctx context.Context, s *session) error {
			counts, err := s.svc.GatePassCounts(ctx)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return renderJSON(stdout, counts)
			}
			return renderPairs(stdout, [][2]string{
				{"Pending", strconv.Itoa(counts.Pending)},
				{"History", strconv.Itoa(counts.History)},
			})
		})
	},
}

func init() {
	gatePassCmd.AddCommand(gatePassCountsCmd)
}
