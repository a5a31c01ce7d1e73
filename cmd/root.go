package cmd

import (
	"os"

	"github.com/go-playground/validator"
	"github.com/spf13/cobra"

	"github.com/benedict-erwin/store-console/config"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/utils"
)

// Output formats for list and detail commands
const (
	outputTable = "table"
	outputJSON  = "json"
)

var (
	apiURLFlag   string
	logLevelFlag string
	outputFlag   string

	validate = validator.New()
)

var rootCmd = &cobra.Command{
	Use:               "store-console",
	Short:             "Store & inventory console",
	Long:              `Command line client and dashboard backend for the store indent, purchase order and stock API`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration and sets up logging before any command runs
func bootstrap(cmd *cobra.Command, _ []string) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()
	if apiURLFlag != "" {
		cfg.API.URL = apiURLFlag
	}

	level := cfg.App.LogLevel
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	format := logger.FormatConsole
	if cmd.Name() == serveCmd.Name() && cfg.App.Env == "prod" {
		format = logger.FormatJSON
	}
	logger.Init(level, format, cfg.App.Timezone)

	if err := utils.InitTimezone(cfg.App.Timezone); err != nil {
		logger.Warn().Err(err).Msg("Timezone initialization failed, continuing with UTC")
	}
	return nil
}

// init registers global flags and commands
func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURLFlag, "api-url", "", "Store API base URL (overrides STORE_API_URL / VITE_API_URL)")
	pf.StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVarP(&outputFlag, "output", "o", outputTable, "Output format: table or json")

	rootCmd.AddCommand(loginCmd, logoutCmd, tokenCmd, meCmd, userCmd)
	rootCmd.AddCommand(dashboardCmd, indentsCmd, poCmd, stockCmd, gatePassCmd, lookupCmd)
	rootCmd.AddCommand(serveCmd, devCmd)
}
