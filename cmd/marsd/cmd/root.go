package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mars-protocol/mars-common/app"
)

const (
	// EnvPrefix prefixes every environment variable read by marsd.
	EnvPrefix = "MARS"
	// ConfigFileName is the optional config file inside the home directory.
	ConfigFileName = "marsd.toml"

	flagHome      = "home"
	flagGenesis   = "genesis"
	flagBlocks    = "blocks"
	flagBlockTime = "block-time"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagOutput    = "output"
)

// DefaultHome is the marsd home directory when neither --home nor MARS_HOME is set.
var DefaultHome = func() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".marsd"
	}
	return filepath.Join(userHome, ".marsd")
}()

// NewRootCmd creates the marsd command tree. Every command loads a genesis
// file into an in-memory sandbox, optionally advances some blocks, and then
// queries or exports the resulting state.
func NewRootCmd() *cobra.Command {
	app.SetConfig()

	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "marsd",
		Short: "Mars oracle and swapper sandbox",
		Long: `marsd loads a dex, oracle and swapper genesis into an in-memory store and
resolves prices, validates routes and estimates swaps against it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return bindConfig(v, cmd.Flags())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(flagHome, DefaultHome, "directory holding "+ConfigFileName)
	pf.String(flagGenesis, "", "genesis JSON keyed by module name (default genesis when empty)")
	pf.Uint(flagBlocks, 0, "blocks to advance after genesis, recording twap snapshots")
	pf.Duration(flagBlockTime, 6*time.Second, "time between advanced blocks")
	pf.String(flagLogLevel, "info", "log level, e.g. info or oracle:debug,*:error")
	pf.String(flagLogFormat, "plain", "log format: plain or json")
	pf.StringP(flagOutput, "o", "json", "output format: json or text")

	rootCmd.AddCommand(
		ValidateGenesisCmd(v),
		PriceCmd(v),
		PricesCmd(v),
		PriceSourcesCmd(v),
		RouteCmd(v),
		RoutesCmd(v),
		ValidateRouteCmd(v),
		EstimateCmd(v),
		ExportCmd(v),
	)

	return rootCmd
}

// bindConfig layers flags over MARS_* environment variables over the config
// file in the home directory.
func bindConfig(v *viper.Viper, flags *pflag.FlagSet) error {
	if err := v.BindPFlags(flags); err != nil {
		return err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(v.GetString(flagHome), ConfigFileName)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	return v.ReadInConfig()
}
