package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	oraclekeeper "github.com/mars-protocol/mars-common/x/oracle/keeper"
	oracletypes "github.com/mars-protocol/mars-common/x/oracle/types"
	sharedkeeper "github.com/mars-protocol/mars-common/x/shared/keeper"
	swapperkeeper "github.com/mars-protocol/mars-common/x/swapper/keeper"
	swappertypes "github.com/mars-protocol/mars-common/x/swapper/types"
)

const flagLimit = "limit"

// PriceCmd resolves the price of a single denom.
func PriceCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "price [denom]",
		Short: "Resolve the price of a denom in the base denom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			resp, err := oraclekeeper.NewQueryServerImpl(marsApp.OracleKeeper).Price(ctx, &oracletypes.QueryPriceRequest{Denom: args[0]})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), v, resp.Price, func(w io.Writer) {
				fmt.Fprintf(w, "%s %s\n", resp.Price.Denom, oracletypes.FormatDec(resp.Price.Price))
			})
		},
	}
}

// PricesCmd resolves the price of every registered denom.
func PricesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices",
		Short: "Resolve the price of every registered denom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			resp, err := oraclekeeper.NewQueryServerImpl(marsApp.OracleKeeper).Prices(ctx, &oracletypes.QueryPricesRequest{
				Pagination: pageRequest(cmd),
			})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), v, resp, func(w io.Writer) {
				for _, p := range resp.Prices {
					fmt.Fprintf(w, "%s %s\n", p.Denom, oracletypes.FormatDec(p.Price))
				}
			})
		},
	}
	addLimitFlag(cmd)
	return cmd
}

// PriceSourcesCmd lists the registered price sources.
func PriceSourcesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price-sources",
		Short: "List the registered price sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			resp, err := oraclekeeper.NewQueryServerImpl(marsApp.OracleKeeper).PriceSources(ctx, &oracletypes.QueryPriceSourcesRequest{
				Pagination: pageRequest(cmd),
			})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), v, resp, func(w io.Writer) {
				for _, ps := range resp.PriceSources {
					fmt.Fprintf(w, "%s %s\n", ps.Denom, ps.Display)
				}
			})
		},
	}
	addLimitFlag(cmd)
	return cmd
}

// RouteCmd shows the stored route between two denoms.
func RouteCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "route [denom-in] [denom-out]",
		Short: "Show the stored route between two denoms",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			resp, err := swapperkeeper.NewQueryServerImpl(marsApp.SwapperKeeper).Route(ctx, &swappertypes.QueryRouteRequest{
				DenomIn:  args[0],
				DenomOut: args[1],
			})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), v, resp.Route, func(w io.Writer) {
				fmt.Fprintf(w, "%s -> %s: %s\n", resp.Route.DenomIn, resp.Route.DenomOut, resp.Route.Display)
			})
		},
	}
}

// RoutesCmd lists the stored routes.
func RoutesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the stored routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			resp, err := swapperkeeper.NewQueryServerImpl(marsApp.SwapperKeeper).Routes(ctx, &swappertypes.QueryRoutesRequest{
				Pagination: pageRequest(cmd),
			})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), v, resp, func(w io.Writer) {
				for _, r := range resp.Routes {
					fmt.Fprintf(w, "%s -> %s: %s\n", r.DenomIn, r.DenomOut, r.Display)
				}
			})
		},
	}
	addLimitFlag(cmd)
	return cmd
}

// ValidateRouteCmd checks a route against the sandbox pools without storing it.
func ValidateRouteCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-route [denom-in] [denom-out] [route-json]",
		Short: "Check a route against the pools without storing it",
		Example: `marsd validate-route uatom uusd '{"steps":[{"pool":{"pool_id":1,"token_out_denom":"uosmo"}},` +
			`{"pool":{"pool_id":2,"token_out_denom":"uusd"}}]}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var route swappertypes.Route
			if err := json.Unmarshal([]byte(args[2]), &route); err != nil {
				return fmt.Errorf("parse route: %w", err)
			}

			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			if maxHops := marsApp.SwapperKeeper.GetParams(ctx).MaxHops; uint32(len(route.Steps)) > maxHops {
				return swappertypes.ErrInvalidRoute.Wrapf("route has %d steps, max %d", len(route.Steps), maxHops)
			}
			if err := route.Validate(ctx, marsApp.DexKeeper, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "route %s is valid\n", route)
			return nil
		},
	}
}

// EstimateCmd estimates an exact-in swap along the stored route.
func EstimateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:     "estimate [coin-in] [denom-out]",
		Short:   "Estimate the output of swapping a coin along the stored route",
		Example: "marsd estimate 1000000uatom uusd",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coinIn, err := sdk.ParseCoinNormalized(args[0])
			if err != nil {
				return fmt.Errorf("parse coin: %w", err)
			}

			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			resp, err := swapperkeeper.NewQueryServerImpl(marsApp.SwapperKeeper).EstimateExactInSwap(ctx, &swappertypes.QueryEstimateExactInSwapRequest{
				CoinIn:   coinIn,
				DenomOut: args[1],
			})
			if err != nil {
				return err
			}
			return printOutput(cmd.OutOrStdout(), v, resp, func(w io.Writer) {
				fmt.Fprintf(w, "%s%s\n", resp.Amount, args[1])
			})
		},
	}
}

// ValidateGenesisCmd checks a genesis file, including the pool references of
// price sources and routes.
func ValidateGenesisCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-genesis [file]",
		Short: "Validate a genesis file by loading it into the sandbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v.Set(flagGenesis, args[0])
			if _, _, err := loadSandbox(v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "genesis %s is valid\n", args[0])
			return nil
		},
	}
}

// ExportCmd prints the sandbox state as genesis JSON after the advanced blocks.
func ExportCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the sandbox state as genesis JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			marsApp, ctx, err := loadSandbox(v)
			if err != nil {
				return err
			}
			genesis, err := marsApp.ExportGenesis(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), genesis)
		},
	}
}

func addLimitFlag(cmd *cobra.Command) {
	cmd.Flags().Uint64(flagLimit, sharedkeeper.DefaultPaginationLimit, "maximum number of entries")
}

func pageRequest(cmd *cobra.Command) *query.PageRequest {
	limit, _ := cmd.Flags().GetUint64(flagLimit)
	return &query.PageRequest{Limit: limit}
}

// printOutput writes obj as indented JSON, or through text with --output text.
func printOutput(w io.Writer, v *viper.Viper, obj any, text func(io.Writer)) error {
	switch format := v.GetString(flagOutput); format {
	case "json", "":
		return writeJSON(w, obj)
	case "text":
		text(w)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, obj any) error {
	bz, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(bz))
	return err
}
