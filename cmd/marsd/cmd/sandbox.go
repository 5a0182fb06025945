package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/mars-protocol/mars-common/app"
)

// genesisTime is the block time of the sandbox genesis block.
const genesisTime int64 = 1_700_000_000

// newLogger builds the sandbox logger from --log-level and --log-format.
func newLogger(v *viper.Viper, out io.Writer) (log.Logger, error) {
	filter, err := log.ParseLogLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	opts := []log.Option{log.FilterOption(filter)}

	switch format := v.GetString(flagLogFormat); format {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain", "":
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return log.NewLogger(out, opts...), nil
}

// loadGenesis returns the configured genesis file, or the default genesis.
func loadGenesis(v *viper.Viper, marsApp *app.MarsApp) (app.GenesisState, error) {
	path := v.GetString(flagGenesis)
	if path == "" {
		return app.NewDefaultGenesisState(marsApp.AppCodec()), nil
	}
	genesis, err := app.LoadGenesisFile(path)
	if err != nil {
		return nil, err
	}
	if err := app.ValidateGenesis(marsApp.AppCodec(), genesis); err != nil {
		return nil, fmt.Errorf("invalid genesis %s: %w", path, err)
	}
	return genesis, nil
}

// loadSandbox initializes an in-memory app from genesis and advances
// --blocks blocks of --block-time each. The returned context is the one of
// the last block.
func loadSandbox(v *viper.Viper) (*app.MarsApp, sdk.Context, error) {
	logger, err := newLogger(v, os.Stderr)
	if err != nil {
		return nil, sdk.Context{}, err
	}

	marsApp, err := app.NewMarsApp(logger, dbm.NewMemDB())
	if err != nil {
		return nil, sdk.Context{}, err
	}
	genesis, err := loadGenesis(v, marsApp)
	if err != nil {
		return nil, sdk.Context{}, err
	}

	ctx := marsApp.NewContext(1, time.Unix(genesisTime, 0).UTC())
	if err := marsApp.InitChainer(ctx, genesis); err != nil {
		return nil, sdk.Context{}, err
	}

	blocks, err := cast.ToUint64E(v.Get(flagBlocks))
	if err != nil {
		return nil, sdk.Context{}, fmt.Errorf("invalid --%s: %w", flagBlocks, err)
	}
	blockTime, err := cast.ToDurationE(v.Get(flagBlockTime))
	if err != nil {
		return nil, sdk.Context{}, fmt.Errorf("invalid --%s: %w", flagBlockTime, err)
	}
	if blockTime <= 0 {
		return nil, sdk.Context{}, fmt.Errorf("--%s must be positive", flagBlockTime)
	}

	for i := uint64(0); i < blocks; i++ {
		if err := marsApp.EndBlocker(ctx); err != nil {
			return nil, sdk.Context{}, fmt.Errorf("end block %d: %w", ctx.BlockHeight(), err)
		}
		marsApp.Commit()
		ctx = marsApp.NewContext(ctx.BlockHeight()+1, ctx.BlockTime().Add(blockTime))
	}

	logger.Debug("sandbox ready", "height", ctx.BlockHeight(), "time", ctx.BlockTime())
	return marsApp, ctx, nil
}
