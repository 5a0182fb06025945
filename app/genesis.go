package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/codec"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"

	dexmodule "github.com/mars-protocol/mars-common/x/dex"
	dextypes "github.com/mars-protocol/mars-common/x/dex/types"
	oraclemodule "github.com/mars-protocol/mars-common/x/oracle"
	oracletypes "github.com/mars-protocol/mars-common/x/oracle/types"
	swappermodule "github.com/mars-protocol/mars-common/x/swapper"
	swappertypes "github.com/mars-protocol/mars-common/x/swapper/types"
)

// GenesisState is the genesis state of the app, keyed by module name.
type GenesisState map[string]json.RawMessage

type genesisBasic interface {
	DefaultGenesis(codec.JSONCodec) json.RawMessage
	ValidateGenesis(codec.JSONCodec, client.TxEncodingConfig, json.RawMessage) error
}

// moduleBasics lists the custom modules in genesis order.
var moduleBasics = []struct {
	name  string
	basic genesisBasic
}{
	{dextypes.ModuleName, dexmodule.AppModuleBasic{}},
	{oracletypes.ModuleName, oraclemodule.AppModuleBasic{}},
	{swappertypes.ModuleName, swappermodule.AppModuleBasic{}},
}

// NewDefaultGenesisState returns the default genesis of every module.
func NewDefaultGenesisState(cdc codec.JSONCodec) GenesisState {
	genesis := make(GenesisState)
	genesis[banktypes.ModuleName] = cdc.MustMarshalJSON(banktypes.DefaultGenesisState())
	for _, m := range moduleBasics {
		genesis[m.name] = m.basic.DefaultGenesis(cdc)
	}
	return genesis
}

// ValidateGenesis runs the stateless genesis checks of every custom module
// present in genesis.
func ValidateGenesis(cdc codec.JSONCodec, genesis GenesisState) error {
	for _, m := range moduleBasics {
		bz, ok := genesis[m.name]
		if !ok {
			continue
		}
		if err := m.basic.ValidateGenesis(cdc, nil, bz); err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
	}
	return nil
}

// LoadGenesisFile reads a genesis state written as a JSON object keyed by
// module name.
func LoadGenesisFile(path string) (GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	var genesis GenesisState
	if err := json.Unmarshal(bz, &genesis); err != nil {
		return nil, fmt.Errorf("unmarshal genesis %s: %w", path, err)
	}
	return genesis, nil
}
