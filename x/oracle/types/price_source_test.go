package types_test

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mars-protocol/mars-common/x/oracle/types"
)

func TestPriceSourceDisplay(t *testing.T) {
	tests := []struct {
		source types.PriceSource
		want   string
	}{
		{types.FixedPriceSource{Price: math.LegacyNewDecWithPrec(5, 1)}, "fixed:0.5"},
		{types.FixedPriceSource{Price: math.LegacyNewDec(12)}, "fixed:12"},
		{types.FixedPriceSource{Price: math.LegacyZeroDec()}, "fixed:0"},
		{types.SpotPriceSource{PoolID: 7, RouteAssets: []string{"uatom", "uusd"}}, "spot:7. Route: uatom,uusd"},
		{types.SpotPriceSource{PoolID: 3}, "spot:3. Route: "},
		{types.TwapPriceSource{PoolID: 2, WindowSize: 1800, Tolerance: 10, RouteAssets: []string{"uusd"}}, "twap:2:1800:10. Route: uusd"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, tc.source.String())
	}
}

func TestCheck(t *testing.T) {
	ps, err := types.PriceSourceUnchecked{Spot: &types.SpotUnchecked{Pool: "42", RouteAssets: []string{"uosmo", "uusd"}}}.Check()
	require.NoError(t, err)
	require.Equal(t, types.SpotPriceSource{PoolID: 42, RouteAssets: []string{"uosmo", "uusd"}}, ps)

	ps, err = types.PriceSourceUnchecked{Twap: &types.TwapUnchecked{Pool: "1", WindowSize: 60, Tolerance: 59}}.Check()
	require.NoError(t, err)
	require.Equal(t, types.TwapPriceSource{PoolID: 1, WindowSize: 60, Tolerance: 59}, ps)

	invalid := map[string]types.PriceSourceUnchecked{
		"empty":             {},
		"non numeric pool":  {Spot: &types.SpotUnchecked{Pool: "osmo"}},
		"negative pool":     {Spot: &types.SpotUnchecked{Pool: "-1"}},
		"zero pool":         {Twap: &types.TwapUnchecked{Pool: "0", WindowSize: 10}},
		"bad route denom":   {Spot: &types.SpotUnchecked{Pool: "1", RouteAssets: []string{"!"}}},
		"repeated route":    {Spot: &types.SpotUnchecked{Pool: "1", RouteAssets: []string{"uusd", "uusd"}}},
		"negative fixed":    {Fixed: &types.FixedUnchecked{Price: "-0.1"}},
		"empty fixed":       {Fixed: &types.FixedUnchecked{}},
		"tolerance too big": {Twap: &types.TwapUnchecked{Pool: "1", WindowSize: 10, Tolerance: 11}},
	}
	for name, u := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := u.Check()
			require.ErrorIs(t, err, types.ErrInvalidPriceSource)
		})
	}
}

func TestUncheckedRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		denom := rapid.StringMatching(`u[a-z]{2,8}`)
		assets := rapid.SliceOfDistinct(denom, func(s string) string { return s }).Draw(t, "assets")
		poolID := rapid.Uint64Range(1, 1<<40).Draw(t, "pool")
		window := rapid.Uint64Range(1, 86_400).Draw(t, "window")
		tolerance := rapid.Uint64Range(0, window-1).Draw(t, "tolerance")

		var ps types.PriceSource
		switch rapid.IntRange(0, 2).Draw(t, "kind") {
		case 0:
			ps = types.FixedPriceSource{Price: math.LegacyNewDecWithPrec(rapid.Int64Range(0, 1<<50).Draw(t, "price"), 6)}
		case 1:
			ps = types.SpotPriceSource{PoolID: poolID, RouteAssets: nilIfEmpty(assets)}
		default:
			ps = types.TwapPriceSource{PoolID: poolID, WindowSize: window, Tolerance: tolerance, RouteAssets: nilIfEmpty(assets)}
		}

		bz, err := types.MarshalPriceSource(ps)
		if err != nil {
			t.Fatal(err)
		}
		decoded, err := types.UnmarshalPriceSource(bz)
		if err != nil {
			t.Fatal(err)
		}
		if decoded.String() != ps.String() {
			t.Fatalf("round trip changed %q into %q", ps, decoded)
		}
	})
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestCheckRouteAcyclic(t *testing.T) {
	graph := map[string][]string{
		"uatom": {"uosmo", "uusd"},
		"uosmo": {"uusd"},
		"uinj":  {"uatom", "uusd"},
	}
	lookup := func(denom string) ([]string, error) {
		return graph[denom], nil
	}

	require.NoError(t, types.CheckRouteAcyclic("ujuno", []string{"uinj", "uusd"}, lookup))

	// uosmo reaching itself through uatom
	err := types.CheckRouteAcyclic("uosmo", []string{"uatom", "uusd"}, lookup)
	require.ErrorIs(t, err, types.ErrInvalidPriceSource)
	require.Contains(t, err.Error(), "route assets contain a loop: denom uosmo seen twice")

	// the denom listed in its own route
	err = types.CheckRouteAcyclic("uusd", []string{"uusd"}, lookup)
	require.ErrorIs(t, err, types.ErrInvalidPriceSource)

	boom := errors.New("store unavailable")
	err = types.CheckRouteAcyclic("ujuno", []string{"uatom"}, func(string) ([]string, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
}

func TestGenesisValidate(t *testing.T) {
	fixed := func(p string) types.PriceSourceUnchecked {
		return types.PriceSourceUnchecked{Fixed: &types.FixedUnchecked{Price: p}}
	}
	spot := func(pool string, route ...string) types.PriceSourceUnchecked {
		return types.PriceSourceUnchecked{Spot: &types.SpotUnchecked{Pool: pool, RouteAssets: route}}
	}

	tests := []struct {
		name    string
		genesis types.GenesisState
		valid   bool
	}{
		{"default", *types.DefaultGenesis(), true},
		{
			"routed sources",
			types.GenesisState{Params: types.DefaultParams(), PriceSources: []types.DenomPriceSource{
				{Denom: "uusd", PriceSource: fixed("1")},
				{Denom: "uosmo", PriceSource: spot("1", "uusd")},
				{Denom: "uatom", PriceSource: spot("2", "uosmo", "uusd")},
			}},
			true,
		},
		{
			"duplicate denom",
			types.GenesisState{Params: types.DefaultParams(), PriceSources: []types.DenomPriceSource{
				{Denom: "uusd", PriceSource: fixed("1")},
				{Denom: "uusd", PriceSource: fixed("2")},
			}},
			false,
		},
		{
			"unregistered route asset",
			types.GenesisState{Params: types.DefaultParams(), PriceSources: []types.DenomPriceSource{
				{Denom: "uosmo", PriceSource: spot("1", "uusd")},
			}},
			false,
		},
		{
			"loop",
			types.GenesisState{Params: types.DefaultParams(), PriceSources: []types.DenomPriceSource{
				{Denom: "uusd", PriceSource: fixed("1")},
				{Denom: "uosmo", PriceSource: spot("1", "uatom", "uusd")},
				{Denom: "uatom", PriceSource: spot("2", "uosmo", "uusd")},
			}},
			false,
		},
		{
			"bad params",
			types.GenesisState{Params: types.Params{BaseDenom: "uusd"}},
			false,
		},
		{
			"bad denom",
			types.GenesisState{Params: types.DefaultParams(), PriceSources: []types.DenomPriceSource{
				{Denom: "", PriceSource: fixed("1")},
			}},
			false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.genesis.Validate()
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
