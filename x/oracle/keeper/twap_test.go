package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mars-protocol/mars-common/x/oracle/keeper"
)

func TestSelectTwapStart(t *testing.T) {
	tests := []struct {
		name   string
		times  []int64
		now    int64
		window int64
		want   int64
		found  bool
	}{
		{"exact match", []int64{90, 100, 110}, 200, 100, 100, true},
		{"closest below", []int64{80, 97}, 200, 100, 97, true},
		{"closest above", []int64{89, 102}, 200, 100, 102, true},
		{"tie picks the recent one", []int64{95, 105}, 200, 100, 105, true},
		{"tie regardless of order", []int64{105, 95}, 200, 100, 105, true},
		{"ignores now and later", []int64{200, 210}, 200, 100, 0, false},
		{"ignores now but keeps older", []int64{150, 200}, 200, 100, 150, true},
		{"empty", nil, 200, 100, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, found := keeper.SelectTwapStart(tc.times, tc.now, tc.window)
			require.Equal(t, tc.found, found)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSelectTwapStartProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := rapid.Int64Range(1_000, 1_000_000).Draw(t, "now")
		window := rapid.Int64Range(1, 900).Draw(t, "window")
		times := rapid.SliceOf(rapid.Int64Range(0, now+100)).Draw(t, "times")

		got, found := keeper.SelectTwapStart(times, now, window)

		var anyPast bool
		for _, ts := range times {
			if ts < now {
				anyPast = true
			}
		}
		if found != anyPast {
			t.Fatalf("found=%v but past snapshots present=%v", found, anyPast)
		}
		if !found {
			return
		}
		if got >= now {
			t.Fatalf("picked %d at or after now %d", got, now)
		}

		dist := func(ts int64) int64 {
			d := now - ts - window
			if d < 0 {
				return -d
			}
			return d
		}
		for _, ts := range times {
			if ts >= now {
				continue
			}
			if dist(ts) < dist(got) {
				t.Fatalf("%d is closer to the window than %d", ts, got)
			}
			if dist(ts) == dist(got) && ts > got {
				t.Fatalf("%d ties with %d but is more recent", ts, got)
			}
		}
	})
}
