package types

import (
	"encoding/binary"
)

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName
)

// Store key prefixes
var (
	ParamsKey          = []byte{0x01} // key for module params
	PoolKeyPrefix      = []byte{0x02} // prefix for pools by id
	PoolCountKey       = []byte{0x03} // key for the next pool id
	PoolByDenomsPrefix = []byte{0x04} // prefix for pool lookup by denom pair
	TwapSnapshotPrefix = []byte{0x05} // prefix for cumulative price snapshots
)

// PoolKey returns the store key for a pool.
func PoolKey(poolID uint64) []byte {
	return append(append([]byte{}, PoolKeyPrefix...), uint64Bytes(poolID)...)
}

// PoolByDenomsKey returns the lookup key for a denom pair, order independent.
func PoolByDenomsKey(denomA, denomB string) []byte {
	if denomA > denomB {
		denomA, denomB = denomB, denomA
	}
	key := append([]byte{}, PoolByDenomsPrefix...)
	key = append(key, []byte(denomA)...)
	key = append(key, '/')
	return append(key, []byte(denomB)...)
}

// TwapSnapshotPoolPrefix returns the prefix under which all snapshots of a pool live.
func TwapSnapshotPoolPrefix(poolID uint64) []byte {
	return append(append([]byte{}, TwapSnapshotPrefix...), uint64Bytes(poolID)...)
}

// TwapSnapshotKey returns the key of a pool snapshot taken at unixTime.
// Times are encoded big endian so iteration is chronological.
func TwapSnapshotKey(poolID uint64, unixTime int64) []byte {
	return append(TwapSnapshotPoolPrefix(poolID), uint64Bytes(uint64(unixTime))...)
}

func uint64Bytes(v uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, v)
	return bz
}
