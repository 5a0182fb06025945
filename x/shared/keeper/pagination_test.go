package keeper

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/types/query"
	"github.com/stretchr/testify/require"
)

func TestSanitizePagination(t *testing.T) {
	require.Equal(t, uint64(DefaultPaginationLimit), SanitizePagination(nil).Limit)
	require.Equal(t, uint64(DefaultPaginationLimit), SanitizePagination(&query.PageRequest{}).Limit)
	require.Equal(t, uint64(MaxPaginationLimit), SanitizePagination(&query.PageRequest{Limit: 5000}).Limit)

	req := &query.PageRequest{Limit: 10, Key: []byte("next")}
	require.Same(t, req, SanitizePagination(req))
	require.Equal(t, uint64(10), req.Limit)
}
