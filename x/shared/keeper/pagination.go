package keeper

import (
	"github.com/cosmos/cosmos-sdk/types/query"
)

const (
	DefaultPaginationLimit = 100
	MaxPaginationLimit     = 1000
)

// SanitizePagination enforces sensible defaults and caps for paginated queries.
func SanitizePagination(p *query.PageRequest) *query.PageRequest {
	if p == nil {
		return &query.PageRequest{Limit: DefaultPaginationLimit}
	}

	if p.Limit == 0 {
		p.Limit = DefaultPaginationLimit
	}

	if p.Limit > MaxPaginationLimit {
		p.Limit = MaxPaginationLimit
	}

	return p
}
