package domain

import (
	"context"

	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/xcontext"
)

// checkPagination normalizes offset/limit against the server configs.
func checkPagination(ctx context.Context, offset, limit int) (int, int, error) {
	cfg := xcontext.Configs(ctx).ApiServer

	if limit == 0 {
		limit = cfg.DefaultLimit
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > cfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	return offset, limit, nil
}
