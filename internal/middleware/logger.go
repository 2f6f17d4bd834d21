package middleware

import (
	"context"
	"errors"

	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/router"
	"github.com/demohub-lab/backend/pkg/xcontext"
)

// Logger writes one line per request after the response is decided.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		if req == nil {
			return
		}

		err := router.Error(ctx)
		if err == nil {
			xcontext.Logger(ctx).Infof("%s %s | ok", req.Method, req.URL.Path)
			return
		}

		errx := errorx.Error{}
		if errors.As(err, &errx) {
			xcontext.Logger(ctx).Infof("%s %s | code=%d %s",
				req.Method, req.URL.Path, errx.Code, errx.Message)
			return
		}

		xcontext.Logger(ctx).Warnf("%s %s | unexpected error: %v", req.Method, req.URL.Path, err)
	}
}
