package router

import (
	"context"
	"net/http"

	"github.com/demohub-lab/backend/pkg/authenticator"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/gin-gonic/gin"
)

type stateKey struct{}

// state is a mutable request outcome holder so that closers can observe the
// response or error after the handler returned.
type state struct {
	response any
	err      error
}

// Response returns the successful response object, or nil. Only meaningful
// inside a CloserFunc.
func Response(ctx context.Context) any {
	if s, ok := ctx.Value(stateKey{}).(*state); ok {
		return s.response
	}

	return nil
}

// Error returns the error the handler or a middleware produced, or nil. Only
// meaningful inside a CloserFunc.
func Error(ctx context.Context) error {
	if s, ok := ctx.Value(stateKey{}).(*state); ok {
		return s.err
	}

	return nil
}

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		reqState := &state{}

		ctx := context.WithValue(gctx.Request.Context(), stateKey{}, reqState)
		ctx = xcontext.WithDB(ctx, r.db)
		ctx = xcontext.WithLogger(ctx, r.logger)
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(r.cfg.Auth.TokenSecret))
		ctx = xcontext.WithHTTPRequest(ctx, gctx.Request)

		defer func() {
			for _, closer := range r.closers {
				closer(ctx)
			}
		}()

		var err error
		for _, middleware := range r.befores {
			if ctx, err = middleware(ctx); err != nil {
				reqState.err = err
				gctx.JSON(http.StatusOK, newErrorResponse(err))
				return
			}
		}

		var req Request
		switch method {
		case http.MethodGet:
			err = gctx.ShouldBindQuery(&req)
		default:
			err = gctx.ShouldBindJSON(&req)
		}
		if err != nil {
			reqState.err = errorx.New(errorx.BadRequest, "Cannot bind the request")
			gctx.JSON(http.StatusOK, newErrorResponse(reqState.err))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			reqState.err = err
			gctx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		reqState.response = resp
		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}
