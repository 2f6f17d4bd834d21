package middleware

import (
	"context"
	"strings"

	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/router"
	"github.com/demohub-lab/backend/pkg/xcontext"
)

// AuthVerifier resolves the acting user from the access token and rejects the
// request if there is none.
func AuthVerifier() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

// Optional resolves the acting user if a token is present, but lets anonymous
// requests through.
func Optional() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := extractToken(ctx)
		if token == "" {
			return ctx, nil
		}

		var accessToken model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &accessToken); err != nil {
			return ctx, nil
		}

		return xcontext.WithRequestUserID(ctx, accessToken.ID), nil
	}
}

func extractToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	if authorization != "" {
		prefix, token, found := strings.Cut(authorization, " ")
		if !found || !strings.EqualFold(prefix, "Bearer") {
			return ""
		}

		return token
	}

	// Fallback to the cookie if there is no authorization header.
	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
