package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/pkg/testutil"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_AuthVerifier(t *testing.T) {
	ctx := testutil.MockContext(t)
	verify := AuthVerifier()

	// No request at all.
	_, err := verify(ctx)
	require.Error(t, err)
	require.Equal(t, "You need to authenticate before", err.Error())

	// A valid bearer token resolves the user id.
	token, err := xcontext.TokenEngine(ctx).Generate(time.Minute, model.AccessToken{
		ID:   testutil.User1.ID,
		Name: testutil.User1.Name,
	})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/getUser", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	authedCtx, err := verify(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, xcontext.RequestUserID(authedCtx))

	// A garbage token is refused.
	req = httptest.NewRequest("GET", "/getUser", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	_, err = verify(xcontext.WithHTTPRequest(ctx, req))
	require.Error(t, err)
	require.Equal(t, "You need to authenticate before", err.Error())

	// An expired token is refused.
	expired, err := xcontext.TokenEngine(ctx).Generate(-time.Minute, model.AccessToken{
		ID: testutil.User1.ID,
	})
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/getUser", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	_, err = verify(xcontext.WithHTTPRequest(ctx, req))
	require.Error(t, err)
}

func Test_Optional(t *testing.T) {
	ctx := testutil.MockContext(t)
	verify := Optional()

	// Anonymous requests pass through without a user id.
	req := httptest.NewRequest("GET", "/getListBounty", nil)
	anonCtx, err := verify(xcontext.WithHTTPRequest(ctx, req))
	require.NoError(t, err)
	require.Empty(t, xcontext.RequestUserID(anonCtx))
}
