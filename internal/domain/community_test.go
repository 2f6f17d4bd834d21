package domain

import (
	"testing"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/testutil"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newCommunityDomain() *communityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewCollaboratorRepository(),
		repository.NewUserRepository(),
	)
}

func Test_communityDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	d := newCommunityDomain()

	resp, err := d.Create(ctx, &model.CreateCommunityRequest{
		Handle:      "webgl-lab",
		DisplayName: "WebGL Lab",
	})
	require.NoError(t, err)

	// The creator becomes the community owner.
	collaborator, err := d.collaboratorRepo.Get(ctx, testutil.User1.ID, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Owner, collaborator.Role)

	_, err = d.Create(ctx, &model.CreateCommunityRequest{
		Handle:      "webgl-lab",
		DisplayName: "Duplicate",
	})
	require.Error(t, err)
	require.Equal(t, "This handle was already taken", err.Error())
}

func Test_communityDomain_CreateCollaborator(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newCommunityDomain()

	// User2 owns Community1 and may add a reviewer.
	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err := d.CreateCollaborator(ownerCtx, &model.CreateCollaboratorRequest{
		CommunityID: testutil.Community1.ID,
		UserID:      testutil.User3.ID,
		Role:        "reviewer",
	})
	require.NoError(t, err)

	// A reviewer cannot manage collaborators.
	reviewerCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err = d.CreateCollaborator(reviewerCtx, &model.CreateCollaboratorRequest{
		CommunityID: testutil.Community1.ID,
		UserID:      testutil.User1.ID,
		Role:        "editor",
	})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	_, err = d.CreateCollaborator(ownerCtx, &model.CreateCollaboratorRequest{
		CommunityID: testutil.Community1.ID,
		UserID:      testutil.User1.ID,
		Role:        "janitor",
	})
	require.Error(t, err)
	require.Equal(t, "Invalid role", err.Error())
}
