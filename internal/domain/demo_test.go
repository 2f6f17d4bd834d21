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

func newDemoDomain() *demoDomain {
	return NewDemoDomain(repository.NewDemoRepository(), repository.NewCommunityRepository())
}

func Test_demoDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	d := newDemoDomain()

	resp, err := d.Create(ctx, &model.CreateDemoRequest{
		Title:       "Boids",
		Description: "Flocking simulation",
		Tags:        []string{"simulation", "canvas"},
	})
	require.NoError(t, err)

	demo, err := d.demoRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DemoDraft, demo.Status)
	require.Equal(t, testutil.User2.ID, demo.CreatedBy)

	_, err = d.Create(ctx, &model.CreateDemoRequest{})
	require.Error(t, err)
	require.Equal(t, "Not allow empty title", err.Error())
}

func Test_demoDomain_RequestPublication(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newDemoDomain()

	// Only the owner can request publication.
	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User3.ID)
	_, err := d.RequestPublication(strangerCtx, &model.RequestPublicationRequest{
		DemoID: testutil.Demo1.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Only the demo owner can publish it", err.Error())

	ownerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	resp, err := d.RequestPublication(ownerCtx, &model.RequestPublicationRequest{
		DemoID: testutil.Demo1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)

	// A pending demo cannot be requested again.
	_, err = d.RequestPublication(ownerCtx, &model.RequestPublicationRequest{
		DemoID: testutil.Demo1.ID,
	})
	require.Error(t, err)
	require.Equal(t, "Demo is waiting for another publication decision", err.Error())
}

func Test_demoDomain_RequestPublication_CommunityLayer(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	d := newDemoDomain()

	_, err := d.RequestPublication(ctx, &model.RequestPublicationRequest{
		DemoID:       testutil.Demo1.ID,
		PublishLayer: "community",
	})
	require.Error(t, err)
	require.Equal(t, "Not allow empty community id", err.Error())

	_, err = d.RequestPublication(ctx, &model.RequestPublicationRequest{
		DemoID:       testutil.Demo1.ID,
		PublishLayer: "community",
		CommunityID:  "never existed",
	})
	require.Error(t, err)
	require.Equal(t, "Not found community", err.Error())

	_, err = d.RequestPublication(ctx, &model.RequestPublicationRequest{
		DemoID:       testutil.Demo1.ID,
		PublishLayer: "community",
		CommunityID:  testutil.Community1.ID,
	})
	require.NoError(t, err)

	demo, err := d.demoRepo.GetByID(ctx, testutil.Demo1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.LayerCommunity, demo.PublishLayer)
	require.Equal(t, testutil.Community1.ID, demo.CommunityID.String)
}

func Test_demoDomain_GetList_OnlyApproved(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newDemoDomain()

	// Nothing is approved yet.
	resp, err := d.GetList(ctx, &model.GetListDemoRequest{Limit: 50})
	require.NoError(t, err)
	require.Empty(t, resp.Demos)

	require.NoError(t, d.demoRepo.RequestApproval(
		ctx, testutil.Demo1.ID, entity.DemoDraft, repository.DemoPublication{
			Layer: entity.LayerGeneral,
		}))
	require.NoError(t, d.demoRepo.UpdateStatusByID(
		ctx, testutil.Demo1.ID, entity.DemoPending, entity.DemoApproved, ""))

	resp, err = d.GetList(ctx, &model.GetListDemoRequest{Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Demos, 1)
	require.Equal(t, testutil.Demo1.ID, resp.Demos[0].ID)
}

func Test_demoDomain_GetMyDemos(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	d := newDemoDomain()

	resp, err := d.GetMyDemos(ctx, &model.GetMyDemosRequest{Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Demos, 1)
	require.Equal(t, testutil.Demo1.ID, resp.Demos[0].ID)
}
