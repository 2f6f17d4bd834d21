package domain

import (
	"context"
	"testing"

	"github.com/demohub-lab/backend/internal/domain/statistic"
	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/testutil"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newPublicationDomain() *publicationDomain {
	userRepo := repository.NewUserRepository()
	return NewPublicationDomain(
		repository.NewDemoRepository(),
		repository.NewBountyRepository(),
		repository.NewSolutionRepository(),
		userRepo,
		repository.NewCollaboratorRepository(),
		statistic.New(userRepo, testutil.NewMockRedisClient()),
	)
}

// acceptWinningSolution walks a bounty to the in_review state: User1 funds
// it, User2 submits Demo1, and User1 accepts. Returns the bounty id.
func acceptWinningSolution(t *testing.T, ctx context.Context, reward int64) string {
	bountyID := createOpenBounty(t, ctx, reward)
	d := newSolutionDomain()

	submitted, err := d.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitSolutionRequest{BountyID: bountyID, DemoID: testutil.Demo1.ID})
	require.NoError(t, err)

	_, err = d.Review(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.ReviewSolutionRequest{SolutionID: submitted.ID, Action: "accepted"})
	require.NoError(t, err)

	return bountyID
}

func Test_publicationDomain_Approve_SettlesBounty(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newPublicationDomain()
	bountyID := acceptWinningSolution(t, ctx, 20)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	resp, err := d.Approve(adminCtx, &model.ApprovePublicationRequest{DemoID: testutil.Demo1.ID})
	require.NoError(t, err)
	require.Equal(t, "approved", resp.Demo.Status)
	require.Equal(t, "closed", resp.BountyStatus)

	// The winner received the escrowed reward plus contribution points.
	var winner entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&winner, "id=?", testutil.User2.ID).Error)
	require.Equal(t, int64(40), winner.Points)
	require.Equal(t, int64(10), winner.ContributionPoints)

	// The creator balance stays where the escrow left it.
	var creator entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&creator, "id=?", testutil.User1.ID).Error)
	require.Equal(t, int64(30), creator.Points)

	bounty, err := d.bountyRepo.GetByID(ctx, bountyID)
	require.NoError(t, err)
	require.Equal(t, entity.BountyClosed, bounty.Status)
}

func Test_publicationDomain_Approve_SettlesExactlyOnce(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newPublicationDomain()
	acceptWinningSolution(t, ctx, 20)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err := d.Approve(adminCtx, &model.ApprovePublicationRequest{DemoID: testutil.Demo1.ID})
	require.NoError(t, err)

	// A second approval of the same demo must not pay twice.
	_, err = d.Approve(adminCtx, &model.ApprovePublicationRequest{DemoID: testutil.Demo1.ID})
	require.Error(t, err)
	require.Equal(t, "This bounty was already settled", err.Error())

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadySettled, errx.Code)

	var winner entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&winner, "id=?", testutil.User2.ID).Error)
	require.Equal(t, int64(40), winner.Points)
	require.Equal(t, int64(10), winner.ContributionPoints)
}

func Test_publicationDomain_Approve_RequiresAdmin(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newPublicationDomain()
	acceptWinningSolution(t, ctx, 20)

	// Neither the bounty creator nor the winner is a global admin.
	for _, userID := range []string{testutil.User1.ID, testutil.User2.ID} {
		userCtx := xcontext.WithRequestUserID(ctx, userID)
		_, err := d.Approve(userCtx, &model.ApprovePublicationRequest{DemoID: testutil.Demo1.ID})
		require.Error(t, err)
		require.Equal(t, "Permission denied", err.Error())
	}
}

func Test_publicationDomain_Reject_ReopensBounty(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newPublicationDomain()
	bountyID := acceptWinningSolution(t, ctx, 20)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err := d.Reject(adminCtx, &model.RejectPublicationRequest{DemoID: testutil.Demo1.ID})
	require.Error(t, err)
	require.Equal(t, "Not allow empty rejection reason", err.Error())

	resp, err := d.Reject(adminCtx, &model.RejectPublicationRequest{
		DemoID: testutil.Demo1.ID,
		Reason: "Demo crashes on load",
	})
	require.NoError(t, err)
	require.Equal(t, "open", resp.BountyStatus)

	// The bounty reopened and keeps its escrow, nothing was paid out.
	bounty, err := d.bountyRepo.GetByID(ctx, bountyID)
	require.NoError(t, err)
	require.Equal(t, entity.BountyOpen, bounty.Status)

	var winner entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&winner, "id=?", testutil.User2.ID).Error)
	require.Equal(t, int64(20), winner.Points)
	require.Equal(t, int64(0), winner.ContributionPoints)

	var creator entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&creator, "id=?", testutil.User1.ID).Error)
	require.Equal(t, int64(30), creator.Points)

	// The solution became rejected for good and the demo went back to draft.
	solution, err := d.solutionRepo.GetList(ctx, repository.SolutionFilter{
		BountyID: bountyID,
	}, 0, 10)
	require.NoError(t, err)
	require.Len(t, solution, 1)
	require.Equal(t, entity.SolutionRejected, solution[0].Status)
	require.Equal(t, "Demo crashes on load", solution[0].RejectionReason)

	demo, err := d.demoRepo.GetByID(ctx, testutil.Demo1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DemoDraft, demo.Status)
	require.False(t, demo.BountyID.Valid)

	// The creator may now accept another solution on the reopened bounty.
	sd := newSolutionDomain()
	submitted, err := sd.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.SubmitSolutionRequest{BountyID: bountyID, DemoID: testutil.Demo2.ID})
	require.NoError(t, err)

	_, err = sd.Review(
		xcontext.WithRequestUserID(ctx, testutil.User1.ID),
		&model.ReviewSolutionRequest{SolutionID: submitted.ID, Action: "accepted"})
	require.NoError(t, err)
}

func Test_publicationDomain_Reject_OrdinaryDemo(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newPublicationDomain()

	// User2 publishes Demo1 without any bounty involved.
	dd := NewDemoDomain(repository.NewDemoRepository(), repository.NewCommunityRepository())
	_, err := dd.RequestPublication(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.RequestPublicationRequest{DemoID: testutil.Demo1.ID})
	require.NoError(t, err)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	resp, err := d.Reject(adminCtx, &model.RejectPublicationRequest{
		DemoID: testutil.Demo1.ID,
		Reason: "Not suitable",
	})
	require.NoError(t, err)
	require.Equal(t, "rejected", resp.Demo.Status)
	require.Empty(t, resp.BountyStatus)

	demo, err := d.demoRepo.GetByID(ctx, testutil.Demo1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DemoRejected, demo.Status)
	require.Equal(t, "Not suitable", demo.RejectedReason)
}

func Test_publicationDomain_GetPendingList(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newPublicationDomain()
	acceptWinningSolution(t, ctx, 20)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	resp, err := d.GetPendingList(adminCtx, &model.GetPendingPublicationsRequest{Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Demos, 1)
	require.Equal(t, testutil.Demo1.ID, resp.Demos[0].ID)

	// Regular users cannot browse the queue.
	userCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = d.GetPendingList(userCtx, &model.GetPendingPublicationsRequest{Limit: 50})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())
}
