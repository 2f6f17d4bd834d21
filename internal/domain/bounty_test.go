package domain

import (
	"testing"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/testutil"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBountyDomain() *bountyDomain {
	return NewBountyDomain(
		repository.NewBountyRepository(),
		repository.NewSolutionRepository(),
		repository.NewDemoRepository(),
		repository.NewUserRepository(),
		repository.NewCommunityRepository(),
	)
}

func Test_bountyDomain_Create_EscrowsReward(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	d := newBountyDomain()

	resp, err := d.Create(ctx, &model.CreateBountyRequest{
		Title:        "Render a fractal",
		Description:  "Best interactive fractal explorer wins",
		RewardPoints: 20,
		ProgramTitle: "Fractal explorer",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	// The reward moved from the creator balance into the bounty escrow.
	var user entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID).Error)
	require.Equal(t, int64(30), user.Points)

	bounty, err := d.bountyRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.BountyOpen, bounty.Status)
	require.Equal(t, int64(20), bounty.RewardPoints)
}

func Test_bountyDomain_Create_InsufficientFunds(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User2.ID)
	d := newBountyDomain()

	// User2 only has 20 points.
	_, err := d.Create(ctx, &model.CreateBountyRequest{
		Title:        "Too expensive",
		Description:  "description",
		RewardPoints: 21,
		ProgramTitle: "program",
	})
	require.Error(t, err)
	require.Equal(t, "Not enough points to fund the bounty", err.Error())

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.InsufficientFunds, errx.Code)

	// The balance is untouched and no bounty row exists.
	var user entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&user, "id=?", testutil.User2.ID).Error)
	require.Equal(t, int64(20), user.Points)

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Bounty{}).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func Test_bountyDomain_Create_AdminBypassesBalanceCheck(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.Admin.ID)
	d := newBountyDomain()

	// Admin has zero points but may still fund a bounty.
	resp, err := d.Create(ctx, &model.CreateBountyRequest{
		Title:        "Admin bounty",
		Description:  "description",
		RewardPoints: 15,
		ProgramTitle: "program",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)

	var user entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&user, "id=?", testutil.Admin.ID).Error)
	require.Equal(t, int64(-15), user.Points)
}

func Test_bountyDomain_Create_Validation(t *testing.T) {
	ctx := testutil.MockContextWithUserID(t, testutil.User1.ID)
	d := newBountyDomain()

	_, err := d.Create(ctx, &model.CreateBountyRequest{
		Description:  "description",
		RewardPoints: 10,
		ProgramTitle: "program",
	})
	require.Error(t, err)
	require.Equal(t, "Not allow empty title, description, or program title", err.Error())

	_, err = d.Create(ctx, &model.CreateBountyRequest{
		Title:        "title",
		Description:  "description",
		RewardPoints: 0,
		ProgramTitle: "program",
	})
	require.Error(t, err)
	require.Equal(t, "Reward points must be positive", err.Error())

	_, err = d.Create(ctx, &model.CreateBountyRequest{
		Title:        "title",
		Description:  "description",
		RewardPoints: 10,
		ProgramTitle: "program",
		PublishLayer: "community",
	})
	require.Error(t, err)
	require.Equal(t, "Not allow empty community for community layer", err.Error())
}

func Test_bountyDomain_Delete_RefundsEscrow(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newBountyDomain()

	creatorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := d.Create(creatorCtx, &model.CreateBountyRequest{
		Title:        "Short lived",
		Description:  "description",
		RewardPoints: 20,
		ProgramTitle: "program",
	})
	require.NoError(t, err)

	_, err = d.Delete(creatorCtx, &model.DeleteBountyRequest{ID: resp.ID})
	require.NoError(t, err)

	// The escrow returned in full.
	var user entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&user, "id=?", testutil.User1.ID).Error)
	require.Equal(t, int64(50), user.Points)

	// The bounty row is gone for good, not soft deleted.
	var count int64
	err = xcontext.DB(ctx).Unscoped().Model(&entity.Bounty{}).
		Where("id=?", resp.ID).Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(0), count)
}

func Test_bountyDomain_Delete_CascadesSolutions(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newBountyDomain()
	bountyID := createOpenBounty(t, ctx, 20)

	sd := newSolutionDomain()
	submitted, err := sd.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User2.ID),
		&model.SubmitSolutionRequest{BountyID: bountyID, DemoID: testutil.Demo1.ID})
	require.NoError(t, err)

	_, err = sd.Submit(
		xcontext.WithRequestUserID(ctx, testutil.User3.ID),
		&model.SubmitSolutionRequest{BountyID: bountyID, DemoID: testutil.Demo2.ID})
	require.NoError(t, err)

	// Accepting a winner puts the bounty in_review and attaches the demo,
	// the deletion must unwind that too.
	creatorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = sd.Review(creatorCtx, &model.ReviewSolutionRequest{
		SolutionID: submitted.ID,
		Action:     "accepted",
	})
	require.NoError(t, err)

	_, err = d.Delete(creatorCtx, &model.DeleteBountyRequest{ID: bountyID})
	require.NoError(t, err)

	// No solution row may outlive the bounty, its foreign key would dangle.
	var count int64
	err = xcontext.DB(ctx).Unscoped().Model(&entity.Solution{}).
		Where("bounty_id=?", bountyID).Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	// The attached demo went back to draft and the escrow returned once.
	demo, err := d.demoRepo.GetByID(ctx, testutil.Demo1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DemoDraft, demo.Status)
	require.False(t, demo.BountyID.Valid)

	var creator entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&creator, "id=?", testutil.User1.ID).Error)
	require.Equal(t, int64(50), creator.Points)
}

func Test_bountyDomain_Delete_SettledBounty(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newBountyDomain()
	bountyID := acceptWinningSolution(t, ctx, 20)

	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err := newPublicationDomain().Approve(adminCtx,
		&model.ApprovePublicationRequest{DemoID: testutil.Demo1.ID})
	require.NoError(t, err)

	// Settlement already paid the escrow out, deleting now would unwind a
	// published demo.
	creatorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	_, err = d.Delete(creatorCtx, &model.DeleteBountyRequest{ID: bountyID})
	require.Error(t, err)
	require.Equal(t, "Cannot delete a settled bounty", err.Error())

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BountyClosed, errx.Code)

	// Nothing was unwound: the winning demo stays approved, its solution
	// stays accepted, and no balance moved.
	demo, err := d.demoRepo.GetByID(ctx, testutil.Demo1.ID)
	require.NoError(t, err)
	require.Equal(t, entity.DemoApproved, demo.Status)

	solutions, err := d.solutionRepo.GetList(ctx, repository.SolutionFilter{
		BountyID: bountyID,
	}, 0, 10)
	require.NoError(t, err)
	require.Len(t, solutions, 1)
	require.Equal(t, entity.SolutionAccepted, solutions[0].Status)

	var creator entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&creator, "id=?", testutil.User1.ID).Error)
	require.Equal(t, int64(30), creator.Points)

	var winner entity.User
	require.NoError(t, xcontext.DB(ctx).Take(&winner, "id=?", testutil.User2.ID).Error)
	require.Equal(t, int64(40), winner.Points)
}

func Test_bountyDomain_Delete_OnlyCreatorOrAdmin(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newBountyDomain()

	creatorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	resp, err := d.Create(creatorCtx, &model.CreateBountyRequest{
		Title:        "Protected",
		Description:  "description",
		RewardPoints: 10,
		ProgramTitle: "program",
	})
	require.NoError(t, err)

	strangerCtx := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = d.Delete(strangerCtx, &model.DeleteBountyRequest{ID: resp.ID})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// A global admin can delete any bounty.
	adminCtx := xcontext.WithRequestUserID(ctx, testutil.Admin.ID)
	_, err = d.Delete(adminCtx, &model.DeleteBountyRequest{ID: resp.ID})
	require.NoError(t, err)

	_, err = d.bountyRepo.GetByID(ctx, resp.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_bountyDomain_GetList_FilterByStatus(t *testing.T) {
	ctx := testutil.MockContext(t)
	d := newBountyDomain()

	creatorCtx := xcontext.WithRequestUserID(ctx, testutil.User1.ID)
	for _, title := range []string{"first", "second"} {
		_, err := d.Create(creatorCtx, &model.CreateBountyRequest{
			Title:        title,
			Description:  "description",
			RewardPoints: 10,
			ProgramTitle: "program",
		})
		require.NoError(t, err)
	}

	resp, err := d.GetList(ctx, &model.GetListBountyRequest{Status: "open", Limit: 50})
	require.NoError(t, err)
	require.Len(t, resp.Bounties, 2)

	resp, err = d.GetList(ctx, &model.GetListBountyRequest{Status: "closed", Limit: 50})
	require.NoError(t, err)
	require.Empty(t, resp.Bounties)

	_, err = d.GetList(ctx, &model.GetListBountyRequest{Status: "nonsense", Limit: 50})
	require.Error(t, err)
	require.Equal(t, "Invalid status filter", err.Error())
}
