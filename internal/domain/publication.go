package domain

import (
	"context"
	"errors"
	"time"

	"github.com/demohub-lab/backend/internal/common"
	"github.com/demohub-lab/backend/internal/domain/statistic"
	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/enum"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PublicationDomain interface {
	GetPendingList(context.Context, *model.GetPendingPublicationsRequest) (*model.GetPendingPublicationsResponse, error)
	Approve(context.Context, *model.ApprovePublicationRequest) (*model.ApprovePublicationResponse, error)
	Reject(context.Context, *model.RejectPublicationRequest) (*model.RejectPublicationResponse, error)
}

type publicationDomain struct {
	demoRepo              repository.DemoRepository
	bountyRepo            repository.BountyRepository
	solutionRepo          repository.SolutionRepository
	userRepo              repository.UserRepository
	globalRoleVerifier    *common.GlobalRoleVerifier
	communityRoleVerifier *common.CommunityRoleVerifier
	leaderboard           statistic.Leaderboard
}

func NewPublicationDomain(
	demoRepo repository.DemoRepository,
	bountyRepo repository.BountyRepository,
	solutionRepo repository.SolutionRepository,
	userRepo repository.UserRepository,
	collaboratorRepo repository.CollaboratorRepository,
	leaderboard statistic.Leaderboard,
) *publicationDomain {
	return &publicationDomain{
		demoRepo:              demoRepo,
		bountyRepo:            bountyRepo,
		solutionRepo:          solutionRepo,
		userRepo:              userRepo,
		globalRoleVerifier:    common.NewGlobalRoleVerifier(userRepo),
		communityRoleVerifier: common.NewCommunityRoleVerifier(collaboratorRepo, userRepo),
		leaderboard:           leaderboard,
	}
}

func (d *publicationDomain) GetPendingList(
	ctx context.Context, req *model.GetPendingPublicationsRequest,
) (*model.GetPendingPublicationsResponse, error) {
	layer := entity.LayerGeneral
	if req.PublishLayer != "" {
		var err error
		layer, err = enum.ToEnum[entity.PublishLayer](req.PublishLayer)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid publish layer: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid publish layer")
		}
	}

	if err := d.authorize(ctx, layer, req.CommunityID); err != nil {
		return nil, err
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	demos, err := d.demoRepo.GetPendingList(ctx, layer, req.CommunityID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending demo list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetPendingPublicationsResponse{Demos: []model.Demo{}}
	for i := range demos {
		resp.Demos = append(resp.Demos, model.ConvertDemo(&demos[i]))
	}

	return resp, nil
}

func (d *publicationDomain) Approve(
	ctx context.Context, req *model.ApprovePublicationRequest,
) (*model.ApprovePublicationResponse, error) {
	demo, err := d.loadPending(ctx, req.DemoID)
	if err != nil {
		return nil, err
	}

	if err := d.authorize(ctx, demo.PublishLayer, demo.CommunityID.String); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.demoRepo.UpdateStatusByID(ctx, demo.ID, entity.DemoPending, entity.DemoApproved, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotPending, "Publication must be pending")
		}

		xcontext.Logger(ctx).Errorf("Cannot approve demo: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.ApprovePublicationResponse{}
	var winnerID string
	var reward int64
	if demo.BountyID.Valid {
		winnerID, reward, err = d.settle(ctx, demo.BountyID.String)
		if err != nil {
			return nil, err
		}

		resp.BountyStatus = string(entity.BountyClosed)
	}

	xcontext.WithCommitDBTransaction(ctx)

	if winnerID != "" {
		if err := d.leaderboard.ChangeUserPoints(ctx, winnerID, reward); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
		}
	}

	demo.Status = entity.DemoApproved
	resp.Demo = model.ConvertDemo(demo)
	return resp, nil
}

// settle pays the accepted solution and closes the bounty. The bounty status
// compare-and-swap from in_review guarantees the payout happens exactly once.
func (d *publicationDomain) settle(ctx context.Context, bountyID string) (string, int64, error) {
	bounty, err := d.bountyRepo.GetByID(ctx, bountyID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bounty to settle: %v", err)
		return "", 0, errorx.Unknown
	}

	solution, err := d.solutionRepo.GetAcceptedByBountyID(ctx, bountyID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get accepted solution of bounty: %v", err)
		return "", 0, errorx.Unknown
	}

	err = d.bountyRepo.UpdateStatusByID(ctx, bountyID, entity.BountyInReview, entity.BountyClosed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", 0, errorx.New(errorx.AlreadySettled, "This bounty was already settled")
		}

		xcontext.Logger(ctx).Errorf("Cannot close bounty: %v", err)
		return "", 0, errorx.Unknown
	}

	if err := d.userRepo.IncreasePoints(ctx, solution.UserID, bounty.RewardPoints); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot pay bounty reward: %v", err)
		return "", 0, errorx.Unknown
	}

	contribution := xcontext.Configs(ctx).Bounty.ContributionPointsPerBounty
	if err := d.userRepo.IncreaseContributionPoints(ctx, solution.UserID, contribution); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award contribution points: %v", err)
		return "", 0, errorx.Unknown
	}

	return solution.UserID, bounty.RewardPoints, nil
}

func (d *publicationDomain) Reject(
	ctx context.Context, req *model.RejectPublicationRequest,
) (*model.RejectPublicationResponse, error) {
	if req.Reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty rejection reason")
	}

	demo, err := d.loadPending(ctx, req.DemoID)
	if err != nil {
		return nil, err
	}

	if err := d.authorize(ctx, demo.PublishLayer, demo.CommunityID.String); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	resp := &model.RejectPublicationResponse{}
	if demo.BountyID.Valid {
		// The winning solution loses its accepted status and the bounty goes
		// back to open so the creator can pick another solution. The escrow
		// stays on the reopened bounty.
		solution, err := d.solutionRepo.GetAcceptedByBountyID(ctx, demo.BountyID.String)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get accepted solution of bounty: %v", err)
			return nil, errorx.Unknown
		}

		review := &entity.Solution{
			Status:          entity.SolutionRejected,
			RejectionReason: req.Reason,
			ReviewedAt:      time.Now(),
		}

		err = d.solutionRepo.UpdateReviewByID(ctx, solution.ID, entity.SolutionAccepted, review)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reject winning solution: %v", err)
			return nil, errorx.Unknown
		}

		err = d.bountyRepo.UpdateStatusByID(
			ctx, demo.BountyID.String, entity.BountyInReview, entity.BountyOpen)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot reopen bounty: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.demoRepo.ReleaseByBountyID(ctx, demo.BountyID.String, req.Reason); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot release demo from bounty: %v", err)
			return nil, errorx.Unknown
		}

		demo.Status = entity.DemoDraft
		demo.BountyID.Valid = false
		demo.BountyID.String = ""
		resp.BountyStatus = string(entity.BountyOpen)
	} else {
		err = d.demoRepo.UpdateStatusByID(
			ctx, demo.ID, entity.DemoPending, entity.DemoRejected, req.Reason)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotPending, "Publication must be pending")
			}

			xcontext.Logger(ctx).Errorf("Cannot reject demo: %v", err)
			return nil, errorx.Unknown
		}

		demo.Status = entity.DemoRejected
	}

	xcontext.WithCommitDBTransaction(ctx)

	demo.RejectedReason = req.Reason
	resp.Demo = model.ConvertDemo(demo)
	return resp, nil
}

func (d *publicationDomain) loadPending(ctx context.Context, demoID string) (*entity.Demo, error) {
	if demoID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty demo id")
	}

	demo, err := d.demoRepo.GetByID(ctx, demoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found demo")
		}

		xcontext.Logger(ctx).Errorf("Cannot get demo: %v", err)
		return nil, errorx.Unknown
	}

	if demo.Status != entity.DemoPending {
		if demo.Status == entity.DemoApproved && demo.BountyID.Valid {
			return nil, errorx.New(errorx.AlreadySettled, "This bounty was already settled")
		}

		return nil, errorx.New(errorx.NotPending, "Publication must be pending")
	}

	return demo, nil
}

func (d *publicationDomain) authorize(
	ctx context.Context, layer entity.PublishLayer, communityID string,
) error {
	if layer == entity.LayerCommunity {
		if communityID == "" {
			return errorx.New(errorx.BadRequest, "Not allow empty community id")
		}

		if err := d.communityRoleVerifier.Verify(ctx, communityID, entity.ReviewGroup...); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied for publication review: %v", err)
			return errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil
	}

	if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied for publication review: %v", err)
		return errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	return nil
}
