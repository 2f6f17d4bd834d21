package domain

import (
	"context"
	"errors"
	"time"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/enum"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type SolutionDomain interface {
	Submit(context.Context, *model.SubmitSolutionRequest) (*model.SubmitSolutionResponse, error)
	Review(context.Context, *model.ReviewSolutionRequest) (*model.ReviewSolutionResponse, error)
	GetList(context.Context, *model.GetListSolutionRequest) (*model.GetListSolutionResponse, error)
}

type solutionDomain struct {
	solutionRepo repository.SolutionRepository
	bountyRepo   repository.BountyRepository
	demoRepo     repository.DemoRepository
}

func NewSolutionDomain(
	solutionRepo repository.SolutionRepository,
	bountyRepo repository.BountyRepository,
	demoRepo repository.DemoRepository,
) *solutionDomain {
	return &solutionDomain{
		solutionRepo: solutionRepo,
		bountyRepo:   bountyRepo,
		demoRepo:     demoRepo,
	}
}

func (d *solutionDomain) Submit(
	ctx context.Context, req *model.SubmitSolutionRequest,
) (*model.SubmitSolutionResponse, error) {
	if req.BountyID == "" || req.DemoID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty bounty id or demo id")
	}

	bounty, err := d.bountyRepo.GetByID(ctx, req.BountyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty: %v", err)
		return nil, errorx.Unknown
	}

	if bounty.Status != entity.BountyOpen {
		return nil, errorx.New(errorx.BountyClosed, "This bounty no longer accepts solutions")
	}

	userID := xcontext.RequestUserID(ctx)
	if userID == bounty.CreatedBy {
		return nil, errorx.New(errorx.SelfSubmission, "Cannot submit a solution to your own bounty")
	}

	demo, err := d.demoRepo.GetByID(ctx, req.DemoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found demo")
		}

		xcontext.Logger(ctx).Errorf("Cannot get demo: %v", err)
		return nil, errorx.Unknown
	}

	if demo.CreatedBy != userID {
		return nil, errorx.New(errorx.DemoNotOwned, "Only the demo owner can submit it")
	}

	if demo.Status == entity.DemoPending {
		return nil, errorx.New(errorx.Unavailable, "Demo is waiting for another publication decision")
	}

	solution := &entity.Solution{
		Base:     entity.Base{ID: uuid.NewString()},
		BountyID: bounty.ID,
		UserID:   userID,
		DemoID:   demo.ID,
		Status:   entity.SolutionPending,
	}

	if err := d.solutionRepo.Create(ctx, solution); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create solution: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SubmitSolutionResponse{
		ID:     solution.ID,
		Status: string(solution.Status),
	}, nil
}

func (d *solutionDomain) Review(
	ctx context.Context, req *model.ReviewSolutionRequest,
) (*model.ReviewSolutionResponse, error) {
	if req.SolutionID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty solution id")
	}

	action, err := enum.ToEnum[entity.SolutionStatus](req.Action)
	if err != nil || !slices.Contains(
		[]entity.SolutionStatus{entity.SolutionAccepted, entity.SolutionRejected}, action) {
		return nil, errorx.New(errorx.BadRequest, "Action must be accepted or rejected")
	}

	solution, err := d.solutionRepo.GetByID(ctx, req.SolutionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found solution")
		}

		xcontext.Logger(ctx).Errorf("Cannot get solution: %v", err)
		return nil, errorx.Unknown
	}

	bounty, err := d.bountyRepo.GetByID(ctx, solution.BountyID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bounty of solution: %v", err)
		return nil, errorx.Unknown
	}

	// Only the bounty creator reviews solutions.
	if xcontext.RequestUserID(ctx) != bounty.CreatedBy {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if solution.Status != entity.SolutionPending {
		return nil, errorx.New(errorx.NotPending, "Solution must be pending")
	}

	if action == entity.SolutionRejected {
		return d.reject(ctx, bounty, solution, req.Reason)
	}

	return d.accept(ctx, bounty, solution)
}

func (d *solutionDomain) reject(
	ctx context.Context, bounty *entity.Bounty, solution *entity.Solution, reason string,
) (*model.ReviewSolutionResponse, error) {
	if reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty rejection reason")
	}

	review := &entity.Solution{
		Status:          entity.SolutionRejected,
		RejectionReason: reason,
		ReviewedAt:      time.Now(),
	}

	err := d.solutionRepo.UpdateReviewByID(ctx, solution.ID, entity.SolutionPending, review)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotPending, "Solution must be pending")
		}

		xcontext.Logger(ctx).Errorf("Cannot reject solution: %v", err)
		return nil, errorx.Unknown
	}

	solution.Status = review.Status
	solution.RejectionReason = review.RejectionReason
	solution.ReviewedAt = review.ReviewedAt

	return &model.ReviewSolutionResponse{
		Solution:     model.ConvertSolution(solution),
		BountyStatus: string(bounty.Status),
	}, nil
}

func (d *solutionDomain) accept(
	ctx context.Context, bounty *entity.Bounty, solution *entity.Solution,
) (*model.ReviewSolutionResponse, error) {
	demo, err := d.demoRepo.GetByID(ctx, solution.DemoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get demo of solution: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The status compare-and-swap is the single-winner guard. If another
	// review already moved the bounty out of open, this fails.
	err = d.bountyRepo.UpdateStatusByID(ctx, bounty.ID, entity.BountyOpen, entity.BountyInReview)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BountyNotOpen, "This bounty already has an accepted solution")
		}

		xcontext.Logger(ctx).Errorf("Cannot move bounty to in_review: %v", err)
		return nil, errorx.Unknown
	}

	review := &entity.Solution{
		Status:     entity.SolutionAccepted,
		ReviewedAt: time.Now(),
	}

	err = d.solutionRepo.UpdateReviewByID(ctx, solution.ID, entity.SolutionPending, review)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotPending, "Solution must be pending")
		}

		xcontext.Logger(ctx).Errorf("Cannot accept solution: %v", err)
		return nil, errorx.Unknown
	}

	// The winning demo enters the publication queue carrying the bounty
	// provenance. The admin decision settles or reopens the bounty.
	err = d.demoRepo.RequestApproval(ctx, demo.ID, demo.Status, repository.DemoPublication{
		Layer:       bounty.PublishLayer,
		CommunityID: bounty.PublishCommunityID,
		CategoryID:  bounty.PublishCategoryID,
		BountyID:    toNullString(bounty.ID),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Demo is waiting for another publication decision")
		}

		xcontext.Logger(ctx).Errorf("Cannot request publication approval: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	solution.Status = review.Status
	solution.ReviewedAt = review.ReviewedAt

	return &model.ReviewSolutionResponse{
		Solution:     model.ConvertSolution(solution),
		BountyStatus: string(entity.BountyInReview),
	}, nil
}

func (d *solutionDomain) GetList(
	ctx context.Context, req *model.GetListSolutionRequest,
) (*model.GetListSolutionResponse, error) {
	if req.BountyID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty bounty id")
	}

	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.SolutionFilter{BountyID: req.BountyID}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.SolutionStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid solution status filter: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status filter")
		}

		filter.Status = status
	}

	solutions, err := d.solutionRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get solution list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListSolutionResponse{Solutions: []model.Solution{}}
	for i := range solutions {
		resp.Solutions = append(resp.Solutions, model.ConvertSolution(&solutions[i]))
	}

	return resp, nil
}
