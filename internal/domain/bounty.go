package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/demohub-lab/backend/internal/common"
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

type BountyDomain interface {
	Create(context.Context, *model.CreateBountyRequest) (*model.CreateBountyResponse, error)
	Get(context.Context, *model.GetBountyRequest) (*model.GetBountyResponse, error)
	GetList(context.Context, *model.GetListBountyRequest) (*model.GetListBountyResponse, error)
	Delete(context.Context, *model.DeleteBountyRequest) (*model.DeleteBountyResponse, error)
}

type bountyDomain struct {
	bountyRepo         repository.BountyRepository
	solutionRepo       repository.SolutionRepository
	demoRepo           repository.DemoRepository
	userRepo           repository.UserRepository
	communityRepo      repository.CommunityRepository
	globalRoleVerifier *common.GlobalRoleVerifier
}

func NewBountyDomain(
	bountyRepo repository.BountyRepository,
	solutionRepo repository.SolutionRepository,
	demoRepo repository.DemoRepository,
	userRepo repository.UserRepository,
	communityRepo repository.CommunityRepository,
) *bountyDomain {
	return &bountyDomain{
		bountyRepo:         bountyRepo,
		solutionRepo:       solutionRepo,
		demoRepo:           demoRepo,
		userRepo:           userRepo,
		communityRepo:      communityRepo,
		globalRoleVerifier: common.NewGlobalRoleVerifier(userRepo),
	}
}

func (d *bountyDomain) Create(
	ctx context.Context, req *model.CreateBountyRequest,
) (*model.CreateBountyResponse, error) {
	if req.Title == "" || req.Description == "" || req.ProgramTitle == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title, description, or program title")
	}

	if req.RewardPoints <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Reward points must be positive")
	}

	layer := entity.LayerGeneral
	if req.PublishLayer != "" {
		var err error
		layer, err = enum.ToEnum[entity.PublishLayer](req.PublishLayer)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid publish layer: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid publish layer")
		}
	}

	publishCommunityID := sql.NullString{}
	if layer == entity.LayerCommunity {
		if req.PublishCommunityID == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty community for community layer")
		}

		if _, err := d.communityRepo.GetByID(ctx, req.PublishCommunityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found community")
			}

			xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
			return nil, errorx.Unknown
		}

		publishCommunityID = sql.NullString{Valid: true, String: req.PublishCommunityID}
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	bounty := &entity.Bounty{
		Base:               entity.Base{ID: uuid.NewString()},
		CreatedBy:          userID,
		Title:              req.Title,
		Description:        []byte(req.Description),
		RewardPoints:       req.RewardPoints,
		Status:             entity.BountyOpen,
		PublishLayer:       layer,
		PublishCommunityID: publishCommunityID,
		PublishCategoryID:  toNullString(req.PublishCategoryID),
		ProgramTitle:       req.ProgramTitle,
		ProgramDescription: []byte(req.ProgramDescription),
		ProgramTags:        req.ProgramTags,
	}

	// The escrow and the bounty row must commit together.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if slices.Contains(entity.GlobalAdminRoles, user.Role) {
		err = d.userRepo.ForceDecreasePoints(ctx, userID, req.RewardPoints)
	} else {
		err = d.userRepo.DecreasePoints(ctx, userID, req.RewardPoints)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.InsufficientFunds, "Not enough points to fund the bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot reserve the escrow: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bountyRepo.Create(ctx, bounty); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create bounty: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.CreateBountyResponse{ID: bounty.ID}, nil
}

func (d *bountyDomain) Get(
	ctx context.Context, req *model.GetBountyRequest,
) (*model.GetBountyResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	bounty, err := d.bountyRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty: %v", err)
		return nil, errorx.Unknown
	}

	solutions, err := d.solutionRepo.GetList(ctx, repository.SolutionFilter{
		BountyID: bounty.ID,
	}, 0, xcontext.Configs(ctx).ApiServer.MaxLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get solutions of bounty: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetBountyResponse{
		Bounty:    model.ConvertBounty(bounty),
		Solutions: []model.Solution{},
	}
	for i := range solutions {
		resp.Solutions = append(resp.Solutions, model.ConvertSolution(&solutions[i]))
	}

	return resp, nil
}

func (d *bountyDomain) GetList(
	ctx context.Context, req *model.GetListBountyRequest,
) (*model.GetListBountyResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := repository.BountyFilter{CreatedBy: req.CreatedBy}
	if req.Status != "" {
		status, err := enum.ToEnum[entity.BountyStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid bounty status filter: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status filter")
		}

		filter.Status = status
	}

	bounties, err := d.bountyRepo.GetList(ctx, filter, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get bounty list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListBountyResponse{Bounties: []model.Bounty{}}
	for i := range bounties {
		resp.Bounties = append(resp.Bounties, model.ConvertBounty(&bounties[i]))
	}

	return resp, nil
}

func (d *bountyDomain) Delete(
	ctx context.Context, req *model.DeleteBountyRequest,
) (*model.DeleteBountyResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	bounty, err := d.bountyRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot get bounty: %v", err)
		return nil, errorx.Unknown
	}

	if xcontext.RequestUserID(ctx) != bounty.CreatedBy {
		if err := d.globalRoleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}
	}

	// A settled bounty is terminal. Its escrow was paid out and the winning
	// demo is public, there is nothing to unwind.
	if bounty.Status == entity.BountyClosed {
		return nil, errorx.New(errorx.BountyClosed, "Cannot delete a settled bounty")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The guarded delete below makes sure only the transaction that removes
	// the row also releases the escrow.
	if err := d.solutionRepo.DeleteByBountyID(ctx, bounty.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete solutions of bounty: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.demoRepo.ReleaseByBountyID(ctx, bounty.ID, "Bounty was deleted"); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot release demos of bounty: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.bountyRepo.DeleteByID(ctx, bounty.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found bounty")
		}

		xcontext.Logger(ctx).Errorf("Cannot delete bounty: %v", err)
		return nil, errorx.Unknown
	}

	// The escrow of an unclosed bounty is still held. Return it to the
	// creator in full.
	if err := d.userRepo.IncreasePoints(ctx, bounty.CreatedBy, bounty.RewardPoints); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot release the escrow: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteBountyResponse{}, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}

	return sql.NullString{Valid: true, String: s}
}
