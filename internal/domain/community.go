package domain

import (
	"context"
	"errors"

	"github.com/demohub-lab/backend/internal/common"
	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/internal/model"
	"github.com/demohub-lab/backend/internal/repository"
	"github.com/demohub-lab/backend/pkg/enum"
	"github.com/demohub-lab/backend/pkg/errorx"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommunityDomain interface {
	Create(context.Context, *model.CreateCommunityRequest) (*model.CreateCommunityResponse, error)
	GetList(context.Context, *model.GetListCommunityRequest) (*model.GetListCommunityResponse, error)
	CreateCollaborator(context.Context, *model.CreateCollaboratorRequest) (*model.CreateCollaboratorResponse, error)
}

type communityDomain struct {
	communityRepo         repository.CommunityRepository
	collaboratorRepo      repository.CollaboratorRepository
	userRepo              repository.UserRepository
	communityRoleVerifier *common.CommunityRoleVerifier
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	collaboratorRepo repository.CollaboratorRepository,
	userRepo repository.UserRepository,
) *communityDomain {
	return &communityDomain{
		communityRepo:         communityRepo,
		collaboratorRepo:      collaboratorRepo,
		userRepo:              userRepo,
		communityRoleVerifier: common.NewCommunityRoleVerifier(collaboratorRepo, userRepo),
	}
}

func (d *communityDomain) Create(
	ctx context.Context, req *model.CreateCommunityRequest,
) (*model.CreateCommunityResponse, error) {
	if req.Handle == "" || req.DisplayName == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty handle or display name")
	}

	_, err := d.communityRepo.GetByHandle(ctx, req.Handle)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This handle was already taken")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check community handle: %v", err)
		return nil, errorx.Unknown
	}

	userID := xcontext.RequestUserID(ctx)
	community := &entity.Community{
		Base:         entity.Base{ID: uuid.NewString()},
		CreatedBy:    userID,
		Handle:       req.Handle,
		DisplayName:  req.DisplayName,
		Introduction: []byte(req.Introduction),
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.communityRepo.Create(ctx, community); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create community: %v", err)
		return nil, errorx.Unknown
	}

	err = d.collaboratorRepo.Upsert(ctx, &entity.Collaborator{
		UserID:      userID,
		CommunityID: community.ID,
		Role:        entity.Owner,
		CreatedBy:   userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot assign community owner: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.CreateCommunityResponse{ID: community.ID}, nil
}

func (d *communityDomain) GetList(
	ctx context.Context, req *model.GetListCommunityRequest,
) (*model.GetListCommunityResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	communities, err := d.communityRepo.GetList(ctx, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListCommunityResponse{Communities: []model.Community{}}
	for i := range communities {
		resp.Communities = append(resp.Communities, model.ConvertCommunity(&communities[i]))
	}

	return resp, nil
}

func (d *communityDomain) CreateCollaborator(
	ctx context.Context, req *model.CreateCollaboratorRequest,
) (*model.CreateCollaboratorResponse, error) {
	if req.CommunityID == "" || req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty community id or user id")
	}

	role, err := enum.ToEnum[entity.Role](req.Role)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Invalid collaborator role: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid role")
	}

	// Only community owners and editors manage collaborators.
	if err := d.communityRoleVerifier.Verify(ctx, req.CommunityID, entity.AdminGroup...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied to add collaborator: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	err = d.collaboratorRepo.Upsert(ctx, &entity.Collaborator{
		UserID:      req.UserID,
		CommunityID: req.CommunityID,
		Role:        role,
		CreatedBy:   xcontext.RequestUserID(ctx),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create collaborator: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCollaboratorResponse{}, nil
}
