package domain

import (
	"context"
	"errors"

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

type DemoDomain interface {
	Create(context.Context, *model.CreateDemoRequest) (*model.CreateDemoResponse, error)
	Get(context.Context, *model.GetDemoRequest) (*model.GetDemoResponse, error)
	GetList(context.Context, *model.GetListDemoRequest) (*model.GetListDemoResponse, error)
	GetMyDemos(context.Context, *model.GetMyDemosRequest) (*model.GetMyDemosResponse, error)
	RequestPublication(context.Context, *model.RequestPublicationRequest) (*model.RequestPublicationResponse, error)
}

type demoDomain struct {
	demoRepo      repository.DemoRepository
	communityRepo repository.CommunityRepository
}

func NewDemoDomain(
	demoRepo repository.DemoRepository,
	communityRepo repository.CommunityRepository,
) *demoDomain {
	return &demoDomain{demoRepo: demoRepo, communityRepo: communityRepo}
}

func (d *demoDomain) Create(
	ctx context.Context, req *model.CreateDemoRequest,
) (*model.CreateDemoResponse, error) {
	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title")
	}

	demo := &entity.Demo{
		Base:        entity.Base{ID: uuid.NewString()},
		CreatedBy:   xcontext.RequestUserID(ctx),
		Title:       req.Title,
		Description: []byte(req.Description),
		Tags:        req.Tags,
		Status:      entity.DemoDraft,
	}

	if err := d.demoRepo.Create(ctx, demo); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create demo: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateDemoResponse{ID: demo.ID}, nil
}

func (d *demoDomain) Get(
	ctx context.Context, req *model.GetDemoRequest,
) (*model.GetDemoResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	demo, err := d.demoRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found demo")
		}

		xcontext.Logger(ctx).Errorf("Cannot get demo: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetDemoResponse(model.ConvertDemo(demo))
	return &resp, nil
}

// GetList returns approved demos only. Drafts and pending demos are visible
// through GetMyDemos and the publication queue.
func (d *demoDomain) GetList(
	ctx context.Context, req *model.GetListDemoRequest,
) (*model.GetListDemoResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	demos, err := d.demoRepo.GetList(ctx, repository.DemoFilter{
		Status:      entity.DemoApproved,
		CommunityID: req.CommunityID,
		CategoryID:  req.CategoryID,
	}, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get demo list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetListDemoResponse{Demos: []model.Demo{}}
	for i := range demos {
		resp.Demos = append(resp.Demos, model.ConvertDemo(&demos[i]))
	}

	return resp, nil
}

func (d *demoDomain) GetMyDemos(
	ctx context.Context, req *model.GetMyDemosRequest,
) (*model.GetMyDemosResponse, error) {
	offset, limit, err := checkPagination(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	demos, err := d.demoRepo.GetList(ctx, repository.DemoFilter{
		CreatedBy: xcontext.RequestUserID(ctx),
	}, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get demo list: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMyDemosResponse{Demos: []model.Demo{}}
	for i := range demos {
		resp.Demos = append(resp.Demos, model.ConvertDemo(&demos[i]))
	}

	return resp, nil
}

func (d *demoDomain) RequestPublication(
	ctx context.Context, req *model.RequestPublicationRequest,
) (*model.RequestPublicationResponse, error) {
	if req.DemoID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty demo id")
	}

	demo, err := d.demoRepo.GetByID(ctx, req.DemoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found demo")
		}

		xcontext.Logger(ctx).Errorf("Cannot get demo: %v", err)
		return nil, errorx.Unknown
	}

	if demo.CreatedBy != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.DemoNotOwned, "Only the demo owner can publish it")
	}

	if !slices.Contains([]entity.DemoStatus{entity.DemoDraft, entity.DemoRejected}, demo.Status) {
		return nil, errorx.New(errorx.Unavailable, "Demo is waiting for another publication decision")
	}

	layer := entity.LayerGeneral
	if req.PublishLayer != "" {
		layer, err = enum.ToEnum[entity.PublishLayer](req.PublishLayer)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid publish layer: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid publish layer")
		}
	}

	pub := repository.DemoPublication{Layer: layer}
	if layer == entity.LayerCommunity {
		if req.CommunityID == "" {
			return nil, errorx.New(errorx.BadRequest, "Not allow empty community id")
		}

		if _, err := d.communityRepo.GetByID(ctx, req.CommunityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found community")
			}

			xcontext.Logger(ctx).Errorf("Cannot get community: %v", err)
			return nil, errorx.Unknown
		}

		pub.CommunityID = toNullString(req.CommunityID)
		pub.CategoryID = toNullString(req.CategoryID)
	}

	if err := d.demoRepo.RequestApproval(ctx, demo.ID, demo.Status, pub); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unavailable, "Demo is waiting for another publication decision")
		}

		xcontext.Logger(ctx).Errorf("Cannot request publication approval: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RequestPublicationResponse{Status: string(entity.DemoPending)}, nil
}
