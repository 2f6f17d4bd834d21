package repository

import (
	"context"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/xcontext"
)

type CommunityRepository interface {
	Create(ctx context.Context, data *entity.Community) error
	GetByID(ctx context.Context, id string) (*entity.Community, error)
	GetByHandle(ctx context.Context, handle string) (*entity.Community, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.Community, error)
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) Create(ctx context.Context, data *entity.Community) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *communityRepository) GetByID(ctx context.Context, id string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetByHandle(ctx context.Context, handle string) (*entity.Community, error) {
	var record entity.Community
	if err := xcontext.DB(ctx).Where("handle=?", handle).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *communityRepository) GetList(ctx context.Context, offset, limit int) ([]entity.Community, error) {
	var records []entity.Community
	err := xcontext.DB(ctx).
		Offset(offset).Limit(limit).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
