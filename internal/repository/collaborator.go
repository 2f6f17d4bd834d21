package repository

import (
	"context"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/xcontext"
)

type CollaboratorRepository interface {
	Upsert(ctx context.Context, data *entity.Collaborator) error
	Get(ctx context.Context, userID, communityID string) (*entity.Collaborator, error)
	GetListByCommunityID(ctx context.Context, communityID string, offset, limit int) ([]entity.Collaborator, error)
	Delete(ctx context.Context, userID, communityID string) error
}

type collaboratorRepository struct{}

func NewCollaboratorRepository() *collaboratorRepository {
	return &collaboratorRepository{}
}

func (r *collaboratorRepository) Upsert(ctx context.Context, data *entity.Collaborator) error {
	return xcontext.DB(ctx).Save(data).Error
}

func (r *collaboratorRepository) Get(ctx context.Context, userID, communityID string) (*entity.Collaborator, error) {
	var record entity.Collaborator
	err := xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", userID, communityID).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *collaboratorRepository) GetListByCommunityID(
	ctx context.Context, communityID string, offset, limit int,
) ([]entity.Collaborator, error) {
	var records []entity.Collaborator
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *collaboratorRepository) Delete(ctx context.Context, userID, communityID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND community_id=?", userID, communityID).
		Delete(&entity.Collaborator{}).Error
}
