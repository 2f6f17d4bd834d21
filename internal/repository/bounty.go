package repository

import (
	"context"
	"errors"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BountyFilter struct {
	CreatedBy string
	Status    entity.BountyStatus
}

type BountyRepository interface {
	Create(ctx context.Context, data *entity.Bounty) error
	GetByID(ctx context.Context, id string) (*entity.Bounty, error)
	GetList(ctx context.Context, filter BountyFilter, offset, limit int) ([]entity.Bounty, error)

	// UpdateStatusByID transitions the bounty status only if the current
	// status matches from, as a single compare-and-swap statement. Two
	// concurrent transitions of the same bounty cannot both succeed.
	UpdateStatusByID(ctx context.Context, id string, from, to entity.BountyStatus) error

	// DeleteByID removes the bounty row permanently. Fails with
	// gorm.ErrRecordNotFound if the row is already gone, so two racing
	// deletes cannot both release the escrow.
	DeleteByID(ctx context.Context, id string) error
}

type bountyRepository struct{}

func NewBountyRepository() *bountyRepository {
	return &bountyRepository{}
}

func (r *bountyRepository) Create(ctx context.Context, data *entity.Bounty) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *bountyRepository) GetByID(ctx context.Context, id string) (*entity.Bounty, error) {
	var record entity.Bounty
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *bountyRepository) GetList(
	ctx context.Context, filter BountyFilter, offset, limit int,
) ([]entity.Bounty, error) {
	tx := xcontext.DB(ctx).Model(&entity.Bounty{}).
		Offset(offset).Limit(limit).
		Order("bounties.created_at DESC")

	if filter.CreatedBy != "" {
		tx.Where("created_by=?", filter.CreatedBy)
	}

	if filter.Status != "" {
		tx.Where("status=?", filter.Status)
	}

	var records []entity.Bounty
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *bountyRepository) UpdateStatusByID(
	ctx context.Context, id string, from, to entity.BountyStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Bounty{}).
		Where("id=? AND status=?", id, from).
		Update("status", to)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of rows effected is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *bountyRepository) DeleteByID(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).Unscoped().Delete(&entity.Bounty{}, "id=?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
