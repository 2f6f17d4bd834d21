package repository

import (
	"context"
	"errors"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SolutionFilter struct {
	BountyID string
	UserID   string
	Status   entity.SolutionStatus
}

type SolutionRepository interface {
	Create(ctx context.Context, data *entity.Solution) error
	GetByID(ctx context.Context, id string) (*entity.Solution, error)
	GetList(ctx context.Context, filter SolutionFilter, offset, limit int) ([]entity.Solution, error)
	GetAcceptedByBountyID(ctx context.Context, bountyID string) (*entity.Solution, error)
	GetAcceptedByDemoID(ctx context.Context, demoID string) (*entity.Solution, error)

	// UpdateReviewByID records a review decision. The status
	// compare-and-swap from pending makes a repeated review fail.
	UpdateReviewByID(ctx context.Context, id string, from entity.SolutionStatus, data *entity.Solution) error

	// DeleteByBountyID removes every solution of the bounty permanently.
	// Used by the bounty deletion cascade: the bounty row is hard deleted,
	// so surviving solutions would violate the foreign key on bounty_id.
	DeleteByBountyID(ctx context.Context, bountyID string) error
}

type solutionRepository struct{}

func NewSolutionRepository() *solutionRepository {
	return &solutionRepository{}
}

func (r *solutionRepository) Create(ctx context.Context, data *entity.Solution) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *solutionRepository) GetByID(ctx context.Context, id string) (*entity.Solution, error) {
	var record entity.Solution
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *solutionRepository) GetList(
	ctx context.Context, filter SolutionFilter, offset, limit int,
) ([]entity.Solution, error) {
	tx := xcontext.DB(ctx).Model(&entity.Solution{}).
		Offset(offset).Limit(limit).
		Order("solutions.created_at ASC")

	if filter.BountyID != "" {
		tx.Where("bounty_id=?", filter.BountyID)
	}

	if filter.UserID != "" {
		tx.Where("user_id=?", filter.UserID)
	}

	if filter.Status != "" {
		tx.Where("status=?", filter.Status)
	}

	var records []entity.Solution
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *solutionRepository) GetAcceptedByBountyID(
	ctx context.Context, bountyID string,
) (*entity.Solution, error) {
	var record entity.Solution
	err := xcontext.DB(ctx).
		Where("bounty_id=? AND status=?", bountyID, entity.SolutionAccepted).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *solutionRepository) GetAcceptedByDemoID(
	ctx context.Context, demoID string,
) (*entity.Solution, error) {
	var record entity.Solution
	err := xcontext.DB(ctx).
		Where("demo_id=? AND status=?", demoID, entity.SolutionAccepted).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *solutionRepository) UpdateReviewByID(
	ctx context.Context, id string, from entity.SolutionStatus, data *entity.Solution,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Solution{}).
		Where("id=? AND status=?", id, from).
		Updates(map[string]any{
			"status":           data.Status,
			"rejection_reason": data.RejectionReason,
			"reviewed_at":      data.ReviewedAt,
		})

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

func (r *solutionRepository) DeleteByBountyID(ctx context.Context, bountyID string) error {
	return xcontext.DB(ctx).Unscoped().
		Where("bounty_id=?", bountyID).
		Delete(&entity.Solution{}).Error
}
