package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/demohub-lab/backend/internal/entity"
	"github.com/demohub-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DemoFilter struct {
	CreatedBy   string
	Status      entity.DemoStatus
	CommunityID string
	CategoryID  string
}

// DemoPublication is the destination of a publication request.
type DemoPublication struct {
	Layer       entity.PublishLayer
	CommunityID sql.NullString
	CategoryID  sql.NullString
	BountyID    sql.NullString
}

type DemoRepository interface {
	Create(ctx context.Context, data *entity.Demo) error
	GetByID(ctx context.Context, id string) (*entity.Demo, error)
	GetList(ctx context.Context, filter DemoFilter, offset, limit int) ([]entity.Demo, error)
	GetPendingList(ctx context.Context, layer entity.PublishLayer, communityID string, offset, limit int) ([]entity.Demo, error)

	// RequestApproval moves a demo into the publication queue. The status
	// compare-and-swap guarantees a demo cannot enter the queue twice.
	RequestApproval(ctx context.Context, id string, from entity.DemoStatus, pub DemoPublication) error

	// UpdateStatusByID transitions the status only if the current status
	// matches from. Fails with gorm.ErrRecordNotFound otherwise.
	UpdateStatusByID(ctx context.Context, id string, from, to entity.DemoStatus, reason string) error

	// ReleaseByBountyID returns every demo held by a bounty back to draft and
	// clears the provenance. Used when a bounty is deleted or its publication
	// is rejected.
	ReleaseByBountyID(ctx context.Context, bountyID string, reason string) error
}

type demoRepository struct{}

func NewDemoRepository() *demoRepository {
	return &demoRepository{}
}

func (r *demoRepository) Create(ctx context.Context, data *entity.Demo) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *demoRepository) GetByID(ctx context.Context, id string) (*entity.Demo, error) {
	var record entity.Demo
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *demoRepository) GetList(
	ctx context.Context, filter DemoFilter, offset, limit int,
) ([]entity.Demo, error) {
	tx := xcontext.DB(ctx).Model(&entity.Demo{}).
		Offset(offset).Limit(limit).
		Order("demos.created_at DESC")

	if filter.CreatedBy != "" {
		tx.Where("created_by=?", filter.CreatedBy)
	}

	if filter.Status != "" {
		tx.Where("status=?", filter.Status)
	}

	if filter.CommunityID != "" {
		tx.Where("community_id=?", filter.CommunityID)
	}

	if filter.CategoryID != "" {
		tx.Where("category_id=?", filter.CategoryID)
	}

	var records []entity.Demo
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *demoRepository) GetPendingList(
	ctx context.Context, layer entity.PublishLayer, communityID string, offset, limit int,
) ([]entity.Demo, error) {
	tx := xcontext.DB(ctx).Model(&entity.Demo{}).
		Where("status=? AND publish_layer=?", entity.DemoPending, layer).
		Offset(offset).Limit(limit).
		Order("demos.created_at ASC")

	if communityID != "" {
		tx.Where("community_id=?", communityID)
	}

	var records []entity.Demo
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (r *demoRepository) RequestApproval(
	ctx context.Context, id string, from entity.DemoStatus, pub DemoPublication,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Demo{}).
		Where("id=? AND status=?", id, from).
		Updates(map[string]any{
			"status":        entity.DemoPending,
			"publish_layer": pub.Layer,
			"community_id":  pub.CommunityID,
			"category_id":   pub.CategoryID,
			"bounty_id":     pub.BountyID,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *demoRepository) UpdateStatusByID(
	ctx context.Context, id string, from, to entity.DemoStatus, reason string,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Demo{}).
		Where("id=? AND status=?", id, from).
		Updates(map[string]any{
			"status":          to,
			"rejected_reason": reason,
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

func (r *demoRepository) ReleaseByBountyID(ctx context.Context, bountyID string, reason string) error {
	return xcontext.DB(ctx).Model(&entity.Demo{}).
		Where("bounty_id=?", bountyID).
		Updates(map[string]any{
			"status":          entity.DemoDraft,
			"bounty_id":       sql.NullString{},
			"rejected_reason": reason,
		}).Error
}
