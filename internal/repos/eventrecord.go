package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/FrankSLB/eneventextract/internal/platform/logger"
	"github.com/FrankSLB/eneventextract/internal/types"
)

type EventRecordRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, records []*types.EventRecord) error
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.EventRecord, error)
	GetByStoryID(ctx context.Context, tx *gorm.DB, storyID string) ([]*types.EventRecord, error)
	CountByStoryID(ctx context.Context, tx *gorm.DB, storyID string) (int64, error)
}

type eventRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRecordRepo(db *gorm.DB, baseLog *logger.Logger) EventRecordRepo {
	repoLog := baseLog.With("repo", "EventRecordRepo")
	return &eventRecordRepo{db: db, log: repoLog}
}

func (r *eventRecordRepo) CreateBatch(ctx context.Context, tx *gorm.DB, records []*types.EventRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return err
	}
	return nil
}

func (r *eventRecordRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []string) ([]*types.EventRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EventRecord
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("globaleventid IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *eventRecordRepo) GetByStoryID(ctx context.Context, tx *gorm.DB, storyID string) ([]*types.EventRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EventRecord
	if storyID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("sourceurl = ?", storyID).
		Order("globaleventid").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *eventRecordRepo) CountByStoryID(ctx context.Context, tx *gorm.DB, storyID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if storyID == "" {
		return 0, nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.EventRecord{}).
		Where("sourceurl = ?", storyID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
