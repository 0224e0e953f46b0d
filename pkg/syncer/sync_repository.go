package syncer

import (
	"context"

	"recipe-hub/entities"

	"gorm.io/gorm"
)

type (
	SyncRunRepository interface {
		CreateSyncRun(ctx context.Context, run *entities.SyncRun) error
		GetRecentSyncRuns(ctx context.Context, limit int) ([]*entities.SyncRun, error)
	}

	syncRunRepository struct {
		db *gorm.DB
	}
)

func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepository{db: db}
}

func (r *syncRunRepository) CreateSyncRun(ctx context.Context, run *entities.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *syncRunRepository) GetRecentSyncRuns(ctx context.Context, limit int) ([]*entities.SyncRun, error) {
	var runs []*entities.SyncRun
	if err := r.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
