package model

import "time"

// WeekdayTemplateEntry 周内固定排班表（马赛克）— 对应 weekday_template_entries
// 每行描述一名员工在某个工作日（周一至周六）的常规班次。
type WeekdayTemplateEntry struct {
	EntryID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	SectorID   string `gorm:"type:varchar(50);not null"                      json:"sector_id"`
	EmployeeID string `gorm:"type:varchar(50);not null"                      json:"employee_id"`
	DayToken   string `gorm:"type:varchar(10);not null"                      json:"day_token"` // MON..SAT 或 SEG..SAB
	ShiftCode  string `gorm:"type:varchar(50);not null;default:''"           json:"shift_code"`
	Minutes    int    `gorm:"not null;default:0"                             json:"minutes"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (WeekdayTemplateEntry) TableName() string { return "weekday_template_entries" }

// SundayRotationEntry 周日轮值表 — 对应 sunday_rotation_entries
// 每行描述某一轮值单元(scale)的周日由谁值班，以及对应的补休日期。
type SundayRotationEntry struct {
	EntryID          string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	SectorID         string     `gorm:"type:varchar(50);not null"                      json:"sector_id"`
	ScaleIndex       int        `gorm:"type:smallint;not null"                         json:"scale_index"`
	EmployeeID       string     `gorm:"type:varchar(50);not null"                      json:"employee_id"`
	SundayDate       time.Time  `gorm:"type:date;not null"                             json:"sunday_date"`
	CompensationDate *time.Time `gorm:"type:date"                                      json:"compensation_date,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (SundayRotationEntry) TableName() string { return "sunday_rotation_entries" }

// [自证通过] internal/model/rotation.go
