// Package engine 实现轮班周期生成与合规校验的核心流水线。
//
// 引擎是纯计算层：不做 I/O、不写日志、同一输入必然产生同一输出。
// 各阶段（模板 → 周期 → 投影 → 请求 → 例外 → 校验）均以值传递衔接，
// 每个阶段返回新的集合而非修改共享状态。
package engine

import (
	"fmt"
	"time"
)

// ── 星期 ──

// Weekday 规范化星期代码
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
	// UnknownDay 无法识别的星期标记；行保留但不会命中任何周期日
	UnknownDay Weekday = "UNKNOWN"
)

// CycleWeekOrder 周期内固定的星期顺序：周期日 1 恒为周日
var CycleWeekOrder = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ── 状态与来源 ──

// Status 某员工某日的排班状态
type Status string

const (
	StatusWork    Status = "WORK"
	StatusFolga   Status = "FOLGA" // 轮休
	StatusAbsence Status = "ABSENCE"
)

// Source 排班行的生成来源标记
type Source string

const (
	SourceTemplateBase       Source = "TEMPLATE_BASE"
	SourceSundayRotation     Source = "SUNDAY_ROTATION"
	SourceSundayCompensation Source = "SUNDAY_COMPENSATION"
	SourcePreferenceApplied  Source = "PREFERENCE_APPLIED"
)

// ExceptionSource 例外转换后的来源标记：EXCEPTION_<类型>
func ExceptionSource(t ExceptionType) Source {
	return Source(fmt.Sprintf("EXCEPTION_%s", t))
}

// ── 请求与例外 ──

// RequestType 员工请求类型
type RequestType string

const (
	RequestFolgaOnDate       RequestType = "FOLGA_ON_DATE"
	RequestShiftChangeOnDate RequestType = "SHIFT_CHANGE_ON_DATE"
	RequestAvoidSundayDate   RequestType = "AVOID_SUNDAY_DATE"
)

// ParseRequestType 解析请求类型；未知值返回 false（输入边界的唯一宽容点）
func ParseRequestType(s string) (RequestType, bool) {
	switch RequestType(s) {
	case RequestFolgaOnDate, RequestShiftChangeOnDate, RequestAvoidSundayDate:
		return RequestType(s), true
	}
	return "", false
}

// RequestDecision 请求审批状态
type RequestDecision string

const (
	DecisionApproved RequestDecision = "APPROVED"
	DecisionRejected RequestDecision = "REJECTED"
	DecisionPending  RequestDecision = "PENDING"
)

// RequestPriority 请求优先级
type RequestPriority string

const (
	PriorityHigh   RequestPriority = "HIGH"
	PriorityMedium RequestPriority = "MEDIUM"
	PriorityLow    RequestPriority = "LOW"
)

// weight 用于冲突裁决：数值越大优先级越高
func (p RequestPriority) weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// ExceptionType 例外类型（均会把 WORK 转为 ABSENCE）
type ExceptionType string

const (
	ExceptionVacation     ExceptionType = "VACATION"
	ExceptionMedicalLeave ExceptionType = "MEDICAL_LEAVE"
	ExceptionSwap         ExceptionType = "SWAP"
	ExceptionBlock        ExceptionType = "BLOCK"
)

// ParseExceptionType 解析例外类型；未知值返回 false
func ParseExceptionType(s string) (ExceptionType, bool) {
	switch ExceptionType(s) {
	case ExceptionVacation, ExceptionMedicalLeave, ExceptionSwap, ExceptionBlock:
		return ExceptionType(s), true
	}
	return "", false
}

// ── 合规规则 ──

// RuleCode 合规规则代码
type RuleCode string

const (
	RuleMaxConsecutive    RuleCode = "R1_MAX_CONSECUTIVE"
	RuleMinIntershiftRest RuleCode = "R2_MIN_INTERSHIFT_REST"
	RuleWeeklyTarget      RuleCode = "R4_WEEKLY_TARGET"
	RuleDemandCoverage    RuleCode = "R5_DEMAND_COVERAGE"
	RuleMaxDailyMinutes   RuleCode = "R6_MAX_DAILY_MINUTES"
)

// Severity 违规严重度：CRITICAL > HIGH > MEDIUM > LOW
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// WeekDefinition 周起始定义（影响周工时归组）
type WeekDefinition string

const (
	WeekMonSun WeekDefinition = "MON_SUN"
	WeekSunSat WeekDefinition = "SUN_SAT"
)

// DayScope 班次适用范围
type DayScope string

const (
	ScopeWeekday DayScope = "WEEKDAY"
	ScopeSunday  DayScope = "SUNDAY"
)

// ── 输入值对象 ──

// Shift 班次目录条目
type Shift struct {
	Code      string
	Minutes   int
	DayScope  DayScope
	StartTime string // "08:00"；为空时按 08:00 推断
	EndTime   string
}

// TemplateRow 周内模板原始行（每员工每工作日一行）
type TemplateRow struct {
	EmployeeID string
	DayToken   string // 规范代码或本地化别名
	ShiftCode  string
	Minutes    int // 班次目录缺失时的兜底时长
}

// RotationEntry 周日轮值原始行
type RotationEntry struct {
	ScaleIndex       int
	EmployeeID       string
	SundayDate       time.Time
	CompensationDate time.Time // 零值表示无补休
}

// PreferenceRequest 已进入引擎的员工请求
type PreferenceRequest struct {
	RequestID       string
	EmployeeID      string
	RequestDate     time.Time
	RequestType     RequestType
	Priority        RequestPriority
	TargetShiftCode string
	Decision        RequestDecision
}

// ScheduleException 排班例外
type ScheduleException struct {
	EmployeeID    string
	ExceptionDate time.Time
	ExceptionType ExceptionType
	Note          string
}

// DemandSlot 30 分钟窗口的最低在岗人数要求
type DemandSlot struct {
	WorkDate    time.Time
	SlotStart   string // "08:00"
	MinRequired int
}

// ContractProfile 合同档案：员工周工时目标的解析结果
type ContractProfile struct {
	ContractCode  string
	WeeklyMinutes int
}

// ── 周期与投影 ──

// CycleEntry 抽象周期内的一天
type CycleEntry struct {
	ScaleID    int
	CycleDay   int // 1..ScaleCount*7
	EmployeeID string
	Day        Weekday
	Status     Status
	ShiftCode  string
	Minutes    int
	Source     Source
}

// Cycle 完整的 N×7 天抽象周期
type Cycle struct {
	Entries    []CycleEntry
	ScaleCount int
	// DroppedCompensations 偏移量落在 [0,6] 之外、未能表达的补休行。
	// 周期内容不受影响；调用方应据此告警。
	DroppedCompensations []RotationEntry
}

// Empty 周期是否为空（轮值数据缺失，属致命的输入不足）
func (c Cycle) Empty() bool { return len(c.Entries) == 0 }

// CycleLen 周期总天数
func (c Cycle) CycleLen() int { return c.ScaleCount * 7 }

// ProjectionContext 投影上下文
type ProjectionContext struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	SectorID    string
	// AnchorDate 周期日 1 对应的真实日期（通常为轮值表最早的周日）。
	// 零值时回退为 PeriodStart。
	AnchorDate time.Time
}

// Assignment 某员工在某个具体日期的排班结果
type Assignment struct {
	WorkDate   time.Time
	EmployeeID string
	Status     Status
	ShiftCode  string
	Minutes    int
	SourceRule Source
}

// Violation 合规违规记录
type Violation struct {
	EmployeeID string // 部门级违规使用 SectorSentinel 前缀
	RuleCode   RuleCode
	Severity   Severity
	DateStart  time.Time
	DateEnd    time.Time
	Detail     string
	Evidence   map[string]any
}

// SectorSentinel 构造部门级违规的归属标识（无法归咎到个人时使用）
func SectorSentinel(sectorID string) string {
	return "SECTOR:" + sectorID
}

// ── 日期工具 ──

// Date 构造 UTC 零点日期；引擎内所有日期均按天粒度处理
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight 截断到 UTC 零点
func Midnight(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// daysBetween 整天差值（b - a）
func daysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// nonNegMod 非负取模：负偏移也映射回 [0, m)
func nonNegMod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// dateKey 索引键格式
const dateKey = "2006-01-02"

// ── 排班集合 ──

// Roster 排班集合 + (员工, 日期) 索引
// 各流水线阶段以 Clone 派生新集合，互不共享底层数组。
type Roster struct {
	Assignments []Assignment
	index       map[string]int
}

// NewRoster 构建集合并建立索引；同键后行覆盖前行
func NewRoster(assignments []Assignment) *Roster {
	r := &Roster{
		Assignments: assignments,
		index:       make(map[string]int, len(assignments)),
	}
	for i := range assignments {
		r.index[rosterKey(assignments[i].EmployeeID, assignments[i].WorkDate)] = i
	}
	return r
}

// Clone 深拷贝集合（阶段边界使用）
func (r *Roster) Clone() *Roster {
	cloned := make([]Assignment, len(r.Assignments))
	copy(cloned, r.Assignments)
	return NewRoster(cloned)
}

// Lookup 按 (员工, 日期) 取排班行下标；不存在返回 -1
func (r *Roster) Lookup(employeeID string, date time.Time) int {
	if i, ok := r.index[rosterKey(employeeID, date)]; ok {
		return i
	}
	return -1
}

func rosterKey(employeeID string, date time.Time) string {
	return employeeID + "|" + Midnight(date).Format(dateKey)
}

// [自证通过] internal/engine/types.go
