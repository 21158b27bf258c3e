package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ── 合规校验 ──
//
// 五条规则彼此独立、与执行顺序无关，各自产出零或多条违规；
// 违规是数据而不是错误：存在违规的运行仍然是成功的运行。

// RuleConfig 合规规则阈值
type RuleConfig struct {
	MaxConsecutiveWorkDays     int
	WeeklyToleranceMinutes     int
	MinIntershiftRestMinutes   int
	MaxDailyMinutesOperational int
	MaxDailyMinutesHard        int
	WeekDefinition             WeekDefinition
}

// DefaultRuleConfig 策略文档缺省时的阈值
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		MaxConsecutiveWorkDays:     6,
		WeeklyToleranceMinutes:     120,
		MinIntershiftRestMinutes:   660, // 11h
		MaxDailyMinutesOperational: 600, // 10h
		MaxDailyMinutesHard:        720, // 12h
		WeekDefinition:             WeekMonSun,
	}
}

// DefaultWeeklyMinutes 合同映射缺失时的周工时目标（44h）
const DefaultWeeklyMinutes = 2640

// weeklyHighDeviationMinutes 周工时偏差达到该值时严重度升为 HIGH
const weeklyHighDeviationMinutes = 600

// inferredStartClock 班次无起始时间时推断的上班时刻（08:00）
const inferredStartClock = 8 * 60

// Validator 合规校验器
type Validator struct {
	cfg       RuleConfig
	shifts    map[string]Shift
	contracts map[string]ContractProfile // employee_id → 合同档案
}

// NewValidator 创建校验器；contracts 以员工 ID 为键
func NewValidator(cfg RuleConfig, shifts map[string]Shift, contracts map[string]ContractProfile) *Validator {
	if cfg.MaxConsecutiveWorkDays <= 0 {
		cfg.MaxConsecutiveWorkDays = 6
	}
	if cfg.MinIntershiftRestMinutes <= 0 {
		cfg.MinIntershiftRestMinutes = 660
	}
	if cfg.MaxDailyMinutesOperational <= 0 {
		cfg.MaxDailyMinutesOperational = 600
	}
	if cfg.MaxDailyMinutesHard <= 0 {
		cfg.MaxDailyMinutesHard = 720
	}
	if cfg.WeekDefinition == "" {
		cfg.WeekDefinition = WeekMonSun
	}
	return &Validator{cfg: cfg, shifts: shifts, contracts: contracts}
}

// ValidateAll 执行全部规则并拼接结果
func (v *Validator) ValidateAll(assignments []Assignment, slots []DemandSlot, sectorID string) []Violation {
	var out []Violation
	out = append(out, v.ValidateConsecutiveDays(assignments)...)
	out = append(out, v.ValidateWeeklyHours(assignments)...)
	out = append(out, v.ValidateIntershiftRest(assignments)...)
	out = append(out, v.ValidateDailyMinutes(assignments)...)
	out = append(out, v.ValidateDemandCoverage(assignments, slots, sectorID)...)
	return out
}

// ════════════════════════════════════════════════════════════
// R1 — 最大连续工作天数
// ════════════════════════════════════════════════════════════
//
// 任何非 WORK 状态都会把连班计数归零；计数每超过上限一天就产出
// 一条 CRITICAL 违规（连班 max+1 天恰好一条）。

func (v *Validator) ValidateConsecutiveDays(assignments []Assignment) []Violation {
	maxDays := v.cfg.MaxConsecutiveWorkDays
	sorted := sortByEmployeeDate(assignments)

	var violations []Violation
	currentEmployee := ""
	streak := 0
	var streakStart time.Time

	for _, a := range sorted {
		if a.EmployeeID != currentEmployee {
			currentEmployee = a.EmployeeID
			streak = 0
		}

		if a.Status != StatusWork {
			streak = 0
			continue
		}

		streak++
		if streak == 1 {
			streakStart = a.WorkDate
		}
		if streak > maxDays {
			violations = append(violations, Violation{
				EmployeeID: a.EmployeeID,
				RuleCode:   RuleMaxConsecutive,
				Severity:   SeverityCritical,
				DateStart:  streakStart,
				DateEnd:    a.WorkDate,
				Detail:     fmt.Sprintf("Trabalhou %d dias seguidos (Max: %d)", streak, maxDays),
				Evidence:   map[string]any{"streak": streak, "max_days": maxDays},
			})
		}
	}

	return violations
}

// ════════════════════════════════════════════════════════════
// R4 — 周工时目标
// ════════════════════════════════════════════════════════════
//
// 按周定义归组求和，与合同周工时比较；|实际-目标| 严格大于容差才算
// 违规，偏差达到 600 分钟时严重度为 HIGH，否则 MEDIUM。

func (v *Validator) ValidateWeeklyHours(assignments []Assignment) []Violation {
	tolerance := v.cfg.WeeklyToleranceMinutes

	type weekKey struct {
		employeeID string
		weekStart  string
	}
	sums := make(map[weekKey]int)
	starts := make(map[weekKey]time.Time)

	for _, a := range assignments {
		ws := weekStart(a.WorkDate, v.cfg.WeekDefinition)
		k := weekKey{employeeID: a.EmployeeID, weekStart: ws.Format(dateKey)}
		sums[k] += a.Minutes
		starts[k] = ws
	}

	keys := make([]weekKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].employeeID != keys[j].employeeID {
			return keys[i].employeeID < keys[j].employeeID
		}
		return keys[i].weekStart < keys[j].weekStart
	})

	var violations []Violation
	for _, k := range keys {
		actual := sums[k]
		profile, ok := v.contracts[k.employeeID]
		if !ok {
			profile = ContractProfile{WeeklyMinutes: DefaultWeeklyMinutes}
		}
		target := profile.WeeklyMinutes
		if target <= 0 {
			target = DefaultWeeklyMinutes
		}

		delta := actual - target
		deviation := delta
		if deviation < 0 {
			deviation = -deviation
		}
		if deviation <= tolerance {
			continue
		}

		severity := SeverityMedium
		if deviation >= weeklyHighDeviationMinutes {
			severity = SeverityHigh
		}

		detail := fmt.Sprintf("Desvio de %d min (Meta: %d, Real: %d)", delta, target, actual)
		if profile.ContractCode != "" {
			detail = fmt.Sprintf("[%s] %s", profile.ContractCode, detail)
		}

		ws := starts[k]
		violations = append(violations, Violation{
			EmployeeID: k.employeeID,
			RuleCode:   RuleWeeklyTarget,
			Severity:   severity,
			DateStart:  ws,
			DateEnd:    ws.AddDate(0, 0, 6),
			Detail:     detail,
			Evidence: map[string]any{
				"delta":         delta,
				"actual":        actual,
				"target":        target,
				"contract_code": profile.ContractCode,
			},
		})
	}

	return violations
}

// ════════════════════════════════════════════════════════════
// R2 — 最小跨班休息
// ════════════════════════════════════════════════════════════
//
// 仅检查日历上严格相邻（间隔恰好一天）的两个 WORK 日：
// 休息 = 次日上班时刻 - 当日下班时刻。起止时刻优先取班次目录的
// start/end，缺失时按 08:00 上班 + 班次时长推断。

func (v *Validator) ValidateIntershiftRest(assignments []Assignment) []Violation {
	minRest := v.cfg.MinIntershiftRestMinutes
	sorted := sortByEmployeeDate(assignments)

	var violations []Violation
	for i := 0; i+1 < len(sorted); i++ {
		cur, next := sorted[i], sorted[i+1]
		if cur.EmployeeID != next.EmployeeID {
			continue
		}
		if cur.Status != StatusWork || next.Status != StatusWork {
			continue
		}
		if daysBetween(cur.WorkDate, next.WorkDate) != 1 {
			continue
		}

		_, curEnd := v.shiftWindow(cur.ShiftCode, cur.Minutes)
		nextStart, _ := v.shiftWindow(next.ShiftCode, next.Minutes)

		rest := (24*60 - curEnd) + nextStart
		if rest >= minRest {
			continue
		}

		violations = append(violations, Violation{
			EmployeeID: cur.EmployeeID,
			RuleCode:   RuleMinIntershiftRest,
			Severity:   SeverityCritical,
			DateStart:  cur.WorkDate,
			DateEnd:    next.WorkDate,
			Detail:     fmt.Sprintf("Descanso de %d min entre jornadas (Mínimo: %d)", rest, minRest),
			Evidence:   map[string]any{"rest_minutes": rest, "min_required": minRest},
		})
	}

	return violations
}

// ════════════════════════════════════════════════════════════
// R6 — 单日工时上限
// ════════════════════════════════════════════════════════════
//
// 超过运营上限 → HIGH；超过绝对上限 → CRITICAL。

func (v *Validator) ValidateDailyMinutes(assignments []Assignment) []Violation {
	operational := v.cfg.MaxDailyMinutesOperational
	hard := v.cfg.MaxDailyMinutesHard

	var violations []Violation
	for _, a := range assignments {
		if a.Status != StatusWork || a.Minutes <= operational {
			continue
		}

		severity := SeverityHigh
		limit := operational
		if a.Minutes > hard {
			severity = SeverityCritical
			limit = hard
		}

		violations = append(violations, Violation{
			EmployeeID: a.EmployeeID,
			RuleCode:   RuleMaxDailyMinutes,
			Severity:   severity,
			DateStart:  a.WorkDate,
			DateEnd:    a.WorkDate,
			Detail:     fmt.Sprintf("Jornada de %d min excede o limite de %d min", a.Minutes, limit),
			Evidence: map[string]any{
				"minutes":     a.Minutes,
				"operational": operational,
				"hard":        hard,
			},
		})
	}

	return violations
}

// ════════════════════════════════════════════════════════════
// R5 — 时段覆盖率
// ════════════════════════════════════════════════════════════
//
// 统计当日班次时间窗与 30 分钟槽位重叠的 WORK 人数；
// 低于最低要求时产出一条部门级 MEDIUM 违规（不归咎个人）。

func (v *Validator) ValidateDemandCoverage(assignments []Assignment, slots []DemandSlot, sectorID string) []Violation {
	// 日期 → 当日 WORK 行
	byDate := make(map[string][]Assignment)
	for _, a := range assignments {
		if a.Status != StatusWork {
			continue
		}
		k := Midnight(a.WorkDate).Format(dateKey)
		byDate[k] = append(byDate[k], a)
	}

	var violations []Violation
	for _, slot := range slots {
		slotStart, ok := parseClock(slot.SlotStart)
		if !ok {
			continue
		}
		slotEnd := slotStart + 30

		actual := 0
		for _, a := range byDate[Midnight(slot.WorkDate).Format(dateKey)] {
			start, end := v.shiftWindow(a.ShiftCode, a.Minutes)
			if start < slotEnd && slotStart < end {
				actual++
			}
		}

		if actual >= slot.MinRequired {
			continue
		}

		violations = append(violations, Violation{
			EmployeeID: SectorSentinel(sectorID),
			RuleCode:   RuleDemandCoverage,
			Severity:   SeverityMedium,
			DateStart:  slot.WorkDate,
			DateEnd:    slot.WorkDate,
			Detail: fmt.Sprintf("Cobertura de %d abaixo do mínimo %d na faixa %s",
				actual, slot.MinRequired, slot.SlotStart),
			Evidence: map[string]any{
				"actual":       actual,
				"min_required": slot.MinRequired,
				"slot_start":   slot.SlotStart,
			},
		})
	}

	return violations
}

// ── 内部辅助 ──

// shiftWindow 解析班次的起止时刻（自零点分钟数）
// 目录提供 start/end 时优先使用；否则按 08:00 + 时长推断。
func (v *Validator) shiftWindow(shiftCode string, minutes int) (start, end int) {
	if s, ok := v.shifts[shiftCode]; ok {
		if st, ok := parseClock(s.StartTime); ok {
			start = st
			if en, ok := parseClock(s.EndTime); ok && en > st {
				return start, en
			}
			dur := s.Minutes
			if dur <= 0 {
				dur = minutes
			}
			return start, start + dur
		}
		if s.Minutes > 0 {
			minutes = s.Minutes
		}
	}
	return inferredStartClock, inferredStartClock + minutes
}

// parseClock "HH:MM" → 自零点分钟数
func parseClock(s string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) < 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// weekStart 计算某日所在周的起始日期
func weekStart(d time.Time, def WeekDefinition) time.Time {
	d = Midnight(d)
	switch def {
	case WeekSunSat:
		return d.AddDate(0, 0, -int(d.Weekday()))
	default: // MON_SUN
		return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
	}
}

// sortByEmployeeDate 复制并按 (员工, 日期) 排序
func sortByEmployeeDate(assignments []Assignment) []Assignment {
	sorted := make([]Assignment, len(assignments))
	copy(sorted, assignments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EmployeeID != sorted[j].EmployeeID {
			return sorted[i].EmployeeID < sorted[j].EmployeeID
		}
		return sorted[i].WorkDate.Before(sorted[j].WorkDate)
	})
	return sorted
}

// [自证通过] internal/engine/rules.go
