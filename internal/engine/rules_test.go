package engine

import (
	"strings"
	"testing"
	"time"
)

// ── 测试辅助 ──

func runOfWork(employeeID string, start time.Time, days, minutes int) []Assignment {
	out := make([]Assignment, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, Assignment{
			WorkDate:   start.AddDate(0, 0, i),
			EmployeeID: employeeID,
			Status:     StatusWork,
			ShiftCode:  "M1",
			Minutes:    minutes,
		})
	}
	return out
}

func defaultValidator() *Validator {
	return NewValidator(DefaultRuleConfig(), nil, nil)
}

func countByRule(violations []Violation, code RuleCode) int {
	n := 0
	for _, v := range violations {
		if v.RuleCode == code {
			n++
		}
	}
	return n
}

// ════════════════════════════════════════════════════════════
// R1 — 连续工作天数
// ════════════════════════════════════════════════════════════

func TestR1_SixDaysIsClean(t *testing.T) {
	v := defaultValidator()
	rows := runOfWork("emp-001", Date(2025, time.June, 2), 6, 480)

	if got := v.ValidateConsecutiveDays(rows); len(got) != 0 {
		t.Errorf("连班 6 天不应违规，实际 %d 条", len(got))
	}
}

func TestR1_SevenDaysOneViolation(t *testing.T) {
	v := defaultValidator()
	rows := runOfWork("emp-001", Date(2025, time.June, 2), 7, 480)

	got := v.ValidateConsecutiveDays(rows)
	if len(got) != 1 {
		t.Fatalf("连班 7 天应恰好 1 条违规，实际 %d", len(got))
	}
	viol := got[0]
	if viol.Severity != SeverityCritical {
		t.Errorf("期望 CRITICAL，实际 %s", viol.Severity)
	}
	if viol.Detail != "Trabalhou 7 dias seguidos (Max: 6)" {
		t.Errorf("违规描述不符: %s", viol.Detail)
	}
	if viol.Evidence["streak"] != 7 {
		t.Errorf("期望证据 streak=7，实际 %v", viol.Evidence["streak"])
	}
	if !viol.DateStart.Equal(Date(2025, time.June, 2)) || !viol.DateEnd.Equal(Date(2025, time.June, 8)) {
		t.Errorf("违规区间不符: %s ~ %s", viol.DateStart, viol.DateEnd)
	}
}

func TestR1_EachExtraDayEmits(t *testing.T) {
	v := defaultValidator()
	rows := runOfWork("emp-001", Date(2025, time.June, 2), 9, 480)

	if got := v.ValidateConsecutiveDays(rows); len(got) != 3 {
		t.Errorf("连班 9 天应产出 3 条违规（第7/8/9天），实际 %d", len(got))
	}
}

func TestR1_FolgaResetsStreak(t *testing.T) {
	v := defaultValidator()
	rows := runOfWork("emp-001", Date(2025, time.June, 2), 5, 480)
	rows = append(rows, Assignment{
		WorkDate: Date(2025, time.June, 7), EmployeeID: "emp-001", Status: StatusFolga,
	})
	rows = append(rows, runOfWork("emp-001", Date(2025, time.June, 8), 5, 480)...)

	if got := v.ValidateConsecutiveDays(rows); len(got) != 0 {
		t.Errorf("FOLGA 应重置连班计数，实际 %d 条违规", len(got))
	}
}

func TestR1_StreakPerEmployee(t *testing.T) {
	v := defaultValidator()
	rows := runOfWork("emp-001", Date(2025, time.June, 2), 4, 480)
	rows = append(rows, runOfWork("emp-002", Date(2025, time.June, 6), 4, 480)...)

	if got := v.ValidateConsecutiveDays(rows); len(got) != 0 {
		t.Errorf("连班计数不应跨员工累计，实际 %d 条违规", len(got))
	}
}

// ════════════════════════════════════════════════════════════
// R4 — 周工时目标
// ════════════════════════════════════════════════════════════

// monday 2025-06-02 为 MON_SUN 周起点
var weekMonday = Date(2025, time.June, 2)

func TestR4_WithinToleranceIsClean(t *testing.T) {
	v := defaultValidator()
	// 5 × 504 = 2520，目标 2640，偏差 120 = 容差边界
	rows := runOfWork("emp-001", weekMonday, 5, 504)

	if got := v.ValidateWeeklyHours(rows); len(got) != 0 {
		t.Errorf("偏差恰为容差时不应违规，实际 %d 条", len(got))
	}
}

func TestR4_BeyondToleranceMedium(t *testing.T) {
	v := defaultValidator()
	// 5 × 480 = 2400，偏差 -240 > 容差 120
	rows := runOfWork("emp-001", weekMonday, 5, 480)

	got := v.ValidateWeeklyHours(rows)
	if len(got) != 1 {
		t.Fatalf("期望 1 条违规，实际 %d", len(got))
	}
	viol := got[0]
	if viol.Severity != SeverityMedium {
		t.Errorf("偏差 240 期望 MEDIUM，实际 %s", viol.Severity)
	}
	if viol.Evidence["delta"] != -240 || viol.Evidence["target"] != DefaultWeeklyMinutes {
		t.Errorf("证据不符: %v", viol.Evidence)
	}
}

func TestR4_LargeDeviationHigh(t *testing.T) {
	v := defaultValidator()
	// 4 × 510 = 2040，偏差 -600 → HIGH
	rows := runOfWork("emp-001", weekMonday, 4, 510)

	got := v.ValidateWeeklyHours(rows)
	if len(got) != 1 {
		t.Fatalf("期望 1 条违规，实际 %d", len(got))
	}
	if got[0].Severity != SeverityHigh {
		t.Errorf("偏差 600 期望 HIGH，实际 %s", got[0].Severity)
	}
}

func TestR4_ContractProfileTarget(t *testing.T) {
	contracts := map[string]ContractProfile{
		"emp-001": {ContractCode: "H30_CAIXA", WeeklyMinutes: 1800},
	}
	v := NewValidator(DefaultRuleConfig(), nil, contracts)
	// 5 × 360 = 1800：恰中目标，无违规
	rows := runOfWork("emp-001", weekMonday, 5, 360)
	if got := v.ValidateWeeklyHours(rows); len(got) != 0 {
		t.Fatalf("命中合同目标不应违规，实际 %d 条", len(got))
	}

	// 6 × 360 = 2160：超出 360
	rows = runOfWork("emp-001", weekMonday, 6, 360)
	got := v.ValidateWeeklyHours(rows)
	if len(got) != 1 {
		t.Fatalf("期望 1 条违规，实际 %d", len(got))
	}
	viol := got[0]
	if !strings.Contains(viol.Detail, "[H30_CAIXA]") {
		t.Errorf("违规描述应包含合同代码，实际: %s", viol.Detail)
	}
	if viol.Evidence["contract_code"] != "H30_CAIXA" {
		t.Errorf("证据应包含合同代码，实际 %v", viol.Evidence["contract_code"])
	}
}

func TestR4_WeekDefinitionSunSat(t *testing.T) {
	cfg := DefaultRuleConfig()
	cfg.WeekDefinition = WeekSunSat
	v := NewValidator(cfg, nil, nil)

	// 周日 2025-06-01 到周六 2025-06-07：SUN_SAT 归入同一周
	rows := runOfWork("emp-001", Date(2025, time.June, 1), 7, 300) // 2100 < 2640-120

	got := v.ValidateWeeklyHours(rows)
	if len(got) != 1 {
		t.Fatalf("SUN_SAT 定义下应归为一周并违规，实际 %d 条", len(got))
	}
	if !got[0].DateStart.Equal(Date(2025, time.June, 1)) {
		t.Errorf("周起点应为周日，实际 %s", got[0].DateStart)
	}
}

// ════════════════════════════════════════════════════════════
// R2 — 跨班休息
// ════════════════════════════════════════════════════════════

func TestR2_InferredStartClean(t *testing.T) {
	v := defaultValidator()
	// 推断窗口 08:00-16:00：休息 = (1440-960)+480 = 960 ≥ 660
	rows := runOfWork("emp-001", Date(2025, time.June, 2), 2, 480)

	if got := v.ValidateIntershiftRest(rows); len(got) != 0 {
		t.Errorf("休息充足不应违规，实际 %d 条", len(got))
	}
}

func TestR2_CatalogTimesViolation(t *testing.T) {
	shifts := map[string]Shift{
		"N1": {Code: "N1", Minutes: 480, StartTime: "14:00", EndTime: "22:00"},
		"M1": {Code: "M1", Minutes: 480, StartTime: "06:00", EndTime: "14:00"},
	}
	v := NewValidator(DefaultRuleConfig(), shifts, nil)

	rows := []Assignment{
		{WorkDate: Date(2025, time.June, 2), EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "N1", Minutes: 480},
		{WorkDate: Date(2025, time.June, 3), EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: 480},
	}

	got := v.ValidateIntershiftRest(rows)
	if len(got) != 1 {
		t.Fatalf("22:00 下班次日 06:00 上班应违规，实际 %d 条", len(got))
	}
	viol := got[0]
	if viol.Severity != SeverityCritical {
		t.Errorf("期望 CRITICAL，实际 %s", viol.Severity)
	}
	// 休息 = (1440-1320)+360 = 480
	if viol.Evidence["rest_minutes"] != 480 {
		t.Errorf("期望休息 480 分钟，实际 %v", viol.Evidence["rest_minutes"])
	}
	if viol.Detail != "Descanso de 480 min entre jornadas (Mínimo: 660)" {
		t.Errorf("违规描述不符: %s", viol.Detail)
	}
}

func TestR2_NonAdjacentDaysSkipped(t *testing.T) {
	shifts := map[string]Shift{
		"N1": {Code: "N1", Minutes: 480, StartTime: "14:00", EndTime: "22:00"},
		"M1": {Code: "M1", Minutes: 480, StartTime: "06:00", EndTime: "14:00"},
	}
	v := NewValidator(DefaultRuleConfig(), shifts, nil)

	// 中间隔一天：规则只看严格相邻的日历日
	rows := []Assignment{
		{WorkDate: Date(2025, time.June, 2), EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "N1", Minutes: 480},
		{WorkDate: Date(2025, time.June, 4), EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: 480},
	}

	if got := v.ValidateIntershiftRest(rows); len(got) != 0 {
		t.Errorf("非相邻日不应检查，实际 %d 条", len(got))
	}
}

func TestR2_FolgaBreaksPair(t *testing.T) {
	v := defaultValidator()
	rows := []Assignment{
		{WorkDate: Date(2025, time.June, 2), EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: 720},
		{WorkDate: Date(2025, time.June, 3), EmployeeID: "emp-001", Status: StatusFolga},
	}

	if got := v.ValidateIntershiftRest(rows); len(got) != 0 {
		t.Errorf("FOLGA 日不构成跨班对，实际 %d 条", len(got))
	}
}

// ════════════════════════════════════════════════════════════
// R6 — 单日工时上限
// ════════════════════════════════════════════════════════════

func TestR6_Boundaries(t *testing.T) {
	v := defaultValidator()
	cases := []struct {
		minutes  int
		count    int
		severity Severity
	}{
		{600, 0, ""},
		{601, 1, SeverityHigh},
		{720, 1, SeverityHigh},
		{721, 1, SeverityCritical},
	}

	for _, c := range cases {
		rows := []Assignment{
			{WorkDate: Date(2025, time.June, 2), EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: c.minutes},
		}
		got := v.ValidateDailyMinutes(rows)
		if len(got) != c.count {
			t.Errorf("minutes=%d 期望 %d 条违规，实际 %d", c.minutes, c.count, len(got))
			continue
		}
		if c.count == 1 && got[0].Severity != c.severity {
			t.Errorf("minutes=%d 期望 %s，实际 %s", c.minutes, c.severity, got[0].Severity)
		}
	}
}

func TestR6_NonWorkIgnored(t *testing.T) {
	v := defaultValidator()
	rows := []Assignment{
		{WorkDate: Date(2025, time.June, 2), EmployeeID: "emp-001", Status: StatusAbsence, Minutes: 999},
	}
	if got := v.ValidateDailyMinutes(rows); len(got) != 0 {
		t.Errorf("非 WORK 行不应检查，实际 %d 条", len(got))
	}
}

// ════════════════════════════════════════════════════════════
// R5 — 时段覆盖率
// ════════════════════════════════════════════════════════════

func TestR5_CoverageMet(t *testing.T) {
	shifts := map[string]Shift{
		"M1": {Code: "M1", Minutes: 480, StartTime: "08:00", EndTime: "16:00"},
	}
	v := NewValidator(DefaultRuleConfig(), shifts, nil)

	d := Date(2025, time.June, 2)
	rows := []Assignment{
		{WorkDate: d, EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: 480},
		{WorkDate: d, EmployeeID: "emp-002", Status: StatusWork, ShiftCode: "M1", Minutes: 480},
	}
	slots := []DemandSlot{{WorkDate: d, SlotStart: "10:00", MinRequired: 2}}

	if got := v.ValidateDemandCoverage(rows, slots, "caixa"); len(got) != 0 {
		t.Errorf("覆盖达标不应违规，实际 %d 条", len(got))
	}
}

func TestR5_UnderCoverageSectorViolation(t *testing.T) {
	shifts := map[string]Shift{
		"M1": {Code: "M1", Minutes: 480, StartTime: "08:00", EndTime: "16:00"},
	}
	v := NewValidator(DefaultRuleConfig(), shifts, nil)

	d := Date(2025, time.June, 2)
	rows := []Assignment{
		{WorkDate: d, EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: 480},
		// 16:00 下班，不覆盖 18:00 槽位
	}
	slots := []DemandSlot{{WorkDate: d, SlotStart: "18:00", MinRequired: 2}}

	got := v.ValidateDemandCoverage(rows, slots, "caixa")
	if len(got) != 1 {
		t.Fatalf("期望 1 条违规，实际 %d", len(got))
	}
	viol := got[0]
	if viol.EmployeeID != "SECTOR:caixa" {
		t.Errorf("覆盖违规应归属部门哨兵，实际 %s", viol.EmployeeID)
	}
	if viol.Severity != SeverityMedium {
		t.Errorf("期望 MEDIUM，实际 %s", viol.Severity)
	}
	if viol.Evidence["actual"] != 0 || viol.Evidence["min_required"] != 2 {
		t.Errorf("证据不符: %v", viol.Evidence)
	}
}

func TestR5_OverlapBoundary(t *testing.T) {
	shifts := map[string]Shift{
		"M1": {Code: "M1", Minutes: 480, StartTime: "08:00", EndTime: "16:00"},
	}
	v := NewValidator(DefaultRuleConfig(), shifts, nil)

	d := Date(2025, time.June, 2)
	rows := []Assignment{
		{WorkDate: d, EmployeeID: "emp-001", Status: StatusWork, ShiftCode: "M1", Minutes: 480},
	}

	// 16:00 槽位与 16:00 下班为半开区间：不重叠
	slots := []DemandSlot{{WorkDate: d, SlotStart: "16:00", MinRequired: 1}}
	if got := v.ValidateDemandCoverage(rows, slots, "caixa"); len(got) != 1 {
		t.Errorf("下班时刻的槽位不应计入覆盖，期望违规，实际 %d 条", len(got))
	}

	// 15:30 槽位仍在班内
	slots = []DemandSlot{{WorkDate: d, SlotStart: "15:30", MinRequired: 1}}
	if got := v.ValidateDemandCoverage(rows, slots, "caixa"); len(got) != 0 {
		t.Errorf("班内槽位应计入覆盖，实际违规 %d 条", len(got))
	}
}

func TestR5_AbsenceNotCounted(t *testing.T) {
	shifts := map[string]Shift{
		"M1": {Code: "M1", Minutes: 480, StartTime: "08:00", EndTime: "16:00"},
	}
	v := NewValidator(DefaultRuleConfig(), shifts, nil)

	d := Date(2025, time.June, 2)
	rows := []Assignment{
		{WorkDate: d, EmployeeID: "emp-001", Status: StatusAbsence, ShiftCode: "", Minutes: 0},
	}
	slots := []DemandSlot{{WorkDate: d, SlotStart: "10:00", MinRequired: 1}}

	if got := v.ValidateDemandCoverage(rows, slots, "caixa"); len(got) != 1 {
		t.Errorf("缺勤不应计入覆盖，期望违规，实际 %d 条", len(got))
	}
}

// ════════════════════════════════════════════════════════════
// 组合
// ════════════════════════════════════════════════════════════

func TestValidateAll_RulesIndependent(t *testing.T) {
	v := defaultValidator()
	// 8 天连班 × 超长工时：R1 与 R6 同时命中，互不抑制
	rows := runOfWork("emp-001", weekMonday, 8, 650)

	got := v.ValidateAll(rows, nil, "caixa")
	if n := countByRule(got, RuleMaxConsecutive); n != 2 {
		t.Errorf("期望 R1 违规 2 条，实际 %d", n)
	}
	if n := countByRule(got, RuleMaxDailyMinutes); n != 8 {
		t.Errorf("期望 R6 违规 8 条，实际 %d", n)
	}
	if n := countByRule(got, RuleWeeklyTarget); n == 0 {
		t.Error("期望 R4 同时命中（周工时超标）")
	}
}

// [自证通过] internal/engine/rules_test.go
