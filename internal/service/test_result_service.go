package service

import (
	"encoding/json"
	"errors"
	"time"

	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/repository"
	"lingo_quiz_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestResultService struct {
	Results ResultStore
	Tests   TestCatalog
}

func NewTestResultService(results ResultStore, tests TestCatalog) *TestResultService {
	return &TestResultService{Results: results, Tests: tests}
}

type TestResultCreateReq struct {
	TestID       string              `json:"testId" binding:"required"`
	UserID       uint                `json:"userId"`
	Answers      model.AnswerList    `json:"answers"`
	DurationMs   *int64              `json:"durationMs"`
	Status       model.ResultStatus  `json:"status"`
	StartTime    *time.Time          `json:"startTime"`
	EndTime      *time.Time          `json:"endTime"`
	DeviceInfo   string              `json:"deviceInfo"`
	IPAddress    string              `json:"ipAddress"`
	TestSnapshot *model.TestSnapshot `json:"testSnapshot"`
}

// CreateResult validates the submission, derives the score statistics and
// persists the result. Only an admin may create a result directly as active;
// anyone else requesting active is silently downgraded to draft.
func (s *TestResultService) CreateResult(req TestResultCreateReq, requesterID uint, requesterRole model.UserRole) (*model.TestResult, error) {
	if err := ValidateAnswers(req.Answers); err != nil {
		return nil, err
	}

	status := req.Status
	switch status {
	case "", model.StatusDraft:
		status = model.StatusDraft
	case model.StatusActive:
		if !requesterRole.IsAdmin() {
			status = model.StatusDraft
		}
	default:
		return nil, util.ValidationError("status must be draft or active at creation")
	}

	userID := req.UserID
	if userID == 0 || !requesterRole.IsAdmin() {
		userID = requesterID
	}

	var durationMs int64
	if req.DurationMs != nil && *req.DurationMs > 0 {
		durationMs = *req.DurationMs
	}

	var snapshot model.TestSnapshot
	if req.TestSnapshot != nil {
		snapshot = *req.TestSnapshot
		snapshot.TestID = req.TestID
	} else {
		test, err := s.Tests.FindByID(req.TestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("test")
			}
			return nil, util.InternalError(err)
		}
		snapshot = test.Snapshot()
	}

	stats := ComputeStats(req.Answers)

	result := &model.TestResult{
		TestID:         req.TestID,
		TestSnapshot:   snapshot,
		UserID:         userID,
		Answers:        req.Answers,
		TotalQuestions: stats.TotalQuestions,
		CorrectCount:   stats.CorrectCount,
		Percentage:     stats.Percentage,
		DurationMs:     durationMs,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		DeviceInfo:     req.DeviceInfo,
		IPAddress:      req.IPAddress,
		Status:         status,
		Behaviors:      model.BehaviorList{},
		CreatedAt:      time.Now(),
	}

	if err := s.Results.Create(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

type ResultListFilter struct {
	UserID *uint
	Status model.ResultStatus
}

// ListResults returns results matching the filter. Non-admin callers are
// always forced onto their own userId regardless of the requested filter.
func (s *TestResultService) ListResults(filter ResultListFilter, requesterID uint, requesterRole model.UserRole) ([]model.TestResult, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, util.ValidationError("status must be draft, active or deleted")
	}

	userID := filter.UserID
	if !requesterRole.IsAdmin() {
		userID = &requesterID
	}

	results, err := s.Results.List(repository.ResultFilter{
		UserID: userID,
		Status: filter.Status,
	})
	if err != nil {
		return nil, util.InternalError(err)
	}
	return results, nil
}

// GetMyResults returns the caller's active results, excluding likely
// abandoned attempts (zero score and under the duration floor).
func (s *TestResultService) GetMyResults(userID uint) ([]model.TestResult, error) {
	results, err := s.Results.List(repository.ResultFilter{
		UserID:           &userID,
		Status:           model.StatusActive,
		ExcludeAbandoned: true,
	})
	if err != nil {
		return nil, util.InternalError(err)
	}
	return results, nil
}

func (s *TestResultService) GetResultByID(id string, requesterID uint, requesterRole model.UserRole) (*model.TestResult, error) {
	result, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !canView(result, requesterID, requesterRole) {
		return nil, util.AccessDeniedError("not allowed to view this result")
	}
	return result, nil
}

// TestResultUpdateReq covers the non-critical fields. Blocked fields
// (answers, derived stats, status, userId, testSnapshot, durationMs,
// createdAt) are not representable here, so a payload carrying them is
// silently stripped by binding rather than rejected.
type TestResultUpdateReq struct {
	StartTime  *time.Time `json:"startTime"`
	EndTime    *time.Time `json:"endTime"`
	DeviceInfo *string    `json:"deviceInfo"`
	IPAddress  *string    `json:"ipAddress"`
}

func (s *TestResultService) UpdateResult(id string, req TestResultUpdateReq, requesterID uint, requesterRole model.UserRole) (*model.TestResult, error) {
	result, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !canView(result, requesterID, requesterRole) {
		return nil, util.AccessDeniedError("not allowed to update this result")
	}

	if req.StartTime != nil {
		result.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		result.EndTime = req.EndTime
	}
	if req.DeviceInfo != nil {
		result.DeviceInfo = *req.DeviceInfo
	}
	if req.IPAddress != nil {
		result.IPAddress = *req.IPAddress
	}

	if err := s.Results.Save(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

// UpdateStatus runs the status state machine:
//
//	draft -> active    owner or admin
//	any   -> deleted   owner or admin
//	deleted -> active  admin only (restore)
//
// Everything else is an invalid transition. Concurrent transitions on the
// same result are last-write-wins; there is no version check.
func (s *TestResultService) UpdateStatus(id string, newStatus model.ResultStatus, requesterID uint, requesterRole model.UserRole) (*model.TestResult, error) {
	if !newStatus.Valid() {
		return nil, util.ValidationError("status must be draft, active or deleted")
	}

	result, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !canView(result, requesterID, requesterRole) {
		return nil, util.AccessDeniedError("not allowed to modify this result")
	}

	switch {
	case result.Status == newStatus:
		return nil, util.ValidationError("result is already %s", newStatus)
	case newStatus == model.StatusDeleted:
		// soft delete, owner or admin
	case result.Status == model.StatusDraft && newStatus == model.StatusActive:
		// publish, owner or admin
	case result.Status == model.StatusDeleted && newStatus == model.StatusActive:
		if !requesterRole.IsAdmin() {
			return nil, util.AccessDeniedError("only an admin can restore a deleted result")
		}
	default:
		return nil, util.ValidationError("invalid status transition from %s to %s", result.Status, newStatus)
	}

	result.Status = newStatus
	if err := s.Results.Save(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

// SoftDelete marks the result deleted; it stays restorable by an admin.
func (s *TestResultService) SoftDelete(id string, requesterID uint, requesterRole model.UserRole) (*model.TestResult, error) {
	return s.UpdateStatus(id, model.StatusDeleted, requesterID, requesterRole)
}

// Restore moves a soft-deleted result back to active. Admin only.
func (s *TestResultService) Restore(id string, requesterRole model.UserRole) (*model.TestResult, error) {
	if !requesterRole.IsAdmin() {
		return nil, util.AccessDeniedError("only an admin can restore a result")
	}

	result, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if result.Status != model.StatusDeleted {
		return nil, util.ValidationError("only deleted results can be restored")
	}

	result.Status = model.StatusActive
	if err := s.Results.Save(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

// HardDelete removes the document permanently. Admin only, irreversible.
func (s *TestResultService) HardDelete(id string, requesterRole model.UserRole) error {
	if !requesterRole.IsAdmin() {
		return util.AccessDeniedError("only an admin can permanently delete a result")
	}
	if _, err := s.load(id); err != nil {
		return err
	}
	if err := s.Results.Delete(id); err != nil {
		return util.InternalError(err)
	}
	return nil
}

type BehaviorReq struct {
	EventType string          `json:"eventType" binding:"required"`
	At        *time.Time      `json:"at"`
	Payload   json.RawMessage `json:"payload"`
}

// AppendBehavior appends one telemetry event. Behaviors are append-only and
// the operation is keyed by result ID alone, with no ownership gate.
func (s *TestResultService) AppendBehavior(id string, req BehaviorReq) (*model.TestResult, error) {
	if req.EventType == "" {
		return nil, util.ValidationError("eventType is required")
	}

	result, err := s.load(id)
	if err != nil {
		return nil, err
	}

	at := time.Now()
	if req.At != nil {
		at = *req.At
	}
	result.Behaviors = append(result.Behaviors, model.BehaviorEvent{
		EventType: req.EventType,
		At:        at,
		Payload:   req.Payload,
	})

	if err := s.Results.Save(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

type SessionStartReq struct {
	StartedAt *time.Time `json:"startedAt"`
	UserAgent string     `json:"userAgent"`
}

func (s *TestResultService) StartSessionMeta(id string, req SessionStartReq) (*model.TestResult, error) {
	result, err := s.load(id)
	if err != nil {
		return nil, err
	}

	startedAt := time.Now()
	if req.StartedAt != nil {
		startedAt = *req.StartedAt
	}
	result.Session.StartedAt = &startedAt
	if req.UserAgent != "" {
		result.Session.UserAgent = req.UserAgent
	}

	if err := s.Results.Save(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

type SessionEndReq struct {
	EndedAt    *time.Time `json:"endedAt"`
	DurationMs *int64     `json:"durationMs"`
}

func (s *TestResultService) EndSessionMeta(id string, req SessionEndReq) (*model.TestResult, error) {
	result, err := s.load(id)
	if err != nil {
		return nil, err
	}

	endedAt := time.Now()
	if req.EndedAt != nil {
		endedAt = *req.EndedAt
	}
	result.Session.EndedAt = &endedAt

	switch {
	case req.DurationMs != nil && *req.DurationMs >= 0:
		result.Session.DurationMs = *req.DurationMs
	case result.Session.StartedAt != nil:
		result.Session.DurationMs = endedAt.Sub(*result.Session.StartedAt).Milliseconds()
	}

	if err := s.Results.Save(result); err != nil {
		return nil, util.InternalError(err)
	}
	return result, nil
}

func (s *TestResultService) load(id string) (*model.TestResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, util.InvalidIDError(id)
	}
	result, err := s.Results.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("result")
		}
		return nil, util.InternalError(err)
	}
	return result, nil
}

func canView(r *model.TestResult, requesterID uint, role model.UserRole) bool {
	return role.IsAdmin() || r.UserID == requesterID
}
