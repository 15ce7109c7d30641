package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResultStatus governs visibility and mutability of a persisted result.
type ResultStatus string

const (
	StatusDraft   ResultStatus = "draft"
	StatusActive  ResultStatus = "active"
	StatusDeleted ResultStatus = "deleted"
)

func (s ResultStatus) Valid() bool {
	return s == StatusDraft || s == StatusActive || s == StatusDeleted
}

// EngagedDurationFloorMs is the minimum attempt duration below which a
// zero-score result is treated as abandoned and excluded from "my results"
// and period leaderboards.
const EngagedDurationFloorMs = 10000

// TestSnapshot is the immutable copy of test metadata taken at submission
// time, stored as a JSON column.
type TestSnapshot struct {
	TestID     string `json:"testId"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	SubTopic   string `json:"subTopic"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
}

func (s TestSnapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *TestSnapshot) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// BehaviorEvent is one telemetry event appended during an attempt.
type BehaviorEvent struct {
	EventType string          `json:"eventType"`
	At        time.Time       `json:"at"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// BehaviorList is append-only; events are never replaced or reordered.
type BehaviorList []BehaviorEvent

func (l BehaviorList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *BehaviorList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// SessionMeta is the mutable session sub-record populated by the start/end
// session operations.
type SessionMeta struct {
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	UserAgent  string     `json:"userAgent,omitempty"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	DurationMs int64      `json:"durationMs,omitempty"`
}

func (s SessionMeta) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *SessionMeta) Scan(value interface{}) error {
	return scanJSON(value, s)
}

// TestResult is one user's persisted attempt at one test. The document is
// append/transition-only: there is deliberately no UpdatedAt column, and the
// derived stats are recomputed from answers, never set by callers.
type TestResult struct {
	ID           string       `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TestID       string       `gorm:"type:varchar(36);index" json:"testId"`
	TestSnapshot TestSnapshot `gorm:"type:json" json:"testSnapshot"`
	UserID       uint         `gorm:"index" json:"userId"`
	Answers      AnswerList   `gorm:"type:json" json:"answers"`

	TotalQuestions int `gorm:"not null" json:"totalQuestions"`
	CorrectCount   int `gorm:"not null" json:"correctCount"`
	Percentage     int `gorm:"not null" json:"percentage"`

	DurationMs int64      `gorm:"default:0" json:"durationMs"`
	StartTime  *time.Time `json:"startTime,omitempty"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	DeviceInfo string     `gorm:"size:255" json:"deviceInfo,omitempty"`
	IPAddress  string     `gorm:"size:64" json:"ipAddress,omitempty"`

	Status    ResultStatus `gorm:"type:varchar(16);index" json:"status"`
	Behaviors BehaviorList `gorm:"type:json" json:"behaviors"`
	Session   SessionMeta  `gorm:"type:json" json:"session"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (TestResult) TableName() string {
	return "test_results"
}

func (r *TestResult) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
