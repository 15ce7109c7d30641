package repository

import (
	"time"

	"lingo_quiz_backend/internal/model"

	"gorm.io/gorm"
)

// ResultFilter narrows result listings. Zero values mean "no constraint".
type ResultFilter struct {
	UserID       *uint
	Status       model.ResultStatus
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	MinQuestions int
	// ExcludeAbandoned drops results with percentage == 0 and an attempt
	// duration below model.EngagedDurationFloorMs.
	ExcludeAbandoned bool
	Limit            int
}

type TestResultRepository struct {
	DB *gorm.DB
}

func NewTestResultRepository(db *gorm.DB) *TestResultRepository {
	return &TestResultRepository{DB: db}
}

func (r *TestResultRepository) Create(result *model.TestResult) error {
	return r.DB.Create(result).Error
}

func (r *TestResultRepository) FindByID(id string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.DB.First(&result, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Save writes the full document back. Results carry no UpdatedAt column;
// concurrent saves against the same ID are last-write-wins.
func (r *TestResultRepository) Save(result *model.TestResult) error {
	return r.DB.Save(result).Error
}

// Delete removes the document permanently (hard delete).
func (r *TestResultRepository) Delete(id string) error {
	return r.DB.Delete(&model.TestResult{}, "id = ?", id).Error
}

func (r *TestResultRepository) List(f ResultFilter) ([]model.TestResult, error) {
	query := r.DB.Model(&model.TestResult{})

	if f.UserID != nil {
		query = query.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		query = query.Where("created_at <= ?", *f.CreatedTo)
	}
	if f.MinQuestions > 0 {
		query = query.Where("total_questions >= ?", f.MinQuestions)
	}
	if f.ExcludeAbandoned {
		query = query.Where("percentage > 0 OR duration_ms >= ?", model.EngagedDurationFloorMs)
	}
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}

	var results []model.TestResult
	err := query.Order("created_at desc").Find(&results).Error
	return results, err
}
