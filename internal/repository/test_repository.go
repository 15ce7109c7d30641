package repository

import (
	"lingo_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Create(test).Error
}

func (r *TestRepository) FindByID(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.First(&test, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (r *TestRepository) Update(test *model.Test) error {
	return r.DB.Save(test).Error
}

func (r *TestRepository) Delete(id string) error {
	return r.DB.Delete(&model.Test{}, "id = ?", id).Error
}

func (r *TestRepository) List(page, limit int) ([]model.Test, int64, error) {
	var total int64
	query := r.DB.Model(&model.Test{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []model.Test
	offset := (page - 1) * limit
	err := r.DB.Order("created_at desc").Offset(offset).Limit(limit).Find(&tests).Error
	return tests, total, err
}
