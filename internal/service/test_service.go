package service

import (
	"errors"

	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/repository"
	"lingo_quiz_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TestService struct {
	Repo *repository.TestRepository
}

func NewTestService(repo *repository.TestRepository) *TestService {
	return &TestService{Repo: repo}
}

type TestReq struct {
	Title       *string `json:"title"`
	Topic       *string `json:"topic"`
	SubTopic    *string `json:"subTopic"`
	Type        *string `json:"type"`
	Difficulty  *string `json:"difficulty"`
	Description *string `json:"description"`
	IsPublished *bool   `json:"isPublished"`
}

func (s *TestService) CreateTest(creatorID uint, req TestReq) (*model.Test, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, util.ValidationError("title is required")
	}

	test := &model.Test{
		Title:     *req.Title,
		CreatorID: creatorID,
	}
	applyTestReq(test, req)

	if err := s.Repo.Create(test); err != nil {
		return nil, util.InternalError(err)
	}
	return test, nil
}

func (s *TestService) UpdateTest(id string, req TestReq) (*model.Test, error) {
	test, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		test.Title = *req.Title
	}
	applyTestReq(test, req)

	if err := s.Repo.Update(test); err != nil {
		return nil, util.InternalError(err)
	}
	return test, nil
}

func (s *TestService) GetTest(id string) (*model.Test, error) {
	return s.load(id)
}

func (s *TestService) DeleteTest(id string) error {
	if _, err := s.load(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return util.InternalError(err)
	}
	return nil
}

func (s *TestService) ListTests(page, limit int) ([]model.Test, int64, error) {
	tests, total, err := s.Repo.List(page, limit)
	if err != nil {
		return nil, 0, util.InternalError(err)
	}
	return tests, total, nil
}

func (s *TestService) load(id string) (*model.Test, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, util.InvalidIDError(id)
	}
	test, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("test")
		}
		return nil, util.InternalError(err)
	}
	return test, nil
}

func applyTestReq(test *model.Test, req TestReq) {
	if req.Topic != nil {
		test.Topic = *req.Topic
	}
	if req.SubTopic != nil {
		test.SubTopic = *req.SubTopic
	}
	if req.Type != nil {
		test.Type = *req.Type
	}
	if req.Difficulty != nil {
		test.Difficulty = *req.Difficulty
	}
	if req.Description != nil {
		test.Description = *req.Description
	}
	if req.IsPublished != nil {
		test.IsPublished = *req.IsPublished
	}
}
