package service

import (
	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/repository"
)

// ResultStore is the persistence boundary for test results. The gorm
// repository implements it in production; tests use an in-memory fake.
type ResultStore interface {
	Create(result *model.TestResult) error
	FindByID(id string) (*model.TestResult, error)
	Save(result *model.TestResult) error
	Delete(id string) error
	List(f repository.ResultFilter) ([]model.TestResult, error)
}

// UserDirectory resolves the denormalized profile fields leaderboards attach.
type UserDirectory interface {
	FindByID(id uint) (*model.User, error)
	FindByIDs(ids []uint) (map[uint]*model.User, error)
}

// TestCatalog resolves the test a submission snapshots.
type TestCatalog interface {
	FindByID(id string) (*model.Test, error)
}
