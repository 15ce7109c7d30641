package service

import (
	"sort"

	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeResultStore is an in-memory ResultStore mirroring the repository's
// filter and ordering semantics.
type fakeResultStore struct {
	results map[string]*model.TestResult
	listErr error
}

func newFakeResultStore() *fakeResultStore {
	return &fakeResultStore{results: map[string]*model.TestResult{}}
}

func (f *fakeResultStore) Create(result *model.TestResult) error {
	if result.ID == "" {
		result.ID = uuid.New().String()
	}
	stored := *result
	f.results[result.ID] = &stored
	return nil
}

func (f *fakeResultStore) FindByID(id string) (*model.TestResult, error) {
	r, ok := f.results[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeResultStore) Save(result *model.TestResult) error {
	stored := *result
	f.results[result.ID] = &stored
	return nil
}

func (f *fakeResultStore) Delete(id string) error {
	delete(f.results, id)
	return nil
}

func (f *fakeResultStore) List(filter repository.ResultFilter) ([]model.TestResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []model.TestResult
	for _, r := range f.results {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.CreatedFrom != nil && r.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && r.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		if filter.MinQuestions > 0 && r.TotalQuestions < filter.MinQuestions {
			continue
		}
		if filter.ExcludeAbandoned && r.Percentage == 0 && r.DurationMs < model.EngagedDurationFloorMs {
			continue
		}
		out = append(out, *r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeUserDirectory struct {
	users map[uint]*model.User
}

func newFakeUserDirectory(users ...*model.User) *fakeUserDirectory {
	f := &fakeUserDirectory{users: map[uint]*model.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserDirectory) FindByID(id uint) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserDirectory) FindByIDs(ids []uint) (map[uint]*model.User, error) {
	out := map[uint]*model.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

type fakeTestCatalog struct {
	tests map[string]*model.Test
}

func newFakeTestCatalog(tests ...*model.Test) *fakeTestCatalog {
	f := &fakeTestCatalog{tests: map[string]*model.Test{}}
	for _, t := range tests {
		f.tests[t.ID] = t
	}
	return f
}

func (f *fakeTestCatalog) FindByID(id string) (*model.Test, error) {
	t, ok := f.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }
func uintPtr(v uint) *uint    { return &v }
func int64Ptr(v int64) *int64 { return &v }

// textAnswer builds a minimal valid default-variant answer record.
func textAnswer(correct bool) model.AnswerRecord {
	empty := ""
	return model.AnswerRecord{
		QuestionCollection: "grammars",
		IsCorrect:          boolPtr(correct),
		Text: &model.TextAnswer{
			QuestionText:  "Pick the correct form",
			CorrectAnswer: &empty,
			UserAnswer:    &empty,
		},
	}
}

func answersWith(correct, wrong int) model.AnswerList {
	answers := make(model.AnswerList, 0, correct+wrong)
	for i := 0; i < correct; i++ {
		answers = append(answers, textAnswer(true))
	}
	for i := 0; i < wrong; i++ {
		answers = append(answers, textAnswer(false))
	}
	return answers
}
