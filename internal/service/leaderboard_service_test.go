package service

import (
	"testing"
	"time"

	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/util"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var boardNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newLeaderboard(store *fakeResultStore, users *fakeUserDirectory) *LeaderboardService {
	svc := NewLeaderboardService(store, users, nil)
	svc.now = func() time.Time { return boardNow }
	return svc
}

func seedResult(store *fakeResultStore, userID uint, correct, total, percentage int, durationMs int64, age time.Duration) {
	store.Save(&model.TestResult{
		ID:             uuid.New().String(),
		UserID:         userID,
		Status:         model.StatusActive,
		TotalQuestions: total,
		CorrectCount:   correct,
		Percentage:     percentage,
		DurationMs:     durationMs,
		CreatedAt:      boardNow.Add(-age),
	})
}

func TestTopUsersInPeriodRanking(t *testing.T) {
	store := newFakeResultStore()
	users := newFakeUserDirectory(
		&model.User{BaseModel: model.BaseModel{ID: 1}, Name: "Ada", Email: "ada@example.com", Avatar: "a.png"},
		&model.User{BaseModel: model.BaseModel{ID: 2}, Name: "Ben", Email: "ben@example.com"},
	)
	svc := newLeaderboard(store, users)

	// Ada: one strong result. Ben: two weaker ones.
	seedResult(store, 1, 8, 10, 80, 60000, time.Hour)
	seedResult(store, 2, 3, 10, 30, 60000, 2*time.Hour)
	seedResult(store, 2, 5, 10, 50, 60000, 3*time.Hour)

	ranked, err := svc.TopUsersInPeriod(boardNow.AddDate(0, 0, -7), boardNow, 10)
	if err != nil {
		t.Fatalf("TopUsersInPeriod: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}

	adaScore := float64(80) * float64(8) * compositeScoreBonus
	benScore := float64(30)*float64(3)*compositeScoreBonus + float64(50)*float64(5)*compositeScoreBonus
	if adaScore <= benScore {
		t.Fatal("fixture broken: Ada should outscore Ben")
	}

	if ranked[0].UserID != 1 || ranked[0].Rank != 1 {
		t.Errorf("first = user %d rank %d, want user 1 rank 1", ranked[0].UserID, ranked[0].Rank)
	}
	if ranked[0].CompositeScore != adaScore {
		t.Errorf("CompositeScore = %v, want %v", ranked[0].CompositeScore, adaScore)
	}
	if ranked[0].Name != "Ada" || ranked[0].Email != "ada@example.com" || ranked[0].Avatar != "a.png" {
		t.Errorf("profile not attached: %+v", ranked[0])
	}
	if ranked[1].UserID != 2 || ranked[1].Rank != 2 {
		t.Errorf("second = user %d rank %d", ranked[1].UserID, ranked[1].Rank)
	}
	if ranked[1].TotalTests != 2 || ranked[1].AveragePercentage != 40 || ranked[1].BestPercentage != 50 {
		t.Errorf("Ben aggregate = %+v", ranked[1])
	}
}

func TestTopUsersInPeriodExcludesAbandonedAndOutOfWindow(t *testing.T) {
	store := newFakeResultStore()
	svc := newLeaderboard(store, newFakeUserDirectory())

	seedResult(store, 1, 0, 5, 0, 5000, time.Hour)       // abandoned: zero score, under floor
	seedResult(store, 2, 0, 5, 0, 15000, time.Hour)      // zero score but engaged
	seedResult(store, 3, 5, 5, 100, 60000, 30*24*time.Hour) // outside the window

	ranked, err := svc.TopUsersInPeriod(boardNow.AddDate(0, 0, -7), boardNow, 10)
	if err != nil {
		t.Fatalf("TopUsersInPeriod: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("len = %d, want only the engaged zero-score user", len(ranked))
	}
	if ranked[0].UserID != 2 {
		t.Errorf("UserID = %d, want 2", ranked[0].UserID)
	}
}

func TestTopUsersInPeriodValidation(t *testing.T) {
	svc := newLeaderboard(newFakeResultStore(), newFakeUserDirectory())

	_, err := svc.TopUsersInPeriod(boardNow, boardNow.Add(time.Hour), 0)
	if util.KindOf(err) != util.KindValidation {
		t.Errorf("zero limit: kind = %s", util.KindOf(err))
	}
	_, err = svc.TopUsersInPeriod(boardNow, boardNow, 10)
	if util.KindOf(err) != util.KindValidation {
		t.Errorf("empty window: kind = %s", util.KindOf(err))
	}
}

func TestTopUsersInPeriodTruncatesToLimit(t *testing.T) {
	store := newFakeResultStore()
	svc := newLeaderboard(store, newFakeUserDirectory())

	for id := uint(1); id <= 5; id++ {
		seedResult(store, id, int(id), 10, int(id)*10, 60000, time.Hour)
	}

	ranked, err := svc.TopUsersInPeriod(boardNow.AddDate(0, 0, -7), boardNow, 2)
	if err != nil {
		t.Fatalf("TopUsersInPeriod: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].UserID != 5 || ranked[1].UserID != 4 {
		t.Errorf("top two = %d, %d; want 5, 4", ranked[0].UserID, ranked[1].UserID)
	}
}

func TestTopPerformersGates(t *testing.T) {
	store := newFakeResultStore()
	svc := newLeaderboard(store, newFakeUserDirectory())

	// User 1: three results with enough questions, qualifies.
	seedResult(store, 1, 9, 10, 90, 60000, time.Hour)
	seedResult(store, 1, 8, 10, 80, 60000, 2*time.Hour)
	seedResult(store, 1, 7, 10, 70, 60000, 3*time.Hour)

	// User 2: perfect scores but only two counting results.
	seedResult(store, 2, 10, 10, 100, 60000, time.Hour)
	seedResult(store, 2, 10, 10, 100, 60000, 2*time.Hour)

	// User 3: three results but all too short to count.
	seedResult(store, 3, 2, 2, 100, 60000, time.Hour)
	seedResult(store, 3, 2, 2, 100, 60000, 2*time.Hour)
	seedResult(store, 3, 2, 2, 100, 60000, 3*time.Hour)

	ranked, err := svc.TopPerformers(10)
	if err != nil {
		t.Fatalf("TopPerformers: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1", len(ranked))
	}
	if ranked[0].UserID != 1 {
		t.Errorf("UserID = %d, want 1", ranked[0].UserID)
	}
	if ranked[0].AveragePercentage != 80 {
		t.Errorf("AveragePercentage = %v, want 80", ranked[0].AveragePercentage)
	}
}

func TestTopTestTakersCountsEverything(t *testing.T) {
	store := newFakeResultStore()
	svc := newLeaderboard(store, newFakeUserDirectory())

	// Volume beats score here; even abandoned attempts count.
	seedResult(store, 1, 5, 5, 100, 60000, time.Hour)
	seedResult(store, 2, 0, 5, 0, 1000, time.Hour)
	seedResult(store, 2, 0, 5, 0, 1000, 2*time.Hour)
	seedResult(store, 2, 0, 5, 0, 1000, 3*time.Hour)

	ranked, err := svc.TopTestTakers(10)
	if err != nil {
		t.Fatalf("TopTestTakers: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].UserID != 2 || ranked[0].TotalTests != 3 {
		t.Errorf("first = user %d with %d tests, want user 2 with 3", ranked[0].UserID, ranked[0].TotalTests)
	}
}

func TestWeeklyBoardUsesRedisCache(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	defer mr.Close()

	store := newFakeResultStore()
	svc := NewLeaderboardService(store, newFakeUserDirectory(), redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	svc.now = func() time.Time { return boardNow }

	seedResult(store, 1, 5, 5, 100, 60000, time.Hour)

	first, err := svc.TopUsersByWeek(10)
	if err != nil {
		t.Fatalf("TopUsersByWeek: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("len = %d, want 1", len(first))
	}
	if !mr.Exists("leaderboard:week:10") {
		t.Fatal("expected the board to be cached")
	}

	// New data within the TTL must not surface.
	seedResult(store, 2, 5, 5, 100, 60000, time.Hour)
	cached, err := svc.TopUsersByWeek(10)
	if err != nil {
		t.Fatalf("TopUsersByWeek: %v", err)
	}
	if len(cached) != 1 {
		t.Errorf("cached len = %d, want stale 1", len(cached))
	}

	mr.FastForward(leaderboardCacheTTL + time.Second)
	fresh, err := svc.TopUsersByWeek(10)
	if err != nil {
		t.Fatalf("TopUsersByWeek: %v", err)
	}
	if len(fresh) != 2 {
		t.Errorf("post-expiry len = %d, want 2", len(fresh))
	}
}

func TestMonthlyBoardWindow(t *testing.T) {
	store := newFakeResultStore()
	svc := newLeaderboard(store, newFakeUserDirectory())

	seedResult(store, 1, 5, 5, 100, 60000, 20*24*time.Hour) // inside a month, outside a week
	seedResult(store, 2, 5, 5, 100, 60000, 40*24*time.Hour) // outside both

	weekly, err := svc.TopUsersByWeek(10)
	if err != nil {
		t.Fatalf("TopUsersByWeek: %v", err)
	}
	monthly, err := svc.TopUsersByMonth(10)
	if err != nil {
		t.Fatalf("TopUsersByMonth: %v", err)
	}
	if len(weekly) != 0 {
		t.Errorf("weekly len = %d, want 0", len(weekly))
	}
	if len(monthly) != 1 || monthly[0].UserID != 1 {
		t.Errorf("monthly = %+v, want just user 1", monthly)
	}
}
