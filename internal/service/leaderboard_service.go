package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/repository"
	"lingo_quiz_backend/internal/util"
	"lingo_quiz_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// compositeScoreBonus is the fixed multiplier applied per result when
// accumulating the composite leaderboard score. Not configurable.
const compositeScoreBonus = 1.1

// minPerformerQuestions and minPerformerResults gate the all-time
// performers board: each counted result needs at least 3 questions, and a
// user needs at least 3 such results to appear at all.
const (
	minPerformerQuestions = 3
	minPerformerResults   = 3
)

const leaderboardCacheTTL = 5 * time.Minute

type RankedUser struct {
	Rank              int     `json:"rank"`
	UserID            uint    `json:"userId"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Avatar            string  `json:"avatar"`
	TotalTests        int     `json:"totalTests"`
	TotalQuestions    int     `json:"totalQuestions"`
	TotalCorrect      int     `json:"totalCorrect"`
	AveragePercentage float64 `json:"averagePercentage"`
	BestPercentage    int     `json:"bestPercentage"`
	TotalDurationMs   int64   `json:"totalDurationMs"`
	CompositeScore    float64 `json:"compositeScore"`
}

type LeaderboardService struct {
	Results ResultStore
	Users   UserDirectory
	Redis   *redis.Client

	now func() time.Time
}

func NewLeaderboardService(results ResultStore, users UserDirectory, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		Results: results,
		Users:   users,
		Redis:   rdb,
		now:     time.Now,
	}
}

// TopUsersInPeriod ranks users by composite score over active, non-abandoned
// results created within [startDate, endDate]. Ties keep store order, which
// is stable but not strictly defined for equal scores.
func (s *LeaderboardService) TopUsersInPeriod(startDate, endDate time.Time, limit int) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, util.ValidationError("limit must be a positive integer")
	}
	if !startDate.Before(endDate) {
		return nil, util.ValidationError("startDate must be before endDate")
	}

	results, err := s.Results.List(repository.ResultFilter{
		Status:           model.StatusActive,
		CreatedFrom:      &startDate,
		CreatedTo:        &endDate,
		ExcludeAbandoned: true,
	})
	if err != nil {
		return nil, util.InternalError(err)
	}

	ranked := s.aggregate(results, nil)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CompositeScore > ranked[j].CompositeScore
	})
	ranked = s.finalize(ranked, limit)
	return ranked, nil
}

func (s *LeaderboardService) TopUsersByWeek(limit int) ([]RankedUser, error) {
	return s.cachedPeriod("week", limit, func(now time.Time) time.Time {
		return now.AddDate(0, 0, -7)
	})
}

func (s *LeaderboardService) TopUsersByMonth(limit int) ([]RankedUser, error) {
	return s.cachedPeriod("month", limit, func(now time.Time) time.Time {
		return now.AddDate(0, -1, 0)
	})
}

// TopPerformers ranks users by average percentage across all time. A result
// only counts with at least 3 questions, and a user only appears with at
// least 3 counting results.
func (s *LeaderboardService) TopPerformers(limit int) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, util.ValidationError("limit must be a positive integer")
	}

	results, err := s.Results.List(repository.ResultFilter{
		Status:       model.StatusActive,
		MinQuestions: minPerformerQuestions,
	})
	if err != nil {
		return nil, util.InternalError(err)
	}

	ranked := s.aggregate(results, func(u *RankedUser) bool {
		return u.TotalTests >= minPerformerResults
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AveragePercentage > ranked[j].AveragePercentage
	})
	ranked = s.finalize(ranked, limit)
	return ranked, nil
}

// TopTestTakers ranks users by raw result count across all active results,
// independent of score.
func (s *LeaderboardService) TopTestTakers(limit int) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, util.ValidationError("limit must be a positive integer")
	}

	results, err := s.Results.List(repository.ResultFilter{
		Status: model.StatusActive,
	})
	if err != nil {
		return nil, util.InternalError(err)
	}

	ranked := s.aggregate(results, nil)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalTests > ranked[j].TotalTests
	})
	ranked = s.finalize(ranked, limit)
	return ranked, nil
}

// aggregate groups results by user and accumulates the per-user stats. The
// keep filter (if any) runs after grouping; users with zero qualifying
// results never appear at all.
func (s *LeaderboardService) aggregate(results []model.TestResult, keep func(*RankedUser) bool) []RankedUser {
	byUser := make(map[uint]*RankedUser)
	order := make([]uint, 0)
	pctSum := make(map[uint]int)

	for i := range results {
		r := &results[i]
		entry, ok := byUser[r.UserID]
		if !ok {
			entry = &RankedUser{UserID: r.UserID}
			byUser[r.UserID] = entry
			order = append(order, r.UserID)
		}
		entry.TotalTests++
		entry.TotalQuestions += r.TotalQuestions
		entry.TotalCorrect += r.CorrectCount
		entry.TotalDurationMs += r.DurationMs
		pctSum[r.UserID] += r.Percentage
		if r.Percentage > entry.BestPercentage {
			entry.BestPercentage = r.Percentage
		}
		entry.CompositeScore += float64(r.Percentage) * float64(r.CorrectCount) * compositeScoreBonus
	}

	ranked := make([]RankedUser, 0, len(order))
	for _, userID := range order {
		entry := byUser[userID]
		entry.AveragePercentage = round2(float64(pctSum[userID]) / float64(entry.TotalTests))
		if keep != nil && !keep(entry) {
			continue
		}
		ranked = append(ranked, *entry)
	}
	return ranked
}

// finalize truncates to limit, assigns dense ranks and attaches the
// denormalized user profile fields.
func (s *LeaderboardService) finalize(ranked []RankedUser, limit int) []RankedUser {
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	ids := make([]uint, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].UserID
	}
	users, err := s.Users.FindByIDs(ids)
	if err != nil {
		logger.Log.Warn("leaderboard profile lookup failed", zap.Error(err))
		users = map[uint]*model.User{}
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
		if u, ok := users[ranked[i].UserID]; ok {
			ranked[i].Name = u.Name
			ranked[i].Email = u.Email
			ranked[i].Avatar = u.Avatar
		}
	}
	return ranked
}

// cachedPeriod serves the rolling week/month boards through a short-lived
// redis cache; on any cache trouble it falls through to the aggregation.
func (s *LeaderboardService) cachedPeriod(window string, limit int, startFrom func(time.Time) time.Time) ([]RankedUser, error) {
	if limit <= 0 {
		return nil, util.ValidationError("limit must be a positive integer")
	}

	key := fmt.Sprintf("leaderboard:%s:%d", window, limit)
	ctx := context.Background()

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var ranked []RankedUser
			if err := json.Unmarshal([]byte(cached), &ranked); err == nil {
				return ranked, nil
			}
		}
	}

	now := s.now()
	ranked, err := s.TopUsersInPeriod(startFrom(now), now, limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(ranked); err == nil {
			s.Redis.Set(ctx, key, payload, leaderboardCacheTTL)
		}
	}
	return ranked, nil
}
