package service

import (
	"math"
	"time"

	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/repository"
	"lingo_quiz_backend/internal/util"
)

const recentResultCount = 10

type CategoryStats struct {
	Count             int     `json:"count"`
	AveragePercentage float64 `json:"averagePercentage"`
}

type ResultSummary struct {
	ID             string    `json:"id"`
	TestID         string    `json:"testId"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	Difficulty     string    `json:"difficulty"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectCount   int       `json:"correctCount"`
	Percentage     int       `json:"percentage"`
	DurationMs     int64     `json:"durationMs"`
	CreatedAt      time.Time `json:"createdAt"`
}

type UserStatistics struct {
	TotalTests        int                      `json:"totalTests"`
	TotalQuestions    int                      `json:"totalQuestions"`
	TotalCorrect      int                      `json:"totalCorrect"`
	AveragePercentage float64                  `json:"averagePercentage"`
	BestPercentage    int                      `json:"bestPercentage"`
	TotalDurationMs   int64                    `json:"totalDurationMs"`
	ByType            map[string]CategoryStats `json:"byType"`
	ByDifficulty      map[string]CategoryStats `json:"byDifficulty"`
	RecentResults     []ResultSummary          `json:"recentResults"`
}

// GetUserStatistics aggregates a user's active results: totals, averages,
// breakdown by snapshot test type and difficulty, and the ten most recent
// results summarized.
func (s *TestResultService) GetUserStatistics(userID uint) (*UserStatistics, error) {
	results, err := s.Results.List(repository.ResultFilter{
		UserID: &userID,
		Status: model.StatusActive,
	})
	if err != nil {
		return nil, util.InternalError(err)
	}

	stats := &UserStatistics{
		ByType:        map[string]CategoryStats{},
		ByDifficulty:  map[string]CategoryStats{},
		RecentResults: []ResultSummary{},
	}

	var pctSum int
	typePct := map[string]int{}
	diffPct := map[string]int{}

	for i := range results {
		r := &results[i]
		stats.TotalTests++
		stats.TotalQuestions += r.TotalQuestions
		stats.TotalCorrect += r.CorrectCount
		stats.TotalDurationMs += r.DurationMs
		pctSum += r.Percentage
		if r.Percentage > stats.BestPercentage {
			stats.BestPercentage = r.Percentage
		}

		if t := r.TestSnapshot.Type; t != "" {
			entry := stats.ByType[t]
			entry.Count++
			typePct[t] += r.Percentage
			stats.ByType[t] = entry
		}
		if d := r.TestSnapshot.Difficulty; d != "" {
			entry := stats.ByDifficulty[d]
			entry.Count++
			diffPct[d] += r.Percentage
			stats.ByDifficulty[d] = entry
		}

		if len(stats.RecentResults) < recentResultCount {
			stats.RecentResults = append(stats.RecentResults, ResultSummary{
				ID:             r.ID,
				TestID:         r.TestID,
				Title:          r.TestSnapshot.Title,
				Type:           r.TestSnapshot.Type,
				Difficulty:     r.TestSnapshot.Difficulty,
				TotalQuestions: r.TotalQuestions,
				CorrectCount:   r.CorrectCount,
				Percentage:     r.Percentage,
				DurationMs:     r.DurationMs,
				CreatedAt:      r.CreatedAt,
			})
		}
	}

	if stats.TotalTests > 0 {
		stats.AveragePercentage = round2(float64(pctSum) / float64(stats.TotalTests))
	}
	for t, sum := range typePct {
		entry := stats.ByType[t]
		entry.AveragePercentage = round2(float64(sum) / float64(entry.Count))
		stats.ByType[t] = entry
	}
	for d, sum := range diffPct {
		entry := stats.ByDifficulty[d]
		entry.AveragePercentage = round2(float64(sum) / float64(entry.Count))
		stats.ByDifficulty[d] = entry
	}

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
