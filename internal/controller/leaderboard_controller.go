package controller

import (
	"fmt"
	"strconv"
	"time"

	"lingo_quiz_backend/internal/service"
	"lingo_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Caller-enforced limit ranges; the aggregator itself accepts any positive
// integer and truncates.
const (
	maxPeriodLimit    = 50
	maxPerformerLimit = 20
	defaultBoardLimit = 10
	maxPeriodSpan     = 366 * 24 * time.Hour
)

type LeaderboardController struct {
	Service *service.LeaderboardService
}

func NewLeaderboardController(svc *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{Service: svc}
}

// @Summary Weekly leaderboard
// @Tags leaderboards
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of entries (1-50)" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboards/weekly [get]
func (c *LeaderboardController) Weekly(ctx *gin.Context) {
	limit, ok := boardLimit(ctx, maxPeriodLimit)
	if !ok {
		return
	}

	ranked, err := c.Service.TopUsersByWeek(limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, ranked)
}

// @Summary Monthly leaderboard
// @Tags leaderboards
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of entries (1-50)" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboards/monthly [get]
func (c *LeaderboardController) Monthly(ctx *gin.Context) {
	limit, ok := boardLimit(ctx, maxPeriodLimit)
	if !ok {
		return
	}

	ranked, err := c.Service.TopUsersByMonth(limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, ranked)
}

// @Summary Leaderboard over a custom period
// @Tags leaderboards
// @Produce json
// @Security ApiKeyAuth
// @Param startDate query string true "period start (RFC3339 or 2006-01-02)"
// @Param endDate query string true "period end (RFC3339 or 2006-01-02)"
// @Param limit query int false "number of entries (1-50)" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboards/period [get]
func (c *LeaderboardController) Period(ctx *gin.Context) {
	limit, ok := boardLimit(ctx, maxPeriodLimit)
	if !ok {
		return
	}

	startDate, err := parseDate(ctx.Query("startDate"))
	if err != nil {
		util.BadRequest(ctx, "startDate must be RFC3339 or "+util.DateFormat)
		return
	}
	endDate, err := parseDate(ctx.Query("endDate"))
	if err != nil {
		util.BadRequest(ctx, "endDate must be RFC3339 or "+util.DateFormat)
		return
	}
	if !startDate.Before(endDate) {
		util.BadRequest(ctx, "startDate must be before endDate")
		return
	}
	if endDate.Sub(startDate) > maxPeriodSpan {
		util.BadRequest(ctx, "period span must not exceed one year")
		return
	}

	ranked, err := c.Service.TopUsersInPeriod(startDate, endDate, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, ranked)
}

// @Summary All-time top performers by average percentage
// @Tags leaderboards
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of entries (1-20)" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboards/performers [get]
func (c *LeaderboardController) Performers(ctx *gin.Context) {
	limit, ok := boardLimit(ctx, maxPerformerLimit)
	if !ok {
		return
	}

	ranked, err := c.Service.TopPerformers(limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, ranked)
}

// @Summary Most active test takers
// @Tags leaderboards
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "number of entries (1-20)" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboards/test-takers [get]
func (c *LeaderboardController) TestTakers(ctx *gin.Context) {
	limit, ok := boardLimit(ctx, maxPerformerLimit)
	if !ok {
		return
	}

	ranked, err := c.Service.TopTestTakers(limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, ranked)
}

func boardLimit(ctx *gin.Context, max int) (int, bool) {
	raw := ctx.Query("limit")
	if raw == "" {
		return defaultBoardLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > max {
		util.BadRequest(ctx, fmt.Sprintf("limit must be between 1 and %d", max))
		return 0, false
	}
	return limit, true
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse(util.DateFormat, raw)
}
