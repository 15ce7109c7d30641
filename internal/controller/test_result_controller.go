package controller

import (
	"lingo_quiz_backend/internal/model"
	"lingo_quiz_backend/internal/service"
	"lingo_quiz_backend/internal/util"
	"lingo_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type TestResultController struct {
	Service *service.TestResultService
}

func NewTestResultController(svc *service.TestResultService) *TestResultController {
	return &TestResultController{Service: svc}
}

// @Summary Submit a test result
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TestResultCreateReq true "result submission"
// @Success 201 {object} util.Response
// @Router /api/results [post]
func (c *TestResultController) CreateResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TestResultCreateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.IPAddress == "" {
		req.IPAddress = ctx.ClientIP()
	}

	result, err := c.Service.CreateResult(req, user.UserID, user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	monitoring.ResultSubmissions.WithLabelValues(string(result.Status)).Inc()
	util.Created(ctx, result)
}

// @Summary List results
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "filter by user (admin only)"
// @Param status query string false "filter by status"
// @Success 200 {object} util.Response
// @Router /api/results [get]
func (c *TestResultController) ListResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var filter service.ResultListFilter
	if raw := ctx.Query("userId"); raw != "" {
		id := util.MustParseUint(raw)
		filter.UserID = &id
	}
	filter.Status = model.ResultStatus(ctx.Query("status"))

	results, err := c.Service.ListResults(filter, user.UserID, user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary List the caller's active results
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/results/me [get]
func (c *TestResultController) GetMyResults(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.Service.GetMyResults(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, results)
}

// @Summary Get a result by id
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Success 200 {object} util.Response
// @Router /api/results/{id} [get]
func (c *TestResultController) GetResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.GetResultByID(ctx.Param("id"), user.UserID, user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Update non-critical result fields
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Param body body service.TestResultUpdateReq true "updatable fields"
// @Success 200 {object} util.Response
// @Router /api/results/{id} [put]
func (c *TestResultController) UpdateResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TestResultUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.UpdateResult(ctx.Param("id"), req, user.UserID, user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

type StatusUpdateReq struct {
	Status model.ResultStatus `json:"status" binding:"required"`
}

// @Summary Transition a result's status
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Param body body StatusUpdateReq true "target status"
// @Success 200 {object} util.Response
// @Router /api/results/{id}/status [patch]
func (c *TestResultController) UpdateStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StatusUpdateReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.UpdateStatus(ctx.Param("id"), req.Status, user.UserID, user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Soft-delete a result
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Success 200 {object} util.Response
// @Router /api/results/{id} [delete]
func (c *TestResultController) SoftDelete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.SoftDelete(ctx.Param("id"), user.UserID, user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Permanently delete a result (admin)
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Success 200 {object} util.Response
// @Router /api/results/{id}/permanent [delete]
func (c *TestResultController) HardDelete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.HardDelete(ctx.Param("id"), user.Role); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Restore a soft-deleted result (admin)
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Success 200 {object} util.Response
// @Router /api/results/{id}/restore [post]
func (c *TestResultController) Restore(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.Service.Restore(ctx.Param("id"), user.Role)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Append a telemetry behavior event
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Param body body service.BehaviorReq true "behavior event"
// @Success 200 {object} util.Response
// @Router /api/results/{id}/behaviors [post]
func (c *TestResultController) AppendBehavior(ctx *gin.Context) {
	var req service.BehaviorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.AppendBehavior(ctx.Param("id"), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Record session start metadata
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Param body body service.SessionStartReq true "session start"
// @Success 200 {object} util.Response
// @Router /api/results/{id}/session/start [post]
func (c *TestResultController) StartSession(ctx *gin.Context) {
	var req service.SessionStartReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.UserAgent == "" {
		req.UserAgent = ctx.Request.UserAgent()
	}

	result, err := c.Service.StartSessionMeta(ctx.Param("id"), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Record session end metadata
// @Tags results
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "result id"
// @Param body body service.SessionEndReq true "session end"
// @Success 200 {object} util.Response
// @Router /api/results/{id}/session/end [post]
func (c *TestResultController) EndSession(ctx *gin.Context) {
	var req service.SessionEndReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.EndSessionMeta(ctx.Param("id"), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Get the caller's aggregate statistics
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/statistics/me [get]
func (c *TestResultController) GetMyStatistics(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.GetUserStatistics(user.UserID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Get a user's aggregate statistics (admin)
// @Tags results
// @Produce json
// @Security ApiKeyAuth
// @Param userId path int true "user id"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{userId}/statistics [get]
func (c *TestResultController) GetUserStatistics(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("userId"))
	if userID == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}

	stats, err := c.Service.GetUserStatistics(userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
