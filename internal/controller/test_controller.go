package controller

import (
	"lingo_quiz_backend/internal/service"
	"lingo_quiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	Service *service.TestService
}

func NewTestController(svc *service.TestService) *TestController {
	return &TestController{Service: svc}
}

// @Summary Create a test
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TestReq true "test payload"
// @Success 201 {object} util.Response
// @Router /api/tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.CreateTest(user.UserID, req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Created(ctx, test)
}

// @Summary List tests
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	page := util.ParsePositiveInt(ctx.Query("page"), 1)
	limit := util.ParsePositiveInt(ctx.Query("limit"), 20)

	tests, total, err := c.Service.ListTests(page, limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: tests, Total: total, Page: page, Limit: limit})
}

// @Summary Get a test by id
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	test, err := c.Service.GetTest(ctx.Param("id"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary Update a test
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Param body body service.TestReq true "test payload"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	var req service.TestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	test, err := c.Service.UpdateTest(ctx.Param("id"), req)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, test)
}

// @Summary Delete a test
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "test id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	if err := c.Service.DeleteTest(ctx.Param("id")); err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
