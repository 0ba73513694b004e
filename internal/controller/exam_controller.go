package controller

import (
	"errors"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// Submit godoc
// @Summary Submit a finished test
// @Description Scores the submitted answers and stores the result for the current user
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.ExamSubmit true "Mode, answers and optional section/time"
// @Success 200 {object} util.Response{data=model.ExamResult} "Scored result"
// @Failure 400 {object} util.Response "Unknown mode or section"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/exams/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req model.ExamSubmit
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.Submit(claims.UserID, &req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidMode) || errors.Is(err, util.ErrInvalidSection) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary Exam history
// @Description Returns the user's results newest first plus cumulative per-section statistics
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ExamHistory} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/exams/history [get]
func (c *ExamController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	history, err := c.ExamService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}

// Detail godoc
// @Summary One exam result
// @Description Returns a single stored result; only its owner may read it
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Result ID"
// @Success 200 {object} util.Response{data=model.ExamResult} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 403 {object} util.Response "Someone else's result"
// @Failure 404 {object} util.Response "No such result"
// @Router /api/exams/{id} [get]
func (c *ExamController) Detail(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ExamService.Detail(claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrResultNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}
