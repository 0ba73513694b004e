package controller

import (
	"errors"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// GetQuestions godoc
// @Summary All questions
// @Description Returns the whole question bank projected to one language
// @Tags questions
// @Produce  json
// @Param   lang query string false "Language code (kz or ru, defaults to kz)"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/questions [get]
func (c *QuestionController) GetQuestions(ctx *gin.Context) {
	lang := model.NormalizeLang(ctx.Query("lang"))

	questions, err := c.QuestionService.AllQuestions(lang)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// GetDemoQuestions godoc
// @Summary Demo question set
// @Description Returns a random demo-sized selection of questions
// @Tags questions
// @Produce  json
// @Param   lang query string false "Language code (kz or ru, defaults to kz)"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/questions/demo [get]
func (c *QuestionController) GetDemoQuestions(ctx *gin.Context) {
	lang := model.NormalizeLang(ctx.Query("lang"))

	questions, err := c.QuestionService.DemoQuestions(lang)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// GetExamQuestions godoc
// @Summary Exam question set
// @Description Returns a random exam-sized selection of questions
// @Tags questions
// @Produce  json
// @Param   lang query string false "Language code (kz or ru, defaults to kz)"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/questions/exam [get]
func (c *QuestionController) GetExamQuestions(ctx *gin.Context) {
	lang := model.NormalizeLang(ctx.Query("lang"))

	questions, err := c.QuestionService.ExamQuestions(lang)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// GetTrainerQuestions godoc
// @Summary Trainer question set
// @Description Returns questions for one legislation section, or the whole bank when no section is given
// @Tags questions
// @Produce  json
// @Param   section query string false "Legislation section tag"
// @Param   lang query string false "Language code (kz or ru, defaults to kz)"
// @Param   limit query int false "Maximum number of questions, 0 means all"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Unknown section or bad limit"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/questions/trainer [get]
func (c *QuestionController) GetTrainerQuestions(ctx *gin.Context) {
	lang := model.NormalizeLang(ctx.Query("lang"))
	section := model.Section(ctx.Query("section"))

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "invalid limit")
			return
		}
		limit = parsed
	}

	questions, err := c.QuestionService.TrainerQuestions(section, lang, limit)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSection) {
			util.BadRequest(ctx, "Unknown legislation section")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}

// GetSections godoc
// @Summary Legislation sections
// @Description Returns the section tags together with their bilingual display names
// @Tags questions
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/legislation-sections [get]
func (c *QuestionController) GetSections(ctx *gin.Context) {
	util.Success(ctx, gin.H{"sections": model.SectionList()})
}
