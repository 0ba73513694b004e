package controller

import (
	"bytes"
	"errors"
	"io"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/internal/util"
	"lawyer_exam_backend/pkg/logger"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminController manages the question bank.
type AdminController struct {
	QuestionService *service.QuestionService
	StorageService  *service.StorageService
}

func NewAdminController(questionService *service.QuestionService, storageService *service.StorageService) *AdminController {
	return &AdminController{
		QuestionService: questionService,
		StorageService:  storageService,
	}
}

// ListQuestions godoc
// @Summary Paginated question listing
// @Description Returns questions in both languages, optionally filtered by section
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page number, starts at 1"
// @Param   page_size query int false "Page size, default 20"
// @Param   section query string false "Legislation section tag"
// @Success 200 {object} util.Response{data=model.PaginatedQuestions} "Success"
// @Failure 400 {object} util.Response "Unknown section"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/admin/questions [get]
func (c *AdminController) ListQuestions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	var section *model.Section
	if raw := ctx.Query("section"); raw != "" {
		s := model.Section(raw)
		section = &s
	}

	result, err := c.QuestionService.ListQuestions(page, pageSize, section)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSection) {
			util.BadRequest(ctx, "Unknown legislation section")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// CreateQuestion godoc
// @Summary Add a question
// @Description Stores a bilingual question in the bank
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.QuestionPayload true "Question in both languages"
// @Success 201 {object} util.Response{data=model.AdminQuestion} "Created"
// @Failure 400 {object} util.Response "Bad section or correct index"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var payload model.QuestionPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.CreateQuestion(&payload)
	if err != nil {
		if errors.Is(err, util.ErrInvalidSection) || errors.Is(err, util.ErrInvalidCorrect) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary Replace a question
// @Description Overwrites a stored question, keeping its id
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Question ID"
// @Param   body body model.QuestionPayload true "Question in both languages"
// @Success 200 {object} util.Response{data=model.AdminQuestion} "Success"
// @Failure 400 {object} util.Response "Bad section or correct index"
// @Failure 404 {object} util.Response "No such question"
// @Router /api/admin/questions/{id} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	var payload model.QuestionPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuestionService.UpdateQuestion(ctx.Param("id"), &payload)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuestionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidSection), errors.Is(err, util.ErrInvalidCorrect):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Question ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "No such question"
// @Router /api/admin/questions/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuestionService.DeleteQuestion(ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

// ImportQuestions godoc
// @Summary Bulk import a knowledge base
// @Description Loads questions from an uploaded knowledge-base JSON file and archives the upload
// @Tags admin
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "knowledge_base.json"
// @Success 200 {object} util.Response{data=object} "Imported count"
// @Failure 400 {object} util.Response "Missing file or invalid document"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/admin/questions/import [post]
func (c *AdminController) ImportQuestions(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if mimeType, ok := util.SniffContentType(data, util.AllowedImportMimeTypes); !ok {
		util.BadRequest(ctx, "file must be a JSON document, got "+mimeType)
		return
	}

	count, err := c.QuestionService.ImportQuestions(data)
	if err != nil {
		if errors.Is(err, util.ErrInvalidImport) ||
			errors.Is(err, util.ErrInvalidSection) ||
			errors.Is(err, util.ErrInvalidCorrect) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Archive the accepted upload. The import already succeeded, so a
	// storage failure only gets logged.
	archiveName := "imports/" + time.Now().UTC().Format(util.ImportStampFormat) + "_" + filepath.Base(file.Filename)
	if _, err := c.StorageService.Upload(ctx.Request.Context(), archiveName, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		logger.Log.Warn("Failed to archive knowledge-base upload",
			zap.String("file", archiveName),
			zap.Error(err))
	}

	util.Success(ctx, gin.H{"imported": count})
}
