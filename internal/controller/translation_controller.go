package controller

import (
	"errors"
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TranslationController struct {
	Translations *service.TranslationService
}

func NewTranslationController(translations *service.TranslationService) *TranslationController {
	return &TranslationController{Translations: translations}
}

// GetAll godoc
// @Summary All translation tables
// @Description Returns the UI translation tables for every language
// @Tags translations
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/translations [get]
func (c *TranslationController) GetAll(ctx *gin.Context) {
	tables, err := c.Translations.All(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, tables)
}

// GetLanguage godoc
// @Summary One translation table
// @Description Returns the table for a language, falling back to Kazakh for unknown codes
// @Tags translations
// @Produce  json
// @Param   lang path string true "Language code"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/translations/{lang} [get]
func (c *TranslationController) GetLanguage(ctx *gin.Context) {
	served, table, err := c.Translations.ForLanguage(ctx.Request.Context(), ctx.Param("lang"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"lang":         served,
		"translations": table,
	})
}

// UpdateLanguage godoc
// @Summary Replace a translation table
// @Description Stores a new table for the language and invalidates the cache
// @Tags translations
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   lang path string true "Language code"
// @Param   body body object true "Translation table"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Not a JSON object"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/admin/translations/{lang} [put]
func (c *TranslationController) UpdateLanguage(ctx *gin.Context) {
	lang := ctx.Param("lang")

	body, err := ctx.GetRawData()
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Translations.Replace(ctx.Request.Context(), lang, body); err != nil {
		if errors.Is(err, util.ErrInvalidTranslation) {
			util.BadRequest(ctx, "Translation document must be a JSON object")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"lang": lang})
}
