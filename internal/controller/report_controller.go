package controller

import (
	"lawyer_exam_backend/internal/service"
	"lawyer_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// swagger:model ReportRequest
type ReportRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create godoc
// @Summary File a problem report
// @Description Stores free-form feedback from the current user
// @Tags reports
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ReportRequest true "Report text"
// @Success 201 {object} util.Response{data=model.Report} "Created"
// @Failure 400 {object} util.Response "Empty report"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/reports [post]
func (c *ReportController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	report, err := c.ReportService.Create(claims.UserID, req.Text)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, report)
}

// List godoc
// @Summary All problem reports
// @Description Returns every stored report, newest first (admin only)
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Failure 403 {object} util.Response "Admin only"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/admin/reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	reports, err := c.ReportService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"reports": reports})
}
