package repository

import (
	"lawyer_exam_backend/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.Report) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindAll() ([]model.Report, error) {
	var reports []model.Report
	err := r.DB.Order("created_at desc").Find(&reports).Error
	return reports, err
}
