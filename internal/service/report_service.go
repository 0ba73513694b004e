package service

import (
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/repository"
)

type ReportService struct {
	ReportRepo *repository.ReportRepository
}

func NewReportService(reportRepo *repository.ReportRepository) *ReportService {
	return &ReportService{ReportRepo: reportRepo}
}

func (s *ReportService) Create(userID, text string) (*model.Report, error) {
	report := &model.Report{
		UserID: userID,
		Text:   text,
	}
	if err := s.ReportRepo.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List() ([]model.Report, error) {
	return s.ReportRepo.FindAll()
}
