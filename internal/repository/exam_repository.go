package repository

import (
	"lawyer_exam_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(result *model.ExamResult) error {
	return r.DB.Create(result).Error
}

func (r *ExamRepository) FindByID(id string) (*model.ExamResult, error) {
	var result model.ExamResult
	err := r.DB.First(&result, "id = ?", id).Error
	return &result, err
}

// FindByUser returns the user's results in storage order; the history
// aggregator owns the newest-first ordering.
func (r *ExamRepository) FindByUser(userID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	err := r.DB.Where("user_id = ?", userID).Find(&results).Error
	return results, err
}
