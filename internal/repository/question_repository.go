package repository

import (
	"lawyer_exam_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Create(&questions).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.DB.First(&question, "id = ?", id).Error
	return &question, err
}

// FindByIDs returns only the questions that still exist; unknown ids are
// simply absent from the result.
func (r *QuestionRepository) FindByIDs(ids []string) ([]model.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) FindBySection(section model.Section) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("section = ?", section).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}

// List pages through the bank for the admin UI, optionally filtered by
// section, oldest entries first so pages stay stable while editing.
func (r *QuestionRepository) List(page, pageSize int, section *model.Section) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if section != nil {
		query = query.Where("section = ?", *section)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []model.Question
	offset := (page - 1) * pageSize
	err := query.Order("created_at asc").Offset(offset).Limit(pageSize).Find(&questions).Error
	return questions, total, err
}
