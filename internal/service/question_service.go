package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/util"
	"math"
	"math/rand"

	"gorm.io/gorm"
)

// QuestionBank is the storage surface behind question delivery and the
// admin CRUD. Lookups by id report gorm.ErrRecordNotFound for missing rows.
type QuestionBank interface {
	Create(question *model.Question) error
	CreateBatch(questions []model.Question) error
	FindByID(id string) (*model.Question, error)
	FindAll() ([]model.Question, error)
	FindBySection(section model.Section) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id string) error
	List(page, pageSize int, section *model.Section) ([]model.Question, int64, error)
}

type QuestionService struct {
	QuestionRepo QuestionBank
	Cfg          *config.Config
}

func NewQuestionService(questionRepo QuestionBank, cfg *config.Config) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		Cfg:          cfg,
	}
}

// sampleQuestions draws up to n distinct questions in random order. When the
// bank holds fewer than n, every question is returned (still shuffled).
func sampleQuestions(questions []model.Question, n int) []model.Question {
	shuffled := make([]model.Question, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

func localizeAll(questions []model.Question, lang string) ([]*model.LocalizedQuestion, error) {
	out := make([]*model.LocalizedQuestion, 0, len(questions))
	for i := range questions {
		lq, err := questions[i].Localize(lang)
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", questions[i].ID, err)
		}
		out = append(out, lq)
	}
	return out, nil
}

func (s *QuestionService) AllQuestions(lang string) ([]*model.LocalizedQuestion, error) {
	questions, err := s.QuestionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return localizeAll(questions, lang)
}

func (s *QuestionService) DemoQuestions(lang string) ([]*model.LocalizedQuestion, error) {
	questions, err := s.QuestionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return localizeAll(sampleQuestions(questions, s.Cfg.Quiz.DemoQuestions), lang)
}

func (s *QuestionService) ExamQuestions(lang string) ([]*model.LocalizedQuestion, error) {
	questions, err := s.QuestionRepo.FindAll()
	if err != nil {
		return nil, err
	}
	return localizeAll(sampleQuestions(questions, s.Cfg.Quiz.ExamQuestions), lang)
}

// TrainerQuestions serves the per-section practice mode. An empty section
// draws from the whole bank; limit <= 0 means no limit.
func (s *QuestionService) TrainerQuestions(section model.Section, lang string, limit int) ([]*model.LocalizedQuestion, error) {
	var (
		questions []model.Question
		err       error
	)
	if section != "" {
		if !section.Valid() {
			return nil, util.ErrInvalidSection
		}
		questions, err = s.QuestionRepo.FindBySection(section)
	} else {
		questions, err = s.QuestionRepo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 {
		questions = sampleQuestions(questions, limit)
	}
	return localizeAll(questions, lang)
}

func validatePayload(p *model.QuestionPayload) error {
	if !p.Section.Valid() {
		return util.ErrInvalidSection
	}
	if p.Correct < 0 || p.Correct >= len(p.Options) {
		return util.ErrInvalidCorrect
	}
	return nil
}

func (s *QuestionService) CreateQuestion(p *model.QuestionPayload) (*model.AdminQuestion, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	question, err := p.ToQuestion()
	if err != nil {
		return nil, err
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}
	return question.AdminView()
}

func (s *QuestionService) UpdateQuestion(id string, p *model.QuestionPayload) (*model.AdminQuestion, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	existing, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	updated, err := p.ToQuestion()
	if err != nil {
		return nil, err
	}
	updated.UUIDBase = existing.UUIDBase

	if err := s.QuestionRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated.AdminView()
}

func (s *QuestionService) DeleteQuestion(id string) error {
	if _, err := s.QuestionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) ListQuestions(page, pageSize int, section *model.Section) (*model.PaginatedQuestions, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if section != nil && !section.Valid() {
		return nil, util.ErrInvalidSection
	}

	questions, total, err := s.QuestionRepo.List(page, pageSize, section)
	if err != nil {
		return nil, err
	}

	items := make([]model.AdminQuestion, 0, len(questions))
	for i := range questions {
		view, err := questions[i].AdminView()
		if err != nil {
			return nil, fmt.Errorf("question %s: %w", questions[i].ID, err)
		}
		items = append(items, *view)
	}

	return &model.PaginatedQuestions{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// knowledgeBase mirrors the bundled knowledge_base.json layout.
type knowledgeBase struct {
	Questions []importedQuestion `json:"questions"`
}

type importedQuestion struct {
	ID          string                `json:"id"`
	Question    model.LocalizedText   `json:"question"`
	Options     []model.LocalizedText `json:"options"`
	Correct     int                   `json:"correct"`
	Explanation model.LocalizedText   `json:"explanation"`
	Section     model.Section         `json:"section"`
}

// ImportQuestions loads a knowledge-base document into the bank. Entries
// keep their ids when present so re-imports stay stable. The whole import
// fails on the first invalid entry.
func (s *QuestionService) ImportQuestions(data []byte) (int, error) {
	var kb knowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		return 0, fmt.Errorf("%w: %v", util.ErrInvalidImport, err)
	}

	questions := make([]model.Question, 0, len(kb.Questions))
	for i, entry := range kb.Questions {
		p := model.QuestionPayload{
			Question:    entry.Question,
			Options:     entry.Options,
			Correct:     entry.Correct,
			Explanation: entry.Explanation,
			Section:     entry.Section,
		}
		if err := validatePayload(&p); err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
		q, err := p.ToQuestion()
		if err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
		q.ID = entry.ID
		questions = append(questions, *q)
	}

	if err := s.QuestionRepo.CreateBatch(questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}
