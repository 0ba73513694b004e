package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/util"
	"lawyer_exam_backend/pkg/monitoring"
	"sort"

	"gorm.io/gorm"
)

// PassingScore is the fixed percentage needed to pass, regardless of mode.
const PassingScore = 70.0

// QuestionLookup resolves submitted question ids in one batch; ids that no
// longer exist are simply absent from the result.
type QuestionLookup interface {
	FindByIDs(ids []string) ([]model.Question, error)
}

// ExamResultStore persists and recalls graded submissions. Missing ids are
// reported as gorm.ErrRecordNotFound.
type ExamResultStore interface {
	Create(result *model.ExamResult) error
	FindByID(id string) (*model.ExamResult, error)
	FindByUser(userID string) ([]model.ExamResult, error)
}

type ExamService struct {
	Questions QuestionLookup
	Results   ExamResultStore
}

func NewExamService(questions QuestionLookup, results ExamResultStore) *ExamService {
	return &ExamService{
		Questions: questions,
		Results:   results,
	}
}

// scoreSubmission counts verifiable answers against the resolved questions.
// Answers whose question id does not resolve are skipped entirely; negative
// option indexes (unanswered) count toward their section's total only.
func scoreSubmission(answers []model.Answer, questions map[string]*model.Question) (int, model.SectionTally) {
	correct := 0
	tally := model.SectionTally{}

	for _, a := range answers {
		q, ok := questions[a.QuestionID]
		if !ok {
			continue
		}
		isCorrect := a.Answer >= 0 && a.Answer == q.Correct
		tally.Record(q.Section, isCorrect)
		if isCorrect {
			correct++
		}
	}

	return correct, tally
}

// Submit grades one submission and persists the result. The denominator is
// the number of submitted answers: unanswered and no-longer-existing
// questions still count against the score.
func (s *ExamService) Submit(userID string, req *model.ExamSubmit) (*model.ExamResult, error) {
	if !req.Mode.Valid() {
		return nil, util.ErrInvalidMode
	}
	if req.Section != nil && !req.Section.Valid() {
		return nil, util.ErrInvalidSection
	}

	ids := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		ids = append(ids, a.QuestionID)
	}

	questions, err := s.Questions.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	correct, tally := scoreSubmission(req.Answers, byID)

	total := len(req.Answers)
	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	sectionResults, err := json.Marshal(tally)
	if err != nil {
		return nil, err
	}
	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	result := &model.ExamResult{
		UserID:         userID,
		Mode:           req.Mode,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Score:          score,
		Passed:         score >= PassingScore,
		Section:        req.Section,
		SectionResults: sectionResults,
		TimeSpent:      req.TimeSpent,
		Answers:        answers,
	}

	if err := s.Results.Create(result); err != nil {
		return nil, err
	}

	monitoring.ExamsSubmitted.WithLabelValues(string(req.Mode)).Inc()
	if result.Passed {
		monitoring.ExamsPassed.WithLabelValues(string(req.Mode)).Inc()
	}

	return result, nil
}

// aggregateHistory folds every result into one cumulative tally and orders
// the list newest first. The sort is stable so same-timestamp results keep
// their incoming order.
func aggregateHistory(results []model.ExamResult) (*model.ExamHistory, error) {
	overall := model.SectionTally{}
	for i := range results {
		tally, err := results[i].Tally()
		if err != nil {
			return nil, fmt.Errorf("result %s: %w", results[i].ID, err)
		}
		overall.Merge(tally)
	}

	sorted := make([]model.ExamResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	return &model.ExamHistory{
		Exams:             sorted,
		TotalExams:        len(sorted),
		OverallStatistics: overall,
	}, nil
}

// History returns the user's full exam history with cumulative per-section
// statistics. A user with no results gets an empty aggregate, not an error.
func (s *ExamService) History(userID string) (*model.ExamHistory, error) {
	results, err := s.Results.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return aggregateHistory(results)
}

// Detail returns one result, enforcing ownership before anything else.
func (s *ExamService) Detail(userID, resultID string) (*model.ExamResult, error) {
	result, err := s.Results.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	if result.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return result, nil
}
