package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

type fakeQuestionLookup struct {
	bank map[string]model.Question
	err  error
}

func (f *fakeQuestionLookup) FindByIDs(ids []string) ([]model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if q, ok := f.bank[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeResultStore struct {
	results   []model.ExamResult
	createErr error
}

func (f *fakeResultStore) Create(result *model.ExamResult) error {
	if f.createErr != nil {
		return f.createErr
	}
	if result.ID == "" {
		result.ID = model.GenerateUUID()
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	f.results = append(f.results, *result)
	return nil
}

func (f *fakeResultStore) FindByID(id string) (*model.ExamResult, error) {
	for i := range f.results {
		if f.results[i].ID == id {
			return &f.results[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeResultStore) FindByUser(userID string) ([]model.ExamResult, error) {
	var out []model.ExamResult
	for _, r := range f.results {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func bankQuestion(id string, section model.Section, correct int) model.Question {
	return model.Question{
		UUIDBase: model.UUIDBase{ID: id},
		Correct:  correct,
		Section:  section,
	}
}

func assertTally(t *testing.T, got, want model.SectionTally) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("tally sections = %v, want %v", got, want)
	}
	for section, entry := range want {
		if got[section] != entry {
			t.Errorf("tally[%s] = %+v, want %+v", section, got[section], entry)
		}
	}
}

func TestSubmitScoring(t *testing.T) {
	lookup := &fakeQuestionLookup{bank: map[string]model.Question{
		"q1": bankQuestion("q1", model.SectionCivilCode, 0),
		"q2": bankQuestion("q2", model.SectionCivilCode, 1),
		"q3": bankQuestion("q3", model.SectionCriminalCode, 2),
	}}

	tests := []struct {
		name        string
		answers     []model.Answer
		wantCorrect int
		wantTotal   int
		wantScore   float64
		wantPassed  bool
		wantTally   model.SectionTally
	}{
		{
			name:        "all correct",
			answers:     []model.Answer{{QuestionID: "q1", Answer: 0}, {QuestionID: "q2", Answer: 1}},
			wantCorrect: 2, wantTotal: 2, wantScore: 100, wantPassed: true,
			wantTally: model.SectionTally{model.SectionCivilCode: {Correct: 2, Total: 2}},
		},
		{
			name:        "wrong and unanswered score zero",
			answers:     []model.Answer{{QuestionID: "q1", Answer: 1}, {QuestionID: "q3", Answer: -1}},
			wantCorrect: 0, wantTotal: 2, wantScore: 0, wantPassed: false,
			wantTally: model.SectionTally{
				model.SectionCivilCode:    {Correct: 0, Total: 1},
				model.SectionCriminalCode: {Correct: 0, Total: 1},
			},
		},
		{
			// A deleted question still weighs on the score but leaves no
			// trace in the section tallies.
			name:        "missing question counts in denominator only",
			answers:     []model.Answer{{QuestionID: "q1", Answer: 0}, {QuestionID: "gone", Answer: 0}},
			wantCorrect: 1, wantTotal: 2, wantScore: 50, wantPassed: false,
			wantTally: model.SectionTally{model.SectionCivilCode: {Correct: 1, Total: 1}},
		},
		{
			name:        "duplicate question ids count per answer",
			answers:     []model.Answer{{QuestionID: "q1", Answer: 0}, {QuestionID: "q1", Answer: 0}},
			wantCorrect: 2, wantTotal: 2, wantScore: 100, wantPassed: true,
			wantTally: model.SectionTally{model.SectionCivilCode: {Correct: 2, Total: 2}},
		},
		{
			name:        "empty submission",
			answers:     nil,
			wantCorrect: 0, wantTotal: 0, wantScore: 0, wantPassed: false,
			wantTally:   model.SectionTally{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeResultStore{}
			svc := NewExamService(lookup, store)

			result, err := svc.Submit("user-1", &model.ExamSubmit{Mode: model.ModeExam, Answers: tt.answers})
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}

			if result.CorrectAnswers != tt.wantCorrect {
				t.Errorf("CorrectAnswers = %d, want %d", result.CorrectAnswers, tt.wantCorrect)
			}
			if result.TotalQuestions != tt.wantTotal {
				t.Errorf("TotalQuestions = %d, want %d", result.TotalQuestions, tt.wantTotal)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", result.Score, tt.wantScore)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
			if result.CorrectAnswers > result.TotalQuestions {
				t.Errorf("CorrectAnswers %d exceeds TotalQuestions %d", result.CorrectAnswers, result.TotalQuestions)
			}

			tally, err := result.Tally()
			if err != nil {
				t.Fatalf("Tally: %v", err)
			}
			assertTally(t, tally, tt.wantTally)

			if len(store.results) != 1 {
				t.Fatalf("stored %d results, want 1", len(store.results))
			}
			if store.results[0].UserID != "user-1" {
				t.Errorf("stored UserID = %q, want %q", store.results[0].UserID, "user-1")
			}

			var echoed []model.Answer
			if err := json.Unmarshal(result.Answers, &echoed); err != nil {
				t.Fatalf("unmarshal stored answers: %v", err)
			}
			if len(echoed) != len(tt.answers) {
				t.Errorf("stored %d answers, want %d", len(echoed), len(tt.answers))
			}
		})
	}
}

func TestSubmitPassThreshold(t *testing.T) {
	bank := make(map[string]model.Question)
	answers := make([]model.Answer, 0, 10)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("q%d", i)
		bank[id] = bankQuestion(id, model.SectionAdvocacyLaw, 0)
		answers = append(answers, model.Answer{QuestionID: id, Answer: 0})
	}
	lookup := &fakeQuestionLookup{bank: bank}

	tests := []struct {
		name       string
		wrong      int
		wantScore  float64
		wantPassed bool
	}{
		{"exactly at the passing line", 3, 70, true},
		{"just below the passing line", 4, 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitted := make([]model.Answer, len(answers))
			copy(submitted, answers)
			for i := 0; i < tt.wrong; i++ {
				submitted[i].Answer = 1
			}

			result, err := NewExamService(lookup, &fakeResultStore{}).
				Submit("u", &model.ExamSubmit{Mode: model.ModeExam, Answers: submitted})
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", result.Score, tt.wantScore)
			}
			if result.Passed != tt.wantPassed {
				t.Errorf("Passed = %v, want %v", result.Passed, tt.wantPassed)
			}
		})
	}
}

func TestSubmitRejectsBadInput(t *testing.T) {
	store := &fakeResultStore{}
	svc := NewExamService(&fakeQuestionLookup{}, store)

	if _, err := svc.Submit("u", &model.ExamSubmit{Mode: "marathon"}); !errors.Is(err, util.ErrInvalidMode) {
		t.Errorf("unknown mode: err = %v, want ErrInvalidMode", err)
	}

	bad := model.Section("space_law")
	if _, err := svc.Submit("u", &model.ExamSubmit{Mode: model.ModeTrainer, Section: &bad}); !errors.Is(err, util.ErrInvalidSection) {
		t.Errorf("unknown section: err = %v, want ErrInvalidSection", err)
	}

	if len(store.results) != 0 {
		t.Errorf("rejected submissions must not be stored, got %d", len(store.results))
	}
}

func TestSubmitPropagatesStoreErrors(t *testing.T) {
	lookupErr := errors.New("bank unavailable")
	_, err := NewExamService(&fakeQuestionLookup{err: lookupErr}, &fakeResultStore{}).
		Submit("u", &model.ExamSubmit{Mode: model.ModeExam})
	if !errors.Is(err, lookupErr) {
		t.Errorf("lookup failure: err = %v, want %v", err, lookupErr)
	}

	createErr := errors.New("insert failed")
	_, err = NewExamService(&fakeQuestionLookup{}, &fakeResultStore{createErr: createErr}).
		Submit("u", &model.ExamSubmit{Mode: model.ModeExam})
	if !errors.Is(err, createErr) {
		t.Errorf("create failure: err = %v, want %v", err, createErr)
	}
}

func historyResult(id, userID string, createdAt time.Time, tally model.SectionTally) model.ExamResult {
	raw, _ := json.Marshal(tally)
	return model.ExamResult{
		UUIDBase:       model.UUIDBase{ID: id, CreatedAt: createdAt},
		UserID:         userID,
		Mode:           model.ModeExam,
		SectionResults: raw,
	}
}

func TestHistoryAggregation(t *testing.T) {
	now := time.Now()
	store := &fakeResultStore{results: []model.ExamResult{
		historyResult("r1", "u1", now.Add(-2*time.Hour), model.SectionTally{
			model.SectionCivilCode: {Correct: 1, Total: 2},
		}),
		historyResult("r2", "u1", now, model.SectionTally{
			model.SectionCivilCode:    {Correct: 2, Total: 2},
			model.SectionCriminalCode: {Correct: 1, Total: 1},
		}),
		historyResult("r3", "someone-else", now, model.SectionTally{
			model.SectionAMLLaw: {Correct: 5, Total: 5},
		}),
	}}
	svc := NewExamService(&fakeQuestionLookup{}, store)

	history, err := svc.History("u1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}

	if history.TotalExams != 2 {
		t.Errorf("TotalExams = %d, want 2", history.TotalExams)
	}
	if len(history.Exams) != 2 || history.Exams[0].ID != "r2" || history.Exams[1].ID != "r1" {
		t.Errorf("exams not newest first: %v", examIDs(history.Exams))
	}

	assertTally(t, history.OverallStatistics, model.SectionTally{
		model.SectionCivilCode:    {Correct: 3, Total: 4},
		model.SectionCriminalCode: {Correct: 1, Total: 1},
	})
}

func TestHistoryEmpty(t *testing.T) {
	svc := NewExamService(&fakeQuestionLookup{}, &fakeResultStore{})

	history, err := svc.History("nobody")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if history.TotalExams != 0 || len(history.Exams) != 0 || len(history.OverallStatistics) != 0 {
		t.Errorf("empty history = %+v, want zero values", history)
	}
}

func examIDs(exams []model.ExamResult) []string {
	ids := make([]string, 0, len(exams))
	for _, e := range exams {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestAggregateHistoryOrderIndependent(t *testing.T) {
	now := time.Now()
	results := []model.ExamResult{
		historyResult("a", "u", now.Add(-3*time.Minute), model.SectionTally{model.SectionCivilCode: {Correct: 1, Total: 3}}),
		historyResult("b", "u", now.Add(-2*time.Minute), model.SectionTally{model.SectionCivilCode: {Correct: 2, Total: 2}}),
		historyResult("c", "u", now.Add(-1*time.Minute), model.SectionTally{model.SectionAntiCorruptionLaw: {Correct: 1, Total: 1}}),
	}
	reversed := []model.ExamResult{results[2], results[1], results[0]}

	h1, err := aggregateHistory(results)
	if err != nil {
		t.Fatalf("aggregateHistory: %v", err)
	}
	h2, err := aggregateHistory(reversed)
	if err != nil {
		t.Fatalf("aggregateHistory (reversed): %v", err)
	}

	assertTally(t, h2.OverallStatistics, h1.OverallStatistics)
	if h1.Exams[0].ID != "c" || h2.Exams[0].ID != "c" {
		t.Errorf("newest first regardless of storage order, got %v and %v", examIDs(h1.Exams), examIDs(h2.Exams))
	}
}

func TestAggregateHistoryStableForEqualTimestamps(t *testing.T) {
	ts := time.Now()
	results := []model.ExamResult{
		historyResult("first", "u", ts, nil),
		historyResult("second", "u", ts, nil),
	}

	history, err := aggregateHistory(results)
	if err != nil {
		t.Fatalf("aggregateHistory: %v", err)
	}
	if history.Exams[0].ID != "first" || history.Exams[1].ID != "second" {
		t.Errorf("equal timestamps must keep incoming order, got %v", examIDs(history.Exams))
	}
}

func TestDetailOwnership(t *testing.T) {
	store := &fakeResultStore{results: []model.ExamResult{
		{UUIDBase: model.UUIDBase{ID: "r1"}, UserID: "owner"},
	}}
	svc := NewExamService(&fakeQuestionLookup{}, store)

	if result, err := svc.Detail("owner", "r1"); err != nil || result.ID != "r1" {
		t.Errorf("owner read: result = %v, err = %v", result, err)
	}
	if _, err := svc.Detail("intruder", "r1"); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign read: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Detail("owner", "ghost"); !errors.Is(err, util.ErrResultNotFound) {
		t.Errorf("missing result: err = %v, want ErrResultNotFound", err)
	}
}
