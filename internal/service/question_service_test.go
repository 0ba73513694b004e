package service

import (
	"errors"
	"fmt"
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/internal/model"
	"lawyer_exam_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

type fakeQuestionBank struct {
	questions []model.Question
	batches   [][]model.Question
}

func (f *fakeQuestionBank) Create(q *model.Question) error {
	if q.ID == "" {
		q.ID = model.GenerateUUID()
	}
	f.questions = append(f.questions, *q)
	return nil
}

func (f *fakeQuestionBank) CreateBatch(qs []model.Question) error {
	for i := range qs {
		if qs[i].ID == "" {
			qs[i].ID = model.GenerateUUID()
		}
	}
	f.batches = append(f.batches, qs)
	f.questions = append(f.questions, qs...)
	return nil
}

func (f *fakeQuestionBank) FindByID(id string) (*model.Question, error) {
	for i := range f.questions {
		if f.questions[i].ID == id {
			q := f.questions[i]
			return &q, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeQuestionBank) FindAll() ([]model.Question, error) {
	return append([]model.Question(nil), f.questions...), nil
}

func (f *fakeQuestionBank) FindBySection(section model.Section) ([]model.Question, error) {
	var out []model.Question
	for _, q := range f.questions {
		if q.Section == section {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestionBank) Update(q *model.Question) error {
	for i := range f.questions {
		if f.questions[i].ID == q.ID {
			f.questions[i] = *q
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeQuestionBank) Delete(id string) error {
	for i := range f.questions {
		if f.questions[i].ID == id {
			f.questions = append(f.questions[:i], f.questions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeQuestionBank) List(page, pageSize int, section *model.Section) ([]model.Question, int64, error) {
	var filtered []model.Question
	for _, q := range f.questions {
		if section == nil || q.Section == *section {
			filtered = append(filtered, q)
		}
	}
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], int64(len(filtered)), nil
}

func storedQuestion(t *testing.T, id string, section model.Section, correct int) model.Question {
	t.Helper()
	p := model.QuestionPayload{
		Question: model.LocalizedText{Kz: "Сұрақ " + id, Ru: "Вопрос " + id},
		Options: []model.LocalizedText{
			{Kz: "бірінші", Ru: "первый"},
			{Kz: "екінші", Ru: "второй"},
			{Kz: "үшінші", Ru: "третий"},
		},
		Correct:     correct,
		Explanation: model.LocalizedText{Kz: "түсіндірме", Ru: "пояснение"},
		Section:     section,
	}
	q, err := p.ToQuestion()
	if err != nil {
		t.Fatalf("ToQuestion: %v", err)
	}
	q.ID = id
	return *q
}

func newQuestionService(bank QuestionBank) *QuestionService {
	return NewQuestionService(bank, &config.Config{
		Quiz: config.QuizConfig{DemoQuestions: 15, ExamQuestions: 20},
	})
}

func TestSampleQuestions(t *testing.T) {
	source := make([]model.Question, 10)
	for i := range source {
		source[i] = model.Question{UUIDBase: model.UUIDBase{ID: fmt.Sprintf("q%d", i)}}
	}

	sampled := sampleQuestions(source, 5)
	if len(sampled) != 5 {
		t.Fatalf("sampled %d questions, want 5", len(sampled))
	}
	seen := make(map[string]bool)
	valid := make(map[string]bool)
	for _, q := range source {
		valid[q.ID] = true
	}
	for _, q := range sampled {
		if seen[q.ID] {
			t.Errorf("question %s sampled twice", q.ID)
		}
		if !valid[q.ID] {
			t.Errorf("question %s not in the source set", q.ID)
		}
		seen[q.ID] = true
	}

	all := sampleQuestions(source, 20)
	if len(all) != len(source) {
		t.Errorf("oversized draw returned %d questions, want %d", len(all), len(source))
	}

	for i := range source {
		if source[i].ID != fmt.Sprintf("q%d", i) {
			t.Fatal("sampling must not reorder the source slice")
		}
	}
}

func TestDemoAndExamQuestionCounts(t *testing.T) {
	bank := &fakeQuestionBank{}
	for i := 0; i < 30; i++ {
		q := storedQuestion(t, fmt.Sprintf("q%d", i), model.SectionCivilCode, 0)
		bank.questions = append(bank.questions, q)
	}
	svc := newQuestionService(bank)

	demo, err := svc.DemoQuestions("kz")
	if err != nil {
		t.Fatalf("DemoQuestions: %v", err)
	}
	if len(demo) != 15 {
		t.Errorf("demo set has %d questions, want 15", len(demo))
	}

	exam, err := svc.ExamQuestions("ru")
	if err != nil {
		t.Fatalf("ExamQuestions: %v", err)
	}
	if len(exam) != 20 {
		t.Errorf("exam set has %d questions, want 20", len(exam))
	}

	seen := make(map[string]bool)
	for _, q := range exam {
		if seen[q.ID] {
			t.Errorf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestTrainerQuestions(t *testing.T) {
	bank := &fakeQuestionBank{questions: []model.Question{
		storedQuestion(t, "c1", model.SectionCivilCode, 0),
		storedQuestion(t, "c2", model.SectionCivilCode, 1),
		storedQuestion(t, "c3", model.SectionCivilCode, 2),
		storedQuestion(t, "k1", model.SectionCriminalCode, 0),
		storedQuestion(t, "k2", model.SectionCriminalCode, 1),
	}}
	svc := newQuestionService(bank)

	criminal, err := svc.TrainerQuestions(model.SectionCriminalCode, "ru", 0)
	if err != nil {
		t.Fatalf("TrainerQuestions: %v", err)
	}
	if len(criminal) != 2 {
		t.Errorf("criminal section has %d questions, want 2", len(criminal))
	}
	for _, q := range criminal {
		if q.Section != string(model.SectionCriminalCode) {
			t.Errorf("question %s belongs to %s", q.ID, q.Section)
		}
	}

	whole, err := svc.TrainerQuestions("", "kz", 0)
	if err != nil {
		t.Fatalf("TrainerQuestions (no section): %v", err)
	}
	if len(whole) != 5 {
		t.Errorf("whole bank has %d questions, want 5", len(whole))
	}

	limited, err := svc.TrainerQuestions(model.SectionCivilCode, "kz", 1)
	if err != nil {
		t.Fatalf("TrainerQuestions (limit): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited draw has %d questions, want 1", len(limited))
	}

	if _, err := svc.TrainerQuestions("space_law", "kz", 0); !errors.Is(err, util.ErrInvalidSection) {
		t.Errorf("unknown section: err = %v, want ErrInvalidSection", err)
	}
}

func TestQuestionLanguageProjection(t *testing.T) {
	bank := &fakeQuestionBank{questions: []model.Question{
		storedQuestion(t, "q1", model.SectionAdvocacyLaw, 1),
	}}
	svc := newQuestionService(bank)

	tests := []struct {
		lang         string
		wantQuestion string
		wantOption   string
	}{
		{"ru", "Вопрос q1", "первый"},
		{"kz", "Сұрақ q1", "бірінші"},
		{"en", "Сұрақ q1", "бірінші"}, // unknown code falls back to Kazakh
		{"", "Сұрақ q1", "бірінші"},
	}

	for _, tt := range tests {
		t.Run("lang="+tt.lang, func(t *testing.T) {
			questions, err := svc.AllQuestions(tt.lang)
			if err != nil {
				t.Fatalf("AllQuestions: %v", err)
			}
			if len(questions) != 1 {
				t.Fatalf("got %d questions, want 1", len(questions))
			}
			q := questions[0]
			if q.Question != tt.wantQuestion {
				t.Errorf("Question = %q, want %q", q.Question, tt.wantQuestion)
			}
			if q.Options[0] != tt.wantOption {
				t.Errorf("Options[0] = %q, want %q", q.Options[0], tt.wantOption)
			}
			if q.Correct != 1 {
				t.Errorf("Correct = %d, want 1", q.Correct)
			}
			if q.SectionName.Kz == "" || q.SectionName.Ru == "" {
				t.Errorf("SectionName must stay bilingual, got %+v", q.SectionName)
			}
		})
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	payload := func() *model.QuestionPayload {
		return &model.QuestionPayload{
			Question: model.LocalizedText{Kz: "с", Ru: "в"},
			Options: []model.LocalizedText{
				{Kz: "а", Ru: "а"},
				{Kz: "б", Ru: "б"},
			},
			Correct: 1,
			Section: model.SectionCivilCode,
		}
	}

	t.Run("valid payload is stored", func(t *testing.T) {
		bank := &fakeQuestionBank{}
		created, err := newQuestionService(bank).CreateQuestion(payload())
		if err != nil {
			t.Fatalf("CreateQuestion: %v", err)
		}
		if created.ID == "" {
			t.Error("created question has no id")
		}
		if len(bank.questions) != 1 {
			t.Errorf("bank holds %d questions, want 1", len(bank.questions))
		}
	})

	t.Run("unknown section", func(t *testing.T) {
		p := payload()
		p.Section = "space_law"
		if _, err := newQuestionService(&fakeQuestionBank{}).CreateQuestion(p); !errors.Is(err, util.ErrInvalidSection) {
			t.Errorf("err = %v, want ErrInvalidSection", err)
		}
	})

	t.Run("correct index out of range", func(t *testing.T) {
		p := payload()
		p.Correct = 2
		if _, err := newQuestionService(&fakeQuestionBank{}).CreateQuestion(p); !errors.Is(err, util.ErrInvalidCorrect) {
			t.Errorf("err = %v, want ErrInvalidCorrect", err)
		}
	})

	t.Run("negative correct index", func(t *testing.T) {
		p := payload()
		p.Correct = -1
		if _, err := newQuestionService(&fakeQuestionBank{}).CreateQuestion(p); !errors.Is(err, util.ErrInvalidCorrect) {
			t.Errorf("err = %v, want ErrInvalidCorrect", err)
		}
	})
}

func TestUpdateQuestion(t *testing.T) {
	existing := storedQuestion(t, "q1", model.SectionCivilCode, 0)
	bank := &fakeQuestionBank{questions: []model.Question{existing}}
	svc := newQuestionService(bank)

	p := &model.QuestionPayload{
		Question: model.LocalizedText{Kz: "жаңа", Ru: "новый"},
		Options: []model.LocalizedText{
			{Kz: "а", Ru: "а"},
			{Kz: "б", Ru: "б"},
		},
		Correct: 1,
		Section: model.SectionAdvocacyLaw,
	}

	updated, err := svc.UpdateQuestion("q1", p)
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.ID != "q1" {
		t.Errorf("update changed the id to %q", updated.ID)
	}
	if updated.Question.Ru != "новый" || updated.Section != string(model.SectionAdvocacyLaw) {
		t.Errorf("update not applied: %+v", updated)
	}

	if _, err := svc.UpdateQuestion("ghost", p); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("missing question: err = %v, want ErrQuestionNotFound", err)
	}
}

func TestDeleteQuestion(t *testing.T) {
	bank := &fakeQuestionBank{questions: []model.Question{
		storedQuestion(t, "q1", model.SectionCivilCode, 0),
	}}
	svc := newQuestionService(bank)

	if err := svc.DeleteQuestion("q1"); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if len(bank.questions) != 0 {
		t.Errorf("bank still holds %d questions", len(bank.questions))
	}

	if err := svc.DeleteQuestion("q1"); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("second delete: err = %v, want ErrQuestionNotFound", err)
	}
}

func TestListQuestions(t *testing.T) {
	bank := &fakeQuestionBank{}
	for i := 0; i < 25; i++ {
		section := model.SectionCivilCode
		if i%5 == 0 {
			section = model.SectionAMLLaw
		}
		bank.questions = append(bank.questions, storedQuestion(t, fmt.Sprintf("q%02d", i), section, 0))
	}
	svc := newQuestionService(bank)

	page, err := svc.ListQuestions(2, 10, nil)
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 || page.Page != 2 || len(page.Items) != 10 {
		t.Errorf("page = total %d pages %d page %d items %d", page.Total, page.TotalPages, page.Page, len(page.Items))
	}
	if page.Items[0].ID != "q10" {
		t.Errorf("second page starts at %s, want q10", page.Items[0].ID)
	}

	aml := model.SectionAMLLaw
	filtered, err := svc.ListQuestions(0, 0, &aml)
	if err != nil {
		t.Fatalf("ListQuestions (filtered): %v", err)
	}
	if filtered.Total != 5 || filtered.Page != 1 || filtered.PageSize != 20 {
		t.Errorf("filtered = total %d page %d size %d", filtered.Total, filtered.Page, filtered.PageSize)
	}

	bad := model.Section("space_law")
	if _, err := svc.ListQuestions(1, 10, &bad); !errors.Is(err, util.ErrInvalidSection) {
		t.Errorf("bad section: err = %v, want ErrInvalidSection", err)
	}
}

func TestImportQuestions(t *testing.T) {
	valid := []byte(`{
		"questions": [
			{
				"id": "kb-1",
				"question": {"kz": "с1", "ru": "в1"},
				"options": [{"kz": "а", "ru": "а"}, {"kz": "б", "ru": "б"}],
				"correct": 0,
				"section": "civil_code"
			},
			{
				"question": {"kz": "с2", "ru": "в2"},
				"options": [{"kz": "а", "ru": "а"}, {"kz": "б", "ru": "б"}],
				"correct": 1,
				"section": "aml_law"
			}
		]
	}`)

	t.Run("valid document", func(t *testing.T) {
		bank := &fakeQuestionBank{}
		count, err := newQuestionService(bank).ImportQuestions(valid)
		if err != nil {
			t.Fatalf("ImportQuestions: %v", err)
		}
		if count != 2 {
			t.Errorf("imported %d, want 2", count)
		}
		if len(bank.batches) != 1 || len(bank.batches[0]) != 2 {
			t.Fatalf("expected one batch of 2, got %v", bank.batches)
		}
		if bank.batches[0][0].ID != "kb-1" {
			t.Errorf("explicit id not kept: %q", bank.batches[0][0].ID)
		}
		if bank.batches[0][1].ID == "" {
			t.Error("missing id not generated")
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := newQuestionService(&fakeQuestionBank{}).ImportQuestions([]byte("not json")); !errors.Is(err, util.ErrInvalidImport) {
			t.Errorf("err = %v, want ErrInvalidImport", err)
		}
	})

	t.Run("bad entry fails the whole import", func(t *testing.T) {
		doc := []byte(`{
			"questions": [
				{
					"question": {"kz": "с", "ru": "в"},
					"options": [{"kz": "а", "ru": "а"}],
					"correct": 3,
					"section": "civil_code"
				}
			]
		}`)
		bank := &fakeQuestionBank{}
		if _, err := newQuestionService(bank).ImportQuestions(doc); !errors.Is(err, util.ErrInvalidCorrect) {
			t.Errorf("err = %v, want ErrInvalidCorrect", err)
		}
		if len(bank.batches) != 0 {
			t.Error("failed import must not persist anything")
		}
	})
}
