package model

import (
	"encoding/json"
)

type TestMode string

const (
	ModeExam    TestMode = "exam"
	ModeDemo    TestMode = "demo"
	ModeTrainer TestMode = "trainer"
)

func (m TestMode) Valid() bool {
	switch m {
	case ModeExam, ModeDemo, ModeTrainer:
		return true
	}
	return false
}

// Answer is one submission line item. A negative index means the question
// was left unanswered; it still counts toward its section's total.
type Answer struct {
	QuestionID string `json:"question_id"`
	Answer     int    `json:"answer"`
}

// ExamSubmit is the grading request body.
type ExamSubmit struct {
	Mode      TestMode `json:"mode" binding:"required"`
	Answers   []Answer `json:"answers"`
	Section   *Section `json:"section,omitempty"`
	TimeSpent *int     `json:"time_spent,omitempty"`
}

// Tally is a correct/total count pair for one section.
type Tally struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// SectionTally buckets counts by legislation section.
type SectionTally map[Section]Tally

// Record counts one verifiable answer against its section.
func (t SectionTally) Record(section Section, correct bool) {
	entry := t[section]
	entry.Total++
	if correct {
		entry.Correct++
	}
	t[section] = entry
}

// Merge folds another tally into this one.
func (t SectionTally) Merge(other SectionTally) {
	for section, e := range other {
		entry := t[section]
		entry.Correct += e.Correct
		entry.Total += e.Total
		t[section] = entry
	}
}

// ExamResult is one graded submission. SectionResults and Answers hold the
// marshaled SectionTally and []Answer.
// swagger:model ExamResult
type ExamResult struct {
	UUIDBase
	UserID         string          `gorm:"index;type:varchar(36);not null" json:"user_id"`
	Mode           TestMode        `gorm:"size:16;not null" json:"mode"`
	TotalQuestions int             `gorm:"not null" json:"total_questions"`
	CorrectAnswers int             `gorm:"not null" json:"correct_answers"`
	Score          float64         `gorm:"not null" json:"score"`
	Passed         bool            `gorm:"not null" json:"passed"`
	Section        *Section        `gorm:"size:64" json:"section,omitempty"`
	SectionResults json.RawMessage `gorm:"type:json" json:"section_results,omitempty"`
	TimeSpent      *int            `json:"time_spent,omitempty"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers,omitempty"`
}

func (ExamResult) TableName() string {
	return "exam_results"
}

// Tally decodes the stored section results. A result without any
// verifiable answers decodes to an empty tally.
func (r *ExamResult) Tally() (SectionTally, error) {
	tally := SectionTally{}
	if len(r.SectionResults) == 0 {
		return tally, nil
	}
	if err := json.Unmarshal(r.SectionResults, &tally); err != nil {
		return nil, err
	}
	return tally, nil
}

// ExamHistory is the aggregated view over all of a user's results.
type ExamHistory struct {
	Exams             []ExamResult `json:"exams"`
	TotalExams        int          `json:"total_exams"`
	OverallStatistics SectionTally `json:"overall_statistics"`
}
