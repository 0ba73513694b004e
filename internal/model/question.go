package model

import (
	"encoding/json"
)

const (
	LangKazakh  = "kz"
	LangRussian = "ru"
)

// NormalizeLang maps any unrecognized language code to Kazakh.
func NormalizeLang(lang string) string {
	if lang != LangKazakh && lang != LangRussian {
		return LangKazakh
	}
	return lang
}

// LocalizedText carries both translations of one text field.
type LocalizedText struct {
	Kz string `json:"kz"`
	Ru string `json:"ru"`
}

func (t LocalizedText) Pick(lang string) string {
	if NormalizeLang(lang) == LangRussian {
		return t.Ru
	}
	return t.Kz
}

// Question is a bank entry. Text, Options and Explanation hold bilingual
// JSON documents ({"kz": ..., "ru": ...} / arrays of those).
// swagger:model Question
type Question struct {
	UUIDBase
	Text        json.RawMessage `gorm:"type:json;not null" json:"question"`
	Options     json.RawMessage `gorm:"type:json;not null" json:"options"`
	Correct     int             `gorm:"not null" json:"correct"`
	Explanation json.RawMessage `gorm:"type:json" json:"explanation"`
	Section     Section         `gorm:"size:64;index;not null" json:"section"`
}

func (Question) TableName() string {
	return "questions"
}

// LocalizedQuestion is the public, single-language projection of a Question.
// The section name stays bilingual so clients can switch labels locally.
type LocalizedQuestion struct {
	ID          string        `json:"id"`
	Question    string        `json:"question"`
	Options     []string      `json:"options"`
	Correct     int           `json:"correct"`
	Explanation string        `json:"explanation"`
	Section     string        `json:"section"`
	SectionName LocalizedText `json:"section_name"`
}

// AdminQuestion exposes both languages for the management UI.
type AdminQuestion struct {
	ID          string          `json:"id"`
	Question    LocalizedText   `json:"question"`
	Options     []LocalizedText `json:"options"`
	Correct     int             `json:"correct"`
	Explanation LocalizedText   `json:"explanation"`
	Section     string          `json:"section"`
	SectionName LocalizedText   `json:"section_name"`
}

// Localize projects the bilingual document to one language, falling back to
// Kazakh when the requested code is unknown.
func (q *Question) Localize(lang string) (*LocalizedQuestion, error) {
	text, options, explanation, err := q.decode()
	if err != nil {
		return nil, err
	}

	lang = NormalizeLang(lang)
	opts := make([]string, 0, len(options))
	for _, o := range options {
		opts = append(opts, o.Pick(lang))
	}

	return &LocalizedQuestion{
		ID:          q.ID,
		Question:    text.Pick(lang),
		Options:     opts,
		Correct:     q.Correct,
		Explanation: explanation.Pick(lang),
		Section:     string(q.Section),
		SectionName: q.Section.Name(),
	}, nil
}

// AdminView decodes the stored document without projecting a language.
func (q *Question) AdminView() (*AdminQuestion, error) {
	text, options, explanation, err := q.decode()
	if err != nil {
		return nil, err
	}

	return &AdminQuestion{
		ID:          q.ID,
		Question:    text,
		Options:     options,
		Correct:     q.Correct,
		Explanation: explanation,
		Section:     string(q.Section),
		SectionName: q.Section.Name(),
	}, nil
}

func (q *Question) decode() (text LocalizedText, options []LocalizedText, explanation LocalizedText, err error) {
	if err = json.Unmarshal(q.Text, &text); err != nil {
		return
	}
	if err = json.Unmarshal(q.Options, &options); err != nil {
		return
	}
	if len(q.Explanation) > 0 {
		err = json.Unmarshal(q.Explanation, &explanation)
	}
	return
}

// QuestionPayload is the admin create/update body.
type QuestionPayload struct {
	Question    LocalizedText   `json:"question" binding:"required"`
	Options     []LocalizedText `json:"options" binding:"required"`
	Correct     int             `json:"correct"`
	Explanation LocalizedText   `json:"explanation"`
	Section     Section         `json:"section" binding:"required"`
}

// ToQuestion encodes the payload into a storable Question.
func (p *QuestionPayload) ToQuestion() (*Question, error) {
	text, err := json.Marshal(p.Question)
	if err != nil {
		return nil, err
	}
	options, err := json.Marshal(p.Options)
	if err != nil {
		return nil, err
	}
	explanation, err := json.Marshal(p.Explanation)
	if err != nil {
		return nil, err
	}
	return &Question{
		Text:        text,
		Options:     options,
		Correct:     p.Correct,
		Explanation: explanation,
		Section:     p.Section,
	}, nil
}

// PaginatedQuestions is the admin listing envelope.
type PaginatedQuestions struct {
	Items      []AdminQuestion `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
