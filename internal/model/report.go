package model

// Report is a free-form user complaint about question content.
type Report struct {
	UUIDBase
	UserID string `gorm:"index;type:varchar(36);not null" json:"user_id"`
	Text   string `gorm:"type:text;not null" json:"text"`
}

func (Report) TableName() string {
	return "reports"
}
