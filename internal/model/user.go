package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Phone    string   `gorm:"size:32;uniqueIndex;not null" json:"phone"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('user','admin');default:'user'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
