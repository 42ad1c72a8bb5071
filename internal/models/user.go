package models

import "time"

const (
	RoleStudent = "STUDENT"
	RoleTutor   = "TUTOR"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100;not null" json:"last_name"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role   string `gorm:"size:20;default:'STUDENT'" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	TutorProfile *TutorProfile `gorm:"foreignKey:UserID" json:"tutor_profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
