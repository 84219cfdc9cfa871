package model

import "time"

type User struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	OrganizationID int64     `gorm:"not null;index" json:"organization_id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex" json:"email"`
	Phone          string    `gorm:"size:32" json:"phone"`
	PasswordHash   string    `gorm:"size:255" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserView is a user with its organization resolved, as returned inside
// hydrated agreements.
type UserView struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Organization Organization `json:"organization"`
}
