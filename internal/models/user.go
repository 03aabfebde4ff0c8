package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleModerator || r == RoleAdmin
}

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	// nil when unknown; a unique index would reject repeated empty strings
	PhoneNumber *string `gorm:"type:varchar(30);uniqueIndex" json:"phoneNumber"`

	Password  string `gorm:"not null" json:"-"`
	Role      Role   `gorm:"type:varchar(20);not null;index" json:"role"`
	IsBlocked bool   `gorm:"default:false" json:"isBlocked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Phone() string {
	if u.PhoneNumber == nil {
		return ""
	}
	return *u.PhoneNumber
}
